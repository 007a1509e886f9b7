package regioit

import (
	"context"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/sync/errgroup"

	"github.com/tonneli/tonneli/internal/model"
	"github.com/tonneli/tonneli/internal/ports"
	"github.com/tonneli/tonneli/internal/provider/httpjson"
	"github.com/tonneli/tonneli/internal/textmatch"
)

var _ ports.AddressPort = (*Provider)(nil)

// Search lists the streets of the place for the current year, keeps those
// containing the query, and expands them into house numbers until limit
// addresses are collected. Street details are fetched in small concurrent
// batches; street order is preserved.
func (p *Provider) Search(ctx context.Context, q ports.AddressSearch, limit int) ([]model.Address, error) {
	if ports.SkipSearch(q, limit) {
		return []model.Address{}, nil
	}
	op := p.op("Search")

	ort, err := p.place(ctx)
	if err != nil {
		return nil, err
	}

	year := strconv.Itoa(p.opts.Now().Year())
	var streets []street
	if err := httpjson.Get(ctx, p.client, op, p.url("orte/%d/strassen", ort), url.Values{"jahr": {year}}, &streets); err != nil {
		return nil, err
	}

	var matched []street
	for _, s := range streets {
		if textmatch.Contains(s.Name, q.Street) {
			matched = append(matched, s)
		}
	}

	houseFilter := textmatch.Fold(q.HouseNumber)
	results := make([]model.Address, 0, limit)

	for start := 0; start < len(matched) && len(results) < limit; start += p.opts.DetailFetches {
		end := min(start+p.opts.DetailFetches, len(matched))
		batch := matched[start:end]
		details := make([]streetDetail, len(batch))

		g, gctx := errgroup.WithContext(ctx)
		for i, s := range batch {
			g.Go(func() error {
				return httpjson.Get(gctx, p.client, op, p.url("strassen/%d", s.ID), nil, &details[i])
			})
		}
		if err := g.Wait(); err != nil {
			return nil, err
		}

		for i, s := range batch {
			numbers := details[i].HouseNumbers
			sort.SliceStable(numbers, func(a, b int) bool {
				return lessHouseNumber(numbers[a].Number, numbers[b].Number)
			})
			for _, hn := range numbers {
				if len(results) == limit {
					break
				}
				if houseFilter != "" && !strings.Contains(textmatch.Fold(hn.Number), houseFilter) {
					continue
				}
				results = append(results, model.Address{
					ID:          model.AddressID(strconv.FormatInt(hn.ID, 10)),
					City:        p.opts.City.ID,
					Label:       s.Name + " " + hn.Number,
					Street:      s.Name,
					HouseNumber: hn.Number,
				})
			}
		}
	}

	logf(string(p.opts.City.ID), "search %q %q -> %d street(s), %d address(es)", q.Street, q.HouseNumber, len(matched), len(results))
	return results, nil
}

// lessHouseNumber orders "2" < "10" < "10a" < "10b" < "A1".
func lessHouseNumber(a, b string) bool {
	na, ra := splitHouseNumber(a)
	nb, rb := splitHouseNumber(b)
	if (na >= 0) != (nb >= 0) {
		return na >= 0
	}
	if na != nb {
		return na < nb
	}
	return ra < rb
}

// splitHouseNumber returns the leading number (-1 if none) and the rest.
func splitHouseNumber(s string) (int, string) {
	s = strings.TrimSpace(s)
	i := strings.IndexFunc(s, func(r rune) bool { return !unicode.IsDigit(r) })
	if i == -1 {
		i = len(s)
	}
	if i == 0 {
		return -1, strings.ToLower(s)
	}
	n, err := strconv.Atoi(s[:i])
	if err != nil {
		return -1, strings.ToLower(s)
	}
	return n, strings.ToLower(strings.TrimSpace(s[i:]))
}
