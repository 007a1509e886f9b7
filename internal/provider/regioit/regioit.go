// Package regioit implements the address and schedule ports for cities
// served by the RegioIT "AbfallNavi" REST backend (Nuremberg, Aachen, …).
//
// Every city runs the same API under its own host; addresses are keyed by
// the backend's numeric house-number id, which is used verbatim as the
// AddressID.
package regioit

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/tonneli/tonneli/internal/apperr"
	"github.com/tonneli/tonneli/internal/model"
	"github.com/tonneli/tonneli/internal/plugin"
	"github.com/tonneli/tonneli/internal/provider/httpjson"
	"github.com/tonneli/tonneli/internal/textmatch"
)

// defaultDetailFetches bounds concurrent /strassen/{id} requests per search.
const defaultDetailFetches = 4

// Options configures one RegioIT city.
type Options struct {
	City    model.CityMeta
	BaseURL string

	// PlaceID is the backend "ort" id. When zero it is discovered through
	// /orte by matching PlaceName.
	PlaceID   int64
	PlaceName string

	// DetailFetches bounds concurrent street detail requests (default 4).
	DetailFetches int

	// Now supplies the current time for the street list year (default time.Now).
	Now func() time.Time
}

// Provider implements both ports for one RegioIT city.
type Provider struct {
	client *http.Client
	opts   Options

	placeID   atomic.Int64
	discovery singleflight.Group
}

// New creates a provider. client is shared read-only.
func New(client *http.Client, opts Options) *Provider {
	if opts.DetailFetches <= 0 {
		opts.DetailFetches = defaultDetailFetches
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	opts.BaseURL = strings.TrimSpace(opts.BaseURL)
	p := &Provider{client: client, opts: opts}
	p.placeID.Store(opts.PlaceID)
	return p
}

// Plugin wraps a provider into a registry bundle.
func Plugin(client *http.Client, opts Options) plugin.CityPlugin {
	p := New(client, opts)
	return plugin.CityPlugin{Meta: opts.City, Address: p, Schedule: p}
}

func (p *Provider) City() model.CityMeta { return p.opts.City }

func (p *Provider) op(name string) string {
	return string(p.opts.City.ID) + "." + name
}

func (p *Provider) url(format string, args ...any) string {
	return httpjson.JoinURL(p.opts.BaseURL, fmt.Sprintf(format, args...))
}

// place returns the configured or discovered ort id. Concurrent callers
// share one /orte request; each still honours its own context. A failed
// discovery is not cached, so the next call retries.
func (p *Provider) place(ctx context.Context) (int64, error) {
	if id := p.placeID.Load(); id != 0 {
		return id, nil
	}
	ch := p.discovery.DoChan("orte", func() (any, error) {
		// Detached from the first caller so its cancellation does not fail
		// the others; the client timeout still bounds the request.
		return p.discover(context.WithoutCancel(ctx))
	})
	select {
	case <-ctx.Done():
		return 0, apperr.Wrap(apperr.KindNetwork, p.op("places"), ctx.Err())
	case res := <-ch:
		if res.Err != nil {
			return 0, res.Err
		}
		return res.Val.(int64), nil
	}
}

func (p *Provider) discover(ctx context.Context) (int64, error) {
	var places []place
	if err := httpjson.Get(ctx, p.client, p.op("places"), p.url("orte"), nil, &places); err != nil {
		return 0, err
	}
	want := textmatch.Fold(p.opts.PlaceName)
	for _, pl := range places {
		if textmatch.Fold(pl.Name) == want {
			p.placeID.Store(pl.ID)
			logf(string(p.opts.City.ID), "discovered place %q -> %d", pl.Name, pl.ID)
			return pl.ID, nil
		}
	}
	return 0, apperr.New(apperr.KindInternal, p.op("places"),
		fmt.Sprintf("place %q not offered by backend", p.opts.PlaceName))
}

// parseAddressID accepts only positive decimal house-number ids.
func parseAddressID(op string, id model.AddressID) (int64, error) {
	n, err := strconv.ParseInt(strings.TrimSpace(string(id)), 10, 64)
	if err != nil || n <= 0 {
		return 0, apperr.New(apperr.KindInvalidAddressID, op, string(id))
	}
	return n, nil
}
