package cologne

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/tonneli/tonneli/internal/apperr"
	"github.com/tonneli/tonneli/internal/model"
	"github.com/tonneli/tonneli/internal/ports"
	"github.com/tonneli/tonneli/internal/provider/httpjson"
)

// AddressPort searches AWB buildings.
type AddressPort struct {
	client  *http.Client
	baseURL string
	meta    model.CityMeta
}

var _ ports.AddressPort = (*AddressPort)(nil)

// NewAddressPort creates an address port bound to the given HTTP client.
func NewAddressPort(client *http.Client, opts Options) *AddressPort {
	return &AddressPort{client: client, baseURL: opts.baseURL(), meta: Meta()}
}

func (p *AddressPort) City() model.CityMeta { return p.meta }

// Search queries /streets. AWB usually needs a building number to return
// anything; an empty one is still sent so the call shape matches other cities.
func (p *AddressPort) Search(ctx context.Context, q ports.AddressSearch, limit int) ([]model.Address, error) {
	if ports.SkipSearch(q, limit) {
		return []model.Address{}, nil
	}

	query := url.Values{
		"street_name":              {strings.TrimSpace(q.Street)},
		"building_number":          {strings.TrimSpace(q.HouseNumber)},
		"building_number_addition": {""},
		"form":                     {"json"},
	}

	var resp streetsResponse
	if err := httpjson.Get(ctx, p.client, "cologne.Search", httpjson.JoinURL(p.baseURL, "streets"), query, &resp); err != nil {
		return nil, err
	}

	entries := resp.Data
	if len(entries) > limit {
		entries = entries[:limit]
	}

	results := make([]model.Address, 0, len(entries))
	for _, e := range entries {
		if strings.TrimSpace(e.StreetCode) == "" || strings.TrimSpace(e.BuildingNumber) == "" {
			return nil, apperr.New(apperr.KindParse, "cologne.Search", "street entry without street_code or building_number")
		}
		street := firstNonEmpty(e.UserStreetName, e.StreetName)
		house := firstNonEmpty(e.UserBuildingNumber, e.BuildingNumber+e.BuildingNumberAddition)

		results = append(results, model.Address{
			ID:          encodeAddressID(e.StreetCode, e.BuildingNumber, e.BuildingNumberAddition),
			City:        p.meta.ID,
			Label:       street + " " + house,
			Street:      street,
			HouseNumber: house,
		})
	}

	logf(string(p.meta.ID), "search %q %q -> %d address(es)", q.Street, q.HouseNumber, len(results))
	return results, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if s := strings.TrimSpace(v); s != "" {
			return s
		}
	}
	return ""
}

func encodeAddressID(streetCode, number, addition string) model.AddressID {
	return model.AddressID(strings.TrimSpace(streetCode) + ":" + strings.TrimSpace(number) + ":" + strings.TrimSpace(addition))
}

// decodeAddressID reverses encodeAddressID. The addition segment may be
// missing or empty; street code and building number may not.
func decodeAddressID(id model.AddressID) (streetCode, number, addition string, err error) {
	parts := strings.Split(string(id), ":")
	if len(parts) < 2 || len(parts) > 3 {
		return "", "", "", apperr.New(apperr.KindInvalidAddressID, "cologne.Schedule", string(id))
	}
	streetCode = strings.TrimSpace(parts[0])
	number = strings.TrimSpace(parts[1])
	if len(parts) == 3 {
		addition = strings.TrimSpace(parts[2])
	}
	if streetCode == "" || number == "" {
		return "", "", "", apperr.New(apperr.KindInvalidAddressID, "cologne.Schedule", string(id))
	}
	return streetCode, number, addition, nil
}
