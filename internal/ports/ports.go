// Package ports describes the capabilities every city provider implements.
package ports

import (
	"context"
	"strings"
	"unicode"

	"github.com/tonneli/tonneli/internal/model"
)

// AddressSearch is the generic address query.
type AddressSearch struct {
	Street      string `json:"street" yaml:"street"`
	HouseNumber string `json:"house_number,omitempty" yaml:"house_number,omitempty"`
}

// NewAddressSearch trims both parts of the query.
func NewAddressSearch(street, houseNumber string) AddressSearch {
	return AddressSearch{Street: strings.TrimSpace(street), HouseNumber: strings.TrimSpace(houseNumber)}
}

// IsEmpty reports whether the street is blank.
func (q AddressSearch) IsEmpty() bool {
	return strings.TrimSpace(q.Street) == ""
}

// ParseAddressInput splits free text like "Hauptstraße 10a" into street and
// house number. The last word is treated as the house number when it
// contains a digit and at least one street word precedes it.
func ParseAddressInput(input string) AddressSearch {
	parts := strings.Fields(input)
	if len(parts) == 0 {
		return AddressSearch{}
	}
	last := parts[len(parts)-1]
	if len(parts) > 1 && strings.IndexFunc(last, unicode.IsDigit) >= 0 {
		return AddressSearch{Street: strings.Join(parts[:len(parts)-1], " "), HouseNumber: last}
	}
	return AddressSearch{Street: strings.Join(parts, " ")}
}

// AddressPort searches addresses within one city.
//
// Search returns an empty result without contacting the backend when limit
// is not positive or the street is blank. Otherwise it returns at most limit
// addresses in backend order, or an *apperr.Error.
type AddressPort interface {
	City() model.CityMeta
	Search(ctx context.Context, q AddressSearch, limit int) ([]model.Address, error)
}

// SchedulePort fetches pickup events for addresses of one city.
//
// Schedule returns only events within the range, sorted ascending by date.
// An id the provider cannot interpret fails with apperr.KindInvalidAddressID;
// an empty result always means "no pickups".
type SchedulePort interface {
	City() model.CityMeta
	Schedule(ctx context.Context, id model.AddressID, r model.DateRange) ([]model.PickupEvent, error)
}

// SkipSearch reports whether a search must short-circuit to an empty result.
func SkipSearch(q AddressSearch, limit int) bool {
	return limit <= 0 || q.IsEmpty()
}

// Cap truncates addresses to at most limit entries.
func Cap(addrs []model.Address, limit int) []model.Address {
	if limit < 0 {
		limit = 0
	}
	if len(addrs) > limit {
		return addrs[:limit]
	}
	return addrs
}

// FinishSchedule drops events outside r and sorts the rest ascending.
// Adapters call it on the raw translated backend result.
func FinishSchedule(events []model.PickupEvent, r model.DateRange) []model.PickupEvent {
	events = model.FilterRange(events, r)
	model.SortEvents(events)
	if events == nil {
		return []model.PickupEvent{}
	}
	return events
}
