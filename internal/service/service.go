// Package service is the single entry point clients use to query any
// registered city.
package service

import (
	"context"

	"github.com/tonneli/tonneli/internal/model"
	"github.com/tonneli/tonneli/internal/plugin"
	"github.com/tonneli/tonneli/internal/ports"
)

// Facade is the query surface shared by Service and the wrappers around it.
type Facade interface {
	Cities() []model.CityMeta
	SearchAddresses(ctx context.Context, city model.CityID, q ports.AddressSearch, limit int) ([]model.Address, error)
	ScheduleFor(ctx context.Context, city model.CityID, id model.AddressID, r model.DateRange) ([]model.PickupEvent, error)
}

// Service routes calls to the provider registered for a city. It holds no
// mutable state and is safe for concurrent use.
type Service struct {
	registry *plugin.Registry
}

var _ Facade = (*Service)(nil)

// New creates a service bound to registry.
func New(registry *plugin.Registry) *Service {
	return &Service{registry: registry}
}

// Cities lists the registered cities.
func (s *Service) Cities() []model.CityMeta {
	return s.registry.Cities()
}

// SearchAddresses searches addresses in city.
func (s *Service) SearchAddresses(ctx context.Context, city model.CityID, q ports.AddressSearch, limit int) ([]model.Address, error) {
	p, err := s.registry.Plugin(city)
	if err != nil {
		return nil, err
	}
	return p.Address.Search(ctx, q, limit)
}

// ScheduleFor loads the pickup schedule of an address within r.
// Inverted ranges are rejected with apperr.KindInvalidRange before any
// backend call.
func (s *Service) ScheduleFor(ctx context.Context, city model.CityID, id model.AddressID, r model.DateRange) ([]model.PickupEvent, error) {
	p, err := s.registry.Plugin(city)
	if err != nil {
		return nil, err
	}
	if err := r.Validate(); err != nil {
		return nil, err
	}
	return p.Schedule.Schedule(ctx, id, r)
}
