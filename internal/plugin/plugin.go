// Package plugin holds the registry resolving a city to its provider bundle.
package plugin

import (
	"fmt"

	"github.com/tonneli/tonneli/internal/apperr"
	"github.com/tonneli/tonneli/internal/model"
	"github.com/tonneli/tonneli/internal/ports"
)

// CityPlugin bundles the ports implementing one city.
type CityPlugin struct {
	Meta     model.CityMeta
	Address  ports.AddressPort
	Schedule ports.SchedulePort
}

func (p CityPlugin) validate() error {
	if p.Meta.ID == "" {
		return fmt.Errorf("plugin %q: empty city id", p.Meta.Name)
	}
	if p.Address == nil || p.Schedule == nil {
		return fmt.Errorf("plugin %q: missing port", p.Meta.ID)
	}
	if got := p.Address.City(); got != p.Meta {
		return fmt.Errorf("plugin %q: address port reports %+v", p.Meta.ID, got)
	}
	if got := p.Schedule.City(); got != p.Meta {
		return fmt.Errorf("plugin %q: schedule port reports %+v", p.Meta.ID, got)
	}
	return nil
}

// Registry resolves plugins by city id. It is immutable after New and safe
// for concurrent use.
type Registry struct {
	order   []model.CityID
	plugins map[model.CityID]CityPlugin
}

// New builds a registry. Duplicate ids and bundles whose ports disagree
// with the bundle metadata are rejected.
func New(plugins ...CityPlugin) (*Registry, error) {
	r := &Registry{
		order:   make([]model.CityID, 0, len(plugins)),
		plugins: make(map[model.CityID]CityPlugin, len(plugins)),
	}
	for _, p := range plugins {
		if err := p.validate(); err != nil {
			return nil, err
		}
		if _, dup := r.plugins[p.Meta.ID]; dup {
			return nil, fmt.Errorf("plugin %q registered twice", p.Meta.ID)
		}
		r.plugins[p.Meta.ID] = p
		r.order = append(r.order, p.Meta.ID)
		logf(string(p.Meta.ID), "registered %q", p.Meta.Name)
	}
	return r, nil
}

// MustNew is New for static plugin lists; it panics on error.
func MustNew(plugins ...CityPlugin) *Registry {
	r, err := New(plugins...)
	if err != nil {
		panic(err)
	}
	return r
}

// Cities returns the metadata of every registered city in registration order.
func (r *Registry) Cities() []model.CityMeta {
	out := make([]model.CityMeta, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.plugins[id].Meta)
	}
	return out
}

// Plugin returns the bundle for city or an apperr.KindUnsupportedCity error.
func (r *Registry) Plugin(city model.CityID) (CityPlugin, error) {
	p, ok := r.plugins[city]
	if !ok {
		return CityPlugin{}, apperr.New(apperr.KindUnsupportedCity, "plugin.Resolve", string(city))
	}
	return p, nil
}
