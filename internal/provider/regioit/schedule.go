package regioit

import (
	"context"
	"net/url"
	"strconv"
	"time"

	"github.com/tonneli/tonneli/internal/model"
	"github.com/tonneli/tonneli/internal/ports"
	"github.com/tonneli/tonneli/internal/provider/httpjson"
)

var _ ports.SchedulePort = (*Provider)(nil)

// Schedule loads the fractions offered at the house number, then all their
// pickup dates, and filters them to r.
func (p *Provider) Schedule(ctx context.Context, id model.AddressID, r model.DateRange) ([]model.PickupEvent, error) {
	op := p.op("Schedule")
	houseID, err := parseAddressID(op, id)
	if err != nil {
		return nil, err
	}

	var fractions []fraction
	if err := httpjson.Get(ctx, p.client, op, p.url("hausnummern/%d/fraktionen", houseID), nil, &fractions); err != nil {
		return nil, err
	}

	names := make(map[int64]string, len(fractions))
	query := url.Values{}
	for _, f := range fractions {
		names[f.ID] = f.Name
		query.Add("fraktion", strconv.FormatInt(f.ID, 10))
	}

	var pickups []pickup
	if err := httpjson.Get(ctx, p.client, op, p.url("hausnummern/%d/termine", houseID), query, &pickups); err != nil {
		return nil, err
	}

	events := make([]model.PickupEvent, 0, len(pickups))
	for _, pu := range pickups {
		date, err := model.ParseDate(pu.Date)
		if err != nil {
			return nil, err
		}
		if !r.Contains(date) {
			continue
		}
		events = append(events, translatePickup(date, pu.District, names))
	}

	events = ports.FinishSchedule(events, r)
	logf(string(p.opts.City.ID), "schedule %s %s -> %d event(s) of %d returned", id, r, len(events), len(pickups))
	return events, nil
}

func translatePickup(date time.Time, d *district, names map[int64]string) model.PickupEvent {
	if d == nil {
		return model.PickupEvent{Date: date, Fraction: model.Other("Unknown fraction")}
	}
	name, ok := names[d.FractionID]
	if !ok {
		return model.PickupEvent{Date: date, Fraction: model.Other("Fraction " + strconv.FormatInt(d.FractionID, 10))}
	}
	return model.PickupEvent{Date: date, Fraction: MapFraction(name), Note: name}
}
