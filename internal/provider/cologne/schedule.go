package cologne

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/tonneli/tonneli/internal/model"
	"github.com/tonneli/tonneli/internal/ports"
	"github.com/tonneli/tonneli/internal/provider/httpjson"
)

// SchedulePort reads the AWB calendar.
type SchedulePort struct {
	client  *http.Client
	baseURL string
	meta    model.CityMeta
}

var _ ports.SchedulePort = (*SchedulePort)(nil)

// NewSchedulePort creates a schedule port bound to the given HTTP client.
func NewSchedulePort(client *http.Client, opts Options) *SchedulePort {
	return &SchedulePort{client: client, baseURL: opts.baseURL(), meta: Meta()}
}

func (p *SchedulePort) City() model.CityMeta { return p.meta }

func (p *SchedulePort) Schedule(ctx context.Context, id model.AddressID, r model.DateRange) ([]model.PickupEvent, error) {
	streetCode, number, addition, err := decodeAddressID(id)
	if err != nil {
		return nil, err
	}

	w := requestWindow(r)
	query := url.Values{
		"building_number": {number},
		"street_code":     {streetCode},
		"start_year":      {strconv.Itoa(w.startYear)},
		"end_year":        {strconv.Itoa(w.endYear)},
		"start_month":     {strconv.Itoa(int(w.startMonth))},
		"end_month":       {strconv.Itoa(int(w.endMonth))},
		"form":            {"json"},
	}
	if addition != "" {
		query.Set("building_number_addition", addition)
	}

	var cal calendarResponse
	if err := httpjson.Get(ctx, p.client, "cologne.Schedule", httpjson.JoinURL(p.baseURL, "calendar"), query, &cal); err != nil {
		return nil, err
	}

	events := make([]model.PickupEvent, 0, len(cal.Data))
	for _, e := range cal.Data {
		date, err := model.NewDate(e.Year, time.Month(e.Month), e.Day)
		if err != nil {
			return nil, err
		}
		fraction, note := mapType(e.Type)
		events = append(events, model.PickupEvent{Date: date, Fraction: fraction, Note: note})
	}

	events = ports.FinishSchedule(events, r)
	logf(string(p.meta.ID), "schedule %s %s -> %d event(s) of %d returned", id, r, len(events), len(cal.Data))
	return events, nil
}

// window is the year/month span sent to /calendar.
type window struct {
	startYear, endYear   int
	startMonth, endMonth time.Month
}

// requestWindow covers r with the calendar's year/month granularity. Within
// one year only the enclosing month span is requested; across years both
// endpoint years are requested in full and the surplus is filtered locally.
func requestWindow(r model.DateRange) window {
	w := window{startYear: r.Start.Year(), endYear: r.End.Year()}
	if w.startYear == w.endYear {
		w.startMonth, w.endMonth = r.Start.Month(), r.End.Month()
	} else {
		w.startMonth, w.endMonth = time.January, time.December
	}
	return w
}
