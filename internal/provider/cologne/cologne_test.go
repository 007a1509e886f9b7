package cologne

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tonneli/tonneli/internal/apperr"
	"github.com/tonneli/tonneli/internal/model"
	"github.com/tonneli/tonneli/internal/plugin"
	"github.com/tonneli/tonneli/internal/ports"
)

// fakeAWB serves /api/streets and /api/calendar from canned data and
// records every query it receives.
type fakeAWB struct {
	streets  []streetEntry
	calendar []calendarEntry
	status   int

	hits    atomic.Int32
	queries chan url.Values
}

func newFakeAWB(t *testing.T) (*fakeAWB, *httptest.Server) {
	t.Helper()
	f := &fakeAWB{queries: make(chan url.Values, 16)}

	r := chi.NewRouter()
	r.Route("/api", func(r chi.Router) {
		r.Get("/streets", func(w http.ResponseWriter, req *http.Request) {
			f.serve(w, req, streetsResponse{Data: f.streets})
		})
		r.Get("/calendar", func(w http.ResponseWriter, req *http.Request) {
			f.serve(w, req, calendarResponse{Data: f.calendar})
		})
	})

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return f, srv
}

func (f *fakeAWB) serve(w http.ResponseWriter, req *http.Request, body any) {
	f.hits.Add(1)
	f.queries <- req.URL.Query()
	if f.status != 0 {
		w.WriteHeader(f.status)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(body)
}

func newPorts(srv *httptest.Server) (*AddressPort, *SchedulePort) {
	opts := Options{BaseURL: srv.URL + "/api"}
	return NewAddressPort(srv.Client(), opts), NewSchedulePort(srv.Client(), opts)
}

func hauptstrasse(n int) []streetEntry {
	out := make([]streetEntry, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, streetEntry{
			StreetName:     "Hauptstr.",
			BuildingNumber: "10",
			StreetCode:     fmt.Sprintf("%d", 1000+i),
			UserStreetName: "Hauptstraße",
		})
	}
	return out
}

func TestSearch_HauptstrasseScenario(t *testing.T) {
	fake, srv := newFakeAWB(t)
	fake.streets = hauptstrasse(8)
	fake.streets[1].BuildingNumberAddition = "a"
	addrPort, _ := newPorts(srv)

	got, err := addrPort.Search(context.Background(), ports.NewAddressSearch("Hauptstraße", "10"), 5)
	require.NoError(t, err)
	require.Len(t, got, 5)

	q := <-fake.queries
	assert.Equal(t, "Hauptstraße", q.Get("street_name"))
	assert.Equal(t, "10", q.Get("building_number"))
	assert.Equal(t, "json", q.Get("form"))
	assert.True(t, q.Has("building_number_addition"))

	for _, a := range got {
		assert.Equal(t, model.Cologne, a.City)
		assert.Contains(t, a.Label, "Hauptstraße")
		assert.Contains(t, a.Label, "10")
	}
	assert.Equal(t, model.AddressID("1000:10:"), got[0].ID)
	assert.Equal(t, model.AddressID("1001:10:a"), got[1].ID)
	assert.Equal(t, "10a", got[1].HouseNumber)
	assert.Equal(t, "Hauptstraße 10a", got[1].Label)
}

func TestSearch_FallsBackToBackendSpelling(t *testing.T) {
	fake, srv := newFakeAWB(t)
	fake.streets = []streetEntry{{StreetName: "Ringstr.", BuildingNumber: "3", StreetCode: "77", UserBuildingNumber: "3 "}}
	addrPort, _ := newPorts(srv)

	got, err := addrPort.Search(context.Background(), ports.NewAddressSearch("Ring", ""), 10)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Ringstr. 3", got[0].Label)
	assert.Equal(t, "", (<-fake.queries).Get("building_number"))
}

func TestSearch_ShortCircuitsWithoutBackendCall(t *testing.T) {
	fake, srv := newFakeAWB(t)
	fake.streets = hauptstrasse(3)
	addrPort, _ := newPorts(srv)

	for _, tc := range []struct {
		q     ports.AddressSearch
		limit int
	}{
		{ports.NewAddressSearch("Hauptstraße", "10"), 0},
		{ports.NewAddressSearch("Hauptstraße", "10"), -2},
		{ports.NewAddressSearch("", "10"), 5},
		{ports.AddressSearch{Street: " \t "}, 5},
	} {
		got, err := addrPort.Search(context.Background(), tc.q, tc.limit)
		require.NoError(t, err)
		assert.NotNil(t, got)
		assert.Empty(t, got)
	}
	assert.Zero(t, fake.hits.Load())
}

func TestSearch_BackendFailure(t *testing.T) {
	fake, srv := newFakeAWB(t)
	fake.status = http.StatusInternalServerError
	addrPort, _ := newPorts(srv)

	got, err := addrPort.Search(context.Background(), ports.NewAddressSearch("Hauptstraße", ""), 5)
	assert.Nil(t, got)
	assert.ErrorIs(t, err, apperr.ErrNetwork)
}

func TestSearch_RejectsEntriesWithoutKeys(t *testing.T) {
	fake, srv := newFakeAWB(t)
	fake.streets = []streetEntry{{StreetName: "Ringstr.", BuildingNumber: "3"}}
	addrPort, _ := newPorts(srv)

	_, err := addrPort.Search(context.Background(), ports.NewAddressSearch("Ring", ""), 5)
	assert.ErrorIs(t, err, apperr.ErrParse)
}

func TestSchedule_SpanningYearsRequestsFullYears(t *testing.T) {
	fake, srv := newFakeAWB(t)
	fake.calendar = []calendarEntry{
		{Day: 20, Month: 1, Year: 2025, Type: "blue"},
		{Day: 2, Month: 1, Year: 2024, Type: "grey"},
		{Day: 16, Month: 1, Year: 2025, Type: "grey"},
		{Day: 15, Month: 1, Year: 2025, Type: "brown"},
		{Day: 14, Month: 12, Year: 2024, Type: "grey"},
		{Day: 15, Month: 12, Year: 2024, Type: "wertstoff"},
		{Day: 30, Month: 12, Year: 2025, Type: "grey"},
		{Day: 31, Month: 12, Year: 2024, Type: "xyz"},
	}
	_, schedPort := newPorts(srv)

	r := model.DateRange{Start: model.MustDate(2024, 12, 15), End: model.MustDate(2025, 1, 15)}
	got, err := schedPort.Schedule(context.Background(), "4711:10:a", r)
	require.NoError(t, err)

	q := <-fake.queries
	assert.Equal(t, "2024", q.Get("start_year"))
	assert.Equal(t, "2025", q.Get("end_year"))
	assert.Equal(t, "1", q.Get("start_month"))
	assert.Equal(t, "12", q.Get("end_month"))
	assert.Equal(t, "4711", q.Get("street_code"))
	assert.Equal(t, "10", q.Get("building_number"))
	assert.Equal(t, "a", q.Get("building_number_addition"))

	assert.Equal(t, []model.PickupEvent{
		{Date: model.MustDate(2024, 12, 15), Fraction: model.Plastic, Note: "Leichtverpackungen / Wertstoffe"},
		{Date: model.MustDate(2024, 12, 31), Fraction: model.Other("xyz"), Note: "Fraktion xyz"},
		{Date: model.MustDate(2025, 1, 15), Fraction: model.Organic, Note: "Bioabfall"},
	}, got)
}

func TestSchedule_SameYearRequestsMonthSpan(t *testing.T) {
	fake, srv := newFakeAWB(t)
	_, schedPort := newPorts(srv)

	r := model.DateRange{Start: model.MustDate(2025, 3, 10), End: model.MustDate(2025, 5, 2)}
	got, err := schedPort.Schedule(context.Background(), "4711:10:", r)
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)

	q := <-fake.queries
	assert.Equal(t, "2025", q.Get("start_year"))
	assert.Equal(t, "2025", q.Get("end_year"))
	assert.Equal(t, "3", q.Get("start_month"))
	assert.Equal(t, "5", q.Get("end_month"))
	assert.False(t, q.Has("building_number_addition"))
}

func TestSchedule_InvalidAddressID(t *testing.T) {
	fake, srv := newFakeAWB(t)
	_, schedPort := newPorts(srv)
	r := model.NextDays(model.MustDate(2025, 1, 1), 30)

	for _, id := range []model.AddressID{"", "4711", ":10:", "4711::", "123456", "a:b:c:d"} {
		got, err := schedPort.Schedule(context.Background(), id, r)
		assert.Nil(t, got, "id %q", id)
		assert.ErrorIs(t, err, apperr.ErrInvalidAddressID, "id %q", id)
	}
	assert.Zero(t, fake.hits.Load())

	// addition may be omitted entirely
	_, err := schedPort.Schedule(context.Background(), "4711:10", r)
	assert.NoError(t, err)
}

func TestSchedule_InvalidCalendarDate(t *testing.T) {
	fake, srv := newFakeAWB(t)
	fake.calendar = []calendarEntry{{Day: 30, Month: 2, Year: 2025, Type: "grey"}}
	_, schedPort := newPorts(srv)

	_, err := schedPort.Schedule(context.Background(), "4711:10:", model.NextDays(model.MustDate(2025, 2, 1), 60))
	assert.ErrorIs(t, err, apperr.ErrInternal)
}

func TestSchedule_DecodeFailureIsParseError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"data":[{"day":"x"}]}`))
	}))
	defer srv.Close()
	_, schedPort := newPorts(srv)

	_, err := schedPort.Schedule(context.Background(), "4711:10:", model.NextDays(model.MustDate(2025, 2, 1), 60))
	assert.ErrorIs(t, err, apperr.ErrParse)
}

func TestMapType_Codes(t *testing.T) {
	tests := []struct {
		raw  string
		want model.Fraction
		note string
	}{
		{"grey", model.Residual, "Restabfall"},
		{"GREY", model.Residual, "Restabfall"},
		{"blue", model.Paper, "Papier / Pappe"},
		{"wertstoff", model.Plastic, "Leichtverpackungen / Wertstoffe"},
		{"brown", model.Organic, "Bioabfall"},
		{"xyz", model.Other("xyz"), "Fraktion xyz"},
		{"", model.Other(""), "Fraktion "},
	}
	for _, tt := range tests {
		f, note := mapType(tt.raw)
		assert.Equal(t, tt.want, f, tt.raw)
		assert.Equal(t, tt.note, note, tt.raw)
	}
}

func TestRequestWindow_Bounds(t *testing.T) {
	w := requestWindow(model.DateRange{Start: model.MustDate(2024, 12, 15), End: model.MustDate(2025, 1, 15)})
	assert.Equal(t, window{2024, 2025, time.January, time.December}, w)

	w = requestWindow(model.DateRange{Start: model.MustDate(2025, 2, 3), End: model.MustDate(2025, 2, 4)})
	assert.Equal(t, window{2025, 2025, time.February, time.February}, w)
}

func TestPlugin_Bundle(t *testing.T) {
	p := Plugin(http.DefaultClient, Options{})
	assert.Equal(t, model.CityMeta{ID: "cologne", Name: "Köln"}, p.Meta)

	reg, err := plugin.New(p)
	require.NoError(t, err)
	got, err := reg.Plugin(model.Cologne)
	require.NoError(t, err)
	assert.Equal(t, p.Meta, got.Address.City())
	assert.Equal(t, DefaultBaseURL, got.Address.(*AddressPort).baseURL)
	assert.True(t, strings.HasPrefix(NewSchedulePort(nil, Options{BaseURL: " http://x "}).baseURL, "http://x"))
}
