package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tonneli/tonneli/internal/apperr"
	"github.com/tonneli/tonneli/internal/export"
	"github.com/tonneli/tonneli/internal/model"
	"github.com/tonneli/tonneli/internal/plugin"
	"github.com/tonneli/tonneli/internal/ports"
	"github.com/tonneli/tonneli/internal/service"
)

var cologne = model.CityMeta{ID: model.Cologne, Name: "Köln"}

// stubCity implements both ports with canned answers.
type stubCity struct {
	mu        sync.Mutex
	lastQuery ports.AddressSearch
	lastLimit int
	lastRange model.DateRange
	err       error
}

func (s *stubCity) City() model.CityMeta { return cologne }

func (s *stubCity) Search(_ context.Context, q ports.AddressSearch, limit int) ([]model.Address, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastQuery, s.lastLimit = q, limit
	if s.err != nil {
		return nil, s.err
	}
	return []model.Address{{ID: "1", City: model.Cologne, Label: "Hauptstraße 10"}}, nil
}

func (s *stubCity) Schedule(_ context.Context, id model.AddressID, r model.DateRange) ([]model.PickupEvent, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastRange = r
	if s.err != nil {
		return nil, s.err
	}
	return []model.PickupEvent{
		{Date: model.MustDate(2025, 1, 2), Fraction: model.Residual},
		{Date: model.MustDate(2025, 1, 3), Fraction: model.Paper},
	}, nil
}

func (s *stubCity) last() (ports.AddressSearch, int, model.DateRange) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastQuery, s.lastLimit, s.lastRange
}

func (s *stubCity) fail(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.err = err
}

// syncBuffer is written by server goroutines and read by the test.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func newTestServer(t *testing.T) (*stubCity, *httptest.Server, *syncBuffer) {
	t.Helper()
	stub := &stubCity{}
	reg := plugin.MustNew(plugin.CityPlugin{Meta: cologne, Address: stub, Schedule: stub})

	logs := &syncBuffer{}
	s := New(service.New(reg), zerolog.New(logs), Options{
		Today: func() time.Time { return model.MustDate(2025, 1, 1) },
	})
	srv := httptest.NewServer(s.Handler())
	t.Cleanup(srv.Close)
	return stub, srv, logs
}

func getJSON(t *testing.T, url string, dst any) int {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, "application/json; charset=utf-8", resp.Header.Get("Content-Type"))
	if dst != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(dst))
	}
	return resp.StatusCode
}

func TestServer_Cities(t *testing.T) {
	_, srv, logs := newTestServer(t)

	var cities []model.CityMeta
	require.Equal(t, http.StatusOK, getJSON(t, srv.URL+"/cities", &cities))
	assert.Equal(t, []model.CityMeta{cologne}, cities)
	assert.Contains(t, logs.String(), `"path":"/cities"`)
	assert.Contains(t, logs.String(), `"req_id"`)
}

func TestServer_SearchAddresses(t *testing.T) {
	stub, srv, _ := newTestServer(t)

	var addrs []model.Address
	require.Equal(t, http.StatusOK, getJSON(t, srv.URL+"/cities/cologne/addresses?q=Hauptstra%C3%9Fe+10", &addrs))
	assert.Len(t, addrs, 1)
	q, limit, _ := stub.last()
	assert.Equal(t, ports.AddressSearch{Street: "Hauptstraße", HouseNumber: "10"}, q)
	assert.Equal(t, 10, limit)

	require.Equal(t, http.StatusOK, getJSON(t, srv.URL+"/cities/cologne/addresses?street=Ring&limit=500", &addrs))
	_, limit, _ = stub.last()
	assert.Equal(t, 100, limit)

	var body errorBody
	assert.Equal(t, http.StatusBadRequest, getJSON(t, srv.URL+"/cities/cologne/addresses?street=Ring&limit=x", &body))
}

func TestServer_Schedule(t *testing.T) {
	stub, srv, _ := newTestServer(t)

	var doc export.Document
	require.Equal(t, http.StatusOK, getJSON(t, srv.URL+"/cities/cologne/schedule?id=1&days=7&fraction=paper", &doc))
	_, _, rng := stub.last()
	assert.Equal(t, model.NextDays(model.MustDate(2025, 1, 1), 7), rng)
	assert.Equal(t, "Köln", doc.CityName)
	require.Len(t, doc.Events, 1)
	assert.Equal(t, "2025-01-03", doc.Events[0].Date)
	assert.Equal(t, "paper", doc.Events[0].Fraction)

	require.Equal(t, http.StatusOK, getJSON(t, srv.URL+"/cities/cologne/schedule?id=1&from=2025-02-01&to=2025-02-28", &doc))
	_, _, rng = stub.last()
	assert.Equal(t, model.DateRange{Start: model.MustDate(2025, 2, 1), End: model.MustDate(2025, 2, 28)}, rng)
}

func TestServer_ScheduleErrors(t *testing.T) {
	stub, srv, _ := newTestServer(t)

	cases := []struct {
		name string
		path string
		want int
		kind string
	}{
		{"missing id", "/cities/cologne/schedule", http.StatusBadRequest, ""},
		{"bad date", "/cities/cologne/schedule?id=1&from=01.02.2025", http.StatusBadRequest, ""},
		{"inverted range", "/cities/cologne/schedule?id=1&from=2025-02-10&to=2025-02-01", http.StatusBadRequest, "invalid date range"},
		{"unknown fraction", "/cities/cologne/schedule?id=1&fraction=textile", http.StatusBadRequest, "unknown fraction"},
		{"unsupported city", "/cities/berlin/schedule?id=1", http.StatusNotFound, "unsupported city"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var body errorBody
			assert.Equal(t, tc.want, getJSON(t, srv.URL+tc.path, &body))
			assert.NotEmpty(t, body.Error)
			assert.Equal(t, tc.kind, body.Kind)
		})
	}

	stub.fail(apperr.Status("cologne.Schedule", 503))
	var body errorBody
	assert.Equal(t, http.StatusBadGateway, getJSON(t, srv.URL+"/cities/cologne/schedule?id=1", &body))
	assert.Equal(t, 503, body.Status)
}

func TestStatusFor_Kinds(t *testing.T) {
	assert.Equal(t, http.StatusNotFound, StatusFor(apperr.New(apperr.KindAddressNotFound, "op", "")))
	assert.Equal(t, http.StatusBadRequest, StatusFor(apperr.New(apperr.KindInvalidAddressID, "op", "")))
	assert.Equal(t, http.StatusBadGateway, StatusFor(apperr.New(apperr.KindParse, "op", "")))
	assert.Equal(t, http.StatusInternalServerError, StatusFor(apperr.New(apperr.KindInternal, "op", "")))
	assert.Equal(t, http.StatusInternalServerError, StatusFor(errors.New("boom")))
	assert.Equal(t, http.StatusBadRequest, StatusFor(apperr.User("bad flag")))
}
