package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/hlog"

	"github.com/tonneli/tonneli/internal/apperr"
	"github.com/tonneli/tonneli/internal/export"
	"github.com/tonneli/tonneli/internal/model"
	"github.com/tonneli/tonneli/internal/ports"
)

type errorBody struct {
	Error  string `json:"error"`
	Kind   string `json:"kind,omitempty"`
	Status int    `json:"backend_status,omitempty"`
}

func (s *Server) listCities(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.facade.Cities())
}

func (s *Server) searchAddresses(w http.ResponseWriter, r *http.Request) {
	city := model.CityID(chi.URLParam(r, "city"))
	query := r.URL.Query()

	q := ports.NewAddressSearch(query.Get("street"), query.Get("house"))
	if q.IsEmpty() && query.Get("q") != "" {
		q = ports.ParseAddressInput(query.Get("q"))
	}

	limit := s.opts.DefaultLimit
	if raw := query.Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			s.writeError(w, r, apperr.Userf("invalid limit %q", raw))
			return
		}
		limit = min(n, s.opts.MaxLimit)
	}

	addrs, err := s.facade.SearchAddresses(r.Context(), city, q, limit)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, addrs)
}

func (s *Server) schedule(w http.ResponseWriter, r *http.Request) {
	city := model.CityID(chi.URLParam(r, "city"))
	query := r.URL.Query()

	id := strings.TrimSpace(query.Get("id"))
	if id == "" {
		s.writeError(w, r, apperr.User("missing id"))
		return
	}
	rng, err := s.parseRange(query.Get("from"), query.Get("to"), query.Get("days"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	var only []model.Fraction
	for _, raw := range query["fraction"] {
		f, err := model.ParseFraction(raw)
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		only = append(only, f)
	}

	events, err := s.facade.ScheduleFor(r.Context(), city, model.AddressID(id), rng)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if len(only) > 0 {
		events = model.FilterFractions(events, only...)
	}

	meta := model.CityMeta{ID: city}
	for _, c := range s.facade.Cities() {
		if c.ID == city {
			meta = c
		}
	}
	writeJSON(w, http.StatusOK, export.NewDocument(export.Schedule{
		City:    meta,
		Address: model.Address{ID: model.AddressID(id), City: city},
		Range:   rng,
		Events:  events,
	}))
}

// parseRange resolves from/to/days into an inclusive range. from defaults
// to today; to defaults to from plus days.
func (s *Server) parseRange(from, to, days string) (model.DateRange, error) {
	today := model.Today
	if s.opts.Today != nil {
		today = s.opts.Today
	}
	n := s.opts.DefaultDays
	if days != "" {
		v, err := strconv.Atoi(days)
		if err != nil || v <= 0 {
			return model.DateRange{}, apperr.Userf("invalid days %q", days)
		}
		n = v
	}
	return model.ResolveRange(today(), from, to, n)
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := StatusFor(err)
	body := errorBody{Error: err.Error()}
	var ae *apperr.Error
	if errors.As(err, &ae) {
		body.Kind = ae.Kind.String()
		body.Status = ae.Status
	}
	if status >= http.StatusInternalServerError {
		hlog.FromRequest(r).Error().Err(err).Msg("request failed")
	}
	writeJSON(w, status, body)
}

// StatusFor maps an error to the HTTP status returned to clients.
func StatusFor(err error) int {
	if apperr.IsUser(err) {
		return http.StatusBadRequest
	}
	switch apperr.KindOf(err) {
	case apperr.KindUnsupportedCity, apperr.KindAddressNotFound:
		return http.StatusNotFound
	case apperr.KindInvalidAddressID, apperr.KindInvalidRange, apperr.KindUnknownFraction:
		return http.StatusBadRequest
	case apperr.KindNetwork, apperr.KindParse:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
