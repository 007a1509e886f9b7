// Package httpapi exposes the facade as a small read-only JSON API.
//
//	GET /cities
//	GET /cities/{city}/addresses?street=&house=&q=&limit=
//	GET /cities/{city}/schedule?id=&from=&to=&days=&fraction=
//	GET /healthz
package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/hlog"

	"github.com/tonneli/tonneli/internal/service"
)

const (
	readHeaderTimeout = 5 * time.Second
	shutdownTimeout   = 10 * time.Second
)

// Options tunes request defaults.
type Options struct {
	// DefaultDays is the schedule window when neither to nor days is given.
	DefaultDays int
	// DefaultLimit and MaxLimit bound address searches.
	DefaultLimit int
	MaxLimit     int
	// Today supplies the default range start (default model.Today).
	Today func() time.Time
}

// Server serves the facade over HTTP.
type Server struct {
	facade service.Facade
	log    zerolog.Logger
	opts   Options
	router chi.Router
}

// New builds the router. Every request gets a request id and an access log
// line on log.
func New(facade service.Facade, log zerolog.Logger, opts Options) *Server {
	if opts.DefaultDays <= 0 {
		opts.DefaultDays = 28
	}
	if opts.DefaultLimit <= 0 {
		opts.DefaultLimit = 10
	}
	if opts.MaxLimit <= 0 {
		opts.MaxLimit = 100
	}
	s := &Server{facade: facade, log: log, opts: opts}

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(hlog.NewHandler(log))
	r.Use(hlog.AccessHandler(accessLog))
	r.Use(chimw.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Get("/cities", s.listCities)
	r.Route("/cities/{city}", func(r chi.Router) {
		r.Get("/addresses", s.searchAddresses)
		r.Get("/schedule", s.schedule)
	})

	s.router = r
	return s
}

// Handler returns the root handler.
func (s *Server) Handler() http.Handler { return s.router }

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info().Str("addr", addr).Msg("listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func accessLog(r *http.Request, status, size int, duration time.Duration) {
	hlog.FromRequest(r).Info().
		Str("req_id", chimw.GetReqID(r.Context())).
		Str("method", r.Method).
		Str("path", r.URL.Path).
		Int("status", status).
		Int("size", size).
		Dur("duration", duration).
		Msg("request")
}
