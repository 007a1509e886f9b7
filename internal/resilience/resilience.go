// Package resilience wraps a service.Facade with per-city rate limiting and
// retries of transient backend failures. Results are never cached.
package resilience

import (
	"context"
	"time"

	"github.com/sethvargo/go-retry"
	"golang.org/x/time/rate"

	"github.com/tonneli/tonneli/internal/apperr"
	"github.com/tonneli/tonneli/internal/model"
	"github.com/tonneli/tonneli/internal/ports"
	"github.com/tonneli/tonneli/internal/service"
)

const defaultBackoff = 200 * time.Millisecond

// Options tunes the wrapper. Rate is in facade calls per second per city;
// zero or less disables limiting.
type Options struct {
	Rate    float64
	Burst   int
	Retries uint64
	Backoff time.Duration
}

// Facade decorates another facade. Limiters exist only for the cities the
// wrapped facade reported at construction time.
type Facade struct {
	next     service.Facade
	opts     Options
	limiters map[model.CityID]*rate.Limiter
}

var _ service.Facade = (*Facade)(nil)

// Wrap decorates next.
func Wrap(next service.Facade, opts Options) *Facade {
	if opts.Backoff <= 0 {
		opts.Backoff = defaultBackoff
	}
	if opts.Burst <= 0 {
		opts.Burst = 1
	}
	f := &Facade{next: next, opts: opts, limiters: map[model.CityID]*rate.Limiter{}}
	if opts.Rate > 0 {
		for _, c := range next.Cities() {
			f.limiters[c.ID] = rate.NewLimiter(rate.Limit(opts.Rate), opts.Burst)
		}
	}
	return f
}

func (f *Facade) Cities() []model.CityMeta { return f.next.Cities() }

func (f *Facade) SearchAddresses(ctx context.Context, city model.CityID, q ports.AddressSearch, limit int) ([]model.Address, error) {
	var out []model.Address
	err := f.do(ctx, city, "search", func(ctx context.Context) error {
		var err error
		out, err = f.next.SearchAddresses(ctx, city, q, limit)
		return err
	})
	return out, err
}

func (f *Facade) ScheduleFor(ctx context.Context, city model.CityID, id model.AddressID, r model.DateRange) ([]model.PickupEvent, error) {
	var out []model.PickupEvent
	err := f.do(ctx, city, "schedule", func(ctx context.Context) error {
		var err error
		out, err = f.next.ScheduleFor(ctx, city, id, r)
		return err
	})
	return out, err
}

func (f *Facade) do(ctx context.Context, city model.CityID, what string, call func(context.Context) error) error {
	backoff := retry.WithMaxRetries(f.opts.Retries, retry.NewExponential(f.opts.Backoff))
	attempt := 0
	return retry.Do(ctx, backoff, func(ctx context.Context) error {
		attempt++
		if l, ok := f.limiters[city]; ok {
			if err := l.Wait(ctx); err != nil {
				return err
			}
		}
		err := call(ctx)
		if err != nil && apperr.IsTransient(err) {
			logf(string(city), "%s attempt %d failed: %v", what, attempt, err)
			return retry.RetryableError(err)
		}
		return err
	})
}
