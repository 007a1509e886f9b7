package model

import (
	"fmt"
	"sort"
	"time"

	"github.com/tonneli/tonneli/internal/apperr"
)

// DateLayout is the ISO calendar date format used on every boundary.
const DateLayout = "2006-01-02"

// NewDate returns midnight UTC of the given calendar date. Components that
// do not form a real date (e.g. 31 February) fail with apperr.KindInternal
// instead of being normalized by time.Date.
func NewDate(year int, month time.Month, day int) (time.Time, error) {
	d := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	if d.Year() != year || d.Month() != month || d.Day() != day {
		return time.Time{}, apperr.New(apperr.KindInternal, "model.NewDate",
			fmt.Sprintf("invalid calendar date %04d-%02d-%02d", year, int(month), day))
	}
	return d, nil
}

// MustDate is NewDate for literals known to be valid.
func MustDate(year int, month time.Month, day int) time.Time {
	d, err := NewDate(year, month, day)
	if err != nil {
		panic(err)
	}
	return d
}

// ParseDate parses a YYYY-MM-DD string. Failures are apperr.KindParse.
func ParseDate(s string) (time.Time, error) {
	d, err := time.ParseInLocation(DateLayout, s, time.UTC)
	if err != nil {
		return time.Time{}, apperr.Wrap(apperr.KindParse, "model.ParseDate", err)
	}
	return d, nil
}

// DateOf drops the time-of-day of t, keeping its calendar date in t's location.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Today returns the local calendar date.
func Today() time.Time { return DateOf(time.Now()) }

// DateRange is an inclusive window of calendar dates.
type DateRange struct {
	Start time.Time `json:"start" yaml:"start"`
	End   time.Time `json:"end" yaml:"end"`
}

// NextDays returns the range from start covering n further days.
func NextDays(start time.Time, n int) DateRange {
	s := DateOf(start)
	return DateRange{Start: s, End: s.AddDate(0, 0, n)}
}

// ResolveRange builds a range from optional YYYY-MM-DD bounds. An empty from
// means today; an empty to means from plus days. Malformed input is a user
// error. Inverted ranges are left for Validate.
func ResolveRange(today time.Time, from, to string, days int) (DateRange, error) {
	start := DateOf(today)
	if from != "" {
		d, err := ParseDate(from)
		if err != nil {
			return DateRange{}, apperr.Userf("invalid from date %q (want YYYY-MM-DD)", from)
		}
		start = d
	}
	if to != "" {
		end, err := ParseDate(to)
		if err != nil {
			return DateRange{}, apperr.Userf("invalid to date %q (want YYYY-MM-DD)", to)
		}
		return DateRange{Start: start, End: end}, nil
	}
	if days <= 0 {
		return DateRange{}, apperr.Userf("invalid days %d (must be positive)", days)
	}
	return NextDays(start, days), nil
}

// Contains reports whether d lies within [Start, End].
func (r DateRange) Contains(d time.Time) bool {
	d = DateOf(d)
	return !d.Before(DateOf(r.Start)) && !d.After(DateOf(r.End))
}

// Validate rejects inverted ranges.
func (r DateRange) Validate() error {
	if DateOf(r.End).Before(DateOf(r.Start)) {
		return apperr.New(apperr.KindInvalidRange, "model.DateRange",
			fmt.Sprintf("end %s is before start %s", r.End.Format(DateLayout), r.Start.Format(DateLayout)))
	}
	return nil
}

// Days returns the number of calendar days covered, both ends included.
func (r DateRange) Days() int {
	return int(DateOf(r.End).Sub(DateOf(r.Start)).Hours()/24) + 1
}

func (r DateRange) String() string {
	return r.Start.Format(DateLayout) + ".." + r.End.Format(DateLayout)
}

// PickupEvent is one scheduled collection on a calendar date.
type PickupEvent struct {
	Date     time.Time `json:"date" yaml:"date"`
	Fraction Fraction  `json:"fraction" yaml:"fraction"`
	Note     string    `json:"note,omitempty" yaml:"note,omitempty"`
}

// SortEvents orders events ascending by date, keeping backend order for
// events on the same day.
func SortEvents(events []PickupEvent) {
	sort.SliceStable(events, func(i, j int) bool {
		return events[i].Date.Before(events[j].Date)
	})
}

// FilterRange keeps the events inside r, reusing the backing array.
func FilterRange(events []PickupEvent, r DateRange) []PickupEvent {
	out := events[:0]
	for _, e := range events {
		if r.Contains(e.Date) {
			out = append(out, e)
		}
	}
	return out
}

// FilterFractions keeps events whose fraction kind is in kinds. An empty
// kinds slice keeps everything.
func FilterFractions(events []PickupEvent, kinds ...Fraction) []PickupEvent {
	if len(kinds) == 0 {
		return events
	}
	out := make([]PickupEvent, 0, len(events))
	for _, e := range events {
		for _, k := range kinds {
			if e.Fraction.Kind == k.Kind && (!k.IsOther() || e.Fraction.Name == k.Name) {
				out = append(out, e)
				break
			}
		}
	}
	return out
}
