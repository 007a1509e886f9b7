package export

import (
	"io"
	"strings"
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/google/uuid"

	"github.com/tonneli/tonneli/internal/model"
)

const icsProdID = "-//tonneli//waste calendar//EN"

var uidNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://github.com/tonneli/tonneli"))

// EventUID is stable for the same city, address, date and fraction, so
// re-imported calendars update instead of duplicating entries.
func EventUID(city model.CityID, id model.AddressID, e model.PickupEvent) string {
	key := strings.Join([]string{
		string(city), string(id), e.Date.Format(model.DateLayout), e.Fraction.Slug(), e.Fraction.Name,
	}, "|")
	return uuid.NewSHA1(uidNamespace, []byte(key)).String() + "@tonneli"
}

// ICS writes an RFC 5545 calendar with one all-day event per pickup.
func ICS(w io.Writer, s Schedule) error {
	return buildCalendar(s).SerializeTo(w)
}

func buildCalendar(s Schedule) *ics.Calendar {
	stamp := s.Generated
	if stamp.IsZero() {
		stamp = time.Now()
	}

	cal := ics.NewCalendar()
	cal.SetProductId(icsProdID)
	cal.SetCalscale("GREGORIAN")
	cal.SetMethod(ics.MethodPublish)
	cal.SetXWRCalName(calendarName(s))

	for _, e := range s.Events {
		ev := cal.AddEvent(EventUID(s.City.ID, s.Address.ID, e))
		ev.SetDtStampTime(stamp.UTC())
		ev.SetAllDayStartAt(e.Date)
		ev.SetAllDayEndAt(e.Date.AddDate(0, 0, 1))
		ev.SetSummary(e.Fraction.Label())
		if e.Note != "" {
			ev.SetDescription(e.Note)
		}
		if s.Address.Label != "" {
			ev.SetLocation(s.Address.Label + ", " + s.City.Name)
		}
		ev.SetProperty(ics.ComponentPropertyCategories, e.Fraction.Slug())
		ev.SetProperty(ics.ComponentPropertyTransp, "TRANSPARENT")
	}
	return cal
}

func calendarName(s Schedule) string {
	if s.Address.Label != "" {
		return "Waste collection " + s.Address.Label
	}
	return "Waste collection " + s.City.Name
}
