package ui

import (
	"fmt"
	"io"
	"time"

	"charm.land/lipgloss/v2"
	"charm.land/lipgloss/v2/table"

	"github.com/tonneli/tonneli/internal/model"
)

var (
	headerStyle = lipgloss.NewStyle().Foreground(ColorSecondary).Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	dimCell     = cellStyle.Foreground(ColorTextDim)
)

func newTable() *table.Table {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(ColorMuted))
}

// PrintCities lists the registered cities.
func PrintCities(w io.Writer, cities []model.CityMeta) {
	t := newTable().Headers("ID", "City")
	for _, c := range cities {
		t.Row(string(c.ID), c.Name)
	}
	t.StyleFunc(func(row, col int) lipgloss.Style {
		if row == table.HeaderRow {
			return headerStyle
		}
		if col == 0 {
			return dimCell
		}
		return cellStyle
	})
	fmt.Fprintln(w, t.String())
}

// PrintAddresses lists search results with the ids to pass to schedule.
func PrintAddresses(w io.Writer, addrs []model.Address) {
	if len(addrs) == 0 {
		fmt.Fprintln(w, Warning.Render(GetWarnMark()+" No matching address."))
		return
	}
	t := newTable().Headers("#", "Address", "ID")
	for i, a := range addrs {
		t.Row(fmt.Sprintf("%d", i+1), a.Label, string(a.ID))
	}
	t.StyleFunc(func(row, col int) lipgloss.Style {
		if row == table.HeaderRow {
			return headerStyle
		}
		if col != 1 {
			return dimCell
		}
		return cellStyle
	})
	fmt.Fprintln(w, t.String())
}

// PrintSchedule prints one row per pickup, colored by fraction, with a day
// label relative to today.
func PrintSchedule(w io.Writer, title string, events []model.PickupEvent, today time.Time) {
	if title != "" {
		fmt.Fprintln(w, Title.Render(title))
	}
	if len(events) == 0 {
		fmt.Fprintln(w, Dim.Render("No pickups in this period."))
		return
	}

	t := newTable().Headers("Date", "Day", "When", "Fraction", "Note")
	for _, e := range events {
		t.Row(
			e.Date.Format(model.DateLayout),
			e.Date.Format("Mon"),
			RelativeDay(e.Date, today),
			e.Fraction.Label(),
			e.Note,
		)
	}
	t.StyleFunc(func(row, col int) lipgloss.Style {
		switch {
		case row == table.HeaderRow:
			return headerStyle
		case col == 3:
			return FractionStyle(events[row].Fraction).Padding(0, 1)
		case col == 2 && model.DateOf(events[row].Date).Equal(model.DateOf(today)):
			return cellStyle.Foreground(ColorHighlight).Bold(true)
		case col == 4:
			return dimCell
		}
		return cellStyle
	})
	fmt.Fprintln(w, t.String())
}

// RelativeDay describes d relative to today: "today", "tomorrow",
// "in 3 days", "yesterday", "5 days ago".
func RelativeDay(d, today time.Time) string {
	n := int(model.DateOf(d).Sub(model.DateOf(today)).Hours() / 24)
	switch {
	case n == 0:
		return "today"
	case n == 1:
		return "tomorrow"
	case n == -1:
		return "yesterday"
	case n > 1:
		return fmt.Sprintf("in %d days", n)
	default:
		return fmt.Sprintf("%d days ago", -n)
	}
}
