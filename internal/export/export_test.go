package export

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	yaml "go.yaml.in/yaml/v3"

	"github.com/tonneli/tonneli/internal/apperr"
	"github.com/tonneli/tonneli/internal/model"
)

func sample() Schedule {
	return Schedule{
		City:    model.CityMeta{ID: model.Cologne, Name: "Köln"},
		Address: model.Address{ID: "1000:10:", City: model.Cologne, Label: "Hauptstraße 10"},
		Range:   model.DateRange{Start: model.MustDate(2025, 1, 1), End: model.MustDate(2025, 1, 31)},
		Events: []model.PickupEvent{
			{Date: model.MustDate(2025, 1, 2), Fraction: model.Residual, Note: "Restabfall"},
			{Date: model.MustDate(2025, 1, 6), Fraction: model.Other("Sperrmüll; Holz, Metall")},
		},
		Generated: time.Date(2025, 1, 1, 8, 30, 0, 0, time.UTC),
	}
}

func TestParseFormat_Aliases(t *testing.T) {
	for in, want := range map[string]Format{"JSON": FormatJSON, "yml": FormatYAML, " ical ": FormatICS, "xlsx": FormatXLSX} {
		got, err := ParseFormat(in)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	_, err := ParseFormat("pdf")
	assert.True(t, apperr.IsUser(err))
}

func TestJSON_UsesCalendarDates(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, FormatJSON, sample()))

	var doc Document
	require.NoError(t, json.Unmarshal(buf.Bytes(), &doc))
	assert.Equal(t, model.Cologne, doc.City)
	assert.Equal(t, "2025-01-01", doc.From)
	require.Len(t, doc.Events, 2)
	assert.Equal(t, Event{Date: "2025-01-02", Weekday: "Thursday", Fraction: "residual", Label: "Residual waste", Note: "Restabfall"}, doc.Events[0])
	assert.Equal(t, "Sperrmüll; Holz, Metall", doc.Events[1].Fraction)
}

func TestYAML_EmptySchedule(t *testing.T) {
	s := sample()
	s.Events = nil
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, FormatYAML, s))

	var doc map[string]any
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &doc))
	assert.Equal(t, "cologne", doc["city"])
	assert.Equal(t, []any{}, doc["events"])
}

func TestICS_Calendar(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, FormatICS, sample()))
	out := buf.String()

	assert.True(t, strings.HasPrefix(out, "BEGIN:VCALENDAR\r\nVERSION:2.0\r\n"))
	assert.True(t, strings.HasSuffix(out, "END:VCALENDAR\r\n"))
	assert.Equal(t, 2, strings.Count(out, "BEGIN:VEVENT\r\n"))
	assert.Contains(t, out, "DTSTART;VALUE=DATE:20250102\r\n")
	assert.Contains(t, out, "DTEND;VALUE=DATE:20250103\r\n")
	assert.Contains(t, out, "DTSTAMP:20250101T083000Z\r\n")
	assert.Contains(t, out, `SUMMARY:Sperrmüll\; Holz\, Metall`)
	assert.Contains(t, out, "LOCATION:Hauptstraße 10\\, Köln\r\n")

	for _, l := range strings.Split(strings.TrimSuffix(out, "\r\n"), "\r\n") {
		assert.LessOrEqual(t, len(l), 75, l)
	}

	cal, err := ics.ParseCalendar(strings.NewReader(out))
	require.NoError(t, err)
	events := cal.Events()
	require.Len(t, events, 2)
	assert.Equal(t, EventUID(model.Cologne, "1000:10:", sample().Events[0]), events[0].Id())
	start, err := events[1].GetAllDayStartAt()
	require.NoError(t, err)
	assert.Equal(t, "2025-01-06", start.Format(model.DateLayout))
}

func TestEventUID_Stable(t *testing.T) {
	e := sample().Events[0]
	a := EventUID(model.Cologne, "1", e)
	assert.Equal(t, a, EventUID(model.Cologne, "1", e))
	assert.NotEqual(t, a, EventUID(model.Cologne, "2", e))
	e.Fraction = model.Paper
	assert.NotEqual(t, a, EventUID(model.Cologne, "1", e))
	assert.True(t, strings.HasSuffix(a, "@tonneli"))
}

func TestICS_FoldsWithoutSplittingRunes(t *testing.T) {
	var buf bytes.Buffer
	s := sample()
	s.Events = []model.PickupEvent{{Date: model.MustDate(2025, 1, 2), Fraction: model.Paper, Note: strings.Repeat("ü", 100)}}
	require.NoError(t, ICS(&buf, s))

	var description string
	lines := strings.Split(buf.String(), "\r\n")
	for i, l := range lines {
		if strings.HasPrefix(l, "DESCRIPTION:") {
			description = l
			for _, cont := range lines[i+1:] {
				if !strings.HasPrefix(cont, " ") {
					break
				}
				description += cont[1:]
			}
		}
	}
	assert.Equal(t, "DESCRIPTION:"+strings.Repeat("ü", 100), description)
}

func TestXLSX_Workbook(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, FormatXLSX, sample()))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	get := func(cell string) string {
		v, err := f.GetCellValue(xlsxSheet, cell)
		require.NoError(t, err)
		return v
	}
	assert.Equal(t, "Köln", get("B1"))
	assert.Equal(t, "Hauptstraße 10", get("B2"))
	assert.Equal(t, "Date", get("A6"))
	assert.Equal(t, "2025-01-02", get("A7"))
	assert.Equal(t, "Residual waste", get("C7"))
	assert.Equal(t, "Sperrmüll; Holz, Metall", get("C8"))
}
