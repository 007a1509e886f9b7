// Package export renders a pickup schedule as json, yaml, iCalendar or xlsx.
package export

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	yaml "go.yaml.in/yaml/v3"

	"github.com/tonneli/tonneli/internal/apperr"
	"github.com/tonneli/tonneli/internal/model"
)

// Format names an output encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatICS  Format = "ics"
	FormatXLSX Format = "xlsx"
)

// Formats lists every supported export format.
var Formats = []Format{FormatJSON, FormatYAML, FormatICS, FormatXLSX}

// ParseFormat accepts a format name case-insensitively; "yml" and "ical"
// are aliases.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "ics", "ical":
		return FormatICS, nil
	case "xlsx":
		return FormatXLSX, nil
	}
	return "", apperr.Userf("unsupported format %q (want json, yaml, ics or xlsx)", s)
}

// Schedule is what gets exported: the events of one address in a range.
type Schedule struct {
	City    model.CityMeta
	Address model.Address
	Range   model.DateRange
	Events  []model.PickupEvent

	// Generated stamps calendar entries; zero means now.
	Generated time.Time
}

// Event is the wire shape of a pickup, with the date as YYYY-MM-DD.
type Event struct {
	Date     string `json:"date" yaml:"date"`
	Weekday  string `json:"weekday" yaml:"weekday"`
	Fraction string `json:"fraction" yaml:"fraction"`
	Label    string `json:"label" yaml:"label"`
	Note     string `json:"note,omitempty" yaml:"note,omitempty"`
}

// Document is the json/yaml export envelope.
type Document struct {
	City      model.CityID    `json:"city" yaml:"city"`
	CityName  string          `json:"city_name" yaml:"city_name"`
	AddressID model.AddressID `json:"address_id" yaml:"address_id"`
	Address   string          `json:"address,omitempty" yaml:"address,omitempty"`
	From      string          `json:"from" yaml:"from"`
	To        string          `json:"to" yaml:"to"`
	Events    []Event         `json:"events" yaml:"events"`
}

// Events converts pickups to their wire shape. The result is never nil.
func Events(events []model.PickupEvent) []Event {
	out := make([]Event, 0, len(events))
	for _, e := range events {
		out = append(out, Event{
			Date:     e.Date.Format(model.DateLayout),
			Weekday:  e.Date.Weekday().String(),
			Fraction: e.Fraction.String(),
			Label:    e.Fraction.Label(),
			Note:     e.Note,
		})
	}
	return out
}

// NewDocument builds the json/yaml envelope for s.
func NewDocument(s Schedule) Document {
	return Document{
		City:      s.City.ID,
		CityName:  s.City.Name,
		AddressID: s.Address.ID,
		Address:   s.Address.Label,
		From:      s.Range.Start.Format(model.DateLayout),
		To:        s.Range.End.Format(model.DateLayout),
		Events:    Events(s.Events),
	}
}

// Write encodes s to w in format f.
func Write(w io.Writer, f Format, s Schedule) error {
	switch f {
	case FormatJSON:
		return JSON(w, s)
	case FormatYAML:
		return YAML(w, s)
	case FormatICS:
		return ICS(w, s)
	case FormatXLSX:
		return XLSX(w, s)
	}
	return apperr.Userf("unsupported format %q", f)
}

// JSON writes the document indented.
func JSON(w io.Writer, s Schedule) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(NewDocument(s)); err != nil {
		return fmt.Errorf("encode json: %w", err)
	}
	return nil
}

// YAML writes the document as a single yaml document.
func YAML(w io.Writer, s Schedule) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(NewDocument(s)); err != nil {
		return fmt.Errorf("encode yaml: %w", err)
	}
	return enc.Close()
}
