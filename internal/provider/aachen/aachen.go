// Package aachen registers Aachen's RegioIT waste calendar. The place id is
// discovered from the backend on first use.
package aachen

import (
	"net/http"
	"strings"

	"github.com/tonneli/tonneli/internal/model"
	"github.com/tonneli/tonneli/internal/plugin"
	"github.com/tonneli/tonneli/internal/provider/regioit"
)

const (
	DefaultBaseURL   = "https://aachen-abfallapp.regioit.de/abfall-app-aachen/rest"
	DefaultPlaceName = "Aachen"
)

// Options overrides the backend location. Zero values select the defaults.
type Options struct {
	BaseURL   string
	PlaceName string
}

// Meta is the city metadata reported by both ports.
func Meta() model.CityMeta {
	return model.CityMeta{ID: model.Aachen, Name: "Aachen"}
}

// Plugin builds the Aachen bundle around a shared HTTP client.
func Plugin(client *http.Client, opts Options) plugin.CityPlugin {
	base := strings.TrimSpace(opts.BaseURL)
	if base == "" {
		base = DefaultBaseURL
	}
	name := strings.TrimSpace(opts.PlaceName)
	if name == "" {
		name = DefaultPlaceName
	}
	return regioit.Plugin(client, regioit.Options{
		City:      Meta(),
		BaseURL:   base,
		PlaceName: name,
	})
}
