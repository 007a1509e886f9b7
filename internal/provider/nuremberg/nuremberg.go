// Package nuremberg registers Nürnberg's RegioIT waste calendar.
package nuremberg

import (
	"net/http"
	"strings"

	"github.com/tonneli/tonneli/internal/model"
	"github.com/tonneli/tonneli/internal/plugin"
	"github.com/tonneli/tonneli/internal/provider/regioit"
)

const (
	DefaultBaseURL = "https://nuernberg-abfallapp.regioit.de/abfall-app-nuernberg/rest"

	// DefaultPlaceID is the ort id the official web app uses; it could also
	// be discovered through /orte.
	DefaultPlaceID int64 = 6_756_817
)

// Options overrides the backend location. Zero values select the defaults.
type Options struct {
	BaseURL string
	PlaceID int64
}

// Meta is the city metadata reported by both ports.
func Meta() model.CityMeta {
	return model.CityMeta{ID: model.Nuremberg, Name: "Nürnberg"}
}

// Plugin builds the Nuremberg bundle around a shared HTTP client.
func Plugin(client *http.Client, opts Options) plugin.CityPlugin {
	base := strings.TrimSpace(opts.BaseURL)
	if base == "" {
		base = DefaultBaseURL
	}
	placeID := opts.PlaceID
	if placeID == 0 {
		placeID = DefaultPlaceID
	}
	return regioit.Plugin(client, regioit.Options{
		City:      Meta(),
		BaseURL:   base,
		PlaceID:   placeID,
		PlaceName: "Nürnberg",
	})
}
