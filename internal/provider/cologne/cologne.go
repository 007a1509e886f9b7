// Package cologne binds the AWB Köln waste calendar API to the address and
// schedule ports.
//
// AWB identifies a building by street code, building number and an optional
// addition ("10", "10a"). Those three keys are packed into the AddressID as
//
//	<street_code>:<building_number>:<building_number_addition>
//
// The calendar endpoint is scoped by year and month instead of exact dates,
// so schedules request a covering window and filter locally.
package cologne

import (
	"net/http"
	"strings"

	"github.com/tonneli/tonneli/internal/model"
	"github.com/tonneli/tonneli/internal/plugin"
)

// DefaultBaseURL is the public AWB API root.
const DefaultBaseURL = "https://www.awbkoeln.de/api"

// Options configures the adapter. Zero values select the public backend.
type Options struct {
	BaseURL string
}

func (o Options) baseURL() string {
	if u := strings.TrimSpace(o.BaseURL); u != "" {
		return u
	}
	return DefaultBaseURL
}

// Meta is the city metadata reported by both ports.
func Meta() model.CityMeta {
	return model.CityMeta{ID: model.Cologne, Name: "Köln"}
}

// Plugin builds the Cologne bundle around a shared HTTP client.
func Plugin(client *http.Client, opts Options) plugin.CityPlugin {
	return plugin.CityPlugin{
		Meta:     Meta(),
		Address:  NewAddressPort(client, opts),
		Schedule: NewSchedulePort(client, opts),
	}
}
