package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/x/term"
	yaml "go.yaml.in/yaml/v3"

	"github.com/tonneli/tonneli/internal/apperr"
	"github.com/tonneli/tonneli/internal/config"
	"github.com/tonneli/tonneli/internal/model"
	"github.com/tonneli/tonneli/internal/plugin"
	"github.com/tonneli/tonneli/internal/ports"
	"github.com/tonneli/tonneli/internal/provider/aachen"
	"github.com/tonneli/tonneli/internal/provider/cologne"
	"github.com/tonneli/tonneli/internal/provider/httpjson"
	"github.com/tonneli/tonneli/internal/provider/nuremberg"
	"github.com/tonneli/tonneli/internal/provider/regioit"
	"github.com/tonneli/tonneli/internal/resilience"
	"github.com/tonneli/tonneli/internal/service"
)

// pickLimit bounds the candidates offered by the interactive address picker.
const pickLimit = 25

// Indirections replaced in tests.
var (
	buildFacade = newFacade
	today       = model.Today
	isTerminal  = func() bool { return term.IsTerminal(os.Stdin.Fd()) }
	pickAddress = runAddressPicker
)

// newFacade builds the registry of every supported city from cfg.
func newFacade(cfg *config.Config) (service.Facade, error) {
	client := httpjson.NewClient(cfg.HTTP.Timeout, cfg.HTTP.UserAgent)

	reg, err := plugin.New(
		cologne.Plugin(client, cologne.Options{BaseURL: cfg.Providers.Cologne.BaseURL}),
		nuremberg.Plugin(client, nuremberg.Options{
			BaseURL: cfg.Providers.Nuremberg.BaseURL,
			PlaceID: cfg.Providers.Nuremberg.OrtID,
		}),
		aachen.Plugin(client, aachen.Options{
			BaseURL:   cfg.Providers.Aachen.BaseURL,
			PlaceName: cfg.Providers.Aachen.Place,
		}),
	)
	if err != nil {
		return nil, err
	}

	var facade service.Facade = service.New(reg)
	if cfg.Resilience.Enabled {
		facade = resilience.Wrap(facade, resilience.Options{
			Rate:    cfg.Resilience.Rate,
			Burst:   cfg.Resilience.Burst,
			Retries: cfg.Resilience.Retries,
			Backoff: cfg.Resilience.Backoff,
		})
	}
	return facade, nil
}

// setupLogging wires internal package logging for debug mode.
func setupLogging(level string, w io.Writer) {
	if level != "debug" {
		w = nil
	}
	httpjson.SetLogger(w)
	cologne.SetLogger(w)
	regioit.SetLogger(w)
	plugin.SetLogger(w)
	resilience.SetLogger(w)
}

// setup builds the facade for a command from the config the pre-run
// loaded. It only reads the config itself when no pre-run happened.
func setup() (*config.Config, service.Facade, error) {
	cfg := activeConfig
	if cfg == nil {
		var err error
		if cfg, err = loadConfig(); err != nil {
			return nil, nil, err
		}
	}
	facade, err := buildFacade(cfg)
	if err != nil {
		return nil, nil, err
	}
	return cfg, facade, nil
}

func cityMeta(facade service.Facade, id model.CityID) model.CityMeta {
	for _, c := range facade.Cities() {
		if c.ID == id {
			return c
		}
	}
	return model.CityMeta{ID: id, Name: string(id)}
}

func parseCity(arg string) model.CityID {
	return model.CityID(strings.ToLower(strings.TrimSpace(arg)))
}

// resolveAddress turns --id or --address into a concrete address.
func resolveAddress(ctx context.Context, facade service.Facade, city model.CityID, id, address string, pick bool) (model.Address, error) {
	id, address = strings.TrimSpace(id), strings.TrimSpace(address)
	switch {
	case id != "" && address != "":
		return model.Address{}, apperr.User("--id cannot be used with --address")
	case id != "":
		return model.Address{ID: model.AddressID(id), City: city, Label: id}, nil
	case address == "":
		return model.Address{}, apperr.User("either --id or --address is required")
	}

	q := ports.ParseAddressInput(address)
	if q.IsEmpty() {
		return model.Address{}, apperr.Userf("invalid address %q", address)
	}
	limit := 1
	if pick {
		limit = pickLimit
	}
	addrs, err := facade.SearchAddresses(ctx, city, q, limit)
	if err != nil {
		return model.Address{}, err
	}
	if len(addrs) == 0 {
		return model.Address{}, apperr.New(apperr.KindAddressNotFound, "cmd.resolveAddress", address)
	}
	if len(addrs) == 1 || !pick || !isTerminal() {
		return addrs[0], nil
	}
	return pickAddress(addrs)
}

func runAddressPicker(addrs []model.Address) (model.Address, error) {
	options := make([]huh.Option[int], 0, len(addrs))
	for i, a := range addrs {
		options = append(options, huh.NewOption(a.Label, i))
	}
	var choice int
	form := huh.NewForm(huh.NewGroup(
		huh.NewSelect[int]().
			Title(fmt.Sprintf("%d addresses match", len(addrs))).
			Options(options...).
			Height(min(len(addrs)+2, 12)).
			Value(&choice),
	))
	if err := form.Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return model.Address{}, apperr.ErrCancelled
		}
		return model.Address{}, err
	}
	return addrs[choice], nil
}

// writeData encodes v for the json and yaml output modes.
func writeData(w io.Writer, format string, v any) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case "yaml", "yml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	default:
		return apperr.Userf("invalid output %q", format)
	}
}

func outputFormat(raw string, allowed ...string) (string, error) {
	f := strings.ToLower(strings.TrimSpace(raw))
	if f == "" {
		return "table", nil
	}
	for _, a := range allowed {
		if f == a {
			return f, nil
		}
	}
	return "", apperr.Userf("invalid --output %q (expected %s)", raw, strings.Join(allowed, "|"))
}

func parseFractions(raw []string) ([]model.Fraction, error) {
	var out []model.Fraction
	for _, r := range raw {
		for _, part := range strings.Split(r, ",") {
			if part = strings.TrimSpace(part); part == "" {
				continue
			}
			f, err := model.ParseFraction(part)
			if err != nil {
				return nil, apperr.Userf("unknown fraction %q (expected residual|organic|paper|plastic|glass|metal)", part)
			}
			out = append(out, f)
		}
	}
	return out, nil
}
