package cmd

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tonneli/tonneli/internal/export"
	"github.com/tonneli/tonneli/internal/model"
	"github.com/tonneli/tonneli/internal/ui"
)

var (
	exportAddr   addressFlags
	exportRange  rangeFlags
	exportFormat string
	exportOut    string
)

// exportCmd writes a schedule to a file.
var exportCmd = &cobra.Command{
	Use:   "export <city>",
	Short: "Export the pickups of an address to a calendar or spreadsheet file",
	Long:  "Export the pickups of an address as ics, xlsx, json or yaml. The format defaults to the extension of --out, else ics.",
	Example: "  tonneli export cologne --address \"Hauptstraße 10\" --days 365 --out muell.ics\n" +
		"  tonneli export aachen --id 5321 --format xlsx",
	Args: cobra.ExactArgs(1),
	RunE: runExport,
}

func runExport(cmd *cobra.Command, args []string) error {
	format, out, err := exportTarget(exportFormat, exportOut, parseCity(args[0]))
	if err != nil {
		return err
	}
	cfg, facade, err := setup()
	if err != nil {
		return err
	}
	rng, err := exportRange.resolve(cfg)
	if err != nil {
		return err
	}

	city := parseCity(args[0])
	expUI := ui.NewExportUI(cmd.OutOrStdout(), cfg.LogLevel == "quiet" || exportAddr.pick)
	expUI.Start(cityMeta(facade, city).Name)
	defer expUI.Finish()

	expUI.Begin(ui.StepResolve, "")
	address, err := resolveAddress(cmd.Context(), facade, city, exportAddr.id, exportAddr.address, exportAddr.pick)
	if err != nil {
		expUI.Fail(ui.StepResolve, err)
		return err
	}
	expUI.Done(ui.StepResolve, address.Label)

	expUI.Begin(ui.StepFetch, rng.String())
	events, err := facade.ScheduleFor(cmd.Context(), city, address.ID, rng)
	if err != nil {
		expUI.Fail(ui.StepFetch, err)
		return err
	}
	expUI.Done(ui.StepFetch, fmt.Sprintf("%d pickup(s)", len(events)))

	expUI.Begin(ui.StepWrite, out)
	sched := export.Schedule{
		City:    cityMeta(facade, city),
		Address: address,
		Range:   rng,
		Events:  events,
	}
	if err := writeFile(out, format, sched); err != nil {
		expUI.Fail(ui.StepWrite, err)
		return err
	}
	expUI.Done(ui.StepWrite, out)
	expUI.Finish()

	expUI.PrintSummary(out, string(format), len(events))
	return nil
}

// exportTarget settles format and path: an explicit --format wins, else the
// extension of --out, else ics. Without --out the file is named after the city.
func exportTarget(rawFormat, out string, city model.CityID) (export.Format, string, error) {
	var (
		format export.Format
		err    error
	)
	switch {
	case strings.TrimSpace(rawFormat) != "":
		format, err = export.ParseFormat(rawFormat)
	case out != "" && filepath.Ext(out) != "":
		format, err = export.ParseFormat(strings.TrimPrefix(filepath.Ext(out), "."))
	default:
		format = export.FormatICS
	}
	if err != nil {
		return "", "", err
	}
	if out == "" {
		out = fmt.Sprintf("tonneli-%s.%s", city, format)
	}
	return format, out, nil
}

func writeFile(path string, format export.Format, s export.Schedule) error {
	var buf bytes.Buffer
	if err := export.Write(&buf, format, s); err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return os.WriteFile(path, buf.Bytes(), 0o644)
}

func init() {
	exportAddr.register(exportCmd)
	exportRange.register(exportCmd)
	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", "", "File format: ics|xlsx|json|yaml")
	exportCmd.Flags().StringVar(&exportOut, "out", "", "Output file (default tonneli-<city>.<format>)")
}
