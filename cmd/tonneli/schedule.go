package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tonneli/tonneli/internal/config"
	"github.com/tonneli/tonneli/internal/export"
	"github.com/tonneli/tonneli/internal/model"
	"github.com/tonneli/tonneli/internal/service"
	"github.com/tonneli/tonneli/internal/ui"
)

// rangeFlags is the --from/--to/--days trio shared by schedule and export.
type rangeFlags struct {
	from string
	to   string
	days int
}

func (f *rangeFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.from, "from", "", "First date, YYYY-MM-DD (default today)")
	cmd.Flags().StringVar(&f.to, "to", "", "Last date, YYYY-MM-DD (default --from plus --days)")
	cmd.Flags().IntVar(&f.days, "days", 0, "Number of days after --from (default schedule.days)")
}

func (f *rangeFlags) resolve(cfg *config.Config) (model.DateRange, error) {
	days := f.days
	if days == 0 {
		days = cfg.ScheduleDays
	}
	return model.ResolveRange(today(), f.from, f.to, days)
}

// addressFlags selects the address of schedule and export.
type addressFlags struct {
	id      string
	address string
	pick    bool
}

func (f *addressFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.id, "id", "", "Address id as printed by search")
	cmd.Flags().StringVar(&f.address, "address", "", "Street and house number, resolved through search")
	cmd.Flags().BoolVar(&f.pick, "pick", false, "Choose interactively when --address matches several addresses")
}

var (
	scheduleAddr      addressFlags
	scheduleRange     rangeFlags
	scheduleFractions []string
	scheduleOutput    string
)

// scheduleCmd prints the pickups of one address.
var scheduleCmd = &cobra.Command{
	Use:   "schedule <city>",
	Short: "Show upcoming pickups of an address",
	Long:  "Show the pickups of an address within a date range. Select the address with --id (see 'search') or resolve it with --address.",
	Example: "  tonneli schedule cologne --address \"Hauptstraße 10\"\n" +
		"  tonneli schedule nuremberg --id 4711 --days 60 --fraction paper,organic -o ics",
	Args: cobra.ExactArgs(1),
	RunE: runSchedule,
}

func runSchedule(cmd *cobra.Command, args []string) error {
	format, err := outputFormat(scheduleOutput, "table", "json", "yaml", "ics")
	if err != nil {
		return err
	}
	only, err := parseFractions(scheduleFractions)
	if err != nil {
		return err
	}
	cfg, facade, err := setup()
	if err != nil {
		return err
	}
	rng, err := scheduleRange.resolve(cfg)
	if err != nil {
		return err
	}

	city := parseCity(args[0])
	quiet := cfg.LogLevel == "quiet" || format != "table"

	var spinner *ui.Spinner
	if !quiet && !scheduleAddr.pick {
		spinner = ui.NewSpinner(cmd.ErrOrStderr(), ui.Dim.Render("Fetching schedule..."))
		spinner.Start()
	}
	sched, err := fetchSchedule(cmd.Context(), facade, city, scheduleAddr, rng)
	if spinner != nil {
		spinner.Stop(err == nil, "")
	}
	if err != nil {
		return err
	}
	if len(only) > 0 {
		sched.Events = model.FilterFractions(sched.Events, only...)
	}

	out := cmd.OutOrStdout()
	switch format {
	case "table":
		title := fmt.Sprintf("%s, %s · %s", sched.Address.Label, sched.City.Name, rng)
		ui.PrintSchedule(out, title, sched.Events, today())
		return nil
	default:
		f, err := export.ParseFormat(format)
		if err != nil {
			return err
		}
		return export.Write(out, f, sched)
	}
}

// fetchSchedule resolves the address and loads its pickups.
func fetchSchedule(ctx context.Context, facade service.Facade, city model.CityID, addr addressFlags, rng model.DateRange) (export.Schedule, error) {
	address, err := resolveAddress(ctx, facade, city, addr.id, addr.address, addr.pick)
	if err != nil {
		return export.Schedule{}, err
	}
	events, err := facade.ScheduleFor(ctx, city, address.ID, rng)
	if err != nil {
		return export.Schedule{}, err
	}
	return export.Schedule{
		City:    cityMeta(facade, city),
		Address: address,
		Range:   rng,
		Events:  events,
	}, nil
}

func init() {
	scheduleAddr.register(scheduleCmd)
	scheduleRange.register(scheduleCmd)
	scheduleCmd.Flags().StringSliceVar(&scheduleFractions, "fraction", nil, "Only show these fractions: residual|organic|paper|plastic|glass|metal")
	scheduleCmd.Flags().StringVarP(&scheduleOutput, "output", "o", "", "Output format: table|json|yaml|ics")
}
