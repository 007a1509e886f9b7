package cmd

import (
	"github.com/spf13/cobra"

	"github.com/tonneli/tonneli/internal/tui"
)

// tuiCmd starts the interactive browser.
var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Browse cities, addresses and schedules interactively",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, facade, err := setup()
		if err != nil {
			return err
		}
		return tui.Run(cmd.Context(), facade, tui.Options{
			Days:    cfg.ScheduleDays,
			Timeout: cfg.HTTP.Timeout,
			Today:   today,
		})
	},
}
