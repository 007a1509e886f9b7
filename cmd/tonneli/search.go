package cmd

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/tonneli/tonneli/internal/apperr"
	"github.com/tonneli/tonneli/internal/ports"
	"github.com/tonneli/tonneli/internal/ui"
)

var (
	searchLimit  int
	searchOutput string
)

// searchCmd looks up addresses in one city.
var searchCmd = &cobra.Command{
	Use:     "search <city> <street> [house number]",
	Short:   "Search addresses of a city",
	Example: "  tonneli search cologne Hauptstraße 10\n  tonneli search nuremberg \"Am Plärrer\"",
	Args:    cobra.MinimumNArgs(2),
	RunE:    runSearch,
}

func runSearch(cmd *cobra.Command, args []string) error {
	format, err := outputFormat(searchOutput, "table", "json", "yaml")
	if err != nil {
		return err
	}
	if searchLimit <= 0 {
		return apperr.Userf("invalid --limit %d (must be positive)", searchLimit)
	}
	q := ports.ParseAddressInput(strings.Join(args[1:], " "))
	if q.IsEmpty() {
		return apperr.User("street is required")
	}

	_, facade, err := setup()
	if err != nil {
		return err
	}
	addrs, err := facade.SearchAddresses(cmd.Context(), parseCity(args[0]), q, searchLimit)
	if err != nil {
		return err
	}

	if format == "table" {
		ui.PrintAddresses(cmd.OutOrStdout(), addrs)
		return nil
	}
	return writeData(cmd.OutOrStdout(), format, addrs)
}

func init() {
	searchCmd.Flags().IntVar(&searchLimit, "limit", 10, "Maximum number of addresses")
	searchCmd.Flags().StringVarP(&searchOutput, "output", "o", "", "Output format: table|json|yaml")
}
