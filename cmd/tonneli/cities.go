package cmd

import (
	"github.com/spf13/cobra"

	"github.com/tonneli/tonneli/internal/ui"
)

var citiesOutput string

// citiesCmd lists the supported cities.
var citiesCmd = &cobra.Command{
	Use:   "cities",
	Short: "List supported cities",
	Args:  cobra.NoArgs,
	RunE:  runCities,
}

func runCities(cmd *cobra.Command, args []string) error {
	format, err := outputFormat(citiesOutput, "table", "json", "yaml")
	if err != nil {
		return err
	}
	_, facade, err := setup()
	if err != nil {
		return err
	}

	cities := facade.Cities()
	if format == "table" {
		ui.PrintCities(cmd.OutOrStdout(), cities)
		return nil
	}
	return writeData(cmd.OutOrStdout(), format, cities)
}

func init() {
	citiesCmd.Flags().StringVarP(&citiesOutput, "output", "o", "", "Output format: table|json|yaml")
}
