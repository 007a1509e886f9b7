package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/tonneli/tonneli/internal/apperr"
	"github.com/tonneli/tonneli/internal/config"
	"github.com/tonneli/tonneli/internal/ui"
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "tonneli",
	Short: "Waste collection calendars for German cities",
	Long:  longDescription,

	SilenceUsage: true,

	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		initUIAndBanner(cmd)
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		activeConfig = cfg
		setupLogging(cfg.LogLevel, cmd.ErrOrStderr())
		return nil
	},

	// When invoked without a subcommand, show help (with banner) instead of
	// printing a plain usage output.
	RunE: func(cmd *cobra.Command, args []string) error {
		initUIAndBanner(cmd)
		return cmd.Help()
	},
}

var (
	cfgFile  string
	logLevel string
	version  string

	// activeConfig is loaded once per invocation by the persistent pre-run.
	activeConfig *config.Config
)

// SetVersion sets the version for the CLI
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}

// GetRootCmd returns the root command for use with fang
func GetRootCmd() *cobra.Command {
	return rootCmd
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.tonneli.yaml or ./config/defaults.yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level: quiet|standard|debug")
	_ = viper.BindPFlag(config.KeyLogLevel, rootCmd.PersistentFlags().Lookup("log-level"))

	// Ensure `--help` (and help subcommands) show the banner consistently.
	defaultHelp := rootCmd.HelpFunc()
	rootCmd.SetHelpFunc(func(cmd *cobra.Command, args []string) {
		initUIAndBanner(cmd)
		defaultHelp(cmd, args)
	})

	rootCmd.AddCommand(citiesCmd, searchCmd, scheduleCmd, exportCmd, tuiCmd, serveCmd)
}

func initConfig() {
	// Environment variables override the file, e.g.
	// resilience.enabled -> TONNELI_RESILIENCE_ENABLED,
	// http.user-agent -> TONNELI_HTTP_USER_AGENT.
	viper.SetEnvPrefix("TONNELI")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
		cobra.CheckErr(viper.ReadInConfig())
		announceConfig(os.Stderr)
		return
	}

	home, err := os.UserHomeDir()
	cobra.CheckErr(err)

	viper.SetConfigType("yaml")
	viper.AddConfigPath(home)
	viper.AddConfigPath("./config")

	// Try .tonneli first
	viper.SetConfigName(".tonneli")
	err = viper.ReadInConfig()

	// If not found, try defaults.yaml
	notFound := viper.ConfigFileNotFoundError{}
	if err != nil && errors.As(err, &notFound) {
		viper.SetConfigName("defaults")
		err = viper.ReadInConfig()
	}

	switch {
	case err != nil && !errors.As(err, &notFound):
		cobra.CheckErr(err)
	case err != nil:
		// The config file is optional; built-in defaults apply.
	default:
		announceConfig(os.Stderr)
	}
}

func announceConfig(w io.Writer) {
	if strings.EqualFold(viper.GetString(config.KeyLogLevel), "quiet") {
		return
	}
	fmt.Fprintln(w, ui.Dim.Render("Using config file: ")+ui.Secondary.Render(viper.ConfigFileUsed()))
}

// loadConfig reads the typed configuration. Invalid values are reported as
// user errors.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(viper.GetViper())
	if err != nil {
		return nil, apperr.Userf("config: %v", err)
	}
	return cfg, nil
}

const longDescription = "Look up waste collection schedules for Köln, Nürnberg and Aachen from the command line, a terminal UI or a small JSON API."

func initUIAndBanner(cmd *cobra.Command) {
	if cmd == nil {
		return
	}
	cmd.Root().Long = ui.RenderBanner(ui.BannerASCII) + "\n" + longDescription
}
