package cmd

import (
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/tonneli/tonneli/internal/config"
	"github.com/tonneli/tonneli/internal/httpapi"
)

var serveAddr string

// serveCmd exposes the facade as a JSON API.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve cities, address search and schedules over HTTP",
	Long: "Serve a read-only JSON API:\n\n" +
		"  GET /cities\n" +
		"  GET /cities/{city}/addresses?street=&house=&q=&limit=\n" +
		"  GET /cities/{city}/schedule?id=&from=&to=&days=&fraction=",
	Args: cobra.NoArgs,
	RunE: runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, facade, err := setup()
	if err != nil {
		return err
	}

	log := newServerLogger(cfg.LogLevel)
	srv := httpapi.New(facade, log, httpapi.Options{
		DefaultDays: cfg.ScheduleDays,
		Today:       today,
	})

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return srv.ListenAndServe(ctx, cfg.ServeAddr)
}

func newServerLogger(level string) zerolog.Logger {
	lvl := zerolog.InfoLevel
	switch level {
	case "quiet":
		lvl = zerolog.WarnLevel
	case "debug":
		lvl = zerolog.DebugLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly}).
		Level(lvl).
		With().Timestamp().Logger()
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "Listen address (default serve.addr)")
	_ = viper.BindPFlag(config.KeyServeAddr, serveCmd.Flags().Lookup("addr"))
}
