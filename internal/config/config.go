// Package config maps viper keys onto a typed configuration.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/tonneli/tonneli/internal/provider/aachen"
	"github.com/tonneli/tonneli/internal/provider/cologne"
	"github.com/tonneli/tonneli/internal/provider/httpjson"
	"github.com/tonneli/tonneli/internal/provider/nuremberg"
)

// Keys shared between flag bindings and config files.
const (
	KeyHTTPTimeout       = "http.timeout"
	KeyHTTPUserAgent     = "http.user-agent"
	KeyCologneBaseURL    = "providers.cologne.base-url"
	KeyNurembergBaseURL  = "providers.nuremberg.base-url"
	KeyNurembergOrtID    = "providers.nuremberg.ort-id"
	KeyAachenBaseURL     = "providers.aachen.base-url"
	KeyAachenPlace       = "providers.aachen.place"
	KeyResilienceEnabled = "resilience.enabled"
	KeyResilienceRate    = "resilience.rate"
	KeyResilienceBurst   = "resilience.burst"
	KeyResilienceRetries = "resilience.retries"
	KeyResilienceBackoff = "resilience.backoff"
	KeyServeAddr         = "serve.addr"
	KeyScheduleDays      = "schedule.days"
	KeyLogLevel          = "log-level"
)

type HTTPConfig struct {
	Timeout   time.Duration
	UserAgent string
}

type CologneConfig struct {
	BaseURL string
}

type NurembergConfig struct {
	BaseURL string
	OrtID   int64
}

type AachenConfig struct {
	BaseURL string
	Place   string
}

type ProvidersConfig struct {
	Cologne   CologneConfig
	Nuremberg NurembergConfig
	Aachen    AachenConfig
}

type ResilienceConfig struct {
	Enabled bool
	Rate    float64
	Burst   int
	Retries uint64
	Backoff time.Duration
}

type Config struct {
	HTTP         HTTPConfig
	Providers    ProvidersConfig
	Resilience   ResilienceConfig
	ServeAddr    string
	ScheduleDays int
	LogLevel     string
}

// SetDefaults registers the default value of every key on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault(KeyHTTPTimeout, 15*time.Second)
	v.SetDefault(KeyHTTPUserAgent, httpjson.DefaultUserAgent)
	v.SetDefault(KeyCologneBaseURL, cologne.DefaultBaseURL)
	v.SetDefault(KeyNurembergBaseURL, nuremberg.DefaultBaseURL)
	v.SetDefault(KeyNurembergOrtID, nuremberg.DefaultPlaceID)
	v.SetDefault(KeyAachenBaseURL, aachen.DefaultBaseURL)
	v.SetDefault(KeyAachenPlace, aachen.DefaultPlaceName)
	v.SetDefault(KeyResilienceEnabled, false)
	v.SetDefault(KeyResilienceRate, 2.0)
	v.SetDefault(KeyResilienceBurst, 4)
	v.SetDefault(KeyResilienceRetries, 2)
	v.SetDefault(KeyResilienceBackoff, 250*time.Millisecond)
	v.SetDefault(KeyServeAddr, "127.0.0.1:8080")
	v.SetDefault(KeyScheduleDays, 28)
	v.SetDefault(KeyLogLevel, "standard")
}

// Load reads the typed configuration from v and validates it.
func Load(v *viper.Viper) (*Config, error) {
	SetDefaults(v)

	cfg := &Config{
		HTTP: HTTPConfig{
			Timeout:   v.GetDuration(KeyHTTPTimeout),
			UserAgent: strings.TrimSpace(v.GetString(KeyHTTPUserAgent)),
		},
		Providers: ProvidersConfig{
			Cologne:   CologneConfig{BaseURL: strings.TrimSpace(v.GetString(KeyCologneBaseURL))},
			Nuremberg: NurembergConfig{BaseURL: strings.TrimSpace(v.GetString(KeyNurembergBaseURL)), OrtID: v.GetInt64(KeyNurembergOrtID)},
			Aachen:    AachenConfig{BaseURL: strings.TrimSpace(v.GetString(KeyAachenBaseURL)), Place: strings.TrimSpace(v.GetString(KeyAachenPlace))},
		},
		Resilience: ResilienceConfig{
			Enabled: v.GetBool(KeyResilienceEnabled),
			Rate:    v.GetFloat64(KeyResilienceRate),
			Burst:   v.GetInt(KeyResilienceBurst),
			Retries: v.GetUint64(KeyResilienceRetries),
			Backoff: v.GetDuration(KeyResilienceBackoff),
		},
		ServeAddr:    strings.TrimSpace(v.GetString(KeyServeAddr)),
		ScheduleDays: v.GetInt(KeyScheduleDays),
		LogLevel:     strings.ToLower(strings.TrimSpace(v.GetString(KeyLogLevel))),
	}

	if err := validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func validate(cfg *Config) error {
	if cfg.HTTP.Timeout <= 0 {
		return fmt.Errorf("%s must be positive", KeyHTTPTimeout)
	}
	if cfg.ScheduleDays <= 0 {
		return fmt.Errorf("%s must be positive", KeyScheduleDays)
	}
	if cfg.Providers.Nuremberg.OrtID < 0 {
		return fmt.Errorf("%s must not be negative", KeyNurembergOrtID)
	}
	if cfg.Resilience.Rate < 0 {
		return fmt.Errorf("%s must not be negative", KeyResilienceRate)
	}
	switch cfg.LogLevel {
	case "quiet", "standard", "debug":
	default:
		return fmt.Errorf("invalid %s %q (expected quiet|standard|debug)", KeyLogLevel, cfg.LogLevel)
	}
	return nil
}
