// Package config provides configuration utilities for the application.
package config

import (
	"fmt"
	"net/url"
	"time"

	"github.com/payarise/payarise/internal/common"
	"github.com/payarise/payarise/internal/model"
	"github.com/spf13/viper"
)

// DefaultBaseURL is the backend address used when none is configured.
const DefaultBaseURL = "http://127.0.0.1:5000"

// Config holds the resolved application settings.
type Config struct {
	Backend BackendConfig
	Mobile  MobileConfig
	UI      UIConfig
	Logging LoggingConfig
}

// BackendConfig describes how to reach the prediction service.
type BackendConfig struct {
	BaseURL string
	Timeout time.Duration
	Retries int
}

// MobileConfig holds the mobile flow timings.
type MobileConfig struct {
	LookupDebounce  time.Duration
	AmountDebounce  time.Duration
	LookupLatency   time.Duration
	ProcessingDelay time.Duration
	TapWindow       time.Duration
	DefaultMethod   model.Method
	LogOutcomes     bool
}

// UIConfig holds presentation settings.
type UIConfig struct {
	Theme string
}

// LoggingConfig controls slog output.
type LoggingConfig struct {
	Level  string
	Format string
	File   string
}

// SetDefaults registers default values on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("backend.base_url", DefaultBaseURL)
	v.SetDefault("backend.timeout", 5*time.Second)
	v.SetDefault("backend.retries", 2)

	v.SetDefault("mobile.lookup_debounce", 400*time.Millisecond)
	v.SetDefault("mobile.amount_debounce", 750*time.Millisecond)
	v.SetDefault("mobile.lookup_latency", 350*time.Millisecond)
	v.SetDefault("mobile.processing_delay", 900*time.Millisecond)
	v.SetDefault("mobile.tap_window", 600*time.Millisecond)
	v.SetDefault("mobile.default_method", string(model.MethodMobile))
	v.SetDefault("mobile.log_outcomes", false)

	v.SetDefault("ui.theme", "default")

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("logging.file", "")
}

// Load reads the configuration from v and validates it.
func Load(v *viper.Viper) (Config, error) {
	SetDefaults(v)

	method, err := model.ParseMethod(v.GetString("mobile.default_method"))
	if err != nil {
		return Config{}, fmt.Errorf("%w: mobile.default_method: %w", common.ErrInvalidConfig, err)
	}

	cfg := Config{
		Backend: BackendConfig{
			BaseURL: v.GetString("backend.base_url"),
			Timeout: v.GetDuration("backend.timeout"),
			Retries: v.GetInt("backend.retries"),
		},
		Mobile: MobileConfig{
			LookupDebounce:  v.GetDuration("mobile.lookup_debounce"),
			AmountDebounce:  v.GetDuration("mobile.amount_debounce"),
			LookupLatency:   v.GetDuration("mobile.lookup_latency"),
			ProcessingDelay: v.GetDuration("mobile.processing_delay"),
			TapWindow:       v.GetDuration("mobile.tap_window"),
			DefaultMethod:   method,
			LogOutcomes:     v.GetBool("mobile.log_outcomes"),
		},
		UI: UIConfig{
			Theme: v.GetString("ui.theme"),
		},
		Logging: LoggingConfig{
			Level:  v.GetString("logging.level"),
			Format: v.GetString("logging.format"),
			File:   ExpandPath(v.GetString("logging.file")),
		},
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks that the configuration is usable.
func (c Config) Validate() error {
	if c.Backend.BaseURL == "" {
		return fmt.Errorf("%w: backend.base_url", common.ErrMissingConfig)
	}
	u, err := url.Parse(c.Backend.BaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("%w: backend.base_url %q must be an http(s) URL", common.ErrInvalidConfig, c.Backend.BaseURL)
	}
	if c.Backend.Timeout <= 0 {
		return fmt.Errorf("%w: backend.timeout must be positive", common.ErrInvalidConfig)
	}
	if c.Backend.Retries < 0 {
		return fmt.Errorf("%w: backend.retries must not be negative", common.ErrInvalidConfig)
	}

	durations := map[string]time.Duration{
		"mobile.lookup_debounce":  c.Mobile.LookupDebounce,
		"mobile.amount_debounce":  c.Mobile.AmountDebounce,
		"mobile.lookup_latency":   c.Mobile.LookupLatency,
		"mobile.processing_delay": c.Mobile.ProcessingDelay,
		"mobile.tap_window":       c.Mobile.TapWindow,
	}
	for key, d := range durations {
		if d <= 0 {
			return fmt.Errorf("%w: %s must be positive", common.ErrInvalidConfig, key)
		}
	}
	return nil
}
