package dashboard

import (
	"time"

	"github.com/payarise/payarise/internal/service"
	"github.com/payarise/payarise/internal/tui/themes"
)

// Config holds dashboard configuration.
type Config struct {
	Theme            themes.Theme
	Backend          service.Backend
	RequestTimeout   time.Duration
	Width            int
	Height           int
	EnableAnimations bool
	ShowHelp         bool
}

// Option is a functional option for configuring the dashboard.
type Option func(*Config)

func defaultConfig() Config {
	return Config{
		Theme:            themes.Default,
		RequestTimeout:   10 * time.Second,
		Width:            100,
		Height:           40,
		EnableAnimations: true,
		ShowHelp:         true,
	}
}

// WithBackend sets the prediction service the dashboard talks to.
func WithBackend(b service.Backend) Option {
	return func(c *Config) {
		c.Backend = b
	}
}

// WithTheme sets the visual theme.
func WithTheme(theme themes.Theme) Option {
	return func(c *Config) {
		c.Theme = theme
	}
}

// WithSize sets the initial terminal size.
func WithSize(width, height int) Option {
	return func(c *Config) {
		c.Width = width
		c.Height = height
	}
}

// WithRequestTimeout bounds each backend call.
func WithRequestTimeout(d time.Duration) Option {
	return func(c *Config) {
		c.RequestTimeout = d
	}
}

// WithAnimations toggles spinners and cursor blinking.
func WithAnimations(enabled bool) Option {
	return func(c *Config) {
		c.EnableAnimations = enabled
	}
}

// WithHelp toggles the key hint line.
func WithHelp(enabled bool) Option {
	return func(c *Config) {
		c.ShowHelp = enabled
	}
}
