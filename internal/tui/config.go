package tui

import (
	"context"
	"time"

	"github.com/payarise/payarise/internal/flow"
	"github.com/payarise/payarise/internal/model"
	"github.com/payarise/payarise/internal/receiver"
	"github.com/payarise/payarise/internal/risk"
	"github.com/payarise/payarise/internal/service"
	"github.com/payarise/payarise/internal/tui/themes"
)

// Predictor returns a normalized prediction. Implementations never fail;
// recovered backend errors travel inside the result.
type Predictor interface {
	Predict(ctx context.Context, payload model.PredictionPayload) risk.Result
}

// OutcomeResolver turns a confirmed payment into its final outcome.
type OutcomeResolver interface {
	Resolve(p risk.Payment) model.Outcome
}

// Config holds TUI configuration.
type Config struct {
	Theme            themes.Theme
	Predictor        Predictor
	Resolver         service.ReceiverResolver
	Outcomes         OutcomeResolver
	Logger           service.TransactionLogger
	Clock            func() time.Time
	DefaultMethod    model.Method
	LookupDebounce   time.Duration
	AmountDebounce   time.Duration
	ProcessingDelay  time.Duration
	TapWindow        time.Duration
	RequestTimeout   time.Duration
	Width            int
	Height           int
	EnableAnimations bool
	ShowHelp         bool
}

// Option is a functional option for configuring the TUI.
type Option func(*Config)

// defaultConfig returns the default configuration. The predictor has no
// backend and the resolver answers locally.
func defaultConfig() Config {
	return Config{
		Theme:            themes.Default,
		Predictor:        risk.NewPredictionClient(nil, nil),
		Resolver:         receiver.NewLocalResolver(receiver.DefaultLatency),
		Outcomes:         risk.NewOutcomeResolver(nil, nil),
		Clock:            time.Now,
		LookupDebounce:   400 * time.Millisecond,
		AmountDebounce:   750 * time.Millisecond,
		ProcessingDelay:  900 * time.Millisecond,
		TapWindow:        flow.DefaultTapWindow,
		RequestTimeout:   10 * time.Second,
		Width:            60,
		Height:           24,
		EnableAnimations: true,
		ShowHelp:         true,
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

// WithPredictor sets the prediction client.
func WithPredictor(p Predictor) Option {
	return func(c *Config) {
		c.Predictor = p
	}
}

// WithResolver sets the receiver resolver.
func WithResolver(r service.ReceiverResolver) Option {
	return func(c *Config) {
		c.Resolver = r
	}
}

// WithOutcomeResolver sets the outcome resolver.
func WithOutcomeResolver(r OutcomeResolver) Option {
	return func(c *Config) {
		c.Outcomes = r
	}
}

// WithDefaultMethod sets the transfer card highlighted when the type
// screen opens.
func WithDefaultMethod(method model.Method) Option {
	return func(c *Config) {
		c.DefaultMethod = method
	}
}

// WithTransactionLogger logs every finished payment. Without it outcomes
// are not recorded.
func WithTransactionLogger(l service.TransactionLogger) Option {
	return func(c *Config) {
		c.Logger = l
	}
}

// WithClock sets the time source for prediction-card taps.
func WithClock(now func() time.Time) Option {
	return func(c *Config) {
		c.Clock = now
	}
}

// WithTimings sets the debounce, processing and tap window durations.
// Zero values keep the defaults.
func WithTimings(lookup, amount, processing, tapWindow time.Duration) Option {
	return func(c *Config) {
		if lookup > 0 {
			c.LookupDebounce = lookup
		}
		if amount > 0 {
			c.AmountDebounce = amount
		}
		if processing > 0 {
			c.ProcessingDelay = processing
		}
		if tapWindow > 0 {
			c.TapWindow = tapWindow
		}
	}
}

// WithRequestTimeout bounds each resolver and predictor call.
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
