package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
)

// Run starts the mobile payment flow and blocks until the user quits or
// ctx is canceled.
func Run(ctx context.Context, opts ...Option) error {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	if err := cfg.validate(); err != nil {
		return err
	}

	// Cancel on SIGTERM as well as interrupt
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	p := tea.NewProgram(newModel(cfg), tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return nil
		}
		return fmt.Errorf("mobile UI error: %w", err)
	}
	return nil
}

func (c Config) validate() error {
	switch {
	case c.Predictor == nil:
		return fmt.Errorf("predictor is required")
	case c.Resolver == nil:
		return fmt.Errorf("receiver resolver is required")
	case c.Outcomes == nil:
		return fmt.Errorf("outcome resolver is required")
	case c.Clock == nil:
		return fmt.Errorf("clock is required")
	}
	return nil
}
