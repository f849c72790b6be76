package main

import (
	"github.com/payarise/payarise/internal/config"
	"github.com/payarise/payarise/internal/receiver"
	"github.com/payarise/payarise/internal/risk"
	"github.com/payarise/payarise/internal/service"
	"github.com/payarise/payarise/internal/tui"
	"github.com/payarise/payarise/internal/tui/themes"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func mobileCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mobile",
		Short: "Run the mobile payment flow",
		Long: `Simulate paying someone from a phone: log in, pick a receiver, enter an
amount and see the chance the payment goes through before entering your PIN.

Predictions come from the backend. When it cannot be reached a local
estimate is shown instead.`,
		RunE: runMobile,
	}

	cmd.Flags().Bool("log-outcomes", false, "log each finished payment to the backend")
	cmd.Flags().String("method", "mobile", "transfer card highlighted first (mobile, upi, bank)")

	_ = viper.BindPFlag("mobile.log_outcomes", cmd.Flags().Lookup("log-outcomes"))
	_ = viper.BindPFlag("mobile.default_method", cmd.Flags().Lookup("method"))

	return cmd
}

func runMobile(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	client, err := newBackend(cfg)
	if err != nil {
		return err
	}

	quietLogging()
	return tui.Run(cmd.Context(), mobileOptions(cfg, client)...)
}

// mobileOptions wires the configured timings and the backend into the
// mobile UI. Outcomes are only logged when enabled.
func mobileOptions(cfg config.Config, b service.Backend) []tui.Option {
	opts := []tui.Option{
		tui.WithTheme(themes.GetTheme(cfg.UI.Theme)),
		tui.WithPredictor(risk.NewPredictionClient(b, nil)),
		tui.WithResolver(receiver.NewLocalResolver(cfg.Mobile.LookupLatency)),
		tui.WithOutcomeResolver(risk.NewOutcomeResolver(nil, nil)),
		tui.WithTimings(
			cfg.Mobile.LookupDebounce,
			cfg.Mobile.AmountDebounce,
			cfg.Mobile.ProcessingDelay,
			cfg.Mobile.TapWindow,
		),
		tui.WithRequestTimeout(cfg.Backend.Timeout),
		tui.WithDefaultMethod(cfg.Mobile.DefaultMethod),
	}
	if cfg.Mobile.LogOutcomes {
		opts = append(opts, tui.WithTransactionLogger(b))
	}
	return opts
}
