package main

import (
	"github.com/payarise/payarise/internal/tui/dashboard"
	"github.com/payarise/payarise/internal/tui/themes"
	"github.com/spf13/cobra"
)

func dashboardCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "Chart payment success statistics",
		Long: `Show success rates by bank and method and the most common failure
reasons, with a form for running predictions by hand. Every prediction
made from the form is logged and the charts refresh.`,
		RunE: runDashboard,
	}
}

func runDashboard(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	client, err := newBackend(cfg)
	if err != nil {
		return err
	}

	quietLogging()
	return dashboard.Run(cmd.Context(),
		dashboard.WithBackend(client),
		dashboard.WithTheme(themes.GetTheme(cfg.UI.Theme)),
		dashboard.WithRequestTimeout(cfg.Backend.Timeout),
	)
}
