package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/payarise/payarise/internal/cli"
	"github.com/payarise/payarise/internal/service"
	"github.com/robfig/cron/v3"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func statsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Print the dashboard figures",
		Long: `Print average success by bank and method and the failure reason counts.
With --watch the figures are printed again on a cron schedule until
interrupted.`,
		Example: `  payarise stats
  payarise stats --watch "@every 30s"
  payarise stats --watch "*/5 * * * *"`,
		RunE: runStats,
	}

	cmd.Flags().String("watch", "", "cron schedule to reprint on")
	_ = viper.BindPFlag("stats.watch", cmd.Flags().Lookup("watch"))

	return cmd
}

func runStats(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	client, err := newBackend(cfg)
	if err != nil {
		return err
	}

	spec := viper.GetString("stats.watch")
	if spec == "" {
		return printStats(cmd.Context(), cmd.OutOrStdout(), client)
	}
	return watchStats(cmd.Context(), cmd.OutOrStdout(), client, spec)
}

func printStats(ctx context.Context, out io.Writer, fetcher service.StatsFetcher) error {
	stats, err := fetcher.GetStats(ctx)
	if err != nil {
		return fmt.Errorf("failed to load stats: %w", err)
	}
	fmt.Fprintln(out, cli.RenderStats(stats))
	return nil
}

// watchStats prints once, then on every tick of spec until ctx ends.
// Failed ticks are reported and the watch goes on.
func watchStats(ctx context.Context, out io.Writer, fetcher service.StatsFetcher, spec string) error {
	logger := cron.PrintfLogger(slog.NewLogLogger(slog.Default().Handler(), slog.LevelInfo))
	c := cron.New(cron.WithChain(cron.SkipIfStillRunning(logger), cron.Recover(logger)))

	tick := func() {
		if err := printStats(ctx, out, fetcher); err != nil {
			fmt.Fprintln(out, cli.FormatError(err.Error()))
		}
	}
	if _, err := c.AddFunc(spec, tick); err != nil {
		return fmt.Errorf("invalid watch schedule %q: %w", spec, err)
	}

	tick()
	c.Start()
	slog.Debug("Watching stats", "schedule", spec)

	<-ctx.Done()
	<-c.Stop().Done()
	return nil
}
