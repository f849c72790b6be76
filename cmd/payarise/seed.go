package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"math"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/payarise/payarise/internal/cli"
	"github.com/payarise/payarise/internal/common"
	"github.com/payarise/payarise/internal/model"
	"github.com/payarise/payarise/internal/service"
	"github.com/payarise/payarise/internal/tui/dashboard"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// seedAmounts are typical payment sizes, spread over the amount tiers the
// backend scores differently.
var seedAmounts = []float64{150, 499, 1200, 1999, 2500, 4800, 7500, 12000, 18000, 45000}

func seedCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Log a batch of random predictions",
		Long: `Run a batch of random predictions against the backend and log each one,
so the dashboard has something to show.`,
		RunE: runSeed,
	}

	cmd.Flags().Int("count", 25, "number of predictions to log")
	cmd.Flags().Int64("seed", 0, "random seed (default: current time)")

	_ = viper.BindPFlag("seed.count", cmd.Flags().Lookup("count"))
	_ = viper.BindPFlag("seed.seed", cmd.Flags().Lookup("seed"))

	return cmd
}

func runSeed(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	client, err := newBackend(cfg)
	if err != nil {
		return err
	}

	count := viper.GetInt("seed.count")
	if count <= 0 {
		return fmt.Errorf("count must be positive, got %d", count)
	}
	seed := viper.GetInt64("seed.seed")
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	out := cmd.OutOrStdout()
	interrupts := cli.NewInterruptHandler(out)
	ctx := interrupts.HandleInterrupts(cmd.Context())

	_, err = seedBackend(ctx, out, client, count, rand.New(rand.NewSource(seed)), interrupts)
	return err
}

// seedResult counts what one batch did.
type seedResult struct {
	BatchID string
	Logged  int
	Failed  int
}

// seedBackend logs count random predictions. Individual failures are
// counted and skipped; the batch fails only when nothing was logged.
func seedBackend(ctx context.Context, out io.Writer, b service.Backend, count int, rng *rand.Rand, interrupts *cli.InterruptHandler) (seedResult, error) {
	res := seedResult{BatchID: uuid.NewString()}
	slog.Info("Seeding backend", "batch_id", res.BatchID, "count", count)

	fmt.Fprintln(out, cli.FormatTitle(fmt.Sprintf("Seeding %d predictions", count)))
	bar := cli.NewProgress(out, count, "Logging predictions...")
	for i := 0; i < count; i++ {
		if ctx.Err() != nil {
			break
		}

		payload := randomPayload(rng)
		if err := predictAndLog(ctx, b, payload); err != nil {
			res.Failed++
			common.LogError(err, "Seed prediction failed", common.Fields{
				"batch_id": res.BatchID,
				"bank":     payload.Bank,
				"method":   payload.Method,
			})
		} else {
			res.Logged++
		}

		if interrupts != nil {
			interrupts.SetProgress(res.Logged, count)
		}
		if err := bar.Add(1); err != nil {
			slog.Warn("Failed to update progress bar", "error", err)
		}
	}

	if interrupts != nil && interrupts.WasInterrupted() {
		// The interrupt handler has already printed the progress.
		slog.Info("Seeding interrupted", "batch_id", res.BatchID, "logged", res.Logged, "failed", res.Failed)
		return res, nil
	}

	summary := fmt.Sprintf("Logged %d of %d predictions (batch %s)", res.Logged, count, res.BatchID)
	switch {
	case res.Logged == 0 && ctx.Err() == nil:
		return res, fmt.Errorf("no predictions were logged; is the backend running?")
	case res.Failed > 0:
		fmt.Fprintln(out, cli.FormatWarning(summary))
	default:
		fmt.Fprintln(out, cli.FormatSuccess(summary))
	}
	return res, nil
}

func predictAndLog(ctx context.Context, b service.Backend, payload model.PredictionPayload) error {
	resp, err := b.Predict(ctx, payload)
	if err != nil {
		return err
	}
	return b.LogTransaction(ctx, model.NewLogEntry(payload, resp))
}

// randomPayload picks from the dashboard form's choices. Retries and past
// failures lean towards zero.
func randomPayload(rng *rand.Rand) model.PredictionPayload {
	pick := func(options []string) string {
		return options[rng.Intn(len(options))]
	}
	skewed := func(limit int) int {
		return int(math.Floor(float64(limit+1) * rng.Float64() * rng.Float64()))
	}

	return model.PredictionPayload{
		Method:       pick(dashboard.MethodChoices),
		Bank:         pick(dashboard.BankChoices),
		Amount:       seedAmounts[rng.Intn(len(seedAmounts))],
		Network:      pick(dashboard.NetworkChoices),
		TimeOfDay:    pick(dashboard.TimeChoices),
		Retries:      skewed(3),
		PastFailures: skewed(5),
	}
}
