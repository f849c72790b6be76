package main

import (
	"context"
	"fmt"
	"io"
	"math"

	"github.com/payarise/payarise/internal/cli"
	"github.com/payarise/payarise/internal/common"
	"github.com/payarise/payarise/internal/model"
	"github.com/payarise/payarise/internal/service"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func predictCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "predict",
		Short: "Run one manual prediction",
		Long: `Ask the backend how likely a payment is to succeed, print its answer
and log it so it shows up in the dashboard.`,
		Example: `  payarise predict --amount 2500 --bank HDFC --network Fast`,
		RunE:    runPredict,
	}

	cmd.Flags().String("method", "UPI", "payment method (UPI, Card, Wallet)")
	cmd.Flags().String("bank", model.DefaultBank, "bank name")
	cmd.Flags().Float64("amount", 0, "amount in rupees")
	cmd.Flags().String("network", model.DefaultNetwork, "network quality (Fast, Average, Slow)")
	cmd.Flags().String("time", model.DefaultTimeOfDay, "time of day (Morning, Afternoon, Evening, Night, Late Night)")
	cmd.Flags().Int("retries", 0, "retries of this payment so far")
	cmd.Flags().Int("failures", 0, "past failures for this payer")
	cmd.Flags().Bool("no-log", false, "do not log the prediction")
	_ = cmd.MarkFlagRequired("amount")

	_ = viper.BindPFlag("predict.method", cmd.Flags().Lookup("method"))
	_ = viper.BindPFlag("predict.bank", cmd.Flags().Lookup("bank"))
	_ = viper.BindPFlag("predict.amount", cmd.Flags().Lookup("amount"))
	_ = viper.BindPFlag("predict.network", cmd.Flags().Lookup("network"))
	_ = viper.BindPFlag("predict.time", cmd.Flags().Lookup("time"))
	_ = viper.BindPFlag("predict.retries", cmd.Flags().Lookup("retries"))
	_ = viper.BindPFlag("predict.failures", cmd.Flags().Lookup("failures"))
	_ = viper.BindPFlag("predict.no_log", cmd.Flags().Lookup("no-log"))

	return cmd
}

func runPredict(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	client, err := newBackend(cfg)
	if err != nil {
		return err
	}

	payload := model.PredictionPayload{
		Method:       viper.GetString("predict.method"),
		Bank:         viper.GetString("predict.bank"),
		Amount:       viper.GetFloat64("predict.amount"),
		Network:      viper.GetString("predict.network"),
		TimeOfDay:    viper.GetString("predict.time"),
		Retries:      viper.GetInt("predict.retries"),
		PastFailures: viper.GetInt("predict.failures"),
	}
	return predictOnce(cmd.Context(), cmd.OutOrStdout(), client, payload, !viper.GetBool("predict.no_log"))
}

// predictOnce runs the dashboard form cycle without a UI: predict, show,
// then log.
func predictOnce(ctx context.Context, out io.Writer, b service.Backend, payload model.PredictionPayload, logIt bool) error {
	if err := validatePayload(payload); err != nil {
		return err
	}

	resp, err := b.Predict(ctx, payload)
	if err != nil {
		return fmt.Errorf("prediction failed: %w", err)
	}

	fmt.Fprintln(out, cli.FormatPayload(payload))
	fmt.Fprintln(out, cli.FormatPrediction(resp))

	if !logIt {
		return nil
	}
	if err := b.LogTransaction(ctx, model.NewLogEntry(payload, resp)); err != nil {
		return fmt.Errorf("failed to log prediction: %w", err)
	}
	fmt.Fprintln(out, cli.FormatSuccess("Logged"))
	return nil
}

func validatePayload(p model.PredictionPayload) error {
	switch {
	case p.Amount <= 0, math.IsNaN(p.Amount), math.IsInf(p.Amount, 0):
		return fmt.Errorf("%w: amount must be a positive number", common.ErrInvalidPayload)
	case p.Retries < 0, p.PastFailures < 0:
		return fmt.Errorf("%w: retries and failures must not be negative", common.ErrInvalidPayload)
	case p.Method == "", p.Bank == "":
		return fmt.Errorf("%w: method and bank are required", common.ErrInvalidPayload)
	}
	return nil
}
