package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/payarise/payarise/internal/backend"
	"github.com/payarise/payarise/internal/common"
	"github.com/payarise/payarise/internal/config"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile string
	logFile *os.File
	version = "dev"
	rootCmd = &cobra.Command{
		Use:   "payarise",
		Short: "₹ Payment success prediction demo",
		Long: `PayArise: a demo client for a payment risk prediction service.

It simulates a mobile payment flow that shows the chance of success before
you pay, and a dashboard that charts how payments have been going.`,
		PersistentPreRunE:  initConfig,
		PersistentPostRunE: closeLogging,
		SilenceUsage:       true,
	}
)

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: $HOME/.config/payarise/config.yaml)")
	rootCmd.PersistentFlags().String("backend-url", config.DefaultBaseURL, "prediction service base URL")
	rootCmd.PersistentFlags().String("theme", "default", "color theme (default, catppuccin-mocha)")
	rootCmd.PersistentFlags().String("log-level", "info", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("log-format", "console", "log format (console, json)")
	rootCmd.PersistentFlags().String("log-file", "", "write logs to this file instead of stderr")

	// Bind flags to viper
	_ = viper.BindPFlag("backend.base_url", rootCmd.PersistentFlags().Lookup("backend-url"))
	_ = viper.BindPFlag("ui.theme", rootCmd.PersistentFlags().Lookup("theme"))
	_ = viper.BindPFlag("logging.level", rootCmd.PersistentFlags().Lookup("log-level"))
	_ = viper.BindPFlag("logging.format", rootCmd.PersistentFlags().Lookup("log-format"))
	_ = viper.BindPFlag("logging.file", rootCmd.PersistentFlags().Lookup("log-file"))

	// Add commands
	rootCmd.AddCommand(mobileCmd())
	rootCmd.AddCommand(dashboardCmd())
	rootCmd.AddCommand(predictCmd())
	rootCmd.AddCommand(statsCmd())
	rootCmd.AddCommand(seedCmd())
	rootCmd.AddCommand(versionCmd())
}

func main() {
	// Set up signal handling
	ctx, cancel := context.WithCancel(context.Background())

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		slog.Info("Received interrupt signal, shutting down gracefully...")
		cancel()
	}()

	err := rootCmd.ExecuteContext(ctx)
	cancel() // Always cleanup

	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func initConfig(_ *cobra.Command, _ []string) error {
	// A .env file is optional
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to load .env: %w", err)
	}

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		dir, err := config.ConfigDir()
		if err != nil {
			return err
		}

		// Search for config in standard locations
		viper.AddConfigPath(dir)
		viper.AddConfigPath(".")
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
	}

	// Environment variables, e.g. PAYARISE_BACKEND_BASE_URL
	viper.SetEnvPrefix("PAYARISE")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("failed to read config: %w", err)
		}
		// Config file not found is OK, we'll use defaults
	}
	config.SetDefaults(viper.GetViper())

	if err := setupLogging(); err != nil {
		return fmt.Errorf("failed to setup logging: %w", err)
	}
	return nil
}

// setupLogging sends logs to logging.file when set, else stderr.
func setupLogging() error {
	var w io.Writer = os.Stderr
	if path := config.ExpandPath(viper.GetString("logging.file")); path != "" {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return fmt.Errorf("failed to open log file: %w", err)
		}
		logFile = f
		w = f
	}
	return common.SetupLogger(w, viper.GetString("logging.level"), viper.GetString("logging.format"))
}

// quietLogging silences stderr logging while a full-screen UI owns the
// terminal. A configured log file keeps receiving logs.
func quietLogging() {
	if logFile != nil {
		return
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func closeLogging(_ *cobra.Command, _ []string) error {
	if logFile == nil {
		return nil
	}
	err := logFile.Close()
	logFile = nil
	return err
}

func loadConfig() (config.Config, error) {
	return config.Load(viper.GetViper())
}

func newBackend(cfg config.Config) (*backend.Client, error) {
	client, err := backend.NewClient(cfg.Backend.BaseURL, cfg.Backend.Timeout, backend.WithRetries(cfg.Backend.Retries))
	if err != nil {
		return nil, err
	}
	slog.Debug("Using prediction service", "url", client.BaseURL(), "timeout", cfg.Backend.Timeout)
	return client, nil
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(_ *cobra.Command, _ []string) {
			slog.Info("payarise version", "version", version)
		},
	}
}
