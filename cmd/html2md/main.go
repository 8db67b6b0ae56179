// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the html2md CLI.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/pdiddy/html2md/internal/clean"
	"github.com/pdiddy/html2md/internal/config"
	"github.com/pdiddy/html2md/internal/gemini"
	"github.com/pdiddy/html2md/internal/logging"
	"github.com/pdiddy/html2md/internal/pipeline"
	"github.com/pdiddy/html2md/internal/secrets"
)

// version is set at build time via ldflags.
var version = "dev"

// errSilent signals a non-zero exit whose message was already printed.
var errSilent = errors.New("silent exit")

var (
	flagAPIKey     string
	flagConfig     string
	flagConcurrent int
	flagLogLevel   string
	flagOutput     string
)

var rootCmd = &cobra.Command{
	Use:   "html2md <directory>",
	Short: "Convert a directory of HTML files to a single Markdown document",
	Long: `html2md batch-converts the HTML files in a directory into one combined
Markdown document. Files are cleaned locally (denylisted tags, comments, and
inline styles removed), converted through the Gemini API under a shared rate
limit and concurrency ceiling, and stitched together in modification-time
order with configurable headers and separators.`,
	Example: `  html2md /path/to/html/files
  html2md /path/to/html/files --api-key YOUR_API_KEY
  html2md /path/to/html/files --output combined.md
  html2md /path/to/html/files --concurrent 20 --log-level DEBUG`,
	Args:          cobra.ExactArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          run,
}

func init() {
	rootCmd.Flags().StringVar(&flagAPIKey, "api-key", "", "Gemini API key (falls back to GEMINI_API_KEY)")
	rootCmd.Flags().StringVar(&flagConfig, "config", "config.json", "configuration file path")
	rootCmd.Flags().IntVar(&flagConcurrent, "concurrent", 0, "number of concurrent conversions (overrides config)")
	rootCmd.Flags().StringVar(&flagLogLevel, "log-level", "", "logging level: DEBUG, INFO, WARNING, or ERROR (overrides config)")
	rootCmd.Flags().StringVar(&flagOutput, "output", "output.md", "output filename, written inside the input directory")
}

func run(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return err
	}

	// CLI overrides land before any key is read.
	if flagConcurrent > 0 {
		cfg.Set("processing.max_concurrent", flagConcurrent)
	}
	if flagLogLevel != "" {
		cfg.Set("logging.level", flagLogLevel)
	}

	logger, closeLogs, err := logging.Setup(logging.Options{
		Level:       cfg.String("logging.level", "INFO"),
		File:        cfg.String("logging.file", "logs/html2md.log"),
		MaxBytes:    cfg.Int("logging.max_bytes", 10*1024*1024),
		BackupCount: cfg.Int("logging.backup_count", 5),
	})
	if err != nil {
		return err
	}
	defer closeLogs()

	apiKey, err := secrets.APIKey(flagAPIKey)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	client, err := gemini.New(ctx, apiKey, gemini.Options{
		Model:          cfg.String("gemini.model", "gemini-2.5-flash"),
		ThinkingBudget: cfg.Int("gemini.thinking_budget", -1),
		MaxRetries:     cfg.Int("gemini.max_retries", 3),
		RetryDelayBase: cfg.Seconds("gemini.retry_delay_base", 0),
		RatePerMinute:  cfg.Int("processing.rate_limit_per_minute", 875),
	}, logger)
	if err != nil {
		return err
	}

	runner := &pipeline.Runner{
		Cleaner:       clean.New(cfg.Strings("html_cleaning.remove_tags", nil)),
		Converter:     client,
		ResolveOutput: promptResolver(cmd.InOrStdin(), cmd.OutOrStdout()),
		Logger:        logger,
		Out:           cmd.OutOrStdout(),
		MaxConcurrent: cfg.Int("processing.max_concurrent", 20),
		Separator:     cfg.String("output.separator", "---"),
		AddHeaders:    cfg.Bool("output.add_headers", true),
	}

	_, err = runner.Run(ctx, args[0], flagOutput)
	switch {
	case errors.Is(err, pipeline.ErrCancelled):
		fmt.Fprintln(cmd.OutOrStdout(), "Operation cancelled.")
		return errSilent
	case errors.Is(err, context.Canceled):
		fmt.Fprintln(cmd.OutOrStdout())
		fmt.Fprintln(cmd.OutOrStdout(), "Operation cancelled by user.")
		return errSilent
	case err != nil:
		logger.Error("conversion failed", "error", err)
		return err
	}
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		if !errors.Is(err, errSilent) {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		os.Exit(1)
	}
}
