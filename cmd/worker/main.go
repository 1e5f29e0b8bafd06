// Package main provides the worker command that crawls exhibitor search results and converts them to CSV in one run.
package main

import (
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	"messecrawl/internal/config"
	"messecrawl/internal/converter"
	"messecrawl/internal/crawler"
	"messecrawl/internal/logger"
	"messecrawl/internal/validator"
)

type options struct {
	configFile string
	targetURL  string
	localFile  string
	output     string
	logLevel   string
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "❌ %v\n", err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:           "worker",
		Short:         "Crawl exhibitor search results and convert them to CSV",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd, opts)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.configFile, "config", "", "Path to YAML configuration file (default "+config.DefaultConfigPath+" if present)")
	flags.StringVar(&opts.targetURL, "url", "", "Search results URL to crawl (replaces configured sources)")
	flags.StringVar(&opts.localFile, "file", "", "Saved search results page to extract (replaces configured sources)")
	flags.StringVarP(&opts.output, "output", "o", "", "Output CSV file (overrides config)")
	flags.StringVar(&opts.logLevel, "log-level", "", "Log level: debug, info, warn, error (overrides config)")
	cmd.MarkFlagsMutuallyExclusive("url", "file")

	return cmd
}

func run(cmd *cobra.Command, opts *options) error {
	cfg, _, err := config.Resolve(opts.configFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	switch {
	case opts.targetURL != "":
		cfg.Crawler.Sources = []config.SourceConfig{{Name: "CLI Argument", URL: opts.targetURL, Enabled: true}}
	case opts.localFile != "":
		cfg.Crawler.Sources = []config.SourceConfig{{Name: "CLI File", File: opts.localFile, Enabled: true}}
	}

	if opts.output != "" {
		cfg.Converter.Output = opts.output
	}

	if opts.logLevel != "" {
		cfg.Logging.Level = opts.logLevel
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	log := logger.NewLogger(cfg.Logging.Level)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	log.Info("🚀 Starting exhibitor pipeline")

	// Phase 1: crawl
	log.Info("Phase 1: Ingestion (Crawling)...")

	startTime := time.Now()
	client := crawler.NewClient(cfg, log)

	records, err := client.Crawl(ctx)
	if err != nil {
		client.URLManager().LogAttemptSummary(log)

		return fmt.Errorf("crawl failed: %w", err)
	}

	if _, err := crawler.SaveRecordsJSON(records, cfg.Crawler.Output); err != nil {
		return fmt.Errorf("save failed: %w", err)
	}

	log.Info(fmt.Sprintf("✅ Extracted %d records in %v", len(records), time.Since(startTime)))

	// Phase 2: convert
	log.Info("Phase 2: Processing (Normalization & CSV export)...")

	conv := converter.New(log, converter.Options{
		LinkOrigin: cfg.Converter.LinkOrigin,
		WriteBOM:   cfg.Converter.WriteBOM,
	})

	res := conv.Convert(ctx, cfg.Crawler.Output.Path, cfg.Converter.Output)
	if !res.OK {
		log.Info("Conversion failed", "input", res.Input, "error", res.Err)

		return nil
	}

	result := validator.NewRowValidator(cfg).Validate(res.Rows)
	log.Info(result.String())

	for _, warning := range result.Warnings {
		log.Warn(warning)
	}

	log.Info(fmt.Sprintf("✨ Pipeline complete in %v", time.Since(startTime)))

	return nil
}
