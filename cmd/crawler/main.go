// Package main provides the crawler command that extracts exhibitor records from search result pages.
package main

import (
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"messecrawl/internal/config"
	"messecrawl/internal/crawler"
	"messecrawl/internal/logger"
	"messecrawl/internal/models"
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
		Use:           "crawler",
		Short:         "Extract exhibitor records from Hannover Messe search results into JSON",
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
	flags.StringVarP(&opts.output, "output", "o", "", "Output JSON file (overrides config)")
	flags.StringVar(&opts.logLevel, "log-level", "", "Log level: debug, info, warn, error (overrides config)")
	cmd.MarkFlagsMutuallyExclusive("url", "file")

	return cmd
}

func run(cmd *cobra.Command, opts *options) error {
	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}

	log := logger.NewLogger(cfg.Logging.Level)
	printCrawlerHeader(log, cfg)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	client := crawler.NewClient(cfg, log)

	records, err := client.Crawl(ctx)
	client.URLManager().LogAttemptSummary(log)

	if err != nil {
		return fmt.Errorf("crawl failed: %w", err)
	}

	backup, err := crawler.SaveRecordsJSON(records, cfg.Crawler.Output)
	if backup != "" {
		log.Info("💾 Backed up existing file", "path", backup)
	}

	if err != nil {
		return fmt.Errorf("save failed: %w", err)
	}

	log.Info(fmt.Sprintf("✅ Data saved to %s with %d results", cfg.Crawler.Output.Path, len(records)))
	logSample(log, records, cfg.Logging.SampleRows)

	return nil
}

// loadConfig resolves the configuration and applies command-line overrides.
func loadConfig(opts *options) (*config.Config, error) {
	cfg, _, err := config.Resolve(opts.configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	switch {
	case opts.targetURL != "":
		cfg.Crawler.Sources = []config.SourceConfig{{Name: "CLI Argument", URL: opts.targetURL, Enabled: true}}
	case opts.localFile != "":
		cfg.Crawler.Sources = []config.SourceConfig{{Name: "CLI File", File: opts.localFile, Enabled: true}}
	}

	if opts.output != "" {
		cfg.Crawler.Output.Path = opts.output
	}

	if opts.logLevel != "" {
		cfg.Logging.Level = opts.logLevel
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

func printCrawlerHeader(log *logger.Logger, cfg *config.Config) {
	log.Info("🕷️  Hannover Messe Exhibitor Crawler")
	log.Info(fmt.Sprintf("Available sources: %d", len(cfg.GetEnabledSources())))
	log.Info(fmt.Sprintf("Retry policy: max %d attempts, %.1fx backoff",
		cfg.Crawler.Retry.MaxAttempts,
		cfg.Crawler.Retry.BackoffMultiplier))
	log.Info(fmt.Sprintf("Output: %s", cfg.Crawler.Output.Path))
}

func logSample(log *logger.Logger, records []models.RawExhibitor, n int) {
	if n > len(records) {
		n = len(records)
	}

	if n <= 0 {
		return
	}

	log.Info("Sample of extracted data:")

	for i, rec := range records[:n] {
		log.Info(fmt.Sprintf("Item %d", i+1),
			"company_name", rec.CompanyName,
			"location", rec.Location,
			"stand", rec.Stand,
			"product_link", rec.ProductLink,
		)
	}
}
