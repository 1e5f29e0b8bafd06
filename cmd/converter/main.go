// Package main provides the converter command that turns extracted exhibitor JSON into a CSV file.
package main

import (
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"messecrawl/internal/config"
	"messecrawl/internal/converter"
	"messecrawl/internal/formatter"
	"messecrawl/internal/logger"
	"messecrawl/internal/validator"
)

type options struct {
	configFile string
	input      string
	output     string
	logLevel   string
	validate   bool
	preview    int
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
		Use:           "converter",
		Short:         "Convert extracted exhibitor JSON into a normalized CSV file",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd, opts)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.configFile, "config", "", "Path to YAML configuration file (default "+config.DefaultConfigPath+" if present)")
	flags.StringVarP(&opts.input, "input", "i", "", "Input JSON file (overrides config, default "+config.DefaultInput+")")
	flags.StringVarP(&opts.output, "output", "o", "", "Output CSV file (overrides config, default "+config.DefaultOutput+")")
	flags.StringVar(&opts.logLevel, "log-level", "", "Log level: debug, info, warn, error (overrides config)")
	flags.BoolVar(&opts.validate, "validate", false, "Report data quality of the converted rows")
	flags.IntVar(&opts.preview, "preview", 0, "Print the first N converted rows as a table")

	return cmd
}

func run(cmd *cobra.Command, opts *options) error {
	cfg, cfgPath, err := config.Resolve(opts.configFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if opts.input != "" {
		cfg.Converter.Input = opts.input
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

	if opts.preview < 0 {
		return fmt.Errorf("--preview must not be negative, got %d", opts.preview)
	}

	log := logger.NewLogger(cfg.Logging.Level)
	if cfgPath != "" {
		log.Debug("⚙️  Configuration loaded", "path", cfgPath, "config", cfg.String())
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	conv := converter.New(log, converter.Options{
		LinkOrigin: cfg.Converter.LinkOrigin,
		WriteBOM:   cfg.Converter.WriteBOM,
	})

	res := conv.Convert(ctx, cfg.Converter.Input, cfg.Converter.Output)
	if !res.OK {
		// A failed conversion is reported, not signalled through the exit code.
		log.Info("Conversion failed", "input", res.Input, "error", res.Err)

		return nil
	}

	log.Info(fmt.Sprintf("✅ Converted %d rows in %v", len(res.Rows), res.Duration))

	out := cmd.OutOrStdout()

	if opts.validate {
		result := validator.NewRowValidator(cfg).Validate(res.Rows)
		result.PrintWarnings(out)
		result.PrintErrors(out)
		fmt.Fprintln(out, result)
	}

	if opts.preview > 0 {
		fmt.Fprintln(out, formatter.Preview(res.Rows, opts.preview, formatter.DefaultMaxCellWidth))
	}

	return nil
}
