// Package converter turns the crawler's exhibitor JSON into a flat CSV file.
package converter

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"messecrawl/internal/models"
	"messecrawl/internal/normalizer"
)

// Conversion errors. All of them end a run; none is retried.
var (
	ErrSourceRead  = errors.New("source read error")
	ErrEmptySource = errors.New("source contains no records")
	ErrSinkWrite   = errors.New("sink write error")
)

// Logger is the logging port used by the converter.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// Options configures a Converter.
type Options struct {
	LinkOrigin string
	WriteBOM   bool
}

// Result describes the outcome of one conversion run.
type Result struct {
	Err      error
	Input    string
	Output   string
	Rows     []models.ExhibitorRow
	Duration time.Duration
	OK       bool
}

// Converter reads raw records, normalizes them and writes the CSV.
type Converter struct {
	log       Logger
	processor *normalizer.Processor
	writeBOM  bool
}

// New creates a converter that reports through log.
func New(log Logger, opts Options) *Converter {
	return &Converter{
		log:       log,
		processor: normalizer.NewProcessorWithTransformer(normalizer.NewTransformerWithOrigin(opts.LinkOrigin)),
		writeBOM:  opts.WriteBOM,
	}
}

// Convert runs one conversion. Failures are logged and returned in the Result;
// the output file is only created when every record was written.
// An input without records produces no output file.
func (c *Converter) Convert(ctx context.Context, inputPath, outputPath string) Result {
	start := time.Now()
	res := Result{Input: inputPath, Output: outputPath}

	c.log.Info(fmt.Sprintf("Converting %s to %s", inputPath, outputPath))

	if _, err := os.Stat(inputPath); err != nil {
		c.log.Error(fmt.Sprintf("Input file %s not found", inputPath), "error", err)

		return c.fail(res, start, fmt.Errorf("%w: %w", ErrSourceRead, err))
	}

	records, err := ReadRecordsFile(inputPath)
	if err != nil {
		if errors.Is(err, ErrEmptySource) {
			c.log.Warn("No data found in the JSON file", "input", inputPath)
		} else {
			c.log.Error("Error reading JSON file", "input", inputPath, "error", err)
		}

		return c.fail(res, start, err)
	}

	c.log.Debug("Records loaded", "count", len(records))

	rows, err := c.processor.Process(records)
	if err != nil {
		c.log.Error("Error normalizing records", "error", err)

		return c.fail(res, start, err)
	}

	if err := ctx.Err(); err != nil {
		c.log.Error("Conversion cancelled", "error", err)

		return c.fail(res, start, err)
	}

	if err := WriteRowsFile(outputPath, rows, c.writeBOM); err != nil {
		c.log.Error("Error writing to CSV", "output", outputPath, "error", err)

		return c.fail(res, start, err)
	}

	res.Rows = rows
	res.OK = true
	res.Duration = time.Since(start)

	c.log.Info(fmt.Sprintf("Successfully converted to %s", outputPath), "rows", len(rows))

	return res
}

func (c *Converter) fail(res Result, start time.Time, err error) Result {
	res.Err = err
	res.Duration = time.Since(start)

	return res
}
