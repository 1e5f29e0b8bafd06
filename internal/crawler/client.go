package crawler

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"messecrawl/internal/config"
	"messecrawl/internal/models"
)

// Client ties fetching, extraction and fallback tracking together.
type Client struct {
	scraper    *Scraper
	extractor  *Extractor
	urlManager *URLManager
	log        Logger
}

// NewClient creates a crawler client from configuration.
func NewClient(cfg *config.Config, log Logger) *Client {
	return NewClientWithDeps(
		NewScraperWithConfig(cfg.Crawler.Retry, cfg.Advanced.BufferSizeKb),
		NewExtractorWithSchema(cfg.Crawler.Schema),
		NewURLManager(cfg),
		log,
	)
}

// NewClientWithDeps creates a new crawler client with injected dependencies.
func NewClientWithDeps(scraper *Scraper, extractor *Extractor, urlManager *URLManager, log Logger) *Client {
	return &Client{
		scraper:    scraper,
		extractor:  extractor,
		urlManager: urlManager,
		log:        log,
	}
}

// URLManager returns the client's attempt tracker.
func (c *Client) URLManager() *URLManager {
	return c.urlManager
}

// CrawlSource fetches one source, falling back to its backup URLs, and extracts its records.
func (c *Client) CrawlSource(ctx context.Context, source config.SourceConfig) ([]models.RawExhibitor, error) {
	locations := c.urlManager.Locations(source)
	if len(locations) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoSourcesAvailable, source.Name)
	}

	var lastErr error

	for _, location := range locations {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		var (
			res *FetchResult
			err error
		)

		if source.IsLocalFile() {
			c.log.Info("⏳ Reading local file", "path", location)
			res, err = c.scraper.ReadLocalFile(location)
		} else {
			c.log.Info("⏳ Fetching", "source", source.Name, "url", location)
			res, err = c.scraper.Fetch(ctx, location)
		}

		c.urlManager.RecordAttempt(location, res, err)

		if err != nil {
			c.log.Warn("❌ Fetch failed", "url", location, "error", err)
			lastErr = err

			continue
		}

		c.log.Info("✅ Fetched", "url", location, "bytes", len(res.Content), "duration", res.Duration)

		records, err := c.extractor.ExtractRecords(bytes.NewReader(res.Content))
		if err != nil {
			return nil, fmt.Errorf("failed to extract %s: %w", location, err)
		}

		return records, nil
	}

	return nil, fmt.Errorf("%w: %s: %w", ErrAllSourcesExhausted, source.Name, lastErr)
}

// Crawl processes every enabled source and concatenates their records in source order.
// A failing source is skipped; an error is returned only if no source succeeded.
func (c *Client) Crawl(ctx context.Context) ([]models.RawExhibitor, error) {
	sources := c.urlManager.Sources()
	if len(sources) == 0 {
		return nil, ErrNoSourcesAvailable
	}

	var (
		all       []models.RawExhibitor
		succeeded int
		lastErr   error
	)

	for i, source := range sources {
		c.log.Info(fmt.Sprintf("📦 Source %d/%d: %s", i+1, len(sources), source.Name))

		records, err := c.CrawlSource(ctx, source)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}

			c.log.Warn("⚠️  Skipping source", "source", source.Name, "error", err)
			lastErr = err

			continue
		}

		c.log.Info(fmt.Sprintf("✅ Extracted %d records", len(records)), "source", source.Name)

		succeeded++

		all = append(all, records...)
	}

	if succeeded == 0 {
		return nil, lastErr
	}

	return all, nil
}

// SaveRecordsJSON writes records as the JSON array consumed by the converter.
// With backup set, an existing file is moved to path + ".bak" first.
func SaveRecordsJSON(records []models.RawExhibitor, out config.OutputConfig) (string, error) {
	if records == nil {
		records = []models.RawExhibitor{}
	}

	var buf bytes.Buffer

	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)

	if out.PrettyPrint {
		enc.SetIndent("", "    ")
	}

	if err := enc.Encode(records); err != nil {
		return "", fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if dir := filepath.Dir(out.Path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return "", fmt.Errorf("could not create output directory: %w", err)
		}
	}

	backupPath := ""

	if out.CreateBackup {
		if _, statErr := os.Stat(out.Path); statErr == nil {
			backupPath = out.Path + ".bak"
			if err := os.Rename(out.Path, backupPath); err != nil {
				return "", fmt.Errorf("could not create backup: %w", err)
			}
		}
	}

	if err := os.WriteFile(out.Path, buf.Bytes(), 0644); err != nil {
		return backupPath, fmt.Errorf("failed to write file: %w", err)
	}

	return backupPath, nil
}
