package crawler

import (
	"errors"
	"fmt"
	"time"

	"messecrawl/internal/config"
)

// URL manager errors.
var (
	ErrNoSourcesAvailable  = errors.New("no sources available")
	ErrAllSourcesExhausted = errors.New("all sources exhausted")
)

// Logger is the logging surface used by the crawler.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// URLManager tracks enabled sources, their fallback locations and every fetch attempt.
type URLManager struct {
	attemptLog map[string][]AttemptResult
	sources    []config.SourceConfig
}

// AttemptResult records the result of a URL fetch.
type AttemptResult struct {
	Timestamp  time.Time
	URL        string
	Error      string
	Attempt    int
	Requests   int
	Duration   time.Duration
	StatusCode int
	Success    bool
}

// NewURLManager creates a new URL manager.
func NewURLManager(cfg *config.Config) *URLManager {
	return &URLManager{
		sources:    cfg.GetEnabledSources(),
		attemptLog: make(map[string][]AttemptResult),
	}
}

// Sources returns the enabled sources in configuration order.
func (um *URLManager) Sources() []config.SourceConfig {
	return um.sources
}

// Locations returns the places to fetch a source from, in fallback order.
// A local file has exactly one location.
func (um *URLManager) Locations(source config.SourceConfig) []string {
	if source.IsLocalFile() {
		return []string{source.File}
	}

	var urls []string

	for _, u := range source.GetAllURLs() {
		if u != "" {
			urls = append(urls, u)
		}
	}

	return urls
}

// RecordAttempt records the result of a fetch.
func (um *URLManager) RecordAttempt(location string, res *FetchResult, err error) {
	entry := AttemptResult{
		URL:       location,
		Attempt:   len(um.attemptLog[location]) + 1,
		Success:   err == nil,
		Timestamp: time.Now(),
	}

	if res != nil {
		entry.Requests = res.Attempts
		entry.Duration = res.Duration
		entry.StatusCode = res.StatusCode
	}

	if err != nil {
		entry.Error = err.Error()
	}

	um.attemptLog[location] = append(um.attemptLog[location], entry)
}

// GetAttemptLog returns the attempt log for a URL.
func (um *URLManager) GetAttemptLog(url string) []AttemptResult {
	return um.attemptLog[url]
}

// GetSourceCount returns the total number of sources.
func (um *URLManager) GetSourceCount() int {
	return len(um.sources)
}

// GetAttemptStats returns statistics about fetch attempts.
func (um *URLManager) GetAttemptStats() AttemptStats {
	stats := AttemptStats{
		TotalURLs:   len(um.attemptLog),
		URLAttempts: make(map[string]int),
	}

	for url, results := range um.attemptLog {
		stats.URLAttempts[url] = len(results)
		stats.TotalAttempts += len(results)

		urlSuccess := false

		for _, result := range results {
			if result.Success {
				stats.SuccessfulAttempts++
				urlSuccess = true
			} else {
				stats.FailedAttempts++
			}
		}

		if urlSuccess {
			stats.SuccessfulURLs++
		} else {
			stats.FailedURLs++
		}
	}

	return stats
}

// AttemptStats contains statistics about fetch attempts.
type AttemptStats struct {
	URLAttempts        map[string]int
	TotalURLs          int
	SuccessfulURLs     int
	FailedURLs         int
	TotalAttempts      int
	SuccessfulAttempts int
	FailedAttempts     int
}

// String returns a string representation of attempt stats.
func (s AttemptStats) String() string {
	return fmt.Sprintf(
		"URLs: %d total, %d success, %d failed | Attempts: %d total, %d success, %d failed",
		s.TotalURLs,
		s.SuccessfulURLs,
		s.FailedURLs,
		s.TotalAttempts,
		s.SuccessfulAttempts,
		s.FailedAttempts,
	)
}

// LogAttemptSummary logs a summary of fetch attempts using the provided logger.
func (um *URLManager) LogAttemptSummary(l Logger) {
	l.Info("📊 Fetch Attempt Summary:")

	for i, source := range um.sources {
		l.Info(fmt.Sprintf("%d. %s", i+1, source.Name))

		for _, location := range um.Locations(source) {
			results := um.attemptLog[location]

			l.Info(fmt.Sprintf("   URL: %s", location))

			if len(results) == 0 {
				l.Info("   Status: Not attempted")

				continue
			}

			for j, result := range results {
				statusStr := "✅ Success"
				if !result.Success {
					statusStr = fmt.Sprintf("❌ Failed: %s", result.Error)
				}

				l.Info(fmt.Sprintf("     Attempt %d: %s (%d requests, %.2fs)", j+1, statusStr, result.Requests, result.Duration.Seconds()))
			}
		}
	}

	l.Info(fmt.Sprintf("Overall: %s", um.GetAttemptStats()))
}

// Reset clears the attempt log.
func (um *URLManager) Reset() {
	um.attemptLog = make(map[string][]AttemptResult)
}
