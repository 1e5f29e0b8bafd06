package crawler

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/go-resty/resty/v2"

	"messecrawl/internal/config"
)

// ErrUnexpectedStatusCode indicates an HTTP response with unexpected status.
var ErrUnexpectedStatusCode = errors.New("unexpected status code")

const userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/123.0.0.0 Safari/537.36"

// FetchResult describes a completed fetch.
type FetchResult struct {
	Content    []byte
	StatusCode int
	Attempts   int
	Duration   time.Duration
}

// Scraper handles web scraping operations with config-driven retry logic.
type Scraper struct {
	client       *resty.Client
	retryPolicy  config.RetryPolicy
	bufferSizeKb int
}

// NewScraper creates a new scraper instance with default config.
func NewScraper() *Scraper {
	cfg := config.Default()

	return NewScraperWithConfig(cfg.Crawler.Retry, cfg.Advanced.BufferSizeKb)
}

// NewScraperWithConfig creates a new scraper with custom retry policy.
func NewScraperWithConfig(retryPolicy config.RetryPolicy, bufferSizeKb int) *Scraper {
	client := resty.New().
		SetTimeout(retryPolicy.GetTimeout()).
		SetHeader("User-Agent", userAgent).
		SetHeader("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8").
		SetRetryCount(max(retryPolicy.MaxAttempts-1, 0)).
		SetRetryWaitTime(time.Duration(retryPolicy.InitialDelayMs) * time.Millisecond).
		SetRetryMaxWaitTime(time.Duration(retryPolicy.MaxDelayMs) * time.Millisecond).
		SetRetryAfter(func(_ *resty.Client, resp *resty.Response) (time.Duration, error) {
			// Delay before the next attempt, following the configured exponential backoff.
			return retryPolicy.GetRetryDelay(resp.Request.Attempt + 1), nil
		})

	client.AddRetryCondition(retryCondition)
	client.AddRetryHook(func(resp *resty.Response, _ error) {
		// Bodies are read by Fetch; a response that is retried is never read.
		if resp != nil && resp.RawBody() != nil {
			_ = resp.RawBody().Close()
		}
	})

	return &Scraper{
		client:       client,
		retryPolicy:  retryPolicy,
		bufferSizeKb: bufferSizeKb,
	}
}

// Fetch downloads url, retrying transport errors and temporary HTTP failures.
// At most the configured buffer size is read from the body.
func (s *Scraper) Fetch(ctx context.Context, url string) (*FetchResult, error) {
	start := time.Now()

	resp, err := s.client.R().
		SetContext(ctx).
		SetDoNotParseResponse(true).
		Get(url)

	result := &FetchResult{}
	if resp != nil {
		result.StatusCode = resp.StatusCode()
		result.Attempts = resp.Request.Attempt

		if body := resp.RawBody(); body != nil {
			defer body.Close()
		}
	}

	if err != nil {
		result.Duration = time.Since(start)

		return result, fmt.Errorf("request failed after %d attempts: %w", result.Attempts, err)
	}

	if resp.StatusCode() != http.StatusOK {
		result.Duration = time.Since(start)

		return result, fmt.Errorf("%w: %d", ErrUnexpectedStatusCode, resp.StatusCode())
	}

	// bufferSizeKb is in KB, convert to bytes
	var reader io.Reader = resp.RawBody()
	if limit := int64(s.bufferSizeKb) * 1024; limit > 0 {
		reader = io.LimitReader(reader, limit)
	}

	body, err := io.ReadAll(reader)
	result.Duration = time.Since(start)

	if err != nil {
		return result, fmt.Errorf("failed to read response body: %w", err)
	}

	result.Content = body

	return result, nil
}

// ReadLocalFile reads content from a saved page.
func (s *Scraper) ReadLocalFile(filePath string) (*FetchResult, error) {
	start := time.Now()

	content, err := os.ReadFile(filePath)
	if err != nil {
		return &FetchResult{Duration: time.Since(start)}, fmt.Errorf("failed to read local file %s: %w", filePath, err)
	}

	return &FetchResult{Content: content, Attempts: 1, Duration: time.Since(start)}, nil
}

// retryCondition retries transport errors and temporary HTTP failures.
func retryCondition(r *resty.Response, err error) bool {
	if err != nil {
		return !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded)
	}

	if r == nil {
		return false
	}

	return isRetryableStatus(r.StatusCode())
}

// isRetryableStatus determines if we should retry based on HTTP status code.
func isRetryableStatus(statusCode int) bool {
	switch statusCode {
	case http.StatusServiceUnavailable,
		http.StatusGatewayTimeout,
		http.StatusTooManyRequests,
		http.StatusRequestTimeout:
		return true
	}

	return false
}
