// Package config provides configuration management for the crawler and converter.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"messecrawl/internal/models"
)

// Configuration validation errors.
var (
	ErrSourceMissingURLOrFile   = errors.New("either URL or file path is required")
	ErrInvalidMaxAttempts       = errors.New("retry.max_attempts must be at least 1")
	ErrInvalidInitialDelay      = errors.New("retry.initial_delay_ms must be non-negative")
	ErrInvalidBackoffMultiplier = errors.New("retry.backoff_multiplier must be >= 1.0")
	ErrInvalidTimeout           = errors.New("retry.timeout_sec must be at least 1")
	ErrMissingSchemaSelector    = errors.New("schema.base_selector is required")
	ErrNoSchemaFields           = errors.New("schema.fields must not be empty")
	ErrInvalidSchemaField       = errors.New("schema field requires name and selector")
	ErrInvalidSchemaFieldType   = errors.New("schema field type must be 'text' or 'attribute'")
	ErrMissingAttribute         = errors.New("attribute field requires attribute name")
	ErrMissingConverterInput    = errors.New("converter.input is required")
	ErrMissingConverterOutput   = errors.New("converter.output is required")
	ErrUnknownRequiredField     = errors.New("validation.required_fields contains an unknown column")
	ErrInvalidLogLevel          = errors.New("logging.level must be one of: debug, info, warn, error")
	ErrInvalidBufferSize        = errors.New("advanced.buffer_size_kb must be at least 1")
)

// Defaults used when the configuration leaves a value unset.
const (
	DefaultInput      = "bde.json"
	DefaultOutput     = "bde_processed.csv"
	DefaultLinkOrigin = "https://www.hannovermesse.de"
	DefaultSearchURL  = "https://www.hannovermesse.de/de/suche/"
	DefaultCrawlOut   = "hannover_messe_results.json"
	DefaultConfigPath = "configs/messecrawl.yaml"
)

// Field types of a selector schema.
const (
	FieldTypeText      = "text"
	FieldTypeAttribute = "attribute"
)

// Config represents the complete pipeline configuration.
type Config struct {
	Crawler    CrawlerConfig    `yaml:"crawler"`
	Converter  ConverterConfig  `yaml:"converter"`
	Validation ValidationConfig `yaml:"validation"`
	Logging    LoggingConfig    `yaml:"logging"`
	Advanced   AdvancedConfig   `yaml:"advanced"`
}

// CrawlerConfig contains crawler-specific settings.
type CrawlerConfig struct {
	Output  OutputConfig   `yaml:"output"`
	Schema  SchemaConfig   `yaml:"schema"`
	Sources []SourceConfig `yaml:"sources"`
	Retry   RetryPolicy    `yaml:"retry"`
}

// SourceConfig represents a search results page to extract exhibitors from.
type SourceConfig struct {
	Name       string   `yaml:"name"`
	URL        string   `yaml:"url"`
	File       string   `yaml:"file"`
	BackupURLs []string `yaml:"backup_urls"`
	Enabled    bool     `yaml:"enabled"`
}

// IsLocalFile returns true if this source uses a saved HTML snapshot.
func (s *SourceConfig) IsLocalFile() bool {
	return s.File != ""
}

// GetSource returns the file path if local, or URL if remote.
func (s *SourceConfig) GetSource() string {
	if s.IsLocalFile() {
		return s.File
	}

	return s.URL
}

// GetAllURLs returns all URLs (primary + backups) for a source.
func (s *SourceConfig) GetAllURLs() []string {
	urls := []string{s.URL}
	urls = append(urls, s.BackupURLs...)

	return urls
}

// RetryPolicy defines retry behavior.
type RetryPolicy struct {
	MaxAttempts       int     `yaml:"max_attempts"`
	InitialDelayMs    int     `yaml:"initial_delay_ms"`
	MaxDelayMs        int     `yaml:"max_delay_ms"`
	BackoffMultiplier float64 `yaml:"backoff_multiplier"`
	TimeoutSec        int     `yaml:"timeout_sec"`
}

// OutputConfig defines where extracted records are written.
type OutputConfig struct {
	Path         string `yaml:"path"`
	PrettyPrint  bool   `yaml:"pretty_print"`
	CreateBackup bool   `yaml:"create_backup"`
}

// SchemaConfig is a CSS selector schema: one base selector per record and one selector per field.
type SchemaConfig struct {
	Name         string        `yaml:"name"`
	BaseSelector string        `yaml:"base_selector"`
	Fields       []FieldConfig `yaml:"fields"`
}

// FieldConfig extracts a single field relative to the base element.
type FieldConfig struct {
	Name      string `yaml:"name"`
	Selector  string `yaml:"selector"`
	Type      string `yaml:"type"`
	Attribute string `yaml:"attribute,omitempty"`
}

// ConverterConfig controls the JSON to CSV conversion.
type ConverterConfig struct {
	Input      string `yaml:"input"`
	Output     string `yaml:"output"`
	LinkOrigin string `yaml:"link_origin"`
	WriteBOM   bool   `yaml:"write_bom"`
}

// ValidationConfig defines row quality checks run after normalization.
type ValidationConfig struct {
	RequiredFields []string `yaml:"required_fields"`
}

// LoggingConfig defines logging behavior.
type LoggingConfig struct {
	Level      string `yaml:"level"`
	SampleRows int    `yaml:"sample_rows"`
}

// AdvancedConfig contains advanced settings.
type AdvancedConfig struct {
	BufferSizeKb int `yaml:"buffer_size_kb"`
}

// DefaultSchema returns the selector schema for the Hannover Messe search results list.
func DefaultSchema() SchemaConfig {
	return SchemaConfig{
		Name:         "Hannover Messe Search Results",
		BaseSelector: ".o.search.snippet.module-theme-100",
		Fields: []FieldConfig{
			{Name: models.ColCompanyName, Selector: ".t.set-300-bold.as-headline.search-snippet-name", Type: FieldTypeText},
			{Name: "location", Selector: ".t.set-040-wide.as-copy.search-snippet-attribute", Type: FieldTypeText},
			{Name: models.ColDescription, Selector: ".t.set-200-regular.as-copy.search-snippet-description", Type: FieldTypeText},
			{Name: models.ColStand, Selector: ".t.set-100-regular.as-copy.search-snippet-location", Type: FieldTypeText},
			{Name: models.ColProductLink, Selector: "a.o.link.as-block.fx.dropshadow.for-child", Type: FieldTypeAttribute, Attribute: "href"},
			{Name: models.ColSearchSnippetType, Selector: ".t.set-040-caps.as-caption.search-snippet-type", Type: FieldTypeText},
		},
	}
}

// Default returns a configuration that converts bde.json into bde_processed.csv.
func Default() *Config {
	return &Config{
		Crawler: CrawlerConfig{
			Sources: []SourceConfig{
				{Name: "Hannover Messe search", URL: DefaultSearchURL, Enabled: true},
			},
			Retry: RetryPolicy{
				MaxAttempts:       3,
				InitialDelayMs:    500,
				MaxDelayMs:        30000,
				BackoffMultiplier: 2.0,
				TimeoutSec:        30,
			},
			Output: OutputConfig{
				Path:        DefaultCrawlOut,
				PrettyPrint: true,
			},
			Schema: DefaultSchema(),
		},
		Converter: ConverterConfig{
			Input:      DefaultInput,
			Output:     DefaultOutput,
			LinkOrigin: DefaultLinkOrigin,
			WriteBOM:   true,
		},
		Validation: ValidationConfig{
			RequiredFields: []string{models.ColCompanyName},
		},
		Logging: LoggingConfig{
			Level:      "info",
			SampleRows: 3,
		},
		Advanced: AdvancedConfig{
			BufferSizeKb: 1024,
		},
	}
}

// LoadConfig loads configuration from a YAML file on top of Default.
func LoadConfig(filepath string) (*Config, error) {
	data, err := os.ReadFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// Resolve loads path when given, otherwise DefaultConfigPath if it exists, otherwise Default.
// It returns the path actually loaded, or "" for built-in defaults.
func Resolve(path string) (*Config, string, error) {
	if path == "" {
		if _, err := os.Stat(DefaultConfigPath); err != nil {
			return Default(), "", nil
		}

		path = DefaultConfigPath
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		return nil, path, err
	}

	return cfg, path, nil
}

// SaveConfig saves configuration to YAML file.
func (c *Config) SaveConfig(filepath string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(filepath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	for i, src := range c.Crawler.Sources {
		if src.URL == "" && src.File == "" {
			return fmt.Errorf("%w: source[%d]", ErrSourceMissingURLOrFile, i)
		}
	}

	// Validate retry policy
	if c.Crawler.Retry.MaxAttempts < 1 {
		return ErrInvalidMaxAttempts
	}

	if c.Crawler.Retry.InitialDelayMs < 0 {
		return ErrInvalidInitialDelay
	}

	if c.Crawler.Retry.BackoffMultiplier < 1.0 {
		return ErrInvalidBackoffMultiplier
	}

	if c.Crawler.Retry.TimeoutSec < 1 {
		return ErrInvalidTimeout
	}

	if err := c.Crawler.Schema.Validate(); err != nil {
		return err
	}

	if c.Converter.Input == "" {
		return ErrMissingConverterInput
	}

	if c.Converter.Output == "" {
		return ErrMissingConverterOutput
	}

	for _, name := range c.Validation.RequiredFields {
		if !models.IsColumn(name) {
			return fmt.Errorf("%w: %s", ErrUnknownRequiredField, name)
		}
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[c.Logging.Level] {
		return ErrInvalidLogLevel
	}

	if c.Advanced.BufferSizeKb < 1 {
		return ErrInvalidBufferSize
	}

	return nil
}

// Validate checks that every field can be extracted.
func (s *SchemaConfig) Validate() error {
	if s.BaseSelector == "" {
		return ErrMissingSchemaSelector
	}

	if len(s.Fields) == 0 {
		return ErrNoSchemaFields
	}

	for i, f := range s.Fields {
		if f.Name == "" || f.Selector == "" {
			return fmt.Errorf("%w: fields[%d]", ErrInvalidSchemaField, i)
		}

		switch f.Type {
		case FieldTypeText, "":
		case FieldTypeAttribute:
			if f.Attribute == "" {
				return fmt.Errorf("%w: %s", ErrMissingAttribute, f.Name)
			}
		default:
			return fmt.Errorf("%w: %s", ErrInvalidSchemaFieldType, f.Name)
		}
	}

	return nil
}

// GetEnabledSources returns only enabled sources.
func (c *Config) GetEnabledSources() []SourceConfig {
	var enabled []SourceConfig

	for _, src := range c.Crawler.Sources {
		if src.Enabled {
			enabled = append(enabled, src)
		}
	}

	return enabled
}

// GetRetryDelay calculates exponential backoff delay for attempt number.
func (rp *RetryPolicy) GetRetryDelay(attempt int) time.Duration {
	if attempt <= 1 {
		return 0
	}

	delayMs := float64(rp.InitialDelayMs)
	for i := 1; i < attempt; i++ {
		delayMs *= rp.BackoffMultiplier
	}

	// Cap at max delay
	if int(delayMs) > rp.MaxDelayMs {
		delayMs = float64(rp.MaxDelayMs)
	}

	return time.Duration(int(delayMs)) * time.Millisecond
}

// GetTimeout returns the timeout duration.
func (rp *RetryPolicy) GetTimeout() time.Duration {
	return time.Duration(rp.TimeoutSec) * time.Second
}

// String returns a string representation of the config.
func (c *Config) String() string {
	return fmt.Sprintf(
		"Config{Sources: %d, MaxAttempts: %d, Input: %s, Output: %s}",
		len(c.Crawler.Sources),
		c.Crawler.Retry.MaxAttempts,
		c.Converter.Input,
		c.Converter.Output,
	)
}
