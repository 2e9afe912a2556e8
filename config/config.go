// Package config provides configuration loading and management for rollcall.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents the complete rollcall configuration
type Config struct {
	Ingest   IngestConfig   `yaml:"ingest"`
	Resolver ResolverConfig `yaml:"resolver"`
	NATS     NATSConfig     `yaml:"nats"`
	Export   ExportConfig   `yaml:"export"`
	Metrics  MetricsConfig  `yaml:"metrics"`
}

// IngestConfig configures the document sources
type IngestConfig struct {
	// VotesDir is the directory (or glob) of raw roll-call XML documents
	VotesDir string `yaml:"votes_dir"`
	// StatusDir is the directory (or glob) of bill-status JSON documents
	StatusDir string `yaml:"status_dir"`
	// IssueDB is an optional SQLite issue database; when set it replaces
	// the bill-status index
	IssueDB string `yaml:"issue_db"`
	// DropDir is the directory watched for newly arriving vote documents
	DropDir string `yaml:"drop_dir"`
	// Debounce is how long the watcher waits for a file to settle
	Debounce time.Duration `yaml:"debounce"`
}

// ResolverConfig configures resolution behavior
type ResolverConfig struct {
	// WindowDays widens the exact-roll date scan (default: 1)
	WindowDays int `yaml:"window_days"`
}

// NATSConfig configures the NATS connection
type NATSConfig struct {
	// URL is the NATS server URL (empty = publishing disabled)
	URL string `yaml:"url"`
	// Bucket is the JetStream KV bucket for resolution results
	Bucket string `yaml:"bucket"`
	// Subject is the subject prefix resolution results are published
	// under: <prefix>.result for resolved votes, <prefix>.unresolved
	// for the rest
	Subject string `yaml:"subject"`
}

// ExportConfig configures resolution-log export
type ExportConfig struct {
	// Format is the export format name (json, jsonl, csv)
	Format string `yaml:"format"`
	// Output is the export path (empty = stdout)
	Output string `yaml:"output"`
}

// MetricsConfig configures Prometheus metrics
type MetricsConfig struct {
	// Addr is the metrics listen address (empty = disabled)
	Addr string `yaml:"addr"`
}

// DefaultConfig returns a Config with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Ingest: IngestConfig{
			VotesDir:  "./votes",
			StatusDir: "./bills",
			IssueDB:   "",
			DropDir:   "./drop",
			Debounce:  2 * time.Second,
		},
		Resolver: ResolverConfig{
			WindowDays: 1,
		},
		NATS: NATSConfig{
			URL:     "",
			Bucket:  "ROLLCALL_RESOLUTIONS",
			Subject: "rollcall.resolution",
		},
		Export: ExportConfig{
			Format: "json",
			Output: "",
		},
		Metrics: MetricsConfig{
			Addr: "",
		},
	}
}

// Validate checks that the configuration is valid
func (c *Config) Validate() error {
	if c.Ingest.Debounce < 0 {
		return fmt.Errorf("ingest.debounce must not be negative")
	}
	if c.Resolver.WindowDays < 0 {
		return fmt.Errorf("resolver.window_days must not be negative")
	}
	if c.Export.Format == "" {
		return fmt.Errorf("export.format is required")
	}
	if c.NATS.URL != "" && c.NATS.Bucket == "" {
		return fmt.Errorf("nats.bucket is required when nats.url is set")
	}
	return nil
}

// LoadFromFile loads configuration from a YAML file
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return config, nil
}

// SaveToFile saves configuration to a YAML file
func (c *Config) SaveToFile(path string) error {
	// Ensure parent directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Merge merges another config into this one (other takes precedence for non-zero values)
func (c *Config) Merge(other *Config) {
	if other == nil {
		return
	}

	// Ingest
	if other.Ingest.VotesDir != "" {
		c.Ingest.VotesDir = other.Ingest.VotesDir
	}
	if other.Ingest.StatusDir != "" {
		c.Ingest.StatusDir = other.Ingest.StatusDir
	}
	if other.Ingest.IssueDB != "" {
		c.Ingest.IssueDB = other.Ingest.IssueDB
	}
	if other.Ingest.DropDir != "" {
		c.Ingest.DropDir = other.Ingest.DropDir
	}
	if other.Ingest.Debounce != 0 {
		c.Ingest.Debounce = other.Ingest.Debounce
	}

	// Resolver
	if other.Resolver.WindowDays != 0 {
		c.Resolver.WindowDays = other.Resolver.WindowDays
	}

	// NATS
	if other.NATS.URL != "" {
		c.NATS.URL = other.NATS.URL
	}
	if other.NATS.Bucket != "" {
		c.NATS.Bucket = other.NATS.Bucket
	}
	if other.NATS.Subject != "" {
		c.NATS.Subject = other.NATS.Subject
	}

	// Export
	if other.Export.Format != "" {
		c.Export.Format = other.Export.Format
	}
	if other.Export.Output != "" {
		c.Export.Output = other.Export.Output
	}

	// Metrics
	if other.Metrics.Addr != "" {
		c.Metrics.Addr = other.Metrics.Addr
	}
}
