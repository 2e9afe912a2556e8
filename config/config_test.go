package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Ingest.VotesDir != "./votes" {
		t.Errorf("expected default votes dir ./votes, got %s", cfg.Ingest.VotesDir)
	}
	if cfg.Ingest.StatusDir != "./bills" {
		t.Errorf("expected default status dir ./bills, got %s", cfg.Ingest.StatusDir)
	}
	if cfg.Ingest.Debounce != 2*time.Second {
		t.Errorf("expected default debounce 2s, got %s", cfg.Ingest.Debounce)
	}
	if cfg.Resolver.WindowDays != 1 {
		t.Errorf("expected default window days 1, got %d", cfg.Resolver.WindowDays)
	}
	if cfg.NATS.Bucket != "ROLLCALL_RESOLUTIONS" {
		t.Errorf("expected default bucket ROLLCALL_RESOLUTIONS, got %s", cfg.NATS.Bucket)
	}
	if cfg.NATS.Subject != "rollcall.resolution" {
		t.Errorf("expected default subject rollcall.resolution, got %s", cfg.NATS.Subject)
	}
	if cfg.Export.Format != "json" {
		t.Errorf("expected default export format json, got %s", cfg.Export.Format)
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr bool
	}{
		{
			name:    "valid default config",
			modify:  func(c *Config) {},
			wantErr: false,
		},
		{
			name:    "negative debounce",
			modify:  func(c *Config) { c.Ingest.Debounce = -time.Second },
			wantErr: true,
		},
		{
			name:    "negative window days",
			modify:  func(c *Config) { c.Resolver.WindowDays = -1 },
			wantErr: true,
		},
		{
			name:    "zero window days is allowed",
			modify:  func(c *Config) { c.Resolver.WindowDays = 0 },
			wantErr: false,
		},
		{
			name:    "missing export format",
			modify:  func(c *Config) { c.Export.Format = "" },
			wantErr: true,
		},
		{
			name: "nats url without bucket",
			modify: func(c *Config) {
				c.NATS.URL = "nats://localhost:4222"
				c.NATS.Bucket = ""
			},
			wantErr: true,
		},
		{
			name:    "nats url with bucket",
			modify:  func(c *Config) { c.NATS.URL = "nats://localhost:4222" },
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestLoadFromFile(t *testing.T) {
	// Create temp file with config
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "rollcall.yaml")

	content := `
ingest:
  votes_dir: "/data/votes"
  issue_db: "/data/issues.db"
  debounce: 5s
resolver:
  window_days: 3
nats:
  url: "nats://test:4222"
export:
  format: csv
  output: "/tmp/resolutions.csv"
`
	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg, err := LoadFromFile(configPath)
	if err != nil {
		t.Fatalf("LoadFromFile() error = %v", err)
	}

	if cfg.Ingest.VotesDir != "/data/votes" {
		t.Errorf("expected votes dir /data/votes, got %s", cfg.Ingest.VotesDir)
	}
	if cfg.Ingest.IssueDB != "/data/issues.db" {
		t.Errorf("expected issue db /data/issues.db, got %s", cfg.Ingest.IssueDB)
	}
	if cfg.Ingest.Debounce != 5*time.Second {
		t.Errorf("expected debounce 5s, got %v", cfg.Ingest.Debounce)
	}
	if cfg.Resolver.WindowDays != 3 {
		t.Errorf("expected window days 3, got %d", cfg.Resolver.WindowDays)
	}
	if cfg.NATS.URL != "nats://test:4222" {
		t.Errorf("expected NATS URL nats://test:4222, got %s", cfg.NATS.URL)
	}
	if cfg.Export.Format != "csv" {
		t.Errorf("expected export format csv, got %s", cfg.Export.Format)
	}

	// Fields absent from the file keep their defaults
	if cfg.Ingest.StatusDir != "./bills" {
		t.Errorf("expected status dir to remain default, got %s", cfg.Ingest.StatusDir)
	}
	if cfg.NATS.Bucket != "ROLLCALL_RESOLUTIONS" {
		t.Errorf("expected bucket to remain default, got %s", cfg.NATS.Bucket)
	}
}

func TestConfigMerge(t *testing.T) {
	base := DefaultConfig()
	override := &Config{
		Ingest: IngestConfig{
			VotesDir: "/override/votes",
			Debounce: 10 * time.Second,
		},
		Resolver: ResolverConfig{
			WindowDays: 7,
		},
		Export: ExportConfig{
			Format: "jsonl",
		},
	}

	base.Merge(override)

	if base.Ingest.VotesDir != "/override/votes" {
		t.Errorf("expected votes dir /override/votes, got %s", base.Ingest.VotesDir)
	}
	if base.Ingest.Debounce != 10*time.Second {
		t.Errorf("expected debounce 10s, got %v", base.Ingest.Debounce)
	}
	if base.Resolver.WindowDays != 7 {
		t.Errorf("expected window days 7, got %d", base.Resolver.WindowDays)
	}
	if base.Export.Format != "jsonl" {
		t.Errorf("expected export format jsonl, got %s", base.Export.Format)
	}
	// StatusDir should remain from base since override didn't set it
	if base.Ingest.StatusDir != "./bills" {
		t.Errorf("expected status dir to remain default, got %s", base.Ingest.StatusDir)
	}
	if base.NATS.Bucket != "ROLLCALL_RESOLUTIONS" {
		t.Errorf("expected bucket to remain default, got %s", base.NATS.Bucket)
	}
}

func TestConfigMergeNil(t *testing.T) {
	base := DefaultConfig()
	base.Merge(nil)

	if base.Ingest.VotesDir != "./votes" {
		t.Errorf("merging nil should leave config unchanged, got %s", base.Ingest.VotesDir)
	}
}

func TestConfigSaveToFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "subdir", "rollcall.yaml")

	cfg := DefaultConfig()
	cfg.Ingest.VotesDir = "/saved/votes"
	cfg.Resolver.WindowDays = 2

	if err := cfg.SaveToFile(configPath); err != nil {
		t.Fatalf("SaveToFile() error = %v", err)
	}

	// Verify file was created
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		t.Error("config file was not created")
	}

	// Load and verify
	loaded, err := LoadFromFile(configPath)
	if err != nil {
		t.Fatalf("failed to load saved config: %v", err)
	}
	if loaded.Ingest.VotesDir != "/saved/votes" {
		t.Errorf("expected votes dir /saved/votes, got %s", loaded.Ingest.VotesDir)
	}
	if loaded.Resolver.WindowDays != 2 {
		t.Errorf("expected window days 2, got %d", loaded.Resolver.WindowDays)
	}
}
