package main

import (
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/capitolstream/rollcall/config"
	"github.com/capitolstream/rollcall/ingest"
)

func watchCmd(opts *rootOptions) *cobra.Command {
	var (
		dropDir     string
		statusDir   string
		issueDB     string
		natsURL     string
		metricsAddr string
		debounce    time.Duration
	)

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Watch a drop directory and resolve votes as they arrive",
		Long: `Watch resolves vote documents dropped into a directory. Documents
already present are resolved on startup, then the directory is watched
for new and changed files until interrupted.

With a NATS URL configured, every result is stored in the KV bucket
and published for downstream consumers. --metrics-addr exposes
Prometheus metrics over HTTP.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := opts.setup()
			if err != nil {
				return err
			}

			if dropDir != "" {
				cfg.Ingest.DropDir = dropDir
			}
			if statusDir != "" {
				cfg.Ingest.StatusDir = statusDir
			}
			if issueDB != "" {
				cfg.Ingest.IssueDB = issueDB
			}
			if natsURL != "" {
				cfg.NATS.URL = natsURL
			}
			if metricsAddr != "" {
				cfg.Metrics.Addr = metricsAddr
			}
			if cmd.Flags().Changed("debounce") {
				cfg.Ingest.Debounce = debounce
			}
			if err := cfg.Validate(); err != nil {
				return fmt.Errorf("invalid configuration: %w", err)
			}

			ctx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer cancel()

			app := NewApp(cfg, logger)
			if err := app.Start(ctx); err != nil {
				return err
			}
			defer app.Shutdown()

			if cfg.Metrics.Addr != "" {
				go func() {
					if err := ingest.ServeMetrics(ctx, cfg.Metrics.Addr, logger); err != nil {
						logger.Error("Metrics server failed", "error", err)
					}
				}()
			}

			logger.Info("Rollcall ready",
				"version", Version,
				"drop_dir", cfg.Ingest.DropDir)

			if err := app.pipeline.Watch(ctx, cfg.Ingest.DropDir, cfg.Ingest.Debounce); err != nil {
				return fmt.Errorf("watch %s: %w", cfg.Ingest.DropDir, err)
			}

			logger.Info("Rollcall shutdown complete")
			return nil
		},
	}

	cmd.Flags().StringVar(&dropDir, "drop-dir", "", "Directory to watch for vote documents")
	cmd.Flags().StringVar(&statusDir, "status-dir", "", "Bill status JSON collection directory")
	cmd.Flags().StringVar(&issueDB, "issue-db", "", "Legislative issues SQLite database (overrides --status-dir)")
	cmd.Flags().StringVar(&natsURL, "nats", "", "NATS server URL for result storage and publishing")
	cmd.Flags().StringVar(&metricsAddr, "metrics-addr", "", "Listen address for the Prometheus /metrics endpoint")
	cmd.Flags().DurationVar(&debounce, "debounce", config.DefaultConfig().Ingest.Debounce, "Settle time before a changed document is resolved")

	return cmd
}
