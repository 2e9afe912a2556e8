package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/capitolstream/rollcall/config"
	"github.com/capitolstream/rollcall/export"
)

func resolveCmd(opts *rootOptions) *cobra.Command {
	var (
		statusDir  string
		issueDB    string
		windowDays int
		format     string
		out        string
		natsURL    string
	)

	cmd := &cobra.Command{
		Use:   "resolve [pattern]",
		Short: "Resolve a batch of vote documents",
		Long: `Resolve parses every vote document matching the pattern (a directory
or a glob), matches each vote to a bill, and prints resolution
statistics. Without a pattern the configured votes directory is used.

The full resolution log can be written with --out in the format chosen
by --format.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := opts.setup()
			if err != nil {
				return err
			}

			if statusDir != "" {
				cfg.Ingest.StatusDir = statusDir
			}
			if issueDB != "" {
				cfg.Ingest.IssueDB = issueDB
			}
			if cmd.Flags().Changed("window") {
				cfg.Resolver.WindowDays = windowDays
			}
			if format != "" {
				cfg.Export.Format = format
			}
			if out != "" {
				cfg.Export.Output = out
			}
			if natsURL != "" {
				cfg.NATS.URL = natsURL
			}
			if err := cfg.Validate(); err != nil {
				return fmt.Errorf("invalid configuration: %w", err)
			}

			pattern := cfg.Ingest.VotesDir
			if len(args) > 0 {
				pattern = args[0]
			}

			app := NewApp(cfg, logger)
			if err := app.Start(cmd.Context()); err != nil {
				return err
			}
			defer app.Shutdown()

			log, err := app.pipeline.Run(cmd.Context(), pattern)
			if err != nil {
				return err
			}

			printStats(os.Stdout, log.Stats())

			if cfg.Export.Output != "" {
				w, err := export.NewWriter(cfg.Export.Format)
				if err != nil {
					return err
				}
				if err := w.WriteFile(cfg.Export.Output, log); err != nil {
					return fmt.Errorf("export log: %w", err)
				}
				fmt.Printf("✓ Log written to %s\n", cfg.Export.Output)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&statusDir, "status-dir", "", "Bill status JSON collection directory")
	cmd.Flags().StringVar(&issueDB, "issue-db", "", "Legislative issues SQLite database (overrides --status-dir)")
	cmd.Flags().IntVar(&windowDays, "window", config.DefaultConfig().Resolver.WindowDays, "Date window in days for action matching")
	cmd.Flags().StringVar(&format, "format", "", "Export format (json, jsonl, csv)")
	cmd.Flags().StringVarP(&out, "out", "o", "", "Write the resolution log to this file")
	cmd.Flags().StringVar(&natsURL, "nats", "", "NATS server URL for result storage and publishing")

	return cmd
}
