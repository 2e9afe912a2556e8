// Package main provides the rollcall binary entry point.
// Rollcall parses congressional roll call votes, matches each vote to
// the bill it concerns, and exports the resulting resolution log.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"runtime"
	"strings"

	"github.com/spf13/cobra"

	"github.com/capitolstream/rollcall/config"
)

const (
	Version   = "0.1.0"
	BuildTime = "dev"
	appName   = "rollcall"
)

func main() {
	// Add panic recovery
	defer func() {
		if r := recover(); r != nil {
			buf := make([]byte, 4096)
			n := runtime.Stack(buf, false)
			_, _ = fmt.Fprintf(os.Stderr, "PANIC: %v\nStack trace:\n%s\n", r, string(buf[:n]))
			os.Exit(2)
		}
	}()

	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// rootOptions holds the persistent flags shared by every subcommand.
type rootOptions struct {
	configPath string
	logLevel   string
}

func rootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "rollcall",
		Short: "Resolve roll call votes to bills",
		Long: `Rollcall matches congressional roll call votes to the bills they
concern.

It provides:
- XML vote parsing for House clerk and Senate LIS formats
- A strategy ladder from direct bill references down to motion text
- Bill status and legislative issue indexes for candidate lookup
- Resolution log export as JSON, JSONL, or CSV

Results can optionally be stored in a NATS KV bucket and published on
NATS subjects for downstream consumers.`,
	}

	cmd.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "Config file path (YAML)")
	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "info", "Log level (debug, info, warn, error)")

	cmd.AddCommand(resolveCmd(opts))
	cmd.AddCommand(watchCmd(opts))
	cmd.AddCommand(statsCmd())

	// Version command
	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("%s version %s (build: %s)\n", appName, Version, BuildTime)
		},
	})

	return cmd
}

// setup configures logging and loads configuration. Subcommands call it
// at the top of their RunE.
func (o *rootOptions) setup() (*config.Config, *slog.Logger, error) {
	level := slog.LevelInfo
	switch strings.ToLower(o.logLevel) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	cfg, err := o.loadConfig(logger)
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}
	return cfg, logger, nil
}

// loadConfig loads from an explicit --config path when given, otherwise
// walks the layered default/user/project chain.
func (o *rootOptions) loadConfig(logger *slog.Logger) (*config.Config, error) {
	if o.configPath != "" {
		cfg, err := config.LoadFromFile(o.configPath)
		if err != nil {
			return nil, err
		}
		if err := cfg.Validate(); err != nil {
			return nil, fmt.Errorf("invalid configuration: %w", err)
		}
		return cfg, nil
	}
	return config.NewLoader(logger).Load()
}
