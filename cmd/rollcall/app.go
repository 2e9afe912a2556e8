package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/nats-io/nats.go"

	"github.com/capitolstream/rollcall/config"
	"github.com/capitolstream/rollcall/ingest"
	"github.com/capitolstream/rollcall/storage"
)

// App wires the resolution pipeline to its optional NATS delivery
// targets. Without a configured NATS URL the pipeline runs standalone
// and results only reach the resolution log.
type App struct {
	cfg    *config.Config
	logger *slog.Logger

	// NATS
	natsConn *nats.Conn

	// Delivery
	store     *storage.Store
	publisher *ingest.Publisher

	pipeline *ingest.Pipeline
}

// NewApp creates a new application instance.
func NewApp(cfg *config.Config, logger *slog.Logger) *App {
	if logger == nil {
		logger = slog.Default()
	}
	return &App{cfg: cfg, logger: logger}
}

// Start builds the bill index, connects to NATS when configured, and
// assembles the resolution pipeline.
func (a *App) Start(ctx context.Context) error {
	index, err := ingest.BuildIndex(ctx, a.cfg.Ingest, a.logger)
	if err != nil {
		return fmt.Errorf("build bill index: %w", err)
	}

	if a.cfg.NATS.URL != "" {
		if err := a.connectNATS(ctx); err != nil {
			return fmt.Errorf("start NATS: %w", err)
		}
	}

	a.pipeline = ingest.NewPipeline(index, ingest.Options{
		WindowDays: a.cfg.Resolver.WindowDays,
		Store:      a.store,
		Publisher:  a.publisher,
		Logger:     a.logger,
	})
	return nil
}

func (a *App) connectNATS(ctx context.Context) error {
	a.logger.Info("Connecting to NATS", "url", a.cfg.NATS.URL)

	nc, js, err := storage.Dial(a.cfg.NATS.URL)
	if err != nil {
		return fmt.Errorf("connect to NATS: %w", err)
	}
	a.natsConn = nc

	store, err := storage.NewStore(ctx, js, a.cfg.NATS.Bucket)
	if err != nil {
		nc.Close()
		return fmt.Errorf("initialize storage: %w", err)
	}
	a.store = store
	a.publisher = ingest.NewPublisher(nc, a.cfg.NATS.Subject, a.logger)

	a.logger.Info("Connected to NATS",
		"bucket", a.cfg.NATS.Bucket,
		"subject", a.cfg.NATS.Subject)
	return nil
}

// Shutdown drains the NATS connection if one was opened.
func (a *App) Shutdown() {
	if a.natsConn != nil {
		a.natsConn.Drain()
		a.natsConn.Close()
	}
}
