// Package ingest feeds vote documents through parsing and resolution,
// with optional delivery of results to NATS.
package ingest

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/capitolstream/rollcall/billindex"
	"github.com/capitolstream/rollcall/config"
	"github.com/capitolstream/rollcall/resolver"
	"github.com/capitolstream/rollcall/storage"
	"github.com/capitolstream/rollcall/vote/reader"
	"github.com/google/uuid"
)

// BuildIndex constructs the bill index named by cfg: the SQLite issue
// database when configured, otherwise the bill-status collection.
func BuildIndex(ctx context.Context, cfg config.IngestConfig, logger *slog.Logger) (billindex.Index, error) {
	if logger == nil {
		logger = slog.Default()
	}

	if cfg.IssueDB != "" {
		issues, err := billindex.LoadIssues(ctx, cfg.IssueDB)
		if err != nil {
			return nil, fmt.Errorf("load issue database: %w", err)
		}
		idx := billindex.NewIssueIndex(logger)
		idx.IndexIssues(issues)
		return idx, nil
	}

	idx := billindex.NewStatusIndex(logger)
	if _, err := idx.IndexCollection(cfg.StatusDir); err != nil {
		return nil, fmt.Errorf("index bill statuses: %w", err)
	}
	return idx, nil
}

// Options configures a Pipeline.
type Options struct {
	// Registry parses vote documents. Nil uses the default registry.
	Registry *reader.Registry

	// WindowDays widens the resolver's date scan for roll number matches.
	WindowDays int

	// Store persists resolution results when set.
	Store *storage.Store

	// Publisher announces resolution results when set.
	Publisher *Publisher

	// Logger defaults to slog.Default.
	Logger *slog.Logger
}

// Pipeline parses vote documents and resolves them against a bill index.
type Pipeline struct {
	registry  *reader.Registry
	resolver  *resolver.Resolver
	store     *storage.Store
	publisher *Publisher
	logger    *slog.Logger
}

// NewPipeline creates a pipeline resolving votes against the given index.
func NewPipeline(index billindex.Index, opts Options) *Pipeline {
	registry := opts.Registry
	if registry == nil {
		registry = reader.DefaultRegistry
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Pipeline{
		registry: registry,
		resolver: resolver.New(index, resolver.Options{
			WindowDays: opts.WindowDays,
			Logger:     logger,
		}),
		store:     opts.Store,
		publisher: opts.Publisher,
		logger:    logger.With("component", "pipeline"),
	}
}

// Log returns the accumulated resolution log.
func (p *Pipeline) Log() *resolver.Log {
	return p.resolver.Log()
}

// globVotes expands pattern into vote XML file paths. A directory is
// searched recursively for .xml files.
func globVotes(pattern string) ([]string, error) {
	if info, err := os.Stat(pattern); err == nil && info.IsDir() {
		pattern = filepath.Join(pattern, "**", "*.xml")
	}
	return doublestar.FilepathGlob(pattern)
}

// Run processes every vote document matched by pattern and returns the
// accumulated resolution log. Unreadable or malformed documents are
// logged and skipped.
func (p *Pipeline) Run(ctx context.Context, pattern string) (*resolver.Log, error) {
	runID := uuid.New().String()
	start := time.Now()

	files, err := globVotes(pattern)
	if err != nil {
		return nil, fmt.Errorf("glob vote documents: %w", err)
	}

	processed := 0
	skipped := 0
	resolved := 0
	for _, path := range files {
		select {
		case <-ctx.Done():
			return p.resolver.Log(), ctx.Err()
		default:
		}

		res, err := p.ProcessFile(ctx, path)
		if err != nil {
			p.logger.Warn("Skipping vote document",
				"run_id", runID,
				"path", path,
				"error", err)
			skipped++
			continue
		}
		processed++
		if res.Resolved() {
			resolved++
		}
	}

	runDuration.Observe(time.Since(start).Seconds())

	p.logger.Info("Ingest run complete",
		"run_id", runID,
		"files", len(files),
		"processed", processed,
		"skipped", skipped,
		"resolved", resolved,
		"duration", time.Since(start))

	return p.resolver.Log(), nil
}

// ProcessFile parses and resolves a single vote document, delivering the
// result to the configured sinks.
func (p *Pipeline) ProcessFile(ctx context.Context, path string) (resolver.Result, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		votesProcessed.WithLabelValues(chamberUnknown, outcomeSkipped).Inc()
		return resolver.Result{}, fmt.Errorf("read vote document: %w", err)
	}
	return p.processContent(ctx, content, filepath.Base(path))
}

func (p *Pipeline) processContent(ctx context.Context, content []byte, name string) (resolver.Result, error) {
	v, err := p.registry.Parse(content)
	if err != nil {
		votesProcessed.WithLabelValues(chamberUnknown, outcomeSkipped).Inc()
		return resolver.Result{}, fmt.Errorf("parse vote document %s: %w", name, err)
	}

	res := p.resolver.Resolve(v)

	resolutionsByStrategy.WithLabelValues(string(res.Strategy)).Inc()
	if res.Resolved() {
		votesProcessed.WithLabelValues(string(v.Chamber), outcomeResolved).Inc()
	} else {
		votesProcessed.WithLabelValues(string(v.Chamber), outcomeUnresolved).Inc()
	}

	p.deliver(ctx, &res)
	return res, nil
}

// deliver hands a result to the configured sinks. Failures are logged
// and counted, not returned.
func (p *Pipeline) deliver(ctx context.Context, res *resolver.Result) {
	if p.store != nil {
		if err := p.store.Put(ctx, res); err != nil {
			deliveryErrors.WithLabelValues("store").Inc()
			p.logger.Error("Failed to store result",
				"vote_key", res.VoteKey,
				"error", err)
		}
	}
	if p.publisher != nil {
		if err := p.publisher.Publish(ctx, res); err != nil {
			deliveryErrors.WithLabelValues("publish").Inc()
			p.logger.Error("Failed to publish result",
				"vote_key", res.VoteKey,
				"error", err)
		}
	}
}

// Watch processes vote documents as they arrive in dropDir. Documents
// already present are processed on startup. Watch blocks until ctx is
// cancelled.
func (p *Pipeline) Watch(ctx context.Context, dropDir string, debounce time.Duration) error {
	watcher, err := NewVoteWatcher(dropDir, debounce, p.logger)
	if err != nil {
		return fmt.Errorf("create vote watcher: %w", err)
	}
	if err := watcher.Start(ctx); err != nil {
		return fmt.Errorf("start vote watcher: %w", err)
	}
	defer watcher.Stop()

	p.seedExisting(ctx, watcher, dropDir)

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events():
			if !ok {
				return nil
			}
			p.handleWatchEvent(ctx, event)
		}
	}
}

// seedExisting processes vote documents already present in the drop
// directory and records their hashes so unchanged files are not
// re-processed by watch events.
func (p *Pipeline) seedExisting(ctx context.Context, watcher *VoteWatcher, dropDir string) {
	files, err := globVotes(dropDir)
	if err != nil {
		p.logger.Warn("Failed to scan drop directory", "error", err)
		return
	}

	for _, path := range files {
		content, err := os.ReadFile(path)
		if err != nil {
			p.logger.Warn("Skipping vote document", "path", path, "error", err)
			continue
		}
		if rel, err := filepath.Rel(dropDir, path); err == nil {
			watcher.SetHash(rel, contentHash(content))
		}
		if _, err := p.processContent(ctx, content, filepath.Base(path)); err != nil {
			p.logger.Warn("Skipping vote document", "path", path, "error", err)
		}
	}
}

// handleWatchEvent processes a single file watch event.
func (p *Pipeline) handleWatchEvent(ctx context.Context, event WatchEvent) {
	switch event.Operation {
	case WatchOpCreate, WatchOpModify:
		p.logger.Info("Vote document changed, resolving",
			"path", event.Path,
			"operation", event.Operation)

		res, err := p.ProcessFile(ctx, event.AbsPath)
		if err != nil {
			p.logger.Error("Failed to process vote document",
				"path", event.Path,
				"error", err)
			return
		}

		p.logger.Info("Vote resolved",
			"path", event.Path,
			"vote_key", res.VoteKey,
			"strategy", res.Strategy,
			"bill_key", res.BillKey)

	case WatchOpDelete:
		p.logger.Info("Vote document removed", "path", event.Path)
	}
}
