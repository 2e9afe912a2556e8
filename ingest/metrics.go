package ingest

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	votesProcessed = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "rollcall",
		Subsystem: "ingest",
		Name:      "votes_processed_total",
		Help:      "Vote documents processed, by chamber and outcome.",
	}, []string{"chamber", "outcome"})

	resolutionsByStrategy = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "rollcall",
		Subsystem: "resolver",
		Name:      "resolutions_total",
		Help:      "Resolution attempts, by matching strategy.",
	}, []string{"strategy"})

	deliveryErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "rollcall",
		Subsystem: "ingest",
		Name:      "delivery_errors_total",
		Help:      "Failures delivering resolution results, by sink.",
	}, []string{"sink"})

	runDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "rollcall",
		Subsystem: "ingest",
		Name:      "run_duration_seconds",
		Help:      "Duration of batch ingest runs.",
		Buckets:   prometheus.DefBuckets,
	})
)

// Label values for votesProcessed. Skipped documents never parsed, so
// their chamber is unknown.
const (
	outcomeResolved   = "resolved"
	outcomeUnresolved = "unresolved"
	outcomeSkipped    = "skipped"

	chamberUnknown = "unknown"
)

// ServeMetrics exposes Prometheus metrics over HTTP on addr until ctx
// is cancelled.
func ServeMetrics(ctx context.Context, addr string, logger *slog.Logger) error {
	if logger == nil {
		logger = slog.Default()
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	srv := &http.Server{
		Addr:    addr,
		Handler: mux,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	logger.Info("Metrics server listening", "addr", addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
