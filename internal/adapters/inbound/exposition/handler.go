package exposition

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/skillcoder/kubemetrics-exporter/internal/logic/exporter"
)

type snapshotBuilder interface {
	BuildSnapshot(ctx context.Context) exporter.MetricSnapshot
}

// Handler serves GET /metrics. Every request builds a fresh snapshot and a
// fresh registry; nothing is cached between scrapes.
type Handler struct {
	logger        *slog.Logger
	builder       snapshotBuilder
	scrapeTimeout time.Duration
	self          prometheus.Gatherer
}

// NewHandler creates the scrape handler. self gathers the exporter's own
// metrics and may be nil.
func NewHandler(
	logger *slog.Logger,
	builder snapshotBuilder,
	scrapeTimeout time.Duration,
	self prometheus.Gatherer,
) *Handler {
	return &Handler{
		logger:        logger,
		builder:       builder,
		scrapeTimeout: scrapeTimeout,
		self:          self,
	}
}

var _ http.Handler = (*Handler)(nil)

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := h.logger.With("traceID", middleware.GetReqID(ctx))

	buildCtx := ctx
	if h.scrapeTimeout > 0 {
		var cancel context.CancelFunc

		buildCtx, cancel = context.WithTimeout(ctx, h.scrapeTimeout)
		defer cancel()
	}

	start := time.Now()
	snapshot := h.builder.BuildSnapshot(buildCtx)

	registry := prometheus.NewRegistry()
	registry.MustRegister(NewSnapshotCollector(snapshot))

	gatherers := prometheus.Gatherers{registry}
	if h.self != nil {
		gatherers = append(gatherers, h.self)
	}

	logger.DebugContext(ctx, "scrape snapshot ready",
		"pods", len(snapshot.Pods),
		"provenance", string(snapshot.Provenance),
		"duration", time.Since(start),
	)

	promhttp.HandlerFor(gatherers, promhttp.HandlerOpts{
		ErrorLog:      slog.NewLogLogger(h.logger.Handler(), slog.LevelError),
		ErrorHandling: promhttp.ContinueOnError,
	}).ServeHTTP(w, r)
}
