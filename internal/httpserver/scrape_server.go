package httpserver

import (
	"context"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/skillcoder/kubemetrics-exporter/internal/infra/shutdown"
)

const landingPage = `<html>
<head><title>kubemetrics-exporter</title></head>
<body>
<h1>kubemetrics-exporter</h1>
<p><a href="/metrics">Metrics</a></p>
</body>
</html>
`

// ScrapeServer serves GET /metrics on the scrape port.
type ScrapeServer struct {
	*listener
	metrics       http.Handler
	scrapeTimeout time.Duration
}

// NewScrapeServer creates the scrape endpoint server. metrics renders one
// exposition per request.
func NewScrapeServer(
	logger *slog.Logger,
	port string,
	metrics http.Handler,
	scrapeTimeout time.Duration,
) *ScrapeServer {
	if port == "" {
		port = defaultScrapePort
	}

	return &ScrapeServer{
		listener:      newListener(logger, "scrape-server", port),
		metrics:       metrics,
		scrapeTimeout: scrapeTimeout,
	}
}

var _ shutdown.Shutdowner = (*ScrapeServer)(nil)

// PingerReadyCritical reports that readiness depends on the scrape port.
func (s *ScrapeServer) PingerReadyCritical() bool {
	return true
}

// Handler returns the scrape router.
func (s *ScrapeServer) Handler() http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)

	router.Method(http.MethodGet, "/metrics", s.metrics)
	router.Get("/", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte(landingPage))
	})

	return router
}

func (s *ScrapeServer) Start(ctx context.Context) error {
	return s.start(ctx, &http.Server{
		Addr:              net.JoinHostPort("", s.port),
		Handler:           s.Handler(),
		ReadTimeout:       readTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
		WriteTimeout:      s.scrapeTimeout + scrapeWriteHeadroom,
		IdleTimeout:       idleTimeout,
		MaxHeaderBytes:    maxHeaderBytes,
	})
}
