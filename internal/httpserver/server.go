package httpserver

import (
	"context"
	"log/slog"
	"net"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/skillcoder/kubemetrics-exporter/internal/infra/appstate"
	"github.com/skillcoder/kubemetrics-exporter/internal/infra/shutdown"
)

// Server serves the health, readiness and status probes.
type Server struct {
	*listener
	appState appstater
}

// New creates the probe server. An empty port selects the default.
func New(logger *slog.Logger, appState appstater, port string) *Server {
	if port == "" {
		port = defaultPort
	}

	return &Server{
		listener: newListener(logger, "http-server", port),
		appState: appState,
	}
}

var _ shutdown.Shutdowner = (*Server)(nil)

// Handler returns the probe router.
func (s *Server) Handler() http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)

	router.Get("/-/healthz", appstate.HandleHealthz(s.logger, s.appState))
	router.Get("/-/readyz", appstate.HandleReadyz(s.logger, s.appState))
	router.Get("/-/status", appstate.HandleStatus(s.logger, s.appState))

	return router
}

func (s *Server) Start(ctx context.Context) error {
	return s.start(ctx, &http.Server{
		Addr:              net.JoinHostPort("", s.port),
		Handler:           s.Handler(),
		ReadTimeout:       readTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
		MaxHeaderBytes:    maxHeaderBytes,
	})
}
