package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/skillcoder/kubemetrics-exporter/internal/adapters/inbound/exposition"
	"github.com/skillcoder/kubemetrics-exporter/internal/adapters/outbound/k8s"
	"github.com/skillcoder/kubemetrics-exporter/internal/adapters/outbound/kubectl"
	"github.com/skillcoder/kubemetrics-exporter/internal/config"
	"github.com/skillcoder/kubemetrics-exporter/internal/httpserver"
	"github.com/skillcoder/kubemetrics-exporter/internal/infra/shutdown"
	"github.com/skillcoder/kubemetrics-exporter/internal/logic/exporter"
)

type App struct {
	logger       *slog.Logger
	namespace    string
	appState     appstater
	signals      signalHandler
	pingers      pingerRunner
	kubeAPI      *k8s.Adapter
	probeServer  appServer
	scrapeServer appServer
}

// New connects to the cluster and wires every component. A cluster that
// cannot be reached from any kubeconfig or in-cluster credentials is fatal.
func New(
	logger *slog.Logger,
	cfg *config.Config,
	appState appstater,
	pingers pingerRunner,
) (*App, error) {
	clients, err := k8s.NewClients(logger, cfg.KubeConfig, cfg.KubeMaster)
	if err != nil {
		return nil, fmt.Errorf("connect to cluster: %w", err)
	}

	return newWithClients(logger, cfg, appState, pingers, clients), nil
}

func newWithClients(
	logger *slog.Logger,
	cfg *config.Config,
	appState appstater,
	pingers pingerRunner,
	clients *k8s.Clients,
) *App {
	kubeAPI := k8s.New(logger, clients.Kubernetes, clients.Metrics)

	tiers := []exporter.UsageProvider{kubeAPI.UsageTier()}
	if cfg.KubectlFallback {
		tiers = append(tiers, kubectl.New(logger, cfg.KubectlPath, cfg.UsageTierTimeout, cfg.KubectlMaxOutput))
	}

	resolver := exporter.NewResolver(logger, cfg.UsageTierTimeout, tiers...)
	service := exporter.New(logger, kubeAPI, resolver, cfg.Namespace)
	scrapeHandler := exposition.NewHandler(logger, service, cfg.ScrapeTimeout, prometheus.DefaultGatherer)

	return &App{
		logger:       logger,
		namespace:    cfg.Namespace,
		appState:     appState,
		signals:      shutdown.New(logger, appState),
		pingers:      pingers,
		kubeAPI:      kubeAPI,
		probeServer:  httpserver.New(logger, appState, cfg.HTTPPort),
		scrapeServer: httpserver.NewScrapeServer(logger, cfg.MetricsPort, scrapeHandler, cfg.ScrapeTimeout),
	}
}

// Run starts the servers and pingers, marks the application running and
// blocks until a termination signal or ctx cancellation, then shuts down.
func (a *App) Run(originCtx context.Context) error {
	ctx, cancel := context.WithCancel(originCtx)
	defer cancel()

	if err := a.appState.SetStarting(ctx); err != nil {
		return fmt.Errorf("set starting: %w", err)
	}

	go a.signals.HandleSignals(ctx, cancel)

	if err := a.start(ctx); err != nil {
		if shutdownErr := a.appState.Shutdown(ctx); shutdownErr != nil {
			a.logger.ErrorContext(ctx, "shutdown after failed start", "reason", shutdownErr)
		}

		return err
	}

	select {
	case <-allChannelsClose(ctx, a.logger, a.pingers.Ready(), a.probeServer.Ready(), a.scrapeServer.Ready()):
	case <-ctx.Done():
	}

	if ctx.Err() == nil {
		if err := a.appState.SetRunning(ctx); err != nil {
			return fmt.Errorf("set running: %w", err)
		}

		a.logger.InfoContext(ctx, "exporting pod metrics",
			"namespace", a.namespace,
			"scrapeAddr", a.scrapeServer.Addr().String(),
		)
	}

	<-ctx.Done()

	a.logger.InfoContext(ctx, "shutting down")

	if err := a.appState.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}

	return nil
}

func (a *App) start(ctx context.Context) error {
	a.appState.RegisterShutdowner(a.pingers)

	for _, server := range []appServer{a.probeServer, a.scrapeServer} {
		if err := server.Start(ctx); err != nil {
			return fmt.Errorf("start %s: %w", server.Name(), err)
		}

		a.appState.RegisterShutdowner(server)

		if err := a.appState.RegisterPinger(server); err != nil {
			return fmt.Errorf("register %s pinger: %w", server.Name(), err)
		}
	}

	if err := a.appState.RegisterPinger(a.kubeAPI); err != nil {
		return fmt.Errorf("register kube api pinger: %w", err)
	}

	if err := a.pingers.Start(ctx); err != nil {
		return fmt.Errorf("start pingers: %w", err)
	}

	return nil
}

// allChannelsClose returns a channel closed once every input channel is
// closed, or once ctx is done.
func allChannelsClose(ctx context.Context, logger *slog.Logger, chans ...<-chan struct{}) <-chan struct{} {
	out := make(chan struct{})

	go func() {
		defer close(out)

		for i, ch := range chans {
			select {
			case <-ch:
			case <-ctx.Done():
				logger.InfoContext(ctx, "stopped waiting for components",
					"ready", i,
					"total", len(chans),
				)

				return
			}
		}
	}()

	return out
}
