package app

import (
	"context"
	"net"
	"os"
	"time"

	"github.com/skillcoder/kubemetrics-exporter/internal/infra/appstate"
	"github.com/skillcoder/kubemetrics-exporter/internal/infra/pinger"
	"github.com/skillcoder/kubemetrics-exporter/internal/infra/shutdown"
)

type appstater interface {
	RegisterPinger(p pinger.Pinger) error
	RegisterShutdowner(shutdowner shutdown.Shutdowner)
	Quit() <-chan os.Signal
	SetStarting(ctx context.Context) error
	SetRunning(ctx context.Context) error
	GetState() appstate.State
	GetUptime() time.Duration
	GetStartTime() time.Time
	GetAllStats() map[string]*pinger.Statistics
	IsHealthy() bool
	IsReady() bool
	Shutdown(ctx context.Context) error
}

type signalHandler interface {
	HandleSignals(ctx context.Context, cancel func())
}

type pingerRunner interface {
	Start(ctx context.Context) error
	Ready() <-chan struct{}
	shutdown.Shutdowner
}

type appServer interface {
	pinger.Pinger
	Start(ctx context.Context) error
	Ready() <-chan struct{}
	Addr() net.Addr
	shutdown.Shutdowner
}
