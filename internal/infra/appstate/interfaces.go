package appstate

import (
	"context"
	"time"

	"github.com/skillcoder/kubemetrics-exporter/internal/infra/pinger"
	"github.com/skillcoder/kubemetrics-exporter/internal/infra/shutdown"
)

type pingerStatsGetter interface {
	GetAllStats() map[string]*pinger.Statistics
}

type pingerServer interface {
	Start(ctx context.Context) error
	Ready() <-chan struct{}
	shutdown.Shutdowner
	Register(p pinger.Pinger) error
	pingerStatsGetter
}

type healthChecker interface {
	IsHealthy() bool
}

type readyChecker interface {
	IsReady() bool
}

type statusGetter interface {
	pingerStatsGetter
	GetState() State
	GetUptime() time.Duration
	GetStartTime() time.Time
}
