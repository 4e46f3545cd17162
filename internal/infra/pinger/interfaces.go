package pinger

import (
	"context"
	"time"
)

// Pinger checks reachability of a dependency.
type Pinger interface {
	Name() string
	Ping(ctx context.Context) error
}

// Optional interfaces a Pinger may implement. A pinger without them is
// health and ready critical and uses the default timeout.
type readyCriticalPinger interface {
	PingerReadyCritical() bool
}

type healthCriticalPinger interface {
	PingerCritical() bool
}

type timeoutPinger interface {
	PingerTimeout() time.Duration
}

// Schedule yields the next ping round after the given time.
type Schedule interface {
	Next(after time.Time) time.Time
}
