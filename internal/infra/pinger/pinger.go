package pinger

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/skillcoder/kubemetrics-exporter/internal/infra/shutdown"
)

const defaultPingTimeout = 1 * time.Second

var errNilPinger = errors.New("pinger cannot be nil")

// Service runs registered pingers on a schedule and keeps their last results.
type Service struct {
	logger     *slog.Logger
	schedule   Schedule
	mu         sync.RWMutex
	records    map[string]*record
	order      []string
	ready      chan struct{}
	started    atomic.Bool
	inShutdown atomic.Bool
	stopCh     chan struct{}
	doneCh     chan struct{}
}

// New creates a pinger service that runs a round at every schedule activation.
func New(logger *slog.Logger, schedule Schedule) *Service {
	return &Service{
		logger:   logger,
		schedule: schedule,
		records:  make(map[string]*record),
		ready:    make(chan struct{}),
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
}

var _ shutdown.Shutdowner = (*Service)(nil)

func (s *Service) Name() string {
	return "pinger-service"
}

// Register adds a pinger. Names must be unique.
func (s *Service) Register(p Pinger) error {
	if p == nil {
		return fmt.Errorf("register pinger: %w", errNilPinger)
	}

	name := p.Name()

	rec := &record{
		pinger:         p,
		readyCritical:  true,
		healthCritical: true,
		timeout:        defaultPingTimeout,
	}

	if rc, ok := p.(readyCriticalPinger); ok {
		rec.readyCritical = rc.PingerReadyCritical()
	}

	if hc, ok := p.(healthCriticalPinger); ok {
		rec.healthCritical = hc.PingerCritical()
	}

	if tp, ok := p.(timeoutPinger); ok && tp.PingerTimeout() > 0 {
		rec.timeout = tp.PingerTimeout()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.records[name]; exists {
		return fmt.Errorf("register pinger %s: %w", name, ErrPingerAlreadyRegistered)
	}

	s.records[name] = rec
	s.order = append(s.order, name)

	s.logger.Info("pinger registered",
		"name", name,
		"readyCritical", rec.readyCritical,
		"healthCritical", rec.healthCritical,
		"timeout", rec.timeout,
	)

	return nil
}

// Start runs the first round in the background and then follows the schedule.
// Ready is closed once the first round has completed.
func (s *Service) Start(ctx context.Context) error {
	if s.inShutdown.Load() {
		s.logger.InfoContext(ctx, "pinger service is shutting down, skipping start")

		return nil
	}

	if !s.started.CompareAndSwap(false, true) {
		return fmt.Errorf("start pinger service: %w", ErrAlreadyStarted)
	}

	go s.run(ctx)

	return nil
}

func (s *Service) Ready() <-chan struct{} {
	return s.ready
}

// Shutdown stops the loop and waits for the current round to finish.
func (s *Service) Shutdown(ctx context.Context) error {
	if !s.inShutdown.CompareAndSwap(false, true) {
		return nil
	}

	close(s.stopCh)

	if !s.started.Load() {
		return nil
	}

	select {
	case <-ctx.Done():
		return fmt.Errorf("shutdown context done before pinger loop exited: %w", ctx.Err())
	case <-s.doneCh:
		s.logger.InfoContext(ctx, "pinger loop exited")
	}

	return nil
}

// GetStats returns statistics for one pinger.
func (s *Service) GetStats(name string) (*Statistics, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.records[name]
	if !ok {
		return nil, fmt.Errorf("get stats: %w: %s", ErrPingerNotFound, name)
	}

	return rec.snapshot(), nil
}

// GetAllStats returns a copy of every pinger's statistics keyed by name.
func (s *Service) GetAllStats() map[string]*Statistics {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make(map[string]*Statistics, len(s.records))
	for name, rec := range s.records {
		result[name] = rec.snapshot()
	}

	return result
}

func (s *Service) run(ctx context.Context) {
	defer close(s.doneCh)

	logger := s.logger.With("component", "pinger-run")

	s.runRound(ctx, logger)
	close(s.ready)

	for {
		now := time.Now()
		next := s.schedule.Next(now)

		if next.IsZero() {
			logger.WarnContext(ctx, "pinger schedule has no further activations")

			return
		}

		timer := time.NewTimer(next.Sub(now))

		select {
		case <-timer.C:
			s.runRound(ctx, logger)
		case <-s.stopCh:
			timer.Stop()
			logger.InfoContext(ctx, "terminating pinger loop")

			return
		case <-ctx.Done():
			timer.Stop()
			logger.InfoContext(ctx, "terminating pinger loop")

			return
		}
	}
}

// runRound pings every registered dependency in parallel and waits for all.
func (s *Service) runRound(ctx context.Context, logger *slog.Logger) {
	s.mu.RLock()
	records := make([]*record, 0, len(s.order))

	for _, name := range s.order {
		records = append(records, s.records[name])
	}
	s.mu.RUnlock()

	var wg sync.WaitGroup

	for _, rec := range records {
		wg.Add(1)

		go func() {
			defer wg.Done()

			pingCtx, cancel := context.WithTimeout(ctx, rec.timeout)
			defer cancel()

			start := time.Now()
			err := rec.pinger.Ping(pingCtx)
			latency := time.Since(start)

			s.mu.Lock()
			rec.observe(start, latency, err)
			s.mu.Unlock()

			if err != nil {
				logger.WarnContext(ctx, "ping failed",
					"name", rec.pinger.Name(),
					"latency", latency,
					"reason", err,
				)

				return
			}

			logger.DebugContext(ctx, "ping succeeded",
				"name", rec.pinger.Name(),
				"latency", latency,
			)
		}()
	}

	wg.Wait()
}
