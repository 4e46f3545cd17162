package pinger

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type everySchedule time.Duration

func (e everySchedule) Next(after time.Time) time.Time {
	return after.Add(time.Duration(e))
}

type neverSchedule struct{}

func (neverSchedule) Next(time.Time) time.Time {
	return time.Time{}
}

type fakePinger struct {
	name  string
	err   error
	calls atomic.Int32
}

func (f *fakePinger) Name() string { return f.name }

func (f *fakePinger) Ping(context.Context) error {
	f.calls.Add(1)

	return f.err
}

type optionalPinger struct {
	fakePinger
	timeout time.Duration
}

func (o *optionalPinger) PingerCritical() bool         { return false }
func (o *optionalPinger) PingerReadyCritical() bool    { return false }
func (o *optionalPinger) PingerTimeout() time.Duration { return o.timeout }

type blockingPinger struct {
	fakePinger
}

func (b *blockingPinger) Ping(ctx context.Context) error {
	<-ctx.Done()

	return ctx.Err()
}

func (b *blockingPinger) PingerTimeout() time.Duration { return 20 * time.Millisecond }

func TestService_Register(t *testing.T) {
	t.Parallel()

	t.Run("defaults are critical", func(t *testing.T) {
		t.Parallel()

		service := New(slog.Default(), everySchedule(time.Second))
		require.NoError(t, service.Register(&fakePinger{name: "db"}))

		stats, err := service.GetStats("db")
		require.NoError(t, err)
		require.True(t, stats.HealthCritical)
		require.True(t, stats.ReadyCritical)
		require.Equal(t, defaultPingTimeout, service.records["db"].timeout)
	})

	t.Run("optional interfaces are honored", func(t *testing.T) {
		t.Parallel()

		service := New(slog.Default(), everySchedule(time.Second))
		require.NoError(t, service.Register(&optionalPinger{fakePinger: fakePinger{name: "api"}, timeout: 3 * time.Second}))

		stats, err := service.GetStats("api")
		require.NoError(t, err)
		require.False(t, stats.HealthCritical)
		require.False(t, stats.ReadyCritical)
		require.Equal(t, 3*time.Second, service.records["api"].timeout)
	})

	t.Run("nil pinger", func(t *testing.T) {
		t.Parallel()

		service := New(slog.Default(), everySchedule(time.Second))
		require.Error(t, service.Register(nil))
	})

	t.Run("duplicate name", func(t *testing.T) {
		t.Parallel()

		service := New(slog.Default(), everySchedule(time.Second))
		require.NoError(t, service.Register(&fakePinger{name: "dup"}))

		err := service.Register(&fakePinger{name: "dup"})
		require.ErrorIs(t, err, ErrPingerAlreadyRegistered)
	})
}

func TestService_GetStats(t *testing.T) {
	t.Parallel()

	service := New(slog.Default(), everySchedule(time.Second))
	require.NoError(t, service.Register(&fakePinger{name: "one"}))
	require.NoError(t, service.Register(&fakePinger{name: "two"}))

	_, err := service.GetStats("missing")
	require.ErrorIs(t, err, ErrPingerNotFound)

	all := service.GetAllStats()
	require.Len(t, all, 2)
	require.Equal(t, "one", all["one"].Name)
	require.Zero(t, all["two"].SuccessCount)
}

func TestService_Run(t *testing.T) {
	t.Parallel()

	t.Run("first round completes before ready", func(t *testing.T) {
		t.Parallel()

		ok := &fakePinger{name: "ok"}
		bad := &fakePinger{name: "bad", err: errors.New("connection refused")}

		service := New(slog.Default(), everySchedule(time.Hour))
		require.NoError(t, service.Register(ok))
		require.NoError(t, service.Register(bad))
		require.NoError(t, service.Start(t.Context()))

		select {
		case <-service.Ready():
		case <-time.After(2 * time.Second):
			t.Fatal("pinger service did not become ready")
		}

		okStats, err := service.GetStats("ok")
		require.NoError(t, err)
		require.EqualValues(t, 1, okStats.SuccessCount)
		require.False(t, okStats.Failing())
		require.False(t, okStats.LastSuccess.IsZero())

		badStats, err := service.GetStats("bad")
		require.NoError(t, err)
		require.EqualValues(t, 1, badStats.ErrorCount)
		require.True(t, badStats.Failing())
		require.Equal(t, "connection refused", badStats.LastError)

		require.NoError(t, service.Shutdown(t.Context()))
	})

	t.Run("follows schedule", func(t *testing.T) {
		t.Parallel()

		p := &fakePinger{name: "tick"}

		service := New(slog.Default(), everySchedule(10*time.Millisecond))
		require.NoError(t, service.Register(p))
		require.NoError(t, service.Start(t.Context()))

		require.Eventually(t, func() bool {
			return p.calls.Load() >= 3
		}, 2*time.Second, 5*time.Millisecond)

		require.NoError(t, service.Shutdown(t.Context()))
	})

	t.Run("timeout is applied per pinger", func(t *testing.T) {
		t.Parallel()

		service := New(slog.Default(), everySchedule(time.Hour))
		require.NoError(t, service.Register(&blockingPinger{fakePinger: fakePinger{name: "slow"}}))
		require.NoError(t, service.Start(t.Context()))

		select {
		case <-service.Ready():
		case <-time.After(2 * time.Second):
			t.Fatal("pinger service did not become ready")
		}

		stats, err := service.GetStats("slow")
		require.NoError(t, err)
		require.Contains(t, stats.LastError, context.DeadlineExceeded.Error())

		require.NoError(t, service.Shutdown(t.Context()))
	})

	t.Run("schedule without activations stops loop", func(t *testing.T) {
		t.Parallel()

		service := New(slog.Default(), neverSchedule{})
		require.NoError(t, service.Start(t.Context()))

		select {
		case <-service.doneCh:
		case <-time.After(2 * time.Second):
			t.Fatal("pinger loop did not exit")
		}
	})

	t.Run("start twice", func(t *testing.T) {
		t.Parallel()

		service := New(slog.Default(), everySchedule(time.Hour))
		require.NoError(t, service.Start(t.Context()))
		require.ErrorIs(t, service.Start(t.Context()), ErrAlreadyStarted)
		require.NoError(t, service.Shutdown(t.Context()))
	})
}

func TestService_Shutdown(t *testing.T) {
	t.Parallel()

	t.Run("without start", func(t *testing.T) {
		t.Parallel()

		service := New(slog.Default(), everySchedule(time.Second))
		require.NoError(t, service.Shutdown(t.Context()))
		require.NoError(t, service.Start(t.Context()))
	})

	t.Run("idempotent", func(t *testing.T) {
		t.Parallel()

		service := New(slog.Default(), everySchedule(time.Second))
		require.NoError(t, service.Start(t.Context()))
		require.NoError(t, service.Shutdown(t.Context()))
		require.NoError(t, service.Shutdown(t.Context()))
	})
}
