package shutdown_test

import (
	"context"
	"log/slog"
	"os"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/skillcoder/kubemetrics-exporter/internal/infra/shutdown"
	"github.com/skillcoder/kubemetrics-exporter/internal/infra/shutdown/mocks"
)

type chanQuiter chan os.Signal

func (c chanQuiter) Quit() <-chan os.Signal { return c }

func TestHandler_HandleSignals(t *testing.T) {
	t.Parallel()

	t.Run("signal cancels", func(t *testing.T) {
		t.Parallel()

		quit := make(chanQuiter, 1)
		quit <- syscall.SIGTERM

		cancelled := false
		shutdown.New(slog.Default(), quit).HandleSignals(t.Context(), func() { cancelled = true })

		require.True(t, cancelled)
	})

	t.Run("context done returns without cancel", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(t.Context())
		cancel()

		cancelled := false
		shutdown.New(slog.Default(), make(chanQuiter)).HandleSignals(ctx, func() { cancelled = true })

		require.False(t, cancelled)
	})
}

func TestGracefulShutdown(t *testing.T) {
	t.Parallel()

	logger := slog.Default()

	t.Run("empty list returns nil", func(t *testing.T) {
		t.Parallel()

		require.NoError(t, shutdown.GracefulShutdown(t.Context(), logger, nil))
	})

	t.Run("one shutdowner success returns nil", func(t *testing.T) {
		t.Parallel()

		m := mocks.NewMockShutdowner(t)
		m.EXPECT().Name().Return("test").Once()
		m.EXPECT().Shutdown(mock.Anything).Return(nil).Once()

		require.NoError(t, shutdown.GracefulShutdown(t.Context(), logger, []shutdown.Shutdowner{m}))
	})

	t.Run("errors are joined and all components attempted", func(t *testing.T) {
		t.Parallel()

		first := mocks.NewMockShutdowner(t)
		first.EXPECT().Name().Return("first").Once()
		first.EXPECT().Shutdown(mock.Anything).Return(context.DeadlineExceeded).Once()

		second := mocks.NewMockShutdowner(t)
		second.EXPECT().Name().Return("second").Once()
		second.EXPECT().Shutdown(mock.Anything).Return(nil).Once()

		err := shutdown.GracefulShutdown(t.Context(), logger, []shutdown.Shutdowner{first, second})
		require.ErrorIs(t, err, context.DeadlineExceeded)
		require.ErrorContains(t, err, "shutdown first")
	})

	t.Run("reverse order", func(t *testing.T) {
		t.Parallel()

		var order []string

		first := mocks.NewMockShutdowner(t)
		first.EXPECT().Name().Return("first").Once()
		first.EXPECT().Shutdown(mock.Anything).Run(func(context.Context) { order = append(order, "first") }).Return(nil).Once()

		second := mocks.NewMockShutdowner(t)
		second.EXPECT().Name().Return("second").Once()
		second.EXPECT().Shutdown(mock.Anything).Run(func(context.Context) { order = append(order, "second") }).Return(nil).Once()

		require.NoError(t, shutdown.GracefulShutdown(t.Context(), logger, []shutdown.Shutdowner{first, second}))
		require.Equal(t, []string{"second", "first"}, order)
	})

	t.Run("cancelled origin still gets a deadline", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(t.Context())
		cancel()

		m := mocks.NewMockShutdowner(t)
		m.EXPECT().Name().Return("test").Once()
		m.EXPECT().Shutdown(mock.Anything).RunAndReturn(func(ctx context.Context) error {
			deadline, ok := ctx.Deadline()
			require.True(t, ok)
			require.WithinDuration(t, time.Now().Add(5*time.Second), deadline, time.Second)

			return ctx.Err()
		}).Once()

		require.NoError(t, shutdown.GracefulShutdown(ctx, logger, []shutdown.Shutdowner{m}))
	})
}
