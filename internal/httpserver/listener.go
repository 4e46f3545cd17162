package httpserver

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"sync/atomic"
)

var errNotReady = errors.New("server is not ready")

// listener owns the lifecycle shared by both HTTP servers.
type listener struct {
	logger     *slog.Logger
	name       string
	port       string
	mu         sync.RWMutex
	server     *http.Server
	addr       net.Addr
	ready      chan struct{}
	inShutdown atomic.Bool
}

func newListener(logger *slog.Logger, name, port string) *listener {
	return &listener{
		logger: logger.With("component", name),
		name:   name,
		port:   port,
		ready:  make(chan struct{}),
	}
}

// start binds the port synchronously so bind errors reach the caller, then
// serves in the background.
func (l *listener) start(ctx context.Context, server *http.Server) error {
	if l.inShutdown.Load() {
		l.logger.InfoContext(ctx, "server is shutting down, skipping start")

		return nil
	}

	lc := &net.ListenConfig{
		KeepAliveConfig: net.KeepAliveConfig{
			Enable: true,
		},
	}

	ln, err := lc.Listen(ctx, "tcp", server.Addr)
	if err != nil {
		return fmt.Errorf("listen %s tcp %s: %w", l.name, server.Addr, err)
	}

	l.mu.Lock()
	l.server = server
	l.addr = ln.Addr()
	l.mu.Unlock()

	l.logger.InfoContext(ctx, "server listening", "addr", ln.Addr().String())

	close(l.ready)

	go func() {
		if err := server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			l.logger.ErrorContext(ctx, "server error", "reason", err)
		}
	}()

	return nil
}

// Name returns the component name.
func (l *listener) Name() string {
	return l.name
}

// Addr returns the bound address, or nil before Start.
func (l *listener) Addr() net.Addr {
	l.mu.RLock()
	defer l.mu.RUnlock()

	return l.addr
}

// Ready is closed once the port is bound.
func (l *listener) Ready() <-chan struct{} {
	return l.ready
}

// Ping reports whether the server is accepting connections.
func (l *listener) Ping(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-l.ready:
	default:
		return fmt.Errorf("%s: %w", l.name, errNotReady)
	}

	if l.inShutdown.Load() {
		return fmt.Errorf("%s is shutting down: %w", l.name, errNotReady)
	}

	return nil
}

// Shutdown stops accepting connections and waits for in-flight requests.
func (l *listener) Shutdown(ctx context.Context) error {
	if !l.inShutdown.CompareAndSwap(false, true) {
		return nil
	}

	l.mu.RLock()
	server := l.server
	l.mu.RUnlock()

	if server == nil {
		return nil
	}

	l.logger.InfoContext(ctx, "shutting down server")

	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("%s shutdown: %w", l.name, err)
	}

	l.logger.InfoContext(ctx, "server closed properly")

	return nil
}
