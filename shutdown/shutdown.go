// Package shutdown turns SIGINT and SIGTERM into context cancellation and runs
// registered cleanup hooks first, so that an interrupted benchmark still flushes
// its history store and telemetry.
package shutdown

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"
)

var (
	mut      sync.Mutex         //nolint:gochecknoglobals
	hooks    []func()           //nolint:gochecknoglobals
	trigger  chan os.Signal     //nolint:gochecknoglobals
	cancelFn context.CancelFunc //nolint:gochecknoglobals
)

// BeforeShutdown registers h to run when shutdown begins, before the context
// returned by SetupHandler is canceled. Hooks run in registration order.
func BeforeShutdown(h func()) {
	mut.Lock()
	defer mut.Unlock()

	hooks = append(hooks, h)
}

// Shutdown starts the shutdown sequence as if an interrupt had arrived. It does
// nothing if SetupHandler has not been called or shutdown already started.
func Shutdown() {
	mut.Lock()
	ch := trigger
	mut.Unlock()

	if ch == nil {
		return
	}

	select {
	case ch <- os.Interrupt:
	default:
	}
}

// SetupHandler listens for SIGINT and SIGTERM and returns a context that is
// canceled, after the hooks have run, when either arrives or Shutdown is called.
func SetupHandler() context.Context {
	ctx, cancel := context.WithCancel(context.Background())

	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)

	mut.Lock()
	trigger = ch
	cancelFn = cancel
	mut.Unlock()

	go func() {
		select {
		case sig := <-ch:
			slog.Warn("Received " + sig.String() + ", shutting down...")
			stop(ch)
		case <-ctx.Done():
		}
	}()

	return ctx
}

func stop(ch chan os.Signal) {
	signal.Stop(ch)

	mut.Lock()
	pending := hooks
	hooks = nil
	trigger = nil
	cancel := cancelFn
	mut.Unlock()

	for _, h := range pending {
		h()
	}

	if cancel != nil {
		cancel()
	}
}
