// Package shutdown coordinates orderly teardown of an atelier process.
package shutdown

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"
)

// Hook is one teardown step. The context carries the overall deadline;
// a hook that overruns it should give up and return ctx.Err().
type Hook func(context.Context) error

// Handler collects hooks and runs them once a stop is requested.
type Handler struct {
	timeout time.Duration

	mu    sync.Mutex
	hooks []Hook

	trigger chan struct{}
	once    sync.Once
	done    chan struct{}
}

// NewHandler creates a Handler. All hooks together share timeout.
func NewHandler(timeout time.Duration) *Handler {
	return &Handler{
		timeout: timeout,
		trigger: make(chan struct{}),
		done:    make(chan struct{}),
	}
}

// OnShutdown registers a hook. Hooks run in reverse registration
// order.
func (h *Handler) OnShutdown(hook Hook) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.hooks = append(h.hooks, hook)
}

// Trigger requests shutdown without a signal. Safe to call more than
// once; only the first call has an effect.
func (h *Handler) Trigger() {
	h.once.Do(func() { close(h.trigger) })
}

// Wait blocks until SIGINT, SIGTERM, or Trigger, then runs the hooks
// newest-first under the configured deadline. Every hook runs even
// when an earlier one fails; the last failure is returned.
func (h *Handler) Wait() error {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	select {
	case <-sigCh:
	case <-h.trigger:
	}

	ctx, cancel := context.WithTimeout(context.Background(), h.timeout)
	defer cancel()

	h.mu.Lock()
	hooks := make([]Hook, len(h.hooks))
	copy(hooks, h.hooks)
	h.mu.Unlock()

	var lastErr error
	for i := len(hooks) - 1; i >= 0; i-- {
		if err := hooks[i](ctx); err != nil {
			lastErr = err
		}
	}

	close(h.done)
	return lastErr
}

// Done closes when all hooks have finished.
func (h *Handler) Done() <-chan struct{} {
	return h.done
}
