package app

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"
)

// interruptContext returns a context canceled on SIGINT or SIGTERM and, if
// timeout is positive, once timeout has elapsed. The returned func releases
// both and restores default signal handling; it must be called.
func interruptContext(parent context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	ctx, stopSignals := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	if timeout <= 0 {
		return ctx, stopSignals
	}
	ctx, cancelTimer := context.WithTimeout(ctx, timeout)
	return ctx, func() {
		cancelTimer()
		stopSignals()
	}
}
