// Package worker holds the background jobs that run beside the HTTP server.
package worker

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// Completer marks elapsed appointments completed and reports how many changed.
type Completer interface {
	CompleteElapsed(ctx context.Context) (int64, error)
}

// Refresher periodically flips active appointments whose slot has passed
// to completed, keeping reads consistent without per-request scans.
type Refresher struct {
	completer Completer
	interval  time.Duration
	logger    *zap.Logger
}

// NewRefresher builds a Refresher ticking at the given interval.
func NewRefresher(completer Completer, interval time.Duration, logger *zap.Logger) *Refresher {
	return &Refresher{completer: completer, interval: interval, logger: logger}
}

// Run sweeps once immediately, then on every tick until the context is
// cancelled. Sweep errors are logged and the loop keeps going.
func (r *Refresher) Run(ctx context.Context) {
	r.sweep(ctx)

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			r.logger.Info("status refresher stopped")
			return
		case <-ticker.C:
			r.sweep(ctx)
		}
	}
}

func (r *Refresher) sweep(ctx context.Context) {
	n, err := r.completer.CompleteElapsed(ctx)
	if err != nil {
		r.logger.Error("status sweep failed", zap.Error(err))
		return
	}
	if n > 0 {
		r.logger.Info("appointments completed", zap.Int64("count", n))
	}
}
