// Package worker runs the background sweep loop.
package worker

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/greglas75/coding-ui-sub018/pkg/services"
)

// SweepRunner executes sweeps on a fixed interval until the context is
// cancelled. A zero interval means one-shot mode: run a single sweep and
// return.
type SweepRunner struct {
	sweep    services.SweepService
	interval time.Duration
	logger   *zap.Logger
}

// NewSweepRunner creates a new sweep runner.
func NewSweepRunner(sweep services.SweepService, interval time.Duration, logger *zap.Logger) *SweepRunner {
	return &SweepRunner{
		sweep:    sweep,
		interval: interval,
		logger:   logger.Named("sweep-runner"),
	}
}

// Run blocks until the context is cancelled. Sweep failures are logged and
// the loop continues; only one-shot mode propagates the sweep error.
func (r *SweepRunner) Run(ctx context.Context) error {
	if r.interval <= 0 {
		r.logger.Info("Running one-shot sweep")
		_, err := r.sweep.Sweep(ctx)
		return err
	}

	r.logger.Info("Starting sweep loop", zap.Duration("interval", r.interval))

	// First sweep runs immediately rather than waiting a full interval.
	r.runOnce(ctx)

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			r.logger.Info("Sweep loop stopping", zap.Error(ctx.Err()))
			return ctx.Err()
		case <-ticker.C:
			r.runOnce(ctx)
		}
	}
}

func (r *SweepRunner) runOnce(ctx context.Context) {
	if _, err := r.sweep.Sweep(ctx); err != nil && ctx.Err() == nil {
		r.logger.Error("Sweep failed", zap.Error(err))
	}
}
