// Package sweeper runs the periodic purge of expired verification
// codes, decoupled from request activity.
package sweeper

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/verimail/verimail/internal/metrics"
)

// Sweeping is the slice of the verification usecase the sweeper needs.
type Sweeping interface {
	Sweep(ctx context.Context) (int, error)
}

type Sweeper struct {
	usecase  Sweeping
	schedule cron.Schedule
	logger   *slog.Logger
}

// New parses expr as a standard 5-field cron expression
// (e.g. "*/15 * * * *" for every 15 minutes).
func New(usecase Sweeping, expr string, logger *slog.Logger) (*Sweeper, error) {
	schedule, err := cron.ParseStandard(expr)
	if err != nil {
		return nil, fmt.Errorf("parse sweep schedule: %w", err)
	}
	return &Sweeper{
		usecase:  usecase,
		schedule: schedule,
		logger:   logger.With("component", "sweeper"),
	}, nil
}

// Start blocks until ctx is cancelled, sweeping at every scheduled tick.
func (s *Sweeper) Start(ctx context.Context) {
	s.logger.Info("sweeper started", "next_run", s.schedule.Next(time.Now()))

	for {
		next := s.schedule.Next(time.Now())
		timer := time.NewTimer(time.Until(next))

		select {
		case <-ctx.Done():
			timer.Stop()
			s.logger.Info("sweeper shut down")
			return
		case <-timer.C:
			s.sweep(ctx)
		}
	}
}

func (s *Sweeper) sweep(ctx context.Context) {
	start := time.Now()

	count, err := s.usecase.Sweep(ctx)
	if err != nil {
		s.logger.Error("sweep cycle", "error", err)
		return
	}

	metrics.SweepCycleDuration.Observe(time.Since(start).Seconds())
	metrics.SweepDeletedTotal.Add(float64(count))

	if count > 0 {
		s.logger.Info("sweep cycle done", "deleted", count, "took", time.Since(start))
	}
}
