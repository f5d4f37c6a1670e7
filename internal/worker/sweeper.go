package worker

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// Cleaner drops expired entries and reports how many were removed.
type Cleaner interface {
	Cleanup() int
}

// Sweeper periodically cleans in-memory token and rate limit state.
type Sweeper struct {
	interval time.Duration
	cleaners map[string]Cleaner
	logger   *zap.Logger
}

// NewSweeper creates a sweeper running every interval.
func NewSweeper(interval time.Duration, logger *zap.Logger, cleaners map[string]Cleaner) *Sweeper {
	if interval <= 0 {
		interval = time.Minute
	}
	return &Sweeper{interval: interval, cleaners: cleaners, logger: logger}
}

// Run blocks until ctx is cancelled.
func (s *Sweeper) Run(ctx context.Context) {
	if len(s.cleaners) == 0 {
		return
	}
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Debug("sweeper stopped")
			return
		case <-ticker.C:
			s.SweepOnce()
		}
	}
}

// SweepOnce runs every cleaner once.
func (s *Sweeper) SweepOnce() {
	for name, cleaner := range s.cleaners {
		if removed := cleaner.Cleanup(); removed > 0 {
			s.logger.Debug("swept expired entries", zap.String("store", name), zap.Int("removed", removed))
		}
	}
}
