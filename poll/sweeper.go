// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package poll

import (
	"context"
	"log/slog"
	"time"
)

// Sweeper runs the expiry sweep on a fixed interval. Key TTLs already
// self-reclaim storage if the sweep never runs; the sweep additionally
// clears the active index and emits closed-notifications promptly.
type Sweeper struct {
	repo     *Repository
	interval time.Duration
}

func NewSweeper(repo *Repository, interval time.Duration) *Sweeper {
	return &Sweeper{repo: repo, interval: interval}
}

// Run sweeps once immediately, then on every tick until ctx is cancelled.
func (s *Sweeper) Run(ctx context.Context) {
	s.sweep()

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			slog.Info("sweeper stopped")
			return
		case <-ticker.C:
			s.sweep()
		}
	}
}

func (s *Sweeper) sweep() {
	if _, err := s.repo.SweepExpired(); err != nil {
		slog.Error("expiry sweep failed", "error", err)
	}
}
