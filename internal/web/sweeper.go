package web

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/javiermolinar/gigbook/internal/session"
)

// sweepTimeout bounds a single scheduled sweep.
const sweepTimeout = time.Minute

// Sweeper periodically moves overdue gigs of every session to past, so
// stored sessions stay classified even when nobody views them.
type Sweeper struct {
	cron     *cron.Cron
	sessions *session.Manager
	log      *slog.Logger
	metrics  *Metrics
}

// NewSweeper schedules a sweep on the given cron spec (five fields or a
// descriptor such as "@daily"). Call Start to begin.
func NewSweeper(spec string, sessions *session.Manager, log *slog.Logger, metrics *Metrics) (*Sweeper, error) {
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if metrics == nil {
		metrics = NewMetrics()
	}
	s := &Sweeper{
		cron:     cron.New(),
		sessions: sessions,
		log:      log,
		metrics:  metrics,
	}
	if _, err := s.cron.AddFunc(spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), sweepTimeout)
		defer cancel()
		s.Run(ctx)
	}); err != nil {
		return nil, fmt.Errorf("scheduling sweep %q: %w", spec, err)
	}
	return s, nil
}

// Run performs one sweep and reports how many gigs moved.
func (s *Sweeper) Run(ctx context.Context) int {
	start := time.Now()
	moved, err := s.sessions.Sweep(ctx)
	s.metrics.TrackSweep(moved, time.Since(start), err)
	if err != nil {
		s.log.Error("sweep failed", "moved", moved, "error", err)
	}
	return moved
}

// Start runs the schedule in the background.
func (s *Sweeper) Start() {
	s.cron.Start()
}

// Stop halts the schedule and waits for a running sweep to finish or ctx
// to expire.
func (s *Sweeper) Stop(ctx context.Context) {
	done := s.cron.Stop()
	select {
	case <-done.Done():
	case <-ctx.Done():
	}
}
