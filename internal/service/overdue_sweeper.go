package service

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// OverdueMarker is the part of InvoiceService the sweeper drives.
type OverdueMarker interface {
	MarkOverdue(ctx context.Context, now time.Time) (int, error)
}

// OverdueSweeper periodically moves unpaid invoices to Overdue.
type OverdueSweeper struct {
	marker  OverdueMarker
	log     *zap.Logger
	cron    *cron.Cron
	timeout time.Duration
	now     func() time.Time
}

// NewOverdueSweeper registers a sweep for schedule, a standard cron expression or
// descriptor such as "@daily". Nothing runs until Start.
func NewOverdueSweeper(marker OverdueMarker, schedule string, log *zap.Logger) (*OverdueSweeper, error) {
	s := &OverdueSweeper{
		marker:  marker,
		log:     log,
		cron:    cron.New(),
		timeout: time.Minute,
		now:     time.Now,
	}
	if _, err := s.cron.AddFunc(schedule, s.Sweep); err != nil {
		return nil, fmt.Errorf("overdue sweeper: invalid schedule %q: %w", schedule, err)
	}
	return s, nil
}

// Sweep runs one pass immediately.
func (s *OverdueSweeper) Sweep() {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	n, err := s.marker.MarkOverdue(ctx, s.now())
	if err != nil {
		s.log.Error("overdue sweep failed", zap.Int("marked", n), zap.Error(err))
		return
	}
	if n > 0 {
		s.log.Info("overdue sweep marked invoices", zap.Int("marked", n))
	}
}

// Start begins running the schedule in the background.
func (s *OverdueSweeper) Start() {
	s.cron.Start()
	s.log.Info("overdue sweeper started")
}

// Stop halts the schedule and waits for a running sweep to finish or ctx to
// end, whichever comes first.
func (s *OverdueSweeper) Stop(ctx context.Context) {
	done := s.cron.Stop()
	select {
	case <-done.Done():
	case <-ctx.Done():
	}
}
