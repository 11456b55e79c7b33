package services

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Refresher is the part of the board façade the rollover job needs.
type Refresher interface {
	Refresh(ctx context.Context)
}

// DayRollover re-projects the board when the calendar date changes. Overdue flags and
// the overdue summary depend on "today", so a board left open overnight would otherwise
// show yesterday's numbers until the next mutation.
type DayRollover struct {
	board  Refresher
	cron   *cron.Cron
	logger *zap.Logger
}

// NewDayRollover schedules board.Refresh on a six-field cron spec (seconds first),
// midnight local time by default.
func NewDayRollover(board Refresher, schedule string, logger *zap.Logger) (*DayRollover, error) {
	if schedule == "" {
		schedule = "0 0 0 * * *"
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	r := &DayRollover{
		board:  board,
		cron:   cron.New(cron.WithSeconds()),
		logger: logger,
	}
	if _, err := r.cron.AddFunc(schedule, r.Tick); err != nil {
		return nil, fmt.Errorf("invalid rollover schedule %q: %w", schedule, err)
	}
	return r, nil
}

// Tick refreshes the board once.
func (r *DayRollover) Tick() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	r.board.Refresh(ctx)
	r.logger.Info("board refreshed for new day")
}

// Start launches the cron scheduler.
func (r *DayRollover) Start() {
	if r == nil || r.cron == nil {
		return
	}
	r.cron.Start()
	r.logger.Info("day rollover scheduler started")
}

// Stop waits for a running tick or ctx, whichever ends first.
func (r *DayRollover) Stop(ctx context.Context) {
	if r == nil || r.cron == nil {
		return
	}
	stopCtx := r.cron.Stop()
	select {
	case <-stopCtx.Done():
	case <-ctx.Done():
	}
	r.logger.Info("day rollover scheduler stopped")
}

// Next returns the next scheduled refresh time.
func (r *DayRollover) Next() time.Time {
	entries := r.cron.Entries()
	if len(entries) == 0 {
		return time.Time{}
	}
	return entries[0].Schedule.Next(time.Now())
}
