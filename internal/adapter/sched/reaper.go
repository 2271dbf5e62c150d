package sched

import (
	"context"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"veldoria/internal/app/ports"
)

const reaperStopReason = "the action queue stalled and was stopped"

// Reaper fails records that are still active but have not been updated within
// the staleness window. Covers a chain broken by a crash or shutdown between
// persisting an iteration and firing its successor.
type Reaper struct {
	Queues ports.ActionQueueRepository
	// Staleness is how long an active record may go without an update before
	// it is considered dead. Should comfortably exceed the iteration delay.
	Staleness time.Duration
	Logger    *slog.Logger
	Now       func() time.Time

	cron *cron.Cron
}

// Start begins a per-minute sweep. The cadence is coarse on purpose: the
// reaper is a safety net, not part of the iteration path.
func (r *Reaper) Start(ctx context.Context) {
	r.cron = cron.New()
	_, _ = r.cron.AddFunc("@every 1m", func() {
		r.Sweep(ctx)
	})
	r.cron.Start()
	r.logger().Info("stale queue reaper started", "staleness", r.Staleness)
}

func (r *Reaper) Stop() {
	if r.cron != nil {
		<-r.cron.Stop().Done()
	}
	r.logger().Info("stale queue reaper stopped")
}

// Sweep marks every stale active record failed. Exported so startup recovery
// and tests can run a sweep directly.
func (r *Reaper) Sweep(ctx context.Context) {
	cutoff := r.now().Add(-r.Staleness)
	stale, err := r.Queues.ListActiveUpdatedBefore(ctx, cutoff)
	if err != nil {
		r.logger().Error("reaper sweep query failed", "error", err)
		return
	}
	for _, record := range stale {
		record.MarkFailed(reaperStopReason)
		record.UpdatedAt = r.now()
		if err := r.Queues.UpdateIfActive(ctx, record); err != nil {
			// A concurrent iteration or cancel got there first; fine.
			continue
		}
		r.logger().Warn("reaped stale action queue",
			"queue_id", record.ID,
			"player_id", record.PlayerID,
			"action_type", record.Type,
		)
	}
}

func (r *Reaper) now() time.Time {
	if r.Now != nil {
		return r.Now()
	}
	return time.Now()
}

func (r *Reaper) logger() *slog.Logger {
	if r.Logger != nil {
		return r.Logger
	}
	return slog.Default()
}
