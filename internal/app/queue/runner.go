package queue

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"veldoria/internal/app/execute"
	"veldoria/internal/app/ports"
	"veldoria/internal/domain/realm"
)

// DefaultIterationDelay is the pause between two iterations of one queue.
const DefaultIterationDelay = 3 * time.Second

const genericStopReason = "something went wrong while processing the action"

// Runner advances one ActionQueue record per invocation. It is not a loop:
// each invocation reads persisted state, does one unit of work, persists, and
// schedules at most one successor. All state between invocations lives in the
// record, so a process restart loses at most one un-persisted iteration.
type Runner struct {
	TxManager  ports.TxManager
	QueueRepo  ports.ActionQueueRepository
	PlayerRepo ports.PlayerRepository
	Executors  ports.ExecutorRegistry
	Scheduler  ports.RunnerScheduler
	Metrics    ports.QueueMetrics
	Logger     *slog.Logger
	// Delay between iterations; DefaultIterationDelay when zero.
	Delay time.Duration
	Now   func() time.Time
}

// RunIteration executes one iteration for the given record id. It never
// returns an error: every outcome ends in either a persisted record update
// plus one scheduled successor, or a terminal record. A panic is caught and
// the record is marked failed on a best-effort basis.
func (r Runner) RunIteration(ctx context.Context, queueID string) {
	reschedule := false
	defer func() {
		if rec := recover(); rec != nil {
			r.logger().Error("action queue iteration panicked", "queue_id", queueID, "panic", rec)
			r.markFailedBestEffort(ctx, queueID)
			return
		}
		if reschedule {
			r.Scheduler.Schedule(queueID, r.delay())
		}
	}()
	reschedule = r.iterate(ctx, queueID)
}

func (r Runner) iterate(ctx context.Context, queueID string) bool {
	reschedule := false
	err := r.TxManager.RunInTx(ctx, func(txCtx context.Context) error {
		record, err := r.QueueRepo.GetByID(txCtx, queueID)
		if errors.Is(err, ports.ErrNotFound) {
			// Dismissed concurrently; nothing left to do.
			return nil
		}
		if err != nil {
			return err
		}
		if record.Status != realm.QueueActive {
			// A cancel landed between the previous iteration and this one.
			return nil
		}

		player, err := r.PlayerRepo.GetByID(txCtx, record.PlayerID)
		if errors.Is(err, ports.ErrNotFound) {
			record.MarkFailed("player not found")
			return r.persistTerminal(txCtx, record)
		}
		if err != nil {
			return err
		}

		// World state can change between iterations, so these run every time,
		// against freshly loaded player state.
		if player.Traveling {
			record.MarkCancelled("you started traveling")
			return r.persistTerminal(txCtx, record)
		}
		if player.Infirmary {
			record.MarkCancelled("you were sent to the infirmary")
			return r.persistTerminal(txCtx, record)
		}

		executor, ok := r.Executors.For(record.Type)
		if !ok {
			record.MarkFailed("unknown action type")
			return r.persistTerminal(txCtx, record)
		}

		location := execute.ResolveLocation(record.Params, player)
		if r.Metrics != nil {
			r.Metrics.RecordIteration(record.Type)
		}
		prevVersion := player.Version
		result := executor.Execute(txCtx, &player, record.Params, location)

		if !result.ContinuesQueue(record.Type) {
			record.MarkFailed(result.Message)
			return r.persistTerminal(txCtx, record)
		}

		player.Version++
		if err := r.PlayerRepo.SaveWithVersion(txCtx, player, prevVersion); err != nil {
			return err
		}

		record.ApplyResult(result)
		if record.TargetReached() {
			record.MarkCompleted()
			return r.persistTerminal(txCtx, record)
		}

		record.UpdatedAt = r.now()
		if err := r.QueueRepo.UpdateIfActive(txCtx, record); err != nil {
			if errors.Is(err, ports.ErrConflict) {
				return nil
			}
			return err
		}
		reschedule = true
		return nil
	})
	if err != nil {
		r.logger().Error("action queue iteration failed", "queue_id", queueID, "error", err)
		r.markFailedBestEffort(ctx, queueID)
		return false
	}
	return reschedule
}

// persistTerminal writes a terminal transition under the active-status guard,
// so a concurrent cancel or dismiss wins cleanly.
func (r Runner) persistTerminal(ctx context.Context, record realm.ActionQueue) error {
	record.UpdatedAt = r.now()
	if err := r.QueueRepo.UpdateIfActive(ctx, record); err != nil {
		if errors.Is(err, ports.ErrConflict) {
			return nil
		}
		return err
	}
	if r.Metrics != nil {
		r.Metrics.RecordTerminal(record.Type, record.Status)
	}
	r.logger().Info("action queue finished",
		"queue_id", record.ID,
		"player_id", record.PlayerID,
		"action_type", record.Type,
		"status", record.Status,
		"completed", record.Completed,
		"stop_reason", record.StopReason,
	)
	return nil
}

// markFailedBestEffort is the cleanup path on the way out of an unexpected
// error. It runs outside the failed transaction and ignores its own errors; a
// record it cannot reach is picked up by the stale-queue reaper.
func (r Runner) markFailedBestEffort(ctx context.Context, queueID string) {
	record, err := r.QueueRepo.GetByID(ctx, queueID)
	if err != nil || record.Status != realm.QueueActive {
		return
	}
	record.MarkFailed(genericStopReason)
	record.UpdatedAt = r.now()
	if err := r.QueueRepo.UpdateIfActive(ctx, record); err != nil && !errors.Is(err, ports.ErrConflict) {
		r.logger().Error("could not mark crashed queue as failed", "queue_id", queueID, "error", err)
		return
	}
	if r.Metrics != nil {
		r.Metrics.RecordTerminal(record.Type, realm.QueueFailed)
	}
}

func (r Runner) delay() time.Duration {
	if r.Delay > 0 {
		return r.Delay
	}
	return DefaultIterationDelay
}

func (r Runner) now() time.Time {
	if r.Now != nil {
		return r.Now()
	}
	return time.Now()
}

func (r Runner) logger() *slog.Logger {
	if r.Logger != nil {
		return r.Logger
	}
	return slog.Default()
}
