package queue

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"veldoria/internal/app/ports"
	"veldoria/internal/domain/realm"
)

var (
	ErrInvalidRequest    = errors.New("invalid queue request")
	ErrInvalidActionType = errors.New("invalid action type")
	ErrAlreadyQueued     = errors.New("an action queue is already active")
	ErrQueueStillActive  = errors.New("queue is still active")
)

// UseCase owns the record lifecycle around the runner: start, cancel,
// dismiss, and the page-state snapshot.
type UseCase struct {
	TxManager  ports.TxManager
	QueueRepo  ports.ActionQueueRepository
	PlayerRepo ports.PlayerRepository
	Scheduler  ports.RunnerScheduler
	Metrics    ports.QueueMetrics
	Now        func() time.Time
	NewID      func() string
}

// Start creates an active record and schedules the first runner invocation
// with zero delay. Shape validation of the params is deferred to the first
// iteration; the executor reports it as a normal failed attempt.
func (u UseCase) Start(ctx context.Context, req StartRequest) (StartResponse, error) {
	req.PlayerID = strings.TrimSpace(req.PlayerID)
	if req.PlayerID == "" || req.Total < 0 {
		return StartResponse{}, ErrInvalidRequest
	}
	actionType, ok := realm.ParseActionType(strings.TrimSpace(req.ActionType))
	if !ok {
		return StartResponse{}, ErrInvalidActionType
	}

	nowFn := u.Now
	if nowFn == nil {
		nowFn = time.Now
	}
	newID := u.NewID
	if newID == nil {
		newID = uuid.NewString
	}

	record := realm.ActionQueue{
		ID:        newID(),
		PlayerID:  req.PlayerID,
		Type:      actionType,
		Params:    req.Params,
		Status:    realm.QueueActive,
		Total:     req.Total,
		CreatedAt: nowFn(),
		UpdatedAt: nowFn(),
	}

	err := u.TxManager.RunInTx(ctx, func(txCtx context.Context) error {
		if _, err := u.PlayerRepo.GetByID(txCtx, req.PlayerID); err != nil {
			return err
		}
		// Any existing record blocks creation: an active one by the
		// at-most-one-active invariant, a terminal one because it awaits an
		// explicit dismiss. Check-and-create under the same transaction; the
		// partial unique index backs it up against racing starts.
		_, err := u.QueueRepo.GetByPlayerID(txCtx, req.PlayerID)
		if err == nil {
			return ErrAlreadyQueued
		}
		if !errors.Is(err, ports.ErrNotFound) {
			return err
		}
		if err := u.QueueRepo.Create(txCtx, record); err != nil {
			if errors.Is(err, ports.ErrConflict) {
				return ErrAlreadyQueued
			}
			return err
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrAlreadyQueued) && u.Metrics != nil {
			u.Metrics.RecordStartRejected()
		}
		return StartResponse{}, err
	}

	u.Scheduler.Schedule(record.ID, 0)
	return StartResponse{Queue: ToView(record)}, nil
}

// Cancel flips the caller's active record to cancelled. The next scheduled
// runner invocation observes the status and aborts. If there is no active
// record to cancel, the call is an acknowledged no-op.
func (u UseCase) Cancel(ctx context.Context, playerID string) error {
	playerID = strings.TrimSpace(playerID)
	if playerID == "" {
		return ErrInvalidRequest
	}
	return u.TxManager.RunInTx(ctx, func(txCtx context.Context) error {
		record, err := u.QueueRepo.GetActiveByPlayerID(txCtx, playerID)
		if errors.Is(err, ports.ErrNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		record.MarkCancelled("cancelled by player")
		if err := u.QueueRepo.UpdateIfActive(txCtx, record); err != nil {
			if errors.Is(err, ports.ErrConflict) {
				// Already resolved concurrently.
				return nil
			}
			return err
		}
		if u.Metrics != nil {
			u.Metrics.RecordTerminal(record.Type, realm.QueueCancelled)
		}
		return nil
	})
}

// Dismiss deletes a terminal record so a new queue can be started. Dismissing
// an absent record is a no-op; dismissing another player's record has no
// effect on it.
func (u UseCase) Dismiss(ctx context.Context, playerID, queueID string) error {
	playerID = strings.TrimSpace(playerID)
	queueID = strings.TrimSpace(queueID)
	if playerID == "" || queueID == "" {
		return ErrInvalidRequest
	}
	return u.TxManager.RunInTx(ctx, func(txCtx context.Context) error {
		record, err := u.QueueRepo.GetByID(txCtx, queueID)
		if errors.Is(err, ports.ErrNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		if record.PlayerID != playerID {
			return nil
		}
		if record.Status == realm.QueueActive {
			return ErrQueueStillActive
		}
		return u.QueueRepo.Delete(txCtx, queueID)
	})
}

// Snapshot returns the caller's own record, if any, in the same shape the
// start response uses.
func (u UseCase) Snapshot(ctx context.Context, playerID string) (SnapshotResponse, error) {
	playerID = strings.TrimSpace(playerID)
	if playerID == "" {
		return SnapshotResponse{}, ErrInvalidRequest
	}
	record, err := u.QueueRepo.GetByPlayerID(ctx, playerID)
	if errors.Is(err, ports.ErrNotFound) {
		return SnapshotResponse{}, nil
	}
	if err != nil {
		return SnapshotResponse{}, err
	}
	view := ToView(record)
	return SnapshotResponse{Queue: &view}, nil
}
