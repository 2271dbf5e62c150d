package ports

import (
	"context"
	"time"

	"veldoria/internal/domain/realm"
)

type PlayerRepository interface {
	GetByID(ctx context.Context, playerID string) (realm.Player, error)
	// SaveWithVersion persists the player only if the stored version still
	// equals expectedVersion; otherwise it returns ErrConflict.
	// expectedVersion == 0 creates the row.
	SaveWithVersion(ctx context.Context, player realm.Player, expectedVersion int64) error
}

type ActionQueueRepository interface {
	GetByID(ctx context.Context, queueID string) (realm.ActionQueue, error)
	// GetByPlayerID returns the player's most recent record regardless of
	// status; a terminal, undismissed record is still "theirs".
	GetByPlayerID(ctx context.Context, playerID string) (realm.ActionQueue, error)
	GetActiveByPlayerID(ctx context.Context, playerID string) (realm.ActionQueue, error)
	// Create inserts a new active record. It returns ErrConflict when the
	// player already has an active one (unique-active constraint).
	Create(ctx context.Context, queue realm.ActionQueue) error
	// UpdateIfActive persists counters and status transitions, guarded by
	// "current status is still active". Returns ErrConflict when a concurrent
	// cancel or dismiss already resolved the record.
	UpdateIfActive(ctx context.Context, queue realm.ActionQueue) error
	// Delete removes a record. Deleting an absent id is not an error.
	Delete(ctx context.Context, queueID string) error
	// ListActiveUpdatedBefore returns active records whose last persisted
	// update is older than cutoff. Used by the stale-queue reaper and by
	// startup chain recovery.
	ListActiveUpdatedBefore(ctx context.Context, cutoff time.Time) ([]realm.ActionQueue, error)
}
