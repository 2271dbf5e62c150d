package sched

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"veldoria/internal/adapter/repo/memory"
	"veldoria/internal/domain/realm"
)

func TestReaper_SweepFailsOnlyStaleActiveRecords(t *testing.T) {
	now := time.Unix(1700000000, 0)
	store := memory.NewStore()
	repo := memory.NewActionQueueRepo(store)

	seed := func(id string, status realm.QueueStatus, updatedAt time.Time) {
		store.SeedQueue(realm.ActionQueue{
			ID:        id,
			PlayerID:  "p-" + id,
			Type:      realm.ActionGather,
			Status:    status,
			UpdatedAt: updatedAt,
		})
	}
	seed("stale", realm.QueueActive, now.Add(-5*time.Minute))
	seed("fresh", realm.QueueActive, now.Add(-10*time.Second))
	seed("done", realm.QueueCompleted, now.Add(-5*time.Minute))

	reaper := &Reaper{
		Queues:    repo,
		Staleness: time.Minute,
		Logger:    discardLogger(),
		Now:       func() time.Time { return now },
	}
	reaper.Sweep(context.Background())

	staleRec, err := repo.GetByID(context.Background(), "stale")
	require.NoError(t, err)
	assert.Equal(t, realm.QueueFailed, staleRec.Status)
	assert.Equal(t, "the action queue stalled and was stopped", staleRec.StopReason)

	freshRec, err := repo.GetByID(context.Background(), "fresh")
	require.NoError(t, err)
	assert.Equal(t, realm.QueueActive, freshRec.Status, "a recently touched record is left alone")

	doneRec, err := repo.GetByID(context.Background(), "done")
	require.NoError(t, err)
	assert.Equal(t, realm.QueueCompleted, doneRec.Status, "terminal records are never rewritten")
}

func TestReaper_SweepIsIdempotent(t *testing.T) {
	now := time.Unix(1700000000, 0)
	store := memory.NewStore()
	repo := memory.NewActionQueueRepo(store)
	store.SeedQueue(realm.ActionQueue{
		ID:        "q1",
		PlayerID:  "p1",
		Type:      realm.ActionTrain,
		Status:    realm.QueueActive,
		Completed: 7,
		UpdatedAt: now.Add(-time.Hour),
	})

	reaper := &Reaper{
		Queues:    repo,
		Staleness: time.Minute,
		Logger:    discardLogger(),
		Now:       func() time.Time { return now },
	}
	reaper.Sweep(context.Background())
	reaper.Sweep(context.Background())

	record, err := repo.GetByID(context.Background(), "q1")
	require.NoError(t, err)
	assert.Equal(t, realm.QueueFailed, record.Status)
	assert.Equal(t, 7, record.Completed, "progress counters survive the reap")
}
