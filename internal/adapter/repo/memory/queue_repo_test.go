package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"veldoria/internal/app/ports"
	"veldoria/internal/domain/realm"
)

func activeQueue(id, playerID string, createdAt time.Time) realm.ActionQueue {
	return realm.ActionQueue{
		ID:        id,
		PlayerID:  playerID,
		Type:      realm.ActionGather,
		Status:    realm.QueueActive,
		CreatedAt: createdAt,
		UpdatedAt: createdAt,
	}
}

func TestCreate_RejectsSecondActivePerPlayer(t *testing.T) {
	repo := NewActionQueueRepo(NewStore())
	ctx := context.Background()
	now := time.Unix(1700000000, 0)

	if err := repo.Create(ctx, activeQueue("q1", "p1", now)); err != nil {
		t.Fatalf("first create: %v", err)
	}
	err := repo.Create(ctx, activeQueue("q2", "p1", now))
	if !errors.Is(err, ports.ErrConflict) {
		t.Fatalf("second active create = %v, want ErrConflict", err)
	}
	if err := repo.Create(ctx, activeQueue("q3", "p2", now)); err != nil {
		t.Fatalf("another player's create: %v", err)
	}
}

func TestUpdateIfActive_ConflictsOnceTerminal(t *testing.T) {
	store := NewStore()
	repo := NewActionQueueRepo(store)
	ctx := context.Background()
	now := time.Unix(1700000000, 0)

	record := activeQueue("q1", "p1", now)
	store.SeedQueue(record)

	record.Completed = 1
	if err := repo.UpdateIfActive(ctx, record); err != nil {
		t.Fatalf("update of active record: %v", err)
	}

	record.MarkCancelled("cancelled by player")
	if err := repo.UpdateIfActive(ctx, record); err != nil {
		t.Fatalf("terminal transition: %v", err)
	}

	// The record is terminal now; any further guarded write loses.
	record.Completed = 2
	err := repo.UpdateIfActive(ctx, record)
	if !errors.Is(err, ports.ErrConflict) {
		t.Fatalf("update of terminal record = %v, want ErrConflict", err)
	}

	err = repo.UpdateIfActive(ctx, activeQueue("missing", "p1", now))
	if !errors.Is(err, ports.ErrConflict) {
		t.Fatalf("update of absent record = %v, want ErrConflict", err)
	}
}

func TestGetByPlayerID_ReturnsLatest(t *testing.T) {
	store := NewStore()
	repo := NewActionQueueRepo(store)
	ctx := context.Background()

	older := activeQueue("q-old", "p1", time.Unix(1699990000, 0))
	older.Status = realm.QueueCompleted
	store.SeedQueue(older)
	store.SeedQueue(activeQueue("q-new", "p1", time.Unix(1700000000, 0)))

	got, err := repo.GetByPlayerID(ctx, "p1")
	if err != nil {
		t.Fatalf("GetByPlayerID: %v", err)
	}
	if got.ID != "q-new" {
		t.Fatalf("got %s, want the most recently created record", got.ID)
	}

	if _, err := repo.GetByPlayerID(ctx, "nobody"); !errors.Is(err, ports.ErrNotFound) {
		t.Fatalf("unknown player = %v, want ErrNotFound", err)
	}
}

func TestSaveWithVersion_OptimisticConflict(t *testing.T) {
	store := NewStore()
	repo := NewPlayerRepo(store)
	ctx := context.Background()

	store.SeedPlayer(realm.Player{ID: "p1", Version: 3})

	p, err := repo.GetByID(ctx, "p1")
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	p.Version++
	p.Energy = 50
	if err := repo.SaveWithVersion(ctx, p, 3); err != nil {
		t.Fatalf("save with matching version: %v", err)
	}

	// Saving against the superseded version must fail.
	p.Version++
	if err := repo.SaveWithVersion(ctx, p, 3); !errors.Is(err, ports.ErrConflict) {
		t.Fatalf("stale save = %v, want ErrConflict", err)
	}

	got, err := repo.GetByID(ctx, "p1")
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if got.Version != 4 || got.Energy != 50 {
		t.Fatalf("persisted state wrong: version=%d energy=%d", got.Version, got.Energy)
	}
}
