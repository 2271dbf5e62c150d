package memory

import (
	"context"
	"time"

	"veldoria/internal/app/ports"
	"veldoria/internal/domain/realm"
)

type ActionQueueRepo struct {
	store *Store
}

func NewActionQueueRepo(store *Store) ActionQueueRepo {
	return ActionQueueRepo{store: store}
}

func (r ActionQueueRepo) GetByID(_ context.Context, queueID string) (realm.ActionQueue, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	queue, ok := r.store.queues[queueID]
	if !ok {
		return realm.ActionQueue{}, ports.ErrNotFound
	}
	return queue, nil
}

func (r ActionQueueRepo) GetByPlayerID(_ context.Context, playerID string) (realm.ActionQueue, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var latest realm.ActionQueue
	found := false
	for _, q := range r.store.queues {
		if q.PlayerID != playerID {
			continue
		}
		if !found || q.CreatedAt.After(latest.CreatedAt) {
			latest = q
			found = true
		}
	}
	if !found {
		return realm.ActionQueue{}, ports.ErrNotFound
	}
	return latest, nil
}

func (r ActionQueueRepo) GetActiveByPlayerID(_ context.Context, playerID string) (realm.ActionQueue, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, q := range r.store.queues {
		if q.PlayerID == playerID && q.Status == realm.QueueActive {
			return q, nil
		}
	}
	return realm.ActionQueue{}, ports.ErrNotFound
}

func (r ActionQueueRepo) Create(_ context.Context, queue realm.ActionQueue) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, q := range r.store.queues {
		if q.PlayerID == queue.PlayerID && q.Status == realm.QueueActive {
			return ports.ErrConflict
		}
	}
	if _, exists := r.store.queues[queue.ID]; exists {
		return ports.ErrConflict
	}
	r.store.queues[queue.ID] = queue
	return nil
}

func (r ActionQueueRepo) UpdateIfActive(_ context.Context, queue realm.ActionQueue) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	current, ok := r.store.queues[queue.ID]
	if !ok || current.Status != realm.QueueActive {
		return ports.ErrConflict
	}
	r.store.queues[queue.ID] = queue
	return nil
}

func (r ActionQueueRepo) Delete(_ context.Context, queueID string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	delete(r.store.queues, queueID)
	return nil
}

func (r ActionQueueRepo) ListActiveUpdatedBefore(_ context.Context, cutoff time.Time) ([]realm.ActionQueue, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	out := []realm.ActionQueue{}
	for _, q := range r.store.queues {
		if q.Status == realm.QueueActive && q.UpdatedAt.Before(cutoff) {
			out = append(out, q)
		}
	}
	return out, nil
}
