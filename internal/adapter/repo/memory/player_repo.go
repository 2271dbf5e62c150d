package memory

import (
	"context"

	"veldoria/internal/app/ports"
	"veldoria/internal/domain/realm"
)

type PlayerRepo struct {
	store *Store
}

func NewPlayerRepo(store *Store) PlayerRepo {
	return PlayerRepo{store: store}
}

func (r PlayerRepo) GetByID(_ context.Context, playerID string) (realm.Player, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	player, ok := r.store.players[playerID]
	if !ok {
		return realm.Player{}, ports.ErrNotFound
	}
	return player, nil
}

func (r PlayerRepo) SaveWithVersion(_ context.Context, player realm.Player, expectedVersion int64) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	current, ok := r.store.players[player.ID]
	if !ok {
		if expectedVersion != 0 {
			return ports.ErrConflict
		}
		r.store.players[player.ID] = player
		return nil
	}
	if current.Version != expectedVersion {
		return ports.ErrConflict
	}
	r.store.players[player.ID] = player
	return nil
}
