// Package memory mirrors the gorm repositories for tests and local runs.
package memory

import (
	"sync"

	"veldoria/internal/domain/realm"
)

type Store struct {
	mu      sync.Mutex
	players map[string]realm.Player
	queues  map[string]realm.ActionQueue
}

func NewStore() *Store {
	return &Store{
		players: make(map[string]realm.Player),
		queues:  make(map[string]realm.ActionQueue),
	}
}

func (s *Store) SeedPlayer(player realm.Player) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.players[player.ID] = player
}

func (s *Store) SeedQueue(queue realm.ActionQueue) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.queues[queue.ID] = queue
}
