package queueclient

import "sync"

// SessionGuard is the single-writer token for one user session: at most one
// controller may run a queue at a time. It replaces a hidden module-level
// global with explicit, injected ownership.
type SessionGuard struct {
	mu    sync.Mutex
	owner string
}

func NewSessionGuard() *SessionGuard {
	return &SessionGuard{}
}

// Acquire claims the guard for token. It succeeds when the guard is free or
// already owned by the same token.
func (g *SessionGuard) Acquire(token string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.owner != "" && g.owner != token {
		return false
	}
	g.owner = token
	return true
}

// Release frees the guard if token owns it; a stale release is a no-op.
func (g *SessionGuard) Release(token string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.owner == token {
		g.owner = ""
	}
}

func (g *SessionGuard) Held() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.owner != ""
}
