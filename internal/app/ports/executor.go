package ports

import (
	"context"

	"veldoria/internal/domain/realm"
)

// ActionExecutor performs one unit of work for one activity type. It may
// mutate the player aggregate (energy, inventory, skills); the caller is
// responsible for persisting the player and for interpreting the result.
type ActionExecutor interface {
	Execute(ctx context.Context, player *realm.Player, params realm.ActionParams, location realm.Location) realm.ExecResult
}

type ExecutorRegistry interface {
	For(t realm.ActionType) (ActionExecutor, bool)
}
