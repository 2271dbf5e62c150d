package execute

import (
	"context"
	"errors"
	"strings"

	"veldoria/internal/app/ports"
	"veldoria/internal/domain/realm"
)

var (
	ErrInvalidRequest    = errors.New("invalid action request")
	ErrInvalidActionType = errors.New("invalid action type")
)

// UseCase runs one immediate action (client mode). The per-activity endpoints
// return its uniform result directly; precondition failures surface as a
// normal unsuccessful result, not as transport errors.
type UseCase struct {
	TxManager  ports.TxManager
	PlayerRepo ports.PlayerRepository
	Executors  ports.ExecutorRegistry
}

type Request struct {
	PlayerID   string
	ActionType string
	Params     realm.ActionParams
}

func (u UseCase) Execute(ctx context.Context, req Request) (realm.ExecResult, error) {
	req.PlayerID = strings.TrimSpace(req.PlayerID)
	if req.PlayerID == "" {
		return realm.ExecResult{}, ErrInvalidRequest
	}
	actionType, ok := realm.ParseActionType(strings.TrimSpace(req.ActionType))
	if !ok {
		return realm.ExecResult{}, ErrInvalidActionType
	}
	executor, ok := u.Executors.For(actionType)
	if !ok {
		return realm.ExecResult{}, ErrInvalidActionType
	}

	var out realm.ExecResult
	err := u.TxManager.RunInTx(ctx, func(txCtx context.Context) error {
		player, err := u.PlayerRepo.GetByID(txCtx, req.PlayerID)
		if err != nil {
			return err
		}
		if player.Traveling {
			out = failure("you cannot do that while traveling")
			return nil
		}
		if player.Infirmary {
			out = failure("you cannot do that from the infirmary")
			return nil
		}

		location := ResolveLocation(req.Params, player)
		prevVersion := player.Version
		out = executor.Execute(txCtx, &player, req.Params, location)
		player.Version++
		return u.PlayerRepo.SaveWithVersion(txCtx, player, prevVersion)
	})
	if err != nil {
		return realm.ExecResult{}, err
	}
	return out, nil
}
