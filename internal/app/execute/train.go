package execute

import (
	"context"

	"veldoria/internal/domain/realm"
)

const (
	trainEnergyCost = 4
	trainXP         = 8
)

// trainExecutor awards strength XP only; training produces no item or
// resource.
type trainExecutor struct{}

func (trainExecutor) Execute(_ context.Context, player *realm.Player, _ realm.ActionParams, _ realm.Location) realm.ExecResult {
	if player.Energy < trainEnergyCost {
		return failure("you are too exhausted to keep training")
	}
	player.SpendEnergy(trainEnergyCost)
	leveled, newLevel := player.GrantXP(realm.SkillStrength, trainXP)

	res := realm.ExecResult{
		Success:   true,
		Message:   "you completed a strength drill",
		XPAwarded: trainXP,
	}
	return levelUpFields(res, realm.SkillStrength, leveled, newLevel)
}
