package execute

import (
	"context"
	"fmt"

	"veldoria/internal/domain/realm"
)

const (
	gatherEnergyCost = 3
	gatherXP         = 10
)

type gatherExecutor struct{}

func (gatherExecutor) Execute(_ context.Context, player *realm.Player, params realm.ActionParams, location realm.Location) realm.ExecResult {
	if len(location.Resources) == 0 {
		return failure("there is nothing to gather here")
	}
	resource := params.String("resource")
	if resource == "" {
		resource = location.Resources[0]
	}
	if !location.HasResource(resource) {
		return failure(fmt.Sprintf("there is no %s to gather at %s", resource, location.Name))
	}
	if player.Energy < gatherEnergyCost {
		return failure("you are too exhausted to keep gathering")
	}
	player.SpendEnergy(gatherEnergyCost)
	player.AddItem(resource, 1)
	leveled, newLevel := player.GrantXP(realm.SkillGathering, gatherXP)

	res := realm.ExecResult{
		Success:   true,
		Message:   fmt.Sprintf("you gathered %s", resource),
		XPAwarded: gatherXP,
		Resource:  &realm.Produced{Name: resource, Quantity: 1},
	}
	return levelUpFields(res, realm.SkillGathering, leveled, newLevel)
}
