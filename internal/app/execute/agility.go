package execute

import (
	"context"
	"fmt"

	"veldoria/internal/domain/realm"
)

// agilityExecutor distinguishes "fell off the obstacle but still gained
// partial XP" (Failed=true, queue continues) from "could not attempt at all"
// (plain failure, queue terminates).
type agilityExecutor struct {
	roll func() float64
}

func (e agilityExecutor) Execute(_ context.Context, player *realm.Player, params realm.ActionParams, location realm.Location) realm.ExecResult {
	obstacle, ok := location.ObstacleByID(params.String("obstacle"))
	if !ok {
		return failure(fmt.Sprintf("there is no such obstacle at %s", location.Name))
	}
	if player.SkillLevel(realm.SkillAgility) < obstacle.MinLevel {
		return failure(fmt.Sprintf("you need agility level %d for the %s", obstacle.MinLevel, obstacle.Name))
	}
	if player.Energy < obstacle.EnergyCost {
		return failure("you are too exhausted to attempt the course")
	}
	player.SpendEnergy(obstacle.EnergyCost)

	if e.roll() < obstacle.FailChance {
		leveled, newLevel := player.GrantXP(realm.SkillAgility, obstacle.FailXP)
		res := realm.ExecResult{
			Success:   false,
			Failed:    true,
			Message:   fmt.Sprintf("you slipped on the %s", obstacle.Name),
			XPAwarded: obstacle.FailXP,
		}
		return levelUpFields(res, realm.SkillAgility, leveled, newLevel)
	}

	leveled, newLevel := player.GrantXP(realm.SkillAgility, obstacle.SuccessXP)
	res := realm.ExecResult{
		Success:   true,
		Message:   fmt.Sprintf("you cleared the %s", obstacle.Name),
		XPAwarded: obstacle.SuccessXP,
	}
	return levelUpFields(res, realm.SkillAgility, leveled, newLevel)
}
