// Package execute holds the per-activity action executors. Every executor
// performs one unit of work against the player aggregate and returns the
// uniform result shape shared by the single-shot endpoints and the queue
// runner.
package execute

import (
	"math/rand"

	"veldoria/internal/app/ports"
	"veldoria/internal/domain/realm"
)

type Registry struct {
	executors map[realm.ActionType]ports.ActionExecutor
}

func NewRegistry() Registry {
	return NewRegistryWithRoll(rand.Float64)
}

// NewRegistryWithRoll injects the random source used by chance-based
// executors. Tests pass a fixed roll.
func NewRegistryWithRoll(roll func() float64) Registry {
	return Registry{executors: map[realm.ActionType]ports.ActionExecutor{
		realm.ActionCook:    cookExecutor{},
		realm.ActionCraft:   craftExecutor{recipes: craftRecipes, verb: "crafted"},
		realm.ActionSmelt:   craftExecutor{recipes: smeltRecipes, verb: "smelted"},
		realm.ActionGather:  gatherExecutor{},
		realm.ActionTrain:   trainExecutor{},
		realm.ActionAgility: agilityExecutor{roll: roll},
	}}
}

func (r Registry) For(t realm.ActionType) (ports.ActionExecutor, bool) {
	exec, ok := r.executors[t]
	return exec, ok
}

// ResolveLocation prefers the location captured in the action params and falls
// back to the player's live current location. An unknown id resolves to an
// empty location; executors report that as a normal failed attempt.
func ResolveLocation(params realm.ActionParams, player realm.Player) realm.Location {
	id := params.String("location")
	if id == "" {
		id = player.LocationID
	}
	loc, _ := realm.LocationByID(id)
	return loc
}

func failure(message string) realm.ExecResult {
	return realm.ExecResult{Success: false, Message: message}
}

func levelUpFields(res realm.ExecResult, skill realm.SkillType, leveled bool, newLevel int) realm.ExecResult {
	res.Skill = skill
	if leveled {
		res.LeveledUp = true
		res.NewLevel = newLevel
	}
	return res
}
