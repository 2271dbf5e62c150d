package execute

import (
	"context"
	"fmt"

	"veldoria/internal/domain/realm"
)

type cookRecipe struct {
	Input  string
	XP     int
	Energy int
}

var cookRecipes = map[string]cookRecipe{
	"grilled fish": {Input: "fish", XP: 12, Energy: 2},
	"berry pie":    {Input: "berries", XP: 9, Energy: 2},
	"wheat bread":  {Input: "wheat", XP: 7, Energy: 1},
}

type cookExecutor struct{}

func (cookExecutor) Execute(_ context.Context, player *realm.Player, params realm.ActionParams, _ realm.Location) realm.ExecResult {
	name := params.String("recipe")
	recipe, ok := cookRecipes[name]
	if !ok {
		return failure(fmt.Sprintf("you do not know how to cook %q", name))
	}
	if player.Energy < recipe.Energy {
		return failure("you are too exhausted to keep cooking")
	}
	if !player.RemoveItem(recipe.Input, 1) {
		return failure(fmt.Sprintf("you have no %s left to cook", recipe.Input))
	}
	player.SpendEnergy(recipe.Energy)
	player.AddItem(name, 1)
	leveled, newLevel := player.GrantXP(realm.SkillCooking, recipe.XP)

	res := realm.ExecResult{
		Success:   true,
		Message:   fmt.Sprintf("you cooked %s", name),
		XPAwarded: recipe.XP,
		Item:      &realm.Produced{Name: name, Quantity: 1},
	}
	return levelUpFields(res, realm.SkillCooking, leveled, newLevel)
}
