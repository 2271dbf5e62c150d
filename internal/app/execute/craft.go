package execute

import (
	"context"
	"fmt"

	"veldoria/internal/domain/realm"
)

type craftRecipe struct {
	Inputs map[string]int
	XP     int
	Energy int
}

var craftRecipes = map[string]craftRecipe{
	"bronze sword": {Inputs: map[string]int{"bronze bar": 2}, XP: 15, Energy: 3},
	"iron hatchet": {Inputs: map[string]int{"iron bar": 1, "wood": 1}, XP: 18, Energy: 3},
	"clay pot":     {Inputs: map[string]int{"clay": 2}, XP: 8, Energy: 2},
}

var smeltRecipes = map[string]craftRecipe{
	"iron bar":   {Inputs: map[string]int{"iron ore": 1, "coal": 1}, XP: 13, Energy: 3},
	"bronze bar": {Inputs: map[string]int{"copper ore": 1, "tin ore": 1}, XP: 10, Energy: 2},
}

// craftExecutor serves both craft and smelt; they differ only in recipe table
// and message wording.
type craftExecutor struct {
	recipes map[string]craftRecipe
	verb    string
}

func (e craftExecutor) Execute(_ context.Context, player *realm.Player, params realm.ActionParams, _ realm.Location) realm.ExecResult {
	name := params.String("recipe")
	recipe, ok := e.recipes[name]
	if !ok {
		return failure(fmt.Sprintf("you do not know how to make %q", name))
	}
	if player.Energy < recipe.Energy {
		return failure("you are too exhausted to continue")
	}
	for input, count := range recipe.Inputs {
		if player.Inventory[input] < count {
			return failure(fmt.Sprintf("out of %s", input))
		}
	}
	for input, count := range recipe.Inputs {
		player.RemoveItem(input, count)
	}
	player.SpendEnergy(recipe.Energy)
	player.AddItem(name, 1)
	leveled, newLevel := player.GrantXP(realm.SkillSmithing, recipe.XP)

	res := realm.ExecResult{
		Success:   true,
		Message:   fmt.Sprintf("you %s a %s", e.verb, name),
		XPAwarded: recipe.XP,
		Item:      &realm.Produced{Name: name, Quantity: 1},
	}
	return levelUpFields(res, realm.SkillSmithing, leveled, newLevel)
}
