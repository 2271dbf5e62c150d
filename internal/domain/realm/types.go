package realm

import "time"

// Player is the aggregate the queue runner and the single-shot action
// endpoints operate on. Version is an optimistic concurrency token bumped on
// every persisted mutation.
type Player struct {
	ID         string                   `json:"id"`
	Name       string                   `json:"name"`
	LocationID string                   `json:"location_id"`
	Traveling  bool                     `json:"traveling"`
	Infirmary  bool                     `json:"infirmary"`
	Energy     int                      `json:"energy"`
	Inventory  map[string]int           `json:"inventory"`
	Skills     map[SkillType]SkillState `json:"skills"`
	Version    int64                    `json:"version"`
	UpdatedAt  time.Time                `json:"updated_at"`
}

func (p *Player) AddItem(name string, count int) {
	if p.Inventory == nil {
		p.Inventory = map[string]int{}
	}
	p.Inventory[name] += count
}

// RemoveItem takes count of name from the inventory. It reports false and
// leaves the inventory untouched when the player does not hold enough.
func (p *Player) RemoveItem(name string, count int) bool {
	if p.Inventory[name] < count {
		return false
	}
	p.Inventory[name] -= count
	if p.Inventory[name] == 0 {
		delete(p.Inventory, name)
	}
	return true
}

// SpendEnergy deducts cost and reports whether the player had enough.
func (p *Player) SpendEnergy(cost int) bool {
	if p.Energy < cost {
		return false
	}
	p.Energy -= cost
	return true
}

// GrantXP adds xp to the given skill and reports whether the skill crossed a
// level threshold, together with the resulting level.
func (p *Player) GrantXP(skill SkillType, xp int) (bool, int) {
	if p.Skills == nil {
		p.Skills = map[SkillType]SkillState{}
	}
	state := p.Skills[skill]
	if state.Level == 0 {
		state.Level = 1
	}
	state, leveled := state.AddXP(xp)
	p.Skills[skill] = state
	return leveled, state.Level
}

func (p *Player) SkillLevel(skill SkillType) int {
	state, ok := p.Skills[skill]
	if !ok || state.Level == 0 {
		return 1
	}
	return state.Level
}
