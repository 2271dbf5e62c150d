package realm

type SkillType string

const (
	SkillCooking   SkillType = "cooking"
	SkillSmithing  SkillType = "smithing"
	SkillGathering SkillType = "gathering"
	SkillStrength  SkillType = "strength"
	SkillAgility   SkillType = "agility"
)

// SkillState tracks per-skill progression. XP is lifetime XP within the
// current level; crossing XPForNextLevel resets it and bumps the level.
type SkillState struct {
	Level int `json:"level"`
	XP    int `json:"xp"`
}

// XPForNextLevel is the XP needed to advance from the given level.
func XPForNextLevel(level int) int {
	if level < 1 {
		level = 1
	}
	return 80 + level*level*20
}

// AddXP applies xp and handles any number of level-ups. It reports whether at
// least one level was gained.
func (s SkillState) AddXP(xp int) (SkillState, bool) {
	if s.Level < 1 {
		s.Level = 1
	}
	if xp <= 0 {
		return s, false
	}
	s.XP += xp
	leveled := false
	for s.XP >= XPForNextLevel(s.Level) {
		s.XP -= XPForNextLevel(s.Level)
		s.Level++
		leveled = true
	}
	return s, leveled
}
