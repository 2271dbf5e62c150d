package realm

import "time"

type ActionType string

const (
	ActionCook    ActionType = "cook"
	ActionCraft   ActionType = "craft"
	ActionSmelt   ActionType = "smelt"
	ActionGather  ActionType = "gather"
	ActionTrain   ActionType = "train"
	ActionAgility ActionType = "agility"
)

// ParseActionType maps a wire string onto the closed action-type set.
func ParseActionType(s string) (ActionType, bool) {
	switch ActionType(s) {
	case ActionCook, ActionCraft, ActionSmelt, ActionGather, ActionTrain, ActionAgility:
		return ActionType(s), true
	default:
		return "", false
	}
}

// SkillFor returns the skill an action type trains.
func SkillFor(t ActionType) SkillType {
	switch t {
	case ActionCook:
		return SkillCooking
	case ActionCraft, ActionSmelt:
		return SkillSmithing
	case ActionGather:
		return SkillGathering
	case ActionTrain:
		return SkillStrength
	case ActionAgility:
		return SkillAgility
	default:
		return ""
	}
}

type QueueStatus string

const (
	QueueActive    QueueStatus = "active"
	QueueCompleted QueueStatus = "completed"
	QueueCancelled QueueStatus = "cancelled"
	QueueFailed    QueueStatus = "failed"
)

// Terminal reports whether the status is one-way final. A terminal record is
// never mutated again; it waits for an explicit dismiss.
func (s QueueStatus) Terminal() bool {
	switch s {
	case QueueCompleted, QueueCancelled, QueueFailed:
		return true
	default:
		return false
	}
}

// ActionParams is the opaque executor-specific parameter bag captured at
// queue-start time. It is never mutated after creation.
type ActionParams map[string]any

func (p ActionParams) String(key string) string {
	v, _ := p[key].(string)
	return v
}

type LevelUp struct {
	Skill SkillType `json:"skill"`
	Level int       `json:"level"`
}

// ActionQueue is one player's in-progress (or terminal, undismissed) repeated
// action. Total == 0 means run indefinitely.
type ActionQueue struct {
	ID            string
	PlayerID      string
	Type          ActionType
	Params        ActionParams
	Status        QueueStatus
	Total         int
	Completed     int
	TotalXP       int
	TotalQuantity int
	ItemName      string
	LastLevelUp   *LevelUp
	StopReason    string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (q *ActionQueue) Infinite() bool {
	return q.Total == 0
}

// TargetReached reports whether the requested repetition count has been met.
// Never true for infinite queues.
func (q *ActionQueue) TargetReached() bool {
	return q.Total != 0 && q.Completed >= q.Total
}

// ApplyResult folds one continuation-eligible executor result into the
// counters: completed, accumulated XP, produced quantity, last-known item
// name, and the most recent level-up.
func (q *ActionQueue) ApplyResult(res ExecResult) {
	q.Completed++
	q.TotalXP += res.XPAwarded
	if produced, kind := res.Produced(); kind != ProducedNone {
		q.ItemName = produced.Name
		q.TotalQuantity += produced.Quantity
	} else {
		q.TotalQuantity++
	}
	if res.LeveledUp && res.NewLevel > 0 && res.Skill != "" {
		q.LastLevelUp = &LevelUp{Skill: res.Skill, Level: res.NewLevel}
	}
}

func (q *ActionQueue) MarkCompleted() {
	q.Status = QueueCompleted
}

func (q *ActionQueue) MarkCancelled(reason string) {
	q.Status = QueueCancelled
	q.StopReason = reason
}

func (q *ActionQueue) MarkFailed(reason string) {
	q.Status = QueueFailed
	if reason == "" {
		reason = "the action could not be completed"
	}
	q.StopReason = reason
}
