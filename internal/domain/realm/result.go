package realm

// ExecResult is the uniform shape every action executor returns, both for
// single-shot endpoint calls and for queue runner iterations. Failed is only
// meaningful for agility: the obstacle attempt fell through but partial XP was
// still awarded, so the queue may continue.
type ExecResult struct {
	Success   bool      `json:"success"`
	Failed    bool      `json:"failed,omitempty"`
	Message   string    `json:"message"`
	XPAwarded int       `json:"xp_awarded,omitempty"`
	Item      *Produced `json:"item,omitempty"`
	Resource  *Produced `json:"resource,omitempty"`
	LeveledUp bool      `json:"leveled_up,omitempty"`
	NewLevel  int       `json:"new_level,omitempty"`
	Skill     SkillType `json:"skill,omitempty"`
}

type Produced struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
}

type ProducedKind int

const (
	ProducedNone ProducedKind = iota
	ProducedItem
	ProducedResource
)

// Produced resolves the item-vs-resource ambiguity once: item wins over
// resource, neither yields ProducedNone.
func (r ExecResult) Produced() (Produced, ProducedKind) {
	if r.Item != nil {
		return *r.Item, ProducedItem
	}
	if r.Resource != nil {
		return *r.Resource, ProducedResource
	}
	return Produced{}, ProducedNone
}

// ContinuesQueue is the continuation rule: a successful result always
// continues, and an agility attempt that failed the obstacle (but was still
// attempted) continues as well.
func (r ExecResult) ContinuesQueue(t ActionType) bool {
	return r.Success || (t == ActionAgility && r.Failed)
}
