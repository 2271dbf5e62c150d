package realm

// Location describes a place a player can act in: which resources can be
// gathered there and which agility obstacles it offers.
type Location struct {
	ID        string
	Name      string
	Resources []string
	Obstacles []Obstacle
}

// Obstacle is one agility-course element. FailChance is the probability an
// attempt falls through; a fallen attempt still awards FailXP.
type Obstacle struct {
	ID         string
	Name       string
	MinLevel   int
	SuccessXP  int
	FailXP     int
	FailChance float64
	EnergyCost int
}

func (l Location) HasResource(name string) bool {
	for _, r := range l.Resources {
		if r == name {
			return true
		}
	}
	return false
}

func (l Location) ObstacleByID(id string) (Obstacle, bool) {
	for _, o := range l.Obstacles {
		if o.ID == id {
			return o, true
		}
	}
	return Obstacle{}, false
}

var locations = map[string]Location{
	"greenfield": {
		ID:        "greenfield",
		Name:      "Greenfield Village",
		Resources: []string{"wood", "berries", "wheat"},
		Obstacles: []Obstacle{
			{ID: "fence", Name: "Fence Vault", MinLevel: 1, SuccessXP: 8, FailXP: 2, FailChance: 0.2, EnergyCost: 3},
			{ID: "rooftops", Name: "Village Rooftops", MinLevel: 5, SuccessXP: 18, FailXP: 4, FailChance: 0.35, EnergyCost: 5},
		},
	},
	"ironhollow": {
		ID:        "ironhollow",
		Name:      "Ironhollow Mines",
		Resources: []string{"iron ore", "coal", "stone"},
		Obstacles: []Obstacle{
			{ID: "shaft", Name: "Mine Shaft Crossing", MinLevel: 3, SuccessXP: 14, FailXP: 3, FailChance: 0.3, EnergyCost: 4},
		},
	},
	"riverport": {
		ID:        "riverport",
		Name:      "Riverport",
		Resources: []string{"fish", "clay"},
		Obstacles: []Obstacle{
			{ID: "docks", Name: "Dockside Beams", MinLevel: 1, SuccessXP: 10, FailXP: 2, FailChance: 0.25, EnergyCost: 3},
		},
	},
}

func LocationByID(id string) (Location, bool) {
	l, ok := locations[id]
	return l, ok
}
