package model

import "time"

type Player struct {
	ID         string `gorm:"primaryKey"`
	Name       string
	LocationID string
	Traveling  bool
	Infirmary  bool
	Energy     int32
	Inventory  []byte `gorm:"type:jsonb"`
	Skills     []byte `gorm:"type:jsonb"`
	Version    int64
	UpdatedAt  time.Time
}

func (Player) TableName() string { return "players" }

type ActionQueue struct {
	ID               string `gorm:"primaryKey"`
	PlayerID         string `gorm:"index"`
	ActionType       string
	Params           []byte `gorm:"type:jsonb"`
	Status           string
	Total            int32
	Completed        int32
	TotalXp          int64
	TotalQuantity    int64
	ItemName         *string
	LastLevelUpSkill *string
	LastLevelUpLevel *int32
	StopReason       *string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

func (ActionQueue) TableName() string { return "action_queues" }
