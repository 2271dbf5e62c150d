package gormrepo

import (
	"context"
	"encoding/json"
	"errors"

	"gorm.io/gorm"

	"veldoria/internal/adapter/repo/gorm/model"
	"veldoria/internal/app/ports"
	"veldoria/internal/domain/realm"
)

type PlayerRepo struct {
	db *gorm.DB
}

func NewPlayerRepo(db *gorm.DB) PlayerRepo {
	return PlayerRepo{db: db}
}

func (r PlayerRepo) GetByID(ctx context.Context, playerID string) (realm.Player, error) {
	var m model.Player
	if err := getDBFromCtx(ctx, r.db).Where("id = ?", playerID).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return realm.Player{}, ports.ErrNotFound
		}
		return realm.Player{}, err
	}

	player := realm.Player{
		ID:         m.ID,
		Name:       m.Name,
		LocationID: m.LocationID,
		Traveling:  m.Traveling,
		Infirmary:  m.Infirmary,
		Energy:     int(m.Energy),
		Version:    m.Version,
		UpdatedAt:  m.UpdatedAt,
	}
	_ = json.Unmarshal(m.Inventory, &player.Inventory)
	_ = json.Unmarshal(m.Skills, &player.Skills)
	return player, nil
}

func (r PlayerRepo) SaveWithVersion(ctx context.Context, player realm.Player, expectedVersion int64) error {
	db := getDBFromCtx(ctx, r.db)
	inventoryJSON, _ := json.Marshal(player.Inventory)
	skillsJSON, _ := json.Marshal(player.Skills)

	if expectedVersion == 0 {
		m := model.Player{
			ID:         player.ID,
			Name:       player.Name,
			LocationID: player.LocationID,
			Traveling:  player.Traveling,
			Infirmary:  player.Infirmary,
			Energy:     int32(player.Energy),
			Inventory:  inventoryJSON,
			Skills:     skillsJSON,
			Version:    player.Version,
			UpdatedAt:  player.UpdatedAt,
		}
		if err := db.Create(&m).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ports.ErrConflict
			}
			return err
		}
		return nil
	}

	updates := map[string]any{
		"name":        player.Name,
		"location_id": player.LocationID,
		"traveling":   player.Traveling,
		"infirmary":   player.Infirmary,
		"energy":      int32(player.Energy),
		"inventory":   inventoryJSON,
		"skills":      skillsJSON,
		"version":     player.Version,
		"updated_at":  player.UpdatedAt,
	}
	res := db.Model(&model.Player{}).
		Where("id = ? AND version = ?", player.ID, expectedVersion).
		Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ports.ErrConflict
	}
	return nil
}
