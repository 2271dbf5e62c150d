package gormrepo

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"gorm.io/gorm"

	"veldoria/internal/adapter/repo/gorm/model"
	"veldoria/internal/app/ports"
	"veldoria/internal/domain/realm"
)

type ActionQueueRepo struct {
	db *gorm.DB
}

func NewActionQueueRepo(db *gorm.DB) ActionQueueRepo {
	return ActionQueueRepo{db: db}
}

func (r ActionQueueRepo) GetByID(ctx context.Context, queueID string) (realm.ActionQueue, error) {
	var m model.ActionQueue
	if err := getDBFromCtx(ctx, r.db).Where("id = ?", queueID).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return realm.ActionQueue{}, ports.ErrNotFound
		}
		return realm.ActionQueue{}, err
	}
	return decodeQueue(m), nil
}

func (r ActionQueueRepo) GetByPlayerID(ctx context.Context, playerID string) (realm.ActionQueue, error) {
	var m model.ActionQueue
	err := getDBFromCtx(ctx, r.db).
		Where("player_id = ?", playerID).
		Order("created_at DESC").
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return realm.ActionQueue{}, ports.ErrNotFound
		}
		return realm.ActionQueue{}, err
	}
	return decodeQueue(m), nil
}

func (r ActionQueueRepo) GetActiveByPlayerID(ctx context.Context, playerID string) (realm.ActionQueue, error) {
	var m model.ActionQueue
	err := getDBFromCtx(ctx, r.db).
		Where("player_id = ? AND status = ?", playerID, string(realm.QueueActive)).
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return realm.ActionQueue{}, ports.ErrNotFound
		}
		return realm.ActionQueue{}, err
	}
	return decodeQueue(m), nil
}

func (r ActionQueueRepo) Create(ctx context.Context, queue realm.ActionQueue) error {
	m := encodeQueue(queue)
	if err := getDBFromCtx(ctx, r.db).Create(&m).Error; err != nil {
		// The partial unique index on (player_id) WHERE status='active'
		// rejects a second active record.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ports.ErrConflict
		}
		return err
	}
	return nil
}

func (r ActionQueueRepo) UpdateIfActive(ctx context.Context, queue realm.ActionQueue) error {
	m := encodeQueue(queue)
	updates := map[string]any{
		"status":              m.Status,
		"completed":           m.Completed,
		"total_xp":            m.TotalXp,
		"total_quantity":      m.TotalQuantity,
		"item_name":           m.ItemName,
		"last_level_up_skill": m.LastLevelUpSkill,
		"last_level_up_level": m.LastLevelUpLevel,
		"stop_reason":         m.StopReason,
		"updated_at":          m.UpdatedAt,
	}
	res := getDBFromCtx(ctx, r.db).Model(&model.ActionQueue{}).
		Where("id = ? AND status = ?", queue.ID, string(realm.QueueActive)).
		Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ports.ErrConflict
	}
	return nil
}

func (r ActionQueueRepo) Delete(ctx context.Context, queueID string) error {
	return getDBFromCtx(ctx, r.db).
		Where("id = ?", queueID).
		Delete(&model.ActionQueue{}).Error
}

func (r ActionQueueRepo) ListActiveUpdatedBefore(ctx context.Context, cutoff time.Time) ([]realm.ActionQueue, error) {
	var rows []model.ActionQueue
	err := getDBFromCtx(ctx, r.db).
		Where("status = ? AND updated_at < ?", string(realm.QueueActive), cutoff).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make([]realm.ActionQueue, 0, len(rows))
	for _, m := range rows {
		out = append(out, decodeQueue(m))
	}
	return out, nil
}

func encodeQueue(q realm.ActionQueue) model.ActionQueue {
	paramsJSON, _ := json.Marshal(q.Params)
	m := model.ActionQueue{
		ID:            q.ID,
		PlayerID:      q.PlayerID,
		ActionType:    string(q.Type),
		Params:        paramsJSON,
		Status:        string(q.Status),
		Total:         int32(q.Total),
		Completed:     int32(q.Completed),
		TotalXp:       int64(q.TotalXP),
		TotalQuantity: int64(q.TotalQuantity),
		CreatedAt:     q.CreatedAt,
		UpdatedAt:     q.UpdatedAt,
	}
	if q.ItemName != "" {
		m.ItemName = &q.ItemName
	}
	if q.StopReason != "" {
		m.StopReason = &q.StopReason
	}
	if q.LastLevelUp != nil {
		skill := string(q.LastLevelUp.Skill)
		level := int32(q.LastLevelUp.Level)
		m.LastLevelUpSkill = &skill
		m.LastLevelUpLevel = &level
	}
	return m
}

func decodeQueue(m model.ActionQueue) realm.ActionQueue {
	q := realm.ActionQueue{
		ID:            m.ID,
		PlayerID:      m.PlayerID,
		Type:          realm.ActionType(m.ActionType),
		Status:        realm.QueueStatus(m.Status),
		Total:         int(m.Total),
		Completed:     int(m.Completed),
		TotalXP:       int(m.TotalXp),
		TotalQuantity: int(m.TotalQuantity),
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
	_ = json.Unmarshal(m.Params, &q.Params)
	if m.ItemName != nil {
		q.ItemName = *m.ItemName
	}
	if m.StopReason != nil {
		q.StopReason = *m.StopReason
	}
	if m.LastLevelUpSkill != nil && m.LastLevelUpLevel != nil {
		q.LastLevelUp = &realm.LevelUp{
			Skill: realm.SkillType(*m.LastLevelUpSkill),
			Level: int(*m.LastLevelUpLevel),
		}
	}
	return q
}
