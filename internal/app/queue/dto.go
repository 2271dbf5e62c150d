package queue

import (
	"time"

	"veldoria/internal/domain/realm"
)

type StartRequest struct {
	PlayerID   string
	ActionType string
	Params     realm.ActionParams
	// Total is the requested repetition count; 0 means run indefinitely.
	Total int
}

type StartResponse struct {
	Queue View `json:"queue"`
}

// View is the wire shape of one queue record, shared by the start response
// and the page-state snapshot the client polls.
type View struct {
	ID            string        `json:"id"`
	ActionType    string        `json:"action_type"`
	Status        string        `json:"status"`
	Total         int           `json:"total"`
	Completed     int           `json:"completed"`
	TotalXP       int           `json:"total_xp"`
	TotalQuantity int           `json:"total_quantity"`
	ItemName      string        `json:"item_name,omitempty"`
	LastLevelUp   *realm.LevelUp `json:"last_level_up,omitempty"`
	StopReason    string        `json:"stop_reason,omitempty"`
	CreatedAt     time.Time     `json:"created_at"`
}

func ToView(q realm.ActionQueue) View {
	return View{
		ID:            q.ID,
		ActionType:    string(q.Type),
		Status:        string(q.Status),
		Total:         q.Total,
		Completed:     q.Completed,
		TotalXP:       q.TotalXP,
		TotalQuantity: q.TotalQuantity,
		ItemName:      q.ItemName,
		LastLevelUp:   q.LastLevelUp,
		StopReason:    q.StopReason,
		CreatedAt:     q.CreatedAt,
	}
}

type SnapshotResponse struct {
	Queue *View `json:"queue"`
}
