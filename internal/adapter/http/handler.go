package httpadapter

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/app/server"
	"github.com/cloudwego/hertz/pkg/protocol/consts"

	"veldoria/internal/app/execute"
	"veldoria/internal/app/ports"
	"veldoria/internal/app/queue"
	"veldoria/internal/domain/realm"
)

const playerIDHeader = "X-Player-ID"

type Handler struct {
	QueueUC  queue.UseCase
	ActionUC execute.UseCase
	KPI      kpiSnapshotProvider
}

func (h Handler) RegisterRoutes(s *server.Hertz) {
	s.Use(corsMiddleware())

	api := s.Group("/api")
	q := api.Group("/queue")
	q.POST("/start", h.startQueue)
	q.POST("/cancel", h.cancelQueue)
	q.POST("/dismiss", h.dismissQueue)
	q.GET("/snapshot", h.queueSnapshot)

	api.POST("/actions/:type", h.action)

	s.GET("/ops/kpi", h.kpi)
}

type startQueueRequest struct {
	ActionType   string             `json:"action_type"`
	ActionParams realm.ActionParams `json:"action_params"`
	Total        int                `json:"total"`
}

type dismissQueueRequest struct {
	QueueID string `json:"queue_id"`
}

type actionRequest struct {
	Params realm.ActionParams `json:"params"`
}

func (h Handler) startQueue(c context.Context, ctx *app.RequestContext) {
	playerID, err := requirePlayer(ctx)
	if err != nil {
		writeError(ctx, err)
		return
	}

	var body startQueueRequest
	if err := decodeJSON(ctx, &body); err != nil {
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_json", "invalid json")
		return
	}

	resp, err := h.QueueUC.Start(c, queue.StartRequest{
		PlayerID:   playerID,
		ActionType: body.ActionType,
		Params:     body.ActionParams,
		Total:      body.Total,
	})
	if err != nil {
		if errors.Is(err, queue.ErrAlreadyQueued) {
			ctx.JSON(consts.StatusConflict, map[string]any{
				"success": false,
				"message": err.Error(),
			})
			return
		}
		writeError(ctx, err)
		return
	}

	ctx.JSON(consts.StatusOK, map[string]any{
		"success": true,
		"queue":   resp.Queue,
	})
}

func (h Handler) cancelQueue(c context.Context, ctx *app.RequestContext) {
	playerID, err := requirePlayer(ctx)
	if err != nil {
		writeError(ctx, err)
		return
	}
	if err := h.QueueUC.Cancel(c, playerID); err != nil {
		writeError(ctx, err)
		return
	}
	// Acknowledgement only; the terminal status is observed via the next
	// snapshot.
	ctx.JSON(consts.StatusOK, map[string]any{"success": true})
}

func (h Handler) dismissQueue(c context.Context, ctx *app.RequestContext) {
	playerID, err := requirePlayer(ctx)
	if err != nil {
		writeError(ctx, err)
		return
	}
	var body dismissQueueRequest
	if err := decodeJSON(ctx, &body); err != nil {
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_json", "invalid json")
		return
	}
	if err := h.QueueUC.Dismiss(c, playerID, body.QueueID); err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, map[string]any{"success": true})
}

func (h Handler) queueSnapshot(c context.Context, ctx *app.RequestContext) {
	playerID, err := requirePlayer(ctx)
	if err != nil {
		writeError(ctx, err)
		return
	}
	resp, err := h.QueueUC.Snapshot(c, playerID)
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) action(c context.Context, ctx *app.RequestContext) {
	playerID, err := requirePlayer(ctx)
	if err != nil {
		writeError(ctx, err)
		return
	}
	var body actionRequest
	if err := decodeJSON(ctx, &body); err != nil {
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_json", "invalid json")
		return
	}

	result, err := h.ActionUC.Execute(c, execute.Request{
		PlayerID:   playerID,
		ActionType: string(ctx.Param("type")),
		Params:     body.Params,
	})
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, result)
}

type kpiSnapshotProvider interface {
	SnapshotAny() any
}

func (h Handler) kpi(_ context.Context, ctx *app.RequestContext) {
	if h.KPI == nil {
		writeErrorBody(ctx, consts.StatusNotFound, "not_configured", "kpi provider not configured")
		return
	}
	ctx.JSON(consts.StatusOK, h.KPI.SnapshotAny())
}

var ErrMissingPlayerIDHeader = errors.New("missing x-player-id header")

func requirePlayer(ctx *app.RequestContext) (string, error) {
	playerID := strings.TrimSpace(string(ctx.GetHeader(playerIDHeader)))
	if playerID == "" {
		return "", ErrMissingPlayerIDHeader
	}
	return playerID, nil
}

func decodeJSON(ctx *app.RequestContext, out any) error {
	body := ctx.Request.Body()
	if len(body) == 0 {
		return nil
	}
	return json.Unmarshal(body, out)
}

func writeError(ctx *app.RequestContext, err error) {
	switch {
	case errors.Is(err, ErrMissingPlayerIDHeader):
		writeErrorBody(ctx, consts.StatusBadRequest, "missing_player_id", err.Error())
	case errors.Is(err, queue.ErrInvalidActionType),
		errors.Is(err, execute.ErrInvalidActionType):
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_action_type", err.Error())
	case errors.Is(err, queue.ErrInvalidRequest),
		errors.Is(err, execute.ErrInvalidRequest):
		writeErrorBody(ctx, consts.StatusBadRequest, "bad_request", err.Error())
	case errors.Is(err, queue.ErrQueueStillActive):
		writeErrorBody(ctx, consts.StatusConflict, "queue_still_active", err.Error())
	case errors.Is(err, queue.ErrAlreadyQueued):
		writeErrorBody(ctx, consts.StatusConflict, "already_queued", err.Error())
	case errors.Is(err, ports.ErrNotFound):
		writeErrorBody(ctx, consts.StatusNotFound, "not_found", err.Error())
	case errors.Is(err, ports.ErrConflict):
		writeErrorBody(ctx, consts.StatusConflict, "conflict", err.Error())
	default:
		writeErrorBody(ctx, consts.StatusInternalServerError, "internal_error", "internal error")
	}
}

func writeErrorBody(ctx *app.RequestContext, status int, code, message string) {
	ctx.JSON(status, map[string]any{
		"error": map[string]string{
			"code":    code,
			"message": message,
		},
	})
}
