// Package queueclient is the client-side counterpart of the action queue: a
// stateful controller that starts, adopts, polls, and dismisses a queue, and
// keeps a local progress mirror consistent with the server's authoritative
// record across reloads and concurrent controller instances.
package queueclient

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"veldoria/internal/app/queue"
	"veldoria/internal/domain/realm"
)

// ErrQueueBusy means another controller holding the session guard is already
// running a queue; the start call has no effect.
var ErrQueueBusy = errors.New("another action queue is already running")

const DefaultPollInterval = 3 * time.Second

// API is the server surface the controller talks to. All reads go through
// FetchSnapshot, the same shared page-state channel other UI data uses.
type API interface {
	StartQueue(ctx context.Context, actionType string, params realm.ActionParams, total int) (queue.View, error)
	CancelQueue(ctx context.Context) error
	DismissQueue(ctx context.Context, queueID string) error
	FetchSnapshot(ctx context.Context) (*queue.View, error)
	ExecuteAction(ctx context.Context, actionType string, params realm.ActionParams) (realm.ExecResult, error)
}

// Notifier abstracts desktop notifications.
type Notifier interface {
	RequestPermission()
	Granted() bool
	Notify(title, body string)
}

// Stats is the local mirror of the record's progress counters, kept for
// rendering between snapshots.
type Stats struct {
	Completed     int
	Total         int
	TotalXP       int
	TotalQuantity int
	ItemName      string
	LastLevelUp   *realm.LevelUp
}

type FinalStats struct {
	Stats
	Cancelled  bool
	StopReason string
}

type Config struct {
	API      API
	Guard    *SessionGuard
	Notifier Notifier
	// Visible reports whether the tab/window is in the foreground; a finish
	// notification only fires when it is not.
	Visible func() bool
	// OnFinish receives the final stats exactly once per queue.
	OnFinish func(FinalStats)
	// Refresh reloads dependent UI data regions after a finish; server-side
	// state changed without the client observing each mutation.
	Refresh        func(regions []string)
	RefreshRegions []string
	PollInterval   time.Duration
	Logger         *slog.Logger
}

// Controller drives one queue at a time. Server mode (count != 1) tracks a
// persisted record via polling; client mode (count == 1) is a single
// request/response call with no record.
type Controller struct {
	cfg   Config
	token string

	mu         sync.Mutex
	serverMode bool
	queueID    string
	stats      Stats
	polling    bool
	stop       chan struct{}
	wg         sync.WaitGroup
}

func New(cfg Config) *Controller {
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = DefaultPollInterval
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.Guard == nil {
		cfg.Guard = NewSessionGuard()
	}
	return &Controller{cfg: cfg, token: uuid.NewString()}
}

// Start begins a queue. count == 1 executes immediately in client mode;
// count > 1 or count == 0 (infinite) starts a server-tracked queue and polls
// it. Returns ErrQueueBusy without effect when the session guard is held by
// another controller.
func (c *Controller) Start(ctx context.Context, actionType string, params realm.ActionParams, count int) error {
	if count < 0 {
		return fmt.Errorf("invalid repetition count %d", count)
	}
	if !c.cfg.Guard.Acquire(c.token) {
		return ErrQueueBusy
	}

	if count == 1 {
		c.runSingle(ctx, actionType, params)
		return nil
	}

	if c.cfg.Notifier != nil {
		c.cfg.Notifier.RequestPermission()
	}

	view, err := c.cfg.API.StartQueue(ctx, actionType, params, count)
	if err != nil {
		// Do not assume anything changed server-side.
		c.cfg.Logger.Warn("queue start request failed", "error", err)
		c.finalize(FinalStats{Stats: c.snapshotStats(), StopReason: "could not reach the server"})
		return nil
	}

	c.mu.Lock()
	c.serverMode = true
	c.queueID = view.ID
	c.stats = statsFromView(view)
	c.mu.Unlock()

	c.startPolling(ctx)
	return nil
}

// Adopt resumes ownership of a record observed in a freshly loaded page-state
// snapshot, as after a reload. An active record is adopted and polled as if
// this controller had started it; a terminal, undismissed record is cleaned
// up as housekeeping without surfacing it as a new result. The guard is held
// across the cleanup so a racing Start observes it busy.
func (c *Controller) Adopt(ctx context.Context, snap *queue.View) {
	if snap == nil {
		return
	}
	if !c.cfg.Guard.Acquire(c.token) {
		return
	}

	if realm.QueueStatus(snap.Status).Terminal() {
		if err := c.cfg.API.DismissQueue(ctx, snap.ID); err != nil {
			c.cfg.Logger.Warn("stale queue dismiss failed", "queue_id", snap.ID, "error", err)
		}
		c.refresh()
		c.cfg.Guard.Release(c.token)
		return
	}

	c.mu.Lock()
	c.serverMode = true
	c.queueID = snap.ID
	c.stats = statsFromView(*snap)
	c.mu.Unlock()

	c.startPolling(ctx)
}

// Cancel requests cancellation of the tracked queue. The terminal status is
// confirmed by the next snapshot rather than assumed locally. In client mode
// there is nothing pending, so this is a no-op.
func (c *Controller) Cancel(ctx context.Context) {
	c.mu.Lock()
	serverMode := c.serverMode && c.polling
	c.mu.Unlock()
	if !serverMode {
		return
	}
	if err := c.cfg.API.CancelQueue(ctx); err != nil {
		c.cfg.Logger.Warn("queue cancel request failed", "error", err)
		c.stopPolling()
		c.finalize(FinalStats{Stats: c.snapshotStats(), Cancelled: true, StopReason: "could not reach the server"})
	}
}

// Progress returns the local stats mirror for rendering.
func (c *Controller) Progress() Stats {
	return c.snapshotStats()
}

// Running reports whether a server-tracked queue is currently being polled.
func (c *Controller) Running() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.polling
}

// Close stops polling and releases the guard without dismissing anything;
// an abandoned active record is re-adopted by the next controller to mount.
func (c *Controller) Close() {
	c.stopPolling()
	c.cfg.Guard.Release(c.token)
}

func (c *Controller) runSingle(ctx context.Context, actionType string, params realm.ActionParams) {
	result, err := c.cfg.API.ExecuteAction(ctx, actionType, params)
	if err != nil {
		c.cfg.Logger.Warn("single action request failed", "error", err)
		c.finalize(FinalStats{StopReason: "could not reach the server"})
		return
	}

	final := FinalStats{}
	if result.Success {
		final.Completed = 1
		final.Total = 1
		final.TotalXP = result.XPAwarded
		if produced, kind := result.Produced(); kind != realm.ProducedNone {
			final.ItemName = produced.Name
			final.TotalQuantity = produced.Quantity
		} else {
			final.TotalQuantity = 1
		}
		if result.LeveledUp && result.NewLevel > 0 && result.Skill != "" {
			final.LastLevelUp = &realm.LevelUp{Skill: result.Skill, Level: result.NewLevel}
		}
	} else {
		final.Total = 1
		final.StopReason = result.Message
	}

	c.mu.Lock()
	c.stats = final.Stats
	c.mu.Unlock()
	c.finalize(final)
}

func (c *Controller) startPolling(ctx context.Context) {
	c.mu.Lock()
	if c.polling {
		c.mu.Unlock()
		return
	}
	c.polling = true
	c.stop = make(chan struct{})
	stop := c.stop
	c.mu.Unlock()

	c.wg.Add(1)
	go c.poll(ctx, stop)
}

func (c *Controller) stopPolling() {
	c.mu.Lock()
	if c.polling {
		c.polling = false
		close(c.stop)
	}
	c.mu.Unlock()
	c.wg.Wait()
}

func (c *Controller) poll(ctx context.Context, stop chan struct{}) {
	defer c.wg.Done()
	ticker := time.NewTicker(c.cfg.PollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ctx.Done():
			return
		case <-ticker.C:
		}

		snap, err := c.cfg.API.FetchSnapshot(ctx)
		if err != nil {
			c.cfg.Logger.Warn("queue snapshot poll failed", "error", err)
			continue
		}
		if snap == nil || snap.ID != c.currentQueueID() {
			// Not our queue: a stale snapshot after a rapid start/cancel
			// cycle, or another record entirely.
			continue
		}

		c.mu.Lock()
		c.stats = statsFromView(*snap)
		c.mu.Unlock()

		if realm.QueueStatus(snap.Status).Terminal() {
			c.finishFromSnapshot(ctx, *snap)
			return
		}
	}
}

// finishFromSnapshot handles the terminal snapshot: dismiss the record, stop
// tracking, and report the final stats exactly once.
func (c *Controller) finishFromSnapshot(ctx context.Context, snap queue.View) {
	if err := c.cfg.API.DismissQueue(ctx, snap.ID); err != nil {
		c.cfg.Logger.Warn("queue dismiss failed", "queue_id", snap.ID, "error", err)
	}

	c.mu.Lock()
	c.polling = false
	c.serverMode = false
	c.queueID = ""
	c.mu.Unlock()

	final := FinalStats{
		Stats:      statsFromView(snap),
		Cancelled:  snap.Status == string(realm.QueueCancelled),
		StopReason: snap.StopReason,
	}
	c.notifyFinish(final)
	c.finalize(final)
}

func (c *Controller) finalize(final FinalStats) {
	c.cfg.Guard.Release(c.token)
	c.refresh()
	if c.cfg.OnFinish != nil {
		c.cfg.OnFinish(final)
	}
}

func (c *Controller) refresh() {
	if c.cfg.Refresh != nil {
		c.cfg.Refresh(c.cfg.RefreshRegions)
	}
}

func (c *Controller) notifyFinish(final FinalStats) {
	if c.cfg.Notifier == nil || !c.cfg.Notifier.Granted() {
		return
	}
	if c.cfg.Visible != nil && c.cfg.Visible() {
		return
	}

	title := "Action queue finished"
	switch {
	case final.Cancelled:
		title = "Action queue cancelled"
	case final.StopReason != "":
		title = "Action queue stopped: " + final.StopReason
	}

	body := fmt.Sprintf("%d actions done, %d XP gained", final.Completed, final.TotalXP)
	if final.ItemName != "" {
		body = fmt.Sprintf("%d× %s, %d XP gained", final.TotalQuantity, final.ItemName, final.TotalXP)
	}
	c.cfg.Notifier.Notify(title, body)
}

func (c *Controller) currentQueueID() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.queueID
}

func (c *Controller) snapshotStats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stats
}

func statsFromView(v queue.View) Stats {
	return Stats{
		Completed:     v.Completed,
		Total:         v.Total,
		TotalXP:       v.TotalXP,
		TotalQuantity: v.TotalQuantity,
		ItemName:      v.ItemName,
		LastLevelUp:   v.LastLevelUp,
	}
}
