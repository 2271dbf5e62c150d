// Package sched provides the fire-and-forget invocation substrate for the
// queue runner: a dispatcher that fires one delayed invocation per Schedule
// call, and a reaper that fails records left active by a crashed chain.
package sched

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// RunFunc is the runner entry point fired for a scheduled queue id.
type RunFunc func(ctx context.Context, queueID string)

// Dispatcher turns Schedule calls into single delayed invocations of the
// bound RunFunc. Each invocation fires at most once; a dispatcher shutdown
// drops pending invocations, which the reaper or startup recovery pick up.
type Dispatcher struct {
	logger *slog.Logger

	mu     sync.Mutex
	run    RunFunc
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func NewDispatcher(logger *slog.Logger) *Dispatcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Dispatcher{logger: logger}
}

// Bind sets the RunFunc. Separate from construction because the runner and
// the dispatcher reference each other.
func (d *Dispatcher) Bind(run RunFunc) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.run = run
}

func (d *Dispatcher) Start(ctx context.Context) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.ctx, d.cancel = context.WithCancel(ctx)
	d.logger.Info("queue dispatcher started")
}

// Stop cancels pending invocations and waits for in-flight ones to finish.
func (d *Dispatcher) Stop() {
	d.mu.Lock()
	cancel := d.cancel
	d.cancel = nil
	d.mu.Unlock()
	if cancel != nil {
		cancel()
	}
	d.wg.Wait()
	d.logger.Info("queue dispatcher stopped")
}

// Schedule fires one invocation for queueID after delay. Calls before Start
// or after Stop are dropped.
func (d *Dispatcher) Schedule(queueID string, delay time.Duration) {
	d.mu.Lock()
	ctx := d.ctx
	run := d.run
	if ctx == nil || ctx.Err() != nil || run == nil {
		d.mu.Unlock()
		return
	}
	d.wg.Add(1)
	d.mu.Unlock()

	go func() {
		defer d.wg.Done()
		if delay > 0 {
			timer := time.NewTimer(delay)
			defer timer.Stop()
			select {
			case <-ctx.Done():
				return
			case <-timer.C:
			}
		} else if ctx.Err() != nil {
			return
		}
		run(ctx, queueID)
	}()
}
