package sched

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type runRecorder struct {
	mu  sync.Mutex
	ids []string
	ch  chan string
}

func newRunRecorder() *runRecorder {
	return &runRecorder{ch: make(chan string, 16)}
}

func (r *runRecorder) run(_ context.Context, queueID string) {
	r.mu.Lock()
	r.ids = append(r.ids, queueID)
	r.mu.Unlock()
	r.ch <- queueID
}

func (r *runRecorder) wait(t *testing.T) string {
	t.Helper()
	select {
	case id := <-r.ch:
		return id
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for invocation")
		return ""
	}
}

func (r *runRecorder) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.ids)
}

func TestDispatcher_FiresOncePerSchedule(t *testing.T) {
	rec := newRunRecorder()
	d := NewDispatcher(discardLogger())
	d.Bind(rec.run)
	d.Start(context.Background())
	defer d.Stop()

	d.Schedule("q1", 0)
	assert.Equal(t, "q1", rec.wait(t))

	d.Schedule("q1", time.Millisecond)
	assert.Equal(t, "q1", rec.wait(t))

	assert.Equal(t, 2, rec.count())
}

func TestDispatcher_DropsBeforeStartAndAfterStop(t *testing.T) {
	rec := newRunRecorder()
	d := NewDispatcher(discardLogger())
	d.Bind(rec.run)

	d.Schedule("early", 0)

	d.Start(context.Background())
	d.Stop()
	d.Schedule("late", 0)

	time.Sleep(20 * time.Millisecond)
	assert.Zero(t, rec.count())
}

func TestDispatcher_StopCancelsPendingDelay(t *testing.T) {
	rec := newRunRecorder()
	d := NewDispatcher(discardLogger())
	d.Bind(rec.run)
	d.Start(context.Background())

	d.Schedule("pending", time.Minute)
	done := make(chan struct{})
	go func() {
		d.Stop()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Stop must not wait out the pending delay")
	}
	assert.Zero(t, rec.count())
}

func TestDispatcher_StopWaitsForInFlight(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	var finished bool

	d := NewDispatcher(discardLogger())
	d.Bind(func(context.Context, string) {
		close(started)
		<-release
		finished = true
	})
	d.Start(context.Background())

	d.Schedule("q1", 0)
	<-started
	go func() {
		time.Sleep(10 * time.Millisecond)
		close(release)
	}()
	d.Stop()

	require.True(t, finished, "Stop returned before the in-flight invocation finished")
}
