package ports

import "time"

// RunnerScheduler schedules exactly one future runner invocation for a queue
// record. Fire-and-forget: the scheduler never retries a fired invocation, so
// each iteration runs at most once.
type RunnerScheduler interface {
	Schedule(queueID string, delay time.Duration)
}
