package inmemory

import (
	"sync"

	"veldoria/internal/domain/realm"
)

type Snapshot struct {
	IterationsTotal uint64            `json:"iterations_total"`
	ByActionType    map[string]uint64 `json:"by_action_type"`
	TerminalsTotal  uint64            `json:"terminals_total"`
	ByTerminal      map[string]uint64 `json:"by_terminal_status"`
	StartsRejected  uint64            `json:"starts_rejected"`
}

type Recorder struct {
	mu             sync.Mutex
	iterations     uint64
	byAction       map[string]uint64
	terminals      uint64
	byTerminal     map[string]uint64
	startsRejected uint64
}

func NewRecorder() *Recorder {
	return &Recorder{
		byAction:   map[string]uint64{},
		byTerminal: map[string]uint64{},
	}
}

func (r *Recorder) RecordIteration(t realm.ActionType) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.iterations++
	r.byAction[string(t)]++
}

func (r *Recorder) RecordTerminal(t realm.ActionType, status realm.QueueStatus) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.terminals++
	r.byTerminal[string(status)]++
}

func (r *Recorder) RecordStartRejected() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.startsRejected++
}

func (r *Recorder) Snapshot() Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := Snapshot{
		IterationsTotal: r.iterations,
		TerminalsTotal:  r.terminals,
		StartsRejected:  r.startsRejected,
		ByActionType:    make(map[string]uint64, len(r.byAction)),
		ByTerminal:      make(map[string]uint64, len(r.byTerminal)),
	}
	for k, v := range r.byAction {
		out.ByActionType[k] = v
	}
	for k, v := range r.byTerminal {
		out.ByTerminal[k] = v
	}
	return out
}

func (r *Recorder) SnapshotAny() any {
	return r.Snapshot()
}
