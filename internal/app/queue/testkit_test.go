package queue

import (
	"context"
	"sync"
	"time"

	"veldoria/internal/adapter/repo/memory"
	"veldoria/internal/app/ports"
	"veldoria/internal/domain/realm"
)

// stubScheduler records schedule calls instead of firing them; tests drive
// iterations by hand.
type stubScheduler struct {
	mu    sync.Mutex
	calls []scheduledCall
}

type scheduledCall struct {
	QueueID string
	Delay   time.Duration
}

func (s *stubScheduler) Schedule(queueID string, delay time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, scheduledCall{QueueID: queueID, Delay: delay})
}

func (s *stubScheduler) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.calls)
}

// scriptedExecutor returns its results in order and panics past the end.
type scriptedExecutor struct {
	results []realm.ExecResult
	calls   int
}

func (e *scriptedExecutor) Execute(_ context.Context, player *realm.Player, _ realm.ActionParams, _ realm.Location) realm.ExecResult {
	res := e.results[e.calls]
	e.calls++
	if res.Success || res.Failed {
		player.AddItem("scripted", 1)
	}
	return res
}

type panicExecutor struct{}

func (panicExecutor) Execute(context.Context, *realm.Player, realm.ActionParams, realm.Location) realm.ExecResult {
	panic("executor blew up")
}

// singleRegistry serves the same executor for every action type.
type singleRegistry struct {
	exec ports.ActionExecutor
}

func (r singleRegistry) For(realm.ActionType) (ports.ActionExecutor, bool) {
	return r.exec, r.exec != nil
}

type queueFixture struct {
	store     *memory.Store
	queues    memory.ActionQueueRepo
	players   memory.PlayerRepo
	tx        memory.TxManager
	scheduler *stubScheduler
}

func newFixture() *queueFixture {
	store := memory.NewStore()
	return &queueFixture{
		store:     store,
		queues:    memory.NewActionQueueRepo(store),
		players:   memory.NewPlayerRepo(store),
		tx:        memory.NewTxManager(store),
		scheduler: &stubScheduler{},
	}
}

func (f *queueFixture) runner(exec ports.ActionExecutor) Runner {
	return Runner{
		TxManager:  f.tx,
		QueueRepo:  f.queues,
		PlayerRepo: f.players,
		Executors:  singleRegistry{exec: exec},
		Scheduler:  f.scheduler,
		Now:        func() time.Time { return time.Unix(1700000000, 0) },
	}
}

func (f *queueFixture) useCase() UseCase {
	return UseCase{
		TxManager:  f.tx,
		QueueRepo:  f.queues,
		PlayerRepo: f.players,
		Scheduler:  f.scheduler,
		Now:        func() time.Time { return time.Unix(1700000000, 0) },
	}
}

func (f *queueFixture) seedPlayer(id string) {
	f.store.SeedPlayer(realm.Player{ID: id, LocationID: "greenfield", Energy: 100, Version: 1})
}

func (f *queueFixture) seedActiveQueue(id, playerID string, actionType realm.ActionType, total int) {
	f.store.SeedQueue(realm.ActionQueue{
		ID:        id,
		PlayerID:  playerID,
		Type:      actionType,
		Status:    realm.QueueActive,
		Total:     total,
		CreatedAt: time.Unix(1699999000, 0),
		UpdatedAt: time.Unix(1699999000, 0),
	})
}

func (f *queueFixture) queue(id string) realm.ActionQueue {
	q, err := f.queues.GetByID(context.Background(), id)
	if err != nil {
		panic(err)
	}
	return q
}

func (f *queueFixture) setTraveling(playerID string, traveling bool) {
	p, err := f.players.GetByID(context.Background(), playerID)
	if err != nil {
		panic(err)
	}
	p.Traveling = traveling
	f.store.SeedPlayer(p)
}
