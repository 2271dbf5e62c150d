package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/cloudwego/hertz/pkg/app/server"

	httpadapter "veldoria/internal/adapter/http"
	metricsinmem "veldoria/internal/adapter/metrics/inmemory"
	gormrepo "veldoria/internal/adapter/repo/gorm"
	"veldoria/internal/adapter/sched"
	"veldoria/internal/app/execute"
	"veldoria/internal/app/ports"
	"veldoria/internal/app/queue"
	"veldoria/internal/config"
	"veldoria/internal/domain/realm"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	db, err := gormrepo.OpenPostgres(cfg.DatabaseDSN)
	if err != nil {
		log.Fatalf("open postgres: %v", err)
	}
	if err := gormrepo.ApplyMigrations(context.Background(), db, cfg.MigrationsDir); err != nil {
		log.Fatalf("apply migrations: %v", err)
	}

	playerRepo := gormrepo.NewPlayerRepo(db)
	queueRepo := gormrepo.NewActionQueueRepo(db)
	txManager := gormrepo.NewTxManager(db)
	seedDemoPlayer(playerRepo)

	registry := execute.NewRegistry()
	recorder := metricsinmem.NewRecorder()
	dispatcher := sched.NewDispatcher(logger)

	runner := queue.Runner{
		TxManager:  txManager,
		QueueRepo:  queueRepo,
		PlayerRepo: playerRepo,
		Executors:  registry,
		Scheduler:  dispatcher,
		Metrics:    recorder,
		Logger:     logger,
		Delay:      cfg.IterationDelay,
	}
	dispatcher.Bind(runner.RunIteration)
	dispatcher.Start(context.Background())
	defer dispatcher.Stop()

	resumeActiveQueues(queueRepo, dispatcher, logger)

	reaper := &sched.Reaper{
		Queues:    queueRepo,
		Staleness: cfg.QueueStaleAfter,
		Logger:    logger,
	}
	reaper.Start(context.Background())
	defer reaper.Stop()

	h := httpadapter.Handler{
		QueueUC: queue.UseCase{
			TxManager:  txManager,
			QueueRepo:  queueRepo,
			PlayerRepo: playerRepo,
			Scheduler:  dispatcher,
			Metrics:    recorder,
		},
		ActionUC: execute.UseCase{
			TxManager:  txManager,
			PlayerRepo: playerRepo,
			Executors:  registry,
		},
		KPI: recorder,
	}

	s := server.Default(server.WithHostPorts(cfg.ListenAddr))
	h.RegisterRoutes(s)

	logger.Info("veldoria server listening", "addr", cfg.ListenAddr)
	s.Spin()
}

// resumeActiveQueues re-fires the invocation chain for records left active by
// the previous process; the chain itself lives only in memory.
func resumeActiveQueues(queueRepo gormrepo.ActionQueueRepo, dispatcher *sched.Dispatcher, logger *slog.Logger) {
	active, err := queueRepo.ListActiveUpdatedBefore(context.Background(), time.Now())
	if err != nil {
		log.Fatalf("list active queues: %v", err)
	}
	for _, record := range active {
		dispatcher.Schedule(record.ID, 0)
	}
	if len(active) > 0 {
		logger.Info("resumed active queues after restart", "count", len(active))
	}
}

func seedDemoPlayer(playerRepo gormrepo.PlayerRepo) {
	_, err := playerRepo.GetByID(context.Background(), "demo-player")
	if err == nil {
		return
	}
	if !errors.Is(err, ports.ErrNotFound) {
		log.Fatalf("load demo player: %v", err)
	}
	seed := realm.Player{
		ID:         "demo-player",
		Name:       "Wandering Yeoman",
		LocationID: "greenfield",
		Energy:     100,
		Inventory:  map[string]int{"fish": 10, "iron ore": 5, "coal": 5},
		Version:    1,
		UpdatedAt:  time.Now(),
	}
	if err := playerRepo.SaveWithVersion(context.Background(), seed, 0); err != nil {
		log.Fatalf("seed demo player: %v", err)
	}
}
