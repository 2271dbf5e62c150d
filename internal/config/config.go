package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	DatabaseDSN    string        `env:"VELDORIA_DB_DSN,required"`
	ListenAddr     string        `env:"VELDORIA_LISTEN_ADDR" envDefault:":8080"`
	MigrationsDir  string        `env:"VELDORIA_MIGRATIONS_DIR" envDefault:"./migrations"`
	IterationDelay time.Duration `env:"QUEUE_ITERATION_DELAY" envDefault:"3s"`
	// QueueStaleAfter is the reaper threshold for an active record with no
	// updates; keep it well above IterationDelay.
	QueueStaleAfter time.Duration `env:"QUEUE_STALE_AFTER" envDefault:"60s"`
}

func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}
