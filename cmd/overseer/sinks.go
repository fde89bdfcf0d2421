package main

import (
	"fmt"
	"log/slog"

	corecfg "github.com/aevon-lab/overseer/internal/core/config"
	"github.com/aevon-lab/overseer/internal/core/sink"
	"github.com/aevon-lab/overseer/internal/core/sink/postgres"
	"github.com/aevon-lab/overseer/internal/migrations"
	"github.com/aevon-lab/overseer/internal/server"
)

// buildSink opens every configured backend and wraps the result in an Async
// dispatcher. It also returns the backends that can report their health.
func buildSink(cfg corecfg.SinkConfig) (sink.Sink, map[string]server.HealthChecker, error) {
	checks := make(map[string]server.HealthChecker)
	var backends sink.Multi

	for _, kind := range cfg.Backends() {
		s, err := openBackend(kind, cfg, checks)
		if err != nil {
			// release what was already opened
			if cerr := backends.Close(); cerr != nil {
				slog.Warn("[Sink] Failed to close partially built sinks", "error", cerr)
			}
			return nil, nil, fmt.Errorf("failed to open %s sink: %w", kind, err)
		}
		backends = append(backends, s)
	}

	var next sink.Sink
	switch len(backends) {
	case 0:
		next = sink.Nop{}
	case 1:
		next = backends[0]
	default:
		next = backends
	}

	slog.Info("[Sink] Audit sink initialized",
		"backends", cfg.Backends(),
		"queue_size", cfg.QueueSize,
		"write_timeout", cfg.WriteTimeout)
	return sink.NewAsync(next, cfg.QueueSize, cfg.WriteTimeout), checks, nil
}

func openBackend(kind string, cfg corecfg.SinkConfig, checks map[string]server.HealthChecker) (sink.Sink, error) {
	switch kind {
	case corecfg.SinkLog:
		return sink.NewLog(slog.Default()), nil

	case corecfg.SinkFile:
		return sink.OpenFile(cfg.File.Path)

	case corecfg.SinkPostgres:
		db, err := postgres.Open(cfg.Postgres.DSN, cfg.Postgres.MaxOpenConns, cfg.Postgres.MaxIdleConns)
		if err != nil {
			return nil, err
		}
		if err := migrations.RunMigrations(db, cfg.Postgres.AutoMigrate); err != nil {
			db.Close()
			return nil, err
		}
		s, err := postgres.New(db)
		if err != nil {
			db.Close()
			return nil, err
		}
		checks[corecfg.SinkPostgres] = s
		return s, nil

	case corecfg.SinkKafka:
		return sink.NewKafka(cfg.Kafka.Brokers, cfg.Kafka.Topic), nil

	case corecfg.SinkRedis:
		s, err := sink.NewRedis(cfg.Redis.Addr, cfg.Redis.Key, cfg.Redis.MaxLen)
		if err != nil {
			return nil, err
		}
		checks[corecfg.SinkRedis] = s
		return s, nil

	default:
		return nil, fmt.Errorf("unsupported sink type %q", kind)
	}
}
