package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"greentax/internal/audit"
	complianceservice "greentax/internal/compliance/service"
	compliancestore "greentax/internal/compliance/store"
	"greentax/internal/platform/config"
	"greentax/internal/platform/postgres"
	"greentax/internal/platform/redis"
	proofservice "greentax/internal/proof/service"
	proofstore "greentax/internal/proof/store"
	societyservice "greentax/internal/society/service"
	societystore "greentax/internal/society/store"
)

// infra holds the optional external backends. Each is nil when its
// configuration is empty and the service falls back to in-process storage.
type infra struct {
	db    *sql.DB
	redis *redis.Client
	kafka *audit.KafkaSink
	log   *slog.Logger
}

func openInfra(ctx context.Context, cfg config.Server, log *slog.Logger) (*infra, error) {
	out := &infra{log: log}

	if cfg.DatabaseURL != "" {
		db, err := postgres.Open(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		if err := postgres.Migrate(ctx, db); err != nil {
			_ = db.Close()
			return nil, err
		}
		out.db = db
	} else {
		log.Warn("DATABASE_URL not set, using in-memory stores")
	}

	client, err := redis.New(ctx, cfg.Redis)
	if err != nil {
		out.Close()
		return nil, err
	}
	out.redis = client

	if len(cfg.Kafka.Brokers) > 0 {
		sink, err := audit.NewKafkaSink(cfg.Kafka.Brokers, cfg.Kafka.AuditTopic, log)
		if err != nil {
			out.Close()
			return nil, err
		}
		out.kafka = sink
		ensureCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
		defer cancel()
		if err := sink.EnsureTopic(ensureCtx, 1, 1); err != nil {
			out.Close()
			return nil, err
		}
	}
	return out, nil
}

// Health pings every configured backend.
func (i *infra) Health(ctx context.Context) error {
	var errs []error
	if i.db != nil {
		if err := i.db.PingContext(ctx); err != nil {
			errs = append(errs, fmt.Errorf("postgres: %w", err))
		}
	}
	if i.redis != nil {
		if err := i.redis.Health(ctx); err != nil {
			errs = append(errs, fmt.Errorf("redis: %w", err))
		}
	}
	return errors.Join(errs...)
}

func (i *infra) Close() {
	if i.kafka != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := i.kafka.Close(ctx); err != nil {
			i.log.Warn("kafka close failed", "error", err)
		}
	}
	if i.redis != nil {
		if err := i.redis.Close(); err != nil {
			i.log.Warn("redis close failed", "error", err)
		}
	}
	if i.db != nil {
		if err := i.db.Close(); err != nil {
			i.log.Warn("postgres close failed", "error", err)
		}
	}
}

type stores struct {
	societies  societyservice.Store
	proofs     proofservice.Store
	compliance complianceservice.Store
	tx         complianceservice.Transactor
}

func newStores(i *infra) *stores {
	if i.db == nil {
		return &stores{
			societies:  societystore.NewInMemory(),
			proofs:     proofstore.NewInMemory(),
			compliance: compliancestore.NewInMemory(),
		}
	}
	return &stores{
		societies:  societystore.NewPostgres(i.db),
		proofs:     proofstore.NewPostgres(i.db),
		compliance: compliancestore.NewPostgres(i.db),
		tx:         postgres.NewTransactor(i.db),
	}
}
