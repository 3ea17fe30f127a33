package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/KirkDiggler/skilltree-api/internal/catalog"
	"github.com/KirkDiggler/skilltree-api/internal/config"
	"github.com/KirkDiggler/skilltree-api/internal/engine"
	builderorch "github.com/KirkDiggler/skilltree-api/internal/orchestrators/builder"
	"github.com/KirkDiggler/skilltree-api/internal/pkg/clock"
	"github.com/KirkDiggler/skilltree-api/internal/pkg/idgen"
	"github.com/KirkDiggler/skilltree-api/internal/redis"
	"github.com/KirkDiggler/skilltree-api/internal/repositories/session"
	"github.com/KirkDiggler/skilltree-api/internal/repositories/slot"
	"github.com/KirkDiggler/skilltree-api/internal/services/builder"
	"github.com/KirkDiggler/skilltree-api/internal/snapshot"
)

// app holds the wired service and whatever must be released on shutdown
type app struct {
	builder builder.Service
	closers []func() error
}

func (a *app) close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			slog.Warn("Failed to release resource", "error", err)
		}
	}
}

func newApp(ctx context.Context, cfg *config.Config) (*app, error) {
	a := &app{}

	cat, err := catalog.Load(cfg.CatalogDir)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}
	slog.Info("Catalog loaded", "nodes", len(cat.Nodes()), "dir", cfg.CatalogDir)

	eng, err := engine.New(&engine.Config{
		Catalog:     cat,
		IDGenerator: idgen.NewUUID("item"),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create engine: %w", err)
	}

	clk := clock.New()

	slots, err := newSlotRepository(ctx, cfg, clk, a)
	if err != nil {
		a.close()
		return nil, err
	}

	gateway, err := snapshot.NewGateway(&snapshot.Config{
		Nodes:       cat,
		Clock:       clk,
		IDGenerator: idgen.NewUUID("item"),
	})
	if err != nil {
		a.close()
		return nil, fmt.Errorf("failed to create snapshot gateway: %w", err)
	}

	a.builder, err = builderorch.New(&builderorch.Config{
		Engine:      eng,
		SessionRepo: session.NewInMemory(),
		SlotRepo:    slots,
		Gateway:     gateway,
		IDGenerator: idgen.NewUUID("session"),
		DefaultSlot: cfg.Slot,
	})
	if err != nil {
		a.close()
		return nil, fmt.Errorf("failed to create builder: %w", err)
	}

	return a, nil
}

func newSlotRepository(ctx context.Context, cfg *config.Config, clk clock.Clock, a *app) (slot.Repository, error) {
	switch cfg.Storage.Backend {
	case config.BackendRedis:
		client, err := redis.NewClient(cfg.Storage.RedisAddr, &redis.Options{DialTimeout: 5 * time.Second})
		if err != nil {
			return nil, fmt.Errorf("failed to create redis client: %w", err)
		}
		a.closers = append(a.closers, client.Close)

		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		if err := redis.Ping(pingCtx, client); err != nil {
			return nil, err
		}

		return slot.NewRedisRepository(&slot.RedisConfig{Client: client, Clock: clk})
	default:
		repo, err := slot.NewSQLiteRepository(&slot.SQLiteConfig{Path: cfg.Storage.SQLitePath, Clock: clk})
		if err != nil {
			return nil, fmt.Errorf("failed to open slot database: %w", err)
		}
		a.closers = append(a.closers, repo.Close)
		return repo, nil
	}
}
