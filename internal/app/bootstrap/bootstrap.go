package bootstrap

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	auctionservice "stockyard/contexts/marketplace/auction-service"
	auctionpostgres "stockyard/contexts/marketplace/auction-service/adapters/postgres"
	auctionredis "stockyard/contexts/marketplace/auction-service/adapters/redis"
	auctionworkers "stockyard/contexts/marketplace/auction-service/application/workers"
	"stockyard/contexts/marketplace/auction-service/domain/services"
	listingservice "stockyard/contexts/marketplace/listing-service"
	listingpostgres "stockyard/contexts/marketplace/listing-service/adapters/postgres"
	listingworkers "stockyard/contexts/marketplace/listing-service/application/workers"
	"stockyard/internal/platform/cache"
	"stockyard/internal/platform/config"
	"stockyard/internal/platform/db"
	"stockyard/internal/platform/httpserver"
	"stockyard/internal/platform/messaging"
)

// Package bootstrap is the composition root.
// Keep construction/wiring here so module code stays framework-agnostic.

type APIApp struct {
	server   *httpserver.Server
	postgres *db.Postgres
	redis    *cache.Redis
	logger   *slog.Logger
}

type WorkerApp struct {
	postgres     *db.Postgres
	listingRelay *listingworkers.OutboxRelay
	auctionRelay *auctionworkers.OutboxRelay
	pollInterval time.Duration
	logger       *slog.Logger
}

func BuildAPI() (*APIApp, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	logger := slog.Default().With("service", cfg.ServiceName, "process", "api")
	if strings.TrimSpace(cfg.PostgresDSN) == "" {
		return nil, errors.New("POSTGRES_DSN is required")
	}
	if strings.TrimSpace(cfg.JWTSecret) == "" {
		return nil, errors.New("JWT_SECRET is required")
	}

	pg, err := db.Connect(cfg.PostgresDSN)
	if err != nil {
		return nil, err
	}

	redis, err := cache.Connect(cfg.RedisAddr)
	if err != nil {
		_ = pg.Close()
		return nil, err
	}

	listingRepo := listingpostgres.NewRepository(pg.DB, logger)
	listingModule := listingservice.NewModule(listingservice.Dependencies{
		Repository: listingRepo,
		Documents:  listingRepo,
		Outbox:     listingRepo,
		Clock:      listingpostgres.SystemClock{},
		IDGen:      listingpostgres.UUIDGenerator{},
		Logger:     logger,
	})

	auctionRepo := auctionpostgres.NewRepository(pg.DB, logger)
	auctionModule := auctionservice.NewModule(auctionservice.Dependencies{
		Auctions: auctionRepo,
		Bids:     auctionRepo,
		Listings: auctionpostgres.NewListingReader(pg.DB),
		Outbox:   auctionRepo,
		Cache:    auctionredis.NewPriceCache(redis.Client, cfg.PriceCacheTTL),
		Policy:   services.BidPolicy{MinIncrement: cfg.BidMinIncrement},
		Clock:    auctionpostgres.SystemClock{},
		IDGen:    auctionpostgres.UUIDGenerator{},
		Logger:   logger,
	})

	auth := httpserver.NewAuthenticator(cfg.JWTSecret, logger)
	server := httpserver.New(listingModule, auctionModule, auth, logger, normalizeAddr(cfg.HTTPPort))
	return &APIApp{
		server:   server,
		postgres: pg,
		redis:    redis,
		logger:   logger,
	}, nil
}

func BuildWorker() (*WorkerApp, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	logger := slog.Default().With("service", cfg.ServiceName, "process", "worker")
	if strings.TrimSpace(cfg.PostgresDSN) == "" {
		return nil, errors.New("POSTGRES_DSN is required")
	}

	pg, err := db.Connect(cfg.PostgresDSN)
	if err != nil {
		return nil, err
	}

	bus := messaging.NewBus(logger)
	app := &WorkerApp{
		postgres:     pg,
		pollInterval: cfg.OutboxPollInterval,
		logger:       logger,
	}

	if cfg.EnableListingOutboxRelay {
		repo := listingpostgres.NewRepository(pg.DB, logger)
		app.listingRelay = &listingworkers.OutboxRelay{
			Outbox:    repo,
			Publisher: bus,
			Clock:     listingpostgres.SystemClock{},
			BatchSize: 100,
			Logger:    logger,
		}
	}
	if cfg.EnableAuctionOutboxRelay {
		repo := auctionpostgres.NewRepository(pg.DB, logger)
		app.auctionRelay = &auctionworkers.OutboxRelay{
			Outbox:    repo,
			Publisher: bus,
			Clock:     auctionpostgres.SystemClock{},
			BatchSize: 100,
			Logger:    logger,
		}
	}
	return app, nil
}

func (a *APIApp) Run(_ context.Context) error {
	if a.logger != nil {
		a.logger.Info("api app started",
			"event", "bootstrap_api_started",
			"module", "internal/app/bootstrap",
			"layer", "platform",
		)
	}
	return a.server.Start()
}

func (a *APIApp) Close() error {
	if a.redis != nil {
		_ = a.redis.Close()
	}
	if a.postgres != nil {
		return a.postgres.Close()
	}
	return nil
}

func (w *WorkerApp) Run(ctx context.Context) error {
	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()

	w.logger.Info("worker app started",
		"event", "bootstrap_worker_started",
		"module", "internal/app/bootstrap",
		"layer", "platform",
		"poll_interval", w.pollInterval.String(),
	)

	for {
		if w.listingRelay != nil {
			if err := w.listingRelay.RunOnce(ctx); err != nil {
				return err
			}
		}
		if w.auctionRelay != nil {
			if err := w.auctionRelay.RunOnce(ctx); err != nil {
				return err
			}
		}
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}

func (w *WorkerApp) Close() error {
	if w.postgres != nil {
		return w.postgres.Close()
	}
	return nil
}

func normalizeAddr(port string) string {
	value := strings.TrimSpace(port)
	if value == "" {
		return ":8080"
	}
	if strings.HasPrefix(value, ":") {
		return value
	}
	return ":" + value
}
