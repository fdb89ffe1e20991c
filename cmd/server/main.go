package main

import (
	"context"
	"database/sql"
	"strconv"
	"time"

	_ "github.com/lib/pq"
	"github.com/rs/zerolog"

	"github.com/nexarch/core/internal/augment"
	"github.com/nexarch/core/internal/auth"
	"github.com/nexarch/core/internal/cache"
	"github.com/nexarch/core/internal/config"
	"github.com/nexarch/core/internal/dbmigrate"
	"github.com/nexarch/core/internal/httpserver"
	"github.com/nexarch/core/internal/ingest"
	"github.com/nexarch/core/internal/logging"
	"github.com/nexarch/core/internal/ratelimit"
	"github.com/nexarch/core/internal/store"
	"github.com/nexarch/core/internal/store/memory"
	"github.com/nexarch/core/internal/store/postgres"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logging.Setup(cfg.App.LogLevel, false)
	log := logging.For("main")

	spanStore, db := openStore(cfg, log)
	if db != nil {
		defer db.Close()
		if err := dbmigrate.Run(db); err != nil {
			log.Fatal().Err(err).Msg("schema migration failed")
		}
	}

	var resultCache *cache.Cache
	if cfg.Redis.Enabled {
		resultCache = cache.New(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, cfg.Redis.CacheTTL())
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := resultCache.Ping(ctx); err != nil {
			log.Warn().Err(err).Msg("redis unreachable at startup, continuing without cache warmup")
		}
		cancel()
	}

	invalidate := func(tenant string) {}
	if resultCache != nil {
		invalidate = func(tenant string) {
			resultCache.InvalidateTenant(context.Background(), tenant)
		}
	}

	ingestService := ingest.NewService(spanStore, cfg.Ingest.QueueCapacity, cfg.Ingest.MaxSpanBytes, cfg.Ingest.MaxBatchSize, invalidate)
	limiter := ratelimit.New(cfg.RateLimit.RequestsPerMinute, cfg.RateLimit.Burst)
	tokenIssuer := auth.NewTokenIssuer(cfg.Auth.JWTSecret)

	var augmentClient *augment.Client
	if cfg.Augment.Enabled {
		augmentClient = augment.NewClient(cfg.Augment.Endpoint, cfg.Augment.Model)
	}

	engine := httpserver.New(httpserver.Deps{
		Config:      cfg,
		Store:       spanStore,
		Ingest:      ingestService,
		Cache:       resultCache,
		Limiter:     limiter,
		TokenIssuer: tokenIssuer,
		Augment:     augmentClient,
		Log:         log,
	})

	addr := cfg.App.Host + ":" + strconv.Itoa(cfg.App.Port)
	log.Info().Str("addr", addr).Msg("starting nexarch")
	if err := engine.Run(addr); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
}

// openStore opens the configured Span Store. A postgres driver name
// opens a real database connection pool per the platform's runtime
// wiring pattern; anything else falls back to the in-memory store,
// used for local development and tests without a database.
func openStore(cfg *config.Config, log zerolog.Logger) (store.SpanStore, *sql.DB) {
	if cfg.Database.Driver != "postgres" {
		log.Info().Msg("using in-memory span store")
		return memory.New(), nil
	}

	db, err := sql.Open("postgres", cfg.Database.DSN)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open database")
	}

	if cfg.Database.MaxOpenConns > 0 {
		db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	}
	if cfg.Database.MaxIdleConns > 0 {
		db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	}
	db.SetConnMaxLifetime(cfg.Database.ConnMaxLifetimeDuration())

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		log.Fatal().Err(err).Msg("failed to reach database")
	}

	return postgres.New(db), db
}
