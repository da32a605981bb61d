package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/merchkit/cross-sell-service/internal/cache"
	"github.com/merchkit/cross-sell-service/internal/catalog"
	"github.com/merchkit/cross-sell-service/internal/config"
	"github.com/merchkit/cross-sell-service/internal/engine"
	"github.com/merchkit/cross-sell-service/internal/handler"
	"github.com/merchkit/cross-sell-service/internal/llm"
	"github.com/merchkit/cross-sell-service/internal/memory"
	"github.com/merchkit/cross-sell-service/internal/router"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

func main() {
	logger := zerolog.New(os.Stdout).With().Timestamp().Str("service", "cross-sell").Logger()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load config")
	}

	ctx := context.Background()

	// ------------ Catalog ---------------
	cat := catalog.Load(cfg.CatalogPath, logger)

	// ------------ PostgreSQL (long-term memory, optional) ---------------
	var longTerm memory.LongTerm
	if cfg.DatabaseURL != "" {
		poolConfig, err := pgxpool.ParseConfig(cfg.DatabaseURL)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to parse database config")
		}
		poolConfig.MaxConns = int32(cfg.DBPoolSize)
		pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to connect to database")
		}
		defer pool.Close()

		if err := waitForDB(ctx, pool, logger); err != nil {
			logger.Fatal().Err(err).Msg("database not ready")
		}
		logger.Info().Msg("connected to PostgreSQL")

		// for migrate-down using CLI command
		if len(os.Args) > 1 && os.Args[1] == "migrate-down" {
			if err := migrate(ctx, pool, "migrations/create_tables.down.sql"); err != nil {
				logger.Fatal().Err(err).Msg("failed to migrate down")
			}
			logger.Info().Msg("migrations dropped")
			return
		}

		if err := migrate(ctx, pool, "migrations/create_tables.up.sql"); err != nil {
			logger.Fatal().Err(err).Msg("failed to migrate up")
		}
		logger.Info().Msg("migrations applied")

		longTerm = memory.NewPostgresStore(pool)
	} else {
		logger.Warn().Msg("DATABASE_URL not set, long-term memory disabled")
	}

	// ------------ Redis (response cache, optional) ---------------
	var respCache *cache.Cache
	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to parse redis url")
		}
		client := redis.NewClient(opts)
		respCache = cache.NewCache(client, cfg.CacheTTL)
		if err := respCache.Ping(ctx); err != nil {
			logger.Warn().Err(err).Msg("redis unreachable, cache lookups will fail open")
		} else {
			logger.Info().Msg("connected to Redis")
		}
	}

	// ------------ Generative backend (optional) ---------------
	var backend llm.Client
	if cfg.LLMAPIKey != "" {
		backend = llm.WithBreaker(llm.NewOpenAIClient(cfg.LLMEndpoint, cfg.LLMAPIKey, cfg.LLMModel, cfg.LLMTimeout))
		logger.Info().Str("model", cfg.LLMModel).Msg("generative backend configured")
	} else {
		logger.Warn().Msg("LLM_API_KEY not set, generative mode disabled")
	}

	// ---------------- Engine + Server --------------------
	shortTerm := memory.NewShortTerm(cfg.ShortTermCap)
	eng := engine.New(cat, backend, shortTerm, longTerm, respCache, logger)
	h := handler.NewHandler(eng, cat, shortTerm, longTerm, backend != nil, logger)

	logger.Info().Int("port", cfg.Port).Int("products", cat.Len()).Msg("server starting")
	if err := http.ListenAndServe(cfg.Addr(), router.Setup(h)); err != nil {
		logger.Fatal().Err(err).Msg("server stopped")
	}
}

func waitForDB(ctx context.Context, pool *pgxpool.Pool, logger zerolog.Logger) error {
	for i := 0; i < 30; i++ {
		if err := pool.Ping(ctx); err == nil {
			return nil
		}
		logger.Info().Int("attempt", i+1).Msg("waiting for database...")
		time.Sleep(1 * time.Second)
	}
	return fmt.Errorf("database connection timeout after 30s")
}

func migrate(ctx context.Context, pool *pgxpool.Pool, path string) error {
	sql, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read migration file: %w", err)
	}
	if _, err := pool.Exec(ctx, string(sql)); err != nil {
		return fmt.Errorf("execute migration: %w", err)
	}
	return nil
}
