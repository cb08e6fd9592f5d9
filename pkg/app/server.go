package app

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/shashiranjanraj/storefront/config"
	"github.com/shashiranjanraj/storefront/database/migrations"
	"github.com/shashiranjanraj/storefront/internal/server"
	"github.com/shashiranjanraj/storefront/pkg/cache"
	"github.com/shashiranjanraj/storefront/pkg/database"
	"github.com/shashiranjanraj/storefront/pkg/logger"
	"github.com/shashiranjanraj/storefront/pkg/middleware"
	"gorm.io/gorm"
)

// Serve opens the store, builds the handler and blocks until ctx is done or
// a shutdown signal arrives.
func (a *Application) Serve(ctx context.Context) error {
	if err := config.Load(); err != nil {
		return fmt.Errorf("config: %w", err)
	}

	closeLog, err := logger.Setup()
	if err != nil {
		return fmt.Errorf("logger: %w", err)
	}
	defer closeLog()

	db, err := database.Open(ctx, database.OptionsFromConfig())
	if err != nil {
		return err
	}
	defer database.Close(db) //nolint:errcheck

	rdb := connectRedis(ctx)
	if rdb != nil {
		defer rdb.Close() //nolint:errcheck
	}

	return server.Run(ctx, server.Options{
		Addr:         ":" + config.Port(),
		Handler:      a.Handler(db, newLimiter(rdb)),
		EnsureSchema: schemaFunc(db),
		StrictSchema: config.SchemaStrictStartup(),
		RecheckDelay: config.SchemaRecheckDelay(),
	})
}

func schemaFunc(db *gorm.DB) func(context.Context) error {
	return func(ctx context.Context) error {
		return migrations.EnsureSchema(ctx, db)
	}
}

// connectRedis returns nil when Redis is not configured or not reachable;
// the rate limiter then runs in process.
func connectRedis(ctx context.Context) *redis.Client {
	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	rdb, err := cache.Connect(pingCtx)
	if err != nil {
		logger.Warn("redis unavailable, rate limiting in process", "error", err)
		return nil
	}
	return rdb
}

func newLimiter(rdb *redis.Client) middleware.Limiter {
	perMinute := config.RateLimitPerMinute()
	if perMinute == 0 {
		return nil
	}
	if rdb != nil {
		return middleware.NewRedisLimiter(rdb, perMinute, time.Minute)
	}
	return middleware.NewMemoryLimiter(perMinute, time.Minute)
}
