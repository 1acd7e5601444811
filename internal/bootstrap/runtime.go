// Package bootstrap establishes runtime dependencies for the API binaries.
package bootstrap

import (
	"context"
	"fmt"

	"guidepost/internal/cache"
	"guidepost/internal/config"
	"guidepost/internal/database"
	"guidepost/internal/seed"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Options control runtime initialization behavior.
type Options struct {
	SeedBuiltIns bool
}

// InitRuntime connects to DB and Redis and optionally seeds the built-in
// character directory. The Redis client may be nil when the cache is
// unreachable; callers run without caching in that case.
func InitRuntime(cfg *config.Config, opts Options) (*gorm.DB, *redis.Client, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("database connection failed: %w", err)
	}

	cache.InitRedis(cfg.RedisURL)
	r := cache.GetClient()

	if opts.SeedBuiltIns {
		if err := seed.Characters(db); err != nil {
			return nil, nil, fmt.Errorf("failed to seed built-in characters: %w", err)
		}
		cache.InvalidateCharacters(context.Background())
	}

	return db, r, nil
}
