package cache

import (
	"context"
	"fmt"
	"time"

	"rai-review-backend/internal/shared/config"
	"rai-review-backend/internal/shared/storage/db"
	"rai-review-backend/internal/shared/storage/object/local"
	"rai-review-backend/internal/shared/storage/object/s3"
	"rai-review-backend/internal/shared/telemetry"
)

// OpenStore builds the store selected by cfg.CacheBackend. A backend that
// cannot be reached degrades to the file store so reviews keep working.
// The returned close function is never nil.
func OpenStore(ctx context.Context, cfg config.Config) (Store, func() error, error) {
	nop := func() error { return nil }
	store, closeFn, err := openBackend(ctx, cfg)
	if err == nil {
		return store, closeFn, nil
	}
	if cfg.CacheBackend == "file" {
		return nil, nop, err
	}
	telemetry.Warn("cache.backend_unavailable", map[string]any{"backend": cfg.CacheBackend, "error": err, "fallback": "file"})
	fallback := cfg
	fallback.CacheBackend = "file"
	return openBackend(ctx, fallback)
}

func openBackend(ctx context.Context, cfg config.Config) (Store, func() error, error) {
	nop := func() error { return nil }
	switch cfg.CacheBackend {
	case "memory":
		return NewMemoryStore(), nop, nil
	case "redis":
		if cfg.RedisAddr == "" {
			return nil, nop, fmt.Errorf("REDIS_ADDR is required for the redis cache")
		}
		rs, err := NewRedisStore(cfg.RedisAddr, cfg.RedisPassword, DefaultRedisRetention)
		if err != nil {
			return nil, nop, err
		}
		return rs, rs.Close, nil
	case "postgres":
		if cfg.DatabaseURL == "" {
			return nil, nop, fmt.Errorf("DATABASE_URL is required for the postgres cache")
		}
		return openPostgres(ctx, cfg.DatabaseURL, db.OptionsFromEnv(db.CacheStoreOptions()))
	case "s3":
		if cfg.S3Bucket == "" {
			return nil, nop, fmt.Errorf("S3_BUCKET is required for the s3 cache")
		}
		initCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
		defer cancel()
		objects, err := s3.New(initCtx, cfg.AWSRegion, cfg.S3Bucket, cfg.S3Prefix, cfg.SSEKMSKeyID)
		if err != nil {
			return nil, nop, err
		}
		return NewBlobStore("s3", objects), nop, nil
	default:
		objects, err := local.New(cfg.CacheDir)
		if err != nil {
			return nil, nop, err
		}
		return NewBlobStore("file", objects), nop, nil
	}
}

func openPostgres(ctx context.Context, databaseURL string, opts db.Options) (Store, func() error, error) {
	sqlDB, err := db.Open(ctx, databaseURL, opts)
	if err != nil {
		return nil, func() error { return nil }, err
	}
	return NewPostgresStore(sqlDB), sqlDB.Close, nil
}

// TTLs maps cache kinds to their configured freshness windows.
type TTLs map[string]time.Duration

// TTLsFromConfig returns the per-kind TTLs in cfg.
func TTLsFromConfig(c config.CacheTTL) TTLs {
	return TTLs{
		KindGitHub:        c.GitHub,
		KindArchitectures: c.ReferenceArchitectures,
		KindTools:         c.Tools,
		KindWebSearch:     c.WebSearch,
	}
}

// DefaultTTLs returns the built-in freshness windows.
func DefaultTTLs() TTLs {
	return TTLs{
		KindGitHub:        6 * time.Hour,
		KindArchitectures: 24 * time.Hour,
		KindTools:         12 * time.Hour,
		KindWebSearch:     4 * time.Hour,
	}
}

// For returns the TTL of kind, falling back to the GitHub window.
func (t TTLs) For(kind string) time.Duration {
	if d, ok := t[kind]; ok && d > 0 {
		return d
	}
	return 6 * time.Hour
}
