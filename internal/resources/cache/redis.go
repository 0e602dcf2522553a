package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "rai:cache:"

// DefaultRedisRetention keeps entries well past any TTL so that stale
// payloads remain available while the upstream is down.
const DefaultRedisRetention = 7 * 24 * time.Hour

type redisClient interface {
	Get(ctx context.Context, key string) *goredis.StringCmd
	Set(ctx context.Context, key string, value any, expiration time.Duration) *goredis.StatusCmd
	Del(ctx context.Context, keys ...string) *goredis.IntCmd
	Scan(ctx context.Context, cursor uint64, match string, count int64) *goredis.ScanCmd
}

// RedisStore keeps entries in Redis as JSON strings.
type RedisStore struct {
	rdb       redisClient
	retention time.Duration
	closer    func() error
}

// NewRedisStore connects to addr and verifies the connection with PING.
func NewRedisStore(addr, password string, retention time.Duration) (*RedisStore, error) {
	rdb := goredis.NewClient(&goredis.Options{
		Addr:        addr,
		Password:    password,
		DialTimeout: 5 * time.Second,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	s := newRedisStore(rdb, retention)
	s.closer = rdb.Close
	return s, nil
}

func newRedisStore(rdb redisClient, retention time.Duration) *RedisStore {
	if retention <= 0 {
		retention = DefaultRedisRetention
	}
	return &RedisStore{rdb: rdb, retention: retention}
}

func (r *RedisStore) Name() string { return "redis" }

// Close releases the client created by NewRedisStore.
func (r *RedisStore) Close() error {
	if r.closer == nil {
		return nil
	}
	return r.closer()
}

func (r *RedisStore) Load(ctx context.Context, hash string) (Entry, error) {
	raw, err := r.rdb.Get(ctx, redisKeyPrefix+hash).Bytes()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return Entry{}, ErrNotFound
		}
		return Entry{}, fmt.Errorf("redis get: %w", err)
	}
	var e Entry
	if err := json.Unmarshal(raw, &e); err != nil {
		return Entry{}, fmt.Errorf("decode entry %s: %w", hash, err)
	}
	return e, nil
}

func (r *RedisStore) Save(ctx context.Context, hash string, e Entry) error {
	data, err := json.Marshal(e)
	if err != nil {
		return err
	}
	if err := r.rdb.Set(ctx, redisKeyPrefix+hash, data, r.retention).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

func (r *RedisStore) Delete(ctx context.Context, hash string) error {
	if err := r.rdb.Del(ctx, redisKeyPrefix+hash).Err(); err != nil {
		return fmt.Errorf("redis del: %w", err)
	}
	return nil
}

func (r *RedisStore) Entries(ctx context.Context) ([]Entry, error) {
	var (
		out    []Entry
		cursor uint64
	)
	for {
		keys, next, err := r.rdb.Scan(ctx, cursor, redisKeyPrefix+"*", 100).Result()
		if err != nil {
			return nil, fmt.Errorf("redis scan: %w", err)
		}
		for _, key := range keys {
			e, err := r.Load(ctx, key[len(redisKeyPrefix):])
			if errors.Is(err, ErrNotFound) {
				continue
			}
			if err != nil {
				return nil, err
			}
			out = append(out, e)
		}
		if next == 0 {
			return out, nil
		}
		cursor = next
	}
}
