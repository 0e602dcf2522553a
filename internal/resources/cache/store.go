package cache

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"
)

// ErrNotFound is returned by Store.Load when no entry exists.
var ErrNotFound = errors.New("cache entry not found")

// Entry is one persisted fetch result.
type Entry struct {
	Key       string          `json:"key"`
	Payload   json.RawMessage `json:"payload"`
	FetchedAt time.Time       `json:"fetched_at"`
}

// Kind returns the key segment before the first colon, e.g. "github".
func (e Entry) Kind() string {
	return KindOf(e.Key)
}

// KindOf returns the kind segment of a cache key.
func KindOf(key string) string {
	kind, _, _ := strings.Cut(key, ":")
	return kind
}

// Store persists entries by key hash. Save must replace an entry atomically
// so that a concurrent Load never observes a partial write; the last writer wins.
type Store interface {
	Name() string
	Load(ctx context.Context, hash string) (Entry, error)
	Save(ctx context.Context, hash string, e Entry) error
	Delete(ctx context.Context, hash string) error
	Entries(ctx context.Context) ([]Entry, error)
}
