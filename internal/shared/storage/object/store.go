package object

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Get when no object exists for the key.
var ErrNotFound = errors.New("object not found")

// Store saves and retrieves opaque blobs addressed by slash-separated keys.
// Put must replace an existing object atomically: a concurrent Get sees
// either the old or the new bytes, never a partial write.
type Store interface {
	Put(ctx context.Context, key string, contentType string, data []byte) error
	Get(ctx context.Context, key string) ([]byte, error)
	Delete(ctx context.Context, key string) error
	List(ctx context.Context, prefix string) ([]string, error)
}
