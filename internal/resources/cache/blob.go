package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"path"
	"strings"

	"rai-review-backend/internal/shared/storage/object"
)

const blobPrefix = "entries/"

// BlobStore persists entries as JSON documents in an object store.
// It backs both the file cache (local) and the S3 cache.
type BlobStore struct {
	name    string
	objects object.Store
}

func NewBlobStore(name string, objects object.Store) *BlobStore {
	return &BlobStore{name: name, objects: objects}
}

func (b *BlobStore) Name() string { return b.name }

func (b *BlobStore) Load(ctx context.Context, hash string) (Entry, error) {
	data, err := b.objects.Get(ctx, blobKey(hash))
	if err != nil {
		if errors.Is(err, object.ErrNotFound) {
			return Entry{}, ErrNotFound
		}
		return Entry{}, err
	}
	var e Entry
	if err := json.Unmarshal(data, &e); err != nil {
		return Entry{}, fmt.Errorf("decode entry %s: %w", hash, err)
	}
	return e, nil
}

func (b *BlobStore) Save(ctx context.Context, hash string, e Entry) error {
	data, err := json.Marshal(e)
	if err != nil {
		return err
	}
	return b.objects.Put(ctx, blobKey(hash), "application/json", data)
}

func (b *BlobStore) Delete(ctx context.Context, hash string) error {
	return b.objects.Delete(ctx, blobKey(hash))
}

func (b *BlobStore) Entries(ctx context.Context) ([]Entry, error) {
	keys, err := b.objects.List(ctx, blobPrefix)
	if err != nil {
		return nil, err
	}
	out := make([]Entry, 0, len(keys))
	for _, key := range keys {
		if !strings.HasSuffix(key, ".json") {
			continue
		}
		hash := strings.TrimSuffix(path.Base(key), ".json")
		e, err := b.Load(ctx, hash)
		if err != nil {
			// removed between List and Load
			if errors.Is(err, ErrNotFound) {
				continue
			}
			return nil, err
		}
		out = append(out, e)
	}
	return out, nil
}

func blobKey(hash string) string {
	return blobPrefix + hash + ".json"
}
