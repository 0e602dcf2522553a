package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
)

// RetryPolicy bounds how often a cache fetch is attempted before the cache
// falls back to stale data.
type RetryPolicy struct {
	Attempts int
	Backoff  time.Duration
}

func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{Attempts: 2, Backoff: 200 * time.Millisecond}
}

func (c *Cache) fetchWithRetry(ctx context.Context, fetch FetchFunc) (json.RawMessage, error) {
	attempts := c.retry.Attempts
	if attempts < 1 {
		attempts = 1
	}
	var lastErr error
	for i := 0; i < attempts; i++ {
		if i > 0 && c.retry.Backoff > 0 {
			timer := time.NewTimer(c.retry.Backoff * time.Duration(i))
			select {
			case <-ctx.Done():
				timer.Stop()
				return nil, ctx.Err()
			case <-timer.C:
			}
		}
		v, err := safeFetch(ctx, fetch)
		if err == nil {
			payload, err := json.Marshal(v)
			if err != nil {
				return nil, fmt.Errorf("encode payload: %w", err)
			}
			return payload, nil
		}
		lastErr = err
		if ctx.Err() != nil {
			break
		}
	}
	return nil, lastErr
}

func safeFetch(ctx context.Context, fetch FetchFunc) (v any, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("fetch panicked: %v", r)
		}
	}()
	return fetch(ctx)
}
