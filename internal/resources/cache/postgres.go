package cache

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
)

// PostgresStore keeps entries in the resource_cache_entries table.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (p *PostgresStore) Name() string { return "postgres" }

func (p *PostgresStore) Load(ctx context.Context, hash string) (Entry, error) {
	var (
		e       Entry
		payload []byte
	)
	err := p.db.QueryRowContext(ctx,
		`SELECT cache_key, payload, fetched_at FROM resource_cache_entries WHERE key_hash = $1`,
		hash,
	).Scan(&e.Key, &payload, &e.FetchedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Entry{}, ErrNotFound
		}
		return Entry{}, fmt.Errorf("select cache entry: %w", err)
	}
	e.Payload = json.RawMessage(payload)
	return e, nil
}

func (p *PostgresStore) Save(ctx context.Context, hash string, e Entry) error {
	_, err := p.db.ExecContext(ctx, `
INSERT INTO resource_cache_entries (key_hash, cache_key, kind, payload, fetched_at, updated_at)
VALUES ($1, $2, $3, $4, $5, now())
ON CONFLICT (key_hash) DO UPDATE
SET cache_key = EXCLUDED.cache_key,
    kind = EXCLUDED.kind,
    payload = EXCLUDED.payload,
    fetched_at = EXCLUDED.fetched_at,
    updated_at = now()`,
		hash, e.Key, e.Kind(), []byte(e.Payload), e.FetchedAt,
	)
	if err != nil {
		return fmt.Errorf("upsert cache entry: %w", err)
	}
	return nil
}

func (p *PostgresStore) Delete(ctx context.Context, hash string) error {
	if _, err := p.db.ExecContext(ctx, `DELETE FROM resource_cache_entries WHERE key_hash = $1`, hash); err != nil {
		return fmt.Errorf("delete cache entry: %w", err)
	}
	return nil
}

func (p *PostgresStore) Entries(ctx context.Context) ([]Entry, error) {
	rows, err := p.db.QueryContext(ctx,
		`SELECT cache_key, payload, fetched_at FROM resource_cache_entries ORDER BY cache_key`)
	if err != nil {
		return nil, fmt.Errorf("list cache entries: %w", err)
	}
	defer rows.Close()
	var out []Entry
	for rows.Next() {
		var (
			e       Entry
			payload []byte
		)
		if err := rows.Scan(&e.Key, &payload, &e.FetchedAt); err != nil {
			return nil, err
		}
		e.Payload = json.RawMessage(payload)
		out = append(out, e)
	}
	return out, rows.Err()
}
