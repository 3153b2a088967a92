// Package postgres persists workflow documents in PostgreSQL via pgx.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/chongliujia/ragJ-platform-sub002/internal/core/store"
	"github.com/chongliujia/ragJ-platform-sub002/pkg/serialization"
	"github.com/chongliujia/ragJ-platform-sub002/pkg/wire"
)

// Store implements store.Store on a pgx connection pool.
type Store struct {
	pool       *pgxpool.Pool
	serializer *serialization.Serializer
}

// New creates a store backed by the given pool.
func New(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool, serializer: serialization.Default()}
}

// CreateTables ensures the workflows table exists.
func (s *Store) CreateTables(ctx context.Context) error {
	const query = `
		CREATE TABLE IF NOT EXISTS workflows (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			is_public BOOLEAN NOT NULL DEFAULT FALSE,
			payload BYTEA NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)
	`
	if _, err := s.pool.Exec(ctx, query); err != nil {
		return fmt.Errorf("create tables: %w", err)
	}
	return nil
}

func (s *Store) Save(ctx context.Context, id string, doc *wire.Document) error {
	if id == "" {
		return store.ErrInvalidID
	}
	payload, err := s.serializer.Serialize(doc)
	if err != nil {
		return fmt.Errorf("serialize workflow: %w", err)
	}
	const query = `
		INSERT INTO workflows (id, name, is_public, payload, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			is_public = EXCLUDED.is_public,
			payload = EXCLUDED.payload,
			updated_at = EXCLUDED.updated_at
	`
	if _, err := s.pool.Exec(ctx, query, id, doc.Name, doc.IsPublic, payload, time.Now()); err != nil {
		return fmt.Errorf("save workflow: %w", err)
	}
	return nil
}

func (s *Store) Get(ctx context.Context, id string) (*wire.Document, error) {
	if id == "" {
		return nil, store.ErrInvalidID
	}
	var payload []byte
	err := s.pool.QueryRow(ctx, "SELECT payload FROM workflows WHERE id = $1", id).Scan(&payload)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, store.ErrWorkflowNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load workflow: %w", err)
	}
	var doc wire.Document
	if err := s.serializer.Deserialize(payload, &doc); err != nil {
		return nil, fmt.Errorf("deserialize workflow: %w", err)
	}
	return &doc, nil
}

func (s *Store) List(ctx context.Context) ([]store.Entry, error) {
	rows, err := s.pool.Query(ctx,
		"SELECT id, name, is_public, updated_at FROM workflows ORDER BY updated_at DESC")
	if err != nil {
		return nil, fmt.Errorf("list workflows: %w", err)
	}
	defer rows.Close()

	var entries []store.Entry
	for rows.Next() {
		var e store.Entry
		if err := rows.Scan(&e.ID, &e.Name, &e.IsPublic, &e.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan workflow row: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func (s *Store) Delete(ctx context.Context, id string) error {
	if id == "" {
		return store.ErrInvalidID
	}
	tag, err := s.pool.Exec(ctx, "DELETE FROM workflows WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("delete workflow: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return store.ErrWorkflowNotFound
	}
	return nil
}
