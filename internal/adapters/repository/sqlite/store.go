// Package sqlite persists workflow documents in SQLite via database/sql
// and the modernc.org driver (no cgo).
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/chongliujia/ragJ-platform-sub002/internal/core/store"
	"github.com/chongliujia/ragJ-platform-sub002/pkg/serialization"
	"github.com/chongliujia/ragJ-platform-sub002/pkg/wire"
)

// Store implements store.Store on a SQLite database. Document payloads
// are msgpack+zstd blobs; name and visibility are denormalized columns
// so List never decodes payloads.
type Store struct {
	db         *sql.DB
	serializer *serialization.Serializer
}

// Open opens (or creates) the database at path and ensures the schema.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	s := &Store{db: db, serializer: serialization.Default()}
	if err := s.createTables(context.Background()); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) createTables(ctx context.Context) error {
	const query = `
		CREATE TABLE IF NOT EXISTS workflows (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			is_public INTEGER NOT NULL DEFAULT 0,
			payload BLOB NOT NULL,
			updated_at INTEGER NOT NULL
		);
	`
	if _, err := s.db.ExecContext(ctx, query); err != nil {
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
		INSERT OR REPLACE INTO workflows (id, name, is_public, payload, updated_at)
		VALUES (?, ?, ?, ?, ?)
	`
	_, err = s.db.ExecContext(ctx, query, id, doc.Name, boolToInt(doc.IsPublic), payload, time.Now().Unix())
	if err != nil {
		return fmt.Errorf("save workflow: %w", err)
	}
	return nil
}

func (s *Store) Get(ctx context.Context, id string) (*wire.Document, error) {
	if id == "" {
		return nil, store.ErrInvalidID
	}
	var payload []byte
	err := s.db.QueryRowContext(ctx, "SELECT payload FROM workflows WHERE id = ?", id).Scan(&payload)
	if err == sql.ErrNoRows {
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
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, name, is_public, updated_at FROM workflows ORDER BY updated_at DESC")
	if err != nil {
		return nil, fmt.Errorf("list workflows: %w", err)
	}
	defer rows.Close()

	var entries []store.Entry
	for rows.Next() {
		var e store.Entry
		var isPublic int
		var updatedAt int64
		if err := rows.Scan(&e.ID, &e.Name, &isPublic, &updatedAt); err != nil {
			return nil, fmt.Errorf("scan workflow row: %w", err)
		}
		e.IsPublic = isPublic != 0
		e.UpdatedAt = time.Unix(updatedAt, 0)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func (s *Store) Delete(ctx context.Context, id string) error {
	if id == "" {
		return store.ErrInvalidID
	}
	result, err := s.db.ExecContext(ctx, "DELETE FROM workflows WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete workflow: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return store.ErrWorkflowNotFound
	}
	return nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
