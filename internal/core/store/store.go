// Package store defines the persistence contract for workflow documents.
// Implementations live under internal/adapters/repository.
package store

import (
	"context"
	"errors"
	"time"

	"github.com/chongliujia/ragJ-platform-sub002/pkg/wire"
)

var (
	ErrWorkflowNotFound = errors.New("workflow not found")
	ErrInvalidID        = errors.New("workflow id must not be empty")
)

// Entry is a listing row: enough to populate a workflow picker without
// loading full documents.
type Entry struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	IsPublic  bool      `json:"is_public"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Store persists wire documents keyed by workflow id. Save is an upsert.
type Store interface {
	Save(ctx context.Context, id string, doc *wire.Document) error
	Get(ctx context.Context, id string) (*wire.Document, error)
	List(ctx context.Context) ([]Entry, error)
	Delete(ctx context.Context, id string) error
}
