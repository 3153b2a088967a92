// Package memory provides the in-memory workflow store used by tests and
// single-process editor sessions.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/chongliujia/ragJ-platform-sub002/internal/core/store"
	"github.com/chongliujia/ragJ-platform-sub002/pkg/serialization"
	"github.com/chongliujia/ragJ-platform-sub002/pkg/wire"
)

type record struct {
	payload   []byte
	name      string
	isPublic  bool
	updatedAt time.Time
}

// Store keeps serialized documents in a map. Documents are stored as
// encoded payloads, not shared pointers, so callers can never mutate a
// saved workflow behind the store's back.
type Store struct {
	mu         sync.RWMutex
	serializer *serialization.Serializer
	workflows  map[string]record
}

// New creates an empty in-memory store.
func New() *Store {
	return &Store{
		serializer: serialization.New(serialization.Config{Codec: serialization.JSONCodec{}}),
		workflows:  make(map[string]record),
	}
}

func (s *Store) Save(ctx context.Context, id string, doc *wire.Document) error {
	if id == "" {
		return store.ErrInvalidID
	}
	payload, err := s.serializer.Serialize(doc)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.workflows[id] = record{
		payload:   payload,
		name:      doc.Name,
		isPublic:  doc.IsPublic,
		updatedAt: time.Now(),
	}
	return nil
}

func (s *Store) Get(ctx context.Context, id string) (*wire.Document, error) {
	if id == "" {
		return nil, store.ErrInvalidID
	}
	s.mu.RLock()
	rec, ok := s.workflows[id]
	s.mu.RUnlock()
	if !ok {
		return nil, store.ErrWorkflowNotFound
	}
	var doc wire.Document
	if err := s.serializer.Deserialize(rec.payload, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

func (s *Store) List(ctx context.Context) ([]store.Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	entries := make([]store.Entry, 0, len(s.workflows))
	for id, rec := range s.workflows {
		entries = append(entries, store.Entry{
			ID:        id,
			Name:      rec.name,
			IsPublic:  rec.isPublic,
			UpdatedAt: rec.updatedAt,
		})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].ID < entries[j].ID })
	return entries, nil
}

func (s *Store) Delete(ctx context.Context, id string) error {
	if id == "" {
		return store.ErrInvalidID
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.workflows[id]; !ok {
		return store.ErrWorkflowNotFound
	}
	delete(s.workflows, id)
	return nil
}
