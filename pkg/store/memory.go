package store

import (
	"cmp"
	"context"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/annotext/spanviz/pkg/annotation"
)

// MemoryStore is an in-memory document store.
// Safe for concurrent use. All data is lost when the process exits.
type MemoryStore struct {
	mu      sync.RWMutex
	records map[string]DocumentRecord
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{records: make(map[string]DocumentRecord)}
}

// Create stores a new document under a generated UUID.
func (s *MemoryStore) Create(ctx context.Context, name string, doc annotation.Document) (DocumentRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC()
	rec := DocumentRecord{
		ID:        uuid.NewString(),
		Name:      name,
		Document:  doc,
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.records[rec.ID] = rec
	return rec, nil
}

// Get retrieves a document by ID.
func (s *MemoryStore) Get(ctx context.Context, id string) (DocumentRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.records[id]
	if !ok {
		return DocumentRecord{}, ErrNotFound
	}
	return rec, nil
}

// List returns all documents, newest first. Records created in the same
// instant are ordered by ID so the result is stable.
func (s *MemoryStore) List(ctx context.Context) ([]DocumentRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	recs := make([]DocumentRecord, 0, len(s.records))
	for _, rec := range s.records {
		recs = append(recs, rec)
	}
	slices.SortFunc(recs, func(a, b DocumentRecord) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
	return recs, nil
}

// Update replaces a document's name and content.
func (s *MemoryStore) Update(ctx context.Context, id, name string, doc annotation.Document) (DocumentRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.records[id]
	if !ok {
		return DocumentRecord{}, ErrNotFound
	}
	rec.Name = name
	rec.Document = doc
	rec.UpdatedAt = time.Now().UTC()
	s.records[id] = rec
	return rec, nil
}

// Delete removes a document.
func (s *MemoryStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.records[id]; !ok {
		return ErrNotFound
	}
	delete(s.records, id)
	return nil
}

// Close does nothing for the in-memory store.
func (s *MemoryStore) Close(ctx context.Context) error { return nil }

var _ Store = (*MemoryStore)(nil)
