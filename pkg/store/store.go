// Package store persists annotation documents for the server.
//
// The Store interface has two implementations:
//   - MemoryStore: in-memory map for single-instance servers and tests
//   - MongoStore: MongoDB for production deployments
//
// Records carry server-generated UUIDs and timestamps; the embedded
// document is stored as-is, including annotations the layout engine
// would exclude. Validation happens at render time, not at write time,
// so annotation tools can save work in progress.
//
// # Usage
//
//	s := store.NewMemoryStore()
//	rec, err := s.Create(ctx, "maintenance report", doc)
//	if err != nil {
//	    return err
//	}
//
//	rec, err = s.Get(ctx, rec.ID)
//	if errors.Is(err, store.ErrNotFound) {
//	    // document was deleted
//	}
package store

import (
	"context"
	"errors"
	"time"

	"github.com/annotext/spanviz/pkg/annotation"
)

// ErrNotFound is returned when a document does not exist.
var ErrNotFound = errors.New("not found")

// IsNotFound reports whether err means the document does not exist.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// DocumentRecord is a stored document with its server-side metadata.
type DocumentRecord struct {
	ID        string              `json:"id" bson:"_id"`
	Name      string              `json:"name" bson:"name"`
	Document  annotation.Document `json:"document" bson:"document"`
	CreatedAt time.Time           `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time           `json:"updated_at" bson:"updated_at"`
}

// Store is the interface for document storage backends.
type Store interface {
	// Create stores a new document under a generated ID and returns the
	// full record.
	Create(ctx context.Context, name string, doc annotation.Document) (DocumentRecord, error)

	// Get retrieves a document by ID.
	// Returns ErrNotFound if the document does not exist.
	Get(ctx context.Context, id string) (DocumentRecord, error)

	// List returns all documents, newest first.
	List(ctx context.Context) ([]DocumentRecord, error)

	// Update replaces a document's name and content, keeping its ID and
	// creation time. Returns ErrNotFound if the document does not exist.
	Update(ctx context.Context, id, name string, doc annotation.Document) (DocumentRecord, error)

	// Delete removes a document.
	// Returns ErrNotFound if the document does not exist.
	Delete(ctx context.Context, id string) error

	// Close releases resources held by the backend.
	Close(ctx context.Context) error
}
