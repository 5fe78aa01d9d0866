// Package cache provides content-addressed caching for pipeline results.
//
// The package defines a small Cache interface with implementations for
// different deployment shapes:
//   - FileCache: hash-sharded JSON files, used by the CLI
//   - RedisCache: shared cache for multi-instance server deployments
//   - NullCache: disables caching entirely
//
// Cache keys are derived through a Keyer so every entry point (CLI, API)
// produces identical keys for identical work. DefaultKeyer hashes key
// components with SHA-256; ScopedKeyer prefixes keys when the backing
// store is shared with other applications.
//
// # Usage
//
//	c, err := cache.NewFileCache(dir)
//	if err != nil {
//	    return err
//	}
//	defer c.Close()
//
//	keyer := cache.NewDefaultKeyer()
//	key := keyer.LayoutKey(docHash, cache.LayoutKeyOpts{Width: 800})
//	if data, hit, err := c.Get(ctx, key); err == nil && hit {
//	    // reuse the cached layout
//	}
package cache

import (
	"context"
	"fmt"
	"time"
)

// TTLs for the cached value kinds. Layouts and artifacts are addressed by
// content hash, so entries cannot go stale and the TTL only bounds growth.
// Documents are addressed by store ID and can be updated, so they expire
// quickly.
const (
	TTLDocument = time.Hour
	TTLLayout   = 7 * 24 * time.Hour
	TTLArtifact = 7 * 24 * time.Hour
)

// Cache is the interface for cache storage backends.
type Cache interface {
	// Get retrieves a value. The boolean reports whether the key was
	// present and unexpired.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value with a TTL. A non-positive ttl stores the value
	// without expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases resources held by the backend.
	Close() error
}

// LayoutKeyOpts are the inputs that change layout geometry.
// Constants carries the serialized layout constants so runs with
// overridden constants are cached separately.
type LayoutKeyOpts struct {
	Width     float64 `json:"width"`
	Constants string  `json:"constants,omitempty"`
}

// ArtifactKeyOpts are the inputs that change rendered output.
type ArtifactKeyOpts struct {
	Format      string  `json:"format"`
	Viz         string  `json:"viz,omitempty"`
	Theme       string  `json:"theme,omitempty"`
	Interactive bool    `json:"interactive,omitempty"`
	Detailed    bool    `json:"detailed,omitempty"`
	Scale       float64 `json:"scale,omitempty"`
}

// Keyer generates cache keys. Implementations must be deterministic so
// identical inputs map to identical keys across processes.
type Keyer interface {
	// DocumentKey generates a key for a stored document, addressed by its
	// store ID.
	DocumentKey(id string) string

	// LayoutKey generates a key for a computed layout, addressed by the
	// document content hash and the layout options.
	LayoutKey(docHash string, opts LayoutKeyOpts) string

	// ArtifactKey generates a key for a rendered artifact, addressed by
	// the layout content hash and the render options.
	ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string
}

// DefaultKeyer generates keys by hashing key components with SHA-256.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// DocumentKey generates a key for store document caching.
// Store IDs are already unique, so the key is the plain ID under a
// "document" prefix.
func (k *DefaultKeyer) DocumentKey(id string) string {
	return fmt.Sprintf("document:%s", id)
}

// LayoutKey generates a key for layout caching.
func (k *DefaultKeyer) LayoutKey(docHash string, opts LayoutKeyOpts) string {
	return hashKey("layout", docHash, opts)
}

// ArtifactKey generates a key for artifact caching.
func (k *DefaultKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", layoutHash, opts)
}
