// Package store provides persistence backends for flowchart documents.
//
// This package defines the [Store] interface for named-document storage,
// with implementations for different deployments:
//   - memory: In-memory storage for development/testing
//   - file: Directory of JSON files for desktop/CLI usage
//   - redis: Redis-backed storage for the hosted service
//   - mongo: MongoDB-backed storage for the hosted service
//
// All implementations deserialize through the doc package, so every loaded
// document has passed repair and normalization and satisfies the
// structural invariants. Saving never validates beyond serialization -
// callers commit only normalized documents.
//
// # Usage
//
//	// Desktop
//	st, err := store.NewFileStore("")  // Uses ~/.config/flowedit/documents/
//
//	// Hosted
//	st, err := store.NewRedisStore(ctx, store.RedisConfig{Addr: "localhost:6379"})
//
//	d, err := st.Load(ctx, "story")
//	if errors.Is(err, store.ErrNotFound) {
//	    // No such document
//	}
package store

import (
	"context"
	"errors"

	"github.com/trig29/Flowchart-Json-Editor/pkg/doc"
)

// ErrNotFound is returned by [Store.Load] when no document with the given
// name exists.
var ErrNotFound = errors.New("document not found")

// Store is a named-document persistence backend. Implementations must be
// safe for concurrent use.
type Store interface {
	// Load returns the named document, or ErrNotFound.
	Load(ctx context.Context, name string) (doc.Document, error)

	// Save writes the named document, replacing any previous version.
	Save(ctx context.Context, name string, d doc.Document) error

	// Delete removes the named document. Deleting a missing document is
	// not an error.
	Delete(ctx context.Context, name string) error

	// List returns the names of all stored documents in unspecified order.
	List(ctx context.Context) ([]string, error)

	// Close releases any underlying connections.
	Close() error
}
