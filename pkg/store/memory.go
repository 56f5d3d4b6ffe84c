package store

import (
	"context"
	"sync"

	"github.com/trig29/Flowchart-Json-Editor/pkg/doc"
)

// MemoryStore is an in-memory document store for development and testing.
type MemoryStore struct {
	mu   sync.RWMutex
	docs map[string]doc.Document
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{docs: make(map[string]doc.Document)}
}

// Load returns a deep copy of the named document, or ErrNotFound.
func (s *MemoryStore) Load(ctx context.Context, name string) (doc.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	d, ok := s.docs[name]
	if !ok {
		return doc.Document{}, ErrNotFound
	}
	return d.Clone(), nil
}

// Save stores a deep copy of the document.
func (s *MemoryStore) Save(ctx context.Context, name string, d doc.Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.docs[name] = d.Clone()
	return nil
}

// Delete removes the named document.
func (s *MemoryStore) Delete(ctx context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.docs, name)
	return nil
}

// List returns all stored document names.
func (s *MemoryStore) List(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	names := make([]string, 0, len(s.docs))
	for name := range s.docs {
		names = append(names, name)
	}
	return names, nil
}

// Close does nothing for the memory store.
func (s *MemoryStore) Close() error { return nil }

// Ensure MemoryStore implements Store.
var _ Store = (*MemoryStore)(nil)
