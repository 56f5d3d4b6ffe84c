package store

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/trig29/Flowchart-Json-Editor/pkg/doc"
	"github.com/trig29/Flowchart-Json-Editor/pkg/observability"
)

// FileStore persists documents as JSON files in a directory, one file per
// document. Saves are atomic (write-then-rename) and keep one ".bak"
// backup of the previous version, so a crash mid-save can never destroy
// the only copy of a document.
type FileStore struct {
	mu      sync.RWMutex
	baseDir string
}

// NewFileStore creates a file-based document store.
// If baseDir is empty, defaults to ~/.config/flowedit/documents/
func NewFileStore(baseDir string) (*FileStore, error) {
	if baseDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("get home dir: %w", err)
		}
		baseDir = filepath.Join(home, ".config", "flowedit", "documents")
	}
	if err := os.MkdirAll(baseDir, 0755); err != nil {
		return nil, fmt.Errorf("create document dir: %w", err)
	}
	return &FileStore{baseDir: baseDir}, nil
}

func (s *FileStore) docPath(name string) string {
	return filepath.Join(s.baseDir, name+".json")
}

// Load reads and normalizes the named document.
func (s *FileStore) Load(ctx context.Context, name string) (doc.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	start := time.Now()
	d, err := s.load(name)
	observability.Store().OnLoad(ctx, name, time.Since(start), err)
	return d, err
}

func (s *FileStore) load(name string) (doc.Document, error) {
	data, err := os.ReadFile(s.docPath(name))
	if os.IsNotExist(err) {
		return doc.Document{}, ErrNotFound
	}
	if err != nil {
		return doc.Document{}, fmt.Errorf("read document file: %w", err)
	}
	return doc.UnmarshalDocument(data)
}

// Save writes the document atomically, keeping the previous version as a
// ".bak" sibling.
func (s *FileStore) Save(ctx context.Context, name string, d doc.Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	start := time.Now()
	size, err := s.save(name, d)
	observability.Store().OnSave(ctx, name, size, time.Since(start), err)
	return err
}

func (s *FileStore) save(name string, d doc.Document) (int, error) {
	data, err := doc.MarshalDocument(d)
	if err != nil {
		return 0, fmt.Errorf("marshal document: %w", err)
	}

	path := s.docPath(name)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return 0, fmt.Errorf("write document file: %w", err)
	}

	// Keep the previous version around before replacing it.
	if _, err := os.Stat(path); err == nil {
		if err := os.Rename(path, path+".bak"); err != nil {
			os.Remove(tmp)
			return 0, fmt.Errorf("backup document file: %w", err)
		}
	}

	if err := os.Rename(tmp, path); err != nil {
		return 0, fmt.Errorf("replace document file: %w", err)
	}
	return len(data), nil
}

// Delete removes the named document and its backup.
func (s *FileStore) Delete(ctx context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	path := s.docPath(name)
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove document file: %w", err)
	}
	_ = os.Remove(path + ".bak")
	return nil
}

// List returns all document names in the directory.
func (s *FileStore) List(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		return nil, fmt.Errorf("read document dir: %w", err)
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		names = append(names, strings.TrimSuffix(e.Name(), ".json"))
	}
	return names, nil
}

// Close does nothing for the file store.
func (s *FileStore) Close() error { return nil }

// Ensure FileStore implements Store.
var _ Store = (*FileStore)(nil)
