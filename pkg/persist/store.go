// Package persist is the file-backed document store the engine persists
// through. It is the concrete form of the "external collaborator"
// boundary: the engine only sees the [Store] interface and a debounced
// save call; everything filesystem-shaped lives here.
package persist

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/mindloom/mindloom/pkg/graphdoc"
)

// Store persists named mind-map documents.
type Store interface {
	// Save writes the document under the given name.
	Save(ctx context.Context, name string, doc graphdoc.Document) error
	// Load reads the named document. ok=false means it does not exist.
	Load(ctx context.Context, name string) (doc graphdoc.Document, ok bool, err error)
	// Delete removes the named document. Deleting a missing document is
	// not an error.
	Delete(ctx context.Context, name string) error
	// List returns the stored document names in sorted order.
	List(ctx context.Context) ([]string, error)
}

// =============================================================================
// FileStore
// =============================================================================

// FileStore stores each document as a JSON file in a base directory.
type FileStore struct {
	mu      sync.RWMutex
	baseDir string
}

// NewFileStore creates a file-based document store. If baseDir is empty,
// it defaults to ~/.config/mindloom/maps/.
func NewFileStore(baseDir string) (*FileStore, error) {
	if baseDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("get home dir: %w", err)
		}
		baseDir = filepath.Join(home, ".config", "mindloom", "maps")
	}
	if err := os.MkdirAll(baseDir, 0700); err != nil {
		return nil, fmt.Errorf("create map dir: %w", err)
	}
	return &FileStore{baseDir: baseDir}, nil
}

func (s *FileStore) docPath(name string) string {
	return filepath.Join(s.baseDir, name+".json")
}

// Save writes the document atomically: into a temp file first, then
// renamed over the target, so a crash mid-write never truncates the
// last good document.
func (s *FileStore) Save(ctx context.Context, name string, doc graphdoc.Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := graphdoc.Marshal(doc)
	if err != nil {
		return fmt.Errorf("marshal document: %w", err)
	}

	path := s.docPath(name)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0600); err != nil {
		return fmt.Errorf("write document file: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("replace document file: %w", err)
	}
	return nil
}

// Load reads the named document.
func (s *FileStore) Load(ctx context.Context, name string) (graphdoc.Document, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, err := os.ReadFile(s.docPath(name))
	if err != nil {
		if os.IsNotExist(err) {
			return graphdoc.Document{}, false, nil
		}
		return graphdoc.Document{}, false, fmt.Errorf("read document file: %w", err)
	}

	doc, err := graphdoc.Unmarshal(data)
	if err != nil {
		return graphdoc.Document{}, false, fmt.Errorf("parse document: %w", err)
	}
	return doc, true, nil
}

// Delete removes the named document.
func (s *FileStore) Delete(ctx context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.docPath(name)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove document file: %w", err)
	}
	return nil
}

// List returns stored document names in sorted order.
func (s *FileStore) List(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		return nil, fmt.Errorf("read map dir: %w", err)
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".json" {
			continue
		}
		names = append(names, strings.TrimSuffix(entry.Name(), ".json"))
	}
	return names, nil
}

// Path returns the file path a document name maps to.
func (s *FileStore) Path(name string) string { return s.docPath(name) }

var _ Store = (*FileStore)(nil)

// =============================================================================
// NullStore
// =============================================================================

// NullStore discards saves and never finds documents. Useful in tests
// and for ephemeral sessions.
type NullStore struct{}

func (NullStore) Save(context.Context, string, graphdoc.Document) error { return nil }
func (NullStore) Load(context.Context, string) (graphdoc.Document, bool, error) {
	return graphdoc.Document{}, false, nil
}
func (NullStore) Delete(context.Context, string) error   { return nil }
func (NullStore) List(context.Context) ([]string, error) { return nil, nil }

var _ Store = NullStore{}
