package collection

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"

	json "github.com/goccy/go-json"
)

// Document is one stored entity in its encoded form.
type Document struct {
	ID   string          `json:"id"`
	Body json.RawMessage `json:"body"`
}

// Backend persists whole collections. Implementations must be safe for
// concurrent use; the store serialises writes to the same collection.
type Backend interface {
	// Load returns the documents of a collection in stored order.
	// It returns ErrCollectionNotFound when the collection does not exist.
	Load(ctx context.Context, name string) ([]Document, error)

	// Save replaces the stored contents of a collection, creating it if needed.
	Save(ctx context.Context, name string, docs []Document) error

	// Drop removes a collection. It returns ErrCollectionNotFound when the
	// collection does not exist.
	Drop(ctx context.Context, name string) error

	// List returns the names of all stored collections.
	List(ctx context.Context) ([]string, error)
}

// ValidateName rejects names that cannot be used as file or object names.
func ValidateName(name string) error {
	if name == "" || strings.ContainsAny(name, `/\`) || name == "." || name == ".." {
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	return nil
}

// MemoryBackend keeps collections in process memory. It backs in-memory
// stores and tests.
type MemoryBackend struct {
	mu          sync.RWMutex
	collections map[string][]Document
}

// NewMemoryBackend creates an empty MemoryBackend.
func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{collections: make(map[string][]Document)}
}

var _ Backend = (*MemoryBackend)(nil)

func (m *MemoryBackend) Load(ctx context.Context, name string) ([]Document, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	docs, ok := m.collections[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrCollectionNotFound, name)
	}
	return cloneDocuments(docs), nil
}

func (m *MemoryBackend) Save(ctx context.Context, name string, docs []Document) error {
	if err := ValidateName(name); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.collections[name] = cloneDocuments(docs)
	return nil
}

func (m *MemoryBackend) Drop(ctx context.Context, name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.collections[name]; !ok {
		return fmt.Errorf("%w: %s", ErrCollectionNotFound, name)
	}
	delete(m.collections, name)
	return nil
}

func (m *MemoryBackend) List(ctx context.Context) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	names := make([]string, 0, len(m.collections))
	for name := range m.collections {
		names = append(names, name)
	}
	slices.Sort(names)
	return names, nil
}

func cloneDocuments(docs []Document) []Document {
	out := make([]Document, len(docs))
	for i, d := range docs {
		out[i] = Document{ID: d.ID, Body: slices.Clone(d.Body)}
	}
	return out
}
