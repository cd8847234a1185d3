package filestore

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"

	"github.com/Aleph-Alpha/jsondb/v1/collection"
)

var _ collection.Backend = (*Backend)(nil)

func (b *Backend) Load(ctx context.Context, name string) ([]collection.Document, error) {
	if err := collection.ValidateName(name); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(b.path(name))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", collection.ErrCollectionNotFound, name)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read collection %s: %w", name, err)
	}

	var docs []collection.Document
	if err := b.codec.Unmarshal(data, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode collection %s: %w", name, err)
	}
	return docs, nil
}

func (b *Backend) Save(ctx context.Context, name string, docs []collection.Document) error {
	if err := collection.ValidateName(name); err != nil {
		return err
	}
	if docs == nil {
		docs = []collection.Document{}
	}

	data, err := b.codec.Marshal(docs)
	if err != nil {
		return fmt.Errorf("failed to encode collection %s: %w", name, err)
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	return b.writeAtomic(b.path(name), data)
}

func (b *Backend) Drop(ctx context.Context, name string) error {
	if err := collection.ValidateName(name); err != nil {
		return err
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	err := os.Remove(b.path(name))
	if errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%w: %s", collection.ErrCollectionNotFound, name)
	}
	if err != nil {
		return fmt.Errorf("failed to remove collection %s: %w", name, err)
	}
	return nil
}

func (b *Backend) List(ctx context.Context) ([]string, error) {
	entries, err := os.ReadDir(b.cfg.Directory)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory %s: %w", b.cfg.Directory, err)
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if name, ok := collectionName(e.Name()); ok {
			names = append(names, name)
		}
	}
	slices.Sort(names)
	return names, nil
}

// writeAtomic writes data to a temporary file in the same directory and
// renames it over path.
func (b *Backend) writeAtomic(path string, data []byte) (err error) {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temporary file: %w", err)
	}
	defer func() {
		if err != nil {
			if rmErr := os.Remove(tmp.Name()); rmErr != nil && !errors.Is(rmErr, fs.ErrNotExist) {
				b.logger.Warn("failed to remove temporary file", rmErr, map[string]interface{}{
					"file": tmp.Name(),
				})
			}
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err = tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to sync %s: %w", path, err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", path, err)
	}
	if err = os.Chmod(tmp.Name(), b.cfg.FileMode); err != nil {
		return fmt.Errorf("failed to set mode on %s: %w", path, err)
	}
	if err = os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("failed to replace %s: %w", path, err)
	}
	return nil
}
