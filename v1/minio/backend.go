package minio

import (
	"bytes"
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/Aleph-Alpha/jsondb/v1/codec"
	"github.com/Aleph-Alpha/jsondb/v1/collection"
)

var _ collection.Backend = (*Minio)(nil)

func (m *Minio) objectKey(name string) string {
	return m.cfg.Prefix + name + defaultObjectExtension
}

// collectionName returns the collection stored under key, skipping objects
// in nested prefixes and non-JSON objects.
func (m *Minio) collectionName(key string) (string, bool) {
	rest, ok := strings.CutPrefix(key, m.cfg.Prefix)
	if !ok || strings.Contains(rest, "/") {
		return "", false
	}
	name, ok := strings.CutSuffix(rest, defaultObjectExtension)
	return name, ok && name != ""
}

func (m *Minio) Load(ctx context.Context, name string) ([]collection.Document, error) {
	if err := collection.ValidateName(name); err != nil {
		return nil, err
	}

	data, err := m.Get(ctx, m.objectKey(name))
	if err != nil {
		return nil, TranslateError(err, name)
	}

	var docs []collection.Document
	if err := codec.Default().Unmarshal(data, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode collection %s: %w", name, err)
	}
	return docs, nil
}

func (m *Minio) Save(ctx context.Context, name string, docs []collection.Document) error {
	if err := collection.ValidateName(name); err != nil {
		return err
	}
	if docs == nil {
		docs = []collection.Document{}
	}

	data, err := codec.Default().Marshal(docs)
	if err != nil {
		return fmt.Errorf("failed to encode collection %s: %w", name, err)
	}
	if _, err := m.Put(ctx, m.objectKey(name), bytes.NewReader(data), int64(len(data))); err != nil {
		return TranslateError(err, name)
	}
	return nil
}

// Drop removes the collection object. S3 deletes are idempotent, so the
// object is checked first to report missing collections.
func (m *Minio) Drop(ctx context.Context, name string) error {
	if err := collection.ValidateName(name); err != nil {
		return err
	}

	key := m.objectKey(name)
	if _, err := m.Stat(ctx, key); err != nil {
		return TranslateError(err, name)
	}
	if err := m.Delete(ctx, key); err != nil {
		return TranslateError(err, name)
	}
	return nil
}

func (m *Minio) List(ctx context.Context) ([]string, error) {
	keys, err := m.ListPrefix(ctx, m.cfg.Prefix)
	if err != nil {
		return nil, err
	}

	var names []string
	for _, key := range keys {
		if name, ok := m.collectionName(key); ok {
			names = append(names, name)
		}
	}
	slices.Sort(names)
	return names, nil
}
