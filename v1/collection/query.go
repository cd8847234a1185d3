package collection

import (
	"context"
	"fmt"
	"reflect"

	"github.com/Aleph-Alpha/jsondb/v1/slice"
)

// Query selects documents from a collection.
type Query struct {
	// Collection overrides the collection derived from the destination type.
	Collection string

	// Filter keeps the documents it returns true for. A nil Filter keeps all.
	Filter func(Document) bool

	// Slice is a start:stop:step descriptor applied to the filtered
	// documents. An empty or unrestricted descriptor keeps all of them.
	Slice string
}

// query filters a snapshot of collection name in insertion order and
// sub-selects the result with q.Slice.
func (s *Store) query(ctx context.Context, name string, q Query) ([]Document, error) {
	s.mu.RLock()
	current, ok := s.collections[name]
	var snapshot []Document
	if ok {
		snapshot = current.list()
	}
	s.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrCollectionNotFound, name)
	}

	filtered := snapshot
	if q.Filter != nil {
		filtered = make([]Document, 0, len(snapshot))
		for _, doc := range snapshot {
			if q.Filter(doc) {
				filtered = append(filtered, doc)
			}
		}
	}

	indexes, err := slice.Resolve(q.Slice, len(filtered))
	if err != nil {
		if s.metrics != nil {
			s.metrics.IncrementSliceRejections(name)
		}
		s.logger.Warn("rejected slice descriptor", err, map[string]interface{}{
			"collection": name,
			"slice":      q.Slice,
		})
		return nil, fmt.Errorf("query on %s: %w", name, err)
	}
	if indexes == nil {
		return filtered, nil
	}

	selected := make([]Document, len(indexes))
	for i, idx := range indexes {
		selected[i] = filtered[idx]
	}
	return selected, nil
}

func (s *Store) decodeOne(doc Document, dest any) error {
	v := reflect.ValueOf(dest)
	if v.Kind() != reflect.Pointer || v.IsNil() || v.Elem().Kind() != reflect.Struct {
		return fmt.Errorf("%w: want pointer to struct, got %T", ErrInvalidDestination, dest)
	}
	return s.decodeInto(doc, dest)
}

// decodeMany replaces the contents of dest, a pointer to a slice of structs
// or of struct pointers, with the decoded docs.
func (s *Store) decodeMany(docs []Document, dest any) error {
	v := reflect.ValueOf(dest)
	if v.Kind() != reflect.Pointer || v.IsNil() || v.Elem().Kind() != reflect.Slice {
		return fmt.Errorf("%w: want pointer to slice, got %T", ErrInvalidDestination, dest)
	}

	sliceValue := v.Elem()
	elemType := sliceValue.Type().Elem()
	isPtr := elemType.Kind() == reflect.Pointer
	structType := elemType
	if isPtr {
		structType = elemType.Elem()
	}
	if structType.Kind() != reflect.Struct {
		return fmt.Errorf("%w: unsupported element type %s", ErrInvalidDestination, elemType)
	}

	out := reflect.MakeSlice(sliceValue.Type(), 0, len(docs))
	for _, doc := range docs {
		item := reflect.New(structType)
		if err := s.decodeInto(doc, item.Interface()); err != nil {
			return err
		}
		if isPtr {
			out = reflect.Append(out, item)
		} else {
			out = reflect.Append(out, item.Elem())
		}
	}
	sliceValue.Set(out)
	return nil
}

// decodeInto unmarshals doc into ptr and restores the identifier, which the
// body may not carry when the id field is excluded from JSON.
func (s *Store) decodeInto(doc Document, ptr any) error {
	if err := s.codec.Unmarshal(doc.Body, ptr); err != nil {
		return fmt.Errorf("failed to decode document %s: %w", doc.ID, err)
	}
	if err := s.accessor.SetIdentifier(ptr, doc.ID); err != nil {
		return fmt.Errorf("failed to set identifier of document %s: %w", doc.ID, err)
	}
	return nil
}
