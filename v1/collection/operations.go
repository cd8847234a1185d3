package collection

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"slices"
	"sync"
	"time"

	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
	"golang.org/x/sync/errgroup"

	"github.com/Aleph-Alpha/jsondb/v1/entity"
)

// Load replaces the in-memory state with every collection the backend holds.
// Collections are read in parallel, at most Config.LoadConcurrency at a time.
func (s *Store) Load(ctx context.Context) (err error) {
	ctx, done := s.observe(ctx, "load", "")
	defer func() { done(err) }()

	names, err := s.backend.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to list collections: %w", err)
	}

	loaded := make(map[string]*documents, len(names))
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.cfg.LoadConcurrency)
	for _, name := range names {
		g.Go(func() error {
			docs, err := s.backend.Load(gctx, name)
			if err != nil {
				return fmt.Errorf("failed to load collection %s: %w", name, err)
			}
			mu.Lock()
			loaded[name] = newDocuments(docs)
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	s.mu.Lock()
	s.collections = loaded
	s.mu.Unlock()

	for name, docs := range loaded {
		s.reportSize(name, docs)
	}
	s.logger.Info("loaded collections", nil, map[string]interface{}{
		"collections": len(loaded),
	})
	return nil
}

// CreateCollection creates an empty collection and persists it.
func (s *Store) CreateCollection(ctx context.Context, name string) (err error) {
	ctx, done := s.observe(ctx, "create_collection", name)
	defer func() { done(err) }()

	if err := ValidateName(name); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.collections[name]; ok {
		return fmt.Errorf("%w: %s", ErrCollectionExists, name)
	}
	if err := s.backend.Save(ctx, name, []Document{}); err != nil {
		return fmt.Errorf("failed to create collection %s: %w", name, err)
	}
	s.collections[name] = newDocuments(nil)
	s.reportSize(name, s.collections[name])
	return nil
}

// DropCollection removes a collection and its documents.
func (s *Store) DropCollection(ctx context.Context, name string) (err error) {
	ctx, done := s.observe(ctx, "drop_collection", name)
	defer func() { done(err) }()

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.collections[name]; !ok {
		return fmt.Errorf("%w: %s", ErrCollectionNotFound, name)
	}
	if err := s.backend.Drop(ctx, name); err != nil && !errors.Is(err, ErrCollectionNotFound) {
		return fmt.Errorf("failed to drop collection %s: %w", name, err)
	}
	delete(s.collections, name)
	if s.metrics != nil {
		s.metrics.SetDocuments(name, 0)
	}
	return nil
}

// CollectionNames returns the names of all collections in sorted order.
func (s *Store) CollectionNames() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Sorted(maps.Keys(s.collections))
}

// CollectionExists reports whether the store holds a collection called name.
func (s *Store) CollectionExists(name string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.collections[name]
	return ok
}

// Insert adds entity to the collection derived from its type. An empty
// identifier is replaced by a new UUID, which requires entity to be a pointer.
func (s *Store) Insert(ctx context.Context, e any) (err error) {
	name, err := entity.CollectionName(e)
	if err != nil {
		return err
	}
	ctx, done := s.observe(ctx, "insert", name)
	defer func() { done(err) }()

	id, assigned, err := s.ensureID(e)
	if err != nil {
		return err
	}
	if assigned {
		defer func() {
			if err != nil {
				s.clearID(e)
			}
		}()
	}
	body, err := s.codec.Marshal(e)
	if err != nil {
		return fmt.Errorf("failed to encode %s/%s: %w", name, id, err)
	}

	return s.write(ctx, name, func(docs *documents) error {
		if _, ok := docs.bodies[id]; ok {
			return fmt.Errorf("%w: %s/%s", ErrDuplicateID, name, id)
		}
		docs.put(id, body)
		return nil
	})
}

// Save inserts entity or replaces the stored document with the same id.
func (s *Store) Save(ctx context.Context, e any) (err error) {
	name, err := entity.CollectionName(e)
	if err != nil {
		return err
	}
	ctx, done := s.observe(ctx, "save", name)
	defer func() { done(err) }()

	id, assigned, err := s.ensureID(e)
	if err != nil {
		return err
	}
	if assigned {
		defer func() {
			if err != nil {
				s.clearID(e)
			}
		}()
	}
	body, err := s.codec.Marshal(e)
	if err != nil {
		return fmt.Errorf("failed to encode %s/%s: %w", name, id, err)
	}

	return s.write(ctx, name, func(docs *documents) error {
		docs.put(id, body)
		return nil
	})
}

// Remove deletes the stored document with the identifier of entity.
func (s *Store) Remove(ctx context.Context, e any) (err error) {
	name, err := entity.CollectionName(e)
	if err != nil {
		return err
	}
	ctx, done := s.observe(ctx, "remove", name)
	defer func() { done(err) }()

	id, err := s.accessor.GetIdentifier(e)
	if err != nil {
		return err
	}
	if id == "" {
		return ErrMissingID
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.collections[name]
	if !ok {
		return fmt.Errorf("%w: %s", ErrCollectionNotFound, name)
	}
	if _, ok := current.bodies[id]; !ok {
		return fmt.Errorf("%w: %s/%s", ErrNotFound, name, id)
	}
	next := current.clone()
	next.remove(id)
	return s.commit(ctx, name, next)
}

// FindByID decodes the document with the given id into dest, a pointer to
// an entity struct.
func (s *Store) FindByID(ctx context.Context, id string, dest any) (err error) {
	name, err := entity.CollectionName(dest)
	if err != nil {
		return err
	}
	_, done := s.observe(ctx, "find_by_id", name)
	defer func() { done(err) }()

	s.mu.RLock()
	docs, ok := s.collections[name]
	var body []byte
	if ok {
		body, ok = docs.bodies[id]
		if !ok {
			err = fmt.Errorf("%w: %s/%s", ErrNotFound, name, id)
		}
	} else {
		err = fmt.Errorf("%w: %s", ErrCollectionNotFound, name)
	}
	s.mu.RUnlock()
	if err != nil {
		return err
	}

	return s.decodeOne(Document{ID: id, Body: body}, dest)
}

// FindAll decodes every document of the collection derived from dest, a
// pointer to a slice of entities, in insertion order.
func (s *Store) FindAll(ctx context.Context, dest any) error {
	return s.Find(ctx, dest, Query{})
}

// Find decodes the documents selected by q into dest, a pointer to a slice
// of entities. The collection is derived from the element type of dest
// unless q.Collection is set.
func (s *Store) Find(ctx context.Context, dest any, q Query) (err error) {
	name := q.Collection
	if name == "" {
		if name, err = entity.CollectionName(dest); err != nil {
			return err
		}
	}
	ctx, done := s.observe(ctx, "find", name)
	defer func() { done(err) }()

	docs, err := s.query(ctx, name, q)
	if err != nil {
		return err
	}
	return s.decodeMany(docs, dest)
}

// FindDocuments returns the raw documents of collection name selected by q.
func (s *Store) FindDocuments(ctx context.Context, name string, q Query) (docs []Document, err error) {
	ctx, done := s.observe(ctx, "find_documents", name)
	defer func() { done(err) }()

	return s.query(ctx, name, q)
}

// Count returns the number of documents in collection name.
func (s *Store) Count(ctx context.Context, name string) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	docs, ok := s.collections[name]
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrCollectionNotFound, name)
	}
	return len(docs.order), nil
}

// ensureID returns the identifier of e, assigning a new one when empty.
// assigned reports whether e was changed.
func (s *Store) ensureID(e any) (id string, assigned bool, err error) {
	id, err = s.accessor.GetIdentifier(e)
	if err != nil {
		return "", false, err
	}
	if id != "" {
		return id, false, nil
	}
	id = entity.NewID()
	if err := s.accessor.SetIdentifier(e, id); err != nil {
		return "", false, err
	}
	return id, true, nil
}

// clearID undoes an identifier assigned by ensureID for a write that failed.
func (s *Store) clearID(e any) {
	if err := s.accessor.SetIdentifier(e, ""); err != nil {
		s.logger.Warn("failed to reset identifier", err, nil)
	}
}

// write applies change to a copy of collection name and commits the copy.
// The live collection is only replaced once the backend accepted it.
func (s *Store) write(ctx context.Context, name string, change func(*documents) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.collections[name]
	if !ok {
		if !s.cfg.AutoCreateCollections {
			return fmt.Errorf("%w: %s", ErrCollectionNotFound, name)
		}
		current = newDocuments(nil)
	}

	next := current.clone()
	if err := change(next); err != nil {
		return err
	}
	return s.commit(ctx, name, next)
}

// commit persists next and installs it. Callers hold s.mu.
func (s *Store) commit(ctx context.Context, name string, next *documents) error {
	if err := s.backend.Save(ctx, name, next.list()); err != nil {
		s.logger.Error("failed to persist collection", err, map[string]interface{}{
			"collection": name,
		})
		return fmt.Errorf("failed to persist collection %s: %w", name, err)
	}
	s.collections[name] = next
	s.reportSize(name, next)
	return nil
}

func (s *Store) reportSize(name string, docs *documents) {
	if s.metrics != nil {
		s.metrics.SetDocuments(name, len(docs.order))
	}
}

// observe starts a span and returns a func that ends it and records the
// operation outcome.
func (s *Store) observe(ctx context.Context, op, name string) (context.Context, func(error)) {
	start := time.Now()

	var span trace.Span = noop.Span{}
	if s.tracer != nil {
		ctx, span = s.tracer.StartSpan(ctx, "collection."+op)
		if name != "" {
			s.tracer.SetAttributes(span, map[string]interface{}{"collection": name})
		}
	}

	return ctx, func(err error) {
		status := "success"
		if err != nil {
			status = "error"
			if s.tracer != nil {
				s.tracer.RecordErrorOnSpan(span, err)
			}
		}
		if s.metrics != nil {
			s.metrics.IncrementOperations(name, op, status)
			s.metrics.RecordOperationDuration(start, op)
		}
		span.End()
	}
}
