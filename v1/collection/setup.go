package collection

import (
	"sync"

	json "github.com/goccy/go-json"

	"github.com/Aleph-Alpha/jsondb/v1/codec"
	"github.com/Aleph-Alpha/jsondb/v1/entity"
)

// Logger defines the logging methods the store needs.
//
//go:generate mockgen -source=setup.go -destination=mock_logger.go -package=collection
type Logger interface {
	Info(msg string, err error, fields ...map[string]interface{})
	Debug(msg string, err error, fields ...map[string]interface{})
	Warn(msg string, err error, fields ...map[string]interface{})
	Error(msg string, err error, fields ...map[string]interface{})
	Fatal(msg string, err error, fields ...map[string]interface{})
}

// Store holds collections of JSON documents in memory and writes every
// change through to a Backend.
//
// Reads run concurrently; writes are serialised by a store-wide lock that
// is held until the backend has persisted the change, so a failed write
// leaves both the store and the backend unchanged.
type Store struct {
	cfg      Config
	backend  Backend
	logger   Logger
	codec    codec.Config
	accessor entity.IdentifierAccessor
	metrics  Metrics
	tracer   Tracer

	mu          sync.RWMutex
	collections map[string]*documents
}

// Option configures optional Store collaborators.
type Option func(*Store)

// WithCodec sets the serialization settings used for document bodies.
func WithCodec(c codec.Config) Option {
	return func(s *Store) { s.codec = c }
}

// WithAccessor replaces the tag based identifier accessor.
func WithAccessor(a entity.IdentifierAccessor) Option {
	return func(s *Store) { s.accessor = a }
}

// WithMetrics reports operation counts and durations to m.
func WithMetrics(m Metrics) Option {
	return func(s *Store) { s.metrics = m }
}

// WithTracer wraps every operation in a span.
func WithTracer(t Tracer) Option {
	return func(s *Store) { s.tracer = t }
}

// NewStore creates an empty store over backend. Call Load to read the
// collections the backend already holds.
//
// Example:
//
//	backend, err := filestore.New(filestore.Config{Directory: "data"}, log)
//	if err != nil {
//	    return err
//	}
//	store := collection.NewStore(collection.Config{}, backend, log, collection.WithMetrics(m))
//	if err := store.Load(ctx); err != nil {
//	    return err
//	}
func NewStore(cfg Config, backend Backend, logger Logger, opts ...Option) *Store {
	if cfg.LoadConcurrency <= 0 {
		cfg.LoadConcurrency = DefaultLoadConcurrency
	}

	s := &Store{
		cfg:         cfg,
		backend:     backend,
		logger:      logger,
		codec:       codec.Default(),
		accessor:    entity.NewTagAccessor(),
		collections: make(map[string]*documents),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// documents is one collection: bodies keyed by id plus insertion order.
type documents struct {
	order  []string
	bodies map[string]json.RawMessage
}

func newDocuments(docs []Document) *documents {
	d := &documents{
		order:  make([]string, 0, len(docs)),
		bodies: make(map[string]json.RawMessage, len(docs)),
	}
	for _, doc := range docs {
		if _, ok := d.bodies[doc.ID]; !ok {
			d.order = append(d.order, doc.ID)
		}
		d.bodies[doc.ID] = doc.Body
	}
	return d
}

func (d *documents) list() []Document {
	out := make([]Document, len(d.order))
	for i, id := range d.order {
		out[i] = Document{ID: id, Body: d.bodies[id]}
	}
	return out
}

func (d *documents) clone() *documents {
	return newDocuments(d.list())
}

func (d *documents) put(id string, body json.RawMessage) {
	if _, ok := d.bodies[id]; !ok {
		d.order = append(d.order, id)
	}
	d.bodies[id] = body
}

func (d *documents) remove(id string) {
	delete(d.bodies, id)
	for i, existing := range d.order {
		if existing == id {
			d.order = append(d.order[:i], d.order[i+1:]...)
			return
		}
	}
}
