package collection

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/trace"
)

// Metrics is the subset of metrics.MetricsCollector the store reports to.
type Metrics interface {
	IncrementOperations(collection, operation, status string)
	RecordOperationDuration(start time.Time, operation string)
	IncrementSliceRejections(collection string)
	SetDocuments(collection string, count int)
}

// Tracer is the subset of *tracer.Tracer the store creates spans with.
type Tracer interface {
	StartSpan(ctx context.Context, name string) (context.Context, trace.Span)
	RecordErrorOnSpan(span trace.Span, err error)
	SetAttributes(span trace.Span, attrs map[string]interface{})
}

// Client is the document store API consumed by applications.
//
// This interface is implemented by the concrete *Store type.
type Client interface {
	Load(ctx context.Context) error
	CreateCollection(ctx context.Context, name string) error
	DropCollection(ctx context.Context, name string) error
	CollectionNames() []string
	CollectionExists(name string) bool

	Insert(ctx context.Context, entity any) error
	Save(ctx context.Context, entity any) error
	Remove(ctx context.Context, entity any) error

	FindByID(ctx context.Context, id string, dest any) error
	FindAll(ctx context.Context, dest any) error
	Find(ctx context.Context, dest any, q Query) error
	FindDocuments(ctx context.Context, name string, q Query) ([]Document, error)
	Count(ctx context.Context, name string) (int, error)
}

var _ Client = (*Store)(nil)
