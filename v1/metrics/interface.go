package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// MetricsCollector provides an interface for collecting and exposing store metrics.
//
// This interface is implemented by the concrete *Metrics type.
type MetricsCollector interface {
	// IncrementOperations counts one operation on a collection.
	IncrementOperations(collection, operation, status string)

	// RecordOperationDuration records the time elapsed since start for an operation.
	RecordOperationDuration(start time.Time, operation string)

	// IncrementSliceRejections counts a query rejected for a malformed slice descriptor.
	IncrementSliceRejections(collection string)

	// SetDocuments sets the number of documents held by a collection.
	SetDocuments(collection string, count int)

	// CreateCounter creates a new CounterVec metric and registers it.
	CreateCounter(name, help string, labels []string) *prometheus.CounterVec

	// CreateHistogram creates a new HistogramVec metric and registers it.
	CreateHistogram(name, help string, labels []string, buckets []float64) *prometheus.HistogramVec

	// CreateGauge creates a new GaugeVec metric and registers it.
	CreateGauge(name, help string, labels []string) *prometheus.GaugeVec
}

var _ MetricsCollector = (*Metrics)(nil)
