package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// IncrementOperations increments the operation counter.
// Example: metrics.IncrementOperations("users", "insert", "success")
func (m *Metrics) IncrementOperations(collection, operation, status string) {
	m.operationsTotal.WithLabelValues(collection, operation, status).Inc()
}

// RecordOperationDuration records the duration (in seconds) of an operation.
// Example: defer metrics.RecordOperationDuration(time.Now(), "find")
func (m *Metrics) RecordOperationDuration(start time.Time, operation string) {
	m.operationDuration.WithLabelValues(operation).Observe(time.Since(start).Seconds())
}

// IncrementSliceRejections increments the malformed slice counter for a collection.
func (m *Metrics) IncrementSliceRejections(collection string) {
	m.sliceRejections.WithLabelValues(collection).Inc()
}

// SetDocuments sets the document gauge for a collection.
func (m *Metrics) SetDocuments(collection string, count int) {
	m.documentsGauge.WithLabelValues(collection).Set(float64(count))
}

// CreateCounter creates a new CounterVec metric and registers it.
func (m *Metrics) CreateCounter(name, help string, labels []string) *prometheus.CounterVec {
	counter := createCounterVec(m.namespace, name, help, labels)
	m.registerer.MustRegister(counter)
	return counter
}

// CreateHistogram creates a new HistogramVec metric and registers it.
func (m *Metrics) CreateHistogram(name, help string, labels []string, buckets []float64) *prometheus.HistogramVec {
	hist := createHistogramVec(m.namespace, name, help, labels, buckets)
	m.registerer.MustRegister(hist)
	return hist
}

// CreateGauge creates a new GaugeVec metric and registers it.
func (m *Metrics) CreateGauge(name, help string, labels []string) *prometheus.GaugeVec {
	gauge := createGaugeVec(m.namespace, name, help, labels)
	m.registerer.MustRegister(gauge)
	return gauge
}

func createCounterVec(namespace, name, help string, labels []string) *prometheus.CounterVec {
	return prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      name,
			Help:      help,
		},
		labels,
	)
}

func createHistogramVec(namespace, name, help string, labels []string, buckets []float64) *prometheus.HistogramVec {
	return prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      name,
			Help:      help,
			Buckets:   buckets,
		},
		labels,
	)
}

func createGaugeVec(namespace, name, help string, labels []string) *prometheus.GaugeVec {
	return prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      name,
			Help:      help,
		},
		labels,
	)
}
