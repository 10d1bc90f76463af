package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// Registry holds all metrics for a BioNet process
type Registry struct {
	// Network size
	NodesTotal      prometheus.Gauge
	EdgesTotal      prometheus.Gauge
	ParametersTotal prometheus.Gauge

	// Construction and persistence operations
	OperationsTotal     *prometheus.CounterVec
	PersistenceDuration *prometheus.HistogramVec

	// Query engine
	QueryDuration     *prometheus.HistogramVec
	QueryResultsTotal *prometheus.CounterVec

	registry *prometheus.Registry
}

// Status label values
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

var (
	defaultRegistry *Registry
	once            sync.Once
)

// DefaultRegistry returns the process-wide metrics registry
func DefaultRegistry() *Registry {
	once.Do(func() {
		defaultRegistry = NewRegistry()
	})
	return defaultRegistry
}

// NewRegistry creates a new metrics registry with all metrics initialized
func NewRegistry() *Registry {
	r := &Registry{
		registry: prometheus.NewRegistry(),
	}

	r.initNetworkMetrics()
	r.initQueryMetrics()

	return r
}

// GetPrometheusRegistry returns the underlying Prometheus registry
func (r *Registry) GetPrometheusRegistry() *prometheus.Registry {
	return r.registry
}
