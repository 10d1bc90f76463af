package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

func (r *Registry) initNetworkMetrics() {
	r.NodesTotal = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "bionet_nodes_total",
			Help: "Number of nodes (entities and interactions) in the network",
		},
	)

	r.EdgesTotal = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "bionet_edges_total",
			Help: "Number of edges in the network",
		},
	)

	r.ParametersTotal = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "bionet_parameters_total",
			Help: "Number of named parameters attached to the network",
		},
	)

	r.OperationsTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "bionet_operations_total",
			Help: "Construction and persistence operations by outcome",
		},
		[]string{"operation", "status"},
	)

	r.PersistenceDuration = promauto.With(r.registry).NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "bionet_persistence_duration_seconds",
			Help:    "Save and load duration in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1.0},
		},
		[]string{"operation"},
	)
}
