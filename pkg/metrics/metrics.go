package metrics

import (
	"fmt"
	"io"
	"time"

	"github.com/prometheus/common/expfmt"
)

// RecordOperation counts a construction or persistence operation
func (r *Registry) RecordOperation(operation string, err error) {
	status := StatusSuccess
	if err != nil {
		status = StatusError
	}
	r.OperationsTotal.WithLabelValues(operation, status).Inc()
}

// RecordPersistence records a save or load with its duration and outcome
func (r *Registry) RecordPersistence(operation string, duration time.Duration, err error) {
	r.RecordOperation(operation, err)
	r.PersistenceDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

// RecordQuery records a query execution and the size of its result
func (r *Registry) RecordQuery(query string, duration time.Duration, results int) {
	r.QueryDuration.WithLabelValues(query).Observe(duration.Seconds())
	r.QueryResultsTotal.WithLabelValues(query).Add(float64(results))
}

// UpdateNetworkSize sets the size gauges
func (r *Registry) UpdateNetworkSize(nodes, edges, parameters int) {
	r.NodesTotal.Set(float64(nodes))
	r.EdgesTotal.Set(float64(edges))
	r.ParametersTotal.Set(float64(parameters))
}

// WriteText renders every metric in the Prometheus text exposition format
func (r *Registry) WriteText(w io.Writer) error {
	families, err := r.registry.Gather()
	if err != nil {
		return fmt.Errorf("failed to gather metrics: %w", err)
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return fmt.Errorf("failed to write metric family %s: %w", mf.GetName(), err)
		}
	}
	return nil
}
