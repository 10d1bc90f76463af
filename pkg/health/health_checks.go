package health

import (
	"context"
	"time"

	"github.com/dd0wney/bionet/pkg/bionet"
	"github.com/dd0wney/bionet/pkg/netstore"
)

// StoreTimeout bounds a single store check
const StoreTimeout = 5 * time.Second

// NetworkCheck reports the size of the served network. An empty network is
// degraded: every query answers with an empty list.
func NetworkCheck(net *bionet.BioNet) CheckFunc {
	return func(ctx context.Context) Check {
		check := Check{
			Status: StatusHealthy,
			Details: map[string]any{
				"network":    net.Name(),
				"nodes":      net.NodeCount(),
				"edges":      net.EdgeCount(),
				"parameters": len(net.Parameters()),
			},
		}
		if net.NodeCount() == 0 {
			check.Status = StatusDegraded
			check.Message = "network has no nodes"
		}
		return check
	}
}

// StoreCheck lists the store root to confirm the backend is reachable
func StoreCheck(store netstore.Store) CheckFunc {
	return func(ctx context.Context) Check {
		ctx, cancel := context.WithTimeout(ctx, StoreTimeout)
		defer cancel()

		check := Check{
			Details: map[string]any{"driver": string(store.Driver())},
		}
		keys, err := store.List(ctx, "")
		if err != nil {
			check.Status = StatusUnhealthy
			check.Message = err.Error()
			return check
		}
		check.Status = StatusHealthy
		check.Details["networks"] = len(keys)
		return check
	}
}
