package graphql

import (
	"testing"

	"github.com/graphql-go/graphql"
)

// Harness runs queries and fails the test on GraphQL errors
type Harness struct {
	t      *testing.T
	schema graphql.Schema
}

func (h *Harness) run(query string, variables map[string]any) map[string]any {
	h.t.Helper()
	var result *graphql.Result
	if variables != nil {
		result = ExecuteQueryWithVariables(query, h.schema, variables)
	} else {
		result = ExecuteQuery(query, h.schema)
	}
	if result.HasErrors() {
		h.t.Fatalf("query failed: %v", result.Errors)
	}
	data, ok := result.Data.(map[string]any)
	if !ok {
		h.t.Fatalf("unexpected result data %T", result.Data)
	}
	return data
}
