package graphql

import (
	"fmt"

	"github.com/graphql-go/graphql"

	"github.com/dd0wney/bionet/pkg/bionet"
)

// GenerateSchema builds a read-only schema over net. Resolvers read the
// network on every request, so the schema reflects later construction calls
// as long as they do not run concurrently with queries.
func GenerateSchema(net *bionet.BioNet) (graphql.Schema, error) {
	r := &resolver{net: net}

	var nodeType, edgeType *graphql.Object
	nodeType = graphql.NewObject(graphql.ObjectConfig{
		Name: "Node",
		Fields: graphql.FieldsThunk(func() graphql.Fields {
			return graphql.Fields{
				"id":          &graphql.Field{Type: graphql.NewNonNull(graphql.ID), Resolve: nodeField(func(n bionet.Node) any { return formatID(n.ID) })},
				"name":        &graphql.Field{Type: graphql.NewNonNull(graphql.String), Resolve: nodeField(func(n bionet.Node) any { return n.Name })},
				"type":        &graphql.Field{Type: graphql.NewNonNull(nodeTypeEnum), Resolve: nodeField(func(n bionet.Node) any { return n.Type })},
				"active":      &graphql.Field{Type: graphql.Boolean, Resolve: nodeField(func(n bionet.Node) any { return n.Active })},
				"description": &graphql.Field{Type: graphql.String, Resolve: nodeField(func(n bionet.Node) any { return n.Description })},
				"inputLinks":  &graphql.Field{Type: graphql.NewList(edgeType), Resolve: r.links(func(n bionet.Node) []uint64 { return n.InputLinks })},
				"outputLinks": &graphql.Field{Type: graphql.NewList(edgeType), Resolve: r.links(func(n bionet.Node) []uint64 { return n.OutputLinks })},
				"inputs":      &graphql.Field{Type: graphql.NewList(nodeType), Resolve: r.neighbours(true)},
				"outputs":     &graphql.Field{Type: graphql.NewList(nodeType), Resolve: r.neighbours(false)},
			}
		}),
	})

	edgeType = graphql.NewObject(graphql.ObjectConfig{
		Name: "Edge",
		Fields: graphql.FieldsThunk(func() graphql.Fields {
			return graphql.Fields{
				"id":         &graphql.Field{Type: graphql.NewNonNull(graphql.ID), Resolve: edgeField(func(e bionet.Edge) any { return formatID(e.ID) })},
				"active":     &graphql.Field{Type: graphql.Boolean, Resolve: edgeField(func(e bionet.Edge) any { return e.Active })},
				"src":        &graphql.Field{Type: nodeType, Resolve: r.endpoint(func(e bionet.Edge) uint64 { return e.Src })},
				"dest":       &graphql.Field{Type: nodeType, Resolve: r.endpoint(func(e bionet.Edge) uint64 { return e.Dest })},
				"sourceSign": &graphql.Field{Type: graphql.NewNonNull(signEnum), Resolve: edgeField(func(e bionet.Edge) any { return e.Signs.Source })},
				"destSign":   &graphql.Field{Type: graphql.NewNonNull(signEnum), Resolve: edgeField(func(e bionet.Edge) any { return e.Signs.Dest })},
				"value":      &graphql.Field{Type: graphql.Float, Resolve: edgeField(func(e bionet.Edge) any { return e.Value })},
				"linkType":   &graphql.Field{Type: graphql.NewNonNull(linkTypeEnum), Resolve: edgeField(func(e bionet.Edge) any { return e.LinkType })},
				"reaction":   &graphql.Field{Type: reactionType, Resolve: r.reaction},
			}
		}),
	})

	networkType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Network",
		Fields: graphql.Fields{
			"name":      &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"nodeCount": &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
			"edgeCount": &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
		},
	})

	idArgs := graphql.FieldConfigArgument{
		"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
	}

	queryFields := graphql.Fields{
		"network": &graphql.Field{
			Type: networkType,
			Resolve: func(p graphql.ResolveParams) (any, error) {
				return map[string]any{
					"name":      net.Name(),
					"nodeCount": net.NodeCount(),
					"edgeCount": net.EdgeCount(),
				}, nil
			},
		},
		"node": &graphql.Field{
			Type:    nodeType,
			Args:    idArgs,
			Resolve: r.node,
		},
		"nodeByName": &graphql.Field{
			Type: nodeType,
			Args: graphql.FieldConfigArgument{
				"name": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
			},
			Resolve: r.nodeByName,
		},
		"edge": &graphql.Field{
			Type:    edgeType,
			Args:    idArgs,
			Resolve: r.edge,
		},
		"nodes": &graphql.Field{
			Type: graphql.NewList(nodeType),
			Args: graphql.FieldConfigArgument{
				"type": &graphql.ArgumentConfig{Type: nodeTypeEnum},
			},
			Resolve: r.nodes,
		},
		"edges": &graphql.Field{
			Type:    graphql.NewList(edgeType),
			Resolve: func(p graphql.ResolveParams) (any, error) { return net.Edges(), nil },
		},
		"parameters": &graphql.Field{
			Type:    graphql.NewList(parameterType),
			Resolve: func(p graphql.ResolveParams) (any, error) { return net.Parameters(), nil },
		},
	}
	for name, query := range r.queries() {
		queryFields[name] = &graphql.Field{
			Type:    graphql.NewList(nodeType),
			Resolve: r.nodeQuery(query),
		}
	}

	schema, err := graphql.NewSchema(graphql.SchemaConfig{
		Query: graphql.NewObject(graphql.ObjectConfig{
			Name:   "Query",
			Fields: queryFields,
		}),
	})
	if err != nil {
		return graphql.Schema{}, fmt.Errorf("failed to create schema: %w", err)
	}
	return schema, nil
}
