package graphql

import (
	"fmt"

	"github.com/graphql-go/graphql"

	"github.com/dd0wney/bionet/pkg/bionet"
)

// resolver adapts BioNet accessors to graphql-go resolve functions
type resolver struct {
	net *bionet.BioNet
}

// queries maps schema field names to the query engine
func (r *resolver) queries() map[string]func() []uint64 {
	return map[string]func() []uint64{
		"nodesWithPositiveInputLink":    r.net.NodesWithPositiveInputLink,
		"nodesWithNegativeInputLink":    r.net.NodesWithNegativeInputLink,
		"nodesWithoutPositiveInputLink": r.net.NodesWithoutPositiveInputLink,
		"nodesWithoutNegativeInputLink": r.net.NodesWithoutNegativeInputLink,
		"nodesWithoutOutputLinks":       r.net.NodesWithoutOutputLinks,
		"nodesWithLeastInputs":          r.net.NodesWithLeastNumberOfInputs,
		"nodesWithLeastOutputs":         r.net.NodesWithLeastNumberOfOutputs,
	}
}

func nodeField(get func(bionet.Node) any) graphql.FieldResolveFn {
	return func(p graphql.ResolveParams) (any, error) {
		n, ok := p.Source.(bionet.Node)
		if !ok {
			return nil, fmt.Errorf("unexpected node source %T", p.Source)
		}
		return get(n), nil
	}
}

func edgeField(get func(bionet.Edge) any) graphql.FieldResolveFn {
	return func(p graphql.ResolveParams) (any, error) {
		e, ok := p.Source.(bionet.Edge)
		if !ok {
			return nil, fmt.Errorf("unexpected edge source %T", p.Source)
		}
		return get(e), nil
	}
}

func (r *resolver) node(p graphql.ResolveParams) (any, error) {
	id, err := parseID(p.Args["id"])
	if err != nil {
		return nil, fmt.Errorf("invalid node id: %w", err)
	}
	n, err := r.net.Node(id)
	if bionet.IsNotFound(err) {
		return nil, nil
	}
	return n, err
}

func (r *resolver) nodeByName(p graphql.ResolveParams) (any, error) {
	name, _ := p.Args["name"].(string)
	n, err := r.net.NodeByName(name)
	if bionet.IsNotFound(err) {
		return nil, nil
	}
	return n, err
}

func (r *resolver) edge(p graphql.ResolveParams) (any, error) {
	id, err := parseID(p.Args["id"])
	if err != nil {
		return nil, fmt.Errorf("invalid edge id: %w", err)
	}
	e, err := r.net.Edge(id)
	if bionet.IsNotFound(err) {
		return nil, nil
	}
	return e, err
}

func (r *resolver) nodes(p graphql.ResolveParams) (any, error) {
	all := r.net.Nodes()
	typ, ok := p.Args["type"].(bionet.NodeType)
	if !ok {
		return all, nil
	}
	out := make([]bionet.Node, 0, len(all))
	for _, n := range all {
		if n.Type == typ {
			out = append(out, n)
		}
	}
	return out, nil
}

func (r *resolver) nodesByID(ids []uint64) ([]bionet.Node, error) {
	out := make([]bionet.Node, 0, len(ids))
	for _, id := range ids {
		n, err := r.net.Node(id)
		if err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, nil
}

func (r *resolver) nodeQuery(query func() []uint64) graphql.FieldResolveFn {
	return func(p graphql.ResolveParams) (any, error) {
		return r.nodesByID(query())
	}
}

func (r *resolver) links(ids func(bionet.Node) []uint64) graphql.FieldResolveFn {
	return func(p graphql.ResolveParams) (any, error) {
		n, ok := p.Source.(bionet.Node)
		if !ok {
			return nil, fmt.Errorf("unexpected node source %T", p.Source)
		}
		edges := make([]bionet.Edge, 0, len(ids(n)))
		for _, eid := range ids(n) {
			e, err := r.net.Edge(eid)
			if err != nil {
				return nil, err
			}
			edges = append(edges, e)
		}
		return edges, nil
	}
}

// neighbours resolves the nodes at the far end of a node's input (or
// output) links, one entry per edge
func (r *resolver) neighbours(inputs bool) graphql.FieldResolveFn {
	return func(p graphql.ResolveParams) (any, error) {
		n, ok := p.Source.(bionet.Node)
		if !ok {
			return nil, fmt.Errorf("unexpected node source %T", p.Source)
		}
		links := n.OutputLinks
		if inputs {
			links = n.InputLinks
		}
		ids := make([]uint64, 0, len(links))
		for _, eid := range links {
			e, err := r.net.Edge(eid)
			if err != nil {
				return nil, err
			}
			if inputs {
				ids = append(ids, e.Src)
			} else {
				ids = append(ids, e.Dest)
			}
		}
		return r.nodesByID(ids)
	}
}

func (r *resolver) endpoint(id func(bionet.Edge) uint64) graphql.FieldResolveFn {
	return func(p graphql.ResolveParams) (any, error) {
		e, ok := p.Source.(bionet.Edge)
		if !ok {
			return nil, fmt.Errorf("unexpected edge source %T", p.Source)
		}
		return r.net.Node(id(e))
	}
}

func (r *resolver) reaction(p graphql.ResolveParams) (any, error) {
	e, ok := p.Source.(bionet.Edge)
	if !ok || e.Reaction == nil {
		return nil, nil
	}
	return e.Reaction, nil
}
