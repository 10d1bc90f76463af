// Package bionet implements a directed, signed interaction network of
// biological entities and the interactions that connect them.
//
// Nodes and edges live in id-keyed registries owned by a BioNet value. Edges
// refer to nodes by id and nodes refer to their incident edges by id; both
// sides are updated together when an edge is created, so a network never
// holds an edge that is missing from its endpoints' link lists. A BioNet is
// not safe for concurrent mutation.
package bionet

import (
	"fmt"
	"math"
	"slices"
	"time"

	"github.com/dd0wney/bionet/pkg/logging"
	"github.com/dd0wney/bionet/pkg/metrics"
)

// DuplicatePolicy decides what CreateNode and CreateInteraction do when the
// requested name is already taken.
type DuplicatePolicy uint8

const (
	// RejectDuplicates fails with ErrDuplicateName and leaves the network unchanged
	RejectDuplicates DuplicatePolicy = iota
	// ReuseExisting returns the existing node untouched when its type matches
	ReuseExisting
)

// BioNet is a signed directed graph plus its named parameters.
type BioNet struct {
	name string

	// nextID is shared by nodes and edges. It is never persisted; Load
	// recomputes it from the highest id in the document.
	nextID uint64

	nodes      map[uint64]*Node
	nameIndex  map[string]uint64
	edges      map[uint64]*Edge
	parameters map[string]Parameter

	policy  DuplicatePolicy
	logger  logging.Logger
	metrics *metrics.Registry
}

// Option configures a BioNet
type Option func(*BioNet)

// WithLogger attaches a structured logger
func WithLogger(logger logging.Logger) Option {
	return func(b *BioNet) {
		if logger != nil {
			b.logger = logger
		}
	}
}

// WithMetrics attaches a metrics registry
func WithMetrics(r *metrics.Registry) Option {
	return func(b *BioNet) {
		b.metrics = r
	}
}

// WithDuplicatePolicy sets the duplicate node name policy
func WithDuplicatePolicy(p DuplicatePolicy) Option {
	return func(b *BioNet) {
		b.policy = p
	}
}

// New creates an empty network
func New(name string, opts ...Option) *BioNet {
	b := &BioNet{
		name:       name,
		nodes:      make(map[uint64]*Node),
		nameIndex:  make(map[string]uint64),
		edges:      make(map[uint64]*Edge),
		parameters: make(map[string]Parameter),
		logger:     logging.NewNopLogger(),
	}
	for _, opt := range opts {
		opt(b)
	}
	b.logger = b.logger.With(logging.Network(name))
	return b
}

// Name returns the network name
func (b *BioNet) Name() string {
	return b.name
}

// NodeCount returns the number of nodes, interactions included
func (b *BioNet) NodeCount() int {
	return len(b.nodes)
}

// EdgeCount returns the number of edges
func (b *BioNet) EdgeCount() int {
	return len(b.edges)
}

// Node returns a copy of the node with the given id
func (b *BioNet) Node(id uint64) (Node, error) {
	n, ok := b.nodes[id]
	if !ok {
		return Node{}, NodeNotFoundError("get", id)
	}
	return n.Clone(), nil
}

// NodeByName returns a copy of the node with the given name
func (b *BioNet) NodeByName(name string) (Node, error) {
	id, ok := b.nameIndex[name]
	if !ok {
		return Node{}, NewError("get").NodeName(name).Cause(ErrNodeNotFound).Err()
	}
	return b.nodes[id].Clone(), nil
}

// NodeID resolves a node name to its id
func (b *BioNet) NodeID(name string) (uint64, error) {
	id, ok := b.nameIndex[name]
	if !ok {
		return 0, NewError("get_node_id").NodeName(name).Cause(ErrNodeNotFound).Err()
	}
	return id, nil
}

// NodeName resolves a node id to its name
func (b *BioNet) NodeName(id uint64) (string, error) {
	n, ok := b.nodes[id]
	if !ok {
		return "", NodeNotFoundError("get_node_name", id)
	}
	return n.Name, nil
}

// NodeNames maps ids to names, skipping ids that do not resolve
func (b *BioNet) NodeNames(ids []uint64) []string {
	names := make([]string, 0, len(ids))
	for _, id := range ids {
		if n, ok := b.nodes[id]; ok {
			names = append(names, n.Name)
		}
	}
	return names
}

// Edge returns a copy of the edge with the given id
func (b *BioNet) Edge(id uint64) (Edge, error) {
	e, ok := b.edges[id]
	if !ok {
		return Edge{}, EdgeNotFoundError("get", id)
	}
	return e.Clone(), nil
}

// Nodes returns copies of all nodes in ascending id order
func (b *BioNet) Nodes() []Node {
	ids := b.sortedNodeIDs()
	out := make([]Node, 0, len(ids))
	for _, id := range ids {
		out = append(out, b.nodes[id].Clone())
	}
	return out
}

// Edges returns copies of all edges in ascending id order
func (b *BioNet) Edges() []Edge {
	ids := make([]uint64, 0, len(b.edges))
	for id := range b.edges {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	out := make([]Edge, 0, len(ids))
	for _, id := range ids {
		out = append(out, b.edges[id].Clone())
	}
	return out
}

func (b *BioNet) sortedNodeIDs() []uint64 {
	ids := make([]uint64, 0, len(b.nodes))
	for id := range b.nodes {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// allocID hands out the next id. math.MaxUint64 is never allocated, so the
// counter cannot wrap onto live ids.
func (b *BioNet) allocID() (uint64, error) {
	if err := b.reserveIDs(1); err != nil {
		return 0, err
	}
	id := b.nextID
	b.nextID++
	return id, nil
}

// reserveIDs checks that the next n ids can be allocated without touching
// the counter.
func (b *BioNet) reserveIDs(n int) error {
	for i := range uint64(n) {
		id := b.nextID + i
		if id < b.nextID || id == math.MaxUint64 {
			return fmt.Errorf("%w: id space exhausted", ErrIDUnavailable)
		}
		_, node := b.nodes[id]
		_, edge := b.edges[id]
		if node || edge {
			return fmt.Errorf("%w: id %d already in use", ErrIDUnavailable, id)
		}
	}
	return nil
}

// record counts an operation and refreshes the size gauges
func (b *BioNet) record(op string, err error) {
	if b.metrics == nil {
		return
	}
	b.metrics.RecordOperation(op, err)
	b.metrics.UpdateNetworkSize(len(b.nodes), len(b.edges), len(b.parameters))
}

func (b *BioNet) observeQuery(query string, start time.Time, results int) {
	if b.metrics == nil {
		return
	}
	b.metrics.RecordQuery(query, time.Since(start), results)
}
