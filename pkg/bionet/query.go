package bionet

import (
	"time"
)

// Query names used for metrics and the GraphQL schema
const (
	QueryWithInput            = "nodes_with_input_link"
	QueryWithPositiveInput    = "nodes_with_positive_input_link"
	QueryWithNegativeInput    = "nodes_with_negative_input_link"
	QueryWithoutPositiveInput = "nodes_without_positive_input_link"
	QueryWithoutNegativeInput = "nodes_without_negative_input_link"
	QueryWithoutOutputs       = "nodes_without_output_links"
	QueryLeastInputs          = "nodes_with_least_number_of_inputs"
	QueryLeastOutputs         = "nodes_with_least_number_of_outputs"
)

// All queries below consider Default-type nodes only and return ids in
// ascending order. They never return nil.

// NodesWithInputLink returns the nodes with at least one input edge whose
// destination-side sign equals sign.
func (b *BioNet) NodesWithInputLink(sign Sign) []uint64 {
	start := time.Now()
	out := b.filterEntities(func(n *Node) bool { return b.hasInputSign(n, sign) })
	b.observeQuery(QueryWithInput, start, len(out))
	return out
}

// NodesWithPositiveInputLink returns NodesWithInputLink(Positive)
func (b *BioNet) NodesWithPositiveInputLink() []uint64 {
	start := time.Now()
	out := b.filterEntities(func(n *Node) bool { return b.hasInputSign(n, Positive) })
	b.observeQuery(QueryWithPositiveInput, start, len(out))
	return out
}

// NodesWithNegativeInputLink returns NodesWithInputLink(Negative)
func (b *BioNet) NodesWithNegativeInputLink() []uint64 {
	start := time.Now()
	out := b.filterEntities(func(n *Node) bool { return b.hasInputSign(n, Negative) })
	b.observeQuery(QueryWithNegativeInput, start, len(out))
	return out
}

// NodesWithoutPositiveInputLink is the complement of NodesWithPositiveInputLink
func (b *BioNet) NodesWithoutPositiveInputLink() []uint64 {
	start := time.Now()
	out := b.filterEntities(func(n *Node) bool { return !b.hasInputSign(n, Positive) })
	b.observeQuery(QueryWithoutPositiveInput, start, len(out))
	return out
}

// NodesWithoutNegativeInputLink is the complement of NodesWithNegativeInputLink
func (b *BioNet) NodesWithoutNegativeInputLink() []uint64 {
	start := time.Now()
	out := b.filterEntities(func(n *Node) bool { return !b.hasInputSign(n, Negative) })
	b.observeQuery(QueryWithoutNegativeInput, start, len(out))
	return out
}

// NodesWithoutOutputLinks returns the nodes with no outgoing edge
func (b *BioNet) NodesWithoutOutputLinks() []uint64 {
	start := time.Now()
	out := b.filterEntities(func(n *Node) bool { return len(n.OutputLinks) == 0 })
	b.observeQuery(QueryWithoutOutputs, start, len(out))
	return out
}

// NodesWithLeastNumberOfInputs returns every node whose input link count
// equals the minimum input link count.
func (b *BioNet) NodesWithLeastNumberOfInputs() []uint64 {
	start := time.Now()
	out := b.minBy(func(n *Node) int { return len(n.InputLinks) })
	b.observeQuery(QueryLeastInputs, start, len(out))
	return out
}

// NodesWithLeastNumberOfOutputs returns every node whose output link count
// equals the minimum output link count.
func (b *BioNet) NodesWithLeastNumberOfOutputs() []uint64 {
	start := time.Now()
	out := b.minBy(func(n *Node) int { return len(n.OutputLinks) })
	b.observeQuery(QueryLeastOutputs, start, len(out))
	return out
}

func (b *BioNet) hasInputSign(n *Node, sign Sign) bool {
	for _, eid := range n.InputLinks {
		if e, ok := b.edges[eid]; ok && e.Signs.Dest == sign {
			return true
		}
	}
	return false
}

func (b *BioNet) filterEntities(keep func(*Node) bool) []uint64 {
	out := []uint64{}
	for _, id := range b.sortedNodeIDs() {
		n := b.nodes[id]
		if n.Type == Default && keep(n) {
			out = append(out, id)
		}
	}
	return out
}

func (b *BioNet) minBy(degree func(*Node) int) []uint64 {
	out := []uint64{}
	least := -1
	for _, id := range b.sortedNodeIDs() {
		n := b.nodes[id]
		if n.Type != Default {
			continue
		}
		d := degree(n)
		switch {
		case least < 0 || d < least:
			least = d
			out = append(out[:0], id)
		case d == least:
			out = append(out, id)
		}
	}
	return out
}
