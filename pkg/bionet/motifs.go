package bionet

import (
	"fmt"

	"github.com/dd0wney/bionet/pkg/logging"
)

// Composite motifs. Each one checks every referenced node and the new
// interaction name before creating anything, so a failed call leaves the
// network unchanged.

// CreatePositiveInteraction wires in1 and in2 into a new interaction node
// with destination-positive edges, and the interaction into out with a
// positive edge.
func (b *BioNet) CreatePositiveInteraction(name string, in1, in2, out Node) (Node, error) {
	return b.createMotif("create_positive_interaction", name, []motifEdge{
		{ref: in1, inbound: true, signs: SignPair(None, Positive)},
		{ref: in2, inbound: true, signs: SignPair(None, Positive)},
		{ref: out, signs: SignPair(None, Positive)},
	}, PositiveInteraction)
}

// CreateNegativeInteraction is CreatePositiveInteraction with a negative
// output edge.
func (b *BioNet) CreateNegativeInteraction(name string, in1, in2, out Node) (Node, error) {
	return b.createMotif("create_negative_interaction", name, []motifEdge{
		{ref: in1, inbound: true, signs: SignPair(None, Positive)},
		{ref: in2, inbound: true, signs: SignPair(None, Positive)},
		{ref: out, signs: SignPair(None, Negative)},
	}, NegativeInteraction)
}

// CreateDifferentiationWithInfluence consumes src (source-negative), takes
// influence with the given destination sign and produces dest.
func (b *BioNet) CreateDifferentiationWithInfluence(name string, src, influence, dest Node, sign Sign) (Node, error) {
	return b.createMotif("create_differentiation_with_influence", name, []motifEdge{
		{ref: src, inbound: true, signs: SignPair(Negative, None)},
		{ref: influence, inbound: true, signs: SignPair(None, sign)},
		{ref: dest, signs: SignPair(None, Positive)},
	}, Differentiation)
}

type motifEdge struct {
	ref     Node
	inbound bool // true: ref -> interaction, false: interaction -> ref
	signs   Signs
}

func (b *BioNet) createMotif(op, name string, edges []motifEdge, link LinkType) (Node, error) {
	fail := func(err error) (Node, error) {
		b.logger.Warn("motif rejected", logging.Operation(op), logging.NodeName(name), logging.Error(err))
		b.record(op, err)
		return Node{}, err
	}

	for _, me := range edges {
		end := EndpointDestination
		if me.inbound {
			end = EndpointSource
		}
		if _, err := b.resolve(op, me.ref, end); err != nil {
			return fail(err)
		}
		if err := me.signs.validate(); err != nil {
			return fail(NewError(op).NodeName(me.ref.Name).Cause(err).Err())
		}
	}
	existing, err := b.checkNewName(op, name, Interaction)
	if err != nil {
		return fail(err)
	}
	needed := len(edges)
	if existing == nil {
		needed++
	}
	if err := b.reserveIDs(needed); err != nil {
		return fail(NewError(op).NodeName(name).Cause(err).Err())
	}

	var hub Node
	if existing != nil {
		hub = existing.Clone()
	} else if hub, err = b.CreateInteraction(name); err != nil {
		return fail(err)
	}

	for _, me := range edges {
		src, dest := hub.ID, me.ref.ID
		if me.inbound {
			src, dest = me.ref.ID, hub.ID
		}
		if _, err := b.CreateEdge(src, dest, me.signs, WithLinkType(link)); err != nil {
			// unreachable after the checks above
			return fail(fmt.Errorf("%s: %w", op, err))
		}
	}

	b.record(op, nil)
	return b.nodes[hub.ID].Clone(), nil
}
