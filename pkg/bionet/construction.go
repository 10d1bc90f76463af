package bionet

import (
	"fmt"

	"github.com/dd0wney/bionet/pkg/logging"
	"github.com/dd0wney/bionet/pkg/validation"
)

// CreateNode adds a Default-type node and returns a copy of it.
func (b *BioNet) CreateNode(name string) (Node, error) {
	return b.createNode("create_node", name, Default)
}

// CreateInteraction adds an Interaction-type node and returns a copy of it.
func (b *BioNet) CreateInteraction(name string) (Node, error) {
	return b.createNode("create_interaction", name, Interaction)
}

func (b *BioNet) createNode(op, name string, typ NodeType) (Node, error) {
	existing, err := b.checkNewName(op, name, typ)
	if err != nil {
		b.logger.Warn("node rejected", logging.Operation(op), logging.NodeName(name), logging.Error(err))
		b.record(op, err)
		return Node{}, err
	}
	if existing != nil {
		b.logger.Debug("reusing existing node", logging.Operation(op), logging.NodeID(existing.ID), logging.NodeName(name))
		b.record(op, nil)
		return existing.Clone(), nil
	}

	id, err := b.allocID()
	if err != nil {
		err = NewError(op).NodeName(name).Cause(err).Err()
		b.logger.Warn("node rejected", logging.Operation(op), logging.NodeName(name), logging.Error(err))
		b.record(op, err)
		return Node{}, err
	}
	n := &Node{
		ID:          id,
		Type:        typ,
		Active:      true,
		Name:        name,
		InputLinks:  []uint64{},
		OutputLinks: []uint64{},
	}
	b.nodes[n.ID] = n
	b.nameIndex[name] = n.ID

	b.logger.Debug("node created", logging.Operation(op), logging.NodeID(n.ID), logging.NodeName(name))
	b.record(op, nil)
	return n.Clone(), nil
}

// checkNewName validates name and applies the duplicate policy. It returns
// the node to reuse, if any, and never mutates the network.
func (b *BioNet) checkNewName(op, name string, typ NodeType) (*Node, error) {
	if err := validation.ValidateName(name); err != nil {
		return nil, NewError(op).NodeName(name).Cause(fmt.Errorf("%w: %v", ErrInvalidName, err)).Err()
	}
	id, taken := b.nameIndex[name]
	if !taken {
		return nil, nil
	}
	existing := b.nodes[id]
	if b.policy == ReuseExisting && existing.Type == typ {
		return existing, nil
	}
	return nil, NewError(op).NodeName(name).
		Context(fmt.Sprintf("held by %s node %d", existing.Type, id)).
		Cause(ErrDuplicateName).Err()
}

// SetDescription replaces the free-text description of a node.
func (b *BioNet) SetDescription(id uint64, description string) error {
	n, ok := b.nodes[id]
	if !ok {
		err := NodeNotFoundError("set_description", id)
		b.record("set_description", err)
		return err
	}
	if err := validation.ValidateDescription(description); err != nil {
		err = NewError("set_description").Node(id).Cause(fmt.Errorf("%w: %v", ErrInvalidDescription, err)).Err()
		b.record("set_description", err)
		return err
	}
	n.Description = description
	b.record("set_description", nil)
	return nil
}

// EdgeOption sets the payload of a new edge
type EdgeOption func(*edgeConfig)

type edgeConfig struct {
	linkType LinkType
	reaction *Reaction
}

// WithLinkType tags the edge with a categorical link type
func WithLinkType(l LinkType) EdgeOption {
	return func(c *edgeConfig) {
		c.linkType = l
	}
}

// WithReaction attaches a reaction record to the edge. The record is copied.
func WithReaction(r Reaction) EdgeOption {
	return func(c *edgeConfig) {
		c.reaction = r.Clone()
	}
}

func (c *edgeConfig) validate() error {
	if !c.linkType.Valid() {
		return fmt.Errorf("%w: %d", ErrInvalidLinkType, uint8(c.linkType))
	}
	if c.reaction != nil {
		return c.reaction.validate()
	}
	return nil
}

// validate rejects a reaction that could not be saved and loaded unchanged
func (r *Reaction) validate() error {
	if err := validation.ValidateFinite("rate", r.Rate); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidReaction, err)
	}
	texts := []struct{ field, text string }{
		{"expression", r.Expression},
		{"normalized_expression", r.NormalizedExpression},
	}
	for _, t := range r.Inputs {
		texts = append(texts, struct{ field, text string }{"inputs.species", t.Species})
	}
	for _, t := range r.Outputs {
		texts = append(texts, struct{ field, text string }{"outputs.species", t.Species})
	}
	for _, p := range r.Parameters {
		texts = append(texts, struct{ field, text string }{"parameters", p})
	}
	for _, t := range texts {
		if err := validation.ValidateText(t.field, t.text); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidReaction, err)
		}
	}
	return nil
}

// CreateEdge links src to dest. The new edge id is appended to the source's
// OutputLinks and the destination's InputLinks. If either endpoint does not
// exist the call fails and nothing is registered.
func (b *BioNet) CreateEdge(src, dest uint64, signs Signs, opts ...EdgeOption) (Edge, error) {
	const op = "create_edge"

	if _, ok := b.nodes[src]; !ok {
		return b.rejectEdge(op, NewError(op).Node(src).Endpoint(EndpointSource).Cause(ErrNodeNotFound).Err())
	}
	if _, ok := b.nodes[dest]; !ok {
		return b.rejectEdge(op, NewError(op).Node(dest).Endpoint(EndpointDestination).Cause(ErrNodeNotFound).Err())
	}
	return b.linkEdge(op, src, dest, signs, opts)
}

// CreateEdgeByName is CreateEdge with endpoints given by node name.
func (b *BioNet) CreateEdgeByName(src, dest string, signs Signs, opts ...EdgeOption) (Edge, error) {
	const op = "create_edge"

	srcID, ok := b.nameIndex[src]
	if !ok {
		return b.rejectEdge(op, NewError(op).NodeName(src).Endpoint(EndpointSource).Cause(ErrNodeNotFound).Err())
	}
	destID, ok := b.nameIndex[dest]
	if !ok {
		return b.rejectEdge(op, NewError(op).NodeName(dest).Endpoint(EndpointDestination).Cause(ErrNodeNotFound).Err())
	}
	return b.linkEdge(op, srcID, destID, signs, opts)
}

// AddNodeToInteraction links node into interaction (node is the source).
// Both arguments are re-resolved by id; a reference whose name no longer
// matches the registry is rejected as stale.
func (b *BioNet) AddNodeToInteraction(interaction, node Node, signs Signs, opts ...EdgeOption) (Edge, error) {
	const op = "add_node_to_interaction"

	hub, err := b.resolve(op, interaction, EndpointDestination)
	if err != nil {
		return b.rejectEdge(op, err)
	}
	if !hub.IsInteraction() {
		return b.rejectEdge(op, NewError(op).Node(hub.ID).Cause(ErrNotInteraction).Err())
	}
	member, err := b.resolve(op, node, EndpointSource)
	if err != nil {
		return b.rejectEdge(op, err)
	}
	return b.linkEdge(op, member.ID, hub.ID, signs, opts)
}

// resolve looks a caller-held node copy up again by id and checks it still
// names the same registry entry.
func (b *BioNet) resolve(op string, ref Node, end string) (*Node, error) {
	n, ok := b.nodes[ref.ID]
	if !ok {
		return nil, NewError(op).Node(ref.ID).Endpoint(end).Cause(ErrNodeNotFound).Err()
	}
	if n.Name != ref.Name {
		return nil, NewError(op).Node(ref.ID).Endpoint(end).
			Context(fmt.Sprintf("reference names %q, registry holds %q", ref.Name, n.Name)).
			Cause(ErrStaleReference).Err()
	}
	return n, nil
}

// linkEdge creates an edge between two nodes already known to exist.
func (b *BioNet) linkEdge(op string, src, dest uint64, signs Signs, opts []EdgeOption) (Edge, error) {
	if err := signs.validate(); err != nil {
		return b.rejectEdge(op, NewError(op).Context(fmt.Sprintf("%d -> %d", src, dest)).Cause(err).Err())
	}
	cfg := edgeConfig{linkType: LinkNone}
	for _, opt := range opts {
		opt(&cfg)
	}
	if err := cfg.validate(); err != nil {
		return b.rejectEdge(op, NewError(op).Context(fmt.Sprintf("%d -> %d", src, dest)).Cause(err).Err())
	}

	id, err := b.allocID()
	if err != nil {
		return b.rejectEdge(op, NewError(op).Context(fmt.Sprintf("%d -> %d", src, dest)).Cause(err).Err())
	}
	e := &Edge{
		ID:       id,
		Active:   true,
		Src:      src,
		Dest:     dest,
		Signs:    signs,
		LinkType: cfg.linkType,
		Reaction: cfg.reaction,
	}
	srcNode, destNode := b.nodes[src], b.nodes[dest]
	srcNode.OutputLinks = append(srcNode.OutputLinks, e.ID)
	destNode.InputLinks = append(destNode.InputLinks, e.ID)
	b.edges[e.ID] = e

	b.logger.Debug("edge created",
		logging.Operation(op),
		logging.EdgeID(e.ID),
		logging.String("src", srcNode.Name),
		logging.String("dest", destNode.Name),
		logging.String("signs", fmt.Sprintf("(%s, %s)", signs.Source, signs.Dest)),
	)
	b.record(op, nil)
	return e.Clone(), nil
}

func (b *BioNet) rejectEdge(op string, err error) (Edge, error) {
	b.logger.Warn("edge rejected", logging.Operation(op), logging.Error(err))
	b.record(op, err)
	return Edge{}, err
}
