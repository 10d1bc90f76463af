package bionet

import (
	"fmt"
	"slices"
)

// Sign is the polarity asserted at one end of an edge
type Sign int8

const (
	Negative Sign = -1
	None     Sign = 0
	Positive Sign = 1
)

// String returns the persisted name of the sign
func (s Sign) String() string {
	switch s {
	case Negative:
		return "Negative"
	case None:
		return "None"
	case Positive:
		return "Positive"
	default:
		return fmt.Sprintf("Sign(%d)", int8(s))
	}
}

// Valid reports whether s is one of Negative, None or Positive
func (s Sign) Valid() bool {
	return s >= Negative && s <= Positive
}

// ParseSign converts a persisted sign name back to a Sign
func ParseSign(s string) (Sign, error) {
	switch s {
	case "Negative":
		return Negative, nil
	case "None":
		return None, nil
	case "Positive":
		return Positive, nil
	default:
		return None, fmt.Errorf("%w: %q", ErrInvalidSign, s)
	}
}

// Signs is the polarity pair of an edge. Source is always asserted at the
// edge's source end and Dest at its destination end.
type Signs struct {
	Source Sign
	Dest   Sign
}

// SignPair builds a Signs value in (source, destination) order
func SignPair(source, dest Sign) Signs {
	return Signs{Source: source, Dest: dest}
}

func (s Signs) validate() error {
	if !s.Source.Valid() {
		return fmt.Errorf("%w: source sign %d", ErrInvalidSign, int8(s.Source))
	}
	if !s.Dest.Valid() {
		return fmt.Errorf("%w: destination sign %d", ErrInvalidSign, int8(s.Dest))
	}
	return nil
}

// NodeType distinguishes biological entities from interaction hubs
type NodeType uint8

const (
	Default NodeType = iota
	Interaction
)

func (t NodeType) String() string {
	switch t {
	case Default:
		return "Default"
	case Interaction:
		return "Interaction"
	default:
		return fmt.Sprintf("NodeType(%d)", uint8(t))
	}
}

// ParseNodeType converts a persisted node type name back to a NodeType
func ParseNodeType(s string) (NodeType, error) {
	switch s {
	case "Default":
		return Default, nil
	case "Interaction":
		return Interaction, nil
	default:
		return Default, fmt.Errorf("unknown node type %q", s)
	}
}

// LinkType is the categorical tag carried by an edge
type LinkType uint8

const (
	LinkNone LinkType = iota
	Infection
	Infected
	Differentiation
	Production
	Consume
	Replication
	Migration
	Killing
	Phagocytosis
	Apoptosis
	Decay
	PositiveInteraction
	NegativeInteraction
	Inhibition
)

var linkTypeNames = [...]string{
	LinkNone:            "None",
	Infection:           "Infection",
	Infected:            "Infected",
	Differentiation:     "Differentiation",
	Production:          "Production",
	Consume:             "Consume",
	Replication:         "Replication",
	Migration:           "Migration",
	Killing:             "Killing",
	Phagocytosis:        "Phagocytosis",
	Apoptosis:           "Apoptosis",
	Decay:               "Decay",
	PositiveInteraction: "PositiveInteraction",
	NegativeInteraction: "NegativeInteraction",
	Inhibition:          "Inhibition",
}

func (l LinkType) String() string {
	if int(l) < len(linkTypeNames) {
		return linkTypeNames[l]
	}
	return fmt.Sprintf("LinkType(%d)", uint8(l))
}

// Valid reports whether l is a known link type
func (l LinkType) Valid() bool {
	return int(l) < len(linkTypeNames)
}

// ParseLinkType converts a persisted link type name back to a LinkType
func ParseLinkType(s string) (LinkType, error) {
	for i, name := range linkTypeNames {
		if name == s {
			return LinkType(i), nil
		}
	}
	return LinkNone, fmt.Errorf("unknown link type %q", s)
}

// Parameter is a named scalar constant such as a rate constant
type Parameter struct {
	Name  string  `json:"name" yaml:"name"`
	Value float64 `json:"value" yaml:"value"`
}

// Term is one species of a reaction side with its signed stoichiometric coefficient
type Term struct {
	Species     string `json:"species" yaml:"species"`
	Coefficient int    `json:"coefficient" yaml:"coefficient"`
}

// Reaction is the kinetic description attached to an edge. It is data only:
// nothing in this package evaluates it.
type Reaction struct {
	Expression           string   `json:"expression" yaml:"expression"`
	NormalizedExpression string   `json:"normalized_expression" yaml:"normalized_expression"`
	Inputs               []Term   `json:"inputs" yaml:"inputs"`
	Outputs              []Term   `json:"outputs" yaml:"outputs"`
	Rate                 float64  `json:"rate" yaml:"rate"`
	Parameters           []string `json:"parameters" yaml:"parameters"`
}

// Clone returns a deep copy with non-nil slices
func (r *Reaction) Clone() *Reaction {
	if r == nil {
		return nil
	}
	return &Reaction{
		Expression:           r.Expression,
		NormalizedExpression: r.NormalizedExpression,
		Inputs:               cloneOrEmpty(r.Inputs),
		Outputs:              cloneOrEmpty(r.Outputs),
		Rate:                 r.Rate,
		Parameters:           cloneOrEmpty(r.Parameters),
	}
}

// Node is an entity or interaction hub. InputLinks and OutputLinks hold edge
// ids in creation order.
type Node struct {
	ID          uint64
	Type        NodeType
	Active      bool
	Name        string
	Description string
	InputLinks  []uint64
	OutputLinks []uint64
}

// Clone creates a deep copy of a node
func (n *Node) Clone() Node {
	return Node{
		ID:          n.ID,
		Type:        n.Type,
		Active:      n.Active,
		Name:        n.Name,
		Description: n.Description,
		InputLinks:  cloneOrEmpty(n.InputLinks),
		OutputLinks: cloneOrEmpty(n.OutputLinks),
	}
}

// IsInteraction reports whether the node is an interaction hub
func (n *Node) IsInteraction() bool {
	return n.Type == Interaction
}

// Edge is a directed signed link from Src to Dest
type Edge struct {
	ID       uint64
	Active   bool
	Src      uint64
	Dest     uint64
	Signs    Signs
	Value    float64
	LinkType LinkType
	Reaction *Reaction
}

// Clone creates a deep copy of an edge
func (e *Edge) Clone() Edge {
	c := *e
	c.Reaction = e.Reaction.Clone()
	return c
}

func cloneOrEmpty[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return slices.Clone(s)
}
