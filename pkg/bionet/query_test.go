package bionet

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// abcNet: A -> B (None, Positive), C -> B (None, Negative)
func abcNet(t *testing.T) (*BioNet, Node, Node, Node) {
	t.Helper()
	b := New("abc")
	a := mustNode(t, b, "A")
	bn := mustNode(t, b, "B")
	c := mustNode(t, b, "C")
	mustEdge(t, b, a, bn, SignPair(None, Positive))
	mustEdge(t, b, c, bn, SignPair(None, Negative))
	return b, a, bn, c
}

func TestQueries_SignedInputs(t *testing.T) {
	b, a, bn, c := abcNet(t)

	assert.Equal(t, []uint64{bn.ID}, b.NodesWithPositiveInputLink())
	assert.Equal(t, []uint64{bn.ID}, b.NodesWithNegativeInputLink())
	assert.Equal(t, []uint64{a.ID, c.ID}, b.NodesWithoutPositiveInputLink())
	assert.Equal(t, []uint64{a.ID, c.ID}, b.NodesWithoutNegativeInputLink())
	assert.Equal(t, []uint64{bn.ID}, b.NodesWithoutOutputLinks())
	assert.Equal(t, []uint64{}, b.NodesWithInputLink(None))

	assert.Equal(t, []string{"A", "C"}, b.NodeNames(b.NodesWithoutPositiveInputLink()))
}

func TestQueries_WithoutOutputLinks(t *testing.T) {
	b := New("abc")
	a := mustNode(t, b, "A")
	bn := mustNode(t, b, "B")
	c := mustNode(t, b, "C")
	mustEdge(t, b, a, bn, SignPair(None, Positive))

	assert.Equal(t, []uint64{bn.ID, c.ID}, b.NodesWithoutOutputLinks())
}

func TestQueries_InteractionExcluded(t *testing.T) {
	b := New("motif")
	x := mustNode(t, b, "X")
	y := mustNode(t, b, "Y")
	z := mustNode(t, b, "Z")
	i := mustInteraction(t, b, "I")
	mustEdge(t, b, x, i, SignPair(None, Positive))
	mustEdge(t, b, y, i, SignPair(None, Positive))
	mustEdge(t, b, i, z, SignPair(None, Positive))

	assert.Equal(t, []uint64{z.ID}, b.NodesWithPositiveInputLink())

	for name, result := range map[string][]uint64{
		"with positive":    b.NodesWithPositiveInputLink(),
		"with negative":    b.NodesWithNegativeInputLink(),
		"without positive": b.NodesWithoutPositiveInputLink(),
		"without negative": b.NodesWithoutNegativeInputLink(),
		"without outputs":  b.NodesWithoutOutputLinks(),
		"least inputs":     b.NodesWithLeastNumberOfInputs(),
		"least outputs":    b.NodesWithLeastNumberOfOutputs(),
	} {
		assert.NotContains(t, result, i.ID, name)
	}
}

func TestQueries_LeastNumberOfLinks(t *testing.T) {
	b := New("degrees")
	a := mustNode(t, b, "A")
	bn := mustNode(t, b, "B")
	c := mustNode(t, b, "C")
	d := mustNode(t, b, "D")
	hub := mustInteraction(t, b, "hub")

	mustEdge(t, b, a, bn, SignPair(None, Positive))
	mustEdge(t, b, a, c, SignPair(None, Positive))
	mustEdge(t, b, bn, c, SignPair(None, Negative))
	mustEdge(t, b, c, d, SignPair(None, Positive))
	mustEdge(t, b, d, a, SignPair(None, Positive))

	// inputs: A=1 B=1 C=2 D=1; outputs: A=2 B=1 C=1 D=1
	assert.Equal(t, []uint64{a.ID, bn.ID, d.ID}, b.NodesWithLeastNumberOfInputs())
	assert.Equal(t, []uint64{bn.ID, c.ID, d.ID}, b.NodesWithLeastNumberOfOutputs())

	// the hub has zero links but is not an entity
	assert.NotContains(t, b.NodesWithLeastNumberOfInputs(), hub.ID)
}

func TestQueries_EmptyNetwork(t *testing.T) {
	b := New("empty")
	queries := []func() []uint64{
		b.NodesWithPositiveInputLink,
		b.NodesWithNegativeInputLink,
		b.NodesWithoutPositiveInputLink,
		b.NodesWithoutNegativeInputLink,
		b.NodesWithoutOutputLinks,
		b.NodesWithLeastNumberOfInputs,
		b.NodesWithLeastNumberOfOutputs,
	}
	for _, q := range queries {
		got := q()
		require.NotNil(t, got)
		assert.Empty(t, got)
	}

	mustInteraction(t, b, "only-hub")
	assert.Empty(t, b.NodesWithLeastNumberOfInputs())
}

func TestQueries_DoNotMutate(t *testing.T) {
	b, _, _, _ := abcNet(t)
	before := b.toDocument()

	b.NodesWithPositiveInputLink()
	b.NodesWithoutNegativeInputLink()
	b.NodesWithLeastNumberOfOutputs()

	assert.Equal(t, before, b.toDocument())
}

func TestMotifs(t *testing.T) {
	b := New("immune")
	ap := mustNode(t, b, "Ap")
	v := mustNode(t, b, "V")
	apc := mustNode(t, b, "Apc")
	thn := mustNode(t, b, "Thn")
	the := mustNode(t, b, "The")

	act, err := b.CreatePositiveInteraction("ap_activation", ap, v, apc)
	require.NoError(t, err)
	assert.Equal(t, Interaction, act.Type)
	assert.Len(t, act.InputLinks, 2)
	assert.Len(t, act.OutputLinks, 1)

	out, err := b.Edge(act.OutputLinks[0])
	require.NoError(t, err)
	assert.Equal(t, apc.ID, out.Dest)
	assert.Equal(t, SignPair(None, Positive), out.Signs)
	assert.Equal(t, PositiveInteraction, out.LinkType)

	diff, err := b.CreateDifferentiationWithInfluence("th_differentiation", thn, apc, the, Positive)
	require.NoError(t, err)
	in0, _ := b.Edge(diff.InputLinks[0])
	in1, _ := b.Edge(diff.InputLinks[1])
	assert.Equal(t, SignPair(Negative, None), in0.Signs)
	assert.Equal(t, thn.ID, in0.Src)
	assert.Equal(t, SignPair(None, Positive), in1.Signs)
	assert.Equal(t, apc.ID, in1.Src)

	neg, err := b.CreateNegativeInteraction("v_clearance", apc, the, v)
	require.NoError(t, err)
	negOut, _ := b.Edge(neg.OutputLinks[0])
	assert.Equal(t, SignPair(None, Negative), negOut.Signs)

	assert.Equal(t, []uint64{apc.ID, the.ID}, b.NodesWithPositiveInputLink())
	assert.Equal(t, []uint64{v.ID}, b.NodesWithNegativeInputLink())
}

func TestMotifs_AtomicOnFailure(t *testing.T) {
	b := New("immune")
	ap := mustNode(t, b, "Ap")
	v := mustNode(t, b, "V")
	ghost := Node{ID: 99, Name: "Ghost"}
	before := b.toDocument()

	_, err := b.CreatePositiveInteraction("act", ap, v, ghost)
	require.ErrorIs(t, err, ErrNodeNotFound)
	assert.Equal(t, EndpointDestination, UnresolvedEndpoint(err))

	_, err = b.CreateNegativeInteraction("Ap", ap, v, v)
	require.ErrorIs(t, err, ErrDuplicateName)

	_, err = b.CreateDifferentiationWithInfluence("diff", ap, v, v, Sign(9))
	require.ErrorIs(t, err, ErrInvalidSign)

	assert.Equal(t, before, b.toDocument())
}
