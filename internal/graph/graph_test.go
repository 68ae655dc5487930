package graph_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"designstore/internal/graph"
	"designstore/internal/memory"
	"designstore/internal/metamodel"
)

func nodeType() metamodel.ObjectType {
	return metamodel.ObjectType{Name: "node", StructuralKind: metamodel.Node}
}

func edgeType() metamodel.ObjectType {
	return metamodel.ObjectType{Name: "edge", StructuralKind: metamodel.Edge}
}

func TestTopologicalSortLinearChain(t *testing.T) {
	mm := metamodel.New()
	mm.AddType(nodeType())
	mm.AddType(edgeType())
	mem := memory.New(mm)

	f := mem.CreateFrame()
	a, err := f.Create(nodeType(), memory.NodeStructure(), nil)
	require.NoError(t, err)
	b, err := f.Create(nodeType(), memory.NodeStructure(), nil)
	require.NoError(t, err)
	c, err := f.Create(nodeType(), memory.NodeStructure(), nil)
	require.NoError(t, err)
	_, err = f.Create(edgeType(), memory.EdgeStructure(a, b), nil)
	require.NoError(t, err)
	_, err = f.Create(edgeType(), memory.EdgeStructure(b, c), nil)
	require.NoError(t, err)

	stable, err := mem.Accept(f, true)
	require.NoError(t, err)

	v := graph.New(stable)
	order, err := v.TopologicalSort(nodeIDs(v), edgeIDs(v))
	require.NoError(t, err)
	assert.Equal(t, []memory.ObjectID{a, b, c}, order)

	// The spec's worked example orders an explicit, differently-ordered
	// node subset rather than the whole view.
	reordered, err := v.TopologicalSort([]memory.ObjectID{b, c, a}, edgeIDs(v))
	require.NoError(t, err)
	assert.Equal(t, []memory.ObjectID{a, b, c}, reordered)
}

func nodeIDs(v *graph.View) []memory.ObjectID {
	var out []memory.ObjectID
	for _, n := range v.Nodes() {
		out = append(out, n.ObjectID)
	}
	return out
}

func edgeIDs(v *graph.View) []memory.ObjectID {
	var out []memory.ObjectID
	for _, e := range v.Edges() {
		out = append(out, e.ObjectID)
	}
	return out
}

func TestTopologicalSortDetectsCycle(t *testing.T) {
	mm := metamodel.New()
	mm.AddType(nodeType())
	mm.AddType(edgeType())
	mem := memory.New(mm)

	f := mem.CreateFrame()
	a, err := f.Create(nodeType(), memory.NodeStructure(), nil)
	require.NoError(t, err)
	b, err := f.Create(nodeType(), memory.NodeStructure(), nil)
	require.NoError(t, err)
	c, err := f.Create(nodeType(), memory.NodeStructure(), nil)
	require.NoError(t, err)
	_, err = f.Create(edgeType(), memory.EdgeStructure(a, b), nil)
	require.NoError(t, err)
	_, err = f.Create(edgeType(), memory.EdgeStructure(b, c), nil)
	require.NoError(t, err)
	_, err = f.Create(edgeType(), memory.EdgeStructure(c, a), nil)
	require.NoError(t, err)

	stable, err := mem.Accept(f, true)
	require.NoError(t, err)

	v := graph.New(stable)
	_, err = v.TopologicalSort(nodeIDs(v), edgeIDs(v))
	require.Error(t, err)
	var cycleErr *graph.GraphCycle
	require.ErrorAs(t, err, &cycleErr)
	assert.NotEmpty(t, cycleErr.BackEdges)
}

func TestNeighboursAndHood(t *testing.T) {
	mm := metamodel.New()
	mm.AddType(nodeType())
	mm.AddType(edgeType())
	mem := memory.New(mm)

	f := mem.CreateFrame()
	a, err := f.Create(nodeType(), memory.NodeStructure(), nil)
	require.NoError(t, err)
	b, err := f.Create(nodeType(), memory.NodeStructure(), nil)
	require.NoError(t, err)
	c, err := f.Create(nodeType(), memory.NodeStructure(), nil)
	require.NoError(t, err)
	_, err = f.Create(edgeType(), memory.EdgeStructure(a, b), nil)
	require.NoError(t, err)
	_, err = f.Create(edgeType(), memory.EdgeStructure(b, c), nil)
	require.NoError(t, err)

	stable, err := mem.Accept(f, true)
	require.NoError(t, err)
	v := graph.New(stable)

	assert.Equal(t, []memory.ObjectID{b}, v.Neighbours(a))

	outHood, err := v.Hood(a, graph.HoodSelector{Direction: graph.Outgoing, Predicate: metamodel.Any()})
	require.NoError(t, err)
	assert.Equal(t, []memory.ObjectID{b}, outHood.Nodes)
	assert.Len(t, outHood.Edges, 1)

	inHood, err := v.Hood(c, graph.HoodSelector{Direction: graph.Incoming, Predicate: metamodel.Any()})
	require.NoError(t, err)
	assert.Equal(t, []memory.ObjectID{b}, inHood.Nodes)
	assert.Len(t, inHood.Edges, 1)

	_, err = v.Hood(a, graph.HoodSelector{Direction: graph.Incoming, Predicate: metamodel.Any()})
	require.NoError(t, err)

	none, err := v.Hood(a, graph.HoodSelector{Direction: graph.Outgoing, Predicate: metamodel.IsType("nonexistent-type")})
	require.NoError(t, err)
	assert.Empty(t, none.Nodes)
	assert.Empty(t, none.Edges)
}

func TestSelectNodesByPredicate(t *testing.T) {
	typed := metamodel.ObjectType{
		Name:           "tagged",
		StructuralKind: metamodel.Node,
		Traits: []metamodel.Trait{{
			Name: "taggable",
		}},
	}
	mm := metamodel.New()
	mm.AddType(typed)
	mem := memory.New(mm)

	f := mem.CreateFrame()
	_, err := f.Create(typed, memory.NodeStructure(), nil)
	require.NoError(t, err)

	stable, err := mem.Accept(f, true)
	require.NoError(t, err)
	v := graph.New(stable)

	matched := v.SelectNodes(metamodel.HasTrait("taggable"))
	assert.Len(t, matched, 1)

	unmatched := v.SelectNodes(metamodel.HasTrait("nope"))
	assert.Empty(t, unmatched)
}
