package metamodel

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"designstore/internal/value"
)

type fakeFrame []Candidate

func (f fakeFrame) Candidates() []Candidate { return []Candidate(f) }

func TestPredicateCombinators(t *testing.T) {
	frame := fakeFrame{
		{ID: 1, TypeName: "Stock", Traits: []string{"Named"}},
		{ID: 2, TypeName: "Flow", Traits: []string{"Named", "Rated"}},
		{ID: 3, TypeName: "Flow", Traits: []string{}},
	}

	assert.Len(t, Any().Select(frame), 3)
	assert.Len(t, IsType("Flow").Select(frame), 2)
	assert.Len(t, HasTrait("Rated").Select(frame), 1)
	assert.Len(t, And(IsType("Flow"), HasTrait("Named")).Select(frame), 1)
	assert.Len(t, Or(IsType("Stock"), HasTrait("Rated")).Select(frame), 2)
	assert.Len(t, Not(IsType("Flow")).Select(frame), 1)
}

func TestConstraintRejectAll(t *testing.T) {
	frame := fakeFrame{{ID: 1, TypeName: "Stock"}, {ID: 2, TypeName: "Stock"}}
	c := Constraint{Name: "no-stocks", Predicate: IsType("Stock"), Requirement: RejectAll()}
	assert.Len(t, c.Violators(frame), 2)
}

func TestConstraintUniqueAttribute(t *testing.T) {
	frame := fakeFrame{
		{ID: 1, TypeName: "Stock", Attributes: map[string]value.Variant{"name": value.String("a")}},
		{ID: 2, TypeName: "Stock", Attributes: map[string]value.Variant{"name": value.String("a")}},
		{ID: 3, TypeName: "Stock", Attributes: map[string]value.Variant{"name": value.String("b")}},
	}
	req := UniqueAttribute("name")
	violators := req.Check(frame.Candidates())
	assert.Len(t, violators, 2)
}

func TestConstraintUnidirectionalEdge(t *testing.T) {
	self := int64(1)
	other := int64(2)
	frame := fakeFrame{
		{ID: 1, TypeName: "Link", Kind: Edge, Origin: &self, Target: &self},
		{ID: 2, TypeName: "Link", Kind: Edge, Origin: &self, Target: &other},
	}
	violators := UnidirectionalEdge().Check(frame.Candidates())
	assert.Len(t, violators, 1)
	assert.Equal(t, int64(1), violators[0].ID)
}

func TestConstraintAcyclicGraph(t *testing.T) {
	a, b, c := int64(1), int64(2), int64(3)
	frame := fakeFrame{
		{ID: 10, TypeName: "Link", Kind: Edge, Origin: &a, Target: &b},
		{ID: 11, TypeName: "Link", Kind: Edge, Origin: &b, Target: &c},
	}
	violators := AcyclicGraph(IsType("Link")).Check(frame.Candidates())
	assert.Empty(t, violators)

	cyclic := append(fakeFrame{}, frame...)
	cyclic = append(cyclic, Candidate{ID: 12, TypeName: "Link", Kind: Edge, Origin: &c, Target: &a})
	violators = AcyclicGraph(IsType("Link")).Check(cyclic.Candidates())
	assert.Len(t, violators, 1)
}
