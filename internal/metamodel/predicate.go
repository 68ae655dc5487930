package metamodel

import "designstore/internal/value"

// Candidate is the minimal view of one frame object a Predicate or
// Requirement needs: enough to test type/trait membership and structural
// edge endpoints, without the predicate algebra depending on the memory
// package's Frame/ObjectSnapshot types (which in turn depend on
// metamodel — Candidate breaks that cycle).
type Candidate struct {
	ID         int64
	TypeName   string
	Traits     []string // names of traits t.Type lists, for HasTrait
	Kind       StructuralKind
	Origin     *int64                   // non-nil only when Kind == Edge
	Target     *int64                   // non-nil only when Kind == Edge
	Attributes map[string]value.Variant // attribute name -> value, for UniqueAttribute
}

func (c Candidate) hasTrait(name string) bool {
	for _, t := range c.Traits {
		if t == name {
			return true
		}
	}
	return false
}

// FrameView is whatever a Predicate selects candidates from. internal/memory
// implements this over a Frame's snapshot set.
type FrameView interface {
	Candidates() []Candidate
}

// Predicate selects a subset of a frame's objects. It is a closed sum type
// (§9 "Predicate algebra ... encoded as a sum type with explicit
// combinators"): each constructor below returns a Predicate value built
// from a small set of variants, never a user-defined interface
// implementation, so Select is a total recursive function.
type Predicate struct {
	kind      predicateKind
	typeName  string
	traitName string
	operands  []Predicate
}

type predicateKind int

const (
	predAny predicateKind = iota
	predIsType
	predHasTrait
	predAnd
	predOr
	predNot
)

// Any selects every object in the frame.
func Any() Predicate { return Predicate{kind: predAny} }

// IsType selects objects whose type name equals typeName.
func IsType(typeName string) Predicate {
	return Predicate{kind: predIsType, typeName: typeName}
}

// HasTrait selects objects whose type lists the named trait.
func HasTrait(traitName string) Predicate {
	return Predicate{kind: predHasTrait, traitName: traitName}
}

// And selects objects matched by every operand.
func And(operands ...Predicate) Predicate {
	return Predicate{kind: predAnd, operands: operands}
}

// Or selects objects matched by at least one operand.
func Or(operands ...Predicate) Predicate {
	return Predicate{kind: predOr, operands: operands}
}

// Not selects objects not matched by operand.
func Not(operand Predicate) Predicate {
	return Predicate{kind: predNot, operands: []Predicate{operand}}
}

// Select evaluates p against every candidate in frame, in candidate order.
func (p Predicate) Select(frame FrameView) []Candidate {
	var out []Candidate
	for _, c := range frame.Candidates() {
		if p.matches(c) {
			out = append(out, c)
		}
	}
	return out
}

func (p Predicate) matches(c Candidate) bool {
	switch p.kind {
	case predAny:
		return true
	case predIsType:
		return c.TypeName == p.typeName
	case predHasTrait:
		return c.hasTrait(p.traitName)
	case predAnd:
		for _, op := range p.operands {
			if !op.matches(c) {
				return false
			}
		}
		return true
	case predOr:
		for _, op := range p.operands {
			if op.matches(c) {
				return true
			}
		}
		return false
	case predNot:
		return !p.operands[0].matches(c)
	default:
		panic("metamodel: unknown predicate kind")
	}
}
