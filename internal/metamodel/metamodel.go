// Package metamodel implements the schema layer (§4.B): object types,
// traits, attribute descriptors, structural kinds, the predicate algebra,
// and constraints.
package metamodel

import (
	"fmt"

	"designstore/internal/value"
)

// StructuralKind is the structural payload an ObjectType's snapshots carry.
type StructuralKind int

const (
	Unstructured StructuralKind = iota
	Node
	Edge
)

func (k StructuralKind) String() string {
	switch k {
	case Unstructured:
		return "unstructured"
	case Node:
		return "node"
	case Edge:
		return "edge"
	default:
		return fmt.Sprintf("StructuralKind(%d)", int(k))
	}
}

// AttributeDescriptor names one attribute a trait contributes: its value
// kind, an optional default, and optional documentation.
type AttributeDescriptor struct {
	Name    string
	Kind    value.Kind
	Default *value.Variant // nil means no default
	Doc     string
}

// Trait is a named, reusable group of attribute descriptors, used as a
// mixin on one or more ObjectTypes.
type Trait struct {
	Name       string
	Attributes []AttributeDescriptor
}

// AttributeByName returns the descriptor with the given name, if any.
func (t Trait) AttributeByName(name string) (AttributeDescriptor, bool) {
	for _, a := range t.Attributes {
		if a.Name == name {
			return a, true
		}
	}
	return AttributeDescriptor{}, false
}

// DuplicateAttributeError reports that two traits on the same ObjectType
// declare the same attribute name — a metamodel error (§4.B "Attribute
// lookup across traits must be unambiguous").
type DuplicateAttributeError struct {
	ObjectType string
	Attribute  string
	Traits     []string
}

func (e *DuplicateAttributeError) Error() string {
	return fmt.Sprintf("metamodel: attribute %q declared by multiple traits %v on type %q",
		e.Attribute, e.Traits, e.ObjectType)
}

// ObjectType is a named type: a structural kind plus an ordered list of
// traits, from which the full set of attribute descriptors is derived.
type ObjectType struct {
	Name           string
	StructuralKind StructuralKind
	Traits         []Trait
}

// Attributes returns the full, deduplicated attribute descriptor list for
// t, walking traits in declaration order. It returns a
// *DuplicateAttributeError if two distinct traits declare the same
// attribute name (unambiguous resolution is required by §4.B).
func (t ObjectType) Attributes() ([]AttributeDescriptor, error) {
	var out []AttributeDescriptor
	owner := map[string]string{} // attribute name -> trait name
	for _, tr := range t.Traits {
		for _, a := range tr.Attributes {
			if prevTrait, seen := owner[a.Name]; seen {
				if prevTrait != tr.Name {
					return nil, &DuplicateAttributeError{
						ObjectType: t.Name,
						Attribute:  a.Name,
						Traits:     []string{prevTrait, tr.Name},
					}
				}
				continue
			}
			owner[a.Name] = tr.Name
			out = append(out, a)
		}
	}
	return out, nil
}

// AttributeByName resolves an attribute name against t's traits in order,
// first match wins (§4.B "the first match wins"). This never errors on
// shadowing — only Attributes() rejects an ambiguous metamodel (two
// distinct traits declaring the same name, whether or not their
// descriptors match); here a name declared by several traits simply
// resolves to the first trait that declares it.
func (t ObjectType) AttributeByName(name string) (AttributeDescriptor, bool) {
	for _, tr := range t.Traits {
		if a, ok := tr.AttributeByName(name); ok {
			return a, true
		}
	}
	return AttributeDescriptor{}, false
}

// HasTrait reports whether t lists a trait with the given name.
func (t ObjectType) HasTrait(name string) bool {
	for _, tr := range t.Traits {
		if tr.Name == name {
			return true
		}
	}
	return false
}

// BuiltinVariable is a named variable the expression language can bind to
// without going through an object attribute (§4.F binder).
type BuiltinVariable struct {
	Name string
	Kind value.Kind
}

// Metamodel aggregates the object types, traits, built-in variables, and
// constraints that govern one Memory.
type Metamodel struct {
	Types      []ObjectType
	Traits     []Trait
	Builtins   []BuiltinVariable
	Constraints []Constraint
}

// New constructs an empty Metamodel ready to have types/traits/constraints
// appended.
func New() *Metamodel {
	return &Metamodel{}
}

// TypeByName resolves a type by name, or returns ok=false.
func (m *Metamodel) TypeByName(name string) (ObjectType, bool) {
	for _, t := range m.Types {
		if t.Name == name {
			return t, true
		}
	}
	return ObjectType{}, false
}

// TraitByName resolves a trait by name, or returns ok=false.
func (m *Metamodel) TraitByName(name string) (Trait, bool) {
	for _, t := range m.Traits {
		if t.Name == name {
			return t, true
		}
	}
	return Trait{}, false
}

// BuiltinByName resolves a built-in variable by name, or returns ok=false.
func (m *Metamodel) BuiltinByName(name string) (BuiltinVariable, bool) {
	for _, b := range m.Builtins {
		if b.Name == name {
			return b, true
		}
	}
	return BuiltinVariable{}, false
}

// AddType registers an ObjectType. It does not validate trait
// attribute-name ambiguity eagerly — that is checked lazily by
// ObjectType.Attributes(), matching spec.md's framing of it as a
// metamodel error surfaced on use, not on registration.
func (m *Metamodel) AddType(t ObjectType) { m.Types = append(m.Types, t) }

// AddTrait registers a Trait.
func (m *Metamodel) AddTrait(t Trait) { m.Traits = append(m.Traits, t) }

// AddBuiltin registers a BuiltinVariable.
func (m *Metamodel) AddBuiltin(b BuiltinVariable) { m.Builtins = append(m.Builtins, b) }

// AddConstraint registers a Constraint.
func (m *Metamodel) AddConstraint(c Constraint) { m.Constraints = append(m.Constraints, c) }
