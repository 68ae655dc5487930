package memory

import (
	"designstore/internal/metamodel"
	"designstore/internal/value"
)

// ObjectID, SnapshotID and FrameID are drawn from the same identity
// space (§2 "Identifier") but kept as distinct types so a value from one
// table can never be passed where another is expected by accident.
type (
	ObjectID   int64
	SnapshotID int64
	FrameID    int64
)

// SnapshotState tracks where a snapshot sits in its lifecycle (§4.C
// "uninitialized / transient / validated"). A validated snapshot is
// never mutated in place; memory.DeriveSnapshot copies it instead.
type SnapshotState int

const (
	Uninitialized SnapshotState = iota
	Transient
	Validated
)

func (s SnapshotState) String() string {
	switch s {
	case Uninitialized:
		return "uninitialized"
	case Transient:
		return "transient"
	case Validated:
		return "validated"
	default:
		return "unknown"
	}
}

// Structure tags an object snapshot as unstructured, a node, or an edge.
// Origin and Target are only meaningful when Kind is metamodel.Edge.
type Structure struct {
	Kind   metamodel.StructuralKind
	Origin ObjectID
	Target ObjectID
}

// UnstructuredStructure returns the structure tag for a plain object.
func UnstructuredStructure() Structure {
	return Structure{Kind: metamodel.Unstructured}
}

// NodeStructure returns the structure tag for a graph node.
func NodeStructure() Structure {
	return Structure{Kind: metamodel.Node}
}

// EdgeStructure returns the structure tag for a graph edge running from
// origin to target.
func EdgeStructure(origin, target ObjectID) Structure {
	return Structure{Kind: metamodel.Edge, Origin: origin, Target: target}
}

// ObjectSnapshot is one immutable (once Validated) revision of an
// object's state (§4.C "ObjectSnapshot"). Object identity (ObjectID)
// persists across many snapshots; a new SnapshotID is minted whenever
// the object's state changes.
type ObjectSnapshot struct {
	ObjectID   ObjectID
	SnapshotID SnapshotID
	Type       metamodel.ObjectType
	Structure  Structure
	Attributes map[string]value.Variant
	Parent     *ObjectID
	Children   map[ObjectID]struct{}
	State      SnapshotState
}

// Attribute returns the named attribute's value, if present.
func (s *ObjectSnapshot) Attribute(name string) (value.Variant, bool) {
	v, ok := s.Attributes[name]
	return v, ok
}

// clone deep-copies the snapshot so the original is left untouched; used
// by derive_snapshot and by a mutable frame's copy-on-write.
func (s *ObjectSnapshot) clone() *ObjectSnapshot {
	attrs := make(map[string]value.Variant, len(s.Attributes))
	for k, v := range s.Attributes {
		attrs[k] = v
	}
	var children map[ObjectID]struct{}
	if s.Children != nil {
		children = make(map[ObjectID]struct{}, len(s.Children))
		for id := range s.Children {
			children[id] = struct{}{}
		}
	}
	var parent *ObjectID
	if s.Parent != nil {
		p := *s.Parent
		parent = &p
	}
	return &ObjectSnapshot{
		ObjectID:   s.ObjectID,
		SnapshotID: s.SnapshotID,
		Type:       s.Type,
		Structure:  s.Structure,
		Attributes: attrs,
		Parent:     parent,
		Children:   children,
		State:      s.State,
	}
}

// Candidate projects the snapshot into the metamodel package's
// predicate/constraint evaluation shape.
func (s *ObjectSnapshot) Candidate() metamodel.Candidate {
	var origin, target *int64
	if s.Structure.Kind == metamodel.Edge {
		o := int64(s.Structure.Origin)
		t := int64(s.Structure.Target)
		origin, target = &o, &t
	}
	traits := make([]string, len(s.Type.Traits))
	for i, t := range s.Type.Traits {
		traits[i] = t.Name
	}
	return metamodel.Candidate{
		ID:         int64(s.ObjectID),
		TypeName:   s.Type.Name,
		Traits:     traits,
		Kind:       s.Structure.Kind,
		Origin:     origin,
		Target:     target,
		Attributes: s.Attributes,
	}
}
