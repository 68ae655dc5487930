package memory

import (
	"fmt"

	"designstore/internal/metamodel"
	"designstore/internal/value"
)

// ForeignStructure is the wire-shape a structural tag takes outside the
// store (§4.C "foreign record"): Origin/Target are only meaningful when
// Kind is metamodel.Edge.
type ForeignStructure struct {
	Kind   metamodel.StructuralKind
	Origin int64
	Target int64
}

// ForeignRecord is the serialization-neutral shape one object's state
// takes when crossing the store boundary — built for an embedder to map
// to or from its own document format, not for any particular file format
// (on-disk archiving is explicitly out of this store's scope).
type ForeignRecord struct {
	ObjectID   int64
	SnapshotID int64
	TypeName   string
	Structure  ForeignStructure
	Parent     *int64
	Attributes map[string]value.Variant
}

// UnknownObjectTypeError reports a foreign record naming a type the bound
// metamodel does not declare.
type UnknownObjectTypeError struct {
	TypeName string
}

func (e *UnknownObjectTypeError) Error() string {
	return fmt.Sprintf("memory: unknown object type %q", e.TypeName)
}

// CreateSnapshotFromForeign resolves rec.TypeName against the bound
// metamodel and builds a snapshot at the IDs rec carries (reserving both
// with the identity allocator), so a caller rehydrating several related
// records can preserve cross-references between them.
func (m *Memory) CreateSnapshotFromForeign(rec ForeignRecord) (*ObjectSnapshot, error) {
	typ, ok := m.metamodel.TypeByName(rec.TypeName)
	if !ok {
		return nil, &UnknownObjectTypeError{TypeName: rec.TypeName}
	}

	var structure Structure
	switch rec.Structure.Kind {
	case metamodel.Edge:
		structure = EdgeStructure(ObjectID(rec.Structure.Origin), ObjectID(rec.Structure.Target))
	case metamodel.Node:
		structure = NodeStructure()
	default:
		structure = UnstructuredStructure()
	}
	if structure.Kind != typ.StructuralKind {
		return nil, fmt.Errorf("memory: type %q is %s, cannot create a %s structure", typ.Name, typ.StructuralKind, structure.Kind)
	}

	descs, err := typ.Attributes()
	if err != nil {
		return nil, err
	}
	attrs := make(map[string]value.Variant, len(descs))
	for k, v := range rec.Attributes {
		attrs[k] = v
	}
	for _, d := range descs {
		if _, has := attrs[d.Name]; !has && d.Default != nil {
			attrs[d.Name] = *d.Default
		}
	}

	objectID := rec.ObjectID
	m.alloc.allocate(&objectID)
	snapshotID := rec.SnapshotID
	m.alloc.allocate(&snapshotID)

	snap := &ObjectSnapshot{
		ObjectID:   ObjectID(objectID),
		SnapshotID: SnapshotID(snapshotID),
		Type:       typ,
		Structure:  structure,
		Attributes: attrs,
		State:      Transient,
	}
	if rec.Parent != nil {
		p := ObjectID(*rec.Parent)
		snap.Parent = &p
	}
	m.registerSnapshot(snap)
	return snap, nil
}

// ToForeign projects a snapshot into its wire-shape record.
func (s *ObjectSnapshot) ToForeign() ForeignRecord {
	fs := ForeignStructure{Kind: s.Structure.Kind}
	if s.Structure.Kind == metamodel.Edge {
		fs.Origin = int64(s.Structure.Origin)
		fs.Target = int64(s.Structure.Target)
	}
	var parent *int64
	if s.Parent != nil {
		p := int64(*s.Parent)
		parent = &p
	}
	return ForeignRecord{
		ObjectID:   int64(s.ObjectID),
		SnapshotID: int64(s.SnapshotID),
		TypeName:   s.Type.Name,
		Structure:  fs,
		Parent:     parent,
		Attributes: s.Attributes,
	}
}
