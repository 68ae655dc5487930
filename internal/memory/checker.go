package memory

import (
	"sort"

	"designstore/internal/metamodel"
)

// checkReferentialIntegrity walks every snapshot in the frame and reports
// any origin/target/parent/child reference to an object ID the frame
// does not hold (§4.C "referential integrity"). Objects removed from the
// frame (RemoveCascading) are, correctly, not present in f.entries, so a
// dangling reference to one is reported here.
func checkReferentialIntegrity(f *MutableFrame) []BrokenReference {
	var out []BrokenReference
	exists := func(id ObjectID) bool {
		_, ok := f.entries[id]
		return ok
	}
	for objID, e := range f.entries {
		s := e.snapshot
		if s.Structure.Kind == metamodel.Edge {
			if !exists(s.Structure.Origin) {
				out = append(out, BrokenReference{objID, "origin", s.Structure.Origin})
			}
			if !exists(s.Structure.Target) {
				out = append(out, BrokenReference{objID, "target", s.Structure.Target})
			}
		}
		if s.Parent != nil && !exists(*s.Parent) {
			out = append(out, BrokenReference{objID, "parent", *s.Parent})
		}
		for child := range s.Children {
			if !exists(child) {
				out = append(out, BrokenReference{objID, "child", child})
			}
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].ObjectID != out[j].ObjectID {
			return out[i].ObjectID < out[j].ObjectID
		}
		return out[i].Kind < out[j].Kind
	})
	return out
}

// checkTypeErrors validates every snapshot's attribute set against its
// ObjectType's resolved AttributeDescriptors (§4.C "type errors"):
// missing required attributes, attributes of the wrong Kind, and
// attributes the type does not declare at all.
func checkTypeErrors(f *MutableFrame) map[ObjectID][]TypeError {
	out := map[ObjectID][]TypeError{}
	for objID, e := range f.entries {
		s := e.snapshot
		attrs, err := s.Type.Attributes()
		if err != nil {
			out[objID] = append(out[objID], TypeError{Kind: "ambiguous-attributes"})
			continue
		}
		declared := make(map[string]metamodel.AttributeDescriptor, len(attrs))
		for _, a := range attrs {
			declared[a.Name] = a
		}
		for name, desc := range declared {
			v, has := s.Attributes[name]
			if !has {
				if desc.Default == nil {
					out[objID] = append(out[objID], TypeError{Attribute: name, Kind: "missing", Expected: desc.Kind})
				}
				continue
			}
			if v.Kind() != desc.Kind {
				out[objID] = append(out[objID], TypeError{Attribute: name, Kind: "wrong-type", Expected: desc.Kind, Got: v.Kind()})
			}
		}
		for name, v := range s.Attributes {
			if _, ok := declared[name]; !ok {
				out[objID] = append(out[objID], TypeError{Attribute: name, Kind: "unknown", Got: v.Kind()})
			}
		}
		if entries, ok := out[objID]; ok {
			sort.Slice(entries, func(i, j int) bool { return entries[i].Attribute < entries[j].Attribute })
		}
	}
	return out
}

// CheckConstraints evaluates every constraint in mm against frame and
// reports the objects violating each one (§4.D, component D).
func CheckConstraints(mm *metamodel.Metamodel, frame Frame) []ConstraintViolation {
	var out []ConstraintViolation
	for _, c := range mm.Constraints {
		violators := c.Violators(frameView{frame})
		if len(violators) == 0 {
			continue
		}
		ids := make([]ObjectID, len(violators))
		for i, v := range violators {
			ids[i] = ObjectID(v.ID)
		}
		sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
		out = append(out, ConstraintViolation{Constraint: c, Objects: ids})
	}
	return out
}

// frameView adapts a memory.Frame to metamodel.FrameView.
type frameView struct{ f Frame }

func (v frameView) Candidates() []metamodel.Candidate { return v.f.Candidates() }
