package memory

import (
	"fmt"
	"strings"

	"designstore/internal/metamodel"
	"designstore/internal/value"
)

// UnknownObjectError reports a reference to an object ID the frame does
// not (or no longer) contain.
type UnknownObjectError struct {
	ObjectID ObjectID
}

func (e *UnknownObjectError) Error() string {
	return fmt.Sprintf("memory: unknown object %d", e.ObjectID)
}

// BrokenReference describes one referential-integrity failure found
// while validating a frame (§4.C "referential integrity").
type BrokenReference struct {
	ObjectID ObjectID
	Kind     string // "origin" | "target" | "parent" | "child"
	Missing  ObjectID
}

func (b BrokenReference) String() string {
	return fmt.Sprintf("object %d has a dangling %s reference to %d", b.ObjectID, b.Kind, b.Missing)
}

// TypeError describes one attribute failing to match its
// AttributeDescriptor during frame validation (§4.C "type errors").
type TypeError struct {
	Attribute string
	Kind      string // "missing" | "wrong-type" | "unknown" | "ambiguous-attributes"
	Expected  value.Kind
	Got       value.Kind
}

func (t TypeError) String() string {
	switch t.Kind {
	case "missing":
		return fmt.Sprintf("attribute %q is missing (expected %s)", t.Attribute, t.Expected)
	case "wrong-type":
		return fmt.Sprintf("attribute %q is %s, expected %s", t.Attribute, t.Got, t.Expected)
	case "unknown":
		return fmt.Sprintf("attribute %q is not declared by the object's type", t.Attribute)
	default:
		return fmt.Sprintf("attribute %q: %s", t.Attribute, t.Kind)
	}
}

// ConstraintViolation names a Constraint and the objects that violate it.
type ConstraintViolation struct {
	Constraint metamodel.Constraint
	Objects    []ObjectID
}

// FrameValidationError aggregates every problem found while validating a
// frame during Accept (§4.C, §7 "FrameValidationError"). Accept either
// promotes a frame wholesale or returns this error with nothing changed;
// it never partially applies a frame.
type FrameValidationError struct {
	BrokenReferences []BrokenReference
	TypeErrors       map[ObjectID][]TypeError
	Violations       []ConstraintViolation
}

func (e *FrameValidationError) Error() string {
	var b strings.Builder
	b.WriteString("memory: frame failed validation")
	for _, r := range e.BrokenReferences {
		fmt.Fprintf(&b, "; %s", r)
	}
	for id, errs := range e.TypeErrors {
		for _, te := range errs {
			fmt.Fprintf(&b, "; object %d: %s", id, te)
		}
	}
	for _, v := range e.Violations {
		fmt.Fprintf(&b, "; constraint %q violated by %v", v.Constraint.Name, v.Objects)
	}
	return b.String()
}

// IsEmpty reports whether no problems were found at all.
func (e *FrameValidationError) IsEmpty() bool {
	return len(e.BrokenReferences) == 0 && len(e.TypeErrors) == 0 && len(e.Violations) == 0
}
