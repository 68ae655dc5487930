// Package value implements the tagged scalar/array value model (§4.A):
// construction, coercion, equality with numeric promotion, ordering, and
// the convertibility graph between atom kinds.
package value

import (
	"fmt"
	"strconv"
	"strings"
)

// Kind identifies the shape of a Variant: a bare atom, or a homogeneous
// array of atoms of the given item kind.
type Kind int

const (
	KindInt Kind = iota
	KindDouble
	KindBool
	KindString
	KindPoint
	KindIntArray
	KindDoubleArray
	KindBoolArray
	KindStringArray
	KindPointArray
)

func (k Kind) String() string {
	switch k {
	case KindInt:
		return "int"
	case KindDouble:
		return "double"
	case KindBool:
		return "bool"
	case KindString:
		return "string"
	case KindPoint:
		return "point"
	case KindIntArray:
		return "int[]"
	case KindDoubleArray:
		return "double[]"
	case KindBoolArray:
		return "bool[]"
	case KindStringArray:
		return "string[]"
	case KindPointArray:
		return "point[]"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// IsArray reports whether k denotes an array kind.
func (k Kind) IsArray() bool {
	switch k {
	case KindIntArray, KindDoubleArray, KindBoolArray, KindStringArray, KindPointArray:
		return true
	default:
		return false
	}
}

// ItemKind returns the atom kind of an array kind. Panics if k is not an
// array kind — this is a programming error, never a well-formed caller
// mistake.
func (k Kind) ItemKind() Kind {
	switch k {
	case KindIntArray:
		return KindInt
	case KindDoubleArray:
		return KindDouble
	case KindBoolArray:
		return KindBool
	case KindStringArray:
		return KindString
	case KindPointArray:
		return KindPoint
	default:
		panic(fmt.Sprintf("value: %s is not an array kind", k))
	}
}

// arrayOf returns the array kind whose items are of the given atom kind.
func arrayOf(item Kind) Kind {
	switch item {
	case KindInt:
		return KindIntArray
	case KindDouble:
		return KindDoubleArray
	case KindBool:
		return KindBoolArray
	case KindString:
		return KindStringArray
	case KindPoint:
		return KindPointArray
	default:
		panic(fmt.Sprintf("value: %s is not an atom kind", item))
	}
}

// Point is the pair-of-doubles atom.
type Point struct {
	X, Y float64
}

// Variant is the sum-of-atom-or-array-of-atom value carried by every
// attribute. The zero Variant is KindInt(0).
type Variant struct {
	kind    Kind
	i       int64
	d       float64
	b       bool
	s       string
	pt      Point
	ints    []int64
	doubles []float64
	bools   []bool
	strs    []string
	pts     []Point
}

func Int(v int64) Variant      { return Variant{kind: KindInt, i: v} }
func Double(v float64) Variant { return Variant{kind: KindDouble, d: v} }
func Bool(v bool) Variant      { return Variant{kind: KindBool, b: v} }
func String(v string) Variant  { return Variant{kind: KindString, s: v} }
func PointOf(x, y float64) Variant {
	return Variant{kind: KindPoint, pt: Point{X: x, Y: y}}
}

func IntArray(v []int64) Variant {
	return Variant{kind: KindIntArray, ints: append([]int64(nil), v...)}
}
func DoubleArray(v []float64) Variant {
	return Variant{kind: KindDoubleArray, doubles: append([]float64(nil), v...)}
}
func BoolArray(v []bool) Variant {
	return Variant{kind: KindBoolArray, bools: append([]bool(nil), v...)}
}
func StringArray(v []string) Variant {
	return Variant{kind: KindStringArray, strs: append([]string(nil), v...)}
}
func PointArray(v []Point) Variant {
	return Variant{kind: KindPointArray, pts: append([]Point(nil), v...)}
}

// Kind reports the Variant's kind.
func (v Variant) Kind() Kind { return v.kind }

// IsArray reports whether v holds an array.
func (v Variant) IsArray() bool { return v.kind.IsArray() }

// Raw accessors. Each panics if the Variant is not of the matching kind —
// callers that don't control the kind should check Kind() first, or use
// the To* coercions below.

func (v Variant) AsInt() int64 {
	v.mustKind(KindInt)
	return v.i
}
func (v Variant) AsDouble() float64 {
	v.mustKind(KindDouble)
	return v.d
}
func (v Variant) AsBool() bool {
	v.mustKind(KindBool)
	return v.b
}
func (v Variant) AsString() string {
	v.mustKind(KindString)
	return v.s
}
func (v Variant) AsPoint() Point {
	v.mustKind(KindPoint)
	return v.pt
}
func (v Variant) AsIntArray() []int64 {
	v.mustKind(KindIntArray)
	return append([]int64(nil), v.ints...)
}
func (v Variant) AsDoubleArray() []float64 {
	v.mustKind(KindDoubleArray)
	return append([]float64(nil), v.doubles...)
}
func (v Variant) AsBoolArray() []bool {
	v.mustKind(KindBoolArray)
	return append([]bool(nil), v.bools...)
}
func (v Variant) AsStringArray() []string {
	v.mustKind(KindStringArray)
	return append([]string(nil), v.strs...)
}
func (v Variant) AsPointArray() []Point {
	v.mustKind(KindPointArray)
	return append([]Point(nil), v.pts...)
}

func (v Variant) mustKind(k Kind) {
	if v.kind != k {
		panic(fmt.Sprintf("value: expected %s, got %s", k, v.kind))
	}
}

// ConversionError reports a failed coercion (§7 "conversion-failed").
type ConversionError struct {
	From, To Kind
	Reason   string
}

func (e *ConversionError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("value: cannot convert %s to %s: %s", e.From, e.To, e.Reason)
	}
	return fmt.Sprintf("value: cannot convert %s to %s", e.From, e.To)
}

// IsConvertible reports whether v's kind can be converted to target,
// per the convertibility graph in §4.A: any atom -> string; string -> any
// atom (parse-dependent, so this reports the static possibility, not
// whether a particular string parses); int <-> double; bool only parses
// from string (never the reverse beyond string).
func (v Variant) IsConvertible(target Kind) bool {
	if v.kind == target {
		return true
	}
	if v.kind.IsArray() || target.IsArray() {
		return false
	}
	switch v.kind {
	case KindString:
		switch target {
		case KindInt, KindDouble, KindBool, KindPoint:
			return true
		}
		return false
	case KindInt, KindDouble, KindBool, KindPoint:
		return target == KindString || (target == KindDouble && v.kind == KindInt) || (target == KindInt && v.kind == KindDouble)
	}
	return false
}

// ToInt coerces v to an int64, per §4.A.
func (v Variant) ToInt() (int64, error) {
	switch v.kind {
	case KindInt:
		return v.i, nil
	case KindDouble:
		return int64(v.d), nil
	case KindString:
		n, err := strconv.ParseInt(strings.TrimSpace(v.s), 10, 64)
		if err != nil {
			return 0, &ConversionError{From: v.kind, To: KindInt, Reason: err.Error()}
		}
		return n, nil
	}
	return 0, &ConversionError{From: v.kind, To: KindInt}
}

// ToDouble coerces v to a float64, per §4.A. Parsing is culture-neutral:
// '.' is the only accepted decimal separator.
func (v Variant) ToDouble() (float64, error) {
	switch v.kind {
	case KindDouble:
		return v.d, nil
	case KindInt:
		return float64(v.i), nil
	case KindString:
		f, err := strconv.ParseFloat(strings.TrimSpace(v.s), 64)
		if err != nil {
			return 0, &ConversionError{From: v.kind, To: KindDouble, Reason: err.Error()}
		}
		return f, nil
	}
	return 0, &ConversionError{From: v.kind, To: KindDouble}
}

// ToBool coerces v to a bool. Only string -> bool is a defined conversion
// beyond the identity case; string literals are "true"/"false" (§4.A).
func (v Variant) ToBool() (bool, error) {
	switch v.kind {
	case KindBool:
		return v.b, nil
	case KindString:
		switch strings.TrimSpace(v.s) {
		case "true":
			return true, nil
		case "false":
			return false, nil
		}
		return false, &ConversionError{From: v.kind, To: KindBool, Reason: "expected true or false"}
	}
	return false, &ConversionError{From: v.kind, To: KindBool}
}

// ToString renders v using culture-neutral formatting: '.' decimal
// separator, "true"/"false" bool literals.
func (v Variant) ToString() (string, error) {
	switch v.kind {
	case KindString:
		return v.s, nil
	case KindInt:
		return strconv.FormatInt(v.i, 10), nil
	case KindDouble:
		return strconv.FormatFloat(v.d, 'g', -1, 64), nil
	case KindBool:
		if v.b {
			return "true", nil
		}
		return "false", nil
	case KindPoint:
		return fmt.Sprintf("(%s, %s)",
			strconv.FormatFloat(v.pt.X, 'g', -1, 64),
			strconv.FormatFloat(v.pt.Y, 'g', -1, 64)), nil
	}
	return "", &ConversionError{From: v.kind, To: KindString}
}

// NotComparableError reports an ordering attempt across incompatible
// kinds (§7 "not-comparable").
type NotComparableError struct {
	Lhs, Rhs Kind
}

func (e *NotComparableError) Error() string {
	return fmt.Sprintf("value: %s and %s are not comparable", e.Lhs, e.Rhs)
}

// Equal reports value equality with numeric cross-kind promotion: an int
// and a double compare equal if the int promoted to double equals the
// double. Arrays compare equal only to arrays of the same kind with equal
// elements; no numeric promotion applies to arrays, so an int array never
// equals a double array. Array kinds are not ordered, but they are
// equatable element-wise here since equality is defined for every kind.
func (v Variant) Equal(other Variant) bool {
	if v.kind.IsArray() || other.kind.IsArray() {
		return v.arrayEqual(other)
	}
	if isNumeric(v.kind) && isNumeric(other.kind) {
		av, aok := v.numeric()
		bv, bok := other.numeric()
		return aok && bok && av == bv
	}
	if v.kind != other.kind {
		return false
	}
	switch v.kind {
	case KindBool:
		return v.b == other.b
	case KindString:
		return v.s == other.s
	case KindPoint:
		return v.pt == other.pt
	}
	return false
}

func (v Variant) arrayEqual(other Variant) bool {
	if v.kind != other.kind {
		return false
	}
	switch v.kind {
	case KindIntArray:
		return int64SliceEqual(v.ints, other.ints)
	case KindDoubleArray:
		return float64SliceEqual(v.doubles, other.doubles)
	case KindBoolArray:
		return boolSliceEqual(v.bools, other.bools)
	case KindStringArray:
		return stringSliceEqual(v.strs, other.strs)
	case KindPointArray:
		if len(v.pts) != len(other.pts) {
			return false
		}
		for i := range v.pts {
			if v.pts[i] != other.pts[i] {
				return false
			}
		}
		return true
	}
	return false
}

func isNumeric(k Kind) bool { return k == KindInt || k == KindDouble }

func (v Variant) numeric() (float64, bool) {
	switch v.kind {
	case KindInt:
		return float64(v.i), true
	case KindDouble:
		return v.d, true
	}
	return 0, false
}

// Compare orders v against other within the numeric and string kinds.
// Points and arrays are not ordered: Compare returns a NotComparableError
// for them, and for any mismatched non-numeric pair.
func (v Variant) Compare(other Variant) (int, error) {
	if v.kind.IsArray() || other.kind.IsArray() || v.kind == KindPoint || other.kind == KindPoint {
		return 0, &NotComparableError{Lhs: v.kind, Rhs: other.kind}
	}
	if isNumeric(v.kind) && isNumeric(other.kind) {
		av, _ := v.numeric()
		bv, _ := other.numeric()
		switch {
		case av < bv:
			return -1, nil
		case av > bv:
			return 1, nil
		default:
			return 0, nil
		}
	}
	if v.kind == KindString && other.kind == KindString {
		return strings.Compare(v.s, other.s), nil
	}
	return 0, &NotComparableError{Lhs: v.kind, Rhs: other.kind}
}

func int64SliceEqual(a, b []int64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func float64SliceEqual(a, b []float64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func boolSliceEqual(a, b []bool) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func stringSliceEqual(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
