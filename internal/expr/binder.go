package expr

import (
	"strconv"
	"strings"

	"designstore/internal/value"
)

// VariableReference names where a bound variable's value comes from at
// evaluation time (§4.F "VariableReference = object(ObjectID) |
// builtin(BuiltinVariable)"). Binding resolves a name to one of these;
// Environment.Resolve turns a reference into a runtime value.Variant.
type VariableReference struct {
	IsObject bool
	ObjectID int64  // meaningful when IsObject
	Name     string // attribute name when IsObject, builtin name otherwise
}

// Scope is what the binder resolves variable and function names against.
// internal/memory-backed callers implement this over a frame; tests and
// the evaluator's own fixtures can implement it directly.
type Scope interface {
	ResolveVariable(name string) (ref VariableReference, kind value.Kind, ok bool)
	ResolveFunction(name string) (FunctionSignature, bool)
}

// Bound is a trivia-free, name-resolved expression node ready for
// repeated evaluation. Every node knows its own static value.Kind, so a
// caller can report a bound expression's result type before ever
// evaluating it.
type Bound interface {
	Kind() value.Kind
	isBound()
}

// BoundNumber is a literal value, parsed once at bind time.
type BoundNumber struct {
	Value value.Variant
}

func (b BoundNumber) Kind() value.Kind { return b.Value.Kind() }
func (BoundNumber) isBound()           {}

// BoundVariable is a resolved variable reference.
type BoundVariable struct {
	Name string
	Ref  VariableReference
	K    value.Kind
}

func (b BoundVariable) Kind() value.Kind { return b.K }
func (BoundVariable) isBound()           {}

// BoundUnary is a resolved unary expression.
type BoundUnary struct {
	Op      string
	Operand Bound
	K       value.Kind
}

func (b BoundUnary) Kind() value.Kind { return b.K }
func (BoundUnary) isBound()           {}

// BoundBinary is a resolved binary expression.
type BoundBinary struct {
	Op          string
	Left, Right Bound
	K           value.Kind
}

func (b BoundBinary) Kind() value.Kind { return b.K }
func (BoundBinary) isBound()           {}

// BoundCall is a resolved function call, its signature already validated
// against its bound arguments' kinds.
type BoundCall struct {
	Name      string
	Signature FunctionSignature
	Args      []Bound
}

func (b BoundCall) Kind() value.Kind { return b.Signature.Return }
func (BoundCall) isBound()           {}

// Bind resolves every variable and function call in expr against scope,
// producing a Bound tree (§4.F "binder"). It returns the first error
// encountered: *BindError for an unresolved name or a signature
// mismatch, or a *strconv.NumError for a numeric literal strconv cannot
// parse (for example an integer literal outside the int64 range, which
// the lexer still produces as a number token).
func Bind(e Expr, scope Scope) (Bound, error) {
	switch n := e.(type) {
	case NumberLit:
		return bindNumber(n)

	case VariableRef:
		ref, kind, ok := scope.ResolveVariable(n.Name)
		if !ok {
			return nil, &BindError{Kind: UnknownVariable, Name: n.Name}
		}
		return BoundVariable{Name: n.Name, Ref: ref, K: kind}, nil

	case UnaryExpr:
		operand, err := Bind(n.Operand, scope)
		if err != nil {
			return nil, err
		}
		return BoundUnary{Op: n.Op, Operand: operand, K: operand.Kind()}, nil

	case BinaryExpr:
		left, err := Bind(n.Left, scope)
		if err != nil {
			return nil, err
		}
		right, err := Bind(n.Right, scope)
		if err != nil {
			return nil, err
		}
		return BoundBinary{Op: n.Op, Left: left, Right: right, K: arithmeticResultKind(left.Kind(), right.Kind())}, nil

	case CallExpr:
		sig, ok := scope.ResolveFunction(n.Name)
		if !ok {
			return nil, &BindError{Kind: UnknownFunction, Name: n.Name}
		}
		args := make([]Bound, len(n.Args))
		kinds := make([]value.Kind, len(n.Args))
		for i, a := range n.Args {
			bound, err := Bind(a, scope)
			if err != nil {
				return nil, err
			}
			args[i] = bound
			kinds[i] = bound.Kind()
		}
		if err := sig.Validate(kinds); err != nil {
			return nil, err
		}
		return BoundCall{Name: n.Name, Signature: sig, Args: args}, nil

	default:
		return nil, &BindError{Kind: UnknownVariable, Name: "<malformed expression>"}
	}
}

func bindNumber(n NumberLit) (Bound, error) {
	text := strings.ReplaceAll(n.Text, "_", "")
	if n.IsFloat {
		f, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return nil, err
		}
		return BoundNumber{Value: value.Double(f)}, nil
	}
	i, err := strconv.ParseInt(text, 10, 64)
	if err != nil {
		return nil, err
	}
	return BoundNumber{Value: value.Int(i)}, nil
}

// arithmeticResultKind is the numeric promotion rule arithmetic
// operators use: Double if either operand is Double, Int otherwise. The
// binder does not reject non-numeric operand kinds: any pair without a
// Double operand, non-numeric ones included, is reported as Int, which
// keeps binding itself total over well-formed ASTs.
func arithmeticResultKind(left, right value.Kind) value.Kind {
	if left == value.KindDouble || right == value.KindDouble {
		return value.KindDouble
	}
	return value.KindInt
}
