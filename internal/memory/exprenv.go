package memory

import (
	"fmt"

	"designstore/internal/expr"
	"designstore/internal/metamodel"
	"designstore/internal/value"
)

// ExprScope binds expr.Expr variables against one object of a frame and
// the metamodel's builtin variables: a bare name resolves to a builtin
// if the metamodel declares one by that name, and otherwise to an
// attribute of the scope's object. Function names never resolve, so any
// call binds to an unknown_function error. It implements expr.Scope.
type ExprScope struct {
	frame    Frame
	mm       *metamodel.Metamodel
	objectID ObjectID // the object attribute references are relative to
}

// NewExprScope binds expression variables against frame's objects,
// relative to objectID (so a bare attribute name like "width" resolves
// to that object's own attribute).
func NewExprScope(frame Frame, mm *metamodel.Metamodel, objectID ObjectID) *ExprScope {
	return &ExprScope{frame: frame, mm: mm, objectID: objectID}
}

func (s *ExprScope) ResolveVariable(name string) (expr.VariableReference, value.Kind, bool) {
	if b, ok := s.mm.BuiltinByName(name); ok {
		return expr.VariableReference{IsObject: false, Name: name}, b.Kind, true
	}
	obj, ok := s.frame.Snapshot(s.objectID)
	if !ok {
		return expr.VariableReference{}, 0, false
	}
	desc, ok := obj.Type.AttributeByName(name)
	if !ok {
		return expr.VariableReference{}, 0, false
	}
	return expr.VariableReference{IsObject: true, ObjectID: int64(s.objectID), Name: name}, desc.Kind, true
}

func (s *ExprScope) ResolveFunction(name string) (expr.FunctionSignature, bool) {
	return expr.FunctionSignature{}, false
}

// ExprEnvironment evaluates expr.Bound trees resolved by an ExprScope
// against live frame state. It implements expr.Environment.
type ExprEnvironment struct {
	frame     Frame
	mm        *metamodel.Metamodel
	builtins  map[string]value.Variant
	functions map[string]func([]value.Variant) (value.Variant, error)
}

// NewExprEnvironment builds an environment over frame. builtins supplies
// the current value of every metamodel.BuiltinVariable an expression
// might reference.
func NewExprEnvironment(frame Frame, mm *metamodel.Metamodel, builtins map[string]value.Variant) *ExprEnvironment {
	return &ExprEnvironment{frame: frame, mm: mm, builtins: builtins, functions: map[string]func([]value.Variant) (value.Variant, error){}}
}

// RegisterFunction makes name callable from a bound expression evaluated
// against this environment.
func (e *ExprEnvironment) RegisterFunction(name string, fn func([]value.Variant) (value.Variant, error)) {
	e.functions[name] = fn
}

func (e *ExprEnvironment) Resolve(ref expr.VariableReference) (value.Variant, error) {
	if !ref.IsObject {
		v, ok := e.builtins[ref.Name]
		if !ok {
			return value.Variant{}, fmt.Errorf("memory: builtin %q has no bound value", ref.Name)
		}
		return v, nil
	}
	obj, ok := e.frame.Snapshot(ObjectID(ref.ObjectID))
	if !ok {
		return value.Variant{}, &UnknownObjectError{ObjectID: ObjectID(ref.ObjectID)}
	}
	v, ok := obj.Attribute(ref.Name)
	if !ok {
		return value.Variant{}, fmt.Errorf("memory: object %d has no attribute %q", ref.ObjectID, ref.Name)
	}
	return v, nil
}

func (e *ExprEnvironment) Call(name string, args []value.Variant) (value.Variant, error) {
	fn, ok := e.functions[name]
	if !ok {
		return value.Variant{}, fmt.Errorf("memory: function %q is not registered", name)
	}
	return fn(args)
}
