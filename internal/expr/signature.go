package expr

import "designstore/internal/value"

// UnionType is the set of value.Kinds an argument position accepts.
type UnionType struct {
	Kinds []value.Kind
}

// KindOf builds a single-kind UnionType.
func KindOf(k value.Kind) UnionType { return UnionType{Kinds: []value.Kind{k}} }

// AnyOf builds a UnionType accepting any of the given kinds.
func AnyOf(kinds ...value.Kind) UnionType { return UnionType{Kinds: kinds} }

// Accepts reports whether k satisfies the union.
func (u UnionType) Accepts(k value.Kind) bool {
	for _, want := range u.Kinds {
		if want == k {
			return true
		}
	}
	return false
}

// ArgumentDesc names one formal parameter of a FunctionSignature.
type ArgumentDesc struct {
	Name string
	Type UnionType
}

// FunctionSignature describes a callable function's arity, argument
// types, and return kind (§4.F "FunctionSignature validation"). The last
// argument repeats to fill extra call-site arguments when Variadic is set.
type FunctionSignature struct {
	Name     string
	Args     []ArgumentDesc
	Variadic bool
	Return   value.Kind
}

// Validate checks a call site's argument kinds against the signature,
// returning a *BindError (invalid_arity or argument_type_mismatch) on
// mismatch (§4.F "FunctionSignature validation").
func (f FunctionSignature) Validate(argKinds []value.Kind) error {
	min := len(f.Args)
	if f.Variadic {
		min--
	}
	if len(argKinds) < min || (!f.Variadic && len(argKinds) != len(f.Args)) {
		return &BindError{Kind: InvalidArity, Name: f.Name}
	}

	for i, k := range argKinds {
		desc := f.argAt(i)
		if !desc.Type.Accepts(k) {
			return &BindError{Kind: ArgumentTypeMismatch, Name: f.Name, Detail: desc.Name}
		}
	}
	return nil
}

// argAt returns the ArgumentDesc governing call position i, repeating
// the last declared argument when the signature is variadic and i runs
// past the declared list.
func (f FunctionSignature) argAt(i int) ArgumentDesc {
	if i < len(f.Args) {
		return f.Args[i]
	}
	return f.Args[len(f.Args)-1]
}
