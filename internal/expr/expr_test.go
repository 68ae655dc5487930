package expr_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"designstore/internal/expr"
	"designstore/internal/value"
)

func parseOK(t *testing.T, src string) expr.CST {
	t.Helper()
	res := expr.Parse(src)
	require.Empty(t, res.Errors, "unexpected parse errors for %q", src)
	assert.Equal(t, src, res.FullText())
	return res.Root
}

func TestRoundTripVariousSpacing(t *testing.T) {
	sources := []string{
		"a + b * c",
		"  1+2 ",
		"fun(x, y)",
		"-(1 + 2) * 3",
		"(((x)))",
		"1.5 / 2",
		"7 % 3",
		"1_000 + 2e3",
	}
	for _, src := range sources {
		res := expr.Parse(src)
		assert.Equal(t, src, res.FullText(), "round-trip failed for %q", src)
	}
}

func TestParseReportsSyntaxErrors(t *testing.T) {
	cases := []struct {
		src  string
		kind expr.SyntaxErrorKind
	}{
		{"(1 + 2", expr.MissingRightParenthesis},
		{"1 +", expr.ExpressionExpected},
		{"1 2", expr.UnexpectedToken},
	}
	for _, c := range cases {
		res := expr.Parse(c.src)
		require.NotEmpty(t, res.Errors, "expected an error for %q", c.src)
		assert.Equal(t, c.kind, res.Errors[0].Kind)
		assert.Equal(t, c.src, res.FullText())
	}
}

func TestPrecedenceAPlusBTimesC(t *testing.T) {
	root := parseOK(t, "a + b * c")
	ast := expr.ToAST(root)
	bin, ok := ast.(expr.BinaryExpr)
	require.True(t, ok)
	assert.Equal(t, "+", bin.Op)
	_, isVarA := bin.Left.(expr.VariableRef)
	assert.True(t, isVarA)
	rightBin, ok := bin.Right.(expr.BinaryExpr)
	require.True(t, ok)
	assert.Equal(t, "*", rightBin.Op)
}

// testScope implements expr.Scope for tests: "a", "b", "c" are Int
// variables; "double" is a one-argument numeric function.
type testScope struct{}

func (testScope) ResolveVariable(name string) (expr.VariableReference, value.Kind, bool) {
	switch name {
	case "a", "b", "c":
		return expr.VariableReference{Name: name}, value.KindInt, true
	default:
		return expr.VariableReference{}, 0, false
	}
}

func (testScope) ResolveFunction(name string) (expr.FunctionSignature, bool) {
	if name == "double" {
		return expr.FunctionSignature{
			Name:   "double",
			Args:   []expr.ArgumentDesc{{Name: "x", Type: expr.AnyOf(value.KindInt, value.KindDouble)}},
			Return: value.KindDouble,
		}, true
	}
	return expr.FunctionSignature{}, false
}

// testEnv implements expr.Environment: a=2, b=3, c=4; double(x) = x*2.
type testEnv struct{}

func (testEnv) Resolve(ref expr.VariableReference) (value.Variant, error) {
	switch ref.Name {
	case "a":
		return value.Int(2), nil
	case "b":
		return value.Int(3), nil
	case "c":
		return value.Int(4), nil
	default:
		return value.Variant{}, assertUnknown(ref.Name)
	}
}

func (testEnv) Call(name string, args []value.Variant) (value.Variant, error) {
	if name == "double" {
		f, _ := args[0].ToDouble()
		return value.Double(f * 2), nil
	}
	return value.Variant{}, assertUnknown(name)
}

func assertUnknown(name string) error {
	return &expr.BindError{Kind: expr.UnknownVariable, Name: name}
}

func TestEndToEndAPlusBTimesC(t *testing.T) {
	res := expr.Parse("a + b * c")
	require.Empty(t, res.Errors)
	ast := expr.ToAST(res.Root)

	bound, err := expr.Bind(ast, testScope{})
	require.NoError(t, err)
	assert.Equal(t, value.KindInt, bound.Kind())

	result, err := expr.Eval(bound, testEnv{})
	require.NoError(t, err)
	assert.Equal(t, int64(14), result.AsInt()) // 2 + 3*4
}

func TestBindUnknownVariable(t *testing.T) {
	ast := expr.ToAST(parseOK(t, "nope"))
	_, err := expr.Bind(ast, testScope{})
	require.Error(t, err)
	var bindErr *expr.BindError
	require.ErrorAs(t, err, &bindErr)
	assert.Equal(t, expr.UnknownVariable, bindErr.Kind)
}

func TestBindUnknownFunction(t *testing.T) {
	ast := expr.ToAST(parseOK(t, "ghost(a)"))
	_, err := expr.Bind(ast, testScope{})
	require.Error(t, err)
	var bindErr *expr.BindError
	require.ErrorAs(t, err, &bindErr)
	assert.Equal(t, expr.UnknownFunction, bindErr.Kind)
}

func TestBindInvalidArity(t *testing.T) {
	ast := expr.ToAST(parseOK(t, "double(a, b)"))
	_, err := expr.Bind(ast, testScope{})
	require.Error(t, err)
	var bindErr *expr.BindError
	require.ErrorAs(t, err, &bindErr)
	assert.Equal(t, expr.InvalidArity, bindErr.Kind)
}

func TestEvalModuloOfDividendSign(t *testing.T) {
	ast := expr.ToAST(parseOK(t, "-7 % 3"))
	bound, err := expr.Bind(ast, testScope{})
	require.NoError(t, err)
	result, err := expr.Eval(bound, testEnv{})
	require.NoError(t, err)
	assert.Equal(t, int64(-1), result.AsInt()) // sign follows the dividend, -7
}

func TestEvalModuloByZero(t *testing.T) {
	ast := expr.ToAST(parseOK(t, "a % (a - a)"))
	bound, err := expr.Bind(ast, testScope{})
	require.NoError(t, err)
	_, err = expr.Eval(bound, testEnv{})
	require.Error(t, err)
	var evalErr *expr.EvalError
	require.ErrorAs(t, err, &evalErr)
	assert.Equal(t, expr.DivisionByZero, evalErr.Kind)
}

func TestDigitSeparatorAndExponentLiterals(t *testing.T) {
	root := parseOK(t, "1_000 + 2e3")
	ast := expr.ToAST(root)
	bin, ok := ast.(expr.BinaryExpr)
	require.True(t, ok)
	left, ok := bin.Left.(expr.NumberLit)
	require.True(t, ok)
	assert.False(t, left.IsFloat)
	right, ok := bin.Right.(expr.NumberLit)
	require.True(t, ok)
	assert.True(t, right.IsFloat)

	bound, err := expr.Bind(ast, testScope{})
	require.NoError(t, err)
	result, err := expr.Eval(bound, testEnv{})
	require.NoError(t, err)
	assert.Equal(t, 3000.0, result.AsDouble())
}

func TestEvalDivisionByZero(t *testing.T) {
	ast := expr.ToAST(parseOK(t, "a - a"))
	bound, err := expr.Bind(ast, testScope{})
	require.NoError(t, err)
	result, err := expr.Eval(bound, testEnv{})
	require.NoError(t, err)
	assert.Equal(t, int64(0), result.AsInt())

	divAst := expr.ToAST(parseOK(t, "b / (a - a)"))
	divBound, err := expr.Bind(divAst, testScope{})
	require.NoError(t, err)
	_, err = expr.Eval(divBound, testEnv{})
	require.Error(t, err)
	var evalErr *expr.EvalError
	require.ErrorAs(t, err, &evalErr)
	assert.Equal(t, expr.DivisionByZero, evalErr.Kind)
}

func TestEvalArithmeticOverflow(t *testing.T) {
	huge := value.Int(math.MaxInt64)
	bound := expr.BoundBinary{
		Op:    "+",
		Left:  expr.BoundNumber{Value: huge},
		Right: expr.BoundNumber{Value: value.Int(1)},
		K:     value.KindInt,
	}
	_, err := expr.Eval(bound, testEnv{})
	require.Error(t, err)
	var evalErr *expr.EvalError
	require.ErrorAs(t, err, &evalErr)
	assert.Equal(t, expr.ArithmeticOverflow, evalErr.Kind)
}

func TestBindDeterministic(t *testing.T) {
	ast := expr.ToAST(parseOK(t, "a + b * c"))
	bound1, err := expr.Bind(ast, testScope{})
	require.NoError(t, err)
	bound2, err := expr.Bind(ast, testScope{})
	require.NoError(t, err)
	assert.Equal(t, bound1, bound2)
}
