package expr

import (
	"math"

	"designstore/internal/value"
)

// Environment supplies the runtime values a Bound tree's variables and
// calls read, keeping Eval itself free of any dependency on how those
// values are actually stored (§4.F "typed evaluator").
type Environment interface {
	// Resolve returns the current value.Variant for a bound variable
	// reference.
	Resolve(ref VariableReference) (value.Variant, error)
	// Call invokes a bound function by name with its already-evaluated
	// arguments.
	Call(name string, args []value.Variant) (value.Variant, error)
}

// Eval evaluates a Bound tree against env (§4.F "evaluator"). Arithmetic
// on Int operands is checked for overflow; division (Int or Double) by
// a zero divisor is reported as *EvalError{Kind: DivisionByZero} rather
// than propagating +Inf/NaN.
func Eval(b Bound, env Environment) (value.Variant, error) {
	switch n := b.(type) {
	case BoundNumber:
		return n.Value, nil

	case BoundVariable:
		return env.Resolve(n.Ref)

	case BoundUnary:
		v, err := Eval(n.Operand, env)
		if err != nil {
			return value.Variant{}, err
		}
		return evalUnary(n.Op, v)

	case BoundBinary:
		left, err := Eval(n.Left, env)
		if err != nil {
			return value.Variant{}, err
		}
		right, err := Eval(n.Right, env)
		if err != nil {
			return value.Variant{}, err
		}
		return evalBinary(n.Op, left, right)

	case BoundCall:
		args := make([]value.Variant, len(n.Args))
		for i, a := range n.Args {
			v, err := Eval(a, env)
			if err != nil {
				return value.Variant{}, err
			}
			args[i] = v
		}
		result, err := env.Call(n.Name, args)
		if err != nil {
			return value.Variant{}, &EvalError{Kind: FunctionFailed, Cause: err}
		}
		return result, nil

	default:
		return value.Variant{}, &EvalError{Kind: FunctionFailed}
	}
}

func evalUnary(op string, v value.Variant) (value.Variant, error) {
	switch op {
	case "-":
		if v.Kind() == value.KindDouble {
			return value.Double(-v.AsDouble()), nil
		}
		i := v.AsInt()
		if i == math.MinInt64 {
			return value.Variant{}, &EvalError{Kind: ArithmeticOverflow}
		}
		return value.Int(-i), nil
	default:
		return v, nil
	}
}

func evalBinary(op string, left, right value.Variant) (value.Variant, error) {
	bothInt := left.Kind() == value.KindInt && right.Kind() == value.KindInt
	l, r := asFloat(left), asFloat(right)

	switch op {
	case "+":
		if bothInt {
			sum, ok := addInt(left.AsInt(), right.AsInt())
			if !ok {
				return value.Variant{}, &EvalError{Kind: ArithmeticOverflow}
			}
			return value.Int(sum), nil
		}
		return value.Double(l + r), nil

	case "-":
		if bothInt {
			diff, ok := subInt(left.AsInt(), right.AsInt())
			if !ok {
				return value.Variant{}, &EvalError{Kind: ArithmeticOverflow}
			}
			return value.Int(diff), nil
		}
		return value.Double(l - r), nil

	case "*":
		if bothInt {
			prod, ok := mulInt(left.AsInt(), right.AsInt())
			if !ok {
				return value.Variant{}, &EvalError{Kind: ArithmeticOverflow}
			}
			return value.Int(prod), nil
		}
		return value.Double(l * r), nil

	case "/":
		if r == 0 {
			return value.Variant{}, &EvalError{Kind: DivisionByZero}
		}
		if bothInt {
			if left.AsInt() == math.MinInt64 && right.AsInt() == -1 {
				return value.Variant{}, &EvalError{Kind: ArithmeticOverflow}
			}
			return value.Int(left.AsInt() / right.AsInt()), nil
		}
		return value.Double(l / r), nil

	case "%":
		if r == 0 {
			return value.Variant{}, &EvalError{Kind: DivisionByZero}
		}
		if bothInt {
			return value.Int(left.AsInt() % right.AsInt()), nil
		}
		return value.Double(math.Mod(l, r)), nil

	default:
		return value.Variant{}, &EvalError{Kind: FunctionFailed}
	}
}

func asFloat(v value.Variant) float64 {
	if v.Kind() == value.KindDouble {
		return v.AsDouble()
	}
	return float64(v.AsInt())
}

func addInt(a, b int64) (int64, bool) {
	sum := a + b
	if (b > 0 && sum < a) || (b < 0 && sum > a) {
		return 0, false
	}
	return sum, true
}

func subInt(a, b int64) (int64, bool) {
	diff := a - b
	if (b < 0 && diff < a) || (b > 0 && diff > a) {
		return 0, false
	}
	return diff, true
}

func mulInt(a, b int64) (int64, bool) {
	if a == 0 || b == 0 {
		return 0, true
	}
	if (a == -1 && b == math.MinInt64) || (b == -1 && a == math.MinInt64) {
		return 0, false
	}
	prod := a * b
	if prod/b != a {
		return 0, false
	}
	return prod, true
}
