package expr

// Expr is a trivia-free abstract syntax tree node (§4.F "trivia-free
// unbound AST"): everything needed to bind and evaluate an expression,
// and nothing about how it was spelled.
type Expr interface {
	isExpr()
}

// NumberLit is a numeric literal; IsFloat distinguishes "2" from "2.0".
type NumberLit struct {
	Text    string
	IsFloat bool
}

func (NumberLit) isExpr() {}

// VariableRef is a bare identifier, not yet resolved.
type VariableRef struct {
	Name string
}

func (VariableRef) isExpr() {}

// UnaryExpr is a prefix operator applied to one operand.
type UnaryExpr struct {
	Op      string
	Operand Expr
}

func (UnaryExpr) isExpr() {}

// BinaryExpr is an infix operator applied to two operands.
type BinaryExpr struct {
	Op    string
	Left  Expr
	Right Expr
}

func (BinaryExpr) isExpr() {}

// CallExpr is a function call, not yet resolved against a FunctionSignature.
type CallExpr struct {
	Name string
	Args []Expr
}

func (CallExpr) isExpr() {}

// ToAST strips trivia from a parsed CST, producing the tree the binder
// consumes. It assumes cst contains no ErrorCST nodes (callers should
// check ParseResult.Errors first); an ErrorCST converts to a zero-value
// placeholder rather than panicking, so a caller that presses on anyway
// gets a best-effort tree.
func ToAST(cst CST) Expr {
	switch n := cst.(type) {
	case NumberCST:
		return NumberLit{Text: n.Token.Text, IsFloat: isFloatLiteral(n.Token.Text)}
	case IdentifierCST:
		return VariableRef{Name: n.Token.Text}
	case UnaryCST:
		return UnaryExpr{Op: n.Operator.Text, Operand: ToAST(n.Operand)}
	case BinaryCST:
		return BinaryExpr{Op: n.Operator.Text, Left: ToAST(n.Left), Right: ToAST(n.Right)}
	case ParenCST:
		return ToAST(n.Inner)
	case CallCST:
		args := make([]Expr, len(n.Args))
		for i, a := range n.Args {
			args[i] = ToAST(a)
		}
		return CallExpr{Name: n.Name.Text, Args: args}
	default:
		return NumberLit{Text: "0"}
	}
}

// isFloatLiteral reports whether a lexed number token is a double rather
// than an int: it has a fractional part or an exponent (§4.F "doubles
// allow optional fractional and exponent").
func isFloatLiteral(s string) bool {
	for _, r := range s {
		if r == '.' || r == 'e' || r == 'E' {
			return true
		}
	}
	return false
}
