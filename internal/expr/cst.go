package expr

import "strings"

// CST is a concrete syntax tree node: every implementation's FullText
// reproduces exactly the source slice it was parsed from, trivia
// included (§4.F "concrete syntax tree").
type CST interface {
	FullText() string
}

// NumberCST is a numeric literal.
type NumberCST struct {
	Token Token
}

func (n NumberCST) FullText() string { return n.Token.FullText() }

// IdentifierCST is a bare variable reference.
type IdentifierCST struct {
	Token Token
}

func (n IdentifierCST) FullText() string { return n.Token.FullText() }

// UnaryCST is a prefix operator applied to one operand, e.g. "-x".
type UnaryCST struct {
	Operator Token
	Operand  CST
}

func (n UnaryCST) FullText() string { return n.Operator.FullText() + n.Operand.FullText() }

// BinaryCST is an infix operator applied to two operands.
type BinaryCST struct {
	Left     CST
	Operator Token
	Right    CST
}

func (n BinaryCST) FullText() string {
	return n.Left.FullText() + n.Operator.FullText() + n.Right.FullText()
}

// ParenCST is a parenthesized sub-expression.
type ParenCST struct {
	LParen Token
	Inner  CST
	RParen Token
}

func (n ParenCST) FullText() string {
	return n.LParen.FullText() + n.Inner.FullText() + n.RParen.FullText()
}

// CallCST is a function call: a name, its arguments, and the comma
// tokens separating them (len(Commas) == len(Args)-1 for a well-formed
// call, but the CST tolerates a malformed one since it is built
// alongside parse errors, not instead of them).
type CallCST struct {
	Name   Token
	LParen Token
	Args   []CST
	Commas []Token
	RParen Token
}

func (n CallCST) FullText() string {
	var b strings.Builder
	b.WriteString(n.Name.FullText())
	b.WriteString(n.LParen.FullText())
	for i, a := range n.Args {
		b.WriteString(a.FullText())
		if i < len(n.Commas) {
			b.WriteString(n.Commas[i].FullText())
		}
	}
	b.WriteString(n.RParen.FullText())
	return b.String()
}

// ErrorCST wraps a run of tokens the parser could not make sense of, so
// the tree as a whole can still be rendered back to its exact source
// text even in the presence of a syntax error.
type ErrorCST struct {
	Tokens []Token
}

func (n ErrorCST) FullText() string {
	var b strings.Builder
	for _, t := range n.Tokens {
		b.WriteString(t.FullText())
	}
	return b.String()
}
