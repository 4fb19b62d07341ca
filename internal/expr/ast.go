package expr

import "github.com/agbru/bigcalc/internal/bigint"

// Node is a parsed expression.
type Node interface {
	Pos() int
}

// NumberLit is an integer literal.
type NumberLit struct {
	Value  *bigint.Int
	Offset int
}

// VarRef reads a variable.
type VarRef struct {
	Name   string
	Offset int
}

// Unary is a prefix +, -, or ~.
type Unary struct {
	Op     Kind
	X      Node
	Offset int
}

// Binary is an infix arithmetic, bitwise, shift, or comparison operator.
type Binary struct {
	Op     Kind
	X, Y   Node
	Offset int
}

// AssignExpr stores a value into a variable. Op is Assign or a compound
// assignment such as PlusAssign.
type AssignExpr struct {
	Op     Kind
	Name   string
	Value  Node
	Offset int
}

// IncDec is ++ or -- applied to a variable, in prefix or postfix position.
type IncDec struct {
	Op      Kind
	Name    string
	Postfix bool
	Offset  int
}

// Call invokes a builtin function.
type Call struct {
	Name   string
	Args   []Node
	Offset int
}

func (n *NumberLit) Pos() int  { return n.Offset }
func (n *VarRef) Pos() int     { return n.Offset }
func (n *Unary) Pos() int      { return n.Offset }
func (n *Binary) Pos() int     { return n.Offset }
func (n *AssignExpr) Pos() int { return n.Offset }
func (n *IncDec) Pos() int     { return n.Offset }
func (n *Call) Pos() int       { return n.Offset }
