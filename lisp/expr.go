package lisp

import (
	"bytes"
)

// Expr is a parsed term.  The concrete types implementing Expr are *Tree
// (a parenthesized call or special form), Literal (a primitive), Ident (a
// bare symbol reference), *Quoted (a term whose evaluation is suppressed) and
// ValueExpr (an already reduced value placed into a tree by substitution).
//
// Expression trees are never mutated after they are read.  Evaluation
// produces new Values and function invocation produces substituted copies.
type Expr interface {
	String() string
	expr()
}

// Tree is a parenthesized expression.  Node is the operator position and is
// nil only for an empty form, "()".  Children are the operands in evaluation
// order.
type Tree struct {
	Node     Expr
	Children []Expr
}

// Ident is a bare identifier.
type Ident struct {
	Name string
}

// Quoted wraps an expression that is data, not code.
type Quoted struct {
	Expr Expr
}

// ValueExpr embeds a reduced structured value in an expression tree.  The
// reader never produces one.  A ValueExpr evaluates to its Value unchanged.
type ValueExpr struct {
	Value Value
}

// NewTree returns a tree with node in operator position.
func NewTree(node Expr, children ...Expr) *Tree {
	return &Tree{Node: node, Children: children}
}

// Quote returns e wrapped in a Quoted expression.
func Quote(e Expr) *Quoted {
	return &Quoted{Expr: e}
}

func (*Tree) expr()   {}
func (Ident) expr()   {}
func (*Quoted) expr() {}
func (Literal) expr() {}
func (ValueExpr) expr() {}

// Len returns the number of terms in t, including the operator.
func (t *Tree) Len() int {
	if t.Node == nil {
		return 0
	}
	return 1 + len(t.Children)
}

// Elems returns the node and children of t as a single slice.
func (t *Tree) Elems() []Expr {
	if t.Node == nil {
		return nil
	}
	elems := make([]Expr, 0, len(t.Children)+1)
	elems = append(elems, t.Node)
	return append(elems, t.Children...)
}

// HeadIdent returns the name of the identifier in t's operator position.
func (t *Tree) HeadIdent() (string, bool) {
	id, ok := t.Node.(Ident)
	if !ok {
		return "", false
	}
	return id.Name, true
}

func (t *Tree) String() string {
	var buf bytes.Buffer
	buf.WriteString("(")
	for i, e := range t.Elems() {
		if i > 0 {
			buf.WriteString(" ")
		}
		buf.WriteString(e.String())
	}
	buf.WriteString(")")
	return buf.String()
}

func (id Ident) String() string {
	return id.Name
}

func (q *Quoted) String() string {
	return "'" + q.Expr.String()
}

func (e ValueExpr) String() string {
	return e.Value.String()
}

// treeFromElems is the inverse of Tree.Elems.
func treeFromElems(elems []Expr) *Tree {
	if len(elems) == 0 {
		return &Tree{}
	}
	return &Tree{Node: elems[0], Children: elems[1:]}
}
