package lisp

import (
	"bytes"
	"strings"
)

// Value is the result of evaluation.  The concrete types implementing Value
// are Literal (a primitive), the structured values List, *Pair, Symbol,
// *Function and *Lambda, ExprValue (an unevaluated expression) and Void.
//
// Values have value semantics.  No operation modifies a Value in place, so
// values may be shared freely between bindings.
type Value interface {
	String() string
	value()
}

// List is an ordered sequence of values.
type List []Value

// Pair is the result of cons applied to a non-list.
type Pair struct {
	Left  Value
	Right Value
}

// Symbol is a symbol value, produced when quoted data contains an
// identifier.
type Symbol string

// ExprValue is an expression that has not been reduced, such as the
// unevaluated arguments passed to a native function or quoted data.
type ExprValue struct {
	Expr Expr
}

// Void is the value of forms evaluated only for their side effects.
type Void struct{}

func (Literal) value()   {}
func (List) value()      {}
func (*Pair) value()     {}
func (Symbol) value()    {}
func (*Function) value() {}
func (*Lambda) value()   {}
func (ExprValue) value() {}
func (Void) value()      {}

// Nil returns the empty list.
func Nil() List {
	return List{}
}

// FromExpr converts syntax into a Value.  Literals self-evaluate and become
// primitive values directly, and a ValueExpr yields the value it carries.
// Every other expression is preserved as an ExprValue for later evaluation or
// inspection.
func FromExpr(e Expr) Value {
	switch e := e.(type) {
	case Literal:
		return e
	case ValueExpr:
		return e.Value
	}
	return ExprValue{Expr: e}
}

// fromExprs converts a slice of expressions with FromExpr.
func fromExprs(exprs []Expr) []Value {
	vals := make([]Value, len(exprs))
	for i := range exprs {
		vals[i] = FromExpr(exprs[i])
	}
	return vals
}

// ToExpr converts v back into syntax so that it may be inserted into an
// expression tree.  Lists, pairs and procedures are carried by a ValueExpr.
// Void has no expression form and ToExpr returns an error of kind
// ErrConversion for it.
func ToExpr(v Value) (Expr, error) {
	switch v := v.(type) {
	case Literal:
		return v, nil
	case ExprValue:
		return v.Expr, nil
	case Symbol:
		return Quote(Ident{Name: string(v)}), nil
	case List, *Pair, *Function, *Lambda:
		return ValueExpr{Value: v}, nil
	case Void:
		return nil, &Error{Kind: ErrConversion, Msg: "void value has no expression form"}
	}
	return nil, &Error{Kind: ErrConversion, Msg: TypeName(v) + " value has no expression form"}
}

// TypeName returns a short description of the kind of v for error messages.
func TypeName(v Value) string {
	switch v := v.(type) {
	case Literal:
		return v.Type.String()
	case List:
		return "list"
	case *Pair:
		return "pair"
	case Symbol:
		return "symbol"
	case *Function:
		return "function"
	case *Lambda:
		return "lambda"
	case ExprValue:
		switch e := v.Expr.(type) {
		case Ident:
			return "identifier"
		case *Tree:
			return "expression"
		case *Quoted:
			switch e.Expr.(type) {
			case Ident:
				return "symbol"
			case *Tree:
				return "list"
			}
			return "quoted"
		}
		return "expression"
	case Void:
		return "void"
	case nil:
		return "nil"
	}
	return "unknown"
}

// IsFalse returns true if v is the boolean #f.  All other values are true.
func IsFalse(v Value) bool {
	lit, ok := v.(Literal)
	return ok && lit.IsFalse()
}

// IsVoid returns true if v is Void.
func IsVoid(v Value) bool {
	_, ok := v.(Void)
	return ok
}

// quotedData converts a quoted expression into the data it denotes.
// Identifiers become symbols and parenthesized trees become lists.  Nested
// quotes are kept as expressions.
func quotedData(e Expr) Value {
	switch e := e.(type) {
	case Literal:
		return e
	case Ident:
		return Symbol(e.Name)
	case *Tree:
		elems := e.Elems()
		lis := make(List, len(elems))
		for i := range elems {
			lis[i] = quotedData(elems[i])
		}
		return lis
	case ValueExpr:
		return e.Value
	default:
		return ExprValue{Expr: e}
	}
}

// AsList returns the list denoted by v.  Quoted trees are read as data.
func AsList(v Value) (List, bool) {
	switch v := v.(type) {
	case List:
		return v, true
	case ExprValue:
		q, ok := v.Expr.(*Quoted)
		if !ok {
			return nil, false
		}
		if t, ok := q.Expr.(*Tree); ok {
			return quotedData(t).(List), true
		}
	}
	return nil, false
}

// Equal returns true if a and b are structurally equal.  Numbers of different
// exactness are not equal.
func Equal(a, b Value) bool {
	if la, ok := AsList(a); ok {
		lb, ok := AsList(b)
		if !ok || len(la) != len(lb) {
			return false
		}
		for i := range la {
			if !Equal(la[i], lb[i]) {
				return false
			}
		}
		return true
	}
	switch a := a.(type) {
	case Literal:
		b, ok := b.(Literal)
		if !ok {
			return false
		}
		if a.IsInteger() && b.IsInteger() {
			return a.Int == b.Int
		}
		return a == b
	case *Pair:
		b, ok := b.(*Pair)
		return ok && Equal(a.Left, b.Left) && Equal(a.Right, b.Right)
	case Symbol:
		return symbolName(b) == string(a)
	case ExprValue:
		if name, ok := quotedSymbol(a); ok {
			return symbolName(b) == name
		}
		b, ok := b.(ExprValue)
		return ok && a.Expr.String() == b.Expr.String()
	case *Function:
		return a == b
	case *Lambda:
		return a == b
	case Void:
		return IsVoid(b)
	}
	return false
}

func quotedSymbol(v ExprValue) (string, bool) {
	q, ok := v.Expr.(*Quoted)
	if !ok {
		return "", false
	}
	id, ok := q.Expr.(Ident)
	return id.Name, ok
}

// symbolName returns the name of v if it is a symbol or a quoted identifier
// and the empty string otherwise.
func symbolName(v Value) string {
	switch v := v.(type) {
	case Symbol:
		return string(v)
	case ExprValue:
		name, _ := quotedSymbol(v)
		return name
	}
	return ""
}

func (lis List) String() string {
	return "'" + lis.datum()
}

func (lis List) datum() string {
	var buf bytes.Buffer
	buf.WriteString("(")
	for i, v := range lis {
		if i > 0 {
			buf.WriteString(" ")
		}
		buf.WriteString(datumString(v))
	}
	buf.WriteString(")")
	return buf.String()
}

func (p *Pair) String() string {
	return "'" + p.datum()
}

func (p *Pair) datum() string {
	return "(" + datumString(p.Left) + " . " + datumString(p.Right) + ")"
}

func (s Symbol) String() string {
	return "'" + string(s)
}

func (v ExprValue) String() string {
	return v.Expr.String()
}

func (Void) String() string {
	return ""
}

// datumString renders v as an element nested inside printed data, where the
// quote prefix of the enclosing datum already applies.
func datumString(v Value) string {
	switch v := v.(type) {
	case List:
		return v.datum()
	case *Pair:
		return v.datum()
	case Symbol:
		return string(v)
	case ExprValue:
		if q, ok := v.Expr.(*Quoted); ok {
			return q.Expr.String()
		}
	}
	return v.String()
}

// DisplayString renders v the way the display native prints it.  Strings and
// characters are written without quoting or escapes.
func DisplayString(v Value) string {
	if lit, ok := v.(Literal); ok {
		switch lit.Type {
		case LString, LCharacter:
			return lit.Str
		}
	}
	if sym := symbolName(v); sym != "" {
		return sym
	}
	s := v.String()
	if _, ok := AsList(v); ok {
		return strings.TrimPrefix(s, "'")
	}
	return s
}
