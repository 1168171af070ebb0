package lisp

import (
	"fmt"
)

// Procedure is the shape shared by declared functions and lambdas.  When
// Rest is non-empty the procedure is variadic, Arity is -1, and arguments
// beyond Params are bound to Rest as a list.
type Procedure struct {
	Params []string
	Rest   string
	Body   []Expr
	Arity  int

	// env is the local table of the scope the procedure was defined in.  It
	// is nil for procedures defined at the top level.  Later definitions in
	// that scope are visible through env.
	env map[string]Value
}

// Function is a named procedure.  A Function may also name a native, in
// which case it only carries the native.
type Function struct {
	Name string
	Procedure
	native NativeDef
}

// Lambda is an anonymous procedure.
type Lambda struct {
	Procedure
}

func (fn *Function) String() string {
	return "#<procedure:" + fn.Name + ">"
}

func (*Lambda) String() string {
	return "#<procedure>"
}

// IsNative returns true if fn refers to a native.
func (fn *Function) IsNative() bool {
	return fn.native != nil
}

// parseParams reads a parameter list.  An identifier in place of a list
// declares a variadic procedure with no fixed parameters.
func parseParams(fn string, e Expr) ([]string, string, error) {
	switch e := e.(type) {
	case Ident:
		return nil, e.Name, nil
	case *Tree:
		var params []string
		for _, p := range e.Elems() {
			id, ok := p.(Ident)
			if !ok {
				return nil, "", errIdentifierExpected(fn, FromExpr(p))
			}
			params = append(params, id.Name)
		}
		return params, "", nil
	}
	return nil, "", errInvalidExpression(fn, "invalid parameter list: %v", e)
}

// newProcedure builds a procedure which closes over the scope of cx.
func newProcedure(cx *Context, params []string, rest string, body []Expr) Procedure {
	arity := len(params)
	if rest != "" {
		arity = -1
	}
	return Procedure{
		Params: params,
		Rest:   rest,
		Body:   body,
		Arity:  arity,
		env:    cx.scope(),
	}
}

// Callable is anything that may be applied to arguments: a native or a
// declared procedure.
type Callable struct {
	Name   string
	native NativeDef
	proc   *Procedure
}

// Call applies c to args.  Natives receive args as they are and evaluate
// them according to their own policy.  Procedures treat args as already
// evaluated.
func (c *Callable) Call(cx *Context, args []Value) (Value, error) {
	if c.native != nil {
		return c.native.Call(cx, args)
	}
	return cx.callProcedure(c.Name, c.proc, args)
}

// IsNative returns true if c refers to a native.
func (c *Callable) IsNative() bool {
	return c.native != nil
}

// callableValue returns a Callable for a procedure value.
func callableValue(v Value) (*Callable, bool) {
	switch fn := v.(type) {
	case *Function:
		if fn.native != nil {
			return &Callable{Name: fn.Name, native: fn.native}, true
		}
		return &Callable{Name: fn.Name, proc: &fn.Procedure}, true
	case *Lambda:
		return &Callable{proc: &fn.Procedure}, true
	}
	return nil, false
}

// ResolveCallable returns the Callable denoted by the unevaluated argument
// v.  An identifier may name a native or a bound procedure.  Any other
// expression, such as an inline lambda, is evaluated and must produce a
// procedure.
func (cx *Context) ResolveCallable(fn string, pos int, v Value) (*Callable, error) {
	if ev, ok := v.(ExprValue); ok {
		if id, ok := ev.Expr.(Ident); ok {
			if def, ok := cx.interp.Native(id.Name); ok {
				return &Callable{Name: id.Name, native: def}, nil
			}
		}
	}
	val, err := cx.Eval(v)
	if err != nil {
		return nil, err
	}
	c, ok := callableValue(val)
	if !ok {
		return nil, ErrUnexpected(fn, pos, val, "procedure")
	}
	return c, nil
}

// callProcedure invokes p by substituting args for its parameters in a copy
// of its body and evaluating the copy in a context entered from the scope p
// was defined in.  The caller's local table is not visible to the body.
func (cx *Context) callProcedure(name string, p *Procedure, args []Value) (Value, error) {
	if p.Rest == "" && len(args) != len(p.Params) {
		return nil, ErrArity(name, len(p.Params), len(args))
	}
	if p.Rest != "" && len(args) < len(p.Params) {
		return nil, errArityAtLeast(name, len(p.Params), len(args))
	}
	err := cx.stack.Push(name, len(args))
	if err != nil {
		return nil, err
	}
	defer cx.stack.Pop()

	callee := cx.enter(p.env)
	bind := make(map[string]Expr, len(p.Params)+1)
	for i, param := range p.Params {
		e, err := ToExpr(args[i])
		if err != nil {
			return nil, &Error{
				Kind:     ErrConversion,
				Function: name,
				Msg:      fmt.Sprintf("argument %d has no value", i+1),
			}
		}
		delete(callee.locals, param)
		bind[param] = e
	}
	if p.Rest != "" {
		rest := make(List, len(args)-len(p.Params))
		copy(rest, args[len(p.Params):])
		delete(callee.locals, p.Rest)
		bind[p.Rest] = ValueExpr{Value: rest}
	}

	var ret Value = Void{}
	for _, e := range p.Body {
		ret, err = callee.EvalExpr(substitute(e, bind))
		if err != nil {
			return nil, err
		}
	}
	return ret, nil
}

// substitute returns a copy of e with identifiers named in bind replaced.
// Quoted expressions are data and are never rewritten.  Names in binding
// positions are left alone and shadow bind within their scope.
func substitute(e Expr, bind map[string]Expr) Expr {
	if len(bind) == 0 {
		return e
	}
	switch e := e.(type) {
	case Ident:
		if r, ok := bind[e.Name]; ok {
			return r
		}
		return e
	case *Tree:
		return substituteTree(e, bind)
	default:
		return e
	}
}

func substituteTree(t *Tree, bind map[string]Expr) *Tree {
	if t.Node == nil {
		return t
	}
	head, _ := t.HeadIdent()
	switch head {
	case "quote":
		return t
	case "lambda":
		if len(t.Children) < 1 {
			break
		}
		params, rest, err := parseParams(head, t.Children[0])
		if err != nil {
			break
		}
		inner := shadow(bind, append(params, rest)...)
		out := &Tree{Node: t.Node, Children: make([]Expr, len(t.Children))}
		out.Children[0] = t.Children[0]
		substituteInto(out.Children[1:], t.Children[1:], inner)
		return out
	case "define":
		if len(t.Children) < 1 {
			break
		}
		out := &Tree{Node: t.Node, Children: make([]Expr, len(t.Children))}
		out.Children[0] = t.Children[0]
		inner := bind
		if sig, ok := t.Children[0].(*Tree); ok {
			var names []string
			for _, p := range sig.Elems() {
				if id, ok := p.(Ident); ok {
					names = append(names, id.Name)
				}
			}
			inner = shadow(bind, names...)
		}
		substituteInto(out.Children[1:], t.Children[1:], inner)
		return out
	case "let", "let*":
		if len(t.Children) < 1 {
			break
		}
		bindings, ok := t.Children[0].(*Tree)
		if !ok {
			break
		}
		sequential := head == "let*"
		inner := bind
		var newBindings []Expr
		var names []string
		for _, b := range bindings.Elems() {
			pair, ok := b.(*Tree)
			if !ok || pair.Len() != 2 {
				newBindings = append(newBindings, b)
				continue
			}
			val := substitute(pair.Children[0], inner)
			newBindings = append(newBindings, NewTree(pair.Node, val))
			if id, ok := pair.Node.(Ident); ok {
				names = append(names, id.Name)
				if sequential {
					inner = shadow(inner, id.Name)
				}
			}
		}
		if !sequential {
			inner = shadow(bind, names...)
		}
		out := &Tree{Node: t.Node, Children: make([]Expr, len(t.Children))}
		out.Children[0] = treeFromElems(newBindings)
		substituteInto(out.Children[1:], t.Children[1:], inner)
		return out
	}
	out := &Tree{
		Node:     substitute(t.Node, bind),
		Children: make([]Expr, len(t.Children)),
	}
	substituteInto(out.Children, t.Children, bind)
	return out
}

func substituteInto(dst, src []Expr, bind map[string]Expr) {
	for i := range src {
		dst[i] = substitute(src[i], bind)
	}
}

// shadow returns bind without the given names.  bind is not modified.
func shadow(bind map[string]Expr, names ...string) map[string]Expr {
	found := false
	for _, name := range names {
		if _, ok := bind[name]; ok {
			found = true
			break
		}
	}
	if !found {
		return bind
	}
	inner := make(map[string]Expr, len(bind))
	for k, v := range bind {
		inner[k] = v
	}
	for _, name := range names {
		delete(inner, name)
	}
	return inner
}
