package lisp

import (
	"context"
	"fmt"
)

// Eval evaluates v in cx.  Values which are already reduced evaluate to
// themselves.  Unevaluated expressions are evaluated with EvalExpr.
func (cx *Context) Eval(v Value) (Value, error) {
	ev, ok := v.(ExprValue)
	if !ok {
		return v, nil
	}
	return cx.EvalExpr(ev.Expr)
}

// EvalExpr evaluates e in cx.
func (cx *Context) EvalExpr(e Expr) (Value, error) {
	switch e := e.(type) {
	case Literal:
		return e, nil
	case Ident:
		return cx.resolve(e.Name)
	case ValueExpr:
		return e.Value, nil
	case *Tree:
		return cx.evalTree(e)
	case *Quoted:
		// quoting a self-evaluating literal is a no-op.
		if lit, ok := e.Expr.(Literal); ok {
			return lit, nil
		}
		return ExprValue{Expr: e}, nil
	case nil:
		return nil, errMissingTreeNode()
	}
	return nil, Errorf("unknown expression type: %T", e)
}

// EvalAll evaluates each argument in a context descended from cx, in
// order, and fails on the first error.
func (cx *Context) EvalAll(args []Value) ([]Value, error) {
	if len(args) == 0 {
		return nil, nil
	}
	sub := cx.Descend()
	vals := make([]Value, len(args))
	for i := range args {
		v, err := sub.Eval(args[i])
		if err != nil {
			return nil, err
		}
		vals[i] = v
	}
	return vals, nil
}

func (cx *Context) resolve(name string) (Value, error) {
	if v, ok := cx.Lookup(name); ok {
		return v, nil
	}
	if def, ok := cx.interp.Native(name); ok {
		return &Function{Name: name, native: def}, nil
	}
	return nil, errUnknownIdentifier(name)
}

func (cx *Context) evalTree(t *Tree) (Value, error) {
	err := cx.checkCancel()
	if err != nil {
		return nil, err
	}
	if t.Node == nil {
		return nil, errMissingTreeNode()
	}
	switch node := t.Node.(type) {
	case Ident:
		if def, ok := cx.interp.Native(node.Name); ok {
			return def.Call(cx, fromExprs(t.Children))
		}
		v, ok := cx.Lookup(node.Name)
		if !ok {
			return nil, errUndefinedFunction(node.Name)
		}
		c, ok := callableValue(v)
		if !ok {
			return nil, errUndefinedFunction(node.Name)
		}
		return cx.apply(c, t.Children)
	case Literal:
		// a tree headed by data is itself data.
		return quotedData(t), nil
	case ValueExpr:
		c, ok := callableValue(node.Value)
		if !ok {
			return nil, errInvalidExpression("", "not a procedure: %v", node.Value)
		}
		return cx.apply(c, t.Children)
	case *Tree:
		v, err := cx.evalTree(node)
		if err != nil {
			return nil, err
		}
		c, ok := callableValue(v)
		if !ok {
			return nil, errInvalidExpression("", "not a procedure: %v", v)
		}
		return cx.apply(c, t.Children)
	}
	return nil, errInvalidExpression("", "not a procedure: %v", t.Node)
}

// apply evaluates the argument expressions of a call and invokes c.
func (cx *Context) apply(c *Callable, children []Expr) (Value, error) {
	if c.IsNative() {
		return c.Call(cx, fromExprs(children))
	}
	args, err := cx.EvalAll(fromExprs(children))
	if err != nil {
		return nil, err
	}
	return c.Call(cx, args)
}

// Errorf returns a runtime error attributed to the procedure at the top of
// the call stack.
func (cx *Context) Errorf(format string, v ...interface{}) error {
	fn := ""
	if top := cx.stack.Top(); top != nil {
		fn = top.Name
	}
	return &Error{Kind: ErrRuntime, Function: fn, Msg: fmt.Sprintf(format, v...)}
}

// Apply calls the procedure fn with args in a new root context.  Arguments
// are passed as values and are not evaluated again.
func (in *Interpreter) Apply(ctx context.Context, fn Value, args ...Value) (Value, error) {
	c, ok := callableValue(fn)
	if !ok {
		return nil, ErrUnexpected("apply", 1, fn, "procedure")
	}
	return c.Call(in.Root(ctx), args)
}
