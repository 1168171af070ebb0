package lisp

// Special forms.  Each receives its arguments unevaluated.  Branches and
// bodies of control forms are evaluated in the calling context so that a
// top-level define inside them stays global.

func opQuote(cx *Context, args []Value) (Value, error) {
	if err := RequireArity("quote", args, 1); err != nil {
		return nil, err
	}
	ev, ok := args[0].(ExprValue)
	if !ok {
		return args[0], nil
	}
	return cx.EvalExpr(Quote(ev.Expr))
}

func opDefine(cx *Context, args []Value) (Value, error) {
	if err := RequireArityAtLeast("define", args, 2); err != nil {
		return nil, err
	}
	target, _ := ExprOf(args[0])
	switch target := target.(type) {
	case Ident:
		if err := RequireArity("define", args, 2); err != nil {
			return nil, err
		}
		// a local definition is evaluated in its own scope so that a
		// lambda value can refer to itself.
		sub := cx
		if cx.root {
			sub = cx.Descend()
		}
		v, err := sub.Eval(args[1])
		if err != nil {
			return nil, err
		}
		if lam, ok := v.(*Lambda); ok {
			v = &Function{Name: target.Name, Procedure: lam.Procedure}
		}
		cx.Define(target.Name, v)
		return Void{}, nil
	case *Tree:
		name, ok := target.HeadIdent()
		if !ok {
			return nil, errIdentifierExpected("define", FromExpr(target.Node))
		}
		params, _, err := parseParams("define", treeFromElems(target.Children))
		if err != nil {
			return nil, err
		}
		body, err := bodyExprs("define", args[1:])
		if err != nil {
			return nil, err
		}
		fn := &Function{Name: name, Procedure: newProcedure(cx, params, "", body)}
		cx.Define(name, fn)
		return Void{}, nil
	}
	return nil, errIdentifierExpected("define", args[0])
}

func opLambda(cx *Context, args []Value) (Value, error) {
	if err := RequireArityAtLeast("lambda", args, 2); err != nil {
		return nil, err
	}
	formals, ok := ExprOf(args[0])
	if !ok {
		return nil, errInvalidExpression("lambda", "invalid parameter list: %v", args[0])
	}
	params, rest, err := parseParams("lambda", formals)
	if err != nil {
		return nil, err
	}
	body, err := bodyExprs("lambda", args[1:])
	if err != nil {
		return nil, err
	}
	return &Lambda{newProcedure(cx, params, rest, body)}, nil
}

func bodyExprs(fn string, args []Value) ([]Expr, error) {
	body := make([]Expr, len(args))
	for i := range args {
		e, ok := ExprOf(args[i])
		if !ok {
			return nil, errInvalidExpression(fn, "invalid body expression: %v", args[i])
		}
		body[i] = e
	}
	return body, nil
}

func opIf(cx *Context, args []Value) (Value, error) {
	if err := RequireArityRange("if", args, 2, 3); err != nil {
		return nil, err
	}
	test, err := cx.Eval(args[0])
	if err != nil {
		return nil, err
	}
	if !IsFalse(test) {
		return cx.Eval(args[1])
	}
	if len(args) < 3 {
		return Void{}, nil
	}
	return cx.Eval(args[2])
}

func opCond(cx *Context, args []Value) (Value, error) {
	for i, arg := range args {
		e, _ := ExprOf(arg)
		clause, ok := e.(*Tree)
		if !ok || clause.Len() == 0 {
			return nil, errInvalidExpression("cond", "clause %d is not a list: %v", i+1, arg)
		}
		var test Value
		if id, ok := clause.Node.(Ident); ok && id.Name == "else" {
			if i != len(args)-1 {
				return nil, errInvalidExpression("cond", "else clause must be last")
			}
			test = Bool(true)
		} else {
			v, err := cx.EvalExpr(clause.Node)
			if err != nil {
				return nil, err
			}
			test = v
		}
		if IsFalse(test) {
			continue
		}
		if len(clause.Children) == 0 {
			return test, nil
		}
		return cx.evalSequence(fromExprs(clause.Children))
	}
	return Void{}, nil
}

func opWhen(cx *Context, args []Value) (Value, error) {
	if err := RequireArityAtLeast("when", args, 2); err != nil {
		return nil, err
	}
	test, err := cx.Eval(args[0])
	if err != nil {
		return nil, err
	}
	if IsFalse(test) {
		return Void{}, nil
	}
	return cx.evalSequence(args[1:])
}

func opUnless(cx *Context, args []Value) (Value, error) {
	if err := RequireArityAtLeast("unless", args, 2); err != nil {
		return nil, err
	}
	test, err := cx.Eval(args[0])
	if err != nil {
		return nil, err
	}
	if !IsFalse(test) {
		return Void{}, nil
	}
	return cx.evalSequence(args[1:])
}

func opBegin(cx *Context, args []Value) (Value, error) {
	return cx.evalSequence(args)
}

// evalSequence evaluates args in order and returns the last value.
func (cx *Context) evalSequence(args []Value) (Value, error) {
	var ret Value = Void{}
	for _, arg := range args {
		v, err := cx.Eval(arg)
		if err != nil {
			return nil, err
		}
		ret = v
	}
	return ret, nil
}

// letBindings reads the binding list of a let form.
func letBindings(fn string, v Value) ([]string, []Expr, error) {
	e, _ := ExprOf(v)
	t, ok := e.(*Tree)
	if !ok {
		return nil, nil, errInvalidExpression(fn, "invalid binding list: %v", v)
	}
	var names []string
	var exprs []Expr
	for _, b := range t.Elems() {
		pair, ok := b.(*Tree)
		if !ok || pair.Len() != 2 {
			return nil, nil, errInvalidExpression(fn, "invalid binding: %v", b)
		}
		id, ok := pair.Node.(Ident)
		if !ok {
			return nil, nil, errIdentifierExpected(fn, FromExpr(pair.Node))
		}
		names = append(names, id.Name)
		exprs = append(exprs, pair.Children[0])
	}
	return names, exprs, nil
}

func opLet(cx *Context, args []Value) (Value, error) {
	if err := RequireArityAtLeast("let", args, 2); err != nil {
		return nil, err
	}
	names, exprs, err := letBindings("let", args[0])
	if err != nil {
		return nil, err
	}
	body, err := bodyExprs("let", args[1:])
	if err != nil {
		return nil, err
	}
	vals, err := cx.EvalAll(fromExprs(exprs))
	if err != nil {
		return nil, err
	}
	proc := &Procedure{Params: names, Body: body, Arity: len(names), env: cx.scope()}
	return cx.callProcedure("let", proc, vals)
}

func opLetStar(cx *Context, args []Value) (Value, error) {
	if err := RequireArityAtLeast("let*", args, 2); err != nil {
		return nil, err
	}
	names, exprs, err := letBindings("let*", args[0])
	if err != nil {
		return nil, err
	}
	body, err := bodyExprs("let*", args[1:])
	if err != nil {
		return nil, err
	}
	if len(names) == 0 {
		proc := &Procedure{Body: body, env: cx.scope()}
		return cx.callProcedure("let*", proc, nil)
	}
	first, err := cx.Descend().EvalExpr(exprs[0])
	if err != nil {
		return nil, err
	}
	// bind the first name and nest the remaining bindings inside it.
	var rest []Expr
	for i := 1; i < len(names); i++ {
		rest = append(rest, NewTree(Ident{Name: names[i]}, exprs[i]))
	}
	inner := NewTree(Ident{Name: "let*"}, append([]Expr{treeFromElems(rest)}, body...)...)
	proc := &Procedure{Params: names[:1], Body: []Expr{inner}, Arity: 1, env: cx.scope()}
	return cx.callProcedure("let*", proc, []Value{first})
}

func opAnd(cx *Context, args []Value) (Value, error) {
	var ret Value = Bool(true)
	for _, arg := range args {
		v, err := cx.Eval(arg)
		if err != nil {
			return nil, err
		}
		if IsFalse(v) {
			return v, nil
		}
		ret = v
	}
	return ret, nil
}

func opOr(cx *Context, args []Value) (Value, error) {
	for _, arg := range args {
		v, err := cx.Eval(arg)
		if err != nil {
			return nil, err
		}
		if !IsFalse(v) {
			return v, nil
		}
	}
	return Bool(false), nil
}

func builtinNot(cx *Context, args []Value) (Value, error) {
	if err := RequireArity("not", args, 1); err != nil {
		return nil, err
	}
	return Bool(IsFalse(args[0])), nil
}

func builtinNand(cx *Context, args []Value) (Value, error) {
	for _, v := range args {
		if IsFalse(v) {
			return Bool(true), nil
		}
	}
	return Bool(false), nil
}

func builtinNor(cx *Context, args []Value) (Value, error) {
	for _, v := range args {
		if !IsFalse(v) {
			return Bool(false), nil
		}
	}
	return Bool(true), nil
}

func builtinXor(cx *Context, args []Value) (Value, error) {
	if err := RequireArity("xor", args, 2); err != nil {
		return nil, err
	}
	a, b := !IsFalse(args[0]), !IsFalse(args[1])
	switch {
	case a && !b:
		return args[0], nil
	case b && !a:
		return args[1], nil
	}
	return Bool(false), nil
}
