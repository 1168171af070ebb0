package lisp

import (
	"strings"
)

func builtinCons(cx *Context, args []Value) (Value, error) {
	if err := RequireArity("cons", args, 2); err != nil {
		return nil, err
	}
	if tail, ok := AsList(args[1]); ok {
		lis := make(List, 0, len(tail)+1)
		lis = append(lis, args[0])
		return append(lis, tail...), nil
	}
	return &Pair{Left: args[0], Right: args[1]}, nil
}

func builtinCar(cx *Context, args []Value) (Value, error) {
	if err := RequireArity("car", args, 1); err != nil {
		return nil, err
	}
	if p, ok := args[0].(*Pair); ok {
		return p.Left, nil
	}
	lis, ok := AsList(args[0])
	if !ok || len(lis) == 0 {
		return nil, ErrUnexpected("car", 1, args[0], "pair")
	}
	return lis[0], nil
}

func builtinCdr(cx *Context, args []Value) (Value, error) {
	if err := RequireArity("cdr", args, 1); err != nil {
		return nil, err
	}
	if p, ok := args[0].(*Pair); ok {
		return p.Right, nil
	}
	lis, ok := AsList(args[0])
	if !ok || len(lis) == 0 {
		return nil, ErrUnexpected("cdr", 1, args[0], "pair")
	}
	rest := make(List, len(lis)-1)
	copy(rest, lis[1:])
	return rest, nil
}

func builtinList(cx *Context, args []Value) (Value, error) {
	lis := make(List, len(args))
	copy(lis, args)
	return lis, nil
}

func builtinLength(cx *Context, args []Value) (Value, error) {
	if err := RequireArity("length", args, 1); err != nil {
		return nil, err
	}
	lis, err := ListArg("length", 1, args[0])
	if err != nil {
		return nil, err
	}
	return Int(int64(len(lis))), nil
}

func builtinListRef(cx *Context, args []Value) (Value, error) {
	if err := RequireArity("list-ref", args, 2); err != nil {
		return nil, err
	}
	lis, err := ListArg("list-ref", 1, args[0])
	if err != nil {
		return nil, err
	}
	i, err := IntArg("list-ref", 2, args[1])
	if err != nil {
		return nil, err
	}
	if i < 0 || i >= int64(len(lis)) {
		return nil, ErrOutOfRange(len(lis), int(i))
	}
	return lis[i], nil
}

func builtinListTail(cx *Context, args []Value) (Value, error) {
	if err := RequireArity("list-tail", args, 2); err != nil {
		return nil, err
	}
	lis, err := ListArg("list-tail", 1, args[0])
	if err != nil {
		return nil, err
	}
	k, err := IntArg("list-tail", 2, args[1])
	if err != nil {
		return nil, err
	}
	if k < 0 || k > int64(len(lis)) {
		return nil, ErrOutOfRange(len(lis), int(k))
	}
	tail := make(List, len(lis)-int(k))
	copy(tail, lis[k:])
	return tail, nil
}

func builtinAppend(cx *Context, args []Value) (Value, error) {
	out := List{}
	for i, arg := range args {
		lis, err := ListArg("append", i+1, arg)
		if err != nil {
			return nil, err
		}
		out = append(out, lis...)
	}
	return out, nil
}

func builtinReverse(cx *Context, args []Value) (Value, error) {
	if err := RequireArity("reverse", args, 1); err != nil {
		return nil, err
	}
	lis, err := ListArg("reverse", 1, args[0])
	if err != nil {
		return nil, err
	}
	rev := make(List, len(lis))
	for i := range lis {
		rev[len(lis)-1-i] = lis[i]
	}
	return rev, nil
}

func builtinListToString(cx *Context, args []Value) (Value, error) {
	if err := RequireArity("list->string", args, 1); err != nil {
		return nil, err
	}
	lis, err := ListArg("list->string", 1, args[0])
	if err != nil {
		return nil, err
	}
	var buf strings.Builder
	for _, v := range lis {
		c, ok := v.(Literal)
		if !ok || c.Type != LCharacter {
			return nil, ErrUnexpected("list->string", 1, v, "list of characters")
		}
		buf.WriteString(c.Str)
	}
	return String(buf.String()), nil
}

func builtinBuildList(cx *Context, args []Value) (Value, error) {
	if err := RequireArity("build-list", args, 2); err != nil {
		return nil, err
	}
	nval, err := cx.Descend().Eval(args[0])
	if err != nil {
		return nil, err
	}
	n, err := LengthArg("build-list", 1, nval)
	if err != nil {
		return nil, err
	}
	fn, err := cx.ResolveCallable("build-list", 2, args[1])
	if err != nil {
		return nil, err
	}
	lis := make(List, n)
	for i := range lis {
		v, err := fn.Call(cx, []Value{Int(int64(i))})
		if err != nil {
			return nil, err
		}
		lis[i] = v
	}
	return lis, nil
}

// higherOrderArgs resolves the procedure argument of a higher-order native
// and evaluates the remaining arguments.
func higherOrderArgs(cx *Context, fn string, args []Value, min int) (*Callable, []Value, error) {
	if err := RequireArityAtLeast(fn, args, min); err != nil {
		return nil, nil, err
	}
	c, err := cx.ResolveCallable(fn, 1, args[0])
	if err != nil {
		return nil, nil, err
	}
	rest, err := cx.EvalAll(args[1:])
	if err != nil {
		return nil, nil, err
	}
	return c, rest, nil
}

// equalLengthLists converts vals to lists of equal length.  Positions
// are reported relative to the native's argument list.
func equalLengthLists(fn string, offset int, vals []Value) ([]List, error) {
	lists := make([]List, len(vals))
	for i := range vals {
		lis, err := ListArg(fn, offset+i+1, vals[i])
		if err != nil {
			return nil, err
		}
		if i > 0 && len(lis) != len(lists[0]) {
			return nil, errInvalidOperands(fn, "all lists must have the same size")
		}
		lists[i] = lis
	}
	return lists, nil
}

func builtinMap(cx *Context, args []Value) (Value, error) {
	fn, rest, err := higherOrderArgs(cx, "map", args, 2)
	if err != nil {
		return nil, err
	}
	lists, err := equalLengthLists("map", 1, rest)
	if err != nil {
		return nil, err
	}
	out := make(List, len(lists[0]))
	for i := range out {
		callArgs := make([]Value, len(lists))
		for j := range lists {
			callArgs[j] = lists[j][i]
		}
		v, err := fn.Call(cx, callArgs)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

func builtinFilter(cx *Context, args []Value) (Value, error) {
	if err := RequireArity("filter", args, 2); err != nil {
		return nil, err
	}
	fn, rest, err := higherOrderArgs(cx, "filter", args, 2)
	if err != nil {
		return nil, err
	}
	lis, err := ListArg("filter", 2, rest[0])
	if err != nil {
		return nil, err
	}
	out := List{}
	for _, v := range lis {
		ok, err := fn.Call(cx, []Value{v})
		if err != nil {
			return nil, err
		}
		b, isBool := ok.(Literal)
		if !isBool || b.Type != LBoolean {
			return nil, errInvalidType("filter", "predicate returned %s, expected boolean", TypeName(ok))
		}
		if b.Bool {
			out = append(out, v)
		}
	}
	return out, nil
}

// fold implements foldl and foldr.  The procedure receives the list
// elements followed by the accumulator.
func fold(cx *Context, name string, args []Value, right bool) (Value, error) {
	fn, rest, err := higherOrderArgs(cx, name, args, 3)
	if err != nil {
		return nil, err
	}
	acc := rest[0]
	lists, err := equalLengthLists(name, 2, rest[1:])
	if err != nil {
		return nil, err
	}
	n := len(lists[0])
	for k := 0; k < n; k++ {
		i := k
		if right {
			i = n - 1 - k
		}
		callArgs := make([]Value, 0, len(lists)+1)
		for j := range lists {
			callArgs = append(callArgs, lists[j][i])
		}
		callArgs = append(callArgs, acc)
		acc, err = fn.Call(cx, callArgs)
		if err != nil {
			return nil, err
		}
	}
	return acc, nil
}

func builtinFoldLeft(cx *Context, args []Value) (Value, error) {
	return fold(cx, "foldl", args, false)
}

func builtinFoldRight(cx *Context, args []Value) (Value, error) {
	return fold(cx, "foldr", args, true)
}

func builtinApply(cx *Context, args []Value) (Value, error) {
	fn, rest, err := higherOrderArgs(cx, "apply", args, 2)
	if err != nil {
		return nil, err
	}
	last := len(rest) - 1
	lis, err := ListArg("apply", len(args), rest[last])
	if err != nil {
		return nil, err
	}
	callArgs := make([]Value, 0, last+len(lis))
	callArgs = append(callArgs, rest[:last]...)
	callArgs = append(callArgs, lis...)
	return fn.Call(cx, callArgs)
}

func builtinEqual(cx *Context, args []Value) (Value, error) {
	if err := RequireArity("equal?", args, 2); err != nil {
		return nil, err
	}
	return Bool(Equal(args[0], args[1])), nil
}

// builtinEq compares primitives and symbols by value and structured values
// by identity.
func builtinEq(cx *Context, args []Value) (Value, error) {
	if err := RequireArity("eq?", args, 2); err != nil {
		return nil, err
	}
	a, b := args[0], args[1]
	switch a := a.(type) {
	case List:
		b, ok := b.(List)
		if !ok || len(a) != len(b) {
			return Bool(false), nil
		}
		return Bool(len(a) == 0 || &a[0] == &b[0]), nil
	case *Pair:
		return Bool(a == b), nil
	}
	return Bool(Equal(a, b)), nil
}

func builtinStringP(cx *Context, args []Value) (Value, error) {
	return literalTypeP("string?", args, LString)
}

func builtinBooleanP(cx *Context, args []Value) (Value, error) {
	return literalTypeP("boolean?", args, LBoolean)
}

func literalTypeP(fn string, args []Value, typ LiteralType) (Value, error) {
	if err := RequireArity(fn, args, 1); err != nil {
		return nil, err
	}
	lit, ok := args[0].(Literal)
	return Bool(ok && lit.Type == typ), nil
}

func builtinListP(cx *Context, args []Value) (Value, error) {
	if err := RequireArity("list?", args, 1); err != nil {
		return nil, err
	}
	_, ok := AsList(args[0])
	return Bool(ok), nil
}

func builtinPairP(cx *Context, args []Value) (Value, error) {
	if err := RequireArity("pair?", args, 1); err != nil {
		return nil, err
	}
	if _, ok := args[0].(*Pair); ok {
		return Bool(true), nil
	}
	lis, ok := AsList(args[0])
	return Bool(ok && len(lis) > 0), nil
}

func builtinNullP(cx *Context, args []Value) (Value, error) {
	if err := RequireArity("null?", args, 1); err != nil {
		return nil, err
	}
	lis, ok := AsList(args[0])
	return Bool(ok && len(lis) == 0), nil
}

func builtinProcedureP(cx *Context, args []Value) (Value, error) {
	if err := RequireArity("procedure?", args, 1); err != nil {
		return nil, err
	}
	_, ok := callableValue(args[0])
	return Bool(ok), nil
}

func builtinSymbolP(cx *Context, args []Value) (Value, error) {
	if err := RequireArity("symbol?", args, 1); err != nil {
		return nil, err
	}
	return Bool(symbolName(args[0]) != ""), nil
}
