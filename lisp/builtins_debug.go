package lisp

import (
	"fmt"
	"io"
	"strings"
)

func builtinDisplay(cx *Context, args []Value) (Value, error) {
	if err := RequireArity("display", args, 1); err != nil {
		return nil, err
	}
	_, err := io.WriteString(cx.interp.stdout, DisplayString(args[0]))
	if err != nil {
		return nil, berrf("display", "%v", err)
	}
	return Void{}, nil
}

func builtinDisplayln(cx *Context, args []Value) (Value, error) {
	if err := RequireArity("displayln", args, 1); err != nil {
		return nil, err
	}
	_, err := io.WriteString(cx.interp.stdout, DisplayString(args[0])+"\n")
	if err != nil {
		return nil, berrf("displayln", "%v", err)
	}
	return Void{}, nil
}

func builtinNewline(cx *Context, args []Value) (Value, error) {
	if err := RequireArity("newline", args, 0); err != nil {
		return nil, err
	}
	_, err := io.WriteString(cx.interp.stdout, "\n")
	if err != nil {
		return nil, berrf("newline", "%v", err)
	}
	return Void{}, nil
}

// builtinAST prints the syntax tree of its unevaluated argument.
func builtinAST(cx *Context, args []Value) (Value, error) {
	if err := RequireArity("ast", args, 1); err != nil {
		return nil, err
	}
	e, ok := ExprOf(args[0])
	if !ok {
		return nil, errInvalidExpression("ast", "argument has no syntax: %v", args[0])
	}
	var buf strings.Builder
	dumpExpr(&buf, e, 0)
	_, err := io.WriteString(cx.interp.stdout, buf.String())
	if err != nil {
		return nil, berrf("ast", "%v", err)
	}
	return Void{}, nil
}

func dumpExpr(w *strings.Builder, e Expr, depth int) {
	indent := strings.Repeat("  ", depth)
	switch e := e.(type) {
	case *Tree:
		fmt.Fprintf(w, "%stree\n", indent)
		if e.Node == nil {
			fmt.Fprintf(w, "%s  <missing node>\n", indent)
			return
		}
		for _, c := range e.Elems() {
			dumpExpr(w, c, depth+1)
		}
	case *Quoted:
		fmt.Fprintf(w, "%squoted\n", indent)
		dumpExpr(w, e.Expr, depth+1)
	case Ident:
		fmt.Fprintf(w, "%sident %s\n", indent, e.Name)
	case Literal:
		fmt.Fprintf(w, "%s%s %s\n", indent, e.Type, e)
	case ValueExpr:
		fmt.Fprintf(w, "%s%s %s\n", indent, TypeName(e.Value), e)
	}
}

// builtinShowMemory prints the global table and the local table of the
// calling context.
func builtinShowMemory(cx *Context, args []Value) (Value, error) {
	if err := RequireArity("show-memory", args, 0); err != nil {
		return nil, err
	}
	var buf strings.Builder
	g := cx.interp.globals
	fmt.Fprintf(&buf, "globals [%d]:\n", g.Len())
	for _, name := range g.Names() {
		v, _ := g.Get(name)
		fmt.Fprintf(&buf, "  %s = %v\n", name, v)
	}
	fmt.Fprintf(&buf, "locals [%d]:\n", len(cx.locals))
	for _, name := range cx.LocalNames() {
		fmt.Fprintf(&buf, "  %s = %v\n", name, cx.locals[name])
	}
	_, err := io.WriteString(cx.interp.stdout, buf.String())
	if err != nil {
		return nil, berrf("show-memory", "%v", err)
	}
	return Void{}, nil
}

func builtinClear(cx *Context, args []Value) (Value, error) {
	if err := RequireArity("clear", args, 0); err != nil {
		return nil, err
	}
	_, err := io.WriteString(cx.interp.stdout, "\x1b[2J\x1b[H")
	if err != nil {
		return nil, berrf("clear", "%v", err)
	}
	return Void{}, nil
}

func builtinDebugStack(cx *Context, args []Value) (Value, error) {
	if err := RequireArity("debug-stack", args, 0); err != nil {
		return nil, err
	}
	cx.stack.DebugPrint(cx.interp.stderr)
	return Void{}, nil
}

func builtinExit(cx *Context, args []Value) (Value, error) {
	if err := RequireArityRange("exit", args, 0, 1); err != nil {
		return nil, err
	}
	code := 0
	if len(args) == 1 {
		n, err := IntArg("exit", 1, args[0])
		if err != nil {
			return nil, err
		}
		code = int(n)
	}
	cx.interp.exit(code)
	return Void{}, nil
}
