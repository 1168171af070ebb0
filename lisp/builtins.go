package lisp

// NativeFunc is a function implemented in Go.  A NativeFunc receives its
// arguments unevaluated and decides for itself which of them to evaluate.
type NativeFunc func(cx *Context, args []Value) (Value, error)

// NativeDef is a named native function.
type NativeDef interface {
	Name() string
	Call(cx *Context, args []Value) (Value, error)
}

type langNative struct {
	name string
	fun  NativeFunc
}

// Native returns a NativeDef which passes its arguments to fn unevaluated.
func Native(name string, fn NativeFunc) NativeDef {
	return &langNative{name, fn}
}

// StrictNative returns a NativeDef which evaluates all of its arguments in
// order before passing them to fn.
func StrictNative(name string, fn NativeFunc) NativeDef {
	return &langNative{name, strict(fn)}
}

func (fun *langNative) Name() string {
	return fun.name
}

func (fun *langNative) Call(cx *Context, args []Value) (Value, error) {
	return fun.fun(cx, args)
}

// strict wraps fn so that its arguments are evaluated left to right in a
// descended context before fn is called.
func strict(fn NativeFunc) NativeFunc {
	return func(cx *Context, args []Value) (Value, error) {
		vals, err := cx.EvalAll(args)
		if err != nil {
			return nil, err
		}
		return fn(cx, vals)
	}
}

var userNatives []NativeDef
var langNatives = []*langNative{
	{"define", opDefine},
	{"lambda", opLambda},
	{"if", opIf},
	{"cond", opCond},
	{"when", opWhen},
	{"unless", opUnless},
	{"begin", opBegin},
	{"let", opLet},
	{"let*", opLetStar},
	{"quote", opQuote},
	{"and", opAnd},
	{"or", opOr},
	{"not", strict(builtinNot)},
	{"nand", strict(builtinNand)},
	{"nor", strict(builtinNor)},
	{"xor", strict(builtinXor)},
	{"+", strict(builtinAdd)},
	{"-", strict(builtinSub)},
	{"*", strict(builtinMul)},
	{"/", strict(builtinDiv)},
	{"modulo", strict(builtinModulo)},
	{"remainder", strict(builtinRemainder)},
	{"abs", strict(builtinAbs)},
	{"max", strict(builtinMax)},
	{"min", strict(builtinMin)},
	{"=", strict(builtinNumEq)},
	{"<", strict(builtinLT)},
	{">", strict(builtinGT)},
	{"<=", strict(builtinLEq)},
	{">=", strict(builtinGEq)},
	{"equal?", strict(builtinEqual)},
	{"eq?", strict(builtinEq)},
	{"number?", strict(builtinNumberP)},
	{"integer?", strict(builtinIntegerP)},
	{"string?", strict(builtinStringP)},
	{"boolean?", strict(builtinBooleanP)},
	{"list?", strict(builtinListP)},
	{"pair?", strict(builtinPairP)},
	{"null?", strict(builtinNullP)},
	{"empty?", strict(builtinNullP)},
	{"procedure?", strict(builtinProcedureP)},
	{"symbol?", strict(builtinSymbolP)},
	{"cons", strict(builtinCons)},
	{"car", strict(builtinCar)},
	{"cdr", strict(builtinCdr)},
	{"list", strict(builtinList)},
	{"length", strict(builtinLength)},
	{"list-ref", strict(builtinListRef)},
	{"list-tail", strict(builtinListTail)},
	{"append", strict(builtinAppend)},
	{"reverse", strict(builtinReverse)},
	{"list->string", strict(builtinListToString)},
	{"build-list", builtinBuildList},
	{"map", builtinMap},
	{"filter", builtinFilter},
	{"foldl", builtinFoldLeft},
	{"foldr", builtinFoldRight},
	{"apply", builtinApply},
	{"string-append", strict(builtinStringAppend)},
	{"make-string", strict(builtinMakeString)},
	{"string-length", strict(builtinStringLength)},
	{"substring", strict(builtinSubstring)},
	{"string->list", strict(builtinStringToList)},
	{"string-upcase", strict(builtinStringUpcase)},
	{"string-downcase", strict(builtinStringDowncase)},
	{"number->string", strict(builtinNumberToString)},
	{"string->number", strict(builtinStringToNumber)},
	{"string=?", strict(builtinStringEq)},
	{"string<?", strict(builtinStringLT)},
	{"display", strict(builtinDisplay)},
	{"displayln", strict(builtinDisplayln)},
	{"newline", strict(builtinNewline)},
	{"ast", builtinAST},
	{"show-memory", builtinShowMemory},
	{"clear", builtinClear},
	{"debug-stack", builtinDebugStack},
	{"exit", strict(builtinExit)},
}

// RegisterDefaultNative adds the given function to the list returned by
// DefaultNatives.  RegisterDefaultNative is not safe to call concurrently
// with New.
func RegisterDefaultNative(name string, fn NativeFunc) {
	userNatives = append(userNatives, &langNative{name, fn})
}

// DefaultNatives returns the default set of NativeDefs registered with an
// Interpreter when AddNatives is called without arguments.
func DefaultNatives() []NativeDef {
	defs := make([]NativeDef, len(langNatives)+len(userNatives))
	for i := range langNatives {
		defs[i] = langNatives[i]
	}
	copy(defs[len(langNatives):], userNatives)
	return defs
}

// RequireArity returns an error if args does not have exactly n elements.
func RequireArity(fn string, args []Value, n int) error {
	if len(args) != n {
		return ErrArity(fn, n, len(args))
	}
	return nil
}

// RequireArityAtLeast returns an error if args has fewer than n elements.
func RequireArityAtLeast(fn string, args []Value, n int) error {
	if len(args) < n {
		return errArityAtLeast(fn, n, len(args))
	}
	return nil
}

// RequireArityRange returns an error unless args has between min and max
// elements.
func RequireArityRange(fn string, args []Value, min, max int) error {
	if len(args) < min {
		return errArityAtLeast(fn, min, len(args))
	}
	if len(args) > max {
		return ErrArity(fn, max, len(args))
	}
	return nil
}

// ExprOf returns the syntax of an unevaluated argument.
func ExprOf(v Value) (Expr, bool) {
	switch v := v.(type) {
	case ExprValue:
		return v.Expr, true
	case Literal:
		return v, true
	}
	e, err := ToExpr(v)
	return e, err == nil
}

// StringArg returns the string in v or an error attributed to argument pos
// of fn.
func StringArg(fn string, pos int, v Value) (string, error) {
	lit, ok := v.(Literal)
	if !ok || lit.Type != LString {
		return "", ErrUnexpected(fn, pos, v, "string")
	}
	return lit.Str, nil
}

// IntArg returns the integer in v or an error attributed to argument pos of
// fn.
func IntArg(fn string, pos int, v Value) (int64, error) {
	lit, ok := v.(Literal)
	if !ok || !lit.IsInteger() {
		return 0, ErrUnexpected(fn, pos, v, "integer")
	}
	return lit.Int, nil
}

// MaxLength is the largest count accepted by natives which allocate a string
// or list of a requested size.
const MaxLength = 1 << 24

// LengthArg returns the count in v or an error attributed to argument pos of
// fn.  The count must be an integer between zero and MaxLength.
func LengthArg(fn string, pos int, v Value) (int, error) {
	n, err := IntArg(fn, pos, v)
	if err != nil {
		return 0, err
	}
	if n < 0 {
		return 0, ErrUnexpected(fn, pos, v, "non-negative integer")
	}
	if n > MaxLength {
		return 0, berrf(fn, "length %d exceeds the maximum of %d", n, MaxLength)
	}
	return int(n), nil
}

// ListArg returns the list in v or an error attributed to argument pos of
// fn.
func ListArg(fn string, pos int, v Value) (List, error) {
	lis, ok := AsList(v)
	if !ok {
		return nil, ErrUnexpected(fn, pos, v, "list")
	}
	return lis, nil
}
