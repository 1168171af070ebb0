package libmath

import (
	"math"

	"github.com/bmatsuo/rkt/lisp"
)

// LoadPackage registers the math natives with in and binds the constants pi
// and +inf.0.
func LoadPackage(in *lisp.Interpreter) error {
	in.Globals().Put("pi", lisp.Float(math.Pi))
	in.Globals().Put("+inf.0", lisp.Float(math.Inf(1)))
	in.Globals().Put("-inf.0", lisp.Float(math.Inf(-1)))
	in.AddNatives(builtins...)
	return nil
}

var builtins = []lisp.NativeDef{
	lisp.StrictNative("ceiling", builtinCeiling),
	lisp.StrictNative("floor", builtinFloor),
	lisp.StrictNative("round", builtinRound),
	lisp.StrictNative("truncate", builtinTruncate),
	lisp.StrictNative("sqrt", builtinSqrt),
	lisp.StrictNative("exp", builtinExp),
	lisp.StrictNative("log", builtinLog),
	lisp.StrictNative("expt", builtinExpt),
	lisp.StrictNative("exact->inexact", builtinExactToInexact),
	lisp.StrictNative("add1", builtinAdd1),
	lisp.StrictNative("sub1", builtinSub1),
	lisp.StrictNative("zero?", builtinZeroP),
	lisp.StrictNative("positive?", builtinPositiveP),
	lisp.StrictNative("negative?", builtinNegativeP),
	lisp.StrictNative("even?", builtinEvenP),
	lisp.StrictNative("odd?", builtinOddP),
}

// number returns the single argument of fn as an integer or float literal.
func number(fn string, args []lisp.Value) (lisp.Literal, error) {
	if err := lisp.RequireArity(fn, args, 1); err != nil {
		return lisp.Literal{}, err
	}
	return numberAt(fn, 1, args[0])
}

func numberAt(fn string, pos int, v lisp.Value) (lisp.Literal, error) {
	x, ok := v.(lisp.Literal)
	if !ok || !x.IsNumeric() {
		return lisp.Literal{}, lisp.ErrUnexpected(fn, pos, v, "number")
	}
	if !x.IsInteger() && x.Type != lisp.LFloat {
		return lisp.Literal{}, lisp.ErrUnexpected(fn, pos, v, "integer or float")
	}
	if x.IsInteger() {
		return lisp.Int(x.Int), nil
	}
	return x, nil
}

func toFloat(x lisp.Literal) float64 {
	if x.Type == lisp.LFloat {
		return x.Float
	}
	return float64(x.Int)
}

// rounding applies f to floats.  Integers are returned unchanged.
func rounding(fn string, args []lisp.Value, f func(float64) float64) (lisp.Value, error) {
	x, err := number(fn, args)
	if err != nil {
		return nil, err
	}
	if x.Type == lisp.LInteger {
		return x, nil
	}
	return lisp.Float(f(x.Float)), nil
}

func builtinCeiling(cx *lisp.Context, args []lisp.Value) (lisp.Value, error) {
	return rounding("ceiling", args, math.Ceil)
}

func builtinFloor(cx *lisp.Context, args []lisp.Value) (lisp.Value, error) {
	return rounding("floor", args, math.Floor)
}

func builtinRound(cx *lisp.Context, args []lisp.Value) (lisp.Value, error) {
	return rounding("round", args, math.RoundToEven)
}

func builtinTruncate(cx *lisp.Context, args []lisp.Value) (lisp.Value, error) {
	return rounding("truncate", args, math.Trunc)
}

func builtinSqrt(cx *lisp.Context, args []lisp.Value) (lisp.Value, error) {
	x, err := number("sqrt", args)
	if err != nil {
		return nil, err
	}
	if x.Type == lisp.LInteger && x.Int >= 0 {
		r := int64(math.Sqrt(float64(x.Int)))
		if r*r == x.Int {
			return lisp.Int(r), nil
		}
	}
	return lisp.Float(math.Sqrt(toFloat(x))), nil
}

func builtinExp(cx *lisp.Context, args []lisp.Value) (lisp.Value, error) {
	x, err := number("exp", args)
	if err != nil {
		return nil, err
	}
	return lisp.Float(math.Exp(toFloat(x))), nil
}

// builtinLog computes the natural logarithm, or the logarithm in the base
// given as a second argument.
func builtinLog(cx *lisp.Context, args []lisp.Value) (lisp.Value, error) {
	if err := lisp.RequireArityAtLeast("log", args, 1); err != nil {
		return nil, err
	}
	if len(args) > 2 {
		return nil, lisp.ErrArity("log", 2, len(args))
	}
	x, err := numberAt("log", 1, args[0])
	if err != nil {
		return nil, err
	}
	if len(args) == 1 {
		return lisp.Float(math.Log(toFloat(x))), nil
	}
	b, err := numberAt("log", 2, args[1])
	if err != nil {
		return nil, err
	}
	return lisp.Float(math.Log(toFloat(x)) / math.Log(toFloat(b))), nil
}

func builtinExpt(cx *lisp.Context, args []lisp.Value) (lisp.Value, error) {
	if err := lisp.RequireArity("expt", args, 2); err != nil {
		return nil, err
	}
	b, err := numberAt("expt", 1, args[0])
	if err != nil {
		return nil, err
	}
	e, err := numberAt("expt", 2, args[1])
	if err != nil {
		return nil, err
	}
	if b.Type == lisp.LInteger && e.Type == lisp.LInteger && e.Int >= 0 {
		return lisp.Int(powInt(b.Int, e.Int)), nil
	}
	return lisp.Float(math.Pow(toFloat(b), toFloat(e))), nil
}

func powInt(a, b int64) int64 {
	x := int64(1)
	for b > 0 {
		if b&1 == 1 {
			x *= a
		}
		a *= a
		b >>= 1
	}
	return x
}

func builtinExactToInexact(cx *lisp.Context, args []lisp.Value) (lisp.Value, error) {
	x, err := number("exact->inexact", args)
	if err != nil {
		return nil, err
	}
	return lisp.Float(toFloat(x)), nil
}

func builtinAdd1(cx *lisp.Context, args []lisp.Value) (lisp.Value, error) {
	x, err := number("add1", args)
	if err != nil {
		return nil, err
	}
	if x.Type == lisp.LInteger {
		return lisp.Int(x.Int + 1), nil
	}
	return lisp.Float(x.Float + 1), nil
}

func builtinSub1(cx *lisp.Context, args []lisp.Value) (lisp.Value, error) {
	x, err := number("sub1", args)
	if err != nil {
		return nil, err
	}
	if x.Type == lisp.LInteger {
		return lisp.Int(x.Int - 1), nil
	}
	return lisp.Float(x.Float - 1), nil
}

func sign(fn string, args []lisp.Value, ok func(float64) bool) (lisp.Value, error) {
	x, err := number(fn, args)
	if err != nil {
		return nil, err
	}
	return lisp.Bool(ok(toFloat(x))), nil
}

func builtinZeroP(cx *lisp.Context, args []lisp.Value) (lisp.Value, error) {
	return sign("zero?", args, func(x float64) bool { return x == 0 })
}

func builtinPositiveP(cx *lisp.Context, args []lisp.Value) (lisp.Value, error) {
	return sign("positive?", args, func(x float64) bool { return x > 0 })
}

func builtinNegativeP(cx *lisp.Context, args []lisp.Value) (lisp.Value, error) {
	return sign("negative?", args, func(x float64) bool { return x < 0 })
}

func parity(fn string, args []lisp.Value, odd bool) (lisp.Value, error) {
	if err := lisp.RequireArity(fn, args, 1); err != nil {
		return nil, err
	}
	n, err := lisp.IntArg(fn, 1, args[0])
	if err != nil {
		return nil, err
	}
	return lisp.Bool((n%2 != 0) == odd), nil
}

func builtinEvenP(cx *lisp.Context, args []lisp.Value) (lisp.Value, error) {
	return parity("even?", args, false)
}

func builtinOddP(cx *lisp.Context, args []lisp.Value) (lisp.Value, error) {
	return parity("odd?", args, true)
}
