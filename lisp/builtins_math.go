package lisp

import (
	"fmt"
	"math"
)

// numberArg returns the number in v.  Rational and complex numbers are
// recognized but not supported by arithmetic.
func numberArg(fn string, pos int, v Value) (Literal, error) {
	lit, ok := v.(Literal)
	if !ok || !lit.IsNumeric() {
		return Literal{}, ErrUnexpected(fn, pos, v, "number")
	}
	switch lit.Type {
	case LRational, LComplex:
		return Literal{}, errNotYetImplemented(fmt.Sprintf("%s arithmetic on %s numbers", fn, lit.Type))
	}
	if lit.IsInteger() {
		return Int(lit.Int), nil
	}
	return lit, nil
}

func numberArgs(fn string, args []Value) ([]Literal, bool, error) {
	nums := make([]Literal, len(args))
	allInt := true
	for i := range args {
		x, err := numberArg(fn, i+1, args[i])
		if err != nil {
			return nil, false, err
		}
		if x.Type != LInteger {
			allInt = false
		}
		nums[i] = x
	}
	return nums, allInt, nil
}

func toFloat(x Literal) float64 {
	if x.Type == LFloat {
		return x.Float
	}
	return float64(x.Int)
}

func builtinAdd(cx *Context, args []Value) (Value, error) {
	nums, allInt, err := numberArgs("+", args)
	if err != nil {
		return nil, err
	}
	if allInt {
		var sum int64
		for _, x := range nums {
			sum += x.Int
		}
		return Int(sum), nil
	}
	var sum float64
	for _, x := range nums {
		sum += toFloat(x)
	}
	return Float(sum), nil
}

func builtinSub(cx *Context, args []Value) (Value, error) {
	if err := RequireArityAtLeast("-", args, 1); err != nil {
		return nil, err
	}
	nums, allInt, err := numberArgs("-", args)
	if err != nil {
		return nil, err
	}
	if allInt {
		if len(nums) == 1 {
			return Int(-nums[0].Int), nil
		}
		diff := nums[0].Int
		for _, x := range nums[1:] {
			diff -= x.Int
		}
		return Int(diff), nil
	}
	if len(nums) == 1 {
		return Float(-toFloat(nums[0])), nil
	}
	diff := toFloat(nums[0])
	for _, x := range nums[1:] {
		diff -= toFloat(x)
	}
	return Float(diff), nil
}

func builtinMul(cx *Context, args []Value) (Value, error) {
	nums, allInt, err := numberArgs("*", args)
	if err != nil {
		return nil, err
	}
	if allInt {
		prod := int64(1)
		for _, x := range nums {
			prod *= x.Int
		}
		return Int(prod), nil
	}
	prod := 1.0
	for _, x := range nums {
		prod *= toFloat(x)
	}
	return Float(prod), nil
}

// builtinDiv divides left to right.  Integer division stays exact when the
// divisor divides evenly and becomes floating point otherwise.
func builtinDiv(cx *Context, args []Value) (Value, error) {
	if err := RequireArityAtLeast("/", args, 1); err != nil {
		return nil, err
	}
	nums, _, err := numberArgs("/", args)
	if err != nil {
		return nil, err
	}
	if len(nums) == 1 {
		nums = append([]Literal{Int(1)}, nums...)
	}
	quo := nums[0]
	for _, x := range nums[1:] {
		if toFloat(x) == 0 {
			return nil, berrf("/", "division by zero")
		}
		if quo.Type == LInteger && x.Type == LInteger && quo.Int%x.Int == 0 {
			quo = Int(quo.Int / x.Int)
			continue
		}
		quo = Float(toFloat(quo) / toFloat(x))
	}
	return quo, nil
}

func intPair(fn string, args []Value) (int64, int64, error) {
	if err := RequireArity(fn, args, 2); err != nil {
		return 0, 0, err
	}
	a, err := IntArg(fn, 1, args[0])
	if err != nil {
		return 0, 0, err
	}
	b, err := IntArg(fn, 2, args[1])
	if err != nil {
		return 0, 0, err
	}
	if b == 0 {
		return 0, 0, berrf(fn, "division by zero")
	}
	return a, b, nil
}

// builtinModulo returns a result with the sign of the divisor.
func builtinModulo(cx *Context, args []Value) (Value, error) {
	a, b, err := intPair("modulo", args)
	if err != nil {
		return nil, err
	}
	m := a % b
	if m != 0 && (m < 0) != (b < 0) {
		m += b
	}
	return Int(m), nil
}

// builtinRemainder returns a result with the sign of the dividend.
func builtinRemainder(cx *Context, args []Value) (Value, error) {
	a, b, err := intPair("remainder", args)
	if err != nil {
		return nil, err
	}
	return Int(a % b), nil
}

func builtinAbs(cx *Context, args []Value) (Value, error) {
	if err := RequireArity("abs", args, 1); err != nil {
		return nil, err
	}
	x, err := numberArg("abs", 1, args[0])
	if err != nil {
		return nil, err
	}
	if x.Type == LFloat {
		return Float(math.Abs(x.Float)), nil
	}
	if x.Int < 0 {
		return Int(-x.Int), nil
	}
	return x, nil
}

func builtinMax(cx *Context, args []Value) (Value, error) {
	return extremum("max", args, func(a, b Literal) bool { return numLess(b, a) })
}

func builtinMin(cx *Context, args []Value) (Value, error) {
	return extremum("min", args, numLess)
}

// extremum returns the element of args preferred by better.  The result is
// floating point if any argument is.
func extremum(fn string, args []Value, better func(a, b Literal) bool) (Value, error) {
	if err := RequireArityAtLeast(fn, args, 1); err != nil {
		return nil, err
	}
	nums, allInt, err := numberArgs(fn, args)
	if err != nil {
		return nil, err
	}
	best := nums[0]
	for _, x := range nums[1:] {
		if better(x, best) {
			best = x
		}
	}
	if !allInt {
		return Float(toFloat(best)), nil
	}
	return best, nil
}

func numLess(a, b Literal) bool {
	if a.Type == LInteger && b.Type == LInteger {
		return a.Int < b.Int
	}
	return toFloat(a) < toFloat(b)
}

func numEqual(a, b Literal) bool {
	if a.Type == LInteger && b.Type == LInteger {
		return a.Int == b.Int
	}
	return toFloat(a) == toFloat(b)
}

// compareChain returns #t if ok holds for every adjacent pair of args.
func compareChain(fn string, args []Value, ok func(a, b Literal) bool) (Value, error) {
	if err := RequireArityAtLeast(fn, args, 1); err != nil {
		return nil, err
	}
	nums, _, err := numberArgs(fn, args)
	if err != nil {
		return nil, err
	}
	for i := 1; i < len(nums); i++ {
		if !ok(nums[i-1], nums[i]) {
			return Bool(false), nil
		}
	}
	return Bool(true), nil
}

func builtinNumEq(cx *Context, args []Value) (Value, error) {
	return compareChain("=", args, numEqual)
}

func builtinLT(cx *Context, args []Value) (Value, error) {
	return compareChain("<", args, numLess)
}

func builtinGT(cx *Context, args []Value) (Value, error) {
	return compareChain(">", args, func(a, b Literal) bool { return numLess(b, a) })
}

func builtinLEq(cx *Context, args []Value) (Value, error) {
	return compareChain("<=", args, func(a, b Literal) bool { return !numLess(b, a) })
}

func builtinGEq(cx *Context, args []Value) (Value, error) {
	return compareChain(">=", args, func(a, b Literal) bool { return !numLess(a, b) })
}

func builtinNumberP(cx *Context, args []Value) (Value, error) {
	if err := RequireArity("number?", args, 1); err != nil {
		return nil, err
	}
	lit, ok := args[0].(Literal)
	return Bool(ok && lit.IsNumeric()), nil
}

func builtinIntegerP(cx *Context, args []Value) (Value, error) {
	if err := RequireArity("integer?", args, 1); err != nil {
		return nil, err
	}
	lit, ok := args[0].(Literal)
	if !ok {
		return Bool(false), nil
	}
	if lit.Type == LFloat {
		return Bool(lit.Float == math.Trunc(lit.Float) && !math.IsInf(lit.Float, 0)), nil
	}
	return Bool(lit.IsInteger()), nil
}
