package lisp

import (
	"strconv"
	"strings"
)

func builtinStringAppend(cx *Context, args []Value) (Value, error) {
	var buf strings.Builder
	for i, arg := range args {
		s, err := StringArg("string-append", i+1, arg)
		if err != nil {
			return nil, err
		}
		buf.WriteString(s)
	}
	return String(buf.String()), nil
}

func builtinMakeString(cx *Context, args []Value) (Value, error) {
	if err := RequireArityRange("make-string", args, 1, 2); err != nil {
		return nil, err
	}
	k, err := LengthArg("make-string", 1, args[0])
	if err != nil {
		return nil, err
	}
	fill := " "
	if len(args) == 2 {
		c, ok := args[1].(Literal)
		if !ok || c.Type != LCharacter {
			return nil, ErrUnexpected("make-string", 2, args[1], "character")
		}
		fill = c.Str
	}
	return String(strings.Repeat(fill, k)), nil
}

func builtinStringLength(cx *Context, args []Value) (Value, error) {
	if err := RequireArity("string-length", args, 1); err != nil {
		return nil, err
	}
	s, err := StringArg("string-length", 1, args[0])
	if err != nil {
		return nil, err
	}
	return Int(int64(len([]rune(s)))), nil
}

func builtinSubstring(cx *Context, args []Value) (Value, error) {
	if err := RequireArityRange("substring", args, 2, 3); err != nil {
		return nil, err
	}
	s, err := StringArg("substring", 1, args[0])
	if err != nil {
		return nil, err
	}
	runes := []rune(s)
	start, err := IntArg("substring", 2, args[1])
	if err != nil {
		return nil, err
	}
	end := int64(len(runes))
	if len(args) == 3 {
		end, err = IntArg("substring", 3, args[2])
		if err != nil {
			return nil, err
		}
	}
	if start < 0 || start > int64(len(runes)) {
		return nil, ErrOutOfRange(len(runes), int(start))
	}
	if end < start || end > int64(len(runes)) {
		return nil, ErrOutOfRange(len(runes), int(end))
	}
	return String(string(runes[start:end])), nil
}

func builtinStringToList(cx *Context, args []Value) (Value, error) {
	if err := RequireArity("string->list", args, 1); err != nil {
		return nil, err
	}
	s, err := StringArg("string->list", 1, args[0])
	if err != nil {
		return nil, err
	}
	lis := List{}
	for _, c := range s {
		lis = append(lis, Char(c))
	}
	return lis, nil
}

func builtinStringUpcase(cx *Context, args []Value) (Value, error) {
	return mapString("string-upcase", args, strings.ToUpper)
}

func builtinStringDowncase(cx *Context, args []Value) (Value, error) {
	return mapString("string-downcase", args, strings.ToLower)
}

func mapString(fn string, args []Value, f func(string) string) (Value, error) {
	if err := RequireArity(fn, args, 1); err != nil {
		return nil, err
	}
	s, err := StringArg(fn, 1, args[0])
	if err != nil {
		return nil, err
	}
	return String(f(s)), nil
}

func builtinNumberToString(cx *Context, args []Value) (Value, error) {
	if err := RequireArityRange("number->string", args, 1, 2); err != nil {
		return nil, err
	}
	x, ok := args[0].(Literal)
	if !ok || !x.IsNumeric() {
		return nil, ErrUnexpected("number->string", 1, args[0], "number")
	}
	if len(args) == 1 {
		return String(numberString(x)), nil
	}
	radix, err := IntArg("number->string", 2, args[1])
	if err != nil {
		return nil, err
	}
	switch radix {
	case 2, 8, 10, 16:
	default:
		return nil, ErrUnexpected("number->string", 2, args[1], "radix 2, 8, 10, or 16")
	}
	if !x.IsInteger() {
		if radix != 10 {
			return nil, errInvalidOperands("number->string", "inexact numbers can only be printed in base 10")
		}
		return String(numberString(x)), nil
	}
	return String(strconv.FormatInt(x.Int, int(radix))), nil
}

// numberString formats x in decimal without a radix prefix.
func numberString(x Literal) string {
	if x.IsInteger() {
		return strconv.FormatInt(x.Int, 10)
	}
	return x.String()
}

// builtinStringToNumber returns #f when its argument is not a number.
func builtinStringToNumber(cx *Context, args []Value) (Value, error) {
	if err := RequireArity("string->number", args, 1); err != nil {
		return nil, err
	}
	s, err := StringArg("string->number", 1, args[0])
	if err != nil {
		return nil, err
	}
	s = strings.TrimSpace(s)
	if len(s) > 2 && s[0] == '#' {
		x, err := ParseRadix(s[1], s[2:])
		if err != nil {
			return Bool(false), nil
		}
		return x, nil
	}
	x, ok, err := ParseNumber(s)
	if !ok || err != nil {
		return Bool(false), nil
	}
	return x, nil
}

func builtinStringEq(cx *Context, args []Value) (Value, error) {
	return compareStrings("string=?", args, func(a, b string) bool { return a == b })
}

func builtinStringLT(cx *Context, args []Value) (Value, error) {
	return compareStrings("string<?", args, func(a, b string) bool { return a < b })
}

func compareStrings(fn string, args []Value, ok func(a, b string) bool) (Value, error) {
	if err := RequireArityAtLeast(fn, args, 1); err != nil {
		return nil, err
	}
	strs := make([]string, len(args))
	for i := range args {
		s, err := StringArg(fn, i+1, args[i])
		if err != nil {
			return nil, err
		}
		strs[i] = s
	}
	for i := 1; i < len(strs); i++ {
		if !ok(strs[i-1], strs[i]) {
			return Bool(false), nil
		}
	}
	return Bool(true), nil
}
