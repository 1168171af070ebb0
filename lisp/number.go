package lisp

import (
	"fmt"
	"regexp"
	"strconv"
)

var (
	reInteger  = regexp.MustCompile(`^[+-]?[0-9]+$`)
	reFloat    = regexp.MustCompile(`^[+-]?([0-9]+\.[0-9]*|\.[0-9]+|[0-9]+)([eE][+-]?[0-9]+)?$`)
	reRational = regexp.MustCompile(`^([+-]?[0-9]+)/([0-9]+)$`)
	reComplex  = regexp.MustCompile(`^([+-]?[0-9]+)([+-][0-9]*)i$`)
)

// ParseNumber parses the text of a decimal number literal: an integer, a
// float, a rational "a/b", or a complex number "a+bi".  ParseNumber returns
// false if text is not shaped like a number.  An error is returned when text
// is shaped like a number but cannot be represented.
func ParseNumber(text string) (Literal, bool, error) {
	switch {
	case reInteger.MatchString(text):
		x, err := strconv.ParseInt(text, 10, 64)
		if err != nil {
			return Literal{}, true, fmt.Errorf("integer literal overflows int64: %v", text)
		}
		return Int(x), true, nil
	case reFloat.MatchString(text):
		x, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return Literal{}, true, fmt.Errorf("invalid floating point literal: %v", text)
		}
		return Float(x), true, nil
	case reRational.MatchString(text):
		m := reRational.FindStringSubmatch(text)
		num, err := strconv.ParseInt(m[1], 10, 64)
		if err != nil {
			return Literal{}, true, fmt.Errorf("rational numerator overflows int64: %v", text)
		}
		den, err := strconv.ParseInt(m[2], 10, 64)
		if err != nil {
			return Literal{}, true, fmt.Errorf("rational denominator overflows int64: %v", text)
		}
		if den == 0 {
			return Literal{}, true, fmt.Errorf("division by zero in rational literal: %v", text)
		}
		return Rational(num, den), true, nil
	case reComplex.MatchString(text):
		m := reComplex.FindStringSubmatch(text)
		re, err := strconv.ParseInt(m[1], 10, 64)
		if err != nil {
			return Literal{}, true, fmt.Errorf("complex real part overflows int64: %v", text)
		}
		imText := m[2]
		if imText == "+" || imText == "-" {
			imText += "1"
		}
		im, err := strconv.ParseInt(imText, 10, 64)
		if err != nil {
			return Literal{}, true, fmt.Errorf("complex imaginary part overflows int64: %v", text)
		}
		return Complex(re, im), true, nil
	}
	return Literal{}, false, nil
}

// ParseRadix parses the digits of a "#x", "#o", or "#b" literal.  The prefix
// character must be one of 'x', 'o', or 'b'.
func ParseRadix(prefix byte, digits string) (Literal, error) {
	var typ LiteralType
	var base int
	switch prefix {
	case 'x', 'X':
		typ, base = LHex, 16
	case 'o', 'O':
		typ, base = LOctal, 8
	case 'b', 'B':
		typ, base = LBinary, 2
	default:
		return Literal{}, fmt.Errorf("invalid radix prefix: #%c", prefix)
	}
	x, err := strconv.ParseInt(digits, base, 64)
	if err != nil {
		return Literal{}, fmt.Errorf("invalid %s literal: #%c%s", typ, prefix, digits)
	}
	return Radix(typ, x), nil
}
