package lisp

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// LiteralType is the type of a Literal.
type LiteralType uint

// Possible LiteralType values
const (
	LInvalid LiteralType = iota
	LString
	LInteger
	LRational
	LComplex
	LFloat
	LHex
	LOctal
	LBinary
	LBytes
	LBoolean
	LCharacter
)

var literalTypeStrings = []string{
	LInvalid:   "INVALID",
	LString:    "string",
	LInteger:   "integer",
	LRational:  "rational",
	LComplex:   "complex",
	LFloat:     "float",
	LHex:       "hex",
	LOctal:     "octal",
	LBinary:    "binary",
	LBytes:     "bytes",
	LBoolean:   "boolean",
	LCharacter: "character",
}

func (t LiteralType) String() string {
	if int(t) >= len(literalTypeStrings) {
		return literalTypeStrings[LInvalid]
	}
	return literalTypeStrings[t]
}

// Literal is a primitive datum.  A Literal is both an Expr (literals are read
// from source) and a Value (literals evaluate to themselves).
type Literal struct {
	Type LiteralType

	// Int holds integer, hex, octal and binary values as well as the
	// numerator of a rational and the real part of a complex number.
	Int int64
	// Den holds the denominator of a rational and the imaginary part of a
	// complex number.
	Den   int64
	Float float64
	Bool  bool
	// Str holds string, character and byte string contents.
	Str string
}

// String returns a string literal.
func String(s string) Literal {
	return Literal{Type: LString, Str: s}
}

// Int returns an integer literal.
func Int(x int64) Literal {
	return Literal{Type: LInteger, Int: x}
}

// Float returns a floating point literal.
func Float(x float64) Literal {
	return Literal{Type: LFloat, Float: x}
}

// Rational returns the rational num/den.  Rational does not reduce its
// arguments.
func Rational(num, den int64) Literal {
	return Literal{Type: LRational, Int: num, Den: den}
}

// Complex returns the complex number re+im*i.
func Complex(re, im int64) Literal {
	return Literal{Type: LComplex, Int: re, Den: im}
}

// Radix returns an integer literal that is printed in the base indicated by
// typ, one of LHex, LOctal, or LBinary.
func Radix(typ LiteralType, x int64) Literal {
	return Literal{Type: typ, Int: x}
}

// Bool returns a boolean literal.
func Bool(b bool) Literal {
	return Literal{Type: LBoolean, Bool: b}
}

// Char returns a character literal.
func Char(c rune) Literal {
	return Literal{Type: LCharacter, Str: string(c)}
}

// Bytes returns a byte string literal.
func Bytes(b []byte) Literal {
	return Literal{Type: LBytes, Str: string(b)}
}

// IsNumeric returns true if v is a number of any kind.
func (v Literal) IsNumeric() bool {
	switch v.Type {
	case LInteger, LHex, LOctal, LBinary, LFloat, LRational, LComplex:
		return true
	}
	return false
}

// IsInteger returns true if v is an integer in any radix.
func (v Literal) IsInteger() bool {
	switch v.Type {
	case LInteger, LHex, LOctal, LBinary:
		return true
	}
	return false
}

// IsFalse returns true only for the boolean #f.  Every other value is true in
// a conditional context.
func (v Literal) IsFalse() bool {
	return v.Type == LBoolean && !v.Bool
}

func (v Literal) String() string {
	switch v.Type {
	case LString:
		return strconv.Quote(v.Str)
	case LInteger:
		return strconv.FormatInt(v.Int, 10)
	case LHex:
		return "#x" + strconv.FormatInt(v.Int, 16)
	case LOctal:
		return "#o" + strconv.FormatInt(v.Int, 8)
	case LBinary:
		return "#b" + strconv.FormatInt(v.Int, 2)
	case LRational:
		return fmt.Sprintf("%d/%d", v.Int, v.Den)
	case LComplex:
		sign := "+"
		if v.Den < 0 {
			sign = "-"
		}
		im := v.Den
		if im < 0 {
			im = -im
		}
		return fmt.Sprintf("%d%s%di", v.Int, sign, im)
	case LFloat:
		return formatFloat(v.Float)
	case LBoolean:
		if v.Bool {
			return "#t"
		}
		return "#f"
	case LCharacter:
		return `#\` + charName(v.Str)
	case LBytes:
		q := strconv.Quote(v.Str)
		return `#"` + q[1:len(q)-1] + `"`
	default:
		return fmt.Sprintf("%#v", v)
	}
}

// formatFloat always marks a float as inexact, with a decimal point or an
// exponent.
func formatFloat(x float64) string {
	switch {
	case math.IsInf(x, 1):
		return "+inf.0"
	case math.IsInf(x, -1):
		return "-inf.0"
	case math.IsNaN(x):
		return "+nan.0"
	}
	abs := math.Abs(x)
	if abs != 0 && (abs < 1e-4 || abs >= 1e21) {
		return strconv.FormatFloat(x, 'g', -1, 64)
	}
	s := strconv.FormatFloat(x, 'f', -1, 64)
	if strings.Contains(s, ".") {
		return s
	}
	return s + ".0"
}

var charNames = map[string]string{
	" ":    "space",
	"\n":   "newline",
	"\t":   "tab",
	"\r":   "return",
	"\x00": "nul",
}

func charName(c string) string {
	if name, ok := charNames[c]; ok {
		return name
	}
	return c
}
