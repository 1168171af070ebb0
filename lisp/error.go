package lisp

import (
	"errors"
	"fmt"
)

// ErrorKind classifies an evaluation error.
type ErrorKind uint

// Possible ErrorKind values
const (
	ErrRuntime ErrorKind = iota
	ErrUndefinedFunction
	ErrUnknownIdentifier
	ErrMissingTreeNode
	ErrArityMismatch
	ErrUnexpectedType
	ErrInvalidExpression
	ErrInvalidOperands
	ErrOutOfBounds
	ErrNotYetImplemented
	ErrIdentifierExpected
	ErrInvalidType
	ErrConversion
	ErrRecursionLimit
	ErrCancelled
)

var errorKindStrings = []string{
	ErrRuntime:            "runtime-error",
	ErrUndefinedFunction:  "undefined-function",
	ErrUnknownIdentifier:  "unknown-identifier",
	ErrMissingTreeNode:    "missing-tree-node",
	ErrArityMismatch:      "arity-mismatch",
	ErrUnexpectedType:     "unexpected-type",
	ErrInvalidExpression:  "invalid-expression",
	ErrInvalidOperands:    "invalid-operands",
	ErrOutOfBounds:        "out-of-bounds",
	ErrNotYetImplemented:  "not-yet-implemented",
	ErrIdentifierExpected: "identifier-expected",
	ErrInvalidType:        "invalid-type",
	ErrConversion:         "conversion-error",
	ErrRecursionLimit:     "recursion-limit",
	ErrCancelled:          "cancelled",
}

func (k ErrorKind) String() string {
	if int(k) >= len(errorKindStrings) {
		return errorKindStrings[ErrRuntime]
	}
	return errorKindStrings[k]
}

// Error is returned by every failing evaluation.  Only the fields relevant to
// Kind are set.
type Error struct {
	Kind     ErrorKind
	Name     string // identifier, function, or feature name
	Function string // native or declared function reporting the error
	Position int    // 1-based argument position
	Expected string
	Got      string
	// ExpectedN and GotN hold arity counts, and the length and index for
	// ErrOutOfBounds.
	ExpectedN int
	GotN      int
	Msg       string
}

func (e *Error) Error() string {
	switch e.Kind {
	case ErrUndefinedFunction:
		return "undefined function: " + e.Name
	case ErrUnknownIdentifier:
		return "unknown identifier: " + e.Name
	case ErrMissingTreeNode:
		return "missing node on tree expression"
	case ErrArityMismatch:
		if e.Function != "" {
			return fmt.Sprintf("%s: arity mismatch, expected: %s, got: %d arguments", e.Function, e.arityString(), e.GotN)
		}
		return fmt.Sprintf("arity mismatch, expected: %s, got: %d arguments", e.arityString(), e.GotN)
	case ErrUnexpectedType:
		return fmt.Sprintf("%s: unexpected type for argument %d: expected %s, got %s", e.Function, e.Position, e.Expected, e.Got)
	case ErrOutOfBounds:
		return fmt.Sprintf("out of bounds, len is %d but index %d was accessed", e.ExpectedN, e.GotN)
	case ErrNotYetImplemented:
		return "not yet implemented: " + e.Name
	case ErrIdentifierExpected:
		return fmt.Sprintf("%s: identifier expected, got %s", e.Function, e.Got)
	case ErrRecursionLimit:
		return fmt.Sprintf("maximum recursion depth exceeded: %d", e.ExpectedN)
	}
	if e.Function != "" && e.Msg != "" {
		return e.Function + ": " + e.Msg
	}
	if e.Msg != "" {
		return e.Msg
	}
	return e.Kind.String()
}

func (e *Error) arityString() string {
	if e.Expected != "" {
		return e.Expected
	}
	return fmt.Sprint(e.ExpectedN)
}

// Is reports whether target is an *Error of the same kind, so that
// errors.Is(err, &Error{Kind: ErrOutOfBounds}) matches any out-of-bounds
// error.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

// ErrorKindOf returns the kind of err if it is (or wraps) an *Error.
func ErrorKindOf(err error) (ErrorKind, bool) {
	var lerr *Error
	if !errors.As(err, &lerr) {
		return 0, false
	}
	return lerr.Kind, true
}

// Errorf returns a runtime error with a formatted message.
func Errorf(format string, v ...interface{}) error {
	return &Error{Kind: ErrRuntime, Msg: fmt.Sprintf(format, v...)}
}

// berrf returns a runtime error attributed to the native fn.
func berrf(fn string, format string, v ...interface{}) error {
	return &Error{Kind: ErrRuntime, Function: fn, Msg: fmt.Sprintf(format, v...)}
}

func errUndefinedFunction(name string) error {
	return &Error{Kind: ErrUndefinedFunction, Name: name}
}

func errUnknownIdentifier(name string) error {
	return &Error{Kind: ErrUnknownIdentifier, Name: name}
}

func errMissingTreeNode() error {
	return &Error{Kind: ErrMissingTreeNode}
}

// ErrArity returns an arity mismatch error for fn.  If fn is empty the
// error is attributed to a declared function.
func ErrArity(fn string, expected, got int) error {
	return &Error{Kind: ErrArityMismatch, Function: fn, ExpectedN: expected, GotN: got}
}

func errArityAtLeast(fn string, min, got int) error {
	return &Error{
		Kind:      ErrArityMismatch,
		Function:  fn,
		Expected:  fmt.Sprintf("at least %d", min),
		ExpectedN: min,
		GotN:      got,
	}
}

// ErrUnexpected returns an error for an argument of the wrong kind.
func ErrUnexpected(fn string, pos int, got Value, expected string) error {
	return &Error{
		Kind:     ErrUnexpectedType,
		Function: fn,
		Position: pos,
		Got:      TypeName(got),
		Expected: expected,
	}
}

func errInvalidExpression(fn string, format string, v ...interface{}) error {
	return &Error{Kind: ErrInvalidExpression, Function: fn, Msg: fmt.Sprintf(format, v...)}
}

func errInvalidOperands(fn string, format string, v ...interface{}) error {
	return &Error{Kind: ErrInvalidOperands, Function: fn, Msg: fmt.Sprintf(format, v...)}
}

// ErrOutOfRange returns an error for an index beyond length.
func ErrOutOfRange(length, got int) error {
	return &Error{Kind: ErrOutOfBounds, ExpectedN: length, GotN: got}
}

func errNotYetImplemented(feature string) error {
	return &Error{Kind: ErrNotYetImplemented, Name: feature}
}

func errIdentifierExpected(fn string, got Value) error {
	return &Error{Kind: ErrIdentifierExpected, Function: fn, Got: got.String()}
}

func errInvalidType(fn string, format string, v ...interface{}) error {
	return &Error{Kind: ErrInvalidType, Function: fn, Msg: fmt.Sprintf(format, v...)}
}

func errRecursionLimit(max int) error {
	return &Error{Kind: ErrRecursionLimit, ExpectedN: max}
}

func errCancelled(err error) error {
	return &Error{Kind: ErrCancelled, Msg: "evaluation cancelled: " + err.Error()}
}
