package lisp

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrors(t *testing.T) {
	tests := []struct {
		err  error
		kind ErrorKind
		msg  string
	}{
		{Errorf("test error message"), ErrRuntime, "test error message"},
		{errUndefinedFunction("f"), ErrUndefinedFunction, "undefined function: f"},
		{errUnknownIdentifier("x"), ErrUnknownIdentifier, "unknown identifier: x"},
		{errMissingTreeNode(), ErrMissingTreeNode, "missing node on tree expression"},
		{ErrArity("f", 1, 2), ErrArityMismatch, "f: arity mismatch, expected: 1, got: 2 arguments"},
		{ErrArity("", 0, 1), ErrArityMismatch, "arity mismatch, expected: 0, got: 1 arguments"},
		{errArityAtLeast("g", 2, 1), ErrArityMismatch, "g: arity mismatch, expected: at least 2, got: 1 arguments"},
		{ErrUnexpected("+", 2, String("a"), "number"), ErrUnexpectedType, "+: unexpected type for argument 2: expected number, got string"},
		{ErrOutOfRange(2, 5), ErrOutOfBounds, "out of bounds, len is 2 but index 5 was accessed"},
		{errNotYetImplemented("complex division"), ErrNotYetImplemented, "not yet implemented: complex division"},
		{errIdentifierExpected("define", Int(1)), ErrIdentifierExpected, "define: identifier expected, got 1"},
		{errInvalidOperands("map", "all lists must have the same size"), ErrInvalidOperands, "map: all lists must have the same size"},
		{errRecursionLimit(10), ErrRecursionLimit, "maximum recursion depth exceeded: 10"},
		{errCancelled(context.Canceled), ErrCancelled, "evaluation cancelled: context canceled"},
		{&Error{Kind: ErrConversion}, ErrConversion, ErrConversion.String()},
	}
	for i, test := range tests {
		kind, ok := ErrorKindOf(test.err)
		assert.True(t, ok, "test %d", i)
		assert.Equal(t, test.kind, kind, "test %d", i)
		assert.Equal(t, test.msg, test.err.Error(), "test %d", i)
	}

	wrapped := fmt.Errorf("load: %w", ErrOutOfRange(1, 1))
	kind, ok := ErrorKindOf(wrapped)
	assert.True(t, ok)
	assert.Equal(t, ErrOutOfBounds, kind)

	_, ok = ErrorKindOf(fmt.Errorf("plain"))
	assert.False(t, ok)
}
