package lisp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCallStack(t *testing.T) {
	s := &CallStack{MaxHeight: 2}
	assert.Nil(t, s.Top())
	require.NoError(t, s.Push("f", 1))
	require.NoError(t, s.Push("g", 0))
	assert.Equal(t, 2, s.Height())
	assert.Equal(t, "g", s.Top().Name)

	err := s.Push("h", 0)
	kind, ok := ErrorKindOf(err)
	require.True(t, ok)
	assert.Equal(t, ErrRecursionLimit, kind)
	assert.Equal(t, 2, s.Height())

	cp := s.Copy()
	assert.Equal(t, CallFrame{Name: "g", Args: 0}, s.Pop())
	assert.Equal(t, 1, s.Height())
	assert.Equal(t, 2, cp.Height())
	assert.Panics(t, func() {
		s.Pop()
		s.Pop()
	})
}

func TestSubstitute(t *testing.T) {
	x := Ident{Name: "x"}
	y := Ident{Name: "y"}
	bind := map[string]Expr{"x": Int(1)}
	tests := []struct {
		in  Expr
		out string
	}{
		{x, "1"},
		{y, "y"},
		{NewTree(Ident{Name: "+"}, x, y), "(+ 1 y)"},
		{Quote(x), "'x"},
		{NewTree(Ident{Name: "quote"}, x), "(quote x)"},
		{NewTree(Ident{Name: "lambda"}, NewTree(x), x, y), "(lambda (x) x y)"},
		{NewTree(Ident{Name: "lambda"}, NewTree(y), x, y), "(lambda (y) 1 y)"},
		{NewTree(Ident{Name: "define"}, NewTree(Ident{Name: "f"}, x), x), "(define (f x) x)"},
		{NewTree(Ident{Name: "define"}, y, x), "(define y 1)"},
		{
			NewTree(Ident{Name: "let"}, NewTree(NewTree(x, x)), x),
			"(let ((x 1)) x)",
		},
		{
			NewTree(Ident{Name: "let*"}, NewTree(NewTree(y, x), NewTree(x, y)), x, y),
			"(let* ((y 1) (x y)) x y)",
		},
	}
	for i, test := range tests {
		assert.Equal(t, test.out, substitute(test.in, bind).String(), "test %d", i)
	}
	// the input is never modified
	tree := NewTree(Ident{Name: "+"}, x, x)
	substitute(tree, bind)
	assert.Equal(t, "(+ x x)", tree.String())
}
