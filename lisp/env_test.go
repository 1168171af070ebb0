package lisp_test

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/bmatsuo/rkt/lisp"
	"github.com/bmatsuo/rkt/parser/rdparser"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestInterpreter(t *testing.T, config ...lisp.Config) *lisp.Interpreter {
	config = append([]lisp.Config{lisp.WithReader(rdparser.NewReader())}, config...)
	in, err := lisp.New(config...)
	require.NoError(t, err)
	return in
}

func TestMaxDepth(t *testing.T) {
	in := newTestInterpreter(t, lisp.WithMaxDepth(50))
	_, err := in.LoadString("test", "(define (loop n) (loop (+ n 1)))")
	require.NoError(t, err)
	_, err = in.LoadString("test", "(loop 0)")
	require.Error(t, err)
	kind, ok := lisp.ErrorKindOf(err)
	require.True(t, ok)
	assert.Equal(t, lisp.ErrRecursionLimit, kind)
	assert.Equal(t, "maximum recursion depth exceeded: 50", err.Error())

	// the limit applies to nesting and not to the total number of calls
	v, err := in.LoadString("test", `
		(define (count-down n) (if (= n 0) 'done (count-down (- n 1))))
		(define (repeat n) (when (> n 0) (count-down 40) (repeat (- n 1))))
		(repeat 5)
		(count-down 40)`)
	require.NoError(t, err)
	assert.Equal(t, "'done", v.String())

	_, err = lisp.New(lisp.WithMaxDepth(0))
	assert.Error(t, err)
}

func TestCancel(t *testing.T) {
	in := newTestInterpreter(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := in.EvalContext(ctx, lisp.NewTree(lisp.Ident{Name: "+"}, lisp.Int(1), lisp.Int(2)))
	require.Error(t, err)
	kind, ok := lisp.ErrorKindOf(err)
	require.True(t, ok)
	assert.Equal(t, lisp.ErrCancelled, kind)

	// literals need no evaluation and are unaffected
	v, err := in.EvalContext(ctx, lisp.Int(3))
	require.NoError(t, err)
	assert.Equal(t, "3", v.String())
}

func TestApply(t *testing.T) {
	in := newTestInterpreter(t)
	_, err := in.LoadString("test", "(define (sq x) (* x x))")
	require.NoError(t, err)
	fn, ok := in.Globals().Get("sq")
	require.True(t, ok)
	v, err := in.Apply(context.Background(), fn, lisp.Int(3))
	require.NoError(t, err)
	assert.Equal(t, "9", v.String())

	_, err = in.Apply(context.Background(), fn)
	assert.EqualError(t, err, "sq: arity mismatch, expected: 1, got: 0 arguments")

	_, err = in.Apply(context.Background(), lisp.Int(1))
	kind, _ := lisp.ErrorKindOf(err)
	assert.Equal(t, lisp.ErrUnexpectedType, kind)
}

func TestErrorIs(t *testing.T) {
	in := newTestInterpreter(t)
	_, err := in.LoadString("test", "(list-ref (list 1 2) 5)")
	require.Error(t, err)
	assert.True(t, errors.Is(err, &lisp.Error{Kind: lisp.ErrOutOfBounds}))
	assert.False(t, errors.Is(err, &lisp.Error{Kind: lisp.ErrArityMismatch}))
	assert.Equal(t, "out of bounds, len is 2 but index 5 was accessed", err.Error())
}

func TestLoadStopsAtFirstError(t *testing.T) {
	var out bytes.Buffer
	in := newTestInterpreter(t, lisp.WithStdout(&out))
	_, err := in.LoadString("test", `(display "a") (car '()) (display "b")`)
	require.Error(t, err)
	assert.Equal(t, "a", out.String())

	_, err = lisp.New()
	require.NoError(t, err)
	noReader, _ := lisp.New()
	_, err = noReader.LoadString("test", "1")
	assert.Error(t, err)
}

func TestExitHandler(t *testing.T) {
	code := -1
	in := newTestInterpreter(t, lisp.WithExitHandler(func(c int) { code = c }))
	_, err := in.LoadString("test", "(exit 3)")
	require.NoError(t, err)
	assert.Equal(t, 3, code)
}

func TestConcurrentDefinitions(t *testing.T) {
	in := newTestInterpreter(t)
	var wg sync.WaitGroup
	errs := make([]error, 20)
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			src := fmt.Sprintf("(define (f%d x) (+ x %d)) (f%d 1)", i, i, i)
			_, errs[i] = in.LoadString("test", src)
		}(i)
	}
	wg.Wait()
	for i, err := range errs {
		assert.NoError(t, err, "goroutine %d", i)
	}
	for i := range errs {
		v, err := in.LoadString("test", fmt.Sprintf("(f%d 1)", i))
		require.NoError(t, err)
		assert.Equal(t, fmt.Sprint(i+1), v.String())
	}
}
