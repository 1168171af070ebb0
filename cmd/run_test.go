package cmd

import (
	"bytes"
	"context"
	"testing"

	"github.com/bmatsuo/rkt/lisp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRunner(t *testing.T, print bool) (*runner, *bytes.Buffer, *bytes.Buffer) {
	var stdout, stderr bytes.Buffer
	configs := append(DefaultSettings().Configs(), lisp.WithStdout(&stdout))
	in, err := lisp.New(configs...)
	require.NoError(t, err)
	return &runner{in: in, print: print, stderr: &stderr}, &stdout, &stderr
}

func TestRunnerContinuesAfterError(t *testing.T) {
	r, stdout, stderr := newTestRunner(t, false)
	ok := r.run(context.Background(), []source{
		{"a.rkt", `(displayln "one") (car '()) (displayln "two")`},
		{"b.rkt", `(displayln "three")`},
	})
	assert.False(t, ok)
	assert.Equal(t, "one\ntwo\nthree\n", stdout.String())
	assert.Equal(t, "a.rkt: car: unexpected type for argument 1: expected pair, got list\n", stderr.String())
}

func TestRunnerSyntaxError(t *testing.T) {
	r, stdout, stderr := newTestRunner(t, false)
	ok := r.run(context.Background(), []source{
		{"bad.rkt", `(displayln "skipped") (`},
		{"good.rkt", `(displayln "ran")`},
	})
	assert.False(t, ok)
	assert.Equal(t, "ran\n", stdout.String())
	assert.Contains(t, stderr.String(), "syntax error: unmatched (")
	assert.Contains(t, stderr.String(), "bad.rkt:")
}

func TestRunnerPrint(t *testing.T) {
	r, stdout, stderr := newTestRunner(t, true)
	ok := r.run(context.Background(), []source{
		{"expression[1]", `(define x 2) (* x 21) (list x "x") (display "")`},
	})
	assert.True(t, ok)
	assert.Equal(t, "42\n'(2 \"x\")\n", stdout.String())
	assert.Empty(t, stderr.String())
}

func TestRunReadSources(t *testing.T) {
	runExpression = true
	defer func() { runExpression = false }()
	srcs, err := runReadSources([]string{"(+ 1 2)", "3"})
	require.NoError(t, err)
	assert.Equal(t, []source{{"expression[1]", "(+ 1 2)"}, {"expression[2]", "3"}}, srcs)
}
