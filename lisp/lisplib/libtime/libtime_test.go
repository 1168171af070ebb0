package libtime

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/bmatsuo/rkt/lisp"
	"github.com/bmatsuo/rkt/parser/rdparser"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newInterpreter(t *testing.T, out *bytes.Buffer) *lisp.Interpreter {
	in, err := lisp.New(
		lisp.WithReader(rdparser.NewReader()),
		lisp.WithStdout(out),
		LoadPackage,
	)
	require.NoError(t, err)
	return in
}

func TestCurrentTime(t *testing.T) {
	defer func(fn func() time.Time) { now = fn }(now)
	now = func() time.Time { return time.Unix(1500, 250*int64(time.Millisecond)) }

	var out bytes.Buffer
	in := newInterpreter(t, &out)
	for expr, want := range map[string]string{
		"(current-seconds)":              "1500",
		"(current-milliseconds)":         "1500250",
		"(current-inexact-milliseconds)": "1500250.0",
	} {
		v, err := in.LoadString("test", expr)
		require.NoError(t, err, expr)
		assert.Equal(t, want, v.String(), expr)
	}
	_, err := in.LoadString("test", "(current-seconds 1)")
	assert.EqualError(t, err, "current-seconds: arity mismatch, expected: 0, got: 1 arguments")
}

func TestSleep(t *testing.T) {
	var out bytes.Buffer
	in := newInterpreter(t, &out)
	v, err := in.LoadString("test", "(sleep 0.001)")
	require.NoError(t, err)
	assert.True(t, lisp.IsVoid(v))

	_, err = in.LoadString("test", "(sleep -1)")
	assert.Error(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	exprs, err := rdparser.NewReader().Read("test", bytes.NewBufferString("(sleep 60)"))
	require.NoError(t, err)
	_, err = in.EvalContext(ctx, exprs[0])
	kind, ok := lisp.ErrorKindOf(err)
	require.True(t, ok)
	assert.Equal(t, lisp.ErrCancelled, kind)
}

func TestTime(t *testing.T) {
	var out bytes.Buffer
	in := newInterpreter(t, &out)
	v, err := in.LoadString("test", "(time (+ 1 2))")
	require.NoError(t, err)
	assert.Equal(t, "3", v.String())
	assert.Regexp(t, `^cpu time: \d+ real time: \d+ gc time: 0\n$`, out.String())
}
