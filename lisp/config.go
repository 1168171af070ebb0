package lisp

import (
	"fmt"
	"io"
)

// Config is a function that configures an Interpreter.
type Config func(in *Interpreter) error

// WithMaxDepth returns a Config that will prevent evaluation from nesting
// declared function calls deeper than n.  Exceeding the limit fails with an
// error of kind ErrRecursionLimit.
func WithMaxDepth(n int) Config {
	return func(in *Interpreter) error {
		if n <= 0 {
			return fmt.Errorf("invalid maximum depth: %d", n)
		}
		in.maxDepth = n
		return nil
	}
}

// WithReader returns a Config that makes the interpreter use r to parse
// source streams.  There is no default Reader.
func WithReader(r Reader) Config {
	return func(in *Interpreter) error {
		in.reader = r
		return nil
	}
}

// WithStdout returns a Config that makes display natives write to w instead
// of the default, os.Stdout.
func WithStdout(w io.Writer) Config {
	return func(in *Interpreter) error {
		in.stdout = w
		return nil
	}
}

// WithStderr returns a Config that makes the interpreter write debugging
// output to w instead of the default, os.Stderr.
func WithStderr(w io.Writer) Config {
	return func(in *Interpreter) error {
		in.stderr = w
		return nil
	}
}

// WithExitHandler returns a Config that makes the exit native call fn
// instead of os.Exit.
func WithExitHandler(fn func(code int)) Config {
	return func(in *Interpreter) error {
		in.exit = fn
		return nil
	}
}

// WithNatives returns a Config that registers additional natives with the
// interpreter.
func WithNatives(defs ...NativeDef) Config {
	return func(in *Interpreter) error {
		in.AddNatives(defs...)
		return nil
	}
}
