// Package rkttest runs lisp source in tests.  Table driven tests evaluate
// sequences of expressions with RunTestSuite and test files declaring
// test-case forms are run with Runner.RunTestFile.
package rkttest

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/bmatsuo/rkt/lisp"
	"github.com/bmatsuo/rkt/lisp/lisplib"
	"github.com/bmatsuo/rkt/lisp/lisplib/libtesting"
	"github.com/bmatsuo/rkt/parser/rdparser"
)

// Runner is a test runner.
type Runner struct {
	// Loader is the package loader used to initialize the test interpreter.
	// When Loader is nil lisplib.LoadLibrary is used.
	Loader func(*lisp.Interpreter) error
}

// NewInterpreter returns an interpreter with a reader and the runner's
// library loaded.  Output of display natives is written to stdout.
func (r *Runner) NewInterpreter(stdout io.Writer) (*lisp.Interpreter, error) {
	loader := r.Loader
	if loader == nil {
		loader = lisplib.LoadLibrary
	}
	in, err := lisp.New(
		lisp.WithReader(rdparser.NewReader()),
		lisp.WithStdout(stdout),
		lisp.WithStderr(stdout),
		lisp.WithExitHandler(func(code int) {}),
		loader,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize interpreter: %w", err)
	}
	return in, nil
}

// RunTestFile loads the source file at path and runs each test-case it
// declares as a subtest of t.  Every test runs in a fresh interpreter.
func (r *Runner) RunTestFile(t *testing.T, path string) {
	source, err := os.ReadFile(path)
	if err != nil {
		t.Errorf("Unable to read test file: %v", err)
		return
	}

	var names []string
	ok := t.Run("$load", func(t *testing.T) {
		suite, err := r.loadSuite(filepath.Base(path), source)
		if err != nil {
			t.Error(err)
			return
		}
		names = make([]string, suite.Len())
		for i := range names {
			names[i] = suite.Test(i).Name
		}
	})
	if !ok {
		return
	}

	for i := range names {
		// We don't check the result of t.Run here because we want all
		// independent tests to run during a single run of the suite.  An
		// assertion failure within a tests prevents futher evaluation of
		// expressions in that test, but does not halt the execution of the
		// suite as a whole.
		i := i
		t.Run(names[i], func(t *testing.T) {
			var out bytes.Buffer
			in, err := r.NewInterpreter(&out)
			if err != nil {
				t.Error(err)
				return
			}
			_, err = in.Load(filepath.Base(path), bytes.NewReader(source))
			if err != nil {
				t.Error(err)
				return
			}
			suite := libtesting.InterpreterTestSuite(in)
			if suite == nil {
				t.Errorf("unable to locate test suite")
				return
			}
			test := suite.Test(i)
			_, err = in.Apply(context.Background(), test.Fun)
			if err != nil {
				t.Errorf("%s: %v", test.Name, err)
				if out.Len() > 0 {
					t.Log(out.String())
				}
			}
		})
	}
}

func (r *Runner) loadSuite(name string, source []byte) (*libtesting.TestSuite, error) {
	in, err := r.NewInterpreter(io.Discard)
	if err != nil {
		return nil, err
	}
	_, err = in.Load(name, bytes.NewReader(source))
	if err != nil {
		return nil, err
	}
	suite := libtesting.InterpreterTestSuite(in)
	if suite == nil {
		return nil, fmt.Errorf("unable to locate test suite")
	}
	return suite, nil
}

// TestSequence is a sequence of lisp expressions which are evaluated
// sequentially by a lisp.Interpreter.
type TestSequence []struct {
	Expr   string // a lisp expression
	Result string // the printed result or error message
	Output string // data written to stdout during evaluation
}

// TestSuite is a set of named TestSequences
type TestSuite []struct {
	Name string
	TestSequence
}

// RunTestSuite runs each TestSequence in tests on an isolated
// lisp.Interpreter with the standard library loaded.
func RunTestSuite(t *testing.T, tests TestSuite) {
	for i, test := range tests {
		var out bytes.Buffer
		r := &Runner{}
		in, err := r.NewInterpreter(&out)
		if err != nil {
			t.Fatalf("test %d %q: %v", i, test.Name, err)
		}
		reader := rdparser.NewReader()
		for j, expr := range test.TestSequence {
			v, err := reader.Read("test", strings.NewReader(expr.Expr))
			if err != nil {
				t.Errorf("test %d %q: expr %d: parse error: %v", i, test.Name, j, err)
				continue
			}
			if len(v) == 0 {
				t.Errorf("test %d %q: expr %d: no expression parsed", i, test.Name, j)
				continue
			}
			if len(v) != 1 {
				t.Errorf("test %d %q: expr %d: more than one expression parsed (%d)", i, test.Name, j, len(v))
				continue
			}
			out.Reset()
			result := ResultString(in.Eval(v[0]))
			if result != expr.Result {
				t.Errorf("test %d %q: expr %d: expected result %s (got %s)", i, test.Name, j, expr.Result, result)
			}
			if out.String() != expr.Output {
				t.Errorf("test %d %q: expr %d: expected output %q (got %q)", i, test.Name, j, expr.Output, out.String())
			}
		}
	}
}

// ResultString renders the outcome of an evaluation the way a REPL would
// display it.  An error is rendered as its message.
func ResultString(v lisp.Value, err error) string {
	if err != nil {
		return err.Error()
	}
	return v.String()
}
