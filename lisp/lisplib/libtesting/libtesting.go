package libtesting

import (
	"fmt"
	"sync"

	"github.com/bmatsuo/rkt/lisp"
)

var suites sync.Map

// LoadPackage registers the testing natives with in.  Tests declared with
// test-case are collected in the suite returned by InterpreterTestSuite.
func LoadPackage(in *lisp.Interpreter) error {
	suite := NewTestSuite()
	suites.Store(in, suite)
	in.AddNatives(suite.Ops()...)
	in.AddNatives(builtins...)
	return nil
}

var builtins = []lisp.NativeDef{
	lisp.StrictNative("check-equal?", BuiltinCheckEqual),
	lisp.StrictNative("check-not-equal?", BuiltinCheckNotEqual),
	lisp.StrictNative("check-true", BuiltinCheckTrue),
	lisp.StrictNative("check-false", BuiltinCheckFalse),
}

// TestSuite is an ordered set of named tests.
type TestSuite struct {
	mu    sync.Mutex
	tests map[string]*Test
	order []string
}

func NewTestSuite() *TestSuite {
	return &TestSuite{
		tests: make(map[string]*Test),
	}
}

func (s *TestSuite) Add(t *Test) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.tests[t.Name] != nil {
		return fmt.Errorf("test with the same name already defined: %v", t.Name)
	}
	s.order = append(s.order, t.Name)
	s.tests[t.Name] = t
	return nil
}

func (s *TestSuite) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.order)
}

func (s *TestSuite) Test(i int) *Test {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tests[s.order[i]]
}

func (s *TestSuite) Ops() []lisp.NativeDef {
	return []lisp.NativeDef{
		lisp.Native("test-case", s.OpTest),
	}
}

// OpTest declares a named test whose body is evaluated when the test runs.
func (s *TestSuite) OpTest(cx *lisp.Context, args []lisp.Value) (lisp.Value, error) {
	if err := lisp.RequireArityAtLeast("test-case", args, 2); err != nil {
		return nil, err
	}
	name, err := cx.Eval(args[0])
	if err != nil {
		return nil, err
	}
	str, err := lisp.StringArg("test-case", 1, name)
	if err != nil {
		return nil, err
	}
	body := []lisp.Expr{&lisp.Tree{}}
	for _, arg := range args[1:] {
		e, ok := lisp.ExprOf(arg)
		if !ok {
			return nil, lisp.ErrUnexpected("test-case", 2, arg, "expression")
		}
		body = append(body, e)
	}
	fun, err := cx.EvalExpr(lisp.NewTree(lisp.Ident{Name: "lambda"}, body...))
	if err != nil {
		return nil, err
	}
	err = s.Add(&Test{Name: str, Fun: fun})
	if err != nil {
		return nil, lisp.Errorf("test-case: %v", err)
	}
	return lisp.Void{}, nil
}

type Test struct {
	Name string
	Fun  lisp.Value
}

// InterpreterTestSuite returns the suite collecting the tests declared in in
// or nil if the testing natives were not loaded.
func InterpreterTestSuite(in *lisp.Interpreter) *TestSuite {
	suite, ok := suites.Load(in)
	if !ok {
		return nil
	}
	return suite.(*TestSuite)
}

func checkFailure(fn string, format string, v ...interface{}) error {
	return &lisp.Error{Kind: lisp.ErrRuntime, Function: fn, Msg: fmt.Sprintf(format, v...)}
}

func BuiltinCheckEqual(cx *lisp.Context, args []lisp.Value) (lisp.Value, error) {
	if err := lisp.RequireArity("check-equal?", args, 2); err != nil {
		return nil, err
	}
	if !lisp.Equal(args[0], args[1]) {
		return nil, checkFailure("check-equal?", "expected %v, got %v", args[1], args[0])
	}
	return lisp.Void{}, nil
}

func BuiltinCheckNotEqual(cx *lisp.Context, args []lisp.Value) (lisp.Value, error) {
	if err := lisp.RequireArity("check-not-equal?", args, 2); err != nil {
		return nil, err
	}
	if lisp.Equal(args[0], args[1]) {
		return nil, checkFailure("check-not-equal?", "values are equal: %v", args[0])
	}
	return lisp.Void{}, nil
}

func BuiltinCheckTrue(cx *lisp.Context, args []lisp.Value) (lisp.Value, error) {
	if err := lisp.RequireArity("check-true", args, 1); err != nil {
		return nil, err
	}
	if lisp.IsFalse(args[0]) {
		return nil, checkFailure("check-true", "expected a true value")
	}
	return lisp.Void{}, nil
}

func BuiltinCheckFalse(cx *lisp.Context, args []lisp.Value) (lisp.Value, error) {
	if err := lisp.RequireArity("check-false", args, 1); err != nil {
		return nil, err
	}
	if !lisp.IsFalse(args[0]) {
		return nil, checkFailure("check-false", "expected #f, got %v", args[0])
	}
	return lisp.Void{}, nil
}
