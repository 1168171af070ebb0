package lisp

import (
	"context"
	"errors"
	"io"
	"os"
	"sort"
	"strings"
	"sync"
)

// Globals is the global variable table of an Interpreter.  Globals is safe
// for concurrent use.  Reads may proceed in parallel and each write is
// serialized.
type Globals struct {
	mu    sync.RWMutex
	table map[string]Value
}

func newGlobals() *Globals {
	return &Globals{table: make(map[string]Value)}
}

// Get returns the value bound to name.
func (g *Globals) Get(name string) (Value, bool) {
	g.mu.RLock()
	v, ok := g.table[name]
	g.mu.RUnlock()
	return v, ok
}

// Put binds name to v, replacing any existing binding.
func (g *Globals) Put(name string, v Value) {
	g.mu.Lock()
	g.table[name] = v
	g.mu.Unlock()
}

// Len returns the number of bindings in g.
func (g *Globals) Len() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return len(g.table)
}

// Names returns the bound names in sorted order.
func (g *Globals) Names() []string {
	g.mu.RLock()
	names := make([]string, 0, len(g.table))
	for name := range g.table {
		names = append(names, name)
	}
	g.mu.RUnlock()
	sort.Strings(names)
	return names
}

// Interpreter is an evaluation session.  It owns the global table and the
// native registry.  An Interpreter may be used by multiple goroutines
// evaluating independent top-level forms.
type Interpreter struct {
	globals *Globals

	nmu     sync.RWMutex
	natives map[string]NativeDef

	reader   Reader
	stdout   io.Writer
	stderr   io.Writer
	exit     func(code int)
	maxDepth int
}

// New returns a new Interpreter with the default natives registered.
func New(config ...Config) (*Interpreter, error) {
	in := &Interpreter{
		globals:  newGlobals(),
		natives:  make(map[string]NativeDef),
		stdout:   os.Stdout,
		stderr:   os.Stderr,
		exit:     os.Exit,
		maxDepth: DefaultMaxDepth,
	}
	in.AddNatives()
	in.globals.Put("null", List{})
	in.globals.Put("empty", List{})
	for _, fn := range config {
		err := fn(in)
		if err != nil {
			return nil, err
		}
	}
	return in, nil
}

// AddNatives registers the given natives under their names.  When called
// with no arguments AddNatives registers DefaultNatives.
func (in *Interpreter) AddNatives(defs ...NativeDef) {
	if len(defs) == 0 {
		defs = DefaultNatives()
	}
	in.nmu.Lock()
	defer in.nmu.Unlock()
	for _, def := range defs {
		in.natives[def.Name()] = def
	}
}

// Native returns the native registered under name.
func (in *Interpreter) Native(name string) (NativeDef, bool) {
	in.nmu.RLock()
	def, ok := in.natives[name]
	in.nmu.RUnlock()
	return def, ok
}

// Globals returns the global table of in.
func (in *Interpreter) Globals() *Globals {
	return in.globals
}

// Stdout returns the writer used by display natives.
func (in *Interpreter) Stdout() io.Writer {
	return in.stdout
}

// Stderr returns the writer used for debugging output.
func (in *Interpreter) Stderr() io.Writer {
	return in.stderr
}

// Root returns a root Context bound to in.  Definitions made through a root
// Context are global.
func (in *Interpreter) Root(ctx context.Context) *Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return &Context{
		interp: in,
		ctx:    ctx,
		locals: make(map[string]Value),
		root:   true,
		stack:  &CallStack{MaxHeight: in.maxDepth},
	}
}

// Eval evaluates a top-level form.
func (in *Interpreter) Eval(e Expr) (Value, error) {
	return in.EvalContext(context.Background(), e)
}

// EvalContext evaluates a top-level form.  Evaluation fails with an error of
// kind ErrCancelled once ctx is done.
func (in *Interpreter) EvalContext(ctx context.Context, e Expr) (Value, error) {
	return in.Root(ctx).EvalExpr(e)
}

// Load reads source from r using the configured Reader and evaluates each
// form in order.  Load stops at the first error.  The value of the last form
// is returned.
func (in *Interpreter) Load(name string, r io.Reader) (Value, error) {
	if in.reader == nil {
		return nil, errors.New("no reader for interpreter")
	}
	exprs, err := in.reader.Read(name, r)
	if err != nil {
		return nil, err
	}
	var v Value = Void{}
	for _, e := range exprs {
		v, err = in.Eval(e)
		if err != nil {
			return nil, err
		}
	}
	return v, nil
}

// LoadString is like Load but reads source from a string.
func (in *Interpreter) LoadString(name, source string) (Value, error) {
	return in.Load(name, strings.NewReader(source))
}

// Context carries the state of one evaluation: the session, a local table,
// and the call stack.  A Context must not be shared between goroutines.
type Context struct {
	interp *Interpreter
	ctx    context.Context
	locals map[string]Value
	root   bool
	stack  *CallStack
}

// Interpreter returns the session cx is bound to.
func (cx *Context) Interpreter() *Interpreter {
	return cx.interp
}

// Context returns the context.Context governing the evaluation.
func (cx *Context) Context() context.Context {
	if cx.ctx == nil {
		return context.Background()
	}
	return cx.ctx
}

// Stack returns the call stack of the evaluation.
func (cx *Context) Stack() *CallStack {
	return cx.stack
}

// IsRoot returns true if definitions in cx are global.
func (cx *Context) IsRoot() bool {
	return cx.root
}

// Descend returns a child context for a nested call.  The child receives a
// copy of the local table of cx so that its writes never reach cx.
func (cx *Context) Descend() *Context {
	locals := make(map[string]Value, len(cx.locals))
	for k, v := range cx.locals {
		locals[k] = v
	}
	return &Context{
		interp: cx.interp,
		ctx:    cx.ctx,
		locals: locals,
		stack:  cx.stack,
	}
}

// enter returns a child context for the body of a procedure defined in the
// scope env.  The child receives a copy of env.  Its writes never reach env.
func (cx *Context) enter(env map[string]Value) *Context {
	locals := make(map[string]Value, len(env))
	for k, v := range env {
		locals[k] = v
	}
	return &Context{
		interp: cx.interp,
		ctx:    cx.ctx,
		locals: locals,
		stack:  cx.stack,
	}
}

// scope returns the local table procedures defined in cx close over.
func (cx *Context) scope() map[string]Value {
	if cx.root {
		return nil
	}
	return cx.locals
}

// Lookup returns the value bound to name, checking the local table before
// the global table.
func (cx *Context) Lookup(name string) (Value, bool) {
	if v, ok := cx.locals[name]; ok {
		return v, true
	}
	return cx.interp.globals.Get(name)
}

// Define binds name to v.  A root context writes the global table and any
// other context writes its own local table.
func (cx *Context) Define(name string, v Value) {
	if cx.root {
		cx.interp.globals.Put(name, v)
		return
	}
	cx.locals[name] = v
}

// DefineGlobal binds name to v in the global table.
func (cx *Context) DefineGlobal(name string, v Value) {
	cx.interp.globals.Put(name, v)
}

// LocalNames returns the names bound in the local table in sorted order.
func (cx *Context) LocalNames() []string {
	names := make([]string, 0, len(cx.locals))
	for name := range cx.locals {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (cx *Context) checkCancel() error {
	if cx.ctx == nil {
		return nil
	}
	if err := cx.ctx.Err(); err != nil {
		return errCancelled(err)
	}
	return nil
}
