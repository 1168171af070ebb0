package rdparser

import (
	"strings"
	"sync"

	"github.com/bmatsuo/rkt/lisp"
	"github.com/bmatsuo/rkt/parser/token"
)

// Interactive implements a parser that is fed source one line at a time.
// Lines are buffered until they contain a sequence of complete expressions.
type Interactive struct {
	name string
	mut  sync.RWMutex
	buf  strings.Builder
}

// NewInteractive initializes and returns a new Interactive parser.  The name
// is used in the location of syntax errors.
func NewInteractive(name string) *Interactive {
	return &Interactive{name: name}
}

// Prompt returns a simple prompt that can be used by a REPL.
func (p *Interactive) Prompt() string {
	if p.IsParsing() {
		return "  "
	}
	return "> "
}

// IsParsing returns true if p is in the middle of parsing an expression.
// IsParsing can be called at any time, potentially by concurrent goroutines or
// when p is nil.
func (p *Interactive) IsParsing() bool {
	if p == nil {
		// definitely not parsing right now
		return false
	}
	p.mut.RLock()
	defer p.mut.RUnlock()
	return p.buf.Len() > 0
}

// Feed appends line to the buffered source and attempts to parse it.  If the
// buffer ends inside an expression Feed returns no expressions and no error,
// and the caller should read another line.  Otherwise the buffer is cleared
// and the parsed expressions, or the syntax error, are returned.
func (p *Interactive) Feed(line string) ([]lisp.Expr, error) {
	p.mut.Lock()
	defer p.mut.Unlock()
	p.buf.WriteString(line)
	p.buf.WriteString("\n")
	src := p.buf.String()
	if strings.TrimSpace(src) == "" {
		p.buf.Reset()
		return nil, nil
	}
	exprs, err := New(token.NewScanner(p.name, strings.NewReader(src))).ParseProgram()
	if IsIncomplete(err) {
		return nil, nil
	}
	p.buf.Reset()
	return exprs, err
}

// Reset discards any buffered source.
func (p *Interactive) Reset() {
	p.mut.Lock()
	defer p.mut.Unlock()
	p.buf.Reset()
}
