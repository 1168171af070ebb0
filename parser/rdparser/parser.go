package rdparser

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/bmatsuo/rkt/lisp"
	"github.com/bmatsuo/rkt/parser/token"
)

type reader struct {
}

// NewReader returns a lisp.Reader to use in a lisp.Interpreter.
func NewReader() lisp.Reader {
	return &reader{}
}

// Read implements lisp.Reader.
func (_ *reader) Read(name string, r io.Reader) ([]lisp.Expr, error) {
	s := token.NewScanner(name, r)
	p := New(s)
	return p.ParseProgram()
}

// SyntaxError is returned when source text cannot be read.  Incomplete is
// true when the text is a valid prefix of a program, as is common when a
// form is split across lines in a REPL.
type SyntaxError struct {
	Loc        *token.Location
	Msg        string
	Incomplete bool
}

func (err *SyntaxError) Error() string {
	return fmt.Sprintf("%v: syntax error: %s", err.Loc, err.Msg)
}

// IsIncomplete returns true if err is a SyntaxError caused by source text
// ending before the last form was closed.
func IsIncomplete(err error) bool {
	var serr *SyntaxError
	return errors.As(err, &serr) && serr.Incomplete
}

// Parser is a lisp parser.
type Parser struct {
	src *TokenSource
}

// New initializes and returns a new Parser that reads tokens from scanner.
func New(scanner *token.Scanner) *Parser {
	return &Parser{src: NewTokenSource(scanner)}
}

// ParseProgram parses all expressions in the source.
func (p *Parser) ParseProgram() ([]lisp.Expr, error) {
	var exprs []lisp.Expr
	for {
		p.skipComments()
		if p.src.IsEOF() {
			break
		}
		expr, err := p.ParseExpression()
		if err != nil {
			return nil, err
		}
		exprs = append(exprs, expr)
	}
	return exprs, nil
}

// ParseExpression parses the next complete expression.
func (p *Parser) ParseExpression() (lisp.Expr, error) {
	p.skipComments()
	switch p.PeekType() {
	case token.WORD:
		return p.ParseWord()
	case token.STRING:
		return p.ParseLiteralString()
	case token.BYTES:
		return p.ParseLiteralBytes()
	case token.CHAR:
		return p.ParseLiteralChar()
	case token.BOOL:
		return p.ParseLiteralBool()
	case token.RADIX:
		return p.ParseLiteralRadix()
	case token.QUOTE:
		return p.ParseQuote()
	case token.PAREN_L, token.BRACKET_L, token.BRACE_L:
		return p.ParseConsExpression()
	case token.EOF:
		p.ReadToken()
		return nil, p.incomplete("unexpected EOF")
	case token.ERROR, token.INVALID:
		p.ReadToken()
		if p.Token().Text == "unexpected EOF" {
			return nil, p.incomplete(p.Token().Text)
		}
		return nil, p.errorf("%s", p.Token().Text)
	default:
		p.ReadToken()
		return nil, p.errorf("unexpected %s", p.Token().Type)
	}
}

// ParseWord parses a number or an identifier.
func (p *Parser) ParseWord() (lisp.Expr, error) {
	if !p.expect(token.WORD) {
		return nil, p.errorf("invalid word: %v", p.PeekType())
	}
	text := p.Token().Text
	lit, ok, err := lisp.ParseNumber(text)
	if err != nil {
		return nil, p.errorf("%v", err)
	}
	if ok {
		return lit, nil
	}
	return lisp.Ident{Name: text}, nil
}

func (p *Parser) ParseLiteralString() (lisp.Expr, error) {
	if !p.expect(token.STRING) {
		return nil, p.errorf("invalid string literal: %v", p.PeekType())
	}
	text := p.Token().Text
	s, err := unquote(text)
	if err != nil {
		return nil, p.errorf("invalid string literal: %v", text)
	}
	return lisp.String(s), nil
}

func (p *Parser) ParseLiteralBytes() (lisp.Expr, error) {
	if !p.expect(token.BYTES) {
		return nil, p.errorf("invalid byte string literal: %v", p.PeekType())
	}
	text := p.Token().Text
	s, err := unquote(text[1:])
	if err != nil {
		return nil, p.errorf("invalid byte string literal: %v", text)
	}
	return lisp.Bytes([]byte(s)), nil
}

var charNames = map[string]rune{
	"space":    ' ',
	"newline":  '\n',
	"linefeed": '\n',
	"tab":      '\t',
	"return":   '\r',
	"nul":      0,
	"null":     0,
}

func (p *Parser) ParseLiteralChar() (lisp.Expr, error) {
	if !p.expect(token.CHAR) {
		return nil, p.errorf("invalid character literal: %v", p.PeekType())
	}
	text := p.Token().Text
	name := strings.TrimPrefix(text, `#\`)
	if utf8.RuneCountInString(name) == 1 {
		c, _ := utf8.DecodeRuneInString(name)
		return lisp.Char(c), nil
	}
	if c, ok := charNames[name]; ok {
		return lisp.Char(c), nil
	}
	if name[0] == 'u' {
		x, err := strconv.ParseUint(name[1:], 16, 32)
		if err == nil && utf8.ValidRune(rune(x)) {
			return lisp.Char(rune(x)), nil
		}
	}
	return nil, p.errorf("bad character constant: %s", text)
}

func (p *Parser) ParseLiteralBool() (lisp.Expr, error) {
	if !p.expect(token.BOOL) {
		return nil, p.errorf("invalid boolean literal: %v", p.PeekType())
	}
	switch p.Token().Text {
	case "#t", "#true":
		return lisp.Bool(true), nil
	default:
		return lisp.Bool(false), nil
	}
}

func (p *Parser) ParseLiteralRadix() (lisp.Expr, error) {
	if !p.expect(token.RADIX) {
		return nil, p.errorf("invalid radix literal: %v", p.PeekType())
	}
	text := p.Token().Text
	lit, err := lisp.ParseRadix(text[1], text[2:])
	if err != nil {
		return nil, p.errorf("%v", err)
	}
	return lit, nil
}

func (p *Parser) ParseQuote() (lisp.Expr, error) {
	if !p.expect(token.QUOTE) {
		return nil, p.errorf("invalid quote: %v", p.PeekType())
	}
	expr, err := p.ParseExpression()
	if err != nil {
		return nil, err
	}
	return lisp.Quote(expr), nil
}

// ParseConsExpression parses a parenthesized form.  Parentheses, brackets
// and braces are interchangeable but a form must be closed by the delimiter
// matching the one that opened it.
func (p *Parser) ParseConsExpression() (lisp.Expr, error) {
	if !p.expect(token.PAREN_L, token.BRACKET_L, token.BRACE_L) {
		return nil, p.errorf("invalid form: %v", p.PeekType())
	}
	open := p.Token()
	closer := open.Type.Closer()
	var elems []lisp.Expr
	for {
		p.skipComments()
		if p.expect(token.EOF) {
			return nil, p.incomplete(fmt.Sprintf("unmatched %s", open.Text))
		}
		if p.expect(closer) {
			break
		}
		if p.Peek().Type.IsClose() {
			p.ReadToken()
			return nil, p.errorf("unexpected %s, expected %s to close %s at %v",
				p.Token().Text, closer, open.Text, open.Source)
		}
		x, err := p.ParseExpression()
		if err != nil {
			return nil, err
		}
		elems = append(elems, x)
	}
	if len(elems) == 0 {
		return &lisp.Tree{}, nil
	}
	return lisp.NewTree(elems[0], elems[1:]...), nil
}

func (p *Parser) skipComments() {
	for p.expect(token.COMMENT) {
	}
}

func (p *Parser) ReadToken() *token.Token {
	p.src.scan()
	return p.src.Token
}

func (p *Parser) Token() *token.Token {
	return p.src.Token
}

func (p *Parser) Peek() *token.Token {
	return p.src.Peek
}

func (p *Parser) PeekType() token.Type {
	return p.src.Peek.Type
}

func (p *Parser) expect(typ ...token.Type) bool {
	return p.src.AcceptType(typ...)
}

func (p *Parser) errorf(format string, v ...interface{}) error {
	return &SyntaxError{
		Loc: p.loc(),
		Msg: fmt.Sprintf(format, v...),
	}
}

func (p *Parser) incomplete(msg string) error {
	return &SyntaxError{
		Loc:        p.loc(),
		Msg:        msg,
		Incomplete: true,
	}
}

func (p *Parser) loc() *token.Location {
	if p.Token() == nil {
		return p.Peek().Source
	}
	return p.Token().Source
}

// unquote decodes the escape sequences of a double quoted string.  Unlike
// strconv.Unquote the string may contain literal newlines.
func unquote(text string) (string, error) {
	if len(text) < 2 || text[0] != '"' || text[len(text)-1] != '"' {
		return "", errors.New("missing quotes")
	}
	s := text[1 : len(text)-1]
	var buf []byte
	var tmp [utf8.UTFMax]byte
	for len(s) > 0 {
		c, multibyte, tail, err := strconv.UnquoteChar(s, '"')
		if err != nil {
			return "", err
		}
		s = tail
		if c < utf8.RuneSelf || !multibyte {
			buf = append(buf, byte(c))
			continue
		}
		n := utf8.EncodeRune(tmp[:], c)
		buf = append(buf, tmp[:n]...)
	}
	return string(buf), nil
}
