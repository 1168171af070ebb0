package token

import (
	"bufio"
	"fmt"
	"io"
	"unicode/utf8"
)

// Scanner reads source text one rune at a time and groups the runes into
// tokens.  A Scanner keeps a single rune of lookahead and tracks the line and
// column of every token it emits.
type Scanner struct {
	file string
	r    *bufio.Reader
	err  error // sticky once the reader fails or the input is not utf-8

	text  []byte // runes scanned since the last EmitToken or Ignore
	c     rune   // the last rune scanned
	ahead lookahead

	// position of the next rune to be scanned
	pos  int
	line int
	col  int

	start Location
}

type lookahead struct {
	c  rune
	n  int
	ok bool
}

func newScannerSize(file string, r io.Reader, size int) *Scanner {
	s := &Scanner{
		file: file,
		r:    bufio.NewReaderSize(r, size),
		line: 1,
		col:  1,
	}
	s.mark()
	return s
}

// NewScanner initializes and returns a new Scanner.  The name file is only
// used in token locations.
func NewScanner(file string, r io.Reader) *Scanner {
	return newScannerSize(file, r, 8<<10)
}

// EmitToken returns a token containing the text scanned since the last call to
// either EmitToken or Ignore.
func (s *Scanner) EmitToken(typ Type) *Token {
	tok := &Token{
		Type:   typ,
		Text:   s.Text(),
		Source: s.LocStart(),
	}
	s.Ignore()
	return tok
}

// Ignore discards the text scanned since the last call to either EmitToken
// or Ignore.  The next token starts at the next rune.
func (s *Scanner) Ignore() {
	s.text = s.text[:0]
	s.mark()
}

func (s *Scanner) mark() {
	s.start = Location{File: s.file, Pos: s.pos, Line: s.line, Col: s.col}
}

// Text returns the text scanned since the last call to either EmitToken or
// Ignore.
func (s *Scanner) Text() string {
	return string(s.text)
}

// Rune returns the last rune scanned.
func (s *Scanner) Rune() rune {
	return s.c
}

// Peek returns the next rune without scanning it.  Peek returns false at the
// end of input and when the input is not valid utf-8.  In either case the
// next call to ScanRune returns the cause.
func (s *Scanner) Peek() (rune, bool) {
	if s.ahead.ok {
		return s.ahead.c, true
	}
	if s.err != nil {
		if s.err == io.EOF {
			return 0, false
		}
		return utf8.RuneError, false
	}
	c, n, err := s.r.ReadRune()
	if err != nil {
		s.err = err
		return 0, false
	}
	if c == utf8.RuneError && n == 1 {
		_ = s.r.UnreadRune()
		b, _ := s.r.ReadByte()
		s.err = fmt.Errorf("invalid utf-8 sequence in source text starting with byte %q", b)
		return utf8.RuneError, false
	}
	s.ahead = lookahead{c: c, n: n, ok: true}
	return c, true
}

// ScanRune adds the next rune of input to the current token.  ScanRune
// returns io.EOF at the end of input, or the error which prevented a rune
// from being read.
func (s *Scanner) ScanRune() error {
	if _, ok := s.Peek(); !ok {
		return s.err
	}
	c, n := s.ahead.c, s.ahead.n
	s.ahead = lookahead{}
	s.c = c
	s.text = utf8.AppendRune(s.text, c)
	s.pos += n
	if c == '\n' {
		s.line++
		s.col = 1
	} else {
		s.col++
	}
	return nil
}

// LocStart returns the Location of the first rune of the current token.
func (s *Scanner) LocStart() *Location {
	loc := s.start
	return &loc
}
