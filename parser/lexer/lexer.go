package lexer

import (
	"fmt"
	"io"
	"strings"
	"unicode"

	"github.com/bmatsuo/rkt/parser/token"
)

// delimiters end a word.
const delimiters = "()[]{}\";'`,"

type Lexer struct {
	scanner *token.Scanner
	ch      rune // current unicode rune

	// readErr is the first error encountered reading from the scanner.
	readErr error
}

func New(s *token.Scanner) *Lexer {
	lex := &Lexer{
		scanner: s,
	}
	return lex
}

// NextToken scans and returns the next token.  Once the input is exhausted
// NextToken returns EOF tokens.  An ERROR token with text "unexpected EOF" is
// returned when the input ends in the middle of a token.
func (lex *Lexer) NextToken() *token.Token {
	if lex.readErr != nil {
		return lex.emitError(lex.readErr, true)
	}
	lex.readErr = lex.skipWhitespace()
	if lex.readErr != nil {
		return lex.emitError(lex.readErr, true)
	}
	lex.readChar()
	if lex.readErr != nil {
		return lex.emitError(lex.readErr, true)
	}
	switch lex.ch {
	case '(':
		return lex.charToken(token.PAREN_L)
	case ')':
		return lex.charToken(token.PAREN_R)
	case '[':
		return lex.charToken(token.BRACKET_L)
	case ']':
		return lex.charToken(token.BRACKET_R)
	case '{':
		return lex.charToken(token.BRACE_L)
	case '}':
		return lex.charToken(token.BRACE_R)
	case '\'':
		return lex.charToken(token.QUOTE)
	case ';':
		for lex.peekRune() != '\n' {
			err := lex.readChar()
			if err == io.EOF {
				return lex.scanner.EmitToken(token.COMMENT)
			}
			if err != nil {
				return lex.emitError(err, false)
			}
		}
		return lex.scanner.EmitToken(token.COMMENT)
	case '#':
		return lex.readHash()
	case '"':
		return lex.readString(token.STRING)
	case '`', ',':
		lex.scanner.Ignore()
		return lex.errorf("unsupported quasi-quote syntax %q", lex.ch)
	default:
		err := lex.readWord()
		if err != nil {
			return lex.emitError(err, false)
		}
		return lex.scanner.EmitToken(token.WORD)
	}
}

// readHash scans the tokens introduced by '#': booleans, characters, byte
// strings, radix numbers, and block comments.
func (lex *Lexer) readHash() *token.Token {
	if lex.readChar() != nil {
		return lex.emitError(lex.readErr, false)
	}
	switch lex.ch {
	case '"':
		return lex.readString(token.BYTES)
	case '\\':
		// the first rune after the backslash always belongs to the character,
		// even when it is a delimiter.
		if lex.readChar() != nil {
			return lex.emitError(lex.readErr, false)
		}
		err := lex.readWord()
		if err != nil {
			return lex.emitError(err, false)
		}
		return lex.scanner.EmitToken(token.CHAR)
	case '|':
		return lex.readBlockComment()
	case 't', 'f':
		err := lex.readWord()
		if err != nil {
			return lex.emitError(err, false)
		}
		switch text := lex.scanner.Text(); text {
		case "#t", "#f", "#true", "#false":
			return lex.scanner.EmitToken(token.BOOL)
		default:
			lex.scanner.Ignore()
			return lex.errorf("invalid boolean literal: %s", text)
		}
	case 'x', 'X', 'o', 'O', 'b', 'B':
		err := lex.readWord()
		if err != nil {
			return lex.emitError(err, false)
		}
		return lex.scanner.EmitToken(token.RADIX)
	default:
		lex.scanner.Ignore()
		return lex.errorf("invalid meta character %q", lex.ch)
	}
}

// readBlockComment scans a possibly nested #| ... |# comment.
func (lex *Lexer) readBlockComment() *token.Token {
	depth := 1
	for depth > 0 {
		if lex.readChar() != nil {
			return lex.emitError(lex.readErr, false)
		}
		switch {
		case lex.ch == '|' && lex.peekRune() == '#':
			lex.readChar()
			depth--
		case lex.ch == '#' && lex.peekRune() == '|':
			lex.readChar()
			depth++
		}
		if lex.readErr != nil {
			return lex.emitError(lex.readErr, false)
		}
	}
	return lex.scanner.EmitToken(token.COMMENT)
}

// readString scans the rest of a string literal.  Strings may contain
// newlines.  Escape sequences are validated by the parser.
func (lex *Lexer) readString(typ token.Type) *token.Token {
	for {
		err := lex.readChar()
		if err != nil {
			return lex.emitError(err, false)
		}
		switch lex.ch {
		case '"':
			return lex.scanner.EmitToken(typ)
		case '\\':
			err := lex.readChar()
			if err != nil {
				return lex.emitError(err, false)
			}
		}
	}
}

func (lex *Lexer) emit(typ token.Type, text string) *token.Token {
	tok := &token.Token{
		Type:   typ,
		Text:   text,
		Source: lex.scanner.LocStart(),
	}
	lex.scanner.Ignore()
	return tok
}

func (lex *Lexer) emitError(err error, expectEOF bool) *token.Token {
	if err == io.EOF {
		if expectEOF {
			return lex.emit(token.EOF, "")
		}
		return lex.emit(token.ERROR, "unexpected EOF")
	}
	return lex.emit(token.ERROR, err.Error())
}

func (lex *Lexer) errorf(format string, v ...interface{}) *token.Token {
	return lex.emitError(fmt.Errorf(format, v...), false)
}

func (lex *Lexer) charToken(typ token.Type) *token.Token {
	tok := lex.scanner.EmitToken(typ)
	return tok
}

// readWord consumes runes until whitespace, a delimiter, or EOF.
func (lex *Lexer) readWord() error {
	for {
		c, ok := lex.scanner.Peek()
		if !ok || !isWord(c) {
			return nil
		}
		err := lex.readChar()
		if err != nil {
			return err
		}
	}
}

func (lex *Lexer) skipWhitespace() error {
	for unicode.IsSpace(lex.peekRune()) {
		err := lex.readChar()
		if err != nil {
			return err
		}
	}
	lex.scanner.Ignore()
	return nil
}

func (lex *Lexer) peekRune() rune {
	r, _ := lex.scanner.Peek()
	return r
}

func (lex *Lexer) readChar() error {
	lex.readErr = lex.scanner.ScanRune()
	if lex.readErr != nil {
		return lex.readErr
	}
	lex.ch = lex.scanner.Rune()
	return nil
}

func isWord(c rune) bool {
	return !unicode.IsSpace(c) && !strings.ContainsRune(delimiters, c)
}
