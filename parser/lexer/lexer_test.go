package lexer

import (
	"strings"
	"testing"

	"github.com/bmatsuo/rkt/parser/token"
	"github.com/stretchr/testify/assert"
)

type lexTest struct {
	name  string
	input string
	types []token.Type
	texts []string
}

func TestLexer(t *testing.T) {
	tests := []lexTest{
		{"empty", "", []token.Type{token.EOF}, []string{""}},
		{"word", "abc", []token.Type{token.WORD, token.EOF}, []string{"abc", ""}},
		{"form",
			"(+ 1 -2.5)",
			[]token.Type{token.PAREN_L, token.WORD, token.WORD, token.WORD, token.PAREN_R, token.EOF},
			[]string{"(", "+", "1", "-2.5", ")", ""}},
		{"brackets",
			"[a]{b}",
			[]token.Type{token.BRACKET_L, token.WORD, token.BRACKET_R, token.BRACE_L, token.WORD, token.BRACE_R, token.EOF},
			[]string{"[", "a", "]", "{", "b", "}", ""}},
		{"quote",
			"'(a)",
			[]token.Type{token.QUOTE, token.PAREN_L, token.WORD, token.PAREN_R, token.EOF},
			[]string{"'", "(", "a", ")", ""}},
		{"string",
			`"a \"b\"
c"`,
			[]token.Type{token.STRING, token.EOF},
			[]string{"\"a \\\"b\\\"\nc\"", ""}},
		{"bytes", `#"abc"`, []token.Type{token.BYTES, token.EOF}, []string{`#"abc"`, ""}},
		{"chars",
			`#\a #\space #\( #\)`,
			[]token.Type{token.CHAR, token.CHAR, token.CHAR, token.CHAR, token.EOF},
			[]string{`#\a`, `#\space`, `#\(`, `#\)`, ""}},
		{"booleans",
			"#t #f #true #false",
			[]token.Type{token.BOOL, token.BOOL, token.BOOL, token.BOOL, token.EOF},
			[]string{"#t", "#f", "#true", "#false", ""}},
		{"radix",
			"#xff #o17 #b101",
			[]token.Type{token.RADIX, token.RADIX, token.RADIX, token.EOF},
			[]string{"#xff", "#o17", "#b101", ""}},
		{"line comment",
			"a ; comment\nb",
			[]token.Type{token.WORD, token.COMMENT, token.WORD, token.EOF},
			[]string{"a", "; comment", "b", ""}},
		{"trailing comment",
			"a ;",
			[]token.Type{token.WORD, token.COMMENT, token.EOF},
			[]string{"a", ";", ""}},
		{"block comment",
			"a #| x #| y |# z |# b",
			[]token.Type{token.WORD, token.COMMENT, token.WORD, token.EOF},
			[]string{"a", "#| x #| y |# z |#", "b", ""}},
		{"word delimiters",
			"a\"b\"",
			[]token.Type{token.WORD, token.STRING, token.EOF},
			[]string{"a", `"b"`, ""}},
		{"unterminated string",
			`"abc`,
			[]token.Type{token.ERROR},
			[]string{"unexpected EOF"}},
		{"unterminated comment",
			"#| abc",
			[]token.Type{token.ERROR},
			[]string{"unexpected EOF"}},
		{"bad boolean",
			"#tru",
			[]token.Type{token.ERROR},
			[]string{"invalid boolean literal: #tru"}},
		{"quasi-quote",
			"`a",
			[]token.Type{token.ERROR},
			[]string{"unsupported quasi-quote syntax '`'"}},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			lex := New(token.NewScanner("test", strings.NewReader(test.input)))
			var types []token.Type
			var texts []string
			for len(types) < len(test.types) {
				tok := lex.NextToken()
				types = append(types, tok.Type)
				texts = append(texts, tok.Text)
			}
			assert.Equal(t, test.types, types)
			assert.Equal(t, test.texts, texts)
		})
	}
}

func TestLexerEOF(t *testing.T) {
	lex := New(token.NewScanner("test", strings.NewReader("a")))
	assert.Equal(t, token.WORD, lex.NextToken().Type)
	for i := 0; i < 3; i++ {
		assert.Equal(t, token.EOF, lex.NextToken().Type)
	}
}
