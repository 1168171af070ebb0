package rdparser

import (
	"strings"
	"testing"

	"github.com/bmatsuo/rkt/lisp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseStrings(t *testing.T, src string) []string {
	exprs, err := NewReader().Read("test", strings.NewReader(src))
	require.NoError(t, err)
	var strs []string
	for _, e := range exprs {
		strs = append(strs, e.String())
	}
	return strs
}

func TestParse(t *testing.T) {
	tests := []struct {
		src  string
		want []string
	}{
		{"", nil},
		{"  ; nothing\n", nil},
		{"abc", []string{"abc"}},
		{"(+ 1 2.5)", []string{"(+ 1 2.5)"}},
		{"-5 1/2 1+2i 1e3 .", []string{"-5", "1/2", "1+2i", "1000.0", "."}},
		{"'(a b) 'c", []string{"'(a b)", "'c"}},
		{"()", []string{"()"}},
		{"[a {b c}]", []string{"(a (b c))"}},
		{`"a\nb"`, []string{`"a\nb"`}},
		{"\"multi\nline\"", []string{`"multi\nline"`}},
		{`"é"`, []string{`"é"`}},
		{`#"bytes"`, []string{`#"bytes"`}},
		{`#\a #\space #\( #\u41 #\newline`, []string{`#\a`, `#\space`, `#\(`, `#\A`, `#\newline`}},
		{"#t #false", []string{"#t", "#f"}},
		{"#xff #o17 #b101", []string{"#xff", "#o17", "#b101"}},
		{"1 #| skip |# 2 ; end", []string{"1", "2"}},
		{"(a ; inner\n b)", []string{"(a b)"}},
	}
	for _, test := range tests {
		assert.Equal(t, test.want, parseStrings(t, test.src), "source %q", test.src)
	}
}

func TestParseLiteralValues(t *testing.T) {
	exprs, err := NewReader().Read("test", strings.NewReader(`#xff "x" #\z`))
	require.NoError(t, err)
	require.Len(t, exprs, 3)
	assert.Equal(t, lisp.Radix(lisp.LHex, 255), exprs[0])
	assert.Equal(t, lisp.String("x"), exprs[1])
	assert.Equal(t, lisp.Char('z'), exprs[2])
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		src        string
		msg        string
		incomplete bool
	}{
		{"(a b", "unmatched (", true},
		{"[a (b)", "unmatched [", true},
		{`"abc`, "unexpected EOF", true},
		{"'", "unexpected EOF", true},
		{")", "unexpected )", false},
		{"(a b]", "unexpected ], expected ) to close ( at test:1:1", false},
		{`#\bogus`, `bad character constant: #\bogus`, false},
		{"#q", "invalid meta character 'q'", false},
		{"`a", "unsupported quasi-quote syntax '`'", false},
		{`"\q"`, `invalid string literal: "\q"`, false},
		{"#xzz", "invalid hex literal: #xzz", false},
	}
	for _, test := range tests {
		_, err := NewReader().Read("test", strings.NewReader(test.src))
		require.Error(t, err, "source %q", test.src)
		serr, ok := err.(*SyntaxError)
		require.True(t, ok, "source %q: %T", test.src, err)
		assert.Equal(t, test.msg, serr.Msg, "source %q", test.src)
		assert.Equal(t, test.incomplete, IsIncomplete(err), "source %q", test.src)
	}
}

func TestSyntaxErrorLocation(t *testing.T) {
	_, err := NewReader().Read("test", strings.NewReader("(a\n  b]"))
	require.Error(t, err)
	assert.Equal(t, "test:2:4: syntax error: unexpected ], expected ) to close ( at test:1:1", err.Error())
}
