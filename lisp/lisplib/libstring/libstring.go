package libstring

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/bmatsuo/rkt/lisp"
)

// LoadPackage registers the string natives with in.
func LoadPackage(in *lisp.Interpreter) error {
	in.AddNatives(builtins...)
	return nil
}

var builtins = []lisp.NativeDef{
	lisp.StrictNative("format", builtinFormat),
	lisp.StrictNative("printf", builtinPrintf),
	lisp.StrictNative("string-join", builtinJoin),
	lisp.StrictNative("string-split", builtinSplit),
	lisp.StrictNative("string-trim", builtinTrim),
	lisp.StrictNative("string-replace", builtinReplace),
	lisp.StrictNative("string-contains?", builtinContainsP),
	lisp.StrictNative("string-prefix?", builtinPrefixP),
	lisp.StrictNative("string-suffix?", builtinSuffixP),
}

func builtinFormat(cx *lisp.Context, args []lisp.Value) (lisp.Value, error) {
	s, err := format("format", args)
	if err != nil {
		return nil, err
	}
	return lisp.String(s), nil
}

func builtinPrintf(cx *lisp.Context, args []lisp.Value) (lisp.Value, error) {
	s, err := format("printf", args)
	if err != nil {
		return nil, err
	}
	_, err = io.WriteString(cx.Interpreter().Stdout(), s)
	if err != nil {
		return nil, lisp.Errorf("printf: %v", err)
	}
	return lisp.Void{}, nil
}

// format expands the directives ~a (display), ~s and ~v (print), ~n and ~%
// (newline) and ~~ (a tilde).
func format(fn string, args []lisp.Value) (string, error) {
	if err := lisp.RequireArityAtLeast(fn, args, 1); err != nil {
		return "", err
	}
	f, err := lisp.StringArg(fn, 1, args[0])
	if err != nil {
		return "", err
	}
	fvals := args[1:]
	tokens, err := tokenizeFormatString(f)
	if err != nil {
		return "", lisp.Errorf("%s: %v", fn, err)
	}
	var buf bytes.Buffer
	anonIndex := 0
	for _, tok := range tokens {
		switch tok.typ {
		case formatText:
			buf.WriteString(tok.text)
			continue
		case formatNewline:
			buf.WriteString("\n")
			continue
		}
		if anonIndex >= len(fvals) {
			return "", lisp.Errorf("%s: too many formatting directives for supplied values", fn)
		}
		val := fvals[anonIndex]
		anonIndex++
		if tok.typ == formatDisplay {
			buf.WriteString(lisp.DisplayString(val))
		} else {
			buf.WriteString(val.String())
		}
	}
	if anonIndex != len(fvals) {
		return "", lisp.Errorf("%s: format string requires %d arguments, given %d", fn, anonIndex, len(fvals))
	}
	return buf.String(), nil
}

func tokenizeFormatString(f string) ([]formatToken, error) {
	var tokens []formatToken
	for {
		i := strings.IndexByte(f, '~')
		if i < 0 {
			if f != "" {
				tokens = append(tokens, formatToken{formatText, f})
			}
			return tokens, nil
		}
		if i > 0 {
			tokens = append(tokens, formatToken{formatText, f[:i]})
		}
		if i+1 >= len(f) {
			return nil, fmt.Errorf("format string ends in a tilde")
		}
		switch f[i+1] {
		case 'a', 'A':
			tokens = append(tokens, formatToken{formatDisplay, ""})
		case 's', 'S', 'v', 'V':
			tokens = append(tokens, formatToken{formatPrint, ""})
		case 'n', '%':
			tokens = append(tokens, formatToken{formatNewline, ""})
		case '~':
			tokens = append(tokens, formatToken{formatText, "~"})
		default:
			return nil, fmt.Errorf("unknown formatting directive: ~%c", f[i+1])
		}
		f = f[i+2:]
	}
}

type formatTokenType uint

const (
	formatText formatTokenType = iota
	formatDisplay
	formatPrint
	formatNewline
)

type formatToken struct {
	typ  formatTokenType
	text string
}

func builtinJoin(cx *lisp.Context, args []lisp.Value) (lisp.Value, error) {
	if len(args) < 1 || len(args) > 2 {
		return nil, lisp.ErrArity("string-join", 2, len(args))
	}
	lis, err := lisp.ListArg("string-join", 1, args[0])
	if err != nil {
		return nil, err
	}
	sep := " "
	if len(args) == 2 {
		sep, err = lisp.StringArg("string-join", 2, args[1])
		if err != nil {
			return nil, err
		}
	}
	strs := make([]string, len(lis))
	for i, v := range lis {
		s, err := lisp.StringArg("string-join", 1, v)
		if err != nil {
			return nil, err
		}
		strs[i] = s
	}
	return lisp.String(strings.Join(strs, sep)), nil
}

// builtinSplit splits on whitespace unless a separator is given.
func builtinSplit(cx *lisp.Context, args []lisp.Value) (lisp.Value, error) {
	if len(args) < 1 || len(args) > 2 {
		return nil, lisp.ErrArity("string-split", 2, len(args))
	}
	s, err := lisp.StringArg("string-split", 1, args[0])
	if err != nil {
		return nil, err
	}
	var parts []string
	if len(args) == 1 {
		parts = strings.Fields(s)
	} else {
		sep, err := lisp.StringArg("string-split", 2, args[1])
		if err != nil {
			return nil, err
		}
		for _, p := range strings.Split(s, sep) {
			if p != "" {
				parts = append(parts, p)
			}
		}
	}
	lis := make(lisp.List, len(parts))
	for i := range parts {
		lis[i] = lisp.String(parts[i])
	}
	return lis, nil
}

func builtinTrim(cx *lisp.Context, args []lisp.Value) (lisp.Value, error) {
	if err := lisp.RequireArity("string-trim", args, 1); err != nil {
		return nil, err
	}
	s, err := lisp.StringArg("string-trim", 1, args[0])
	if err != nil {
		return nil, err
	}
	return lisp.String(strings.TrimSpace(s)), nil
}

func builtinReplace(cx *lisp.Context, args []lisp.Value) (lisp.Value, error) {
	if err := lisp.RequireArity("string-replace", args, 3); err != nil {
		return nil, err
	}
	var strs [3]string
	for i := range strs {
		s, err := lisp.StringArg("string-replace", i+1, args[i])
		if err != nil {
			return nil, err
		}
		strs[i] = s
	}
	return lisp.String(strings.ReplaceAll(strs[0], strs[1], strs[2])), nil
}

func stringPredicate(fn string, args []lisp.Value, ok func(s, t string) bool) (lisp.Value, error) {
	if err := lisp.RequireArity(fn, args, 2); err != nil {
		return nil, err
	}
	s, err := lisp.StringArg(fn, 1, args[0])
	if err != nil {
		return nil, err
	}
	t, err := lisp.StringArg(fn, 2, args[1])
	if err != nil {
		return nil, err
	}
	return lisp.Bool(ok(s, t)), nil
}

func builtinContainsP(cx *lisp.Context, args []lisp.Value) (lisp.Value, error) {
	return stringPredicate("string-contains?", args, strings.Contains)
}

func builtinPrefixP(cx *lisp.Context, args []lisp.Value) (lisp.Value, error) {
	return stringPredicate("string-prefix?", args, strings.HasPrefix)
}

func builtinSuffixP(cx *lisp.Context, args []lisp.Value) (lisp.Value, error) {
	return stringPredicate("string-suffix?", args, strings.HasSuffix)
}
