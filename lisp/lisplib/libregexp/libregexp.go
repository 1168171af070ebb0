package libregexp

import (
	"regexp"

	"github.com/bmatsuo/rkt/lisp"
)

// LoadPackage registers the regexp natives with in.
func LoadPackage(in *lisp.Interpreter) error {
	in.AddNatives(builtins...)
	return nil
}

var builtins = []lisp.NativeDef{
	lisp.StrictNative("regexp-match?", BuiltinIsMatch),
	lisp.StrictNative("regexp-match", BuiltinMatch),
	lisp.StrictNative("regexp-replace", BuiltinReplace),
	lisp.StrictNative("regexp-replace*", BuiltinReplaceAll),
}

// BuiltinIsMatch returns #t if the pattern matches the text.
func BuiltinIsMatch(cx *lisp.Context, args []lisp.Value) (lisp.Value, error) {
	re, text, err := patternAndText("regexp-match?", args, 2)
	if err != nil {
		return nil, err
	}
	return lisp.Bool(re.MatchString(text)), nil
}

// BuiltinMatch returns the leftmost match and its submatches as a list of
// strings.  Groups that did not participate are #f.  If there is no match
// the result is #f.
func BuiltinMatch(cx *lisp.Context, args []lisp.Value) (lisp.Value, error) {
	re, text, err := patternAndText("regexp-match", args, 2)
	if err != nil {
		return nil, err
	}
	idx := re.FindStringSubmatchIndex(text)
	if idx == nil {
		return lisp.Bool(false), nil
	}
	lis := make(lisp.List, len(idx)/2)
	for i := range lis {
		if idx[2*i] < 0 {
			lis[i] = lisp.Bool(false)
			continue
		}
		lis[i] = lisp.String(text[idx[2*i]:idx[2*i+1]])
	}
	return lis, nil
}

// BuiltinReplace replaces the first match of the pattern.
func BuiltinReplace(cx *lisp.Context, args []lisp.Value) (lisp.Value, error) {
	re, text, err := patternAndText("regexp-replace", args, 3)
	if err != nil {
		return nil, err
	}
	repl, err := lisp.StringArg("regexp-replace", 3, args[2])
	if err != nil {
		return nil, err
	}
	loc := re.FindStringSubmatchIndex(text)
	if loc == nil {
		return lisp.String(text), nil
	}
	var dst []byte
	dst = re.ExpandString(dst, repl, text, loc)
	return lisp.String(text[:loc[0]] + string(dst) + text[loc[1]:]), nil
}

// BuiltinReplaceAll replaces every match of the pattern.
func BuiltinReplaceAll(cx *lisp.Context, args []lisp.Value) (lisp.Value, error) {
	re, text, err := patternAndText("regexp-replace*", args, 3)
	if err != nil {
		return nil, err
	}
	repl, err := lisp.StringArg("regexp-replace*", 3, args[2])
	if err != nil {
		return nil, err
	}
	return lisp.String(re.ReplaceAllString(text, repl)), nil
}

func patternAndText(fn string, args []lisp.Value, n int) (*regexp.Regexp, string, error) {
	if err := lisp.RequireArity(fn, args, n); err != nil {
		return nil, "", err
	}
	patt, err := lisp.StringArg(fn, 1, args[0])
	if err != nil {
		return nil, "", err
	}
	re, err := regexp.Compile(patt)
	if err != nil {
		return nil, "", lisp.Errorf("%s: invalid pattern: %v", fn, err)
	}
	text, err := lisp.StringArg(fn, 2, args[1])
	if err != nil {
		return nil, "", err
	}
	return re, text, nil
}
