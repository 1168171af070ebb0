package libtime

import (
	"fmt"
	"time"

	"github.com/bmatsuo/rkt/lisp"
)

// LoadPackage registers the time natives with in.
func LoadPackage(in *lisp.Interpreter) error {
	in.AddNatives(builtins...)
	return nil
}

var builtins = []lisp.NativeDef{
	lisp.StrictNative("current-seconds", BuiltinCurrentSeconds),
	lisp.StrictNative("current-milliseconds", BuiltinCurrentMilliseconds),
	lisp.StrictNative("current-inexact-milliseconds", BuiltinCurrentInexactMilliseconds),
	lisp.StrictNative("sleep", BuiltinSleep),
	lisp.Native("time", OpTime),
}

// now is replaced in tests.
var now = time.Now

// BuiltinCurrentSeconds returns the seconds since the unix epoch.
func BuiltinCurrentSeconds(cx *lisp.Context, args []lisp.Value) (lisp.Value, error) {
	if err := lisp.RequireArity("current-seconds", args, 0); err != nil {
		return nil, err
	}
	return lisp.Int(now().Unix()), nil
}

// BuiltinCurrentMilliseconds returns the milliseconds since the unix epoch.
func BuiltinCurrentMilliseconds(cx *lisp.Context, args []lisp.Value) (lisp.Value, error) {
	if err := lisp.RequireArity("current-milliseconds", args, 0); err != nil {
		return nil, err
	}
	return lisp.Int(now().UnixNano() / int64(time.Millisecond)), nil
}

// BuiltinCurrentInexactMilliseconds returns the milliseconds since the unix
// epoch with fractional precision.
func BuiltinCurrentInexactMilliseconds(cx *lisp.Context, args []lisp.Value) (lisp.Value, error) {
	if err := lisp.RequireArity("current-inexact-milliseconds", args, 0); err != nil {
		return nil, err
	}
	return lisp.Float(float64(now().UnixNano()) / float64(time.Millisecond)), nil
}

// BuiltinSleep blocks for the given number of seconds or until evaluation
// is cancelled.
func BuiltinSleep(cx *lisp.Context, args []lisp.Value) (lisp.Value, error) {
	if len(args) > 1 {
		return nil, lisp.ErrArity("sleep", 1, len(args))
	}
	var secs float64
	if len(args) == 1 {
		x, ok := args[0].(lisp.Literal)
		switch {
		case ok && x.IsInteger():
			secs = float64(x.Int)
		case ok && x.Type == lisp.LFloat:
			secs = x.Float
		default:
			return nil, lisp.ErrUnexpected("sleep", 1, args[0], "non-negative real number")
		}
		if secs < 0 {
			return nil, lisp.ErrUnexpected("sleep", 1, args[0], "non-negative real number")
		}
	}
	timer := time.NewTimer(time.Duration(secs * float64(time.Second)))
	defer timer.Stop()
	select {
	case <-timer.C:
		return lisp.Void{}, nil
	case <-cx.Context().Done():
		return nil, &lisp.Error{Kind: lisp.ErrCancelled, Msg: "sleep: " + cx.Context().Err().Error()}
	}
}

// OpTime evaluates its argument, reports the elapsed time, and returns the
// value of the argument.
func OpTime(cx *lisp.Context, args []lisp.Value) (lisp.Value, error) {
	if err := lisp.RequireArity("time", args, 1); err != nil {
		return nil, err
	}
	start := time.Now()
	v, err := cx.Eval(args[0])
	if err != nil {
		return nil, err
	}
	ms := time.Since(start).Milliseconds()
	fmt.Fprintf(cx.Interpreter().Stdout(), "cpu time: %d real time: %d gc time: 0\n", ms, ms)
	return v, nil
}
