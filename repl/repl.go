package repl

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/bmatsuo/rkt/lisp"
	"github.com/bmatsuo/rkt/parser/rdparser"
	"github.com/chzyer/readline"
)

// RunRepl runs a simple repl.  Each complete form read is evaluated in a
// session configured by config and its value printed.  An interrupt while a
// form is being evaluated cancels the evaluation.  An interrupt while reading
// discards any partially entered form.
func RunRepl(prompt string, config ...lisp.Config) error {
	rl, err := readline.New(prompt)
	if err != nil {
		return err
	}
	defer rl.Close()

	exit := func(code int) {
		rl.Close()
		os.Exit(code)
	}
	config = append(config, lisp.WithExitHandler(exit))
	in, err := lisp.New(config...)
	if err != nil {
		return err
	}

	contPrompt := strings.Repeat(" ", len(prompt)) // prompt had better be ascii...
	p := rdparser.NewInteractive("stdin")
	for {
		line, err := rl.Readline()
		if err == readline.ErrInterrupt {
			p.Reset()
			rl.SetPrompt(prompt)
			continue
		}
		if err != nil {
			if err == io.EOF {
				return nil
			}
			return err
		}
		exprs, err := p.Feed(line)
		if err != nil {
			errln(err)
		}
		if p.IsParsing() {
			rl.SetPrompt(contPrompt)
			continue
		}
		rl.SetPrompt(prompt)
		for _, expr := range exprs {
			evalPrint(in, expr)
		}
	}
}

func evalPrint(in *lisp.Interpreter, expr lisp.Expr) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	v, err := in.EvalContext(ctx, expr)
	if err != nil {
		errln(err)
		return
	}
	if lisp.IsVoid(v) {
		return
	}
	fmt.Fprintln(in.Stdout(), v)
}

func errln(v ...interface{}) {
	fmt.Fprintln(os.Stderr, v...)
}
