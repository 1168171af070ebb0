package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/bmatsuo/rkt/lisp"
	"github.com/bmatsuo/rkt/parser/rdparser"
	"github.com/spf13/cobra"
)

var (
	runExpression bool
	runPrint      bool
	runMaxDepth   int
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run [flags] FILE...",
	Short: "Run lisp code",
	Long: `Run lisp code provided supplied via the command line or a file.

Errors are reported and evaluation continues with the next top-level form.
The exit status is non-zero if any form failed.`,
	Args: cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if cmd.Flags().Changed("print") {
			settings.Print = runPrint
		}
		if cmd.Flags().Changed("max-depth") {
			settings.MaxDepth = runMaxDepth
		}
		srcs, err := runReadSources(args)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		in, err := lisp.New(settings.Configs()...)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		r := &runner{
			in:     in,
			print:  settings.Print,
			stderr: os.Stderr,
		}
		if !r.run(context.Background(), srcs) {
			os.Exit(1)
		}
	},
}

type source struct {
	name string
	text string
}

func runReadSources(args []string) ([]source, error) {
	srcs := make([]source, len(args))
	if runExpression {
		for i := range args {
			srcs[i] = source{fmt.Sprintf("expression[%d]", i+1), args[i]}
		}
		return srcs, nil
	}
	for i, path := range args {
		var b []byte
		var err error
		if path == "-" {
			b, err = io.ReadAll(os.Stdin)
			path = "stdin"
		} else {
			b, err = os.ReadFile(path)
		}
		if err != nil {
			return nil, err
		}
		srcs[i] = source{path, string(b)}
	}
	return srcs, nil
}

// runner evaluates sources one top-level form at a time.
type runner struct {
	in     *lisp.Interpreter
	print  bool
	stderr io.Writer
}

// run evaluates each form of srcs in order.  A source that cannot be read is
// skipped entirely.  A form that fails to evaluate is reported and the next
// form is evaluated.  run returns false if any error was reported.
func (r *runner) run(ctx context.Context, srcs []source) bool {
	ok := true
	reader := rdparser.NewReader()
	for _, src := range srcs {
		exprs, err := reader.Read(src.name, strings.NewReader(src.text))
		if err != nil {
			fmt.Fprintln(r.stderr, err)
			ok = false
			continue
		}
		for _, expr := range exprs {
			v, err := r.in.EvalContext(ctx, expr)
			if err != nil {
				fmt.Fprintf(r.stderr, "%s: %v\n", src.name, err)
				ok = false
				continue
			}
			if r.print && !lisp.IsVoid(v) {
				fmt.Fprintln(r.in.Stdout(), v)
			}
		}
	}
	return ok
}

func init() {
	rootCmd.AddCommand(runCmd)

	// Here flags for the run command are defined
	runCmd.Flags().BoolVarP(&runExpression, "expression", "e", false,
		"Interpret arguments as lisp expressions")
	runCmd.Flags().BoolVarP(&runPrint, "print", "p", false,
		"Print expression values to stdout")
	runCmd.Flags().IntVar(&runMaxDepth, "max-depth", 0,
		"Maximum depth of nested function calls")
}
