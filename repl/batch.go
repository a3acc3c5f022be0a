package repl

import (
	"fmt"
	"io"

	"github.com/clisp-lang/clisp/interpreter"
	"github.com/clisp-lang/clisp/parser"
	"github.com/clisp-lang/clisp/reader"
	"github.com/clisp-lang/clisp/sexpr"
)

// RunBatch evaluates every top-level form in src against env in order,
// printing each non-unit result to out. It mirrors "clisp run FILE":
// one shared environment across every file, each top-level form
// printed as if it had been typed at the REPL. It returns true if any
// form evaluated to an Error, so the caller can set a non-zero exit
// status.
func RunBatch(env *sexpr.Environment, src string, out io.Writer) (hadError bool) {
	forms, err := parser.ParseForms(src)
	if err != nil {
		fmt.Fprintf(out, "Parse Error: %v\n", err)
		return true
	}

	for _, form := range forms {
		v, err := reader.Read(form)
		if err != nil {
			fmt.Fprintf(out, "Parse Error: %v\n", err)
			hadError = true
			continue
		}

		result := interpreter.Eval(env, v)
		if _, ok := result.(sexpr.Termination); ok {
			return hadError
		}
		if errVal, ok := result.(sexpr.Error); ok {
			hadError = true
			fmt.Fprintln(out, errVal.String())
			continue
		}
		if sexpr.Equal(result, sexpr.SExpr{}) {
			continue
		}
		fmt.Fprintln(out, result.String())
	}
	return hadError
}
