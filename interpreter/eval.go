// Package interpreter implements Lispy's tree-walking evaluator,
// function application, and primitive (built-in) procedures. It
// operates on sexpr.Value trees against sexpr.Environment frames; it
// never depends on how those trees were produced.
package interpreter

import (
	"fmt"

	"github.com/clisp-lang/clisp/sexpr"
)

// Eval reduces v under env to another Value.
func Eval(env *sexpr.Environment, v sexpr.Value) sexpr.Value {
	switch val := v.(type) {
	case sexpr.Symbol:
		looked, err := env.Lookup(val.Name)
		if err != nil {
			return sexpr.Error{Message: err.Error()}
		}
		return looked
	case sexpr.SExpr:
		return evalSExpr(env, val)
	default:
		// Number, Error, QExpr, Function, Termination evaluate to themselves.
		return v
	}
}

// evalSExpr evaluates every child, surfaces the first Error among
// them, and otherwise dispatches to the Applier.
func evalSExpr(env *sexpr.Environment, s sexpr.SExpr) sexpr.Value {
	cells := make([]sexpr.Value, len(s.Cells))
	for i, c := range s.Cells {
		cells[i] = Eval(env, c)
	}

	for _, c := range cells {
		if errVal, ok := c.(sexpr.Error); ok {
			return errVal
		}
	}

	if len(cells) == 0 {
		return sexpr.SExpr{}
	}

	if len(cells) == 1 {
		if _, isFn := cells[0].(sexpr.Function); !isFn {
			return cells[0]
		}
	}

	head := cells[0]
	args := cells[1:]

	fn, ok := head.(sexpr.Function)
	if !ok {
		return sexpr.Error{Message: fmt.Sprintf(
			"S-expression does not start with Function. Got %s, Expected Function.", head.Type())}
	}

	return Apply(env, fn, sexpr.SExpr{Cells: args})
}
