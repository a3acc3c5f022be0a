package interpreter

import (
	"fmt"

	"github.com/clisp-lang/clisp/sexpr"
)

// Apply binds args to fn and produces its result: for a built-in, that
// is invoking the host implementation directly; for a user-defined
// function, that is the binding algorithm below.
func Apply(caller *sexpr.Environment, fn sexpr.Function, args sexpr.SExpr) sexpr.Value {
	if fn.IsBuiltin() {
		return fn.Builtin(caller, &args)
	}
	return applyUser(caller, fn, args)
}

// applyUser binds args to fn's formals left-to-right, honoring the `&`
// variadic sentinel, then either evaluates the body (all formals bound)
// or returns a partially-applied copy of fn (formals remain).
func applyUser(caller *sexpr.Environment, fn sexpr.Function, args sexpr.SExpr) sexpr.Value {
	total := len(fn.Formals.Cells)
	given := len(args.Cells)

	formals := append([]sexpr.Value(nil), fn.Formals.Cells...)
	remaining := args.Cells

	for len(remaining) > 0 {
		if len(formals) == 0 {
			return sexpr.Error{Message: fmt.Sprintf(
				"Function passed too many arguments. Got %d, Expected %d.", given, total)}
		}

		sym := formals[0].(sexpr.Symbol)
		formals = formals[1:]

		if sym.Name == "&" {
			if len(formals) != 1 {
				return sexpr.Error{Message: "Function format invalid. Symbol '&' not followed by single symbol."}
			}
			rest := formals[0].(sexpr.Symbol)
			fn.Env.Put(rest.Name, sexpr.QExpr{Cells: append([]sexpr.Value(nil), remaining...)})
			formals = nil
			remaining = nil
			break
		}

		val := remaining[0]
		remaining = remaining[1:]
		fn.Env.Put(sym.Name, val)
	}

	if len(formals) > 0 {
		if sym, ok := formals[0].(sexpr.Symbol); ok && sym.Name == "&" {
			if len(formals) != 2 {
				return sexpr.Error{Message: "Function format invalid. Symbol '&' not followed by single symbol."}
			}
			rest := formals[1].(sexpr.Symbol)
			fn.Env.Put(rest.Name, sexpr.QExpr{})
			formals = nil
		}
	}

	if len(formals) == 0 {
		fn.Env.SetParent(caller)
		bodyAsSExpr := sexpr.SExpr{Cells: append([]sexpr.Value(nil), fn.Body.Cells...)}
		wrapped := sexpr.SExpr{Cells: []sexpr.Value{bodyAsSExpr}}
		return Eval(fn.Env, wrapped)
	}

	partial := fn.Copy().(sexpr.Function)
	remainingFormals := sexpr.QExpr{Cells: formals}
	partial.Formals = &remainingFormals
	return partial
}
