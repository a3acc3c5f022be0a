package interpreter

import (
	"fmt"
	"os"

	"github.com/clisp-lang/clisp/sexpr"
)

// LoadPrimitives registers the prelude of built-in functions into the
// given (global) environment.
func LoadPrimitives(env *sexpr.Environment) {
	register := func(name string, fn sexpr.Builtin) {
		env.Def(name, sexpr.Function{Name: name, Builtin: fn})
	}

	// Arithmetic
	register("+", builtinAdd)
	register("-", builtinSub)
	register("*", builtinMul)
	register("/", builtinDiv)
	register("%", builtinMod)
	register("^", builtinPow)
	register("min", builtinMin)
	register("max", builtinMax)

	// List operations
	register("head", builtinHead)
	register("tail", builtinTail)
	register("list", builtinList)
	register("eval", builtinEval)
	register("join", builtinJoin)
	register("cons", builtinCons)
	register("len", builtinLen)
	register("init", builtinInit)

	// Binding
	register("\\", builtinLambda)
	register("def", builtinDef)
	register("=", builtinPut)

	// Control & comparison
	register("if", builtinIf)
	register(">", builtinGt)
	register("<", builtinLt)
	register(">=", builtinGte)
	register("<=", builtinLte)
	register("==", builtinEqEq)
	register("!=", builtinNeq)

	// Environment / REPL
	register("env", builtinEnv)
	register("exit", builtinExit)
}

// ---- shared error helpers ----

func arityErr(name string, expected, got int) sexpr.Value {
	return sexpr.Error{Message: fmt.Sprintf(
		"%s: wrong number of arguments. Got %d, Expected %d.", name, got, expected)}
}

func typeErr(name string, index int, expected, got string) sexpr.Value {
	return sexpr.Error{Message: fmt.Sprintf(
		"%s: argument %d has wrong type. Got %s, Expected %s.", name, index, got, expected)}
}

func boolToInt(b bool) int64 {
	if b {
		return 1
	}
	return 0
}

func checkAllNumbers(name string, cells []sexpr.Value) ([]int64, sexpr.Value) {
	nums := make([]int64, len(cells))
	for i, c := range cells {
		n, ok := c.(sexpr.Number)
		if !ok {
			return nil, typeErr(name, i, "Number", c.Type())
		}
		nums[i] = n.Val
	}
	return nums, nil
}

// ---- arithmetic ----

func foldArith(name string, args *sexpr.SExpr, op func(acc, x int64) (int64, sexpr.Value), negateOnUnary bool) sexpr.Value {
	cells := args.Cells
	if len(cells) == 0 {
		return sexpr.Error{Message: fmt.Sprintf("%s: requires at least 1 argument, got 0.", name)}
	}
	nums, errv := checkAllNumbers(name, cells)
	if errv != nil {
		return errv
	}

	acc := nums[0]
	if len(nums) == 1 {
		if negateOnUnary {
			return sexpr.Number{Val: -acc}
		}
		return sexpr.Number{Val: acc}
	}

	for _, x := range nums[1:] {
		r, errv := op(acc, x)
		if errv != nil {
			return errv
		}
		acc = r
	}
	return sexpr.Number{Val: acc}
}

func builtinAdd(_ *sexpr.Environment, args *sexpr.SExpr) sexpr.Value {
	return foldArith("+", args, func(acc, x int64) (int64, sexpr.Value) { return acc + x, nil }, false)
}

func builtinSub(_ *sexpr.Environment, args *sexpr.SExpr) sexpr.Value {
	return foldArith("-", args, func(acc, x int64) (int64, sexpr.Value) { return acc - x, nil }, true)
}

func builtinMul(_ *sexpr.Environment, args *sexpr.SExpr) sexpr.Value {
	return foldArith("*", args, func(acc, x int64) (int64, sexpr.Value) { return acc * x, nil }, false)
}

func builtinDiv(_ *sexpr.Environment, args *sexpr.SExpr) sexpr.Value {
	return foldArith("/", args, func(acc, x int64) (int64, sexpr.Value) {
		if x == 0 {
			return 0, sexpr.Error{Message: "Division By Zero!"}
		}
		return acc / x, nil
	}, false)
}

func builtinMod(_ *sexpr.Environment, args *sexpr.SExpr) sexpr.Value {
	return foldArith("%", args, func(acc, x int64) (int64, sexpr.Value) {
		if x == 0 {
			return 0, sexpr.Error{Message: "Division By Zero!"}
		}
		return acc % x, nil
	}, false)
}

func builtinPow(_ *sexpr.Environment, args *sexpr.SExpr) sexpr.Value {
	return foldArith("^", args, func(acc, x int64) (int64, sexpr.Value) { return ipow(acc, x), nil }, false)
}

func ipow(base, exp int64) int64 {
	if exp < 0 {
		// Negative exponents are unspecified behavior (spec.md §9).
		return 0
	}
	result := int64(1)
	for i := int64(0); i < exp; i++ {
		result *= base
	}
	return result
}

func foldPairwise(name string, args *sexpr.SExpr, pick func(a, b int64) int64) sexpr.Value {
	cells := args.Cells
	if len(cells) == 0 {
		return sexpr.Error{Message: fmt.Sprintf("%s: requires at least 1 argument, got 0.", name)}
	}
	nums, errv := checkAllNumbers(name, cells)
	if errv != nil {
		return errv
	}
	acc := nums[0]
	for _, x := range nums[1:] {
		acc = pick(acc, x)
	}
	return sexpr.Number{Val: acc}
}

func builtinMin(_ *sexpr.Environment, args *sexpr.SExpr) sexpr.Value {
	return foldPairwise("min", args, func(a, b int64) int64 {
		if a < b {
			return a
		}
		return b
	})
}

func builtinMax(_ *sexpr.Environment, args *sexpr.SExpr) sexpr.Value {
	return foldPairwise("max", args, func(a, b int64) int64 {
		if a > b {
			return a
		}
		return b
	})
}

// ---- list operations ----

func builtinHead(_ *sexpr.Environment, args *sexpr.SExpr) sexpr.Value {
	if len(args.Cells) != 1 {
		return arityErr("head", 1, len(args.Cells))
	}
	q, ok := args.Cells[0].(sexpr.QExpr)
	if !ok {
		return typeErr("head", 0, "Q-Expression", args.Cells[0].Type())
	}
	if len(q.Cells) == 0 {
		return sexpr.QExpr{}
	}
	return sexpr.QExpr{Cells: []sexpr.Value{q.Cells[0]}}
}

func builtinTail(_ *sexpr.Environment, args *sexpr.SExpr) sexpr.Value {
	if len(args.Cells) != 1 {
		return arityErr("tail", 1, len(args.Cells))
	}
	q, ok := args.Cells[0].(sexpr.QExpr)
	if !ok {
		return typeErr("tail", 0, "Q-Expression", args.Cells[0].Type())
	}
	if len(q.Cells) == 0 {
		return sexpr.Error{Message: "tail: cannot take tail of empty Q-Expression."}
	}
	return sexpr.QExpr{Cells: append([]sexpr.Value(nil), q.Cells[1:]...)}
}

func builtinList(_ *sexpr.Environment, args *sexpr.SExpr) sexpr.Value {
	return sexpr.QExpr{Cells: append([]sexpr.Value(nil), args.Cells...)}
}

func builtinEval(env *sexpr.Environment, args *sexpr.SExpr) sexpr.Value {
	if len(args.Cells) != 1 {
		return arityErr("eval", 1, len(args.Cells))
	}
	q, ok := args.Cells[0].(sexpr.QExpr)
	if !ok {
		return typeErr("eval", 0, "Q-Expression", args.Cells[0].Type())
	}
	return Eval(env, sexpr.SExpr{Cells: append([]sexpr.Value(nil), q.Cells...)})
}

func builtinJoin(_ *sexpr.Environment, args *sexpr.SExpr) sexpr.Value {
	var out []sexpr.Value
	for i, c := range args.Cells {
		q, ok := c.(sexpr.QExpr)
		if !ok {
			return typeErr("join", i, "Q-Expression", c.Type())
		}
		out = append(out, q.Cells...)
	}
	return sexpr.QExpr{Cells: out}
}

func builtinCons(_ *sexpr.Environment, args *sexpr.SExpr) sexpr.Value {
	if len(args.Cells) != 2 {
		return arityErr("cons", 2, len(args.Cells))
	}
	x := args.Cells[0]
	switch x.(type) {
	case sexpr.Number, sexpr.SExpr, sexpr.QExpr:
	default:
		return typeErr("cons", 0, "Number, S-Expression or Q-Expression", x.Type())
	}
	xs, ok := args.Cells[1].(sexpr.QExpr)
	if !ok {
		return typeErr("cons", 1, "Q-Expression", args.Cells[1].Type())
	}
	cells := make([]sexpr.Value, 0, len(xs.Cells)+1)
	cells = append(cells, x)
	cells = append(cells, xs.Cells...)
	return sexpr.QExpr{Cells: cells}
}

func builtinLen(_ *sexpr.Environment, args *sexpr.SExpr) sexpr.Value {
	if len(args.Cells) != 1 {
		return arityErr("len", 1, len(args.Cells))
	}
	q, ok := args.Cells[0].(sexpr.QExpr)
	if !ok {
		return typeErr("len", 0, "Q-Expression", args.Cells[0].Type())
	}
	return sexpr.Number{Val: int64(len(q.Cells))}
}

func builtinInit(_ *sexpr.Environment, args *sexpr.SExpr) sexpr.Value {
	if len(args.Cells) != 1 {
		return arityErr("init", 1, len(args.Cells))
	}
	q, ok := args.Cells[0].(sexpr.QExpr)
	if !ok {
		return typeErr("init", 0, "Q-Expression", args.Cells[0].Type())
	}
	if len(q.Cells) == 0 {
		return sexpr.Error{Message: "init: cannot take init of empty Q-Expression."}
	}
	return sexpr.QExpr{Cells: append([]sexpr.Value(nil), q.Cells[:len(q.Cells)-1]...)}
}

// ---- binding ----

func builtinLambda(_ *sexpr.Environment, args *sexpr.SExpr) sexpr.Value {
	if len(args.Cells) != 2 {
		return arityErr("\\", 2, len(args.Cells))
	}
	formals, ok := args.Cells[0].(sexpr.QExpr)
	if !ok {
		return typeErr("\\", 0, "Q-Expression", args.Cells[0].Type())
	}
	body, ok := args.Cells[1].(sexpr.QExpr)
	if !ok {
		return typeErr("\\", 1, "Q-Expression", args.Cells[1].Type())
	}

	for i, c := range formals.Cells {
		sym, ok := c.(sexpr.Symbol)
		if !ok {
			return sexpr.Error{Message: fmt.Sprintf(
				"Cannot define non-symbol. Got %s, Expected Symbol.", c.Type())}
		}
		if sym.Name == "&" && i != len(formals.Cells)-2 {
			return sexpr.Error{Message: "Function format invalid. Symbol '&' not followed by single symbol."}
		}
	}

	formalsCopy := formals.Copy().(sexpr.QExpr)
	bodyCopy := body.Copy().(sexpr.QExpr)
	return sexpr.Function{
		Formals: &formalsCopy,
		Body:    &bodyCopy,
		Env:     sexpr.NewEnvironment(nil),
	}
}

func builtinDef(env *sexpr.Environment, args *sexpr.SExpr) sexpr.Value {
	return bindMany("def", env, args, true)
}

func builtinPut(env *sexpr.Environment, args *sexpr.SExpr) sexpr.Value {
	return bindMany("=", env, args, false)
}

func bindMany(name string, env *sexpr.Environment, args *sexpr.SExpr, global bool) sexpr.Value {
	if len(args.Cells) < 1 {
		return arityErr(name, 1, len(args.Cells))
	}
	names, ok := args.Cells[0].(sexpr.QExpr)
	if !ok {
		return typeErr(name, 0, "Q-Expression", args.Cells[0].Type())
	}
	for _, c := range names.Cells {
		if _, ok := c.(sexpr.Symbol); !ok {
			return sexpr.Error{Message: fmt.Sprintf(
				"%s: cannot define non-symbol. Got %s, Expected Symbol.", name, c.Type())}
		}
	}

	values := args.Cells[1:]
	if len(names.Cells) != len(values) {
		return sexpr.Error{Message: fmt.Sprintf(
			"%s: cannot define mismatched number of values to symbols. Got %d, Expected %d.",
			name, len(values), len(names.Cells))}
	}

	for i, c := range names.Cells {
		sym := c.(sexpr.Symbol)
		if global {
			env.Def(sym.Name, values[i])
		} else {
			env.Put(sym.Name, values[i])
		}
	}
	return sexpr.SExpr{}
}

// ---- control & comparison ----

func builtinIf(env *sexpr.Environment, args *sexpr.SExpr) sexpr.Value {
	if len(args.Cells) != 3 {
		return arityErr("if", 3, len(args.Cells))
	}
	cond, ok := args.Cells[0].(sexpr.Number)
	if !ok {
		return typeErr("if", 0, "Number", args.Cells[0].Type())
	}
	thenQ, ok := args.Cells[1].(sexpr.QExpr)
	if !ok {
		return typeErr("if", 1, "Q-Expression", args.Cells[1].Type())
	}
	elseQ, ok := args.Cells[2].(sexpr.QExpr)
	if !ok {
		return typeErr("if", 2, "Q-Expression", args.Cells[2].Type())
	}

	branch := elseQ
	if cond.Val != 0 {
		branch = thenQ
	}
	return Eval(env, sexpr.SExpr{Cells: append([]sexpr.Value(nil), branch.Cells...)})
}

func compareNumbers(name string, args *sexpr.SExpr, cmp func(a, b int64) bool) sexpr.Value {
	if len(args.Cells) != 2 {
		return arityErr(name, 2, len(args.Cells))
	}
	a, ok := args.Cells[0].(sexpr.Number)
	if !ok {
		return typeErr(name, 0, "Number", args.Cells[0].Type())
	}
	b, ok := args.Cells[1].(sexpr.Number)
	if !ok {
		return typeErr(name, 1, "Number", args.Cells[1].Type())
	}
	return sexpr.Number{Val: boolToInt(cmp(a.Val, b.Val))}
}

func builtinGt(_ *sexpr.Environment, args *sexpr.SExpr) sexpr.Value {
	return compareNumbers(">", args, func(a, b int64) bool { return a > b })
}

func builtinLt(_ *sexpr.Environment, args *sexpr.SExpr) sexpr.Value {
	return compareNumbers("<", args, func(a, b int64) bool { return a < b })
}

func builtinGte(_ *sexpr.Environment, args *sexpr.SExpr) sexpr.Value {
	return compareNumbers(">=", args, func(a, b int64) bool { return a >= b })
}

func builtinLte(_ *sexpr.Environment, args *sexpr.SExpr) sexpr.Value {
	return compareNumbers("<=", args, func(a, b int64) bool { return a <= b })
}

func builtinEqEq(_ *sexpr.Environment, args *sexpr.SExpr) sexpr.Value {
	if len(args.Cells) != 2 {
		return arityErr("==", 2, len(args.Cells))
	}
	return sexpr.Number{Val: boolToInt(sexpr.Equal(args.Cells[0], args.Cells[1]))}
}

func builtinNeq(_ *sexpr.Environment, args *sexpr.SExpr) sexpr.Value {
	if len(args.Cells) != 2 {
		return arityErr("!=", 2, len(args.Cells))
	}
	return sexpr.Number{Val: boolToInt(!sexpr.Equal(args.Cells[0], args.Cells[1]))}
}

// ---- environment / REPL ----

func builtinEnv(env *sexpr.Environment, _ *sexpr.SExpr) sexpr.Value {
	for _, name := range env.Names() {
		v, err := env.Lookup(name)
		if err != nil {
			continue
		}
		fmt.Fprintf(os.Stdout, "%s %s\n", name, v.String())
	}
	return sexpr.SExpr{}
}

func builtinExit(_ *sexpr.Environment, _ *sexpr.SExpr) sexpr.Value {
	return sexpr.Termination{}
}
