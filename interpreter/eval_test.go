package interpreter

import (
	"testing"

	"github.com/clisp-lang/clisp/sexpr"
)

func num(n int64) sexpr.Value { return sexpr.Number{Val: n} }
func sym(name string) sexpr.Value { return sexpr.Symbol{Name: name} }

func sexprOf(cells ...sexpr.Value) sexpr.SExpr { return sexpr.SExpr{Cells: cells} }
func qexprOf(cells ...sexpr.Value) sexpr.QExpr { return sexpr.QExpr{Cells: cells} }

func newGlobalEnv() *sexpr.Environment {
	env := sexpr.NewEnvironment(nil)
	LoadPrimitives(env)
	return env
}

func TestEvalSelfEvaluating(t *testing.T) {
	env := newGlobalEnv()

	if got := Eval(env, num(5)); !sexpr.Equal(got, num(5)) {
		t.Errorf("Eval(Number) = %v, want 5", got)
	}

	q := qexprOf(num(1), num(2))
	if got := Eval(env, q); !sexpr.Equal(got, q) {
		t.Errorf("Eval(QExpr) never evaluates its children: got %v, want %v", got, q)
	}
}

func TestEvalUnboundSymbol(t *testing.T) {
	env := newGlobalEnv()
	got := Eval(env, sym("nope"))
	if _, ok := got.(sexpr.Error); !ok {
		t.Fatalf("expected Error for unbound symbol, got %v", got)
	}
}

func TestEvalArithmetic(t *testing.T) {
	env := newGlobalEnv()
	result := Eval(env, sexprOf(sym("+"), num(1), num(2), num(3)))
	if !sexpr.Equal(result, num(6)) {
		t.Errorf("+ 1 2 3 = %v, want 6", result)
	}
}

func TestEvalEmptySExprIsUnit(t *testing.T) {
	env := newGlobalEnv()
	result := Eval(env, sexprOf())
	if !sexpr.Equal(result, sexprOf()) {
		t.Errorf("eval(()) = %v, want ()", result)
	}
}

func TestEvalLoneNonFunctionUnwraps(t *testing.T) {
	env := newGlobalEnv()
	result := Eval(env, sexprOf(num(5)))
	if !sexpr.Equal(result, num(5)) {
		t.Errorf("eval((5)) = %v, want 5", result)
	}
}

func TestEvalNonFunctionHeadIsError(t *testing.T) {
	env := newGlobalEnv()
	result := Eval(env, sexprOf(num(1), num(2)))
	errVal, ok := result.(sexpr.Error)
	if !ok {
		t.Fatalf("expected Error, got %v", result)
	}
	want := "S-expression does not start with Function. Got Number, Expected Function."
	if errVal.Message != want {
		t.Errorf("got message %q, want %q", errVal.Message, want)
	}
}

func TestEvalErrorShortCircuits(t *testing.T) {
	env := newGlobalEnv()
	// / 7 0 produces an Error child inside a larger s-expression.
	result := Eval(env, sexprOf(sym("+"), sexprOf(sym("/"), num(7), num(0)), num(1)))
	errVal, ok := result.(sexpr.Error)
	if !ok {
		t.Fatalf("expected Error, got %v", result)
	}
	if errVal.Message != "Division By Zero!" {
		t.Errorf("got %q, want %q", errVal.Message, "Division By Zero!")
	}
}

func TestEvalQuoteNeverEvaluatesUntilEval(t *testing.T) {
	env := newGlobalEnv()
	quoted := qexprOf(sym("+"), num(40), num(2))

	notEvaluated := Eval(env, quoted)
	if !sexpr.Equal(notEvaluated, quoted) {
		t.Fatalf("bare QExpr must not evaluate its contents: got %v", notEvaluated)
	}

	evaluated := Eval(env, sexprOf(sym("eval"), quoted))
	if !sexpr.Equal(evaluated, num(42)) {
		t.Fatalf("eval {+ 40 2} = %v, want 42", evaluated)
	}
}

func TestEvalIfOnlyEvaluatesChosenBranch(t *testing.T) {
	env := newGlobalEnv()
	result := Eval(env, sexprOf(
		sym("if"),
		sexprOf(sym(">"), num(3), num(2)),
		qexprOf(sym("+"), num(1), num(1)),
		qexprOf(sym("/"), num(1), num(0)), // would error if evaluated
	))
	if !sexpr.Equal(result, num(2)) {
		t.Errorf("if (> 3 2) {+ 1 1} {/ 1 0} = %v, want 2", result)
	}
}

func TestEvalLambdaAndDef(t *testing.T) {
	env := newGlobalEnv()

	defResult := Eval(env, sexprOf(
		sym("def"),
		qexprOf(sym("sq")),
		sexprOf(sym("\\"), qexprOf(sym("x")), qexprOf(sym("*"), sym("x"), sym("x"))),
	))
	if !sexpr.Equal(defResult, sexprOf()) {
		t.Fatalf("def returns unit, got %v", defResult)
	}

	call := Eval(env, sexprOf(sym("sq"), num(7)))
	if !sexpr.Equal(call, num(49)) {
		t.Errorf("sq 7 = %v, want 49", call)
	}
}

func TestEvalPartialApplication(t *testing.T) {
	env := newGlobalEnv()
	lambda := sexprOf(sym("\\"), qexprOf(sym("x"), sym("y")), qexprOf(sym("+"), sym("x"), sym("y")))

	partial := Eval(env, sexprOf(lambda, num(10)))
	fn, ok := partial.(sexpr.Function)
	if !ok {
		t.Fatalf("expected partial application to be a Function, got %v", partial)
	}
	if len(fn.Formals.Cells) != 1 {
		t.Fatalf("expected 1 remaining formal, got %d", len(fn.Formals.Cells))
	}

	full := Eval(env, sexprOf(partial, num(20)))
	if !sexpr.Equal(full, num(30)) {
		t.Errorf("(f 10) 20 = %v, want 30", full)
	}
}

func TestEvalVariadic(t *testing.T) {
	env := newGlobalEnv()
	Eval(env, sexprOf(
		sym("def"),
		qexprOf(sym("g")),
		sexprOf(sym("\\"), qexprOf(sym("x"), sym("&"), sym("rest")), qexprOf(sym("cons"), sym("x"), sym("rest"))),
	))

	full := Eval(env, sexprOf(sym("g"), num(1), num(2), num(3)))
	if !sexpr.Equal(full, qexprOf(num(1), num(2), num(3))) {
		t.Errorf("(g 1 2 3) = %v, want {1 2 3}", full)
	}

	defaultTail := Eval(env, sexprOf(sym("g"), num(1)))
	if !sexpr.Equal(defaultTail, qexprOf(num(1))) {
		t.Errorf("(g 1) = %v, want {1}", defaultTail)
	}
}
