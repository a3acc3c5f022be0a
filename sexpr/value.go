// Package sexpr defines Lispy's value model: a tagged union of the
// data a running program can produce, with deep-copy and structural
// equality semantics that the evaluator and environment both rely on.
package sexpr

import (
	"fmt"
	"reflect"
)

// Value is the interface every Lispy datum satisfies.
type Value interface {
	// String renders the value the way the REPL prints it.
	String() string
	// Type returns the human-readable variant name used in error messages.
	Type() string
	// Copy produces an independent value structurally equal to the receiver.
	Copy() Value
}

// Number is a signed 64-bit integer literal or arithmetic result.
type Number struct {
	Val int64
}

func (n Number) String() string { return fmt.Sprintf("%d", n.Val) }
func (n Number) Type() string   { return "Number" }
func (n Number) Copy() Value    { return Number{Val: n.Val} }

// Error is a failure carried as a first-class value.
type Error struct {
	Message string
}

func (e Error) String() string { return "Error: " + e.Message }
func (e Error) Type() string   { return "Error" }
func (e Error) Copy() Value    { return Error{Message: e.Message} }

// Symbol is an unresolved name, looked up against an Environment.
type Symbol struct {
	Name string
}

func (s Symbol) String() string { return s.Name }
func (s Symbol) Type() string   { return "Symbol" }
func (s Symbol) Copy() Value    { return Symbol{Name: s.Name} }

// SExpr is an ordered, executable list: `(head args...)`.
type SExpr struct {
	Cells []Value
}

func (s SExpr) String() string { return "(" + joinValues(s.Cells) + ")" }
func (s SExpr) Type() string   { return "S-Expression" }
func (s SExpr) Copy() Value    { return SExpr{Cells: copyCells(s.Cells)} }

// QExpr is a quoted list: an inert data literal never auto-evaluated.
type QExpr struct {
	Cells []Value
}

func (q QExpr) String() string { return "{" + joinValues(q.Cells) + "}" }
func (q QExpr) Type() string   { return "Q-Expression" }
func (q QExpr) Copy() Value    { return QExpr{Cells: copyCells(q.Cells)} }

// Termination is the sentinel the `exit` built-in returns; it signals
// the REPL driver to end the session.
type Termination struct{}

func (Termination) String() string { return "<termination>" }
func (Termination) Type() string   { return "Termination" }
func (Termination) Copy() Value    { return Termination{} }

// Builtin is the signature every primitive function implements. The
// implementation takes ownership of args: it is never touched again by
// the caller after the call returns.
type Builtin func(env *Environment, args *SExpr) Value

// Function is first-class procedure value. It is either built-in
// (Builtin non-nil) or user-defined (Formals, Body and Env non-nil);
// never both.
type Function struct {
	// Name identifies a built-in for error messages and equality; it is
	// informational only for user-defined functions.
	Name string

	Builtin Builtin

	Formals *QExpr
	Body    *QExpr
	Env     *Environment
}

// IsBuiltin reports whether f carries a host implementation rather
// than formals/body/env.
func (f Function) IsBuiltin() bool { return f.Builtin != nil }

func (f Function) String() string {
	if f.IsBuiltin() {
		return "<builtin>"
	}
	formals := "{}"
	if f.Formals != nil {
		formals = f.Formals.String()
	}
	body := ""
	if f.Body != nil {
		body = f.Body.String()
	}
	return "(\\ " + formals + " " + body + ")"
}

func (f Function) Type() string { return "Function" }

func (f Function) Copy() Value {
	if f.IsBuiltin() {
		return Function{Name: f.Name, Builtin: f.Builtin}
	}
	out := Function{Name: f.Name}
	if f.Formals != nil {
		formals := f.Formals.Copy().(QExpr)
		out.Formals = &formals
	}
	if f.Body != nil {
		body := f.Body.Copy().(QExpr)
		out.Body = &body
	}
	if f.Env != nil {
		out.Env = f.Env.Copy()
	}
	return out
}

// Equal implements the structural equality rules of the value model:
// same variant, same shape, and for Function either the same built-in
// reference or structurally equal formals and body (captured
// environments are never compared).
func Equal(a, b Value) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if a.Type() != b.Type() {
		return false
	}
	switch av := a.(type) {
	case Number:
		return av.Val == b.(Number).Val
	case Error:
		return av.Message == b.(Error).Message
	case Symbol:
		return av.Name == b.(Symbol).Name
	case SExpr:
		return equalCells(av.Cells, b.(SExpr).Cells)
	case QExpr:
		return equalCells(av.Cells, b.(QExpr).Cells)
	case Termination:
		return true
	case Function:
		return equalFunction(av, b.(Function))
	default:
		return false
	}
}

func equalFunction(a, b Function) bool {
	if a.IsBuiltin() || b.IsBuiltin() {
		if !a.IsBuiltin() || !b.IsBuiltin() {
			return false
		}
		return reflect.ValueOf(a.Builtin).Pointer() == reflect.ValueOf(b.Builtin).Pointer()
	}
	if a.Formals == nil || b.Formals == nil || a.Body == nil || b.Body == nil {
		return a.Formals == nil && b.Formals == nil && a.Body == nil && b.Body == nil
	}
	return Equal(*a.Formals, *b.Formals) && Equal(*a.Body, *b.Body)
}

func equalCells(a, b []Value) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !Equal(a[i], b[i]) {
			return false
		}
	}
	return true
}

func copyCells(cells []Value) []Value {
	if cells == nil {
		return nil
	}
	out := make([]Value, len(cells))
	for i, c := range cells {
		out[i] = c.Copy()
	}
	return out
}

func joinValues(cells []Value) string {
	s := ""
	for i, c := range cells {
		if i > 0 {
			s += " "
		}
		s += c.String()
	}
	return s
}
