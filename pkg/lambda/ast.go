package lambda

import "fmt"

// Term represents a lambda calculus term. Binders are anonymous and
// variables use de Bruijn indices, so terms are capture-free by
// construction. Terms are immutable and structurally shared.
type Term interface {
	String() string
}

// Var represents a variable usage. Index counts binders outward from the
// point of use: 0 is the innermost enclosing binder.
type Var struct {
	Index int
}

func (v Var) String() string {
	return fmt.Sprintf("#%d", v.Index)
}

// Abs represents an abstraction (lambda). The bound variable is index 0
// inside Body.
type Abs struct {
	Body Term
}

func (a Abs) String() string {
	return fmt.Sprintf("(λ %s)", a.Body)
}

// App represents an application.
type App struct {
	Fun Term
	Arg Term
}

func (a App) String() string {
	return fmt.Sprintf("(%s %s)", a.Fun, a.Arg)
}

// Let represents a let binding (sugar for application).
// let Val; Body -> (λ Body) Val
type Let struct {
	Val  Term
	Body Term
}

func (l Let) String() string {
	return fmt.Sprintf("let %s; %s", l.Val, l.Body)
}

// Lit represents a boxed integer literal.
type Lit struct {
	N int64
}

func (l Lit) String() string {
	return fmt.Sprintf("%d", l.N)
}

// Variable builds a de Bruijn variable reference. No range check is
// performed; an unbound index is detected at evaluation time.
func Variable(index int) Term {
	return Var{Index: index}
}

// Abstraction builds a lambda with the given body.
func Abstraction(body Term) Term {
	return Abs{Body: body}
}

// Application builds the application of f to a.
func Application(f, a Term) Term {
	return App{Fun: f, Arg: a}
}

// Integer builds a boxed integer literal.
func Integer(n int64) Term {
	return Lit{N: n}
}

// LetIn builds a let binding, equivalent to
// Application(Abstraction(body), val).
func LetIn(val, body Term) Term {
	return Let{Val: val, Body: body}
}
