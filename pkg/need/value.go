package need

import (
	"fmt"

	"github.com/vic/goneed/pkg/lambda"
)

// Value is a term reduced to weak head normal form.
type Value interface {
	fmt.Stringer
	whnf()
}

// Closure pairs an abstraction body with the environment that was active
// when the abstraction was reached during evaluation. Free variables in
// Body resolve through Env, giving lexical scoping.
type Closure struct {
	Body lambda.Term
	Env  *Env
}

func (c Closure) whnf() {}

func (c Closure) String() string {
	return fmt.Sprintf("<closure %s>", c.Body)
}

// Int is a boxed integer.
type Int struct {
	N int64
}

func (i Int) whnf() {}

func (i Int) String() string {
	return fmt.Sprintf("%d", i.N)
}

// NativeFn is the signature of a host function. The argument arrives as
// an unforced thunk; the function decides whether to demand it.
type NativeFn func(m *Machine, arg *Thunk) (Value, error)

// Native is a host function value. It is applied like a closure and may
// be curried by returning another Native.
type Native struct {
	Name string
	Fn   NativeFn
}

func (n Native) whnf() {}

func (n Native) String() string {
	return fmt.Sprintf("<native %s>", n.Name)
}

// freeVar is a fresh variable injected by Quote, identified by de Bruijn
// level: the number of binders between the root of the readback and its
// introduction.
type freeVar struct {
	level int
}

func (v freeVar) whnf() {}

func (v freeVar) String() string {
	return fmt.Sprintf("<free %d>", v.level)
}

// stuckApp is an application whose head is a quote-injected variable and
// therefore cannot reduce further.
type stuckApp struct {
	fun Value
	arg *Thunk
}

func (s stuckApp) whnf() {}

func (s stuckApp) String() string {
	return fmt.Sprintf("<stuck %s>", s.fun)
}
