package need

import (
	"fmt"

	"github.com/vic/goneed/pkg/lambda"
)

// Quote reads a value back into a term in full normal form. Eval alone
// stops at WHNF; Quote normalizes under binders by applying each closure
// to a fresh variable, evaluating the body, and rebuilding the open
// result with correct de Bruijn indices.
func (m *Machine) Quote(v Value) (lambda.Term, error) {
	return m.quoteAt(v, 0)
}

// Normalize reduces term to full normal form in the empty environment.
func (m *Machine) Normalize(term lambda.Term) (lambda.Term, error) {
	v, err := m.Evaluate(term)
	if err != nil {
		return nil, err
	}
	return m.Quote(v)
}

func (m *Machine) quoteAt(v Value, depth int) (lambda.Term, error) {
	switch val := v.(type) {
	case Closure:
		fresh := m.FromValue(freeVar{level: depth})
		body, err := m.Eval(val.Body, val.Env.Extend(fresh))
		if err != nil {
			return nil, err
		}
		inner, err := m.quoteAt(body, depth+1)
		if err != nil {
			return nil, err
		}
		return lambda.Abs{Body: inner}, nil

	case Int:
		return lambda.Lit{N: val.N}, nil

	case freeVar:
		// Levels count binders from the outside; indices count from the
		// point of use.
		return lambda.Var{Index: depth - val.level - 1}, nil

	case stuckApp:
		fun, err := m.quoteAt(val.fun, depth)
		if err != nil {
			return nil, err
		}
		argV, err := m.Force(val.arg)
		if err != nil {
			return nil, err
		}
		arg, err := m.quoteAt(argV, depth)
		if err != nil {
			return nil, err
		}
		return lambda.App{Fun: fun, Arg: arg}, nil

	case Native:
		return nil, fmt.Errorf("cannot quote native %s", val.Name)

	default:
		panic(fmt.Sprintf("unknown value type %T", v))
	}
}
