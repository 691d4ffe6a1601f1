package need

import (
	"fmt"

	"github.com/edwingeng/deque"

	"github.com/vic/goneed/pkg/lambda"
)

// Machine reduces terms to weak head normal form under call-by-need:
// arguments are suspended as thunks when applications are unwound and
// forced at most once, with the memoized result shared by every holder.
// A Machine is single-threaded; evaluation is deterministic for a given
// term and environment.
type Machine struct {
	// Stats
	steps       uint64
	statBeta    uint64
	statLookup  uint64
	statForce   uint64
	statMemoHit uint64
	statSuspend uint64
	statNative  uint64

	traceBuf []TraceEvent
	traceCap uint64
	traceIdx uint64
	traceOn  bool
}

// Stats holds reduction statistics.
type Stats struct {
	TotalSteps  uint64
	Beta        uint64
	Lookups     uint64
	Forces      uint64
	MemoHits    uint64
	Suspensions uint64
	NativeCalls uint64
}

func NewMachine() *Machine {
	return &Machine{}
}

func (m *Machine) GetStats() Stats {
	return Stats{
		TotalSteps:  m.steps,
		Beta:        m.statBeta,
		Lookups:     m.statLookup,
		Forces:      m.statForce,
		MemoHits:    m.statMemoHit,
		Suspensions: m.statSuspend,
		NativeCalls: m.statNative,
	}
}

// Evaluate reduces term to WHNF in the empty environment.
func (m *Machine) Evaluate(term lambda.Term) (Value, error) {
	return m.Eval(term, nil)
}

// Eval reduces term to WHNF in env. Pending arguments are kept on an
// explicit spine deque instead of the Go call stack, so applicative
// chains of any depth cost constant stack; the only recursion left is
// through Force. Abstractions are returned as closures without reducing
// under the binder.
func (m *Machine) Eval(term lambda.Term, env *Env) (Value, error) {
	spine := deque.NewDeque() // pending argument thunks, innermost last

	for {
		m.steps++
		switch t := term.(type) {
		case lambda.App:
			// The argument is captured, not evaluated. Nothing forces it
			// until a variable lookup actually demands its value.
			spine.PushBack(m.Suspend(t.Arg, env))
			term = t.Fun

		case lambda.Let:
			// let v; b -> (λ b) v
			term = lambda.App{Fun: lambda.Abs{Body: t.Body}, Arg: t.Val}

		case lambda.Abs:
			if spine.Empty() {
				return Closure{Body: t.Body, Env: env}, nil
			}
			arg := spine.PopBack().(*Thunk)
			env = env.Extend(arg)
			term = t.Body
			m.statBeta++
			m.recordTrace(StepBeta, t.Body, env.Len())

		case lambda.Var:
			m.statLookup++
			m.recordTrace(StepLookup, t, env.Len())
			th, err := env.Lookup(t.Index)
			if err != nil {
				return nil, err
			}
			v, err := m.Force(th)
			if err != nil {
				return nil, err
			}
			done, next, nextEnv, err := m.applyValue(v, spine)
			if err != nil {
				return nil, err
			}
			if done != nil {
				return done, nil
			}
			term, env = next, nextEnv

		case lambda.Lit:
			done, next, nextEnv, err := m.applyValue(Int{N: t.N}, spine)
			if err != nil {
				return nil, err
			}
			if done != nil {
				return done, nil
			}
			term, env = next, nextEnv

		default:
			panic(fmt.Sprintf("unknown term type %T", term))
		}
	}
}

// applyValue applies v to the pending argument spine. It returns either a
// final value (spine exhausted, or a native/stuck chain that consumed it)
// or the next body and environment to keep reducing (a closure met an
// argument).
func (m *Machine) applyValue(v Value, spine deque.Deque) (Value, lambda.Term, *Env, error) {
	for {
		if spine.Empty() {
			return v, nil, nil, nil
		}
		switch f := v.(type) {
		case Closure:
			arg := spine.PopBack().(*Thunk)
			ext := f.Env.Extend(arg)
			m.statBeta++
			m.recordTrace(StepBeta, f.Body, ext.Len())
			return nil, f.Body, ext, nil

		case Native:
			arg := spine.PopBack().(*Thunk)
			m.statNative++
			m.recordTrace(StepNative, nil, 0)
			res, err := f.Fn(m, arg)
			if err != nil {
				return nil, nil, nil, err
			}
			v = res

		case freeVar, stuckApp:
			// Only reachable during Quote readback, which injects fresh
			// variables under binders. In plain evaluation every head is
			// a closure, a native, or a NotAFunction failure.
			arg := spine.PopBack().(*Thunk)
			m.recordTrace(StepStuck, nil, 0)
			v = stuckApp{fun: v, arg: arg}

		default:
			return nil, nil, nil, &NotAFunctionError{Value: v}
		}
	}
}
