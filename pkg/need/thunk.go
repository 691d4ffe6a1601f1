package need

import "github.com/vic/goneed/pkg/lambda"

type thunkState int

const (
	thunkUnevaluated thunkState = iota
	thunkInProgress
	thunkEvaluated
)

// Thunk is a shared mutable memo cell: either a pending computation (a
// body plus its captured environment) or an already-computed value. Every
// environment slot and closure capture holding the same *Thunk observes
// the same terminal value, computed exactly once. State transitions are
// strictly one-directional: Unevaluated -> InProgress -> Evaluated.
type Thunk struct {
	state thunkState
	body  lambda.Term // valid while state != thunkEvaluated
	env   *Env        // environment captured at suspension
	value Value       // valid once state == thunkEvaluated
}

// Evaluated reports whether the thunk has reached its terminal state.
func (t *Thunk) Evaluated() bool {
	return t.state == thunkEvaluated
}

// Memo returns the memoized value, if the thunk has one.
func (t *Thunk) Memo() (Value, bool) {
	if t.state != thunkEvaluated {
		return nil, false
	}
	return t.value, true
}

// Suspend captures body and env as an unevaluated thunk. No reduction
// happens until the thunk is first forced.
func (m *Machine) Suspend(body lambda.Term, env *Env) *Thunk {
	m.statSuspend++
	m.recordTrace(StepSuspend, body, env.Len())
	return &Thunk{state: thunkUnevaluated, body: body, env: env}
}

// SuspendRec builds a recursive binding: the thunk's environment is env
// extended with the thunk itself at index 0, so Var(0) inside body refers
// to the binding under construction. A body that demands its own value
// before producing one is caught by black-hole detection in Force.
func (m *Machine) SuspendRec(body lambda.Term, env *Env) *Thunk {
	m.statSuspend++
	m.recordTrace(StepSuspend, body, env.Len()+1)
	th := &Thunk{state: thunkUnevaluated, body: body}
	th.env = env.Extend(th)
	return th
}

// FromValue wraps an already-computed value as an evaluated thunk.
func (m *Machine) FromValue(v Value) *Thunk {
	return &Thunk{state: thunkEvaluated, value: v}
}

// Force demands the value of a thunk: the memoized result on the fast
// path, ErrDivergentThunk if the thunk is already being forced, and
// otherwise a full evaluation of the suspended body whose result is
// written back into the cell.
func (m *Machine) Force(th *Thunk) (Value, error) {
	switch th.state {
	case thunkEvaluated:
		m.statMemoHit++
		m.recordTrace(StepMemoHit, th.body, th.env.Len())
		return th.value, nil
	case thunkInProgress:
		return nil, ErrDivergentThunk
	}

	m.statForce++
	m.recordTrace(StepForce, th.body, th.env.Len())
	th.state = thunkInProgress
	v, err := m.Eval(th.body, th.env)
	if err != nil {
		// The cell stays InProgress; a failed binding is never retried.
		return nil, err
	}
	th.state = thunkEvaluated
	th.value = v
	th.body = nil
	th.env = nil
	return v, nil
}
