package need

import (
	"errors"
	"testing"

	"github.com/vic/goneed/pkg/lambda"
)

// countingNative returns a native that bumps counter when applied and
// yields the identity closure, so its result can be applied further.
func countingNative(counter *int) Native {
	return Native{Name: "tick", Fn: func(m *Machine, arg *Thunk) (Value, error) {
		*counter++
		return Closure{Body: lambda.Variable(0)}, nil
	}}
}

// TestSuspendIsLazy checks that suspension performs no work and that
// forcing the same cell through two references computes exactly once.
func TestSuspendIsLazy(t *testing.T) {
	m := NewMachine()
	var count int
	env := (*Env)(nil).Extend(m.FromValue(countingNative(&count)))

	// tick 0 — evaluating the body calls the native once.
	th := m.Suspend(lambda.Application(lambda.Variable(0), lambda.Integer(0)), env)
	if count != 0 {
		t.Fatalf("suspension evaluated the body: count = %d", count)
	}

	ref1, ref2 := th, th
	v1, err := m.Force(ref1)
	if err != nil {
		t.Fatalf("first force: %v", err)
	}
	v2, err := m.Force(ref2)
	if err != nil {
		t.Fatalf("second force: %v", err)
	}
	if count != 1 {
		t.Errorf("body evaluated %d times, want 1", count)
	}
	if v1 != v2 {
		t.Errorf("forces disagree: %s vs %s", v1, v2)
	}

	stats := m.GetStats()
	if stats.Forces != 1 {
		t.Errorf("Forces = %d, want 1", stats.Forces)
	}
	// One hit for the native binding inside the body, one for the second
	// force of th itself.
	if stats.MemoHits != 2 {
		t.Errorf("MemoHits = %d, want 2", stats.MemoHits)
	}
}

// TestForceStateTransition checks the one-directional state machine:
// Unevaluated before the first force, Evaluated after, value retained.
func TestForceStateTransition(t *testing.T) {
	m := NewMachine()
	th := m.Suspend(lambda.Integer(7), nil)

	if th.Evaluated() {
		t.Fatal("fresh thunk reports Evaluated")
	}
	if _, ok := th.Memo(); ok {
		t.Fatal("fresh thunk has a memoized value")
	}

	v, err := m.Force(th)
	if err != nil {
		t.Fatalf("force: %v", err)
	}
	if !th.Evaluated() {
		t.Error("forced thunk does not report Evaluated")
	}
	memo, ok := th.Memo()
	if !ok || memo != v {
		t.Errorf("Memo() = %v, %v; want %v, true", memo, ok, v)
	}
}

// TestFromValue checks that wrapping a value skips evaluation entirely.
func TestFromValue(t *testing.T) {
	m := NewMachine()
	th := m.FromValue(Int{N: 9})

	v, err := m.Force(th)
	if err != nil {
		t.Fatalf("force: %v", err)
	}
	if v != (Int{N: 9}) {
		t.Errorf("value = %s, want 9", v)
	}
	if stats := m.GetStats(); stats.Forces != 0 {
		t.Errorf("Forces = %d, want 0", stats.Forces)
	}
}

// TestBlackHoleDirect checks that let rec x = x is detected as a
// divergent thunk instead of recursing forever.
func TestBlackHoleDirect(t *testing.T) {
	m := NewMachine()
	th := m.SuspendRec(lambda.Variable(0), nil)

	_, err := m.Force(th)
	if !errors.Is(err, ErrDivergentThunk) {
		t.Fatalf("error = %v, want ErrDivergentThunk", err)
	}
}

// TestBlackHoleIndirect checks detection through an intervening beta
// step: let rec x = (λy. y) x still demands x during its own forcing.
func TestBlackHoleIndirect(t *testing.T) {
	m := NewMachine()
	th := m.SuspendRec(lambda.Application(lambda.Identity, lambda.Variable(0)), nil)

	_, err := m.Force(th)
	if !errors.Is(err, ErrDivergentThunk) {
		t.Fatalf("error = %v, want ErrDivergentThunk", err)
	}
}

// TestFailedThunkStaysBlackHoled checks that a binding whose evaluation
// failed is not retried: later forces observe the black hole.
func TestFailedThunkStaysBlackHoled(t *testing.T) {
	m := NewMachine()
	th := m.Suspend(lambda.Variable(9), nil)

	_, err := m.Force(th)
	var unbound *UnboundVariableError
	if !errors.As(err, &unbound) || unbound.Index != 9 {
		t.Fatalf("first force error = %v, want UnboundVariable(9)", err)
	}

	_, err = m.Force(th)
	if !errors.Is(err, ErrDivergentThunk) {
		t.Fatalf("second force error = %v, want ErrDivergentThunk", err)
	}
}

// TestGuardIsNotADepthLimit checks that deep but well-founded forcing
// chains succeed: InProgress observation means self-reference only.
func TestGuardIsNotADepthLimit(t *testing.T) {
	m := NewMachine()

	// let x0 = 1; let x1 = x0; ... let x99 = x98; x99
	term := lambda.Term(lambda.Variable(0))
	for i := 0; i < 99; i++ {
		term = lambda.LetIn(lambda.Variable(0), term)
	}
	term = lambda.LetIn(lambda.Integer(1), term)

	v, err := m.Evaluate(term)
	if err != nil {
		t.Fatalf("evaluate: %v", err)
	}
	if v != (Int{N: 1}) {
		t.Errorf("value = %s, want 1", v)
	}
}
