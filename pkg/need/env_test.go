package need

import (
	"errors"
	"testing"

	"github.com/vic/goneed/pkg/lambda"
)

// TestEmptyEnvironment checks that the nil environment has no bindings
// and reports UnboundVariable for any index.
func TestEmptyEnvironment(t *testing.T) {
	var env *Env
	if env.Len() != 0 {
		t.Errorf("Len() = %d, want 0", env.Len())
	}
	_, err := env.Lookup(0)
	var unbound *UnboundVariableError
	if !errors.As(err, &unbound) {
		t.Fatalf("Lookup(0) error = %v, want UnboundVariableError", err)
	}
	if unbound.Index != 0 {
		t.Errorf("Index = %d, want 0", unbound.Index)
	}
}

// TestExtendAndLookup checks that extension prepends at index 0 and that
// earlier bindings shift outward.
func TestExtendAndLookup(t *testing.T) {
	m := NewMachine()
	a := m.Suspend(lambda.Integer(1), nil)
	b := m.Suspend(lambda.Integer(2), nil)

	env := (*Env)(nil).Extend(a).Extend(b)
	if env.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", env.Len())
	}

	got, err := env.Lookup(0)
	if err != nil || got != b {
		t.Errorf("Lookup(0) = %v, %v; want b", got, err)
	}
	got, err = env.Lookup(1)
	if err != nil || got != a {
		t.Errorf("Lookup(1) = %v, %v; want a", got, err)
	}

	if _, err := env.Lookup(2); err == nil {
		t.Error("Lookup(2) succeeded on a 2-binding environment")
	}
	if _, err := env.Lookup(-1); err == nil {
		t.Error("Lookup(-1) succeeded")
	}
}

// TestExtendSharesStructure checks that extension never mutates the
// receiver: two extensions of the same environment share its bindings as
// a common suffix, and the original keeps its length.
func TestExtendSharesStructure(t *testing.T) {
	m := NewMachine()
	a := m.Suspend(lambda.Integer(1), nil)
	b := m.Suspend(lambda.Integer(2), nil)
	c := m.Suspend(lambda.Integer(3), nil)

	base := (*Env)(nil).Extend(a)
	left := base.Extend(b)
	right := base.Extend(c)

	if base.Len() != 1 {
		t.Errorf("base.Len() = %d after extensions, want 1", base.Len())
	}

	lb, _ := left.Lookup(1)
	rb, _ := right.Lookup(1)
	if lb != a || rb != a {
		t.Error("extensions do not share the common suffix binding")
	}
	if l0, _ := left.Lookup(0); l0 != b {
		t.Error("left extension lost its own binding")
	}
	if r0, _ := right.Lookup(0); r0 != c {
		t.Error("right extension lost its own binding")
	}
}
