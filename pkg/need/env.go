package need

// Env is a persistent, structurally shared binding context mapping de
// Bruijn indices to thunks. The nil pointer is the empty environment.
// Extension prepends and never mutates the receiver, so any number of
// closures may share a common suffix. Extension is monotonic and acyclic:
// a binding never refers back to an extension of its own environment
// (SuspendRec ties that knot deliberately and is guarded by black-hole
// detection).
type Env struct {
	head *Thunk
	tail *Env
	size int
}

// Extend returns a new environment with th bound at index 0 and the
// receiver as the shared tail. O(1), the receiver is left untouched.
func (e *Env) Extend(th *Thunk) *Env {
	size := 1
	if e != nil {
		size += e.size
	}
	return &Env{head: th, tail: e, size: size}
}

// Len reports the number of bindings.
func (e *Env) Len() int {
	if e == nil {
		return 0
	}
	return e.size
}

// Lookup returns the thunk bound at the given de Bruijn index.
func (e *Env) Lookup(index int) (*Thunk, error) {
	if index < 0 || e == nil || index >= e.size {
		return nil, &UnboundVariableError{Index: index}
	}
	cur := e
	for i := 0; i < index; i++ {
		cur = cur.tail
	}
	return cur.head, nil
}
