package need

import (
	"errors"
	"fmt"
)

// ErrDivergentThunk reports a thunk forced while already being forced: a
// self-referential binding with no productive result (a "black hole").
var ErrDivergentThunk = errors.New("divergent thunk: forced during its own forcing")

// UnboundVariableError reports a de Bruijn index with no corresponding
// binder in the active environment.
type UnboundVariableError struct {
	Index int
}

func (e *UnboundVariableError) Error() string {
	return fmt.Sprintf("unbound variable: index %d", e.Index)
}

// NotAFunctionError reports an application whose head position reduced to
// a value that cannot be applied.
type NotAFunctionError struct {
	Value Value
}

func (e *NotAFunctionError) Error() string {
	return fmt.Sprintf("not a function: %s", e.Value)
}
