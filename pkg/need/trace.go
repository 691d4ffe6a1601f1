package need

import "github.com/vic/goneed/pkg/lambda"

// StepKind identifies the kind of reduction step recorded in the trace.
type StepKind int

const (
	StepUnknown StepKind = iota
	StepBeta
	StepLookup
	StepForce
	StepMemoHit
	StepSuspend
	StepNative
	StepStuck
)

func (k StepKind) String() string {
	switch k {
	case StepBeta:
		return "Beta"
	case StepLookup:
		return "Lookup"
	case StepForce:
		return "Force"
	case StepMemoHit:
		return "MemoHit"
	case StepSuspend:
		return "Suspend"
	case StepNative:
		return "Native"
	case StepStuck:
		return "Stuck"
	default:
		return "Unknown"
	}
}

// TraceEvent records a single step of the reduction.
type TraceEvent struct {
	Step   uint64
	Kind   StepKind
	Term   string
	EnvLen int
}

// EnableTrace starts recording reduction steps into a buffer of the given
// capacity. Steps beyond the capacity are counted but not stored.
func (m *Machine) EnableTrace(capacity int) {
	if capacity <= 0 {
		capacity = 1
	}
	m.traceBuf = make([]TraceEvent, capacity)
	m.traceCap = uint64(capacity)
	m.traceIdx = 0
	m.traceOn = true
}

// DisableTrace stops recording.
func (m *Machine) DisableTrace() {
	m.traceOn = false
}

// TraceSnapshot returns a copy of the recorded events.
func (m *Machine) TraceSnapshot() []TraceEvent {
	if !m.traceOn {
		return nil
	}
	count := m.traceIdx
	if count > m.traceCap {
		count = m.traceCap
	}
	res := make([]TraceEvent, count)
	copy(res, m.traceBuf[:count])
	return res
}

func (m *Machine) recordTrace(kind StepKind, term lambda.Term, envLen int) {
	if !m.traceOn || m.traceCap == 0 {
		return
	}
	idx := m.traceIdx
	m.traceIdx++
	if idx >= m.traceCap {
		return
	}
	var rendered string
	if term != nil {
		rendered = term.String()
	}
	m.traceBuf[idx] = TraceEvent{
		Step:   idx,
		Kind:   kind,
		Term:   rendered,
		EnvLen: envLen,
	}
}
