package thames

import "fmt"

// Kind enumerates the taxonomy of propagation-core failures.
type Kind uint8

const (
	// InvalidOrbit marks a Cartesian/Keplerian state that cannot
	// represent a physical orbit (a = 0, r = 0, or h = 0).
	InvalidOrbit Kind = iota
	// TransformDomainError marks an input outside the domain a
	// transform can handle (an unbound orbit, a non-positive
	// generalised mean motion, a non-physical eccentricity or angular
	// momentum).
	TransformDomainError
	// RootFailedToConverge marks a Newton-Raphson iteration that did
	// not reach tolerance within the iteration cap.
	RootFailedToConverge
	// UnsupportedStateShape marks a state shape a driver does not
	// accept, e.g. a polynomial GEqOE initial condition.
	UnsupportedStateShape
	// UnsupportedPerturbationModel is reserved for perturbation
	// providers the core does not ship; the core itself never emits
	// it.
	UnsupportedPerturbationModel
)

func (k Kind) String() string {
	switch k {
	case InvalidOrbit:
		return "InvalidOrbit"
	case TransformDomainError:
		return "TransformDomainError"
	case RootFailedToConverge:
		return "RootFailedToConverge"
	case UnsupportedStateShape:
		return "UnsupportedStateShape"
	case UnsupportedPerturbationModel:
		return "UnsupportedPerturbationModel"
	default:
		return "Unknown"
	}
}

// Error is the single error type every fallible operation in the core
// returns.
type Error struct {
	Kind   Kind
	Op     string // the operation that failed, e.g. "keplerian.CartesianToKeplerian"
	Detail string

	// Time and StateIndex are optional diagnostic context a caller in
	// the driver (C10) layer attaches when an error surfaces mid
	// integration: which independent-variable value, and (for a
	// batched propagation) which input state, was being processed.
	// Zero values mean "not applicable"; StateIndex is therefore
	// 1-based so 0 can mean "no batch index".
	Time       float64
	StateIndex int
}

func (e *Error) Error() string {
	msg := fmt.Sprintf("%s: %s", e.Op, e.Kind)
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	if e.StateIndex > 0 {
		msg += fmt.Sprintf(" (state #%d)", e.StateIndex)
	}
	if e.Time != 0 {
		msg += fmt.Sprintf(" (t=%g)", e.Time)
	}
	return msg
}

func newError(op string, kind Kind, detail string) *Error {
	return &Error{Kind: kind, Op: op, Detail: detail}
}

// withContext returns a copy of e with diagnostic time/state-index
// context attached, used by the driver when an error from a lower
// layer (C4/C5/C6) surfaces out of propagate_*.
func withContext(err error, t float64, stateIndex int) error {
	te, ok := err.(*Error)
	if !ok {
		return err
	}
	cp := *te
	cp.Time = t
	cp.StateIndex = stateIndex
	return &cp
}
