package thames

import (
	"sync"

	"github.com/maxhlc/thames-sub000/integrator"
	"github.com/maxhlc/thames-sub000/scalar"
)

// StateShape distinguishes the two propagation-state shapes the core
// recognises (spec.md §3): Cartesian (x,y,z,ẋ,ẏ,ż) and GEqOE
// (ν,p1,p2,L,q1,q2). A caller's initial/final state6 is tagged with
// one of these regardless of which driver (Cowell or GEqOE) is asked
// to do the propagating; the driver converts at its boundary.
type StateShape uint8

const (
	Cartesian StateShape = iota
	GEqOEShape
)

func (s StateShape) String() string {
	if s == GEqOEShape {
		return "GEqOE"
	}
	return "Cartesian"
}

// formulation is the internal propagation formulation a driver
// integrates in: always Cartesian for the Cowell driver, always GEqOE
// for the GEqOE driver, independent of the caller-facing StateShape.
type formulation uint8

const (
	formCowell formulation = iota
	formGEqOE
)

// Options carries the propagator tunables of spec.md §3.
type Options struct {
	// FixedStep selects RK4 when true, the adaptive RKCK45(4) embedded
	// stepper when false.
	FixedStep bool
	// NonDimensional selects the §4.3/§4.10 non-dimensionalisation
	// pipeline; defaults to true per spec.md §3.
	NonDimensional bool
	Atol           float64
	Rtol           float64
}

// DefaultOptions returns the engine's default propagator options:
// adaptive stepping, non-dimensional integration, and the configured
// default tolerances (see Config).
func DefaultOptions() Options {
	c := Config()
	return Options{NonDimensional: true, Atol: c.DefaultAtol, Rtol: c.DefaultRtol}
}

// isPolyKind reports whether T's concrete type is scalar.Poly, used to
// enforce the Open Question #3 restriction: a polynomial propagation
// only accepts/returns Cartesian-shaped states.
func isPolyKind[T scalar.Value[T]]() bool {
	var zero T
	_, ok := any(zero).(scalar.Poly)
	return ok
}

// toCartesianShape converts a caller-supplied state6 (already known to
// be in shape) to Cartesian, at time t under mu and perturbation P. It
// is only ever called before the driver's own non-dimensionalisation
// step, so nonDimensional is always false here.
func toCartesianShape[T scalar.Value[T]](op string, shape StateShape, t T, state6 [6]T, mu T, P Perturbation[T]) ([6]T, error) {
	switch shape {
	case Cartesian:
		return state6, nil
	case GEqOEShape:
		return GEqOEToCartesian[T](t, state6, mu, P, false, Factors{})
	default:
		return [6]T{}, newError(op, UnsupportedStateShape, "unknown state shape")
	}
}

// fromCartesianShape is the inverse of toCartesianShape, converting a
// (re-dimensionalised) Cartesian result back to the caller's requested
// output shape. It is only ever called after re-dimensionalisation, so
// nonDimensional is always false here.
func fromCartesianShape[T scalar.Value[T]](op string, shape StateShape, t T, cart6 [6]T, mu T, P Perturbation[T], nonDimensional bool) ([6]T, error) {
	switch shape {
	case Cartesian:
		return cart6, nil
	case GEqOEShape:
		return CartesianToGEqOE[T](t, cart6, mu, P, nonDimensional, Factors{})
	default:
		return [6]T{}, newError(op, UnsupportedStateShape, "unknown state shape")
	}
}

// propagate implements the C10 sequence common to both drivers:
// non-dimensionalise, convert to the driver's native formulation,
// integrate, convert back, re-dimensionalise. form selects which
// native formulation (and which RHS) the driver integrates in; shape
// tags what state6 shape the caller's input/output is in, which may
// differ from form (e.g. a Cartesian input propagated by the GEqOE
// driver).
//
// t_start/t_end/t_step are always given in the caller's original
// (dimensional) units; if Options.NonDimensional is set they are
// rescaled internally using factors derived from the Cartesian form of
// the initial state (spec.md §4.3) — GEqOE elements are never scaled
// directly, sidestepping an ambiguity the source spec leaves open (see
// DESIGN.md).
func propagate[T scalar.Value[T]](op string, form formulation, tStart, tEnd, tStep float64, state6 [6]T, mu T, opts Options, shape StateShape, P Perturbation[T]) (out [6]T, err error) {
	if isPolyKind[T]() && shape != Cartesian {
		shapeErr := newError(op, UnsupportedStateShape, "polynomial propagation only accepts/returns Cartesian state shape")
		logWarning(op, "kind", UnsupportedStateShape, "detail", shapeErr.Detail)
		return [6]T{}, shapeErr
	}

	defer func() {
		if r := recover(); r != nil {
			if te, ok := r.(*Error); ok {
				err = withContext(te, tStart, 0)
				logWarning(op, "kind", te.Kind, "detail", te.Detail, "t", tStart)
				return
			}
			panic(r)
		}
	}()

	tStartT := state6[0].Lit(tStart)

	cart0, convErr := toCartesianShape(op, shape, tStartT, state6, mu, P)
	if convErr != nil {
		err := withContext(convErr, tStart, 0)
		logWarning(op, "kind", err.(*Error).Kind, "detail", err.(*Error).Detail, "t", tStart)
		return [6]T{}, err
	}

	nonDim := opts.NonDimensional
	workStart, workEnd, workStep := tStart, tEnd, tStep
	workMu := mu
	var workCart [6]T
	var factors Factors

	if nonDim {
		factors = ComputeFactorsGeneric(cart0, mu)
		workStart = NondimensionaliseTime(tStart, factors)
		workEnd = NondimensionaliseTime(tEnd, factors)
		workStep = NondimensionaliseTime(tStep, factors)
		workCart = NondimensionaliseCartesianT(cart0, factors)
		workMu = mu.Div(mu.Lit(factors.Grav))
	} else {
		workCart = cart0
	}

	workStartT := workCart[0].Lit(workStart)
	workEndT := workCart[0].Lit(workEnd)
	workStepT := workCart[0].Lit(workStep)

	var y0 integrator.State[T]
	var rhs integrator.Func[T]

	switch form {
	case formCowell:
		y0 = integrator.State[T]{workCart[0], workCart[1], workCart[2], workCart[3], workCart[4], workCart[5]}
		rhs = CowellRHS[T](workMu, P, nonDim, factors)
	case formGEqOE:
		g0, gErr := CartesianToGEqOE[T](workStartT, workCart, workMu, P, nonDim, factors)
		if gErr != nil {
			err := withContext(gErr, tStart, 0)
			logWarning(op, "kind", err.(*Error).Kind, "detail", err.(*Error).Detail, "t", tStart)
			return [6]T{}, err
		}
		y0 = integrator.State[T]{g0[0], g0[1], g0[2], g0[3], g0[4], g0[5]}
		rhs = GEqOERHS[T](workMu, P, nonDim, factors)
	}

	var steps uint64
	var yFinal integrator.State[T]
	if opts.FixedStep {
		stepper := integrator.NewRK4[T](workStartT, workEndT, workStepT, rhs)
		steps, yFinal = stepper.Solve(y0)
	} else {
		stepper := integrator.NewRKCK45[T](workStartT, workEndT, workStepT, opts.Atol, opts.Rtol, rhs)
		steps, yFinal = stepper.Solve(y0)
	}
	logNotice(op, "formulation", form, "fixed_step", opts.FixedStep, "non_dimensional", nonDim, "steps", steps)

	var finalCart [6]T
	switch form {
	case formCowell:
		finalCart = [6]T{yFinal[0], yFinal[1], yFinal[2], yFinal[3], yFinal[4], yFinal[5]}
	case formGEqOE:
		g := [6]T{yFinal[0], yFinal[1], yFinal[2], yFinal[3], yFinal[4], yFinal[5]}
		cart, cErr := GEqOEToCartesian[T](workEndT, g, workMu, P, nonDim, factors)
		if cErr != nil {
			err := withContext(cErr, tEnd, 0)
			logWarning(op, "kind", err.(*Error).Kind, "detail", err.(*Error).Detail, "t", tEnd)
			return [6]T{}, err
		}
		finalCart = cart
	}

	if nonDim {
		finalCart = DimensionaliseCartesianT(finalCart, factors)
	}

	tEndT := finalCart[0].Lit(tEnd)
	result, outErr := fromCartesianShape(op, shape, tEndT, finalCart, mu, P, false)
	if outErr != nil {
		err := withContext(outErr, tEnd, 0)
		logWarning(op, "kind", err.(*Error).Kind, "detail", err.(*Error).Detail, "t", tEnd)
		return [6]T{}, err
	}
	return result, nil
}

// PropagateCowell integrates a spacecraft state from tStart to tEnd
// under gravity plus the perturbations in P, using Cowell's method
// (direct Cartesian integration, C8). state6 is interpreted as shape
// and the result is returned in the same shape.
func PropagateCowell[T scalar.Value[T]](tStart, tEnd, tStep float64, state6 [6]T, mu T, opts Options, shape StateShape, P Perturbation[T]) ([6]T, error) {
	return propagate[T]("propagator.PropagateCowell", formCowell, tStart, tEnd, tStep, state6, mu, opts, shape, P)
}

// PropagateGEqOE integrates a spacecraft state from tStart to tEnd
// under gravity plus the perturbations in P, using the regularised
// GEqOE formulation (C9). state6 is interpreted as shape and the
// result is returned in the same shape.
func PropagateGEqOE[T scalar.Value[T]](tStart, tEnd, tStep float64, state6 [6]T, mu T, opts Options, shape StateShape, P Perturbation[T]) ([6]T, error) {
	return propagate[T]("propagator.PropagateGEqOE", formGEqOE, tStart, tEnd, tStep, state6, mu, opts, shape, P)
}

// maxBatchWorkers bounds the number of propagations run concurrently
// by the batched drivers, the same fixed-size-worker-pool shape the
// teacher's export writer goroutine uses.
const maxBatchWorkers = 8

// propagateBatch runs one propagates one independently per input
// state, writing each result into a pre-sized output slice by index
// so output ordering is deterministic regardless of completion order
// (spec.md §4.10 batched variant / §5 concurrency model). No provider
// cloning is needed: the non-dimensional flag is a call parameter, not
// mutable state on P, so the same P is safe to share read-only across
// every concurrent worker.
func propagateBatch[T scalar.Value[T]](
	one func(tStart, tEnd, tStep float64, state6 [6]T, mu T, opts Options, shape StateShape, P Perturbation[T]) ([6]T, error),
	tStart, tEnd, tStep float64, states [][6]T, mu T, opts Options, shape StateShape, P Perturbation[T],
) ([][6]T, error) {
	out := make([][6]T, len(states))
	errs := make([]error, len(states))

	sem := make(chan struct{}, maxBatchWorkers)
	var wg sync.WaitGroup
	for i, s := range states {
		wg.Add(1)
		sem <- struct{}{}
		go func(i int, s [6]T) {
			defer wg.Done()
			defer func() { <-sem }()
			res, err := one(tStart, tEnd, tStep, s, mu, opts, shape, P)
			if err != nil {
				errTime := tEnd
				if te, ok := err.(*Error); ok {
					errTime = te.Time
				}
				errs[i] = withContext(err, errTime, i+1)
				return
			}
			out[i] = res
		}(i, s)
	}
	wg.Wait()

	for _, e := range errs {
		if e != nil {
			return nil, e
		}
	}
	return out, nil
}

// PropagateCowellBatch is PropagateCowell applied independently to
// each of states, sharing tStart/tEnd/tStep/mu/opts/P, returning a
// slice of equal length and order.
func PropagateCowellBatch[T scalar.Value[T]](tStart, tEnd, tStep float64, states [][6]T, mu T, opts Options, shape StateShape, P Perturbation[T]) ([][6]T, error) {
	return propagateBatch(PropagateCowell[T], tStart, tEnd, tStep, states, mu, opts, shape, P)
}

// PropagateGEqOEBatch is PropagateGEqOE applied independently to each
// of states, sharing tStart/tEnd/tStep/mu/opts/P, returning a slice of
// equal length and order.
func PropagateGEqOEBatch[T scalar.Value[T]](tStart, tEnd, tStep float64, states [][6]T, mu T, opts Options, shape StateShape, P Perturbation[T]) ([][6]T, error) {
	return propagateBatch(PropagateGEqOE[T], tStart, tEnd, tStep, states, mu, opts, shape, P)
}
