package thames

import (
	"math"

	"github.com/maxhlc/thames-sub000/scalar"
)

// NewtonFunc evaluates f(x) and its derivative f'(x) at x.
type NewtonFunc[T scalar.Value[T]] func(x T) (f, fPrime T)

// Newton solves f(x) = 0 for x by Newton-Raphson iteration starting
// from x0, using the real constant-term of f(x) (Representative) as
// the convergence test so the same code path drives both real and
// polynomial-valued roots.
//
// Iteration stops successfully once |f(x).Representative()| < tol.
// If the configured iteration cap passes without convergence, Newton
// returns a RootFailedToConverge error.
func Newton[T scalar.Value[T]](op string, x0 T, tol float64, fn NewtonFunc[T]) (T, error) {
	if tol <= 0 {
		tol = Config().NewtonTol
	}
	maxIter := Config().NewtonMaxIter

	x := x0
	for i := 0; i < maxIter; i++ {
		f, fPrime := fn(x)
		if math.Abs(f.Representative()) < tol {
			return x, nil
		}
		if fPrime.Representative() == 0 {
			return x, newError(op, RootFailedToConverge, "zero derivative")
		}
		x = x.Sub(f.Div(fPrime))
	}

	f, _ := fn(x)
	if math.Abs(f.Representative()) < tol {
		return x, nil
	}
	return x, newError(op, RootFailedToConverge, "exceeded iteration cap")
}
