package integrator

import "github.com/maxhlc/thames-sub000/scalar"

// RK4 is the classic fixed-step, 4-stage Runge-Kutta integrator,
// generalised from a plain []float64 state to State[T] over any
// scalar.Value T.
type RK4[T scalar.Value[T]] struct {
	t0   T
	tEnd T
	step T
	f    Func[T]
}

// NewRK4 returns an RK4 stepper integrating f from t0 to tEnd with the
// fixed step size step. step's sign must agree with the direction of
// travel from t0 to tEnd.
func NewRK4[T scalar.Value[T]](t0, tEnd, step T, f Func[T]) *RK4[T] {
	return &RK4[T]{t0: t0, tEnd: tEnd, step: step, f: f}
}

// Solve integrates from t0 to tEnd, stepping monotonically and taking
// a final reduced step to land exactly on tEnd. It returns the
// iteration count and the final state.
func (r *RK4[T]) Solve(y0 State[T]) (uint64, State[T]) {
	half := y0[0].Lit(0.5)
	oneSixth := y0[0].Lit(1.0 / 6.0)
	oneThird := y0[0].Lit(1.0 / 3.0)

	t := r.t0
	y := y0
	forward := r.tEnd.Representative() >= r.t0.Representative()
	iterNum := uint64(0)
	for {
		remaining := r.tEnd.Representative() - t.Representative()
		if (forward && remaining <= 0) || (!forward && remaining >= 0) {
			break
		}
		h := r.step
		if (forward && h.Representative() > remaining) || (!forward && h.Representative() < remaining) {
			h = r.tEnd.Sub(t)
		}
		halfStep := h.Mul(half)

		k1 := scale(r.f(t, y), h)
		k2 := scale(r.f(t.Add(halfStep), add(y, scale(k1, half))), h)
		k3 := scale(r.f(t.Add(halfStep), add(y, scale(k2, half))), h)
		k4 := scale(r.f(t.Add(h), add(y, k3)), h)

		var delta State[T]
		for i := range delta {
			delta[i] = k1[i].Add(k4[i]).Mul(oneSixth).Add(k2[i].Add(k3[i]).Mul(oneThird))
		}
		y = add(y, delta)
		t = t.Add(h)
		iterNum++
	}
	return iterNum, y
}
