package integrator

import (
	"math"

	"github.com/maxhlc/thames-sub000/scalar"
)

// Cash-Karp coefficients (Cash & Karp, 1990).
var rkckA = [6]float64{0, 1.0 / 5, 3.0 / 10, 3.0 / 5, 1, 7.0 / 8}

var rkckB = [6][5]float64{
	{},
	{1.0 / 5},
	{3.0 / 40, 9.0 / 40},
	{3.0 / 10, -9.0 / 10, 6.0 / 5},
	{-11.0 / 54, 5.0 / 2, -70.0 / 27, 35.0 / 27},
	{1631.0 / 55296, 175.0 / 512, 575.0 / 13824, 44275.0 / 110592, 253.0 / 4096},
}

var rkckC5 = [6]float64{37.0 / 378, 0, 250.0 / 621, 125.0 / 594, 0, 512.0 / 1771}
var rkckC4 = [6]float64{2825.0 / 27648, 0, 18575.0 / 48384, 13525.0 / 55296, 277.0 / 14336, 1.0 / 4}

// RKCK45 is an adaptive, embedded 4th/5th-order Runge-Kutta-Cash-Karp
// stepper controlled by absolute and relative tolerance. It steps
// monotonically from t0 to tEnd, adjusting its own internal step size;
// no dense output is produced and step rejection is never surfaced to
// the caller.
type RKCK45[T scalar.Value[T]] struct {
	t0, tEnd T
	initStep T
	atol     float64
	rtol     float64
	f        Func[T]

	maxGrow   float64
	maxShrink float64
	safety    float64
}

// NewRKCK45 returns an adaptive stepper integrating f from t0 to tEnd,
// using initStep as the first trial step size, controlled by absolute
// tolerance atol and relative tolerance rtol.
func NewRKCK45[T scalar.Value[T]](t0, tEnd, initStep T, atol, rtol float64, f Func[T]) *RKCK45[T] {
	return &RKCK45[T]{
		t0: t0, tEnd: tEnd, initStep: initStep,
		atol: atol, rtol: rtol, f: f,
		maxGrow: 5, maxShrink: 0.1, safety: 0.9,
	}
}

// Solve integrates from t0 to tEnd. It returns the number of accepted
// steps and the final state.
func (r *RKCK45[T]) Solve(y0 State[T]) (uint64, State[T]) {
	t := r.t0
	y := y0
	h := r.initStep
	forward := r.tEnd.Representative() >= r.t0.Representative()
	steps := uint64(0)

	for {
		remaining := r.tEnd.Representative() - t.Representative()
		if (forward && remaining <= 0) || (!forward && remaining >= 0) {
			break
		}
		if (forward && h.Representative() > remaining) || (!forward && h.Representative() < remaining) {
			h = r.tEnd.Sub(t)
		}

		for {
			y5, y4 := r.trialStep(t, y, h)
			errNorm := r.errorNorm(y, y5, y4)
			if errNorm <= 1 {
				t = t.Add(h)
				y = y5
				steps++
				h = r.grow(h, errNorm)
				break
			}
			h = r.shrink(h, errNorm)
		}
	}
	return steps, y
}

func (r *RKCK45[T]) trialStep(t T, y State[T], h T) (y5, y4 State[T]) {
	var k [6]State[T]
	for i := 0; i < 6; i++ {
		ti := t.Add(h.Lit(rkckA[i]).Mul(h))
		yi := y
		for j := 0; j < i; j++ {
			yi = add(yi, scale(k[j], h.Lit(rkckB[i][j])))
		}
		k[i] = r.f(ti, yi)
	}
	y5 = y
	y4 = y
	for i := 0; i < 6; i++ {
		y5 = add(y5, scale(k[i], h.Lit(rkckC5[i])))
		y4 = add(y4, scale(k[i], h.Lit(rkckC4[i])))
	}
	return y5, y4
}

// errorNorm returns the worst-case ratio of the estimated local error
// to the requested tolerance across all components; values <= 1
// indicate an acceptable step.
func (r *RKCK45[T]) errorNorm(y0, y5, y4 State[T]) float64 {
	worst := 0.0
	for i := range y5 {
		diff := math.Abs(y5[i].Representative() - y4[i].Representative())
		tol := r.atol + r.rtol*math.Max(math.Abs(y0[i].Representative()), math.Abs(y5[i].Representative()))
		if tol == 0 {
			tol = r.atol
		}
		if ratio := diff / tol; ratio > worst {
			worst = ratio
		}
	}
	return worst
}

func (r *RKCK45[T]) grow(h T, errNorm float64) T {
	factor := r.safety * math.Pow(math.Max(errNorm, 1e-12), -0.2)
	if factor > r.maxGrow {
		factor = r.maxGrow
	}
	return h.Mul(h.Lit(factor))
}

func (r *RKCK45[T]) shrink(h T, errNorm float64) T {
	factor := r.safety * math.Pow(errNorm, -0.25)
	if factor < r.maxShrink {
		factor = r.maxShrink
	}
	return h.Mul(h.Lit(factor))
}
