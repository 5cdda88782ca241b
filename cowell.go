package thames

import (
	"github.com/maxhlc/thames-sub000/integrator"
	"github.com/maxhlc/thames-sub000/scalar"
)

// CowellRHS builds the Cowell right-hand side over gravitational
// parameter mu and perturbation combiner P:
//
//	Ṙ = V;  V̇ = -mu R / r^3 + P.total(t, R, V)
//
// The sum -mu R/r^3 + P.total is computed in that order, term for
// term, to keep the floating-point footprint reproducible.
func CowellRHS[T scalar.Value[T]](mu T, P Perturbation[T], nonDimensional bool, f Factors) integrator.Func[T] {
	return func(t T, y integrator.State[T]) integrator.State[T] {
		r := scalar.Vec3[T]{y[0], y[1], y[2]}
		v := scalar.Vec3[T]{y[3], y[4], y[5]}

		radius := scalar.Norm3(r)
		r3 := radius.Mul(radius).Mul(radius)

		gravity := r.Scale(mu.Neg().Div(r3))
		accel := gravity.Add(P.TotalAcceleration(t, r, v, nonDimensional, f))

		return integrator.State[T]{v[0], v[1], v[2], accel[0], accel[1], accel[2]}
	}
}
