package thames

import "github.com/maxhlc/thames-sub000/scalar"

// J2 is the oblateness perturbation of a central body with
// gravitational parameter mu, equatorial radius rPlanet, and
// zonal-harmonic coefficient j2. It contributes a potential and a
// closed-form acceleration; it has no non-potential component and no
// explicit time dependence.
//
// Mu, RPlanet, and Value are always stored dimensionally (the caller
// must name the J2 value explicitly, e.g. J2EarthHeader or
// J2EarthReference — this provider never defaults to either). When
// called with nonDimensional set, the position/velocity arguments
// arrive non-dimensional (order-unity) and f carries the factors
// needed to rescale them to physical units before evaluating against
// the stored dimensional constants, and to rescale the physical
// result back down afterwards.
type J2[T scalar.Value[T]] struct {
	ZeroPerturbation[T]

	Mu      T
	RPlanet T
	Value   T
}

// NewJ2 builds a J2 provider over the given gravitational parameter,
// equatorial radius, and zonal-harmonic coefficient.
func NewJ2[T scalar.Value[T]](mu, rPlanet, j2 T) *J2[T] {
	return &J2[T]{Mu: mu, RPlanet: rPlanet, Value: j2}
}

// Potential returns U = 1/2 J2 mu rPlanet^2 (3 cos^2(phi) - 1) / r^3,
// where cos(phi) = z/r.
func (j *J2[T]) Potential(t T, r scalar.Vec3[T], nonDimensional bool, f Factors) T {
	rr := r
	if nonDimensional {
		rr = r.Scale(t.Lit(f.Length))
	}

	radius := scalar.Norm3(rr)
	cosPhi := rr[2].Div(radius)
	three := t.Lit(3)
	bracket := three.Mul(cosPhi).Mul(cosPhi).Sub(t.Lit(1))
	r3 := radius.Mul(radius).Mul(radius)
	u := j.Value.Mul(j.Mu).Mul(j.RPlanet).Mul(j.RPlanet).Mul(bracket).Div(t.Lit(2)).Div(r3)

	if nonDimensional {
		u = u.Div(t.Lit(f.Velocity * f.Velocity))
	}
	return u
}

// TotalAcceleration returns
//
//	A = -(3/2) J2 mu rPlanet^2 / r^5 *
//	    (x(1-5z^2/r^2), y(1-5z^2/r^2), z(3-5z^2/r^2))
//
// J2 has no non-potential contribution, so TotalAcceleration and the
// potential-derived acceleration coincide.
func (j *J2[T]) TotalAcceleration(t T, r, v scalar.Vec3[T], nonDimensional bool, f Factors) scalar.Vec3[T] {
	rr := r
	if nonDimensional {
		rr = r.Scale(t.Lit(f.Length))
	}

	radius := scalar.Norm3(rr)
	r2 := radius.Mul(radius)
	r5 := r2.Mul(r2).Mul(radius)
	z2 := rr[2].Mul(rr[2])
	fiveZ2OverR2 := t.Lit(5).Mul(z2).Div(r2)

	coeff := t.Lit(-1.5).Mul(j.Value).Mul(j.Mu).Mul(j.RPlanet).Mul(j.RPlanet).Div(r5)

	accel := scalar.Vec3[T]{
		coeff.Mul(rr[0]).Mul(t.Lit(1).Sub(fiveZ2OverR2)),
		coeff.Mul(rr[1]).Mul(t.Lit(1).Sub(fiveZ2OverR2)),
		coeff.Mul(rr[2]).Mul(t.Lit(3).Sub(fiveZ2OverR2)),
	}

	if nonDimensional {
		accel = accel.Scale(t.Lit(f.Length / (f.Velocity * f.Velocity)))
	}
	return accel
}

// PotentialTimeDerivative is zero: the J2 potential has no explicit
// time dependence.
func (j *J2[T]) PotentialTimeDerivative(t T, r, v scalar.Vec3[T], nonDimensional bool, f Factors) T {
	return t.Lit(0)
}
