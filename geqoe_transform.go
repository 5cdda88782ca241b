package thames

import "github.com/maxhlc/thames-sub000/scalar"

// CartesianToGEqOE converts a Cartesian state6 (R, V) at time t into
// the six Generalised Equinoctial Orbital Elements (ν, p1, p2, L, q1,
// q2), under gravitational parameter mu and perturbation P.
func CartesianToGEqOE[T scalar.Value[T]](t T, state6 [6]T, mu T, P Perturbation[T], nonDimensional bool, f Factors) ([6]T, error) {
	const op = "geqoe.CartesianToGEqOE"

	R := scalar.Vec3[T]{state6[0], state6[1], state6[2]}
	V := scalar.Vec3[T]{state6[3], state6[4], state6[5]}

	r := scalar.Norm3(R)
	if r.Representative() == 0 {
		return [6]T{}, newError(op, InvalidOrbit, "zero radius")
	}
	rDot := scalar.Dot3(R, V).Div(r)

	H := scalar.Cross3(R, V)
	h := scalar.Norm3(H)
	if h.Representative() == 0 {
		return [6]T{}, newError(op, InvalidOrbit, "zero angular momentum")
	}

	U := P.Potential(t, R, nonDimensional, f)
	uEff := h.Mul(h).Div(r.Mul(r).Mul(t.Lit(2))).Add(U)

	eps := rDot.Mul(rDot).Div(t.Lit(2)).Sub(mu.Div(r)).Add(uEff)
	if eps.Representative() >= 0 {
		return [6]T{}, newError(op, TransformDomainError, "non-negative specific energy (unbound orbit)")
	}

	negTwoEps := eps.Mul(t.Lit(-2))
	nu := negTwoEps.Pow(1.5).Div(mu)
	if nu.Representative() <= 0 {
		return [6]T{}, newError(op, TransformDomainError, "non-positive generalised mean motion")
	}

	q1 := H[0].Div(h.Add(H[2]))
	q2 := H[1].Neg().Div(h.Add(H[2]))

	eX, eY := equinoctialBasis(q1, q2)
	eR := R.DivScale(r)

	cosLTrue := scalar.Dot3(eR, eX)
	sinLTrue := scalar.Dot3(eR, eY)

	c := t.Lit(2).Mul(r).Mul(r).Mul(uEff).Sqrt()
	p := c.Mul(c).Div(mu)

	pOverRMinus1 := p.Div(r).Sub(t.Lit(1))
	cRDotOverMu := c.Mul(rDot).Div(mu)
	p1 := pOverRMinus1.Mul(sinLTrue).Sub(cRDotOverMu.Mul(cosLTrue))
	p2 := pOverRMinus1.Mul(cosLTrue).Add(cRDotOverMu.Mul(sinLTrue))

	a := mu.Div(nu.Mul(nu)).Pow(1.0 / 3.0)
	w := mu.Div(a).Sqrt()

	muPlusCw := mu.Add(c.Mul(w))
	s := muPlusCw.Sub(r.Mul(rDot).Mul(rDot)).Mul(sinLTrue).Sub(rDot.Mul(c.Add(w.Mul(r))).Mul(cosLTrue))
	cc := muPlusCw.Sub(r.Mul(rDot).Mul(rDot)).Mul(cosLTrue).Add(rDot.Mul(c.Add(w.Mul(r))).Mul(sinLTrue))

	l := s.Atan2(cc).Add(cc.Mul(p1).Sub(s.Mul(p2)).Div(muPlusCw))

	return [6]T{nu, p1, p2, l, q1, q2}, nil
}

// GEqOEToCartesian inverts CartesianToGEqOE: given the six GEqOE
// elements at time t under gravitational parameter mu and
// perturbation P, it reconstructs the Cartesian state6 (R, V),
// including the nonlinear inversion (C4) for the generalised
// eccentric longitude K.
func GEqOEToCartesian[T scalar.Value[T]](t T, elements [6]T, mu T, P Perturbation[T], nonDimensional bool, f Factors) ([6]T, error) {
	const op = "geqoe.GEqOEToCartesian"
	nu, p1, p2, l, q1, q2 := elements[0], elements[1], elements[2], elements[3], elements[4], elements[5]

	if nu.Representative() <= 0 {
		return [6]T{}, newError(op, TransformDomainError, "non-positive generalised mean motion")
	}

	oneMinusP := t.Lit(1).Sub(p1.Mul(p1)).Sub(p2.Mul(p2))
	if oneMinusP.Representative() <= 0 {
		return [6]T{}, newError(op, TransformDomainError, "non-physical eccentricity (1-p1^2-p2^2 <= 0)")
	}

	K, err := Newton(op, l, 0, func(k T) (T, T) {
		f := k.Add(p1.Mul(k.Cos())).Sub(p2.Mul(k.Sin())).Sub(l)
		fPrime := t.Lit(1).Sub(p1.Mul(k.Sin())).Sub(p2.Mul(k.Cos()))
		return f, fPrime
	})
	if err != nil {
		return [6]T{}, err
	}

	a := mu.Div(nu.Mul(nu)).Pow(1.0 / 3.0)
	sinK, cosK := K.Sin(), K.Cos()
	r := a.Mul(t.Lit(1).Sub(p1.Mul(sinK)).Sub(p2.Mul(cosK)))
	if r.Representative() == 0 {
		return [6]T{}, newError(op, InvalidOrbit, "zero radius")
	}
	rDot := mu.Mul(a).Sqrt().Div(r).Mul(p2.Mul(sinK).Sub(p1.Mul(cosK)))

	alpha := t.Lit(1).Div(t.Lit(1).Add(oneMinusP.Sqrt()))

	aOverR := a.Div(r)
	sinLTrue := aOverR.Mul(alpha.Mul(p1).Mul(p2).Mul(cosK).Add(t.Lit(1).Sub(alpha.Mul(p2).Mul(p2)).Mul(sinK)).Sub(p1))
	cosLTrue := aOverR.Mul(alpha.Mul(p1).Mul(p2).Mul(sinK).Add(t.Lit(1).Sub(alpha.Mul(p1).Mul(p1)).Mul(cosK)).Sub(p2))

	eX, eY := equinoctialBasis(q1, q2)
	eR := eX.Scale(cosLTrue).Add(eY.Scale(sinLTrue))
	eF := eY.Scale(cosLTrue).Sub(eX.Scale(sinLTrue))

	R := eR.Scale(r)

	c := mu.Mul(mu).Div(nu).Pow(1.0 / 3.0).Mul(oneMinusP.Sqrt())
	twoRSquaredU := t.Lit(2).Mul(r).Mul(r).Mul(P.Potential(t, R, nonDimensional, f))
	hSquared := c.Mul(c).Sub(twoRSquaredU)
	if hSquared.Representative() < 0 {
		return [6]T{}, newError(op, TransformDomainError, "non-physical angular momentum (c^2 < 2 r^2 U)")
	}
	h := hSquared.Sqrt()

	V := eR.Scale(rDot).Add(eF.Scale(h.Div(r)))

	return [6]T{R[0], R[1], R[2], V[0], V[1], V[2]}, nil
}

// equinoctialBasis returns the equinoctial frame unit vectors e_x, e_y
// derived from the plane parameters q1, q2, shared by the forward and
// inverse GEqOE transforms.
func equinoctialBasis[T scalar.Value[T]](q1, q2 T) (ex, ey scalar.Vec3[T]) {
	one := q1.Lit(1)
	epsF := one.Div(one.Add(q1.Mul(q1)).Add(q2.Mul(q2)))

	ex = scalar.Vec3[T]{
		epsF.Mul(one.Sub(q1.Mul(q1)).Add(q2.Mul(q2))),
		epsF.Mul(q1.Mul(q2)).Mul(one.Lit(2)),
		epsF.Mul(q1).Mul(one.Lit(-2)),
	}
	ey = scalar.Vec3[T]{
		epsF.Mul(q1.Mul(q2)).Mul(one.Lit(2)),
		epsF.Mul(one.Add(q1.Mul(q1)).Sub(q2.Mul(q2))),
		epsF.Mul(q2).Mul(one.Lit(2)),
	}
	return ex, ey
}
