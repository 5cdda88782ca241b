package thames

import (
	"github.com/maxhlc/thames-sub000/integrator"
	"github.com/maxhlc/thames-sub000/scalar"
)

// GEqOERHS builds the GEqOE right-hand side over gravitational
// parameter mu and perturbation combiner P. Every expression below is
// reproduced term-for-term from its defining formula; no algebraic
// rearrangement is performed, since rearranging changes the
// floating-point footprint.
func GEqOERHS[T scalar.Value[T]](mu T, P Perturbation[T], nonDimensional bool, f Factors) integrator.Func[T] {
	return func(t T, y integrator.State[T]) integrator.State[T] {
		nu, p1, p2, l, q1, q2 := y[0], y[1], y[2], y[3], y[4], y[5]

		cart, err := GEqOEToCartesian[T](t, [6]T{nu, p1, p2, l, q1, q2}, mu, P, nonDimensional, f)
		if err != nil {
			panic(err)
		}
		R := scalar.Vec3[T]{cart[0], cart[1], cart[2]}
		V := scalar.Vec3[T]{cart[3], cart[4], cart[5]}

		U := P.Potential(t, R, nonDimensional, f)
		Ut := P.PotentialTimeDerivative(t, R, V, nonDimensional, f)
		fTotal := P.TotalAcceleration(t, R, V, nonDimensional, f)
		fNp := P.NonpotentialAcceleration(t, R, V, nonDimensional, f)

		epsDot := Ut.Add(scalar.Dot3(fNp, V))

		nuDot := t.Lit(-3).Mul(nu.Div(mu.Mul(mu)).Pow(1.0 / 3.0)).Mul(epsDot)

		r := scalar.Norm3(R)
		rDot := scalar.Dot3(R, V).Div(r)
		H := scalar.Cross3(R, V)
		h := scalar.Norm3(H)

		eX, eY := equinoctialBasis(q1, q2)
		eR := R.DivScale(r)
		cosLTrue := scalar.Dot3(eR, eX)
		sinLTrue := scalar.Dot3(eR, eY)

		oneMinusP := t.Lit(1).Sub(p1.Mul(p1)).Sub(p2.Mul(p2))
		c := mu.Mul(mu).Div(nu).Pow(1.0 / 3.0).Mul(oneMinusP.Sqrt())
		p := c.Mul(c).Div(mu)

		hWh := q1.Mul(cosLTrue).Sub(q2.Mul(sinLTrue))
		eH := H.DivScale(h)

		zeta := r.Div(p)
		zetaTilde := t.Lit(1).Add(zeta)

		fR := scalar.Dot3(fTotal, eR)
		fH := scalar.Dot3(fTotal, eH)

		hMinusC := h.Sub(c)
		rSquared := r.Mul(r)

		twoUMinusRFr := t.Lit(2).Mul(U).Sub(r.Mul(fR))

		rOverH_hWh_fH := r.Div(h).Mul(hWh).Mul(fH)

		p1Dot := p2.Mul(hMinusC.Div(rSquared).Sub(rOverH_hWh_fH)).
			Add(t.Lit(1).Div(c).Mul(r.Mul(rDot).Mul(p1).Div(c).Add(zetaTilde.Mul(p2)).Add(zeta.Mul(cosLTrue))).Mul(twoUMinusRFr)).
			Add(r.Div(mu).Mul(zeta.Mul(p1).Add(zetaTilde.Mul(sinLTrue))).Mul(epsDot))

		p2Dot := p1.Mul(rOverH_hWh_fH.Sub(hMinusC.Div(rSquared))).
			Add(t.Lit(1).Div(c).Mul(r.Mul(rDot).Mul(p2).Div(c).Sub(zetaTilde.Mul(p1)).Sub(zeta.Mul(sinLTrue))).Mul(twoUMinusRFr)).
			Add(r.Div(mu).Mul(zeta.Mul(p2).Add(zetaTilde.Mul(cosLTrue))).Mul(epsDot))

		a := mu.Div(nu.Mul(nu)).Pow(1.0 / 3.0)
		alpha := t.Lit(1).Div(t.Lit(1).Add(oneMinusP.Sqrt()))

		lDot := nu.Add(hMinusC.Div(rSquared)).Sub(rOverH_hWh_fH).
			Add(r.Mul(rDot).Mul(c).Mul(zetaTilde).Mul(alpha).Div(mu.Mul(mu)).Mul(epsDot)).
			Add(t.Lit(1).Div(c).Mul(t.Lit(1).Div(alpha).Add(alpha.Mul(t.Lit(1).Sub(r.Div(a))))).Mul(twoUMinusRFr))

		onePlusQSquared := t.Lit(1).Add(q1.Mul(q1)).Add(q2.Mul(q2))

		q1Dot := r.Div(t.Lit(2).Mul(h)).Mul(fH).Mul(onePlusQSquared).Mul(sinLTrue)
		q2Dot := r.Div(t.Lit(2).Mul(h)).Mul(fH).Mul(onePlusQSquared).Mul(cosLTrue)

		return integrator.State[T]{nuDot, p1Dot, p2Dot, lDot, q1Dot, q2Dot}
	}
}
