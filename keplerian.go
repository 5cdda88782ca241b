package thames

import (
	"math"

	"github.com/gonum/floats"
	"github.com/gonum/matrix/mat64"

	"github.com/maxhlc/thames-sub000/scalar"
)

// keplerianSingularityTol is the threshold on |e| and |i| (in radians)
// below which the eccentricity or inclination is treated as the
// degenerate (circular / equatorial) case.
const keplerianSingularityTol = 1e-12

// CartesianToKeplerian extracts the classical six orbital elements
// (a, e, i, Ω, ω, ν_true) from a Cartesian state6 (x, y, z, ẋ, ẏ, ż)
// under gravitational parameter mu.
//
// This transform is real-valued only: the polynomial-aware driver
// restricts itself to Cartesian input precisely so it never needs to
// route through here (see the Open Question on this in DESIGN.md).
func CartesianToKeplerian(state6 [6]float64, mu float64) ([6]float64, error) {
	const op = "keplerian.CartesianToKeplerian"
	R := scalar.Vec3[scalar.Real]{scalar.Real(state6[0]), scalar.Real(state6[1]), scalar.Real(state6[2])}
	V := scalar.Vec3[scalar.Real]{scalar.Real(state6[3]), scalar.Real(state6[4]), scalar.Real(state6[5])}

	r := float64(scalar.Norm3(R))
	v := float64(scalar.Norm3(V))
	if r == 0 {
		return [6]float64{}, newError(op, InvalidOrbit, "zero radius")
	}

	a := 1 / (2/r - v*v/mu)
	if a == 0 {
		return [6]float64{}, newError(op, InvalidOrbit, "zero semi-major axis")
	}

	H := scalar.Cross3(R, V)
	h := float64(scalar.Norm3(H))
	if h == 0 {
		return [6]float64{}, newError(op, InvalidOrbit, "zero angular momentum")
	}

	E := scalar.Cross3(V, H).DivScale(scalar.Real(mu)).Sub(R.DivScale(scalar.Real(r)))
	e := float64(scalar.Norm3(E))

	Hf := [3]float64{float64(H[0]), float64(H[1]), float64(H[2])}
	Ef := [3]float64{float64(E[0]), float64(E[1]), float64(E[2])}
	Rf := [3]float64{float64(R[0]), float64(R[1]), float64(R[2])}
	Vf := [3]float64{float64(V[0]), float64(V[1]), float64(V[2])}

	inc := math.Acos(Hf[2] / h)

	eNear := math.Abs(e) < keplerianSingularityTol
	incNear := math.Abs(inc) < keplerianSingularityTol

	N := [3]float64{-Hf[1], Hf[0], 0} // ẑ × H
	n := math.Hypot(N[0], N[1])

	var raan float64
	if incNear {
		raan = 0
	} else {
		raan = math.Acos(N[0] / n)
		if N[1] < 0 {
			raan = 2*math.Pi - raan
		}
	}

	var aop float64
	switch {
	case incNear && eNear:
		aop = 0
	case incNear:
		aop = math.Atan2(Ef[1], Ef[0])
		if Hf[2] < 0 {
			aop = 2*math.Pi - aop
		}
	case eNear:
		aop = 0
	default:
		aop = math.Acos(floats.Dot(N[:], Ef[:]) / (n * e))
		if Ef[2] < 0 {
			aop = 2*math.Pi - aop
		}
	}

	var ta float64
	switch {
	case incNear && eNear:
		ta = math.Acos(Rf[0] / r)
		if Vf[0] > 0 {
			ta = 2*math.Pi - ta
		}
	case eNear:
		ta = math.Acos(floats.Dot(N[:], Rf[:]) / (n * r))
		if Rf[2] < 0 {
			ta = 2*math.Pi - ta
		}
	default:
		ta = math.Acos(floats.Dot(Ef[:], Rf[:]) / (e * r))
		if floats.Dot(Rf[:], Vf[:]) < 0 {
			ta = 2*math.Pi - ta
		}
	}

	return [6]float64{a, e, inc, raan, aop, ta}, nil
}

// KeplerianToCartesian reconstructs a Cartesian state6 from the
// classical six orbital elements (a, e, i, Ω, ω, ν_true) under
// gravitational parameter mu, by composing three planar rotations
// (about z by Ω, about x by i, about z by ω) over the perifocal
// position and velocity.
func KeplerianToCartesian(keplerian [6]float64, mu float64) ([6]float64, error) {
	const op = "keplerian.KeplerianToCartesian"
	a, e, inc, raan, aop, ta := keplerian[0], keplerian[1], keplerian[2], keplerian[3], keplerian[4], keplerian[5]
	if a == 0 {
		return [6]float64{}, newError(op, InvalidOrbit, "zero semi-major axis")
	}

	p := a * (1 - e*e)
	sinTa, cosTa := math.Sincos(ta)
	r := p / (1 + e*cosTa)
	if r == 0 {
		return [6]float64{}, newError(op, InvalidOrbit, "zero radius")
	}

	sinE := math.Sqrt(math.Max(1-e*e, 0)) * sinTa / (1 + e*cosTa)
	cosE := (e + cosTa) / (1 + e*cosTa)

	rPQW := []float64{r * cosTa, r * sinTa, 0}
	fac := math.Sqrt(mu*a) / r
	vPQW := []float64{-fac * sinE, fac * math.Sqrt(math.Max(1-e*e, 0)) * cosE, 0}

	rot := r3r1r3(-aop, -inc, -raan)
	rIJK := mxv33(rot, rPQW)
	vIJK := mxv33(rot, vPQW)

	return [6]float64{rIJK[0], rIJK[1], rIJK[2], vIJK[0], vIJK[1], vIJK[2]}, nil
}

// r3r1r3 performs a 3-1-3 Euler-angle rotation (Schaub & Junkins
// convention), composing a rotation about z by θ1, about x by θ2, and
// about z by θ3.
func r3r1r3(θ1, θ2, θ3 float64) *mat64.Dense {
	sθ1, cθ1 := math.Sincos(θ1)
	sθ2, cθ2 := math.Sincos(θ2)
	sθ3, cθ3 := math.Sincos(θ3)
	return mat64.NewDense(3, 3, []float64{
		cθ3*cθ1 - sθ3*cθ2*sθ1, cθ3*sθ1 + sθ3*cθ2*cθ1, sθ3 * sθ2,
		-sθ3*cθ1 - cθ3*cθ2*sθ1, -sθ3*sθ1 + cθ3*cθ2*cθ1, cθ3 * sθ2,
		sθ2 * sθ1, -sθ2 * cθ1, cθ2,
	})
}

// mxv33 multiplies a 3x3 matrix by a 3-vector.
func mxv33(m *mat64.Dense, v []float64) []float64 {
	vVec := mat64.NewVector(len(v), v)
	var rVec mat64.Vector
	rVec.MulVec(m, vVec)
	return []float64{rVec.At(0, 0), rVec.At(1, 0), rVec.At(2, 0)}
}
