package thames

import (
	"math"

	"github.com/maxhlc/thames-sub000/scalar"
)

// Factors holds the canonical non-dimensionalisation derived from an
// initial Cartesian state and its gravitational parameter. Once
// computed they are immutable for the lifetime of a single
// propagation, and are always real-valued even when the state being
// propagated is a polynomial (they are computed from the polynomial's
// constant-coefficient state).
type Factors struct {
	Length   float64
	Velocity float64
	Time     float64
	Grav     float64
}

// ComputeFactors derives the dimensional factors from an initial
// Cartesian state6 and gravitational parameter mu:
//
//	length   = 1 / (2/r - v^2/mu)
//	velocity = sqrt(mu/length)
//	time     = sqrt(length^3/mu)
//	grav     = mu
func ComputeFactors(state6 [6]float64, mu float64) Factors {
	R := [3]float64{state6[0], state6[1], state6[2]}
	V := [3]float64{state6[3], state6[4], state6[5]}
	r := normf(R)
	v := normf(V)
	length := 1 / (2/r - v*v/mu)
	velocity := math.Sqrt(mu / length)
	time := math.Sqrt(length * length * length / mu)
	return Factors{Length: length, Velocity: velocity, Time: time, Grav: mu}
}

// ComputeFactorsPoly derives the dimensional factors from the
// constant-coefficient state of a polynomial Cartesian state6, per C3:
// the factors themselves always remain real.
func ComputeFactorsPoly(state6 [6]scalar.Poly, mu scalar.Poly) Factors {
	var real6 [6]float64
	for i, c := range state6 {
		real6[i] = c.Representative()
	}
	return ComputeFactors(real6, mu.Representative())
}

// ComputeFactorsGeneric derives the dimensional factors from any scalar
// kind T's Cartesian state6 and mu, reading off each component's
// Representative() value — for scalar.Real that is the value itself,
// for scalar.Poly the constant coefficient, matching C3's requirement
// that the factors stay real-valued even for a polynomial propagation.
func ComputeFactorsGeneric[T scalar.Value[T]](state6 [6]T, mu T) Factors {
	var real6 [6]float64
	for i, c := range state6 {
		real6[i] = c.Representative()
	}
	return ComputeFactors(real6, mu.Representative())
}

// NondimensionaliseCartesianT is NondimensionaliseCartesian generalised
// to any scalar kind T, dividing position components by T's literal of
// Factors.Length and velocity components by T's literal of
// Factors.Velocity.
func NondimensionaliseCartesianT[T scalar.Value[T]](state6 [6]T, f Factors) [6]T {
	return [6]T{
		state6[0].Div(state6[0].Lit(f.Length)),
		state6[1].Div(state6[1].Lit(f.Length)),
		state6[2].Div(state6[2].Lit(f.Length)),
		state6[3].Div(state6[3].Lit(f.Velocity)),
		state6[4].Div(state6[4].Lit(f.Velocity)),
		state6[5].Div(state6[5].Lit(f.Velocity)),
	}
}

// DimensionaliseCartesianT is the inverse of NondimensionaliseCartesianT.
func DimensionaliseCartesianT[T scalar.Value[T]](state6 [6]T, f Factors) [6]T {
	return [6]T{
		state6[0].Mul(state6[0].Lit(f.Length)),
		state6[1].Mul(state6[1].Lit(f.Length)),
		state6[2].Mul(state6[2].Lit(f.Length)),
		state6[3].Mul(state6[3].Lit(f.Velocity)),
		state6[4].Mul(state6[4].Lit(f.Velocity)),
		state6[5].Mul(state6[5].Lit(f.Velocity)),
	}
}

// NondimensionaliseCartesian divides position by Factors.Length and
// velocity by Factors.Velocity.
func NondimensionaliseCartesian(state6 [6]float64, f Factors) [6]float64 {
	return [6]float64{
		state6[0] / f.Length, state6[1] / f.Length, state6[2] / f.Length,
		state6[3] / f.Velocity, state6[4] / f.Velocity, state6[5] / f.Velocity,
	}
}

// DimensionaliseCartesian is the inverse of NondimensionaliseCartesian.
func DimensionaliseCartesian(state6 [6]float64, f Factors) [6]float64 {
	return [6]float64{
		state6[0] * f.Length, state6[1] * f.Length, state6[2] * f.Length,
		state6[3] * f.Velocity, state6[4] * f.Velocity, state6[5] * f.Velocity,
	}
}

// NondimensionaliseTime divides a time value by Factors.Time.
func NondimensionaliseTime(t float64, f Factors) float64 { return t / f.Time }

// DimensionaliseTime multiplies a time value by Factors.Time.
func DimensionaliseTime(t float64, f Factors) float64 { return t * f.Time }

// NondimensionaliseMu divides mu by Factors.Grav.
func NondimensionaliseMu(mu float64, f Factors) float64 { return mu / f.Grav }

func normf(v [3]float64) float64 {
	return math.Sqrt(v[0]*v[0] + v[1]*v[1] + v[2]*v[2])
}
