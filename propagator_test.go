package thames

import (
	"math"
	"testing"

	"github.com/gonum/floats"

	"github.com/maxhlc/thames-sub000/scalar"
)

func circularLEO(altitude float64) ([6]float64, float64) {
	r := REarth + altitude
	v := math.Sqrt(MuEarth / r)
	return [6]float64{r, 0, 0, 0, v, 0}, MuEarth
}

func toReal6(s [6]float64) [6]scalar.Real {
	var out [6]scalar.Real
	for i, c := range s {
		out[i] = scalar.Real(c)
	}
	return out
}

func fromReal6(s [6]scalar.Real) [6]float64 {
	var out [6]float64
	for i, c := range s {
		out[i] = float64(c)
	}
	return out
}

func energy(state [6]float64, mu float64) float64 {
	r := math.Sqrt(state[0]*state[0] + state[1]*state[1] + state[2]*state[2])
	v := math.Sqrt(state[3]*state[3] + state[4]*state[4] + state[5]*state[5])
	return 0.5*v*v - mu/r
}

func TestPropagateCowellZeroPerturbationConservesEnergy(t *testing.T) {
	state, mu := circularLEO(500)
	P := NewCombiner[scalar.Real]()

	opts := DefaultOptions()
	opts.Atol, opts.Rtol = 1e-10, 1e-10

	period := 2 * math.Pi * math.Sqrt(math.Pow((REarth+500), 3)/mu)

	final, err := PropagateCowell[scalar.Real](0, period, 60, toReal6(state), scalar.Real(mu), opts, Cartesian, P)
	if err != nil {
		t.Fatalf("PropagateCowell failed: %v", err)
	}

	e0 := energy(state, mu)
	e1 := energy(fromReal6(final), mu)
	if relErr := math.Abs((e1 - e0) / e0); relErr > 1e-8 {
		t.Fatalf("energy drift = %e, want <= 1e-8", relErr)
	}
}

func TestPropagateGEqOEZeroPerturbationConservesEnergy(t *testing.T) {
	state, mu := circularLEO(500)
	P := NewCombiner[scalar.Real]()

	opts := DefaultOptions()
	opts.Atol, opts.Rtol = 1e-10, 1e-10

	period := 2 * math.Pi * math.Sqrt(math.Pow((REarth+500), 3)/mu)

	final, err := PropagateGEqOE[scalar.Real](0, period, 60, toReal6(state), scalar.Real(mu), opts, Cartesian, P)
	if err != nil {
		t.Fatalf("PropagateGEqOE failed: %v", err)
	}

	e0 := energy(state, mu)
	e1 := energy(fromReal6(final), mu)
	if relErr := math.Abs((e1 - e0) / e0); relErr > 1e-8 {
		t.Fatalf("energy drift = %e, want <= 1e-8", relErr)
	}
}

func TestPropagateReturnsToInitialRadiusAfterOnePeriod(t *testing.T) {
	// Scenario 1: Keplerian ellipse, no perturbation, one full period.
	state := [6]float64{7000, 0, 0, 0, 7.5, 0}
	mu := 398600.4418
	P := NewCombiner[scalar.Real]()

	a := 1 / (2/7000.0 - 7.5*7.5/mu)
	period := 2 * math.Pi * math.Sqrt(a*a*a/mu)

	opts := DefaultOptions()
	final, err := PropagateCowell[scalar.Real](0, period, period/500, toReal6(state), scalar.Real(mu), opts, Cartesian, P)
	if err != nil {
		t.Fatalf("PropagateCowell failed: %v", err)
	}
	r0 := math.Sqrt(state[0]*state[0] + state[1]*state[1] + state[2]*state[2])
	final64 := fromReal6(final)
	r1 := math.Sqrt(final64[0]*final64[0] + final64[1]*final64[1] + final64[2]*final64[2])
	if !floats.EqualWithinRel(r1, r0, 1e-6) {
		t.Fatalf("final radius = %v, want ~%v", r1, r0)
	}
}

func TestPropagateNonDimInvariance(t *testing.T) {
	// Scenario 4: dimensional and non-dimensional propagation must
	// agree, checked here for the Cowell driver.
	state, mu := circularLEO(538)
	P := NewCombiner[scalar.Real]()
	tEnd := 3600.0

	dimOpts := Options{FixedStep: true, NonDimensional: false, Atol: 1e-12, Rtol: 1e-10}
	ndOpts := Options{FixedStep: true, NonDimensional: true, Atol: 1e-12, Rtol: 1e-10}

	dimFinal, err := PropagateCowell[scalar.Real](0, tEnd, 10, toReal6(state), scalar.Real(mu), dimOpts, Cartesian, P)
	if err != nil {
		t.Fatalf("dimensional propagation failed: %v", err)
	}
	ndFinal, err := PropagateCowell[scalar.Real](0, tEnd, 10, toReal6(state), scalar.Real(mu), ndOpts, Cartesian, P)
	if err != nil {
		t.Fatalf("non-dimensional propagation failed: %v", err)
	}

	for i := range dimFinal {
		if !floats.EqualWithinRel(float64(ndFinal[i]), float64(dimFinal[i]), 1e-8) {
			t.Fatalf("component %d: non-dim %v != dim %v", i, ndFinal[i], dimFinal[i])
		}
	}
}

func TestPropagateCowellGEqOEAgreementWithJ2(t *testing.T) {
	// Scenario: formulation agreement with J2-only perturbation over a
	// shorter window than the full Earth-day reference run, to keep
	// the suite fast while still exercising the cross-formulation
	// comparison the invariant is about.
	vc := math.Sqrt(MuEarth / 6878)
	state := [6]float64{6878, 0, 0, 0, vc * math.Cos(math.Pi/6), vc * math.Sin(math.Pi/6)}

	j2 := NewJ2[scalar.Real](scalar.Real(MuEarth), scalar.Real(REarth), scalar.Real(J2EarthReference))
	P := NewCombiner[scalar.Real](j2)

	opts := DefaultOptions()
	opts.Atol, opts.Rtol = 1e-12, 1e-12
	tEnd := 3600.0 * 2

	cowellFinal, err := PropagateCowell[scalar.Real](0, tEnd, 30, toReal6(state), scalar.Real(MuEarth), opts, Cartesian, P)
	if err != nil {
		t.Fatalf("Cowell propagation failed: %v", err)
	}
	geqoeFinal, err := PropagateGEqOE[scalar.Real](0, tEnd, 30, toReal6(state), scalar.Real(MuEarth), opts, Cartesian, P)
	if err != nil {
		t.Fatalf("GEqOE propagation failed: %v", err)
	}

	posErr := 0.0
	velErr := 0.0
	for i := 0; i < 3; i++ {
		d := float64(cowellFinal[i]) - float64(geqoeFinal[i])
		posErr += d * d
		d = float64(cowellFinal[i+3]) - float64(geqoeFinal[i+3])
		velErr += d * d
	}
	posErr = math.Sqrt(posErr)
	velErr = math.Sqrt(velErr)

	// The one-day invariant is 10 m / 10 mm/s; this two-hour window
	// checks against looser bounds of 1 km and 1 m/s.
	if posErr > 1.0 {
		t.Fatalf("formulation position disagreement = %v km, too large", posErr)
	}
	if velErr > 1e-3 {
		t.Fatalf("formulation velocity disagreement = %v km/s, too large", velErr)
	}
}

func TestPropagateEquatorialCircularRoundTrip(t *testing.T) {
	// Scenario 6: equatorial-circular singularity, propagated for zero
	// duration, must reproduce the initial state through the
	// conversion/reconversion pipeline.
	state, mu := circularLEO(0) // r = REarth exactly, circular, equatorial
	P := NewCombiner[scalar.Real]()

	opts := DefaultOptions()
	final, err := PropagateGEqOE[scalar.Real](0, 0, 1e-6, toReal6(state), scalar.Real(mu), opts, Cartesian, P)
	if err != nil {
		t.Fatalf("PropagateGEqOE failed: %v", err)
	}
	final64 := fromReal6(final)
	for i := range state {
		if state[i] == 0 {
			if math.Abs(final64[i]) > 1e-6 {
				t.Fatalf("component %d: got %v, want ~0", i, final64[i])
			}
			continue
		}
		if !floats.EqualWithinRel(final64[i], state[i], 1e-6) {
			t.Fatalf("component %d: got %v, want %v", i, final64[i], state[i])
		}
	}
}

func TestPropagatePolynomialRejectsNonCartesianShape(t *testing.T) {
	p := scalar.NewVariablePoly(1, 2, 0, REarth+500)
	zero := scalar.NewConstantPoly(1, 2, 0)
	v := scalar.NewVariablePoly(1, 2, 0, math.Sqrt(MuEarth/(REarth+500)))
	state := [6]scalar.Poly{p, zero, zero, zero, v, zero}
	mu := scalar.NewConstantPoly(1, 2, MuEarth)
	P := NewCombiner[scalar.Poly]()

	_, err := PropagateGEqOE[scalar.Poly](0, 10, 10, state, mu, DefaultOptions(), GEqOEShape, P)
	if err == nil {
		t.Fatal("expected UnsupportedStateShape, got nil")
	}
	te, ok := err.(*Error)
	if !ok || te.Kind != UnsupportedStateShape {
		t.Fatalf("expected UnsupportedStateShape, got %v", err)
	}
}

func TestPropagatePolynomialCartesianMatchesRealAtConstantTerm(t *testing.T) {
	state, mu := circularLEO(500)
	var polyState [6]scalar.Poly
	for i, c := range state {
		polyState[i] = scalar.NewVariablePoly(1, 2, 0, c)
	}
	polyMu := scalar.NewConstantPoly(1, 2, mu)
	P := NewCombiner[scalar.Poly]()

	opts := Options{FixedStep: true, NonDimensional: false, Atol: 1e-10, Rtol: 1e-10}

	polyFinal, err := PropagateCowell[scalar.Poly](0, 600, 10, polyState, polyMu, opts, Cartesian, P)
	if err != nil {
		t.Fatalf("polynomial propagation failed: %v", err)
	}

	realFinal, err := PropagateCowell[scalar.Real](0, 600, 10, toReal6(state), scalar.Real(mu), opts, Cartesian, NewCombiner[scalar.Real]())
	if err != nil {
		t.Fatalf("real propagation failed: %v", err)
	}

	for i := range polyFinal {
		got := polyFinal[i].ConstantCoefficient()
		want := float64(realFinal[i])
		if !floats.EqualWithinRel(got, want, 1e-8) {
			t.Fatalf("component %d: poly constant term %v != real %v", i, got, want)
		}
	}
}

func TestPropagateGEqOEPolynomialWithJ2CombinerMatchesReal(t *testing.T) {
	// Exercises the Combiner's Add-then-Mul path for a polynomial
	// state under the GEqOE formulation (geqoe_rhs.go takes dot
	// products of the combiner's accumulated acceleration), with a
	// non-empty provider so the accumulator is not trivially zero.
	state, mu := circularLEO(500)
	var polyState [6]scalar.Poly
	for i, c := range state {
		polyState[i] = scalar.NewVariablePoly(1, 2, 0, c)
	}
	polyMu := scalar.NewConstantPoly(1, 2, mu)

	polyJ2 := NewJ2[scalar.Poly](
		scalar.NewConstantPoly(1, 2, MuEarth),
		scalar.NewConstantPoly(1, 2, REarth),
		scalar.NewConstantPoly(1, 2, J2EarthReference),
	)
	polyP := NewCombiner[scalar.Poly](polyJ2)

	realJ2 := NewJ2[scalar.Real](scalar.Real(MuEarth), scalar.Real(REarth), scalar.Real(J2EarthReference))
	realP := NewCombiner[scalar.Real](realJ2)

	opts := Options{FixedStep: true, NonDimensional: false, Atol: 1e-10, Rtol: 1e-10}

	polyFinal, err := PropagateGEqOE[scalar.Poly](0, 600, 10, polyState, polyMu, opts, Cartesian, polyP)
	if err != nil {
		t.Fatalf("polynomial propagation failed: %v", err)
	}
	realFinal, err := PropagateGEqOE[scalar.Real](0, 600, 10, toReal6(state), scalar.Real(mu), opts, Cartesian, realP)
	if err != nil {
		t.Fatalf("real propagation failed: %v", err)
	}

	for i := range polyFinal {
		got := polyFinal[i].ConstantCoefficient()
		want := float64(realFinal[i])
		if !floats.EqualWithinRel(got, want, 1e-8) {
			t.Fatalf("component %d: poly constant term %v != real %v", i, got, want)
		}
	}
}

func TestPropagateCowellBatchMatchesPerState(t *testing.T) {
	states := make([][6]scalar.Real, 4)
	for i := range states {
		s, _ := circularLEO(300 + float64(i)*100)
		states[i] = toReal6(s)
	}
	mu := scalar.Real(MuEarth)
	P := NewCombiner[scalar.Real]()
	opts := DefaultOptions()

	batch, err := PropagateCowellBatch[scalar.Real](0, 600, 30, states, mu, opts, Cartesian, P)
	if err != nil {
		t.Fatalf("batch propagation failed: %v", err)
	}
	if len(batch) != len(states) {
		t.Fatalf("batch length = %d, want %d", len(batch), len(states))
	}
	for i, s := range states {
		single, err := PropagateCowell[scalar.Real](0, 600, 30, s, mu, opts, Cartesian, P)
		if err != nil {
			t.Fatalf("single propagation %d failed: %v", i, err)
		}
		for j := range single {
			if !floats.EqualWithinRel(float64(batch[i][j]), float64(single[j]), 1e-12) {
				t.Fatalf("state %d component %d: batch %v != single %v", i, j, batch[i][j], single[j])
			}
		}
	}
}
