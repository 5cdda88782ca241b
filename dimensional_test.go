package thames

import (
	"math"
	"testing"

	"github.com/gonum/floats"
)

func TestComputeFactorsCircularOrbit(t *testing.T) {
	r := REarth + 500
	v := math.Sqrt(MuEarth / r)
	state := [6]float64{r, 0, 0, 0, v, 0}

	f := ComputeFactors(state, MuEarth)
	if !floats.EqualWithinAbs(f.Length, r, 1e-6) {
		t.Fatalf("length = %v, want %v", f.Length, r)
	}
	if !floats.EqualWithinAbs(f.Velocity, v, 1e-6) {
		t.Fatalf("velocity = %v, want %v", f.Velocity, v)
	}
	if f.Grav != MuEarth {
		t.Fatalf("grav = %v, want %v", f.Grav, MuEarth)
	}
}

func TestNondimensionaliseRoundTrip(t *testing.T) {
	state := [6]float64{7000, 100, -200, 1.2, 7.5, 0.3}
	f := ComputeFactors(state, MuEarth)

	nd := NondimensionaliseCartesian(state, f)
	back := DimensionaliseCartesian(nd, f)
	for i := range state {
		if !floats.EqualWithinAbs(back[i], state[i], 1e-9) {
			t.Fatalf("component %d: round trip %v != %v", i, back[i], state[i])
		}
	}

	// The non-dimensional radius of the nominal state equals 1 by
	// construction of the length factor only for a circular orbit; for
	// a general state this merely checks the scaling is linear.
	nd2 := NondimensionaliseCartesian(DimensionaliseCartesian(nd, f), f)
	for i := range nd {
		if !floats.EqualWithinAbs(nd2[i], nd[i], 1e-9) {
			t.Fatalf("component %d: double round trip mismatch", i)
		}
	}
}

func TestNondimensionaliseTime(t *testing.T) {
	f := Factors{Time: 100}
	if got := NondimensionaliseTime(250, f); got != 2.5 {
		t.Fatalf("nondim time = %v, want 2.5", got)
	}
	if got := DimensionaliseTime(2.5, f); got != 250 {
		t.Fatalf("dim time = %v, want 250", got)
	}
}
