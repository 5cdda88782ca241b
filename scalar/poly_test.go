package scalar

import (
	"math"
	"testing"

	"github.com/gonum/floats"
)

func TestPolyConstantArithmetic(t *testing.T) {
	a := NewConstantPoly(2, 3, 4)
	b := NewConstantPoly(2, 3, 5)
	if c := a.Add(b).ConstantCoefficient(); !floats.EqualWithinAbs(c, 9, 1e-12) {
		t.Fatalf("4+5 = %f, want 9", c)
	}
	if c := a.Mul(b).ConstantCoefficient(); !floats.EqualWithinAbs(c, 20, 1e-12) {
		t.Fatalf("4*5 = %f, want 20", c)
	}
	if c := a.Div(b).ConstantCoefficient(); !floats.EqualWithinAbs(c, 0.8, 1e-12) {
		t.Fatalf("4/5 = %f, want 0.8", c)
	}
}

func TestPolyLinearDerivative(t *testing.T) {
	// x = 2 + δ, f(x) = x^2 should carry df/dδ = 2*x0 = 4 as the
	// coefficient of the linear term in δ.
	x := NewVariablePoly(1, 2, 0, 2)
	f := x.Mul(x)
	lin := f.coeffAt([]int{1})
	if !floats.EqualWithinAbs(lin, 4, 1e-9) {
		t.Fatalf("d/dδ x^2 at x0=2 = %f, want 4", lin)
	}
	quad := f.coeffAt([]int{2})
	if !floats.EqualWithinAbs(quad, 1, 1e-9) {
		t.Fatalf("d^2/dδ^2 x^2 /2! = %f, want 1", quad)
	}
}

func TestPolySinCosPythagorean(t *testing.T) {
	x := NewVariablePoly(1, 4, 0, 0.3)
	s := x.Sin()
	c := x.Cos()
	one := s.Mul(s).Add(c.Mul(c))
	if !floats.EqualWithinAbs(one.ConstantCoefficient(), 1, 1e-9) {
		t.Fatalf("sin^2+cos^2 constant term = %f, want 1", one.ConstantCoefficient())
	}
	for _, t2 := range one.terms {
		if t2.exps[0] != 0 && math.Abs(t2.coeff) > 1e-8 {
			t.Fatalf("sin^2+cos^2 should be the constant 1, found nonzero term %+v", t2)
		}
	}
}

func TestPolyExpConstantTerm(t *testing.T) {
	x := NewVariablePoly(1, 3, 0, 0.1)
	e := x.Exp()
	if !floats.EqualWithinAbs(e.ConstantCoefficient(), math.Exp(0.1), 1e-12) {
		t.Fatalf("exp constant term = %f, want %f", e.ConstantCoefficient(), math.Exp(0.1))
	}
}

func TestPolyAtan2MatchesMath(t *testing.T) {
	cases := []struct{ y, x float64 }{
		{1, 1}, {1, -1}, {-1, -1}, {-1, 1}, {0.2, 5}, {5, 0.2}, {-5, 0.2}, {5, -0.2},
	}
	for _, cse := range cases {
		y := NewConstantPoly(1, 3, cse.y)
		x := NewConstantPoly(1, 3, cse.x)
		got := y.Atan2(x).ConstantCoefficient()
		want := math.Atan2(cse.y, cse.x)
		if !floats.EqualWithinAbs(got, want, 1e-9) {
			t.Fatalf("atan2(%f,%f) = %f, want %f", cse.y, cse.x, got, want)
		}
	}
}

func TestPolyReciprocalIdentity(t *testing.T) {
	x := NewVariablePoly(1, 4, 0, 3)
	r := x.Reciprocal()
	prod := x.Mul(r)
	if !floats.EqualWithinAbs(prod.ConstantCoefficient(), 1, 1e-9) {
		t.Fatalf("x * (1/x) constant term = %f, want 1", prod.ConstantCoefficient())
	}
	for _, t2 := range prod.terms {
		if t2.exps[0] != 0 && math.Abs(t2.coeff) > 1e-8 {
			t.Fatalf("x * (1/x) should be the constant 1, found nonzero term %+v", t2)
		}
	}
}
