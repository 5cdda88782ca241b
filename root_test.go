package thames

import (
	"math"
	"testing"

	"github.com/gonum/floats"

	"github.com/maxhlc/thames-sub000/scalar"
)

func TestNewtonSqrtTwo(t *testing.T) {
	fn := func(x scalar.Real) (scalar.Real, scalar.Real) {
		return x.Mul(x).Sub(2), x.Mul(2)
	}
	root, err := Newton("test.sqrt2", scalar.Real(1), 0, fn)
	if err != nil {
		t.Fatalf("Newton failed: %v", err)
	}
	if !floats.EqualWithinAbs(float64(root), math.Sqrt2, 1e-9) {
		t.Fatalf("root = %v, want %v", root, math.Sqrt2)
	}
}

func TestNewtonFailsToConverge(t *testing.T) {
	// f(x) = 1 has no root; the derivative is always zero.
	fn := func(x scalar.Real) (scalar.Real, scalar.Real) {
		return scalar.Real(1), scalar.Real(0)
	}
	_, err := Newton("test.noroot", scalar.Real(0), 0, fn)
	if err == nil {
		t.Fatal("expected RootFailedToConverge, got nil")
	}
	tErr, ok := err.(*Error)
	if !ok || tErr.Kind != RootFailedToConverge {
		t.Fatalf("expected RootFailedToConverge, got %v", err)
	}
}

func TestNewtonPolynomialKepler(t *testing.T) {
	// K - e sin K - M = 0, linearised around a nominal e via Poly.
	e := scalar.NewConstantPoly(1, 2, 0.1)
	M := scalar.NewConstantPoly(1, 2, 0.5)
	fn := func(K scalar.Poly) (scalar.Poly, scalar.Poly) {
		f := K.Sub(e.Mul(K.Sin())).Sub(M)
		fp := scalar.NewConstantPoly(1, 2, 1).Sub(e.Mul(K.Cos()))
		return f, fp
	}
	root, err := Newton("test.kepler", scalar.NewConstantPoly(1, 2, 0.5), 0, fn)
	if err != nil {
		t.Fatalf("Newton failed: %v", err)
	}
	k0 := root.Representative()
	residual := k0 - 0.1*math.Sin(k0) - 0.5
	if math.Abs(residual) > 1e-8 {
		t.Fatalf("residual = %v, want ~0", residual)
	}
}
