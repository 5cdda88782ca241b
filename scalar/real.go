package scalar

import "math"

// Real is the plain 64-bit real realisation of Value.
type Real float64

func (r Real) Add(o Real) Real { return r + o }
func (r Real) Sub(o Real) Real { return r - o }
func (r Real) Mul(o Real) Real { return r * o }
func (r Real) Div(o Real) Real { return r / o }
func (r Real) Neg() Real       { return -r }

func (r Real) Pow(p float64) Real  { return Real(math.Pow(float64(r), p)) }
func (r Real) Sqrt() Real          { return Real(math.Sqrt(float64(r))) }
func (r Real) Sin() Real           { return Real(math.Sin(float64(r))) }
func (r Real) Cos() Real           { return Real(math.Cos(float64(r))) }
func (r Real) Exp() Real           { return Real(math.Exp(float64(r))) }
func (r Real) Atan2(x Real) Real   { return Real(math.Atan2(float64(r), float64(x))) }
func (r Real) Representative() float64 { return float64(r) }
func (r Real) Lit(v float64) Real      { return Real(v) }
