package scalar

import (
	"fmt"
	"math"
	"strings"
)

// Poly is a truncated multivariate Taylor polynomial over Nvars symbolic
// deviation directions, keeping every monomial up to total degree
// Maxdeg. It is the "uncertainty-carrying" scalar kind: propagating a
// Poly state instead of a Real one threads the sensitivity of the
// trajectory to an initial perturbation through every arithmetic and
// transcendental operation the propagation core performs.
//
// This is a small, from-scratch differential-algebra stand-in, not a
// production power-series library: only the operations C1 requires are
// implemented, and no attempt is made to be competitive with a real
// automatic-differentiation engine.
type Poly struct {
	Nvars  int
	Maxdeg int
	terms  map[string]polyTerm
}

type polyTerm struct {
	exps  []int
	coeff float64
}

func expKey(exps []int) string {
	var b strings.Builder
	for i, e := range exps {
		if i > 0 {
			b.WriteByte(',')
		}
		fmt.Fprintf(&b, "%d", e)
	}
	return b.String()
}

func totalDegree(exps []int) int {
	d := 0
	for _, e := range exps {
		d += e
	}
	return d
}

// NewPoly returns the zero polynomial over nvars variables truncated at
// total degree maxdeg.
func NewPoly(nvars, maxdeg int) Poly {
	return Poly{Nvars: nvars, Maxdeg: maxdeg, terms: make(map[string]polyTerm)}
}

// NewConstantPoly returns the constant polynomial c with the given
// shape.
func NewConstantPoly(nvars, maxdeg int, c float64) Poly {
	p := NewPoly(nvars, maxdeg)
	if c != 0 {
		exps := make([]int, nvars)
		p.terms[expKey(exps)] = polyTerm{exps: exps, coeff: c}
	}
	return p
}

// NewVariablePoly returns center + δ_idx, i.e. the polynomial
// representing the idx-th deviation direction expanded about center.
// idx is zero-based and must be < nvars.
func NewVariablePoly(nvars, maxdeg int, idx int, center float64) Poly {
	p := NewConstantPoly(nvars, maxdeg, center)
	exps := make([]int, nvars)
	exps[idx] = 1
	p.setTerm(exps, 1)
	return p
}

func (p *Poly) setTerm(exps []int, coeff float64) {
	if coeff == 0 {
		delete(p.terms, expKey(exps))
		return
	}
	cp := make([]int, len(exps))
	copy(cp, exps)
	p.terms[expKey(exps)] = polyTerm{exps: cp, coeff: coeff}
}

func (p Poly) coeffAt(exps []int) float64 {
	if t, ok := p.terms[expKey(exps)]; ok {
		return t.coeff
	}
	return 0
}

// ConstantCoefficient returns the coefficient of the zero-exponent term.
func (p Poly) ConstantCoefficient() float64 {
	return p.coeffAt(make([]int, p.Nvars))
}

// Representative implements Value: the constant term is what a Newton
// iteration or singularity test treats as "the value" of the state.
func (p Poly) Representative() float64 { return p.ConstantCoefficient() }

// Lit builds a constant Poly matching the receiver's shape.
func (p Poly) Lit(v float64) Poly { return NewConstantPoly(p.Nvars, p.Maxdeg, v) }

// AddConst returns p with c added to its constant term.
func (p Poly) AddConst(c float64) Poly {
	out := p.clone()
	exps := make([]int, p.Nvars)
	out.setTerm(exps, out.coeffAt(exps)+c)
	return out
}

// ScaleConst returns p with every coefficient multiplied by s.
func (p Poly) ScaleConst(s float64) Poly {
	out := NewPoly(p.Nvars, p.Maxdeg)
	for _, t := range p.terms {
		out.setTerm(t.exps, t.coeff*s)
	}
	return out
}

func (p Poly) clone() Poly {
	out := NewPoly(p.Nvars, p.Maxdeg)
	for k, t := range p.terms {
		out.terms[k] = t
	}
	return out
}

// Add implements Value.
func (p Poly) Add(o Poly) Poly {
	out := p.clone()
	for _, t := range o.terms {
		out.setTerm(t.exps, out.coeffAt(t.exps)+t.coeff)
	}
	return out
}

// Sub implements Value.
func (p Poly) Sub(o Poly) Poly { return p.Add(o.Neg()) }

// Neg implements Value.
func (p Poly) Neg() Poly { return p.ScaleConst(-1) }

// Mul implements Value: truncated convolution, dropping any product
// monomial whose total degree exceeds Maxdeg.
func (p Poly) Mul(o Poly) Poly {
	out := NewPoly(p.Nvars, p.Maxdeg)
	for _, ta := range p.terms {
		for _, tb := range o.terms {
			exps := make([]int, p.Nvars)
			deg := 0
			for i := range exps {
				exps[i] = ta.exps[i] + tb.exps[i]
				deg += exps[i]
			}
			if deg > p.Maxdeg {
				continue
			}
			out.setTerm(exps, out.coeffAt(exps)+ta.coeff*tb.coeff)
		}
	}
	return out
}

// Reciprocal returns 1/p as a truncated power series. Requires a
// nonzero constant term; this precondition is not checked (matching
// the documented-not-guarded stance taken for Norm3's domain).
func (p Poly) Reciprocal() Poly {
	c0 := p.ConstantCoefficient()
	rem := p.AddConst(-c0) // zero constant term
	u := rem.ScaleConst(-1 / c0)
	total := NewConstantPoly(p.Nvars, p.Maxdeg, 1)
	uPow := total
	for k := 1; k <= p.Maxdeg; k++ {
		uPow = uPow.Mul(u)
		if len(uPow.terms) == 0 {
			break
		}
		total = total.Add(uPow)
	}
	return total.ScaleConst(1 / c0)
}

// Div implements Value.
func (p Poly) Div(o Poly) Poly { return p.Mul(o.Reciprocal()) }

// composeTaylor builds f(p) given the closed-form k-th derivative of f
// at the constant term of p, derivs(c0, k), for k = 0..Maxdeg (k=0 is
// f(c0) itself).
func composeTaylor(p Poly, derivs func(c0 float64, k int) float64) Poly {
	c0 := p.ConstantCoefficient()
	delta := p.AddConst(-c0)
	acc := NewConstantPoly(p.Nvars, p.Maxdeg, derivs(c0, 0))
	deltaPow := NewConstantPoly(p.Nvars, p.Maxdeg, 1)
	fact := 1.0
	for k := 1; k <= p.Maxdeg; k++ {
		deltaPow = deltaPow.Mul(delta)
		if len(deltaPow.terms) == 0 {
			break
		}
		fact *= float64(k)
		acc = acc.Add(deltaPow.ScaleConst(derivs(c0, k) / fact))
	}
	return acc
}

// Pow implements Value. Non-negative integer exponents are computed by
// exact repeated multiplication; any other exponent falls back to the
// closed-form falling-factorial derivative of x^p at the constant term
// (which requires a positive constant term for non-integer p).
func (p Poly) Pow(e float64) Poly {
	if e == math.Trunc(e) && e >= 0 {
		n := int(e)
		out := NewConstantPoly(p.Nvars, p.Maxdeg, 1)
		for i := 0; i < n; i++ {
			out = out.Mul(p)
		}
		return out
	}
	return composeTaylor(p, func(c0 float64, k int) float64 {
		coef := 1.0
		for j := 0; j < k; j++ {
			coef *= e - float64(j)
		}
		return coef * math.Pow(c0, e-float64(k))
	})
}

// Sqrt implements Value as Pow(0.5); requires a positive constant term.
func (p Poly) Sqrt() Poly { return p.Pow(0.5) }

// Sin implements Value via the cyclic sin derivative sequence.
func (p Poly) Sin() Poly {
	return composeTaylor(p, func(c0 float64, k int) float64 {
		switch k % 4 {
		case 0:
			return math.Sin(c0)
		case 1:
			return math.Cos(c0)
		case 2:
			return -math.Sin(c0)
		default:
			return -math.Cos(c0)
		}
	})
}

// Cos implements Value via the cyclic cos derivative sequence.
func (p Poly) Cos() Poly {
	return composeTaylor(p, func(c0 float64, k int) float64 {
		switch k % 4 {
		case 0:
			return math.Cos(c0)
		case 1:
			return -math.Sin(c0)
		case 2:
			return -math.Cos(c0)
		default:
			return math.Sin(c0)
		}
	})
}

// Exp implements Value; every derivative of exp at c0 is exp(c0).
func (p Poly) Exp() Poly {
	return composeTaylor(p, func(c0 float64, k int) float64 {
		return math.Exp(c0)
	})
}

// atanDerivative returns the k-th derivative of atan at z0, using the
// arccot reduction θ = atan2(1, z0): d^n/dz^n atan(z) = (-1)^(n-1)
// (n-1)! sin(nθ) sin(θ)^n for n>=1.
func atanDerivative(z0 float64, k int) float64 {
	if k == 0 {
		return math.Atan(z0)
	}
	theta := math.Atan2(1, z0)
	fact := 1.0
	for j := 2; j < k; j++ {
		fact *= float64(j)
	}
	if k%2 == 0 {
		fact = -fact
	}
	return fact * math.Sin(float64(k)*theta) * math.Pow(math.Sin(theta), float64(k))
}

func atanCompose(z Poly) Poly {
	return composeTaylor(z, atanDerivative)
}

// Atan2 implements Value. y is the receiver, x the argument, matching
// math.Atan2(y, x). The ratio reduction picks whichever of y/x, x/y
// keeps the composed atan argument's constant term within [-1, 1], the
// standard numerically robust way to evaluate atan2 via a single atan
// composition.
func (y Poly) Atan2(x Poly) Poly {
	c0y := y.ConstantCoefficient()
	c0x := x.ConstantCoefficient()
	if math.Abs(c0x) >= math.Abs(c0y) {
		theta := atanCompose(y.Div(x))
		if c0x < 0 {
			if c0y >= 0 {
				return theta.AddConst(math.Pi)
			}
			return theta.AddConst(-math.Pi)
		}
		return theta
	}
	// |y| > |x|: atan2(y,x) = sign(y)*pi/2 - atan(x/y)
	theta := atanCompose(x.Div(y))
	if c0y < 0 {
		return NewConstantPoly(y.Nvars, y.Maxdeg, -math.Pi/2).Sub(theta)
	}
	return NewConstantPoly(y.Nvars, y.Maxdeg, math.Pi/2).Sub(theta)
}
