package thames

import "github.com/maxhlc/thames-sub000/scalar"

// Perturbation is the contract every perturbing-force provider
// implements. Every method takes an explicit nonDimensional flag and
// the dimensional factors it applies against, rather than storing
// either as provider state, so a single provider instance is safe to
// share (by reference) across parallel propagations that derive
// different factors from different initial states (spec.md §3: a
// provider "carries a reference to the dimensional factors", realised
// here as a per-call argument instead of a stored reference precisely
// so that sharing holds under concurrent batched propagation).
type Perturbation[T scalar.Value[T]] interface {
	// TotalAcceleration returns the full perturbing acceleration
	// (potential-derived plus non-potential) at (t, R, V).
	TotalAcceleration(t T, r, v scalar.Vec3[T], nonDimensional bool, f Factors) scalar.Vec3[T]
	// NonpotentialAcceleration returns only the acceleration that
	// cannot be derived from a potential function (e.g. drag).
	NonpotentialAcceleration(t T, r, v scalar.Vec3[T], nonDimensional bool, f Factors) scalar.Vec3[T]
	// Potential returns the perturbing potential U(t, R).
	Potential(t T, r scalar.Vec3[T], nonDimensional bool, f Factors) T
	// PotentialTimeDerivative returns dU/dt at (t, R, V).
	PotentialTimeDerivative(t T, r, v scalar.Vec3[T], nonDimensional bool, f Factors) T
}

// ZeroPerturbation is an embeddable base every concrete provider may
// embed to inherit zero defaults for whichever of the four operations
// it does not itself contribute (e.g. drag has no potential).
type ZeroPerturbation[T scalar.Value[T]] struct{}

func (ZeroPerturbation[T]) TotalAcceleration(t T, r, v scalar.Vec3[T], nonDimensional bool, f Factors) scalar.Vec3[T] {
	return scalar.Lit3(t, 0, 0, 0)
}

func (ZeroPerturbation[T]) NonpotentialAcceleration(t T, r, v scalar.Vec3[T], nonDimensional bool, f Factors) scalar.Vec3[T] {
	return scalar.Lit3(t, 0, 0, 0)
}

func (ZeroPerturbation[T]) Potential(t T, r scalar.Vec3[T], nonDimensional bool, f Factors) T {
	return t.Lit(0)
}

func (ZeroPerturbation[T]) PotentialTimeDerivative(t T, r, v scalar.Vec3[T], nonDimensional bool, f Factors) T {
	return t.Lit(0)
}

// Combiner holds an ordered, reference-shared list of perturbation
// providers and exposes the same four-operation contract as a single
// pointwise sum over its members, evaluated in insertion order.
//
// The combiner does not own its providers: it never mutates them, and
// the same provider instance may be referenced by multiple combiners
// (or the same combiner across parallel propagations), since both the
// dimensional convention and the factors it applies against are
// threaded as call parameters rather than stored.
type Combiner[T scalar.Value[T]] struct {
	providers []Perturbation[T]
}

// NewCombiner builds a combiner over the given providers, in the
// order they will be summed.
func NewCombiner[T scalar.Value[T]](providers ...Perturbation[T]) *Combiner[T] {
	return &Combiner[T]{providers: append([]Perturbation[T]{}, providers...)}
}

// Add appends a provider to the combiner's ordered list.
func (c *Combiner[T]) Add(p Perturbation[T]) {
	c.providers = append(c.providers, p)
}

func (c *Combiner[T]) TotalAcceleration(t T, r, v scalar.Vec3[T], nonDimensional bool, f Factors) scalar.Vec3[T] {
	sum := scalar.Lit3(t, 0, 0, 0)
	for _, p := range c.providers {
		sum = sum.Add(p.TotalAcceleration(t, r, v, nonDimensional, f))
	}
	return sum
}

func (c *Combiner[T]) NonpotentialAcceleration(t T, r, v scalar.Vec3[T], nonDimensional bool, f Factors) scalar.Vec3[T] {
	sum := scalar.Lit3(t, 0, 0, 0)
	for _, p := range c.providers {
		sum = sum.Add(p.NonpotentialAcceleration(t, r, v, nonDimensional, f))
	}
	return sum
}

func (c *Combiner[T]) Potential(t T, r scalar.Vec3[T], nonDimensional bool, f Factors) T {
	sum := t.Lit(0)
	for _, p := range c.providers {
		sum = sum.Add(p.Potential(t, r, nonDimensional, f))
	}
	return sum
}

func (c *Combiner[T]) PotentialTimeDerivative(t T, r, v scalar.Vec3[T], nonDimensional bool, f Factors) T {
	sum := t.Lit(0)
	for _, p := range c.providers {
		sum = sum.Add(p.PotentialTimeDerivative(t, r, v, nonDimensional, f))
	}
	return sum
}
