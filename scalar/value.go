// Package scalar provides the generic scalar abstraction the propagation
// core is built over: a field with the usual arithmetic operators plus
// pow, sqrt, sin, cos, exp and atan2, satisfied both by a plain 64-bit
// real and by a truncated multivariate Taylor polynomial. Propagating a
// polynomial state carries first-order (and higher, up to the
// truncation degree) sensitivity information alongside the nominal
// trajectory.
package scalar

// Value is the capability set every propagated scalar must provide.
// Every method returns a new value; implementations must not mutate the
// receiver. T is the concrete scalar type itself (Real or Poly), so
// generic code written against Value[T] never has to know which one it
// is holding.
type Value[T any] interface {
	Add(T) T
	Sub(T) T
	Mul(T) T
	Div(T) T
	Neg() T

	Pow(p float64) T
	Sqrt() T
	Sin() T
	Cos() T
	Exp() T
	Atan2(x T) T

	// Representative returns the single float64 a Newton iteration or a
	// singularity test should treat as "the value": for Real, the value
	// itself; for Poly, the constant coefficient.
	Representative() float64

	// Lit builds a field element equal to the real literal v, matching
	// the receiver's concrete shape (e.g. a Poly's nvars/maxdeg). The
	// receiver's own value is irrelevant; only its shape is used.
	Lit(v float64) T
}
