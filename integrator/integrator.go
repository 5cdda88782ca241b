// Package integrator provides fixed-step and adaptive embedded
// Runge-Kutta steppers generic over the scalar.Value abstraction, so a
// single implementation serves both real-valued and polynomial-valued
// states. Every stepper here operates on the six-component state shape
// the propagation core uses throughout: three Cartesian or three
// GEqOE-like scalars paired with three more.
package integrator

import "github.com/maxhlc/thames-sub000/scalar"

// State is the six-component vector every propagated formulation (both
// Cartesian and GEqOE) is expressed as.
type State[T scalar.Value[T]] [6]T

// Func is an ODE right-hand side: given the independent variable t and
// the state y, return dy/dt.
type Func[T scalar.Value[T]] func(t T, y State[T]) State[T]

func scale[T scalar.Value[T]](s State[T], h T) State[T] {
	var out State[T]
	for i := range s {
		out[i] = s[i].Mul(h)
	}
	return out
}

func add[T scalar.Value[T]](a, b State[T]) State[T] {
	var out State[T]
	for i := range a {
		out[i] = a[i].Add(b[i])
	}
	return out
}

func sub[T scalar.Value[T]](a, b State[T]) State[T] {
	var out State[T]
	for i := range a {
		out[i] = a[i].Sub(b[i])
	}
	return out
}
