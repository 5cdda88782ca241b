package scalar

// Vec3 is a three-component vector over a scalar kind T. It is the only
// vector shape the propagation core needs: a six-component state is a
// pair of Vec3 (position, velocity).
type Vec3[T Value[T]] [3]T

// Add returns the element-wise sum a+b.
func (a Vec3[T]) Add(b Vec3[T]) Vec3[T] {
	return Vec3[T]{a[0].Add(b[0]), a[1].Add(b[1]), a[2].Add(b[2])}
}

// Sub returns the element-wise difference a-b.
func (a Vec3[T]) Sub(b Vec3[T]) Vec3[T] {
	return Vec3[T]{a[0].Sub(b[0]), a[1].Sub(b[1]), a[2].Sub(b[2])}
}

// Neg returns the element-wise negation of a.
func (a Vec3[T]) Neg() Vec3[T] {
	return Vec3[T]{a[0].Neg(), a[1].Neg(), a[2].Neg()}
}

// Scale returns a scaled by the scalar s.
func (a Vec3[T]) Scale(s T) Vec3[T] {
	return Vec3[T]{a[0].Mul(s), a[1].Mul(s), a[2].Mul(s)}
}

// DivScale returns a with every component divided by the scalar s.
func (a Vec3[T]) DivScale(s T) Vec3[T] {
	return Vec3[T]{a[0].Div(s), a[1].Div(s), a[2].Div(s)}
}

// Dot3 returns the inner product of a and b.
func Dot3[T Value[T]](a, b Vec3[T]) T {
	return a[0].Mul(b[0]).Add(a[1].Mul(b[1])).Add(a[2].Mul(b[2]))
}

// Cross3 returns the cross product a x b.
func Cross3[T Value[T]](a, b Vec3[T]) Vec3[T] {
	return Vec3[T]{
		a[1].Mul(b[2]).Sub(a[2].Mul(b[1])),
		a[2].Mul(b[0]).Sub(a[0].Mul(b[2])),
		a[0].Mul(b[1]).Sub(a[1].Mul(b[0])),
	}
}

// Norm3 returns sqrt(Dot3(a, a)).
//
// Dot3(a, a) must have a positive representative value over whatever
// domain a is sampled from; this is not validated here (matching the
// unguarded behaviour of the source this type is grounded on). A
// polynomial vector whose squared norm's constant term is zero or
// negative will produce a Poly.Sqrt() of an invalid expansion point.
func Norm3[T Value[T]](a Vec3[T]) T {
	return Dot3(a, a).Sqrt()
}

// Unit returns a scaled to unit length. It does not guard against a
// zero norm; callers operating near a singularity should check
// Norm3(a) first, as C5 and C6 do.
func Unit[T Value[T]](a Vec3[T]) Vec3[T] {
	return a.DivScale(Norm3(a))
}

// Lit3 builds a Vec3 of literal reals, using tmpl only to select the
// concrete shape of T (e.g. a Poly's nvars/maxdeg).
func Lit3[T Value[T]](tmpl T, x, y, z float64) Vec3[T] {
	return Vec3[T]{tmpl.Lit(x), tmpl.Lit(y), tmpl.Lit(z)}
}
