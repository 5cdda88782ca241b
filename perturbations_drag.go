package thames

import "github.com/maxhlc/thames-sub000/scalar"

// ExponentialAtmosphere is a single-layer exponential density fit,
// rho(alt) = refDensity * exp(-(alt-refAltitude)/scaleHeight), the
// closed-form alternative to a tabulated interpolation table. Unlike a
// tabulated model it is defined for any scalar kind, so it is the
// density model this engine ships for the polynomial-state case.
type ExponentialAtmosphere struct {
	RefAltitude float64
	RefDensity  float64
	ScaleHeight float64
}

// Drag is the atmospheric-drag perturbation: it has zero potential
// and a non-potential acceleration
//
//	A = -1/2 (Cd Area/Mass) rho(|R|-rPlanet) |Vrel|^2 Vrel/|Vrel|,  Vrel = V - ωPlanet x R
//
// where ωPlanet is the planet's rotation vector (assumed aligned with
// +z) and rho is the density model evaluated at the altitude above
// rPlanet. RPlanet, Omega, Cd, Area, Mass, and Model are always stored
// dimensionally; when called with nonDimensional set, r/v arrive
// non-dimensional and f rescales them to physical units before
// evaluating, and rescales the physical acceleration back down
// afterwards (mirroring J2).
type Drag[T scalar.Value[T]] struct {
	ZeroPerturbation[T]

	RPlanet T
	Omega   T // planet rotation rate, rad/s (about +z)
	Cd      T
	Area    T
	Mass    T
	Model   ExponentialAtmosphere
}

// NewDrag builds a drag provider over the given planet radius,
// rotation rate, drag coefficient, cross-sectional area, spacecraft
// mass, and density model.
func NewDrag[T scalar.Value[T]](rPlanet, omega, cd, area, mass T, model ExponentialAtmosphere) *Drag[T] {
	return &Drag[T]{RPlanet: rPlanet, Omega: omega, Cd: cd, Area: area, Mass: mass, Model: model}
}

func (d *Drag[T]) TotalAcceleration(t T, r, v scalar.Vec3[T], nonDimensional bool, f Factors) scalar.Vec3[T] {
	return d.NonpotentialAcceleration(t, r, v, nonDimensional, f)
}

func (d *Drag[T]) NonpotentialAcceleration(t T, r, v scalar.Vec3[T], nonDimensional bool, f Factors) scalar.Vec3[T] {
	rr, vv := r, v
	if nonDimensional {
		rr = r.Scale(t.Lit(f.Length))
		vv = v.Scale(t.Lit(f.Velocity))
	}

	radius := scalar.Norm3(rr)
	alt := radius.Sub(d.RPlanet)

	rho := d.density(t, alt)

	w := scalar.Vec3[T]{t.Lit(0), t.Lit(0), d.Omega}
	vRel := vv.Sub(scalar.Cross3(w, rr))
	vRelMag := scalar.Norm3(vRel)
	uv := vRel.DivScale(vRelMag)

	coeff := t.Lit(-0.5).Mul(d.Cd).Mul(d.Area).Div(d.Mass).Mul(rho).Mul(vRelMag).Mul(vRelMag)
	accel := uv.Scale(coeff)

	if nonDimensional {
		accel = accel.Scale(t.Lit(f.Length / (f.Velocity * f.Velocity)))
	}
	return accel
}

// density evaluates the density fit generically over T:
// rho(alt) = refDensity * exp(-(alt-refAltitude)/scaleHeight).
func (d *Drag[T]) density(t T, alt T) T {
	exponent := alt.Sub(t.Lit(d.Model.RefAltitude)).Neg().Div(t.Lit(d.Model.ScaleHeight))
	return t.Lit(d.Model.RefDensity).Mul(exponent.Exp())
}
