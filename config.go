package thames

import (
	"sync"

	"github.com/spf13/viper"
)

// engineConfig carries the core's own tunable defaults: nothing about
// file formats, CLI flags, or mission configuration (that I/O layer
// stays out of scope per spec.md §1) — only the handful of numeric
// defaults the propagation core itself falls back to when a caller
// does not override them explicitly.
type engineConfig struct {
	NewtonTol     float64
	NewtonMaxIter int
	DefaultAtol   float64
	DefaultRtol   float64
	J2Default     float64
}

var (
	cfgOnce sync.Once
	cfg     engineConfig
)

// Config lazily loads and returns the engine-defaults singleton, the
// same load-once-then-cache shape as the teacher's smdConfig(): viper
// reads an optional "thames" config file on first use, falling back to
// the documented defaults (defaultNewtonTol, defaultNewtonIter, and the
// spec's J2 reference-main value) when none is present. Newton reads
// its tolerance from here when called with tol <= 0 and always reads
// its iteration cap from here; DefaultOptions reads the propagator
// atol/rtol. J2Default is not read by the core: NewJ2 always takes its
// J2 value from the caller.
func Config() engineConfig {
	cfgOnce.Do(func() {
		v := viper.New()
		v.SetConfigName("thames")
		v.AddConfigPath(".")
		v.SetDefault("newton.tol", defaultNewtonTol)
		v.SetDefault("newton.maxiter", defaultNewtonIter)
		v.SetDefault("propagator.atol", 1e-10)
		v.SetDefault("propagator.rtol", 1e-10)
		v.SetDefault("j2.default", J2EarthReference)

		// A missing config file is not an error: the engine runs
		// entirely off its built-in defaults unless an operator drops
		// a thames.{yaml,json,toml} beside the binary.
		_ = v.ReadInConfig()

		cfg = engineConfig{
			NewtonTol:     v.GetFloat64("newton.tol"),
			NewtonMaxIter: v.GetInt("newton.maxiter"),
			DefaultAtol:   v.GetFloat64("propagator.atol"),
			DefaultRtol:   v.GetFloat64("propagator.rtol"),
			J2Default:     v.GetFloat64("j2.default"),
		}
	})
	return cfg
}
