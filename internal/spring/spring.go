// Package spring evaluates a damped harmonic oscillator in closed form.
//
// Frames are rendered out of order and in parallel, so the evaluator must
// produce the value at frame N without having seen frame N-1. Naive
// per-step numerical integration carries state between steps and is ruled
// out; instead the ODE
//
//	m*x'' + c*x' + k*x = 0
//
// is solved analytically for the under-, critically- and over-damped
// regimes, so any t is a single formula application.
package spring

import (
	"fmt"
	"math"

	"github.com/seqlab/framecast/internal/scene"
)

// Config parameterizes the oscillator. The spring is driven from position 0
// toward equilibrium 1 with the given initial velocity.
type Config struct {
	Damping         float64
	Stiffness       float64
	Mass            float64
	InitialVelocity float64
}

// Default returns the stock gentle-settle spring used by the built-in
// scenes.
func Default() Config {
	return Config{Damping: 10, Stiffness: 100, Mass: 1}
}

// Validate rejects non-physical parameters eagerly.
func (c Config) Validate() error {
	for _, p := range []struct {
		name  string
		value float64
	}{
		{"damping", c.Damping},
		{"stiffness", c.Stiffness},
		{"mass", c.Mass},
	} {
		if math.IsNaN(p.value) || p.value <= 0 {
			return &scene.ConfigError{
				Code:    scene.ErrCodeNonPositiveSpringParam,
				Message: fmt.Sprintf("%s must be positive, got %v", p.name, p.value),
				Field:   p.name,
			}
		}
	}
	return nil
}

// Damping ratios within epsilon of 1 use the critically-damped branch; the
// under/over-damped formulas divide by quantities that vanish there.
const criticalEpsilon = 1e-9

// Value evaluates the spring at the given frame. t = frame/fps seconds;
// negative frames evaluate to the starting position 0. The result starts at
// 0 and settles toward 1; under-damped configs overshoot on the way.
//
// Value is pure: it holds no running state and may be called for any frame
// in any order, concurrently, with identical results.
func Value(frame, fps int, cfg Config) (float64, error) {
	if err := cfg.Validate(); err != nil {
		return 0, err
	}
	if fps <= 0 {
		return 0, &scene.ConfigError{
			Code:    scene.ErrCodeNonPositiveFPS,
			Message: fmt.Sprintf("fps must be positive, got %d", fps),
			Field:   "fps",
		}
	}

	t := float64(frame) / float64(fps)
	if t <= 0 {
		return 0, nil
	}
	return at(t, cfg), nil
}

// at computes the displacement solution. x measures offset from the
// equilibrium 1, so x(0) = -1 and the returned value is 1 + x(t).
func at(t float64, cfg Config) float64 {
	omega0 := math.Sqrt(cfg.Stiffness / cfg.Mass)             // natural frequency
	zeta := cfg.Damping / (2 * math.Sqrt(cfg.Stiffness*cfg.Mass)) // damping ratio

	x0 := -1.0
	v0 := cfg.InitialVelocity

	var x float64
	switch {
	case math.Abs(zeta-1) < criticalEpsilon:
		// Critically damped: x(t) = e^(-w0 t) * (x0 + (v0 + w0 x0) t)
		x = math.Exp(-omega0*t) * (x0 + (v0+omega0*x0)*t)

	case zeta < 1:
		// Under-damped: decaying oscillation at frequency wd.
		omegaD := omega0 * math.Sqrt(1-zeta*zeta)
		a := x0
		b := (v0 + zeta*omega0*x0) / omegaD
		x = math.Exp(-zeta*omega0*t) * (a*math.Cos(omegaD*t) + b*math.Sin(omegaD*t))

	default:
		// Over-damped: sum of two real exponentials.
		root := omega0 * math.Sqrt(zeta*zeta-1)
		r1 := -zeta*omega0 + root
		r2 := -zeta*omega0 - root
		c1 := (v0 - r2*x0) / (r1 - r2)
		c2 := x0 - c1
		x = c1*math.Exp(r1*t) + c2*math.Exp(r2*t)
	}

	return 1 + x
}

// MustValue is like Value but panics on error. Use only with configs known
// to be valid, typically literals in scene code.
func MustValue(frame, fps int, cfg Config) float64 {
	v, err := Value(frame, fps, cfg)
	if err != nil {
		panic(err)
	}
	return v
}
