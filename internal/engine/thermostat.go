package engine

import (
	"math"

	"github.com/ma3ke/bibber/internal/unit"
)

// Berendsen is a weak-coupling thermostat: once per step every velocity
// is rescaled by
//
//	λ = sqrt(1 + (dt/τ)(T_target/T − 1))
//
// a first-order relaxation toward the target temperature. It does not
// sample the canonical ensemble exactly, and no degrees of freedom are
// removed for constraints or net momentum; that naive behavior is the
// documented one and is kept.
type Berendsen struct {
	// Target temperature.
	Target unit.Temperature
	// Tau is the relaxation time constant.
	Tau unit.Time
}

// Factor computes λ for the instantaneous temperature t. It returns 1
// when t is zero: the formula is undefined there and an all-resting
// system is simply left alone for the step.
func (b Berendsen) Factor(t float64, dt unit.Time) float64 {
	if t == 0 {
		return 1
	}
	ratio := dt.Seconds() / b.Tau.Seconds()
	return math.Sqrt(1 + ratio*(b.Target.Kelvin()/t-1))
}

// Apply rescales all velocities in s toward the target.
func (b Berendsen) Apply(s *System, dt unit.Time) {
	factor := b.Factor(s.Temperature(), dt)
	if factor != 1 {
		s.ScaleVelocities(factor)
	}
}
