package engine

import (
	"fmt"
	"math/rand"

	"github.com/ma3ke/bibber/internal/geom"
	"github.com/ma3ke/bibber/internal/unit"
)

// Particle is one simulated point mass. Positions are meters, velocities
// m/s, mass kg.
type Particle struct {
	Pos  geom.Vec3
	Vel  geom.Vec3
	Mass float64
}

// System is the full simulated state: N particles in a periodic box.
// N is fixed at construction and never changes.
type System struct {
	particles []Particle
	boundary  Boundary
	time      unit.Time
}

// VelocityInit draws an initial velocity for one particle.
type VelocityInit func(rng *rand.Rand, b Boundary) geom.Vec3

// ZeroVelocities starts every particle at rest. The thermostat drives
// the system toward the setpoint from there.
func ZeroVelocities(*rand.Rand, Boundary) geom.Vec3 { return geom.Zero() }

// UniformVelocities draws every component uniformly from
// [-50·L, 50·L) per second.
func UniformVelocities(rng *rand.Rand, b Boundary) geom.Vec3 {
	spread := b.L * 100
	return geom.V(
		(rng.Float64()-0.5)*spread,
		(rng.Float64()-0.5)*spread,
		(rng.Float64()-0.5)*spread,
	)
}

// SystemOpts controls random construction.
type SystemOpts struct {
	Mass       float64
	Velocities VelocityInit
	// MinSeparation redraws positions closer than this to any already
	// placed particle. Zero disables resampling.
	MinSeparation float64
	// MaxAttempts bounds resampling per particle; after that the last
	// draw is accepted as-is. Zero means a sensible default.
	MaxAttempts int
}

// NewRandomSystem builds n particles dispersed uniformly at random over
// the box volume, with velocities drawn by the configured policy.
func NewRandomSystem(n int, b Boundary, start unit.Time, rng *rand.Rand, opts SystemOpts) (*System, error) {
	if n <= 0 {
		return nil, fmt.Errorf("engine: particle count must be positive, got %d", n)
	}
	if opts.Mass <= 0 {
		return nil, fmt.Errorf("engine: particle mass must be positive, got %g", opts.Mass)
	}
	if b.L <= 0 {
		return nil, fmt.Errorf("engine: box edge must be positive, got %g", b.L)
	}
	velInit := opts.Velocities
	if velInit == nil {
		velInit = ZeroVelocities
	}
	maxAttempts := opts.MaxAttempts
	if maxAttempts <= 0 {
		maxAttempts = 100
	}

	particles := make([]Particle, n)
	for i := range particles {
		pos := drawPosition(rng, b)
		if opts.MinSeparation > 0 {
			for attempt := 0; attempt < maxAttempts; attempt++ {
				if separated(pos, particles[:i], b, opts.MinSeparation) {
					break
				}
				pos = drawPosition(rng, b)
			}
		}
		particles[i] = Particle{
			Pos:  pos,
			Vel:  velInit(rng, b),
			Mass: opts.Mass,
		}
	}

	return &System{particles: particles, boundary: b, time: start}, nil
}

// NewSystem wraps explicit particles, for tests and replay.
func NewSystem(particles []Particle, b Boundary, start unit.Time) (*System, error) {
	if len(particles) == 0 {
		return nil, fmt.Errorf("engine: particle count must be positive")
	}
	for i, p := range particles {
		if p.Mass <= 0 {
			return nil, fmt.Errorf("engine: particle %d has non-positive mass %g", i, p.Mass)
		}
	}
	own := make([]Particle, len(particles))
	copy(own, particles)
	s := &System{particles: own, boundary: b, time: start}
	for i := range s.particles {
		s.particles[i].Pos = b.Wrap(s.particles[i].Pos)
	}
	return s, nil
}

func drawPosition(rng *rand.Rand, b Boundary) geom.Vec3 {
	return geom.V(rng.Float64()*b.L, rng.Float64()*b.L, rng.Float64()*b.L)
}

func separated(pos geom.Vec3, placed []Particle, b Boundary, minSep float64) bool {
	for i := range placed {
		d := b.MinImage(pos.Sub(placed[i].Pos))
		if d.Norm() < minSep {
			return false
		}
	}
	return true
}

// N is the particle count.
func (s *System) N() int { return len(s.particles) }

// Boundary returns the periodic cell.
func (s *System) Boundary() Boundary { return s.boundary }

// Time is the elapsed simulated time.
func (s *System) Time() unit.Time { return s.time }

// Particle returns a copy of particle i.
func (s *System) Particle(i int) Particle { return s.particles[i] }

// Positions copies all positions into dst, allocating when dst is short.
func (s *System) Positions(dst []geom.Vec3) []geom.Vec3 {
	if cap(dst) < len(s.particles) {
		dst = make([]geom.Vec3, len(s.particles))
	}
	dst = dst[:len(s.particles)]
	for i := range s.particles {
		dst[i] = s.particles[i].Pos
	}
	return dst
}

// Velocities copies all velocities into dst, allocating when dst is short.
func (s *System) Velocities(dst []geom.Vec3) []geom.Vec3 {
	if cap(dst) < len(s.particles) {
		dst = make([]geom.Vec3, len(s.particles))
	}
	dst = dst[:len(s.particles)]
	for i := range s.particles {
		dst[i] = s.particles[i].Vel
	}
	return dst
}

// Displace moves particle i by dp and wraps it back into the cell.
func (s *System) Displace(i int, dp geom.Vec3) {
	p := &s.particles[i]
	p.Pos = s.boundary.Wrap(p.Pos.Add(dp))
}

// Kick adds dv to particle i's velocity.
func (s *System) Kick(i int, dv geom.Vec3) {
	p := &s.particles[i]
	p.Vel = p.Vel.Add(dv)
}

// ScaleVelocities multiplies every velocity by factor.
func (s *System) ScaleVelocities(factor float64) {
	for i := range s.particles {
		s.particles[i].Vel = s.particles[i].Vel.Scale(factor)
	}
}

// KineticEnergy is Σ ½ m v² over all particles, in J.
func (s *System) KineticEnergy() float64 {
	ke := 0.0
	for i := range s.particles {
		p := &s.particles[i]
		ke += 0.5 * p.Mass * p.Vel.Norm2()
	}
	return ke
}

// Temperature is the instantaneous kinetic temperature in K, using
// dof = 3N with no constraint or center-of-mass correction.
func (s *System) Temperature() float64 {
	dof := 3 * float64(len(s.particles))
	return 2 * s.KineticEnergy() / (dof * unit.Boltzmann)
}

// checkFinite reports the first particle with a non-finite position or
// velocity.
func (s *System) checkFinite() error {
	for i := range s.particles {
		p := &s.particles[i]
		if !p.Pos.IsFinite() || !p.Vel.IsFinite() {
			return fmt.Errorf("%w: particle %d", ErrNonFinite, i)
		}
	}
	return nil
}
