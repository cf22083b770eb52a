package engine

import (
	"math"

	"github.com/ma3ke/bibber/internal/geom"
)

// ForceField computes per-particle forces from positions. Implementations
// must be pure: deterministic, no side effects, no retained state between
// calls. Forces are written into f (len(f) == len(pos)) and the total
// potential energy in J is returned.
type ForceField interface {
	Forces(pos []geom.Vec3, b Boundary, f []geom.Vec3) float64
}

// None is the zero force field. Particles move ballistically under
// thermostat control, which is a valid configuration in its own right
// and isolates the integrator and thermostat in tests.
type None struct{}

func (None) Forces(pos []geom.Vec3, b Boundary, f []geom.Vec3) float64 {
	for i := range f {
		f[i] = geom.Zero()
	}
	return 0
}

// LennardJones is the 12-6 pairwise potential
//
//	V(r) = 4ε[(σ/r)¹² − (σ/r)⁶]
//
// evaluated over minimum-image pair separations. Epsilon is in J, Sigma
// in m. A positive Cutoff skips pairs beyond that distance; zero means
// no cutoff.
type LennardJones struct {
	Epsilon float64
	Sigma   float64
	Cutoff  float64
}

func (lj LennardJones) Forces(pos []geom.Vec3, b Boundary, f []geom.Vec3) float64 {
	for i := range f {
		f[i] = geom.Zero()
	}

	cutoff2 := math.Inf(1)
	if lj.Cutoff > 0 {
		cutoff2 = lj.Cutoff * lj.Cutoff
	}
	sigma2 := lj.Sigma * lj.Sigma

	potential := 0.0
	for i := 0; i < len(pos); i++ {
		for j := i + 1; j < len(pos); j++ {
			d := b.MinImage(pos[i].Sub(pos[j]))
			r2 := d.Norm2()
			if r2 == 0 || r2 > cutoff2 {
				continue
			}

			sr2 := sigma2 / r2
			sr6 := sr2 * sr2 * sr2
			sr12 := sr6 * sr6

			potential += 4 * lj.Epsilon * (sr12 - sr6)

			// F = −dV/dr · r̂ = 24ε(2(σ/r)¹² − (σ/r)⁶)/r² · r⃗
			mag := 24 * lj.Epsilon * (2*sr12 - sr6) / r2
			fij := d.Scale(mag)
			f[i] = f[i].Add(fij)
			f[j] = f[j].Sub(fij)
		}
	}
	return potential
}
