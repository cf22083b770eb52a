package engine

import (
	"math"

	"github.com/ma3ke/bibber/internal/geom"
)

// Boundary is a cubic periodic cell with edge length L (meters).
// Positions live in the primary cell [0, L) on every axis.
type Boundary struct {
	L float64
}

// Size returns the cell as an edge vector.
func (b Boundary) Size() geom.Vec3 { return geom.V(b.L, b.L, b.L) }

// Volume returns the cell volume in m^3.
func (b Boundary) Volume() float64 { return b.L * b.L * b.L }

// Wrap maps p into the primary cell. Correct for excursions of any
// number of periods in either direction, not just one.
func (b Boundary) Wrap(p geom.Vec3) geom.Vec3 {
	return geom.V(wrap(p.X, b.L), wrap(p.Y, b.L), wrap(p.Z, b.L))
}

func wrap(x, l float64) float64 {
	x -= l * math.Floor(x/l)
	// Floor can land exactly on l when x is a tiny negative number.
	if x >= l {
		x -= l
	}
	return x
}

// MinImage returns the shortest periodic-equivalent displacement: every
// component of the result has magnitude at most L/2.
func (b Boundary) MinImage(d geom.Vec3) geom.Vec3 {
	return geom.V(minImage(d.X, b.L), minImage(d.Y, b.L), minImage(d.Z, b.L))
}

func minImage(x, l float64) float64 {
	return x - l*math.Round(x/l)
}
