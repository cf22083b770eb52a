package engine

import (
	"math/rand"
	"testing"

	"github.com/onsi/gomega"

	"github.com/ma3ke/bibber/internal/geom"
)

func TestWrapContainment(t *testing.T) {
	g := gomega.NewWithT(t)
	b := Boundary{L: 1e-7}

	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 1000; i++ {
		// Positions up to many periods outside the cell in both
		// directions.
		p := geom.V(
			(rng.Float64()-0.5)*20*b.L,
			(rng.Float64()-0.5)*20*b.L,
			(rng.Float64()-0.5)*20*b.L,
		)
		w := b.Wrap(p)
		g.Expect(w.X).To(gomega.And(gomega.BeNumerically(">=", 0), gomega.BeNumerically("<", b.L)))
		g.Expect(w.Y).To(gomega.And(gomega.BeNumerically(">=", 0), gomega.BeNumerically("<", b.L)))
		g.Expect(w.Z).To(gomega.And(gomega.BeNumerically(">=", 0), gomega.BeNumerically("<", b.L)))
	}
}

func TestWrapFarOutside(t *testing.T) {
	g := gomega.NewWithT(t)
	b := Boundary{L: 1e-7}

	// 3.5 periods out wraps to the half-period mark, not one period off.
	w := b.Wrap(geom.V(3.5*b.L, -3.5*b.L, 0))
	g.Expect(w.X).To(gomega.BeNumerically("~", 0.5*b.L, 1e-20))
	g.Expect(w.Y).To(gomega.BeNumerically("~", 0.5*b.L, 1e-20))
	g.Expect(w.Z).To(gomega.BeZero())
}

func TestWrapScenario(t *testing.T) {
	// A particle at 99.5 nm advancing 5 nm lands at 4.5 nm.
	g := gomega.NewWithT(t)
	b := Boundary{L: 100e-9}

	p := geom.V(99.5e-9+5e-9, 0, 0)
	g.Expect(b.Wrap(p).X).To(gomega.BeNumerically("~", 4.5e-9, 1e-22))
}

func TestMinImageHalfBox(t *testing.T) {
	g := gomega.NewWithT(t)
	b := Boundary{L: 1e-7}

	rng := rand.New(rand.NewSource(2))
	for i := 0; i < 1000; i++ {
		p := b.Wrap(geom.V(rng.Float64()*b.L, rng.Float64()*b.L, rng.Float64()*b.L))
		q := b.Wrap(geom.V(rng.Float64()*b.L, rng.Float64()*b.L, rng.Float64()*b.L))
		d := b.MinImage(p.Sub(q))
		g.Expect(d.X).To(gomega.BeNumerically("<=", b.L/2))
		g.Expect(d.X).To(gomega.BeNumerically(">=", -b.L/2))
		g.Expect(d.Y).To(gomega.BeNumerically("<=", b.L/2))
		g.Expect(d.Y).To(gomega.BeNumerically(">=", -b.L/2))
		g.Expect(d.Z).To(gomega.BeNumerically("<=", b.L/2))
		g.Expect(d.Z).To(gomega.BeNumerically(">=", -b.L/2))
	}
}

func TestMinImageShortens(t *testing.T) {
	g := gomega.NewWithT(t)
	b := Boundary{L: 100e-9}

	// Two particles near opposite faces are nearest through the wall.
	d := b.MinImage(geom.V(99e-9-1e-9, 0, 0))
	g.Expect(d.X).To(gomega.BeNumerically("~", -2e-9, 1e-22))
}
