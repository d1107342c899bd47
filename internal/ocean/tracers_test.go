package ocean_test

import (
	"math"
	"math/rand"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/oceansim/internal/ocean"
)

var _ = Describe("TracerSystem", func() {
	var (
		g  *ocean.FieldGrid
		ts *ocean.TracerSystem
	)

	BeforeEach(func() {
		g = ocean.NewFieldGrid(20, 16)
		ts = ocean.NewTracerSystem(g, 50, rand.New(rand.NewSource(7)))
	})

	It("keeps a fixed pool size", func() {
		Expect(ts.Particles()).To(HaveLen(50))
		for i := 0; i < 100; i++ {
			ts.Update(1.0, 5.0)
		}
		Expect(ts.Particles()).To(HaveLen(50))
	})

	It("defaults the pool size when n <= 0", func() {
		def := ocean.NewTracerSystem(g, 0, rand.New(rand.NewSource(1)))
		Expect(def.Particles()).To(HaveLen(ocean.ParticleCount))
	})

	It("keeps every particle inside the torus after each update", func() {
		// Uniform maximum-speed flow pushes particles 10 cells per
		// tick, forcing repeated edge crossings.
		for i := range g.U {
			g.U[i] = ocean.MaxSpeed
			g.V[i] = -ocean.MaxSpeed
		}
		for i := 0; i < 50; i++ {
			ts.Update(1.0, 5.0)
			for _, pt := range ts.Particles() {
				Expect(pt.X).To(And(
					BeNumerically(">=", 0),
					BeNumerically("<", float64(g.W))))
				Expect(pt.Y).To(And(
					BeNumerically(">=", 0),
					BeNumerically("<", float64(g.H))))
			}
		}
	})

	It("wraps an exiting particle to the opposite edge", func() {
		for i := range g.U {
			g.U[i] = 1.0
			g.V[i] = 0
		}
		pts := ts.Particles()
		pts[0].X = float64(g.W) - 1
		pts[0].Y = 5
		pts[0].Age = 0

		ts.Update(0.5, 4.0) // moves +2 in x, past the east edge

		Expect(pts[0].X).To(BeZero())
		Expect(pts[0].Y).To(BeNumerically("==", 5))
	})

	It("respawns a particle crossing the age limit atomically", func() {
		pts := ts.Particles()
		pts[0].X = 3
		pts[0].Y = 3
		pts[0].Age = ocean.MaxAge - 0.5

		ts.Update(1.0, 5.0)

		Expect(pts[0].Age).To(BeZero())
		Expect(pts[0].X).To(And(
			BeNumerically(">=", 0),
			BeNumerically("<", float64(g.W))))
		Expect(pts[0].Y).To(And(
			BeNumerically(">=", 0),
			BeNumerically("<", float64(g.H))))
	})

	It("does not respawn below the age limit", func() {
		pts := ts.Particles()
		for i := range pts {
			pts[i].Age = 1.0
		}
		ts.Update(1.0, 5.0)
		for _, pt := range ts.Particles() {
			Expect(pt.Age).To(BeNumerically("==", 2.0))
		}
	})

	It("low-pass filters particle temperature toward the field", func() {
		pts := ts.Particles()
		pts[0].X = 4
		pts[0].Y = 6
		pts[0].Age = 0
		pts[0].Temperature = 0

		// Zero velocity keeps the particle on its cell.
		ts.Update(0.1, 5.0)

		want := 0.01 * g.Temperature[g.Idx(4, 6)]
		Expect(pts[0].Temperature).To(BeNumerically("~", want, 1e-12))
	})

	It("is deterministic under a fixed seed", func() {
		a := ocean.NewTracerSystem(g, 30, rand.New(rand.NewSource(42)))
		b := ocean.NewTracerSystem(g, 30, rand.New(rand.NewSource(42)))
		for i := 0; i < 25; i++ {
			a.Update(1.0, 5.0)
			b.Update(1.0, 5.0)
		}
		Expect(a.Particles()).To(Equal(b.Particles()))
	})

	It("degrades silently instead of panicking on a non-finite field", func() {
		// Drive the field NaN through the declared propagation path,
		// then keep the tracers running. Positions may go NaN but
		// every array index must stay in range and the pool intact.
		f := ocean.NewForcingStep(g, nil)
		f.Step(ocean.Params{WindStrength: math.NaN()}, 0.1)
		Expect(g.CheckFinite()).To(MatchError(ocean.ErrNonFiniteField))

		Expect(func() {
			for i := 0; i < 20; i++ {
				ts.Update(0.1, 5.0)
			}
		}).NotTo(Panic())

		Expect(ts.Particles()).To(HaveLen(50))
		for _, pt := range ts.Particles() {
			// The carried properties sample a finite field, so they
			// stay finite even while the position degrades.
			Expect(math.IsNaN(pt.Temperature)).To(BeFalse())
			Expect(math.IsNaN(pt.Salinity)).To(BeFalse())
		}
	})

	It("never mutates the field it samples", func() {
		for i := range g.U {
			g.U[i] = 0.4
			g.V[i] = 0.1
		}
		u := append([]float64(nil), g.U...)
		temp := append([]float64(nil), g.Temperature...)

		for i := 0; i < 20; i++ {
			ts.Update(1.0, 5.0)
		}

		Expect(g.U).To(Equal(u))
		Expect(g.Temperature).To(Equal(temp))
	})
})
