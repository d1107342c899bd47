package ocean_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/oceansim/internal/ocean"
)

var _ = Describe("ForcingStep", func() {
	It("caps every cell speed at MaxSpeed under extreme forcing", func() {
		g := ocean.NewFieldGrid(24, 18)
		f := ocean.NewForcingStep(g, ocean.DefaultCells(24, 18))
		p := ocean.Params{WindStrength: 1000, CoriolisStrength: 50, TemperatureDiff: 100}

		for i := 0; i < 100; i++ {
			f.Step(p, 0.1)
		}

		for i := range g.U {
			speed := math.Hypot(g.U[i], g.V[i])
			Expect(speed).To(BeNumerically("<=", ocean.MaxSpeed+1e-9))
		}
	})

	It("never touches the boundary ring", func() {
		g := ocean.NewFieldGrid(32, 24)
		f := ocean.NewForcingStep(g, ocean.DefaultCells(32, 24))

		boundary := func() map[int][]float64 {
			snap := make(map[int][]float64)
			for y := 0; y < g.H; y++ {
				for x := 0; x < g.W; x++ {
					if x != 0 && x != g.W-1 && y != 0 && y != g.H-1 {
						continue
					}
					i := g.Idx(x, y)
					snap[i] = []float64{g.U[i], g.V[i], g.Temperature[i], g.Salinity[i], g.Density[i], g.Pressure[i]}
				}
			}
			return snap
		}

		before := boundary()
		for i := 0; i < 50; i++ {
			f.Step(ocean.DefaultParams(), 0.1)
		}
		Expect(boundary()).To(Equal(before))
	})

	It("leaves the pressure field untouched and inert", func() {
		g := ocean.NewFieldGrid(16, 12)
		f := ocean.NewForcingStep(g, nil)

		for i := 0; i < 20; i++ {
			f.Step(ocean.DefaultParams(), 0.1)
		}
		for _, p := range g.Pressure {
			Expect(p).To(BeZero())
		}
	})

	Context("with zero forcing and no circulation cells", func() {
		var (
			g *ocean.FieldGrid
			f *ocean.ForcingStep
		)

		BeforeEach(func() {
			g = ocean.NewFieldGrid(16, 12)
			f = ocean.NewForcingStep(g, nil)
		})

		It("decays kinetic energy exactly by damping squared per step", func() {
			for y := 2; y < 10; y++ {
				for x := 2; x < 14; x++ {
					i := g.Idx(x, y)
					g.U[i] = 0.5
					g.V[i] = -0.3
				}
			}
			ke0 := g.KineticEnergy()
			Expect(ke0).To(BeNumerically(">", 0))

			const n = 10
			for i := 0; i < n; i++ {
				f.Step(ocean.Params{}, 0.1)
			}

			want := ke0 * math.Pow(0.95, 2*n)
			Expect(g.KineticEnergy()).To(BeNumerically("~", want, want*1e-9))
		})

		It("decays a single velocity spike without spreading it", func() {
			// 8x6 grid, unit u at (3,3), dt=1: one step leaves
			// u = 0.95 there and zero everywhere else.
			g := ocean.NewFieldGrid(8, 6)
			f := ocean.NewForcingStep(g, nil)
			g.U[g.Idx(3, 3)] = 1.0

			f.Step(ocean.Params{}, 1.0)

			for y := 0; y < g.H; y++ {
				for x := 0; x < g.W; x++ {
					i := g.Idx(x, y)
					if x == 3 && y == 3 {
						Expect(g.U[i]).To(BeNumerically("~", 0.95, 1e-12))
						Expect(g.V[i]).To(BeNumerically("~", 0, 1e-12))
					} else {
						Expect(g.U[i]).To(BeZero())
						Expect(g.V[i]).To(BeZero())
					}
				}
			}
		})
	})

	It("spins up circulation around a cell center", func() {
		g := ocean.NewFieldGrid(32, 32)
		cells := []ocean.CirculationCell{
			{CX: 16, CY: 16, Strength: 2.0, Clockwise: true, Kind: ocean.SurfaceCell},
		}
		f := ocean.NewForcingStep(g, cells)

		for i := 0; i < 30; i++ {
			f.Step(ocean.Params{}, 0.1)
		}

		Expect(g.KineticEnergy()).To(BeNumerically(">", 0))

		// On the row through the center the tangential push is purely
		// meridional: clockwise flow moves up on the right, down on
		// the left, and u stays zero there.
		uR, vR := g.VelocityAt(20, 16)
		uL, vL := g.VelocityAt(12, 16)
		Expect(vR).To(BeNumerically("<", 0))
		Expect(vR).To(BeNumerically("~", -vL, 1e-12))
		Expect(uR).To(BeZero())
		Expect(uL).To(BeZero())
	})

	It("does not clamp non-finite velocities (known propagation defect)", func() {
		g := ocean.NewFieldGrid(16, 12)
		f := ocean.NewForcingStep(g, nil)

		f.Step(ocean.Params{WindStrength: math.NaN()}, 0.1)

		Expect(g.CheckFinite()).To(MatchError(ocean.ErrNonFiniteField))
	})
})
