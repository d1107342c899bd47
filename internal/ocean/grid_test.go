package ocean_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/oceansim/internal/ocean"
)

var _ = Describe("FieldGrid", func() {
	var g *ocean.FieldGrid

	BeforeEach(func() {
		g = ocean.NewFieldGrid(16, 12)
	})

	Describe("equation of state", func() {
		It("is a pure function", func() {
			a := ocean.EquationOfState(15.0, 34.5)
			b := ocean.EquationOfState(15.0, 34.5)
			Expect(a).To(Equal(b))
		})

		It("increases density with salinity", func() {
			fresh := ocean.EquationOfState(10.0, 31.0)
			salty := ocean.EquationOfState(10.0, 36.0)
			Expect(salty).To(BeNumerically(">", fresh))
		})

		It("matches the density field at initialization exactly", func() {
			for y := 0; y < g.H; y++ {
				for x := 0; x < g.W; x++ {
					i := g.Idx(x, y)
					Expect(g.Density[i]).To(Equal(
						ocean.EquationOfState(g.Temperature[i], g.Salinity[i])))
				}
			}
		})
	})

	Describe("construction", func() {
		It("floors degenerate dimensions to the 3x3 minimum", func() {
			tiny := ocean.NewFieldGrid(1, 1)
			Expect(tiny.W).To(Equal(3))
			Expect(tiny.H).To(Equal(3))
			Expect(tiny.U).To(HaveLen(9))
		})
	})

	Describe("initialization", func() {
		It("bounds salinity to [30, 37]", func() {
			for _, s := range g.Salinity {
				Expect(s).To(And(
					BeNumerically(">=", ocean.MinSalinity),
					BeNumerically("<=", ocean.MaxSalinity)))
			}
		})

		It("starts with zero velocity and pressure", func() {
			for i := range g.U {
				Expect(g.U[i]).To(BeZero())
				Expect(g.V[i]).To(BeZero())
				Expect(g.Pressure[i]).To(BeZero())
			}
		})

		It("is warmest near the equator", func() {
			equator := g.Temperature[g.Idx(3, g.H/2)]
			pole := g.Temperature[g.Idx(3, 0)]
			Expect(equator).To(BeNumerically(">", pole))
		})
	})

	Describe("bilinear interpolation", func() {
		BeforeEach(func() {
			for y := 0; y < g.H; y++ {
				for x := 0; x < g.W; x++ {
					i := g.Idx(x, y)
					g.U[i] = float64(x) * 0.1
					g.V[i] = float64(y) * 0.2
				}
			}
		})

		It("is exact at integer coordinates", func() {
			for _, pos := range [][2]int{{0, 0}, {3, 5}, {15, 11}, {8, 0}} {
				x, y := pos[0], pos[1]
				u, v := g.VelocityAt(float64(x), float64(y))
				i := g.Idx(x, y)
				Expect(u).To(Equal(g.U[i]))
				Expect(v).To(Equal(g.V[i]))
			}
		})

		It("averages the four corners at a cell midpoint", func() {
			u, v := g.VelocityAt(3.5, 5.5)
			wantU := (g.U[g.Idx(3, 5)] + g.U[g.Idx(4, 5)] + g.U[g.Idx(3, 6)] + g.U[g.Idx(4, 6)]) / 4
			wantV := (g.V[g.Idx(3, 5)] + g.V[g.Idx(4, 5)] + g.V[g.Idx(3, 6)] + g.V[g.Idx(4, 6)]) / 4
			Expect(u).To(BeNumerically("~", wantU, 1e-12))
			Expect(v).To(BeNumerically("~", wantV, 1e-12))
		})

		It("clamps out-of-range positions instead of failing", func() {
			u, v := g.VelocityAt(-3.0, 100.0)
			wantU, wantV := g.VelocityAt(0, float64(g.H-1))
			Expect(u).To(Equal(wantU))
			Expect(v).To(Equal(wantV))
		})

		It("treats a NaN position as the lower bound", func() {
			u, v := g.VelocityAt(math.NaN(), math.NaN())
			wantU, wantV := g.VelocityAt(0, 0)
			Expect(u).To(Equal(wantU))
			Expect(v).To(Equal(wantV))
		})
	})

	Describe("Reset", func() {
		It("restores the construction-time state", func() {
			fresh := ocean.NewFieldGrid(16, 12)
			for i := range g.U {
				g.U[i] = 1.3
				g.V[i] = -0.7
			}
			g.Reset()
			Expect(g.U).To(Equal(fresh.U))
			Expect(g.V).To(Equal(fresh.V))
			Expect(g.Temperature).To(Equal(fresh.Temperature))
			Expect(g.Density).To(Equal(fresh.Density))
		})
	})

	Describe("CheckFinite", func() {
		It("accepts a finite field", func() {
			Expect(g.CheckFinite()).To(Succeed())
		})

		It("reports NaN", func() {
			g.V[g.Idx(4, 4)] = math.NaN()
			Expect(g.CheckFinite()).To(MatchError(ocean.ErrNonFiniteField))
		})
	})
})
