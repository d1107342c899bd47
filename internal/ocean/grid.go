package ocean

import "math"

const (
	// MaxSpeed is the hard cap on velocity magnitude, enforced after
	// every forcing update.
	MaxSpeed = 2.0

	// MinSalinity and MaxSalinity bound the salinity field (psu).
	MinSalinity = 30.0
	MaxSalinity = 37.0
)

// FieldGrid owns the fixed-size 2D field arrays. All arrays are flat,
// row-major (index = y*W + x) and allocated once at construction.
//
// U and V hold the current velocity; the back buffers written by
// ForcingStep are unexported so the ping-pong swap stays inside the
// package. Density is derived from temperature and salinity via
// EquationOfState and is never set independently.
type FieldGrid struct {
	W, H int

	U, V         []float64
	nextU, nextV []float64

	Temperature []float64
	Salinity    []float64
	Pressure    []float64
	Density     []float64
}

// NewFieldGrid allocates a w×h grid and populates the latitude-based
// temperature and salinity profiles. Velocity and pressure start at
// zero; density is derived from the initial temperature and salinity.
func NewFieldGrid(w, h int) *FieldGrid {
	if w < 3 {
		w = 3
	}
	if h < 3 {
		h = 3
	}
	n := w * h
	g := &FieldGrid{
		W: w, H: h,
		U:           make([]float64, n),
		V:           make([]float64, n),
		nextU:       make([]float64, n),
		nextV:       make([]float64, n),
		Temperature: make([]float64, n),
		Salinity:    make([]float64, n),
		Pressure:    make([]float64, n),
		Density:     make([]float64, n),
	}
	g.initialize()
	return g
}

// Idx converts grid coordinates to a flat array index.
func (g *FieldGrid) Idx(x, y int) int { return y*g.W + x }

// Latitude maps a row to degrees in [-90, 90).
func (g *FieldGrid) Latitude(y int) float64 {
	return (float64(y)/float64(g.H) - 0.5) * 180
}

func (g *FieldGrid) initialize() {
	for y := 0; y < g.H; y++ {
		lat := g.Latitude(y)
		for x := 0; x < g.W; x++ {
			i := g.Idx(x, y)
			g.U[i], g.V[i] = 0, 0
			g.nextU[i], g.nextV[i] = 0, 0
			g.Pressure[i] = 0
			g.Temperature[i] = 25 - 0.4*math.Abs(lat) +
				3*math.Sin(float64(x)/float64(g.W)*4*math.Pi)
			s := 34 + 2*math.Cos(lat*math.Pi/90)
			g.Salinity[i] = clamp(s, MinSalinity, MaxSalinity)
			g.Density[i] = EquationOfState(g.Temperature[i], g.Salinity[i])
		}
	}
}

// Reset restores every field to its construction-time state.
func (g *FieldGrid) Reset() {
	g.initialize()
}

// swap makes the back velocity buffers current. Called once per
// forcing step, never from outside the package.
func (g *FieldGrid) swap() {
	g.U, g.nextU = g.nextU, g.U
	g.V, g.nextV = g.nextV, g.V
}

// EquationOfState maps temperature (°C) and salinity (psu) to a scaled
// seawater density, using a UNESCO-style polynomial: quadratic in T for
// the salinity coefficient, cubic in T for fresh water. Pure function.
func EquationOfState(t, s float64) float64 {
	rho0 := 999.842594 + 0.06793952*t - 0.009095290*t*t + 0.0001001685*t*t*t
	rhoS := rho0 + (0.824493-0.0040899*t+0.000076438*t*t)*s
	return rhoS / 1000
}

// VelocityAt samples the velocity field at a continuous position via
// bilinear interpolation of the four enclosing cells. Positions are
// clamped to [0, W-1]×[0, H-1] first, so the function is total. At
// exact integer coordinates the result equals the stored cell value.
func (g *FieldGrid) VelocityAt(px, py float64) (u, v float64) {
	px = clamp(px, 0, float64(g.W-1))
	py = clamp(py, 0, float64(g.H-1))

	x0 := int(math.Floor(px))
	y0 := int(math.Floor(py))
	x1 := min(x0+1, g.W-1)
	y1 := min(y0+1, g.H-1)
	fx := px - float64(x0)
	fy := py - float64(y0)

	i00 := g.Idx(x0, y0)
	i10 := g.Idx(x1, y0)
	i01 := g.Idx(x0, y1)
	i11 := g.Idx(x1, y1)

	u = g.U[i00]*(1-fx)*(1-fy) + g.U[i10]*fx*(1-fy) +
		g.U[i01]*(1-fx)*fy + g.U[i11]*fx*fy
	v = g.V[i00]*(1-fx)*(1-fy) + g.V[i10]*fx*(1-fy) +
		g.V[i01]*(1-fx)*fy + g.V[i11]*fx*fy
	return u, v
}

// KineticEnergy returns Σ(u²+v²) over all cells.
func (g *FieldGrid) KineticEnergy() float64 {
	ke := 0.0
	for i := range g.U {
		ke += g.U[i]*g.U[i] + g.V[i]*g.V[i]
	}
	return ke
}

// Speeds returns the per-cell velocity magnitudes as a fresh slice.
func (g *FieldGrid) Speeds() []float64 {
	out := make([]float64, len(g.U))
	for i := range g.U {
		out[i] = math.Hypot(g.U[i], g.V[i])
	}
	return out
}

// CheckFinite reports whether the velocity field contains NaN or Inf.
// The forcing step's speed cap does not clamp non-finite values (the
// IEEE comparison NaN > max is false), so callers that feed external
// parameters can use this to detect propagation.
func (g *FieldGrid) CheckFinite() error {
	for i := range g.U {
		if math.IsNaN(g.U[i]) || math.IsInf(g.U[i], 0) ||
			math.IsNaN(g.V[i]) || math.IsInf(g.V[i], 0) {
			return ErrNonFiniteField
		}
	}
	return nil
}

// clamp bounds v to [lo, hi]. NaN fails every comparison, so the
// inverted first test lands it on lo; indexes derived from clamped
// coordinates stay in range even when the field has gone non-finite.
func clamp(v, lo, hi float64) float64 {
	if !(v >= lo) {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
