package ocean

import "math"

const (
	damping       = 0.95
	cellRadius    = 15.0
	windScale     = 0.1
	coriolisScale = 0.01
	pressureScale = -0.01
	buoyancyScale = 0.05
)

// Params are the externally supplied forcing scalars. Values are used
// as-is; out-of-range inputs scale the forcing rather than fail.
type Params struct {
	WindStrength     float64
	CoriolisStrength float64
	TemperatureDiff  float64
}

// DefaultParams returns unit forcing on all terms.
func DefaultParams() Params {
	return Params{WindStrength: 1, CoriolisStrength: 1, TemperatureDiff: 1}
}

// ForcingStep advances a FieldGrid's velocity one timestep. It holds
// the circulation cells it superposes; the cell slice is read-only.
type ForcingStep struct {
	grid  *FieldGrid
	cells []CirculationCell
}

func NewForcingStep(g *FieldGrid, cells []CirculationCell) *ForcingStep {
	return &ForcingStep{grid: g, cells: cells}
}

// Cells returns the circulation cells driving this step.
func (f *ForcingStep) Cells() []CirculationCell { return f.cells }

// Step computes the next velocity field from wind, Coriolis rotation,
// pressure gradient, buoyancy and circulation-cell forcing, then swaps
// the grid's ping-pong buffers.
//
// Every read goes to the previous step's arrays, so the result is
// independent of sweep order. The boundary ring is copied through
// unchanged; only interior cells are updated. After combining, each
// cell's speed is capped at MaxSpeed with direction preserved.
func (f *ForcingStep) Step(p Params, dt float64) {
	g := f.grid
	copy(g.nextU, g.U)
	copy(g.nextV, g.V)

	for y := 1; y < g.H-1; y++ {
		lat := g.Latitude(y)
		latRad := lat * math.Pi / 180

		// Meridional wind depends only on latitude.
		windV := p.WindStrength * math.Sin(lat*math.Pi/90) * 0.3
		// Coriolis parameter f = 2Ω sin(lat).
		fCor := 2 * p.CoriolisStrength * math.Sin(latRad)

		for x := 1; x < g.W-1; x++ {
			i := g.Idx(x, y)
			u, v := g.U[i], g.V[i]

			windU := p.WindStrength * math.Cos(latRad) *
				math.Sin(float64(x)/float64(g.W)*6*math.Pi)

			corU := fCor * v
			corV := -fCor * u

			// Pressure stays zero after initialization, so these
			// terms are inert in practice. Kept deliberately.
			gradU := pressureScale * (g.Pressure[i+1] - g.Pressure[i-1])
			gradV := pressureScale * (g.Pressure[i+g.W] - g.Pressure[i-g.W])

			buoyV := p.TemperatureDiff * buoyancyScale *
				(g.Density[i-g.W] - g.Density[i+g.W])

			circU, circV := f.cellForcing(float64(x), float64(y))

			nu := damping * (u + dt*(windScale*windU+coriolisScale*corU+gradU+circU))
			nv := damping * (v + dt*(windScale*windV+coriolisScale*corV+gradV+buoyV+circV))

			// Speed cap. NaN compares false here, so non-finite
			// inputs propagate uncapped; see FieldGrid.CheckFinite.
			if sp := math.Sqrt(nu*nu + nv*nv); sp > MaxSpeed {
				nu = nu / sp * MaxSpeed
				nv = nv / sp * MaxSpeed
			}

			g.nextU[i] = nu
			g.nextV[i] = nv
		}
	}

	g.swap()
}

// cellForcing sums the tangential contributions of every circulation
// cell within cellRadius of (x, y). The contribution is the radial
// direction rotated 90°, with falloff linear in distance.
func (f *ForcingStep) cellForcing(x, y float64) (u, v float64) {
	for _, c := range f.cells {
		dx, dy := x-c.CX, y-c.CY
		d := math.Hypot(dx, dy)
		if d >= cellRadius || d < 1e-9 {
			continue
		}
		s := c.Strength * (1 - d/cellRadius) * 0.1
		if c.Clockwise {
			u += s * dy / d
			v -= s * dx / d
		} else {
			u -= s * dy / d
			v += s * dx / d
		}
	}
	return u, v
}
