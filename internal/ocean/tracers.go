package ocean

import "math/rand"

const (
	// ParticleCount is the default tracer pool size.
	ParticleCount = 200

	// MaxAge is the particle lifetime in simulation seconds; crossing
	// it triggers an atomic respawn (new position, age zero).
	MaxAge = 20.0

	// deepFraction of particles are tagged Deep at spawn.
	deepFraction = 0.2

	smoothing = 0.99
)

// Depth tags a particle as belonging to the surface or deep layer.
type Depth int

const (
	Surface Depth = iota
	Deep
)

func (d Depth) String() string {
	if d == Deep {
		return "deep"
	}
	return "surface"
}

// Particle is a passive tracer advected by the velocity field.
// Position is continuous in grid coordinates, not snapped to cells.
// Temperature and salinity track the local field through an
// exponential low-pass filter rather than an instantaneous copy.
type Particle struct {
	X, Y        float64
	Age         float64
	Temperature float64
	Salinity    float64
	Depth       Depth
}

// TracerSystem owns a fixed pool of particles. It reads the FieldGrid
// and never mutates it. The random source is injected so respawn
// positions are reproducible under a fixed seed.
type TracerSystem struct {
	grid      *FieldGrid
	particles []Particle
	rng       *rand.Rand
}

// NewTracerSystem creates n particles at random positions with random
// initial ages. n <= 0 selects ParticleCount. The pool size never
// changes afterwards.
func NewTracerSystem(g *FieldGrid, n int, rng *rand.Rand) *TracerSystem {
	if n <= 0 {
		n = ParticleCount
	}
	ts := &TracerSystem{
		grid:      g,
		particles: make([]Particle, n),
		rng:       rng,
	}
	for i := range ts.particles {
		ts.spawn(&ts.particles[i], rng.Float64()*MaxAge)
	}
	return ts
}

func (ts *TracerSystem) spawn(pt *Particle, age float64) {
	pt.X = ts.rng.Float64() * float64(ts.grid.W)
	pt.Y = ts.rng.Float64() * float64(ts.grid.H)
	pt.Age = age

	ci := ts.cellIndex(pt)
	pt.Temperature = ts.grid.Temperature[ci]
	pt.Salinity = ts.grid.Salinity[ci]

	if ts.rng.Float64() < deepFraction {
		pt.Depth = Deep
	} else {
		pt.Depth = Surface
	}
}

// cellIndex is the flat index of the cell containing the particle,
// with the position clamped into range first.
func (ts *TracerSystem) cellIndex(pt *Particle) int {
	x := int(clamp(pt.X, 0, float64(ts.grid.W-1)))
	y := int(clamp(pt.Y, 0, float64(ts.grid.H-1)))
	return ts.grid.Idx(x, y)
}

// Particles returns the particle pool for read-only iteration.
func (ts *TracerSystem) Particles() []Particle { return ts.particles }

// CountByDepth returns the number of surface and deep particles.
func (ts *TracerSystem) CountByDepth() (surface, deep int) {
	for i := range ts.particles {
		if ts.particles[i].Depth == Deep {
			deep++
		} else {
			surface++
		}
	}
	return surface, deep
}

// Update advances every particle one tick: clamp, sample the velocity
// by bilinear interpolation, integrate position, wrap toroidally,
// smooth the carried properties toward the local field, and age.
// Particles older than MaxAge respawn at a random position with age
// zero; position and age change together, never one without the other.
func (ts *TracerSystem) Update(dt, timeAcceleration float64) {
	g := ts.grid
	w, h := float64(g.W), float64(g.H)

	for i := range ts.particles {
		pt := &ts.particles[i]

		// Guard against stale out-of-range state before sampling.
		pt.X = clamp(pt.X, 0, w-1)
		pt.Y = clamp(pt.Y, 0, h-1)

		u, v := g.VelocityAt(pt.X, pt.Y)
		pt.X += u * dt * timeAcceleration
		pt.Y += v * dt * timeAcceleration

		// Toroidal wraparound: exit one edge, re-enter the opposite.
		if pt.X < 0 {
			pt.X = w - 1
		} else if pt.X >= w {
			pt.X = 0
		}
		if pt.Y < 0 {
			pt.Y = h - 1
		} else if pt.Y >= h {
			pt.Y = 0
		}

		// Clamped again rather than trusting the wrap: a non-finite
		// velocity leaves the position NaN, and the index must stay
		// in range regardless.
		ci := g.Idx(int(clamp(pt.X, 0, w-1)), int(clamp(pt.Y, 0, h-1)))
		pt.Temperature = smoothing*pt.Temperature + (1-smoothing)*g.Temperature[ci]
		pt.Salinity = smoothing*pt.Salinity + (1-smoothing)*g.Salinity[ci]

		pt.Age += dt
		if pt.Age > MaxAge {
			ts.spawn(pt, 0)
		}
	}
}

// Reset rerandomizes the whole pool, as at construction.
func (ts *TracerSystem) Reset() {
	for i := range ts.particles {
		ts.spawn(&ts.particles[i], ts.rng.Float64()*MaxAge)
	}
}
