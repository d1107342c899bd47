package metrics

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/san-kum/oceansim/internal/ocean"
	"github.com/san-kum/oceansim/internal/sim"
)

// KineticEnergy reports the time-averaged Σ(u²+v²) over the field.
type KineticEnergy struct {
	name    string
	total   float64
	samples int
}

func NewKineticEnergy() *KineticEnergy {
	return &KineticEnergy{name: "kinetic_energy"}
}

func (k *KineticEnergy) Name() string { return k.name }

func (k *KineticEnergy) Observe(g *ocean.FieldGrid, _ *ocean.TracerSystem, _ float64) {
	k.total += g.KineticEnergy()
	k.samples++
}

func (k *KineticEnergy) Value() float64 {
	if k.samples == 0 {
		return 0
	}
	return k.total / float64(k.samples)
}

func (k *KineticEnergy) Reset() {
	k.total = 0
	k.samples = 0
}

// MaxSpeed tracks the largest cell speed seen over a run. With the
// forcing cap in place it should never exceed ocean.MaxSpeed.
type MaxSpeed struct {
	name string
	max  float64
}

func NewMaxSpeed() *MaxSpeed { return &MaxSpeed{name: "max_speed"} }

func (m *MaxSpeed) Name() string { return m.name }

func (m *MaxSpeed) Observe(g *ocean.FieldGrid, _ *ocean.TracerSystem, _ float64) {
	for i := range g.U {
		if sp := math.Hypot(g.U[i], g.V[i]); sp > m.max {
			m.max = sp
		}
	}
}

func (m *MaxSpeed) Value() float64 { return m.max }
func (m *MaxSpeed) Reset()         { m.max = 0 }

// MeanSpeed reports the time-averaged mean cell speed.
type MeanSpeed struct {
	name    string
	total   float64
	samples int
}

func NewMeanSpeed() *MeanSpeed { return &MeanSpeed{name: "mean_speed"} }

func (m *MeanSpeed) Name() string { return m.name }

func (m *MeanSpeed) Observe(g *ocean.FieldGrid, _ *ocean.TracerSystem, _ float64) {
	m.total += stat.Mean(g.Speeds(), nil)
	m.samples++
}

func (m *MeanSpeed) Value() float64 {
	if m.samples == 0 {
		return 0
	}
	return m.total / float64(m.samples)
}

func (m *MeanSpeed) Reset() {
	m.total = 0
	m.samples = 0
}

// ParticleAge reports the mean tracer age at the end of a run.
type ParticleAge struct {
	name string
	mean float64
}

func NewParticleAge() *ParticleAge { return &ParticleAge{name: "particle_age"} }

func (p *ParticleAge) Name() string { return p.name }

func (p *ParticleAge) Observe(_ *ocean.FieldGrid, tr *ocean.TracerSystem, _ float64) {
	pts := tr.Particles()
	if len(pts) == 0 {
		p.mean = 0
		return
	}
	ages := make([]float64, len(pts))
	for i := range pts {
		ages[i] = pts[i].Age
	}
	p.mean = stat.Mean(ages, nil)
}

func (p *ParticleAge) Value() float64 { return p.mean }
func (p *ParticleAge) Reset()         { p.mean = 0 }

// Default returns the standard metric set for a run.
func Default() []sim.Metric {
	return []sim.Metric{
		NewKineticEnergy(),
		NewMaxSpeed(),
		NewMeanSpeed(),
		NewParticleAge(),
	}
}
