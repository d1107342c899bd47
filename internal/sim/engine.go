package sim

import (
	"context"
	"fmt"
	"math/rand"
	"strings"

	"gonum.org/v1/gonum/stat"

	"github.com/san-kum/oceansim/internal/ocean"
)

// Engine ties the forcing step and tracer system together and drives
// them in the required order: forcing completes (including the buffer
// swap) before tracers read the field, every tick.
type Engine struct {
	grid    *ocean.FieldGrid
	forcing *ocean.ForcingStep
	tracers *ocean.TracerSystem
	params  ocean.Params

	metrics   []Metric
	observers []Observer
}

// New builds an engine with the default circulation cells and a
// seeded tracer pool. particles <= 0 selects the default pool size.
func New(w, h, particles int, seed int64) *Engine {
	grid := ocean.NewFieldGrid(w, h)
	rng := rand.New(rand.NewSource(seed))
	return &Engine{
		grid:    grid,
		forcing: ocean.NewForcingStep(grid, ocean.DefaultCells(w, h)),
		tracers: ocean.NewTracerSystem(grid, particles, rng),
		params:  ocean.DefaultParams(),
	}
}

// NewWithCells is New with an explicit circulation-cell set.
func NewWithCells(w, h, particles int, seed int64, cells []ocean.CirculationCell) *Engine {
	grid := ocean.NewFieldGrid(w, h)
	rng := rand.New(rand.NewSource(seed))
	return &Engine{
		grid:    grid,
		forcing: ocean.NewForcingStep(grid, cells),
		tracers: ocean.NewTracerSystem(grid, particles, rng),
		params:  ocean.DefaultParams(),
	}
}

func (e *Engine) Grid() *ocean.FieldGrid       { return e.grid }
func (e *Engine) Tracers() *ocean.TracerSystem { return e.tracers }
func (e *Engine) Params() ocean.Params         { return e.params }
func (e *Engine) SetParams(p ocean.Params)     { e.params = p }

func (e *Engine) AddMetric(m Metric)     { e.metrics = append(e.metrics, m) }
func (e *Engine) AddObserver(o Observer) { e.observers = append(e.observers, o) }

// Tick advances the simulation one frame.
func (e *Engine) Tick(dt, timeAcceleration float64) {
	e.forcing.Step(e.params, dt)
	e.tracers.Update(dt, timeAcceleration)
}

// Reset reinitializes the field and rerandomizes the tracer pool.
func (e *Engine) Reset() {
	e.grid.Reset()
	e.tracers.Reset()
}

// Run steps the simulation for cfg.Duration at cfg.Dt, recording the
// kinetic-energy and mean-speed series and feeding every metric and
// observer. Cancellation via ctx returns the partial result.
func (e *Engine) Run(ctx context.Context, cfg Config) (*Result, error) {
	if err := validateConfig(cfg); err != nil {
		return nil, err
	}

	sampleEvery := cfg.SampleEvery
	if sampleEvery < 1 {
		sampleEvery = 1
	}

	steps := int(cfg.Duration / cfg.Dt)
	result := &Result{
		Times:         make([]float64, 0, steps/sampleEvery+1),
		KineticEnergy: make([]float64, 0, steps/sampleEvery+1),
		MeanSpeed:     make([]float64, 0, steps/sampleEvery+1),
		Metrics:       make(map[string]float64),
	}

	for _, m := range e.metrics {
		m.Reset()
	}

	t := 0.0
	for i := 0; i < steps; i++ {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		e.Tick(cfg.Dt, cfg.TimeAcceleration)
		t += cfg.Dt
		result.StepsTaken++

		for _, m := range e.metrics {
			m.Observe(e.grid, e.tracers, t)
		}
		for _, obs := range e.observers {
			obs.OnTick(e.grid, e.tracers, t)
		}

		if i%sampleEvery == 0 {
			result.Times = append(result.Times, t)
			result.KineticEnergy = append(result.KineticEnergy, e.grid.KineticEnergy())
			result.MeanSpeed = append(result.MeanSpeed, stat.Mean(e.grid.Speeds(), nil))
		}

		if cfg.ValidateField {
			if err := e.grid.CheckFinite(); err != nil {
				result.Errors = append(result.Errors, fmt.Errorf("tick %d (t=%.4f): %w", i, t, err))
				break
			}
		}
	}

	for _, m := range e.metrics {
		result.Metrics[m.Name()] = m.Value()
	}

	return result, nil
}

func validateConfig(cfg Config) error {
	if cfg.Dt <= 0 {
		return fmt.Errorf("dt must be positive, got %f", cfg.Dt)
	}
	if cfg.Duration <= 0 {
		return fmt.Errorf("duration must be positive, got %f", cfg.Duration)
	}
	if cfg.TimeAcceleration <= 0 {
		return fmt.Errorf("time acceleration must be positive, got %f", cfg.TimeAcceleration)
	}
	return nil
}

// Summary returns a human-readable state description. Free-form text,
// not a machine-readable contract.
func (e *Engine) Summary() string {
	speeds := e.grid.Speeds()
	mean := stat.Mean(speeds, nil)
	std := stat.StdDev(speeds, nil)
	surface, deep := e.tracers.CountByDepth()

	var sb strings.Builder
	fmt.Fprintf(&sb, "grid %dx%d, avg speed %.4f (σ %.4f)\n", e.grid.W, e.grid.H, mean, std)
	fmt.Fprintf(&sb, "particles: %d surface, %d deep\n", surface, deep)
	fmt.Fprintf(&sb, "forcing: wind %.2f, coriolis %.2f, temp diff %.2f\n",
		e.params.WindStrength, e.params.CoriolisStrength, e.params.TemperatureDiff)
	fmt.Fprintf(&sb, "circulation cells: %d", len(e.forcing.Cells()))
	return sb.String()
}
