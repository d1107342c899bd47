package sim

import "github.com/san-kum/oceansim/internal/ocean"

// Metric observes the field and tracers each tick and reduces them to
// a single value at the end of a run.
type Metric interface {
	Name() string
	Observe(g *ocean.FieldGrid, tr *ocean.TracerSystem, t float64)
	Value() float64
	Reset()
}

// Observer receives a callback after every completed tick.
type Observer interface {
	OnTick(g *ocean.FieldGrid, tr *ocean.TracerSystem, t float64)
}

// Config controls a headless run.
type Config struct {
	Dt               float64
	Duration         float64
	TimeAcceleration float64
	Seed             int64

	// ValidateField checks the velocity field for NaN/Inf after each
	// tick and aborts the run on the first hit. The numerical core
	// never validates on its own; see ocean.FieldGrid.CheckFinite.
	ValidateField bool

	// SampleEvery records the time series every n ticks (1 = all).
	SampleEvery int
}

// DefaultConfig mirrors the interactive defaults.
func DefaultConfig() Config {
	return Config{
		Dt:               0.016,
		Duration:         60.0,
		TimeAcceleration: 5.0,
		SampleEvery:      1,
	}
}

// Result holds the recorded time series and final metric values.
type Result struct {
	Times         []float64
	KineticEnergy []float64
	MeanSpeed     []float64
	Metrics       map[string]float64
	StepsTaken    int
	Errors        []error
}
