package sim

import (
	"context"
	"sync"

	"github.com/san-kum/oceansim/internal/ocean"
)

// Ensemble runs independent engines with consecutive seeds, one per
// goroutine. Each engine owns its own grid and tracer pool, so runs
// share nothing.
type Ensemble struct {
	w, h      int
	particles int
	params    ocean.Params
	numRuns   int
	seedStart int64
}

func NewEnsemble(w, h, particles, numRuns int, seedStart int64, params ocean.Params) *Ensemble {
	return &Ensemble{
		w: w, h: h,
		particles: particles,
		params:    params,
		numRuns:   numRuns,
		seedStart: seedStart,
	}
}

func (e *Ensemble) Run(ctx context.Context, cfg Config) ([]*Result, error) {
	results := make([]*Result, e.numRuns)
	errs := make([]error, e.numRuns)

	var wg sync.WaitGroup
	for i := 0; i < e.numRuns; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()

			cfgCopy := cfg
			cfgCopy.Seed = e.seedStart + int64(idx)

			eng := New(e.w, e.h, e.particles, cfgCopy.Seed)
			eng.SetParams(e.params)

			results[idx], errs[idx] = eng.Run(ctx, cfgCopy)
		}(i)
	}

	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	return results, nil
}
