// Package band aggregates trajectories simulated from a set of parameter
// draws into per-time-point credible interval ribbons.
package band

import (
	"errors"
	"fmt"
	"math"
	"runtime"
	"sort"
	"sync"

	"gonum.org/v1/gonum/stat"
)

// SeriesFunc produces one projected time series for a parameter vector.
// Every call must return the same time grid.
type SeriesFunc func(theta []float64) (times, values []float64, err error)

// tolerance for comparing output grids across samples
const gridTol = 1e-9

var (
	// ErrNoSamples indicates an empty parameter sample collection.
	ErrNoSamples = errors.New("band: no parameter samples")

	// ErrGridMismatch indicates trajectories with differing time grids.
	ErrGridMismatch = errors.New("band: trajectory time grids do not match")
)

type Options struct {
	Lower   float64 // lower quantile level, default 0.025
	Upper   float64 // upper quantile level, default 0.975
	Workers int     // parallel simulations, default NumCPU
}

// Band holds the aggregated ribbon: per time point the mean of the projected
// quantity across samples and its empirical quantile bounds. With a single
// sample the bounds degenerate to the mean (zero-width band).
type Band struct {
	Times []float64
	Mean  []float64
	Lower []float64
	Upper []float64
}

// Aggregate simulates once per parameter sample and reduces column-wise.
// Simulations run in parallel and are merged by sample index; mean and
// quantiles do not depend on sample order.
func Aggregate(samples [][]float64, series SeriesFunc, opts Options) (*Band, error) {
	if len(samples) == 0 {
		return nil, ErrNoSamples
	}
	if opts.Lower == 0 && opts.Upper == 0 {
		opts.Lower, opts.Upper = 0.025, 0.975
	}
	if opts.Lower < 0 || opts.Upper > 1 || opts.Lower >= opts.Upper {
		return nil, fmt.Errorf("band: invalid quantile levels [%g, %g]", opts.Lower, opts.Upper)
	}
	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	n := len(samples)
	times := make([][]float64, n)
	values := make([][]float64, n)
	errs := make([]error, n)

	sem := make(chan struct{}, workers)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		sem <- struct{}{}
		go func(idx int) {
			defer wg.Done()
			defer func() { <-sem }()
			times[idx], values[idx], errs[idx] = series(samples[idx])
		}(i)
	}
	wg.Wait()

	for i, err := range errs {
		if err != nil {
			return nil, fmt.Errorf("band: sample %d: %w", i, err)
		}
	}

	grid := times[0]
	for i := 1; i < n; i++ {
		if len(times[i]) != len(grid) {
			return nil, fmt.Errorf("%w: sample %d has %d points, want %d",
				ErrGridMismatch, i, len(times[i]), len(grid))
		}
		for j, tj := range times[i] {
			if math.Abs(tj-grid[j]) > gridTol {
				return nil, fmt.Errorf("%w: sample %d has time %g at point %d, want %g",
					ErrGridMismatch, i, tj, j, grid[j])
			}
		}
	}

	b := &Band{
		Times: grid,
		Mean:  make([]float64, len(grid)),
		Lower: make([]float64, len(grid)),
		Upper: make([]float64, len(grid)),
	}

	col := make([]float64, n)
	for t := range grid {
		for s := 0; s < n; s++ {
			col[s] = values[s][t]
		}
		b.Mean[t] = stat.Mean(col, nil)

		sorted := append([]float64(nil), col...)
		sort.Float64s(sorted)
		b.Lower[t] = quantile(sorted, opts.Lower)
		b.Upper[t] = quantile(sorted, opts.Upper)
	}

	return b, nil
}

// quantile interpolates linearly between order statistics (rank h = (n-1)p).
func quantile(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 1 {
		return sorted[0]
	}
	h := float64(n-1) * p
	i := int(math.Floor(h))
	if i >= n-1 {
		return sorted[n-1]
	}
	return sorted[i] + (h-float64(i))*(sorted[i+1]-sorted[i])
}

// Width returns the per-time-point width of the ribbon.
func (b *Band) Width() []float64 {
	w := make([]float64, len(b.Times))
	for i := range w {
		w[i] = b.Upper[i] - b.Lower[i]
	}
	return w
}
