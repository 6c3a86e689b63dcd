package band

import (
	"sync"

	"golang.org/x/exp/rand"

	"gonum.org/v1/gonum/stat/distuv"
)

// SigmaFunc extracts the observation noise scale from a parameter vector.
type SigmaFunc func(theta []float64) float64

// ConstSigma ignores the draw and always uses the supplied scale.
func ConstSigma(sigma float64) SigmaFunc {
	return func([]float64) float64 { return sigma }
}

// SigmaAt reads the noise scale from a column of the draw, falling back to
// the supplied scale for shorter vectors.
func SigmaAt(index int, fallback float64) SigmaFunc {
	return func(theta []float64) float64 {
		if index >= 0 && index < len(theta) {
			return theta[index]
		}
		return fallback
	}
}

// WithNoise wraps a SeriesFunc so each simulated value gets independent
// N(0, sigma) noise added, turning a credible band into a posterior
// predictive band. The source is guarded by a mutex so the wrapped function
// stays safe under Aggregate's parallel workers, at the cost of making the
// draw order (and therefore exact output) scheduling-dependent.
func WithNoise(series SeriesFunc, sigma SigmaFunc, src rand.Source) SeriesFunc {
	var mu sync.Mutex
	return func(theta []float64) ([]float64, []float64, error) {
		times, values, err := series(theta)
		if err != nil {
			return nil, nil, err
		}
		dist := distuv.Normal{Mu: 0, Sigma: sigma(theta), Src: src}

		noisy := make([]float64, len(values))
		mu.Lock()
		for i, v := range values {
			noisy[i] = v + dist.Rand()
		}
		mu.Unlock()
		return times, noisy, nil
	}
}
