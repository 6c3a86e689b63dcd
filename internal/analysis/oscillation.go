// Package analysis provides diagnostics for simulated trajectories:
// oscillation detection by counting interior extrema and period estimation
// from the power spectrum.
package analysis

import (
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
)

// Extrema counts strict interior local maxima and minima of a series.
func Extrema(x []float64) (maxima, minima int) {
	for i := 1; i < len(x)-1; i++ {
		if x[i] > x[i-1] && x[i] > x[i+1] {
			maxima++
		}
		if x[i] < x[i-1] && x[i] < x[i+1] {
			minima++
		}
	}
	return maxima, minima
}

// IsOscillatory reports whether the series shows sustained oscillation:
// at least two local maxima separated by a local minimum.
func IsOscillatory(x []float64) bool {
	maxima, minima := Extrema(x)
	return maxima >= 2 && minima >= 1
}

// PowerSpectrum returns the magnitude spectrum of the series up to the
// Nyquist bin.
func PowerSpectrum(x []float64) []float64 {
	coeffs := fft.FFTReal(x)
	ps := make([]float64, len(coeffs)/2)
	for i := range ps {
		ps[i] = cmplx.Abs(coeffs[i])
	}
	return ps
}

// DominantPeriod estimates the oscillation period of a series sampled at
// interval dt from the strongest non-DC spectral bin. Returns 0 when the
// series is too short or flat.
func DominantPeriod(x []float64, dt float64) float64 {
	ps := PowerSpectrum(x)
	if len(ps) < 2 {
		return 0
	}

	maxPower, maxIdx := 0.0, 0
	for i := 1; i < len(ps); i++ {
		if ps[i] > maxPower {
			maxPower = ps[i]
			maxIdx = i
		}
	}
	if maxIdx == 0 {
		return 0
	}
	return float64(len(x)) * dt / float64(maxIdx)
}
