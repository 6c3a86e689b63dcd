package inference

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// Diagnostic holds convergence statistics for one parameter: the split
// potential-scale-reduction statistic and the effective sample size summed
// across chains.
type Diagnostic struct {
	Name string
	RHat float64
	ESS  float64
}

func (r *Result) Diagnostics() []Diagnostic {
	out := make([]Diagnostic, len(r.Names))
	for i, name := range r.Names {
		halves := make([][]float64, 0, 2*len(r.Chains))
		ess := 0.0
		for _, c := range r.Chains {
			col := c.Column(i)
			if len(col) >= 4 {
				mid := len(col) / 2
				halves = append(halves, col[:mid], col[mid:])
			}
			ess += EffectiveSampleSize(col)
		}
		out[i] = Diagnostic{Name: name, RHat: GelmanRubin(halves), ESS: ess}
	}
	return out
}

// GelmanRubin computes the potential scale reduction statistic over the
// given sequences (pass split chain halves for split-Rhat). Values near 1
// indicate the sequences agree; above ~1.05 they have not mixed.
func GelmanRubin(seqs [][]float64) float64 {
	m := len(seqs)
	if m < 2 {
		return math.NaN()
	}
	n := len(seqs[0])
	for _, s := range seqs {
		if len(s) < n {
			n = len(s)
		}
	}
	if n < 2 {
		return math.NaN()
	}

	means := make([]float64, m)
	within := 0.0
	for i, s := range seqs {
		means[i] = stat.Mean(s[:n], nil)
		within += stat.Variance(s[:n], nil)
	}
	within /= float64(m)

	between := float64(n) * stat.Variance(means, nil)

	if within == 0 {
		return 1.0
	}
	varPlus := float64(n-1)/float64(n)*within + between/float64(n)
	return math.Sqrt(varPlus / within)
}

// EffectiveSampleSize estimates the number of independent draws in an
// autocorrelated series using Geyer's initial positive sequence rule.
func EffectiveSampleSize(x []float64) float64 {
	n := len(x)
	if n < 4 {
		return float64(n)
	}

	mean := stat.Mean(x, nil)
	c0 := 0.0
	for _, v := range x {
		c0 += (v - mean) * (v - mean)
	}
	c0 /= float64(n)
	if c0 == 0 {
		return float64(n)
	}

	autocov := func(lag int) float64 {
		s := 0.0
		for i := 0; i < n-lag; i++ {
			s += (x[i] - mean) * (x[i+lag] - mean)
		}
		return s / float64(n)
	}

	sum := 0.0
	for lag := 1; lag+1 < n; lag += 2 {
		pair := (autocov(lag) + autocov(lag+1)) / c0
		if pair <= 0 {
			break
		}
		sum += pair
	}

	ess := float64(n) / (1 + 2*sum)
	if ess > float64(n) {
		return float64(n)
	}
	return ess
}
