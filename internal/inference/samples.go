package inference

import (
	"fmt"

	"github.com/montanaflynn/stats"
)

// ChainResult holds one chain's kept draws.
type ChainResult struct {
	Draws      [][]float64
	LogPost    []float64
	AcceptRate float64
}

// Column extracts one parameter's series from the chain.
func (c *ChainResult) Column(i int) []float64 {
	col := make([]float64, len(c.Draws))
	for k, d := range c.Draws {
		col[k] = d[i]
	}
	return col
}

// Result is the output of a sampler run: named parameters and per-chain
// draws. Merged pools the chains into the flat sample set the aggregator
// consumes.
type Result struct {
	Names  []string
	Chains []*ChainResult
}

// SampleSet is an immutable collection of posterior parameter vectors.
type SampleSet struct {
	Names []string
	Draws [][]float64
}

func (r *Result) Merged() *SampleSet {
	total := 0
	for _, c := range r.Chains {
		total += len(c.Draws)
	}
	draws := make([][]float64, 0, total)
	for _, c := range r.Chains {
		draws = append(draws, c.Draws...)
	}
	return &SampleSet{Names: append([]string(nil), r.Names...), Draws: draws}
}

func (s *SampleSet) Len() int { return len(s.Draws) }

func (s *SampleSet) Column(i int) []float64 {
	col := make([]float64, len(s.Draws))
	for k, d := range s.Draws {
		col[k] = d[i]
	}
	return col
}

func (s *SampleSet) ColumnByName(name string) ([]float64, error) {
	for i, n := range s.Names {
		if n == name {
			return s.Column(i), nil
		}
	}
	return nil, fmt.Errorf("inference: no parameter named %q", name)
}

// SigmaIndex returns the index of the noise-scale column, or -1.
func (s *SampleSet) SigmaIndex() int {
	for i, n := range s.Names {
		if n == "sigma" {
			return i
		}
	}
	return -1
}

// ParamSummary is the marginal posterior summary of one parameter.
type ParamSummary struct {
	Name   string
	Mean   float64
	StdDev float64
	Median float64
	Q025   float64
	Q975   float64
}

// Summary computes marginal summaries for every parameter.
func (s *SampleSet) Summary() []ParamSummary {
	out := make([]ParamSummary, len(s.Names))
	for i, name := range s.Names {
		col := s.Column(i)
		mean, _ := stats.Mean(col)
		sd, _ := stats.StdDevS(col)
		median, _ := stats.Median(col)
		lo, _ := stats.Percentile(col, 2.5)
		hi, _ := stats.Percentile(col, 97.5)
		out[i] = ParamSummary{Name: name, Mean: mean, StdDev: sd, Median: median, Q025: lo, Q975: hi}
	}
	return out
}
