package inference

import (
	"math"
	"testing"

	"golang.org/x/exp/rand"

	"gonum.org/v1/gonum/stat/distuv"
)

func TestParameterLogPrior(t *testing.T) {
	p := Parameter{Name: "x", Prior: distuv.Uniform{Min: 0, Max: 2}, Min: 0, Max: 2}

	if lp := p.LogPrior(1.0); math.Abs(lp-math.Log(0.5)) > 1e-12 {
		t.Errorf("uniform log density: got %f, want %f", lp, math.Log(0.5))
	}
	if lp := p.LogPrior(-0.1); !math.IsInf(lp, -1) {
		t.Errorf("below bounds should give -Inf, got %f", lp)
	}
	if lp := p.LogPrior(2.1); !math.IsInf(lp, -1) {
		t.Errorf("above bounds should give -Inf, got %f", lp)
	}
}

func TestParameterReflect(t *testing.T) {
	p := Parameter{Min: 1, Max: 3}

	tests := []struct{ in, want float64 }{
		{2, 2},
		{0.5, 1.5},
		{3.5, 2.5},
		{1, 1},
		{3, 3},
	}
	for _, tt := range tests {
		if got := p.Reflect(tt.in); math.Abs(got-tt.want) > 1e-12 {
			t.Errorf("Reflect(%g): got %g, want %g", tt.in, got, tt.want)
		}
	}
}

func TestParameterSampleWithinBounds(t *testing.T) {
	rng := rand.New(rand.NewSource(8))
	p := Parameter{
		Name:  "sigma",
		Prior: distuv.LogNormal{Mu: math.Log(0.8), Sigma: 0.5},
		Min:   0.05,
		Max:   5.0,
	}

	for i := 0; i < 1000; i++ {
		v := p.Sample(rng)
		if v < p.Min || v > p.Max {
			t.Fatalf("sample %g escaped bounds [%g, %g]", v, p.Min, p.Max)
		}
	}
}

func TestDefaultPriors(t *testing.T) {
	for _, params := range [][]Parameter{DefaultHes1Priors(), DefaultGoodwinPriors()} {
		if len(params) != 5 {
			t.Fatalf("expected 4 theta params + sigma, got %d", len(params))
		}
		if params[len(params)-1].Name != "sigma" {
			t.Error("noise parameter must be named sigma and stay last")
		}
		for _, p := range params {
			if p.Min >= p.Max {
				t.Errorf("%s: bad bounds [%g, %g]", p.Name, p.Min, p.Max)
			}
		}
	}
}
