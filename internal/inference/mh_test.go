package inference

import (
	"context"
	"fmt"
	"math"
	"testing"

	"golang.org/x/exp/rand"

	"gonum.org/v1/gonum/stat/distuv"

	"github.com/san-kum/oscifit/internal/dynamo"
	"github.com/san-kum/oscifit/internal/models"
)

// decaySystem is a one-parameter exponential decay, cheap enough to
// evaluate thousands of times under the sampler.
type decaySystem struct {
	rate float64
}

func (d *decaySystem) Dim() int { return 1 }
func (d *decaySystem) Derive(x dynamo.State, _ float64) dynamo.State {
	return dynamo.State{-d.rate * x[0]}
}
func (d *decaySystem) DefaultState() dynamo.State { return dynamo.State{1.0} }
func (d *decaySystem) Validate() error {
	if d.rate <= 0 {
		return fmt.Errorf("%w: rate must be positive", dynamo.ErrParameterBounds)
	}
	return nil
}
func (d *decaySystem) ParamNames() []string   { return []string{"rate"} }
func (d *decaySystem) ParamVector() []float64 { return []float64{d.rate} }
func (d *decaySystem) SetParamVector(theta []float64) error {
	if len(theta) < 1 {
		return fmt.Errorf("decay wants 1 parameter")
	}
	d.rate = theta[0]
	return d.Validate()
}
func (d *decaySystem) GetParams() map[string]float64 { return map[string]float64{"rate": d.rate} }
func (d *decaySystem) SetParam(name string, v float64) error {
	d.rate = v
	return nil
}

func decayModel(obs Dataset) *Model {
	return &Model{
		Params: []Parameter{
			{Name: "rate", Prior: distuv.Uniform{Min: 0.01, Max: 1.0}, Min: 0.01, Max: 1.0},
		},
		NewSystem:  func() models.Model { return &decaySystem{rate: 0.5} },
		Integrator: "rk45",
		Init:       dynamo.State{1.0},
		Cfg: dynamo.Config{
			Start: 0, End: 10, OutStep: 1,
			Tolerance: 1e-8, MinDt: 1e-9, MaxDt: 1,
		},
		Project:    func(s dynamo.State) float64 { return s[0] },
		Obs:        obs,
		FixedSigma: 0.05,
	}
}

func decayObservations(rate float64) Dataset {
	times := make([]float64, 11)
	values := make([]float64, 11)
	for i := range times {
		times[i] = float64(i)
		values[i] = math.Exp(-rate * float64(i))
	}
	return Dataset{Times: times, Values: values}
}

func TestMH_RecoversDecayRate(t *testing.T) {
	m := decayModel(decayObservations(0.3))

	s := NewMH(m)
	s.Iterations = 500
	s.BurnIn = 300
	s.Chains = 2
	s.Seed = 11

	res, err := s.Run(context.Background())
	if err != nil {
		t.Fatalf("sampler failed: %v", err)
	}

	set := res.Merged()
	if set.Len() != 1000 {
		t.Fatalf("expected 1000 merged draws, got %d", set.Len())
	}

	col, err := set.ColumnByName("rate")
	if err != nil {
		t.Fatal(err)
	}
	mean := 0.0
	for _, v := range col {
		mean += v
	}
	mean /= float64(len(col))

	if math.Abs(mean-0.3) > 0.05 {
		t.Errorf("posterior mean %f too far from true rate 0.3", mean)
	}

	for _, c := range res.Chains {
		if c.AcceptRate <= 0 || c.AcceptRate >= 1 {
			t.Errorf("implausible acceptance rate %f", c.AcceptRate)
		}
	}
}

func TestMH_Deterministic(t *testing.T) {
	obs := decayObservations(0.3)

	run := func() [][]float64 {
		s := NewMH(decayModel(obs))
		s.Iterations = 50
		s.BurnIn = 20
		s.Chains = 2
		s.Seed = 42
		res, err := s.Run(context.Background())
		if err != nil {
			t.Fatalf("sampler failed: %v", err)
		}
		return res.Merged().Draws
	}

	a, b := run(), run()
	if len(a) != len(b) {
		t.Fatalf("draw counts differ: %d vs %d", len(a), len(b))
	}
	for i := range a {
		for j := range a[i] {
			if a[i][j] != b[i][j] {
				t.Fatalf("draw %d differs between seeded runs", i)
			}
		}
	}
}

func TestMH_DrawsRespectBounds(t *testing.T) {
	s := NewMH(decayModel(decayObservations(0.3)))
	s.Iterations = 100
	s.BurnIn = 50
	s.Chains = 1
	s.Seed = 3

	res, err := s.Run(context.Background())
	if err != nil {
		t.Fatalf("sampler failed: %v", err)
	}
	for _, d := range res.Merged().Draws {
		if d[0] < 0.01 || d[0] > 1.0 {
			t.Fatalf("draw %g escaped the prior bounds", d[0])
		}
	}
}

func TestMH_Cancel(t *testing.T) {
	s := NewMH(decayModel(decayObservations(0.3)))
	s.Iterations = 100000
	s.BurnIn = 0
	s.Chains = 1

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := s.Run(ctx); err == nil {
		t.Error("expected cancellation error")
	}
}

func TestMH_ProgressReported(t *testing.T) {
	s := NewMH(decayModel(decayObservations(0.3)))
	s.Iterations = 100
	s.BurnIn = 0
	s.Chains = 1
	s.ReportEvery = 25

	var events []Progress
	s.Progress = func(p Progress) { events = append(events, p) }

	if _, err := s.Run(context.Background()); err != nil {
		t.Fatalf("sampler failed: %v", err)
	}
	if len(events) != 4 {
		t.Errorf("expected 4 progress events, got %d", len(events))
	}
}

func TestSamplePrior(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	params := DefaultHes1Priors()

	draws := SamplePrior(params, 20, rng)
	if len(draws) != 20 {
		t.Fatalf("expected 20 draws, got %d", len(draws))
	}
	for _, d := range draws {
		if len(d) != len(params) {
			t.Fatalf("expected %d columns, got %d", len(params), len(d))
		}
		for j, p := range params {
			if d[j] < p.Min || d[j] > p.Max {
				t.Errorf("draw for %s out of bounds: %g", p.Name, d[j])
			}
		}
	}
}
