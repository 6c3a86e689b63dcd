package optim

import (
	"context"
	"fmt"
	"math"
	"testing"

	"gonum.org/v1/gonum/stat/distuv"

	"github.com/san-kum/oscifit/internal/dynamo"
	"github.com/san-kum/oscifit/internal/inference"
	"github.com/san-kum/oscifit/internal/models"
)

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

func decayModel() *inference.Model {
	trueRate := 0.3
	times := make([]float64, 11)
	values := make([]float64, 11)
	for i := range times {
		times[i] = float64(i)
		values[i] = math.Exp(-trueRate * times[i])
	}
	return &inference.Model{
		Params: []inference.Parameter{
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
		Obs:        inference.Dataset{Times: times, Values: values},
		FixedSigma: 0.05,
	}
}

func TestGridSearch_FindsMode(t *testing.T) {
	gs := NewGridSearch(decayModel().Params, 50)
	theta, lp, err := gs.Search(context.Background(), decayModel())
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if math.IsInf(lp, -1) {
		t.Fatal("no finite grid point found")
	}
	// Noiseless data, so the mode sits at the grid point nearest the true
	// rate. Grid spacing is (1.0-0.01)/50.
	if math.Abs(theta[0]-0.3) > 0.02 {
		t.Errorf("mode rate = %v, want near 0.3", theta[0])
	}
}

func TestGridSearch_Cancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, _, err := NewGridSearch(decayModel().Params, 10).Search(ctx, decayModel()); err == nil {
		t.Fatal("expected error from cancelled search")
	}
}
