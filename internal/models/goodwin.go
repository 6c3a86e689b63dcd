package models

import (
	"fmt"
	"math"

	"github.com/san-kum/oscifit/internal/dynamo"
)

// Goodwin implements the classic Goodwin genetic oscillator.
// State: [x, y, z] — mRNA, enzyme, end product repressing transcription.
// Sustained oscillations need a steep Hill coefficient (n > 8).
type Goodwin struct {
	A     float64 // maximal transcription rate
	K     float64 // repression threshold
	N     float64 // Hill coefficient
	Alpha float64 // shared first-order decay rate
}

func NewGoodwin() *Goodwin {
	return &Goodwin{A: 1.0, K: 1.0, N: 10.0, Alpha: 0.2}
}

func (g *Goodwin) Dim() int { return 3 }

func (g *Goodwin) Derive(s dynamo.State, _ float64) dynamo.State {
	x, y, z := s[0], s[1], s[2]
	return dynamo.State{
		g.A/(1.0+math.Pow(z/g.K, g.N)) - g.Alpha*x,
		x - g.Alpha*y,
		y - g.Alpha*z,
	}
}

func (g *Goodwin) DefaultState() dynamo.State { return dynamo.State{0.1, 0.2, 2.5} }

func (g *Goodwin) Validate() error {
	if g.A <= 0 || g.K <= 0 || g.Alpha <= 0 {
		return fmt.Errorf("%w: goodwin rates must be positive", dynamo.ErrParameterBounds)
	}
	if g.N <= 0 || g.N > 20 {
		return fmt.Errorf("%w: n must be in (0, 20], got %g", dynamo.ErrParameterBounds, g.N)
	}
	return nil
}

func (g *Goodwin) ParamNames() []string { return []string{"a", "k", "n", "alpha"} }

func (g *Goodwin) ParamVector() []float64 { return []float64{g.A, g.K, g.N, g.Alpha} }

func (g *Goodwin) SetParamVector(theta []float64) error {
	if len(theta) < 4 {
		return fmt.Errorf("goodwin wants 4 parameters, got %d", len(theta))
	}
	g.A, g.K, g.N, g.Alpha = theta[0], theta[1], theta[2], theta[3]
	return g.Validate()
}

func (g *Goodwin) GetParams() map[string]float64 {
	return map[string]float64{"a": g.A, "k": g.K, "n": g.N, "alpha": g.Alpha}
}

func (g *Goodwin) SetParam(name string, value float64) error {
	switch name {
	case "a":
		g.A = value
	case "k":
		g.K = value
	case "n":
		g.N = value
	case "alpha":
		g.Alpha = value
	default:
		return fmt.Errorf("goodwin: unknown parameter %q", name)
	}
	return nil
}
