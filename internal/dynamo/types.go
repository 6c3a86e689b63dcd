package dynamo

import "math"

type State []float64

func (s State) Clone() State {
	c := make(State, len(s))
	copy(c, s)
	return c
}

func (s State) IsValid() bool {
	for _, v := range s {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// NonNegative reports whether every component is >= 0. Concentration models
// live on the non-negative orthant; integration steps leaving it are rejected.
func (s State) NonNegative() bool {
	for _, v := range s {
		if v < 0 {
			return false
		}
	}
	return true
}

// System is an autonomous ODE system dX/dt = f(X, t).
type System interface {
	Derive(x State, t float64) State
	Dim() int
}

// Validator is implemented by systems whose parameters have a restricted
// domain. Simulations fail fast on an invalid system before stepping.
type Validator interface {
	Validate() error
}

type Configurable interface {
	GetParams() map[string]float64
	SetParam(name string, value float64) error
}

type Integrator interface {
	Step(sys System, x State, t, dt float64) State
}

// AdaptiveIntegrator extends Integrator with error-controlled stepping.
// StepAdaptive returns the trial state, the estimated error ratio against
// tol and the recommended next step size. Callers reject the trial state
// when the ratio exceeds 1.
type AdaptiveIntegrator interface {
	Integrator
	StepAdaptive(sys System, x State, t, dt, tol float64) (State, float64, float64)
}

// Config describes a simulation run: integrate from Start to End and record
// the state every OutStep time units.
type Config struct {
	Start       float64
	End         float64
	OutStep     float64
	Dt          float64 // fixed-step integrators only
	Tolerance   float64 // adaptive integrators only
	MinDt       float64
	MaxDt       float64
	NonNegative bool // reject steps leaving the non-negative orthant
}

func DefaultConfig() Config {
	return Config{
		Start:       0,
		End:         30000,
		OutStep:     1000,
		Dt:          1.0,
		Tolerance:   1e-6,
		MinDt:       1e-6,
		MaxDt:       500,
		NonNegative: true,
	}
}

// Trajectory is a time series of states on the output grid.
type Trajectory struct {
	Times  []float64
	States []State
}

func (tr *Trajectory) Len() int { return len(tr.Times) }

// Project maps each state to a scalar, e.g. a single species or a sum.
func (tr *Trajectory) Project(f func(State) float64) []float64 {
	out := make([]float64, len(tr.States))
	for i, s := range tr.States {
		out[i] = f(s)
	}
	return out
}
