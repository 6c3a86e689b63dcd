package inference

import (
	"context"
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat/distuv"

	"github.com/san-kum/oscifit/internal/band"
	"github.com/san-kum/oscifit/internal/dynamo"
	"github.com/san-kum/oscifit/internal/integrators"
	"github.com/san-kum/oscifit/internal/models"
)

// Model ties an ODE system, its priors and a set of observations into a
// log-posterior the sampler can walk. The parameter list defines the
// probabilistic model: ordered (name, prior, bounds) entries plus this
// likelihood. When the last parameter is named "sigma" it is the
// observation noise scale; otherwise FixedSigma is used.
type Model struct {
	Params     []Parameter
	NewSystem  func() models.Model
	Integrator string
	Init       dynamo.State
	Cfg        dynamo.Config
	Project    func(dynamo.State) float64
	Obs        Dataset
	FixedSigma float64

	obsIdx []int
}

// Build validates the model and resolves observation times onto the
// simulation output grid. Every observation time must land on a grid point.
func (m *Model) Build() error {
	if len(m.Params) == 0 {
		return fmt.Errorf("inference: no parameters declared")
	}
	if m.NewSystem == nil {
		return fmt.Errorf("inference: no system factory")
	}
	if m.Project == nil {
		return fmt.Errorf("inference: no state projection")
	}
	if len(m.Obs.Times) == 0 {
		return fmt.Errorf("inference: no observations")
	}
	if len(m.Obs.Times) != len(m.Obs.Values) {
		return fmt.Errorf("inference: %d observation times but %d values",
			len(m.Obs.Times), len(m.Obs.Values))
	}
	if !m.estimatesNoise() && m.FixedSigma <= 0 {
		return fmt.Errorf("inference: no sigma parameter and no fixed noise scale")
	}

	m.obsIdx = make([]int, len(m.Obs.Times))
	for i, t := range m.Obs.Times {
		k := (t - m.Cfg.Start) / m.Cfg.OutStep
		idx := int(math.Round(k))
		if math.Abs(k-float64(idx)) > 1e-6 || idx < 0 {
			return fmt.Errorf("inference: observation time %g is off the output grid", t)
		}
		points := int(math.Floor((m.Cfg.End-m.Cfg.Start)/m.Cfg.OutStep + 1e-9))
		if idx > points {
			return fmt.Errorf("inference: observation time %g beyond simulation end", t)
		}
		m.obsIdx[i] = idx
	}
	return nil
}

func (m *Model) estimatesNoise() bool {
	return len(m.Params) > 0 && m.Params[len(m.Params)-1].Name == "sigma"
}

// thetaDim is the number of ODE parameters, excluding a trailing sigma.
func (m *Model) thetaDim() int {
	if m.estimatesNoise() {
		return len(m.Params) - 1
	}
	return len(m.Params)
}

// Evaluator returns a log-posterior function with its own system and
// integrator instances, safe to use from one goroutine. Simulation
// failures (stiff region, domain exit) map to -Inf so the sampler simply
// rejects the move.
func (m *Model) Evaluator() (func(theta []float64) float64, error) {
	sys := m.NewSystem()
	integ, err := integrators.New(m.Integrator)
	if err != nil {
		return nil, err
	}
	sim := dynamo.New(integ)
	init := m.Init.Clone()

	return func(theta []float64) float64 {
		if len(theta) != len(m.Params) {
			return math.Inf(-1)
		}
		lp := 0.0
		for i, p := range m.Params {
			l := p.LogPrior(theta[i])
			if math.IsInf(l, -1) {
				return math.Inf(-1)
			}
			lp += l
		}

		if err := sys.SetParamVector(theta[:m.thetaDim()]); err != nil {
			return math.Inf(-1)
		}
		tr, err := sim.Run(context.Background(), sys, init, m.Cfg)
		if err != nil {
			return math.Inf(-1)
		}
		proj := tr.Project(m.Project)

		sigma := m.FixedSigma
		if m.estimatesNoise() {
			sigma = theta[len(theta)-1]
		}
		noise := distuv.Normal{Mu: 0, Sigma: sigma}
		for k, idx := range m.obsIdx {
			lp += noise.LogProb(m.Obs.Values[k] - proj[idx])
		}
		return lp
	}, nil
}

// Series adapts the model into the aggregator's trajectory function: one
// clean projected simulation per parameter draw. Each call builds its own
// evaluator state, so the result is safe under parallel aggregation.
func (m *Model) Series() band.SeriesFunc {
	return func(theta []float64) ([]float64, []float64, error) {
		if len(theta) < m.thetaDim() {
			return nil, nil, fmt.Errorf("inference: draw has %d values, want at least %d",
				len(theta), m.thetaDim())
		}
		sys := m.NewSystem()
		integ, err := integrators.New(m.Integrator)
		if err != nil {
			return nil, nil, err
		}
		if err := sys.SetParamVector(theta[:m.thetaDim()]); err != nil {
			return nil, nil, err
		}
		tr, err := dynamo.New(integ).Run(context.Background(), sys, m.Init.Clone(), m.Cfg)
		if err != nil {
			return nil, nil, err
		}
		return tr.Times, tr.Project(m.Project), nil
	}
}
