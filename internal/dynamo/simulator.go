package dynamo

import (
	"context"
	"fmt"
	"math"
)

type Simulator struct {
	integrator Integrator
}

func New(integrator Integrator) *Simulator {
	return &Simulator{integrator: integrator}
}

// Run integrates sys from x0 over [cfg.Start, cfg.End] and returns the
// trajectory sampled every cfg.OutStep. With an AdaptiveIntegrator the
// internal step size is controlled by cfg.Tolerance; otherwise cfg.Dt is
// used as a fixed substep. Integration failures abort the run; the partial
// trajectory accumulated so far is returned alongside the error.
func (s *Simulator) Run(ctx context.Context, sys System, x0 State, cfg Config) (*Trajectory, error) {
	if err := validateConfig(cfg, s.integrator); err != nil {
		return nil, err
	}
	if len(x0) != sys.Dim() {
		return nil, fmt.Errorf("%w: got %d, system wants %d", ErrDimensionMismatch, len(x0), sys.Dim())
	}
	if v, ok := sys.(Validator); ok {
		if err := v.Validate(); err != nil {
			return nil, err
		}
	}
	if !x0.IsValid() {
		return nil, ErrInvalidState
	}

	points := int(math.Floor((cfg.End-cfg.Start)/cfg.OutStep + 1e-9))
	tr := &Trajectory{
		Times:  make([]float64, 0, points+1),
		States: make([]State, 0, points+1),
	}

	x := x0.Clone()
	t := cfg.Start
	tr.Times = append(tr.Times, t)
	tr.States = append(tr.States, x.Clone())

	adaptive, _ := s.integrator.(AdaptiveIntegrator)
	dt := cfg.Dt
	if adaptive != nil {
		dt = cfg.OutStep
		if cfg.MaxDt > 0 && dt > cfg.MaxDt {
			dt = cfg.MaxDt
		}
	}

	for k := 1; k <= points; k++ {
		target := cfg.Start + float64(k)*cfg.OutStep

		for t < target-1e-9*cfg.OutStep {
			select {
			case <-ctx.Done():
				return tr, ctx.Err()
			default:
			}

			h := math.Min(dt, target-t)

			var next State
			if adaptive != nil {
				var ratio, dtNext float64
				next, ratio, dtNext = adaptive.StepAdaptive(sys, x, t, h, cfg.Tolerance)

				reject := ratio > 1 || !next.IsValid()
				if !reject && cfg.NonNegative && !next.NonNegative() {
					reject = true
					dtNext = h / 2
				}
				if reject {
					dt = dtNext
					if dt < cfg.MinDt {
						return tr, &SimError{Time: t, Wrapped: ErrStepTooSmall}
					}
					continue
				}
				dt = clamp(dtNext, cfg.MinDt, cfg.MaxDt)
			} else {
				next = s.integrator.Step(sys, x, t, h)
				if !next.IsValid() {
					return tr, &SimError{Time: t, Wrapped: ErrInvalidState}
				}
				if cfg.NonNegative && !next.NonNegative() {
					// Fixed-step integrators cannot retry; clamp at the boundary.
					for i, v := range next {
						if v < 0 {
							next[i] = 0
						}
					}
				}
			}

			x = next
			t += h
		}

		tr.Times = append(tr.Times, target)
		tr.States = append(tr.States, x.Clone())
		t = target
	}

	return tr, nil
}

func validateConfig(cfg Config, integ Integrator) error {
	if cfg.OutStep <= 0 {
		return fmt.Errorf("output step must be positive, got %f", cfg.OutStep)
	}
	if cfg.End <= cfg.Start {
		return fmt.Errorf("end time %f not after start time %f", cfg.End, cfg.Start)
	}
	if _, ok := integ.(AdaptiveIntegrator); ok {
		if cfg.Tolerance <= 0 {
			return fmt.Errorf("tolerance must be positive for adaptive stepping")
		}
	} else if cfg.Dt <= 0 {
		return fmt.Errorf("dt must be positive, got %f", cfg.Dt)
	}
	return nil
}

func clamp(v, lo, hi float64) float64 {
	if lo > 0 && v < lo {
		return lo
	}
	if hi > 0 && v > hi {
		return hi
	}
	return v
}
