// Package optim finds posterior modes by exhaustive grid search over the
// parameter box. Useful as a cheap point estimate and as a sanity check on
// sampler output; resolution is limited by the curse of dimensionality.
package optim

import (
	"context"
	"math"

	"github.com/san-kum/oscifit/internal/inference"
)

type GridSearch struct {
	params []inference.Parameter
	points int // grid points per dimension
}

func NewGridSearch(params []inference.Parameter, pointsPerDim int) *GridSearch {
	if pointsPerDim < 2 {
		pointsPerDim = 2
	}
	return &GridSearch{params: params, points: pointsPerDim}
}

// Search evaluates the log posterior on the full grid and returns the best
// parameter vector with its log posterior. The context is checked between
// evaluations so long searches can be cancelled.
func (g *GridSearch) Search(ctx context.Context, m *inference.Model) ([]float64, float64, error) {
	if err := m.Build(); err != nil {
		return nil, 0, err
	}
	eval, err := m.Evaluator()
	if err != nil {
		return nil, 0, err
	}

	best := math.Inf(-1)
	var bestTheta []float64
	theta := make([]float64, len(g.params))

	var walk func(depth int) error
	walk = func(depth int) error {
		if depth == len(g.params) {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}
			if lp := eval(theta); lp > best {
				best = lp
				bestTheta = append([]float64(nil), theta...)
			}
			return nil
		}
		p := g.params[depth]
		for i := 0; i < g.points; i++ {
			frac := (float64(i) + 0.5) / float64(g.points)
			theta[depth] = p.Min + frac*(p.Max-p.Min)
			if err := walk(depth + 1); err != nil {
				return err
			}
		}
		return nil
	}

	if err := walk(0); err != nil {
		return nil, 0, err
	}
	return bestTheta, best, nil
}
