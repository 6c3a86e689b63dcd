package inference

import (
	"context"
	"fmt"
	"math"
	"sync"

	"golang.org/x/exp/rand"
)

// adaptation window for per-parameter proposal scales during burn-in
const adaptWindow = 50

// Progress reports sampler state to an optional observer, e.g. the live
// fit monitor.
type Progress struct {
	Chain      int
	Iter       int
	Total      int
	LogPost    float64
	AcceptRate float64
	Theta      []float64
}

// MH is an adaptive random-walk Metropolis sampler over a Model. One
// randomly chosen parameter is perturbed per iteration; proposal scales are
// tuned per parameter during burn-in. All randomness flows from Seed
// through per-chain rngs.
type MH struct {
	Model      *Model
	Iterations int // post burn-in iterations per chain
	BurnIn     int
	Thin       int
	Chains     int
	Seed       int64

	ReportEvery int
	Progress    func(Progress)
}

func NewMH(m *Model) *MH {
	return &MH{
		Model:       m,
		Iterations:  2000,
		BurnIn:      1000,
		Thin:        1,
		Chains:      4,
		Seed:        1,
		ReportEvery: 100,
	}
}

// Run executes all chains in parallel and returns their draws.
func (s *MH) Run(ctx context.Context) (*Result, error) {
	if s.Iterations <= 0 || s.Chains <= 0 {
		return nil, fmt.Errorf("inference: iterations and chains must be positive")
	}
	if s.Thin <= 0 {
		s.Thin = 1
	}
	if err := s.Model.Build(); err != nil {
		return nil, err
	}

	chains := make([]*ChainResult, s.Chains)
	errs := make([]error, s.Chains)

	var wg sync.WaitGroup
	for c := 0; c < s.Chains; c++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			chains[idx], errs[idx] = s.runChain(ctx, idx)
		}(c)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	names := make([]string, len(s.Model.Params))
	for i, p := range s.Model.Params {
		names[i] = p.Name
	}
	return &Result{Names: names, Chains: chains}, nil
}

func (s *MH) runChain(ctx context.Context, chain int) (*ChainResult, error) {
	rng := rand.New(rand.NewSource(uint64(s.Seed) + uint64(chain)*7919))
	eval, err := s.Model.Evaluator()
	if err != nil {
		return nil, err
	}

	np := len(s.Model.Params)
	theta := make([]float64, np)

	// Seed the chain from the priors; retry until the posterior is finite.
	logPost := math.Inf(-1)
	for try := 0; try < 100 && math.IsInf(logPost, -1); try++ {
		for i, p := range s.Model.Params {
			theta[i] = p.Sample(rng)
		}
		logPost = eval(theta)
	}
	if math.IsInf(logPost, -1) {
		return nil, fmt.Errorf("inference: chain %d found no valid starting point", chain)
	}

	sd := make([]float64, np)
	for i, p := range s.Model.Params {
		sd[i] = p.scale()
	}
	winAcc := make([]int, np)
	winProp := make([]int, np)

	total := s.BurnIn + s.Iterations
	res := &ChainResult{
		Draws:   make([][]float64, 0, s.Iterations/s.Thin),
		LogPost: make([]float64, 0, s.Iterations/s.Thin),
	}
	accepted := 0

	for i := 0; i < total; i++ {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		p := rng.Intn(np)
		par := s.Model.Params[p]
		old := theta[p]
		theta[p] = par.Reflect(old + rng.NormFloat64()*sd[p])

		newLogPost := eval(theta)
		if newLogPost >= logPost || rng.Float64() < math.Exp(newLogPost-logPost) {
			logPost = newLogPost
			accepted++
			winAcc[p]++
		} else {
			theta[p] = old
		}
		winProp[p]++

		// Scale tuning stops at the end of burn-in so the kept draws come
		// from a fixed kernel.
		if i < s.BurnIn && winProp[p] >= adaptWindow {
			rate := float64(winAcc[p]) / float64(winProp[p])
			if rate > 0.44 {
				sd[p] *= 1.25
			} else if rate < 0.2 {
				sd[p] *= 0.8
			}
			winAcc[p], winProp[p] = 0, 0
		}

		if i >= s.BurnIn && (i-s.BurnIn)%s.Thin == 0 {
			res.Draws = append(res.Draws, append([]float64(nil), theta...))
			res.LogPost = append(res.LogPost, logPost)
		}

		if s.Progress != nil && s.ReportEvery > 0 && (i+1)%s.ReportEvery == 0 {
			s.Progress(Progress{
				Chain:      chain,
				Iter:       i + 1,
				Total:      total,
				LogPost:    logPost,
				AcceptRate: float64(accepted) / float64(i+1),
				Theta:      append([]float64(nil), theta...),
			})
		}
	}

	res.AcceptRate = float64(accepted) / float64(total)
	return res, nil
}
