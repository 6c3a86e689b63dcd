package models

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/san-kum/oscifit/internal/dynamo"
	"github.com/san-kum/oscifit/internal/integrators"
)

func TestHes1_FiniteDerivatives(t *testing.T) {
	states := []dynamo.State{
		{0, 0, 0},
		{1, 1, 1},
		{100, 100, 100},
		{0, 0, 1e6},
		{1e-9, 1e-9, 1e-9},
	}
	hills := []float64{0.5, 1, 7, 19.9}

	for _, hill := range hills {
		m := NewHes1()
		m.H = hill
		if err := m.Validate(); err != nil {
			t.Fatalf("h=%g should be valid: %v", hill, err)
		}
		for _, s := range states {
			dx := m.Derive(s, 0)
			if !dx.IsValid() {
				t.Errorf("h=%g state=%v: non-finite derivative %v", hill, s, dx)
			}
		}
	}
}

func TestHes1_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Hes1)
	}{
		{"zero k1", func(m *Hes1) { m.K1 = 0 }},
		{"negative nu", func(m *Hes1) { m.Nu = -1 }},
		{"zero p0", func(m *Hes1) { m.P0 = 0 }},
		{"zero hill", func(m *Hes1) { m.H = 0 }},
		{"huge hill", func(m *Hes1) { m.H = 25 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewHes1()
			tt.mutate(m)
			err := m.Validate()
			if !errors.Is(err, dynamo.ErrParameterBounds) {
				t.Errorf("expected ErrParameterBounds, got %v", err)
			}
		})
	}

	if err := NewHes1().Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

// hes1FixedPoint solves the steady-state condition by bisection on p2.
// At steady state m, p1 and p2 are all algebraic functions of p2.
func hes1FixedPoint(m *Hes1) dynamo.State {
	residual := func(p2 float64) float64 {
		rep := 1.0 / (1.0 + math.Pow((p2+1e-3)/m.P0, m.H))
		c := m.K1 * m.Nu / (Hes1Kd * (Hes1Kd + m.K1))
		return c*rep - Hes1Kd*p2
	}

	lo, hi := 1e-6, 1e6
	for i := 0; i < 200; i++ {
		mid := 0.5 * (lo + hi)
		if residual(mid) > 0 {
			lo = mid
		} else {
			hi = mid
		}
	}
	p2 := 0.5 * (lo + hi)
	mSS := (1.0 / (1.0 + math.Pow((p2+1e-3)/m.P0, m.H))) / Hes1Kd
	p1 := m.Nu * mSS / (Hes1Kd + m.K1)
	return dynamo.State{mSS, p1, p2}
}

func TestHes1_SteadyStateResidual(t *testing.T) {
	m := NewHes1()
	fp := hes1FixedPoint(m)

	dx := m.Derive(fp, 0)
	scale := fp[0] + fp[1] + fp[2]
	for i, v := range dx {
		if math.Abs(v)/scale > 1e-9 {
			t.Errorf("component %d: residual %e not near zero at fixed point %v", i, v, fp)
		}
	}
}

func TestHes1_Oscillates(t *testing.T) {
	m := NewHes1()
	sim := dynamo.New(integrators.NewRK45())

	cfg := dynamo.DefaultConfig() // 0..30000, output every 1000
	tr, err := sim.Run(context.Background(), m, m.DefaultState(), cfg)
	if err != nil {
		t.Fatalf("simulation failed: %v", err)
	}
	if tr.Len() != 31 {
		t.Fatalf("expected 31 samples, got %d", tr.Len())
	}

	protein := tr.Project(func(s dynamo.State) float64 { return s[1] + s[2] })

	maxima, minima := 0, 0
	for i := 1; i < len(protein)-1; i++ {
		if protein[i] > protein[i-1] && protein[i] > protein[i+1] {
			maxima++
		}
		if protein[i] < protein[i-1] && protein[i] < protein[i+1] {
			minima++
		}
	}

	if maxima < 2 || minima < 1 {
		t.Errorf("expected sustained oscillation (>=2 maxima, >=1 minimum), got %d maxima, %d minima: %v",
			maxima, minima, protein)
	}
}

func TestHes1_StaysNonNegative(t *testing.T) {
	m := NewHes1()
	sim := dynamo.New(integrators.NewRK45())

	tr, err := sim.Run(context.Background(), m, m.DefaultState(), dynamo.DefaultConfig())
	if err != nil {
		t.Fatalf("simulation failed: %v", err)
	}
	for i, s := range tr.States {
		if !s.NonNegative() {
			t.Errorf("state %d went negative: %v", i, s)
		}
	}
}

func TestHes1_ParamVectorRoundTrip(t *testing.T) {
	m := NewHes1()
	theta := []float64{2e-4, 4e-3, 0.6, 5}
	if err := m.SetParamVector(theta); err != nil {
		t.Fatalf("SetParamVector failed: %v", err)
	}
	got := m.ParamVector()
	for i := range theta {
		if got[i] != theta[i] {
			t.Errorf("param %d: got %g, want %g", i, got[i], theta[i])
		}
	}

	if err := m.SetParamVector([]float64{1, 2}); err == nil {
		t.Error("expected error for short parameter vector")
	}
	if err := m.SetParamVector([]float64{-1, 4e-3, 0.6, 5}); err == nil {
		t.Error("expected domain error for negative k1")
	}
}
