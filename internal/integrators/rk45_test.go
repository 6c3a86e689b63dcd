package integrators

import (
	"math"
	"testing"

	"github.com/san-kum/oscifit/internal/dynamo"
)

type harmonicOscillator struct{}

func (harmonicOscillator) Dim() int { return 2 }

func (harmonicOscillator) Derive(x dynamo.State, t float64) dynamo.State {
	return dynamo.State{x[1], -x[0]}
}

func energy(x dynamo.State) float64 {
	return 0.5 * (x[0]*x[0] + x[1]*x[1])
}

func TestRK45_Step(t *testing.T) {
	integ := NewRK45()
	x := dynamo.State{1.0, 0.0}
	dt := 0.01

	for i := 0; i < 1000; i++ {
		x = integ.Step(harmonicOscillator{}, x, float64(i)*dt, dt)
	}

	if !x.IsValid() {
		t.Error("RK45 produced invalid state")
	}
}

func TestRK45_EnergyConservation(t *testing.T) {
	integ := NewRK45()
	x0 := dynamo.State{1.0, 0.0}

	initial := energy(x0)
	x := x0.Clone()
	dt := 0.01

	for i := 0; i < 10000; i++ {
		x = integ.Step(harmonicOscillator{}, x, float64(i)*dt, dt)
	}

	drift := math.Abs(energy(x)-initial) / initial
	if drift > 1e-6 {
		t.Errorf("RK45 energy drift too high: %e", drift)
	}
}

func TestRK45_AdaptiveStep(t *testing.T) {
	integ := NewRK45()
	x0 := dynamo.State{1.0, 0.0}

	x, ratio, dtNext := integ.StepAdaptive(harmonicOscillator{}, x0, 0, 0.1, 1e-8)

	if !x.IsValid() {
		t.Error("StepAdaptive produced invalid state")
	}
	if ratio < 0 {
		t.Errorf("StepAdaptive returned negative error ratio: %f", ratio)
	}
	if dtNext <= 0 {
		t.Errorf("StepAdaptive returned invalid next dt: %f", dtNext)
	}
}

func TestRK45_RejectsLargeStep(t *testing.T) {
	integ := NewRK45()
	x0 := dynamo.State{1.0, 0.0}

	// A full-period step at a tight tolerance must be flagged for rejection.
	_, ratio, dtNext := integ.StepAdaptive(harmonicOscillator{}, x0, 0, 2*math.Pi, 1e-12)
	if ratio <= 1 {
		t.Errorf("expected error ratio > 1 for oversized step, got %f", ratio)
	}
	if dtNext >= 2*math.Pi {
		t.Errorf("expected reduced next dt, got %f", dtNext)
	}
}

func TestRK45_VsRK4_Accuracy(t *testing.T) {
	rk4 := NewRK4()
	rk45 := NewRK45()
	x4 := dynamo.State{1.0, 0.0}
	x45 := x4.Clone()
	dt := 0.1

	for i := 0; i < 100; i++ {
		x4 = rk4.Step(harmonicOscillator{}, x4, float64(i)*dt, dt)
		x45 = rk45.Step(harmonicOscillator{}, x45, float64(i)*dt, dt)
	}

	t.Logf("RK4 final: [%.6f, %.6f]", x4[0], x4[1])
	t.Logf("RK45 final: [%.6f, %.6f]", x45[0], x45[1])

	if math.Abs(energy(x45)-0.5) > math.Abs(energy(x4)-0.5) {
		t.Log("Warning: RK45 not more accurate than RK4 for this case")
	}
}
