package integrators

import (
	"fmt"
	"math"
	"testing"

	"github.com/san-kum/oscifit/internal/dynamo"
)

func TestRK4_Step(t *testing.T) {
	integ := NewRK4()
	x := dynamo.State{1.0, 0.0}
	dt := 0.01

	for i := 0; i < 628; i++ {
		x = integ.Step(harmonicOscillator{}, x, float64(i)*dt, dt)
	}

	// Roughly one period: state should be back near (1, 0).
	if math.Abs(x[0]-1.0) > 0.01 {
		t.Errorf("expected x[0] ~1.0 after one period, got %f", x[0])
	}
}

func TestNewByName(t *testing.T) {
	for _, name := range []string{"rk4", "rk45", ""} {
		t.Run(fmt.Sprintf("name=%q", name), func(t *testing.T) {
			if _, err := New(name); err != nil {
				t.Errorf("New(%q) failed: %v", name, err)
			}
		})
	}

	if _, err := New("leapfrog"); err == nil {
		t.Error("expected error for unknown integrator")
	}
}
