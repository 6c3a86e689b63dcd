package integrators

import (
	"fmt"

	"github.com/san-kum/oscifit/internal/dynamo"
)

// New returns an integrator by name: "rk4" or "rk45".
func New(name string) (dynamo.Integrator, error) {
	switch name {
	case "rk4":
		return NewRK4(), nil
	case "rk45", "":
		return NewRK45(), nil
	default:
		return nil, fmt.Errorf("unknown integrator: %s", name)
	}
}
