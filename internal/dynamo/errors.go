package dynamo

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidState indicates a NaN or Inf appeared in the state vector.
	ErrInvalidState = errors.New("dynamo: invalid state (NaN or Inf detected)")

	// ErrStepTooSmall indicates the adaptive timestep fell below Config.MinDt
	// while the step kept being rejected.
	ErrStepTooSmall = errors.New("dynamo: adaptive timestep below minimum")

	// ErrParameterBounds indicates a system parameter outside its valid domain.
	ErrParameterBounds = errors.New("dynamo: parameter out of valid bounds")

	// ErrDimensionMismatch indicates the initial state does not match the system.
	ErrDimensionMismatch = errors.New("dynamo: state dimension does not match system")
)

// SimError wraps an integration failure with the time at which it occurred.
type SimError struct {
	Time    float64
	Wrapped error
}

func (e *SimError) Error() string {
	return fmt.Sprintf("t=%.4f: %v", e.Time, e.Wrapped)
}

func (e *SimError) Unwrap() error { return e.Wrapped }
