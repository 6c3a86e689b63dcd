// Package dynamo provides the simulation primitives shared by the rest of
// the module:
//
//   - [State]: vector representing system state
//   - [System]: interface for autonomous ODE systems (dX/dt = f(X, t))
//   - [Integrator] / [AdaptiveIntegrator]: numerical stepper interfaces
//   - [Simulator]: produces trajectories sampled on a fixed output grid
//
// Simulations are deterministic pure functions of the initial state and
// configuration. A Simulator is cheap to construct and holds no state
// between runs, but a single instance must not be shared across goroutines
// when its integrator reuses scratch buffers.
package dynamo
