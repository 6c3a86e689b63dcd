package models

import (
	"fmt"
	"math"

	"github.com/san-kum/oscifit/internal/dynamo"
)

// Degradation rate shared by all three Hes1 species. Fixed by the model,
// never estimated.
const Hes1Kd = 5.0e-4

// Offset added to p2 in the repression term so the power law stays defined
// at p2 = 0 for non-integer Hill coefficients.
const hes1Eps = 1e-3

// Hes1 implements the Hes1 transcription-translation feedback loop.
// State: [m, p1, p2] — mRNA, cytoplasmic protein, nuclear protein.
// Equations:
//
//	dm/dt  = -kd*m + 1/(1 + ((p2+eps)/P0)^h)
//	dp1/dt = -kd*p1 + nu*m - k1*p1
//	dp2/dt = -kd*p2 + k1*p1
type Hes1 struct {
	K1 float64 // protein transport rate into the nucleus
	Nu float64 // translation rate
	P0 float64 // repression threshold
	H  float64 // Hill coefficient
}

func NewHes1() *Hes1 {
	return &Hes1{
		K1: 1.66e-4,
		Nu: 3.33e-3,
		P0: 0.5,
		H:  7.0,
	}
}

func (h *Hes1) Dim() int { return 3 }

func (h *Hes1) Derive(x dynamo.State, _ float64) dynamo.State {
	m, p1, p2 := x[0], x[1], x[2]
	repression := 1.0 / (1.0 + math.Pow((p2+hes1Eps)/h.P0, h.H))
	return dynamo.State{
		-Hes1Kd*m + repression,
		-Hes1Kd*p1 + h.Nu*m - h.K1*p1,
		-Hes1Kd*p2 + h.K1*p1,
	}
}

func (h *Hes1) DefaultState() dynamo.State { return dynamo.State{1.0, 1.0, 1.0} }

func (h *Hes1) Validate() error {
	if h.K1 <= 0 {
		return fmt.Errorf("%w: k1 must be positive, got %g", dynamo.ErrParameterBounds, h.K1)
	}
	if h.Nu <= 0 {
		return fmt.Errorf("%w: nu must be positive, got %g", dynamo.ErrParameterBounds, h.Nu)
	}
	if h.P0 <= 0 {
		return fmt.Errorf("%w: p0 must be positive, got %g", dynamo.ErrParameterBounds, h.P0)
	}
	if h.H <= 0 || h.H > 20 {
		return fmt.Errorf("%w: h must be in (0, 20], got %g", dynamo.ErrParameterBounds, h.H)
	}
	return nil
}

// ParamNames gives the canonical ordering used by ParamVector and the sampler.
func (h *Hes1) ParamNames() []string { return []string{"k1", "nu", "p0", "h"} }

func (h *Hes1) ParamVector() []float64 { return []float64{h.K1, h.Nu, h.P0, h.H} }

func (h *Hes1) SetParamVector(theta []float64) error {
	if len(theta) < 4 {
		return fmt.Errorf("hes1 wants 4 parameters, got %d", len(theta))
	}
	h.K1, h.Nu, h.P0, h.H = theta[0], theta[1], theta[2], theta[3]
	return h.Validate()
}

// GetParams implements dynamo.Configurable
func (h *Hes1) GetParams() map[string]float64 {
	return map[string]float64{"k1": h.K1, "nu": h.Nu, "p0": h.P0, "h": h.H}
}

// SetParam implements dynamo.Configurable
func (h *Hes1) SetParam(name string, value float64) error {
	switch name {
	case "k1":
		h.K1 = value
	case "nu":
		h.Nu = value
	case "p0":
		h.P0 = value
	case "h":
		h.H = value
	default:
		return fmt.Errorf("hes1: unknown parameter %q", name)
	}
	return nil
}
