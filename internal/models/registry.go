package models

import (
	"fmt"

	"github.com/san-kum/oscifit/internal/dynamo"
)

// Model is an ODE system whose parameters can be flattened into the vector
// form the sampler and the aggregator work with.
type Model interface {
	dynamo.System
	dynamo.Validator
	DefaultState() dynamo.State
	ParamNames() []string
	ParamVector() []float64
	SetParamVector(theta []float64) error
}

// New returns a model by name with its literature defaults.
func New(name string) (Model, error) {
	switch name {
	case "hes1", "":
		return NewHes1(), nil
	case "goodwin":
		return NewGoodwin(), nil
	default:
		return nil, fmt.Errorf("unknown model: %s", name)
	}
}

// Names lists the registered models.
func Names() []string { return []string{"hes1", "goodwin"} }

// Projection returns a named scalar projection of a model state.
// "mrna" is the first species, "protein" the summed protein channels.
func Projection(name string) (func(dynamo.State) float64, error) {
	switch name {
	case "mrna":
		return func(s dynamo.State) float64 { return s[0] }, nil
	case "protein", "":
		return func(s dynamo.State) float64 { return s[1] + s[2] }, nil
	default:
		return nil, fmt.Errorf("unknown projection: %s", name)
	}
}
