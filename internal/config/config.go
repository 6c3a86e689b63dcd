package config

import (
	"fmt"
	"math"
	"os"

	"gonum.org/v1/gonum/stat/distuv"
	"gopkg.in/yaml.v3"

	"github.com/san-kum/oscifit/internal/dynamo"
	"github.com/san-kum/oscifit/internal/inference"
)

const (
	DefaultEnd     = 30000.0
	DefaultOutStep = 1000.0
	DefaultSigma   = 0.8
	DefaultIters   = 2000
	DefaultBurnIn  = 1000
	DefaultChains  = 4
)

type Config struct {
	Model      string        `yaml:"model"`
	Integrator string        `yaml:"integrator"`
	Projection string        `yaml:"projection"`
	InitState  []float64     `yaml:"init_state"`
	Seed       int64         `yaml:"seed"`
	Time       TimeConfig    `yaml:"time"`
	Noise      NoiseConfig   `yaml:"noise"`
	Sampler    SamplerConfig `yaml:"sampler"`
	Priors     []PriorConfig `yaml:"priors"`
}

type TimeConfig struct {
	Start     float64 `yaml:"start"`
	End       float64 `yaml:"end"`
	OutStep   float64 `yaml:"out_step"`
	Tolerance float64 `yaml:"tolerance"`
}

type NoiseConfig struct {
	Sigma float64 `yaml:"sigma"`
}

type SamplerConfig struct {
	Iterations int `yaml:"iterations"`
	BurnIn     int `yaml:"burn_in"`
	Thin       int `yaml:"thin"`
	Chains     int `yaml:"chains"`
}

// PriorConfig declares one parameter prior in the yaml file:
// dist is "uniform" (args: min, max) or "lognormal" (args: mu, sigma).
type PriorConfig struct {
	Name string    `yaml:"name"`
	Dist string    `yaml:"dist"`
	Args []float64 `yaml:"args"`
	Min  float64   `yaml:"min"`
	Max  float64   `yaml:"max"`
}

func DefaultConfig() *Config {
	return &Config{
		Model:      "hes1",
		Integrator: "rk45",
		Projection: "protein",
		Seed:       1,
		Time: TimeConfig{
			Start:     0,
			End:       DefaultEnd,
			OutStep:   DefaultOutStep,
			Tolerance: 1e-6,
		},
		Noise: NoiseConfig{Sigma: DefaultSigma},
		Sampler: SamplerConfig{
			Iterations: DefaultIters,
			BurnIn:     DefaultBurnIn,
			Thin:       1,
			Chains:     DefaultChains,
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// SimConfig maps the yaml time block onto a simulation configuration.
func (c *Config) SimConfig() dynamo.Config {
	sim := dynamo.DefaultConfig()
	sim.Start = c.Time.Start
	if c.Time.End > 0 {
		sim.End = c.Time.End
	}
	if c.Time.OutStep > 0 {
		sim.OutStep = c.Time.OutStep
	}
	if c.Time.Tolerance > 0 {
		sim.Tolerance = c.Time.Tolerance
	}
	return sim
}

// BuildPriors resolves the prior block, falling back to the model's default
// prior specification when the block is empty.
func (c *Config) BuildPriors() ([]inference.Parameter, error) {
	if len(c.Priors) == 0 {
		switch c.Model {
		case "hes1", "":
			return inference.DefaultHes1Priors(), nil
		case "goodwin":
			return inference.DefaultGoodwinPriors(), nil
		default:
			return nil, fmt.Errorf("no default priors for model %q", c.Model)
		}
	}

	params := make([]inference.Parameter, len(c.Priors))
	for i, pc := range c.Priors {
		p, err := pc.Build()
		if err != nil {
			return nil, err
		}
		params[i] = p
	}
	return params, nil
}

func (pc PriorConfig) Build() (inference.Parameter, error) {
	if pc.Min >= pc.Max {
		return inference.Parameter{}, fmt.Errorf("prior %s: bad bounds [%g, %g]", pc.Name, pc.Min, pc.Max)
	}

	var prior inference.Prior
	switch pc.Dist {
	case "uniform", "":
		lo, hi := pc.Min, pc.Max
		if len(pc.Args) == 2 {
			lo, hi = pc.Args[0], pc.Args[1]
		}
		prior = distuv.Uniform{Min: lo, Max: hi}
	case "lognormal":
		if len(pc.Args) != 2 {
			return inference.Parameter{}, fmt.Errorf("prior %s: lognormal wants args [mu, sigma]", pc.Name)
		}
		if pc.Args[1] <= 0 || math.IsNaN(pc.Args[1]) {
			return inference.Parameter{}, fmt.Errorf("prior %s: lognormal sigma must be positive", pc.Name)
		}
		prior = distuv.LogNormal{Mu: pc.Args[0], Sigma: pc.Args[1]}
	default:
		return inference.Parameter{}, fmt.Errorf("prior %s: unknown dist %q", pc.Name, pc.Dist)
	}

	return inference.Parameter{Name: pc.Name, Prior: prior, Min: pc.Min, Max: pc.Max}, nil
}
