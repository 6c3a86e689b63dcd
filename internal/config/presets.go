package config

var Presets = map[string]map[string]*Config{
	"hes1": {
		// Nominal setup from the Hes1 calibration literature.
		"nominal": {
			Model: "hes1", Integrator: "rk45", Projection: "protein", Seed: 1,
			Time:    TimeConfig{Start: 0, End: 30000, OutStep: 1000, Tolerance: 1e-6},
			Noise:   NoiseConfig{Sigma: 0.8},
			Sampler: SamplerConfig{Iterations: 2000, BurnIn: 1000, Thin: 1, Chains: 4},
		},
		"long": {
			Model: "hes1", Integrator: "rk45", Projection: "protein", Seed: 1,
			Time:    TimeConfig{Start: 0, End: 60000, OutStep: 1000, Tolerance: 1e-6},
			Noise:   NoiseConfig{Sigma: 0.8},
			Sampler: SamplerConfig{Iterations: 4000, BurnIn: 2000, Thin: 2, Chains: 4},
		},
		"mrna": {
			Model: "hes1", Integrator: "rk45", Projection: "mrna", Seed: 1,
			Time:    TimeConfig{Start: 0, End: 30000, OutStep: 1000, Tolerance: 1e-6},
			Noise:   NoiseConfig{Sigma: 0.2},
			Sampler: SamplerConfig{Iterations: 2000, BurnIn: 1000, Thin: 1, Chains: 4},
		},
	},
	"goodwin": {
		"default": {
			Model: "goodwin", Integrator: "rk45", Projection: "protein", Seed: 1,
			Time:    TimeConfig{Start: 0, End: 200, OutStep: 2, Tolerance: 1e-6},
			Noise:   NoiseConfig{Sigma: 0.1},
			Sampler: SamplerConfig{Iterations: 2000, BurnIn: 1000, Thin: 1, Chains: 4},
		},
	},
}

func GetPreset(model, preset string) *Config {
	modelPresets, ok := Presets[model]
	if !ok {
		return nil
	}
	cfg, ok := modelPresets[preset]
	if !ok {
		return nil
	}
	return cfg
}

func ListPresets(model string) []string {
	modelPresets, ok := Presets[model]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(modelPresets))
	for name := range modelPresets {
		names = append(names, name)
	}
	return names
}
