package config

import (
	"path/filepath"
	"testing"
)

func TestLoadSaveRoundTrip(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Model = "goodwin"
	cfg.Sampler.Chains = 2
	cfg.Priors = []PriorConfig{
		{Name: "a", Dist: "uniform", Min: 0.1, Max: 5},
		{Name: "sigma", Dist: "lognormal", Args: []float64{-0.2, 0.5}, Min: 0.05, Max: 5},
	}

	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := Save(path, cfg); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if loaded.Model != "goodwin" || loaded.Sampler.Chains != 2 {
		t.Errorf("round trip lost fields: %+v", loaded)
	}
	if len(loaded.Priors) != 2 || loaded.Priors[1].Dist != "lognormal" {
		t.Errorf("round trip lost priors: %+v", loaded.Priors)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestBuildPriors_Defaults(t *testing.T) {
	cfg := DefaultConfig()
	params, err := cfg.BuildPriors()
	if err != nil {
		t.Fatalf("default priors failed: %v", err)
	}
	if len(params) != 5 || params[4].Name != "sigma" {
		t.Errorf("unexpected default hes1 priors: %d params", len(params))
	}

	cfg.Model = "unknown"
	if _, err := cfg.BuildPriors(); err == nil {
		t.Error("expected error for model without default priors")
	}
}

func TestPriorConfigBuild(t *testing.T) {
	tests := []struct {
		name    string
		pc      PriorConfig
		wantErr bool
	}{
		{"uniform ok", PriorConfig{Name: "x", Dist: "uniform", Min: 0, Max: 1}, false},
		{"lognormal ok", PriorConfig{Name: "x", Dist: "lognormal", Args: []float64{0, 1}, Min: 0.01, Max: 10}, false},
		{"empty dist defaults to uniform", PriorConfig{Name: "x", Min: 0, Max: 1}, false},
		{"inverted bounds", PriorConfig{Name: "x", Dist: "uniform", Min: 2, Max: 1}, true},
		{"lognormal missing args", PriorConfig{Name: "x", Dist: "lognormal", Min: 0.01, Max: 10}, true},
		{"lognormal bad sigma", PriorConfig{Name: "x", Dist: "lognormal", Args: []float64{0, -1}, Min: 0.01, Max: 10}, true},
		{"unknown dist", PriorConfig{Name: "x", Dist: "cauchy", Min: 0, Max: 1}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.pc.Build()
			if (err != nil) != tt.wantErr {
				t.Errorf("Build() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestPresets(t *testing.T) {
	if GetPreset("hes1", "nominal") == nil {
		t.Error("hes1/nominal preset missing")
	}
	if GetPreset("hes1", "bogus") != nil {
		t.Error("unexpected preset")
	}
	if GetPreset("bogus", "nominal") != nil {
		t.Error("unexpected model presets")
	}
	if len(ListPresets("hes1")) < 2 {
		t.Error("expected several hes1 presets")
	}
}

func TestPresetsCarrySeed(t *testing.T) {
	// Selecting a preset must not silently zero the seed and change
	// reproducibility defaults.
	for model, byName := range Presets {
		for name, cfg := range byName {
			if cfg.Seed <= 0 {
				t.Errorf("preset %s/%s has no seed", model, name)
			}
		}
	}
}

func TestSimConfig(t *testing.T) {
	cfg := DefaultConfig()
	sim := cfg.SimConfig()
	if sim.End != DefaultEnd || sim.OutStep != DefaultOutStep {
		t.Errorf("sim config not mapped: %+v", sim)
	}
	if !sim.NonNegative {
		t.Error("concentration models need the non-negativity guard")
	}
}
