package config

import (
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.GridW <= 0 || cfg.GridH <= 0 {
		t.Error("grid dimensions should be positive")
	}
	if cfg.Particles != DefaultParticles {
		t.Errorf("expected %d particles, got %d", DefaultParticles, cfg.Particles)
	}
	if cfg.Dt <= 0 {
		t.Error("dt should be positive")
	}
	if cfg.Forcing.WindStrength != DefaultWind {
		t.Errorf("expected wind %f, got %f", DefaultWind, cfg.Forcing.WindStrength)
	}
}

func TestParamsConversion(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Forcing.WindStrength = 2.5

	p := cfg.Params()
	if p.WindStrength != 2.5 {
		t.Errorf("expected wind 2.5, got %f", p.WindStrength)
	}
	if p.CoriolisStrength != cfg.Forcing.CoriolisStrength {
		t.Error("coriolis strength not carried over")
	}
}

func TestSaveLoadRoundtrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	cfg := DefaultConfig()
	cfg.GridW = 32
	cfg.Forcing.TemperatureDiff = 2.0
	cfg.ShowTemperature = true

	if err := Save(path, cfg); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if loaded.GridW != 32 {
		t.Errorf("expected grid width 32, got %d", loaded.GridW)
	}
	if loaded.Forcing.TemperatureDiff != 2.0 {
		t.Errorf("expected temp diff 2.0, got %f", loaded.Forcing.TemperatureDiff)
	}
	if !loaded.ShowTemperature {
		t.Error("show_temperature not preserved")
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestGetPreset(t *testing.T) {
	cfg := GetPreset("storm")
	if cfg == nil {
		t.Fatal("expected preset, got nil")
	}
	if cfg.Forcing.WindStrength != 3.0 {
		t.Errorf("expected wind 3.0, got %f", cfg.Forcing.WindStrength)
	}

	if GetPreset("nonexistent") != nil {
		t.Error("expected nil for nonexistent preset")
	}
}

func TestListPresets(t *testing.T) {
	presets := ListPresets()
	if len(presets) == 0 {
		t.Error("expected presets")
	}
}
