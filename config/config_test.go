package config

import (
	"math"
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load with defaults: %v", err)
	}

	if cfg.Particles.Count <= 0 {
		t.Error("default particle count should be positive")
	}
	if len(cfg.Growth.Seeds) == 0 {
		t.Error("defaults should include growth seeds")
	}
	if cfg.Sim.DT <= 0 {
		t.Error("default dt should be positive")
	}
}

func TestDerivedValues(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Derived.DT32 != float32(cfg.Sim.DT) {
		t.Errorf("DT32 = %v, want %v", cfg.Derived.DT32, float32(cfg.Sim.DT))
	}

	wantRad := float32(cfg.Growth.BranchAngleDeg * math.Pi / 180)
	if cfg.Derived.BranchAngleRad != wantRad {
		t.Errorf("BranchAngleRad = %v, want %v", cfg.Derived.BranchAngleRad, wantRad)
	}
}

func TestLoadOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	override := []byte("particles:\n  count: 123\n")
	if err := os.WriteFile(path, override, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load override: %v", err)
	}

	if cfg.Particles.Count != 123 {
		t.Errorf("overridden count = %d, want 123", cfg.Particles.Count)
	}
	// Untouched sections keep their defaults
	if cfg.Growth.MaxBranches <= 0 {
		t.Error("default max_branches should survive partial override")
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"zero dt", "sim:\n  dt: 0\n"},
		{"max_step below dt", "sim:\n  max_step: 0.001\n"},
		{"bad seed arity", "growth:\n  seeds: [[1, 2]]\n"},
		{"zero stats window", "telemetry:\n  stats_window: 0\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			path := filepath.Join(dir, "config.yaml")
			if err := os.WriteFile(path, []byte(tt.yaml), 0644); err != nil {
				t.Fatal(err)
			}

			if _, err := Load(path); err == nil {
				t.Error("expected validation error, got nil")
			}
		})
	}
}

func TestWriteYAMLRoundtrip(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	path := filepath.Join(t.TempDir(), "out.yaml")
	if err := cfg.WriteYAML(path); err != nil {
		t.Fatalf("WriteYAML: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("reloading written config: %v", err)
	}

	if loaded.Particles.Count != cfg.Particles.Count {
		t.Errorf("roundtrip count = %d, want %d", loaded.Particles.Count, cfg.Particles.Count)
	}
	if loaded.Growth.BranchProb != cfg.Growth.BranchProb {
		t.Errorf("roundtrip branch prob = %v, want %v", loaded.Growth.BranchProb, cfg.Growth.BranchProb)
	}
}
