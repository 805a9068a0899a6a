package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaults(t *testing.T) {
	cfg := Default()

	if cfg.Canvas.Width != 800 || cfg.Canvas.Height != 600 {
		t.Errorf("default canvas %vx%v, want 800x600", cfg.Canvas.Width, cfg.Canvas.Height)
	}
	if cfg.Strategy != "basic" {
		t.Errorf("default strategy %q, want basic", cfg.Strategy)
	}
	if cfg.Lines.StepLength != 2 {
		t.Errorf("default step length %v, want 2", cfg.Lines.StepLength)
	}
	if cfg.Field.Mode != "normal" {
		t.Errorf("default mode %q, want normal", cfg.Field.Mode)
	}
	if cfg.Fill.BaseSeparation <= 0 {
		t.Error("fill base separation not set")
	}
}

func TestLoadMergesOverDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := []byte("canvas:\n  width: 1200\nstrategy: fill\n")
	if err := os.WriteFile(path, content, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Canvas.Width != 1200 {
		t.Errorf("width %v, want 1200 from file", cfg.Canvas.Width)
	}
	if cfg.Canvas.Height != 600 {
		t.Errorf("height %v, want 600 from defaults", cfg.Canvas.Height)
	}
	if cfg.Strategy != "fill" {
		t.Errorf("strategy %q, want fill from file", cfg.Strategy)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load("/nonexistent/config.yaml"); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestClamping(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := []byte(`
canvas:
  width: -5
  height: 100
  margin: 500
lines:
  step_length: -1
  count: 0
noise:
  octaves: 0
`)
	if err := os.WriteFile(path, content, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Canvas.Width != 800 {
		t.Errorf("negative width clamped to %v, want default 800", cfg.Canvas.Width)
	}
	if cfg.Canvas.Margin >= 50 {
		t.Errorf("margin %v not clamped below half the smaller dimension", cfg.Canvas.Margin)
	}
	if cfg.Lines.StepLength <= 0 {
		t.Errorf("step length %v not clamped positive", cfg.Lines.StepLength)
	}
	if cfg.Lines.Count < 1 {
		t.Errorf("count %v not clamped to at least 1", cfg.Lines.Count)
	}
	if cfg.Noise.Octaves < 1 {
		t.Errorf("octaves %v not clamped to at least 1", cfg.Noise.Octaves)
	}
}

func TestWriteYAMLRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "snapshot.yaml")

	cfg := Default()
	cfg.Seed = 12345
	cfg.Strategy = "swarm"
	if err := cfg.WriteYAML(path); err != nil {
		t.Fatalf("WriteYAML: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded.Seed != 12345 {
		t.Errorf("seed %v, want 12345", loaded.Seed)
	}
	if loaded.Strategy != "swarm" {
		t.Errorf("strategy %q, want swarm", loaded.Strategy)
	}
}
