package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.OutputPath != "timestamps.xlsx" || cfg.DefaultVideo != "timestamp_test.mp4" {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if cfg.FrameWidth != 640 || cfg.FrameHeight != 480 || cfg.UpdateIntervalMs != 33 {
		t.Fatalf("unexpected display defaults: %+v", cfg)
	}
}

func TestSaveLoad_JSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	cfg := DefaultConfig()
	cfg.OutputPath = "out.xlsx"
	cfg.Backend = "ffmpeg"
	cfg.Overlay = true
	if err := cfg.Save(path); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got.OutputPath != "out.xlsx" || got.Backend != "ffmpeg" || !got.Overlay {
		t.Fatalf("round trip mismatch: %+v", got)
	}
}

func TestLoad_YAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := []byte("output_path: stamps.xlsx\nbackend: FFmpeg\nupdate_interval_ms: 20\n")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.OutputPath != "stamps.xlsx" || cfg.UpdateIntervalMs != 20 {
		t.Fatalf("yaml fields not applied: %+v", cfg)
	}
	if cfg.Backend != "ffmpeg" {
		t.Fatalf("backend should be normalized, got %q", cfg.Backend)
	}
	// Untouched fields keep defaults.
	if cfg.FrameWidth != 640 {
		t.Fatalf("expected default width, got %d", cfg.FrameWidth)
	}
}

func TestLoad_BadJSONReturnsDefaultsAndError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err == nil {
		t.Fatalf("expected decode error")
	}
	if cfg == nil || cfg.OutputPath != "timestamps.xlsx" {
		t.Fatalf("expected defaults alongside error, got %+v", cfg)
	}
}

func TestValidate_Clamps(t *testing.T) {
	cfg := &Config{PlaybackSpeed: 100, MinSpeed: 0.5, MaxSpeed: 4, SpeedStep: 0.5}
	_ = cfg.Validate()
	if cfg.PlaybackSpeed != 4 {
		t.Fatalf("speed should clamp to max, got %v", cfg.PlaybackSpeed)
	}
	if cfg.SpeedStep != 2 {
		t.Fatalf("speed step <= 1 should reset to 2, got %v", cfg.SpeedStep)
	}
	if cfg.SheetName != "Sheet" || cfg.Backend != "gocv" {
		t.Fatalf("empty fields should get defaults: %+v", cfg)
	}

	cfg = &Config{MinSpeed: 2, MaxSpeed: 1}
	_ = cfg.Validate()
	if cfg.MaxSpeed < cfg.MinSpeed {
		t.Fatalf("max below min after validate: %+v", cfg)
	}
	if cfg.PlaybackSpeed != 2 {
		t.Fatalf("default speed below min should clamp up, got %v", cfg.PlaybackSpeed)
	}
}
