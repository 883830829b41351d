package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/overtimepog/traycer-internship/internal/config"
)

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	cfg, err := config.Load(filepath.Join(t.TempDir(), "absent.json"))
	if err != nil {
		t.Fatalf("Load on missing file: %v", err)
	}

	def := config.Default()
	if cfg.Cache.Path != def.Cache.Path {
		t.Errorf("Cache.Path = %q, want default %q", cfg.Cache.Path, def.Cache.Path)
	}
	if cfg.Cache.MaxBytes != def.Cache.MaxBytes {
		t.Errorf("Cache.MaxBytes = %d, want default %d", cfg.Cache.MaxBytes, def.Cache.MaxBytes)
	}
	if cfg.Explorer.Concurrency != def.Explorer.Concurrency {
		t.Errorf("Explorer.Concurrency = %d, want default %d", cfg.Explorer.Concurrency, def.Explorer.Concurrency)
	}
}

func TestLoad_OverridesOnTopOfDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "traycer.json")
	override := `{
		"cache": {"max_bytes": 1048576, "low_water_bytes": 524288},
		"explorer": {"concurrency": 8}
	}`
	if err := os.WriteFile(path, []byte(override), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Cache.MaxBytes != 1048576 {
		t.Errorf("Cache.MaxBytes = %d, want the override 1048576", cfg.Cache.MaxBytes)
	}
	if cfg.Explorer.Concurrency != 8 {
		t.Errorf("Explorer.Concurrency = %d, want the override 8", cfg.Explorer.Concurrency)
	}
	// Untouched fields keep their defaults.
	if want := config.Default().Cache.Path; cfg.Cache.Path != want {
		t.Errorf("Cache.Path = %q, want default %q", cfg.Cache.Path, want)
	}
	if want := config.Default().Explorer.MaxFileSize; cfg.Explorer.MaxFileSize != want {
		t.Errorf("Explorer.MaxFileSize = %d, want default %d", cfg.Explorer.MaxFileSize, want)
	}
}

func TestLoad_MalformedFileFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "traycer.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	if _, err := config.Load(path); err == nil {
		t.Fatal("Load on malformed file: want error, not silently ignored overrides")
	}
}

func TestDefault_IsValidEngineConfig(t *testing.T) {
	cfg := config.Default()
	if cfg.Cache.LowWaterBytes >= cfg.Cache.MaxBytes {
		t.Error("default low-water mark must sit below the ceiling")
	}
	if cfg.Explorer.Concurrency <= 0 {
		t.Error("default concurrency must be positive")
	}
	if len(cfg.Explorer.IgnoreDirs) == 0 {
		t.Error("defaults should ignore well-known noise directories")
	}
}
