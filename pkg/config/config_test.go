package config

import (
	"path/filepath"
	"testing"
)

// TestDefaultConfig verifies the default values
func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Grid.Ni != 64 || cfg.Grid.Nj != 64 || cfg.Grid.Nk != 64 {
		t.Errorf("Unexpected default grid extents: (%d, %d, %d)",
			cfg.Grid.Ni, cfg.Grid.Nj, cfg.Grid.Nk)
	}
	if cfg.Output.VolumeFile == "" {
		t.Error("Default volume file path should not be empty")
	}
}

// TestLoadConfigMissingFile verifies that a missing file yields defaults
func TestLoadConfigMissingFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "does-not-exist.yaml"))
	if err != nil {
		t.Fatalf("Missing config file should yield defaults, got error: %v", err)
	}
	if cfg.Grid.Ni != DefaultConfig().Grid.Ni {
		t.Error("Missing config file should yield default grid extents")
	}
}

// TestSaveAndLoadConfig verifies a round trip through the YAML file
func TestSaveAndLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	cfg := DefaultConfig()
	cfg.Grid.Ni = 10
	cfg.Grid.Nj = 20
	cfg.Grid.Nk = 30
	cfg.Output.ExtractSlices = true

	if err := SaveConfig(cfg, path); err != nil {
		t.Fatalf("Failed to save config: %v", err)
	}

	loaded, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	if loaded.Grid.Ni != 10 || loaded.Grid.Nj != 20 || loaded.Grid.Nk != 30 {
		t.Errorf("Loaded grid extents (%d, %d, %d) do not match saved values",
			loaded.Grid.Ni, loaded.Grid.Nj, loaded.Grid.Nk)
	}
	if !loaded.Output.ExtractSlices {
		t.Error("Loaded ExtractSlices does not match saved value")
	}
}
