// Package config provides configuration loading and management for
// naturalneighbor. It handles loading configuration from YAML files and
// provides default values.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config represents the application configuration loaded from YAML
type Config struct {
	// Grid parameters
	Grid struct {
		// Ni, Nj, Nk are the output grid extents in cells along each axis
		Ni int `yaml:"ni"`
		Nj int `yaml:"nj"`
		Nk int `yaml:"nk"`
	} `yaml:"grid"`

	// Output parameters
	Output struct {
		// VolumeFile is the path the raw interpolated volume is written to
		VolumeFile string `yaml:"volumeFile"`

		// ExtractSlices determines whether PNG slice sequences are saved
		// along all three axes after interpolation
		ExtractSlices bool `yaml:"extractSlices"`

		// SlicesDir is the directory slice sequences are saved under
		SlicesDir string `yaml:"slicesDir"`

		// Verbose controls the level of progress output
		Verbose bool `yaml:"verbose"`
	} `yaml:"output"`
}

// DefaultConfig returns a configuration with default values
func DefaultConfig() *Config {
	cfg := &Config{}

	// Set default grid extents
	cfg.Grid.Ni = 64
	cfg.Grid.Nj = 64
	cfg.Grid.Nk = 64

	// Set default output parameters
	cfg.Output.VolumeFile = "volume.bin"
	cfg.Output.ExtractSlices = false
	cfg.Output.SlicesDir = "volume_slices"
	cfg.Output.Verbose = true

	return cfg
}

// LoadConfig loads configuration from a YAML file
// If the file doesn't exist, it returns the default configuration
func LoadConfig(configPath string) (*Config, error) {
	cfg := DefaultConfig()

	// Check if config file exists
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return cfg, nil
	}

	// Read config file
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	// Parse YAML
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("error parsing config file: %w", err)
	}

	return cfg, nil
}

// SaveConfig saves the configuration to a YAML file
func SaveConfig(cfg *Config, configPath string) error {
	// Create directory if it doesn't exist
	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("error creating config directory: %w", err)
	}

	// Marshal config to YAML
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("error marshaling config: %w", err)
	}

	// Write to file
	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("error writing config file: %w", err)
	}

	return nil
}

// CreateDefaultConfigFile creates a default configuration file at the specified path
func CreateDefaultConfigFile(configPath string) error {
	cfg := DefaultConfig()
	return SaveConfig(cfg, configPath)
}
