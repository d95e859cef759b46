package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config mirrors the run command's flags; a YAML file supplies defaults and
// explicitly set flags win over file values.
type Config struct {
	Input       string  `yaml:"input"`        // edge-list file path
	Output      string  `yaml:"output"`       // assignment file path ("" = stdout summary only)
	Nodes       int     `yaml:"nodes"`        // node count (0 = infer max index + 1)
	Colors      int     `yaml:"colors"`       // color cap (0 = unbounded)
	Tolerance   float64 `yaml:"tolerance"`    // target q-error
	UnitWeights bool    `yaml:"unit_weights"` // ignore stored weights
	Workers     int     `yaml:"workers"`      // reduction parallelism (0 = GOMAXPROCS)
}

// loadConfig reads a YAML config file; an empty path yields the zero Config.
func loadConfig(path string) (Config, error) {
	var cfg Config
	if path == "" {
		return cfg, nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}
	if err = yaml.Unmarshal(raw, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}

	return cfg, nil
}
