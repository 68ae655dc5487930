// Package config loads designstore's YAML configuration, adapted from the
// teacher's internal/config package (YAML-tagged struct, DefaultConfig
// constructor) and trimmed to the two sections this module needs.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds designstore's configuration.
type Config struct {
	Logging LoggingConfig `yaml:"logging"`
	Memory  MemoryConfig  `yaml:"memory"`
}

// LoggingConfig controls internal/logging's behavior.
type LoggingConfig struct {
	DebugMode  bool            `yaml:"debug_mode"`
	Categories map[string]bool `yaml:"categories"`
	Level      string          `yaml:"level"`
	JSONFormat bool            `yaml:"json_format"`
	Dir        string          `yaml:"dir"`
}

// MemoryConfig bounds the undo/redo history an internal/memory.Memory
// keeps. A zero value means unbounded.
type MemoryConfig struct {
	MaxUndoDepth int `yaml:"max_undo_depth"`
	MaxRedoDepth int `yaml:"max_redo_depth"`
}

// DefaultConfig returns a Config with logging disabled and unbounded
// history: production mode is silent by default.
func DefaultConfig() *Config {
	return &Config{
		Logging: LoggingConfig{
			DebugMode: false,
			Level:     "info",
		},
		Memory: MemoryConfig{
			MaxUndoDepth: 0,
			MaxRedoDepth: 0,
		},
	}
}

// Load reads and parses a YAML config file at path, filling in defaults
// for anything the file omits.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: reading %s: %w", path, err)
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parsing %s: %w", path, err)
	}
	return cfg, nil
}
