// Package config loads the host tool configuration.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config describes how to reach the firmware and how to sample it.
type Config struct {
	// Device is the serial device path.
	Device string `yaml:"device"`

	// Baud must match the firmware UART configuration.
	Baud int `yaml:"baud"`

	// ReadTimeoutMS bounds a single serial read; 0 blocks.
	ReadTimeoutMS int `yaml:"read_timeout_ms"`

	// SampleSeconds is how long the drift command collects reports.
	SampleSeconds int `yaml:"sample_seconds"`
}

// Load reads configuration from a YAML file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return Parse(data)
}

// Parse parses configuration from YAML bytes and applies defaults.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	applyDefaults(&cfg)
	return &cfg, nil
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

// applyDefaults fills in missing configuration values
func applyDefaults(cfg *Config) {
	if cfg.Device == "" {
		cfg.Device = "/dev/ttyACM0"
	}
	if cfg.Baud == 0 {
		cfg.Baud = 115200
	}
	if cfg.SampleSeconds == 0 {
		cfg.SampleSeconds = 10
	}
}
