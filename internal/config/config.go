// Package config loads the YAML configuration of the price example: the
// pricing rates, batch sizing, logging and metrics settings.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the top-level configuration document.
type Config struct {
	Logging LoggingConfig `yaml:"logging"`
	Price   PriceConfig   `yaml:"price"`
	Batch   BatchConfig   `yaml:"batch"`
	Metrics MetricsConfig `yaml:"metrics"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// PriceConfig holds the rates of the discount and tax steps. Rates are
// fractions: 0.1 is ten percent.
type PriceConfig struct {
	Discount float64 `yaml:"discount"`
	Tax      float64 `yaml:"tax"`
	// Coupon, when set, is applied as a single-use input plugin.
	Coupon float64 `yaml:"coupon"`
	// Fallback is the price returned when a step fails. Zero disables it.
	Fallback float64 `yaml:"fallback"`
}

type BatchConfig struct {
	Workers int  `yaml:"workers"`
	Drain   bool `yaml:"drain"`
}

type MetricsConfig struct {
	Enabled   bool   `yaml:"enabled"`
	Namespace string `yaml:"namespace"`
}

// Load reads path on top of the defaults. An empty path returns the
// defaults.
func Load(path string) (*Config, error) {
	if path == "" {
		cfg := Default()
		return &cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	return Parse(data)
}

// Parse decodes data on top of the defaults, then normalizes and
// validates the result. Unknown keys are rejected.
func Parse(data []byte) (*Config, error) {
	cfg := Default()

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	cfg.normalize()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Marshal renders cfg as YAML.
func (c *Config) Marshal() ([]byte, error) {
	return yaml.Marshal(c)
}
