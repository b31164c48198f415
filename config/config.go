// Package config loads the tracer settings from a YAML file and/or the environment.
package config

import (
	"fmt"
	"runtime"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config represents the application configuration.
type Config struct {
	// Environment selects the logger flavor (development or production).
	Environment string `env:"OUTLINE_ENVIRONMENT" env-default:"development" yaml:"environment"`

	// Threshold is the highest intensity treated as foreground.
	Threshold int `env:"OUTLINE_THRESHOLD" env-default:"128" yaml:"threshold"`

	// Workers is the number of files converted concurrently in batch mode.
	// Zero means the number of available CPUs.
	Workers int `env:"OUTLINE_WORKERS" env-default:"0" yaml:"workers"`

	// Style holds the paint attributes of the generated paths.
	Style struct {
		Fill        string `env:"OUTLINE_FILL" env-default:"black" yaml:"fill"`
		Stroke      string `env:"OUTLINE_STROKE" env-default:"black" yaml:"stroke"`
		StrokeWidth int    `env:"OUTLINE_STROKE_WIDTH" env-default:"1" yaml:"strokeWidth"`
	} `yaml:"style"`

	// Spinner enables the terminal progress indicator.
	Spinner bool `env:"OUTLINE_SPINNER" env-default:"true" yaml:"spinner"`
}

// Load reads the yaml config file, then overrides the values with the environment variables.
func Load(path string) (*Config, error) {
	var cfg Config
	if err := cleanenv.ReadConfig(path, &cfg); err != nil {
		return nil, fmt.Errorf("could not read config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadEnv reads the configuration from the environment only.
func LoadEnv() (*Config, error) {
	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("could not read environment: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the value ranges.
func (c *Config) Validate() error {
	if c.Threshold < 0 || c.Threshold > 255 {
		return fmt.Errorf("threshold should be between 0 and 255, got %d", c.Threshold)
	}
	if c.Workers < 0 {
		return fmt.Errorf("the number of workers cannot be negative, got %d", c.Workers)
	}
	if c.Style.StrokeWidth < 0 {
		return fmt.Errorf("stroke width cannot be negative, got %d", c.Style.StrokeWidth)
	}
	return nil
}

// WorkerCount returns the configured number of workers or the number of CPUs.
func (c *Config) WorkerCount() int {
	if c.Workers == 0 {
		return runtime.NumCPU()
	}
	return c.Workers
}
