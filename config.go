package main

import (
	"fmt"
	"os"

	"github.com/bmatcuk/doublestar/v4"
	"gopkg.in/yaml.v3"
)

const defaultConfigPath = ".pystrict.yaml"

const (
	colorModeAuto   = "auto"
	colorModeAlways = "always"
	colorModeNever  = "never"
)

// Config is the checker configuration. Rule severity is deliberately not
// configurable: the tool checks exactly two conditions or nothing.
type Config struct {
	// Exclude lists doublestar glob patterns; matching arguments are
	// silently skipped.
	Exclude []string `yaml:"exclude"`

	// Color is one of "auto", "always", "never".
	Color string `yaml:"color"`
}

// loadConfig reads the configuration at path, or at the default location
// when path is empty. A missing default config is not an error; an
// explicitly named missing config is.
func loadConfig(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		path = defaultConfigPath
	}

	raw, err := os.ReadFile(path)
	switch {
	case err == nil:
	case os.IsNotExist(err) && !explicit:
		return &Config{Color: colorModeAuto}, nil
	default:
		return nil, err
	}

	cfg := Config{Color: colorModeAuto}
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return &cfg, nil
}

func (c *Config) validate() error {
	switch c.Color {
	case colorModeAuto, colorModeAlways, colorModeNever:
	default:
		return fmt.Errorf("unknown color mode %q", c.Color)
	}

	for _, pattern := range c.Exclude {
		if !doublestar.ValidatePattern(pattern) {
			return fmt.Errorf("invalid exclude pattern %q", pattern)
		}
	}

	return nil
}

// excluded reports whether name matches any exclude pattern.
func (c *Config) excluded(name string) (bool, error) {
	for _, pattern := range c.Exclude {
		ok, err := doublestar.Match(pattern, name)
		if err != nil {
			return false, err
		}
		if ok {
			return true, nil
		}
	}

	return false, nil
}
