// Package config captures the runtime knobs for a network, its trainer
// and the classification facade.
package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultConfidenceThreshold is the winning-activation floor applied
// when a config does not set one.
const DefaultConfidenceThreshold = 0.95

// Network describes a complete network: topology, training
// hyperparameters and the decision policy. The core is constructible
// from this structure alone.
type Network struct {
	InputSize    int     `yaml:"input_size"`
	OutputSize   int     `yaml:"output_size"`
	HiddenSizes  []int   `yaml:"hidden_sizes"`
	LearningRate float64 `yaml:"learning_rate"`
	Momentum     float64 `yaml:"momentum"`
	// ConfidenceThreshold is the decision floor for the classifier.
	// Zero means unset and Validate replaces it with
	// DefaultConfidenceThreshold; an always-decide policy is therefore
	// not expressible through the config.
	ConfidenceThreshold float64  `yaml:"confidence_threshold"`
	Epochs              int      `yaml:"epochs"`
	Seed                int64    `yaml:"seed"`
	Labels              []string `yaml:"labels"`
}

// Load reads and validates a Network config from YAML.
func Load(path string) (*Network, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("open config: %w", err)
	}

	cfg := &Network{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate verifies the config describes a buildable network and fills
// in defaults for the optional fields.
func (c *Network) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}
	if c.InputSize <= 0 {
		return fmt.Errorf("input_size must be > 0 (got %d)", c.InputSize)
	}
	if c.OutputSize <= 0 {
		return fmt.Errorf("output_size must be > 0 (got %d)", c.OutputSize)
	}
	// An empty hidden_sizes list is the legal single-layer case.
	for i, h := range c.HiddenSizes {
		if h <= 0 {
			return fmt.Errorf("hidden_sizes[%d] must be > 0 (got %d)", i, h)
		}
	}
	if c.LearningRate <= 0 || c.LearningRate > 1 {
		return fmt.Errorf("learning_rate must be in (0, 1] (got %g)", c.LearningRate)
	}
	if c.Momentum < 0 || c.Momentum >= 1 {
		return fmt.Errorf("momentum must be in [0, 1) (got %g)", c.Momentum)
	}
	if c.ConfidenceThreshold == 0 {
		c.ConfidenceThreshold = DefaultConfidenceThreshold
	}
	if c.ConfidenceThreshold < 0 || c.ConfidenceThreshold >= 1 {
		return fmt.Errorf("confidence_threshold must be in [0, 1) (got %g)", c.ConfidenceThreshold)
	}
	if c.Epochs <= 0 {
		c.Epochs = 1
	}
	if len(c.Labels) > 0 && len(c.Labels) != c.OutputSize {
		return fmt.Errorf("labels count %d does not match output_size %d", len(c.Labels), c.OutputSize)
	}
	return nil
}
