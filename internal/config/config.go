// Package config holds the workbench configuration: defaults, an
// optional YAML file, and environment overrides, applied in that order.
package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config holds all lolli configuration.
type Config struct {
	Prover  ProverConfig  `yaml:"prover"`
	Output  OutputConfig  `yaml:"output"`
	Codegen CodegenConfig `yaml:"codegen"`
}

// ProverConfig configures proof search.
type ProverConfig struct {
	MaxDepth int `yaml:"max_depth"`
}

// OutputConfig configures terminal rendering.
type OutputConfig struct {
	Color   bool `yaml:"color"`
	Unicode bool `yaml:"unicode"`
}

// CodegenConfig configures witness code generation.
type CodegenConfig struct {
	Target string `yaml:"target"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		Prover: ProverConfig{
			MaxDepth: 100,
		},
		Output: OutputConfig{
			Color:   true,
			Unicode: true,
		},
		Codegen: CodegenConfig{
			Target: "rust",
		},
	}
}

// Path returns the config file path: LOLLI_CONFIG when set, otherwise
// the given fallback.
func Path(fallback string) string {
	if p := os.Getenv("LOLLI_CONFIG"); p != "" {
		return p
	}
	return fallback
}

// Load reads the YAML file at path over the defaults. A missing file is
// not an error. Environment overrides apply last.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg.applyEnvOverrides()
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.applyEnvOverrides()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("LOLLI_DEPTH"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			c.Prover.MaxDepth = n
		}
	}
	if v := os.Getenv("LOLLI_NO_COLOR"); v != "" && v != "0" {
		c.Output.Color = false
	}
	if v := os.Getenv("LOLLI_ASCII"); v != "" && v != "0" {
		c.Output.Unicode = false
	}
}

// Validate checks the loaded values.
func (c *Config) Validate() error {
	if c.Prover.MaxDepth <= 0 {
		return fmt.Errorf("prover.max_depth must be positive, have %d", c.Prover.MaxDepth)
	}
	switch c.Codegen.Target {
	case "rust":
	default:
		return fmt.Errorf("unsupported codegen target %q", c.Codegen.Target)
	}
	return nil
}
