// Package config holds the kernel's single immutable configuration
// record, modeled on the teacher's Config/DefaultConfig/Load/Save
// pattern but flattened to what the prover and oracle actually read.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is passed by value throughout the kernel; nothing mutates it in
// place.
type Config struct {
	UseClassicalLogic    bool          `yaml:"use_classical_logic"`
	PythonOpsReturnProps bool          `yaml:"python_ops_return_props"`
	ShowAllParentheses   bool          `yaml:"show_all_parentheses"`
	Prover               ProverConfig  `yaml:"prover"`
	Oracle               OracleConfig  `yaml:"oracle"`
	Logging              LoggingConfig `yaml:"logging"`
}

// ProverConfig holds the search-depth and cancellation parameters Prove
// reads.
type ProverConfig struct {
	DefaultMaxDepth int           `yaml:"default_max_depth"`
	Timeout         time.Duration `yaml:"timeout"`
}

// OracleConfig holds oracle settings. No function in package oracle
// takes a Config, so FactLimit is not read by the oracles.
type OracleConfig struct {
	FactLimit int `yaml:"fact_limit"`
}

// LoggingConfig configures the optional diagnostic logger (package
// logging).
type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // json, console
}

// DefaultConfig returns the kernel's default configuration.
func DefaultConfig() Config {
	return Config{
		UseClassicalLogic:    true,
		PythonOpsReturnProps: false,
		ShowAllParentheses:   false,
		Prover: ProverConfig{
			DefaultMaxDepth: 64,
			Timeout:         5 * time.Second,
		},
		Oracle: OracleConfig{
			FactLimit: 10000,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// LoadYAML reads a Config from path, starting from DefaultConfig and
// applying environment overrides on top of whatever the file sets. A
// missing file is not an error: it yields the (env-overridden) defaults,
// matching the teacher's Load behavior.
func LoadYAML(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			applyEnvOverrides(&cfg)
			return cfg, nil
		}
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}
	applyEnvOverrides(&cfg)
	return cfg, nil
}

// SaveYAML writes c to path.
func (c Config) SaveYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("config: marshal: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("config: write %s: %w", path, err)
	}
	return nil
}

func applyEnvOverrides(c *Config) {
	if v := os.Getenv("LOGOS_CLASSICAL"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.UseClassicalLogic = b
		}
	}
	if v := os.Getenv("LOGOS_MAX_DEPTH"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.Prover.DefaultMaxDepth = n
		}
	}
	if v := os.Getenv("LOGOS_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
}
