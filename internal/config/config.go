// Package config loads sqlcsv settings from a YAML file and the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrConfigNotFound is returned when the config file does not exist.
// Callers can check for this with errors.Is(err, config.ErrConfigNotFound).
var ErrConfigNotFound = errors.New("config file not found")

// ErrInvalidValue is returned when an environment variable cannot be parsed.
var ErrInvalidValue = errors.New("invalid config value")

// ConfigFileName is looked up in the working directory when --config is not given.
const ConfigFileName = "sqlcsv.yaml"

// Environment variables read by ApplyEnv.
const (
	EnvBatchSize = "SQLCSV_BATCH_SIZE"
	EnvNoHeader  = "SQLCSV_NO_HEADER"
	EnvPragmas   = "SQLCSV_PRAGMAS"
	EnvLogLevel  = "SQLCSV_LOG_LEVEL"
	EnvSeqURL    = "SQLCSV_SEQ_URL"
)

// Config holds the settings that may come from a file or the environment.
// Command-line flags override every field.
type Config struct {
	BatchSize int      `yaml:"batch_size"`
	NoHeader  bool     `yaml:"no_header"`
	Pragmas   []string `yaml:"pragmas"`
	LogLevel  string   `yaml:"log_level"`
	SeqURL    string   `yaml:"seq_url,omitempty"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		BatchSize: 300,
		LogLevel:  "warn",
	}
}

// Load reads a YAML file on top of the defaults. Fields missing from the
// file keep their default value.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path) //nolint:gosec // config path is chosen by the user
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, ErrConfigNotFound
		}
		return cfg, err
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return cfg, nil
}

// ApplyEnv overrides fields from environment variables found by lookup,
// normally os.LookupEnv.
func (c Config) ApplyEnv(lookup func(string) (string, bool)) (Config, error) {
	if v, ok := lookup(EnvBatchSize); ok {
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return c, fmt.Errorf("%w: %s=%q", ErrInvalidValue, EnvBatchSize, v)
		}
		c.BatchSize = n
	}
	if v, ok := lookup(EnvNoHeader); ok {
		b, err := strconv.ParseBool(strings.TrimSpace(v))
		if err != nil {
			return c, fmt.Errorf("%w: %s=%q", ErrInvalidValue, EnvNoHeader, v)
		}
		c.NoHeader = b
	}
	if v, ok := lookup(EnvPragmas); ok {
		c.Pragmas = nil
		for _, p := range strings.Split(v, ";") {
			if p = strings.TrimSpace(p); p != "" {
				c.Pragmas = append(c.Pragmas, p)
			}
		}
	}
	if v, ok := lookup(EnvLogLevel); ok {
		c.LogLevel = strings.TrimSpace(v)
	}
	if v, ok := lookup(EnvSeqURL); ok {
		c.SeqURL = strings.TrimSpace(v)
	}
	return c, nil
}
