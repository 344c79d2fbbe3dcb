// Package config loads cardctl settings from YAML.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"

	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"

	"github.com/joshuapare/cardkit/card/numfmt"
	"github.com/joshuapare/cardkit/card/optcode"
	"github.com/joshuapare/cardkit/internal/logger"
)

var (
	ErrUnknownAlphabet = errors.New("config: unknown option alphabet")
	ErrUnknownTable    = errors.New("config: unknown keyword table")
)

// Config holds all cardctl configuration.
type Config struct {
	// Format is the default field spec for numeric output.
	Format FormatConfig `yaml:"format"`

	// Options maps an option-set name to its key alphabet.
	Options map[string]string `yaml:"options"`

	// Keywords maps a table name to its candidate keywords.
	Keywords map[string][]string `yaml:"keywords"`

	Logging LoggingConfig `yaml:"logging"`
}

// FormatConfig describes a numfmt.Spec by its parts.
type FormatConfig struct {
	Width        int      `yaml:"width"`
	Decimals     int      `yaml:"decimals"`
	Flags        []string `yaml:"flags"`          // auto, uflow, sci, left, zero, plus, blank, single, hex, octal
	MinExpDigits int      `yaml:"min_exp_digits"` // minimum exponent digits in scientific notation
}

// LoggingConfig configures the zap logger.
type LoggingConfig struct {
	Enabled bool   `yaml:"enabled"`
	Dir     string `yaml:"dir"`
	Level   string `yaml:"level"` // debug, info, warn, error
	Console bool   `yaml:"console"`
}

// DefaultConfig returns the built-in configuration.
func DefaultConfig() *Config {
	return &Config{
		Format: FormatConfig{
			Width:        12,
			Decimals:     4,
			Flags:        []string{"auto"},
			MinExpDigits: 1,
		},
		Options: map[string]string{
			"output": "ACDHNPRSTV",
			"trace":  "EFGIKLMOW",
		},
		Keywords: map[string][]string{
			"cards": {"TITLE", "NETWORK", "CELL", "CONNECT", "OPTIONS", "OUTPUT", "RUN", "END"},
			"units": {"SECONDS", "MILLISECONDS", "SAMPLES", "STEPS"},
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Load loads configuration from a YAML file. A missing file yields the
// defaults. Environment overrides are applied in both cases.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
	case err != nil:
		return nil, fmt.Errorf("failed to read config: %w", err)
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	cfg.applyEnvOverrides()
	return cfg, nil
}

// Save saves configuration to a YAML file.
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// applyEnvOverrides applies environment variable overrides.
func (c *Config) applyEnvOverrides() {
	if dir := os.Getenv("CARDKIT_LOG_DIR"); dir != "" {
		c.Logging.Dir = dir
		c.Logging.Enabled = true
	}
	if v := os.Getenv("CARDKIT_DEBUG"); v != "" && v != "0" && v != "false" {
		c.Logging.Level = "debug"
		c.Logging.Enabled = true
	}
	if v := os.Getenv("CARDKIT_MIN_EXP_DIGITS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.Format.MinExpDigits = n
		}
	}
}

// Validate checks every section and reports the first problem.
func (c *Config) Validate() error {
	if _, err := c.Format.Spec(); err != nil {
		return err
	}
	if n := c.Format.MinExpDigits; n < 0 || n > 4 {
		return fmt.Errorf("config: min_exp_digits %d out of range [0,4]", n)
	}
	for _, name := range sortedKeys(c.Options) {
		if _, err := optcode.NewAlphabet(c.Options[name]); err != nil {
			return fmt.Errorf("config: options %q: %w", name, err)
		}
	}
	for _, name := range sortedKeys(c.Keywords) {
		if len(c.Keywords[name]) == 0 {
			return fmt.Errorf("config: keyword table %q is empty", name)
		}
	}
	if _, err := c.Logging.Options(); err != nil {
		return err
	}
	return nil
}

// Spec builds the numfmt.Spec described by f. Width and decimals must be in
// range here even though NewSpec would wrap them.
func (f FormatConfig) Spec() (numfmt.Spec, error) {
	if f.Width < 1 || f.Width > 32 {
		return 0, fmt.Errorf("config: width %d out of range [1,32]", f.Width)
	}
	if f.Decimals < 0 || f.Decimals > 15 {
		return 0, fmt.Errorf("config: decimals %d out of range [0,15]", f.Decimals)
	}
	flags, err := numfmt.ParseFlags(f.Flags...)
	if err != nil {
		return 0, fmt.Errorf("config: %w", err)
	}
	s := numfmt.NewSpec(f.Width, f.Decimals, flags)
	if err := s.Validate(); err != nil {
		return 0, fmt.Errorf("config: %w", err)
	}
	return s, nil
}

// Alphabet returns the named option alphabet.
func (c *Config) Alphabet(name string) (optcode.Alphabet, error) {
	keys, ok := c.Options[name]
	if !ok {
		return optcode.Alphabet{}, fmt.Errorf("%w: %q", ErrUnknownAlphabet, name)
	}
	return optcode.NewAlphabet(keys)
}

// Table returns the named keyword table.
func (c *Config) Table(name string) ([]string, error) {
	t, ok := c.Keywords[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownTable, name)
	}
	return t, nil
}

// Options converts the section into logger options.
func (l LoggingConfig) Options() (logger.Options, error) {
	level := zapcore.InfoLevel
	if l.Level != "" {
		var err error
		if level, err = zapcore.ParseLevel(l.Level); err != nil {
			return logger.Options{}, fmt.Errorf("config: logging level: %w", err)
		}
	}
	return logger.Options{
		Enabled: l.Enabled,
		LogDir:  l.Dir,
		Level:   level,
		Console: l.Console,
	}, nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
