package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"github.com/joshuapare/cardkit/card/numfmt"
	"github.com/joshuapare/cardkit/card/optcode"
)

func TestDefaultConfig_Valid(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())

	s, err := cfg.Format.Spec()
	require.NoError(t, err)
	assert.Equal(t, numfmt.NewSpec(12, 4, numfmt.Auto), s)
}

func TestLoad_MissingFileGivesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	if diff := cmp.Diff(DefaultConfig(), cfg); diff != "" {
		t.Errorf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestLoad_MergesOverDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cardkit.yaml")
	data := `
format:
  width: 10
  flags: [sci, plus]
options:
  output: "XYZ"
keywords:
  shapes: [CIRCLE, SQUARE]
logging:
  level: warn
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	s, err := cfg.Format.Spec()
	require.NoError(t, err)
	assert.Equal(t, numfmt.NewSpec(10, 4, numfmt.ForceE|numfmt.Plus), s)

	a, err := cfg.Alphabet("output")
	require.NoError(t, err)
	assert.Equal(t, "XYZ", a.Keys())

	shapes, err := cfg.Table("shapes")
	require.NoError(t, err)
	assert.Equal(t, []string{"CIRCLE", "SQUARE"}, shapes)

	// Tables from the defaults survive.
	_, err = cfg.Table("cards")
	require.NoError(t, err)

	opts, err := cfg.Logging.Options()
	require.NoError(t, err)
	assert.Equal(t, zapcore.WarnLevel, opts.Level)
}

func TestLoad_BadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("format: [unclosed"), 0o644))
	_, err := Load(path)
	require.ErrorContains(t, err, "failed to parse config")
}

func TestSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "cardkit.yaml")
	cfg := DefaultConfig()
	cfg.Format.Width = 20
	cfg.Keywords["extra"] = []string{"ONE"}
	require.NoError(t, cfg.Save(path))

	got, err := Load(path)
	require.NoError(t, err)
	if diff := cmp.Diff(cfg, got); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Run("log dir enables logging", func(t *testing.T) {
		t.Setenv("CARDKIT_LOG_DIR", "/tmp/cardkit-logs")
		cfg := DefaultConfig()
		cfg.applyEnvOverrides()
		assert.True(t, cfg.Logging.Enabled)
		assert.Equal(t, "/tmp/cardkit-logs", cfg.Logging.Dir)
	})

	t.Run("debug", func(t *testing.T) {
		t.Setenv("CARDKIT_DEBUG", "1")
		cfg := DefaultConfig()
		cfg.applyEnvOverrides()
		assert.Equal(t, "debug", cfg.Logging.Level)
		assert.True(t, cfg.Logging.Enabled)
	})

	t.Run("debug off", func(t *testing.T) {
		t.Setenv("CARDKIT_DEBUG", "false")
		cfg := DefaultConfig()
		cfg.applyEnvOverrides()
		assert.Equal(t, "info", cfg.Logging.Level)
	})

	t.Run("min exp digits", func(t *testing.T) {
		t.Setenv("CARDKIT_MIN_EXP_DIGITS", "3")
		cfg := DefaultConfig()
		cfg.applyEnvOverrides()
		assert.Equal(t, 3, cfg.Format.MinExpDigits)
	})

	t.Run("min exp digits ignores garbage", func(t *testing.T) {
		t.Setenv("CARDKIT_MIN_EXP_DIGITS", "three")
		cfg := DefaultConfig()
		cfg.applyEnvOverrides()
		assert.Equal(t, 1, cfg.Format.MinExpDigits)
	})
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		errMsg string
	}{
		{"width", func(c *Config) { c.Format.Width = 33 }, "width 33"},
		{"decimals", func(c *Config) { c.Format.Decimals = -1 }, "decimals -1"},
		{"flag", func(c *Config) { c.Format.Flags = []string{"bold"} }, "unknown flag"},
		{"mode conflict", func(c *Config) { c.Format.Flags = []string{"hex", "octal"} }, "malformed spec"},
		{"exp digits", func(c *Config) { c.Format.MinExpDigits = 9 }, "min_exp_digits"},
		{"alphabet", func(c *Config) { c.Options["bad"] = "AA" }, `options "bad"`},
		{"table", func(c *Config) { c.Keywords["none"] = nil }, `keyword table "none" is empty`},
		{"level", func(c *Config) { c.Logging.Level = "loud" }, "logging level"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			require.ErrorContains(t, cfg.Validate(), tt.errMsg)
		})
	}
}

func TestValidate_AlphabetError(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Options["bad"] = "A+"
	require.ErrorIs(t, cfg.Validate(), optcode.ErrInvalidKey)
}

func TestLookups_Unknown(t *testing.T) {
	cfg := DefaultConfig()
	_, err := cfg.Alphabet("nope")
	require.ErrorIs(t, err, ErrUnknownAlphabet)
	_, err = cfg.Table("nope")
	require.ErrorIs(t, err, ErrUnknownTable)
}
