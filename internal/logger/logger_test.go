package logger

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestInit_Disabled(t *testing.T) {
	require.NoError(t, Init(Options{}))
	require.False(t, L.Core().Enabled(zapcore.ErrorLevel))
}

func TestInit_File(t *testing.T) {
	dir := t.TempDir()
	t.Cleanup(func() { L = zap.NewNop() })

	require.NoError(t, Init(Options{Enabled: true, LogDir: dir, Level: zapcore.WarnLevel}))
	require.False(t, L.Core().Enabled(zapcore.InfoLevel))

	L.Warn("field overflow", zap.String("code", "overflow"), zap.Int("line", 3))
	require.NoError(t, Sync())

	name := filepath.Join(dir, logPrefix+time.Now().Format(dateLayout)+logSuffix)
	data, err := os.ReadFile(name)
	require.NoError(t, err)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(data, &entry))
	require.Equal(t, "field overflow", entry["msg"])
	require.Equal(t, "overflow", entry["code"])
	require.Equal(t, float64(3), entry["line"])
}

func TestInit_Console(t *testing.T) {
	t.Cleanup(func() { L = zap.NewNop() })
	require.NoError(t, Init(Options{Enabled: true, Console: true, Level: zapcore.DebugLevel}))
	require.True(t, L.Core().Enabled(zapcore.DebugLevel))
}

func TestCleanOldLogs(t *testing.T) {
	dir := t.TempDir()
	now := time.Date(2024, 3, 31, 12, 0, 0, 0, time.UTC)

	files := map[string]bool{ // name -> kept
		"cardkit-2024-03-30.log": true,
		"cardkit-2024-03-02.log": true,
		"cardkit-2024-02-01.log": false,
		"cardkit-garbage.log":    true,
		"other-2020-01-01.log":   true,
	}
	for name := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), nil, 0o644))
	}

	cleanOldLogs(dir, now)

	for name, kept := range files {
		_, err := os.Stat(filepath.Join(dir, name))
		if kept {
			require.NoError(t, err, name)
		} else {
			require.True(t, os.IsNotExist(err), name)
		}
	}
}
