package mmfile

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestOpen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "deck.txt")
	want := []byte("TITLE run one\nEND\n")
	require.NoError(t, os.WriteFile(path, want, 0o644))

	m, err := Open(path)
	require.NoError(t, err)
	require.Equal(t, want, m.Data)
	if runtime.GOOS != "windows" && runtime.GOOS != "plan9" {
		require.True(t, m.Mapped())
	}

	require.NoError(t, m.Close())
	require.Nil(t, m.Data)
	require.False(t, m.Mapped())
	require.NoError(t, m.Close(), "second close is a no-op")
}

func TestOpen_Empty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.txt")
	require.NoError(t, os.WriteFile(path, nil, 0o644))

	m, err := Open(path)
	require.NoError(t, err)
	require.Empty(t, m.Data)
	require.False(t, m.Mapped())
	require.NoError(t, m.Close())
}

func TestOpen_Missing(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "absent.txt"))
	require.ErrorIs(t, err, os.ErrNotExist)
}
