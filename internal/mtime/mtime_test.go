package mtime

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMtime_ZeroValueIsUnknown(t *testing.T) {
	t.Parallel()

	var m Mtime
	assert.True(t, m.IsUnknown())
	assert.Equal(t, StateUnknown, m.State())
	_, ok := m.Nanos()
	assert.False(t, ok)
}

func TestMtime_NegativeKnownIsDistinct(t *testing.T) {
	t.Parallel()

	// Sentinel-style encodings would confuse these with Unknown/Missing.
	for _, ns := range []int64{-1, 0, -2} {
		m := Known(ns)
		assert.True(t, m.IsKnown(), "Known(%d)", ns)
		got, ok := m.Nanos()
		require.True(t, ok)
		assert.Equal(t, ns, got)
		assert.NotEqual(t, Unknown(), m)
		assert.NotEqual(t, Missing(), m)
	}
}

func TestMtime_String(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "unknown", Unknown().String())
	assert.Equal(t, "missing", Missing().String())
	assert.Equal(t, "42", Known(42).String())
}

func TestSystem_MissingPath(t *testing.T) {
	t.Parallel()

	got, err := System.Stat(filepath.Join(t.TempDir(), "nope"))
	require.NoError(t, err)
	assert.True(t, got.IsMissing())
}

func TestSystem_ExistingFileMatchesModTime(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	path := filepath.Join(t.TempDir(), "out.o")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o600))
	want := time.Unix(1_700_000_000, 123_456_789)
	require.NoError(t, os.Chtimes(path, want, want))
	info, err := os.Stat(path)
	require.NoError(t, err)

	// --- Act ---
	got, err := System.Stat(path)

	// --- Assert ---
	require.NoError(t, err)
	ns, ok := got.Nanos()
	require.True(t, ok)
	assert.Equal(t, info.ModTime().UnixNano(), ns)
}

func TestSystem_RequeriesEveryCall(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "gen.h")
	require.NoError(t, os.WriteFile(path, nil, 0o600))
	first := time.Unix(1_600_000_000, 0)
	require.NoError(t, os.Chtimes(path, first, first))

	got, err := System.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, FromTime(first), got)

	second := time.Unix(1_650_000_000, 0)
	require.NoError(t, os.Chtimes(path, second, second))
	got, err = System.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, FromTime(second), got)

	require.NoError(t, os.Remove(path))
	got, err = System.Stat(path)
	require.NoError(t, err)
	assert.True(t, got.IsMissing())
}

func TestSystem_NonExistenceFailureIsStatError(t *testing.T) {
	t.Parallel()
	if runtime.GOOS == "windows" {
		t.Skip("a path below a regular file reports not-found on windows")
	}

	file := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(file, nil, 0o600))
	bad := filepath.Join(file, "child")

	_, err := System.Stat(bad)

	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrStat))
	var statErr *StatError
	require.True(t, errors.As(err, &statErr))
	assert.Equal(t, bad, statErr.Path)
	assert.Contains(t, err.Error(), bad)
}

func TestFake(t *testing.T) {
	t.Parallel()

	f := NewFake()
	f.Set("a", 10)
	f.Fail("b", errors.New("permission denied"))

	got, err := f.Stat("a")
	require.NoError(t, err)
	assert.Equal(t, Known(10), got)

	got, err = f.Stat("c")
	require.NoError(t, err)
	assert.Equal(t, Missing(), got)

	_, err = f.Stat("b")
	assert.ErrorIs(t, err, ErrStat)
	assert.Equal(t, 1, f.Calls("b"))

	f.Remove("a")
	got, err = f.Stat("a")
	require.NoError(t, err)
	assert.True(t, got.IsMissing())
	assert.Equal(t, 2, f.Calls("a"))
}
