package requestcache

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LukeTonin/finance/internal/config"
)

// TestNewBackend_Filesystem verifies that the filesystem backend creates
// its cache directory and stores entries.
func TestNewBackend_Filesystem(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cache", "eod")

	backend, err := NewBackend(config.CacheSettings{Backend: "filesystem", Path: path})
	require.NoError(t, err)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.True(t, info.IsDir())

	backend.Set("key", []byte("value"))
	data, ok := backend.Get("key")
	require.True(t, ok)
	assert.Equal(t, []byte("value"), data)
}

// TestNewBackend_Memory verifies basic store and delete on the memory
// backend.
func TestNewBackend_Memory(t *testing.T) {
	backend, err := NewBackend(config.CacheSettings{Backend: "memory"})
	require.NoError(t, err)

	backend.Set("key", []byte("value"))
	data, ok := backend.Get("key")
	require.True(t, ok)
	assert.Equal(t, []byte("value"), data)

	backend.Delete("key")
	_, ok = backend.Get("key")
	assert.False(t, ok)
}

// TestNewBackend_Unsupported verifies that an unknown backend kind is
// rejected.
func TestNewBackend_Unsupported(t *testing.T) {
	_, err := NewBackend(config.CacheSettings{Backend: "redis"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"redis"`)
}

// ── sqlite ────────────────────────────────────────────────────────────────────

// TestSQLiteBackend verifies set, get, overwrite and delete against a real
// sqlite file.
func TestSQLiteBackend(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cache", "responses.sqlite")

	backend, err := newSQLiteBackend(path)
	require.NoError(t, err)
	t.Cleanup(func() { backend.Close() })

	_, ok := backend.Get("key")
	assert.False(t, ok)

	backend.Set("key", []byte("first"))
	data, ok := backend.Get("key")
	require.True(t, ok)
	assert.Equal(t, []byte("first"), data)

	backend.Set("key", []byte("second"))
	data, ok = backend.Get("key")
	require.True(t, ok)
	assert.Equal(t, []byte("second"), data)

	backend.Delete("key")
	_, ok = backend.Get("key")
	assert.False(t, ok)
}

// TestSQLiteBackend_Persists verifies that entries survive reopening the
// database file.
func TestSQLiteBackend_Persists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "responses.sqlite")

	first, err := newSQLiteBackend(path)
	require.NoError(t, err)
	first.Set("key", []byte("value"))
	require.NoError(t, first.Close())

	second, err := newSQLiteBackend(path)
	require.NoError(t, err)
	t.Cleanup(func() { second.Close() })

	data, ok := second.Get("key")
	require.True(t, ok)
	assert.Equal(t, []byte("value"), data)
}
