package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRotatingWriter_WritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.log")
	w, err := NewRotatingWriter(path, 1, 3)
	require.NoError(t, err)
	defer func() { _ = w.Close() }()

	_, err = w.Write([]byte("hello\n"))
	require.NoError(t, err)
	require.NoError(t, w.Sync())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "hello\n", string(data))
}

func TestRotatingWriter_RotatesAtSizeLimit(t *testing.T) {
	// Given: a writer with a tiny size limit (1MB)
	dir := t.TempDir()
	path := filepath.Join(dir, "test.log")
	w, err := NewRotatingWriter(path, 1, 3)
	require.NoError(t, err)
	defer func() { _ = w.Close() }()

	// When: I write past the limit
	chunk := []byte(strings.Repeat("x", 512*1024))
	for i := 0; i < 3; i++ {
		_, err = w.Write(chunk)
		require.NoError(t, err)
	}

	// Then: a rotated file exists alongside the active one
	_, err = os.Stat(path)
	assert.NoError(t, err)
	_, err = os.Stat(path + ".1")
	assert.NoError(t, err)
}

func TestSetup_CreatesLoggerAndCleanup(t *testing.T) {
	cfg := Config{
		Level:     "debug",
		FilePath:  filepath.Join(t.TempDir(), "ymjkit.log"),
		MaxSizeMB: 1,
		MaxFiles:  2,
	}

	logger, cleanup, err := Setup(cfg)
	require.NoError(t, err)
	require.NotNil(t, logger)
	require.NotNil(t, cleanup)

	logger.Debug("probe")
	cleanup()

	data, err := os.ReadFile(cfg.FilePath)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"probe"`)
}
