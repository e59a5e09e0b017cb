package config

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfig_Defaults(t *testing.T) {
	cfg := NewConfig()

	assert.Equal(t, "ollama", cfg.Embeddings.Provider)
	assert.Equal(t, 10, cfg.Search.TopK)
	assert.Equal(t, runtime.NumCPU(), cfg.Search.Workers)
	assert.Equal(t, 1, cfg.Embed.Workers)
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	// Given: an XDG config home with no config file
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, "ollama", cfg.Embeddings.Provider)
}

func TestLoad_FileOverlaysDefaults(t *testing.T) {
	// Given: a config file setting provider and top_k
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	cfgDir := filepath.Join(dir, "ymjkit")
	require.NoError(t, os.MkdirAll(cfgDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(cfgDir, "config.yaml"), []byte(
		"embeddings:\n  provider: static\nsearch:\n  top_k: 3\n"), 0o644))

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, "static", cfg.Embeddings.Provider)
	assert.Equal(t, 3, cfg.Search.TopK)
	// Unset fields keep defaults
	assert.Equal(t, 1, cfg.Embed.Workers)
}

func TestLoad_EnvBeatsFile(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	cfgDir := filepath.Join(dir, "ymjkit")
	require.NoError(t, os.MkdirAll(cfgDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(cfgDir, "config.yaml"), []byte(
		"embeddings:\n  provider: static\n"), 0o644))
	t.Setenv("YMJKIT_PROVIDER", "ollama")
	t.Setenv("YMJKIT_OLLAMA_HOST", "http://gpu-box:11434")

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, "ollama", cfg.Embeddings.Provider)
	assert.Equal(t, "http://gpu-box:11434", cfg.Embeddings.OllamaHost)
}

func TestLoad_InvalidTopKRejected(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	cfgDir := filepath.Join(dir, "ymjkit")
	require.NoError(t, os.MkdirAll(cfgDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(cfgDir, "config.yaml"), []byte(
		"search:\n  top_k: -2\n"), 0o644))

	_, err := Load()

	assert.Error(t, err)
}

func TestApplyEnv_IgnoresInvalidWorkerCounts(t *testing.T) {
	t.Setenv("YMJKIT_SEARCH_WORKERS", "not-a-number")
	t.Setenv("YMJKIT_EMBED_WORKERS", "-3")

	cfg := NewConfig()
	cfg.applyEnv()

	assert.Equal(t, runtime.NumCPU(), cfg.Search.Workers)
	assert.Equal(t, 1, cfg.Embed.Workers)
}
