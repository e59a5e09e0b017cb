package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigCmd_PathUsesXDG(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)

	out, _, err := execute(t, "config", "path")

	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "ymjkit", "config.yaml")+"\n", out)
}

func TestConfigCmd_InitCreatesTemplate(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)

	out, _, err := execute(t, "config", "init")

	require.NoError(t, err)
	assert.Contains(t, out, "Created user configuration")

	data, err := os.ReadFile(filepath.Join(dir, "ymjkit", "config.yaml"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "provider: ollama")
}

func TestConfigCmd_InitRefusesOverwriteWithoutForce(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)

	_, _, err := execute(t, "config", "init")
	require.NoError(t, err)

	out, _, err := execute(t, "config", "init")

	require.NoError(t, err)
	assert.Contains(t, out, "already exists")
}

func TestConfigCmd_ShowMergesEnv(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("YMJKIT_PROVIDER", "static")

	out, _, err := execute(t, "config", "show")

	require.NoError(t, err)
	assert.Contains(t, out, "provider: static")
}
