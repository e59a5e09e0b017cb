package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// execute runs the root command with args and captures stdout/stderr.
func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	root := NewRootCmd()
	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), errOut.String(), err
}

const validFile = `---
doc_type: note
title: Sprint recap
---

Shipped the importer.
`

func TestValidateCmd_ValidFile(t *testing.T) {
	// Given: a structurally valid document
	path := filepath.Join(t.TempDir(), "recap.ymj")
	require.NoError(t, os.WriteFile(path, []byte(validFile), 0o644))

	// When: I validate it
	out, _, err := execute(t, "validate", path)

	// Then: success exit and a per-file Valid line
	require.NoError(t, err)
	assert.Contains(t, out, path+": Valid")
}

func TestValidateCmd_InvalidFileFailsRun(t *testing.T) {
	// Given: one valid and one invalid document
	dir := t.TempDir()
	good := filepath.Join(dir, "good.ymj")
	bad := filepath.Join(dir, "bad.ymj")
	require.NoError(t, os.WriteFile(good, []byte(validFile), 0o644))
	require.NoError(t, os.WriteFile(bad, []byte("---\nauthor: x\n---\nbody\n"), 0o644))

	out, _, err := execute(t, "validate", good, bad)

	// Then: the run fails and the invalid file lists its errors indented
	require.Error(t, err)
	assert.Contains(t, out, good+": Valid")
	assert.Contains(t, out, bad+":")
	assert.Contains(t, out, "  - Missing required field: doc_type")
	assert.Contains(t, out, "  - Missing required field: title")
}

func TestValidateCmd_StrictRequiresIndex(t *testing.T) {
	path := filepath.Join(t.TempDir(), "recap.ymj")
	require.NoError(t, os.WriteFile(path, []byte(validFile), 0o644))

	out, _, err := execute(t, "validate", "--strict", path)

	require.Error(t, err)
	assert.Contains(t, out, "  - Missing JSON index block (strict mode)")
}

func TestValidateCmd_WrongExtensionSkipped(t *testing.T) {
	// Given: a non-.ymj path
	path := filepath.Join(t.TempDir(), "notes.md")
	require.NoError(t, os.WriteFile(path, []byte("# notes\n"), 0o644))

	// When: I validate it
	out, _, err := execute(t, "validate", path)

	// Then: skipped with a warning, run still succeeds
	require.NoError(t, err)
	assert.Contains(t, out, path+": Not a .ymj file, skipping")
}
