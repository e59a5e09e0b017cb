package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Aman-CERP/ymjkit/pkg/version"
)

func TestVersionCmd_FullOutput(t *testing.T) {
	out, _, err := execute(t, "version")

	require.NoError(t, err)
	assert.Contains(t, out, "ymjkit")
	assert.Contains(t, out, version.Version)
}

func TestVersionCmd_ShortOutput(t *testing.T) {
	out, _, err := execute(t, "version", "--short")

	require.NoError(t, err)
	assert.Equal(t, version.Version+"\n", out)
}
