package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_PositionalPath(t *testing.T) {
	out := &bytes.Buffer{}
	config, shouldExit, err := Parse([]string{"arch.hcl"}, out)

	require.NoError(t, err)
	require.False(t, shouldExit)
	assert.Equal(t, "arch.hcl", config.ArchPath)
	assert.Equal(t, "text", config.LogFormat)
	assert.Equal(t, "info", config.LogLevel)
}

func TestParse_Flags(t *testing.T) {
	out := &bytes.Buffer{}
	config, shouldExit, err := Parse([]string{
		"-arch", "system.yaml",
		"-from", "/a",
		"-to", "/b",
		"-max-depth", "3",
		"-ignore-topics", "/rosout, /clock",
		"-log-format", "json",
		"-log-level", "debug",
	}, out)

	require.NoError(t, err)
	require.False(t, shouldExit)
	assert.Equal(t, "system.yaml", config.ArchPath)
	assert.Equal(t, "/a", config.StartNode)
	assert.Equal(t, "/b", config.EndNode)
	assert.Equal(t, 3, config.MaxDepth)
	assert.Equal(t, []string{"/rosout", "/clock"}, config.IgnoreTopics)
	assert.Equal(t, "json", config.LogFormat)
	assert.Equal(t, "debug", config.LogLevel)
}

func TestParse_NoPathPrintsUsage(t *testing.T) {
	out := &bytes.Buffer{}
	_, shouldExit, err := Parse(nil, out)

	require.NoError(t, err)
	assert.True(t, shouldExit)
	assert.Contains(t, out.String(), "Usage:")
}

func TestParse_Invalid(t *testing.T) {
	testCases := []struct {
		name string
		args []string
	}{
		{name: "bad log format", args: []string{"-log-format", "xml", "arch.hcl"}},
		{name: "bad log level", args: []string{"-log-level", "loud", "arch.hcl"}},
		{name: "search missing end node", args: []string{"-from", "/a", "arch.hcl"}},
		{name: "negative max depth", args: []string{"-max-depth", "-1", "arch.hcl"}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			out := &bytes.Buffer{}
			_, _, err := Parse(tc.args, out)

			require.Error(t, err)
			exitErr, ok := err.(*ExitError)
			require.True(t, ok)
			assert.Equal(t, 2, exitErr.Code)
		})
	}
}
