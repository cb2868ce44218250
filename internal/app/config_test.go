package app

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfig(t *testing.T) {
	t.Run("minimal", func(t *testing.T) {
		config, err := NewConfig(Config{ArchPath: "arch.hcl"})
		require.NoError(t, err)
		assert.Equal(t, "arch.hcl", config.ArchPath)
	})

	t.Run("missing path", func(t *testing.T) {
		_, err := NewConfig(Config{})
		require.Error(t, err)
	})

	t.Run("half a search", func(t *testing.T) {
		_, err := NewConfig(Config{ArchPath: "arch.hcl", StartNode: "/a"})
		require.Error(t, err)
	})

	t.Run("negative depth", func(t *testing.T) {
		_, err := NewConfig(Config{ArchPath: "arch.hcl", MaxDepth: -1})
		require.Error(t, err)
	})
}

func TestLoaderForPath(t *testing.T) {
	assert.Equal(t, "yaml", LoaderForPath("system.yaml"))
	assert.Equal(t, "yaml", LoaderForPath("system.YML"))
	assert.Equal(t, "hcl", LoaderForPath("system.hcl"))
	assert.Equal(t, "hcl", LoaderForPath("configs/"))
}
