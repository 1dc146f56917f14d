package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rpmspec-tools/speclex"
)

func TestInitConfigurationFile(t *testing.T) {
	t.Parallel()

	dir, err := os.MkdirTemp("", "init-test")
	require.NoError(t, err)
	defer os.RemoveAll(dir)

	path := filepath.Join(dir, ".speclex.yaml")
	require.NoError(t, initConfigurationFile(path))

	// the generated file parses back into the defaults
	config, err := speclex.ParseConfigFile(path)
	require.NoError(t, err)
	assert.Equal(t, speclex.DefaultConfig(), config)
}

func TestInitConfigurationFileBadPath(t *testing.T) {
	t.Parallel()

	err := initConfigurationFile(filepath.Join("no", "such", "dir", "cfg.yaml"))
	assert.Error(t, err)
}
