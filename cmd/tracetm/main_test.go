package main

import (
	"testing"

	"github.com/aretw0/tracetm/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_FlagsWin(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("TRACETM_STORE", "redis")

	require.NoError(t, traceCmd.ParseFlags([]string{"--store", "file", "--format", "json", "--debug"}))
	cfg, err := loadConfig(traceCmd)
	require.NoError(t, err)

	assert.Equal(t, "file", cfg.Store.Kind)
	assert.Equal(t, "json", cfg.Format)
	assert.True(t, cfg.Debug)
	assert.Equal(t, config.Default().Store.Path, cfg.Store.Path)
}

func TestCommandsRegistered(t *testing.T) {
	names := map[string]bool{}
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}
	for _, want := range []string{"run", "trace", "validate", "graph", "serve", "mcp", "list", "version"} {
		assert.True(t, names[want], want)
	}
}
