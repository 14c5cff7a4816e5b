package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/charlesng35/kurukshetra/internal/app"
)

func TestApplyFlagOverrides(t *testing.T) {
	cfg := &app.Config{Server: app.ServerConfig{Port: 5000}}

	applyFlagOverrides(cfg, 0, false)
	require.Equal(t, 5000, cfg.Server.Port)
	require.False(t, cfg.Database.SeedDemo)

	applyFlagOverrides(cfg, 8080, true)
	require.Equal(t, 8080, cfg.Server.Port)
	require.True(t, cfg.Database.SeedDemo)
}

func TestLoadApplicationConfigPaths(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(file, []byte("server:\n  port: 6001\n"), 0o600))

	cfg, err := loadApplicationConfig(dir)
	require.NoError(t, err)
	require.Equal(t, 6001, cfg.Server.Port)

	cfg, err = loadApplicationConfig(file)
	require.NoError(t, err)
	require.Equal(t, 6001, cfg.Server.Port)

	_, err = loadApplicationConfig(filepath.Join(dir, "missing"))
	require.ErrorContains(t, err, "does not exist")
}
