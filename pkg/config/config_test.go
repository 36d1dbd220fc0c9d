package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, 5, cfg.CacheSize)
	assert.Equal(t, "main", cfg.DefaultBranch)
	assert.Equal(t, "none", cfg.LogLevel)
	assert.Empty(t, cfg.StagingPath)
}

func TestFromViper(t *testing.T) {
	v := viper.New()
	v.Set("cache_size", 2)
	v.Set("staging_path", "/var/tmp/states")
	v.Set("log_level", "debug")

	cfg, err := FromViper(v)
	require.NoError(t, err)
	assert.Equal(t, 2, cfg.CacheSize)
	assert.Equal(t, "/var/tmp/states", cfg.StagingPath)
	assert.Equal(t, "debug", cfg.LogLevel)
	// untouched keys keep their defaults
	assert.Equal(t, "main", cfg.DefaultBranch)

	cfg, err = FromViper(nil)
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "checkpoint.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
cache_size: 3
default_branch: trunk
staging_path: /data/staging
`), 0600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.CacheSize)
	assert.Equal(t, "trunk", cfg.DefaultBranch)
	assert.Equal(t, "/data/staging", cfg.StagingPath)
	assert.Equal(t, "none", cfg.LogLevel)

	_, err = Load(filepath.Join(dir, "missing.yaml"))
	require.Error(t, err)
}
