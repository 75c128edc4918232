package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"newsstand/internal/config"
	"newsstand/store"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := config.Load("")
	require.NoError(t, err)

	assert.Equal(t, store.DefaultPath, cfg.Database.Path)
	assert.False(t, cfg.Database.ForeignKeys)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.False(t, cfg.Log.Queries)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "newsstand.yaml")
	content := `
database:
  path: /tmp/archive.db
  foreign_keys: true
log:
  level: debug
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, "/tmp/archive.db", cfg.Database.Path)
	assert.True(t, cfg.Database.ForeignKeys)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.False(t, cfg.Log.Queries, "unset keys keep their defaults")
}

func TestLoadExplicitMissingFile(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "newsstand.yaml")
	content := `
database:
  path: /tmp/from-file.db
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	t.Setenv("NEWSSTAND_DATABASE__PATH", "/tmp/from-env.db")
	t.Setenv("NEWSSTAND_DATABASE__FOREIGN_KEYS", "true")
	t.Setenv("NEWSSTAND_LOG__LEVEL", "warn")

	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, "/tmp/from-env.db", cfg.Database.Path)
	assert.True(t, cfg.Database.ForeignKeys)
	assert.Equal(t, "warn", cfg.Log.Level)
}
