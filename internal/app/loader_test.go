package app_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"parley/internal/app"
	"parley/internal/domain"
)

func TestLoadConfig_DefaultsWithoutFile(t *testing.T) {
	cfg, err := app.LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, app.StorageFile, cfg.Storage)
	assert.Equal(t, app.DefaultListen, cfg.Listen)
	assert.Equal(t, domain.DefaultMaxSessions, cfg.MaxSessions)
	assert.Equal(t, domain.DefaultMaxMessages, cfg.MaxMessages)
}

func TestLoadConfig_FileOverrides(t *testing.T) {
	home := t.TempDir()
	content := "storage: sqlite\nmax_sessions: 5\nlisten: 127.0.0.1:9999\n"
	require.NoError(t, os.WriteFile(filepath.Join(home, "parley.yaml"), []byte(content), 0o600))

	cfg, err := app.LoadConfig(home)
	require.NoError(t, err)

	assert.Equal(t, app.StorageSQLite, cfg.Storage)
	assert.Equal(t, 5, cfg.MaxSessions)
	assert.Equal(t, "127.0.0.1:9999", cfg.Listen)
	assert.Equal(t, domain.DefaultMaxMessages, cfg.MaxMessages, "unset keys keep defaults")
	assert.Equal(t, home, cfg.Home)
}

func TestLoadConfig_MalformedFile(t *testing.T) {
	home := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(home, "parley.yaml"), []byte("storage: [broken"), 0o600))

	_, err := app.LoadConfig(home)
	require.Error(t, err)
}
