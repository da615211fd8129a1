// ABOUTME: Tests for fitspire configuration management.
// ABOUTME: Covers load, save, defaults, env overrides, .env files and path expansion.
package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	t.Setenv(EnvDataDir, "")
	t.Setenv(EnvDB, "")
	t.Setenv(EnvLogLevel, "")
}

func TestGetDataDirDefault(t *testing.T) {
	clearEnv(t)
	t.Setenv("XDG_DATA_HOME", "/tmp/xdg-data")

	cfg := &Config{}
	assert.Equal(t, "/tmp/xdg-data/fitspire", cfg.GetDataDir())
}

func TestGetDataDirExplicit(t *testing.T) {
	clearEnv(t)
	cfg := &Config{DataDir: "/tmp/fitspire-test"}
	assert.Equal(t, "/tmp/fitspire-test", cfg.GetDataDir())
}

func TestGetDataDirEnvWins(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvDataDir, "/srv/fitspire")
	cfg := &Config{DataDir: "/tmp/ignored"}
	assert.Equal(t, "/srv/fitspire", cfg.GetDataDir())
}

func TestGetDataDirExpandsTilde(t *testing.T) {
	clearEnv(t)
	home, _ := os.UserHomeDir()
	cfg := &Config{DataDir: "~/lifting"}
	assert.Equal(t, filepath.Join(home, "lifting"), cfg.GetDataDir())
}

func TestDBPathPrecedence(t *testing.T) {
	clearEnv(t)
	cfg := &Config{DataDir: "/data"}
	assert.Equal(t, "/data/fitspire.db", cfg.DBPath(""))

	cfg.DB = "/cfg/gym.db"
	assert.Equal(t, "/cfg/gym.db", cfg.DBPath(""))

	t.Setenv(EnvDB, "/env/gym.db")
	assert.Equal(t, "/env/gym.db", cfg.DBPath(""))

	assert.Equal(t, "/flag/gym.db", cfg.DBPath("/flag/gym.db"))
}

func TestGetLogLevel(t *testing.T) {
	clearEnv(t)
	assert.Equal(t, "warn", (&Config{}).GetLogLevel())
	assert.Equal(t, "debug", (&Config{LogLevel: "DEBUG"}).GetLogLevel())

	t.Setenv(EnvLogLevel, "error")
	assert.Equal(t, "error", (&Config{LogLevel: "debug"}).GetLogLevel())
}

func TestExpandPath(t *testing.T) {
	home, _ := os.UserHomeDir()

	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"/tmp/foo", "/tmp/foo"},
		{"~", home},
		{"~/data/fitspire", filepath.Join(home, "data/fitspire")},
		{"data/fitspire", "data/fitspire"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ExpandPath(tt.in), "ExpandPath(%q)", tt.in)
	}
}

func TestLoadMissingConfig(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, &Config{}, cfg)
}

func TestSaveAndLoad(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg := &Config{DataDir: "~/gym", LogLevel: "info"}
	require.NoError(t, cfg.Save())

	info, err := os.Stat(GetConfigPath())
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())

	loaded, err := Load()
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestLoadInvalidJSON(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	path := GetConfigPath()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0750))
	require.NoError(t, os.WriteFile(path, []byte("{nope"), 0600))

	_, err := Load()
	assert.Error(t, err)
}

func TestLoadEnv(t *testing.T) {
	clearEnv(t)
	require.NoError(t, os.Unsetenv(EnvDataDir))

	envFile := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(envFile, []byte(EnvDataDir+"=/from/dotenv\n"), 0600))

	require.NoError(t, LoadEnv(envFile, filepath.Join(t.TempDir(), "missing.env")))
	assert.Equal(t, "/from/dotenv", os.Getenv(EnvDataDir))
}

func TestOpenStorage(t *testing.T) {
	clearEnv(t)
	dbPath := filepath.Join(t.TempDir(), "gym.db")

	repo, err := (&Config{}).OpenStorage(dbPath)
	require.NoError(t, err)
	defer repo.Close()

	_, err = os.Stat(dbPath)
	assert.NoError(t, err)
}
