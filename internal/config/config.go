// ABOUTME: fitspire configuration: JSON config file plus environment overrides.
// ABOUTME: Resolves the database path and opens the storage layer.

package config

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/harperreed/fitspire/internal/storage"
	"github.com/joho/godotenv"
)

// Environment variables that override the config file.
const (
	EnvDataDir  = "FITSPIRE_DATA_DIR"
	EnvDB       = "FITSPIRE_DB"
	EnvLogLevel = "FITSPIRE_LOG_LEVEL"
)

// Config stores fitspire configuration.
type Config struct {
	// DataDir is the directory holding fitspire.db.
	// Supports ~ expansion for home directory. Defaults to ~/.local/share/fitspire.
	DataDir string `json:"data_dir,omitempty"`

	// DB is an explicit database file path; it wins over DataDir.
	DB string `json:"db,omitempty"`

	// LogLevel is one of debug, info, warn, error. Defaults to warn.
	LogLevel string `json:"log_level,omitempty"`
}

// LoadEnv reads KEY=value pairs from the given .env files (".env" when none
// are named) into the process environment. Missing files are ignored and
// variables already set are left alone.
func LoadEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return err
		}
	}
	return nil
}

// GetDataDir returns the data directory with ~ expanded. The environment
// beats the config file, which beats the XDG default.
func (c *Config) GetDataDir() string {
	if dir := os.Getenv(EnvDataDir); dir != "" {
		return ExpandPath(dir)
	}
	if c.DataDir == "" {
		return storage.DataDir()
	}
	return ExpandPath(c.DataDir)
}

// DBPath resolves the database file. A non-empty override (the --db flag)
// wins, then FITSPIRE_DB, then the config file, then DataDir/fitspire.db.
func (c *Config) DBPath(override string) string {
	if override != "" {
		return ExpandPath(override)
	}
	if p := os.Getenv(EnvDB); p != "" {
		return ExpandPath(p)
	}
	if c.DB != "" {
		return ExpandPath(c.DB)
	}
	return filepath.Join(c.GetDataDir(), "fitspire.db")
}

// GetLogLevel returns the configured log level, defaulting to "warn".
func (c *Config) GetLogLevel() string {
	if lvl := os.Getenv(EnvLogLevel); lvl != "" {
		return strings.ToLower(lvl)
	}
	if c.LogLevel == "" {
		return "warn"
	}
	return strings.ToLower(c.LogLevel)
}

// ExpandPath expands a leading ~ to the user's home directory.
func ExpandPath(path string) string {
	if path == "" {
		return ""
	}
	if path == "~" {
		home, _ := os.UserHomeDir()
		return home
	}
	if strings.HasPrefix(path, "~/") {
		home, _ := os.UserHomeDir()
		return filepath.Join(home, path[2:])
	}
	return path
}

// OpenStorage opens the SQLite repository at the resolved path.
func (c *Config) OpenStorage(override string, opts ...storage.Option) (storage.Repository, error) {
	return storage.Open(c.DBPath(override), opts...)
}

// GetConfigPath returns the config file path.
func GetConfigPath() string {
	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		homeDir, _ := os.UserHomeDir()
		configDir = filepath.Join(homeDir, ".config")
	}
	return filepath.Join(configDir, "fitspire", "config.json")
}

// Load reads config from disk.
func Load() (*Config, error) {
	path := GetConfigPath()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Config{}, nil
		}
		return nil, err
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Save writes config to disk.
func (c *Config) Save() error {
	path := GetConfigPath()
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0600)
}
