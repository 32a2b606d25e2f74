// ABOUTME: Configuration management for quill
// ABOUTME: JSON config in the XDG config dir: data paths, fetch timeout, display options

package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Config stores quill configuration.
type Config struct {
	// DataDir is the root directory for the database. Supports ~ expansion.
	// Defaults to ~/.local/share/quill.
	DataDir string `json:"data_dir,omitempty"`

	// FetchTimeoutSeconds bounds each feed fetch. Defaults to 30.
	FetchTimeoutSeconds int `json:"fetch_timeout_seconds,omitempty"`

	// SearchLimit caps search results. Defaults to 50.
	SearchLimit int `json:"search_limit,omitempty"`

	// GlamourStyle selects the markdown rendering theme. Defaults to "dark".
	GlamourStyle string `json:"glamour_style,omitempty"`
}

// GetDataDir returns the configured data directory with ~ expanded,
// defaulting to the standard XDG data directory.
func (c *Config) GetDataDir() string {
	if c.DataDir == "" {
		return defaultDataDir()
	}
	return ExpandPath(c.DataDir)
}

// DBPath returns the SQLite database path inside the data directory.
func (c *Config) DBPath() string {
	return filepath.Join(c.GetDataDir(), "quill.db")
}

// FetchTimeout returns the configured fetch timeout as a duration.
func (c *Config) FetchTimeout() time.Duration {
	if c.FetchTimeoutSeconds <= 0 {
		return 30 * time.Second
	}
	return time.Duration(c.FetchTimeoutSeconds) * time.Second
}

// GetSearchLimit returns the configured search limit, defaulting to 50.
func (c *Config) GetSearchLimit() int {
	if c.SearchLimit <= 0 {
		return 50
	}
	return c.SearchLimit
}

// GetGlamourStyle returns the markdown theme, defaulting to "dark".
func (c *Config) GetGlamourStyle() string {
	if c.GlamourStyle == "" {
		return "dark"
	}
	return c.GlamourStyle
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

// GetConfigPath returns the config file path.
func GetConfigPath() string {
	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		homeDir, _ := os.UserHomeDir()
		configDir = filepath.Join(homeDir, ".config")
	}
	return filepath.Join(configDir, "quill", "config.json")
}

// Load reads config from disk. A missing file yields defaults.
func Load() (*Config, error) {
	data, err := os.ReadFile(GetConfigPath())
	if err != nil {
		if os.IsNotExist(err) {
			return &Config{}, nil
		}
		return nil, err
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return &cfg, nil
}

// Save writes config to disk.
func (c *Config) Save() error {
	path := GetConfigPath()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func defaultDataDir() string {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, _ := os.UserHomeDir()
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, "quill")
}
