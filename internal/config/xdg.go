// Package config provides XDG path helpers.
package config

import (
	"os"
	"path/filepath"
)

const appName = "wordwise"

// XDGConfigHome returns the XDG config home or a default fallback.
func XDGConfigHome() string {
	if v := os.Getenv("XDG_CONFIG_HOME"); v != "" {
		return v
	}
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return "."
	}
	return filepath.Join(home, ".config")
}

// XDGDataHome returns the XDG data home or a default fallback.
func XDGDataHome() string {
	if v := os.Getenv("XDG_DATA_HOME"); v != "" {
		return v
	}
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return "."
	}
	return filepath.Join(home, ".local", "share")
}

// DefaultDataDir returns the directory holding the word and stats resources.
func DefaultDataDir() string {
	return filepath.Join(XDGDataHome(), appName)
}

// DBPath returns the SQLite database path inside dataDir.
func DBPath(dataDir string) string {
	return filepath.Join(dataDir, appName+".db")
}

// DefaultConfigPath returns the default TOML config path.
func DefaultConfigPath() string {
	return filepath.Join(XDGConfigHome(), appName, "config.toml")
}
