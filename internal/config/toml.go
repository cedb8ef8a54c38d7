// Package config provides configuration helpers and TOML parsing.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// Storage backends.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
)

// Environment variables that override the config file.
const (
	EnvDataDir  = "WORDWISE_DATA_DIR"
	EnvBackend  = "WORDWISE_BACKEND"
	EnvLogLevel = "WORDWISE_LOG_LEVEL"
	EnvSeed     = "WORDWISE_SEED"
)

// FileConfig represents the TOML configuration file.
type FileConfig struct {
	Storage  StorageConfig  `toml:"storage"`
	Practice PracticeConfig `toml:"practice"`
	Log      LogConfig      `toml:"log"`
}

// StorageConfig maps storage settings.
type StorageConfig struct {
	Backend *string `toml:"backend"`
	DataDir *string `toml:"data-dir"`
}

// PracticeConfig maps practice-related settings.
type PracticeConfig struct {
	Interactive *bool  `toml:"interactive"`
	Seed        *int64 `toml:"seed"`
}

// LogConfig maps diagnostics settings.
type LogConfig struct {
	Level *string `toml:"level"`
}

// LoadConfig reads a TOML config from the given path. Missing file is not an error.
func LoadConfig(path string) (FileConfig, error) {
	if path == "" {
		return FileConfig{}, fmt.Errorf("config path is empty")
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return FileConfig{}, nil
		}
		return FileConfig{}, fmt.Errorf("failed to stat config: %w", err)
	}
	var cfg FileConfig
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return FileConfig{}, fmt.Errorf("failed to decode config: %w", err)
	}
	return cfg, nil
}

// LoadDotEnv loads variables from the given .env files into the process
// environment without overriding variables that are already set. Missing files
// are skipped.
func LoadDotEnv(paths ...string) error {
	for _, path := range paths {
		if _, err := os.Stat(path); err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return fmt.Errorf("failed to stat %s: %w", path, err)
		}
		if err := godotenv.Load(path); err != nil {
			return fmt.Errorf("failed to load %s: %w", path, err)
		}
	}
	return nil
}

// ApplyEnv overlays WORDWISE_* environment variables onto cfg.
func ApplyEnv(cfg FileConfig, getenv func(string) string) (FileConfig, error) {
	if v := strings.TrimSpace(getenv(EnvDataDir)); v != "" {
		cfg.Storage.DataDir = &v
	}
	if v := strings.TrimSpace(getenv(EnvBackend)); v != "" {
		cfg.Storage.Backend = &v
	}
	if v := strings.TrimSpace(getenv(EnvLogLevel)); v != "" {
		cfg.Log.Level = &v
	}
	if v := strings.TrimSpace(getenv(EnvSeed)); v != "" {
		seed, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return cfg, fmt.Errorf("invalid %s %q: %w", EnvSeed, v, err)
		}
		cfg.Practice.Seed = &seed
	}
	return cfg, nil
}

// ValidateBackend checks a storage backend name.
func ValidateBackend(backend string) error {
	switch backend {
	case BackendFile, BackendSQLite:
		return nil
	default:
		return fmt.Errorf("--backend must be %q or %q, got %q", BackendFile, BackendSQLite, backend)
	}
}
