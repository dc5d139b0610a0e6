// Package config manages unify configuration and the .unify directory
// structure. It handles loading, saving, and initializing the
// workspace configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

const (
	UnifyDir     = ".unify"
	ConfigFile   = "config"
	DatabaseFile = "unify.db"
)

// Config represents the unify workspace configuration
type Config struct {
	ContextSize   int      `toml:"context_size"`   // Context lines shown around each conflict block
	Concurrency   int      `toml:"concurrency"`    // Workers for similarity scoring and batch runs (0 = NumCPU)
	DefaultPolicy string   `toml:"default_policy"` // interactive, left, right or union
	ExcludeDirs   []string `toml:"exclude_dirs"`   // Directory names skipped during discovery
	path          string   // path to .unify directory
}

// defaults returns a config with the stock settings.
func defaults() *Config {
	return &Config{
		ContextSize:   3,
		DefaultPolicy: "interactive",
		ExcludeDirs:   []string{".git", ".unify"},
	}
}

// FindUnifyRoot finds the .unify directory by walking up from the current directory
func FindUnifyRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}

	for {
		unifyPath := filepath.Join(dir, UnifyDir)
		if info, err := os.Stat(unifyPath); err == nil && info.IsDir() {
			return unifyPath, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("not a unify workspace (or any parent up to root)")
		}
		dir = parent
	}
}

// Load loads the configuration from the .unify directory
func Load() (*Config, error) {
	unifyPath, err := FindUnifyRoot()
	if err != nil {
		return nil, err
	}
	return LoadFrom(unifyPath)
}

// LoadFrom loads the configuration from an explicit .unify directory
func LoadFrom(unifyPath string) (*Config, error) {
	configPath := filepath.Join(unifyPath, ConfigFile)
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg := defaults()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.path = unifyPath
	return cfg, nil
}

// Save saves the configuration to disk
func (c *Config) Save() error {
	configPath := filepath.Join(c.path, ConfigFile)
	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	return os.WriteFile(configPath, data, 0644)
}

// UnifyPath returns the path to the .unify directory
func (c *Config) UnifyPath() string {
	return c.path
}

// WorkspaceRoot returns the directory containing the .unify directory
func (c *Config) WorkspaceRoot() string {
	return filepath.Dir(c.path)
}

// DatabasePath returns the path to the sqlite database
func (c *Config) DatabasePath() string {
	return filepath.Join(c.path, DatabaseFile)
}

// Initialize creates a new .unify directory with initial configuration
func Initialize() (*Config, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, err
	}

	unifyPath := filepath.Join(cwd, UnifyDir)

	// Check if already initialized
	if _, err := os.Stat(unifyPath); err == nil {
		return nil, fmt.Errorf("unify workspace already exists")
	}

	if err := os.MkdirAll(unifyPath, 0755); err != nil {
		return nil, fmt.Errorf("failed to create .unify directory: %w", err)
	}

	cfg := defaults()
	cfg.path = unifyPath

	if err := cfg.Save(); err != nil {
		// Cleanup on failure
		os.RemoveAll(unifyPath)
		return nil, err
	}

	return cfg, nil
}
