package core

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/gofrs/flock"
)

const (
	configDirName  = ".ci"
	configFileName = "config.json"
	lockFileName   = "config.lock"

	// lockTimeout bounds how long Update waits for another ci process.
	lockTimeout = 5 * time.Second

	// DefaultSystem is the launch target used when nothing else is configured.
	DefaultSystem = "claude-code"
)

// ConfigManager handles reading and writing the user configuration.
type ConfigManager struct {
	configDir string
	mu        sync.RWMutex
}

// NewConfigManager creates a ConfigManager using the default config path (~/.ci/).
func NewConfigManager() (*ConfigManager, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("getting home directory: %w", err)
	}
	return &ConfigManager{
		configDir: filepath.Join(home, configDirName),
	}, nil
}

// NewConfigManagerWithDir creates a ConfigManager using a custom config directory.
// Useful for testing.
func NewConfigManagerWithDir(dir string) *ConfigManager {
	return &ConfigManager{configDir: dir}
}

// ConfigDir returns the configuration directory path.
func (cm *ConfigManager) ConfigDir() string {
	return cm.configDir
}

// ConfigPath returns the full path to the config file.
func (cm *ConfigManager) ConfigPath() string {
	return filepath.Join(cm.configDir, configFileName)
}

// Load reads the config from disk. Returns default config if file doesn't exist.
func (cm *ConfigManager) Load() (*Config, error) {
	cm.mu.RLock()
	defer cm.mu.RUnlock()

	data, err := os.ReadFile(cm.ConfigPath())
	if err != nil {
		if os.IsNotExist(err) {
			return defaultConfig(), nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return &cfg, nil
}

// Save writes the config to disk, creating the directory if needed.
func (cm *ConfigManager) Save(cfg *Config) error {
	cm.mu.Lock()
	defer cm.mu.Unlock()

	if err := os.MkdirAll(cm.configDir, 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	tmpPath := cm.ConfigPath() + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	if err := os.Rename(tmpPath, cm.ConfigPath()); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("saving config: %w", err)
	}

	return nil
}

// Update loads the config, applies fn and saves the result while holding an
// exclusive lock, so concurrent ci processes do not lose each other's
// changes. Nothing is written when fn returns an error.
func (cm *ConfigManager) Update(fn func(*Config) error) error {
	if err := os.MkdirAll(cm.configDir, 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	lock := flock.New(filepath.Join(cm.configDir, lockFileName))
	ctx, cancel := context.WithTimeout(context.Background(), lockTimeout)
	defer cancel()

	locked, err := lock.TryLockContext(ctx, 50*time.Millisecond)
	if err != nil {
		return fmt.Errorf("locking config: %w", err)
	}
	if !locked {
		return fmt.Errorf("config is locked by another process (%s)", lock.Path())
	}
	defer func() { _ = lock.Unlock() }()

	cfg, err := cm.Load()
	if err != nil {
		return err
	}
	if err := fn(cfg); err != nil {
		return err
	}
	return cm.Save(cfg)
}

// SelectSystem picks the launch target name.
//
// Precedence (highest to lowest):
//  1. Explicit flag value
//  2. CI_SYSTEM environment variable
//  3. settings.system from the user config
//  4. DefaultSystem
func SelectSystem(flag string, getenv func(string) string, s Settings) string {
	if flag != "" {
		return flag
	}
	if getenv != nil {
		if v := getenv(EnvSystem); v != "" {
			return v
		}
	}
	if s.System != "" {
		return s.System
	}
	return DefaultSystem
}

func defaultConfig() *Config {
	return &Config{}
}
