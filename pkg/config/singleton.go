package config

import (
	"fmt"
	"sync"
)

var (
	globalConfig *Config
	configMu     sync.RWMutex
	initOnce     sync.Once
	initErr      error
	configPath   string
)

// Initialize loads the configuration from the given path and installs
// it as the process-wide singleton. It is safe to call from multiple
// goroutines; only the first call performs the load.
func Initialize(path string) error {
	initOnce.Do(func() {
		cfg, err := LoadConfigWithEnvOverrides(path)
		if err != nil {
			initErr = err
			return
		}
		configMu.Lock()
		globalConfig = cfg
		configPath = path
		configMu.Unlock()
	})
	return initErr
}

// GetConfig returns the process-wide configuration, or an error if
// Initialize has not succeeded yet.
func GetConfig() (*Config, error) {
	configMu.RLock()
	defer configMu.RUnlock()
	if globalConfig == nil {
		return nil, fmt.Errorf("configuration not initialized: call config.Initialize first")
	}
	return globalConfig, nil
}

// MustGetConfig returns the process-wide configuration and panics if it
// has not been initialized. Intended for call sites that run strictly
// after startup.
func MustGetConfig() *Config {
	cfg, err := GetConfig()
	if err != nil {
		panic(err)
	}
	return cfg
}

// SetConfig installs a configuration directly, bypassing file loading.
// Intended for tests and embedded use.
func SetConfig(cfg *Config) {
	configMu.Lock()
	defer configMu.Unlock()
	globalConfig = cfg
}

// ReloadConfig re-reads the configuration from the path given to
// Initialize and swaps it in atomically. Readers holding the previous
// pointer are unaffected.
func ReloadConfig() (*Config, error) {
	configMu.RLock()
	path := configPath
	configMu.RUnlock()
	if path == "" {
		return nil, fmt.Errorf("cannot reload: configuration was not loaded from a file")
	}

	cfg, err := LoadConfigWithEnvOverrides(path)
	if err != nil {
		return nil, fmt.Errorf("configuration reload failed: %w", err)
	}

	configMu.Lock()
	globalConfig = cfg
	configMu.Unlock()
	return cfg, nil
}
