package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const (
	globalConfigDir  = ".racelens"
	projectConfigDir = ".racelens"
	configFileName   = "config.yaml"
)

// Loader handles loading and merging configuration files.
type Loader struct {
	globalPath  string
	projectPath string
}

// NewLoader creates a loader for the global config under the home
// directory and the per-project config under projectDir (the working
// directory when empty).
func NewLoader(projectDir string) (*Loader, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("failed to get home directory: %w", err)
	}

	if projectDir == "" {
		projectDir, err = os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get working directory: %w", err)
		}
	}

	return &Loader{
		globalPath:  filepath.Join(homeDir, globalConfigDir, configFileName),
		projectPath: filepath.Join(projectDir, projectConfigDir, configFileName),
	}, nil
}

// Load merges defaults, the global config and the project config, in that
// order of increasing precedence. Missing files are not an error.
func (l *Loader) Load() (*Config, error) {
	cfg := DefaultConfig()

	globalCfg, err := l.loadFile(l.globalPath)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to load global config: %w", err)
	}
	if globalCfg != nil {
		cfg = mergeConfigs(cfg, globalCfg)
	}

	projectCfg, err := l.loadFile(l.projectPath)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to load project config: %w", err)
	}
	if projectCfg != nil {
		cfg = mergeConfigs(cfg, projectCfg)
	}

	return cfg, nil
}

// LoadFromFile loads configuration from a specific file, merged over the
// defaults.
func (l *Loader) LoadFromFile(path string) (*Config, error) {
	cfg, err := l.loadFile(path)
	if err != nil {
		return nil, err
	}
	return mergeConfigs(DefaultConfig(), cfg), nil
}

func (l *Loader) loadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	return &cfg, nil
}

// mergeConfigs merges two configurations, with override taking precedence.
// Denylists replace wholesale rather than append: a project that sets one
// owns it.
func mergeConfigs(base, override *Config) *Config {
	result := &Config{
		Version: coalesce(override.Version, base.Version),
		Settings: Settings{
			LogLevel: coalesce(override.Settings.LogLevel, base.Settings.LogLevel),
			LogFile:  coalesce(override.Settings.LogFile, base.Settings.LogFile),
			Database: coalesce(override.Settings.Database, base.Settings.Database),
		},
		Sanitize: Sanitize{
			FrameFunctions:    coalesceList(override.Sanitize.FrameFunctions, base.Sanitize.FrameFunctions),
			InternalLines:     coalesceList(override.Sanitize.InternalLines, base.Sanitize.InternalLines),
			InternalFunctions: coalesceList(override.Sanitize.InternalFunctions, base.Sanitize.InternalFunctions),
		},
	}

	return result
}

func coalesce(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func coalesceList(override, base []string) []string {
	if len(override) > 0 {
		return override
	}
	return base
}
