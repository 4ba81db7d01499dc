/*
Package config manages the TOML runtime configuration for WordLex: server
limits, dictionary and query engine knobs, and CLI defaults. Broken config
files degrade instead of failing; whatever sections still parse are used
and the rest fall back to builtin defaults.
*/
package config

import (
	"os"
	"path/filepath"

	"github.com/bastiangx/wordlex/internal/utils"
	"github.com/charmbracelet/log"
)

// Config is the full runtime configuration tree.
type Config struct {
	Server ServerConfig `toml:"server"`
	Dict   DictConfig   `toml:"dict"`
	CLI    CliConfig    `toml:"cli"`
}

// ServerConfig bounds what the IPC server accepts per request.
type ServerConfig struct {
	MaxLimit     int  `toml:"max_limit"`
	MinPrefix    int  `toml:"min_prefix"`
	MaxPrefix    int  `toml:"max_prefix"`
	EnableFilter bool `toml:"enable_filter"`
}

// DictConfig tunes dictionary loading and the query engines.
type DictConfig struct {
	MaxWords             int `toml:"max_words"`
	CacheSize            int `toml:"cache_size"`
	MinFreqThreshold     int `toml:"min_frequency_threshold"`
	MinFreqShortPrefix   int `toml:"min_frequency_short_prefix"`
	DefaultFuzzyDistance int `toml:"default_fuzzy_distance"`
	MaxFuzzyDistance     int `toml:"max_fuzzy_distance"`
}

// CliConfig seeds the interactive CLI flag defaults.
type CliConfig struct {
	DefaultLimit    int  `toml:"default_limit"`
	DefaultMinLen   int  `toml:"default_min_len"`
	DefaultMaxLen   int  `toml:"default_max_len"`
	DefaultDistance int  `toml:"default_distance"`
	DefaultNoFilter bool `toml:"default_no_filter"`
}

// DefaultConfig returns the builtin defaults, used whenever a config
// file is missing or unreadable.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			MaxLimit:     64,
			MinPrefix:    1,
			MaxPrefix:    60,
			EnableFilter: true,
		},
		Dict: DictConfig{
			MaxWords:             50000,
			CacheSize:            512,
			MinFreqThreshold:     20,
			MinFreqShortPrefix:   24,
			DefaultFuzzyDistance: 1,
			MaxFuzzyDistance:     3,
		},
		CLI: CliConfig{
			DefaultLimit:    24,
			DefaultMinLen:   1,
			DefaultMaxLen:   24,
			DefaultDistance: 1,
			DefaultNoFilter: false,
		},
	}
}

// GetConfigDir picks the first writable home for config.toml, trying the
// XDG-style dir, then the macOS application support dir, then the dir the
// binary itself sits in.
func GetConfigDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		log.Errorf("Failed to get home directory: %v", err)
		return utils.GetExecutableDir()
	}

	candidates := []string{
		filepath.Join(homeDir, ".config", "wordlex"),
		filepath.Join(homeDir, "Library", "Application Support", "wordlex"),
	}
	for _, dir := range candidates {
		if utils.CheckDirStatus(dir).Writable {
			return dir, nil
		}
	}
	return utils.GetExecutableDir()
}

// GetDefaultConfigPath is GetConfigDir joined with config.toml.
func GetDefaultConfigPath() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "config.toml"), nil
}

// LoadConfigWithPriority loads the first config that works: an explicit
// --config path when given, then the default location (created on first
// run), then builtin defaults. Returns the path actually used, empty for
// builtins.
func LoadConfigWithPriority(customConfigPath string) (*Config, string, error) {
	if customConfigPath != "" {
		if _, err := os.Stat(customConfigPath); err != nil {
			log.Warnf("Custom config file not found at %s: %v. Trying default path...", customConfigPath, err)
		} else if config, err := LoadConfig(customConfigPath); err != nil {
			log.Warnf("Failed to load custom config from %s: %v. Trying default path...", customConfigPath, err)
		} else {
			log.Debugf("Loaded config from custom path: %s", customConfigPath)
			return config, customConfigPath, nil
		}
	}

	defaultPath, err := GetDefaultConfigPath()
	if err != nil {
		log.Warnf("Failed to determine default config path: %v. Using built-in defaults...", err)
		return DefaultConfig(), "", nil
	}
	config, err := InitConfig(defaultPath)
	if err != nil {
		log.Warnf("Failed to load/create config at default path %s: %v. Using builtin defaults...", defaultPath, err)
		return DefaultConfig(), "", nil
	}
	log.Debugf("Loaded config from default path: %s", defaultPath)
	return config, defaultPath, nil
}

// InitConfig loads configPath, writing a fresh default file first when
// none exists yet. Never fails: any problem degrades to defaults.
func InitConfig(configPath string) (*Config, error) {
	if err := utils.EnsureDir(filepath.Dir(configPath)); err != nil {
		log.Warnf("Failed to create config directory for %s: %v. Using built-in defaults...", configPath, err)
		return DefaultConfig(), nil
	}

	if !utils.FileExists(configPath) {
		config := DefaultConfig()
		if err := SaveConfig(config, configPath); err != nil {
			log.Warnf("Failed to create default config file at %s: %v. Using built-in defaults...", configPath, err)
			return DefaultConfig(), nil
		}
		log.Debugf("Created default config file at: %s", configPath)
		return config, nil
	}

	config, err := LoadConfig(configPath)
	if err != nil {
		log.Warnf("Failed to load config from %s: %v. Using built-in defaults...", configPath, err)
		return DefaultConfig(), nil
	}
	return config, nil
}

// LoadConfig decodes a TOML config file over the defaults, recovering
// section by section when the full decode fails.
func LoadConfig(configPath string) (*Config, error) {
	config := DefaultConfig()
	if err := utils.LoadTOMLFile(configPath, config); err != nil {
		return recoverConfig(configPath)
	}
	return config, nil
}

// recoverConfig salvages whatever typed values survive in a config file
// that no longer decodes cleanly. Unusable keys keep their defaults.
func recoverConfig(configPath string) (*Config, error) {
	config := DefaultConfig()

	raw, err := utils.ParseTOMLWithRecovery(configPath)
	if err != nil {
		log.Warnf("Could not parse any valid configuration from %s: %v. Using all defaults.", configPath, err)
		return config, nil
	}

	if section, ok := utils.ExtractSection(raw, "server"); ok {
		config.Server.applyRecovered(section)
	}
	if section, ok := utils.ExtractSection(raw, "dict"); ok {
		config.Dict.applyRecovered(section)
	}
	if section, ok := utils.ExtractSection(raw, "cli"); ok {
		config.CLI.applyRecovered(section)
	}
	return config, nil
}

func (sc *ServerConfig) applyRecovered(data map[string]any) {
	if v, ok := utils.ExtractInt(data, "max_limit"); ok {
		sc.MaxLimit = v
	}
	if v, ok := utils.ExtractInt(data, "min_prefix"); ok {
		sc.MinPrefix = v
	}
	if v, ok := utils.ExtractInt(data, "max_prefix"); ok {
		sc.MaxPrefix = v
	}
	if v, ok := utils.ExtractBool(data, "enable_filter"); ok {
		sc.EnableFilter = v
	}
}

func (dc *DictConfig) applyRecovered(data map[string]any) {
	if v, ok := utils.ExtractInt(data, "max_words"); ok {
		dc.MaxWords = v
	}
	if v, ok := utils.ExtractInt(data, "cache_size"); ok {
		dc.CacheSize = v
	}
	if v, ok := utils.ExtractInt(data, "min_frequency_threshold"); ok {
		dc.MinFreqThreshold = v
	}
	if v, ok := utils.ExtractInt(data, "min_frequency_short_prefix"); ok {
		dc.MinFreqShortPrefix = v
	}
	if v, ok := utils.ExtractInt(data, "default_fuzzy_distance"); ok {
		dc.DefaultFuzzyDistance = v
	}
	if v, ok := utils.ExtractInt(data, "max_fuzzy_distance"); ok {
		dc.MaxFuzzyDistance = v
	}
}

func (cc *CliConfig) applyRecovered(data map[string]any) {
	if v, ok := utils.ExtractInt(data, "default_limit"); ok {
		cc.DefaultLimit = v
	}
	if v, ok := utils.ExtractInt(data, "default_min_len"); ok {
		cc.DefaultMinLen = v
	}
	if v, ok := utils.ExtractInt(data, "default_max_len"); ok {
		cc.DefaultMaxLen = v
	}
	if v, ok := utils.ExtractInt(data, "default_distance"); ok {
		cc.DefaultDistance = v
	}
	if v, ok := utils.ExtractBool(data, "default_no_filter"); ok {
		cc.DefaultNoFilter = v
	}
}

// RebuildConfigFile overwrites the default config.toml with builtin
// defaults, discarding any edits.
func RebuildConfigFile() error {
	defaultPath, err := GetDefaultConfigPath()
	if err != nil {
		return err
	}
	if err := utils.EnsureDir(filepath.Dir(defaultPath)); err != nil {
		return err
	}
	return utils.SaveTOMLFile(DefaultConfig(), defaultPath)
}

// GetActiveConfigPath reports which file a loaded config came from, for
// display in logs and the configtool.
func GetActiveConfigPath(configPath string) string {
	if configPath == "" {
		if defaultPath, err := GetDefaultConfigPath(); err == nil {
			return defaultPath
		}
		return "unknown"
	}
	return utils.GetAbsolutePath(configPath)
}

// SaveConfig writes config to configPath as TOML.
func SaveConfig(config *Config, configPath string) error {
	return utils.SaveTOMLFile(config, configPath)
}

// Update overwrites the server values that are non-nil and persists the
// whole config back to configPath.
func (c *Config) Update(configPath string, maxLimit, minPrefix, maxPrefix *int, enableFilter *bool) error {
	if maxLimit != nil {
		c.Server.MaxLimit = *maxLimit
	}
	if minPrefix != nil {
		c.Server.MinPrefix = *minPrefix
	}
	if maxPrefix != nil {
		c.Server.MaxPrefix = *maxPrefix
	}
	if enableFilter != nil {
		c.Server.EnableFilter = *enableFilter
	}
	return SaveConfig(c, configPath)
}
