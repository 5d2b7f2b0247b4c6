// Package config provides configuration management for qlaunch.
// It handles loading, merging, and accessing configuration from the embedded
// defaults and the user or system config file.
package config

import (
	_ "embed"
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/mitchellh/mapstructure"

	"github.com/lvim-tech/qlaunch/pkg/utils"
)

//go:embed default.toml
var defaultConfigData string

// Config is the effective configuration. It is built once at startup and
// passed to constructors; nothing mutates it afterwards.
type Config struct {
	DebounceMs       int    `toml:"debounce_ms"`
	FrameMs          int    `toml:"frame_ms"`
	PluginTimeoutMs  int    `toml:"plugin_timeout_ms"`
	Parallelism      int    `toml:"parallelism"`
	MaxResults       int    `toml:"max_results"`
	MatcherCacheSize int    `toml:"matcher_cache_size"`
	Placeholder      string `toml:"placeholder"`

	Plugins        []string `toml:"plugins"`
	DefaultPlugins []string `toml:"default_plugins"`

	Terminal string `toml:"terminal"`
	Browser  string `toml:"browser"`

	LogFile  string `toml:"log_file"`
	LogLevel string `toml:"log_level"`

	Theme ThemeConfig       `toml:"theme"`
	Icons map[string]string `toml:"icons"`

	// Plugin holds the raw [plugin.<name>] tables. Each plugin decodes its
	// own table with DecodePlugin.
	Plugin map[string]map[string]any `toml:"plugin"`
}

// ThemeConfig holds UI colors.
type ThemeConfig struct {
	Prompt     string `toml:"prompt"`
	Text       string `toml:"text"`
	Comment    string `toml:"comment"`
	Match      string `toml:"match"`
	Selected   string `toml:"selected"`
	SelectedBg string `toml:"selected_bg"`
	Border     string `toml:"border"`
}

// ThemeConfigFile is ThemeConfig as read from a user file.
type ThemeConfigFile struct {
	Prompt     *string `toml:"prompt"`
	Text       *string `toml:"text"`
	Comment    *string `toml:"comment"`
	Match      *string `toml:"match"`
	Selected   *string `toml:"selected"`
	SelectedBg *string `toml:"selected_bg"`
	Border     *string `toml:"border"`
}

// ConfigFile is read from a user or system TOML file. Pointer fields tell
// unset keys apart from zero values.
type ConfigFile struct {
	DebounceMs       *int    `toml:"debounce_ms"`
	FrameMs          *int    `toml:"frame_ms"`
	PluginTimeoutMs  *int    `toml:"plugin_timeout_ms"`
	Parallelism      *int    `toml:"parallelism"`
	MaxResults       *int    `toml:"max_results"`
	MatcherCacheSize *int    `toml:"matcher_cache_size"`
	Placeholder      *string `toml:"placeholder"`

	Plugins        *[]string `toml:"plugins"`
	DefaultPlugins *[]string `toml:"default_plugins"`

	Terminal *string `toml:"terminal"`
	Browser  *string `toml:"browser"`

	LogFile  *string `toml:"log_file"`
	LogLevel *string `toml:"log_level"`

	Theme  ThemeConfigFile           `toml:"theme"`
	Icons  map[string]string         `toml:"icons"`
	Plugin map[string]map[string]any `toml:"plugin"`
}

// GetUserConfigPath returns the path of the user config file
func GetUserConfigPath() string {
	return filepath.Join(utils.GetConfigDir(), "qlaunch", "config.toml")
}

// GetSystemConfigPath returns the path of the system config file
func GetSystemConfigPath() string {
	return "/etc/qlaunch/config.toml"
}

// Load builds the configuration. An explicit path must exist and parse.
// Otherwise the user config, then the system config, is merged over the
// defaults; a broken file there is reported and the defaults are used.
func Load(path string) (*Config, error) {
	defaultCfg, err := loadDefaultConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load default config: %w", err)
	}

	if path != "" {
		fileCfg, err := loadConfigFromFile(utils.ExpandHomeDir(path))
		if err != nil {
			return nil, fmt.Errorf("failed to load config %s: %w", path, err)
		}
		return mergeConfigs(defaultCfg, fileCfg), nil
	}

	for _, candidate := range []string{GetUserConfigPath(), GetSystemConfigPath()} {
		if !utils.FileExists(candidate) {
			continue
		}
		fileCfg, err := loadConfigFromFile(candidate)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to load config %s: %v\n", candidate, err)
			fmt.Fprintf(os.Stderr, "Using default configuration\n")
			return defaultCfg, nil
		}
		return mergeConfigs(defaultCfg, fileCfg), nil
	}

	return defaultCfg, nil
}

// Default returns the embedded configuration.
func Default() *Config {
	cfg, err := loadDefaultConfig()
	if err != nil {
		panic(fmt.Sprintf("embedded config: %v", err))
	}
	return cfg
}

func loadDefaultConfig() (*Config, error) {
	var cfg Config
	if _, err := toml.Decode(defaultConfigData, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func loadConfigFromFile(path string) (*ConfigFile, error) {
	var cfg ConfigFile
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// mergeConfigs overrides defaults with the keys set in the file
func mergeConfigs(defaultCfg *Config, userCfg *ConfigFile) *Config {
	merged := *defaultCfg

	setInt(&merged.DebounceMs, userCfg.DebounceMs)
	setInt(&merged.FrameMs, userCfg.FrameMs)
	setInt(&merged.PluginTimeoutMs, userCfg.PluginTimeoutMs)
	setInt(&merged.Parallelism, userCfg.Parallelism)
	setInt(&merged.MaxResults, userCfg.MaxResults)
	setInt(&merged.MatcherCacheSize, userCfg.MatcherCacheSize)
	setString(&merged.Placeholder, userCfg.Placeholder)

	if userCfg.Plugins != nil {
		merged.Plugins = *userCfg.Plugins
	}
	if userCfg.DefaultPlugins != nil {
		merged.DefaultPlugins = *userCfg.DefaultPlugins
	}

	setString(&merged.Terminal, userCfg.Terminal)
	setString(&merged.Browser, userCfg.Browser)
	setString(&merged.LogFile, userCfg.LogFile)
	setString(&merged.LogLevel, userCfg.LogLevel)

	mergeThemeConfig(&merged.Theme, &userCfg.Theme)

	merged.Icons = maps.Clone(defaultCfg.Icons)
	if merged.Icons == nil {
		merged.Icons = make(map[string]string)
	}
	maps.Copy(merged.Icons, userCfg.Icons)

	// Plugin tables merge key by key so a user table only needs the keys
	// it changes.
	merged.Plugin = make(map[string]map[string]any, len(defaultCfg.Plugin))
	for name, table := range defaultCfg.Plugin {
		merged.Plugin[name] = maps.Clone(table)
	}
	for name, table := range userCfg.Plugin {
		if merged.Plugin[name] == nil {
			merged.Plugin[name] = make(map[string]any, len(table))
		}
		maps.Copy(merged.Plugin[name], table)
	}

	return &merged
}

func mergeThemeConfig(merged *ThemeConfig, user *ThemeConfigFile) {
	setString(&merged.Prompt, user.Prompt)
	setString(&merged.Text, user.Text)
	setString(&merged.Comment, user.Comment)
	setString(&merged.Match, user.Match)
	setString(&merged.Selected, user.Selected)
	setString(&merged.SelectedBg, user.SelectedBg)
	setString(&merged.Border, user.Border)
}

func setInt(dst *int, src *int) {
	if src != nil {
		*dst = *src
	}
}

func setString(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}

// Debounce returns debounce_ms as a duration.
func (c *Config) Debounce() time.Duration {
	return time.Duration(c.DebounceMs) * time.Millisecond
}

// Frame returns frame_ms as a duration, never below one millisecond.
func (c *Config) Frame() time.Duration {
	if c.FrameMs < 1 {
		return time.Millisecond
	}
	return time.Duration(c.FrameMs) * time.Millisecond
}

// PluginTimeout returns plugin_timeout_ms as a duration.
func (c *Config) PluginTimeout() time.Duration {
	return time.Duration(c.PluginTimeoutMs) * time.Millisecond
}

// DecodePlugin decodes the [plugin.<name>] table into out. Keys missing
// from the table leave out untouched, so callers pass a struct filled with
// the plugin's defaults.
func (c *Config) DecodePlugin(name string, out any) error {
	table, ok := c.Plugin[name]
	if !ok {
		return nil
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		ZeroFields:       true,
		Result:           out,
	})
	if err != nil {
		return err
	}
	if err := decoder.Decode(table); err != nil {
		return fmt.Errorf("plugin %s: %w", name, err)
	}
	return nil
}

// PluginEnabled reports whether name is in the plugins list.
func (c *Config) PluginEnabled(name string) bool {
	return slices.Contains(c.Plugins, name)
}

// InitUserConfig copies the default config into the user config directory
func InitUserConfig() (string, error) {
	userConfigPath := GetUserConfigPath()
	userConfigDir := filepath.Dir(userConfigPath)

	if utils.FileExists(userConfigPath) {
		return "", fmt.Errorf("config already exists: %s", userConfigPath)
	}

	if err := utils.EnsureDir(userConfigDir); err != nil {
		return "", fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := os.WriteFile(userConfigPath, []byte(defaultConfigData), 0644); err != nil {
		return "", fmt.Errorf("failed to write config file: %w", err)
	}

	return userConfigPath, nil
}

// GetDefaultConfigContent returns the embedded default config
func GetDefaultConfigContent() string {
	return defaultConfigData
}
