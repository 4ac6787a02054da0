/*
Package config manages the TOML config for PhraseRank: request limits for the
IPC server, CLI defaults and the seed corpus applied at startup.
*/
package config

import (
	"os"
	"path/filepath"

	"github.com/bastiangx/phraserank/internal/utils"
	"github.com/bastiangx/phraserank/pkg/corpus"
	"github.com/charmbracelet/log"
)

const appDirName = "phraserank"

// Config holds the entire config structure
type Config struct {
	Server ServerConfig `toml:"server"`
	CLI    CliConfig    `toml:"cli"`
	Corpus CorpusConfig `toml:"corpus"`
}

// ServerConfig has IPC server options.
type ServerConfig struct {
	MaxLimit     int `toml:"max_limit"`
	DefaultLimit int `toml:"default_limit"`
	MaxPrefix    int `toml:"max_prefix"`
}

// CliConfig holds interactive prompt options.
type CliConfig struct {
	DefaultLimit int    `toml:"default_limit"`
	Prompt       string `toml:"prompt"`
}

// CorpusConfig lists where startup seeds come from.
type CorpusConfig struct {
	Builtin bool          `toml:"builtin"`
	Files   []string      `toml:"files"`
	Seeds   []corpus.Seed `toml:"seed"`
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			MaxLimit:     64,
			DefaultLimit: 5,
			MaxPrefix:    256,
		},
		CLI: CliConfig{
			DefaultLimit: 5,
			Prompt:       "Prefix> ",
		},
		Corpus: CorpusConfig{
			Builtin: true,
			Files:   []string{},
		},
	}
}

// GetConfigDir returns the config directory with fallback priority:
// 1. os.UserConfigDir()/phraserank
// 2. ~/.config/phraserank
// 3. Current executable dir
func GetConfigDir() (string, error) {
	if base, err := os.UserConfigDir(); err == nil {
		primary := filepath.Join(base, appDirName)
		if result := utils.CheckDirStatus(primary); result.Writable {
			return primary, nil
		}
	}
	if homeDir, err := os.UserHomeDir(); err == nil {
		fallback := filepath.Join(homeDir, ".config", appDirName)
		if result := utils.CheckDirStatus(fallback); result.Writable {
			return fallback, nil
		}
	} else {
		log.Errorf("Failed to get home directory: %v", err)
	}
	execDir, err := utils.GetExecutableDir()
	if err != nil {
		log.Errorf("Failed to get executable directory: %v", err)
		return "", err
	}
	return execDir, nil
}

// GetDefaultConfigPath returns the default path for config.toml
func GetDefaultConfigPath() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "config.toml"), nil
}

// LoadConfigWithPriority loads config with priority:
// 1. Custom path from --config flag
// 2. Default path: [UserConfigDir]/phraserank/config.toml
// 3. Builtin defaults
//
// The returned path is empty when builtin defaults are in use.
func LoadConfigWithPriority(customConfigPath string) (*Config, string, error) {
	if customConfigPath != "" {
		if _, statErr := os.Stat(customConfigPath); statErr == nil {
			config, err := LoadConfig(customConfigPath)
			if err != nil {
				log.Warnf("Failed to load custom config from %s: %v. Trying default path...", customConfigPath, err)
			} else {
				log.Debugf("Loaded config from custom path: %s", customConfigPath)
				return config, customConfigPath, nil
			}
		} else {
			log.Warnf("Custom config file not found at %s: %v. Trying default path...", customConfigPath, statErr)
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

// InitConfig loads config from file or creates default if missing
func InitConfig(configPath string) (*Config, error) {
	configDir := filepath.Dir(configPath)

	if err := utils.EnsureDir(configDir); err != nil {
		log.Warnf("Failed to create config directory %s: %v. Using built-in defaults...", configDir, err)
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

	return LoadConfig(configPath)
}

// LoadConfig loads from a TOML file. Keys missing from the file keep their
// defaults; an unparseable file is salvaged section by section.
func LoadConfig(configPath string) (*Config, error) {
	config := DefaultConfig()

	if err := utils.LoadTOMLFile(configPath, config); err != nil {
		return tryPartialParse(configPath)
	}
	config.normalize()
	return config, nil
}

// SaveConfig saves into a TOML file
func SaveConfig(config *Config, configPath string) error {
	return utils.SaveTOMLFile(config, configPath)
}

// GetActiveConfigPath returns the absolute path of loaded config file
func GetActiveConfigPath(configPath string) string {
	if configPath == "" {
		return "builtin defaults"
	}
	return utils.GetAbsolutePath(configPath)
}

// tryPartialParse recovers whichever sections still decode into a generic map.
func tryPartialParse(configPath string) (*Config, error) {
	config := DefaultConfig()

	raw, err := utils.ParseTOMLWithRecovery(configPath)
	if err != nil {
		log.Warnf("Could not parse any valid configuration from %s: %v. Using all defaults.", configPath, err)
		return config, nil
	}

	if section, ok := utils.ExtractSection(raw, "server"); ok {
		extractServerConfig(section, &config.Server)
	}
	if section, ok := utils.ExtractSection(raw, "cli"); ok {
		extractCliConfig(section, &config.CLI)
	}
	if section, ok := utils.ExtractSection(raw, "corpus"); ok {
		extractCorpusConfig(section, &config.Corpus)
	}
	config.normalize()
	return config, nil
}

func extractServerConfig(data map[string]any, server *ServerConfig) {
	if val, ok := utils.ExtractInt64(data, "max_limit"); ok {
		server.MaxLimit = val
	}
	if val, ok := utils.ExtractInt64(data, "default_limit"); ok {
		server.DefaultLimit = val
	}
	if val, ok := utils.ExtractInt64(data, "max_prefix"); ok {
		server.MaxPrefix = val
	}
}

func extractCliConfig(data map[string]any, cli *CliConfig) {
	if val, ok := utils.ExtractInt64(data, "default_limit"); ok {
		cli.DefaultLimit = val
	}
	if val, ok := utils.ExtractString(data, "prompt"); ok {
		cli.Prompt = val
	}
}

func extractCorpusConfig(data map[string]any, c *CorpusConfig) {
	if val, ok := utils.ExtractBool(data, "builtin"); ok {
		c.Builtin = val
	}
	if val, ok := utils.ExtractStrings(data, "files"); ok {
		c.Files = val
	}
	tables, ok := data["seed"].([]map[string]any)
	if !ok {
		return
	}
	for _, table := range tables {
		phrase, ok := utils.ExtractString(table, "phrase")
		if !ok {
			continue
		}
		seed := corpus.Seed{Phrase: phrase}
		seed.Score, _ = utils.ExtractInt64(table, "score")
		seed.Accumulate, _ = utils.ExtractBool(table, "accumulate")
		c.Seeds = append(c.Seeds, seed)
	}
}

// normalize replaces nonsensical limits with defaults.
func (c *Config) normalize() {
	defaults := DefaultConfig()
	if c.Server.MaxLimit < 1 {
		log.Warnf("server.max_limit %d is invalid, using %d", c.Server.MaxLimit, defaults.Server.MaxLimit)
		c.Server.MaxLimit = defaults.Server.MaxLimit
	}
	if c.Server.DefaultLimit < 1 || c.Server.DefaultLimit > c.Server.MaxLimit {
		log.Warnf("server.default_limit %d is out of range, using %d", c.Server.DefaultLimit, min(defaults.Server.DefaultLimit, c.Server.MaxLimit))
		c.Server.DefaultLimit = min(defaults.Server.DefaultLimit, c.Server.MaxLimit)
	}
	if c.Server.MaxPrefix < 1 {
		c.Server.MaxPrefix = defaults.Server.MaxPrefix
	}
	if c.CLI.DefaultLimit < 0 {
		c.CLI.DefaultLimit = defaults.CLI.DefaultLimit
	}
}
