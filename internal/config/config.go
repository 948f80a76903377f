package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

type Config struct {
	VaultDir string `yaml:"vaultdir"  json:"vault_dir"`
	LogLevel string `yaml:"log_level" json:"log_level"`

	path string `yaml:"-"`
}

var ValidLogLevels = map[string]bool{
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

const defaultLogLevel = "info"

func Load(home string) (*Config, error) {
	path := GetConfigPath(home)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	cfg := &Config{path: path}
	if len(strings.TrimSpace(string(data))) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", path, err)
		}
	}

	cfg.ensureDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	cfg.syncViper()
	return cfg, nil
}

func (cfg *Config) ensureDefaults() {
	cfg.VaultDir = strings.TrimSpace(cfg.VaultDir)
	cfg.LogLevel = strings.ToLower(strings.TrimSpace(cfg.LogLevel))
	if cfg.LogLevel == "" {
		cfg.LogLevel = defaultLogLevel
	}
}

func (cfg *Config) validate() error {
	if _, ok := ValidLogLevels[cfg.LogLevel]; !ok {
		return fmt.Errorf(
			"invalid log level: %q. Please choose from 'debug', 'info', 'warn', or 'error'",
			cfg.LogLevel,
		)
	}
	return nil
}

// syncViper registers file values as viper defaults so that flags and
// environment variables bound to the same keys take precedence.
func (cfg *Config) syncViper() {
	viper.SetDefault("vaultdir", cfg.VaultDir)
	viper.SetDefault("log_level", cfg.LogLevel)
}

// Vault returns the effective vault directory after flag and environment
// overrides have been applied.
func (cfg *Config) Vault() string {
	if v := strings.TrimSpace(viper.GetString("vaultdir")); v != "" {
		return v
	}
	return cfg.VaultDir
}

func (cfg *Config) ChangeVault(dir string) error {
	dir = strings.TrimSpace(dir)
	if dir == "" {
		return fmt.Errorf("vault directory cannot be empty")
	}

	abs, err := filepath.Abs(dir)
	if err != nil {
		return err
	}

	cfg.VaultDir = abs
	viper.Set("vaultdir", abs)
	return cfg.Save()
}

func (cfg *Config) Save() error {
	if err := cfg.validate(); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}

	path := cfg.path
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return err
		}
		path = GetConfigPath(home)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	return os.WriteFile(path, data, 0o644)
}
