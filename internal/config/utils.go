package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/Paintersrp/eagle/internal/constants"
)

func GetConfigPath(homeDir string) string {
	return filepath.Join(
		homeDir,
		constants.ConfigDir,
		constants.ConfigFile+"."+constants.ConfigFileType,
	)
}

func GetDataPath(homeDir string) string {
	return filepath.Join(homeDir, constants.ConfigDir, constants.DataFile)
}

func GetLogPath(homeDir string) string {
	return filepath.Join(homeDir, constants.ConfigDir, constants.LogFile)
}

func EnsureConfigExists(homeDir string) error {
	configPath := GetConfigPath(homeDir)
	configDir := filepath.Dir(configPath)

	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if _, err := os.Stat(configPath); errors.Is(err, os.ErrNotExist) {
		file, err := os.Create(configPath)
		if err != nil {
			return fmt.Errorf("failed to create config file: %w", err)
		}
		file.Close()
	} else if err != nil {
		return fmt.Errorf("failed to check config file existence: %w", err)
	}

	return nil
}

// RequireVault reports a ConfigInitError when no vault directory is known
// from the config file, the --vault flag, or EAGLE_VAULT.
func (cfg *Config) RequireVault() error {
	vault := cfg.Vault()
	if vault == "" {
		return &ConfigInitError{
			msg: "no vault directory configured; pass --vault or set vaultdir in " + cfg.path,
		}
	}

	info, err := os.Stat(vault)
	if err != nil {
		return &ConfigInitError{msg: fmt.Sprintf("vault directory %q: %v", vault, err)}
	}
	if !info.IsDir() {
		return &ConfigInitError{msg: fmt.Sprintf("vault path %q is not a directory", vault)}
	}

	return nil
}
