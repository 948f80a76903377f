package state

import (
	"errors"
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"

	"github.com/Paintersrp/eagle/internal/config"
	"github.com/Paintersrp/eagle/internal/constants"
	"github.com/Paintersrp/eagle/internal/handler"
	"github.com/Paintersrp/eagle/internal/settings"
)

type State struct {
	Config   *config.Config
	Settings *settings.Store
	Home     string
	Watcher  *VaultWatcher

	handler *handler.FileHandler
}

func NewState() (*State, error) {
	home, err := GetHomeDir()
	if err != nil {
		return nil, err
	}
	return NewStateAt(home)
}

// NewStateAt builds the state rooted at home; the settings blob is loaded
// immediately, falling back to defaults when it cannot be decoded.
func NewStateAt(home string) (*State, error) {
	cfg, err := LoadConfig(home)
	if err != nil {
		return nil, err
	}

	store := settings.NewStore(settings.NewFilePersister(config.GetDataPath(home)))
	if _, err := store.Load(); err != nil {
		log.Warn().Err(err).Msg("using default gallery settings")
	}

	return &State{
		Config:   cfg,
		Settings: store,
		Home:     home,
	}, nil
}

func GetHomeDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory. err: %s", err)
	}

	return home, nil
}

func LoadConfig(home string) (*config.Config, error) {
	viper.AddConfigPath(home + constants.ConfigDir)
	viper.SetConfigName(constants.ConfigFile)
	viper.SetConfigType(constants.ConfigFileType)
	_ = viper.BindEnv("vaultdir", "EAGLE_VAULT")

	if err := config.EnsureConfigExists(home); err != nil {
		return nil, err
	}

	return config.Load(home)
}

// Vault returns the effective vault directory.
func (s *State) Vault() string {
	return s.Config.Vault()
}

// Handler returns the file handler for the effective vault, checking that
// one is configured.
func (s *State) Handler() (*handler.FileHandler, error) {
	if err := s.Config.RequireVault(); err != nil {
		return nil, err
	}
	if s.handler == nil || s.handler.VaultDir() != handler.NormalizePath(s.Vault()) {
		s.handler = handler.NewFileHandler(s.Vault())
	}
	return s.handler, nil
}

// StartWatcher creates the vault watcher used by the workspace.
func (s *State) StartWatcher() (*VaultWatcher, error) {
	if s.Watcher != nil {
		return s.Watcher, nil
	}

	h, err := s.Handler()
	if err != nil {
		return nil, err
	}

	w, err := NewVaultWatcher(h.VaultDir())
	if err != nil {
		return nil, fmt.Errorf("failed to create vault watcher: %w", err)
	}
	w.OnChange(func(path string) {
		log.Debug().Str("note", path).Msg("vault note changed")
	})

	s.Watcher = w
	return w, nil
}

// Close releases resources associated with the state.
func (s *State) Close() error {
	if s == nil {
		return nil
	}

	var errs []error
	if s.Watcher != nil {
		if err := s.Watcher.Close(); err != nil {
			errs = append(errs, err)
		}
		s.Watcher = nil
	}

	if len(errs) == 0 {
		return nil
	}
	return errors.Join(errs...)
}
