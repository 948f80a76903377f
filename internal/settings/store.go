package settings

import (
	"bytes"
	"fmt"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Persister is the host's generic key-value facility. The settings live in
// one opaque blob; a nil blob means nothing has been saved yet.
type Persister interface {
	LoadData() ([]byte, error)
	SaveData(data []byte) error
}

// Store holds the single live Settings record for a plugin instance.
type Store struct {
	persister Persister
	current   Settings
}

func NewStore(p Persister) *Store {
	return &Store{persister: p, current: Defaults()}
}

// Load merges the persisted blob over Defaults, persisted values winning,
// and makes the result current. On a decoding failure the defaults stay
// current and the error is returned.
func (s *Store) Load() (Settings, error) {
	s.current = Defaults()

	data, err := s.persister.LoadData()
	if err != nil {
		return s.current, fmt.Errorf("failed to read settings: %w", err)
	}

	merged, err := merge(data)
	if err != nil {
		return s.current, err
	}

	s.current = merged
	return s.current, nil
}

// Get returns a snapshot of the current settings.
func (s *Store) Get() Settings {
	return s.current
}

// Save fully overwrites the persisted blob. The in-memory settings only
// change once the blob is written.
func (s *Store) Save(next Settings) error {
	data, err := yaml.Marshal(next)
	if err != nil {
		return fmt.Errorf("failed to encode settings: %w", err)
	}

	if err := s.persister.SaveData(data); err != nil {
		return fmt.Errorf("failed to persist settings: %w", err)
	}

	s.current = next
	return nil
}

// Set changes one field and saves.
func (s *Store) Set(key, value string) (Settings, error) {
	next, err := s.current.With(key, value)
	if err != nil {
		return s.current, err
	}
	if err := s.Save(next); err != nil {
		return s.current, err
	}
	return next, nil
}

func merge(data []byte) (Settings, error) {
	v := viper.New()
	v.SetConfigType("yaml")

	defaults := Defaults()
	v.SetDefault(KeyServerURL, defaults.ServerURL)
	v.SetDefault(KeyImageSourceType, string(defaults.ImageSourceType))
	v.SetDefault(KeyImageBaseURL, defaults.ImageBaseURL)
	v.SetDefault(KeyDefaultColWidth, defaults.DefaultColWidth)

	if len(bytes.TrimSpace(data)) > 0 {
		if err := v.ReadConfig(bytes.NewReader(data)); err != nil {
			return defaults, fmt.Errorf("failed to parse settings: %w", err)
		}
	}

	var out Settings
	if err := v.Unmarshal(&out); err != nil {
		return defaults, fmt.Errorf("failed to decode settings: %w", err)
	}
	return out, nil
}
