package state

import (
	"fmt"
	"os"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/tbourn/go-coach-backend/internal/domain"
)

// SettingsStore holds the current coaching settings and the defaults they
// are reset to.
type SettingsStore struct {
	mu       sync.RWMutex
	current  domain.CoachingSettings
	defaults domain.CoachingSettings
}

// NewSettingsStore returns a store whose current value equals defaults.
func NewSettingsStore(defaults domain.CoachingSettings) *SettingsStore {
	return &SettingsStore{
		current:  defaults.Clone(),
		defaults: defaults.Clone(),
	}
}

// Get returns a copy of the current settings.
func (s *SettingsStore) Get() domain.CoachingSettings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current.Clone()
}

// Set validates and stores v. On error the current value is unchanged.
func (s *SettingsStore) Set(v domain.CoachingSettings) error {
	if err := v.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	s.current = v.Clone()
	s.mu.Unlock()
	return nil
}

// Reset restores the defaults and returns them.
func (s *SettingsStore) Reset() domain.CoachingSettings {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = s.defaults.Clone()
	return s.current.Clone()
}

// LoadSettingsDefaults returns the built-in defaults overlaid with the YAML
// file at path. Keys absent from the file keep their built-in value; trait
// entries are merged. An empty path returns the built-in defaults.
func LoadSettingsDefaults(path string) (domain.CoachingSettings, error) {
	def := domain.DefaultCoachingSettings()
	if path == "" {
		return def, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return def, fmt.Errorf("read settings defaults: %w", err)
	}
	if err := yaml.Unmarshal(b, &def); err != nil {
		return domain.DefaultCoachingSettings(), fmt.Errorf("parse settings defaults %s: %w", path, err)
	}
	if err := def.Validate(); err != nil {
		return domain.DefaultCoachingSettings(), fmt.Errorf("settings defaults %s: %w", path, err)
	}
	return def, nil
}
