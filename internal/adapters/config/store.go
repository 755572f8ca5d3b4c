package config

import "go.trai.ch/lessbuild/internal/core/domain"

// Store is a read-only ports.SettingsStore over one loaded snapshot.
type Store struct {
	settings domain.Settings
}

// NewStore creates a store serving settings.
func NewStore(settings domain.Settings) *Store {
	return &Store{settings: settings.Apply()}
}

// Get returns the string value of one of the domain.Key* settings.
func (s *Store) Get(key string) string {
	return s.settings.Get(key)
}

// Snapshot returns a copy of the loaded settings.
func (s *Store) Snapshot() domain.Settings {
	return s.settings.Apply()
}
