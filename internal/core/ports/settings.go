package ports

import "go.trai.ch/lessbuild/internal/core/domain"

// SettingsStore exposes the pipeline settings.
//
//go:generate mockgen -source=settings.go -destination=mocks/mock_settings.go -package=mocks
type SettingsStore interface {
	// Get returns the value of one of the domain.Key* settings.
	Get(key string) string

	// Snapshot returns the immutable settings snapshot for one request.
	Snapshot() domain.Settings
}

// SettingsLoader loads a settings store for the working directory.
type SettingsLoader interface {
	// Load reads the settings visible from cwd and applies overrides last.
	Load(cwd string, overrides ...domain.SettingsOverride) (SettingsStore, error)
}
