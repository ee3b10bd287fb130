package driven

import "github.com/custodia-labs/zicoder/internal/core/domain"

// SettingsStore provides access to the start-up configuration.
// Implementations handle persistence (e.g., TOML files).
type SettingsStore interface {
	// Load reads settings from storage.
	// A missing file yields domain.DefaultSettings.
	Load() (domain.Settings, error)

	// Save persists settings to storage.
	Save(settings domain.Settings) error

	// Path returns the configuration file path.
	Path() string
}
