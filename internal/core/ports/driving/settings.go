package driving

import "github.com/custodia-labs/hadith-search/internal/core/domain"

// SettingsService manages application settings.
type SettingsService interface {
	// Get retrieves current application settings, defaults filled in.
	Get() (*domain.AppSettings, error)

	// Set updates a single configuration key and persists it.
	Set(key, value string) error

	// Validate checks the current settings are sufficient to serve.
	Validate() error

	// GetDefaults returns default settings.
	GetDefaults() domain.AppSettings

	// Path returns the configuration file path.
	Path() string
}
