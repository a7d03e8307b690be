package driving

import "github.com/custodia-labs/docsearch/internal/core/domain"

// SettingsService resolves application settings.
type SettingsService interface {
	// Get returns settings from the config file and environment, with defaults.
	Get() (*domain.AppSettings, error)

	// Set persists a single setting by its dotted key.
	Set(key string, value any) error
}
