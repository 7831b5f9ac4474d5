package repositories

import "context"

// SettingsRepositoryFacade reads and writes store-level settings (company
// info for receipt headers, receipt footer text). Settings are simple
// key/value rows; typed parsing happens in the service layer.
type SettingsRepositoryFacade interface {
	// GetSetting retrieves one setting value by key.
	GetSetting(ctx context.Context, key string) (string, error)

	// GetSettings retrieves all settings as a key/value map.
	GetSettings(ctx context.Context) (map[string]string, error)

	// UpsertSetting creates or replaces a setting value.
	UpsertSetting(ctx context.Context, key, value string, updatedBy string) error
}
