package domain

import "errors"

// SettingsSchemaVersion is bumped whenever a field is added to or removed
// from Settings. Stored documents with a different version are migrated on
// read by the service layer.
const SettingsSchemaVersion = 1

const (
	ThemeLight = "light"
	ThemeDark  = "dark"
)

var ErrUnknownTheme = errors.New("theme must be light or dark")
var ErrSettingsNotFound = errors.New("settings not found")
var ErrBadSettingsPayload = errors.New("settings payload contains unrecognized keys")

// Settings is the typed site configuration. The set of fields is the whole
// schema: updates carrying keys outside this struct are rejected rather than
// stored.
type Settings struct {
	SchemaVersion   int    `json:"schema_version" bson:"schema_version"`
	SiteName        string `json:"site_name" bson:"site_name"`
	Tagline         string `json:"tagline,omitempty" bson:"tagline,omitempty"`
	ContactEmail    string `json:"contact_email,omitempty" bson:"contact_email,omitempty"`
	Theme           string `json:"theme" bson:"theme"`
	MaintenanceMode bool   `json:"maintenance_mode" bson:"maintenance_mode"`
}

// DefaultSettings returns the configuration used before an admin has saved
// anything.
func DefaultSettings() Settings {
	return Settings{
		SchemaVersion: SettingsSchemaVersion,
		SiteName:      "RankForge",
		Theme:         ThemeLight,
	}
}

// Validate checks the enumerated fields.
func (s Settings) Validate() error {
	if s.Theme != ThemeLight && s.Theme != ThemeDark {
		return ErrUnknownTheme
	}
	return nil
}
