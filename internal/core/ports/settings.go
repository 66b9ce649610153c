package ports

import (
	"context"

	"github.com/rankforge/agency-api/internal/core/domain"
)

// SettingsRepository stores the single site settings document.
type SettingsRepository interface {
	Load(ctx context.Context) (*domain.Settings, error)
	Save(ctx context.Context, s *domain.Settings) error
}

// SettingsService reads and updates the typed site configuration.
type SettingsService interface {
	// Get returns the current settings, falling back to defaults when none
	// have been saved yet.
	Get(ctx context.Context) (*domain.Settings, error)
	// Update replaces the stored settings. Raw is the request body; payloads
	// carrying keys outside the schema are rejected.
	Update(ctx context.Context, raw []byte) (*domain.Settings, error)
}
