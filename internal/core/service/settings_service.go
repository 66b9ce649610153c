package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"github.com/rs/zerolog"

	"github.com/rankforge/agency-api/internal/core/domain"
	"github.com/rankforge/agency-api/internal/core/ports"
)

const (
	settingsCacheKey = "settings"
	settingsCacheTTL = 5 * time.Minute
)

// SettingsService reads and updates the typed site configuration. Reads are
// served from an in-process TTL cache; updates write through and invalidate.
type SettingsService struct {
	repo  ports.SettingsRepository
	cache *gocache.Cache
	log   zerolog.Logger
}

func NewSettingsService(repo ports.SettingsRepository, log zerolog.Logger) *SettingsService {
	return &SettingsService{
		repo:  repo,
		cache: gocache.New(settingsCacheTTL, 10*time.Minute),
		log:   log,
	}
}

// Get returns current settings, falling back to defaults when nothing has
// been saved yet.
func (s *SettingsService) Get(ctx context.Context) (*domain.Settings, error) {
	if cached, ok := s.cache.Get(settingsCacheKey); ok {
		if settings, ok := cached.(domain.Settings); ok {
			clone := settings
			return &clone, nil
		}
	}

	settings, err := s.repo.Load(ctx)
	if err != nil {
		if errors.Is(err, domain.ErrSettingsNotFound) {
			defaults := domain.DefaultSettings()
			return &defaults, nil
		}
		return nil, err
	}

	// Documents written under an older schema get current defaults for any
	// field the old schema lacked.
	if settings.SchemaVersion != domain.SettingsSchemaVersion {
		s.log.Info().Int("stored_version", settings.SchemaVersion).Msg("migrating settings schema")
		settings.SchemaVersion = domain.SettingsSchemaVersion
		if settings.Theme == "" {
			settings.Theme = domain.ThemeLight
		}
	}

	s.cache.Set(settingsCacheKey, *settings, gocache.DefaultExpiration)
	return settings, nil
}

// Update replaces the stored settings. The raw payload is decoded strictly:
// any key outside the schema fails the whole update.
func (s *SettingsService) Update(ctx context.Context, raw []byte) (*domain.Settings, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()

	var settings domain.Settings
	if err := dec.Decode(&settings); err != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrBadSettingsPayload, err)
	}
	settings.SchemaVersion = domain.SettingsSchemaVersion
	if settings.Theme == "" {
		settings.Theme = domain.ThemeLight
	}
	if err := settings.Validate(); err != nil {
		return nil, err
	}

	if err := s.repo.Save(ctx, &settings); err != nil {
		s.log.Error().Err(err).Msg("failed to save settings")
		return nil, err
	}

	s.cache.Set(settingsCacheKey, settings, gocache.DefaultExpiration)
	s.log.Info().Str("theme", settings.Theme).Bool("maintenance", settings.MaintenanceMode).Msg("settings updated")
	return &settings, nil
}
