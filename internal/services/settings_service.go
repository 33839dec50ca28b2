// Package services – SettingsService
//
// This file implements SettingsService: read, replace and reset the coaching
// settings. Every successful change is persisted immediately.
package services

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/tbourn/go-coach-backend/internal/domain"
	"github.com/tbourn/go-coach-backend/internal/state"
)

// SettingsService manages the coaching settings.
type SettingsService struct {
	Settings  *state.SettingsStore
	Snapshots *Snapshots
}

// Get returns the current settings.
func (s *SettingsService) Get() domain.CoachingSettings {
	return s.Settings.Get()
}

// Update validates and stores v, then persists it. Validation failures wrap
// ErrInvalidSettings.
func (s *SettingsService) Update(ctx context.Context, v domain.CoachingSettings) (domain.CoachingSettings, error) {
	ctx = context.WithoutCancel(ctx)
	if err := s.Settings.Set(v); err != nil {
		return domain.CoachingSettings{}, err
	}
	cur := s.Settings.Get()
	if err := s.Snapshots.SaveSettings(ctx, cur); err != nil {
		return cur, fmt.Errorf("save settings: %w", err)
	}
	zerolog.Ctx(ctx).Info().Msg("coaching settings updated")
	return cur, nil
}

// Reset restores the default settings and persists them.
func (s *SettingsService) Reset(ctx context.Context) (domain.CoachingSettings, error) {
	ctx = context.WithoutCancel(ctx)
	cur := s.Settings.Reset()
	if err := s.Snapshots.SaveSettings(ctx, cur); err != nil {
		return cur, fmt.Errorf("save settings: %w", err)
	}
	zerolog.Ctx(ctx).Info().Msg("coaching settings reset to defaults")
	return cur, nil
}
