package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/dskvich/capture-telegram-bot/pkg/domain"
)

type SettingsRepository interface {
	GetOrCreate(ctx context.Context, chatID int64) (*domain.UserSettings, error)
	Update(ctx context.Context, chatID int64, change domain.SettingChange) error
}

type settingsService struct {
	repo SettingsRepository
}

func NewSettingsService(repo SettingsRepository) *settingsService {
	return &settingsService{repo: repo}
}

func (s *settingsService) Get(ctx context.Context, chatID int64) (domain.UserSettings, error) {
	settings, err := s.repo.GetOrCreate(ctx, chatID)
	if err != nil {
		return domain.UserSettings{}, fmt.Errorf("fetching settings: %w", err)
	}
	return *settings, nil
}

// Set writes one field. The value is expected to be resolved from the menu table already.
func (s *settingsService) Set(ctx context.Context, chatID int64, change domain.SettingChange) error {
	if err := s.repo.Update(ctx, chatID, change); err != nil {
		return fmt.Errorf("saving %s: %w", change.Field(), err)
	}

	slog.InfoContext(ctx, "Settings changed", "chatID", chatID, "field", change.Field(), "change", fmt.Sprintf("%+v", change))
	return nil
}
