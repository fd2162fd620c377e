package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dskvich/capture-telegram-bot/pkg/domain"
)

type settingsRepository struct {
	db  *sql.DB
	bot string
}

func NewSettingsRepository(db *sql.DB, bot string) *settingsRepository {
	return &settingsRepository{db: db, bot: bot}
}

// GetOrCreate inserts the default record on first access and returns the stored one.
func (s *settingsRepository) GetOrCreate(ctx context.Context, chatID int64) (*domain.UserSettings, error) {
	const insert = `
		INSERT INTO settings (bot, chat_id, full_page, width, height, device, format)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (bot, chat_id) DO NOTHING
	`

	d := domain.DefaultSettings(chatID)
	if _, err := s.db.ExecContext(ctx, insert,
		s.bot, chatID, d.FullPage, d.Resolution.Width, d.Resolution.Height, string(d.Device), string(d.Format),
	); err != nil {
		return nil, fmt.Errorf("inserting default settings: %w", err)
	}

	const query = `
		SELECT full_page, width, height, device, format
		FROM settings
		WHERE bot = $1 AND chat_id = $2
	`

	settings := domain.UserSettings{ChatID: chatID}
	var device, format string
	err := s.db.QueryRowContext(ctx, query, s.bot, chatID).
		Scan(&settings.FullPage, &settings.Resolution.Width, &settings.Resolution.Height, &device, &format)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("fetching settings by chatID: %w", err)
	}

	settings.Device = domain.Device(device)
	settings.Format = domain.Format(format)

	return &settings, nil
}

// Update writes one field. A chat without a record gets the defaults with the change applied.
func (s *settingsRepository) Update(ctx context.Context, chatID int64, change domain.SettingChange) error {
	var set string
	switch change.(type) {
	case domain.FullPageChange:
		set = "full_page = EXCLUDED.full_page"
	case domain.ResolutionChange:
		set = "width = EXCLUDED.width, height = EXCLUDED.height"
	case domain.DeviceChange:
		set = "device = EXCLUDED.device"
	case domain.FormatChange:
		set = "format = EXCLUDED.format"
	default:
		return fmt.Errorf("unsupported settings change %T", change)
	}

	query := `
		INSERT INTO settings (bot, chat_id, full_page, width, height, device, format)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (bot, chat_id) DO UPDATE SET ` + set

	d := domain.DefaultSettings(chatID)
	change.Apply(&d)

	if _, err := s.db.ExecContext(ctx, query,
		s.bot, chatID, d.FullPage, d.Resolution.Width, d.Resolution.Height, string(d.Device), string(d.Format),
	); err != nil {
		return fmt.Errorf("updating %s: %w", change.Field(), err)
	}

	return nil
}
