package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

type updatesRepository struct {
	db  *sql.DB
	bot string
}

func NewUpdatesRepository(db *sql.DB, bot string) *updatesRepository {
	return &updatesRepository{db: db, bot: bot}
}

// Advance moves the chat's last processed update id forward in a single statement.
// It reports false when updateID is not greater than the stored one; nothing is written then.
func (u *updatesRepository) Advance(ctx context.Context, chatID int64, updateID int) (bool, error) {
	const query = `
		INSERT INTO updates (bot, chat_id, last_update_id)
		VALUES ($1, $2, $3)
		ON CONFLICT (bot, chat_id)
		DO UPDATE SET
			last_update_id = EXCLUDED.last_update_id,
			updated_at = now()
		WHERE updates.last_update_id < EXCLUDED.last_update_id
		RETURNING last_update_id
	`

	var stored int
	err := u.db.QueryRowContext(ctx, query, u.bot, chatID, updateID).Scan(&stored)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("advancing last update id: %w", err)
	}

	return true, nil
}
