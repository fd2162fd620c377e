package services

import (
	"context"
	"fmt"
	"log/slog"
)

type UpdatesRepository interface {
	Advance(ctx context.Context, chatID int64, updateID int) (bool, error)
}

type deduplicator struct {
	repo UpdatesRepository
}

func NewDeduplicator(repo UpdatesRepository) *deduplicator {
	return &deduplicator{repo: repo}
}

// IsDuplicate reports whether updateID was already processed for the chat and records it otherwise.
func (d *deduplicator) IsDuplicate(ctx context.Context, chatID int64, updateID int) (bool, error) {
	accepted, err := d.repo.Advance(ctx, chatID, updateID)
	if err != nil {
		return false, fmt.Errorf("checking update %d: %w", updateID, err)
	}

	if !accepted {
		slog.InfoContext(ctx, "Skipping duplicate update", "chatID", chatID, "updateID", updateID)
	}

	return !accepted, nil
}
