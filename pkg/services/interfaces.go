package services

import (
	"context"

	"github.com/dskvich/capture-telegram-bot/pkg/domain"
)

type Responder interface {
	SendText(ctx context.Context, chatID int64, text string)
	SendDocument(ctx context.Context, chatID int64, result domain.CaptureResult)
	SendMenu(ctx context.Context, chatID int64, keyboard domain.Keyboard)
	EditMenu(ctx context.Context, chatID int64, messageID int, keyboard domain.Keyboard)
	AnswerCallback(ctx context.Context, callbackID, text string, alert bool)
	DeleteMessage(ctx context.Context, chatID int64, messageID int)
}
