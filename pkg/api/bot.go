package api

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

type UpdateHandler interface {
	HandleUpdate(ctx context.Context, update *tgbotapi.Update) error
}

type WebhookRegistrar interface {
	SetWebhook(url string) (*tgbotapi.APIResponse, error)
}

// Bot is one webhook endpoint. Token doubles as the secret path segment.
type Bot struct {
	Name      string
	Token     string
	Handler   UpdateHandler
	Registrar WebhookRegistrar
}
