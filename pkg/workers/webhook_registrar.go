package workers

import (
	"context"
	"log/slog"

	"github.com/dskvich/capture-telegram-bot/pkg/api"
	"github.com/dskvich/capture-telegram-bot/pkg/logger"
)

type webhookRegistrar struct {
	serverURL string
	bots      []api.Bot
}

// NewWebhookRegistrar points every bot's webhook at serverURL once on startup.
func NewWebhookRegistrar(serverURL string, bots []api.Bot) *webhookRegistrar {
	return &webhookRegistrar{
		serverURL: api.NormalizeServerURL(serverURL),
		bots:      bots,
	}
}

func (w *webhookRegistrar) Name() string { return "webhook_registrar" }

// Start never fails: a bot whose registration was rejected can still be fixed through /{bot}/setWebhook.
func (w *webhookRegistrar) Start(ctx context.Context) error {
	for _, bot := range w.bots {
		if ctx.Err() != nil {
			return nil
		}

		ctx := logger.ContextWithBot(ctx, bot.Name)

		resp, err := bot.Registrar.SetWebhook(api.WebhookURL(w.serverURL, bot.Name, bot.Token))
		if err != nil {
			slog.ErrorContext(ctx, "Registering webhook", logger.Err(err))
			continue
		}

		slog.InfoContext(ctx, "Webhook registered", "description", resp.Description)
	}
	return nil
}
