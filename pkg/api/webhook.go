package api

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/go-chi/chi/v5"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/dskvich/capture-telegram-bot/pkg/api/response"
	"github.com/dskvich/capture-telegram-bot/pkg/auth"
	"github.com/dskvich/capture-telegram-bot/pkg/logger"
)

const maxUpdateSize = 1 << 20

type webhook struct {
	bots   map[string]Bot
	writer response.JSONResponseWriter
}

func newWebhook(bots map[string]Bot) *webhook {
	return &webhook{bots: bots}
}

// Receive always answers 200 once the secret matched, so Telegram does not redeliver
// updates that failed for reasons a retry would not fix.
func (h *webhook) Receive(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "bot")

	bot, ok := h.bots[name]
	if !ok || !auth.ValidSecret(chi.URLParam(r, "token"), bot.Token) {
		slog.WarnContext(r.Context(), "Rejected webhook call", "bot", name, "remote", r.RemoteAddr)
		http.NotFound(w, r)
		return
	}

	ctx := logger.ContextWithBot(r.Context(), bot.Name)

	defer func() {
		if rec := recover(); rec != nil {
			slog.ErrorContext(ctx, "Panic while handling update", "panic", rec, "stack", string(debug.Stack()))
		}
		h.writer.WriteEmptyResponse(w)
	}()

	var update tgbotapi.Update
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxUpdateSize)).Decode(&update); err != nil {
		slog.WarnContext(ctx, "Decoding update", logger.Err(err))
		return
	}

	if err := bot.Handler.HandleUpdate(ctx, &update); err != nil {
		slog.ErrorContext(ctx, "Handling update", "updateID", update.UpdateID, logger.Err(err))
	}
}
