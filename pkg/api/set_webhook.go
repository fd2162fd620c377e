package api

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/dskvich/capture-telegram-bot/pkg/api/response"
	"github.com/dskvich/capture-telegram-bot/pkg/logger"
)

type webhookRegistration struct {
	bots   map[string]Bot
	writer response.JSONResponseWriter
}

func newWebhookRegistration(bots map[string]Bot) *webhookRegistration {
	return &webhookRegistration{bots: bots}
}

// SetOne registers the webhook of one bot under the host and path prefix the request came through.
func (h *webhookRegistration) SetOne(w http.ResponseWriter, r *http.Request) {
	bot, ok := h.bots[chi.URLParam(r, "bot")]
	if !ok {
		h.writer.WriteErrorResponse(w, http.StatusNotFound, "unknown bot")
		return
	}

	base := publicBase(r, "/"+bot.Name+"/setWebhook")
	h.writer.WriteSuccessResponse(w, h.register(r, bot, base))
}

func (h *webhookRegistration) SetAll(w http.ResponseWriter, r *http.Request) {
	base := publicBase(r, "/setWebhooks")

	results := make(map[string]any, len(h.bots))
	for name, bot := range h.bots {
		results[name] = h.register(r, bot, base)
	}

	h.writer.WriteSuccessResponse(w, results)
}

func (h *webhookRegistration) register(r *http.Request, bot Bot, base string) any {
	url := WebhookURL(base, bot.Name, bot.Token)

	resp, err := bot.Registrar.SetWebhook(url)
	if err != nil {
		slog.ErrorContext(r.Context(), "Registering webhook", "bot", bot.Name, logger.Err(err))
		if resp == nil {
			return response.ErrorResponse{Error: err.Error()}
		}
	} else {
		slog.InfoContext(r.Context(), "Webhook registered", "bot", bot.Name)
	}

	return resp
}

func publicBase(r *http.Request, route string) string {
	prefix := strings.TrimSuffix(r.URL.Path, route)
	return NormalizeServerURL(r.Host + prefix)
}
