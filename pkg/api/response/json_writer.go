package response

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/dskvich/capture-telegram-bot/pkg/logger"
)

type ErrorResponse struct {
	Error string `json:"error"`
}

type JSONResponseWriter struct{}

func (j JSONResponseWriter) WriteSuccessResponse(w http.ResponseWriter, data any) {
	j.write(w, http.StatusOK, data)
}

func (j JSONResponseWriter) WriteErrorResponse(w http.ResponseWriter, statusCode int, message string) {
	j.write(w, statusCode, ErrorResponse{Error: message})
}

// WriteEmptyResponse acknowledges a webhook delivery. Telegram only looks at the status code.
func (j JSONResponseWriter) WriteEmptyResponse(w http.ResponseWriter) {
	w.WriteHeader(http.StatusOK)
}

func (j JSONResponseWriter) write(w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("Encoding response", "status", statusCode, logger.Err(err))
	}
}
