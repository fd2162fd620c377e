package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/samber/lo"
)

func NewRouter(bots []Bot) http.Handler {
	byName := lo.KeyBy(bots, func(b Bot) string { return b.Name })

	hook := newWebhook(byName)
	registration := newWebhookRegistration(byName)

	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	r.Get("/ping", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("pong"))
	})
	r.Get("/setWebhooks", registration.SetAll)

	r.Route("/{bot}", func(r chi.Router) {
		r.Post("/webhook/{token}", hook.Receive)
		r.Get("/setWebhook", registration.SetOne)
	})

	return r
}
