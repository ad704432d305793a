package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/skulk-project/skulk/internal/httpserver/deps"
	"github.com/skulk-project/skulk/internal/httpserver/handlers"
)

func init() { Register(registerClipboard) }

func registerClipboard(r chi.Router, d deps.Deps) {
	r.Get("/api/clipboard", handlers.ClipboardGet(d))
	r.Post("/api/clipboard", handlers.ClipboardSet(d))
}
