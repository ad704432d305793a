package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/skulk-project/skulk/internal/httpserver/deps"
	"github.com/skulk-project/skulk/internal/httpserver/handlers"
)

func init() { Register(registerAccounts) }

func registerAccounts(r chi.Router, d deps.Deps) {
	r.Route("/api/accounts", func(r chi.Router) {
		r.Get("/", handlers.AccountList(d))
		r.Post("/", handlers.AccountCreate(d))
		r.Post("/start_all_autostart", handlers.AccountAutostart(d))
		r.Get("/{id}", handlers.AccountGet(d))
		r.Put("/{id}", handlers.AccountUpdate(d))
		r.Delete("/{id}", handlers.AccountDelete(d))
		r.Post("/{id}/start", handlers.AccountStart(d))
		r.Post("/{id}/stop", handlers.AccountStop(d))
	})
}
