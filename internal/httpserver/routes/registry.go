// Package routes wires URL patterns to handlers. Each route file
// registers itself from init, so adding an endpoint never touches the
// server setup.
package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/skulk-project/skulk/internal/httpserver/deps"
)

// Registrar attaches a group of endpoints to the router.
type Registrar func(r chi.Router, d deps.Deps)

var registrars []Registrar

// Register queues a registrar, optionally scoped to extra
// middlewares applied only to its endpoints.
func Register(reg Registrar, mws ...func(http.Handler) http.Handler) {
	if len(mws) > 0 {
		inner := reg
		reg = func(r chi.Router, d deps.Deps) { inner(r.With(mws...), d) }
	}
	registrars = append(registrars, reg)
}

// Mount runs every queued registrar against the router. server.New
// calls it once.
func Mount(r chi.Router, d deps.Deps) {
	for _, reg := range registrars {
		reg(r, d)
	}
}
