package handlers

import (
	"net/http"

	"github.com/skulk-project/skulk/internal/httpserver/deps"
)

// Health reports liveness of the session processes. The status code
// is always 200; a degraded stack shows in the payload.
func Health(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respondOK(w, d.Health.Check())
	}
}
