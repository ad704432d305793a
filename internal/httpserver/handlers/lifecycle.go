package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/skulk-project/skulk/internal/account"
	"github.com/skulk-project/skulk/internal/errcode"
	"github.com/skulk-project/skulk/internal/httpserver/deps"
	"github.com/skulk-project/skulk/internal/launcher"
)

// AccountStart launches the account's browser. Starting a running
// account reports already_running and spawns nothing.
func AccountStart(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		accounts, err := d.Store.Load()
		if err != nil {
			respondError(w, err)
			return
		}
		target := account.Find(accounts, id)
		if target == nil {
			respondNotFound(w)
			return
		}

		outcome, err := d.Launcher.Start(*target)
		if err != nil {
			d.Logger.Errorf("launch failed for %s: %v", id, err)
			respondCoded(w, http.StatusInternalServerError, errcode.LaunchFailure,
				"failed to launch browser", map[string]interface{}{
					"account_id": id,
					"reason":     err.Error(),
				})
			return
		}
		respondOK(w, map[string]interface{}{"status": outcome})
	}
}

// AccountStop terminates the account's browser. Stopping an account
// that is not running reports already_stopped.
func AccountStop(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		accounts, err := d.Store.Load()
		if err != nil {
			respondError(w, err)
			return
		}
		target := account.Find(accounts, id)
		if target == nil {
			respondNotFound(w)
			return
		}

		outcome, err := d.Launcher.Stop(*target)
		if err != nil {
			respondError(w, err)
			return
		}
		if outcome == launcher.StopFailed {
			respondCoded(w, http.StatusInternalServerError, errcode.LaunchFailure,
				"failed to stop browser", map[string]interface{}{"account_id": id})
			return
		}
		respondOK(w, map[string]interface{}{"status": outcome})
	}
}

// AccountAutostart starts every account flagged for autostart and
// reports which ids were actually launched.
func AccountAutostart(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		accounts, err := d.Store.Load()
		if err != nil {
			respondError(w, err)
			return
		}
		started, already := d.Launcher.StartAllAutostart(accounts)
		respondOK(w, map[string]interface{}{
			"started":         started,
			"already_running": already,
		})
	}
}
