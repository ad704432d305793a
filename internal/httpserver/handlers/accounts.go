package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/skulk-project/skulk/internal/account"
	"github.com/skulk-project/skulk/internal/errcode"
	"github.com/skulk-project/skulk/internal/httpserver/deps"
	"github.com/skulk-project/skulk/internal/profile"
)

// accountView is an account plus its derived running state. The
// registry never stores the flag; it is probed per response.
type accountView struct {
	account.Account
	Running bool `json:"running"`
}

func view(d deps.Deps, acc account.Account) accountView {
	return accountView{Account: acc, Running: d.Launcher.Running(acc)}
}

// decodePayload reads a JSON body into p. An absent body decodes as
// the empty payload so validation reports the missing fields; a body
// that is not valid JSON for the payload shape is rejected outright.
func decodePayload(r *http.Request, p *account.Payload) error {
	err := json.NewDecoder(r.Body).Decode(p)
	if err != nil && !errors.Is(err, io.EOF) {
		return errcode.New(errcode.Validation, "invalid JSON body")
	}
	return nil
}

// AccountList returns every account with derived running state.
func AccountList(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		accounts, err := d.Store.Load()
		if err != nil {
			respondError(w, err)
			return
		}
		views := make([]accountView, 0, len(accounts))
		for _, acc := range accounts {
			views = append(views, view(d, acc))
		}
		respondOK(w, map[string]interface{}{"accounts": views})
	}
}

// AccountGet returns a single account by id.
func AccountGet(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		accounts, err := d.Store.Load()
		if err != nil {
			respondError(w, err)
			return
		}
		target := account.Find(accounts, chi.URLParam(r, "id"))
		if target == nil {
			respondNotFound(w)
			return
		}
		respondOK(w, map[string]interface{}{"account": view(d, *target)})
	}
}

// AccountCreate validates a full payload, appends the account, and
// provisions its profile directory. The response omits the running
// field; a fresh account is never running.
func AccountCreate(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var p account.Payload
		if err := decodePayload(r, &p); err != nil {
			respondError(w, err)
			return
		}
		acc, err := d.Store.Create(p)
		if err != nil {
			respondError(w, err)
			return
		}
		if err := profile.Ensure(*acc); err != nil {
			respondError(w, errcode.Wrap(errcode.LaunchFailure, "preparing profile", err))
			return
		}
		d.Logger.Infof("created account %s", acc.ID)
		respondOK(w, map[string]interface{}{"account": acc})
	}
}

// AccountUpdate applies a partial payload. The stored version is
// checked only when the payload carries one; a mismatch names both
// versions in the conflict response and leaves the registry untouched.
func AccountUpdate(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		var p account.Payload
		if err := decodePayload(r, &p); err != nil {
			respondError(w, err)
			return
		}
		updated, err := d.Store.Update(id, p, p.Version != nil)
		if err != nil {
			var conflict *account.ConflictError
			switch {
			case errors.As(err, &conflict):
				respondCoded(w, http.StatusConflict, errcode.VersionConflict,
					"version conflict", map[string]int{
						"expected_version": conflict.Expected,
						"actual_version":   conflict.Actual,
					})
			case errcode.Is(err, errcode.NotFoundCode):
				respondNotFound(w)
			default:
				respondError(w, err)
			}
			return
		}
		if err := profile.Ensure(*updated); err != nil {
			respondError(w, errcode.Wrap(errcode.LaunchFailure, "preparing profile", err))
			return
		}
		d.Logger.Infof("updated account %s", id)
		respondOK(w, map[string]interface{}{"account": view(d, *updated)})
	}
}

// AccountDelete removes the account and optionally its profile
// directory. Deleting an absent id still settles the registry file
// and reports already_deleted.
func AccountDelete(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		deleteProfile := strings.EqualFold(r.URL.Query().Get("delete_profile"), "true")

		removed, err := d.Store.Delete(id)
		if err != nil {
			respondError(w, err)
			return
		}

		profileDir := d.Workspace.ProfileDir(id)
		result := "already_deleted"
		if removed != nil {
			profileDir = removed.ProfileDir
			result = "deleted"
		}
		if deleteProfile {
			d.Workspace.RemoveProfile(profileDir)
		}
		d.Logger.Infof("deleted account %s (profile removed: %v)", id, deleteProfile)
		respondOK(w, map[string]interface{}{"result": result, "delete_profile": deleteProfile})
	}
}
