// Package account implements the browser-account registry: the
// account data model, payload validation, and a JSON-file store with
// optimistic concurrency.
//
// Accounts are plain records. Whether an account's browser is running
// is never stored here; it is derived on demand by probing the
// process table for the account's profile directory (see the probe
// package).
package account

import (
	"fmt"
	"path/filepath"

	"github.com/skulk-project/skulk/internal/errcode"
)

// Proxy is one proxy endpoint within an account's proxy map.
type Proxy struct {
	Host     string `json:"host"`
	Port     int    `json:"port"`
	Username string `json:"username"`
	Password string `json:"password"`
}

// Account is a single registry entry. ID and ProfileDir are assigned
// at creation and never change; Version starts at 1 and increments
// by one on every successful update.
type Account struct {
	ID         string           `json:"id"`
	Name       string           `json:"name"`
	ProfileDir string           `json:"profile_dir"`
	Proxy      map[string]Proxy `json:"proxy"`
	Autostart  bool             `json:"autostart"`
	DefaultURL string           `json:"default_url"`
	Notes      string           `json:"notes"`
	Version    int              `json:"version"`
}

// New builds a fresh account from a cleaned full payload. The caller
// must have run Validate with partial=false first. The profile
// directory is derived from the generated id under profilesDir.
func New(p Payload, profilesDir string) Account {
	id := NewID()
	acc := Account{
		ID:         id,
		ProfileDir: filepath.Join(profilesDir, id),
		Proxy:      map[string]Proxy{},
		Version:    1,
	}
	if p.Name != nil {
		acc.Name = *p.Name
	}
	if p.Proxy != nil {
		acc.Proxy = p.Proxy
	}
	if p.Autostart != nil {
		acc.Autostart = *p.Autostart
	}
	if p.DefaultURL != nil {
		acc.DefaultURL = *p.DefaultURL
	}
	if p.Notes != nil {
		acc.Notes = *p.Notes
	}
	return acc
}

// Apply merges a cleaned partial payload into acc and bumps the
// version. When checkVersion is set and the payload carries a
// version, a mismatch with the stored version fails with
// *ConflictError before anything is merged. ID and ProfileDir are
// never touched.
func Apply(acc *Account, p Payload, checkVersion bool) error {
	if checkVersion && p.Version != nil && acc.Version != *p.Version {
		return &ConflictError{Expected: *p.Version, Actual: acc.Version}
	}
	if p.Name != nil {
		acc.Name = *p.Name
	}
	if p.Proxy != nil {
		acc.Proxy = p.Proxy
	}
	if p.Autostart != nil {
		acc.Autostart = *p.Autostart
	}
	if p.DefaultURL != nil {
		acc.DefaultURL = *p.DefaultURL
	}
	if p.Notes != nil {
		acc.Notes = *p.Notes
	}
	// A hand-edited record missing its version reads as 0; it counts
	// as version 1, so the bump lands on 2.
	if acc.Version < 1 {
		acc.Version = 1
	}
	acc.Version++
	return nil
}

// Find returns a pointer to the account with the given id, or nil.
// The pointer aliases the slice element so callers can mutate in
// place before saving.
func Find(accounts []Account, id string) *Account {
	for i := range accounts {
		if accounts[i].ID == id {
			return &accounts[i]
		}
	}
	return nil
}

// ConflictError reports a failed optimistic concurrency check: the
// version the caller expected against the version actually stored.
type ConflictError struct {
	Expected int
	Actual   int
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("version conflict: expected %d, actual %d", e.Expected, e.Actual)
}

// Unwrap ties the conflict into the coded-error taxonomy, so
// errcode.Code and errcode.HTTPStatus see 1007 through the chain.
func (e *ConflictError) Unwrap() error {
	return errcode.Conflict(e.Expected, e.Actual)
}
