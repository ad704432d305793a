// Package workspace defines the on-disk layout of a skulk data
// directory and helpers to prepare it.
//
// Everything skulk persists lives under a single root (default
// /data):
//
//	<root>/accounts.json       account registry
//	<root>/accounts.json.lock  sidecar write lock
//	<root>/profiles/<id>/      one browser profile per account
//	<root>/logs/launcher.log   browser stdout/stderr
//	<root>/skulk.toml          optional config overrides
package workspace

import (
	"fmt"
	"os"
	"path/filepath"
)

// Workspace resolves paths inside a skulk data directory.
type Workspace struct {
	root string
}

// New returns a workspace rooted at dataDir. The directory is not
// touched until EnsureDirs is called.
func New(dataDir string) *Workspace {
	return &Workspace{root: dataDir}
}

// Root returns the data directory itself.
func (w *Workspace) Root() string { return w.root }

// ProfilesDir returns the directory holding all browser profiles.
func (w *Workspace) ProfilesDir() string {
	return filepath.Join(w.root, "profiles")
}

// ProfileDir returns the profile directory owned by an account id.
// The mapping is pure: the directory for an id is the same whether
// or not the account still exists.
func (w *Workspace) ProfileDir(id string) string {
	return filepath.Join(w.ProfilesDir(), id)
}

// LogDir returns the directory for launcher and server logs.
func (w *Workspace) LogDir() string {
	return filepath.Join(w.root, "logs")
}

// AccountsFile returns the path of the registry file.
func (w *Workspace) AccountsFile() string {
	return filepath.Join(w.root, "accounts.json")
}

// LockFile returns the sidecar lock guarding registry writes. The
// lock is a separate file so the registry itself can be replaced
// atomically by rename without invalidating held locks.
func (w *Workspace) LockFile() string {
	return filepath.Join(w.root, "accounts.json.lock")
}

// LauncherLog returns the append-only log receiving browser output.
func (w *Workspace) LauncherLog() string {
	return filepath.Join(w.LogDir(), "launcher.log")
}

// ConfigFile returns the optional TOML config path.
func (w *Workspace) ConfigFile() string {
	return filepath.Join(w.root, "skulk.toml")
}

// EnsureDirs creates the data, profiles, and logs directories, and
// seeds an empty registry file when none exists.
func (w *Workspace) EnsureDirs() error {
	for _, dir := range []string{w.root, w.ProfilesDir(), w.LogDir()} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating %s: %w", dir, err)
		}
	}
	path := w.AccountsFile()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		if err := os.WriteFile(path, []byte("[]"), 0o644); err != nil {
			return fmt.Errorf("seeding %s: %w", path, err)
		}
	}
	return nil
}

// RemoveProfile deletes an account's profile directory. Removal
// failures do not block account deletion; the return value reports
// whether the directory was present.
func (w *Workspace) RemoveProfile(path string) bool {
	if _, err := os.Stat(path); err != nil {
		return false
	}
	_ = os.RemoveAll(path)
	return true
}
