// Package deps carries the shared dependencies handed to every route
// registrar and handler.
package deps

import (
	"github.com/skulk-project/skulk/internal/account"
	"github.com/skulk-project/skulk/internal/health"
	"github.com/skulk-project/skulk/internal/launcher"
	"github.com/skulk-project/skulk/internal/logger"
	"github.com/skulk-project/skulk/internal/workspace"
)

// Launcher is the slice of the browser supervisor the API uses.
type Launcher interface {
	Start(acc account.Account) (launcher.Outcome, error)
	Stop(acc account.Account) (launcher.Outcome, error)
	Running(acc account.Account) bool
	StartAllAutostart(accounts []account.Account) (started, skipped []string)
}

// Clipboard is the shared session clipboard.
type Clipboard interface {
	Read() (string, error)
	Write(content string) error
}

// Health produces the session health snapshot.
type Health interface {
	Check() health.Report
}

// Deps is passed to every registrar at startup.
type Deps struct {
	Logger    logger.Logger
	Store     *account.Store
	Launcher  Launcher
	Clipboard Clipboard
	Health    Health
	Workspace *workspace.Workspace
}
