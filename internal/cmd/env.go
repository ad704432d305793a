package cmd

import (
	"github.com/skulk-project/skulk/internal/account"
	"github.com/skulk-project/skulk/internal/config"
	"github.com/skulk-project/skulk/internal/launcher"
	"github.com/skulk-project/skulk/internal/logger"
	"github.com/skulk-project/skulk/internal/probe"
	"github.com/skulk-project/skulk/internal/workspace"
)

// cliEnv bundles the objects most commands need. It is rebuilt per
// invocation so SKULK_* environment changes always take effect.
type cliEnv struct {
	cfg   *config.Config
	ws    *workspace.Workspace
	store *account.Store
}

func loadEnv() (*cliEnv, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	ws := workspace.New(cfg.DataDir)
	return &cliEnv{
		cfg:   cfg,
		ws:    ws,
		store: account.NewStore(ws),
	}, nil
}

// newLauncher builds a launcher for one-shot CLI use. Lifecycle
// commands report through stdout and the exit code, so the launcher's
// own logger is a no-op here; `skulk serve` wires the real one.
func (e *cliEnv) newLauncher() *launcher.Launcher {
	return launcher.New(probe.New(), e.ws, logger.NewNop(), e.cfg.BrowserCmd, e.cfg.Display)
}
