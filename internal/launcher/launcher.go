// Package launcher supervises one browser process per account.
//
// The launcher never records PIDs. Liveness is derived on demand by
// probing the process table for the account's profile directory, so
// start and stop are idempotent: starting a running account or
// stopping a stopped one reports what was already true instead of
// failing.
package launcher

import (
	"fmt"
	"os"
	"os/exec"
	"time"

	"github.com/skulk-project/skulk/internal/account"
	"github.com/skulk-project/skulk/internal/errcode"
	"github.com/skulk-project/skulk/internal/logger"
	"github.com/skulk-project/skulk/internal/probe"
	"github.com/skulk-project/skulk/internal/profile"
	"github.com/skulk-project/skulk/internal/workspace"
)

// Outcome is the verbatim status string a lifecycle operation
// reports. These strings are surfaced unchanged by the CLI and the
// admin API.
type Outcome string

const (
	Started        Outcome = "started"
	AlreadyRunning Outcome = "already_running"
	Stopped        Outcome = "stopped"
	AlreadyStopped Outcome = "already_stopped"
	StopFailed     Outcome = "stop_failed"
)

// Launcher starts and stops account browsers as detached OS
// processes.
type Launcher struct {
	probe      probe.Probe
	ws         *workspace.Workspace
	log        logger.Logger
	browserCmd string
	display    string

	// Stagger, when positive, is slept after each autostart account
	// in StartAllAutostart to avoid a thundering herd of browsers.
	Stagger time.Duration

	// spawn is swapped out in tests.
	spawn func(acc account.Account) error
}

// New returns a launcher that spawns browserCmd on the given X
// display, logging browser output under the workspace's log dir.
func New(p probe.Probe, ws *workspace.Workspace, log logger.Logger, browserCmd, display string) *Launcher {
	l := &Launcher{
		probe:      p,
		ws:         ws,
		log:        log,
		browserCmd: browserCmd,
		display:    display,
	}
	l.spawn = l.spawnBrowser
	return l
}

// Start provisions the account's profile and launches its browser
// unless one is already running. All failures carry code 1008.
func (l *Launcher) Start(acc account.Account) (Outcome, error) {
	if err := profile.Ensure(acc); err != nil {
		return "", errcode.Wrap(errcode.LaunchFailure, "preparing profile", err)
	}
	running, err := l.probe.IsRunning(acc.ProfileDir)
	if err != nil {
		return "", errcode.Wrap(errcode.LaunchFailure, "probing browser", err)
	}
	if running {
		return AlreadyRunning, nil
	}
	if err := l.spawn(acc); err != nil {
		return "", errcode.Wrap(errcode.LaunchFailure, "spawning browser", err)
	}
	l.log.Info("started browser", logger.String("account", acc.ID))
	return Started, nil
}

// Stop terminates the account's browser. A browser that is not
// running reports AlreadyStopped; a kill that matches nothing or
// fails reports StopFailed without an error, and the admin API maps
// that outcome to a 500.
func (l *Launcher) Stop(acc account.Account) (Outcome, error) {
	running, err := l.probe.IsRunning(acc.ProfileDir)
	if err != nil {
		return "", errcode.Wrap(errcode.LaunchFailure, "probing browser", err)
	}
	if !running {
		return AlreadyStopped, nil
	}
	matched, err := l.probe.Terminate(acc.ProfileDir)
	if err != nil {
		l.log.Warn("terminate failed", logger.String("account", acc.ID), logger.Error(err))
		return StopFailed, nil
	}
	if !matched {
		return StopFailed, nil
	}
	l.log.Info("stopped browser", logger.String("account", acc.ID))
	return Stopped, nil
}

// Running reports the derived running state for display purposes.
// Probe failures degrade to false so a broken pgrep never breaks a
// read path.
func (l *Launcher) Running(acc account.Account) bool {
	running, err := l.probe.IsRunning(acc.ProfileDir)
	if err != nil {
		l.log.Debug("probe failed", logger.String("account", acc.ID), logger.Error(err))
		return false
	}
	return running
}

// StartAllAutostart starts every account marked autostart and
// buckets ids by result: freshly started versus skipped (already
// running, or failed to spawn). A failing account logs and lands in
// skipped; it never aborts the batch.
func (l *Launcher) StartAllAutostart(accounts []account.Account) (started, skipped []string) {
	started = []string{}
	skipped = []string{}
	for _, acc := range accounts {
		if !acc.Autostart {
			continue
		}
		outcome, err := l.Start(acc)
		switch {
		case err != nil:
			l.log.Warn("autostart failed", logger.String("account", acc.ID), logger.Error(err))
			skipped = append(skipped, acc.ID)
		case outcome == Started:
			started = append(started, acc.ID)
		default:
			skipped = append(skipped, acc.ID)
		}
		if l.Stagger > 0 {
			time.Sleep(l.Stagger)
		}
	}
	return started, skipped
}

func (l *Launcher) spawnBrowser(acc account.Account) error {
	if err := os.MkdirAll(l.ws.LogDir(), 0o755); err != nil {
		return fmt.Errorf("creating log dir: %w", err)
	}
	logFile, err := os.OpenFile(l.ws.LauncherLog(), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("opening launcher log: %w", err)
	}
	defer logFile.Close()

	args := []string{"--no-remote", "--profile", acc.ProfileDir}
	if acc.DefaultURL != "" {
		args = append(args, acc.DefaultURL)
	}
	cmd := exec.Command(l.browserCmd, args...)
	cmd.Env = append(os.Environ(), "DISPLAY="+l.display)
	cmd.Stdout = logFile
	cmd.Stderr = logFile
	cmd.SysProcAttr = browserSysProcAttr()
	if err := cmd.Start(); err != nil {
		return err
	}
	// Reap the child when it exits; nothing else waits on it.
	go func() { _ = cmd.Wait() }()
	return nil
}
