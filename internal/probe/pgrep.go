package probe

import (
	"context"
	"fmt"
	"os/exec"
	"time"
)

// DefaultTimeout bounds a single pgrep or pkill invocation.
const DefaultTimeout = 3 * time.Second

// PgrepProbe implements Probe by shelling out to pgrep and pkill
// with -f (full command line) matching.
type PgrepProbe struct {
	// Timeout overrides DefaultTimeout when positive.
	Timeout time.Duration
}

// New returns a pgrep-backed probe with the default timeout.
func New() *PgrepProbe {
	return &PgrepProbe{}
}

func (p *PgrepProbe) timeout() time.Duration {
	if p.Timeout > 0 {
		return p.Timeout
	}
	return DefaultTimeout
}

// IsRunning runs pgrep -f fragment. Exit 0 means a match, exit 1
// means none; anything else (including a timeout) is an error.
func (p *PgrepProbe) IsRunning(fragment string) (bool, error) {
	ctx, cancel := context.WithTimeout(context.Background(), p.timeout())
	defer cancel()

	err := exec.CommandContext(ctx, "pgrep", "-f", fragment).Run()
	if err == nil {
		return true, nil
	}
	if ctx.Err() != nil {
		return false, fmt.Errorf("pgrep timed out after %s", p.timeout())
	}
	if exitErr, ok := err.(*exec.ExitError); ok && exitErr.ExitCode() == 1 {
		return false, nil
	}
	return false, fmt.Errorf("pgrep failed: %w", err)
}

// Terminate runs pkill -f fragment. Exit 0 reports true (something
// was signaled), exit 1 reports false (nothing matched); anything
// else is an error.
func (p *PgrepProbe) Terminate(fragment string) (bool, error) {
	ctx, cancel := context.WithTimeout(context.Background(), p.timeout())
	defer cancel()

	err := exec.CommandContext(ctx, "pkill", "-f", fragment).Run()
	if err == nil {
		return true, nil
	}
	if ctx.Err() != nil {
		return false, fmt.Errorf("pkill timed out after %s", p.timeout())
	}
	if exitErr, ok := err.(*exec.ExitError); ok && exitErr.ExitCode() == 1 {
		return false, nil
	}
	return false, fmt.Errorf("pkill failed: %w", err)
}
