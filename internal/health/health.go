// Package health reports liveness of the session's supporting
// processes. The VNC server and the websocket bridge run outside the
// supervisor, so liveness comes from pgrep patterns derived from the
// configured display and port.
package health

import (
	"fmt"
	"time"

	"github.com/skulk-project/skulk/internal/probe"
)

// Status values carried in a Report.
const (
	StatusHealthy  = "healthy"
	StatusDegraded = "degraded"
)

// XvncPattern returns the pgrep pattern matching the session's VNC
// server on the given display.
func XvncPattern(display string) string {
	return "Xvnc " + display
}

// WebsockifyPattern returns the pgrep pattern matching the websocket
// bridge serving the given port.
func WebsockifyPattern(port int) string {
	return fmt.Sprintf("websockify .*%d", port)
}

// Report is the health snapshot served by the admin API.
type Report struct {
	Status    string          `json:"status"`
	UptimeSec int             `json:"uptime_seconds"`
	Processes map[string]bool `json:"processes"`
}

// Checker probes the display stack once per Check call.
type Checker struct {
	probe          probe.Probe
	display        string
	websockifyPort int
	started        time.Time
}

// NewChecker builds a checker for the given display and websockify
// port. Uptime counts from this call.
func NewChecker(p probe.Probe, display string, websockifyPort int) *Checker {
	return &Checker{
		probe:          p,
		display:        display,
		websockifyPort: websockifyPort,
		started:        time.Now(),
	}
}

// Check probes every process and derives the overall status. Degraded
// means at least one process is missing; the registry and API keep
// working either way.
func (c *Checker) Check() Report {
	processes := map[string]bool{
		"xvnc":       c.alive(XvncPattern(c.display)),
		"websockify": c.alive(WebsockifyPattern(c.websockifyPort)),
		// The process answering this call vouches for itself.
		"server": true,
	}

	status := StatusHealthy
	for _, alive := range processes {
		if !alive {
			status = StatusDegraded
			break
		}
	}

	return Report{
		Status:    status,
		UptimeSec: int(time.Since(c.started).Seconds()),
		Processes: processes,
	}
}

func (c *Checker) alive(pattern string) bool {
	running, err := c.probe.IsRunning(pattern)
	if err != nil {
		return false
	}
	return running
}
