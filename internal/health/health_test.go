package health

import (
	"errors"
	"testing"

	"github.com/skulk-project/skulk/internal/probe"
)

func TestCheck_AllProcessesUp(t *testing.T) {
	f := probe.NewFake(
		"/usr/bin/Xvnc :1 -geometry 1920x1080 -depth 24",
		"/usr/bin/websockify --web /usr/share/novnc 5901 localhost:5900",
	)

	report := NewChecker(f, ":1", 5901).Check()
	if report.Status != StatusHealthy {
		t.Errorf("Status = %q, want %q", report.Status, StatusHealthy)
	}
	for name, alive := range report.Processes {
		if !alive {
			t.Errorf("process %q reported down", name)
		}
	}
	if report.UptimeSec < 0 {
		t.Errorf("UptimeSec = %d, want >= 0", report.UptimeSec)
	}
}

func TestCheck_MissingProcessDegrades(t *testing.T) {
	f := probe.NewFake("/usr/bin/Xvnc :1 -geometry 1920x1080 -depth 24")

	report := NewChecker(f, ":1", 5901).Check()
	if report.Status != StatusDegraded {
		t.Errorf("Status = %q, want %q", report.Status, StatusDegraded)
	}
	if report.Processes["websockify"] {
		t.Error("websockify reported up with no matching process")
	}
	if !report.Processes["xvnc"] {
		t.Error("xvnc reported down despite matching process")
	}
	if !report.Processes["server"] {
		t.Error("server must always report up")
	}
}

func TestCheck_WrongDisplayDegrades(t *testing.T) {
	f := probe.NewFake(
		"/usr/bin/Xvnc :2 -geometry 1920x1080",
		"/usr/bin/websockify --web /usr/share/novnc 5901 localhost:5900",
	)

	report := NewChecker(f, ":1", 5901).Check()
	if report.Status != StatusDegraded {
		t.Errorf("Status = %q, want %q", report.Status, StatusDegraded)
	}
	if report.Processes["xvnc"] {
		t.Error("xvnc on :2 should not satisfy the :1 pattern")
	}
}

func TestCheck_ProbeErrorDegrades(t *testing.T) {
	f := probe.NewFake()
	f.Err = errors.New("pgrep timed out")

	report := NewChecker(f, ":1", 5901).Check()
	if report.Status != StatusDegraded {
		t.Errorf("Status = %q, want %q", report.Status, StatusDegraded)
	}
}
