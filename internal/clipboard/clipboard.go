// Package clipboard reads and writes the X11 CLIPBOARD selection by
// shelling out to xclip. The browser session and the admin API share
// one clipboard this way, which is how text gets in and out of an
// otherwise isolated display.
package clipboard

import (
	"bytes"
	"context"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/skulk-project/skulk/internal/errcode"
)

// DefaultTimeout bounds each xclip invocation. xclip blocks when no
// selection owner answers, so the cap is load-bearing.
const DefaultTimeout = 3 * time.Second

// Clipboard targets the CLIPBOARD selection on a fixed display.
type Clipboard struct {
	Display string
	Timeout time.Duration
}

// New returns a clipboard bound to the given X display.
func New(display string) *Clipboard {
	return &Clipboard{Display: display, Timeout: DefaultTimeout}
}

// Read returns the current clipboard text. A clipboard holding no
// text (xclip reports the STRING target unavailable) reads as "".
func (c *Clipboard) Read() (string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), c.Timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, "xclip", "-selection", "clipboard", "-o")
	cmd.Env = append(os.Environ(), "DISPLAY="+c.Display)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	if ctx.Err() == context.DeadlineExceeded {
		return "", errcode.New(errcode.ClipboardRead, "clipboard read timed out")
	}
	if err != nil {
		msg := strings.TrimSpace(stderr.String())
		if strings.Contains(msg, "target STRING not available") {
			return "", nil
		}
		if msg == "" {
			msg = "xclip read failed"
		}
		return "", errcode.New(errcode.ClipboardRead, msg)
	}
	return stdout.String(), nil
}

// Write replaces the clipboard contents with content.
func (c *Clipboard) Write(content string) error {
	ctx, cancel := context.WithTimeout(context.Background(), c.Timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, "xclip", "-selection", "clipboard", "-i")
	cmd.Env = append(os.Environ(), "DISPLAY="+c.Display)
	cmd.Stdin = strings.NewReader(content)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	err := cmd.Run()
	if ctx.Err() == context.DeadlineExceeded {
		return errcode.New(errcode.ClipboardWrite, "clipboard write timed out")
	}
	if err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			msg = "xclip write failed"
		}
		return errcode.New(errcode.ClipboardWrite, msg)
	}
	return nil
}
