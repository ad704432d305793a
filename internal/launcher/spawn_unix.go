//go:build !windows

package launcher

import "syscall"

// browserSysProcAttr returns the SysProcAttr for spawning a browser.
// On Unix, the browser gets its own process group so it survives the
// CLI or server process that launched it.
func browserSysProcAttr() *syscall.SysProcAttr {
	return &syscall.SysProcAttr{
		Setpgid: true,
	}
}
