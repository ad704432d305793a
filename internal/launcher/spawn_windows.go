//go:build windows

package launcher

import "syscall"

// browserSysProcAttr returns the SysProcAttr for spawning a browser.
// Windows has no process groups in the Unix sense; CREATE_NEW_PROCESS_GROUP
// keeps the browser detached from the console that launched it. The
// probe side (pgrep/pkill) does not exist on Windows anyway, so this
// path only matters for cross-compilation.
func browserSysProcAttr() *syscall.SysProcAttr {
	return &syscall.SysProcAttr{
		CreationFlags: syscall.CREATE_NEW_PROCESS_GROUP,
	}
}
