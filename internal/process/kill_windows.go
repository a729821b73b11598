//go:build windows

package process

import (
	"os/exec"
	"strconv"
	"syscall"
)

// KillProcessGroup kills pid and its children with taskkill (/T tree, /F force).
func KillProcessGroup(pid int) {
	if pid <= 0 {
		return
	}
	// launcher.Kill() is the fallback, so the error is dropped.
	_ = exec.Command("taskkill", "/F", "/T", "/PID", strconv.Itoa(pid)).Run()
}

// Detach starts cmd in a new process group so console Ctrl-C events
// do not reach the launched viewer.
func Detach(cmd *exec.Cmd) {
	if cmd.SysProcAttr == nil {
		cmd.SysProcAttr = &syscall.SysProcAttr{}
	}
	cmd.SysProcAttr.CreationFlags |= syscall.CREATE_NEW_PROCESS_GROUP
}
