//go:build !windows

package process

import (
	"os/exec"
	"syscall"
)

// KillProcessGroup sends SIGKILL to the process group of pid.
// Non-positive PIDs are ignored: -0 would target our own group.
func KillProcessGroup(pid int) {
	if pid <= 0 {
		return
	}
	// launcher.Kill() is the fallback, so the error is dropped.
	_ = syscall.Kill(-pid, syscall.SIGKILL)
}

// Detach starts cmd in its own process group so a viewer outlives the CLI
// and is not hit by a Ctrl-C sent to the terminal.
func Detach(cmd *exec.Cmd) {
	if cmd.SysProcAttr == nil {
		cmd.SysProcAttr = &syscall.SysProcAttr{}
	}
	cmd.SysProcAttr.Setpgid = true
}
