//go:build !windows

package process

import "syscall"

// KillProcessGroup sends SIGKILL to the process group led by pid, taking
// the browser's renderer and GPU helpers down with it. Non-positive pids
// are ignored.
func KillProcessGroup(pid int) {
	if pid <= 0 {
		return
	}
	// launcher.Kill still runs afterwards, so the error is dropped.
	_ = syscall.Kill(-pid, syscall.SIGKILL)
}
