//go:build windows

package process

import (
	"os/exec"
	"strconv"
)

// KillProcessGroup terminates pid and its child processes with taskkill.
// Non-positive pids are ignored.
func KillProcessGroup(pid int) {
	if pid <= 0 {
		return
	}
	// /F forces termination, /T includes the process tree.
	_ = exec.Command("taskkill", "/F", "/T", "/PID", strconv.Itoa(pid)).Run()
}
