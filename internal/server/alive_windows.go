//go:build windows

package server

import (
	"os"
	"os/exec"
	"strconv"
	"strings"
)

// processAlive checks whether a process with the given PID is still running.
// os.FindProcess always succeeds on Windows, so ask tasklist instead.
func processAlive(pid int) bool {
	cmd := exec.Command("tasklist", "/FI", "PID eq "+strconv.Itoa(pid), "/NH")
	out, err := cmd.Output()
	if err != nil {
		proc, findErr := os.FindProcess(pid)
		if findErr != nil {
			return false
		}
		return proc.Signal(os.Interrupt) == nil
	}
	return strings.Contains(string(out), strconv.Itoa(pid))
}
