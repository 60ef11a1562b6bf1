// Package server launches and stops the local GPU inference server (a
// llama.cpp OpenAI-compatible server). It is a process wrapper: the server
// itself is third-party.
package server

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/probelab/interview-cli/internal/config"
)

const (
	pidFileName    = "inference-server.pid"
	logFileName    = "inference-server.log"
	stopTimeout    = 5 * time.Second
	defaultCommand = "llama-server"
)

// Launcher manages the inference-server process. stateDir holds the PID file
// and the server's combined output log.
type Launcher struct {
	Config   config.ServerConfig
	StateDir string
}

// Start verifies the model file, launches the server detached from the
// caller's stdio, and writes the PID file. The server's output goes to
// inference-server.log under the state directory.
func (l *Launcher) Start() (int, error) {
	if pid := l.readPID(); pid > 0 && processAlive(pid) {
		return 0, fmt.Errorf("inference server already running with pid %d", pid)
	}

	cmd, err := l.command()
	if err != nil {
		return 0, err
	}

	if err := os.MkdirAll(l.StateDir, 0o755); err != nil {
		return 0, fmt.Errorf("create state directory: %w", err)
	}

	logFile, err := os.OpenFile(
		filepath.Join(l.StateDir, logFileName),
		os.O_CREATE|os.O_WRONLY|os.O_APPEND,
		0o644,
	)
	if err != nil {
		return 0, fmt.Errorf("open inference server log: %w", err)
	}
	cmd.Stdout = logFile
	cmd.Stderr = logFile

	if err := cmd.Start(); err != nil {
		_ = logFile.Close()
		return 0, fmt.Errorf("start inference server: %w", err)
	}

	if err := l.writePID(cmd.Process.Pid); err != nil {
		_ = cmd.Process.Kill()
		_ = logFile.Close()
		return 0, fmt.Errorf("write inference server pid file: %w", err)
	}

	pid := cmd.Process.Pid

	// The process outlives this invocation; release instead of waiting.
	_ = cmd.Process.Release()
	_ = logFile.Close()

	return pid, nil
}

// Stop signals the recorded process and waits for it to exit, force-killing
// after a bounded grace period. Missing or stale PID files are not errors.
func (l *Launcher) Stop() error {
	pid := l.readPID()
	if pid <= 0 {
		return nil
	}

	proc, err := os.FindProcess(pid)
	if err != nil {
		_ = l.removePID()
		return nil
	}

	if err := proc.Signal(os.Interrupt); err != nil {
		_ = l.removePID()
		return nil
	}

	deadline := time.Now().Add(stopTimeout)
	for time.Now().Before(deadline) {
		if !processAlive(pid) {
			_ = l.removePID()
			return nil
		}
		time.Sleep(100 * time.Millisecond)
	}

	_ = proc.Kill()
	_ = l.removePID()
	return nil
}

// Running reports the PID of a live inference server, or 0.
func (l *Launcher) Running() int {
	pid := l.readPID()
	if pid > 0 && processAlive(pid) {
		return pid
	}
	return 0
}

func (l *Launcher) command() (*exec.Cmd, error) {
	if parts := strings.Fields(l.Config.Command); len(parts) > 0 {
		return exec.Command(parts[0], parts[1:]...), nil
	}

	if l.Config.ModelPath == "" {
		return nil, fmt.Errorf("server.model_path is required to launch the inference server")
	}
	if _, err := os.Stat(l.Config.ModelPath); err != nil {
		return nil, fmt.Errorf("model file not found: %s", l.Config.ModelPath)
	}

	args := []string{
		"--model", l.Config.ModelPath,
		"--n-gpu-layers", strconv.Itoa(l.Config.GPULayers),
		"--ctx-size", strconv.Itoa(l.Config.CtxSize),
		"--batch-size", strconv.Itoa(l.Config.Batch),
		"--threads", strconv.Itoa(l.Config.Threads),
		"--host", l.Config.Host,
		"--port", strconv.Itoa(l.Config.Port),
	}

	return exec.Command(defaultCommand, args...), nil
}

func (l *Launcher) pidPath() string {
	return filepath.Join(l.StateDir, pidFileName)
}

func (l *Launcher) writePID(pid int) error {
	return os.WriteFile(l.pidPath(), []byte(strconv.Itoa(pid)), 0o644)
}

func (l *Launcher) readPID() int {
	data, err := os.ReadFile(l.pidPath())
	if err != nil {
		return -1
	}

	pid, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil {
		return -1
	}

	return pid
}

func (l *Launcher) removePID() error {
	return os.Remove(l.pidPath())
}
