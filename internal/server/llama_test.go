package server

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/probelab/interview-cli/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommandRequiresModelPath(t *testing.T) {
	t.Parallel()

	launcher := &Launcher{Config: config.ServerConfig{}, StateDir: t.TempDir()}
	_, err := launcher.command()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "server.model_path")
}

func TestCommandRejectsMissingModelFile(t *testing.T) {
	t.Parallel()

	launcher := &Launcher{
		Config:   config.ServerConfig{ModelPath: filepath.Join(t.TempDir(), "missing.gguf")},
		StateDir: t.TempDir(),
	}
	_, err := launcher.command()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "model file not found")
}

func TestCommandBuildsLlamaServerArgs(t *testing.T) {
	t.Parallel()

	modelPath := filepath.Join(t.TempDir(), "model.gguf")
	require.NoError(t, os.WriteFile(modelPath, []byte("gguf"), 0o644))

	launcher := &Launcher{
		Config: config.ServerConfig{
			ModelPath: modelPath,
			GPULayers: -1,
			CtxSize:   4096,
			Batch:     512,
			Threads:   8,
			Host:      "127.0.0.1",
			Port:      8080,
		},
		StateDir: t.TempDir(),
	}

	cmd, err := launcher.command()
	require.NoError(t, err)
	assert.Contains(t, cmd.Args, "--model")
	assert.Contains(t, cmd.Args, modelPath)
	assert.Contains(t, cmd.Args, "--n-gpu-layers")
	assert.Contains(t, cmd.Args, "-1")
	assert.Contains(t, cmd.Args, "--port")
	assert.Contains(t, cmd.Args, "8080")
}

func TestCommandOverrideSplitsFields(t *testing.T) {
	t.Parallel()

	launcher := &Launcher{
		Config:   config.ServerConfig{Command: "python3 -m llama_cpp.server --port 9090"},
		StateDir: t.TempDir(),
	}

	cmd, err := launcher.command()
	require.NoError(t, err)
	assert.Equal(t, []string{"python3", "-m", "llama_cpp.server", "--port", "9090"}, cmd.Args)
}

func TestRunningReportsZeroWithoutPIDFile(t *testing.T) {
	t.Parallel()

	launcher := &Launcher{StateDir: t.TempDir()}
	assert.Equal(t, 0, launcher.Running())
}

func TestStopIgnoresStalePIDFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	launcher := &Launcher{StateDir: dir}
	require.NoError(t, os.WriteFile(filepath.Join(dir, pidFileName), []byte("not-a-pid"), 0o644))

	require.NoError(t, launcher.Stop())
}
