package e2e

import (
	"bytes"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"os/exec"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSmokeFlow(t *testing.T) {
	home := t.TempDir()
	binaryPath := buildBinary(t)

	var calls atomic.Int32
	inference := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		count := calls.Add(1)
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{"choices":[{"message":{"role":"assistant","content":"Answer %d"}}]}`, count)
	}))
	t.Cleanup(inference.Close)

	outputDir := filepath.Join(home, "interviews")
	require.NoError(t, writeConfigFixture(home, inference.URL, outputDir))

	stdout, stderr, err := runIV(t, binaryPath, home, "interview", "smoke/test_model", "--no-notify")
	require.NoError(t, err, "stderr: %s", stderr)
	assert.Contains(t, stdout, "Interview complete: smoke/test_model")
	assert.EqualValues(t, 10, calls.Load())

	report, err := os.ReadFile(filepath.Join(outputDir, "interview-smoke-test-model.md"))
	require.NoError(t, err)
	assert.Contains(t, string(report), "# Interview: smoke/test_model")
	assert.Contains(t, string(report), "**Status:** Complete (10/10 questions)")

	stdout, stderr, err = runIV(t, binaryPath, home, "history")
	require.NoError(t, err, "stderr: %s", stderr)
	assert.Contains(t, stdout, "smoke/test_model")
}

func buildBinary(t *testing.T) string {
	t.Helper()

	binaryPath := filepath.Join(t.TempDir(), "iv-e2e")
	cmd := exec.Command("go", "build", "-o", binaryPath, "./cmd/iv")
	cmd.Dir = repoRoot(t)

	output, err := cmd.CombinedOutput()
	require.NoError(t, err, "build iv binary: %s", string(output))
	return binaryPath
}

func runIV(t *testing.T, binaryPath, home string, args ...string) (string, string, error) {
	t.Helper()

	cmd := exec.Command(binaryPath, args...)
	cmd.Env = append(os.Environ(), "HOME="+home)

	var stdout bytes.Buffer
	var stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	return stdout.String(), stderr.String(), err
}

func repoRoot(t *testing.T) string {
	t.Helper()

	wd, err := os.Getwd()
	require.NoError(t, err)
	return filepath.Clean(filepath.Join(wd, "..", ".."))
}

func writeConfigFixture(home, inferenceURL, outputDir string) error {
	configDir := filepath.Join(home, ".iv")
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return err
	}

	config := fmt.Sprintf(`[inference]
base_url = %q
request_timeout_seconds = 10

[output]
dir = %q
`, inferenceURL, outputDir)

	return os.WriteFile(filepath.Join(configDir, "config.toml"), []byte(config), 0o644)
}
