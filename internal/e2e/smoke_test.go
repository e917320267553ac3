package e2e

import (
	"bytes"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSmokeFlow(t *testing.T) {
	home := t.TempDir()
	binaryPath := buildBinary(t)

	stdout, stderr, err := runOrderbot(t, binaryPath, home,
		"Acme\nPen\n4.5\n10\n/stop\n",
		"chat", "--conversation", "smoke",
	)
	require.NoError(t, err, "stderr: %s", stderr)
	assert.Contains(t, stdout, "Buyer saved: Acme")
	assert.Contains(t, stdout, "45 000")
	assert.Contains(t, stdout, "Final receipt:")

	_, err = os.Stat(filepath.Join(home, ".orderbot", "orders.xlsx"))
	require.NoError(t, err)

	stdout, stderr, err = runOrderbot(t, binaryPath, home, "", "orders", "list")
	require.NoError(t, err, "stderr: %s", stderr)
	assert.Contains(t, stdout, "Acme")
	assert.Contains(t, stdout, "45 000")
}

func buildBinary(t *testing.T) string {
	t.Helper()

	binaryPath := filepath.Join(t.TempDir(), "orderbot-e2e")
	cmd := exec.Command("go", "build", "-o", binaryPath, "./cmd/orderbot")
	cmd.Dir = repoRoot(t)

	output, err := cmd.CombinedOutput()
	require.NoError(t, err, "build orderbot binary: %s", string(output))
	return binaryPath
}

func runOrderbot(t *testing.T, binaryPath, home, input string, args ...string) (string, string, error) {
	t.Helper()

	cmd := exec.Command(binaryPath, args...)
	cmd.Env = append(os.Environ(), "HOME="+home)
	cmd.Stdin = strings.NewReader(input)

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
