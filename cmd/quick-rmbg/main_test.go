package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func executeCommand(t *testing.T, args ...string) error {
	t.Helper()

	// Keep config and history out of the real home directory.
	t.Setenv("QUICK_RMBG_CONFIG_DIR", filepath.Join(t.TempDir(), "config"))
	t.Setenv("QUICK_RMBG_DATA_DIR", filepath.Join(t.TempDir(), "data"))

	cmd := newRootCommand()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	return cmd.Execute()
}

func writeTestImage(t *testing.T, name string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte("image"), 0o644))
	return path
}

func TestRejectsConflictingModes(t *testing.T) {
	input := writeTestImage(t, "photo.png")

	err := executeCommand(t, "--two-pass", "--infinite-hop", input)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cannot use --two-pass and --infinite-hop together")
}

func TestRejectsOutputFlagForMultiPass(t *testing.T) {
	input := writeTestImage(t, "photo.png")

	for _, flag := range []string{"--two-pass", "--infinite-hop"} {
		err := executeCommand(t, flag, "-o", "/tmp/out.png", input)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "-o only applies to single-pass mode")
	}
}

func TestRejectsMissingInputFile(t *testing.T) {
	err := executeCommand(t, filepath.Join(t.TempDir(), "nope.png"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "file not found")
}

func TestRejectsUnsupportedFormat(t *testing.T) {
	input := writeTestImage(t, "notes.txt")

	err := executeCommand(t, input)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported format: .txt")
}

func TestRequiresExactlyOneArgument(t *testing.T) {
	assert.Error(t, executeCommand(t))
	assert.Error(t, executeCommand(t, "a.png", "b.png"))
}

func TestModeSelection(t *testing.T) {
	assert.Equal(t, "single", string(jobOptions{}.mode()))
	assert.Equal(t, "two-pass", string(jobOptions{twoPass: true}.mode()))
	assert.Equal(t, "infinite-hop", string(jobOptions{infiniteHop: true}.mode()))
}
