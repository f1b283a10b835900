package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"notecat/pkg/concat"
	"notecat/pkg/config"
)

// fixture writes a config plus a small base path and returns the config
// path and the output directory.
func fixture(t *testing.T) (string, string) {
	t.Helper()
	base := t.TempDir()
	outDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(base, "a.py"), []byte("print('a')\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(base, "b.md"), []byte("# b\n"), 0o644))

	cfgContent := `
projects:
  demo:
    description: demo project
    base_paths:
      - ` + base + `
    profiles:
      current:
        pattern: "**/*"
        extensions: [".py", ".md"]
        output: ` + filepath.Join(outDir, "demo.md") + `
  empty:
    description: nothing here
    base_paths:
      - ` + base + `
    profiles:
      current:
        pattern: "**/*"
        extensions: [".nothing"]
        output: ` + filepath.Join(outDir, "empty.md") + `
`
	cfgPath := filepath.Join(t.TempDir(), "projects.yml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(cfgContent), 0o644))
	return cfgPath, outDir
}

func runRoot(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	root := NewRootCmd(zap.NewNop())
	var stdout, stderr bytes.Buffer
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetArgs(args)
	err := root.Execute()
	return stdout.String(), stderr.String(), err
}

func TestListShowsEachProjectOnce(t *testing.T) {
	cfgPath, _ := fixture(t)

	stdout, _, err := runRoot(t, "--list", "-c", cfgPath)
	require.NoError(t, err)

	assert.Equal(t, 1, strings.Count(stdout, "demo — demo project"))
	assert.Equal(t, 1, strings.Count(stdout, "empty — nothing here"))
	assert.Contains(t, stdout, "profiles: current")
}

func TestConcatenateWritesOutput(t *testing.T) {
	cfgPath, outDir := fixture(t)

	stdout, _, err := runRoot(t, "demo", "-c", cfgPath)
	require.NoError(t, err)
	assert.Contains(t, stdout, "2 files")

	content, err := os.ReadFile(filepath.Join(outDir, "demo.md"))
	require.NoError(t, err)
	assert.Contains(t, string(content), "### a.py")
}

func TestDryRunPrintsListWritesNothing(t *testing.T) {
	cfgPath, outDir := fixture(t)

	stdout, _, err := runRoot(t, "demo", "--dry-run", "-c", cfgPath)
	require.NoError(t, err)
	assert.Contains(t, stdout, "a.py")
	assert.Contains(t, stdout, "b.md")
	assert.Contains(t, stdout, "would be written")

	_, statErr := os.Stat(filepath.Join(outDir, "demo.md"))
	assert.True(t, os.IsNotExist(statErr))
}

func TestDryRunEmptySucceeds(t *testing.T) {
	cfgPath, _ := fixture(t)

	stdout, _, err := runRoot(t, "empty", "--dry-run", "-c", cfgPath)
	require.NoError(t, err)
	assert.Contains(t, stdout, "no files matched")
}

func TestEmptyProjectFailsWithNoFiles(t *testing.T) {
	cfgPath, outDir := fixture(t)

	_, _, err := runRoot(t, "empty", "-c", cfgPath)
	assert.ErrorIs(t, err, concat.ErrNoFiles)

	_, statErr := os.Stat(filepath.Join(outDir, "empty.md"))
	assert.True(t, os.IsNotExist(statErr))
}

func TestUnknownProjectAndProfile(t *testing.T) {
	cfgPath, _ := fixture(t)

	_, _, err := runRoot(t, "nope", "-c", cfgPath)
	assert.ErrorIs(t, err, config.ErrProjectNotFound)

	_, _, err = runRoot(t, "demo", "--profile", "missing-name", "-c", cfgPath)
	assert.ErrorIs(t, err, config.ErrProfileNotFound)
}

func TestExtensionOverrideFlag(t *testing.T) {
	cfgPath, outDir := fixture(t)

	_, _, err := runRoot(t, "demo", "-e", ".md", "-c", cfgPath)
	require.NoError(t, err)

	content, err := os.ReadFile(filepath.Join(outDir, "demo.md"))
	require.NoError(t, err)
	assert.Contains(t, string(content), "### b.md")
	assert.NotContains(t, string(content), "### a.py")
}

func TestOutputOverrideFlag(t *testing.T) {
	cfgPath, _ := fixture(t)
	custom := filepath.Join(t.TempDir(), "custom-out.md")

	_, _, err := runRoot(t, "demo", "-o", custom, "-c", cfgPath)
	require.NoError(t, err)

	_, statErr := os.Stat(custom)
	assert.NoError(t, statErr)
}

func TestConflictingFlagsRejected(t *testing.T) {
	cfgPath, _ := fixture(t)

	_, _, err := runRoot(t, "demo", "--profile", "current", "--all-profiles", "-c", cfgPath)
	assert.Error(t, err)
}

func TestVerboseProgressGoesToStderr(t *testing.T) {
	cfgPath, _ := fixture(t)

	stdout, stderr, err := runRoot(t, "demo", "-v", "-c", cfgPath)
	require.NoError(t, err)
	assert.Contains(t, stderr, "a.py")
	assert.NotContains(t, stdout, "[1]")
}
