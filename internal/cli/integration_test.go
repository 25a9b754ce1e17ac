package cli_test

import (
	"bytes"
	"encoding/json"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/golitedoc/internal/cli"
)

// docWithBadDirective triggers an unknown-directive diagnostic on line 3
// under the litedoc profile. The body survives as a raw block.
const docWithBadDirective = "# Title\n\n::bogus\ntext\n::\n"

// docClean parses without diagnostics under every profile.
const docClean = "# Title\n\nSome text without any problems.\n"

// writeTestConfig returns the path of a minimal config file. Passing it
// via --config keeps tests independent of any real project config.
func writeTestConfig(t *testing.T) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), ".golitedoc.yml")
	require.NoError(t, os.WriteFile(path, []byte("engine: litedoc\n"), 0o644))

	return path
}

// writeDoc writes content to name under a fresh temp dir and returns the
// full path.
func writeDoc(t *testing.T, name, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	return path
}

// execCommand runs the root command with the given args and returns the
// captured stdout, stderr, and execution error.
func execCommand(t *testing.T, args ...string) (string, string, error) {
	t.Helper()

	cmd := cli.NewRootCommand(cli.BuildInfo{
		Version: "test",
		Commit:  "test",
		Date:    "test",
	})

	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)

	err := cmd.Execute()

	return stdout.String(), stderr.String(), err
}

func TestIntegration_ValidateReportsDiagnostics(t *testing.T) {
	t.Parallel()

	docFile := writeDoc(t, "bad.ld", docWithBadDirective)
	cfgFile := writeTestConfig(t)

	stdout, _, err := execCommand(t,
		"validate", "--config", cfgFile, "--color", "never", docFile)

	require.ErrorIs(t, err, cli.ErrDiagnosticsFound)
	assert.Equal(t, cli.ExitDiagnostics, cli.ExitCodeForError(err))

	assert.Contains(t, stdout, "bad.ld (1 error)")
	assert.Contains(t, stdout, "bad.ld:3:1")
	assert.Contains(t, stdout, `unknown directive "bogus"`)
	assert.Contains(t, stdout, "(unknown-directive)")
	assert.Contains(t, stdout, "1 parse error")
}

func TestIntegration_ValidateCleanExitsZero(t *testing.T) {
	t.Parallel()

	docFile := writeDoc(t, "clean.ld", docClean)
	cfgFile := writeTestConfig(t)

	stdout, _, err := execCommand(t,
		"validate", "--config", cfgFile, "--color", "never", docFile)

	require.NoError(t, err)
	assert.Contains(t, stdout, "No parse errors found")
	assert.Contains(t, stdout, "(1 file parsed)")
}

func TestIntegration_ValidateNoContextHidesSource(t *testing.T) {
	t.Parallel()

	docFile := writeDoc(t, "bad.ld", docWithBadDirective)
	cfgFile := writeTestConfig(t)

	stdout, _, err := execCommand(t,
		"validate", "--config", cfgFile, "--color", "never", "--no-context", docFile)

	require.ErrorIs(t, err, cli.ErrDiagnosticsFound)
	assert.Contains(t, stdout, "(unknown-directive)")
	assert.NotContains(t, stdout, "^")
}

func TestIntegration_ValidateJSON(t *testing.T) {
	t.Parallel()

	docFile := writeDoc(t, "bad.ld", docWithBadDirective)
	cfgFile := writeTestConfig(t)

	stdout, _, err := execCommand(t,
		"validate", "--config", cfgFile, "--color", "never", "--format", "json", docFile)

	require.ErrorIs(t, err, cli.ErrDiagnosticsFound)
	require.True(t, json.Valid([]byte(stdout)), "output should be valid JSON: %s", stdout)

	assert.Contains(t, stdout, `"valid": false`)
	assert.Contains(t, stdout, `"unknown-directive"`)
}

func TestIntegration_ValidateSummaryFormat(t *testing.T) {
	t.Parallel()

	docFile := writeDoc(t, "bad.ld", docWithBadDirective)
	cfgFile := writeTestConfig(t)

	stdout, _, err := execCommand(t,
		"validate", "--config", cfgFile, "--color", "never", "--format", "summary", docFile)

	require.ErrorIs(t, err, cli.ErrDiagnosticsFound)
	assert.Contains(t, stdout, "unknown-directive:")
}

func TestIntegration_ParseRecoversDiagnostics(t *testing.T) {
	t.Parallel()

	docFile := writeDoc(t, "bad.ld", docWithBadDirective)
	cfgFile := writeTestConfig(t)

	stdout, stderr, err := execCommand(t,
		"parse", "--config", cfgFile, "--color", "never", docFile)

	// Recovery keeps parse at exit 0 even with diagnostics.
	require.NoError(t, err)

	assert.Contains(t, stdout, "Profile: litedoc")
	assert.Contains(t, stdout, "[1] Heading (level 1)")
	assert.Contains(t, stdout, "[2] RawBlock")

	// Diagnostics go to stderr so stdout stays pipeable.
	assert.Contains(t, stderr, "warning")
	assert.Contains(t, stderr, `unknown directive "bogus"`)
	assert.NotContains(t, stdout, "warning")
}

func TestIntegration_ParseVerboseShowsSpans(t *testing.T) {
	t.Parallel()

	docFile := writeDoc(t, "clean.ld", docClean)
	cfgFile := writeTestConfig(t)

	stdout, _, err := execCommand(t,
		"parse", "--config", cfgFile, "--color", "never", "--verbose", docFile)

	require.NoError(t, err)
	assert.Contains(t, stdout, "Span:")
	assert.Contains(t, stdout, "Content: Title")
}

func TestIntegration_ParseJSONDocument(t *testing.T) {
	t.Parallel()

	docFile := writeDoc(t, "clean.ld", docClean)
	cfgFile := writeTestConfig(t)

	stdout, _, err := execCommand(t,
		"parse", "--config", cfgFile, "--color", "never", "--format", "json", docFile)

	require.NoError(t, err)
	require.True(t, json.Valid([]byte(stdout)), "output should be valid JSON: %s", stdout)

	assert.Contains(t, stdout, `"documents"`)
	assert.Contains(t, stdout, `"type": "heading"`)
	assert.Contains(t, stdout, `"type": "paragraph"`)
}

func TestIntegration_ParseCompactJSON(t *testing.T) {
	t.Parallel()

	docFile := writeDoc(t, "clean.ld", docClean)
	cfgFile := writeTestConfig(t)

	stdout, _, err := execCommand(t,
		"parse", "--config", cfgFile, "--color", "never", "--format", "json", "--compact", docFile)

	require.NoError(t, err)

	trimmed := strings.TrimRight(stdout, "\n")
	assert.NotContains(t, trimmed, "\n", "compact output should be a single line")
	assert.True(t, json.Valid([]byte(trimmed)))
}

func TestIntegration_ProfileFlagForcesProfile(t *testing.T) {
	t.Parallel()

	docFile := writeDoc(t, "doc.ld", docClean)
	cfgFile := writeTestConfig(t)

	stdout, _, err := execCommand(t,
		"parse", "--config", cfgFile, "--color", "never", "--profile", "md", docFile)

	require.NoError(t, err)
	assert.Contains(t, stdout, "Profile: md")
}

func TestIntegration_ConfigFileSetsProfile(t *testing.T) {
	t.Parallel()

	docFile := writeDoc(t, "doc.ld", docClean)

	cfgFile := filepath.Join(t.TempDir(), ".golitedoc.yml")
	require.NoError(t, os.WriteFile(cfgFile, []byte("profile: md\n"), 0o644))

	stdout, _, err := execCommand(t,
		"parse", "--config", cfgFile, "--color", "never", docFile)

	require.NoError(t, err)
	assert.Contains(t, stdout, "Profile: md")

	// An explicit flag overrides the config file.
	stdout, _, err = execCommand(t,
		"parse", "--config", cfgFile, "--color", "never", "--profile", "litedoc", docFile)

	require.NoError(t, err)
	assert.Contains(t, stdout, "Profile: litedoc")
}

func TestIntegration_EngineGoldmark(t *testing.T) {
	t.Parallel()

	docFile := writeDoc(t, "doc.md", "# Hello\n\nWorld.\n")
	cfgFile := writeTestConfig(t)

	stdout, _, err := execCommand(t,
		"parse", "--config", cfgFile, "--color", "never",
		"--engine", "goldmark", "--format", "json", docFile)

	require.NoError(t, err)
	assert.Contains(t, stdout, `"engine": "goldmark"`)
	assert.Contains(t, stdout, `"profile": "md"`)
	assert.Contains(t, stdout, `"type": "heading"`)
}

func TestIntegration_StatsText(t *testing.T) {
	t.Parallel()

	docFile := writeDoc(t, "clean.ld", docClean)
	cfgFile := writeTestConfig(t)

	stdout, _, err := execCommand(t,
		"stats", "--config", cfgFile, "--color", "never", docFile)

	require.NoError(t, err)
	assert.Contains(t, stdout, "Document Statistics")
	assert.Contains(t, stdout, "Totals")
	assert.Contains(t, stdout, "Files analyzed:")
	assert.Contains(t, stdout, "heading:")
}

func TestIntegration_StatsJSON(t *testing.T) {
	t.Parallel()

	docFile := writeDoc(t, "clean.ld", docClean)
	cfgFile := writeTestConfig(t)

	stdout, _, err := execCommand(t,
		"stats", "--config", cfgFile, "--color", "never", "--format", "json", docFile)

	require.NoError(t, err)

	var report map[string]any
	require.NoError(t, json.Unmarshal([]byte(stdout), &report))
	assert.Contains(t, report, "totals")
	assert.Contains(t, report, "byFile")
}

func TestIntegration_StatsInvalidSortField(t *testing.T) {
	t.Parallel()

	docFile := writeDoc(t, "clean.ld", docClean)
	cfgFile := writeTestConfig(t)

	_, _, err := execCommand(t,
		"stats", "--config", cfgFile, "--color", "never", "--sort", "bogus", docFile)

	require.Error(t, err)
	assert.Equal(t, cli.ExitUsage, cli.ExitCodeForError(err))
}

func TestIntegration_IgnorePatternSkipsFiles(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "keep.ld"), []byte(docClean), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "skip.ld"), []byte(docClean), 0o644))
	cfgFile := writeTestConfig(t)

	stdout, _, err := execCommand(t,
		"parse", "--config", cfgFile, "--color", "never", "--ignore", "skip.ld", dir)

	require.NoError(t, err)
	assert.Contains(t, stdout, "keep.ld")
	assert.NotContains(t, stdout, "skip.ld")
}

func TestIntegration_NoInputFiles(t *testing.T) {
	t.Parallel()

	emptyDir := t.TempDir()
	cfgFile := writeTestConfig(t)

	_, _, err := execCommand(t,
		"validate", "--config", cfgFile, "--color", "never", emptyDir)

	require.ErrorIs(t, err, cli.ErrNoInput)
	assert.Equal(t, cli.ExitNoInput, cli.ExitCodeForError(err))
}

func TestIntegration_MissingPath(t *testing.T) {
	t.Parallel()

	cfgFile := writeTestConfig(t)
	missing := filepath.Join(t.TempDir(), "gone.ld")

	_, _, err := execCommand(t,
		"validate", "--config", cfgFile, "--color", "never", missing)

	require.Error(t, err)
	assert.Equal(t, cli.ExitNoInput, cli.ExitCodeForError(err))
}

func TestIntegration_InvalidFormatIsUsageError(t *testing.T) {
	t.Parallel()

	docFile := writeDoc(t, "clean.ld", docClean)
	cfgFile := writeTestConfig(t)

	_, _, err := execCommand(t,
		"validate", "--config", cfgFile, "--color", "never", "--format", "bogus", docFile)

	require.ErrorIs(t, err, cli.ErrUsage)
	assert.Equal(t, cli.ExitUsage, cli.ExitCodeForError(err))
}

func TestIntegration_ParseRejectsSummaryFormat(t *testing.T) {
	t.Parallel()

	docFile := writeDoc(t, "clean.ld", docClean)
	cfgFile := writeTestConfig(t)

	_, _, err := execCommand(t,
		"parse", "--config", cfgFile, "--color", "never", "--format", "summary", docFile)

	require.ErrorIs(t, err, cli.ErrUsage)
}

func TestIntegration_InitCreatesConfig(t *testing.T) {
	t.Parallel()

	outPath := filepath.Join(t.TempDir(), "custom.yml")

	_, _, err := execCommand(t, "init", "--output", outPath)
	require.NoError(t, err)

	content, err := os.ReadFile(outPath)
	require.NoError(t, err)
	assert.Contains(t, string(content), "golitedoc")
	assert.Contains(t, string(content), "profile")

	// A second run without --force refuses to overwrite.
	_, _, err = execCommand(t, "init", "--output", outPath)
	require.ErrorIs(t, err, fs.ErrExist)
	assert.Equal(t, cli.ExitIOError, cli.ExitCodeForError(err))

	// --force overwrites.
	_, _, err = execCommand(t, "init", "--output", outPath, "--force")
	require.NoError(t, err)
}
