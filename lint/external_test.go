package lint

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseToolOutput_Flake8Style(t *testing.T) {
	// GIVEN typical flake8 output plus noise lines
	out := "/tmp/x/page.qmd.py:3:1: E302 expected 2 blank lines, got 1\n" +
		"/tmp/x/page.qmd.py:7:80: E501 line too long (88 > 79 characters)\n" +
		"/tmp/other.py:1:1: E999 wrong file\n" +
		"some summary line\n"

	diags := parseToolOutput("flake8", "/tmp/x/page.qmd.py", out)

	// THEN only this shadow's findings survive, with code split out
	require.Len(t, diags, 2)
	assert.Equal(t, 3, diags[0].Line)
	assert.Equal(t, 1, diags[0].Column)
	assert.Equal(t, "E302", diags[0].Code)
	assert.Equal(t, "expected 2 blank lines, got 1", diags[0].Message)
	assert.Equal(t, "flake8", diags[0].Source)
	assert.Equal(t, "E501", diags[1].Code)
}

func TestParseToolOutput_LintrStyle(t *testing.T) {
	// GIVEN lintr's print form, which keeps a severity prefix
	out := "page.qmd.R:4:1: style: [assignment_linter] Use <-, not =, for assignment.\n"

	diags := parseToolOutput("Rscript", "page.qmd.R", out)

	require.Len(t, diags, 1)
	assert.Equal(t, 4, diags[0].Line)
	assert.Contains(t, diags[0].Message, "assignment")
}

func TestSplitCode(t *testing.T) {
	code, msg := splitCode("E501 line too long")
	assert.Equal(t, "E501", code)
	assert.Equal(t, "line too long", msg)

	code, msg = splitCode("no code here")
	assert.Equal(t, "", code)
	assert.Equal(t, "no code here", msg)
}

func TestRunExternal_MissingBinary(t *testing.T) {
	// GIVEN a linter command that does not exist
	_, err := runExternal(context.Background(), []string{"definitely-not-a-real-linter"}, "x.py", 0)

	// THEN the failure is classified as a tool error
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrToolUnavailable)
}

func TestRunExternal_FakeLinterFindings(t *testing.T) {
	// GIVEN a stand-in linter that reports one finding and exits 1,
	// matching flake8's convention
	dir := t.TempDir()
	script := filepath.Join(dir, "fakelint.sh")
	require.NoError(t, os.WriteFile(script,
		[]byte("#!/bin/sh\necho \"$1:3:5: E999 SyntaxError: invalid syntax\"\nexit 1\n"), 0o755))
	shadow := filepath.Join(dir, "page.qmd.py")
	require.NoError(t, os.WriteFile(shadow, []byte("#\n#\nbad(\n"), 0o644))

	// WHEN it runs
	diags, err := runExternal(context.Background(), []string{"sh", script}, shadow, 0)

	// THEN the nonzero exit is treated as findings, not failure
	require.NoError(t, err)
	require.Len(t, diags, 1)
	assert.Equal(t, 3, diags[0].Line)
	assert.Equal(t, 5, diags[0].Column)
	assert.Equal(t, "E999", diags[0].Code)
	assert.Equal(t, shadow, diags[0].Path)
}

func TestRunExternal_FailingToolWithoutFindings(t *testing.T) {
	// GIVEN a tool that crashes without producing diagnostics
	dir := t.TempDir()
	script := filepath.Join(dir, "crash.sh")
	require.NoError(t, os.WriteFile(script,
		[]byte("#!/bin/sh\necho 'boom' >&2\nexit 2\n"), 0o755))

	_, err := runExternal(context.Background(), []string{"sh", script}, "x.py", 0)

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrToolUnavailable)
	assert.Contains(t, err.Error(), "boom")
}
