package lint

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// defaultToolTimeout bounds one external linter invocation.
const defaultToolTimeout = 60 * time.Second

// ErrToolUnavailable marks an external linter that could not be started,
// typically because the binary is not on PATH. Callers surface it as a
// tool error instead of a finding.
var ErrToolUnavailable = errors.New("lint tool unavailable")

// diagLineRE matches the path:line[:col][:] prefix convention shared by
// flake8, lintr's checkstyle-ish text output, and most Unix linters.
var diagLineRE = regexp.MustCompile(`^(.+?):(\d+):(?:(\d+):?)?\s*(.*)$`)

// codeRE matches a leading tool code such as E501, W291, or object_usage_linter.
var codeRE = regexp.MustCompile(`^([A-Za-z][\w-]*\d[\w-]*|[a-z][\w]*_linter)\b[:,]?\s*`)

// runExternal invokes an external linter on a shadow file and parses its
// output into diagnostics. A nonzero exit with parseable findings is a
// normal outcome; a start failure or timeout returns ErrToolUnavailable
// wrapped with detail.
func runExternal(ctx context.Context, argv []string, shadowPath string, timeout time.Duration) ([]Diagnostic, error) {
	if len(argv) == 0 {
		return nil, fmt.Errorf("%w: empty linter command", ErrToolUnavailable)
	}
	if timeout <= 0 {
		timeout = defaultToolTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	args := append(append([]string{}, argv[1:]...), shadowPath)
	cmd := exec.CommandContext(ctx, argv[0], args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	if ctx.Err() != nil {
		return nil, fmt.Errorf("%w: %s timed out after %s", ErrToolUnavailable, argv[0], timeout)
	}
	if err != nil {
		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) {
			// Not an exit status: the tool never ran.
			return nil, fmt.Errorf("%w: %s: %v", ErrToolUnavailable, argv[0], err)
		}
		// Linters exit nonzero when they have findings; fall through to
		// parsing. Output that yields none means the tool itself failed.
	}

	tool := filepath.Base(argv[0])
	diags := parseToolOutput(tool, shadowPath, stdout.String())
	if err != nil && len(diags) == 0 {
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			msg = strings.TrimSpace(stdout.String())
		}
		return nil, fmt.Errorf("%w: %s exited with %v: %s", ErrToolUnavailable, argv[0], err, msg)
	}
	return diags, nil
}

// parseToolOutput extracts diagnostics for the shadow file from linter
// output. Lines about other paths (summaries, notes) are skipped.
func parseToolOutput(tool, shadowPath, output string) []Diagnostic {
	var diags []Diagnostic
	sc := bufio.NewScanner(strings.NewReader(output))
	for sc.Scan() {
		m := diagLineRE.FindStringSubmatch(sc.Text())
		if m == nil {
			continue
		}
		if m[1] != shadowPath && m[1] != filepath.Base(shadowPath) {
			continue
		}
		line, err := strconv.Atoi(m[2])
		if err != nil || line < 1 {
			continue
		}
		col := 0
		if m[3] != "" {
			col, _ = strconv.Atoi(m[3])
		}
		code, msg := splitCode(m[4])
		diags = append(diags, Diagnostic{
			Path:    shadowPath,
			Line:    line,
			Column:  col,
			Source:  tool,
			Code:    code,
			Message: msg,
		})
	}
	return diags
}

// splitCode separates a leading tool code from the message text.
func splitCode(s string) (code, msg string) {
	s = strings.TrimSpace(s)
	if m := codeRE.FindStringSubmatch(s); m != nil {
		return m[1], strings.TrimSpace(s[len(m[0]):])
	}
	return "", s
}
