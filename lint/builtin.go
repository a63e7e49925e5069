package lint

import (
	"fmt"
	"strings"

	"github.com/rapkit/rapkit/extract"
)

// Builtin check codes. These cover what the embedded snippets most often
// get wrong and need no external toolchain, so lint is useful even on a
// machine without flake8 or lintr installed.
const (
	CodeUnclosedFence      = "unclosed-fence"
	CodeTabIndent          = "tab-indent"
	CodeTrailingWhitespace = "trailing-whitespace"
	CodeLongLine           = "long-line"
)

// builtinChecks runs the tool-free checks over one language's blocks.
// Line numbers come straight from the block, so they are already in
// document coordinates.
func builtinChecks(docPath string, blocks []extract.Block, maxLine int) []Diagnostic {
	var out []Diagnostic
	for _, b := range blocks {
		if !b.Closed {
			out = append(out, Diagnostic{
				Path:    docPath,
				Line:    b.FenceLine,
				Source:  "builtin",
				Code:    CodeUnclosedFence,
				Message: "code fence is never closed",
			})
		}
		for j, line := range b.Lines {
			n := b.StartLine + j
			if tabInIndent(line) {
				out = append(out, Diagnostic{
					Path:    docPath,
					Line:    n,
					Source:  "builtin",
					Code:    CodeTabIndent,
					Message: "tab character in indentation",
				})
			}
			if trimmed := strings.TrimRight(line, " \t"); trimmed != line && trimmed != "" {
				out = append(out, Diagnostic{
					Path:    docPath,
					Line:    n,
					Column:  len(trimmed) + 1,
					Source:  "builtin",
					Code:    CodeTrailingWhitespace,
					Message: "trailing whitespace",
				})
			}
			if maxLine > 0 && len(line) > maxLine {
				out = append(out, Diagnostic{
					Path:    docPath,
					Line:    n,
					Column:  maxLine + 1,
					Source:  "builtin",
					Code:    CodeLongLine,
					Message: fmt.Sprintf("line too long (%d > %d characters)", len(line), maxLine),
				})
			}
		}
	}
	return out
}

func tabInIndent(line string) bool {
	for _, r := range line {
		switch r {
		case '\t':
			return true
		case ' ':
		default:
			return false
		}
	}
	return false
}
