package extract

import (
	"fmt"
	"strings"
)

// Shadow renders a lintable view of a document for one language: every
// line that is not payload of a matching code block is replaced by a bare
// comment line, and payload lines are copied verbatim. The result has
// exactly one line per source line, so a diagnostic at line N of the
// shadow points at line N of the document.
func Shadow(lines []string, blocks []Block, commentPrefix string, tags ...string) string {
	if len(lines) == 0 {
		return ""
	}
	out := make([]string, len(lines))
	for i := range out {
		out[i] = commentPrefix
	}
	for _, b := range ByLang(blocks, tags...) {
		for j, payload := range b.Lines {
			idx := b.StartLine - 1 + j
			if idx >= 0 && idx < len(out) {
				out[idx] = payload
			}
		}
	}
	return strings.Join(out, "\n") + "\n"
}

// VerifyShadow checks the line-correspondence invariant: same line count
// as the source, and byte-identical payload lines. Returns nil on
// success. Callers treat a failure as an internal error, not user input.
func VerifyShadow(shadow string, lines []string, blocks []Block, tags ...string) error {
	var shadowLines []string
	if shadow != "" {
		shadowLines = strings.Split(strings.TrimSuffix(shadow, "\n"), "\n")
	}
	if len(shadowLines) != len(lines) {
		return fmt.Errorf("shadow has %d lines, document has %d", len(shadowLines), len(lines))
	}
	for _, b := range ByLang(blocks, tags...) {
		for j, payload := range b.Lines {
			idx := b.StartLine - 1 + j
			if idx < 0 || idx >= len(shadowLines) {
				return fmt.Errorf("block payload line %d outside document", idx+1)
			}
			if shadowLines[idx] != payload {
				return fmt.Errorf("line %d differs between shadow and document", idx+1)
			}
		}
	}
	return nil
}
