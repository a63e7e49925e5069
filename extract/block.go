// Package extract pulls fenced code blocks out of markdown/Quarto
// documents and renders per-language shadow files whose line numbers
// match the source document exactly.
package extract

import (
	"strings"
)

// Block is one fenced code block. StartLine/EndLine are 1-based and
// bound the payload, excluding the fence lines themselves.
type Block struct {
	Lang      string   // normalized language tag, "" if the fence had none
	FenceLine int      // 1-based line of the opening fence
	StartLine int      // first payload line; FenceLine+1 even when empty
	EndLine   int      // last payload line; StartLine-1 when the block is empty
	Closed    bool     // false when the fence runs to EOF
	Lines     []string // payload lines, verbatim
}

// Blocks parses all fenced code blocks from document lines. Fences use
// three or more backticks or tildes; a block closes only on a fence of
// the same character at least as long as the opener, so four-backtick
// fences can embed three-backtick examples. Indented fences (up to three
// spaces, as in list items) are recognized.
func Blocks(lines []string) []Block {
	var blocks []Block
	var cur *Block
	var fenceChar byte
	var fenceLen int

	for i, line := range lines {
		trimmed := strings.TrimLeft(line, " \t")

		if cur != nil {
			if isClosingFence(trimmed, fenceChar, fenceLen) {
				cur.EndLine = i // previous line, 1-based
				cur.Closed = true
				blocks = append(blocks, *cur)
				cur = nil
				continue
			}
			cur.Lines = append(cur.Lines, line)
			continue
		}

		c, n, info := openingFence(trimmed)
		if n == 0 {
			continue
		}
		fenceChar, fenceLen = c, n
		cur = &Block{
			Lang:      LangTag(info),
			FenceLine: i + 1,
			StartLine: i + 2,
		}
	}

	if cur != nil {
		// Unclosed fence: payload runs to EOF.
		cur.EndLine = len(lines)
		blocks = append(blocks, *cur)
	}
	return blocks
}

// ByLang filters blocks to those whose tag matches any of the given tags.
func ByLang(blocks []Block, tags ...string) []Block {
	want := make(map[string]bool, len(tags))
	for _, t := range tags {
		want[t] = true
	}
	var out []Block
	for _, b := range blocks {
		if want[b.Lang] {
			out = append(out, b)
		}
	}
	return out
}

// LangTag normalizes a fence info string to a bare language name.
// Handles "python", "{python}", "{.python}", and Quarto option lists
// like "{python, echo=false}".
func LangTag(info string) string {
	info = strings.TrimSpace(info)
	if info == "" {
		return ""
	}
	if strings.HasPrefix(info, "{") {
		info = strings.TrimPrefix(info, "{")
		info = strings.TrimSuffix(info, "}")
	}
	// First token, comma- or space-delimited.
	if idx := strings.IndexAny(info, ", \t"); idx >= 0 {
		info = info[:idx]
	}
	info = strings.TrimPrefix(info, ".")
	return strings.ToLower(info)
}

// openingFence reports the fence character, its run length (0 if the
// line opens no fence), and the trailing info string.
func openingFence(trimmed string) (byte, int, string) {
	if len(trimmed) < 3 {
		return 0, 0, ""
	}
	c := trimmed[0]
	if c != '`' && c != '~' {
		return 0, 0, ""
	}
	n := 0
	for n < len(trimmed) && trimmed[n] == c {
		n++
	}
	if n < 3 {
		return 0, 0, ""
	}
	info := trimmed[n:]
	// Info strings on backtick fences cannot themselves contain backticks.
	if c == '`' && strings.Contains(info, "`") {
		return 0, 0, ""
	}
	return c, n, info
}

func isClosingFence(trimmed string, fenceChar byte, fenceLen int) bool {
	n := 0
	for n < len(trimmed) && trimmed[n] == fenceChar {
		n++
	}
	return n >= fenceLen && strings.TrimSpace(trimmed[n:]) == ""
}
