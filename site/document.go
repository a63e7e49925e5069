package site

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Document is one markdown or Quarto source file, split into YAML
// frontmatter and a line-indexed body. Lines holds every line of the
// file, frontmatter included, so that downstream consumers can report
// positions in original file coordinates.
type Document struct {
	Path           string         // path as given to Load (repo-relative by convention)
	Frontmatter    map[string]any // parsed frontmatter, nil if absent or invalid
	FrontmatterEnd int            // 1-based line of the closing delimiter, 0 if none
	Lines          []string       // full file content, one entry per line, no newlines
}

// Load reads and parses a document from disk.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read document: %w", err)
	}
	return Parse(path, data), nil
}

// Parse builds a Document from raw file content. Frontmatter that fails
// to parse as YAML is left nil and the file is treated as body only.
func Parse(path string, content []byte) *Document {
	doc := &Document{
		Path:  path,
		Lines: SplitLines(string(content)),
	}

	if len(doc.Lines) == 0 || strings.TrimRight(doc.Lines[0], "\r") != "---" {
		return doc
	}

	// Find the closing delimiter; frontmatter runs from line 2 to close-1.
	closeLine := 0
	for i := 1; i < len(doc.Lines); i++ {
		trimmed := strings.TrimRight(doc.Lines[i], "\r")
		if trimmed == "---" || trimmed == "..." {
			closeLine = i + 1
			break
		}
	}
	if closeLine == 0 {
		return doc
	}

	raw := strings.Join(doc.Lines[1:closeLine-1], "\n")
	var fm map[string]any
	if err := yaml.Unmarshal([]byte(raw), &fm); err != nil {
		return doc
	}
	doc.Frontmatter = fm
	doc.FrontmatterEnd = closeLine
	return doc
}

// Body returns the document lines after the frontmatter block.
func (d *Document) Body() []string {
	if d.FrontmatterEnd >= len(d.Lines) {
		return nil
	}
	return d.Lines[d.FrontmatterEnd:]
}

// Title returns the frontmatter title, or "" if unset.
func (d *Document) Title() string {
	if d.Frontmatter == nil {
		return ""
	}
	if s, ok := d.Frontmatter["title"].(string); ok {
		return s
	}
	return ""
}

// SplitLines splits content into lines without their terminators. A
// trailing newline does not produce a phantom empty final line, matching
// how editors and linters count lines.
func SplitLines(content string) []string {
	if content == "" {
		return nil
	}
	lines := strings.Split(content, "\n")
	if len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}
