// Package check audits a documentation project against a
// reproducibility (RAP) checklist: required repository files, required
// frontmatter on every document, and forbidden patterns inside embedded
// code blocks (for example absolute local paths, which break anyone
// else's run).
package check

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/rapkit/rapkit/extract"
	"github.com/rapkit/rapkit/site"
)

// Finding is one failed checklist item.
type Finding struct {
	Item    string `json:"item"`           // checklist item identifier
	Path    string `json:"path,omitempty"` // document or file involved, if any
	Line    int    `json:"line,omitempty"` // 1-based, for in-document findings
	Message string `json:"message"`
}

func (f Finding) String() string {
	switch {
	case f.Path != "" && f.Line > 0:
		return fmt.Sprintf("%s:%d: [%s] %s", f.Path, f.Line, f.Item, f.Message)
	case f.Path != "":
		return fmt.Sprintf("%s: [%s] %s", f.Path, f.Item, f.Message)
	default:
		return fmt.Sprintf("[%s] %s", f.Item, f.Message)
	}
}

// Run evaluates the configured checklist and returns every failure. An
// error return means the checklist itself is invalid (bad regex), not
// that the project failed the audit.
func Run(cfg site.Config, docs []*site.Document) ([]Finding, error) {
	var findings []Finding

	findings = append(findings, requiredFiles(cfg)...)
	findings = append(findings, requiredFrontmatter(cfg, docs)...)

	fp, err := forbiddenPatterns(cfg, docs)
	if err != nil {
		return nil, err
	}
	findings = append(findings, fp...)

	return findings, nil
}

// requiredFiles checks that each alternatives group is satisfied by at
// least one existing file under the project root.
func requiredFiles(cfg site.Config) []Finding {
	var findings []Finding
	for _, alternatives := range cfg.Checklist.RequiredFiles {
		if len(alternatives) == 0 {
			continue
		}
		found := false
		for _, name := range alternatives {
			if _, err := os.Stat(filepath.Join(cfg.Root, filepath.FromSlash(name))); err == nil {
				found = true
				break
			}
		}
		if !found {
			findings = append(findings, Finding{
				Item:    "required-file",
				Message: fmt.Sprintf("none of %s present", strings.Join(alternatives, ", ")),
			})
		}
	}
	return findings
}

// requiredFrontmatter checks that every document carries the configured
// frontmatter keys.
func requiredFrontmatter(cfg site.Config, docs []*site.Document) []Finding {
	var findings []Finding
	for _, doc := range docs {
		for _, key := range cfg.Checklist.RequiredFrontmatter {
			if doc.Frontmatter == nil {
				findings = append(findings, Finding{
					Item:    "required-frontmatter",
					Path:    doc.Path,
					Message: fmt.Sprintf("document has no frontmatter (missing %q)", key),
				})
				break
			}
			if _, ok := doc.Frontmatter[key]; !ok {
				findings = append(findings, Finding{
					Item:    "required-frontmatter",
					Path:    doc.Path,
					Message: fmt.Sprintf("frontmatter missing %q", key),
				})
			}
		}
	}
	return findings
}

// forbiddenPatterns flags configured regexes inside code block payloads.
// Prose is not scanned: a page may legitimately discuss a pattern it
// tells readers to avoid.
func forbiddenPatterns(cfg site.Config, docs []*site.Document) ([]Finding, error) {
	if len(cfg.Checklist.ForbiddenPatterns) == 0 {
		return nil, nil
	}
	res := make([]*regexp.Regexp, 0, len(cfg.Checklist.ForbiddenPatterns))
	for _, p := range cfg.Checklist.ForbiddenPatterns {
		re, err := regexp.Compile(p)
		if err != nil {
			return nil, fmt.Errorf("forbidden pattern %q: %w", p, err)
		}
		res = append(res, re)
	}

	var findings []Finding
	for _, doc := range docs {
		for _, b := range extract.Blocks(doc.Lines) {
			for j, line := range b.Lines {
				for _, re := range res {
					if re.MatchString(line) {
						findings = append(findings, Finding{
							Item:    "forbidden-pattern",
							Path:    doc.Path,
							Line:    b.StartLine + j,
							Message: fmt.Sprintf("code matches forbidden pattern %q", re.String()),
						})
					}
				}
			}
		}
	}
	return findings, nil
}
