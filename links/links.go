// Package links validates internal markdown links across a document set.
// External targets (anything with a scheme) and pure fragments are out
// of scope; everything else must resolve to an existing file or
// directory relative to the containing document.
package links

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/rapkit/rapkit/site"
)

// linkRE extracts markdown link targets: [text](target).
var linkRE = regexp.MustCompile(`\[[^\]]*\]\(([^)]+)\)`)

// Broken is one unresolvable internal link.
type Broken struct {
	Path   string `json:"path"`   // document containing the link
	Line   int    `json:"line"`   // 1-based
	Target string `json:"target"` // the raw link target
}

func (b Broken) String() string {
	return fmt.Sprintf("%s:%d: link target %q does not exist", b.Path, b.Line, b.Target)
}

// Check scans every document for internal links and returns all broken
// ones. It never stops at the first failure, so one run reports the full
// damage after a file move.
func Check(cfg site.Config, docs []*site.Document) ([]Broken, error) {
	var broken []Broken
	base := cfg.SourceDir()

	for _, doc := range docs {
		for i, line := range doc.Lines {
			for _, m := range linkRE.FindAllStringSubmatch(line, -1) {
				target := cleanTarget(m[1])
				if target == "" || isExternal(target) {
					continue
				}
				ignored, err := matchIgnore(cfg.Links.Ignore, target)
				if err != nil {
					return nil, err
				}
				if ignored {
					continue
				}
				resolved := filepath.Join(base, filepath.Dir(filepath.FromSlash(doc.Path)), filepath.FromSlash(target))
				if _, err := os.Stat(resolved); err != nil {
					broken = append(broken, Broken{Path: doc.Path, Line: i + 1, Target: m[1]})
				}
			}
		}
	}
	return broken, nil
}

// cleanTarget strips optional titles (`target "title"`), angle brackets,
// and trailing #fragments from a raw link target.
func cleanTarget(target string) string {
	target = strings.TrimSpace(target)
	if idx := strings.IndexAny(target, " \t"); idx >= 0 {
		rest := strings.TrimSpace(target[idx:])
		if strings.HasPrefix(rest, `"`) || strings.HasPrefix(rest, "'") {
			target = target[:idx]
		}
	}
	target = strings.TrimPrefix(target, "<")
	target = strings.TrimSuffix(target, ">")
	if idx := strings.Index(target, "#"); idx >= 0 {
		target = target[:idx]
	}
	return target
}

// isExternal mirrors the original checker: anything carrying a scheme
// separator or starting as a fragment is not checked. mailto: has no
// "//" so it is matched separately.
func isExternal(target string) bool {
	return strings.Contains(target, "://") ||
		strings.HasPrefix(target, "#") ||
		strings.HasPrefix(target, "mailto:")
}

func matchIgnore(patterns []string, target string) (bool, error) {
	for _, p := range patterns {
		ok, err := doublestar.Match(p, target)
		if err != nil {
			return false, fmt.Errorf("links ignore pattern %q: %w", p, err)
		}
		if ok {
			return true, nil
		}
	}
	return false, nil
}
