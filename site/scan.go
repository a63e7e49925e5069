package site

import (
	"fmt"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
)

// Scan resolves the config's include globs under the source dir, drops
// anything matching an exclude glob, and returns the surviving documents
// sorted by path. Sorted output keeps reports and shadow-file naming
// deterministic across runs.
func Scan(cfg Config) ([]*Document, error) {
	paths, err := ScanPaths(cfg)
	if err != nil {
		return nil, err
	}

	docs := make([]*Document, 0, len(paths))
	for _, p := range paths {
		doc, err := Load(filepath.Join(cfg.SourceDir(), p))
		if err != nil {
			return nil, err
		}
		doc.Path = p
		docs = append(docs, doc)
	}
	return docs, nil
}

// ScanPaths returns matching document paths relative to the source dir.
func ScanPaths(cfg Config) ([]string, error) {
	base := cfg.SourceDir()
	seen := make(map[string]bool)
	var paths []string

	for _, pattern := range cfg.Include {
		matches, err := doublestar.FilepathGlob(filepath.Join(base, pattern))
		if err != nil {
			return nil, fmt.Errorf("resolve include %q: %w", pattern, err)
		}
		for _, m := range matches {
			rel, err := filepath.Rel(base, m)
			if err != nil {
				return nil, err
			}
			rel = filepath.ToSlash(rel)
			if seen[rel] {
				continue
			}
			excluded, err := matchAny(cfg.Exclude, rel)
			if err != nil {
				return nil, err
			}
			if excluded {
				continue
			}
			seen[rel] = true
			paths = append(paths, rel)
		}
	}

	sort.Strings(paths)
	return paths, nil
}

// SourceDir returns the absolute-or-relative docs dir under the root.
func (c Config) SourceDir() string {
	if c.Root == "" {
		return c.Source
	}
	return filepath.Join(c.Root, c.Source)
}

func matchAny(patterns []string, rel string) (bool, error) {
	for _, pattern := range patterns {
		ok, err := doublestar.Match(pattern, rel)
		if err != nil {
			return false, fmt.Errorf("exclude pattern %q: %w", pattern, err)
		}
		if ok {
			return true, nil
		}
	}
	return false, nil
}
