package site

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is the config filename looked up in the project root.
const DefaultConfigFile = "rapkit.yaml"

// LanguageConfig holds per-language lint settings. Zero values fall back
// to the registered language defaults (see lint/python, lint/rlang).
type LanguageConfig struct {
	Enabled       *bool    `yaml:"enabled"`         // nil means enabled
	Linter        []string `yaml:"linter"`          // external linter argv, empty = language default
	MaxLineLength int      `yaml:"max_line_length"` // 0 = language default
	TimeoutSecs   int      `yaml:"timeout_seconds"` // external tool timeout, 0 = 60
}

// LintConfig groups embedded-code lint settings.
type LintConfig struct {
	Languages map[string]LanguageConfig `yaml:"languages"`
	External  *bool                     `yaml:"external"` // run external linters; nil means true
}

// LinksConfig groups internal link-check settings.
type LinksConfig struct {
	Ignore []string `yaml:"ignore"` // doublestar patterns of link targets to skip
}

// ChecklistConfig groups the reproducibility audit settings.
type ChecklistConfig struct {
	RequiredFiles       [][]string `yaml:"required_files"`       // each entry is a list of acceptable alternatives
	RequiredFrontmatter []string   `yaml:"required_frontmatter"` // keys every document must carry
	ForbiddenPatterns   []string   `yaml:"forbidden_patterns"`   // regexes flagged inside code blocks
}

// RenderConfig groups site build settings.
type RenderConfig struct {
	Command   []string `yaml:"command"`    // renderer argv, default ["quarto", "render"]
	OutputDir string   `yaml:"output_dir"` // default "_site"
}

// WatchConfig groups watch-mode settings.
type WatchConfig struct {
	DebounceMillis int `yaml:"debounce_ms"` // default 300
}

// Config represents the full rapkit.yaml structure.
// All top-level sections must be listed to satisfy KnownFields(true) strict parsing.
type Config struct {
	Root      string          `yaml:"-"`       // project root, set by the loader
	Source    string          `yaml:"source"`  // docs dir relative to root, default "."
	Include   []string        `yaml:"include"` // doublestar globs, default **/*.qmd and **/*.md
	Exclude   []string        `yaml:"exclude"`
	Lint      LintConfig      `yaml:"lint"`
	Links     LinksConfig     `yaml:"links"`
	Checklist ChecklistConfig `yaml:"checklist"`
	Render    RenderConfig    `yaml:"render"`
	Watch     WatchConfig     `yaml:"watch"`
}

// DefaultConfig returns the configuration used when rapkit.yaml is absent
// or leaves sections unset. The checklist defaults mirror the external RAP
// checklists the site teaches: version-controlled docs, a README, a
// licence, and a pinned environment for each language.
func DefaultConfig() Config {
	return Config{
		Source:  ".",
		Include: []string{"**/*.qmd", "**/*.md"},
		Exclude: []string{"_site/**", "**/.quarto/**", "**/renv/**", "**/.venv/**"},
		Checklist: ChecklistConfig{
			RequiredFiles: [][]string{
				{"README.md"},
				{"LICENSE", "LICENSE.md", "LICENCE"},
				{"requirements.txt", "environment.yml", "renv.lock"},
			},
			RequiredFrontmatter: []string{"title"},
		},
		Render: RenderConfig{
			Command:   []string{"quarto", "render"},
			OutputDir: "_site",
		},
		Watch: WatchConfig{DebounceMillis: 300},
	}
}

// LoadConfig reads rapkit.yaml from root with strict field checking, so a
// typoed key is an error rather than a silently ignored setting. A missing
// file yields the defaults.
func LoadConfig(root string) (Config, error) {
	cfg := DefaultConfig()
	cfg.Root = root

	path := filepath.Join(root, DefaultConfigFile)
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}

	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil {
		return cfg, fmt.Errorf("parse %s: %w", DefaultConfigFile, err)
	}
	cfg.Root = root
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate checks settings that would otherwise fail deep inside a run.
func (c Config) Validate() error {
	if c.Source == "" {
		return fmt.Errorf("source must not be empty")
	}
	if len(c.Include) == 0 {
		return fmt.Errorf("include must list at least one glob")
	}
	for name, lc := range c.Lint.Languages {
		if lc.MaxLineLength < 0 {
			return fmt.Errorf("language %s: max_line_length must not be negative", name)
		}
		if lc.TimeoutSecs < 0 {
			return fmt.Errorf("language %s: timeout_seconds must not be negative", name)
		}
	}
	if c.Watch.DebounceMillis < 0 {
		return fmt.Errorf("watch debounce_ms must not be negative")
	}
	return nil
}

// ExternalEnabled reports whether external linters should run.
func (c LintConfig) ExternalEnabled() bool {
	return c.External == nil || *c.External
}

// LanguageEnabled reports whether a language participates in linting.
func (c LintConfig) LanguageEnabled(name string) bool {
	lc, ok := c.Languages[name]
	if !ok || lc.Enabled == nil {
		return true
	}
	return *lc.Enabled
}
