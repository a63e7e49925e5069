package lint

import (
	"context"
	"sort"

	"github.com/rapkit/rapkit/site"
)

// SyntaxCheckFunc validates shadow source and returns findings in shadow
// (= document) line coordinates. path is used only for reporting.
type SyntaxCheckFunc func(ctx context.Context, path string, src []byte) ([]Diagnostic, error)

// Language describes one lintable embedded-code language.
type Language struct {
	Name          string   // registry key, e.g. "python"
	Extension     string   // shadow file extension, e.g. ".py"
	CommentPrefix string   // filler for non-code shadow lines
	FenceTags     []string // fence info tags owned by this language
	DefaultLinter []string // external linter argv, shadow path appended
	MaxLineLength int      // builtin long-line threshold
	SyntaxCheck   SyntaxCheckFunc
}

// languages is populated by language sub-packages at init time.
var languages = make(map[string]Language)

// RegisterLanguage adds a language to the registry. Called from the
// init() of lint/python and lint/rlang; a duplicate name panics because
// it can only be a programming error.
func RegisterLanguage(l Language) {
	if _, dup := languages[l.Name]; dup {
		panic("lint: duplicate language " + l.Name)
	}
	languages[l.Name] = l
}

// Languages returns registered languages sorted by name.
func Languages() []Language {
	names := make([]string, 0, len(languages))
	for n := range languages {
		names = append(names, n)
	}
	sort.Strings(names)
	out := make([]Language, 0, len(names))
	for _, n := range names {
		out = append(out, languages[n])
	}
	return out
}

// LookupLanguage returns a registered language by name.
func LookupLanguage(name string) (Language, bool) {
	l, ok := languages[name]
	return l, ok
}

// applyConfig overlays rapkit.yaml overrides onto the registered
// language defaults.
func applyConfig(l Language, cfg site.LanguageConfig) Language {
	if len(cfg.Linter) > 0 {
		l.DefaultLinter = cfg.Linter
	}
	if cfg.MaxLineLength > 0 {
		l.MaxLineLength = cfg.MaxLineLength
	}
	return l
}
