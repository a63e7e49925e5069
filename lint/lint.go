package lint

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/rapkit/rapkit/extract"
	"github.com/rapkit/rapkit/site"
)

// Runner lints the embedded code blocks of a document set.
type Runner struct {
	cfg site.Config

	// KeepShadows leaves the shadow files on disk after the run and logs
	// their location, for debugging linter behavior.
	KeepShadows bool
}

// NewRunner creates a Runner for the given project configuration.
func NewRunner(cfg site.Config) *Runner {
	return &Runner{cfg: cfg}
}

// Run lints every document and returns the aggregated report. All
// findings are collected; nothing short-circuits on the first problem.
// An error return means the run itself could not complete (workdir,
// shadow invariant), not that findings exist.
func (r *Runner) Run(ctx context.Context, docs []*site.Document) (*Report, error) {
	workDir, err := os.MkdirTemp("", "rapkit-shadow-")
	if err != nil {
		return nil, fmt.Errorf("create shadow workdir: %w", err)
	}
	if r.KeepShadows {
		logrus.Infof("keeping shadow files in %s", workDir)
	} else {
		defer func() { _ = os.RemoveAll(workDir) }()
	}

	report := NewReport()
	report.Documents = len(docs)

	for _, doc := range docs {
		if err := r.lintDocument(ctx, doc, workDir, report); err != nil {
			return nil, err
		}
	}

	report.Sort()
	return report, nil
}

func (r *Runner) lintDocument(ctx context.Context, doc *site.Document, workDir string, report *Report) error {
	blocks := extract.Blocks(doc.Lines)
	if len(blocks) == 0 {
		logrus.Debugf("%s: no code blocks", doc.Path)
		return nil
	}

	for _, registered := range Languages() {
		if !r.cfg.Lint.LanguageEnabled(registered.Name) {
			continue
		}
		lang := applyConfig(registered, r.cfg.Lint.Languages[registered.Name])

		matching := extract.ByLang(blocks, lang.FenceTags...)
		if len(matching) == 0 {
			continue
		}
		logrus.Debugf("%s: %d %s block(s)", doc.Path, len(matching), lang.Name)

		report.Add(builtinChecks(doc.Path, matching, lang.MaxLineLength)...)

		shadow := extract.Shadow(doc.Lines, blocks, lang.CommentPrefix, lang.FenceTags...)
		if err := extract.VerifyShadow(shadow, doc.Lines, blocks, lang.FenceTags...); err != nil {
			return fmt.Errorf("%s: shadow rendering broke line correspondence: %w", doc.Path, err)
		}

		if lang.SyntaxCheck != nil {
			diags, err := lang.SyntaxCheck(ctx, doc.Path, []byte(shadow))
			if err != nil {
				report.AddToolError("%s: %s syntax check: %v", doc.Path, lang.Name, err)
			} else {
				report.Add(diags...)
			}
		}

		if r.cfg.Lint.ExternalEnabled() && len(lang.DefaultLinter) > 0 {
			if err := r.runExternalLinter(ctx, doc, lang, shadow, workDir, report); err != nil {
				return err
			}
		}
	}
	return nil
}

// runExternalLinter writes the shadow file under the workdir, mirroring
// the document's relative path so tool output stays readable, then runs
// the configured linter and remaps findings to document coordinates.
func (r *Runner) runExternalLinter(ctx context.Context, doc *site.Document, lang Language, shadow, workDir string, report *Report) error {
	shadowPath := filepath.Join(workDir, filepath.FromSlash(doc.Path)+lang.Extension)
	if err := os.MkdirAll(filepath.Dir(shadowPath), 0o755); err != nil {
		return fmt.Errorf("create shadow dir: %w", err)
	}
	if err := os.WriteFile(shadowPath, []byte(shadow), 0o644); err != nil {
		return fmt.Errorf("write shadow file: %w", err)
	}

	timeout := time.Duration(r.cfg.Lint.Languages[lang.Name].TimeoutSecs) * time.Second
	diags, err := runExternal(ctx, lang.DefaultLinter, shadowPath, timeout)
	if err != nil {
		report.AddToolError("%s (%s): %v", doc.Path, lang.Name, err)
		return nil
	}
	for i := range diags {
		diags[i].Path = doc.Path
	}
	report.Add(diags...)
	return nil
}
