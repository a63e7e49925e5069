// Package render drives the external site renderer (quarto by default)
// and verifies that a build actually produced output. It is the command
// the CI pipeline runs after the lint/links/check gate passes.
package render

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"github.com/rapkit/rapkit/site"
)

// Run invokes the configured render command in the project root,
// streaming its output through the logger, then checks that the output
// directory exists and is non-empty.
func Run(ctx context.Context, cfg site.Config) error {
	argv := cfg.Render.Command
	if len(argv) == 0 {
		return fmt.Errorf("render command not configured")
	}

	logrus.Infof("rendering site: %v", argv)
	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	cmd.Dir = cfg.Root

	// Route renderer output through the logger so --log controls it.
	logWriter := logrus.StandardLogger().WriterLevel(logrus.InfoLevel)
	defer func() { _ = logWriter.Close() }()
	cmd.Stdout = logWriter
	cmd.Stderr = logWriter

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("renderer %s failed: %w", argv[0], err)
	}

	return VerifyOutput(cfg)
}

// VerifyOutput confirms the configured output directory exists and
// contains at least one entry. Renderers have been known to exit zero
// after writing nothing when handed an empty project.
func VerifyOutput(cfg site.Config) error {
	dir := filepath.Join(cfg.Root, cfg.Render.OutputDir)
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("output dir %s: %w", cfg.Render.OutputDir, err)
	}
	if len(entries) == 0 {
		return fmt.Errorf("output dir %s is empty after render", cfg.Render.OutputDir)
	}
	logrus.Infof("render output verified: %d entries in %s", len(entries), cfg.Render.OutputDir)
	return nil
}
