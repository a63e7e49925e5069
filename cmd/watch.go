package cmd

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rapkit/rapkit/links"
	"github.com/rapkit/rapkit/lint"
	"github.com/rapkit/rapkit/site"
	"github.com/rapkit/rapkit/watch"
)

// watchCmd re-lints changed documents until interrupted.
var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Re-run lint and link checks when documents change",
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadProject()

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		debounce := time.Duration(cfg.Watch.DebounceMillis) * time.Millisecond
		w, err := watch.New(cfg.SourceDir(), debounce, func(ctx context.Context, paths []string) {
			recheck(ctx, cfg, paths)
		})
		if err != nil {
			logrus.Errorf("watch: %v", err)
			os.Exit(exitError)
		}

		if err := w.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			logrus.Errorf("watch: %v", err)
			os.Exit(exitError)
		}
	},
}

// recheck lints and link-checks just the changed documents. Failures are
// logged, not fatal: the watcher keeps running so the author can fix and
// save again.
func recheck(ctx context.Context, cfg site.Config, paths []string) {
	var docs []*site.Document
	for _, p := range paths {
		doc, err := site.Load(filepath.Join(cfg.SourceDir(), filepath.FromSlash(p)))
		if err != nil {
			logrus.Warnf("%s: %v", p, err)
			continue
		}
		doc.Path = p
		docs = append(docs, doc)
	}
	if len(docs) == 0 {
		return
	}

	report, err := lint.NewRunner(cfg).Run(ctx, docs)
	if err != nil {
		logrus.Errorf("lint: %v", err)
		return
	}
	broken, err := links.Check(cfg, docs)
	if err != nil {
		logrus.Errorf("links: %v", err)
		return
	}

	for _, d := range report.Diagnostics {
		logrus.Warn(d.String())
	}
	for _, te := range report.ToolErrors {
		logrus.Warnf("tool error: %s", te)
	}
	for _, b := range broken {
		logrus.Warn(b.String())
	}
	if report.Clean() && len(broken) == 0 {
		logrus.Infof("%d document(s) clean", len(docs))
	}
}

func init() {
	rootCmd.AddCommand(watchCmd)
}
