package cmd

import (
	"context"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rapkit/rapkit/check"
	"github.com/rapkit/rapkit/links"
	"github.com/rapkit/rapkit/lint"
	"github.com/rapkit/rapkit/render"
)

var checkOnly bool // Run the CI gate without rendering

// renderCmd runs the full pipeline the CI workflow uses: lint + links +
// checklist as a gate, then the external site renderer.
var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Run the CI gate and build the site with the configured renderer",
	Run: func(cmd *cobra.Command, args []string) {
		cfg, docs := scanProject()
		ctx := context.Background()

		report, err := lint.NewRunner(cfg).Run(ctx, docs)
		if err != nil {
			logrus.Errorf("lint: %v", err)
			os.Exit(exitError)
		}
		broken, err := links.Check(cfg, docs)
		if err != nil {
			logrus.Errorf("links: %v", err)
			os.Exit(exitError)
		}
		findings, err := check.Run(cfg, docs)
		if err != nil {
			logrus.Errorf("check: %v", err)
			os.Exit(exitError)
		}

		gateFailed := !report.Clean() || len(broken) > 0 || len(findings) > 0
		if gateFailed {
			_ = report.WriteText(os.Stderr)
			for _, b := range broken {
				logrus.Error(b.String())
			}
			for _, f := range findings {
				logrus.Error(f.String())
			}
			logrus.Error("gate failed; not rendering")
			os.Exit(exitFindings)
		}
		logrus.Infof("gate passed: %d documents clean", len(docs))

		if checkOnly {
			return
		}

		if err := render.Run(ctx, cfg); err != nil {
			logrus.Errorf("render: %v", err)
			os.Exit(exitError)
		}
	},
}

func init() {
	renderCmd.Flags().BoolVar(&checkOnly, "check-only", false, "Run lint, links and checklist without rendering")
	rootCmd.AddCommand(renderCmd)
}
