package cmd

import (
	"context"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rapkit/rapkit/lint"
	"github.com/rapkit/rapkit/site"
)

var keepShadows bool // Keep shadow files on disk for debugging

// lintCmd lints the code blocks embedded in the project's documents.
// With path arguments it restricts the run to those documents.
var lintCmd = &cobra.Command{
	Use:   "lint [paths...]",
	Short: "Lint code blocks embedded in documentation files",
	Run: func(cmd *cobra.Command, args []string) {
		cfg, docs := scanProject()
		docs = filterDocs(docs, args)

		runner := lint.NewRunner(cfg)
		runner.KeepShadows = keepShadows

		report, err := runner.Run(context.Background(), docs)
		if err != nil {
			logrus.Errorf("lint: %v", err)
			os.Exit(exitError)
		}

		if jsonOutput {
			if err := report.WriteJSON(os.Stdout); err != nil {
				logrus.Errorf("write report: %v", err)
				os.Exit(exitError)
			}
		} else if err := report.WriteText(os.Stdout); err != nil {
			logrus.Errorf("write report: %v", err)
			os.Exit(exitError)
		}

		if !report.Clean() {
			os.Exit(exitFindings)
		}
	},
}

// filterDocs restricts the document set to the requested paths. Unknown
// paths are fatal: a typo should not silently lint nothing.
func filterDocs(docs []*site.Document, paths []string) []*site.Document {
	if len(paths) == 0 {
		return docs
	}
	byPath := make(map[string]*site.Document, len(docs))
	for _, d := range docs {
		byPath[d.Path] = d
	}
	out := make([]*site.Document, 0, len(paths))
	for _, p := range paths {
		d, ok := byPath[p]
		if !ok {
			logrus.Errorf("document %s not in the scanned set", p)
			os.Exit(exitError)
		}
		out = append(out, d)
	}
	return out
}

func init() {
	lintCmd.Flags().BoolVar(&keepShadows, "keep-shadows", false, "Keep generated shadow files for inspection")
	rootCmd.AddCommand(lintCmd)
}
