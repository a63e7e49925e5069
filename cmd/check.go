package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rapkit/rapkit/check"
)

// checkCmd audits the project against the configured reproducibility
// checklist.
var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Audit the project against the reproducibility checklist",
	Run: func(cmd *cobra.Command, args []string) {
		cfg, docs := scanProject()

		findings, err := check.Run(cfg, docs)
		if err != nil {
			logrus.Errorf("check: %v", err)
			os.Exit(exitError)
		}

		if jsonOutput {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			if err := enc.Encode(findings); err != nil {
				logrus.Errorf("write report: %v", err)
				os.Exit(exitError)
			}
		} else {
			for _, f := range findings {
				fmt.Println(f.String())
			}
			fmt.Printf("%d documents checked, %d checklist failures\n", len(docs), len(findings))
		}

		if len(findings) > 0 {
			os.Exit(exitFindings)
		}
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)
}
