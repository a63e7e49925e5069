package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rapkit/rapkit/links"
)

// linksCmd validates all internal markdown links in the document set.
var linksCmd = &cobra.Command{
	Use:   "links",
	Short: "Check internal links across the documentation",
	Run: func(cmd *cobra.Command, args []string) {
		cfg, docs := scanProject()

		broken, err := links.Check(cfg, docs)
		if err != nil {
			logrus.Errorf("links: %v", err)
			os.Exit(exitError)
		}

		if jsonOutput {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			if err := enc.Encode(broken); err != nil {
				logrus.Errorf("write report: %v", err)
				os.Exit(exitError)
			}
		} else {
			for _, b := range broken {
				fmt.Println(b.String())
			}
			fmt.Printf("%d documents checked, %d broken links\n", len(docs), len(broken))
		}

		if len(broken) > 0 {
			os.Exit(exitFindings)
		}
	},
}

func init() {
	rootCmd.AddCommand(linksCmd)
}
