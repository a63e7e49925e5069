package cmd

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rapkit/rapkit/site"

	// Language sub-packages register themselves with the lint registry.
	_ "github.com/rapkit/rapkit/lint/python"
	_ "github.com/rapkit/rapkit/lint/rlang"
)

// Exit codes shared by all subcommands.
const (
	exitOK       = 0
	exitFindings = 1 // lint/links/check found problems in the documents
	exitError    = 2 // the tool itself failed (config, workdir, renderer)
)

var (
	projectRoot string // Project root containing rapkit.yaml
	logLevel    string // Log verbosity level
	jsonOutput  bool   // Emit JSON instead of text reports
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "rapkit",
	Short: "Lint, link-check and build tooling for reproducible-DES documentation sites",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level, err := logrus.ParseLevel(logLevel)
		if err != nil {
			logrus.Fatalf("Invalid log level: %s", logLevel)
		}
		logrus.SetLevel(level)
	},
}

// loadProject loads rapkit.yaml from the project root, exiting with a
// tool error when the config is unreadable or invalid.
func loadProject() site.Config {
	cfg, err := site.LoadConfig(projectRoot)
	if err != nil {
		logrus.Errorf("config: %v", err)
		os.Exit(exitError)
	}
	return cfg
}

// scanProject loads the config and the document set it selects.
func scanProject() (site.Config, []*site.Document) {
	cfg := loadProject()
	docs, err := site.Scan(cfg)
	if err != nil {
		logrus.Errorf("scan: %v", err)
		os.Exit(exitError)
	}
	if len(docs) == 0 {
		logrus.Warnf("no documents matched under %s", cfg.SourceDir())
	}
	return cfg, docs
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(exitError)
	}
}

// init sets up global CLI flags
func init() {
	rootCmd.PersistentFlags().StringVarP(&projectRoot, "project", "C", ".", "Project root directory (contains rapkit.yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log", "warning", "Log level (trace, debug, info, warn, error, fatal, panic)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Emit JSON reports")
}
