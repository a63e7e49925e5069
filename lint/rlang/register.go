// Package rlang provides R support for embedded-code linting. There is
// no Go tree-sitter grammar for R in our dependency set, so R relies on
// the builtin text checks plus lintr as the external tool. lintr's
// default print form is path:line:column: message, which the external
// runner already parses.
package rlang

import "github.com/rapkit/rapkit/lint"

func init() {
	lint.RegisterLanguage(lint.Language{
		Name:          "r",
		Extension:     ".R",
		CommentPrefix: "#",
		FenceTags:     []string{"r"},
		DefaultLinter: []string{
			"Rscript", "--vanilla", "-e",
			"print(lintr::lint(commandArgs(trailingOnly = TRUE)[1]))",
		},
		MaxLineLength: 80,
	})
}
