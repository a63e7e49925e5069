// register.go wires the Python language into the lint package's registry.
// This init() runs when any package imports lint/python; cmd/ imports it
// for production use and tests blank-import it.
package python

import "github.com/rapkit/rapkit/lint"

func init() {
	lint.RegisterLanguage(lint.Language{
		Name:          "python",
		Extension:     ".py",
		CommentPrefix: "#",
		FenceTags:     []string{"python", "python3", "py"},
		DefaultLinter: []string{"flake8"},
		MaxLineLength: 79,
		SyntaxCheck:   SyntaxErrors,
	})
}
