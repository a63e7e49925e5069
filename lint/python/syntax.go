// Package python provides Python support for embedded-code linting:
// registry defaults plus a tree-sitter syntax check that works without
// a Python toolchain installed.
package python

import (
	"context"
	"fmt"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/python"

	"github.com/rapkit/rapkit/lint"
)

// SyntaxErrors parses shadow source with tree-sitter and reports ERROR
// and MISSING nodes. Coordinates are 1-based and, because the shadow
// preserves line correspondence, point directly into the document.
func SyntaxErrors(ctx context.Context, path string, src []byte) ([]lint.Diagnostic, error) {
	parser := sitter.NewParser()
	parser.SetLanguage(python.GetLanguage())

	tree, err := parser.ParseCtx(ctx, nil, src)
	if err != nil {
		return nil, fmt.Errorf("parse python: %w", err)
	}
	defer tree.Close()

	root := tree.RootNode()
	if !root.HasError() {
		return nil, nil
	}

	var diags []lint.Diagnostic
	collectErrors(root, path, &diags)
	return diags, nil
}

// collectErrors walks only subtrees that contain errors and emits one
// diagnostic per error region rather than descending into the garbage
// inside an ERROR node.
func collectErrors(n *sitter.Node, path string, diags *[]lint.Diagnostic) {
	if n == nil || !n.HasError() {
		return
	}
	if n.IsMissing() {
		*diags = append(*diags, lint.Diagnostic{
			Path:    path,
			Line:    int(n.StartPoint().Row) + 1,
			Column:  int(n.StartPoint().Column) + 1,
			Source:  "syntax",
			Message: fmt.Sprintf("missing %q", n.Type()),
		})
		return
	}
	if n.Type() == "ERROR" {
		*diags = append(*diags, lint.Diagnostic{
			Path:    path,
			Line:    int(n.StartPoint().Row) + 1,
			Column:  int(n.StartPoint().Column) + 1,
			Source:  "syntax",
			Message: "invalid python syntax",
		})
		return
	}
	for i := 0; i < int(n.ChildCount()); i++ {
		collectErrors(n.Child(i), path, diags)
	}
}
