// Package site models a markdown/Quarto documentation project.
//
// # Reading Guide
//
// Start with these three files:
//   - document.go: Document model (frontmatter + line-indexed body)
//   - config.go: rapkit.yaml loading with strict field checking
//   - scan.go: glob-driven discovery of .qmd/.md source documents
//
// Downstream packages (extract/, lint/, links/, check/) operate on the
// Document and Config types defined here and never touch the filesystem
// layout directly.
package site
