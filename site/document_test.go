package site

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_Frontmatter(t *testing.T) {
	// GIVEN a document with YAML frontmatter
	content := "---\ntitle: Input modelling\nauthor: stars\n---\n\n# Heading\n\nProse.\n"

	// WHEN it is parsed
	doc := Parse("pages/input.qmd", []byte(content))

	// THEN the frontmatter and delimiters are identified
	require.NotNil(t, doc.Frontmatter)
	assert.Equal(t, "Input modelling", doc.Title())
	assert.Equal(t, "stars", doc.Frontmatter["author"])
	assert.Equal(t, 4, doc.FrontmatterEnd)

	// THEN every source line is retained, frontmatter included
	assert.Len(t, doc.Lines, 8)
	assert.Equal(t, "# Heading", doc.Body()[1])
}

func TestParse_NoFrontmatter(t *testing.T) {
	// GIVEN a plain markdown document
	doc := Parse("README.md", []byte("# rapkit\n\nDocs tooling.\n"))

	// THEN there is no frontmatter and the body is the whole file
	assert.Nil(t, doc.Frontmatter)
	assert.Equal(t, 0, doc.FrontmatterEnd)
	assert.Len(t, doc.Body(), 3)
	assert.Equal(t, "", doc.Title())
}

func TestParse_InvalidFrontmatterFallsBack(t *testing.T) {
	// GIVEN frontmatter that is not valid YAML
	content := "---\ntitle: [unbalanced\n---\nbody\n"

	// WHEN it is parsed
	doc := Parse("broken.qmd", []byte(content))

	// THEN the whole file is treated as body rather than failing the load
	assert.Nil(t, doc.Frontmatter)
	assert.Equal(t, 0, doc.FrontmatterEnd)
	assert.Len(t, doc.Lines, 4)
}

func TestParse_UnterminatedFrontmatter(t *testing.T) {
	// GIVEN an opening delimiter with no closing one
	doc := Parse("open.qmd", []byte("---\ntitle: x\n\nbody only\n"))

	// THEN no frontmatter is extracted
	assert.Nil(t, doc.Frontmatter)
	assert.Equal(t, 0, doc.FrontmatterEnd)
}

func TestSplitLines(t *testing.T) {
	// GIVEN content with a trailing newline
	lines := SplitLines("a\nb\n")

	// THEN no phantom empty final line is produced
	assert.Equal(t, []string{"a", "b"}, lines)

	// GIVEN content without a trailing newline
	assert.Equal(t, []string{"a", "b"}, SplitLines("a\nb"))

	// GIVEN empty content
	assert.Nil(t, SplitLines(""))
}
