package check

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rapkit/rapkit/internal/testutil"
	"github.com/rapkit/rapkit/site"
)

func project(t *testing.T, files map[string]string) (site.Config, []*site.Document) {
	t.Helper()
	root := testutil.WriteProject(t, files)
	cfg := site.DefaultConfig()
	cfg.Root = root
	cfg.Source = "docs"
	docs, err := site.Scan(cfg)
	require.NoError(t, err)
	return cfg, docs
}

func TestRun_CompliantProject(t *testing.T) {
	// GIVEN a project satisfying the default checklist
	cfg, docs := project(t, map[string]string{
		"README.md":        "# project\n",
		"LICENSE":          "MIT\n",
		"requirements.txt": "simpy==4.1.1\n",
		"docs/index.qmd":   "---\ntitle: Home\n---\ntext\n",
	})

	findings, err := Run(cfg, docs)
	require.NoError(t, err)
	assert.Empty(t, findings)
}

func TestRun_MissingRequiredFiles(t *testing.T) {
	// GIVEN a project with no licence and no environment lock
	cfg, docs := project(t, map[string]string{
		"README.md":      "# project\n",
		"docs/index.qmd": "---\ntitle: Home\n---\n",
	})

	findings, err := Run(cfg, docs)
	require.NoError(t, err)

	// THEN one finding per unsatisfied alternatives group
	require.Len(t, findings, 2)
	assert.Equal(t, "required-file", findings[0].Item)
	assert.Contains(t, findings[0].Message, "LICENSE")
	assert.Contains(t, findings[1].Message, "requirements.txt")
}

func TestRun_AlternativeFileSatisfiesGroup(t *testing.T) {
	// GIVEN renv.lock instead of requirements.txt
	cfg, docs := project(t, map[string]string{
		"README.md":      "# p\n",
		"LICENSE":        "MIT\n",
		"renv.lock":      "{}\n",
		"docs/index.qmd": "---\ntitle: Home\n---\n",
	})

	findings, err := Run(cfg, docs)
	require.NoError(t, err)
	assert.Empty(t, findings)
}

func TestRun_MissingFrontmatterTitle(t *testing.T) {
	// GIVEN one document without frontmatter and one missing the title key
	cfg, docs := project(t, map[string]string{
		"README.md":         "# p\n",
		"LICENSE":           "MIT\n",
		"requirements.txt":  "simpy\n",
		"docs/bare.qmd":     "no frontmatter here\n",
		"docs/untitled.qmd": "---\nauthor: x\n---\n",
	})

	findings, err := Run(cfg, docs)
	require.NoError(t, err)

	require.Len(t, findings, 2)
	assert.Equal(t, "required-frontmatter", findings[0].Item)
	assert.Equal(t, "bare.qmd", findings[0].Path)
	assert.Contains(t, findings[0].Message, "no frontmatter")
	assert.Equal(t, "untitled.qmd", findings[1].Path)
	assert.Contains(t, findings[1].Message, `"title"`)
}

func TestRun_ForbiddenPatternInCodeOnly(t *testing.T) {
	// GIVEN an absolute local path in a code block and in prose
	cfg, docs := project(t, map[string]string{
		"README.md":        "# p\n",
		"LICENSE":          "MIT\n",
		"requirements.txt": "simpy\n",
		"docs/page.qmd": "---\ntitle: T\n---\n" +
			"Never write /home/alice/data in your scripts.\n" +
			"```{python}\n" +
			"df = read_csv('/home/alice/data.csv')\n" +
			"```\n",
	})
	cfg.Checklist.ForbiddenPatterns = []string{`/home/\w+`}

	findings, err := Run(cfg, docs)
	require.NoError(t, err)

	// THEN only the code occurrence is flagged, prose is fine
	require.Len(t, findings, 1)
	assert.Equal(t, "forbidden-pattern", findings[0].Item)
	assert.Equal(t, "page.qmd", findings[0].Path)
	assert.Equal(t, 6, findings[0].Line)
}

func TestRun_InvalidForbiddenPatternIsError(t *testing.T) {
	cfg, docs := project(t, map[string]string{"docs/index.qmd": "---\ntitle: T\n---\n"})
	cfg.Checklist.ForbiddenPatterns = []string{"("}

	_, err := Run(cfg, docs)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "forbidden pattern")
}
