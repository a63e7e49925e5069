package lint

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReport_SortIsStableAndTotal(t *testing.T) {
	// GIVEN findings in arbitrary order
	r := NewReport()
	r.Add(
		Diagnostic{Path: "b.qmd", Line: 1, Source: "builtin"},
		Diagnostic{Path: "a.qmd", Line: 9, Source: "builtin"},
		Diagnostic{Path: "a.qmd", Line: 2, Column: 5, Source: "flake8"},
		Diagnostic{Path: "a.qmd", Line: 2, Column: 1, Source: "flake8"},
	)

	// WHEN sorted
	r.Sort()

	// THEN ordering is path, line, column
	assert.Equal(t, "a.qmd", r.Diagnostics[0].Path)
	assert.Equal(t, 2, r.Diagnostics[0].Line)
	assert.Equal(t, 1, r.Diagnostics[0].Column)
	assert.Equal(t, 5, r.Diagnostics[1].Column)
	assert.Equal(t, 9, r.Diagnostics[2].Line)
	assert.Equal(t, "b.qmd", r.Diagnostics[3].Path)
}

func TestReport_CleanAndToolErrors(t *testing.T) {
	r := NewReport()
	assert.True(t, r.Clean())

	r.AddToolError("flake8 missing on %s", "PATH")
	assert.False(t, r.Clean())
	assert.Contains(t, r.ToolErrors[0], "flake8 missing")
}

func TestReport_WriteText(t *testing.T) {
	// GIVEN a report with one coded and one plain finding
	r := NewReport()
	r.Documents = 2
	r.Add(
		Diagnostic{Path: "a.qmd", Line: 3, Column: 2, Source: "flake8", Code: "E501", Message: "line too long"},
		Diagnostic{Path: "a.qmd", Line: 8, Source: "syntax", Message: "invalid python syntax"},
	)

	var buf bytes.Buffer
	require.NoError(t, r.WriteText(&buf))

	out := buf.String()
	assert.Contains(t, out, "a.qmd:3:2: [flake8] E501 line too long")
	assert.Contains(t, out, "a.qmd:8: [syntax] invalid python syntax")
	assert.Contains(t, out, "2 documents checked, 2 findings")
}

func TestReport_WriteJSONRoundTrips(t *testing.T) {
	r := NewReport()
	r.Documents = 1
	r.Add(Diagnostic{Path: "a.qmd", Line: 1, Source: "builtin", Code: CodeTabIndent, Message: "tab character in indentation"})

	var buf bytes.Buffer
	require.NoError(t, r.WriteJSON(&buf))

	var decoded Report
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, r.RunID, decoded.RunID)
	require.Len(t, decoded.Diagnostics, 1)
	assert.Equal(t, CodeTabIndent, decoded.Diagnostics[0].Code)
}
