package lint

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"

	"github.com/google/uuid"
)

// Diagnostic is a single finding, always in document coordinates: Path
// and Line refer to the .qmd/.md source, never to a shadow file.
type Diagnostic struct {
	Path    string `json:"path"`
	Line    int    `json:"line"`
	Column  int    `json:"column,omitempty"`
	Source  string `json:"source"`         // "builtin", "syntax", or the external tool name
	Code    string `json:"code,omitempty"` // tool code such as E501, empty for plain messages
	Message string `json:"message"`
}

func (d Diagnostic) String() string {
	loc := fmt.Sprintf("%s:%d", d.Path, d.Line)
	if d.Column > 0 {
		loc = fmt.Sprintf("%s:%d", loc, d.Column)
	}
	if d.Code != "" {
		return fmt.Sprintf("%s: [%s] %s %s", loc, d.Source, d.Code, d.Message)
	}
	return fmt.Sprintf("%s: [%s] %s", loc, d.Source, d.Message)
}

// Report aggregates one lint run. ToolErrors records external tools that
// could not run at all (missing binary, timeout); they make the run fail
// with a tool error rather than masquerading as a clean result.
type Report struct {
	RunID       string       `json:"run_id"`
	Documents   int          `json:"documents"`
	Diagnostics []Diagnostic `json:"diagnostics"`
	ToolErrors  []string     `json:"tool_errors,omitempty"`
}

// NewReport creates an empty report with a fresh run ID.
func NewReport() *Report {
	return &Report{RunID: uuid.NewString()}
}

// Add appends diagnostics to the report.
func (r *Report) Add(ds ...Diagnostic) {
	r.Diagnostics = append(r.Diagnostics, ds...)
}

// AddToolError records an external tool failure.
func (r *Report) AddToolError(format string, args ...any) {
	r.ToolErrors = append(r.ToolErrors, fmt.Sprintf(format, args...))
}

// Clean reports whether the run produced no findings and no tool errors.
func (r *Report) Clean() bool {
	return len(r.Diagnostics) == 0 && len(r.ToolErrors) == 0
}

// Sort orders diagnostics by path, line, column, source, code. Reports
// are sorted before output so runs are byte-for-byte comparable.
func (r *Report) Sort() {
	sort.SliceStable(r.Diagnostics, func(i, j int) bool {
		a, b := r.Diagnostics[i], r.Diagnostics[j]
		if a.Path != b.Path {
			return a.Path < b.Path
		}
		if a.Line != b.Line {
			return a.Line < b.Line
		}
		if a.Column != b.Column {
			return a.Column < b.Column
		}
		if a.Source != b.Source {
			return a.Source < b.Source
		}
		return a.Code < b.Code
	})
}

// WriteText prints the report in flake8-like one-line-per-finding form.
func (r *Report) WriteText(w io.Writer) error {
	for _, d := range r.Diagnostics {
		if _, err := fmt.Fprintln(w, d.String()); err != nil {
			return err
		}
	}
	for _, te := range r.ToolErrors {
		if _, err := fmt.Fprintf(w, "tool error: %s\n", te); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(w, "%d documents checked, %d findings\n", r.Documents, len(r.Diagnostics))
	return err
}

// WriteJSON prints the report as indented JSON.
func (r *Report) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}
