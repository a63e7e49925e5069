// Package testutil provides shared test infrastructure for rapkit.
// It consolidates the golden lint-report types and project-fixture
// helpers used across package tests.
package testutil

import (
	"encoding/json"
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

// GoldenReport mirrors lint.Report's JSON shape, minus the per-run ID.
type GoldenReport struct {
	Documents   int                `json:"documents"`
	Diagnostics []GoldenDiagnostic `json:"diagnostics"`
}

// GoldenDiagnostic is one expected finding in document coordinates.
type GoldenDiagnostic struct {
	Path    string `json:"path"`
	Line    int    `json:"line"`
	Column  int    `json:"column,omitempty"`
	Source  string `json:"source"`
	Code    string `json:"code,omitempty"`
	Message string `json:"message"`
}

// LoadGoldenReport loads a golden report from the repo-root testdata
// directory. The path is resolved relative to this source file:
// internal/testutil/ → testdata/.
func LoadGoldenReport(t *testing.T, name string) *GoldenReport {
	t.Helper()

	_, thisFile, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("Failed to get current file path")
	}
	path := filepath.Join(filepath.Dir(thisFile), "..", "..", "testdata", name)
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read golden report: %v", err)
	}

	var report GoldenReport
	if err := json.Unmarshal(data, &report); err != nil {
		t.Fatalf("Failed to parse golden report: %v", err)
	}
	return &report
}

// WriteProject materializes a project fixture in a temp dir. Keys are
// slash-separated paths relative to the project root.
func WriteProject(t *testing.T, files map[string]string) string {
	t.Helper()

	root := t.TempDir()
	for rel, content := range files {
		path := filepath.Join(root, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("Failed to create fixture dir: %v", err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatalf("Failed to write fixture file: %v", err)
		}
	}
	return root
}
