package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/alnah/go-docxtable/internal/docx"
)

// fixedNow is the clock used by test environments.
var fixedNow = time.Date(2026, 5, 4, 10, 30, 0, 0, time.UTC)

// testEnv returns an Environment that reads stdin and captures output.
func testEnv(stdin string) (*Environment, *bytes.Buffer, *bytes.Buffer) {
	var stdout, stderr bytes.Buffer
	return &Environment{
		Now:    func() time.Time { return fixedNow },
		Stdin:  strings.NewReader(stdin),
		Stdout: &stdout,
		Stderr: &stderr,
	}, &stdout, &stderr
}

// writeFile creates path with content, including parent directories.
func writeFile(t *testing.T, path, content string) string {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		t.Fatalf("creating dir for %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
	return path
}

// readTables returns the tables of the document at path.
func readTables(t *testing.T, path string) []docx.TableSummary {
	t.Helper()
	pkg, err := docx.Open(path)
	if err != nil {
		t.Fatalf("docx.Open(%s) error = %v", path, err)
	}
	body, ok := pkg.Part(docx.DocumentPart)
	if !ok {
		t.Fatalf("%s has no document part", path)
	}
	tables, err := docx.ReadTables(body)
	if err != nil {
		t.Fatalf("ReadTables() error = %v", err)
	}
	return tables
}

const sampleCSV = "Sample,Mass (mg),Rate (mL s-1)\nA,1.5,0.2\nB,2.25,0.4\n"
