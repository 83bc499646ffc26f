package main

import (
	"errors"
	"io"
	"testing"

	flag "github.com/spf13/pflag"
)

// ---------------------------------------------------------------------------
// TestParseConvertFlags - Flag parsing
// ---------------------------------------------------------------------------

func TestParseConvertFlags_Defaults(t *testing.T) {
	t.Parallel()

	f, positional, err := parseConvertFlags([]string{"data.csv"}, io.Discard)
	if err != nil {
		t.Fatalf("parseConvertFlags() error = %v", err)
	}
	if len(positional) != 1 || positional[0] != "data.csv" {
		t.Errorf("positional = %v, want [data.csv]", positional)
	}
	if f.input.headerRows != headerRowsUnset {
		t.Errorf("headerRows = %d, want unset sentinel", f.input.headerRows)
	}
	if f.table.caption != "Table 1" {
		t.Errorf("caption = %q, want %q", f.table.caption, "Table 1")
	}
	if f.style.noSpecial || f.style.stackedHeader || f.table.includeIndex {
		t.Error("boolean flags should default to false")
	}
}

func TestParseConvertFlags_Values(t *testing.T) {
	t.Parallel()

	args := []string{
		"-", "-o", "out.docx", "-m", "overwrite", "-c", "lab",
		"--header-rows", "0", "--sheet", "Summary", "-d", "tab", "--encoding", "gbk", "--index-column", "2",
		"--caption", "Table 3-1", "--description", "Yield of *E. coli*", "--headers", "A,B,C", "--include-index",
		"--font", "Arial", "--east-asia-font", "KaiTi", "--font-size", "10.5", "--border-width", "1.5",
		"--border-color", "#1F4E79", "--header-bg", "D9D9D9", "--caption-align", "center", "--cell-align", "right",
		"--no-caption-bold", "--no-header-bold", "--no-special", "--stacked-header", "--page-break",
		"-p", "letter", "--orientation", "landscape", "--margin", "2", "--asset-path", "assets", "-q",
	}
	f, positional, err := parseConvertFlags(args, io.Discard)
	if err != nil {
		t.Fatalf("parseConvertFlags() error = %v", err)
	}

	if len(positional) != 1 || positional[0] != "-" {
		t.Errorf("positional = %v, want [-]", positional)
	}
	checks := []struct {
		name string
		got  any
		want any
	}{
		{"output", f.output.path, "out.docx"},
		{"mode", f.output.mode, "overwrite"},
		{"config", f.common.config, "lab"},
		{"headerRows", f.input.headerRows, 0},
		{"sheet", f.input.sheet, "Summary"},
		{"delimiter", f.input.delimiter, "tab"},
		{"encoding", f.input.encoding, "gbk"},
		{"indexColumn", f.input.indexColumn, 2},
		{"caption", f.table.caption, "Table 3-1"},
		{"description", f.table.description, "Yield of *E. coli*"},
		{"headers", len(f.table.headers), 3},
		{"includeIndex", f.table.includeIndex, true},
		{"font", f.style.font, "Arial"},
		{"eastAsiaFont", f.style.eastAsiaFont, "KaiTi"},
		{"fontSize", f.style.fontSize, 10.5},
		{"borderWidth", f.style.borderWidth, 1.5},
		{"borderColor", f.style.borderColor, "#1F4E79"},
		{"headerBg", f.style.headerBg, "D9D9D9"},
		{"captionAlign", f.style.captionAlign, "center"},
		{"cellAlign", f.style.cellAlign, "right"},
		{"noCaptionBold", f.style.noCaptionBold, true},
		{"noHeaderBold", f.style.noHeaderBold, true},
		{"noSpecial", f.style.noSpecial, true},
		{"stackedHeader", f.style.stackedHeader, true},
		{"pageBreakAfter", f.style.pageBreakAfter, true},
		{"pageSize", f.page.size, "letter"},
		{"orientation", f.page.orientation, "landscape"},
		{"margin", f.page.margin, 2.0},
		{"assetPath", f.output.assetPath, "assets"},
		{"quiet", f.common.quiet, true},
	}
	for _, c := range checks {
		if c.got != c.want {
			t.Errorf("%s = %v, want %v", c.name, c.got, c.want)
		}
	}
}

func TestParseConvertFlags_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		args    []string
		wantErr error
	}{
		{"unknown flag", []string{"--nope"}, ErrInvalidArgs},
		{"bad int", []string{"--header-rows", "two"}, ErrInvalidArgs},
		{"bad float", []string{"--font-size", "big"}, ErrInvalidArgs},
		{"help", []string{"--help"}, flag.ErrHelp},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, _, err := parseConvertFlags(tt.args, io.Discard)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestParseBatchFlags - Batch flag parsing
// ---------------------------------------------------------------------------

func TestParseBatchFlags(t *testing.T) {
	t.Parallel()

	f, positional, err := parseBatchFlags([]string{"tables.yaml", "--separate", "-w", "4", "--font", "Arial", "-v"}, io.Discard)
	if err != nil {
		t.Fatalf("parseBatchFlags() error = %v", err)
	}
	if len(positional) != 1 || positional[0] != "tables.yaml" {
		t.Errorf("positional = %v, want [tables.yaml]", positional)
	}
	if !f.separate || f.workers != 4 || f.style.font != "Arial" || !f.common.verbose {
		t.Errorf("flags = %+v, want separate, 4 workers, Arial, verbose", f)
	}

	if _, _, err := parseBatchFlags([]string{"--sheet", "x"}, io.Discard); !errors.Is(err, ErrInvalidArgs) {
		t.Errorf("input flags on batch: error = %v, want ErrInvalidArgs", err)
	}
}
