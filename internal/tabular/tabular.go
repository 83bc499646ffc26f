// Package tabular reads delimited text, spreadsheets, and Markdown tables
// into a cleaned cell grid.
package tabular

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Sentinel errors for reading sources.
var (
	ErrUnsupportedFormat = errors.New("unsupported input format")
	ErrUnparseable       = errors.New("input is not tabular")
	ErrSheetNotFound     = errors.New("sheet not found")
	ErrUnknownEncoding   = errors.New("unknown encoding")
)

// Grid is a rectangular table of cell text, row major.
type Grid [][]string

// Width returns the column count (rows are padded by Clean).
func (g Grid) Width() int {
	if len(g) == 0 {
		return 0
	}
	return len(g[0])
}

// Format identifies a source file type.
type Format int

const (
	FormatDelimited Format = iota
	FormatXLSX
	FormatXLS
	FormatMarkdown
)

func (f Format) String() string {
	switch f {
	case FormatXLSX:
		return "xlsx"
	case FormatXLS:
		return "xls"
	case FormatMarkdown:
		return "markdown"
	default:
		return "delimited"
	}
}

// Options controls how a source is read.
type Options struct {
	Sheet     string // name or 1-based index; empty selects the first
	Delimiter rune   // 0 detects from the first line
	Encoding  string // see Decode
}

// FormatOf maps a file extension to a Format.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv", ".tsv", ".txt":
		return FormatDelimited, nil
	case ".xlsx", ".xlsm":
		return FormatXLSX, nil
	case ".xls":
		return FormatXLS, nil
	case ".md", ".markdown":
		return FormatMarkdown, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(path))
	}
}

// ReadFile reads path according to its extension and returns a cleaned grid.
// A missing file yields an error matching os.ErrNotExist.
func ReadFile(path string, opts Options) (Grid, error) {
	format, err := FormatOf(path)
	if err != nil {
		return nil, err
	}
	if _, err := os.Stat(path); err != nil {
		return nil, err
	}

	var grid Grid
	switch format {
	case FormatXLSX:
		grid, err = readXLSX(path, opts.Sheet)
	case FormatXLS:
		grid, err = readXLS(path, opts.Sheet)
	case FormatMarkdown:
		grid, err = readMarkdownFile(path)
	default:
		if opts.Delimiter == 0 && strings.EqualFold(filepath.Ext(path), ".tsv") {
			opts.Delimiter = '\t'
		}
		grid, err = readDelimitedFile(path, opts)
	}
	if err != nil {
		return nil, err
	}
	return nonEmpty(Clean(grid))
}

func readMarkdownFile(path string) (Grid, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- user-provided input path
	if err != nil {
		return nil, err
	}
	return readMarkdownText(string(data))
}

// Clean trims and NFC-normalizes every cell, drops trailing empty rows and
// columns, and pads ragged rows to a common width.
func Clean(grid Grid) Grid {
	out := make(Grid, 0, len(grid))
	width := 0
	for _, row := range grid {
		cells := make([]string, len(row))
		last := -1
		for i, c := range row {
			cells[i] = norm.NFC.String(strings.TrimSpace(c))
			if cells[i] != "" {
				last = i
			}
		}
		if last+1 > width {
			width = last + 1
		}
		out = append(out, cells)
	}

	for len(out) > 0 && isBlank(out[len(out)-1]) {
		out = out[:len(out)-1]
	}
	for i, row := range out {
		switch {
		case len(row) > width:
			out[i] = row[:width]
		case len(row) < width:
			out[i] = append(row, make([]string, width-len(row))...)
		}
	}
	return out
}

func isBlank(row []string) bool {
	for _, c := range row {
		if c != "" {
			return false
		}
	}
	return true
}

func nonEmpty(g Grid) (Grid, error) {
	if len(g) == 0 || g.Width() == 0 {
		return nil, fmt.Errorf("%w: no cells", ErrUnparseable)
	}
	return g, nil
}
