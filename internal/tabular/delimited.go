package tabular

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/alnah/go-docxtable/internal/markdown"
)

// DetectDelimiter picks the delimiter from the first non-blank line: a tab
// wins, then a semicolon when no comma is present, else a comma.
func DetectDelimiter(text string) rune {
	first := text
	for _, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) != "" {
			first = line
			break
		}
	}
	switch {
	case strings.Contains(first, "\t"):
		return '\t'
	case strings.Contains(first, ";") && !strings.Contains(first, ","):
		return ';'
	default:
		return ','
	}
}

// IsMarkdownTable reports whether text looks like a pipe table.
func IsMarkdownTable(text string) bool {
	for _, line := range strings.Split(text, "\n") {
		if s := strings.TrimSpace(line); s != "" {
			return strings.HasPrefix(s, "|")
		}
	}
	return false
}

func readDelimitedFile(path string, opts Options) (Grid, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- user-provided input path
	if err != nil {
		return nil, err
	}
	decoded, err := Decode(data, opts.Encoding)
	if err != nil {
		return nil, err
	}
	return ReadDelimited(bytes.NewReader(decoded), opts.Delimiter)
}

// ReadDelimited parses UTF-8 delimited text. A zero delimiter is detected
// from the content.
func ReadDelimited(r io.Reader, delim rune) (Grid, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnparseable, err)
	}
	text := strings.ReplaceAll(string(data), "\r\n", "\n")
	if delim == 0 {
		delim = DetectDelimiter(text)
	}

	cr := csv.NewReader(strings.NewReader(text))
	cr.Comma = delim
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	var grid Grid
	for {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrUnparseable, err)
		}
		grid = append(grid, record)
	}
	return grid, nil
}

func readMarkdownText(text string) (Grid, error) {
	rows, err := markdown.FirstTable([]byte(text))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnparseable, err)
	}
	return rows, nil
}

// ReadText parses pasted text: a Markdown pipe table or delimited rows.
func ReadText(text string, delim rune) (Grid, error) {
	var (
		grid Grid
		err  error
	)
	if delim == 0 && IsMarkdownTable(text) {
		grid, err = readMarkdownText(text)
	} else {
		grid, err = ReadDelimited(strings.NewReader(strings.TrimPrefix(text, "\ufeff")), delim)
	}
	if err != nil {
		return nil, err
	}
	return nonEmpty(Clean(grid))
}
