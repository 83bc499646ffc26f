package docxtable

import (
	"fmt"
	"strconv"
	"strings"
)

// ColumnLabel is the generated label for the 1-based column i.
func ColumnLabel(i int) string {
	return "Column " + strconv.Itoa(i)
}

// NormalizeHeader collapses the first headerRows rows of a grid into one
// display label per column.
//
// With no header rows, labels are "Column 1".."Column N". With one, the
// row's cells are the labels. With two, blank parent cells inherit the
// label to their left (a horizontally merged cell), then each label is
// parent and child joined by a space, or whichever of the two is present.
// A column with no label at all falls back to its generated name.
//
// The returned levels are the filled header rows, padded to width.
func NormalizeHeader(rows [][]string, width, headerRows int) ([]string, [][]string, error) {
	if err := validateHeaderRows(headerRows); err != nil {
		return nil, nil, err
	}
	if len(rows) < headerRows {
		return nil, nil, fmt.Errorf("%w: %d header rows requested, %d rows present", ErrInputUnparseable, headerRows, len(rows))
	}

	levels := make([][]string, headerRows)
	for i := range levels {
		levels[i] = padRow(rows[i], width)
		for j := range levels[i] {
			levels[i][j] = strings.TrimSpace(levels[i][j])
		}
	}
	if headerRows == 2 {
		fillRight(levels[0])
	}

	labels := make([]string, width)
	for j := range labels {
		switch headerRows {
		case 1:
			labels[j] = levels[0][j]
		case 2:
			labels[j] = joinLabel(levels[0][j], levels[1][j])
		}
		if labels[j] == "" {
			labels[j] = ColumnLabel(j + 1)
		}
	}
	return labels, levels, nil
}

func joinLabel(parent, child string) string {
	switch {
	case parent == "":
		return child
	case child == "":
		return parent
	default:
		return parent + " " + child
	}
}

// fillRight copies each non-blank cell into the blank cells after it.
func fillRight(row []string) {
	last := ""
	for i, c := range row {
		if c == "" {
			row[i] = last
			continue
		}
		last = c
	}
}

func padRow(row []string, width int) []string {
	out := make([]string, width)
	copy(out, row)
	return out
}

// Span is a run of equal adjacent header cells, merged horizontally.
type Span struct {
	Label string
	Start int // first column
	Width int // columns covered
}

// HeaderSpans groups equal adjacent cells of a header level.
func HeaderSpans(level []string) []Span {
	var spans []Span
	for i, label := range level {
		if n := len(spans); n > 0 && spans[n-1].Label == label {
			spans[n-1].Width++
			continue
		}
		spans = append(spans, Span{Label: label, Start: i, Width: 1})
	}
	return spans
}
