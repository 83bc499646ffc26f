package docxtable

import (
	"fmt"
)

// Dataset is a table ready to render: display labels, the raw header
// levels they came from, and padded data rows.
type Dataset struct {
	Columns      []string   // one display label per column
	HeaderLevels [][]string // filled header rows (0 to 2)
	Rows         [][]string // each len(Columns)
	Index        []string   // optional row labels, one per row
	IndexName    string
}

// Width returns the number of data columns.
func (d *Dataset) Width() int {
	return len(d.Columns)
}

// NewDataset builds a Dataset from a cell grid whose first headerRows rows
// are labels. A positive indexColumn (1-based) moves that column out of
// the data and into the row index.
func NewDataset(grid [][]string, headerRows, indexColumn int) (*Dataset, error) {
	if err := validateHeaderRows(headerRows); err != nil {
		return nil, err
	}
	width := 0
	for _, row := range grid {
		if len(row) > width {
			width = len(row)
		}
	}
	if width == 0 {
		return nil, fmt.Errorf("%w: no columns", ErrInputUnparseable)
	}
	if indexColumn < 0 || indexColumn > width {
		return nil, fmt.Errorf("%w: %d (table has %d columns)", ErrInvalidIndex, indexColumn, width)
	}
	if indexColumn > 0 && width == 1 {
		return nil, fmt.Errorf("%w: the only column cannot be the index", ErrInvalidIndex)
	}

	labels, levels, err := NormalizeHeader(grid, width, headerRows)
	if err != nil {
		return nil, err
	}

	ds := &Dataset{Columns: labels, HeaderLevels: levels}
	for _, row := range grid[headerRows:] {
		ds.Rows = append(ds.Rows, padRow(row, width))
	}

	if indexColumn > 0 {
		col := indexColumn - 1
		ds.IndexName = labels[col]
		ds.Columns = removeAt(labels, col)
		for i, level := range levels {
			ds.HeaderLevels[i] = removeAt(level, col)
		}
		ds.Index = make([]string, len(ds.Rows))
		for i, row := range ds.Rows {
			ds.Index[i] = row[col]
			ds.Rows[i] = removeAt(row, col)
		}
	}
	return ds, nil
}

// Validate checks the dataset's shape.
func (d *Dataset) Validate() error {
	if d == nil || len(d.Columns) == 0 {
		return fmt.Errorf("%w: dataset has no columns", ErrInputUnparseable)
	}
	for i, level := range d.HeaderLevels {
		if len(level) != len(d.Columns) {
			return fmt.Errorf("%w: header level %d has %d cells, want %d", ErrHeaderMismatch, i+1, len(level), len(d.Columns))
		}
	}
	if err := validateHeaderRows(len(d.HeaderLevels)); err != nil {
		return err
	}
	for i, row := range d.Rows {
		if len(row) > len(d.Columns) {
			return fmt.Errorf("%w: row %d has %d cells, want %d", ErrHeaderMismatch, i+1, len(row), len(d.Columns))
		}
	}
	if d.Index != nil && len(d.Index) != len(d.Rows) {
		return fmt.Errorf("%w: index has %d labels for %d rows", ErrInvalidIndex, len(d.Index), len(d.Rows))
	}
	return nil
}

// view is what the renderer draws: labels, header levels and rows after
// applying a TableSpec's header override and index option.
type view struct {
	labels []string
	levels [][]string
	rows   [][]string
}

func (d *Dataset) view(spec TableSpec) (*view, error) {
	labels := d.Columns
	levels := d.HeaderLevels
	if spec.Headers != nil {
		if len(spec.Headers) != len(d.Columns) {
			return nil, fmt.Errorf("%w: %d labels for %d columns", ErrHeaderMismatch, len(spec.Headers), len(d.Columns))
		}
		labels = spec.Headers
		levels = nil
	}

	v := &view{labels: labels, levels: make([][]string, len(levels))}
	copy(v.levels, levels)
	for _, row := range d.Rows {
		v.rows = append(v.rows, padRow(row, len(labels)))
	}

	if spec.IncludeIndex && d.Index != nil {
		name := d.IndexName
		v.labels = prepend(name, v.labels)
		for i := range v.levels {
			// Lower levels stay blank so a stacked header merges the
			// index label vertically.
			label := name
			if i > 0 {
				label = ""
			}
			v.levels[i] = prepend(label, v.levels[i])
		}
		for i := range v.rows {
			v.rows[i] = prepend(d.Index[i], v.rows[i])
		}
	}
	return v, nil
}

func removeAt(row []string, i int) []string {
	out := make([]string, 0, len(row)-1)
	out = append(out, row[:i]...)
	return append(out, row[i+1:]...)
}

func prepend(first string, row []string) []string {
	out := make([]string, 0, len(row)+1)
	out = append(out, first)
	return append(out, row...)
}
