package tabular

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/extrame/xls"
	"github.com/xuri/excelize/v2"
)

// SheetNotFoundError carries the sheets a workbook does have.
type SheetNotFoundError struct {
	Sheet     string
	Available []string
}

func (e *SheetNotFoundError) Error() string {
	return fmt.Sprintf("%s: %q (available: %s)", ErrSheetNotFound, e.Sheet, strings.Join(e.Available, ", "))
}

// Is lets errors.Is match ErrSheetNotFound.
func (e *SheetNotFoundError) Is(target error) bool {
	return target == ErrSheetNotFound
}

// selectSheet resolves a sheet name or 1-based index. Names win over
// indexes so a sheet literally called "2" stays reachable.
func selectSheet(names []string, want string) (int, error) {
	if len(names) == 0 {
		return 0, fmt.Errorf("%w: workbook has no sheets", ErrUnparseable)
	}
	if want == "" {
		return 0, nil
	}
	for i, n := range names {
		if n == want {
			return i, nil
		}
	}
	for i, n := range names {
		if strings.EqualFold(n, want) {
			return i, nil
		}
	}
	if idx, err := strconv.Atoi(want); err == nil && idx >= 1 && idx <= len(names) {
		return idx - 1, nil
	}
	return 0, &SheetNotFoundError{Sheet: want, Available: names}
}

func readXLSX(path, sheet string) (Grid, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnparseable, err)
	}
	defer func() { _ = f.Close() }()

	names := f.GetSheetList()
	idx, err := selectSheet(names, sheet)
	if err != nil {
		return nil, err
	}
	rows, err := f.GetRows(names[idx])
	if err != nil {
		return nil, fmt.Errorf("%w: sheet %q: %v", ErrUnparseable, names[idx], err)
	}
	return rows, nil
}

// readXLS reads a legacy BIFF workbook. The decoder panics on some
// malformed files; those become ErrUnparseable.
func readXLS(path, sheet string) (grid Grid, err error) {
	defer func() {
		if r := recover(); r != nil {
			grid, err = nil, fmt.Errorf("%w: corrupt workbook: %v", ErrUnparseable, r)
		}
	}()

	wb, err := xls.Open(path, "utf-8")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnparseable, err)
	}

	names := make([]string, wb.NumSheets())
	for i := range names {
		if ws := wb.GetSheet(i); ws != nil {
			names[i] = ws.Name
		}
	}
	idx, err := selectSheet(names, sheet)
	if err != nil {
		return nil, err
	}

	ws := wb.GetSheet(idx)
	if ws == nil {
		return nil, fmt.Errorf("%w: sheet %d unreadable", ErrUnparseable, idx+1)
	}
	for i := 0; i <= int(ws.MaxRow); i++ {
		row := ws.Row(i)
		if row == nil {
			grid = append(grid, nil)
			continue
		}
		cells := make([]string, row.LastCol())
		for j := row.FirstCol(); j < row.LastCol(); j++ {
			cells[j] = row.Col(j)
		}
		grid = append(grid, cells)
	}
	return grid, nil
}
