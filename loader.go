package docxtable

import (
	"errors"
	"fmt"
	"os"

	"github.com/alnah/go-docxtable/internal/tabular"
)

// ReadTableFromFile loads a CSV, TSV, TXT, XLS, XLSX, XLSM or Markdown file
// into a Dataset.
//
// Cells are trimmed and NFC-normalized, trailing empty rows and columns are
// dropped, and ragged rows are padded.
func ReadTableFromFile(path string, opts LoadOptions) (*Dataset, error) {
	if err := validateLoadOptions(opts); err != nil {
		return nil, err
	}
	grid, err := tabular.ReadFile(path, tabular.Options{
		Sheet:     opts.Sheet,
		Delimiter: opts.Delimiter,
		Encoding:  opts.Encoding,
	})
	if err != nil {
		return nil, mapReadError(path, err)
	}
	return NewDataset(grid, opts.HeaderRows, opts.IndexColumn)
}

// ParseClipboardText loads pasted text into a Dataset. A leading pipe
// selects Markdown table parsing; otherwise the delimiter comes from
// opts.Delimiter or the first line (tab, then semicolon, then comma).
func ParseClipboardText(text string, opts LoadOptions) (*Dataset, error) {
	if err := validateLoadOptions(opts); err != nil {
		return nil, err
	}
	grid, err := tabular.ReadText(text, opts.Delimiter)
	if err != nil {
		return nil, mapReadError("pasted text", err)
	}
	return NewDataset(grid, opts.HeaderRows, opts.IndexColumn)
}

func validateLoadOptions(opts LoadOptions) error {
	if err := opts.Validate(); err != nil {
		return err
	}
	if !tabular.ValidEncoding(opts.Encoding) {
		return fmt.Errorf("%w: %q (use one of %v)", ErrInvalidEncoding, opts.Encoding, tabular.EncodingNames())
	}
	return nil
}

// mapReadError translates reader errors to this package's sentinels while
// keeping the original in the chain.
func mapReadError(source string, err error) error {
	switch {
	case errors.Is(err, os.ErrNotExist):
		return fmt.Errorf("%w: %s: %w", ErrInputNotFound, source, err)
	case errors.Is(err, tabular.ErrUnsupportedFormat):
		return fmt.Errorf("%w: %s: %w", ErrUnsupportedFormat, source, err)
	case errors.Is(err, tabular.ErrSheetNotFound):
		return fmt.Errorf("%w: %s: %w", ErrSheetNotFound, source, err)
	case errors.Is(err, tabular.ErrUnknownEncoding):
		return fmt.Errorf("%w: %w", ErrInvalidEncoding, err)
	default:
		return fmt.Errorf("%w: %s: %w", ErrInputUnparseable, source, err)
	}
}
