package docxtable

import "errors"

// Sentinel errors for library operations.
var (
	// Input errors.
	ErrInputNotFound     = errors.New("input file not found")
	ErrInputUnparseable  = errors.New("input is not a readable table")
	ErrUnsupportedFormat = errors.New("unsupported input format")
	ErrSheetNotFound     = errors.New("sheet not found")
	ErrInvalidEncoding   = errors.New("invalid encoding")
	ErrInvalidIndex      = errors.New("invalid index column")

	// Header errors.
	ErrUnsupportedHeaderRows = errors.New("unsupported header row count")
	ErrHeaderMismatch        = errors.New("header labels do not match column count")

	// Batch errors.
	ErrCaptionMismatch = errors.New("caption count does not match table count")
	ErrNoTables        = errors.New("no tables to write")
	ErrEmptyBatchItem  = errors.New("batch item has no data source")

	// Output errors.
	ErrOutputPath   = errors.New("invalid or unwritable output path")
	ErrDocumentOpen = errors.New("cannot open existing document")
	ErrInvalidMode  = errors.New("invalid write mode")

	// Style validation errors. Each wraps ErrInvalidStyle.
	ErrInvalidStyle       = errors.New("invalid style")
	ErrInvalidFontSize    = styleError("invalid font size")
	ErrInvalidFont        = styleError("invalid font name")
	ErrInvalidColor       = styleError("invalid color")
	ErrInvalidBorderWidth = styleError("invalid border width")
	ErrInvalidAlignment   = styleError("invalid alignment")
	ErrInvalidPageSize    = styleError("invalid page size")
	ErrInvalidOrientation = styleError("invalid orientation")
	ErrInvalidMargin      = styleError("invalid margin")

	// Asset loading errors.
	ErrInvalidAssetPath = errors.New("invalid asset path")
)

// styleErr is a leaf style error that also matches ErrInvalidStyle.
type styleErr struct{ msg string }

func styleError(msg string) error { return &styleErr{msg: msg} }

func (e *styleErr) Error() string { return e.msg }

func (e *styleErr) Is(target error) bool { return target == ErrInvalidStyle }
