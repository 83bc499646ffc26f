package main

import (
	"errors"
	"fmt"
	"os"

	flag "github.com/spf13/pflag"

	docxtable "github.com/alnah/go-docxtable"
	"github.com/alnah/go-docxtable/internal/config"
	"github.com/alnah/go-docxtable/internal/hints"
	"github.com/alnah/go-docxtable/internal/tabular"
)

// Exit codes for the docxtable CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess = 0 // Table(s) written
	ExitGeneral = 1 // General/unexpected error, or some batch tables failed
	ExitUsage   = 2 // Invalid flags, config, input data, or style
	ExitIO      = 3 // File not found, permission denied, unwritable output
)

// ErrInvalidArgs wraps flag parsing failures.
var ErrInvalidArgs = errors.New("invalid arguments")

// usageError wraps a flag parsing error, leaving help requests alone.
func usageError(err error) error {
	if errors.Is(err, flag.ErrHelp) {
		return err
	}
	return fmt.Errorf("%w: %v", ErrInvalidArgs, err)
}

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, docxtable.ErrInputNotFound) ||
		errors.Is(err, docxtable.ErrOutputPath) ||
		errors.Is(err, docxtable.ErrDocumentOpen) ||
		errors.Is(err, ErrReadStdin) {
		return ExitIO
	}

	// Usage/config/validation errors (exit 2)
	if errors.Is(err, ErrInvalidArgs) ||
		errors.Is(err, ErrUnknownCommand) ||
		errors.Is(err, ErrNoInput) ||
		errors.Is(err, ErrNoManifest) ||
		errors.Is(err, ErrTooManyInputs) ||
		errors.Is(err, ErrInvalidWorkerCount) ||
		errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrEmptyConfigName) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrFieldTooLong) ||
		errors.Is(err, config.ErrInvalidValue) ||
		errors.Is(err, config.ErrManifestEmpty) ||
		errors.Is(err, docxtable.ErrInputUnparseable) ||
		errors.Is(err, docxtable.ErrUnsupportedFormat) ||
		errors.Is(err, docxtable.ErrSheetNotFound) ||
		errors.Is(err, docxtable.ErrInvalidEncoding) ||
		errors.Is(err, docxtable.ErrInvalidIndex) ||
		errors.Is(err, docxtable.ErrUnsupportedHeaderRows) ||
		errors.Is(err, docxtable.ErrHeaderMismatch) ||
		errors.Is(err, docxtable.ErrCaptionMismatch) ||
		errors.Is(err, docxtable.ErrNoTables) ||
		errors.Is(err, docxtable.ErrEmptyBatchItem) ||
		errors.Is(err, docxtable.ErrInvalidMode) ||
		errors.Is(err, docxtable.ErrInvalidStyle) ||
		errors.Is(err, docxtable.ErrInvalidAssetPath) {
		return ExitUsage
	}

	return ExitGeneral
}

// hintedError carries a hint computed where its context was known.
type hintedError struct {
	err  error
	hint string
}

func (e *hintedError) Error() string { return e.err.Error() }
func (e *hintedError) Unwrap() error { return e.err }

// hintFor returns an actionable hint for err, or "".
func hintFor(err error) string {
	var hinted *hintedError
	if errors.As(err, &hinted) && errors.Is(err, config.ErrConfigNotFound) {
		return hinted.hint
	}

	var sheetErr *tabular.SheetNotFoundError
	switch {
	case errors.As(err, &sheetErr):
		return hints.ForSheetNotFound(sheetErr.Available)
	case errors.Is(err, docxtable.ErrUnsupportedFormat):
		return hints.ForUnsupportedFormat()
	case errors.Is(err, docxtable.ErrInvalidEncoding):
		return hints.ForEncoding()
	case errors.Is(err, docxtable.ErrUnsupportedHeaderRows):
		return hints.ForHeaderRows()
	case errors.Is(err, docxtable.ErrCaptionMismatch):
		return hints.ForCaptionMismatch()
	case errors.Is(err, docxtable.ErrDocumentOpen):
		return hints.ForDocumentOpen()
	case errors.Is(err, docxtable.ErrOutputPath):
		return hints.ForOutputDirectory()
	}
	return ""
}
