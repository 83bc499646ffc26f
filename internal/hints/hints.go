// Package hints provides actionable error hints for common failure scenarios.
// Hints are formatted consistently as "\n  hint: <text>" for appending to error messages.
package hints

import (
	"os"
	"strings"
)

// Supported input extensions, shown when a file type is rejected.
var supportedInputs = []string{".csv", ".tsv", ".txt", ".xls", ".xlsx", ".xlsm", ".md"}

// ForConfigNotFound returns hints for config file not found errors.
// Suggests --config and the user config directory when one was searched.
func ForConfigNotFound(searchedPaths []string) string {
	hint := "use --config /path/to/file.yaml"
	for _, p := range searchedPaths {
		if strings.Contains(p, "go-docxtable") {
			hint += " or create " + p
			break
		}
	}
	return format(hint)
}

// ForOutputDirectory returns hints for output path errors.
func ForOutputDirectory() string {
	return format("check parent directory exists and is writable")
}

// ForUnsupportedFormat lists the input types the loader understands.
func ForUnsupportedFormat() string {
	return format("supported inputs: " + strings.Join(supportedInputs, ", "))
}

// ForSheetNotFound lists the workbook's sheets.
func ForSheetNotFound(available []string) string {
	if len(available) == 0 {
		return ""
	}
	return format("available sheets: " + strings.Join(available, ", "))
}

// ForHeaderRows explains the accepted header row counts.
func ForHeaderRows() string {
	return format("--header-rows accepts 0 (generated labels), 1, or 2 (parent + child)")
}

// ForCaptionMismatch suggests how to line captions up with tables.
func ForCaptionMismatch() string {
	return format("give every table a caption, or none to number them automatically")
}

// ForEncoding suggests an explicit encoding when a delimited file cannot be
// decoded. Legacy Windows locales are the usual culprit.
func ForEncoding() string {
	if lang := os.Getenv("LANG"); strings.HasPrefix(lang, "zh") {
		return format("try --encoding gbk or --encoding big5")
	}
	return format("try --encoding gb18030, gbk, big5, or latin1")
}

// ForDocumentOpen returns hints when an existing document cannot be appended to.
func ForDocumentOpen() string {
	return format("the output exists but is not a readable .docx; use --mode overwrite to replace it")
}

// format creates a single hint string with consistent formatting.
func format(hint string) string {
	if hint == "" {
		return ""
	}
	return "\n  hint: " + hint
}
