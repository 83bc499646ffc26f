package docxtable

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/alnah/go-docxtable/internal/fileutil"
)

// BatchItem is one table of a batch. Exactly one data source is used, in
// order of preference: Dataset, Path, Text.
type BatchItem struct {
	Dataset      *Dataset
	Path         string // file read with ReadTableFromFile
	Text         string // pasted text read with ParseClipboardText
	Description  string
	HeaderRows   int
	Sheet        string
	Delimiter    rune
	Encoding     string
	IncludeIndex bool
	IndexColumn  int // 1-based, 0 for none
}

// BatchOptions applies to every item of a batch.
type BatchOptions struct {
	Separate bool // one document per item instead of one combined document
	Mode     Mode // applies to the first table of a combined document, or to each separate file
	Style    *Style
}

// BatchResult reports what happened to one item.
type BatchResult struct {
	Index   int // position in the items slice
	Caption string
	Output  string
	Err     error
}

// DefaultCaption is the caption given to the 1-based table n when none
// is supplied.
func DefaultCaption(n int) string {
	return "Table " + strconv.Itoa(n)
}

// SeparatePath names the document for the 1-based table n of a
// separate-files batch: dir/table_n.docx when outputPath is an existing
// directory (or ends with a separator), otherwise stem_n.docx next to
// outputPath.
func SeparatePath(outputPath string, n int) string {
	if fileutil.IsDir(outputPath) || strings.HasSuffix(outputPath, "/") || strings.HasSuffix(outputPath, string(os.PathSeparator)) {
		return filepath.Join(outputPath, "table_"+strconv.Itoa(n)+".docx")
	}
	return strings.TrimSuffix(outputPath, filepath.Ext(outputPath)) + "_" + strconv.Itoa(n) + ".docx"
}

// ValidateBatch checks a batch before anything is written and returns the
// captions to use, one per item.
func ValidateBatch(items []BatchItem, captions []string, outputPath string, opts BatchOptions) ([]string, error) {
	if len(items) == 0 {
		return nil, ErrNoTables
	}
	if captions != nil && len(captions) != len(items) {
		return nil, fmt.Errorf("%w: %d captions for %d tables", ErrCaptionMismatch, len(captions), len(items))
	}
	for i, item := range items {
		if err := item.validate(); err != nil {
			return nil, fmt.Errorf("table %d: %w", i+1, err)
		}
	}
	if err := opts.Mode.Validate(); err != nil {
		return nil, err
	}
	if err := resolveStyle(opts.Style).Validate(); err != nil {
		return nil, err
	}
	if strings.TrimSpace(outputPath) == "" {
		return nil, fmt.Errorf("%w: empty path", ErrOutputPath)
	}
	if !opts.Separate {
		if err := validateOutputPath(outputPath); err != nil {
			return nil, err
		}
	}

	out := make([]string, len(items))
	for i := range items {
		if captions == nil {
			out[i] = DefaultCaption(i + 1)
		} else {
			out[i] = captions[i]
		}
	}
	return out, nil
}

func (item BatchItem) validate() error {
	if item.Dataset == nil && item.Path == "" && item.Text == "" {
		return ErrEmptyBatchItem
	}
	if item.Dataset != nil {
		return nil
	}
	return item.loadOptions().Validate()
}

func (item BatchItem) loadOptions() LoadOptions {
	return LoadOptions{
		HeaderRows:  item.HeaderRows,
		Sheet:       item.Sheet,
		Delimiter:   item.Delimiter,
		Encoding:    item.Encoding,
		IndexColumn: item.IndexColumn,
	}
}

// Load returns the item's dataset, reading its file or text if needed.
func (item BatchItem) Load() (*Dataset, error) {
	switch {
	case item.Dataset != nil:
		return item.Dataset, nil
	case item.Path != "":
		return ReadTableFromFile(item.Path, item.loadOptions())
	case item.Text != "":
		return ParseClipboardText(item.Text, item.loadOptions())
	default:
		return nil, ErrEmptyBatchItem
	}
}

func (item BatchItem) spec(caption string, mode Mode, style *Style) TableSpec {
	return TableSpec{
		Caption:      caption,
		Description:  item.Description,
		IncludeIndex: item.IncludeIndex,
		Mode:         mode,
		Style:        style,
	}
}

// WriteItem loads one item and writes it on its own to outputPath.
// Used for separate-files batches, including by callers that fan items out
// to several goroutines.
func (c *Converter) WriteItem(ctx context.Context, item BatchItem, caption, outputPath string, opts BatchOptions) error {
	ds, err := item.Load()
	if err != nil {
		return err
	}
	return c.WriteTable(ctx, ds, outputPath, item.spec(caption, opts.Mode, opts.Style))
}

// WriteTables writes a batch of tables.
//
// Captions must be nil (tables are captioned "Table 1".."Table N") or have
// one entry per item. Every item is validated before anything is written.
// Combined batches are saved once; separate batches produce one document
// per item named by SeparatePath. A failing item is reported in its
// BatchResult and does not undo the others. Once ctx is done the remaining
// items fail with the context error, which is also returned.
func (c *Converter) WriteTables(ctx context.Context, items []BatchItem, captions []string, outputPath string, opts BatchOptions) ([]BatchResult, error) {
	names, err := ValidateBatch(items, captions, outputPath, opts)
	if err != nil {
		return nil, err
	}

	results := make([]BatchResult, len(items))
	for i := range items {
		results[i] = BatchResult{Index: i, Caption: names[i], Output: outputPath}
	}

	if opts.Separate {
		for i, item := range items {
			results[i].Output = SeparatePath(outputPath, i+1)
			if err := ctx.Err(); err != nil {
				results[i].Err = err
				continue
			}
			results[i].Err = c.WriteItem(ctx, item, names[i], results[i].Output, opts)
			c.logResult(results[i])
		}
		return results, ctx.Err()
	}

	return results, c.writeCombined(ctx, items, results, outputPath, opts)
}

// writeCombined appends every item to one document and saves it once.
func (c *Converter) writeCombined(ctx context.Context, items []BatchItem, results []BatchResult, outputPath string, opts BatchOptions) error {
	style := resolveStyle(opts.Style)
	doc, err := c.openDocument(outputPath, opts.Mode, style, results[0].Caption)
	if err != nil {
		for i := range results {
			results[i].Err = err
		}
		return err
	}

	written := 0
	for i, item := range items {
		if err := ctx.Err(); err != nil {
			results[i].Err = err
			continue
		}
		ds, err := item.Load()
		if err == nil {
			err = ds.Validate()
		}
		if err == nil {
			err = c.appendTable(doc, ds, item.spec(results[i].Caption, opts.Mode, style), style)
		}
		if err != nil {
			results[i].Err = err
			c.logResult(results[i])
			continue
		}
		written++
	}

	if written == 0 {
		return ctx.Err()
	}
	if err := c.save(doc, outputPath); err != nil {
		for i := range results {
			if results[i].Err == nil {
				results[i].Err = err
			}
		}
		return err
	}
	return ctx.Err()
}

func (c *Converter) logResult(r BatchResult) {
	if r.Err != nil {
		c.logger.Warn().Err(r.Err).Int("table", r.Index+1).Str("output", r.Output).Msg("table failed")
		return
	}
	c.logger.Debug().Int("table", r.Index+1).Str("output", r.Output).Msg("table written")
}

// WriteTablesToDocx writes a batch with a default Converter.
func WriteTablesToDocx(items []BatchItem, captions []string, outputPath string, opts BatchOptions) ([]BatchResult, error) {
	c, err := NewConverter()
	if err != nil {
		return nil, err
	}
	return c.WriteTables(context.Background(), items, captions, outputPath, opts)
}
