// Package docxtable writes tabular data as three-line tables into Word
// (.docx) documents.
//
// # Quick Start
//
// Load a table, then write it with a caption:
//
//	ds, err := docxtable.ReadTableFromFile("results.xlsx", docxtable.DefaultLoadOptions())
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	err = docxtable.WriteTableToDocx(ds, "thesis.docx", docxtable.TableSpec{
//	    Caption:     "Table 3",
//	    Description: "Soil nitrate in mg L-1 by **depth**",
//	})
//
// If thesis.docx exists the table is appended to it; otherwise a new
// document is created. Set TableSpec.Mode to ModeOverwrite to start over.
//
// # Pipeline
//
//  1. Input loading: CSV, TSV, TXT, XLS, XLSX, XLSM, Markdown pipe tables,
//     or pasted text (ParseClipboardText)
//  2. Header normalization: 0 to 2 header rows collapse into one label per
//     column (NormalizeHeader)
//  3. Special formatting: H_{2}O, 10^5 and unit exponents such as m2 or
//     s-1 become subscript or superscript runs (Annotate)
//  4. Rendering: a caption paragraph, a table whose only lines are the top
//     rule, the rule under the header, and the bottom rule, and a trailing
//     paragraph
//
// # Three-Line Tables
//
// Tables never carry vertical lines. Header rows repeat on every page.
// With Style.StackedHeader, two header rows are kept as two table rows and
// equal neighbouring parent labels are merged into one cell.
//
// # Configuration
//
// Use functional options to customize the converter:
//
//	conv, err := docxtable.NewConverter(
//	    docxtable.WithLogger(logger),
//	    docxtable.WithAssetPath("/path/to/assets"),
//	)
//
// Per-table options are passed via TableSpec and Style:
//
//	style := docxtable.DefaultStyle()
//	style.EastAsiaFont = "SimHei"
//	style.FontSize = 10.5
//	err = conv.WriteTable(ctx, ds, "out.docx", docxtable.TableSpec{Style: style})
//
// # Batches
//
// WriteTables writes many tables at once, into one document or one
// document per table:
//
//	results, err := conv.WriteTables(ctx, items, captions, "out.docx",
//	    docxtable.BatchOptions{Separate: true})
//
// Captions and header rows are checked before anything is written. After
// that, a failing table is reported in its BatchResult and does not stop
// the others.
//
// # Custom Assets
//
// New documents are built from skeleton parts (styles, settings, section
// properties). Any of them can be replaced:
//
//	assets/
//	└── parts/
//	    ├── styles.xml
//	    └── document.xml
//
// Missing files fall back to the built-in parts.
package docxtable
