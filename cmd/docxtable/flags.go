package main

import (
	"io"

	flag "github.com/spf13/pflag"

	docxtable "github.com/alnah/go-docxtable"
)

// headerRowsUnset detects if --header-rows was explicitly set.
// Since 0 is a valid count (generated labels), we use an out-of-range sentinel.
const headerRowsUnset = -1

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
}

// inputFlags controls how a source is read.
type inputFlags struct {
	headerRows  int
	sheet       string
	delimiter   string
	encoding    string
	indexColumn int
}

// tableFlags describes the single table written by convert.
type tableFlags struct {
	caption      string
	description  string
	headers      []string
	includeIndex bool
}

// styleFlags overrides table style fields.
type styleFlags struct {
	font           string
	eastAsiaFont   string
	fontSize       float64
	borderWidth    float64
	borderColor    string
	headerBg       string
	captionAlign   string
	cellAlign      string
	noCaptionBold  bool
	noHeaderBold   bool
	noSpecial      bool
	stackedHeader  bool
	pageBreakAfter bool
}

// pageFlags holds page layout flags for new documents.
type pageFlags struct {
	size        string
	orientation string
	margin      float64
}

// outputFlags holds destination flags.
type outputFlags struct {
	path      string
	mode      string
	assetPath string
}

// convertFlags holds all flags for the convert command.
type convertFlags struct {
	common commonFlags
	input  inputFlags
	table  tableFlags
	style  styleFlags
	page   pageFlags
	output outputFlags
}

// batchFlags holds all flags for the batch command.
type batchFlags struct {
	common   commonFlags
	style    styleFlags
	page     pageFlags
	output   outputFlags
	separate bool
	workers  int
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show debug logs and timing")
}

func addInputFlags(fs *flag.FlagSet, f *inputFlags) {
	fs.IntVar(&f.headerRows, "header-rows", headerRowsUnset, "header rows in the source: 0, 1, or 2")
	fs.StringVar(&f.sheet, "sheet", "", "workbook sheet name or 1-based index")
	fs.StringVarP(&f.delimiter, "delimiter", "d", "", "delimiter: tab, comma, semicolon, pipe, or one character")
	fs.StringVar(&f.encoding, "encoding", "", "text encoding: auto, utf-8, gbk, gb18030, big5, latin1")
	fs.IntVar(&f.indexColumn, "index-column", 0, "1-based column used as row index (0 = none)")
}

func addTableFlags(fs *flag.FlagSet, f *tableFlags) {
	fs.StringVar(&f.caption, "caption", docxtable.DefaultCaption(1), "caption label")
	fs.StringVar(&f.description, "description", "", "caption text, **bold** and *italic* allowed")
	fs.StringSliceVar(&f.headers, "headers", nil, "comma-separated column labels")
	fs.BoolVar(&f.includeIndex, "include-index", false, "render the index column")
}

func addStyleFlags(fs *flag.FlagSet, f *styleFlags) {
	fs.StringVar(&f.font, "font", "", "font for Latin text")
	fs.StringVar(&f.eastAsiaFont, "east-asia-font", "", "font for CJK text")
	fs.Float64Var(&f.fontSize, "font-size", 0, "font size in points")
	fs.Float64Var(&f.borderWidth, "border-width", 0, "rule width in points (0.25-6)")
	fs.StringVar(&f.borderColor, "border-color", "", "rule color (hex)")
	fs.StringVar(&f.headerBg, "header-bg", "", "header background color (hex)")
	fs.StringVar(&f.captionAlign, "caption-align", "", "caption alignment: left, center, right")
	fs.StringVar(&f.cellAlign, "cell-align", "", "cell alignment: left, center, right")
	fs.BoolVar(&f.noCaptionBold, "no-caption-bold", false, "plain caption label")
	fs.BoolVar(&f.noHeaderBold, "no-header-bold", false, "plain header labels")
	fs.BoolVar(&f.noSpecial, "no-special", false, "disable superscript/subscript detection")
	fs.BoolVar(&f.stackedHeader, "stacked-header", false, "draw two header rows with merged parents")
	fs.BoolVar(&f.pageBreakAfter, "page-break", false, "start a new page after each table")
}

func addPageFlags(fs *flag.FlagSet, f *pageFlags) {
	fs.StringVarP(&f.size, "page-size", "p", "", "page size: a4, letter, legal")
	fs.StringVar(&f.orientation, "orientation", "", "orientation: portrait, landscape")
	fs.Float64Var(&f.margin, "margin", 0, "margin in centimetres (0.5-6.0)")
}

func addOutputFlags(fs *flag.FlagSet, f *outputFlags) {
	fs.StringVarP(&f.path, "output", "o", "", "output .docx file or directory")
	fs.StringVarP(&f.mode, "mode", "m", "", "existing output: append or overwrite")
	fs.StringVar(&f.assetPath, "asset-path", "", "directory with parts/*.xml overrides")
}

// newConvertFlagSet registers every convert flag on a fresh FlagSet.
func newConvertFlagSet(f *convertFlags, usage io.Writer) *flag.FlagSet {
	fs := flag.NewFlagSet("convert", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.Usage = func() { printConvertUsage(usage) }

	addCommonFlags(fs, &f.common)
	addInputFlags(fs, &f.input)
	addTableFlags(fs, &f.table)
	addStyleFlags(fs, &f.style)
	addPageFlags(fs, &f.page)
	addOutputFlags(fs, &f.output)
	return fs
}

// parseConvertFlags parses convert arguments and returns the positional ones.
func parseConvertFlags(args []string, usage io.Writer) (*convertFlags, []string, error) {
	f := &convertFlags{}
	fs := newConvertFlagSet(f, usage)
	if err := fs.Parse(args); err != nil {
		return nil, nil, usageError(err)
	}
	return f, fs.Args(), nil
}

// parseBatchFlags parses batch arguments and returns the positional ones.
func parseBatchFlags(args []string, usage io.Writer) (*batchFlags, []string, error) {
	f := &batchFlags{}
	fs := flag.NewFlagSet("batch", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.Usage = func() { printBatchUsage(usage) }

	addCommonFlags(fs, &f.common)
	addStyleFlags(fs, &f.style)
	addPageFlags(fs, &f.page)
	addOutputFlags(fs, &f.output)
	fs.BoolVar(&f.separate, "separate", false, "one document per table")
	fs.IntVarP(&f.workers, "workers", "w", 0, "parallel workers for --separate (0 = auto)")

	if err := fs.Parse(args); err != nil {
		return nil, nil, usageError(err)
	}
	return f, fs.Args(), nil
}
