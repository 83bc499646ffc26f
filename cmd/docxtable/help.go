package main

import (
	"fmt"
	"io"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: docxtable <command> [flags] [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  convert    Write one table into a .docx document")
	fmt.Fprintln(w, "  batch      Write the tables listed in a YAML manifest")
	fmt.Fprintln(w, "  version    Show version information")
	fmt.Fprintln(w, "  help       Show help for a command")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'docxtable help <command>' for details on a specific command.")
}

// printConvertUsage prints usage for the convert command.
func printConvertUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: docxtable convert <input|-> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Write a CSV, TSV, TXT, XLS, XLSX, XLSM, or Markdown table into a Word")
	fmt.Fprintln(w, "document as a three-line table. Use - to read pasted text from stdin.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Input:")
	fmt.Fprintln(w, "      --header-rows <n>     Header rows in the source: 0, 1, 2 (default 1)")
	fmt.Fprintln(w, "      --sheet <s>           Workbook sheet name or 1-based index")
	fmt.Fprintln(w, "  -d, --delimiter <s>       tab, comma, semicolon, pipe, or one character")
	fmt.Fprintln(w, "      --encoding <s>        auto, utf-8, gbk, gb18030, big5, latin1")
	fmt.Fprintln(w, "      --index-column <n>    1-based column used as row index")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Table:")
	fmt.Fprintln(w, "      --caption <s>         Caption label (default \"Table 1\")")
	fmt.Fprintln(w, "      --description <s>     Caption text, **bold** and *italic* allowed")
	fmt.Fprintln(w, "      --headers <a,b,...>   Replace the column labels")
	fmt.Fprintln(w, "      --include-index       Render the index column")
	fmt.Fprintln(w)
	printStyleUsage(w)
	fmt.Fprintln(w)
	printOutputUsage(w)
}

// printBatchUsage prints usage for the batch command.
func printBatchUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: docxtable batch <manifest.yaml> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Write several tables into one document, or one document each.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Manifest:")
	fmt.Fprintln(w, "  output: results.docx")
	fmt.Fprintln(w, "  separate: false")
	fmt.Fprintln(w, "  tables:")
	fmt.Fprintln(w, "    - path: growth.csv")
	fmt.Fprintln(w, "      caption: Table 1")
	fmt.Fprintln(w, "      description: Growth of **strain A**")
	fmt.Fprintln(w, "    - path: yields.xlsx")
	fmt.Fprintln(w, "      sheet: Summary")
	fmt.Fprintln(w, "      headerRows: 2")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Batch:")
	fmt.Fprintln(w, "      --separate            One document per table (stem_N.docx)")
	fmt.Fprintln(w, "  -w, --workers <n>         Parallel workers for --separate (0 = auto)")
	fmt.Fprintln(w)
	printStyleUsage(w)
	fmt.Fprintln(w)
	printOutputUsage(w)
}

func printStyleUsage(w io.Writer) {
	fmt.Fprintln(w, "Style:")
	fmt.Fprintln(w, "      --font <s>            Font for Latin text (default Times New Roman)")
	fmt.Fprintln(w, "      --east-asia-font <s>  Font for CJK text (default SimSun)")
	fmt.Fprintln(w, "      --font-size <f>       Font size in points (default 12)")
	fmt.Fprintln(w, "      --border-width <f>    Rule width in points (0.25-6)")
	fmt.Fprintln(w, "      --border-color <hex>  Rule color")
	fmt.Fprintln(w, "      --header-bg <hex>     Header background color")
	fmt.Fprintln(w, "      --caption-align <s>   left, center, right")
	fmt.Fprintln(w, "      --cell-align <s>      left, center, right")
	fmt.Fprintln(w, "      --no-caption-bold     Plain caption label")
	fmt.Fprintln(w, "      --no-header-bold      Plain header labels")
	fmt.Fprintln(w, "      --no-special          Disable superscript/subscript detection")
	fmt.Fprintln(w, "      --stacked-header      Two header rows with merged parents")
	fmt.Fprintln(w, "      --page-break          New page after each table")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Page (new documents only):")
	fmt.Fprintln(w, "  -p, --page-size <s>       a4, letter, legal")
	fmt.Fprintln(w, "      --orientation <s>     portrait, landscape")
	fmt.Fprintln(w, "      --margin <f>          Margin in centimetres (0.5-6.0)")
}

func printOutputUsage(w io.Writer) {
	fmt.Fprintln(w, "Output:")
	fmt.Fprintln(w, "  -o, --output <path>       Output .docx file or directory")
	fmt.Fprintln(w, "  -m, --mode <s>            append (default) or overwrite")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w, "      --asset-path <dir>    Directory with parts/*.xml overrides")
	fmt.Fprintln(w, "  -q, --quiet               Only show errors")
	fmt.Fprintln(w, "  -v, --verbose             Show debug logs and timing")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Environment:")
	fmt.Fprintln(w, "  DOCXTABLE_CONFIG, DOCXTABLE_FONT, DOCXTABLE_EAST_ASIA_FONT,")
	fmt.Fprintln(w, "  DOCXTABLE_FONT_SIZE, DOCXTABLE_PAGE_SIZE, DOCXTABLE_OUTPUT, DOCXTABLE_WORKERS")
}

// runHelp prints help for a specific command.
func runHelp(args []string, env *Environment) int {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return ExitSuccess
	}

	switch args[0] {
	case "convert":
		printConvertUsage(env.Stdout)
	case "batch":
		printBatchUsage(env.Stdout)
	case "version":
		fmt.Fprintln(env.Stdout, "Usage: docxtable version")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show version information.")
	case "help":
		fmt.Fprintln(env.Stdout, "Usage: docxtable help [command]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show help for a command.")
	default:
		fmt.Fprintf(env.Stderr, "Unknown command: %s\n", args[0])
		printUsage(env.Stderr)
		return ExitUsage
	}
	return ExitSuccess
}
