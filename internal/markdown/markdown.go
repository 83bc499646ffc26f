// Package markdown extracts GFM pipe tables and inline emphasis with goldmark.
package markdown

import (
	"errors"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	extast "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
)

// ErrNoTable indicates the source contains no pipe table.
var ErrNoTable = errors.New("no markdown table found")

// Span is a piece of inline text with its emphasis.
type Span struct {
	Text   string
	Bold   bool
	Italic bool
}

var md = goldmark.New(goldmark.WithExtensions(extension.Table))

// Tables returns every pipe table in source as a cell grid, header row
// first. Cell text is the inline content with markup removed.
func Tables(source []byte) [][][]string {
	doc := md.Parser().Parse(text.NewReader(source))

	var tables [][][]string
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		tbl, ok := n.(*extast.Table)
		if !ok {
			return ast.WalkContinue, nil
		}
		var grid [][]string
		for row := tbl.FirstChild(); row != nil; row = row.NextSibling() {
			var cells []string
			for cell := row.FirstChild(); cell != nil; cell = cell.NextSibling() {
				cells = append(cells, strings.TrimSpace(plainText(cell, source)))
			}
			grid = append(grid, cells)
		}
		tables = append(tables, grid)
		return ast.WalkSkipChildren, nil
	})
	return tables
}

// FirstTable returns the first pipe table in source.
func FirstTable(source []byte) ([][]string, error) {
	tables := Tables(source)
	if len(tables) == 0 {
		return nil, ErrNoTable
	}
	return tables[0], nil
}

func plainText(n ast.Node, source []byte) string {
	var b strings.Builder
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		switch t := c.(type) {
		case *ast.Text:
			b.Write(util.UnescapePunctuations(t.Segment.Value(source)))
			if t.SoftLineBreak() || t.HardLineBreak() {
				b.WriteByte(' ')
			}
		case *ast.String:
			b.Write(t.Value)
		default:
			b.WriteString(plainText(c, source))
		}
	}
	return b.String()
}

// Emphasis splits s on **bold** and *italic* markers. Every other
// character is literal: list, heading and quote markers stay in the text
// and subscript markup such as $_{2}$ survives untouched. Lines are joined
// with a single space.
func Emphasis(s string) []Span {
	if !strings.Contains(s, "*") {
		if s == "" {
			return nil
		}
		return []Span{{Text: s}}
	}

	source := escapeInline(s)
	doc := md.Parser().Parse(text.NewReader(source))

	var spans []Span
	var visit func(n ast.Node, bold, italic bool)
	visit = func(n ast.Node, bold, italic bool) {
		for c := n.FirstChild(); c != nil; c = c.NextSibling() {
			if c.Type() == ast.TypeBlock {
				if len(spans) > 0 && c.FirstChild() != nil && c.FirstChild().Type() == ast.TypeInline {
					spans = appendSpan(spans, Span{Text: " "})
				}
				visit(c, bold, italic)
				continue
			}
			switch t := c.(type) {
			case *ast.Emphasis:
				visit(t, bold || t.Level >= 2, italic || t.Level == 1)
			case *ast.Text:
				v := string(util.UnescapePunctuations(t.Segment.Value(source)))
				if t.SoftLineBreak() || t.HardLineBreak() {
					v += " "
				}
				spans = appendSpan(spans, Span{Text: v, Bold: bold, Italic: italic})
			case *ast.String:
				spans = appendSpan(spans, Span{Text: string(t.Value), Bold: bold, Italic: italic})
			default:
				visit(c, bold, italic)
			}
		}
	}
	visit(doc, false, false)

	if n := len(spans); n > 0 {
		spans[n-1].Text = strings.TrimRight(spans[n-1].Text, " ")
		if spans[n-1].Text == "" {
			spans = spans[:n-1]
		}
	}
	return spans
}

// escapeInline backslash-escapes all ASCII punctuation except '*', and a
// leading '*' that would open a list item or a thematic break, so goldmark
// sees one paragraph with emphasis as its only markup. Leading blanks are
// dropped so no line becomes an indented code block.
func escapeInline(s string) []byte {
	var b strings.Builder
	for i, line := range strings.Split(s, "\n") {
		if i > 0 {
			b.WriteByte('\n')
		}
		line = strings.TrimLeft(line, " \t")
		if opensBlock(line) {
			b.WriteByte('\\')
		}
		for j := 0; j < len(line); j++ {
			c := line[j]
			if c != '*' && util.IsPunct(c) {
				b.WriteByte('\\')
			}
			b.WriteByte(c)
		}
	}
	return []byte(b.String())
}

// opensBlock reports whether a line starting with '*' is a bullet or a
// thematic break rather than emphasis.
func opensBlock(line string) bool {
	if !strings.HasPrefix(line, "*") {
		return false
	}
	if len(line) == 1 || line[1] == ' ' || line[1] == '\t' {
		return true
	}
	return strings.Trim(line, "* \t") == ""
}

func appendSpan(spans []Span, s Span) []Span {
	if s.Text == "" {
		return spans
	}
	if n := len(spans); n > 0 && spans[n-1].Bold == s.Bold && spans[n-1].Italic == s.Italic {
		spans[n-1].Text += s.Text
		return spans
	}
	return append(spans, s)
}
