package docxtable

import (
	"strings"

	"github.com/alnah/go-docxtable/internal/docx"
	"github.com/alnah/go-docxtable/internal/markdown"
)

// renderer turns datasets into WordprocessingML blocks for one style.
type renderer struct {
	style *Style
	rule  *docx.Border
}

func newRenderer(style *Style) *renderer {
	return &renderer{
		style: style,
		rule: &docx.Border{
			Val:   docx.BorderSingle,
			Size:  int(style.BorderWidth*docx.EighthsPerPoint + 0.5),
			Color: strings.ToUpper(strings.TrimPrefix(style.BorderColor, "#")),
		},
	}
}

// blocks returns the caption paragraph (when there is a caption or
// description), the table, and the trailing paragraph that keeps the next
// table from merging into this one.
func (r *renderer) blocks(ds *Dataset, spec TableSpec) ([]any, *docx.Table, error) {
	v, err := ds.view(spec)
	if err != nil {
		return nil, nil, err
	}

	var out []any
	if caption := r.caption(spec.Caption, spec.Description); caption != nil {
		out = append(out, *caption)
	}
	tbl := r.table(v)
	out = append(out, tbl, r.trailer())
	return out, tbl, nil
}

// caption builds "{Caption}. " followed by the description runs.
func (r *renderer) caption(label, description string) *docx.Paragraph {
	if label == "" && description == "" {
		return nil
	}
	p := &docx.Paragraph{Props: &docx.ParagraphProps{
		KeepNext: &docx.Empty{},
		Spacing:  &docx.Spacing{Before: 6 * docx.TwipsPerPoint, After: 3 * docx.TwipsPerPoint},
		Jc:       alignment(r.style.CaptionAlign),
	}}
	if label != "" {
		p.Runs = append(p.Runs, r.run(Run{Text: label + ". ", Bold: r.style.CaptionBold}))
	}
	for _, span := range markdown.Emphasis(description) {
		for _, run := range Annotate(span.Text, r.style.SpecialFormatting) {
			run.Bold, run.Italic = span.Bold, span.Italic
			p.Runs = append(p.Runs, r.run(run))
		}
	}
	return p
}

// trailer holds a line break, or a page break when the style asks for one.
func (r *renderer) trailer() docx.Paragraph {
	br := &docx.Break{}
	if r.style.PageBreakAfter {
		br.Type = "page"
	}
	return docx.Paragraph{Runs: []docx.Run{{Break: br}}}
}

func (r *renderer) run(run Run) docx.Run {
	props := &docx.RunProps{
		Fonts: &docx.Fonts{
			ASCII:    r.style.WesternFont,
			HAnsi:    r.style.WesternFont,
			EastAsia: r.style.EastAsiaFont,
			CS:       r.style.WesternFont,
		},
		Size:   docx.SizeVal(r.style.FontSize),
		SizeCS: docx.SizeVal(r.style.FontSize),
	}
	if run.Bold {
		props.Bold, props.BoldCS = &docx.Empty{}, &docx.Empty{}
	}
	if run.Italic {
		props.Italic = &docx.Empty{}
	}
	switch run.Script {
	case ScriptSuperscript:
		props.VertAlign = &docx.Val{Val: "superscript"}
	case ScriptSubscript:
		props.VertAlign = &docx.Val{Val: "subscript"}
	}
	return docx.Run{Props: props, Text: docx.NewText(run.Text)}
}

// table lays out header and data rows, then draws the three rules.
func (r *renderer) table(v *view) *docx.Table {
	width := len(v.labels)
	page := r.style.Page
	if page == nil {
		page = DefaultPageSettings()
	}
	pageWidth, _ := page.dimensions()
	colWidth := (pageWidth - 2*docx.CmToTwips(page.Margin)) / width

	tbl := &docx.Table{
		Props: docx.TableProps{
			Width:   &docx.Width{W: 0, Type: "auto"},
			Jc:      &docx.Val{Val: "center"},
			Borders: docx.NoBorders(),
			Layout:  &docx.Layout{Type: "autofit"},
		},
	}
	for range width {
		tbl.Grid.Cols = append(tbl.Grid.Cols, docx.GridCol{W: colWidth})
	}

	if r.style.StackedHeader && len(v.levels) == 2 {
		tbl.Rows = append(tbl.Rows, r.stackedHeader(v.levels, colWidth)...)
	} else {
		row := r.headerRow()
		for _, label := range v.labels {
			row.Cells = append(row.Cells, r.cell(label, colWidth, 1, true))
		}
		tbl.Rows = append(tbl.Rows, row)
	}
	headerRows := len(tbl.Rows)

	for _, data := range v.rows {
		var row docx.TableRow
		for _, text := range data {
			row.Cells = append(row.Cells, r.cell(text, colWidth, 1, false))
		}
		tbl.Rows = append(tbl.Rows, row)
	}

	r.drawRules(tbl, headerRows)
	return tbl
}

// stackedHeader renders parent labels merged across equal neighbours over
// the child labels. A column without a child label is merged vertically
// with its parent.
func (r *renderer) stackedHeader(levels [][]string, colWidth int) []docx.TableRow {
	parents, children := r.headerRow(), r.headerRow()
	for _, span := range HeaderSpans(levels[0]) {
		parent := r.cell(span.Label, colWidth*span.Width, span.Width, true)
		if span.Width > 1 {
			parent.Paragraphs[0].Props.Jc = &docx.Val{Val: "center"}
		}

		blankChild := span.Width == 1 && levels[1][span.Start] == ""
		if blankChild {
			parent.Props.VMerge = &docx.VMerge{Val: "restart"}
		}
		parents.Cells = append(parents.Cells, parent)

		for col := span.Start; col < span.Start+span.Width; col++ {
			child := r.cell(levels[1][col], colWidth, 1, true)
			if blankChild {
				child.Props.VMerge = &docx.VMerge{}
			}
			children.Cells = append(children.Cells, child)
		}
	}
	return []docx.TableRow{parents, children}
}

func (r *renderer) headerRow() docx.TableRow {
	return docx.TableRow{Props: &docx.RowProps{CantSplit: &docx.Empty{}, Header: &docx.Empty{}}}
}

func (r *renderer) cell(text string, width, span int, header bool) docx.TableCell {
	props := &docx.CellProps{
		Width:  &docx.Width{W: width, Type: "dxa"},
		VAlign: &docx.Val{Val: "center"},
	}
	if span > 1 {
		props.GridSpan = &docx.IntVal{Val: span}
	}
	if header && r.style.HeaderBackground != "" {
		props.Shading = &docx.Shading{
			Val:   "clear",
			Color: "auto",
			Fill:  strings.ToUpper(strings.TrimPrefix(r.style.HeaderBackground, "#")),
		}
	}

	p := docx.Paragraph{Props: &docx.ParagraphProps{Jc: alignment(r.style.CellAlign)}}
	for _, run := range Annotate(text, r.style.SpecialFormatting) {
		run.Bold = header && r.style.HeaderBold
		p.Runs = append(p.Runs, r.run(run))
	}
	return docx.TableCell{Props: props, Paragraphs: []docx.Paragraph{p}}
}

// drawRules sets every cell edge to none except the top of the first row,
// the bottom of the last header row, and the bottom of the last row.
func (r *renderer) drawRules(tbl *docx.Table, headerRows int) {
	last := len(tbl.Rows) - 1
	for i := range tbl.Rows {
		for j := range tbl.Rows[i].Cells {
			borders := docx.NoBorders()
			if i == 0 {
				borders.Top = r.rule
			}
			if i == headerRows-1 || i == last {
				borders.Bottom = r.rule
			}
			tbl.Rows[i].Cells[j].Props.Borders = borders
		}
	}
}

func alignment(a string) *docx.Val {
	switch strings.ToLower(a) {
	case AlignCenter:
		return &docx.Val{Val: "center"}
	case AlignRight:
		return &docx.Val{Val: "right"}
	default:
		return &docx.Val{Val: "left"}
	}
}
