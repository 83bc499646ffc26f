package docx

import (
	"encoding/xml"
	"strconv"
)

// Unit conversions used by WordprocessingML attributes.
const (
	TwipsPerPoint      = 20
	HalfPointsPerPt    = 2
	EighthsPerPoint    = 8
	twipsPerCentimetre = 566.929
)

// Border values.
const (
	BorderNone   = "none"
	BorderSingle = "single"
)

// CmToTwips converts centimetres to twentieths of a point.
func CmToTwips(cm float64) int {
	return int(cm*twipsPerCentimetre + 0.5)
}

// Empty is an element whose presence is its value (e.g. <w:b/>).
type Empty struct{}

// Val is an element carrying a single w:val attribute.
type Val struct {
	Val string `xml:"w:val,attr"`
}

// IntVal is Val for integer attributes.
type IntVal struct {
	Val int `xml:"w:val,attr"`
}

// Paragraph is a w:p block element.
type Paragraph struct {
	XMLName xml.Name        `xml:"w:p"`
	Props   *ParagraphProps `xml:"w:pPr,omitempty"`
	Runs    []Run           `xml:"w:r"`
}

// ParagraphProps holds w:pPr children in schema order.
type ParagraphProps struct {
	KeepNext *Empty   `xml:"w:keepNext,omitempty"`
	Spacing  *Spacing `xml:"w:spacing,omitempty"`
	Jc       *Val     `xml:"w:jc,omitempty"`
}

// Spacing sets paragraph spacing in twips.
type Spacing struct {
	Before int `xml:"w:before,attr"`
	After  int `xml:"w:after,attr"`
}

// Run is a w:r inline element with at most one break and one text node.
type Run struct {
	XMLName xml.Name  `xml:"w:r"`
	Props   *RunProps `xml:"w:rPr,omitempty"`
	Break   *Break    `xml:"w:br,omitempty"`
	Text    *Text     `xml:"w:t,omitempty"`
}

// Break is a line or page break.
type Break struct {
	Type string `xml:"w:type,attr,omitempty"`
}

// Text is run content. Space is "preserve" when leading or trailing
// whitespace must survive.
type Text struct {
	Space string `xml:"xml:space,attr,omitempty"`
	Value string `xml:",chardata"`
}

// NewText builds a Text, preserving edge whitespace when present.
func NewText(s string) *Text {
	t := &Text{Value: s}
	if s != "" && (s[0] == ' ' || s[len(s)-1] == ' ' || s[0] == '\t' || s[len(s)-1] == '\t') {
		t.Space = "preserve"
	}
	return t
}

// RunProps holds w:rPr children in schema order.
type RunProps struct {
	Fonts     *Fonts `xml:"w:rFonts,omitempty"`
	Bold      *Empty `xml:"w:b,omitempty"`
	BoldCS    *Empty `xml:"w:bCs,omitempty"`
	Italic    *Empty `xml:"w:i,omitempty"`
	Size      *Val   `xml:"w:sz,omitempty"`
	SizeCS    *Val   `xml:"w:szCs,omitempty"`
	VertAlign *Val   `xml:"w:vertAlign,omitempty"`
}

// Fonts selects typefaces per script. EastAsia covers CJK text.
type Fonts struct {
	ASCII    string `xml:"w:ascii,attr,omitempty"`
	HAnsi    string `xml:"w:hAnsi,attr,omitempty"`
	EastAsia string `xml:"w:eastAsia,attr,omitempty"`
	CS       string `xml:"w:cs,attr,omitempty"`
}

// SizeVal converts a point size to the half-point w:sz value.
func SizeVal(points float64) *Val {
	return &Val{Val: strconv.Itoa(int(points*HalfPointsPerPt + 0.5))}
}

// Table is a w:tbl block element.
type Table struct {
	XMLName xml.Name   `xml:"w:tbl"`
	Props   TableProps `xml:"w:tblPr"`
	Grid    TableGrid  `xml:"w:tblGrid"`
	Rows    []TableRow `xml:"w:tr"`
}

// TableProps holds w:tblPr children in schema order.
type TableProps struct {
	Width   *Width   `xml:"w:tblW,omitempty"`
	Jc      *Val     `xml:"w:jc,omitempty"`
	Borders *Borders `xml:"w:tblBorders,omitempty"`
	Layout  *Layout  `xml:"w:tblLayout,omitempty"`
}

// Layout is w:tblLayout ("autofit" or "fixed").
type Layout struct {
	Type string `xml:"w:type,attr"`
}

// Width is a measurement with its unit type ("dxa", "pct", "auto").
type Width struct {
	W    int    `xml:"w:w,attr"`
	Type string `xml:"w:type,attr"`
}

// TableGrid lists column widths.
type TableGrid struct {
	Cols []GridCol `xml:"w:gridCol"`
}

// GridCol is one grid column width in twips.
type GridCol struct {
	W int `xml:"w:w,attr"`
}

// TableRow is a w:tr element.
type TableRow struct {
	Props *RowProps   `xml:"w:trPr,omitempty"`
	Cells []TableCell `xml:"w:tc"`
}

// RowProps marks rows that must not split or that repeat as header.
type RowProps struct {
	CantSplit *Empty `xml:"w:cantSplit,omitempty"`
	Header    *Empty `xml:"w:tblHeader,omitempty"`
}

// TableCell is a w:tc element. Word requires at least one paragraph.
type TableCell struct {
	Props      *CellProps  `xml:"w:tcPr,omitempty"`
	Paragraphs []Paragraph `xml:"w:p"`
}

// CellProps holds w:tcPr children in schema order.
type CellProps struct {
	Width    *Width   `xml:"w:tcW,omitempty"`
	GridSpan *IntVal  `xml:"w:gridSpan,omitempty"`
	VMerge   *VMerge  `xml:"w:vMerge,omitempty"`
	Borders  *Borders `xml:"w:tcBorders,omitempty"`
	Shading  *Shading `xml:"w:shd,omitempty"`
	VAlign   *Val     `xml:"w:vAlign,omitempty"`
}

// VMerge joins a cell with the one above. Val is "restart" on the first
// cell of the merge and empty on the cells it continues into.
type VMerge struct {
	Val string `xml:"w:val,attr,omitempty"`
}

// Borders is shared by w:tblBorders and w:tcBorders; field order matches
// both schemas.
type Borders struct {
	Top     *Border `xml:"w:top,omitempty"`
	Left    *Border `xml:"w:left,omitempty"`
	Bottom  *Border `xml:"w:bottom,omitempty"`
	Right   *Border `xml:"w:right,omitempty"`
	InsideH *Border `xml:"w:insideH,omitempty"`
	InsideV *Border `xml:"w:insideV,omitempty"`
}

// Border is a single edge. Size is in eighths of a point.
type Border struct {
	Val   string `xml:"w:val,attr"`
	Size  int    `xml:"w:sz,attr,omitempty"`
	Space int    `xml:"w:space,attr"`
	Color string `xml:"w:color,attr,omitempty"`
}

// Visible reports whether the border draws a line.
func (b *Border) Visible() bool {
	return b != nil && b.Val != "" && b.Val != BorderNone && b.Val != "nil"
}

// NoBorder returns an explicit "none" edge.
func NoBorder() *Border {
	return &Border{Val: BorderNone}
}

// NoBorders returns a Borders with every edge explicitly hidden.
func NoBorders() *Borders {
	return &Borders{
		Top:     NoBorder(),
		Left:    NoBorder(),
		Bottom:  NoBorder(),
		Right:   NoBorder(),
		InsideH: NoBorder(),
		InsideV: NoBorder(),
	}
}

// Shading fills a cell background. Fill is a hex RRGGBB color.
type Shading struct {
	Val   string `xml:"w:val,attr"`
	Color string `xml:"w:color,attr"`
	Fill  string `xml:"w:fill,attr"`
}

// HorizontalRules counts the row boundaries (top edge, between rows,
// bottom edge) on which at least one cell draws a line.
func (t *Table) HorizontalRules() int {
	if len(t.Rows) == 0 {
		return 0
	}
	rules := 0
	for boundary := 0; boundary <= len(t.Rows); boundary++ {
		if t.boundaryVisible(boundary) {
			rules++
		}
	}
	return rules
}

// RuleBoundaries returns the indexes of visible row boundaries; boundary i
// is the top edge of row i, and len(Rows) is the bottom edge of the table.
func (t *Table) RuleBoundaries() []int {
	var out []int
	for boundary := 0; boundary <= len(t.Rows); boundary++ {
		if t.boundaryVisible(boundary) {
			out = append(out, boundary)
		}
	}
	return out
}

func (t *Table) boundaryVisible(boundary int) bool {
	if t.Props.Borders != nil {
		b := t.Props.Borders
		switch {
		case boundary == 0 && b.Top.Visible():
			return true
		case boundary == len(t.Rows) && b.Bottom.Visible():
			return true
		case boundary > 0 && boundary < len(t.Rows) && b.InsideH.Visible():
			return true
		}
	}
	if boundary > 0 {
		for _, c := range t.Rows[boundary-1].Cells {
			if c.Props != nil && c.Props.Borders != nil && c.Props.Borders.Bottom.Visible() {
				return true
			}
		}
	}
	if boundary < len(t.Rows) {
		for _, c := range t.Rows[boundary].Cells {
			if c.Props != nil && c.Props.Borders != nil && c.Props.Borders.Top.Visible() {
				return true
			}
		}
	}
	return false
}

// HasVerticalRules reports whether any table or cell edge draws a
// vertical line.
func (t *Table) HasVerticalRules() bool {
	if b := t.Props.Borders; b != nil {
		if b.Left.Visible() || b.Right.Visible() || b.InsideV.Visible() {
			return true
		}
	}
	for _, row := range t.Rows {
		for _, c := range row.Cells {
			if c.Props == nil || c.Props.Borders == nil {
				continue
			}
			b := c.Props.Borders
			if b.Left.Visible() || b.Right.Visible() || b.InsideV.Visible() {
				return true
			}
		}
	}
	return false
}

// HeaderRowCount counts leading rows flagged as repeating header rows.
func (t *Table) HeaderRowCount() int {
	n := 0
	for _, row := range t.Rows {
		if row.Props == nil || row.Props.Header == nil {
			break
		}
		n++
	}
	return n
}

// Marshal encodes block elements as a WordprocessingML fragment.
func Marshal(elems ...any) ([]byte, error) {
	var out []byte
	for _, e := range elems {
		b, err := xml.Marshal(e)
		if err != nil {
			return nil, err
		}
		out = append(out, b...)
	}
	return out, nil
}
