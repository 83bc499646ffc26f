package docx

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
)

// TableSummary describes a table read back from document XML.
type TableSummary struct {
	Cells          [][]string // cell text per row
	HeaderRows     int        // leading rows marked w:tblHeader
	RuleBoundaries []int      // visible horizontal boundaries, 0..len(Cells)
	VerticalRules  bool
	Superscripts   int // runs with vertAlign=superscript
	Subscripts     int // runs with vertAlign=subscript
	MaxGridSpan    int
}

// HorizontalRules is the number of visible horizontal boundaries.
func (s TableSummary) HorizontalRules() int {
	return len(s.RuleBoundaries)
}

type rowEdges struct {
	header      bool
	top, bottom bool
}

type edgeSet struct {
	top, bottom, insideH, vertical bool
}

// ReadTables returns a summary of every top-level table in a document
// part, in body order. Nested tables are folded into their parent cell.
func ReadTables(documentXML []byte) ([]TableSummary, error) {
	dec := xml.NewDecoder(bytes.NewReader(documentXML))

	var (
		out       []TableSummary
		cur       *TableSummary
		rows      []rowEdges
		tblEdges  edgeSet
		depth     int // w:tbl nesting
		inText    bool
		inBorders string // "tbl" or "tc" while inside a borders element
	)

	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedBody, err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "tbl":
				depth++
				if depth == 1 {
					cur = &TableSummary{}
					rows = nil
					tblEdges = edgeSet{}
				}
			}
			if depth != 1 {
				if depth > 1 && t.Name.Local == "t" {
					inText = true
				}
				continue
			}
			switch t.Name.Local {
			case "tr":
				cur.Cells = append(cur.Cells, nil)
				rows = append(rows, rowEdges{})
			case "tc":
				last := len(cur.Cells) - 1
				cur.Cells[last] = append(cur.Cells[last], "")
			case "tblHeader":
				rows[len(rows)-1].header = true
			case "tblBorders":
				inBorders = "tbl"
			case "tcBorders":
				inBorders = "tc"
			case "top", "bottom", "insideH", "left", "right", "insideV", "start", "end":
				if inBorders == "" {
					continue
				}
				visible := (&Border{Val: attr(t, "val")}).Visible()
				if !visible {
					continue
				}
				recordEdge(t.Name.Local, inBorders, &tblEdges, rows)
			case "gridSpan":
				var n int
				if _, err := fmt.Sscan(attr(t, "val"), &n); err == nil && n > cur.MaxGridSpan {
					cur.MaxGridSpan = n
				}
			case "vertAlign":
				switch attr(t, "val") {
				case "superscript":
					cur.Superscripts++
				case "subscript":
					cur.Subscripts++
				}
			case "t":
				inText = true
			}

		case xml.EndElement:
			switch t.Name.Local {
			case "tbl":
				if depth == 1 {
					finishTable(cur, rows, tblEdges)
					out = append(out, *cur)
					cur = nil
				}
				depth--
			case "tblBorders", "tcBorders":
				inBorders = ""
			case "t":
				inText = false
			}

		case xml.CharData:
			if inText && cur != nil && len(cur.Cells) > 0 {
				row := cur.Cells[len(cur.Cells)-1]
				if len(row) > 0 {
					row[len(row)-1] += string(t)
				}
			}
		}
	}
	return out, nil
}

func recordEdge(edge, scope string, tbl *edgeSet, rows []rowEdges) {
	switch edge {
	case "left", "right", "insideV", "start", "end":
		tbl.vertical = true
		return
	}
	if scope == "tbl" {
		switch edge {
		case "top":
			tbl.top = true
		case "bottom":
			tbl.bottom = true
		case "insideH":
			tbl.insideH = true
		}
		return
	}
	if len(rows) == 0 {
		return
	}
	switch edge {
	case "top":
		rows[len(rows)-1].top = true
	case "bottom":
		rows[len(rows)-1].bottom = true
	}
}

func finishTable(s *TableSummary, rows []rowEdges, tbl edgeSet) {
	for _, r := range rows {
		if !r.header {
			break
		}
		s.HeaderRows++
	}
	s.VerticalRules = tbl.vertical
	n := len(rows)
	for b := 0; b <= n; b++ {
		visible := (b == 0 && tbl.top) ||
			(b == n && tbl.bottom) ||
			(b > 0 && b < n && tbl.insideH) ||
			(b > 0 && rows[b-1].bottom) ||
			(b < n && rows[b].top)
		if visible {
			s.RuleBoundaries = append(s.RuleBoundaries, b)
		}
	}
}

func attr(el xml.StartElement, local string) string {
	for _, a := range el.Attr {
		if a.Name.Local == local {
			return a.Value
		}
	}
	return ""
}
