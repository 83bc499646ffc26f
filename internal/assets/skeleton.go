package assets

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"strings"
	"text/template"
	"time"

	"github.com/alnah/go-docxtable/internal/docx"
)

// SkeletonPart pairs an asset name with its location in the package.
type SkeletonPart struct {
	Asset    string
	PartName string
}

// SkeletonParts lists the parts of a new document in archive order.
// [Content_Types].xml comes first as some readers expect.
var SkeletonParts = []SkeletonPart{
	{Asset: "content-types", PartName: "[Content_Types].xml"},
	{Asset: "package-rels", PartName: "_rels/.rels"},
	{Asset: "document", PartName: docx.DocumentPart},
	{Asset: "document-rels", PartName: "word/_rels/document.xml.rels"},
	{Asset: "styles", PartName: "word/styles.xml"},
	{Asset: "settings", PartName: "word/settings.xml"},
	{Asset: "core", PartName: "docProps/core.xml"},
	{Asset: "app", PartName: "docProps/app.xml"},
}

// SkeletonData fills the part templates. Page measurements are in twips,
// FontSize in half-points.
type SkeletonData struct {
	WesternFont  string
	EastAsiaFont string
	FontSize     int
	PageWidth    int
	PageHeight   int
	Landscape    bool
	Margin       int
	Title        string
	Creator      string
	Created      time.Time
}

var funcs = template.FuncMap{
	"xml":    escapeXML,
	"w3cdtf": func(t time.Time) string { return t.UTC().Format("2006-01-02T15:04:05Z") },
	"orient": orient,
}

// RenderSkeleton renders every skeleton part through loader.
func RenderSkeleton(loader AssetLoader, data SkeletonData) ([]docx.Part, error) {
	out := make([]docx.Part, 0, len(SkeletonParts))
	for _, sp := range SkeletonParts {
		content, err := loader.LoadPart(sp.Asset)
		if err != nil {
			return nil, err
		}
		rendered, err := renderPart(sp.Asset, content, data)
		if err != nil {
			return nil, err
		}
		out = append(out, docx.Part{Name: sp.PartName, Content: rendered})
	}
	return out, nil
}

func renderPart(name, content string, data SkeletonData) ([]byte, error) {
	tmpl, err := template.New(name).Funcs(funcs).Option("missingkey=error").Parse(content)
	if err != nil {
		return nil, fmt.Errorf("%w: parsing %s: %v", ErrTemplate, name, err)
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("%w: rendering %s: %v", ErrTemplate, name, err)
	}
	return buf.Bytes(), nil
}

func escapeXML(s string) string {
	var b strings.Builder
	_ = xml.EscapeText(&b, []byte(s))
	return b.String()
}

func orient(landscape bool) string {
	if landscape {
		return "landscape"
	}
	return "portrait"
}
