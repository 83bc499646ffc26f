package docx

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/alnah/go-docxtable/internal/fileutil"
)

// DocumentPart is the main document part name inside the package.
const DocumentPart = "word/document.xml"

// maxPartSize bounds a single decompressed part.
const maxPartSize = 64 << 20

// Sentinel errors for package operations.
var (
	ErrNotDocx       = errors.New("not a valid DOCX package")
	ErrMalformedBody = errors.New("document body not found")
	ErrPartTooLarge  = errors.New("package part exceeds size limit")
)

// Part is one named file in the package.
type Part struct {
	Name    string
	Content []byte
}

// Package is an in-memory .docx package. Block elements appended with
// Append are inserted at the end of the body, before the final section
// properties, when the package is serialized.
type Package struct {
	names   []string
	parts   map[string][]byte
	pending bytes.Buffer
	blocks  int
}

// New builds a package from parts. One part must be word/document.xml.
func New(parts []Part) (*Package, error) {
	p := &Package{parts: make(map[string][]byte, len(parts))}
	for _, part := range parts {
		p.put(part.Name, part.Content)
	}
	if _, ok := p.parts[DocumentPart]; !ok {
		return nil, fmt.Errorf("%w: missing %s", ErrNotDocx, DocumentPart)
	}
	return p, nil
}

// Open reads an existing .docx file.
func Open(path string) (*Package, error) {
	zr, err := zip.OpenReader(path) // #nosec G304 -- user-provided output path
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", ErrNotDocx, err)
	}
	defer zr.Close()

	parts := make([]Part, 0, len(zr.File))
	for _, f := range zr.File {
		if f.FileInfo().IsDir() {
			continue
		}
		content, err := readZipFile(f)
		if err != nil {
			return nil, err
		}
		parts = append(parts, Part{Name: f.Name, Content: content})
	}
	return New(parts)
}

func readZipFile(f *zip.File) ([]byte, error) {
	if f.UncompressedSize64 > maxPartSize {
		return nil, fmt.Errorf("%w: %s", ErrPartTooLarge, f.Name)
	}
	rc, err := f.Open()
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", f.Name, err)
	}
	defer rc.Close()

	content, err := io.ReadAll(io.LimitReader(rc, maxPartSize+1))
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", f.Name, err)
	}
	if len(content) > maxPartSize {
		return nil, fmt.Errorf("%w: %s", ErrPartTooLarge, f.Name)
	}
	return content, nil
}

func (p *Package) put(name string, content []byte) {
	if _, exists := p.parts[name]; !exists {
		p.names = append(p.names, name)
	}
	p.parts[name] = content
}

// Part returns the raw content of a part.
func (p *Package) Part(name string) ([]byte, bool) {
	content, ok := p.parts[name]
	return content, ok
}

// PartNames lists parts in package order.
func (p *Package) PartNames() []string {
	return append([]string(nil), p.names...)
}

// Append marshals block elements (paragraphs, tables) onto the body.
func (p *Package) Append(elems ...any) error {
	fragment, err := Marshal(elems...)
	if err != nil {
		return fmt.Errorf("encoding body elements: %w", err)
	}
	p.pending.Write(fragment)
	p.blocks += len(elems)
	return nil
}

// Appended reports how many block elements are waiting to be written.
func (p *Package) Appended() int {
	return p.blocks
}

// DocumentXML returns word/document.xml with pending elements spliced in.
func (p *Package) DocumentXML() ([]byte, error) {
	doc := p.parts[DocumentPart]
	if p.pending.Len() == 0 {
		return doc, nil
	}
	at, err := insertionPoint(string(doc))
	if err != nil {
		return nil, err
	}
	out := make([]byte, 0, len(doc)+p.pending.Len())
	out = append(out, doc[:at]...)
	out = append(out, p.pending.Bytes()...)
	out = append(out, doc[at:]...)
	return out, nil
}

// insertionPoint finds where new body content goes: before the body-level
// w:sectPr if there is one, otherwise before </w:body>. A sectPr nested in a
// paragraph's pPr or in a w:sectPrChange is not body-level.
func insertionPoint(doc string) (int, error) {
	dec := xml.NewDecoder(strings.NewReader(doc))
	var parents []string
	sect, bodyEnd := -1, -1
	for bodyEnd < 0 {
		offset := int(dec.InputOffset())
		tok, err := dec.RawToken()
		if err == io.EOF {
			break
		}
		if err != nil {
			return 0, fmt.Errorf("%w: %v", ErrMalformedBody, err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Local == "sectPr" && len(parents) > 0 && parents[len(parents)-1] == "body" {
				sect = offset
			}
			parents = append(parents, t.Name.Local)
		case xml.EndElement:
			if len(parents) > 0 {
				parents = parents[:len(parents)-1]
			}
			if t.Name.Local == "body" {
				bodyEnd = offset
			}
		}
	}
	if bodyEnd < 0 {
		return 0, ErrMalformedBody
	}
	if sect >= 0 {
		return sect, nil
	}
	return bodyEnd, nil
}

// WriteTo serializes the package as a zip archive.
func (p *Package) WriteTo(w io.Writer) (int64, error) {
	cw := &countingWriter{w: w}
	zw := zip.NewWriter(cw)

	docXML, err := p.DocumentXML()
	if err != nil {
		return cw.n, err
	}

	for _, name := range p.names {
		content := p.parts[name]
		if name == DocumentPart {
			content = docXML
		}
		fw, err := zw.Create(name)
		if err != nil {
			return cw.n, fmt.Errorf("creating %s: %w", name, err)
		}
		if _, err := fw.Write(content); err != nil {
			return cw.n, fmt.Errorf("writing %s: %w", name, err)
		}
	}
	if err := zw.Close(); err != nil {
		return cw.n, fmt.Errorf("finalizing archive: %w", err)
	}
	return cw.n, nil
}

// Bytes serializes the package to memory.
func (p *Package) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	if _, err := p.WriteTo(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Save writes the package to path, replacing any existing file atomically.
// Pending elements become part of the document once written.
func (p *Package) Save(path string) error {
	docXML, err := p.DocumentXML()
	if err != nil {
		return err
	}
	content, err := p.Bytes()
	if err != nil {
		return err
	}
	if err := fileutil.WriteFileAtomic(path, content, fileutil.FilePermissions); err != nil {
		return err
	}
	p.parts[DocumentPart] = docXML
	p.pending.Reset()
	p.blocks = 0
	return nil
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(b []byte) (int, error) {
	n, err := c.w.Write(b)
	c.n += int64(n)
	return n, err
}
