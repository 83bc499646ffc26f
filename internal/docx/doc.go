// Package docx reads, extends, and writes WordprocessingML (.docx) packages.
//
// Block elements (Paragraph, Table) are plain structs whose field tags carry
// the "w:" prefix, so encoding/xml emits them in the form Word expects
// without namespace rewriting. A Package keeps every part of an existing
// document verbatim and only splices new body content into
// word/document.xml, ahead of the final section properties.
package docx
