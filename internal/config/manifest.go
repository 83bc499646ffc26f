package config

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Manifest describes a batch: several tables written into one document
// or one document each.
type Manifest struct {
	Output   string       `yaml:"output"`
	Separate bool         `yaml:"separate"`
	Mode     string       `yaml:"mode"`
	Style    StyleConfig  `yaml:"style"`
	Input    InputConfig  `yaml:"input"` // defaults for every table
	Tables   []TableEntry `yaml:"tables"`
}

// TableEntry is one table of a manifest. Path and Text are exclusive.
type TableEntry struct {
	Path         string `yaml:"path"`
	Text         string `yaml:"text"`
	Caption      string `yaml:"caption"`
	Description  string `yaml:"description"`
	HeaderRows   *int   `yaml:"headerRows"`
	Sheet        string `yaml:"sheet"`
	Delimiter    string `yaml:"delimiter"`
	Encoding     string `yaml:"encoding"`
	IncludeIndex bool   `yaml:"includeIndex"`
	IndexColumn  int    `yaml:"indexColumn"`
}

// LoadManifest reads and validates a batch manifest. Relative table paths
// and the output path are resolved against the manifest's directory.
func LoadManifest(path string) (*Manifest, error) {
	var m Manifest
	if err := readYAML(path, &m); err != nil {
		return nil, err
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	m.resolvePaths(filepath.Dir(path))
	return &m, nil
}

func (m *Manifest) resolvePaths(dir string) {
	if m.Output != "" && !filepath.IsAbs(m.Output) {
		m.Output = filepath.Join(dir, m.Output)
	}
	for i := range m.Tables {
		if p := m.Tables[i].Path; p != "" && !filepath.IsAbs(p) {
			m.Tables[i].Path = filepath.Join(dir, p)
		}
	}
}

// Validate checks the manifest's shape and each table entry.
func (m *Manifest) Validate() error {
	if len(m.Tables) == 0 {
		return ErrManifestEmpty
	}
	if err := validateFieldLength("output", m.Output, MaxPathLength); err != nil {
		return err
	}
	if err := validateMode("mode", m.Mode); err != nil {
		return err
	}
	if err := m.Style.Validate("style"); err != nil {
		return err
	}
	if err := m.Input.Validate(); err != nil {
		return err
	}
	for i, t := range m.Tables {
		if err := t.validate(fmt.Sprintf("tables[%d]", i)); err != nil {
			return err
		}
	}
	return nil
}

func (t *TableEntry) validate(prefix string) error {
	hasPath, hasText := t.Path != "", strings.TrimSpace(t.Text) != ""
	if hasPath == hasText {
		return fmt.Errorf("%w: %s needs exactly one of path or text", ErrInvalidValue, prefix)
	}
	if t.HeaderRows != nil && (*t.HeaderRows < 0 || *t.HeaderRows > 2) {
		return fmt.Errorf("%w: %s.headerRows must be 0, 1, or 2, got %d", ErrInvalidValue, prefix, *t.HeaderRows)
	}
	if t.IndexColumn < 0 {
		return fmt.Errorf("%w: %s.indexColumn must not be negative", ErrInvalidValue, prefix)
	}
	if _, err := ParseDelimiter(t.Delimiter); err != nil {
		return fmt.Errorf("%s.delimiter: %w", prefix, err)
	}
	fields := []struct {
		field string
		value string
		max   int
	}{
		{"path", t.Path, MaxPathLength},
		{"caption", t.Caption, MaxCaptionLength},
		{"description", t.Description, MaxDescriptionLength},
		{"sheet", t.Sheet, MaxSheetLength},
		{"encoding", t.Encoding, MaxEncodingLength},
	}
	for _, f := range fields {
		if err := validateFieldLength(prefix+"."+f.field, f.value, f.max); err != nil {
			return err
		}
	}
	return nil
}

// Captions returns one caption per table, or nil when no table has one so
// that captions are numbered automatically. Blank entries are kept blank.
func (m *Manifest) Captions() []string {
	out := make([]string, len(m.Tables))
	named := false
	for i, t := range m.Tables {
		out[i] = t.Caption
		if t.Caption != "" {
			named = true
		}
	}
	if !named {
		return nil
	}
	return out
}

// EffectiveInput merges a table entry over the manifest's input defaults.
func (m *Manifest) EffectiveInput(i int) InputConfig {
	t := m.Tables[i]
	in := m.Input
	if t.HeaderRows != nil {
		in.HeaderRows = t.HeaderRows
	}
	if t.Sheet != "" {
		in.Sheet = t.Sheet
	}
	if t.Delimiter != "" {
		in.Delimiter = t.Delimiter
	}
	if t.Encoding != "" {
		in.Encoding = t.Encoding
	}
	if t.IndexColumn != 0 {
		in.IndexColumn = t.IndexColumn
	}
	return in
}
