package config

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func writeManifest(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "batch.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("setup: %v", err)
	}
	return path
}

func TestLoadManifest(t *testing.T) {
	dir := t.TempDir()
	path := writeManifest(t, dir, `output: out/chapter3.docx
separate: false
mode: overwrite
style:
  fontSize: 10.5
input:
  headerRows: 1
  encoding: gbk
tables:
  - path: data/soil.csv
    caption: "Table 3-1"
    description: "Soil nitrate (mg L-1)"
  - path: /abs/yield.xlsx
    sheet: "2019"
    headerRows: 2
    includeIndex: true
    indexColumn: 1
  - text: "a\tb\n1\t2"
`)

	m, err := LoadManifest(path)
	if err != nil {
		t.Fatalf("LoadManifest() error = %v", err)
	}
	if m.Output != filepath.Join(dir, "out", "chapter3.docx") {
		t.Errorf("Output = %q, want it resolved against the manifest directory", m.Output)
	}
	if m.Tables[0].Path != filepath.Join(dir, "data", "soil.csv") {
		t.Errorf("Tables[0].Path = %q", m.Tables[0].Path)
	}
	if m.Tables[1].Path != "/abs/yield.xlsx" {
		t.Errorf("absolute path changed: %q", m.Tables[1].Path)
	}
	if m.Mode != "overwrite" || m.Style.FontSize != 10.5 {
		t.Errorf("manifest = %+v", m)
	}

	if got, want := m.Captions(), []string{"Table 3-1", "", ""}; !reflect.DeepEqual(got, want) {
		t.Errorf("Captions() = %q, want %q", got, want)
	}

	in := m.EffectiveInput(1)
	if *in.HeaderRows != 2 || in.Sheet != "2019" || in.Encoding != "gbk" || in.IndexColumn != 1 {
		t.Errorf("EffectiveInput(1) = %+v", in)
	}
	if in := m.EffectiveInput(0); *in.HeaderRows != 1 {
		t.Errorf("EffectiveInput(0).HeaderRows = %d, want manifest default 1", *in.HeaderRows)
	}
	if *m.Input.HeaderRows != 1 {
		t.Error("EffectiveInput modified the manifest defaults")
	}
}

func TestManifest_CaptionsNone(t *testing.T) {
	m := &Manifest{Tables: []TableEntry{{Path: "a.csv"}, {Path: "b.csv"}}}
	if got := m.Captions(); got != nil {
		t.Errorf("Captions() = %q, want nil", got)
	}
}

func TestManifest_Validate(t *testing.T) {
	tests := []struct {
		name    string
		m       Manifest
		wantErr error
	}{
		{
			name:    "no tables",
			m:       Manifest{Output: "x.docx"},
			wantErr: ErrManifestEmpty,
		},
		{
			name:    "table without source",
			m:       Manifest{Tables: []TableEntry{{Caption: "Table 1"}}},
			wantErr: ErrInvalidValue,
		},
		{
			name:    "table with path and text",
			m:       Manifest{Tables: []TableEntry{{Path: "a.csv", Text: "a,b"}}},
			wantErr: ErrInvalidValue,
		},
		{
			name:    "bad header rows",
			m:       Manifest{Tables: []TableEntry{{Path: "a.csv", HeaderRows: intPtr(-1)}}},
			wantErr: ErrInvalidValue,
		},
		{
			name:    "bad mode",
			m:       Manifest{Mode: "merge", Tables: []TableEntry{{Path: "a.csv"}}},
			wantErr: ErrInvalidValue,
		},
		{
			name:    "caption too long",
			m:       Manifest{Tables: []TableEntry{{Path: "a.csv", Caption: string(make([]byte, MaxCaptionLength+1))}}},
			wantErr: ErrFieldTooLong,
		},
		{
			name:    "valid",
			m:       Manifest{Tables: []TableEntry{{Path: "a.csv"}, {Text: "a;b\n1;2", Delimiter: "semicolon"}}},
			wantErr: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.m.Validate(); !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestLoadManifest_Errors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := LoadManifest(filepath.Join(t.TempDir(), "none.yaml"))
		if !errors.Is(err, ErrConfigNotFound) {
			t.Errorf("error = %v, want ErrConfigNotFound", err)
		}
	})

	t.Run("unknown field", func(t *testing.T) {
		path := writeManifest(t, t.TempDir(), "tables:\n  - path: a.csv\n    colour: red\n")
		_, err := LoadManifest(path)
		if !errors.Is(err, ErrConfigParse) {
			t.Errorf("error = %v, want ErrConfigParse", err)
		}
	})
}
