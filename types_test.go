package docxtable

// Notes:
// - PageSettings: size, orientation, and margin boundaries
// - Style: every field, plus ErrInvalidStyle matching for leaf errors
// - Mode and LoadOptions: accepted values
// dimensions() is covered through the twips table since it feeds the
// skeleton's section properties.

import (
	"errors"
	"strings"
	"testing"
)

// ---------------------------------------------------------------------------
// TestPageSettings_Validate - PageSettings Validation
// ---------------------------------------------------------------------------

func TestPageSettings_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		ps      *PageSettings
		wantErr error
	}{
		{
			name:    "nil is valid (use defaults)",
			ps:      nil,
			wantErr: nil,
		},
		{
			name:    "defaults",
			ps:      DefaultPageSettings(),
			wantErr: nil,
		},
		{
			name:    "letter landscape mixed case",
			ps:      &PageSettings{Size: "Letter", Orientation: "LANDSCAPE", Margin: 1},
			wantErr: nil,
		},
		{
			name:    "unknown size",
			ps:      &PageSettings{Size: "a3", Orientation: OrientationPortrait, Margin: 2},
			wantErr: ErrInvalidPageSize,
		},
		{
			name:    "unknown orientation",
			ps:      &PageSettings{Size: PageSizeA4, Orientation: "diagonal", Margin: 2},
			wantErr: ErrInvalidOrientation,
		},
		{
			name:    "margin below minimum",
			ps:      &PageSettings{Size: PageSizeA4, Orientation: OrientationPortrait, Margin: 0.4},
			wantErr: ErrInvalidMargin,
		},
		{
			name:    "margin at maximum",
			ps:      &PageSettings{Size: PageSizeA4, Orientation: OrientationPortrait, Margin: MaxMargin},
			wantErr: nil,
		},
		{
			name:    "margin above maximum",
			ps:      &PageSettings{Size: PageSizeA4, Orientation: OrientationPortrait, Margin: 6.1},
			wantErr: ErrInvalidMargin,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := tt.ps.Validate()
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() = %v, want %v", err, tt.wantErr)
			}
			if tt.wantErr != nil && !errors.Is(err, ErrInvalidStyle) {
				t.Errorf("Validate() = %v, should also match ErrInvalidStyle", err)
			}
		})
	}
}

func TestPageSettings_dimensions(t *testing.T) {
	t.Parallel()

	tests := []struct {
		ps         PageSettings
		wantWidth  int
		wantHeight int
	}{
		{PageSettings{Size: PageSizeA4, Orientation: OrientationPortrait}, 11906, 16838},
		{PageSettings{Size: PageSizeA4, Orientation: OrientationLandscape}, 16838, 11906},
		{PageSettings{Size: PageSizeLetter, Orientation: OrientationPortrait}, 12240, 15840},
		{PageSettings{Size: PageSizeLegal, Orientation: OrientationLandscape}, 20160, 12240},
	}

	for _, tt := range tests {
		w, h := tt.ps.dimensions()
		if w != tt.wantWidth || h != tt.wantHeight {
			t.Errorf("%s/%s dimensions() = %dx%d, want %dx%d", tt.ps.Size, tt.ps.Orientation, w, h, tt.wantWidth, tt.wantHeight)
		}
	}
}

// ---------------------------------------------------------------------------
// TestStyle_Validate - Style Validation
// ---------------------------------------------------------------------------

func TestStyle_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(s *Style)
		wantErr error
	}{
		{
			name:    "defaults",
			mutate:  func(*Style) {},
			wantErr: nil,
		},
		{
			name:    "color with hash",
			mutate:  func(s *Style) { s.BorderColor = "#1f4e79"; s.HeaderBackground = "#D9D9D9" },
			wantErr: nil,
		},
		{
			name:    "empty western font",
			mutate:  func(s *Style) { s.WesternFont = "  " },
			wantErr: ErrInvalidFont,
		},
		{
			name:    "east asia font too long",
			mutate:  func(s *Style) { s.EastAsiaFont = strings.Repeat("宋", MaxFontNameLength+1) },
			wantErr: ErrInvalidFont,
		},
		{
			name:    "font size too small",
			mutate:  func(s *Style) { s.FontSize = 4.5 },
			wantErr: ErrInvalidFontSize,
		},
		{
			name:    "font size too large",
			mutate:  func(s *Style) { s.FontSize = 73 },
			wantErr: ErrInvalidFontSize,
		},
		{
			name:    "half point size accepted",
			mutate:  func(s *Style) { s.FontSize = 10.5 },
			wantErr: nil,
		},
		{
			name:    "bad border color",
			mutate:  func(s *Style) { s.BorderColor = "black" },
			wantErr: ErrInvalidColor,
		},
		{
			name:    "bad header background",
			mutate:  func(s *Style) { s.HeaderBackground = "#FFF" },
			wantErr: ErrInvalidColor,
		},
		{
			name:    "border too thin",
			mutate:  func(s *Style) { s.BorderWidth = 0.1 },
			wantErr: ErrInvalidBorderWidth,
		},
		{
			name:    "bad caption alignment",
			mutate:  func(s *Style) { s.CaptionAlign = "justify" },
			wantErr: ErrInvalidAlignment,
		},
		{
			name:    "bad cell alignment",
			mutate:  func(s *Style) { s.CellAlign = "middle" },
			wantErr: ErrInvalidAlignment,
		},
		{
			name:    "invalid page",
			mutate:  func(s *Style) { s.Page = &PageSettings{Size: "b5", Orientation: OrientationPortrait, Margin: 2} },
			wantErr: ErrInvalidPageSize,
		},
		{
			name:    "nil page uses defaults",
			mutate:  func(s *Style) { s.Page = nil },
			wantErr: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			s := DefaultStyle()
			tt.mutate(s)
			err := s.Validate()
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() = %v, want %v", err, tt.wantErr)
			}
			if tt.wantErr != nil && !errors.Is(err, ErrInvalidStyle) {
				t.Errorf("Validate() = %v, should also match ErrInvalidStyle", err)
			}
		})
	}
}

func TestStyle_ValidateNil(t *testing.T) {
	t.Parallel()

	var s *Style
	if err := s.Validate(); err != nil {
		t.Errorf("nil Style Validate() = %v, want nil", err)
	}
}

func TestDefaultStyle(t *testing.T) {
	t.Parallel()

	s := DefaultStyle()
	if s.WesternFont != DefaultWesternFont || s.EastAsiaFont != DefaultEastAsiaFont {
		t.Errorf("fonts = %q/%q", s.WesternFont, s.EastAsiaFont)
	}
	if s.FontSize != DefaultFontSize {
		t.Errorf("FontSize = %v, want %v", s.FontSize, DefaultFontSize)
	}
	if !s.CaptionBold || !s.HeaderBold || !s.SpecialFormatting {
		t.Error("caption bold, header bold, and special formatting should default on")
	}
	if s.StackedHeader || s.PageBreakAfter {
		t.Error("stacked header and page break should default off")
	}
	if s.Page == nil || s.Page.Size != PageSizeA4 {
		t.Errorf("Page = %+v, want A4", s.Page)
	}
}

// ---------------------------------------------------------------------------
// TestMode_Validate - Write modes
// ---------------------------------------------------------------------------

func TestMode_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		mode          Mode
		wantErr       error
		wantOverwrite bool
	}{
		{"", nil, false},
		{ModeAppend, nil, false},
		{ModeOverwrite, nil, true},
		{"Overwrite", nil, true},
		{"replace", ErrInvalidMode, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.mode), func(t *testing.T) {
			t.Parallel()

			if err := tt.mode.Validate(); !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() = %v, want %v", err, tt.wantErr)
			}
			if got := tt.mode.overwrite(); got != tt.wantOverwrite {
				t.Errorf("overwrite() = %v, want %v", got, tt.wantOverwrite)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestLoadOptions_Validate - Loader options
// ---------------------------------------------------------------------------

func TestLoadOptions_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		opts    LoadOptions
		wantErr error
	}{
		{"defaults", DefaultLoadOptions(), nil},
		{"zero header rows", LoadOptions{HeaderRows: 0}, nil},
		{"two header rows", LoadOptions{HeaderRows: 2}, nil},
		{"three header rows", LoadOptions{HeaderRows: 3}, ErrUnsupportedHeaderRows},
		{"negative header rows", LoadOptions{HeaderRows: -1}, ErrUnsupportedHeaderRows},
		{"negative index column", LoadOptions{HeaderRows: 1, IndexColumn: -1}, ErrInvalidIndex},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if err := tt.opts.Validate(); !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestScript_String(t *testing.T) {
	t.Parallel()

	for script, want := range map[Script]string{
		ScriptNormal:      "normal",
		ScriptSuperscript: "superscript",
		ScriptSubscript:   "subscript",
	} {
		if got := script.String(); got != want {
			t.Errorf("Script(%d).String() = %q, want %q", script, got, want)
		}
	}
}
