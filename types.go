package docxtable

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

// Page size constants.
const (
	PageSizeA4     = "a4"
	PageSizeLetter = "letter"
	PageSizeLegal  = "legal"
)

// Orientation constants.
const (
	OrientationPortrait  = "portrait"
	OrientationLandscape = "landscape"
)

// Margin bounds in centimetres.
const (
	MinMargin     = 0.5
	MaxMargin     = 6.0
	DefaultMargin = 2.5
)

// Font size bounds in points.
const (
	MinFontSize     = 5.0
	MaxFontSize     = 72.0
	DefaultFontSize = 12.0
)

// Border width bounds in points. Word draws 1/8 pt steps from 0.25 to 6.
const (
	MinBorderWidth     = 0.25
	MaxBorderWidth     = 6.0
	DefaultBorderWidth = 1.0
)

// Alignment constants for captions and cells.
const (
	AlignLeft   = "left"
	AlignCenter = "center"
	AlignRight  = "right"
)

// Default fonts. The east asian font applies to CJK characters only.
const (
	DefaultWesternFont  = "Times New Roman"
	DefaultEastAsiaFont = "SimSun"
)

// MaxFontNameLength bounds font names.
const MaxFontNameLength = 64

// Mode selects what happens when the output document already exists.
type Mode string

// Write modes. The zero value behaves as ModeAppend.
const (
	ModeAppend    Mode = "append"
	ModeOverwrite Mode = "overwrite"
)

// Validate checks that m is a known mode (empty means append).
func (m Mode) Validate() error {
	switch Mode(strings.ToLower(string(m))) {
	case "", ModeAppend, ModeOverwrite:
		return nil
	}
	return fmt.Errorf("%w: %q (must be append or overwrite)", ErrInvalidMode, string(m))
}

func (m Mode) overwrite() bool {
	return Mode(strings.ToLower(string(m))) == ModeOverwrite
}

// PageSettings configures the section of a newly created document.
// Appending to an existing document keeps its own page setup.
type PageSettings struct {
	Size        string  // "a4", "letter", "legal"
	Orientation string  // "portrait", "landscape"
	Margin      float64 // centimetres, applied to all sides
}

// DefaultPageSettings returns A4 portrait with 2.5 cm margins.
func DefaultPageSettings() *PageSettings {
	return &PageSettings{
		Size:        PageSizeA4,
		Orientation: OrientationPortrait,
		Margin:      DefaultMargin,
	}
}

// Validate checks that page settings are valid.
// Returns nil if p is nil (nil means use defaults).
func (p *PageSettings) Validate() error {
	if p == nil {
		return nil
	}
	if !isValidPageSize(p.Size) {
		return fmt.Errorf("%w: %q", ErrInvalidPageSize, p.Size)
	}
	if !isValidOrientation(p.Orientation) {
		return fmt.Errorf("%w: %q", ErrInvalidOrientation, p.Orientation)
	}
	if p.Margin < MinMargin || p.Margin > MaxMargin {
		return fmt.Errorf("%w: %.2f (must be between %.2f and %.2f)", ErrInvalidMargin, p.Margin, MinMargin, MaxMargin)
	}
	return nil
}

// dimensions returns width and height in twips, swapped for landscape.
func (p *PageSettings) dimensions() (width, height int) {
	switch strings.ToLower(p.Size) {
	case PageSizeLetter:
		width, height = 12240, 15840
	case PageSizeLegal:
		width, height = 12240, 20160
	default:
		width, height = 11906, 16838
	}
	if p.landscape() {
		width, height = height, width
	}
	return width, height
}

func (p *PageSettings) landscape() bool {
	return strings.EqualFold(p.Orientation, OrientationLandscape)
}

func isValidPageSize(size string) bool {
	switch strings.ToLower(size) {
	case PageSizeA4, PageSizeLetter, PageSizeLegal:
		return true
	}
	return false
}

func isValidOrientation(orientation string) bool {
	switch strings.ToLower(orientation) {
	case OrientationPortrait, OrientationLandscape:
		return true
	}
	return false
}

// Style controls how a table and its caption are drawn.
type Style struct {
	WesternFont       string  // Latin text
	EastAsiaFont      string  // CJK text
	FontSize          float64 // points
	CaptionBold       bool    // bold "{Caption}. " label
	HeaderBold        bool
	HeaderBackground  string  // hex RRGGBB, empty for none
	BorderWidth       float64 // points
	BorderColor       string  // hex RRGGBB
	SpecialFormatting bool    // superscript/subscript detection in cells
	StackedHeader     bool    // two header rows with merged parents
	CaptionAlign      string  // left, center, right
	CellAlign         string  // left, center, right
	PageBreakAfter    bool
	Page              *PageSettings // nil uses DefaultPageSettings
}

// DefaultStyle returns the conventional three-line table look.
func DefaultStyle() *Style {
	return &Style{
		WesternFont:       DefaultWesternFont,
		EastAsiaFont:      DefaultEastAsiaFont,
		FontSize:          DefaultFontSize,
		CaptionBold:       true,
		HeaderBold:        true,
		BorderWidth:       DefaultBorderWidth,
		BorderColor:       "000000",
		SpecialFormatting: true,
		CaptionAlign:      AlignLeft,
		CellAlign:         AlignLeft,
		Page:              DefaultPageSettings(),
	}
}

var hexColor = regexp.MustCompile(`^[0-9A-Fa-f]{6}$`)

// Validate checks every style field. Returns nil if s is nil.
// Does not mutate.
func (s *Style) Validate() error {
	if s == nil {
		return nil
	}
	if err := validateFont(s.WesternFont); err != nil {
		return err
	}
	if err := validateFont(s.EastAsiaFont); err != nil {
		return err
	}
	if s.FontSize < MinFontSize || s.FontSize > MaxFontSize {
		return fmt.Errorf("%w: %.1f (must be between %.0f and %.0f)", ErrInvalidFontSize, s.FontSize, MinFontSize, MaxFontSize)
	}
	if s.HeaderBackground != "" && !hexColor.MatchString(strings.TrimPrefix(s.HeaderBackground, "#")) {
		return fmt.Errorf("%w: header background %q (want RRGGBB)", ErrInvalidColor, s.HeaderBackground)
	}
	if !hexColor.MatchString(strings.TrimPrefix(s.BorderColor, "#")) {
		return fmt.Errorf("%w: border %q (want RRGGBB)", ErrInvalidColor, s.BorderColor)
	}
	if s.BorderWidth < MinBorderWidth || s.BorderWidth > MaxBorderWidth {
		return fmt.Errorf("%w: %.2f (must be between %.2f and %.2f)", ErrInvalidBorderWidth, s.BorderWidth, MinBorderWidth, MaxBorderWidth)
	}
	if !isValidAlignment(s.CaptionAlign) {
		return fmt.Errorf("%w: caption %q", ErrInvalidAlignment, s.CaptionAlign)
	}
	if !isValidAlignment(s.CellAlign) {
		return fmt.Errorf("%w: cell %q", ErrInvalidAlignment, s.CellAlign)
	}
	return s.Page.Validate()
}

func validateFont(name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("%w: empty", ErrInvalidFont)
	}
	if utf8.RuneCountInString(name) > MaxFontNameLength {
		return fmt.Errorf("%w: longer than %d characters", ErrInvalidFont, MaxFontNameLength)
	}
	return nil
}

func isValidAlignment(a string) bool {
	switch strings.ToLower(a) {
	case AlignLeft, AlignCenter, AlignRight:
		return true
	}
	return false
}

// Script is the vertical position of a run.
type Script int

// Script values.
const (
	ScriptNormal Script = iota
	ScriptSuperscript
	ScriptSubscript
)

func (s Script) String() string {
	switch s {
	case ScriptSuperscript:
		return "superscript"
	case ScriptSubscript:
		return "subscript"
	default:
		return "normal"
	}
}

// Run is a span of text rendered with one treatment. Bold and Italic are
// only set on caption description runs.
type Run struct {
	Text   string
	Script Script
	Bold   bool
	Italic bool
}

// TableSpec describes one table to write.
type TableSpec struct {
	Caption      string   // label before the description, e.g. "Table 1"
	Description  string   // may use **bold** and *italic*
	Headers      []string // optional override, one label per column
	IncludeIndex bool     // prepend the dataset index as the first column
	Mode         Mode
	Style        *Style // nil uses DefaultStyle
}

// LoadOptions controls how a source is turned into a Dataset.
type LoadOptions struct {
	HeaderRows  int    // 0, 1, or 2
	Sheet       string // workbook sheet name or 1-based index; empty for the first
	Delimiter   rune   // 0 detects from the first line
	Encoding    string // auto, utf-8, gbk, gb18030, big5, latin1
	IndexColumn int    // 1-based column moved into the Dataset index; 0 for none
}

// DefaultLoadOptions returns one header row, automatic delimiter and
// encoding, no index column.
func DefaultLoadOptions() LoadOptions {
	return LoadOptions{HeaderRows: 1, Encoding: "auto"}
}

// Validate checks the header row count and index column.
func (o LoadOptions) Validate() error {
	if err := validateHeaderRows(o.HeaderRows); err != nil {
		return err
	}
	if o.IndexColumn < 0 {
		return fmt.Errorf("%w: %d", ErrInvalidIndex, o.IndexColumn)
	}
	return nil
}

func validateHeaderRows(n int) error {
	if n < 0 || n > 2 {
		return fmt.Errorf("%w: %d (must be 0, 1, or 2)", ErrUnsupportedHeaderRows, n)
	}
	return nil
}
