// Package config loads YAML configuration files and batch manifests.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/alnah/go-docxtable/internal/fileutil"
	"github.com/alnah/go-docxtable/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
	ErrInvalidValue    = errors.New("invalid config value")
	ErrManifestEmpty   = errors.New("manifest lists no tables")
)

// Field length limits.
const (
	MaxFontLength        = 64   // font family name
	MaxColorLength       = 7    // "#RRGGBB"
	MaxAlignLength       = 10   // "left", "center", "right"
	MaxPageSizeLength    = 10   // "letter", "a4", "legal"
	MaxOrientationLength = 10   // "portrait", "landscape"
	MaxEncodingLength    = 20   // "gb18030"
	MaxSheetLength       = 100  // workbook sheet name or index
	MaxCaptionLength     = 200  // "Table 3-1"
	MaxDescriptionLength = 2000 // caption description with emphasis markup
	MaxPathLength        = 4096 // file system path
)

// Config holds all configuration for document generation.
type Config struct {
	Style  StyleConfig  `yaml:"style"`
	Input  InputConfig  `yaml:"input"`
	Output OutputConfig `yaml:"output"`
	Assets AssetsConfig `yaml:"assets"`
}

// StyleConfig mirrors the table style. Zero values keep the defaults;
// pointer fields distinguish an explicit false from unset.
type StyleConfig struct {
	Font              string     `yaml:"font"`              // Latin text
	EastAsiaFont      string     `yaml:"eastAsiaFont"`      // CJK text
	FontSize          float64    `yaml:"fontSize"`          // points
	CaptionBold       *bool      `yaml:"captionBold"`       // default true
	HeaderBold        *bool      `yaml:"headerBold"`        // default true
	HeaderBackground  string     `yaml:"headerBackground"`  // hex, empty = none
	BorderWidth       float64    `yaml:"borderWidth"`       // points
	BorderColor       string     `yaml:"borderColor"`       // hex
	SpecialFormatting *bool      `yaml:"specialFormatting"` // default true
	StackedHeader     bool       `yaml:"stackedHeader"`
	CaptionAlign      string     `yaml:"captionAlign"`
	CellAlign         string     `yaml:"cellAlign"`
	PageBreakAfter    bool       `yaml:"pageBreakAfter"`
	Page              PageConfig `yaml:"page"`
}

// PageConfig defines the page of newly created documents.
type PageConfig struct {
	Size        string  `yaml:"size"`        // "a4", "letter", "legal" (default: "a4")
	Orientation string  `yaml:"orientation"` // "portrait", "landscape" (default: "portrait")
	Margin      float64 `yaml:"margin"`      // centimetres (default: 2.5)
}

// InputConfig defines how sources are read.
type InputConfig struct {
	HeaderRows  *int   `yaml:"headerRows"` // default 1
	Sheet       string `yaml:"sheet"`
	Delimiter   string `yaml:"delimiter"` // "", "tab", "comma", "semicolon", or one character
	Encoding    string `yaml:"encoding"`
	IndexColumn int    `yaml:"indexColumn"` // 1-based, 0 = none
}

// OutputConfig defines the output destination.
type OutputConfig struct {
	Path         string `yaml:"path"`         // default: input name with .docx
	Mode         string `yaml:"mode"`         // "append" (default) or "overwrite"
	Separate     bool   `yaml:"separate"`     // batch: one document per table
	IncludeIndex bool   `yaml:"includeIndex"` // render the index column
}

// AssetsConfig defines skeleton part overrides.
type AssetsConfig struct {
	BasePath string `yaml:"basePath"` // Empty = use embedded parts
}

// Validate checks field lengths and enumerated values.
// Called automatically by LoadConfig, but available for consumers
// who construct Config manually.
func (c *Config) Validate() error {
	if err := c.Style.Validate("style"); err != nil {
		return err
	}
	if err := c.Input.Validate(); err != nil {
		return err
	}
	if err := validateFieldLength("output.path", c.Output.Path, MaxPathLength); err != nil {
		return err
	}
	if err := validateMode("output.mode", c.Output.Mode); err != nil {
		return err
	}
	return validateFieldLength("assets.basePath", c.Assets.BasePath, MaxPathLength)
}

// Validate checks a style block; prefix names it in errors.
func (s *StyleConfig) Validate(prefix string) error {
	lengths := []struct {
		field string
		value string
		max   int
	}{
		{"font", s.Font, MaxFontLength},
		{"eastAsiaFont", s.EastAsiaFont, MaxFontLength},
		{"headerBackground", s.HeaderBackground, MaxColorLength},
		{"borderColor", s.BorderColor, MaxColorLength},
		{"captionAlign", s.CaptionAlign, MaxAlignLength},
		{"cellAlign", s.CellAlign, MaxAlignLength},
		{"page.size", s.Page.Size, MaxPageSizeLength},
		{"page.orientation", s.Page.Orientation, MaxOrientationLength},
	}
	for _, l := range lengths {
		if err := validateFieldLength(prefix+"."+l.field, l.value, l.max); err != nil {
			return err
		}
	}
	if err := validateOneOf(prefix+".captionAlign", s.CaptionAlign, "left", "center", "right"); err != nil {
		return err
	}
	if err := validateOneOf(prefix+".cellAlign", s.CellAlign, "left", "center", "right"); err != nil {
		return err
	}
	if s.FontSize < 0 || s.BorderWidth < 0 || s.Page.Margin < 0 {
		return fmt.Errorf("%w: %s sizes must not be negative", ErrInvalidValue, prefix)
	}
	return nil
}

// Validate checks the input block.
func (in *InputConfig) Validate() error {
	if in.HeaderRows != nil && (*in.HeaderRows < 0 || *in.HeaderRows > 2) {
		return fmt.Errorf("%w: input.headerRows must be 0, 1, or 2, got %d", ErrInvalidValue, *in.HeaderRows)
	}
	if in.IndexColumn < 0 {
		return fmt.Errorf("%w: input.indexColumn must not be negative, got %d", ErrInvalidValue, in.IndexColumn)
	}
	if err := validateFieldLength("input.sheet", in.Sheet, MaxSheetLength); err != nil {
		return err
	}
	if err := validateFieldLength("input.encoding", in.Encoding, MaxEncodingLength); err != nil {
		return err
	}
	if _, err := ParseDelimiter(in.Delimiter); err != nil {
		return fmt.Errorf("input.delimiter: %w", err)
	}
	return nil
}

// ParseDelimiter reads a delimiter setting. Empty means detect.
func ParseDelimiter(s string) (rune, error) {
	switch strings.ToLower(s) {
	case "":
		return 0, nil
	case "tab", `\t`:
		return '\t', nil
	case "comma":
		return ',', nil
	case "semicolon":
		return ';', nil
	case "pipe":
		return '|', nil
	}
	if utf8.RuneCountInString(s) != 1 {
		return 0, fmt.Errorf("%w: delimiter %q (use one character, tab, comma, or semicolon)", ErrInvalidValue, s)
	}
	r, _ := utf8.DecodeRuneInString(s)
	if r == '"' || r == '\r' || r == '\n' {
		return 0, fmt.Errorf("%w: delimiter %q", ErrInvalidValue, s)
	}
	return r, nil
}

// validateFieldLength checks if a field exceeds its maximum allowed length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

func validateOneOf(fieldName, value string, allowed ...string) error {
	if value == "" {
		return nil
	}
	for _, a := range allowed {
		if strings.EqualFold(value, a) {
			return nil
		}
	}
	return fmt.Errorf("%w: %s %q (must be one of %s)", ErrInvalidValue, fieldName, value, strings.Join(allowed, ", "))
}

func validateMode(fieldName, value string) error {
	return validateOneOf(fieldName, value, "append", "overwrite")
}

// DefaultConfig returns a configuration that keeps every library default.
func DefaultConfig() *Config {
	return &Config{}
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's treated as a config name and searched in standard locations.
// Returns error if the file is not found (no silent fallback).
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	configPath := nameOrPath
	if !fileutil.IsFilePath(nameOrPath) {
		var err error
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	var cfg Config
	if err := readYAML(configPath, &cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func readYAML(path string, v any) error {
	err := yamlutil.ReadFileStrict(path, v)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, os.ErrNotExist):
		return fmt.Errorf("%w: %s", ErrConfigNotFound, path)
	case errors.Is(err, yamlutil.ErrNilData), errors.Is(err, yamlutil.ErrInputTooLarge):
		return fmt.Errorf("%w: %s: %w", ErrConfigParse, path, err)
	default:
		var pathErr *os.PathError
		if errors.As(err, &pathErr) {
			return fmt.Errorf("reading config file: %w", err)
		}
		return fmt.Errorf("%w: %v", ErrConfigParse, err)
	}
}

// SearchPaths lists where a config name is looked up, in order:
// the current directory, then the user config directory.
func SearchPaths(name string) []string {
	extensions := []string{".yaml", ".yml"}
	paths := make([]string, 0, len(extensions)*2)
	for _, ext := range extensions {
		paths = append(paths, name+ext)
	}
	if userConfigDir, err := os.UserConfigDir(); err == nil {
		for _, ext := range extensions {
			paths = append(paths, filepath.Join(userConfigDir, "go-docxtable", name+ext))
		}
	}
	return paths
}

// resolveConfigPath searches for a config file by name in SearchPaths.
func resolveConfigPath(name string) (string, error) {
	paths := SearchPaths(name)
	for _, p := range paths {
		if fileutil.FileExists(p) {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(paths, ", "))
}
