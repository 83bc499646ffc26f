package main

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	docxtable "github.com/alnah/go-docxtable"
	"github.com/alnah/go-docxtable/internal/config"
	"github.com/alnah/go-docxtable/internal/hints"
)

// loadConfiguration loads the named config (flag first, then
// DOCXTABLE_CONFIG) and fills empty fields from the environment.
func loadConfiguration(flagConfig string, env *envConfig) (*config.Config, error) {
	cfg := config.DefaultConfig()
	name := flagConfig
	if name == "" {
		name = env.ConfigPath
	}
	if name != "" {
		loaded, err := config.LoadConfig(name)
		if err != nil {
			return nil, &hintedError{
				err:  fmt.Errorf("loading config: %w", err),
				hint: hints.ForConfigNotFound(config.SearchPaths(name)),
			}
		}
		cfg = loaded
	}
	applyEnvConfig(env, cfg)
	return cfg, nil
}

// mergeStyleFlags merges style and page flags into s. Flags win.
func mergeStyleFlags(f *styleFlags, p *pageFlags, s *config.StyleConfig) {
	overlayStyle(s, config.StyleConfig{
		Font:             f.font,
		EastAsiaFont:     f.eastAsiaFont,
		FontSize:         f.fontSize,
		HeaderBackground: f.headerBg,
		BorderWidth:      f.borderWidth,
		BorderColor:      f.borderColor,
		StackedHeader:    f.stackedHeader,
		CaptionAlign:     f.captionAlign,
		CellAlign:        f.cellAlign,
		PageBreakAfter:   f.pageBreakAfter,
		Page: config.PageConfig{
			Size:        p.size,
			Orientation: p.orientation,
			Margin:      p.margin,
		},
	})
	if f.noCaptionBold {
		s.CaptionBold = boolPtr(false)
	}
	if f.noHeaderBold {
		s.HeaderBold = boolPtr(false)
	}
	if f.noSpecial {
		s.SpecialFormatting = boolPtr(false)
	}
}

// overlayStyle copies every set field of over onto base.
func overlayStyle(base *config.StyleConfig, over config.StyleConfig) {
	setString(&base.Font, over.Font)
	setString(&base.EastAsiaFont, over.EastAsiaFont)
	setString(&base.HeaderBackground, over.HeaderBackground)
	setString(&base.BorderColor, over.BorderColor)
	setString(&base.CaptionAlign, over.CaptionAlign)
	setString(&base.CellAlign, over.CellAlign)
	setString(&base.Page.Size, over.Page.Size)
	setString(&base.Page.Orientation, over.Page.Orientation)
	setFloat(&base.FontSize, over.FontSize)
	setFloat(&base.BorderWidth, over.BorderWidth)
	setFloat(&base.Page.Margin, over.Page.Margin)
	if over.CaptionBold != nil {
		base.CaptionBold = over.CaptionBold
	}
	if over.HeaderBold != nil {
		base.HeaderBold = over.HeaderBold
	}
	if over.SpecialFormatting != nil {
		base.SpecialFormatting = over.SpecialFormatting
	}
	if over.StackedHeader {
		base.StackedHeader = true
	}
	if over.PageBreakAfter {
		base.PageBreakAfter = true
	}
}

// buildStyle turns a style block into a Style, keeping defaults for
// unset fields.
func buildStyle(sc config.StyleConfig) *docxtable.Style {
	s := docxtable.DefaultStyle()
	setString(&s.WesternFont, sc.Font)
	setString(&s.EastAsiaFont, sc.EastAsiaFont)
	setString(&s.HeaderBackground, sc.HeaderBackground)
	setString(&s.BorderColor, sc.BorderColor)
	setString(&s.CaptionAlign, strings.ToLower(sc.CaptionAlign))
	setString(&s.CellAlign, strings.ToLower(sc.CellAlign))
	setFloat(&s.FontSize, sc.FontSize)
	setFloat(&s.BorderWidth, sc.BorderWidth)
	if sc.CaptionBold != nil {
		s.CaptionBold = *sc.CaptionBold
	}
	if sc.HeaderBold != nil {
		s.HeaderBold = *sc.HeaderBold
	}
	if sc.SpecialFormatting != nil {
		s.SpecialFormatting = *sc.SpecialFormatting
	}
	s.StackedHeader = sc.StackedHeader
	s.PageBreakAfter = sc.PageBreakAfter

	setString(&s.Page.Size, strings.ToLower(sc.Page.Size))
	setString(&s.Page.Orientation, strings.ToLower(sc.Page.Orientation))
	setFloat(&s.Page.Margin, sc.Page.Margin)
	return s
}

// mergeInputFlags merges input flags into in. Flags win.
func mergeInputFlags(f *inputFlags, in *config.InputConfig) {
	if f.headerRows != headerRowsUnset {
		n := f.headerRows
		in.HeaderRows = &n
	}
	setString(&in.Sheet, f.sheet)
	setString(&in.Delimiter, f.delimiter)
	setString(&in.Encoding, f.encoding)
	if f.indexColumn != 0 {
		in.IndexColumn = f.indexColumn
	}
}

// buildLoadOptions turns an input block into LoadOptions.
func buildLoadOptions(in config.InputConfig) (docxtable.LoadOptions, error) {
	opts := docxtable.DefaultLoadOptions()
	if in.HeaderRows != nil {
		opts.HeaderRows = *in.HeaderRows
	}
	delim, err := config.ParseDelimiter(in.Delimiter)
	if err != nil {
		return opts, err
	}
	opts.Delimiter = delim
	opts.Sheet = in.Sheet
	setString(&opts.Encoding, strings.ToLower(in.Encoding))
	opts.IndexColumn = in.IndexColumn
	return opts, opts.Validate()
}

// resolveMode picks the first non-empty mode, defaulting to append.
func resolveMode(candidates ...string) docxtable.Mode {
	if m := firstNonEmpty(candidates...); m != "" {
		return docxtable.Mode(strings.ToLower(m))
	}
	return docxtable.ModeAppend
}

// newConverter builds the library converter used by every command.
func newConverter(env *Environment, logger zerolog.Logger, assetPath string) (*docxtable.Converter, error) {
	opts := []docxtable.Option{
		docxtable.WithLogger(logger),
		docxtable.WithClock(env.Now),
	}
	if assetPath != "" {
		opts = append(opts, docxtable.WithAssetPath(assetPath))
	}
	return docxtable.NewConverter(opts...)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

func setFloat(dst *float64, v float64) {
	if v != 0 {
		*dst = v
	}
}

func boolPtr(b bool) *bool { return &b }
