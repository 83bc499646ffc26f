package docxtable

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/alnah/go-docxtable/internal/assets"
	"github.com/alnah/go-docxtable/internal/docx"
	"github.com/alnah/go-docxtable/internal/fileutil"
)

// Creator is written to the core properties of new documents.
const Creator = "go-docxtable"

// Converter writes datasets into .docx documents.
// Create with NewConverter; a Converter holds no open files between calls
// and is safe for concurrent use on distinct output paths.
type Converter struct {
	logger      zerolog.Logger
	now         func() time.Time
	assetPath   string
	assetLoader assets.AssetLoader
}

// Option configures a Converter.
type Option func(*Converter)

// WithLogger sets the logger. The default discards everything.
func WithLogger(logger zerolog.Logger) Option {
	return func(c *Converter) {
		c.logger = logger
	}
}

// WithClock overrides the creation time stamped on new documents.
func WithClock(now func() time.Time) Option {
	return func(c *Converter) {
		if now != nil {
			c.now = now
		}
	}
}

// WithAssetPath loads skeleton parts from path/parts/{name}.xml, falling
// back to the embedded parts for any file that is missing.
func WithAssetPath(path string) Option {
	return func(c *Converter) {
		c.assetPath = path
	}
}

// NewConverter creates a Converter with default configuration.
// Returns ErrInvalidAssetPath if WithAssetPath names an unusable directory.
func NewConverter(opts ...Option) (*Converter, error) {
	c := &Converter{
		logger:      zerolog.Nop(),
		now:         time.Now,
		assetLoader: assets.NewEmbeddedLoader(),
	}
	for _, opt := range opts {
		opt(c)
	}

	if c.assetPath != "" {
		resolver, err := assets.NewAssetResolver(c.assetPath)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidAssetPath, err)
		}
		c.assetLoader = resolver
		c.logger.Debug().Str("assets", c.assetPath).Bool("custom", resolver.HasCustomLoader()).Msg("asset path configured")
	}
	return c, nil
}

// WriteTable renders ds as a three-line table into the document at
// outputPath.
//
// In append mode (the default) an existing document is opened and the
// caption and table are added at the end of its body; a missing file is
// created. Overwrite mode always starts from a new document. The file is
// replaced atomically. Recovers from internal panics.
func (c *Converter) WriteTable(ctx context.Context, ds *Dataset, outputPath string, spec TableSpec) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("internal error: %v", r)
		}
	}()

	style := resolveStyle(spec.Style)
	if err := c.validateTable(ds, outputPath, spec, style); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	doc, err := c.openDocument(outputPath, spec.Mode, style, spec.Caption)
	if err != nil {
		return err
	}
	if err := c.appendTable(doc, ds, spec, style); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	return c.save(doc, outputPath)
}

// WriteTableToDocx writes one table with a default Converter.
func WriteTableToDocx(ds *Dataset, outputPath string, spec TableSpec) error {
	c, err := NewConverter()
	if err != nil {
		return err
	}
	return c.WriteTable(context.Background(), ds, outputPath, spec)
}

// validateTable is the trust boundary for library callers; CLI input has
// already passed config validation.
func (c *Converter) validateTable(ds *Dataset, outputPath string, spec TableSpec, style *Style) error {
	if err := validateOutputPath(outputPath); err != nil {
		return err
	}
	if err := spec.Mode.Validate(); err != nil {
		return err
	}
	if err := style.Validate(); err != nil {
		return err
	}
	if err := ds.Validate(); err != nil {
		return err
	}
	if spec.Headers != nil && len(spec.Headers) != ds.Width() {
		return fmt.Errorf("%w: %d labels for %d columns", ErrHeaderMismatch, len(spec.Headers), ds.Width())
	}
	return nil
}

func validateOutputPath(path string) error {
	if strings.TrimSpace(path) == "" {
		return fmt.Errorf("%w: empty path", ErrOutputPath)
	}
	if fileutil.IsDir(path) {
		return fmt.Errorf("%w: %s is a directory", ErrOutputPath, path)
	}
	if !strings.EqualFold(filepath.Ext(path), ".docx") {
		return fmt.Errorf("%w: %s (want a .docx file)", ErrOutputPath, path)
	}
	return nil
}

func resolveStyle(s *Style) *Style {
	if s == nil {
		return DefaultStyle()
	}
	out := *s
	if out.Page == nil {
		out.Page = DefaultPageSettings()
	}
	return &out
}

// openDocument opens the document to append to, or creates a new one from
// the skeleton parts.
func (c *Converter) openDocument(path string, mode Mode, style *Style, title string) (*docx.Package, error) {
	if !mode.overwrite() && fileutil.FileExists(path) {
		doc, err := docx.Open(path)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrDocumentOpen, path, err)
		}
		c.logExisting(doc, path)
		return doc, nil
	}
	return c.newDocument(style, title)
}

func (c *Converter) logExisting(doc *docx.Package, path string) {
	xmlDoc, _ := doc.Part(docx.DocumentPart)
	tables, err := docx.ReadTables(xmlDoc)
	if err != nil {
		c.logger.Warn().Err(err).Str("output", path).Msg("could not inspect existing document")
		return
	}
	c.logger.Debug().
		Str("output", path).
		Int("parts", len(doc.PartNames())).
		Int("existing_tables", len(tables)).
		Msg("appending to document")
}

func (c *Converter) newDocument(style *Style, title string) (*docx.Package, error) {
	width, height := style.Page.dimensions()
	parts, err := assets.RenderSkeleton(c.assetLoader, assets.SkeletonData{
		WesternFont:  style.WesternFont,
		EastAsiaFont: style.EastAsiaFont,
		FontSize:     int(style.FontSize*docx.HalfPointsPerPt + 0.5),
		PageWidth:    width,
		PageHeight:   height,
		Landscape:    style.Page.landscape(),
		Margin:       docx.CmToTwips(style.Page.Margin),
		Title:        title,
		Creator:      Creator,
		Created:      c.now(),
	})
	if err != nil {
		return nil, fmt.Errorf("building new document: %w", err)
	}
	return docx.New(parts)
}

func (c *Converter) appendTable(doc *docx.Package, ds *Dataset, spec TableSpec, style *Style) error {
	blocks, tbl, err := newRenderer(style).blocks(ds, spec)
	if err != nil {
		return err
	}
	if err := doc.Append(blocks...); err != nil {
		return err
	}
	c.logger.Debug().
		Str("caption", spec.Caption).
		Int("rows", len(tbl.Rows)).
		Int("columns", len(tbl.Grid.Cols)).
		Msg("table rendered")
	return nil
}

func (c *Converter) save(doc *docx.Package, path string) error {
	blocks := doc.Appended()
	if err := doc.Save(path); err != nil {
		if errors.Is(err, docx.ErrMalformedBody) {
			return fmt.Errorf("%w: %s: %w", ErrDocumentOpen, path, err)
		}
		return fmt.Errorf("%w: %s: %w", ErrOutputPath, path, err)
	}
	c.logger.Info().Str("output", path).Int("blocks", blocks).Msg("document written")
	return nil
}
