package md2apa

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/muesli/termenv"

	"github.com/alnah/go-md2apa/internal/assets"
	"github.com/alnah/go-md2apa/internal/dateutil"
	"github.com/alnah/go-md2apa/internal/document"
	"github.com/alnah/go-md2apa/internal/fileutil"
	"github.com/alnah/go-md2apa/internal/layout"
	"github.com/alnah/go-md2apa/internal/lint"
	"github.com/alnah/go-md2apa/internal/markup"
	"github.com/alnah/go-md2apa/internal/render"
)

// applicationName is stored in the DOCX extended properties.
const applicationName = "md2apa"

// Converter lays out markdown as an APA document and serializes it.
// Create with NewConverter, call Convert, and Close when done. A Converter
// holds at most one browser and must not be used concurrently; use a
// ConverterPool for parallel work.
type Converter struct {
	cfg               converterConfig
	logger            *slog.Logger
	assetLoader       assets.AssetLoader
	publicAssetLoader AssetLoader
	style             layout.Style
	linter            *lint.Linter
	html              *render.HTML
	docx              *render.DOCX
	text              *render.Text
	pdfConverter      pdfConverter
}

// WithLogger sets the logger for debug records about each conversion.
// The default discards everything.
func WithLogger(l *slog.Logger) Option {
	return func(c *Converter) {
		if l != nil {
			c.logger = l
		}
	}
}

// NewConverter creates a Converter. Options are applied first, then the
// stylesheet and page template are loaded. Returns ErrInvalidAssetPath,
// ErrStyleNotFound or ErrTemplateNotFound when assets cannot be loaded.
func NewConverter(opts ...Option) (*Converter, error) {
	c := &Converter{
		cfg: converterConfig{
			timeout:     defaultTimeout,
			now:         time.Now,
			textProfile: termenv.Ascii,
		},
		logger:      slog.New(slog.NewTextHandler(io.Discard, nil)),
		assetLoader: assets.NewEmbeddedLoader(),
		style:       layout.APAStyle(),
		linter:      lint.New(),
	}
	for _, opt := range opts {
		opt(c)
	}

	if c.cfg.assetPath != "" {
		resolver, err := assets.NewAssetResolver(c.cfg.assetPath)
		if err != nil {
			return nil, convertAssetError(err)
		}
		c.assetLoader = resolver
	}
	if c.publicAssetLoader != nil {
		c.assetLoader = c.publicAssetLoader
	}

	css, err := c.resolveStyle()
	if err != nil {
		return nil, err
	}
	page, err := c.assetLoader.LoadTemplate(assets.DefaultTemplateName)
	if err != nil {
		return nil, fmt.Errorf("loading page template: %w", convertAssetError(err))
	}
	if c.html, err = render.NewHTML(page, css, c.cfg.highlight); err != nil {
		return nil, fmt.Errorf("initializing HTML renderer: %w", err)
	}

	c.docx = &render.DOCX{Now: c.cfg.now, Application: applicationName}
	c.text = &render.Text{Width: c.cfg.textWidth, Profile: c.cfg.textProfile}
	if c.pdfConverter == nil {
		c.pdfConverter = newRodConverter(c.cfg.timeout)
	}
	return c, nil
}

// resolveStyle returns the CSS for the configured style: a file path is
// read directly, a name goes through the asset loader.
func (c *Converter) resolveStyle() (string, error) {
	name := c.cfg.styleInput
	if name == "" {
		name = assets.DefaultStyleName
	}

	if fileutil.IsFilePath(name) {
		content, err := os.ReadFile(name) // #nosec G304 -- user-provided path
		if err != nil {
			return "", fmt.Errorf("loading style file %q: %w", name, err)
		}
		return string(content), nil
	}

	css, err := c.assetLoader.LoadStyle(name)
	if err != nil {
		return "", fmt.Errorf("loading style %q: %w", name, convertAssetError(err))
	}
	return css, nil
}

// Convert builds the document for input and serializes it in input.Format.
// Layout never fails on malformed markdown; errors come from validation,
// serialization, the PDF backend, or ctx. Internal panics are recovered
// and returned as errors.
func (c *Converter) Convert(ctx context.Context, input Input) (result *ConvertResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("internal error: %v", r)
		}
	}()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	format, err := c.validateInput(input)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	doc, blocks, err := c.build(input)
	if err != nil {
		return nil, err
	}
	c.logger.Debug("document built", "blocks", blocks, "paragraphs", len(doc.Paragraphs()), "pages", len(doc.Pages()))

	data, err := c.serialize(ctx, doc, format)
	if err != nil {
		return nil, err
	}

	res := &ConvertResult{Format: format, Data: data, Blocks: blocks}
	if input.Lint {
		res.Findings = c.lint(input.Markdown)
	}
	c.logger.Debug("document serialized",
		"format", string(format),
		"bytes", len(data),
		"findings", len(res.Findings),
		"duration", time.Since(start),
	)
	return res, nil
}

// validateInput is the trust boundary for library callers; the CLI also
// validates its config earlier.
func (c *Converter) validateInput(input Input) (Format, error) {
	if err := input.Metadata.Validate(); err != nil {
		return "", err
	}
	if err := input.Abstract.Validate(); err != nil {
		return "", err
	}
	return ParseFormat(string(input.Format))
}

func (c *Converter) build(input Input) (*document.Document, int, error) {
	date := input.Metadata.Date
	if date == "" {
		date = "auto"
	}
	date, err := dateutil.ResolveDate(date, c.cfg.now())
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %v", ErrInvalidDate, err)
	}

	meta := layout.Metadata{
		Title:       input.Metadata.Title,
		Author:      input.Metadata.Author,
		Institution: input.Metadata.Institution,
		Date:        date,
		Keywords:    input.Metadata.Keywords,
	}

	b := layout.NewBuilder(c.style)
	b.TitlePage(meta)
	if input.Abstract != nil {
		b.AbstractPage(input.Abstract.Text, meta.Keywords)
	}
	markup.Scan(input.Markdown, b.Block)
	return b.Document(), b.Blocks(), nil
}

func (c *Converter) serialize(ctx context.Context, doc *document.Document, format Format) ([]byte, error) {
	var w render.Writer
	switch format {
	case FormatDOCX:
		w = c.docx
	case FormatHTML, FormatPDF:
		w = c.html
	case FormatText:
		w = c.text
	default:
		return nil, fmt.Errorf("%w: %q", ErrInvalidFormat, format)
	}

	var buf bytes.Buffer
	if err := w.Write(&buf, doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSerialization, err)
	}
	if format != FormatPDF {
		return buf.Bytes(), nil
	}

	pdf, err := c.pdfConverter.ToPDF(ctx, buf.String(), &pdfOptions{Setup: doc.Setup})
	if err != nil {
		return nil, fmt.Errorf("converting to PDF: %w", err)
	}
	return pdf, nil
}

func (c *Converter) lint(src string) []Finding {
	found := c.linter.Check([]byte(src))
	findings := make([]Finding, len(found))
	for i, f := range found {
		findings[i] = Finding{Line: f.Line, Rule: f.Rule, Message: f.Message}
	}
	return findings
}

// Close releases the browser, if one was started.
func (c *Converter) Close() error {
	if c.pdfConverter != nil {
		return c.pdfConverter.Close()
	}
	return nil
}
