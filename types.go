package md2apa

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/muesli/termenv"
)

// Format selects the serializer.
type Format string

// Output formats.
const (
	FormatDOCX Format = "docx"
	FormatHTML Format = "html"
	FormatPDF  Format = "pdf"
	FormatText Format = "txt"
)

// Formats returns every output format, default first.
func Formats() []Format {
	return []Format{FormatDOCX, FormatHTML, FormatPDF, FormatText}
}

// ParseFormat maps a case-insensitive name to a Format. The empty string
// selects FormatDOCX.
func ParseFormat(s string) (Format, error) {
	if s == "" {
		return FormatDOCX, nil
	}
	f := Format(strings.ToLower(s))
	for _, known := range Formats() {
		if f == known {
			return f, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidFormat, s)
}

// Extension returns the file extension for f, including the dot.
func (f Format) Extension() string {
	return "." + string(f)
}

// Field length limits, counted in characters.
const (
	MaxTitleLength       = 300
	MaxNameLength        = 100
	MaxInstitutionLength = 200
	MaxDateLength        = 50
	MaxAbstractLength    = 5000
	MaxKeywords          = 10
	MaxKeywordLength     = 50
)

// Metadata fills the title page.
type Metadata struct {
	Title       string // required
	Author      string // required
	Institution string
	Date        string   // literal, "auto" or "auto:FORMAT"; empty means auto
	Keywords    []string // abstract keywords; empty prints a placeholder
}

// Validate checks required fields and lengths. Title and author must
// contain something other than whitespace.
func (m *Metadata) Validate() error {
	if strings.TrimSpace(m.Title) == "" {
		return ErrMissingTitle
	}
	if strings.TrimSpace(m.Author) == "" {
		return ErrMissingAuthor
	}

	for _, f := range []struct {
		name  string
		value string
		max   int
	}{
		{"title", m.Title, MaxTitleLength},
		{"author", m.Author, MaxNameLength},
		{"institution", m.Institution, MaxInstitutionLength},
		{"date", m.Date, MaxDateLength},
	} {
		if err := checkLength(f.name, f.value, f.max); err != nil {
			return err
		}
	}

	if len(m.Keywords) > MaxKeywords {
		return fmt.Errorf("%w: keywords (%d entries, max %d)", ErrFieldTooLong, len(m.Keywords), MaxKeywords)
	}
	for i, kw := range m.Keywords {
		if err := checkLength(fmt.Sprintf("keywords[%d]", i), kw, MaxKeywordLength); err != nil {
			return err
		}
	}
	return nil
}

// Abstract requests an abstract page. A nil *Abstract means no abstract.
type Abstract struct {
	Text string // may be empty; the page is still emitted
}

// Validate checks the abstract length. Returns nil if a is nil.
func (a *Abstract) Validate() error {
	if a == nil {
		return nil
	}
	return checkLength("abstract", a.Text, MaxAbstractLength)
}

func checkLength(name, value string, limit int) error {
	if n := utf8.RuneCountInString(value); n > limit {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, name, n, limit)
	}
	return nil
}

// Input contains conversion parameters.
type Input struct {
	Markdown string    // document body (required)
	Metadata Metadata  // title page fields
	Abstract *Abstract // optional abstract page
	Format   Format    // empty means FormatDOCX
	Lint     bool      // collect Findings for unsupported markdown
}

// Finding reports markdown that renders differently than a full markdown
// renderer would show it. Findings never change the output.
type Finding struct {
	Line    int    // 1-based source line
	Rule    string // short rule name, e.g. "table"
	Message string
}

func (f Finding) String() string {
	return fmt.Sprintf("%d: %s [%s]", f.Line, f.Message, f.Rule)
}

// ConvertResult holds a serialized document.
type ConvertResult struct {
	Format   Format
	Data     []byte
	Blocks   int       // body blocks laid out
	Findings []Finding // only when Input.Lint is set
}

// Option configures a Converter.
type Option func(*Converter)

// converterConfig holds internal configuration for Converter.
type converterConfig struct {
	timeout     time.Duration
	now         func() time.Time
	styleInput  string
	highlight   string
	assetPath   string
	textWidth   int
	textProfile termenv.Profile
}

// defaultTimeout bounds PDF rendering when no timeout is specified.
const defaultTimeout = 30 * time.Second

// WithTimeout sets the PDF rendering timeout.
// Panics if d <= 0 (programmer error, similar to time.NewTicker).
func WithTimeout(d time.Duration) Option {
	if d <= 0 {
		panic("md2apa: WithTimeout duration must be positive")
	}
	return func(c *Converter) {
		c.cfg.timeout = d
	}
}

// WithNow sets the clock used for "auto" dates and DOCX timestamps.
func WithNow(now func() time.Time) Option {
	return func(c *Converter) {
		if now != nil {
			c.cfg.now = now
		}
	}
}

// WithStyle selects the HTML/PDF stylesheet: an embedded or custom style
// name, or a path to a CSS file.
func WithStyle(style string) Option {
	return func(c *Converter) {
		c.cfg.styleInput = style
	}
}

// WithHighlightStyle selects the chroma style for code blocks in HTML and
// PDF output. Unknown names fall back to the chroma default.
func WithHighlightStyle(name string) Option {
	return func(c *Converter) {
		c.cfg.highlight = name
	}
}

// WithAssetPath adds a directory of custom styles and templates that take
// precedence over the embedded ones.
func WithAssetPath(path string) Option {
	return func(c *Converter) {
		c.cfg.assetPath = path
	}
}

// WithTextWidth sets the wrap column of FormatText output.
func WithTextWidth(columns int) Option {
	return func(c *Converter) {
		c.cfg.textWidth = columns
	}
}

// WithTextProfile sets the color profile of FormatText output. The default,
// termenv.Ascii, writes no escape sequences.
func WithTextProfile(p termenv.Profile) Option {
	return func(c *Converter) {
		c.cfg.textProfile = p
	}
}
