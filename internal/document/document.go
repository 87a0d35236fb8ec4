// Package document holds the in-memory structured document produced by the
// layout builder and consumed by the renderers.
//
// The model is intentionally small: a page setup, document defaults, and an
// ordered list of body elements. An element is either a Paragraph made of Runs
// or a PageBreak. Formatting is carried as hints (font, size, emphasis,
// alignment, indentation, spacing); a zero hint means "inherit the document
// default", which is how renderers map it onto their own style systems.
//
// A Document has a single writer. It is not safe for concurrent mutation.
package document

// Alignment is the horizontal alignment of a paragraph.
type Alignment uint8

// Alignments.
const (
	AlignLeft Alignment = iota
	AlignCenter
	AlignRight
)

// ParagraphStyle names a paragraph style known to every renderer.
type ParagraphStyle string

// Paragraph styles.
const (
	StyleNormal     ParagraphStyle = ""
	StyleListBullet ParagraphStyle = "ListBullet"
	StyleListNumber ParagraphStyle = "ListNumber"
)

// Inches is a length in inches.
type Inches float64

// Points is a font size in typographic points.
type Points float64

// Twips converts the length to twentieths of a point.
func (in Inches) Twips() int {
	return int(float64(in)*1440 + 0.5)
}

// HalfPoints converts the size to half-points.
func (pt Points) HalfPoints() int {
	return int(float64(pt)*2 + 0.5)
}

// Margins are page margins.
type Margins struct {
	Top, Right, Bottom, Left Inches
}

// PageSetup describes page geometry and document-wide text defaults.
type PageSetup struct {
	Width, Height Inches
	Margins       Margins
	FontFamily    string
	FontSize      Points
	LineSpacing   float64 // multiple of single spacing
}

// Properties is descriptive metadata stored with the document.
type Properties struct {
	Title    string
	Author   string
	Subject  string
	Keywords []string
}

// ParagraphFormat holds paragraph-level hints.
type ParagraphFormat struct {
	Style        ParagraphStyle
	Align        Alignment
	LeftIndent   Inches
	LineSpacing  float64 // zero inherits the document default
	OutlineLevel int     // heading level 2-4; zero is body text
	Preformatted bool    // one verbatim line of a code block
}

// RunFormat holds character-level hints.
type RunFormat struct {
	Bold   bool
	Italic bool
	Font   string // empty inherits the document default
	Size   Points // zero inherits the document default
	Code   bool   // monospace content; renderers may highlight it
	Lang   string // language of code content, if known
}

// Element is a body element: *Paragraph or PageBreak.
type Element interface {
	element()
}

// Run is a span of text sharing one format.
type Run struct {
	Text   string
	Format RunFormat
}

// Paragraph is a block of runs.
type Paragraph struct {
	Format ParagraphFormat
	Runs   []Run
}

// PageBreak forces the following content onto a new page.
type PageBreak struct{}

func (*Paragraph) element() {}
func (PageBreak) element()  {}

// AddRun appends a run to the paragraph and returns it for chaining.
func (p *Paragraph) AddRun(text string, f RunFormat) *Paragraph {
	p.Runs = append(p.Runs, Run{Text: text, Format: f})
	return p
}

// Text returns the concatenated text of all runs.
func (p *Paragraph) Text() string {
	switch len(p.Runs) {
	case 0:
		return ""
	case 1:
		return p.Runs[0].Text
	}
	n := 0
	for _, r := range p.Runs {
		n += len(r.Text)
	}
	buf := make([]byte, 0, n)
	for _, r := range p.Runs {
		buf = append(buf, r.Text...)
	}
	return string(buf)
}

// IsEmpty reports whether the paragraph has no visible text.
func (p *Paragraph) IsEmpty() bool {
	for _, r := range p.Runs {
		if r.Text != "" {
			return false
		}
	}
	return true
}

// Document is an ordered sequence of body elements plus page setup.
type Document struct {
	Setup      PageSetup
	Properties Properties
	Body       []Element
}

// New returns an empty document with the given page setup.
func New(setup PageSetup) *Document {
	return &Document{Setup: setup}
}

// AddParagraph appends an empty paragraph and returns it so runs can be added.
func (d *Document) AddParagraph(f ParagraphFormat) *Paragraph {
	p := &Paragraph{Format: f}
	d.Body = append(d.Body, p)
	return p
}

// AddPageBreak appends a hard page break.
func (d *Document) AddPageBreak() {
	d.Body = append(d.Body, PageBreak{})
}

// Paragraphs returns the body paragraphs in order, skipping page breaks.
func (d *Document) Paragraphs() []*Paragraph {
	out := make([]*Paragraph, 0, len(d.Body))
	for _, e := range d.Body {
		if p, ok := e.(*Paragraph); ok {
			out = append(out, p)
		}
	}
	return out
}

// Pages splits the body at page breaks. A document with no elements has one
// empty page.
func (d *Document) Pages() [][]*Paragraph {
	pages := [][]*Paragraph{nil}
	for _, e := range d.Body {
		switch e := e.(type) {
		case *Paragraph:
			pages[len(pages)-1] = append(pages[len(pages)-1], e)
		case PageBreak:
			pages = append(pages, nil)
		}
	}
	return pages
}
