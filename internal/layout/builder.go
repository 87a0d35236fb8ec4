package layout

import (
	"strings"
	"time"

	"github.com/alnah/go-md2apa/internal/document"
	"github.com/alnah/go-md2apa/internal/markup"
)

// Metadata describes the title page. Callers validate it; the Builder
// renders whatever it is given.
type Metadata struct {
	Title       string
	Author      string
	Institution string
	Date        string   // empty renders today's date in Style.DateLayout
	Keywords    []string // empty renders Style.KeywordsPlaceholder
}

// Builder owns the output document and appends formatted content to it.
// Use one Builder per conversion.
type Builder struct {
	doc   *document.Document
	style Style
	now   func() time.Time

	blocks int
}

// NewBuilder returns a Builder writing into a new document.
func NewBuilder(style Style) *Builder {
	return &Builder{
		doc:   document.New(style.PageSetup()),
		style: style,
		now:   time.Now,
	}
}

// Document returns the built document. The Builder must not be used after
// the document is handed off.
func (b *Builder) Document() *document.Document {
	return b.doc
}

// Blocks returns the number of body blocks appended so far.
func (b *Builder) Blocks() int {
	return b.blocks
}

// Build converts body text into a complete document: title page, optional
// abstract page, then the body. It never fails on malformed markup.
func Build(meta Metadata, body string, style Style, includeAbstract bool, abstract string) *document.Document {
	b := NewBuilder(style)
	b.TitlePage(meta)
	if includeAbstract {
		b.AbstractPage(abstract, meta.Keywords)
	}
	markup.Scan(body, b.Block)
	return b.Document()
}

// TitlePage emits the running head, the spacer paragraphs, the centered
// title block, and a page break.
func (b *Builder) TitlePage(meta Metadata) {
	b.doc.Properties = document.Properties{
		Title:    meta.Title,
		Author:   meta.Author,
		Subject:  meta.Institution,
		Keywords: meta.Keywords,
	}

	b.doc.AddParagraph(document.ParagraphFormat{Align: document.AlignLeft}).
		AddRun(RunningHead(meta.Title, b.style.RunningHeadMaxLen), document.RunFormat{Size: b.style.RunningHeadSize})

	for range b.style.TitleSpacerCount {
		b.empty()
	}

	centered := document.ParagraphFormat{Align: document.AlignCenter}
	b.doc.AddParagraph(centered).AddRun(meta.Title, document.RunFormat{Bold: true})
	b.empty()
	b.doc.AddParagraph(centered).AddRun(meta.Author, document.RunFormat{})
	b.doc.AddParagraph(centered).AddRun(meta.Institution, document.RunFormat{})
	b.empty()

	date := meta.Date
	if date == "" {
		date = b.now().Format(b.style.DateLayout)
	}
	b.doc.AddParagraph(centered).AddRun(date, document.RunFormat{})
	b.doc.AddPageBreak()
}

// AbstractPage emits the abstract heading, body, keywords line, and a page break.
func (b *Builder) AbstractPage(text string, keywords []string) {
	b.doc.AddParagraph(document.ParagraphFormat{Align: document.AlignCenter}).
		AddRun(b.style.AbstractHeading, document.RunFormat{Bold: true})

	b.abstractText(text)
	b.empty()

	kw := b.style.KeywordsPlaceholder
	if len(keywords) > 0 {
		kw = strings.Join(keywords, ", ")
	}
	b.doc.AddParagraph(document.ParagraphFormat{}).
		AddRun(b.style.KeywordsLabel, document.RunFormat{Italic: true}).
		AddRun(kw, document.RunFormat{})
	b.doc.AddPageBreak()
}

// Block appends one scanned block to the body.
func (b *Builder) Block(blk markup.Block) {
	b.blocks++

	switch blk := blk.(type) {
	case markup.Heading:
		b.heading(blk)

	case markup.ListItem:
		style := document.StyleListBullet
		if blk.Kind == markup.ListNumbered {
			style = document.StyleListNumber
		}
		b.spans(b.doc.AddParagraph(document.ParagraphFormat{Style: style}), markup.Tokenize(blk.Text))

	case markup.CodeLine:
		p := b.doc.AddParagraph(document.ParagraphFormat{
			LeftIndent:   b.style.CodeIndent,
			LineSpacing:  b.style.CodeLineSpacing,
			Preformatted: true,
		})
		if blk.Text != "" {
			p.AddRun(blk.Text, b.style.codeRun(blk.Lang))
		}

	case markup.Rule:
		b.doc.AddParagraph(document.ParagraphFormat{}).
			AddRun(strings.Repeat("_", b.style.RuleWidth), document.RunFormat{})

	case markup.BlankLine:
		b.empty()

	case markup.Paragraph:
		b.spans(b.doc.AddParagraph(document.ParagraphFormat{}), blk.Spans)

	default:
		panic("layout: unknown block type")
	}
}

// abstractText writes one paragraph per non-blank line of text.
func (b *Builder) abstractText(text string) {
	wrote := false
	for _, line := range markup.SplitLines(text) {
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		b.spans(b.doc.AddParagraph(document.ParagraphFormat{}), markup.Tokenize(line))
		wrote = true
	}
	if !wrote {
		b.doc.AddParagraph(document.ParagraphFormat{})
	}
}

func (b *Builder) heading(h markup.Heading) {
	f := document.ParagraphFormat{OutlineLevel: h.Level}
	switch h.Level {
	case 2:
		b.doc.AddParagraph(f).
			AddRun(h.Text, document.RunFormat{Bold: true, Size: b.style.Heading2Size})
	case 3:
		f.LeftIndent = b.style.Heading3Indent
		b.doc.AddParagraph(f).
			AddRun(h.Text, document.RunFormat{Bold: true, Size: b.style.Heading3Size})
	default:
		f.LeftIndent = b.style.Heading4Indent
		b.doc.AddParagraph(f).
			AddRun(h.Text, document.RunFormat{Italic: true})
	}
}

// spans adds one run per non-empty span.
func (b *Builder) spans(p *document.Paragraph, spans []markup.Span) {
	for _, s := range markup.Compact(spans) {
		switch s.Kind {
		case markup.SpanBold:
			p.AddRun(s.Text, document.RunFormat{Bold: true})
		case markup.SpanItalic:
			p.AddRun(s.Text, document.RunFormat{Italic: true})
		case markup.SpanCode:
			p.AddRun(s.Text, b.style.codeRun(""))
		default:
			p.AddRun(s.Text, document.RunFormat{})
		}
	}
}

func (b *Builder) empty() {
	b.doc.AddParagraph(document.ParagraphFormat{})
}

// RunningHead returns the upper-cased title truncated to limit characters.
func RunningHead(title string, limit int) string {
	head := []rune(strings.ToUpper(title))
	if limit >= 0 && len(head) > limit {
		head = head[:limit]
	}
	return string(head)
}
