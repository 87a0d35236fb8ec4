package render

import (
	"bytes"
	"fmt"
	"html"
	"html/template"
	"io"
	"strconv"
	"strings"

	"github.com/alecthomas/chroma/v2"
	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"

	"github.com/alnah/go-md2apa/internal/document"
)

// DefaultHighlightStyle is the chroma style used for code blocks.
const DefaultHighlightStyle = "github"

// HTML writes a standalone HTML5 page: one <section class="page"> per page,
// lists grouped into <ul>/<ol>, and code blocks highlighted with chroma.
type HTML struct {
	tmpl      *template.Template
	css       template.CSS
	style     *chroma.Style
	formatter *chromahtml.Formatter
}

type htmlPage struct {
	Title    string
	Author   string
	Subject  string
	Keywords string
	CSS      template.CSS
	Body     template.HTML
}

// NewHTML parses the page template and prepares the stylesheet. The
// highlighting rules for highlightStyle are prepended to css; an unknown
// style name falls back to chroma's default.
func NewHTML(page, css, highlightStyle string) (*HTML, error) {
	tmpl, err := template.New("page").Parse(page)
	if err != nil {
		return nil, fmt.Errorf("parsing page template: %w", err)
	}

	if highlightStyle == "" {
		highlightStyle = DefaultHighlightStyle
	}
	style := styles.Get(highlightStyle)
	formatter := chromahtml.New(
		chromahtml.WithClasses(true),
		chromahtml.PreventSurroundingPre(true),
	)

	var sheet bytes.Buffer
	if err := formatter.WriteCSS(&sheet, style); err != nil {
		return nil, fmt.Errorf("writing highlight CSS: %w", err)
	}
	sheet.WriteString("\n")
	sheet.WriteString(css)

	return &HTML{
		tmpl:      tmpl,
		css:       template.CSS(sheet.String()), // #nosec G203 -- stylesheet comes from trusted assets
		style:     style,
		formatter: formatter,
	}, nil
}

// Write renders doc through the page template.
func (h *HTML) Write(w io.Writer, doc *document.Document) error {
	body, err := h.Body(doc)
	if err != nil {
		return err
	}

	page := htmlPage{
		Title:    doc.Properties.Title,
		Author:   doc.Properties.Author,
		Subject:  doc.Properties.Subject,
		Keywords: strings.Join(doc.Properties.Keywords, ", "),
		CSS:      h.css,
		Body:     template.HTML(body), // #nosec G203 -- every text node is escaped by Body
	}
	if err := h.tmpl.Execute(w, page); err != nil {
		return fmt.Errorf("executing page template: %w", err)
	}
	return nil
}

// Body returns the HTML fragment for the document body.
func (h *HTML) Body(doc *document.Document) (string, error) {
	var b strings.Builder
	for _, page := range doc.Pages() {
		b.WriteString(`<section class="page">` + "\n")
		if err := h.page(&b, page); err != nil {
			return "", err
		}
		b.WriteString("</section>\n")
	}
	return b.String(), nil
}

func (h *HTML) page(b *strings.Builder, paras []*document.Paragraph) error {
	for i := 0; i < len(paras); {
		p := paras[i]
		switch {
		case p.Format.Preformatted:
			n := codeGroupLen(paras[i:])
			if err := h.code(b, paras[i:i+n]); err != nil {
				return err
			}
			i += n

		case p.Format.Style == document.StyleListBullet || p.Format.Style == document.StyleListNumber:
			style := p.Format.Style
			n := groupLen(paras[i:], func(q *document.Paragraph) bool { return q.Format.Style == style })
			list(b, style, paras[i:i+n])
			i += n

		case p.Format.OutlineLevel >= 2 && p.Format.OutlineLevel <= 6:
			tag := "h" + strconv.Itoa(p.Format.OutlineLevel)
			b.WriteString("<" + tag + ">" + html.EscapeString(p.Text()) + "</" + tag + ">\n")
			i++

		default:
			b.WriteString("<p" + paragraphAttrs(p.Format) + ">")
			runs(b, p.Runs)
			b.WriteString("</p>\n")
			i++
		}
	}
	return nil
}

// groupLen counts the leading paragraphs that satisfy same.
func groupLen(paras []*document.Paragraph, same func(*document.Paragraph) bool) int {
	n := 0
	for n < len(paras) && same(paras[n]) {
		n++
	}
	return n
}

// codeGroupLen counts the leading preformatted paragraphs that share one
// language. Blank code lines carry no runs and join the current group.
func codeGroupLen(paras []*document.Paragraph) int {
	var (
		lang    string
		started bool
	)
	return groupLen(paras, func(q *document.Paragraph) bool {
		if !q.Format.Preformatted {
			return false
		}
		if len(q.Runs) == 0 {
			return true
		}
		l := q.Runs[0].Format.Lang
		if !started {
			lang, started = l, true
		}
		return l == lang
	})
}

func list(b *strings.Builder, style document.ParagraphStyle, items []*document.Paragraph) {
	tag := "ul"
	if style == document.StyleListNumber {
		tag = "ol"
	}
	b.WriteString("<" + tag + ">\n")
	for _, item := range items {
		b.WriteString("<li>")
		runs(b, item.Runs)
		b.WriteString("</li>\n")
	}
	b.WriteString("</" + tag + ">\n")
}

func (h *HTML) code(b *strings.Builder, lines []*document.Paragraph) error {
	var (
		src  = make([]string, len(lines))
		lang string
	)
	for i, l := range lines {
		src[i] = l.Text()
		for _, r := range l.Runs {
			if lang == "" && r.Format.Lang != "" {
				lang = r.Format.Lang
			}
		}
	}

	lexer := lexers.Fallback
	if lang != "" {
		if l := lexers.Get(lang); l != nil {
			lexer = l
		}
	}
	lexer = chroma.Coalesce(lexer)

	it, err := lexer.Tokenise(nil, strings.Join(src, "\n"))
	if err != nil {
		return fmt.Errorf("tokenizing %s code: %w", lang, err)
	}

	b.WriteString(`<pre class="chroma">`)
	if lang != "" {
		b.WriteString(`<code class="language-` + html.EscapeString(lang) + `">`)
	} else {
		b.WriteString("<code>")
	}
	if err := h.formatter.Format(b, h.style, it); err != nil {
		return fmt.Errorf("highlighting code: %w", err)
	}
	b.WriteString("</code></pre>\n")
	return nil
}

func paragraphAttrs(f document.ParagraphFormat) string {
	var attrs string
	switch f.Align {
	case document.AlignCenter:
		attrs = ` class="center"`
	case document.AlignRight:
		attrs = ` class="right"`
	}
	if f.LeftIndent > 0 {
		attrs += ` style="padding-left: ` + strconv.FormatFloat(float64(f.LeftIndent), 'f', -1, 64) + `in"`
	}
	return attrs
}

func runs(b *strings.Builder, rs []document.Run) {
	for _, r := range rs {
		text := html.EscapeString(r.Text)
		if r.Format.Code {
			text = "<code>" + text + "</code>"
		}
		if r.Format.Italic {
			text = "<em>" + text + "</em>"
		}
		if r.Format.Bold {
			text = "<strong>" + text + "</strong>"
		}
		b.WriteString(text)
	}
}
