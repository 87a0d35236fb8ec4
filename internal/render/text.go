package render

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/muesli/reflow/ansi"
	"github.com/muesli/reflow/indent"
	"github.com/muesli/reflow/wordwrap"
	"github.com/muesli/termenv"

	"github.com/alnah/go-md2apa/internal/document"
)

// DefaultTextWidth is the wrap column when Text.Width is unset.
const DefaultTextWidth = 80

// Indentation in columns per inch of document indent.
const columnsPerInch = 8

// Text writes a terminal preview of the document: wrapped paragraphs,
// emphasis via ANSI styles, and a rule between pages.
type Text struct {
	// Width is the wrap column. Zero or negative uses DefaultTextWidth.
	Width int

	// Profile controls styling. termenv.Ascii writes plain text.
	Profile termenv.Profile
}

// Write renders doc as text.
func (t *Text) Write(w io.Writer, doc *document.Document) error {
	width := t.Width
	if width <= 0 {
		width = DefaultTextWidth
	}

	var b strings.Builder
	for i, page := range doc.Pages() {
		if i > 0 {
			b.WriteString(t.pageRule(width))
		}
		t.page(&b, page, width)
	}

	if _, err := io.WriteString(w, b.String()); err != nil {
		return fmt.Errorf("writing text preview: %w", err)
	}
	return nil
}

func (t *Text) page(b *strings.Builder, paras []*document.Paragraph, width int) {
	number := 0
	for _, p := range paras {
		if p.Format.Style != document.StyleListNumber {
			number = 0
		}
		switch {
		case p.Format.Preformatted:
			// Code is never wrapped.
			b.WriteString(indent.String(p.Text(), columns(p.Format.LeftIndent)))

		case p.Format.Style == document.StyleListBullet:
			b.WriteString(hanging("• ", t.runs(p.Runs), width))

		case p.Format.Style == document.StyleListNumber:
			number++
			b.WriteString(hanging(strconv.Itoa(number)+". ", t.runs(p.Runs), width))

		default:
			text := t.runs(p.Runs)
			left := columns(p.Format.LeftIndent)
			wrapped := wordwrap.String(text, max(width-int(left), 1))
			if p.Format.Align == document.AlignCenter {
				wrapped = center(wrapped, width)
			} else {
				wrapped = indent.String(wrapped, left)
			}
			b.WriteString(wrapped)
		}
		b.WriteString("\n")
	}
}

func (t *Text) runs(rs []document.Run) string {
	var b strings.Builder
	for _, r := range rs {
		if r.Format == (document.RunFormat{}) || r.Text == "" {
			b.WriteString(r.Text)
			continue
		}
		s := t.Profile.String(r.Text)
		if r.Format.Bold {
			s = s.Bold()
		}
		if r.Format.Italic {
			s = s.Italic()
		}
		if r.Format.Code && !r.Format.Bold && !r.Format.Italic {
			s = s.Foreground(t.Profile.Color("6"))
		}
		b.WriteString(s.String())
	}
	return b.String()
}

func (t *Text) pageRule(width int) string {
	return t.Profile.String(strings.Repeat("─", width)).Faint().String() + "\n"
}

// hanging wraps text after marker and aligns continuation lines with the
// first character of text.
func hanging(marker, text string, width int) string {
	pad := uint(ansi.PrintableRuneWidth(marker))
	body := wordwrap.String(text, max(width-int(pad), 1))
	lines := strings.Split(body, "\n")
	for i := 1; i < len(lines); i++ {
		lines[i] = strings.Repeat(" ", int(pad)) + lines[i]
	}
	return marker + strings.Join(lines, "\n")
}

func center(text string, width int) string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		if gap := width - ansi.PrintableRuneWidth(line); gap > 1 {
			lines[i] = strings.Repeat(" ", gap/2) + line
		}
	}
	return strings.Join(lines, "\n")
}

func columns(in document.Inches) uint {
	if in <= 0 {
		return 0
	}
	return uint(float64(in)*columnsPerInch + 0.5)
}
