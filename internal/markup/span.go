package markup

import "regexp"

// SpanKind identifies the inline formatting of a Span.
type SpanKind uint8

// Span kinds.
const (
	SpanPlain SpanKind = iota
	SpanBold
	SpanItalic
	SpanCode
)

// String returns the lowercase name of the kind.
func (k SpanKind) String() string {
	switch k {
	case SpanPlain:
		return "plain"
	case SpanBold:
		return "bold"
	case SpanItalic:
		return "italic"
	case SpanCode:
		return "code"
	}
	return "unknown"
}

// delimiter returns the marker that surrounds a span of this kind in source text.
func (k SpanKind) delimiter() string {
	switch k {
	case SpanBold:
		return "**"
	case SpanItalic:
		return "*"
	case SpanCode:
		return "`"
	}
	return ""
}

// Span is one inline-formatted run of text within a line.
// Text never contains the delimiters.
type Span struct {
	Kind SpanKind
	Text string
}

// Source returns the span as it appeared in the input, delimiters included.
func (s Span) Source() string {
	d := s.Kind.delimiter()
	return d + s.Text + d
}

// inlinePattern matches bold, italic, and inline code, in that order of
// preference at a given position. Each alternative captures its content in
// its own group so the matched kind is known without re-inspecting the text.
var inlinePattern = regexp.MustCompile("\\*\\*(.*?)\\*\\*|\\*(.*?)\\*|`(.*?)`")

// spanGroups maps submatch group numbers to span kinds.
var spanGroups = [...]SpanKind{1: SpanBold, 2: SpanItalic, 3: SpanCode}

// Tokenize splits one line into an ordered sequence of spans.
//
// Matches are found left to right without overlap; text between matches is
// returned as Plain spans verbatim, unmatched delimiters included. Nesting is
// not supported. Empty gaps between matches produce no Plain span, but a
// delimiter pair with nothing inside (such as "``") still yields an empty
// span of its kind so the source round-trips; renderers skip those.
func Tokenize(line string) []Span {
	matches := inlinePattern.FindAllStringSubmatchIndex(line, -1)
	spans := make([]Span, 0, 2*len(matches)+1)

	prev := 0
	for _, m := range matches {
		if m[0] > prev {
			spans = append(spans, Span{Kind: SpanPlain, Text: line[prev:m[0]]})
		}
		for group := 1; group < len(spanGroups); group++ {
			start, end := m[2*group], m[2*group+1]
			if start < 0 {
				continue
			}
			spans = append(spans, Span{Kind: spanGroups[group], Text: line[start:end]})
			break
		}
		prev = m[1]
	}
	if prev < len(line) {
		spans = append(spans, Span{Kind: SpanPlain, Text: line[prev:]})
	}

	return spans
}

// Compact drops empty spans.
func Compact(spans []Span) []Span {
	out := spans[:0:0]
	for _, s := range spans {
		if s.Text != "" {
			out = append(out, s)
		}
	}
	return out
}

// Reconstruct joins spans back into source text, delimiters re-inserted.
func Reconstruct(spans []Span) string {
	n := 0
	for _, s := range spans {
		n += len(s.Text) + 2*len(s.Kind.delimiter())
	}
	buf := make([]byte, 0, n)
	for _, s := range spans {
		buf = append(buf, s.Source()...)
	}
	return string(buf)
}
