package markup

// Block is one structural unit derived from a single source line.
// The set of implementations is closed: Heading, ListItem, CodeLine, Rule,
// BlankLine and Paragraph.
type Block interface {
	block()
}

// ListKind distinguishes bulleted from numbered list items.
type ListKind uint8

// List kinds.
const (
	ListBullet ListKind = iota
	ListNumbered
)

// Heading is a section heading. Level is 2, 3 or 4; level-1 headings never
// reach the document body.
type Heading struct {
	Level int
	Text  string
}

// ListItem is one bulleted or numbered list entry with its marker stripped.
type ListItem struct {
	Kind ListKind
	Text string
}

// CodeLine is one verbatim line inside a fenced code block.
// Lang is the language named on the opening fence, if any.
type CodeLine struct {
	Text string
	Lang string
}

// Rule is a horizontal rule.
type Rule struct{}

// BlankLine is an empty line outside of a list.
type BlankLine struct{}

// Paragraph is a line of body text split into inline spans.
type Paragraph struct {
	Spans []Span
}

func (Heading) block()   {}
func (ListItem) block()  {}
func (CodeLine) block()  {}
func (Rule) block()      {}
func (BlankLine) block() {}
func (Paragraph) block() {}
