package markup

import (
	"regexp"
	"strings"
)

// Block-level markers.
const (
	titleMarker    = "# "
	codeFence      = "```"
	ruleMarker     = "---"
	bulletDash     = "- "
	bulletStar     = "* "
	headingMarker2 = "## "
	headingMarker3 = "### "
	headingMarker4 = "#### "
)

// numberedItem matches an ordinal followed by a period and a space.
var numberedItem = regexp.MustCompile(`^\d+\. `)

// State is the scanner state threaded through Classify.
// The zero value is the initial state.
type State struct {
	InCodeBlock bool
	InList      bool

	// CodeLang is the language named on the fence that opened the
	// current code block. Empty outside code blocks.
	CodeLang string
}

// Classify decides which block a physical line represents given the current
// state, and returns the state to use for the next line. A nil Block means
// the line produces no output (title line, fence, or list separator).
//
// Rules apply in priority order; the first match wins.
func Classify(line string, st State) (Block, State) {
	trimmed := strings.TrimSpace(line)

	// The title is rendered on the title page, never in the body.
	if strings.HasPrefix(strings.TrimLeft(line, " \t"), titleMarker) {
		return nil, st
	}

	if strings.HasPrefix(line, codeFence) {
		if st.InCodeBlock {
			st.InCodeBlock, st.CodeLang = false, ""
		} else {
			st.InCodeBlock, st.CodeLang = true, fenceLang(line)
		}
		return nil, st
	}

	if st.InCodeBlock {
		return CodeLine{Text: line, Lang: st.CodeLang}, st
	}

	if level, text, ok := heading(line); ok {
		st.InList = false
		return Heading{Level: level, Text: text}, st
	}

	switch {
	case strings.HasPrefix(trimmed, bulletDash), strings.HasPrefix(trimmed, bulletStar):
		st.InList = true
		return ListItem{Kind: ListBullet, Text: trimmed[len(bulletDash):]}, st

	case numberedItem.MatchString(trimmed):
		st.InList = true
		loc := numberedItem.FindStringIndex(trimmed)
		return ListItem{Kind: ListNumbered, Text: trimmed[loc[1]:]}, st

	case trimmed == ruleMarker:
		st.InList = false
		return Rule{}, st

	case trimmed == "":
		// A blank line closes a list without adding a blank paragraph.
		if st.InList {
			st.InList = false
			return nil, st
		}
		return BlankLine{}, st
	}

	st.InList = false
	return Paragraph{Spans: Tokenize(line)}, st
}

// heading matches level 2-4 heading markers at the start of the raw line.
func heading(line string) (level int, text string, ok bool) {
	switch {
	case strings.HasPrefix(line, headingMarker2):
		return 2, strings.TrimSpace(line[len(headingMarker2):]), true
	case strings.HasPrefix(line, headingMarker3):
		return 3, strings.TrimSpace(line[len(headingMarker3):]), true
	case strings.HasPrefix(line, headingMarker4):
		return 4, strings.TrimSpace(line[len(headingMarker4):]), true
	}
	return 0, "", false
}

// fenceLang returns the first word of a fence info string.
func fenceLang(line string) string {
	fields := strings.Fields(line[len(codeFence):])
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}
