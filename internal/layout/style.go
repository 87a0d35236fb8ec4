// Package layout builds an APA-style document from scanned markup blocks.
package layout

import "github.com/alnah/go-md2apa/internal/document"

// Style is the fixed set of layout values applied by the Builder.
// APAStyle returns the values used for every conversion; the struct exists so
// tests and renderers can refer to them by name.
type Style struct {
	FontFamily      string
	FontSize        document.Points
	CodeFontFamily  string
	CodeFontSize    document.Points
	Margin          document.Inches
	PageWidth       document.Inches
	PageHeight      document.Inches
	LineSpacing     float64
	CodeLineSpacing float64
	CodeIndent      document.Inches

	Heading2Size   document.Points
	Heading3Size   document.Points
	Heading3Indent document.Inches
	Heading4Indent document.Inches

	RunningHeadSize   document.Points
	RunningHeadMaxLen int

	// TitleSpacerCount empty paragraphs push the title block down the
	// title page. This approximates vertical centering; nothing is measured.
	TitleSpacerCount int

	RuleWidth           int
	AbstractHeading     string
	KeywordsLabel       string
	KeywordsPlaceholder string

	// DateLayout formats the title page date when Metadata.Date is empty.
	DateLayout string
}

// APA 7th edition layout values.
const (
	apaFontFamily      = "Times New Roman"
	apaFontSize        = 12
	apaCodeFontFamily  = "Courier New"
	apaCodeFontSize    = 10
	apaMargin          = 1.0
	apaPageWidth       = 8.5
	apaPageHeight      = 11
	apaLineSpacing     = 2.0
	apaCodeLineSpacing = 1.0
	apaCodeIndent      = 0.5
	apaHeading2Size    = 14
	apaHeading3Size    = 12
	apaHeading3Indent  = 0.25
	apaHeading4Indent  = 0.5
	apaRunningHeadSize = 12
	apaRunningHeadMax  = 50
	apaTitleSpacers    = 8
	apaRuleWidth       = 60
	apaDateLayout      = "January 02, 2006"
)

// APAStyle returns the APA layout values.
func APAStyle() Style {
	return Style{
		FontFamily:          apaFontFamily,
		FontSize:            apaFontSize,
		CodeFontFamily:      apaCodeFontFamily,
		CodeFontSize:        apaCodeFontSize,
		Margin:              apaMargin,
		PageWidth:           apaPageWidth,
		PageHeight:          apaPageHeight,
		LineSpacing:         apaLineSpacing,
		CodeLineSpacing:     apaCodeLineSpacing,
		CodeIndent:          apaCodeIndent,
		Heading2Size:        apaHeading2Size,
		Heading3Size:        apaHeading3Size,
		Heading3Indent:      apaHeading3Indent,
		Heading4Indent:      apaHeading4Indent,
		RunningHeadSize:     apaRunningHeadSize,
		RunningHeadMaxLen:   apaRunningHeadMax,
		TitleSpacerCount:    apaTitleSpacers,
		RuleWidth:           apaRuleWidth,
		AbstractHeading:     "Abstract",
		KeywordsLabel:       "Keywords: ",
		KeywordsPlaceholder: "[Add keywords here]",
		DateLayout:          apaDateLayout,
	}
}

// PageSetup returns the document page setup implied by the style.
func (s Style) PageSetup() document.PageSetup {
	return document.PageSetup{
		Width:  s.PageWidth,
		Height: s.PageHeight,
		Margins: document.Margins{
			Top:    s.Margin,
			Right:  s.Margin,
			Bottom: s.Margin,
			Left:   s.Margin,
		},
		FontFamily:  s.FontFamily,
		FontSize:    s.FontSize,
		LineSpacing: s.LineSpacing,
	}
}

// codeRun returns the run format for monospace content.
func (s Style) codeRun(lang string) document.RunFormat {
	return document.RunFormat{Font: s.CodeFontFamily, Size: s.CodeFontSize, Code: true, Lang: lang}
}
