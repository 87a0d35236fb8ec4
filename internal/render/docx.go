package render

import (
	"archive/zip"
	"encoding/xml"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/alnah/go-md2apa/internal/document"
)

// Numbering definitions shared by styles.xml and numbering.xml.
const (
	bulletAbstractID = 0
	numberAbstractID = 1
	bulletNumID      = 1
	numberNumID      = 2

	// Numbered list groups after the first get their own w:num so each
	// group restarts at 1.
	firstGroupNumID = 3

	listIndentTwips  = 720
	listHangingTwips = 360
	singleLineTwips  = 240
)

// DOCX writes a WordprocessingML package (.docx).
type DOCX struct {
	// Now stamps docProps/core.xml and the zip entries. Defaults to time.Now.
	Now func() time.Time

	// Application is recorded in docProps/app.xml.
	Application string
}

// Write serializes doc as a .docx zip package.
func (d *DOCX) Write(w io.Writer, doc *document.Document) error {
	now := time.Now
	if d.Now != nil {
		now = d.Now
	}
	stamp := now().UTC().Truncate(time.Second)

	body, nums := d.body(doc)

	parts := []struct {
		name string
		data func() ([]byte, error)
	}{
		{"[Content_Types].xml", static(contentTypesXML)},
		{"_rels/.rels", static(packageRelsXML)},
		{"docProps/core.xml", marshal(coreProperties(doc.Properties, stamp))},
		{"docProps/app.xml", marshal(epProperties{Xmlns: nsExtProp, Application: d.application()})},
		{"word/_rels/document.xml.rels", static(documentRelsXML)},
		{"word/document.xml", marshal(body)},
		{"word/styles.xml", marshal(docxStyles(doc.Setup))},
		{"word/numbering.xml", marshal(numbering(nums))},
	}

	zw := zip.NewWriter(w)
	for _, p := range parts {
		data, err := p.data()
		if err != nil {
			return fmt.Errorf("encoding %s: %w", p.name, err)
		}
		fw, err := zw.CreateHeader(&zip.FileHeader{
			Name:     p.name,
			Method:   zip.Deflate,
			Modified: stamp,
		})
		if err != nil {
			return fmt.Errorf("creating %s: %w", p.name, err)
		}
		if _, err := fw.Write(data); err != nil {
			return fmt.Errorf("writing %s: %w", p.name, err)
		}
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("closing docx package: %w", err)
	}
	return nil
}

func (d *DOCX) application() string {
	if d.Application == "" {
		return "go-md2apa"
	}
	return d.Application
}

func static(s string) func() ([]byte, error) {
	return func() ([]byte, error) { return []byte(s), nil }
}

func marshal(v any) func() ([]byte, error) {
	return func() ([]byte, error) {
		out, err := xml.Marshal(v)
		if err != nil {
			return nil, err
		}
		return append([]byte(xml.Header), out...), nil
	}
}

// body converts the document body and returns the extra w:num ids
// allocated for numbered list groups.
func (d *DOCX) body(doc *document.Document) (wDocument, []int) {
	var (
		paras    = make([]wParagraph, 0, len(doc.Body))
		groups   []int
		numID    int
		inNumber bool
		seen     bool
	)

	for _, e := range doc.Body {
		switch e := e.(type) {
		case document.PageBreak:
			inNumber = false
			paras = append(paras, wParagraph{Runs: []wRun{{Br: &wBr{Type: "page"}}}})

		case *document.Paragraph:
			numbered := e.Format.Style == document.StyleListNumber
			if numbered && !inNumber {
				if seen {
					numID = firstGroupNumID + len(groups)
					groups = append(groups, numID)
				} else {
					numID = numberNumID
					seen = true
				}
			}
			inNumber = numbered
			paras = append(paras, paragraph(e, doc.Setup, numID, numbered))
		}
	}

	return wDocument{
		XmlnsW: nsW,
		XmlnsR: nsR,
		Body: wBody{
			Paragraphs: paras,
			SectPr:     sectPr(doc.Setup),
		},
	}, groups
}

func paragraph(p *document.Paragraph, setup document.PageSetup, numID int, numbered bool) wParagraph {
	var ppr wPPr
	has := false

	if p.Format.Style != document.StyleNormal {
		ppr.PStyle = &wVal{Val: string(p.Format.Style)}
		has = true
	}
	if numbered {
		ppr.NumPr = &wNumPr{ILvl: wVal{Val: "0"}, NumID: wVal{Val: strconv.Itoa(numID)}}
		has = true
	}
	if p.Format.LineSpacing > 0 && p.Format.LineSpacing != setup.LineSpacing {
		ppr.Spacing = &wSpacing{After: "0", Line: lineTwips(p.Format.LineSpacing), LineRule: "auto"}
		has = true
	}
	if p.Format.LeftIndent > 0 {
		ppr.Ind = &wInd{Left: strconv.Itoa(p.Format.LeftIndent.Twips())}
		has = true
	}
	switch p.Format.Align {
	case document.AlignCenter:
		ppr.Jc = &wVal{Val: "center"}
		has = true
	case document.AlignRight:
		ppr.Jc = &wVal{Val: "right"}
		has = true
	}

	if p.Format.OutlineLevel > 0 {
		ppr.Outline = &wVal{Val: strconv.Itoa(p.Format.OutlineLevel - 1)}
		has = true
	}

	out := wParagraph{Runs: make([]wRun, 0, len(p.Runs))}
	if has {
		out.PPr = &ppr
	}
	for _, r := range p.Runs {
		out.Runs = append(out.Runs, run(r))
	}
	return out
}

func run(r document.Run) wRun {
	var rpr wRPr
	has := false

	if r.Format.Font != "" {
		rpr.RFonts = &wFonts{ASCII: r.Format.Font, HAnsi: r.Format.Font, CS: r.Format.Font}
		has = true
	}
	if r.Format.Bold {
		rpr.B = &wEmpty{}
		has = true
	}
	if r.Format.Italic {
		rpr.I = &wEmpty{}
		has = true
	}
	if r.Format.Size > 0 {
		hp := wVal{Val: strconv.Itoa(r.Format.Size.HalfPoints())}
		rpr.Sz, rpr.SzCs = &hp, &hp
		has = true
	}

	out := wRun{T: text(r.Text)}
	if has {
		out.RPr = &rpr
	}
	return out
}

// text keeps leading and trailing whitespace, which Word drops otherwise.
func text(s string) *wText {
	t := &wText{Text: s}
	if s != strings.TrimSpace(s) {
		t.Space = "preserve"
	}
	return t
}

func lineTwips(multiple float64) string {
	return strconv.Itoa(int(multiple*singleLineTwips + 0.5))
}

func sectPr(s document.PageSetup) wSectPr {
	return wSectPr{
		PgSz: wPgSz{W: s.Width.Twips(), H: s.Height.Twips()},
		PgMar: wPgMar{
			Top:    s.Margins.Top.Twips(),
			Right:  s.Margins.Right.Twips(),
			Bottom: s.Margins.Bottom.Twips(),
			Left:   s.Margins.Left.Twips(),
			Header: document.Inches(0.5).Twips(),
			Footer: document.Inches(0.5).Twips(),
		},
	}
}

func docxStyles(s document.PageSetup) wStyles {
	size := wVal{Val: strconv.Itoa(s.FontSize.HalfPoints())}
	listStyle := func(id, name string, numID int) wStyle {
		return wStyle{
			Type:    "paragraph",
			StyleID: id,
			Name:    wVal{Val: name},
			BasedOn: &wVal{Val: "Normal"},
			QFormat: &wEmpty{},
			PPr: &wPPr{
				NumPr: &wNumPr{ILvl: wVal{Val: "0"}, NumID: wVal{Val: strconv.Itoa(numID)}},
			},
		}
	}

	return wStyles{
		XmlnsW: nsW,
		DocDefaults: wDocDefaults{
			RPr: wRPrDefault{RPr: wRPr{
				RFonts: &wFonts{ASCII: s.FontFamily, HAnsi: s.FontFamily, CS: s.FontFamily, EastAsia: s.FontFamily},
				Sz:     &size,
				SzCs:   &size,
			}},
			PPr: wPPrDefault{PPr: wPPr{
				Spacing: &wSpacing{Before: "0", After: "0", Line: lineTwips(s.LineSpacing), LineRule: "auto"},
			}},
		},
		Styles: []wStyle{
			{Type: "paragraph", Default: "1", StyleID: "Normal", Name: wVal{Val: "Normal"}, QFormat: &wEmpty{}},
			listStyle(string(document.StyleListBullet), "List Bullet", bulletNumID),
			listStyle(string(document.StyleListNumber), "List Number", numberNumID),
		},
	}
}

func numbering(groups []int) wNumbering {
	level := func(format, label string) wLevel {
		return wLevel{
			Start:   wVal{Val: "1"},
			NumFmt:  wVal{Val: format},
			LvlText: wVal{Val: label},
			LvlJc:   wVal{Val: "left"},
			PPr: wPPr{Ind: &wInd{
				Left:    strconv.Itoa(listIndentTwips),
				Hanging: strconv.Itoa(listHangingTwips),
			}},
		}
	}

	n := wNumbering{
		XmlnsW: nsW,
		AbstractNums: []wAbstractNum{
			{ID: bulletAbstractID, Lvl: level("bullet", "•")},
			{ID: numberAbstractID, Lvl: level("decimal", "%1.")},
		},
		Nums: []wNum{
			{ID: bulletNumID, AbstractNumID: wVal{Val: strconv.Itoa(bulletAbstractID)}},
			{ID: numberNumID, AbstractNumID: wVal{Val: strconv.Itoa(numberAbstractID)}},
		},
	}
	for _, id := range groups {
		n.Nums = append(n.Nums, wNum{
			ID:            id,
			AbstractNumID: wVal{Val: strconv.Itoa(numberAbstractID)},
			LvlOverride:   &wLvlOverride{StartOverride: wVal{Val: "1"}},
		})
	}
	return n
}

func coreProperties(p document.Properties, stamp time.Time) cpCoreProperties {
	w3c := dcDateTime{Type: "dcterms:W3CDTF", Value: stamp.Format(time.RFC3339)}
	return cpCoreProperties{
		XmlnsCP:  nsCP,
		XmlnsDC:  nsDC,
		XmlnsDCT: nsDCTerms,
		XmlnsXSI: nsXSI,
		Title:    p.Title,
		Subject:  p.Subject,
		Creator:  p.Author,
		Keywords: strings.Join(p.Keywords, ", "),
		Created:  w3c,
		Modified: w3c,
	}
}
