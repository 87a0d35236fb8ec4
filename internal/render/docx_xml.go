package render

import "encoding/xml"

// WordprocessingML namespaces.
const (
	nsW       = "http://schemas.openxmlformats.org/wordprocessingml/2006/main"
	nsR       = "http://schemas.openxmlformats.org/officeDocument/2006/relationships"
	nsCP      = "http://schemas.openxmlformats.org/package/2006/metadata/core-properties"
	nsDC      = "http://purl.org/dc/elements/1.1/"
	nsDCTerms = "http://purl.org/dc/terms/"
	nsXSI     = "http://www.w3.org/2001/XMLSchema-instance"
	nsExtProp = "http://schemas.openxmlformats.org/officeDocument/2006/extended-properties"
)

// Package parts that do not depend on the document.
const (
	contentTypesXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">
  <Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>
  <Default Extension="xml" ContentType="application/xml"/>
  <Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/>
  <Override PartName="/word/styles.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.styles+xml"/>
  <Override PartName="/word/numbering.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.numbering+xml"/>
  <Override PartName="/docProps/core.xml" ContentType="application/vnd.openxmlformats-package.core-properties+xml"/>
  <Override PartName="/docProps/app.xml" ContentType="application/vnd.openxmlformats-officedocument.extended-properties+xml"/>
</Types>`

	packageRelsXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
  <Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="word/document.xml"/>
  <Relationship Id="rId2" Type="http://schemas.openxmlformats.org/package/2006/relationships/metadata/core-properties" Target="docProps/core.xml"/>
  <Relationship Id="rId3" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/extended-properties" Target="docProps/app.xml"/>
</Relationships>`

	documentRelsXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
  <Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/styles" Target="styles.xml"/>
  <Relationship Id="rId2" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/numbering" Target="numbering.xml"/>
</Relationships>`
)

// word/document.xml

type wDocument struct {
	XMLName xml.Name `xml:"w:document"`
	XmlnsW  string   `xml:"xmlns:w,attr"`
	XmlnsR  string   `xml:"xmlns:r,attr"`
	Body    wBody    `xml:"w:body"`
}

type wBody struct {
	Paragraphs []wParagraph `xml:"w:p"`
	SectPr     wSectPr      `xml:"w:sectPr"`
}

type wParagraph struct {
	PPr  *wPPr  `xml:"w:pPr,omitempty"`
	Runs []wRun `xml:"w:r"`
}

// wPPr fields follow the schema sequence of CT_PPr.
type wPPr struct {
	PStyle  *wVal     `xml:"w:pStyle,omitempty"`
	NumPr   *wNumPr   `xml:"w:numPr,omitempty"`
	Spacing *wSpacing `xml:"w:spacing,omitempty"`
	Ind     *wInd     `xml:"w:ind,omitempty"`
	Jc      *wVal     `xml:"w:jc,omitempty"`
	Outline *wVal     `xml:"w:outlineLvl,omitempty"`
}

type wVal struct {
	Val string `xml:"w:val,attr"`
}

type wNumPr struct {
	ILvl  wVal `xml:"w:ilvl"`
	NumID wVal `xml:"w:numId"`
}

type wSpacing struct {
	Before   string `xml:"w:before,attr,omitempty"`
	After    string `xml:"w:after,attr,omitempty"`
	Line     string `xml:"w:line,attr,omitempty"`
	LineRule string `xml:"w:lineRule,attr,omitempty"`
}

type wInd struct {
	Left    string `xml:"w:left,attr,omitempty"`
	Hanging string `xml:"w:hanging,attr,omitempty"`
}

type wRun struct {
	RPr *wRPr  `xml:"w:rPr,omitempty"`
	Br  *wBr   `xml:"w:br,omitempty"`
	T   *wText `xml:"w:t,omitempty"`
}

// wRPr fields follow the schema sequence of CT_RPr.
type wRPr struct {
	RFonts *wFonts `xml:"w:rFonts,omitempty"`
	B      *wEmpty `xml:"w:b,omitempty"`
	I      *wEmpty `xml:"w:i,omitempty"`
	Sz     *wVal   `xml:"w:sz,omitempty"`
	SzCs   *wVal   `xml:"w:szCs,omitempty"`
}

type wEmpty struct{}

type wFonts struct {
	ASCII    string `xml:"w:ascii,attr"`
	HAnsi    string `xml:"w:hAnsi,attr"`
	CS       string `xml:"w:cs,attr"`
	EastAsia string `xml:"w:eastAsia,attr,omitempty"`
}

type wBr struct {
	Type string `xml:"w:type,attr"`
}

type wText struct {
	Space string `xml:"xml:space,attr,omitempty"`
	Text  string `xml:",chardata"`
}

type wSectPr struct {
	PgSz  wPgSz  `xml:"w:pgSz"`
	PgMar wPgMar `xml:"w:pgMar"`
}

type wPgSz struct {
	W int `xml:"w:w,attr"`
	H int `xml:"w:h,attr"`
}

type wPgMar struct {
	Top    int `xml:"w:top,attr"`
	Right  int `xml:"w:right,attr"`
	Bottom int `xml:"w:bottom,attr"`
	Left   int `xml:"w:left,attr"`
	Header int `xml:"w:header,attr"`
	Footer int `xml:"w:footer,attr"`
	Gutter int `xml:"w:gutter,attr"`
}

// word/styles.xml

type wStyles struct {
	XMLName     xml.Name     `xml:"w:styles"`
	XmlnsW      string       `xml:"xmlns:w,attr"`
	DocDefaults wDocDefaults `xml:"w:docDefaults"`
	Styles      []wStyle     `xml:"w:style"`
}

type wDocDefaults struct {
	RPr wRPrDefault `xml:"w:rPrDefault"`
	PPr wPPrDefault `xml:"w:pPrDefault"`
}

type wRPrDefault struct {
	RPr wRPr `xml:"w:rPr"`
}

type wPPrDefault struct {
	PPr wPPr `xml:"w:pPr"`
}

type wStyle struct {
	Type    string  `xml:"w:type,attr"`
	Default string  `xml:"w:default,attr,omitempty"`
	StyleID string  `xml:"w:styleId,attr"`
	Name    wVal    `xml:"w:name"`
	BasedOn *wVal   `xml:"w:basedOn,omitempty"`
	QFormat *wEmpty `xml:"w:qFormat,omitempty"`
	PPr     *wPPr   `xml:"w:pPr,omitempty"`
}

// word/numbering.xml

type wNumbering struct {
	XMLName      xml.Name       `xml:"w:numbering"`
	XmlnsW       string         `xml:"xmlns:w,attr"`
	AbstractNums []wAbstractNum `xml:"w:abstractNum"`
	Nums         []wNum         `xml:"w:num"`
}

type wAbstractNum struct {
	ID  int    `xml:"w:abstractNumId,attr"`
	Lvl wLevel `xml:"w:lvl"`
}

type wLevel struct {
	ILvl    int   `xml:"w:ilvl,attr"`
	Start   wVal  `xml:"w:start"`
	NumFmt  wVal  `xml:"w:numFmt"`
	LvlText wVal  `xml:"w:lvlText"`
	LvlJc   wVal  `xml:"w:lvlJc"`
	PPr     wPPr  `xml:"w:pPr"`
	RPr     *wRPr `xml:"w:rPr,omitempty"`
}

type wNum struct {
	ID            int           `xml:"w:numId,attr"`
	AbstractNumID wVal          `xml:"w:abstractNumId"`
	LvlOverride   *wLvlOverride `xml:"w:lvlOverride,omitempty"`
}

type wLvlOverride struct {
	ILvl          int  `xml:"w:ilvl,attr"`
	StartOverride wVal `xml:"w:startOverride"`
}

// docProps/core.xml

type cpCoreProperties struct {
	XMLName  xml.Name   `xml:"cp:coreProperties"`
	XmlnsCP  string     `xml:"xmlns:cp,attr"`
	XmlnsDC  string     `xml:"xmlns:dc,attr"`
	XmlnsDCT string     `xml:"xmlns:dcterms,attr"`
	XmlnsXSI string     `xml:"xmlns:xsi,attr"`
	Title    string     `xml:"dc:title,omitempty"`
	Subject  string     `xml:"dc:subject,omitempty"`
	Creator  string     `xml:"dc:creator,omitempty"`
	Keywords string     `xml:"cp:keywords,omitempty"`
	Created  dcDateTime `xml:"dcterms:created"`
	Modified dcDateTime `xml:"dcterms:modified"`
}

type dcDateTime struct {
	Type  string `xml:"xsi:type,attr"`
	Value string `xml:",chardata"`
}

// docProps/app.xml

type epProperties struct {
	XMLName     xml.Name `xml:"Properties"`
	Xmlns       string   `xml:"xmlns,attr"`
	Application string   `xml:"Application"`
}
