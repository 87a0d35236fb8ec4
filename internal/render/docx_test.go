package render

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/alnah/go-md2apa/internal/document"
	"github.com/alnah/go-md2apa/internal/layout"
)

var fixedNow = func() time.Time { return time.Date(2026, time.October, 14, 9, 30, 0, 0, time.UTC) }

// unzipDOCX writes doc and returns the package parts by name.
func unzipDOCX(t *testing.T, doc *document.Document) map[string]string {
	t.Helper()

	var buf bytes.Buffer
	if err := (&DOCX{Now: fixedNow}).Write(&buf, doc); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	zr, err := zip.NewReader(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	if err != nil {
		t.Fatalf("zip.NewReader() error = %v", err)
	}

	parts := make(map[string]string, len(zr.File))
	for _, f := range zr.File {
		rc, err := f.Open()
		if err != nil {
			t.Fatalf("open %s: %v", f.Name, err)
		}
		data, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			t.Fatalf("read %s: %v", f.Name, err)
		}
		parts[f.Name] = string(data)
	}
	return parts
}

func newTestDoc() *document.Document {
	return document.New(layout.APAStyle().PageSetup())
}

func TestDOCX_Parts(t *testing.T) {
	t.Parallel()

	parts := unzipDOCX(t, newTestDoc())

	for _, name := range []string{
		"[Content_Types].xml",
		"_rels/.rels",
		"docProps/core.xml",
		"docProps/app.xml",
		"word/_rels/document.xml.rels",
		"word/document.xml",
		"word/styles.xml",
		"word/numbering.xml",
	} {
		data, ok := parts[name]
		if !ok {
			t.Errorf("missing part %s", name)
			continue
		}
		if err := xml.Unmarshal([]byte(data), new(struct{})); err != nil {
			t.Errorf("part %s is not well-formed XML: %v", name, err)
		}
	}
}

func TestDOCX_Document(t *testing.T) {
	t.Parallel()

	doc := newTestDoc()
	doc.AddParagraph(document.ParagraphFormat{Align: document.AlignCenter}).
		AddRun("Title", document.RunFormat{Bold: true})
	doc.AddPageBreak()
	doc.AddParagraph(document.ParagraphFormat{OutlineLevel: 2}).
		AddRun("Heading", document.RunFormat{Bold: true, Size: 14})
	doc.AddParagraph(document.ParagraphFormat{}).
		AddRun("a", document.RunFormat{Italic: true}).
		AddRun(" b & c", document.RunFormat{})
	doc.AddParagraph(document.ParagraphFormat{LeftIndent: 0.5, LineSpacing: 1.0}).
		AddRun("x := 1", document.RunFormat{Font: "Courier New", Size: 10, Code: true})

	body := unzipDOCX(t, doc)["word/document.xml"]

	tests := []struct {
		name string
		want string
	}{
		{name: "centered paragraph", want: `<w:jc w:val="center">`},
		{name: "bold run", want: `<w:b>`},
		{name: "italic run", want: `<w:i>`},
		{name: "page break", want: `<w:br w:type="page">`},
		{name: "14pt in half-points", want: `<w:sz w:val="28">`},
		{name: "heading outline level", want: `<w:outlineLvl w:val="1">`},
		{name: "code font", want: `<w:rFonts w:ascii="Courier New" w:hAnsi="Courier New" w:cs="Courier New">`},
		{name: "code indent in twips", want: `<w:ind w:left="720">`},
		{name: "single spacing override", want: `w:line="240"`},
		{name: "escaped text with preserved space", want: `<w:t xml:space="preserve"> b &amp; c</w:t>`},
		{name: "letter page size", want: `<w:pgSz w:w="12240" w:h="15840">`},
		{name: "one inch margins", want: `w:top="1440" w:right="1440" w:bottom="1440" w:left="1440"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if !strings.Contains(body, tt.want) {
				t.Errorf("document.xml missing %q", tt.want)
			}
		})
	}
}

func TestDOCX_AbstractParagraphs(t *testing.T) {
	t.Parallel()

	doc := layout.Build(layout.Metadata{Title: "T", Author: "A"}, "", layout.APAStyle(), true, "first para\n\nsecond para")
	body := unzipDOCX(t, doc)["word/document.xml"]

	for _, want := range []string{">first para</w:t>", ">second para</w:t>"} {
		if !strings.Contains(body, want) {
			t.Errorf("document.xml missing %q", want)
		}
	}
	if strings.Contains(body, "&#xA;") {
		t.Error("abstract newlines written inside a text run")
	}
}

func TestDOCX_StylesDefaults(t *testing.T) {
	t.Parallel()

	styles := unzipDOCX(t, newTestDoc())["word/styles.xml"]

	for _, want := range []string{
		`w:ascii="Times New Roman"`,
		`<w:sz w:val="24">`,
		`w:line="480"`,
		`w:styleId="ListBullet"`,
		`<w:name w:val="List Number">`,
	} {
		if !strings.Contains(styles, want) {
			t.Errorf("styles.xml missing %q", want)
		}
	}
}

func TestDOCX_NumberingRestartsPerGroup(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		groups     int
		wantNumIDs []string
	}{
		{name: "single group uses base numbering", groups: 1, wantNumIDs: []string{"2"}},
		{name: "second group restarts", groups: 2, wantNumIDs: []string{"2", "3"}},
		{name: "third group restarts", groups: 3, wantNumIDs: []string{"2", "3", "4"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			doc := newTestDoc()
			for g := range tt.groups {
				if g > 0 {
					doc.AddParagraph(document.ParagraphFormat{}).AddRun("between", document.RunFormat{})
				}
				for range 2 {
					doc.AddParagraph(document.ParagraphFormat{Style: document.StyleListNumber}).
						AddRun("item", document.RunFormat{})
				}
			}

			parts := unzipDOCX(t, doc)
			for _, id := range tt.wantNumIDs {
				if !strings.Contains(parts["word/document.xml"], `<w:numId w:val="`+id+`">`) {
					t.Errorf("document.xml has no paragraph using numId %s", id)
				}
				if !strings.Contains(parts["word/numbering.xml"], `w:numId="`+id+`"`) {
					t.Errorf("numbering.xml missing numId %s", id)
				}
			}
			if got := strings.Count(parts["word/numbering.xml"], "<w:startOverride"); got != tt.groups-1 {
				t.Errorf("startOverride count = %d, want %d", got, tt.groups-1)
			}
		})
	}
}

func TestDOCX_CoreProperties(t *testing.T) {
	t.Parallel()

	doc := newTestDoc()
	doc.Properties = document.Properties{
		Title:    "Sleep & Memory",
		Author:   "Ada",
		Subject:  "Uni",
		Keywords: []string{"sleep", "memory"},
	}

	core := unzipDOCX(t, doc)["docProps/core.xml"]

	for _, want := range []string{
		`<dc:title>Sleep &amp; Memory</dc:title>`,
		`<dc:creator>Ada</dc:creator>`,
		`<dc:subject>Uni</dc:subject>`,
		`<cp:keywords>sleep, memory</cp:keywords>`,
		`2026-10-14T09:30:00Z`,
	} {
		if !strings.Contains(core, want) {
			t.Errorf("core.xml missing %q", want)
		}
	}
}

type failWriter struct{}

func (failWriter) Write([]byte) (int, error) { return 0, io.ErrClosedPipe }

func TestDOCX_WriteError(t *testing.T) {
	t.Parallel()

	doc := newTestDoc()
	doc.AddParagraph(document.ParagraphFormat{}).AddRun(strings.Repeat("x", 1<<16), document.RunFormat{})

	if err := (&DOCX{Now: fixedNow}).Write(failWriter{}, doc); err == nil {
		t.Fatal("Write() error = nil, want error from failing writer")
	}
}
