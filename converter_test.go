package md2apa

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// ---------------------------------------------------------------------------
// Mock Implementations
// ---------------------------------------------------------------------------

type mockPDFConverter struct {
	called bool
	input  string
	opts   *pdfOptions
	err    error
	panics bool
	closed bool
}

func (m *mockPDFConverter) ToPDF(ctx context.Context, htmlContent string, opts *pdfOptions) ([]byte, error) {
	if m.panics {
		panic("simulated panic in PDF backend")
	}
	m.called = true
	m.input = htmlContent
	m.opts = opts
	if m.err != nil {
		return nil, m.err
	}
	return []byte("%PDF-1.7 mock"), nil
}

func (m *mockPDFConverter) Close() error {
	m.closed = true
	return nil
}

type mockAssetLoader struct {
	style    string
	styleErr error
	template string
}

func (m *mockAssetLoader) LoadStyle(string) (string, error) {
	return m.style, m.styleErr
}

func (m *mockAssetLoader) LoadTemplate(string) (string, error) {
	if m.template == "" {
		return "<html><style>{{.CSS}}</style>{{.Body}}</html>", nil
	}
	return m.template, nil
}

// ---------------------------------------------------------------------------
// Test Helpers
// ---------------------------------------------------------------------------

func withPDFConverter(p pdfConverter) Option {
	return func(c *Converter) {
		c.pdfConverter = p
	}
}

var fixedNow = func() time.Time { return time.Date(2026, time.October, 14, 9, 30, 0, 0, time.UTC) }

func validInput(format Format) Input {
	return Input{
		Markdown: "# Sleep\n\n## Method\nParticipants **slept**.\n",
		Metadata: Metadata{Title: "Sleep and Memory", Author: "Ada Lovelace", Institution: "University of London"},
		Format:   format,
	}
}

func newTestConverter(t *testing.T, opts ...Option) (*Converter, *mockPDFConverter) {
	t.Helper()

	pdf := &mockPDFConverter{}
	base := []Option{withPDFConverter(pdf), WithNow(fixedNow), WithTextWidth(60)}
	conv, err := NewConverter(append(base, opts...)...)
	if err != nil {
		t.Fatalf("NewConverter() error = %v", err)
	}
	t.Cleanup(func() { _ = conv.Close() })
	return conv, pdf
}

// ---------------------------------------------------------------------------
// TestConverter_Convert - Formats
// ---------------------------------------------------------------------------

func TestConverter_Convert(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		format Format
		want   []string
	}{
		{name: "default is docx", format: "", want: []string{"PK"}},
		{name: "docx", format: FormatDOCX, want: []string{"PK", "word/document.xml"}},
		{name: "html", format: FormatHTML, want: []string{"<title>Sleep and Memory</title>", "<h2>Method</h2>", "<strong>slept</strong>"}},
		{name: "text", format: FormatText, want: []string{"SLEEP AND MEMORY", "Ada Lovelace", "October 14, 2026", "Method"}},
		{name: "format is case insensitive", format: "TXT", want: []string{"Method"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			conv, pdf := newTestConverter(t)
			res, err := conv.Convert(context.Background(), validInput(tt.format))
			if err != nil {
				t.Fatalf("Convert() error = %v", err)
			}
			for _, want := range tt.want {
				if !bytes.Contains(res.Data, []byte(want)) {
					t.Errorf("output missing %q", want)
				}
			}
			if res.Blocks != 3 {
				t.Errorf("Blocks = %d, want 3", res.Blocks)
			}
			if pdf.called {
				t.Error("PDF backend called for a non-PDF format")
			}
		})
	}
}

func TestConverter_ConvertPDF(t *testing.T) {
	t.Parallel()

	conv, pdf := newTestConverter(t)
	res, err := conv.Convert(context.Background(), validInput(FormatPDF))
	if err != nil {
		t.Fatalf("Convert() error = %v", err)
	}

	if res.Format != FormatPDF || !bytes.HasPrefix(res.Data, []byte("%PDF")) {
		t.Errorf("result = %s %q, want PDF bytes", res.Format, res.Data)
	}
	if !strings.Contains(pdf.input, "<h2>Method</h2>") {
		t.Error("PDF backend did not receive the rendered HTML")
	}
	if pdf.opts == nil || pdf.opts.Setup.Margins.Top != 1 {
		t.Errorf("PDF options = %+v, want 1in margins", pdf.opts)
	}
}

func TestConverter_ConvertPDFError(t *testing.T) {
	t.Parallel()

	conv, _ := newTestConverter(t, withPDFConverter(&mockPDFConverter{err: ErrBrowserConnect}))
	_, err := conv.Convert(context.Background(), validInput(FormatPDF))
	if !errors.Is(err, ErrBrowserConnect) {
		t.Errorf("Convert() error = %v, want ErrBrowserConnect", err)
	}
}

// ---------------------------------------------------------------------------
// TestConverter_Convert - Title page, abstract and lint
// ---------------------------------------------------------------------------

func TestConverter_ConvertAbstract(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		abstract *Abstract
		keywords []string
		want     []string
		avoid    []string
	}{
		{name: "no abstract", avoid: []string{"Abstract", "Keywords:"}},
		{
			name:     "abstract with placeholder",
			abstract: &Abstract{Text: "We *measured* recall."},
			want:     []string{"Abstract", "We measured recall.", "Keywords: [Add keywords here]"},
		},
		{
			name:     "abstract with keywords",
			abstract: &Abstract{},
			keywords: []string{"sleep", "memory"},
			want:     []string{"Keywords: sleep, memory"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			in := validInput(FormatText)
			in.Abstract = tt.abstract
			in.Metadata.Keywords = tt.keywords

			conv, _ := newTestConverter(t)
			res, err := conv.Convert(context.Background(), in)
			if err != nil {
				t.Fatalf("Convert() error = %v", err)
			}
			out := string(res.Data)
			for _, w := range tt.want {
				if !strings.Contains(out, w) {
					t.Errorf("output missing %q:\n%s", w, out)
				}
			}
			for _, a := range tt.avoid {
				if strings.Contains(out, a) {
					t.Errorf("output unexpectedly contains %q", a)
				}
			}
		})
	}
}

func TestConverter_ConvertDate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		date string
		want string
	}{
		{date: "", want: "October 14, 2026"},
		{date: "auto:iso", want: "2026-10-14"},
		{date: "Fall 2026", want: "Fall 2026"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			t.Parallel()

			in := validInput(FormatText)
			in.Metadata.Date = tt.date

			conv, _ := newTestConverter(t)
			res, err := conv.Convert(context.Background(), in)
			if err != nil {
				t.Fatalf("Convert() error = %v", err)
			}
			if !strings.Contains(string(res.Data), tt.want) {
				t.Errorf("output missing date %q", tt.want)
			}
		})
	}
}

func TestConverter_ConvertLint(t *testing.T) {
	t.Parallel()

	in := validInput(FormatDOCX)
	in.Markdown = "## Data\n\n| a | b |\n|---|---|\n| 1 | 2 |\n\nsee [x](y)\n"

	conv, _ := newTestConverter(t)

	res, err := conv.Convert(context.Background(), in)
	if err != nil {
		t.Fatalf("Convert() error = %v", err)
	}
	if len(res.Findings) != 0 {
		t.Errorf("Findings = %v without Input.Lint", res.Findings)
	}

	in.Lint = true
	res, err = conv.Convert(context.Background(), in)
	if err != nil {
		t.Fatalf("Convert() error = %v", err)
	}
	rules := map[string]int{}
	for _, f := range res.Findings {
		rules[f.Rule] = f.Line
	}
	if rules["table"] != 3 {
		t.Errorf("table finding line = %d, want 3 (findings %v)", rules["table"], res.Findings)
	}
	if rules["link"] != 7 {
		t.Errorf("link finding line = %d, want 7 (findings %v)", rules["link"], res.Findings)
	}
}

// ---------------------------------------------------------------------------
// TestConverter_Convert - Validation and failures
// ---------------------------------------------------------------------------

func TestConverter_ConvertValidation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(in *Input)
		wantErr error
	}{
		{name: "missing title", mutate: func(in *Input) { in.Metadata.Title = "  " }, wantErr: ErrMissingTitle},
		{name: "missing author", mutate: func(in *Input) { in.Metadata.Author = "" }, wantErr: ErrMissingAuthor},
		{name: "unknown format", mutate: func(in *Input) { in.Format = "odt" }, wantErr: ErrInvalidFormat},
		{name: "abstract too long", mutate: func(in *Input) {
			in.Abstract = &Abstract{Text: strings.Repeat("a", MaxAbstractLength+1)}
		}, wantErr: ErrFieldTooLong},
		{name: "bad auto date", mutate: func(in *Input) { in.Metadata.Date = "auto:[x" }, wantErr: ErrInvalidDate},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			in := validInput(FormatDOCX)
			tt.mutate(&in)

			conv, _ := newTestConverter(t)
			_, err := conv.Convert(context.Background(), in)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Convert() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestConverter_ConvertEmptyBody(t *testing.T) {
	t.Parallel()

	in := validInput(FormatText)
	in.Markdown = ""
	in.Abstract = &Abstract{Text: "Short summary."}

	conv, _ := newTestConverter(t)
	res, err := conv.Convert(context.Background(), in)
	if err != nil {
		t.Fatalf("Convert() error = %v", err)
	}
	if res.Blocks != 0 {
		t.Errorf("Blocks = %d, want 0", res.Blocks)
	}
	out := string(res.Data)
	for _, want := range []string{"Sleep and Memory", "Ada Lovelace", "Abstract", "Short summary."} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestConverter_ConvertCanceled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	conv, _ := newTestConverter(t)
	if _, err := conv.Convert(ctx, validInput(FormatDOCX)); !errors.Is(err, context.Canceled) {
		t.Errorf("Convert() error = %v, want context.Canceled", err)
	}
}

func TestConverter_ConvertRecoversPanic(t *testing.T) {
	t.Parallel()

	conv, _ := newTestConverter(t, withPDFConverter(&mockPDFConverter{panics: true}))
	_, err := conv.Convert(context.Background(), validInput(FormatPDF))
	if err == nil || !strings.Contains(err.Error(), "internal error") {
		t.Errorf("Convert() error = %v, want recovered internal error", err)
	}
}

func TestConverter_ConvertLogsDebug(t *testing.T) {
	t.Parallel()

	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug}))

	conv, _ := newTestConverter(t, WithLogger(logger))
	if _, err := conv.Convert(context.Background(), validInput(FormatHTML)); err != nil {
		t.Fatalf("Convert() error = %v", err)
	}
	for _, want := range []string{"document built", "blocks=3", "format=html"} {
		if !strings.Contains(logs.String(), want) {
			t.Errorf("logs missing %q:\n%s", want, logs.String())
		}
	}
}

// ---------------------------------------------------------------------------
// TestNewConverter - Asset resolution
// ---------------------------------------------------------------------------

func TestNewConverter_Assets(t *testing.T) {
	t.Parallel()

	cssPath := filepath.Join(t.TempDir(), "paper.css")
	if err := os.WriteFile(cssPath, []byte("body { color: teal; }"), 0o600); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name    string
		opts    []Option
		want    string
		wantErr error
	}{
		{name: "embedded default", want: "Times New Roman"},
		{name: "embedded screen style", opts: []Option{WithStyle("screen")}, want: "8.5in"},
		{name: "css file path", opts: []Option{WithStyle(cssPath)}, want: "color: teal"},
		{name: "custom loader", opts: []Option{WithAssetLoader(&mockAssetLoader{style: "p { margin: 0 }"})}, want: "p { margin: 0 }"},
		{name: "unknown style", opts: []Option{WithStyle("nope")}, wantErr: ErrStyleNotFound},
		{name: "invalid asset path", opts: []Option{WithAssetPath(filepath.Join(t.TempDir(), "missing"))}, wantErr: ErrInvalidAssetPath},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			opts := append([]Option{withPDFConverter(&mockPDFConverter{})}, tt.opts...)
			conv, err := NewConverter(opts...)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("NewConverter() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("NewConverter() error = %v", err)
			}

			res, err := conv.Convert(context.Background(), validInput(FormatHTML))
			if err != nil {
				t.Fatalf("Convert() error = %v", err)
			}
			if !strings.Contains(string(res.Data), tt.want) {
				t.Errorf("HTML missing stylesheet content %q", tt.want)
			}
		})
	}
}

func TestConverter_Close(t *testing.T) {
	t.Parallel()

	pdf := &mockPDFConverter{}
	conv, err := NewConverter(withPDFConverter(pdf))
	if err != nil {
		t.Fatal(err)
	}
	if err := conv.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}
	if !pdf.closed {
		t.Error("Close() did not close the PDF backend")
	}
}

func TestWithTimeout_PanicsOnNonPositive(t *testing.T) {
	t.Parallel()

	defer func() {
		if recover() == nil {
			t.Error("WithTimeout(0) did not panic")
		}
	}()
	WithTimeout(0)
}
