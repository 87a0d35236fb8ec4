package md2apa

import (
	"context"
	"fmt"
	"html"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"

	"github.com/alnah/go-md2apa/internal/document"
	"github.com/alnah/go-md2apa/internal/fileutil"
	"github.com/alnah/go-md2apa/internal/process"
)

// pdfConverter abstracts HTML to PDF conversion to allow different backends.
type pdfConverter interface {
	ToPDF(ctx context.Context, htmlContent string, opts *pdfOptions) ([]byte, error)
	Close() error
}

var _ pdfConverter = (*rodConverter)(nil)

// pdfOptions carries the page geometry of the built document.
type pdfOptions struct {
	Setup document.PageSetup
}

// headerFontSize is the page number size in CSS pixels.
const headerFontSize = 12

// buildPrintOptions maps the page setup onto Chrome's print parameters.
// Page numbers are printed top right in the header band.
func buildPrintOptions(opts *pdfOptions) *proto.PagePrintToPDF {
	s := opts.Setup
	return &proto.PagePrintToPDF{
		PaperWidth:          floatPtr(float64(s.Width)),
		PaperHeight:         floatPtr(float64(s.Height)),
		MarginTop:           floatPtr(float64(s.Margins.Top)),
		MarginBottom:        floatPtr(float64(s.Margins.Bottom)),
		MarginLeft:          floatPtr(float64(s.Margins.Left)),
		MarginRight:         floatPtr(float64(s.Margins.Right)),
		PrintBackground:     true,
		DisplayHeaderFooter: true,
		HeaderTemplate:      buildHeaderTemplate(s),
		FooterTemplate:      "<span></span>",
	}
}

// buildHeaderTemplate returns Chrome's header HTML. The pageNumber class is
// filled in by Chrome on every page.
func buildHeaderTemplate(s document.PageSetup) string {
	return fmt.Sprintf(
		`<div style="font-family: '%s'; font-size: %dpx; width: 100%%; text-align: right; padding: 0 %.2fin;"><span class="pageNumber"></span></div>`,
		html.EscapeString(s.FontFamily), headerFontSize, float64(s.Margins.Right),
	)
}

func floatPtr(v float64) *float64 {
	return &v
}

// fileURL turns a local path into a file:// URL, including Windows drive paths.
func fileURL(path string) string {
	p := filepath.ToSlash(path)
	if len(p) > 0 && p[0] != '/' {
		p = "/" + p
	}
	return (&url.URL{Scheme: "file", Path: p}).String()
}

// rodRenderer prints local HTML files with headless Chrome.
// The browser starts on first use; go-rod downloads Chromium if needed.
type rodRenderer struct {
	timeout  time.Duration
	launcher *launcher.Launcher
	browser  *rod.Browser
}

func newRodRenderer(timeout time.Duration) *rodRenderer {
	return &rodRenderer{timeout: timeout}
}

func (r *rodRenderer) ensureBrowser() error {
	if r.browser != nil {
		return nil
	}

	l := launcher.New().Headless(true)
	if bin := os.Getenv("ROD_BROWSER_BIN"); bin != "" {
		l = l.Bin(bin)
	}
	if os.Getenv("ROD_NO_SANDBOX") == "1" || os.Getenv("CI") == "true" {
		l = l.NoSandbox(true)
	}

	u, err := l.Launch()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}
	r.launcher = l

	browser := rod.New().ControlURL(u)
	if err := browser.Connect(); err != nil {
		r.kill()
		return fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}
	r.browser = browser
	return nil
}

// RenderFromFile loads filePath and prints it. The context deadline, when
// set, overrides the renderer timeout.
func (r *rodRenderer) RenderFromFile(ctx context.Context, filePath string, opts *pdfOptions) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := r.ensureBrowser(); err != nil {
		return nil, err
	}

	timeout := r.timeout
	if deadline, ok := ctx.Deadline(); ok {
		timeout = time.Until(deadline)
		if timeout <= 0 {
			return nil, context.DeadlineExceeded
		}
	}

	page, err := r.browser.Page(proto.TargetCreateTarget{URL: fileURL(filePath)})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPageCreate, err)
	}
	defer func() { _ = page.Close() }()

	page = page.Context(ctx).Timeout(timeout)
	if err := page.WaitLoad(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPageLoad, err)
	}

	stream, err := page.PDF(buildPrintOptions(opts))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPDFGeneration, err)
	}
	data, err := io.ReadAll(stream)
	if err != nil {
		return nil, fmt.Errorf("%w: reading PDF stream: %v", ErrPDFGeneration, err)
	}
	return data, nil
}

// Close shuts the browser down and kills any helper processes left behind.
func (r *rodRenderer) Close() error {
	var err error
	if r.browser != nil {
		err = r.browser.Close()
		r.browser = nil
	}
	r.kill()
	return err
}

func (r *rodRenderer) kill() {
	if r.launcher == nil {
		return
	}
	process.KillProcessGroup(r.launcher.PID())
	r.launcher.Kill()
	r.launcher = nil
}

// rodConverter writes the HTML to a temp file and prints it with Chrome.
type rodConverter struct {
	renderer *rodRenderer
}

func newRodConverter(timeout time.Duration) *rodConverter {
	return &rodConverter{renderer: newRodRenderer(timeout)}
}

func (c *rodConverter) ToPDF(ctx context.Context, htmlContent string, opts *pdfOptions) ([]byte, error) {
	path, cleanup, err := fileutil.WriteTempFile(htmlContent, "html")
	if err != nil {
		return nil, err
	}
	defer cleanup()

	return c.renderer.RenderFromFile(ctx, path, opts)
}

func (c *rodConverter) Close() error {
	return c.renderer.Close()
}
