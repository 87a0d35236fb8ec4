// Package md2apa converts a restricted markdown dialect into APA-style
// documents: a title page, an optional abstract page, then the body in
// Times New Roman, double spaced, with 1 inch margins.
//
// # Quick Start
//
//	conv, err := md2apa.NewConverter()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer conv.Close()
//
//	result, err := conv.Convert(ctx, md2apa.Input{
//	    Markdown: "# Sleep and Memory\n\n## Method\nParticipants slept.",
//	    Metadata: md2apa.Metadata{
//	        Title:       "Sleep and Memory",
//	        Author:      "Ada Lovelace",
//	        Institution: "University of London",
//	    },
//	    Format: md2apa.FormatDOCX,
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	os.WriteFile("paper.docx", result.Data, 0o644)
//
// # Supported Markdown
//
// Each line is classified on its own:
//
//	# Title            skipped; the title lives on the title page
//	## / ### / ####    APA headings, levels 2 to 4
//	- item, * item     bulleted list item
//	1. item            numbered list item
//	---                horizontal rule
//	```lang            toggles a code block
//
// Inline **bold**, *italic* and `code` spans are recognized inside
// paragraphs and list items. Anything else is a plain paragraph; markup
// never causes an error. Set Input.Lint to get findings for constructs
// such as tables or links that render as plain text.
//
// # Output Formats
//
//	FormatDOCX  WordprocessingML package (default)
//	FormatHTML  single-file HTML with the APA stylesheet
//	FormatPDF   the HTML printed by headless Chrome (go-rod)
//	FormatText  plain text preview, optionally styled with ANSI escapes
//
// # Parallel Processing
//
// A Converter is not safe for concurrent use. For batch work, use a
// ConverterPool; each pooled Converter owns its own browser:
//
//	pool := md2apa.NewConverterPool(4)
//	defer pool.Close()
//
//	conv, err := pool.Acquire()
//	if err != nil {
//	    return err
//	}
//	defer pool.Release(conv)
//
// # Browser Requirements
//
// Only FormatPDF needs Chrome/Chromium. go-rod downloads a managed
// Chromium on first use. In containers and CI, set ROD_NO_SANDBOX=1; set
// ROD_BROWSER_BIN to use an installed browser.
package md2apa
