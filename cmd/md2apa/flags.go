package main

import (
	"errors"
	"fmt"
	"io"

	flag "github.com/spf13/pflag"
)

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
}

// metadataFlags holds title page flags.
type metadataFlags struct {
	title       string
	author      string
	institution string
	date        string
	keywords    []string
}

// abstractFlags holds abstract page flags.
type abstractFlags struct {
	text     string
	file     string
	disabled bool
}

// assetFlags holds stylesheet flags for HTML and PDF output.
type assetFlags struct {
	style     string // name or CSS file path
	highlight string // chroma style for code blocks
	assetPath string // override asset directory
}

// convertFlags holds all flags for the convert command.
type convertFlags struct {
	common   commonFlags
	output   string
	workers  int
	timeout  string
	format   string
	noLint   bool
	meta     metadataFlags
	abstract abstractFlags
	assets   assetFlags
}

// previewFlags holds flags for the preview command.
type previewFlags struct {
	common   commonFlags
	width    int
	meta     metadataFlags
	abstract abstractFlags
}

// checkFlags holds flags for the check command.
type checkFlags struct {
	quiet bool
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show detailed timing and debug logs")
}

// addMetadataFlags adds title page flags to a FlagSet.
func addMetadataFlags(fs *flag.FlagSet, f *metadataFlags) {
	fs.StringVar(&f.title, "title", "", "paper title (default: first # heading, then file name)")
	fs.StringVar(&f.author, "author", "", "author name")
	fs.StringVar(&f.institution, "institution", "", "institutional affiliation")
	fs.StringVar(&f.date, "date", "", "date: \"auto\", \"auto:FORMAT\" or literal text")
	fs.StringSliceVar(&f.keywords, "keywords", nil, "abstract keywords, comma separated")
}

// addAbstractFlags adds abstract page flags to a FlagSet.
func addAbstractFlags(fs *flag.FlagSet, f *abstractFlags) {
	fs.StringVar(&f.text, "abstract", "", "abstract text (enables the abstract page)")
	fs.StringVar(&f.file, "abstract-file", "", "read the abstract from a file")
	fs.BoolVar(&f.disabled, "no-abstract", false, "omit the abstract page")
}

// addAssetFlags adds stylesheet flags to a FlagSet.
func addAssetFlags(fs *flag.FlagSet, f *assetFlags) {
	fs.StringVar(&f.style, "style", "", "HTML/PDF style name or CSS file path")
	fs.StringVar(&f.highlight, "highlight", "", "code highlighting style for HTML/PDF")
	fs.StringVar(&f.assetPath, "asset-path", "", "custom asset directory")
}

// newConvertFlagSet registers every convert flag into f.
// Completion generation reads the same FlagSet.
func newConvertFlagSet(f *convertFlags) *flag.FlagSet {
	fs := flag.NewFlagSet("convert", flag.ContinueOnError)

	// I/O flags
	fs.StringVarP(&f.output, "output", "o", "", "output file or directory")
	fs.IntVarP(&f.workers, "workers", "w", 0, "parallel workers (0 = auto)")
	fs.StringVarP(&f.timeout, "timeout", "t", "", "PDF generation timeout (e.g., 30s, 2m)")
	fs.StringVarP(&f.format, "format", "f", "", "output format: docx, html, pdf, txt")
	fs.BoolVar(&f.noLint, "no-lint", false, "do not report unsupported markdown")

	// Flag groups
	addCommonFlags(fs, &f.common)
	addMetadataFlags(fs, &f.meta)
	addAbstractFlags(fs, &f.abstract)
	addAssetFlags(fs, &f.assets)
	return fs
}

// parseConvertFlags parses convert command flags and returns positional args.
func parseConvertFlags(args []string, stderr io.Writer) (*convertFlags, []string, error) {
	f := &convertFlags{}
	fs := newConvertFlagSet(f)
	fs.SetOutput(stderr)
	fs.Usage = func() { printConvertUsage(stderr) }

	if err := fs.Parse(args); err != nil {
		return nil, nil, usageError(err)
	}
	return f, fs.Args(), nil
}

// newPreviewFlagSet registers every preview flag into f.
func newPreviewFlagSet(f *previewFlags) *flag.FlagSet {
	fs := flag.NewFlagSet("preview", flag.ContinueOnError)
	fs.IntVar(&f.width, "width", 0, "wrap column (0 = terminal width, or 80)")
	addCommonFlags(fs, &f.common)
	addMetadataFlags(fs, &f.meta)
	addAbstractFlags(fs, &f.abstract)
	return fs
}

func parsePreviewFlags(args []string, stderr io.Writer) (*previewFlags, []string, error) {
	f := &previewFlags{}
	fs := newPreviewFlagSet(f)
	fs.SetOutput(stderr)
	fs.Usage = func() { printPreviewUsage(stderr) }

	if err := fs.Parse(args); err != nil {
		return nil, nil, usageError(err)
	}
	return f, fs.Args(), nil
}

func newCheckFlagSet(f *checkFlags) *flag.FlagSet {
	fs := flag.NewFlagSet("check", flag.ContinueOnError)
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "print findings only, no summary")
	return fs
}

func parseCheckFlags(args []string, stderr io.Writer) (*checkFlags, []string, error) {
	f := &checkFlags{}
	fs := newCheckFlagSet(f)
	fs.SetOutput(stderr)
	fs.Usage = func() { printCheckUsage(stderr) }

	if err := fs.Parse(args); err != nil {
		return nil, nil, usageError(err)
	}
	return f, fs.Args(), nil
}

// usageError marks flag parsing failures for exit code 2. pflag.ErrHelp
// passes through so -h exits cleanly.
func usageError(err error) error {
	if errors.Is(err, flag.ErrHelp) {
		return err
	}
	return fmt.Errorf("%w: %v", errUsage, err)
}
