package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	md2apa "github.com/alnah/go-md2apa"
	"github.com/alnah/go-md2apa/internal/config"
	"github.com/alnah/go-md2apa/internal/fileutil"
	"github.com/alnah/go-md2apa/internal/hints"
)

// Sentinel errors for parameter resolution.
var (
	ErrReadAbstract     = errors.New("failed to read abstract file")
	ErrAbstractConflict = errors.New("--abstract and --abstract-file are mutually exclusive")
	ErrInvalidTimeout   = errors.New("invalid timeout")
)

// conversionParams groups parameters shared across batch/file conversion.
type conversionParams struct {
	cfg      *config.Config
	format   md2apa.Format
	abstract *md2apa.Abstract
	lint     bool
}

// loadConfig returns the defaults when name is empty.
func loadConfig(name string) (*config.Config, error) {
	if name == "" {
		return config.DefaultConfig(), nil
	}
	cfg, err := config.LoadConfig(name)
	if err == nil {
		return cfg, nil
	}
	if errors.Is(err, config.ErrConfigNotFound) && !fileutil.IsFilePath(name) {
		return nil, fmt.Errorf("loading config: %w%s", err, hints.ForConfigNotFound(config.SearchPaths(name)))
	}
	return nil, fmt.Errorf("loading config: %w", err)
}

// mergeMetadataFlags merges title page flags into config. CLI values
// override config values.
func mergeMetadataFlags(f *metadataFlags, cfg *config.Config) {
	if f.title != "" {
		cfg.Document.Title = f.title
	}
	if f.author != "" {
		cfg.Author.Name = f.author
	}
	if f.institution != "" {
		cfg.Author.Institution = f.institution
	}
	if f.date != "" {
		cfg.Document.Date = f.date
	}
	if len(f.keywords) > 0 {
		cfg.Abstract.Keywords = trimAll(f.keywords)
	}
}

// mergeAbstractFlags merges abstract flags into config. Either flag
// replaces both config sources and enables the page; --no-abstract wins.
func mergeAbstractFlags(f *abstractFlags, cfg *config.Config) error {
	if f.text != "" && f.file != "" {
		return ErrAbstractConflict
	}
	switch {
	case f.text != "":
		cfg.Abstract.Text, cfg.Abstract.File, cfg.Abstract.Enabled = f.text, "", true
	case f.file != "":
		cfg.Abstract.Text, cfg.Abstract.File, cfg.Abstract.Enabled = "", f.file, true
	}
	if f.disabled {
		cfg.Abstract.Enabled = false
	}
	return nil
}

// mergeAssetFlags merges stylesheet flags into config.
func mergeAssetFlags(f *assetFlags, cfg *config.Config) {
	if f.style != "" {
		cfg.HTML.Style = f.style
	}
	if f.highlight != "" {
		cfg.HTML.Highlight = f.highlight
	}
	if f.assetPath != "" {
		cfg.Assets.BasePath = f.assetPath
	}
}

func trimAll(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

// resolveTimeout picks the flag value, then pdf.timeout. Zero means the
// library default.
func resolveTimeout(flagValue string, cfg *config.Config) (time.Duration, error) {
	if flagValue == "" {
		return cfg.PDF.TimeoutDuration()
	}
	d, err := time.ParseDuration(flagValue)
	if err != nil {
		return 0, fmt.Errorf("%w: %q (use Go duration format, e.g. 30s, 2m)", ErrInvalidTimeout, flagValue)
	}
	if d <= 0 {
		return 0, fmt.Errorf("%w: must be positive, got %s", ErrInvalidTimeout, flagValue)
	}
	return d, nil
}

// resolveAbstract reads the abstract once for the whole batch. Returns nil
// when the page is disabled.
func resolveAbstract(cfg *config.Config) (*md2apa.Abstract, error) {
	if !cfg.Abstract.Enabled {
		return nil, nil
	}
	if cfg.Abstract.File == "" {
		return &md2apa.Abstract{Text: cfg.Abstract.Text}, nil
	}

	data, err := os.ReadFile(cfg.Abstract.File) // #nosec G304 -- user-provided path
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrReadAbstract, err)
	}
	return &md2apa.Abstract{Text: strings.TrimSpace(string(data))}, nil
}

// converterOptions maps config onto converter options.
func converterOptions(cfg *config.Config, timeout time.Duration, logger *slog.Logger) []md2apa.Option {
	opts := []md2apa.Option{md2apa.WithLogger(logger)}
	if timeout > 0 {
		opts = append(opts, md2apa.WithTimeout(timeout))
	}
	if cfg.HTML.Style != "" {
		opts = append(opts, md2apa.WithStyle(cfg.HTML.Style))
	}
	if cfg.HTML.Highlight != "" {
		opts = append(opts, md2apa.WithHighlightStyle(cfg.HTML.Highlight))
	}
	if cfg.Assets.BasePath != "" {
		opts = append(opts, md2apa.WithAssetPath(cfg.Assets.BasePath))
	}
	return opts
}

// firstHeadingPattern matches the first "# " title line; leading
// whitespace is allowed, as in the body scanner.
var firstHeadingPattern = regexp.MustCompile(`(?m)^[ \t]*# (.+)$`)

// extractFirstHeading extracts the first # heading from markdown content.
func extractFirstHeading(markdown string) string {
	matches := firstHeadingPattern.FindStringSubmatch(markdown)
	if len(matches) >= 2 {
		return strings.TrimSpace(matches[1])
	}
	return ""
}

// resolveTitle applies the title fallback: config or flag, then the
// first # heading, then the file name without extension. There is no
// fixed placeholder title such as "Document": each file in a batch keeps
// its own name.
func resolveTitle(cfg *config.Config, markdown, filename string) string {
	if cfg.Document.Title != "" {
		return cfg.Document.Title
	}
	if title := extractFirstHeading(markdown); title != "" {
		return title
	}
	return strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
}

// buildInput assembles the conversion input for one file.
func buildInput(params *conversionParams, markdown, filename string) md2apa.Input {
	cfg := params.cfg
	return md2apa.Input{
		Markdown: markdown,
		Metadata: md2apa.Metadata{
			Title:       resolveTitle(cfg, markdown, filename),
			Author:      cfg.Author.Name,
			Institution: cfg.Author.Institution,
			Date:        cfg.Document.Date,
			Keywords:    cfg.Abstract.Keywords,
		},
		Abstract: params.abstract,
		Format:   params.format,
		Lint:     params.lint,
	}
}
