package main

import (
	"context"
	"fmt"
	"os"

	"github.com/muesli/termenv"

	md2apa "github.com/alnah/go-md2apa"
	"github.com/alnah/go-md2apa/internal/hints"
)

// defaultPreviewWidth is used when stdout is not a terminal.
const defaultPreviewWidth = 80

// runPreview renders one markdown file as text on stdout. On a terminal
// the output wraps at the terminal width and uses ANSI emphasis; piped
// output is plain text at defaultPreviewWidth.
func runPreview(ctx context.Context, args []string, env *Environment) error {
	flags, positional, err := parsePreviewFlags(args, env.Stderr)
	if err != nil {
		return err
	}
	if len(positional) != 1 {
		printPreviewUsage(env.Stderr)
		return fmt.Errorf("%w: preview takes one markdown file", errUsage)
	}
	path := positional[0]
	if err := validateMarkdownExtension(path); err != nil {
		return err
	}

	envCfg := loadEnvConfig()
	configName := flags.common.config
	if configName == "" {
		configName = envCfg.ConfigPath
	}
	cfg, err := loadConfig(configName)
	if err != nil {
		return err
	}
	applyEnvConfig(envCfg, cfg)
	mergeMetadataFlags(&flags.meta, cfg)
	if err := mergeAbstractFlags(&flags.abstract, cfg); err != nil {
		return err
	}
	cfg.Output.Format = string(md2apa.FormatText)
	if err := cfg.Validate(); err != nil {
		return err
	}
	params, err := buildParams(cfg, env, true)
	if err != nil {
		return err
	}

	width, profile := previewTerminal(flags.width, env)
	conv, err := env.NewConverter(
		md2apa.WithLogger(env.logger(flags.common.verbose)),
		md2apa.WithNow(env.Now),
		md2apa.WithTextWidth(width),
		md2apa.WithTextProfile(profile),
	)
	if err != nil {
		return err
	}
	if c, ok := conv.(interface{ Close() error }); ok {
		defer func() { _ = c.Close() }()
	}

	content, err := os.ReadFile(path) // #nosec G304 -- user-provided path
	if err != nil {
		return fmt.Errorf("%w: %v", ErrReadMarkdown, err)
	}
	res, err := conv.Convert(ctx, buildInput(params, string(content), path))
	if err != nil {
		return err
	}

	if _, err := env.Stdout.Write(res.Data); err != nil {
		return fmt.Errorf("writing preview: %w", err)
	}
	if n := len(res.Findings); n > 0 && !flags.common.quiet {
		fmt.Fprintf(env.Stderr, "%d unsupported markdown construct(s) shown as plain text%s\n", n, hints.ForUnsupportedMarkdown(path))
	}
	return nil
}

// previewTerminal picks the wrap width and color profile. An explicit
// width wins; otherwise the terminal width, or defaultPreviewWidth when
// stdout is not a terminal.
func previewTerminal(flagWidth int, env *Environment) (int, termenv.Profile) {
	termWidth, isTerm := env.TermWidth()

	profile := termenv.Ascii
	if isTerm {
		profile = env.ColorProfile()
	}

	switch {
	case flagWidth > 0:
		return flagWidth, profile
	case isTerm:
		return termWidth, profile
	default:
		return defaultPreviewWidth, profile
	}
}
