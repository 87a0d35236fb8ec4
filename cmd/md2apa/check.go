package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/alnah/go-md2apa/internal/lint"
)

// ErrFindings is returned by check when any file has findings.
var ErrFindings = errors.New("unsupported markdown found")

// runCheck lints markdown files without converting them and prints each
// finding as "path:line: message [rule]".
func runCheck(args []string, env *Environment) error {
	flags, positional, err := parseCheckFlags(args, env.Stderr)
	if err != nil {
		return err
	}
	if len(positional) != 1 {
		printCheckUsage(env.Stderr)
		return fmt.Errorf("%w: check takes one file or directory", errUsage)
	}

	// Output paths are unused; discovery is shared with convert.
	files, err := discoverFiles(positional[0], "", ".md")
	if err != nil {
		return err
	}

	linter := lint.New()
	total, dirty := 0, 0
	for _, f := range files {
		src, err := os.ReadFile(f.InputPath) // #nosec G304 -- discovered path
		if err != nil {
			return fmt.Errorf("%w: %v", ErrReadMarkdown, err)
		}

		findings := linter.Check(src)
		if len(findings) > 0 {
			dirty++
		}
		for _, fd := range findings {
			fmt.Fprintf(env.Stdout, "%s:%d: %s [%s]\n", f.InputPath, fd.Line, fd.Message, fd.Rule)
		}
		total += len(findings)
	}

	if !flags.quiet {
		fmt.Fprintf(env.Stderr, "%d finding(s) in %d of %d file(s)\n", total, dirty, len(files))
	}
	if total > 0 {
		return fmt.Errorf("%w: %d finding(s)", ErrFindings, total)
	}
	return nil
}
