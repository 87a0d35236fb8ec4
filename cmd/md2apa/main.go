package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	flag "github.com/spf13/pflag"
	"go.uber.org/automaxprocs/maxprocs"

	md2apa "github.com/alnah/go-md2apa"
	"github.com/alnah/go-md2apa/internal/hints"
)

// Version is set at build time via ldflags.
var Version = "dev"

// Sentinel errors for command dispatch.
var (
	errUsage          = errors.New("invalid usage")
	ErrUnknownCommand = errors.New("unknown command")
)

func main() {
	setMaxProcs(hasVerboseFlag(os.Args[1:]))
	os.Exit(runMain(os.Args, DefaultEnv()))
}

// setMaxProcs matches GOMAXPROCS to the container CPU quota before the
// pool is sized. maxprocs.Set only fails on an invalid GOMAXPROCS value,
// in which case the runtime default stays in effect.
func setMaxProcs(verbose bool) {
	logf := func(string, ...any) {}
	if verbose {
		logf = func(format string, args ...any) {
			fmt.Fprintf(os.Stderr, format+"\n", args...)
		}
	}
	_, _ = maxprocs.Set(maxprocs.Logger(logf))
}

// runMain dispatches to a command and returns the process exit code.
// A first argument ending in .md or .markdown is shorthand for convert.
func runMain(args []string, env *Environment) int {
	if len(args) < 2 {
		printUsage(env.Stderr)
		return ExitUsage
	}

	cmd, rest := args[1], args[2:]
	if looksLikeMarkdown(cmd) {
		cmd, rest = "convert", args[1:]
	}

	ctx, stop := notifyContext(context.Background())
	defer stop()

	var err error
	switch cmd {
	case "convert":
		err = runConvert(ctx, rest, env)
	case "check":
		err = runCheck(rest, env)
	case "preview":
		err = runPreview(ctx, rest, env)
	case "config":
		err = runConfig(rest, env)
	case "doctor":
		return runDoctorCmd(rest, env)
	case "completion":
		err = runCompletion(rest, env)
	case "version", "--version":
		fmt.Fprintf(env.Stdout, "md2apa %s\n", Version)
	case "help", "-h", "--help":
		runHelp(rest, env)
	default:
		printUsage(env.Stderr)
		err = fmt.Errorf("%w: %q", ErrUnknownCommand, cmd)
	}

	if err == nil || errors.Is(err, flag.ErrHelp) {
		return ExitSuccess
	}
	fmt.Fprintf(env.Stderr, "error: %v%s\n", err, errorHint(err))
	return exitCodeFor(err)
}

// errorHint returns advice for well-known failures, or "".
func errorHint(err error) string {
	switch {
	case errors.Is(err, md2apa.ErrBrowserConnect):
		return hints.ForBrowserConnect()
	case errors.Is(err, md2apa.ErrPageLoad), errors.Is(err, context.DeadlineExceeded):
		return hints.ForTimeout()
	case errors.Is(err, md2apa.ErrStyleNotFound):
		return hints.ForStyleNotFound(md2apa.Styles())
	case errors.Is(err, md2apa.ErrInvalidFormat):
		return hints.ForFormat(formatNames())
	case errors.Is(err, md2apa.ErrMissingAuthor):
		return hints.ForMissingMetadata("author", "author.name")
	case errors.Is(err, md2apa.ErrMissingTitle):
		return hints.ForMissingMetadata("title", "document.title")
	case errors.Is(err, ErrCreateOutputDir):
		return hints.ForOutputDirectory()
	}
	return ""
}

func formatNames() []string {
	formats := md2apa.Formats()
	names := make([]string, len(formats))
	for i, f := range formats {
		names[i] = string(f)
	}
	return names
}

// looksLikeMarkdown reports whether arg names a markdown file.
func looksLikeMarkdown(arg string) bool {
	return isMarkdownFile(arg) && !strings.HasPrefix(arg, "-")
}

// isMarkdownFile reports whether path has a .md or .markdown extension.
func isMarkdownFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".md", ".markdown":
		return true
	}
	return false
}

// hasVerboseFlag scans args for -v or --verbose before a "--" terminator.
func hasVerboseFlag(args []string) bool {
	for _, a := range args {
		switch a {
		case "--":
			return false
		case "-v", "--verbose":
			return true
		}
	}
	return false
}
