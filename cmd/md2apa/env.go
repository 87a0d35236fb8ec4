package main

import (
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/muesli/termenv"
	"golang.org/x/term"

	md2apa "github.com/alnah/go-md2apa"
)

// Environment holds injectable dependencies for testability.
// Includes I/O, time, terminal detection, and converter construction.
type Environment struct {
	Now    func() time.Time
	Stdout io.Writer
	Stderr io.Writer

	// TermWidth reports the stdout terminal width; ok is false when stdout
	// is not a terminal.
	TermWidth func() (width int, ok bool)

	// ColorProfile is the styling used by preview on a terminal.
	ColorProfile func() termenv.Profile

	// NewPool builds the converter pool for a batch.
	NewPool func(size int, opts ...md2apa.Option) Pool

	// NewConverter builds the single converter used by preview.
	NewConverter func(opts ...md2apa.Option) (CLIConverter, error)
}

// DefaultEnv returns the production environment.
func DefaultEnv() *Environment {
	return &Environment{
		Now:          time.Now,
		Stdout:       os.Stdout,
		Stderr:       os.Stderr,
		TermWidth:    stdoutWidth,
		ColorProfile: termenv.EnvColorProfile,
		NewPool: func(size int, opts ...md2apa.Option) Pool {
			return &poolAdapter{pool: md2apa.NewConverterPool(size, opts...)}
		},
		NewConverter: func(opts ...md2apa.Option) (CLIConverter, error) {
			return md2apa.NewConverter(opts...)
		},
	}
}

// logger returns the CLI logger: debug records with --verbose, warnings
// and errors otherwise.
func (e *Environment) logger(verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(e.Stderr, &slog.HandlerOptions{Level: level}))
}

func stdoutWidth() (int, bool) {
	fd := int(os.Stdout.Fd()) // #nosec G115 -- file descriptors fit in int
	if !term.IsTerminal(fd) {
		return 0, false
	}
	width, _, err := term.GetSize(fd)
	if err != nil || width <= 0 {
		return 0, false
	}
	return width, true
}
