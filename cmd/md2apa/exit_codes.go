package main

import (
	"context"
	"errors"
	"os"

	md2apa "github.com/alnah/go-md2apa"
	"github.com/alnah/go-md2apa/internal/config"
)

// Exit codes for the md2apa CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess = 0 // Successful conversion
	ExitGeneral = 1 // General/unexpected error, failed batch, lint findings
	ExitUsage   = 2 // Invalid flags, config, or validation
	ExitIO      = 3 // File not found, permission denied
	ExitBrowser = 4 // Browser/Chrome errors
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// Browser errors (exit 4)
	if errors.Is(err, md2apa.ErrBrowserConnect) ||
		errors.Is(err, md2apa.ErrPageCreate) ||
		errors.Is(err, md2apa.ErrPageLoad) ||
		errors.Is(err, md2apa.ErrPDFGeneration) ||
		errors.Is(err, context.DeadlineExceeded) {
		return ExitBrowser
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, ErrReadMarkdown) ||
		errors.Is(err, ErrReadAbstract) ||
		errors.Is(err, ErrWriteOutput) ||
		errors.Is(err, ErrNoInput) ||
		errors.Is(err, ErrNoMarkdownFiles) {
		return ExitIO
	}

	// Usage/config/validation errors (exit 2)
	if errors.Is(err, errUsage) ||
		errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrFieldTooLong) ||
		errors.Is(err, config.ErrInvalidValue) ||
		errors.Is(err, md2apa.ErrMissingTitle) ||
		errors.Is(err, md2apa.ErrMissingAuthor) ||
		errors.Is(err, md2apa.ErrFieldTooLong) ||
		errors.Is(err, md2apa.ErrInvalidFormat) ||
		errors.Is(err, md2apa.ErrInvalidDate) ||
		errors.Is(err, md2apa.ErrStyleNotFound) ||
		errors.Is(err, md2apa.ErrTemplateNotFound) ||
		errors.Is(err, md2apa.ErrInvalidAssetPath) ||
		errors.Is(err, ErrInvalidExtension) ||
		errors.Is(err, ErrInvalidWorkerCount) ||
		errors.Is(err, ErrAbstractConflict) ||
		errors.Is(err, ErrInvalidTimeout) ||
		errors.Is(err, ErrConfigExists) ||
		errors.Is(err, ErrUnknownCommand) ||
		errors.Is(err, ErrUnsupportedShell) {
		return ExitUsage
	}

	return ExitGeneral
}
