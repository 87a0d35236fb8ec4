package main

// Notes:
// - exitCodeFor: we test the sentinel errors of every layer, plus wrapped
//   errors to verify the errors.Is chain.

import (
	"context"
	"errors"
	"fmt"
	"os"
	"testing"

	md2apa "github.com/alnah/go-md2apa"
	"github.com/alnah/go-md2apa/internal/config"
)

// ---------------------------------------------------------------------------
// TestExitCodeFor - Error to exit code mapping
// ---------------------------------------------------------------------------

func TestExitCodeFor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil error", nil, ExitSuccess},

		// Browser errors (exit 4)
		{"browser connect", md2apa.ErrBrowserConnect, ExitBrowser},
		{"page create", md2apa.ErrPageCreate, ExitBrowser},
		{"page load", md2apa.ErrPageLoad, ExitBrowser},
		{"pdf generation", md2apa.ErrPDFGeneration, ExitBrowser},
		{"deadline", context.DeadlineExceeded, ExitBrowser},
		{"wrapped browser connect", fmt.Errorf("paper.md: %w", md2apa.ErrBrowserConnect), ExitBrowser},

		// I/O errors (exit 3)
		{"file not exist", os.ErrNotExist, ExitIO},
		{"permission denied", os.ErrPermission, ExitIO},
		{"read markdown", ErrReadMarkdown, ExitIO},
		{"read abstract", ErrReadAbstract, ExitIO},
		{"write output", ErrWriteOutput, ExitIO},
		{"no input", ErrNoInput, ExitIO},
		{"no markdown files", ErrNoMarkdownFiles, ExitIO},
		{"wrapped file not exist", fmt.Errorf("discovering files: %w", os.ErrNotExist), ExitIO},

		// Usage/config/validation errors (exit 2)
		{"usage", errUsage, ExitUsage},
		{"config not found", config.ErrConfigNotFound, ExitUsage},
		{"config parse", config.ErrConfigParse, ExitUsage},
		{"config field too long", config.ErrFieldTooLong, ExitUsage},
		{"config invalid value", config.ErrInvalidValue, ExitUsage},
		{"missing title", md2apa.ErrMissingTitle, ExitUsage},
		{"missing author", md2apa.ErrMissingAuthor, ExitUsage},
		{"field too long", md2apa.ErrFieldTooLong, ExitUsage},
		{"invalid format", md2apa.ErrInvalidFormat, ExitUsage},
		{"invalid date", md2apa.ErrInvalidDate, ExitUsage},
		{"style not found", md2apa.ErrStyleNotFound, ExitUsage},
		{"template not found", md2apa.ErrTemplateNotFound, ExitUsage},
		{"invalid asset path", md2apa.ErrInvalidAssetPath, ExitUsage},
		{"invalid extension", ErrInvalidExtension, ExitUsage},
		{"invalid workers", ErrInvalidWorkerCount, ExitUsage},
		{"abstract conflict", ErrAbstractConflict, ExitUsage},
		{"invalid timeout", ErrInvalidTimeout, ExitUsage},
		{"config exists", ErrConfigExists, ExitUsage},
		{"unknown command", ErrUnknownCommand, ExitUsage},
		{"unsupported shell", ErrUnsupportedShell, ExitUsage},
		{"wrapped config parse", fmt.Errorf("loading config: %w", config.ErrConfigParse), ExitUsage},

		// General errors (exit 1)
		{"batch failure", ErrConversionFailed, ExitGeneral},
		{"lint findings", ErrFindings, ExitGeneral},
		{"unknown error", errors.New("something unexpected"), ExitGeneral},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := exitCodeFor(tt.err); got != tt.want {
				t.Errorf("exitCodeFor(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}

func TestExitCodeConstants(t *testing.T) {
	t.Parallel()

	codes := []int{ExitSuccess, ExitGeneral, ExitUsage, ExitIO, ExitBrowser}
	for i, c := range codes {
		if c != i {
			t.Errorf("exit code %d = %d, want sequential codes from 0", i, c)
		}
		if c >= 126 {
			t.Errorf("exit code %d collides with shell-reserved codes", c)
		}
	}
}
