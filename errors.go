package md2apa

import "errors"

// Sentinel errors for library operations.
var (
	ErrMissingTitle  = errors.New("document title is required")
	ErrMissingAuthor = errors.New("author name is required")
	ErrFieldTooLong  = errors.New("field exceeds maximum length")
	ErrInvalidFormat = errors.New("invalid output format")
	ErrInvalidDate   = errors.New("invalid date")

	// ErrSerialization wraps failures while encoding the built document.
	ErrSerialization = errors.New("document serialization failed")

	// PDF backend errors.
	ErrBrowserConnect = errors.New("failed to connect to browser")
	ErrPageCreate     = errors.New("failed to create browser page")
	ErrPageLoad       = errors.New("failed to load page")
	ErrPDFGeneration  = errors.New("PDF generation failed")

	// Asset loading errors.
	ErrStyleNotFound    = errors.New("style not found")
	ErrTemplateNotFound = errors.New("template not found")
	ErrInvalidAssetPath = errors.New("invalid asset path")
)
