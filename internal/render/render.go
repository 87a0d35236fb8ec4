// Package render serializes a document model into output formats.
//
// Every renderer implements Writer. Renderers only read the document; one
// document may be written by several renderers in turn.
package render

import (
	"io"

	"github.com/alnah/go-md2apa/internal/document"
)

// Writer serializes a document to w.
type Writer interface {
	Write(w io.Writer, doc *document.Document) error
}

// Compile-time interface checks.
var (
	_ Writer = (*DOCX)(nil)
	_ Writer = (*HTML)(nil)
	_ Writer = (*Text)(nil)
)
