// Package preview decides how an uploaded document can be shown locally.
// Only the filename extension is consulted; the client never parses document
// contents, that is the backend's job.
package preview

import (
	"fmt"
	"path/filepath"
	"strings"
)

type Variant int

const (
	// VariantPDF renders inline in any PDF-capable viewer.
	VariantPDF Variant = iota
	// VariantDOCX cannot be rendered locally; download fallback with a notice.
	VariantDOCX
	// VariantUnsupported covers everything else; download fallback.
	VariantUnsupported
)

func Classify(filename string) Variant {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".pdf":
		return VariantPDF
	case ".docx":
		return VariantDOCX
	default:
		return VariantUnsupported
	}
}

// Inline reports whether the document can be viewed without downloading.
func (v Variant) Inline() bool {
	return v == VariantPDF
}

// Describe returns the user-facing preview text for a document served at url.
func Describe(filename, url string) string {
	switch Classify(filename) {
	case VariantPDF:
		return fmt.Sprintf("PDF document. Open inline: %s", url)
	case VariantDOCX:
		return fmt.Sprintf("DOCX preview is not available. Download to view: %s", url)
	default:
		return fmt.Sprintf("Preview not available for this file type. Download: %s", url)
	}
}
