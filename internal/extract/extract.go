// Package extract turns uploaded documents into plain text for
// flashcard creation.
package extract

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
)

// maxDocumentSize caps uploads at 10 MB.
const maxDocumentSize = 10 << 20

// supportedMIMETypes lists the document formats the extractor accepts.
var supportedMIMETypes = map[string]bool{
	"application/pdf": true,
	"image/png":       true,
	"image/jpeg":      true,
	"image/webp":      true,
}

// MIMETypeFor maps a file name to its document MIME type, or "" when
// the extension is not recognized.
func MIMETypeFor(name string) string {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".pdf":
		return "application/pdf"
	case ".png":
		return "image/png"
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".webp":
		return "image/webp"
	}
	return ""
}

// Extractor produces the text content of a document.
type Extractor interface {
	ExtractText(ctx context.Context, data []byte, mimeType string) (string, error)
}

// Service validates documents before handing them to the extractor and
// normalizes failures to *ErrExtraction.
type Service struct {
	extractor Extractor
}

// NewService creates a new Service. extractor may not be nil.
func NewService(extractor Extractor) *Service {
	return &Service{extractor: extractor}
}

// Extract returns the text content of the document. Empty or
// unreadable documents fail with *ErrExtraction.
func (s *Service) Extract(ctx context.Context, data []byte, mimeType string) (string, error) {
	if len(data) == 0 {
		return "", &ErrExtraction{Reason: "document is empty"}
	}
	if len(data) > maxDocumentSize {
		return "", &ErrExtraction{Reason: fmt.Sprintf("document exceeds %d bytes", maxDocumentSize)}
	}
	if !supportedMIMETypes[mimeType] {
		return "", &ErrExtraction{Reason: fmt.Sprintf("unsupported document type %q", mimeType)}
	}

	text, err := s.extractor.ExtractText(ctx, data, mimeType)
	if err != nil {
		return "", &ErrExtraction{Reason: "extraction failed", Err: err}
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return "", &ErrExtraction{Reason: "no text found in document"}
	}
	return text, nil
}
