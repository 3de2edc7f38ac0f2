// Package ingest turns a user-supplied file into an IngestedFile record.
package ingest

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"docquery/internal/extract"
	"docquery/internal/models"
)

// pdfMediaType is the only declared type whose content is always extracted.
const pdfMediaType = "application/pdf"

// officeExtensions are the formats handled when office extraction is enabled.
var officeExtensions = map[string]bool{
	".docx": true, ".xlsx": true, ".pptx": true,
	".odt": true, ".ods": true, ".odp": true, ".rtf": true,
}

// Ingestor builds IngestedFile records. It is stateless between calls.
type Ingestor struct {
	officeExtraction bool
}

// Option configures an Ingestor.
type Option func(*Ingestor)

// WithOfficeExtraction enables text extraction for office document formats.
// By default those formats keep their raw bytes, like every non-PDF type.
func WithOfficeExtraction() Option {
	return func(ing *Ingestor) { ing.officeExtraction = true }
}

// NewIngestor returns a new Ingestor.
func NewIngestor(opts ...Option) *Ingestor {
	ing := &Ingestor{}
	for _, opt := range opts {
		opt(ing)
	}
	return ing
}

// Ingest builds an IngestedFile from a fully read file. The category is
// inferred from the declared media type and filename. Content is the
// extracted page text when the declared type is exactly application/pdf
// (and, when enabled, extracted office text); otherwise the raw bytes are
// kept verbatim. Size always reflects the bytes as read, not the extracted
// text. Extraction failures are returned to the caller; there is no retry.
func (ing *Ingestor) Ingest(name, mediaType string, data []byte) (*models.IngestedFile, error) {
	content := data
	if mediaType == pdfMediaType {
		text, err := extract.PDF(data)
		if err != nil {
			return nil, fmt.Errorf("ingest %s: %w", name, err)
		}
		content = []byte(text)
	} else if ing.officeExtraction {
		if ext := strings.ToLower(filepath.Ext(name)); officeExtensions[ext] {
			text, err := extract.Office(data, ext)
			if err != nil {
				return nil, fmt.Errorf("ingest %s: %w", name, err)
			}
			content = []byte(text)
		}
	}

	return &models.IngestedFile{
		ID:         uuid.NewString(),
		Name:       name,
		MediaType:  mediaType,
		Size:       int64(len(data)),
		Category:   CategoryFor(mediaType, name),
		Content:    content,
		IngestedAt: time.Now().UTC(),
	}, nil
}
