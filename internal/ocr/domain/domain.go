// Package domain describes the document extraction contract.
package domain

import (
	"context"
	"errors"

	linetabledomain "github.com/smallbiznis/gstdesk/internal/linetable/domain"
)

var (
	ErrInvalidDocument = errors.New("invalid_document")
	ErrNotFound        = errors.New("extraction_not_found")
	ErrUnavailable     = errors.New("extraction_unavailable")
)

// ExtractRequest points the extraction service at a source document.
type ExtractRequest struct {
	DocumentURL string `json:"document_url"`
}

// ExtractionResult is the parsed line-item payload of one document.
type ExtractionResult struct {
	DocumentID string                             `json:"document_id"`
	Items      []linetabledomain.ImportedLineItem `json:"items"`
}

// Extractor turns a document into importable line items.
type Extractor interface {
	Extract(ctx context.Context, req ExtractRequest) (*ExtractionResult, error)
	// Result returns a previously extracted document from the cache.
	Result(ctx context.Context, documentID string) (*ExtractionResult, error)
}
