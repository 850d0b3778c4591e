package server

import (
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	ocrdomain "github.com/smallbiznis/gstdesk/internal/ocr/domain"
	"github.com/smallbiznis/gstdesk/internal/providers/pdf"
)

type importRequest struct {
	DocumentID  string `json:"document_id"`
	DocumentURL string `json:"document_url"`
}

// ImportFromDocument replaces the table's rows with the line items of an
// extracted document. Accepts either a previously extracted document id or
// a document URL to extract now.
func (s *Server) ImportFromDocument(c *gin.Context) {
	entry, err := s.tableEntry(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	var req importRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	var result *ocrdomain.ExtractionResult
	switch {
	case strings.TrimSpace(req.DocumentID) != "":
		result, err = s.extractor.Result(c.Request.Context(), req.DocumentID)
	case strings.TrimSpace(req.DocumentURL) != "":
		if err := s.allowExtraction(c); err != nil {
			AbortWithError(c, err)
			return
		}
		result, err = s.extractor.Extract(c.Request.Context(), ocrdomain.ExtractRequest{DocumentURL: req.DocumentURL})
	default:
		AbortWithError(c, invalidRequestError())
		return
	}
	if err != nil {
		AbortWithError(c, err)
		return
	}

	entry.Lock()
	rows := entry.Rows.PopulateFromOCR(result.Items)
	summary := entry.Rows.Summary()
	entry.Unlock()

	s.obsMetrics.RecordOCRImport(c.Request.Context(), int64(len(rows)))
	s.obsMetrics.RecordRecalc(c.Request.Context(), "import", int64(len(rows)))
	c.JSON(http.StatusOK, gin.H{"data": gin.H{
		"document_id": result.DocumentID,
		"rows":        rows,
		"summary":     summary,
	}})
}

// ExportTablePDF renders the table's visible columns and rows as a PDF.
func (s *Server) ExportTablePDF(c *gin.Context) {
	entry, err := s.tableEntry(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	entry.Lock()
	export := pdf.TableExport{
		Title:      "Line Items " + entry.ID.String(),
		InterState: entry.Rows.InterState(),
		Columns:    entry.Schema.VisibleColumns(),
		Rows:       entry.Rows.Rows(),
		Summary:    entry.Rows.Summary(),
	}
	entry.Unlock()

	reader, err := s.pdfProvider.GenerateTable(c.Request.Context(), export)
	if err != nil {
		AbortWithError(c, ErrInternal)
		return
	}

	doc, err := io.ReadAll(reader)
	if err != nil {
		AbortWithError(c, ErrInternal)
		return
	}

	s.obsMetrics.RecordPDFExport(c.Request.Context())
	c.Header("Content-Disposition", `attachment; filename="line-items.pdf"`)
	c.Data(http.StatusOK, "application/pdf", doc)
}
