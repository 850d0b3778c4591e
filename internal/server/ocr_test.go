package server

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	linetabledomain "github.com/smallbiznis/gstdesk/internal/linetable/domain"
	ocrdomain "github.com/smallbiznis/gstdesk/internal/ocr/domain"
	"github.com/stretchr/testify/assert"
)

func TestExtractDocument(t *testing.T) {
	ts := newTestServer(t)
	ts.extractor.result = &ocrdomain.ExtractionResult{
		DocumentID: "doc-1",
		Items: []linetabledomain.ImportedLineItem{
			importedItem("Item A", 2, 50, 18),
		},
	}

	resp := ts.do(t, http.MethodPost, "/v1/ocr/extract", gin.H{"document_url": "https://docs.example/inv.pdf"})
	assert.Equal(t, http.StatusOK, resp.Code)

	var result struct {
		DocumentID string `json:"document_id"`
		Items      []any  `json:"items"`
	}
	decodeData(t, resp, &result)
	assert.Equal(t, "doc-1", result.DocumentID)
	assert.Len(t, result.Items, 1)
}

func TestExtractDocumentUnavailable(t *testing.T) {
	ts := newTestServer(t)
	ts.extractor.extractErr = ocrdomain.ErrUnavailable

	resp := ts.do(t, http.MethodPost, "/v1/ocr/extract", gin.H{"document_url": "https://docs.example/inv.pdf"})
	assert.Equal(t, http.StatusServiceUnavailable, resp.Code)
}

func TestImportReplacesExistingRows(t *testing.T) {
	ts := newTestServer(t)
	tableID := ts.createTable(t)

	for i := 0; i < 5; i++ {
		ts.addRow(t, tableID)
	}

	ts.extractor.result = &ocrdomain.ExtractionResult{
		DocumentID: "doc-1",
		Items: []linetabledomain.ImportedLineItem{
			importedItem("Item A", 2, 50, 18),
		},
	}

	resp := ts.do(t, http.MethodPost, "/v1/tables/"+tableID+"/import", gin.H{"document_id": "doc-1"})
	assert.Equal(t, http.StatusOK, resp.Code)

	var result struct {
		DocumentID string       `json:"document_id"`
		Rows       []rowPayload `json:"rows"`
	}
	decodeData(t, resp, &result)
	assert.Equal(t, "doc-1", result.DocumentID)
	assert.Len(t, result.Rows, 1)
	assert.Equal(t, 1, result.Rows[0].LineNumber)
	assert.InDelta(t, 118, result.Rows[0].Amount, 1e-9)
}

func TestImportByURLExtractsDocument(t *testing.T) {
	ts := newTestServer(t)
	tableID := ts.createTable(t)

	ts.extractor.result = &ocrdomain.ExtractionResult{
		DocumentID: "doc-2",
		Items: []linetabledomain.ImportedLineItem{
			importedItem("Item B", 1, 200, 12),
		},
	}

	resp := ts.do(t, http.MethodPost, "/v1/tables/"+tableID+"/import", gin.H{
		"document_url": "https://docs.example/inv.pdf",
	})
	assert.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, 1, ts.extractor.calls)
}

func TestImportUnknownDocumentReturns404(t *testing.T) {
	ts := newTestServer(t)
	tableID := ts.createTable(t)

	resp := ts.do(t, http.MethodPost, "/v1/tables/"+tableID+"/import", gin.H{"document_id": "missing"})
	assert.Equal(t, http.StatusNotFound, resp.Code)
}

func TestImportWithoutSourceRejected(t *testing.T) {
	ts := newTestServer(t)
	tableID := ts.createTable(t)

	resp := ts.do(t, http.MethodPost, "/v1/tables/"+tableID+"/import", gin.H{})
	assert.Equal(t, http.StatusBadRequest, resp.Code)
}

func TestExportTablePDF(t *testing.T) {
	ts := newTestServer(t)
	tableID := ts.createTable(t)
	ts.addRow(t, tableID)

	resp := ts.do(t, http.MethodGet, "/v1/tables/"+tableID+"/export.pdf", nil)
	assert.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, "application/pdf", resp.Header().Get("Content-Type"))
	assert.Contains(t, resp.Body.String(), "%PDF")
}
