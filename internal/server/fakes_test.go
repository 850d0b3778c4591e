package server

import (
	"bytes"
	"context"
	"io"
	"strconv"

	linetabledomain "github.com/smallbiznis/gstdesk/internal/linetable/domain"
	ocrdomain "github.com/smallbiznis/gstdesk/internal/ocr/domain"
	"github.com/smallbiznis/gstdesk/internal/providers/pdf"
	columndomain "github.com/smallbiznis/gstdesk/internal/tablecolumn/domain"
)

type fakeConfigService struct {
	saved   map[string]*columndomain.ConfigResponse
	nextID  int64
	saveErr error
}

func newFakeConfigService() *fakeConfigService {
	return &fakeConfigService{saved: map[string]*columndomain.ConfigResponse{}, nextID: 1}
}

func (f *fakeConfigService) Save(ctx context.Context, req columndomain.SaveConfigRequest) (*columndomain.ConfigResponse, error) {
	if f.saveErr != nil {
		return nil, f.saveErr
	}
	if req.Name == "" {
		return nil, columndomain.ErrInvalidName
	}
	id := strconv.FormatInt(f.nextID, 10)
	f.nextID++
	resp := &columndomain.ConfigResponse{
		ID:               id,
		Name:             req.Name,
		Description:      req.Description,
		Columns:          req.Columns,
		DefaultColumnIDs: req.DefaultColumnIDs,
	}
	f.saved[id] = resp
	return resp, nil
}

func (f *fakeConfigService) Get(ctx context.Context, id string) (*columndomain.ConfigResponse, error) {
	resp, ok := f.saved[id]
	if !ok {
		return nil, columndomain.ErrNotFound
	}
	return resp, nil
}

func (f *fakeConfigService) List(ctx context.Context) ([]columndomain.ConfigResponse, error) {
	out := make([]columndomain.ConfigResponse, 0, len(f.saved))
	for _, resp := range f.saved {
		out = append(out, *resp)
	}
	return out, nil
}

func (f *fakeConfigService) Delete(ctx context.Context, id string) error {
	if _, ok := f.saved[id]; !ok {
		return columndomain.ErrNotFound
	}
	delete(f.saved, id)
	return nil
}

type fakeExtractor struct {
	result     *ocrdomain.ExtractionResult
	extractErr error
	calls      int
}

func (f *fakeExtractor) Extract(ctx context.Context, req ocrdomain.ExtractRequest) (*ocrdomain.ExtractionResult, error) {
	f.calls++
	if req.DocumentURL == "" {
		return nil, ocrdomain.ErrInvalidDocument
	}
	if f.extractErr != nil {
		return nil, f.extractErr
	}
	return f.result, nil
}

func (f *fakeExtractor) Result(ctx context.Context, documentID string) (*ocrdomain.ExtractionResult, error) {
	if f.result == nil || f.result.DocumentID != documentID {
		return nil, ocrdomain.ErrNotFound
	}
	return f.result, nil
}

type fakePDFProvider struct {
	generateErr error
}

func (f *fakePDFProvider) GenerateTable(ctx context.Context, data pdf.TableExport) (io.Reader, error) {
	if f.generateErr != nil {
		return nil, f.generateErr
	}
	return bytes.NewReader([]byte("%PDF-1.7 fake")), nil
}

func importedItem(description string, quantity, rate, taxRate float64) linetabledomain.ImportedLineItem {
	return linetabledomain.ImportedLineItem{
		Description: &description,
		Quantity:    &quantity,
		Rate:        &rate,
		TaxRate:     &taxRate,
	}
}
