package service

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/oklog/ulid/v2"
	"github.com/smallbiznis/gstdesk/internal/cache"
	"github.com/smallbiznis/gstdesk/internal/config"
	linetabledomain "github.com/smallbiznis/gstdesk/internal/linetable/domain"
	ocrdomain "github.com/smallbiznis/gstdesk/internal/ocr/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

type Params struct {
	fx.In

	Cfg   config.Config
	Log   *zap.Logger
	Cache cache.ExtractionCache
}

// Client calls the external extraction service over HTTP and caches the
// parsed results by document id.
type Client struct {
	baseURL string
	http    *http.Client
	log     *zap.Logger
	cache   cache.ExtractionCache
}

func NewClient(p Params) ocrdomain.Extractor {
	return &Client{
		baseURL: strings.TrimRight(p.Cfg.OCRBaseURL, "/"),
		http:    &http.Client{Timeout: p.Cfg.OCRTimeout},
		log:     p.Log.Named("ocr.client"),
		cache:   p.Cache,
	}
}

// extractResponse is the upstream wire shape. Field names and the nested
// bbox object follow the extraction service contract.
type extractResponse struct {
	Items []extractedItem `json:"items"`
}

type extractedItem struct {
	ProductCode *string  `json:"product_code,omitempty"`
	Description *string  `json:"description,omitempty"`
	HSNCode     *string  `json:"hsn_code,omitempty"`
	Quantity    *float64 `json:"quantity,omitempty"`
	Unit        *string  `json:"unit,omitempty"`
	Rate        *float64 `json:"rate,omitempty"`
	Discount    *float64 `json:"discount,omitempty"`
	TaxRate     *float64 `json:"tax_rate,omitempty"`
	Confidence  *float64 `json:"confidence,omitempty"`
	BBox        *struct {
		X      float64 `json:"x"`
		Y      float64 `json:"y"`
		Width  float64 `json:"width"`
		Height float64 `json:"height"`
	} `json:"bbox,omitempty"`
}

func (c *Client) Extract(ctx context.Context, req ocrdomain.ExtractRequest) (*ocrdomain.ExtractionResult, error) {
	documentURL := strings.TrimSpace(req.DocumentURL)
	if documentURL == "" {
		return nil, ocrdomain.ErrInvalidDocument
	}

	payload, err := json.Marshal(map[string]string{"document_url": documentURL})
	if err != nil {
		return nil, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/extract", bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(httpReq)
	if err != nil {
		c.log.Warn("extraction request failed", zap.Error(err))
		return nil, ocrdomain.ErrUnavailable
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return nil, ocrdomain.ErrUnavailable
	}

	switch {
	case resp.StatusCode == http.StatusUnprocessableEntity || resp.StatusCode == http.StatusBadRequest:
		return nil, ocrdomain.ErrInvalidDocument
	case resp.StatusCode != http.StatusOK:
		c.log.Warn("extraction service error",
			zap.Int("status_code", resp.StatusCode),
			zap.String("body", truncate(string(body), 512)),
		)
		return nil, ocrdomain.ErrUnavailable
	}

	var parsed extractResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, ocrdomain.ErrUnavailable
	}

	result := &ocrdomain.ExtractionResult{
		DocumentID: ulid.Make().String(),
		Items:      make([]linetabledomain.ImportedLineItem, 0, len(parsed.Items)),
	}
	for _, item := range parsed.Items {
		imported := linetabledomain.ImportedLineItem{
			ProductCode: item.ProductCode,
			Description: item.Description,
			HSNCode:     item.HSNCode,
			Quantity:    item.Quantity,
			Unit:        item.Unit,
			Rate:        item.Rate,
			Discount:    item.Discount,
			TaxRate:     item.TaxRate,
			Confidence:  item.Confidence,
		}
		if item.BBox != nil {
			imported.BBox = &linetabledomain.BoundingBox{
				X:      item.BBox.X,
				Y:      item.BBox.Y,
				Width:  item.BBox.Width,
				Height: item.BBox.Height,
			}
		}
		result.Items = append(result.Items, imported)
	}

	c.cache.Set(result)
	c.log.Info("document extracted",
		zap.String("document_id", result.DocumentID),
		zap.Int("items", len(result.Items)),
	)
	return result, nil
}

func (c *Client) Result(ctx context.Context, documentID string) (*ocrdomain.ExtractionResult, error) {
	documentID = strings.TrimSpace(documentID)
	if documentID == "" {
		return nil, ocrdomain.ErrInvalidDocument
	}
	result, ok := c.cache.Get(documentID)
	if !ok {
		return nil, ocrdomain.ErrNotFound
	}
	return result, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
