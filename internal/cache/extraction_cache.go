package cache

import (
	"time"

	ocrdomain "github.com/smallbiznis/gstdesk/internal/ocr/domain"
)

const defaultExtractionTTL = 15 * time.Minute

// ExtractionCache keeps recent extraction results so repeated imports of
// the same document skip the OCR round trip.
type ExtractionCache interface {
	Get(documentID string) (*ocrdomain.ExtractionResult, bool)
	Set(result *ocrdomain.ExtractionResult)
}

type extractionCache struct {
	results Cache[string, *ocrdomain.ExtractionResult]
	ttl     time.Duration
}

// NewExtractionCache returns an in-memory result cache. A non-positive ttl
// falls back to the default.
func NewExtractionCache(ttl time.Duration) ExtractionCache {
	if ttl <= 0 {
		ttl = defaultExtractionTTL
	}
	return &extractionCache{
		results: NewTTLCache[string, *ocrdomain.ExtractionResult](),
		ttl:     ttl,
	}
}

func (c *extractionCache) Get(documentID string) (*ocrdomain.ExtractionResult, bool) {
	return c.results.Get(documentID)
}

func (c *extractionCache) Set(result *ocrdomain.ExtractionResult) {
	if result == nil || result.DocumentID == "" {
		return
	}
	c.results.Set(result.DocumentID, result, c.ttl)
}
