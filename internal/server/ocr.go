package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	ocrdomain "github.com/smallbiznis/gstdesk/internal/ocr/domain"
)

// ExtractDocument sends a document to the extraction service and returns
// the parsed line items with a document id for later import.
func (s *Server) ExtractDocument(c *gin.Context) {
	var req ocrdomain.ExtractRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	if err := s.allowExtraction(c); err != nil {
		AbortWithError(c, err)
		return
	}

	result, err := s.extractor.Extract(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": result})
}

func (s *Server) allowExtraction(c *gin.Context) error {
	if !s.extractLimiter.Enabled() {
		return nil
	}
	res, err := s.extractLimiter.Allow(c.Request.Context(), c.ClientIP())
	if err != nil {
		// redis outage must not take extraction down with it
		s.log.Warn("extract rate limit check failed")
		return nil
	}
	if !res.Allowed {
		return ErrRateLimited
	}
	return nil
}
