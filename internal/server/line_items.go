package server

import (
	"net/http"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	linetabledomain "github.com/smallbiznis/gstdesk/internal/linetable/domain"
)

type addRowsRequest struct {
	Count *int `json:"count"`
}

func (s *Server) AddRows(c *gin.Context) {
	entry, err := s.tableEntry(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	count := 1
	var req addRowsRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			AbortWithError(c, invalidRequestError())
			return
		}
		if req.Count != nil {
			count = *req.Count
		}
	}

	entry.Lock()
	added, err := entry.Rows.AddRows(count)
	entry.Unlock()
	if err != nil {
		AbortWithError(c, err)
		return
	}

	s.obsMetrics.RecordRowMutation(c.Request.Context(), "add")
	c.JSON(http.StatusOK, gin.H{"data": added})
}

func (s *Server) UpdateRow(c *gin.Context) {
	entry, err := s.tableEntry(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	rowID, err := parseSnowflake(c.Param("row_id"))
	if err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	var patch linetabledomain.RowPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	entry.Lock()
	row, found := entry.Rows.UpdateRow(rowID, patch)
	entry.Unlock()

	// Unknown row ids are a silent no-op, mirroring idempotent event delivery.
	if !found {
		c.JSON(http.StatusOK, gin.H{"data": nil})
		return
	}

	s.obsMetrics.RecordRowMutation(c.Request.Context(), "update")
	if patch.TouchesCalculation() {
		s.obsMetrics.RecordRecalc(c.Request.Context(), "row", 1)
	}
	c.JSON(http.StatusOK, gin.H{"data": row})
}

func (s *Server) DeleteRow(c *gin.Context) {
	entry, err := s.tableEntry(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	rowID, err := parseSnowflake(c.Param("row_id"))
	if err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	entry.Lock()
	entry.Rows.DeleteRow(rowID)
	rows := entry.Rows.Rows()
	entry.Unlock()

	s.obsMetrics.RecordRowMutation(c.Request.Context(), "delete")
	c.JSON(http.StatusOK, gin.H{"data": rows})
}

type deleteRowsRequest struct {
	RowIDs []string `json:"row_ids" binding:"required"`
}

func (s *Server) DeleteRows(c *gin.Context) {
	entry, err := s.tableEntry(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	var req deleteRowsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	ids := make([]snowflake.ID, 0, len(req.RowIDs))
	for _, raw := range req.RowIDs {
		id, err := parseSnowflake(raw)
		if err != nil {
			// unknown ids are ignored, unparseable ones cannot match anyway
			continue
		}
		ids = append(ids, id)
	}

	entry.Lock()
	entry.Rows.DeleteRows(ids)
	rows := entry.Rows.Rows()
	entry.Unlock()

	s.obsMetrics.RecordRowMutation(c.Request.Context(), "batch_delete")
	c.JSON(http.StatusOK, gin.H{"data": rows})
}

func (s *Server) DuplicateRow(c *gin.Context) {
	entry, err := s.tableEntry(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	rowID, err := parseSnowflake(c.Param("row_id"))
	if err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	entry.Lock()
	row, found := entry.Rows.DuplicateRow(rowID)
	entry.Unlock()

	if !found {
		c.JSON(http.StatusOK, gin.H{"data": nil})
		return
	}

	s.obsMetrics.RecordRowMutation(c.Request.Context(), "duplicate")
	c.JSON(http.StatusOK, gin.H{"data": row})
}

func (s *Server) ClearAllRows(c *gin.Context) {
	entry, err := s.tableEntry(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	entry.Lock()
	entry.Rows.ClearAllRows()
	entry.Unlock()

	s.obsMetrics.RecordRowMutation(c.Request.Context(), "clear")
	c.JSON(http.StatusOK, gin.H{"data": []linetabledomain.LineItem{}})
}
