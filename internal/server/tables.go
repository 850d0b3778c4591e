package server

import (
	"net/http"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	linetabledomain "github.com/smallbiznis/gstdesk/internal/linetable/domain"
	"github.com/smallbiznis/gstdesk/internal/tableregistry"
)

type tableResponse struct {
	ID         string                      `json:"id"`
	InterState bool                        `json:"inter_state"`
	Rows       []linetabledomain.LineItem  `json:"rows"`
	Summary    linetabledomain.TableSummary `json:"summary"`
}

func (s *Server) CreateTable(c *gin.Context) {
	entry := s.registry.Create()

	entry.Lock()
	resp := tableResponse{
		ID:         entry.ID.String(),
		InterState: entry.Rows.InterState(),
		Rows:       entry.Rows.Rows(),
		Summary:    entry.Rows.Summary(),
	}
	entry.Unlock()

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ListTables(c *gin.Context) {
	ids := s.registry.List()
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		out = append(out, id.String())
	}
	c.JSON(http.StatusOK, gin.H{"data": out})
}

func (s *Server) GetTable(c *gin.Context) {
	entry, err := s.tableEntry(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	entry.Lock()
	resp := tableResponse{
		ID:         entry.ID.String(),
		InterState: entry.Rows.InterState(),
		Rows:       entry.Rows.Rows(),
		Summary:    entry.Rows.Summary(),
	}
	entry.Unlock()

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) DropTable(c *gin.Context) {
	id, err := parseSnowflake(c.Param("table_id"))
	if err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	s.registry.Drop(id)
	c.JSON(http.StatusOK, gin.H{"data": gin.H{"dropped": true}})
}

func (s *Server) GetTableSummary(c *gin.Context) {
	entry, err := s.tableEntry(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	entry.Lock()
	summary := entry.Rows.Summary()
	entry.Unlock()

	c.JSON(http.StatusOK, gin.H{"data": summary})
}

type interStateRequest struct {
	InterState *bool `json:"inter_state" binding:"required"`
}

func (s *Server) SetInterState(c *gin.Context) {
	entry, err := s.tableEntry(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	var req interStateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	entry.Lock()
	entry.Rows.SetInterState(*req.InterState)
	rows := entry.Rows.Rows()
	summary := entry.Rows.Summary()
	entry.Unlock()

	s.obsMetrics.RecordRecalc(c.Request.Context(), "interstate", int64(len(rows)))
	c.JSON(http.StatusOK, gin.H{"data": gin.H{
		"inter_state": *req.InterState,
		"rows":        rows,
		"summary":     summary,
	}})
}

func (s *Server) ValidateTable(c *gin.Context) {
	entry, err := s.tableEntry(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	entry.Lock()
	violations := entry.Rows.ValidateRows()
	entry.Unlock()

	c.JSON(http.StatusOK, gin.H{"data": gin.H{
		"valid":      len(violations) == 0,
		"violations": violations,
	}})
}

func (s *Server) tableEntry(c *gin.Context) (*tableregistry.Entry, error) {
	id, err := parseSnowflake(c.Param("table_id"))
	if err != nil {
		return nil, linetabledomain.ErrTableNotFound
	}
	entry, ok := s.registry.Get(id)
	if !ok {
		return nil, linetabledomain.ErrTableNotFound
	}
	return entry, nil
}

func parseSnowflake(raw string) (snowflake.ID, error) {
	return snowflake.ParseString(strings.TrimSpace(raw))
}
