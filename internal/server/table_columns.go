package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	columndomain "github.com/smallbiznis/gstdesk/internal/tablecolumn/domain"
)

func (s *Server) ListColumns(c *gin.Context) {
	entry, err := s.tableEntry(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	visibleOnly := c.Query("visible") == "true"
	mappableOnly := c.Query("mappable") == "true"

	entry.Lock()
	var columns []columndomain.ColumnDefinition
	switch {
	case visibleOnly:
		columns = entry.Schema.VisibleColumns()
	case mappableOnly:
		columns = entry.Schema.MappableColumns()
	default:
		columns = entry.Schema.Columns()
	}
	entry.Unlock()

	c.JSON(http.StatusOK, gin.H{"data": columns})
}

func (s *Server) AddColumn(c *gin.Context) {
	entry, err := s.tableEntry(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	var def columndomain.ColumnDefinition
	if err := c.ShouldBindJSON(&def); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	entry.Lock()
	added, err := entry.Schema.AddColumn(def)
	entry.Unlock()
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": added})
}

func (s *Server) UpdateColumn(c *gin.Context) {
	entry, err := s.tableEntry(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	columnID, err := parseSnowflake(c.Param("column_id"))
	if err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	var patch columndomain.ColumnPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	entry.Lock()
	column, found := entry.Schema.UpdateColumn(columnID, patch)
	entry.Unlock()

	if !found {
		c.JSON(http.StatusOK, gin.H{"data": nil})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": column})
}

func (s *Server) RemoveColumn(c *gin.Context) {
	entry, err := s.tableEntry(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	columnID, err := parseSnowflake(c.Param("column_id"))
	if err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	entry.Lock()
	entry.Schema.RemoveColumn(columnID)
	columns := entry.Schema.Columns()
	entry.Unlock()

	c.JSON(http.StatusOK, gin.H{"data": columns})
}

type moveColumnRequest struct {
	NewOrder *int `json:"new_order" binding:"required"`
}

func (s *Server) MoveColumn(c *gin.Context) {
	entry, err := s.tableEntry(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	columnID, err := parseSnowflake(c.Param("column_id"))
	if err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	var req moveColumnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	entry.Lock()
	entry.Schema.MoveColumn(columnID, *req.NewOrder)
	columns := entry.Schema.Columns()
	entry.Unlock()

	c.JSON(http.StatusOK, gin.H{"data": columns})
}

func (s *Server) ToggleColumnVisibility(c *gin.Context) {
	entry, err := s.tableEntry(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	columnID, err := parseSnowflake(c.Param("column_id"))
	if err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	entry.Lock()
	entry.Schema.ToggleVisibility(columnID)
	columns := entry.Schema.Columns()
	entry.Unlock()

	c.JSON(http.StatusOK, gin.H{"data": columns})
}

func (s *Server) ResetColumns(c *gin.Context) {
	entry, err := s.tableEntry(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	entry.Lock()
	entry.Schema.InitializeDefaults()
	columns := entry.Schema.Columns()
	entry.Unlock()

	c.JSON(http.StatusOK, gin.H{"data": columns})
}

type applyConfigRequest struct {
	ConfigID string `json:"config_id" binding:"required"`
}

// ApplyColumnConfig replaces the table's column schema with a saved snapshot.
func (s *Server) ApplyColumnConfig(c *gin.Context) {
	entry, err := s.tableEntry(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	var req applyConfigRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	cfg, err := s.configSvc.Get(c.Request.Context(), req.ConfigID)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	entry.Lock()
	entry.Schema.Replace(cfg.Columns)
	columns := entry.Schema.Columns()
	entry.Unlock()

	c.JSON(http.StatusOK, gin.H{"data": columns})
}
