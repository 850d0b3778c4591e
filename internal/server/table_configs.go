package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	columndomain "github.com/smallbiznis/gstdesk/internal/tablecolumn/domain"
)

func (s *Server) SaveTableConfig(c *gin.Context) {
	var req columndomain.SaveConfigRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.configSvc.Save(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	s.obsMetrics.RecordConfigSave(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ListTableConfigs(c *gin.Context) {
	resp, err := s.configSvc.List(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) GetTableConfig(c *gin.Context) {
	id := strings.TrimSpace(c.Param("config_id"))

	resp, err := s.configSvc.Get(c.Request.Context(), id)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) DeleteTableConfig(c *gin.Context) {
	id := strings.TrimSpace(c.Param("config_id"))

	if err := s.configSvc.Delete(c.Request.Context(), id); err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{"deleted": true}})
}
