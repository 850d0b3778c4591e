package server

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestSaveAndGetTableConfig(t *testing.T) {
	ts := newTestServer(t)

	resp := ts.do(t, http.MethodPost, "/v1/table-configs", gin.H{
		"name": "Compact",
		"columns": []gin.H{
			{"field_name": "description", "field_type": "textarea", "order": 1, "visible": true},
		},
	})
	assert.Equal(t, http.StatusOK, resp.Code)

	var saved struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	}
	decodeData(t, resp, &saved)
	assert.Equal(t, "Compact", saved.Name)

	resp = ts.do(t, http.MethodGet, "/v1/table-configs/"+saved.ID, nil)
	assert.Equal(t, http.StatusOK, resp.Code)

	resp = ts.do(t, http.MethodGet, "/v1/table-configs", nil)
	assert.Equal(t, http.StatusOK, resp.Code)

	var list []struct {
		ID string `json:"id"`
	}
	decodeData(t, resp, &list)
	assert.Len(t, list, 1)
}

func TestSaveTableConfigBlankNameRejected(t *testing.T) {
	ts := newTestServer(t)

	resp := ts.do(t, http.MethodPost, "/v1/table-configs", gin.H{"name": ""})
	assert.Equal(t, http.StatusBadRequest, resp.Code)
	assert.Contains(t, resp.Body.String(), "invalid_name")
}

func TestDeleteTableConfig(t *testing.T) {
	ts := newTestServer(t)

	resp := ts.do(t, http.MethodPost, "/v1/table-configs", gin.H{"name": "Doomed"})
	var saved struct {
		ID string `json:"id"`
	}
	decodeData(t, resp, &saved)

	resp = ts.do(t, http.MethodDelete, "/v1/table-configs/"+saved.ID, nil)
	assert.Equal(t, http.StatusOK, resp.Code)

	resp = ts.do(t, http.MethodGet, "/v1/table-configs/"+saved.ID, nil)
	assert.Equal(t, http.StatusNotFound, resp.Code)
}
