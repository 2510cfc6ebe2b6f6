package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ListDocumentTypes 已知文档类型
// GET /api/doctypes
func (h *Handler) ListDocumentTypes(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"documentTypes": h.meta.DocumentTypes()})
}

// GetFields 发现某文档类型的可映射字段
// GET /api/doctypes/:type/fields
func (h *Handler) GetFields(c *gin.Context) {
	documentType := c.Param("type")

	fields, err := h.meta.Fields(documentType)
	if err != nil {
		abortWithMappingError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"documentType": documentType,
		"fields":       fields,
	})
}
