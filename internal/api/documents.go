package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ListDocuments 查询已导入文档
// GET /api/documents?type=asset
func (h *Handler) ListDocuments(c *gin.Context) {
	documentType := c.Query("type")
	if !h.meta.KnownType(documentType) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "未知的文档类型: " + documentType})
		return
	}

	docs, err := h.store.ListDocuments(h.tenant, documentType)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "查询文档失败"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"documentType": documentType,
		"total":        len(docs),
		"documents":    docs,
	})
}

// DeleteDocuments 删除某类型的全部文档
// DELETE /api/documents?type=asset
func (h *Handler) DeleteDocuments(c *gin.Context) {
	documentType := c.Query("type")
	if !h.meta.KnownType(documentType) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "未知的文档类型: " + documentType})
		return
	}

	n, err := h.store.DeleteDocuments(h.tenant, documentType)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "删除文档失败"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"deleted": n})
}
