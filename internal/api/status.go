package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// GetStatus 系统状态
// GET /api/status
func (h *Handler) GetStatus(c *gin.Context) {
	counts := map[string]int{}
	for _, dt := range h.meta.DocumentTypes() {
		n, err := h.store.CountDocuments(h.tenant, dt)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "查询文档统计失败"})
			return
		}
		counts[dt] = n
	}

	c.JSON(http.StatusOK, gin.H{
		"status":    "ok",
		"tenant":    h.tenant,
		"documents": counts,
	})
}
