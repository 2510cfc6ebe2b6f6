package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"intellispec/internal/exporter"
)

// Export 导出某文档类型为 xlsx
// GET /api/export/:type
func (h *Handler) Export(c *gin.Context) {
	documentType := c.Param("type")
	if !h.meta.KnownType(documentType) {
		c.JSON(http.StatusNotFound, gin.H{"error": "未知的文档类型: " + documentType})
		return
	}

	exp := exporter.NewExporter(h.store, h.meta, h.tenant)
	file, err := exp.Export(documentType)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "导出失败: " + err.Error()})
		return
	}
	defer file.Close()

	filename := fmt.Sprintf("%s-%s.xlsx", documentType, time.Now().Format("2006-01-02"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")

	if err := file.Write(c.Writer); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "写入文件失败"})
		return
	}
}
