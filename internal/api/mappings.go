package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"intellispec/internal/model"
	"intellispec/internal/store"
)

// PreviewRequest 映射预览请求
type PreviewRequest struct {
	DocumentType string   `json:"documentType" binding:"required"`
	Headers      []string `json:"headers" binding:"required"`
	SampleRows   [][]any  `json:"sampleRows"`
}

// PreviewMappings 给出列映射建议，不写任何数据
// POST /api/mappings/preview
func (h *Handler) PreviewMappings(c *gin.Context) {
	var req PreviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "无效的请求体: " + err.Error()})
		return
	}

	fields, err := h.meta.Fields(req.DocumentType)
	if err != nil {
		abortWithMappingError(c, err)
		return
	}

	history := store.NewHistory(h.store, h.tenant)
	mappings, err := h.mapper.MapColumns(req.DocumentType, req.Headers, req.SampleRows, fields, history)
	if err != nil {
		abortWithMappingError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"documentType": req.DocumentType,
		"mappings":     mappings,
	})
}

// ConfirmRequest 映射确认请求
type ConfirmRequest struct {
	DocumentType string `json:"documentType" binding:"required"`
	SourceColumn string `json:"sourceColumn" binding:"required"`
	TargetPath   string `json:"targetPath" binding:"required"`
}

// ConfirmMapping 记录用户确认的映射，供后续导入复用
// POST /api/mappings/confirm
func (h *Handler) ConfirmMapping(c *gin.Context) {
	var req ConfirmRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "无效的请求体: " + err.Error()})
		return
	}

	if !h.meta.KnownType(req.DocumentType) {
		c.JSON(http.StatusNotFound, gin.H{"error": "未知的文档类型: " + req.DocumentType})
		return
	}

	// 确认到 unmapped 等价于撤销建议，不落历史
	if req.TargetPath == model.TargetUnmapped {
		c.JSON(http.StatusOK, gin.H{"recorded": false})
		return
	}

	fields, err := h.meta.Fields(req.DocumentType)
	if err != nil {
		abortWithMappingError(c, err)
		return
	}
	known := false
	for _, f := range fields {
		if f.Path == req.TargetPath {
			known = true
			break
		}
	}
	if !known {
		c.JSON(http.StatusBadRequest, gin.H{"error": "目标字段不存在: " + req.TargetPath})
		return
	}

	history := store.NewHistory(h.store, h.tenant)
	if err := history.RecordConfirmedMapping(req.DocumentType, req.SourceColumn, req.TargetPath); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "写入映射历史失败"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"recorded": true})
}
