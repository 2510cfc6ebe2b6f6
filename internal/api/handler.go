package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"intellispec/internal/mapping"
	"intellispec/internal/metadata"
	"intellispec/internal/store"
)

// Handler API 处理器
type Handler struct {
	store  *store.Store
	meta   *metadata.Provider
	mapper *mapping.Mapper
	tenant string
}

// NewHandler 创建 API 处理器
func NewHandler(st *store.Store, meta *metadata.Provider, tenantID string) *Handler {
	return &Handler{
		store:  st,
		meta:   meta,
		mapper: mapping.NewMapper(metadata.Aliases()),
		tenant: tenantID,
	}
}

// RegisterRoutes 注册 API 路由
func (h *Handler) RegisterRoutes(router *gin.RouterGroup) {
	// 系统状态
	router.GET("/status", h.GetStatus)

	// 文档类型与字段发现
	router.GET("/doctypes", h.ListDocumentTypes)
	router.GET("/doctypes/:type/fields", h.GetFields)

	// 列映射
	router.POST("/mappings/preview", h.PreviewMappings)
	router.POST("/mappings/confirm", h.ConfirmMapping)

	// 数据导入
	router.POST("/import/inspect", h.InspectImport)
	router.POST("/import", h.Import)

	// 数据导出
	router.GET("/export/:type", h.Export)

	// 已导入文档
	router.GET("/documents", h.ListDocuments)
	router.DELETE("/documents", h.DeleteDocuments)
}

// abortWithMappingError 把核心库错误翻译成 HTTP 响应
func abortWithMappingError(c *gin.Context, err error) {
	var metaErr *mapping.MetadataError
	if errors.As(err, &metaErr) {
		c.JSON(http.StatusNotFound, gin.H{"error": "表单定义无效: " + metaErr.Reason})
		return
	}
	var inputErr *mapping.InvalidInputError
	if errors.As(err, &inputErr) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "输入无效: " + inputErr.Reason})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
}
