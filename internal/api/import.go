package api

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"
	json "github.com/goccy/go-json"

	"intellispec/internal/importer"
)

// saveUpload 把上传文件保存到临时目录
func saveUpload(c *gin.Context) (path, filename string, cleanup func(), err error) {
	form, err := c.MultipartForm()
	if err != nil {
		return "", "", nil, fmt.Errorf("无效的表单数据")
	}

	files := form.File["file"]
	if len(files) == 0 {
		return "", "", nil, fmt.Errorf("未找到上传文件")
	}
	uploaded := files[0]

	path = filepath.Join(os.TempDir(), fmt.Sprintf("intellispec_import_%d_%s", time.Now().UnixNano(), uploaded.Filename))
	if err := c.SaveUploadedFile(uploaded, path); err != nil {
		return "", "", nil, fmt.Errorf("保存文件失败")
	}

	return path, uploaded.Filename, func() { _ = os.Remove(path) }, nil
}

// InspectImport 导入向导第一步：解析工作簿并给出映射建议
// POST /api/import/inspect
func (h *Handler) InspectImport(c *gin.Context) {
	path, filename, cleanup, err := saveUpload(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	defer cleanup()

	documentType := c.PostForm("documentType")
	sheet := c.PostForm("sheet")
	if !h.meta.KnownType(documentType) {
		c.JSON(http.StatusNotFound, gin.H{"error": "未知的文档类型: " + documentType})
		return
	}

	coordinator := importer.NewCoordinator(h.store, h.meta, h.tenant)
	inspection, err := coordinator.Inspect(path, filename, documentType, sheet)
	if err != nil {
		abortWithMappingError(c, err)
		return
	}

	c.JSON(http.StatusOK, inspection)
}

// Import 导入工作簿数据 (SSE 流式响应)
// POST /api/import
func (h *Handler) Import(c *gin.Context) {
	path, filename, cleanup, err := saveUpload(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	defer cleanup()

	documentType := c.PostForm("documentType")
	sheet := c.PostForm("sheet")
	clearExisting := c.DefaultPostForm("clearExisting", "false") == "true"

	// 用户在向导里修正后的映射，JSON 对象：表头 -> 目标路径
	overrides := map[string]string{}
	if raw := c.PostForm("overrides"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &overrides); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "无效的映射修正: " + err.Error()})
			return
		}
	}

	// 设置 SSE 响应头
	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")

	flusher, ok := c.Writer.(http.Flusher)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "不支持流式响应"})
		return
	}

	coordinator := importer.NewCoordinator(h.store, h.meta, h.tenant)
	progress := coordinator.Import(importer.Options{
		FilePath:      path,
		Filename:      filename,
		DocumentType:  documentType,
		Sheet:         sheet,
		ClearExisting: clearExisting,
		Overrides:     overrides,
	})

	for event := range progress {
		data, err := json.Marshal(event)
		if err != nil {
			continue
		}
		// SSE 格式: data: {json}\n\n
		fmt.Fprintf(c.Writer, "data: %s\n\n", data)
		flusher.Flush()
	}
}
