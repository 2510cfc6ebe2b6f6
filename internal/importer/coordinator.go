package importer

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"intellispec/internal/mapping"
	"intellispec/internal/metadata"
	"intellispec/internal/model"
	"intellispec/internal/record"
	"intellispec/internal/store"
)

// maxReportedErrors 报告中最多保留的行级错误数
const maxReportedErrors = 20

// progressEvery 每导入多少行发一次进度事件
const progressEvery = 50

// Coordinator 导入协调器
// 串起 元数据发现 → 列映射 → 逐行构建嵌套文档 → 落库 的完整链路
type Coordinator struct {
	store  *store.Store
	meta   *metadata.Provider
	mapper *mapping.Mapper
	tenant string
}

// NewCoordinator 创建导入协调器
func NewCoordinator(st *store.Store, meta *metadata.Provider, tenantID string) *Coordinator {
	return &Coordinator{
		store:  st,
		meta:   meta,
		mapper: mapping.NewMapper(metadata.Aliases()),
		tenant: tenantID,
	}
}

// Options 导入选项
type Options struct {
	FilePath      string
	Filename      string
	DocumentType  string
	Sheet         string            // 为空时取第一个工作表
	ClearExisting bool              // 导入前清空该类型现有文档
	Overrides     map[string]string // 表头 -> 目标路径，用户在向导里的修正；unmapped 表示忽略该列
}

// ProgressEvent 导入进度事件
type ProgressEvent struct {
	Stage   string              `json:"stage"` // parsing/mapping/importing/completed/error
	Message string              `json:"message,omitempty"`
	Current int                 `json:"current,omitempty"`
	Total   int                 `json:"total,omitempty"`
	Report  *model.ImportReport `json:"report,omitempty"`
}

// Import 执行导入，进度通过 channel 流式返回
// channel 在导入结束（成功或失败）后关闭
func (c *Coordinator) Import(opts Options) <-chan ProgressEvent {
	ch := make(chan ProgressEvent, 16)
	go func() {
		defer close(ch)
		c.run(opts, ch)
	}()
	return ch
}

func (c *Coordinator) run(opts Options, ch chan<- ProgressEvent) {
	start := time.Now()
	sessionID := uuid.New().String()

	fail := func(format string, args ...any) {
		ch <- ProgressEvent{Stage: "error", Message: fmt.Sprintf(format, args...)}
	}

	if !c.meta.KnownType(opts.DocumentType) {
		fail("未知的文档类型: %s", opts.DocumentType)
		return
	}

	ch <- ProgressEvent{Stage: "parsing", Message: "正在解析工作簿"}

	headers, rows, err := readSheet(opts.FilePath, opts.Sheet)
	if err != nil {
		fail("解析工作簿失败: %v", err)
		return
	}

	fields, err := c.meta.Fields(opts.DocumentType)
	if err != nil {
		fail("获取字段定义失败: %v", err)
		return
	}

	ch <- ProgressEvent{Stage: "mapping", Message: "正在匹配列映射"}

	history := store.NewHistory(c.store, c.tenant)
	mappings, err := c.mapper.MapColumns(opts.DocumentType, headers, sampleValues(rows, sampleRowLimit), fields, history)
	if err != nil {
		fail("列映射失败: %v", err)
		return
	}

	mappings = applyOverrides(mappings, opts.Overrides)

	// 用户修正过的映射回写历史，供下次导入复用
	for _, cm := range mappings {
		if _, ok := opts.Overrides[cm.SourceColumn]; ok && cm.TargetPath != model.TargetUnmapped {
			if err := history.RecordConfirmedMapping(opts.DocumentType, cm.SourceColumn, cm.TargetPath); err != nil {
				fail("写入映射历史失败: %v", err)
				return
			}
		}
	}

	if opts.ClearExisting {
		if _, err := c.store.DeleteDocuments(c.tenant, opts.DocumentType); err != nil {
			fail("清空现有文档失败: %v", err)
			return
		}
	}

	logID, err := c.store.CreateImportLog(sessionID, c.tenant, opts.DocumentType, opts.Filename)
	if err != nil {
		fail("创建导入日志失败: %v", err)
		return
	}

	fieldByPath := make(map[string]model.FieldDefinition, len(fields))
	for _, f := range fields {
		fieldByPath[f.Path] = f
	}

	report := &model.ImportReport{
		SessionID:    sessionID,
		Filename:     opts.Filename,
		DocumentType: opts.DocumentType,
		TotalRows:    len(rows),
		Mappings:     mappings,
	}
	for _, cm := range mappings {
		if cm.TargetPath == model.TargetUnmapped {
			report.UnmappedCols = append(report.UnmappedCols, cm.SourceColumn)
		}
	}

	for i, row := range rows {
		doc, rowErrs := buildDocument(row, mappings, fieldByPath)
		if len(rowErrs) > 0 {
			report.ErrorRows++
			for _, e := range rowErrs {
				if len(report.Errors) < maxReportedErrors {
					report.Errors = append(report.Errors, fmt.Sprintf("第 %d 行: %s", i+2, e))
				}
			}
			continue
		}
		if doc == nil {
			// 整行为空，跳过不计错误
			report.TotalRows--
			continue
		}

		err := c.store.InsertDocument(&model.Document{
			ID:           uuid.New().String(),
			TenantID:     c.tenant,
			DocumentType: opts.DocumentType,
			Payload:      doc,
			SourceFile:   opts.Filename,
		})
		if err != nil {
			report.ErrorRows++
			if len(report.Errors) < maxReportedErrors {
				report.Errors = append(report.Errors, fmt.Sprintf("第 %d 行: 落库失败: %v", i+2, err))
			}
			continue
		}
		report.ImportedRows++

		if (i+1)%progressEvery == 0 {
			ch <- ProgressEvent{Stage: "importing", Current: i + 1, Total: len(rows)}
		}
	}

	report.Duration = time.Since(start)

	status := "completed"
	if report.ImportedRows == 0 && report.ErrorRows > 0 {
		status = "failed"
	}
	if err := c.store.CompleteImportLog(logID, report.TotalRows, report.ImportedRows, report.ErrorRows, status, ""); err != nil {
		fail("更新导入日志失败: %v", err)
		return
	}

	ch <- ProgressEvent{Stage: "completed", Current: len(rows), Total: len(rows), Report: report}
}

// buildDocument 按映射把一行单元格写入嵌套记录
// 返回 nil 文档表示整行为空
func buildDocument(row []string, mappings []model.ColumnMapping, fieldByPath map[string]model.FieldDefinition) (map[string]any, []string) {
	doc := map[string]any{}
	empty := true
	var errs []string

	for j, cm := range mappings {
		if cm.TargetPath == model.TargetUnmapped {
			continue
		}
		field, ok := fieldByPath[cm.TargetPath]
		if !ok {
			continue
		}

		var cell string
		if j < len(row) {
			cell = row[j]
		}
		if cell == "" {
			continue
		}
		empty = false

		v, err := convertCell(cell, field)
		if err != nil {
			errs = append(errs, fmt.Sprintf("列 %q: %v", cm.SourceColumn, err))
			continue
		}
		record.SetValue(doc, field.Path, v)
	}

	if empty {
		return nil, nil
	}
	if len(errs) > 0 {
		return nil, errs
	}

	// 必填校验
	for _, f := range fieldByPath {
		if !f.Required {
			continue
		}
		if v, ok := record.GetValue(doc, f.Path); !ok || v == "" {
			errs = append(errs, fmt.Sprintf("缺少必填字段 %q", f.Label))
		}
	}
	if len(errs) > 0 {
		return nil, errs
	}

	return doc, nil
}

// applyOverrides 应用用户在向导里的修正
// 修正视为用户决定，置信度记满
func applyOverrides(mappings []model.ColumnMapping, overrides map[string]string) []model.ColumnMapping {
	if len(overrides) == 0 {
		return mappings
	}
	out := make([]model.ColumnMapping, len(mappings))
	copy(out, mappings)

	for i := range out {
		target, ok := overrides[out[i].SourceColumn]
		if !ok {
			continue
		}
		if target == model.TargetUnmapped || target == "" {
			out[i].TargetPath = model.TargetUnmapped
			out[i].Confidence = 0
			out[i].Technique = model.TechniqueNone
			continue
		}
		out[i].TargetPath = target
		out[i].Confidence = 100
		out[i].Technique = model.TechniqueExact
	}
	return out
}
