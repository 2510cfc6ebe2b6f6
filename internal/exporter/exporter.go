package exporter

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"intellispec/internal/metadata"
	"intellispec/internal/record"
	"intellispec/internal/store"
)

// Exporter 文档导出器
// 按字段定义把嵌套文档摊平成行，生成 xlsx 工作簿
type Exporter struct {
	store  *store.Store
	meta   *metadata.Provider
	tenant string
}

// NewExporter 创建导出器
func NewExporter(st *store.Store, meta *metadata.Provider, tenantID string) *Exporter {
	return &Exporter{store: st, meta: meta, tenant: tenantID}
}

// Export 导出某文档类型的全部文档
// 列顺序与字段发现顺序一致，表头使用字段 label
func (e *Exporter) Export(documentType string) (*excelize.File, error) {
	fields, err := e.meta.Fields(documentType)
	if err != nil {
		return nil, err
	}

	docs, err := e.store.ListDocuments(e.tenant, documentType)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	sheet := documentType
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, fmt.Errorf("failed to rename sheet: %w", err)
	}

	// 表头行
	headers := make([]any, len(fields))
	for i, fd := range fields {
		headers[i] = fd.Label
	}
	if err := f.SetSheetRow(sheet, "A1", &headers); err != nil {
		return nil, fmt.Errorf("failed to write header row: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"DDEBF7"}, Pattern: 1},
	})
	if err == nil {
		last, _ := excelize.CoordinatesToCellName(len(fields), 1)
		_ = f.SetCellStyle(sheet, "A1", last, headerStyle)
	}

	// 数据行：缺失值为空串，数组按逗号连接
	for i, doc := range docs {
		flat := record.Flatten(doc.Payload, fields)
		row := make([]any, len(fields))
		for j, fd := range fields {
			row[j] = flat[fd.Label]
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return nil, fmt.Errorf("failed to write row %d: %w", i+2, err)
		}
	}

	// 列宽按 label 长度粗调
	for i, fd := range fields {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			continue
		}
		width := float64(len(fd.Label)) + 6
		if width < 12 {
			width = 12
		}
		_ = f.SetColWidth(sheet, col, col, width)
	}

	return f, nil
}
