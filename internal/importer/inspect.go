package importer

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"intellispec/internal/model"
	"intellispec/internal/store"
)

// Inspection 导入向导第一步的解析结果
// 前端据此渲染映射确认界面
type Inspection struct {
	Filename    string                  `json:"filename"`
	Sheet       string                  `json:"sheet"`
	Sheets      []model.SheetInfo       `json:"sheets"`
	Headers     []string                `json:"headers"`
	SampleRows  [][]string              `json:"sampleRows"`
	Fields      []model.FieldDefinition `json:"fields"`
	Suggestions []model.ColumnMapping   `json:"suggestions"`
}

// Inspect 解析工作簿并给出映射建议，不写任何数据
func (c *Coordinator) Inspect(filePath, filename, documentType, sheet string) (*Inspection, error) {
	if !c.meta.KnownType(documentType) {
		return nil, fmt.Errorf("未知的文档类型: %s", documentType)
	}

	f, err := excelize.OpenFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	sheets := listSheets(f)
	_ = f.Close()

	headers, rows, err := readSheet(filePath, sheet)
	if err != nil {
		return nil, err
	}
	if sheet == "" && len(sheets) > 0 {
		sheet = sheets[0].Name
	}

	fields, err := c.meta.Fields(documentType)
	if err != nil {
		return nil, err
	}

	suggestions, err := c.mapper.MapColumns(documentType, headers, sampleValues(rows, sampleRowLimit), fields, store.NewHistory(c.store, c.tenant))
	if err != nil {
		return nil, err
	}

	preview := rows
	if len(preview) > sampleRowLimit {
		preview = preview[:sampleRowLimit]
	}

	return &Inspection{
		Filename:    filename,
		Sheet:       sheet,
		Sheets:      sheets,
		Headers:     headers,
		SampleRows:  preview,
		Fields:      fields,
		Suggestions: suggestions,
	}, nil
}
