package importer

import (
	"errors"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"intellispec/internal/model"
)

// sampleRowLimit 提供给列映射器的样本行数
const sampleRowLimit = 10

// readSheet 读取工作表，返回表头行与数据行
// sheet 为空时取第一个工作表
func readSheet(filePath, sheet string) ([]string, [][]string, error) {
	f, err := excelize.OpenFile(filePath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	if sheet == "" {
		list := f.GetSheetList()
		if len(list) == 0 {
			return nil, nil, errors.New("workbook has no sheets")
		}
		sheet = list[0]
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read sheet %q: %w", sheet, err)
	}
	if len(rows) == 0 {
		return nil, nil, errors.New("sheet is empty")
	}

	headers := make([]string, len(rows[0]))
	for i, h := range rows[0] {
		headers[i] = strings.TrimSpace(h)
	}

	return headers, rows[1:], nil
}

// listSheets 工作表概要列表
func listSheets(f *excelize.File) []model.SheetInfo {
	names := f.GetSheetList()
	sheets := make([]model.SheetInfo, 0, len(names))
	for _, name := range names {
		rows, err := f.GetRows(name)
		if err != nil {
			continue
		}
		sheets = append(sheets, model.SheetInfo{Name: name, RowCount: len(rows)})
	}
	return sheets
}

// sampleValues 取前 limit 行作为映射器的样本输入
func sampleValues(rows [][]string, limit int) [][]any {
	if len(rows) < limit {
		limit = len(rows)
	}
	samples := make([][]any, limit)
	for i := 0; i < limit; i++ {
		row := make([]any, len(rows[i]))
		for j, cell := range rows[i] {
			row[j] = cell
		}
		samples[i] = row
	}
	return samples
}
