package model

import "time"

// ImportReport 一次导入会话的汇总报告
type ImportReport struct {
	SessionID    string          `json:"sessionId"`
	Filename     string          `json:"filename"`
	DocumentType string          `json:"documentType"`
	TotalRows    int             `json:"totalRows"`
	ImportedRows int             `json:"importedRows"`
	ErrorRows    int             `json:"errorRows"`
	UnmappedCols []string        `json:"unmappedColumns,omitempty"`
	Mappings     []ColumnMapping `json:"mappings"`
	Errors       []string        `json:"errors,omitempty"`
	Duration     time.Duration   `json:"duration"`
}

// SheetInfo 工作表概要
type SheetInfo struct {
	Name     string `json:"name"`
	RowCount int    `json:"rowCount"`
}
