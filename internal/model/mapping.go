package model

// TargetUnmapped 未映射哨兵值
const TargetUnmapped = "unmapped"

// MatchTechnique 列映射采用的匹配技术
type MatchTechnique string

const (
	TechniqueExact      MatchTechnique = "exact"
	TechniqueAlias      MatchTechnique = "alias"
	TechniqueFuzzy      MatchTechnique = "fuzzy"
	TechniquePattern    MatchTechnique = "pattern"
	TechniqueHistorical MatchTechnique = "historical"
	TechniqueNone       MatchTechnique = "none"
)

// ColumnMapping 单个源列到目标字段的映射建议
// 不变式：TargetPath == TargetUnmapped 时 Confidence 必为 0、Technique 必为 none
type ColumnMapping struct {
	SourceColumn string         `json:"sourceColumn"` // 原始表头，未经规范化
	TargetPath   string         `json:"targetPath"`
	Confidence   int            `json:"confidence"` // 0-100
	Technique    MatchTechnique `json:"technique"`
}
