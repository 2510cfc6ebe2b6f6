package mapping

import (
	"fmt"
	"math"
	"strings"

	"intellispec/internal/model"
)

// History 已确认映射的历史存储，由宿主应用注入
// Lookup 的 key 为规范化后的表头；写入时机由外部 UI 层决定
type History interface {
	Lookup(documentType, normalizedHeader string) (targetPath string, ok bool)
	RecordConfirmedMapping(documentType, header, targetPath string) error
}

const (
	historicalConfidence = 95
	exactConfidence      = 95
	nearExactConfidence  = 90
	patternConfidence    = 70
	fuzzyConfidenceCap   = 89 // 模糊匹配不得越过 exact/alias/historical 档位
	fuzzyThreshold       = 60
)

// Mapper 列映射器
// 纯打分计算，不做任何持久化；别名表随系统配置下发
type Mapper struct {
	aliases AliasTable
}

// NewMapper 创建列映射器
func NewMapper(aliases AliasTable) *Mapper {
	if aliases == nil {
		aliases = AliasTable{}
	}
	return &Mapper{aliases: aliases}
}

// MapColumns 为每个表头给出一条映射建议，顺序与 headers 一致
// 匹配流水线：historical → alias → exact → fuzzy → pattern → none，
// 首个达到阈值的技术胜出。收尾做唯一声明约束：同一目标路径只保留
// 置信度最高的一条，其余降级为 unmapped。
func (m *Mapper) MapColumns(documentType string, headers []string, sampleRows [][]any, fields []model.FieldDefinition, history History) ([]model.ColumnMapping, error) {
	if len(headers) == 0 {
		return nil, &InvalidInputError{Reason: "headers are empty"}
	}
	seen := make(map[string]bool, len(headers))
	for _, h := range headers {
		if seen[h] {
			return nil, &InvalidInputError{Reason: fmt.Sprintf("duplicate header %q", h)}
		}
		seen[h] = true
	}

	fieldByPath := make(map[string]model.FieldDefinition, len(fields))
	for _, f := range fields {
		fieldByPath[f.Path] = f
	}

	claimed := make(map[string]bool, len(headers))
	results := make([]model.ColumnMapping, len(headers))

	for i, header := range headers {
		cm := model.ColumnMapping{
			SourceColumn: header,
			TargetPath:   model.TargetUnmapped,
			Technique:    model.TechniqueNone,
		}

		norm := NormalizeHeader(header)
		if norm != "" {
			if target, conf, tech, ok := m.matchColumn(documentType, header, norm, columnSamples(sampleRows, i), fields, fieldByPath, claimed, history); ok {
				cm.TargetPath = target
				cm.Confidence = conf
				cm.Technique = tech
				claimed[target] = true
			}
		}

		results[i] = cm
	}

	// 唯一声明约束：同目标保留高置信度者，平手按表头先后
	best := make(map[string]int, len(results))
	for i := range results {
		cm := &results[i]
		if cm.Technique == model.TechniqueNone {
			continue
		}
		j, ok := best[cm.TargetPath]
		if !ok {
			best[cm.TargetPath] = i
			continue
		}
		if cm.Confidence > results[j].Confidence {
			demote(&results[j])
			best[cm.TargetPath] = i
		} else {
			demote(cm)
		}
	}

	return results, nil
}

// matchColumn 按技术优先级匹配单个表头
func (m *Mapper) matchColumn(documentType, header, norm string, samples []any, fields []model.FieldDefinition, fieldByPath map[string]model.FieldDefinition, claimed map[string]bool, history History) (string, int, model.MatchTechnique, bool) {
	// 1. 历史确认映射
	if history != nil {
		if target, ok := history.Lookup(documentType, norm); ok {
			if _, exists := fieldByPath[target]; exists {
				return target, historicalConfidence, model.TechniqueHistorical, true
			}
			// 历史指向的字段已不存在，继续走后续技术
		}
	}

	// 2. 别名表
	if target, conf, ok := m.aliases.lookup(norm); ok {
		if _, exists := fieldByPath[target]; exists {
			return target, conf, model.TechniqueAlias, true
		}
	}

	// 3. 语义等同：先找完全相等，再找仅下划线/复数差异
	exact := normalizeExact(header)
	for _, f := range fields {
		if exact == normalizeExact(f.Label) || exact == strings.ToLower(f.Path) {
			return f.Path, exactConfidence, model.TechniqueExact, true
		}
	}
	singular := singularizePhrase(norm)
	for _, f := range fields {
		labelNorm := NormalizeHeader(f.Label)
		if norm == labelNorm || norm == normalizePath(f.Path) || singular == singularizePhrase(labelNorm) {
			return f.Path, nearExactConfidence, model.TechniqueExact, true
		}
	}

	// 4. 模糊匹配：编辑距离相似度，平手取最短 label
	if target, conf, ok := m.fuzzyMatch(norm, fields); ok {
		return target, conf, model.TechniqueFuzzy, true
	}

	// 5. 样本值类型嗅探：仅当恰有一个未被声明的同类型字段
	if dt, ok := sniffDataType(samples); ok {
		var candidate string
		count := 0
		for _, f := range fields {
			if f.DataType == dt && !claimed[f.Path] {
				candidate = f.Path
				count++
			}
		}
		if count == 1 {
			return candidate, patternConfidence, model.TechniquePattern, true
		}
	}

	return "", 0, model.TechniqueNone, false
}

func (m *Mapper) fuzzyMatch(norm string, fields []model.FieldDefinition) (string, int, bool) {
	bestPath := ""
	bestLabel := ""
	bestScore := -1.0

	for _, f := range fields {
		label := NormalizeHeader(f.Label)
		if label == "" {
			continue
		}
		score := similarity(norm, label)
		if score > bestScore || (score == bestScore && len(f.Label) < len(bestLabel)) {
			bestScore = score
			bestPath = f.Path
			bestLabel = f.Label
		}
	}

	if bestPath == "" || bestScore < fuzzyThreshold {
		return "", 0, false
	}

	conf := int(math.Round(bestScore))
	if conf > fuzzyConfidenceCap {
		conf = fuzzyConfidenceCap
	}
	return bestPath, conf, true
}

// columnSamples 抽取某一列的样本值
func columnSamples(rows [][]any, col int) []any {
	samples := make([]any, 0, len(rows))
	for _, row := range rows {
		if col < len(row) {
			samples = append(samples, row[col])
		}
	}
	return samples
}

func demote(cm *model.ColumnMapping) {
	cm.TargetPath = model.TargetUnmapped
	cm.Confidence = 0
	cm.Technique = model.TechniqueNone
}
