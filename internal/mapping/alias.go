package mapping

// Alias 单个别名条目
// Confidence 为该别名命中时的置信度，随配置下发
type Alias struct {
	Value      string `json:"value"`
	Confidence int    `json:"confidence"`
}

// AliasTable 按目标字段路径组织的别名表
// 随系统固定下发，运行期只读
type AliasTable map[string][]Alias

// lookup 按规范化后的表头查找别名命中
// 返回目标路径与该条目声明的置信度
func (t AliasTable) lookup(normalized string) (targetPath string, confidence int, ok bool) {
	for path, aliases := range t {
		for _, a := range aliases {
			if NormalizeHeader(a.Value) == normalized {
				conf := a.Confidence
				if conf <= 0 {
					conf = defaultAliasConfidence
				}
				return path, conf, true
			}
		}
	}
	return "", 0, false
}

const defaultAliasConfidence = 98
