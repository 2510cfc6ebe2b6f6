// Package record 提供点号路径访问嵌套记录的通用读写工具
// 导入时用于按映射逐格写入，导出时用于把文档摊平成行。
package record

import (
	"fmt"
	"strconv"
	"strings"

	"intellispec/internal/model"
)

// GetValue 按点号路径读取嵌套记录
// 任一中间段缺失或不是嵌套结构时返回 ok=false，不报错。
// 纯数字段按普通 key 处理，不做数组下标遍历。
func GetValue(rec map[string]any, path string) (any, bool) {
	if rec == nil || path == "" {
		return nil, false
	}

	segments := strings.Split(path, ".")
	current := any(rec)

	for i, seg := range segments {
		m, ok := current.(map[string]any)
		if !ok {
			return nil, false
		}
		v, ok := m[seg]
		if !ok {
			return nil, false
		}
		if i == len(segments)-1 {
			return v, true
		}
		current = v
	}

	return nil, false
}

// SetValue 按点号路径写入嵌套记录
// 缺失的中间段自动创建为空嵌套结构；末段直接覆盖。
// 兄弟路径互不影响：先写 a.b.c 再写 a.b.d，两者在 a.b 下共存。
func SetValue(rec map[string]any, path string, value any) {
	if rec == nil || path == "" {
		return
	}

	segments := strings.Split(path, ".")
	current := rec

	for _, seg := range segments[:len(segments)-1] {
		next, ok := current[seg].(map[string]any)
		if !ok {
			// 中间段不存在或不是嵌套结构，重建为空结构
			next = map[string]any{}
			current[seg] = next
		}
		current = next
	}

	current[segments[len(segments)-1]] = value
}

// Flatten 按字段定义把嵌套记录摊平成 label → 标量字符串
// 数组以逗号连接各元素的字符串形式；缺失值渲染为空串。
func Flatten(rec map[string]any, fields []model.FieldDefinition) map[string]string {
	out := make(map[string]string, len(fields))
	for _, f := range fields {
		v, ok := GetValue(rec, f.Path)
		if !ok {
			out[f.Label] = ""
			continue
		}
		out[f.Label] = Stringify(v)
	}
	return out
}

// Stringify 标量值的导出字符串形式
func Stringify(v any) string {
	switch tv := v.(type) {
	case nil:
		return ""
	case string:
		return tv
	case bool:
		return strconv.FormatBool(tv)
	case float64:
		return strconv.FormatFloat(tv, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(tv), 'f', -1, 32)
	case int:
		return strconv.Itoa(tv)
	case int64:
		return strconv.FormatInt(tv, 10)
	case []any:
		parts := make([]string, len(tv))
		for i, e := range tv {
			parts[i] = Stringify(e)
		}
		return strings.Join(parts, ",")
	case []string:
		return strings.Join(tv, ",")
	default:
		return fmt.Sprint(tv)
	}
}
