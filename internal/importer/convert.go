package importer

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"intellispec/internal/model"
)

var cellDateLayouts = []string{
	time.RFC3339,
	"2006-01-02",
	"2006-01-02 15:04:05",
	"01/02/2006",
	"1/2/2006",
	"01-02-06", // excelize 对日期单元格的默认渲染
}

// convertCell 按目标字段类型转换单元格字符串
// 日期统一归一为 YYYY-MM-DD；enum 校验取值范围
func convertCell(cell string, field model.FieldDefinition) (any, error) {
	cell = strings.TrimSpace(cell)

	switch field.DataType {
	case model.DataTypeNumber:
		v, err := strconv.ParseFloat(strings.ReplaceAll(cell, ",", ""), 64)
		if err != nil {
			return nil, fmt.Errorf("无法解析为数字: %q", cell)
		}
		return v, nil

	case model.DataTypeBoolean:
		switch strings.ToLower(cell) {
		case "true", "yes", "y", "1":
			return true, nil
		case "false", "no", "n", "0":
			return false, nil
		}
		return nil, fmt.Errorf("无法解析为布尔值: %q", cell)

	case model.DataTypeDate:
		for _, layout := range cellDateLayouts {
			if t, err := time.Parse(layout, cell); err == nil {
				return t.Format("2006-01-02"), nil
			}
		}
		return nil, fmt.Errorf("无法解析为日期: %q", cell)

	case model.DataTypeEnum:
		for _, opt := range field.Options {
			if strings.EqualFold(opt, cell) {
				return opt, nil
			}
		}
		if len(field.Options) == 0 {
			return cell, nil
		}
		return nil, fmt.Errorf("取值 %q 不在允许范围内", cell)

	default:
		return cell, nil
	}
}
